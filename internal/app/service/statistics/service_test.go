package statistics

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fatflowers/console/internal/models"
	"github.com/fatflowers/console/internal/testutil"
	"github.com/fatflowers/console/pkg/config"
	"github.com/fatflowers/console/pkg/tool"
	"github.com/fatflowers/console/pkg/types"
)

var ist = time.FixedZone("IST", 5*3600+1800)

func seed(t *testing.T, db *gorm.DB, customer string, created, expiry time.Time, subTotal, tax string, status types.ActiveStatus, paid types.PaymentStatus) *models.Subscription {
	t.Helper()
	sub := &models.Subscription{
		ID:             tool.GenerateUUIDV7(),
		OrderID:        tool.GenerateUUIDV7()[:32],
		PlanID:         "plan-1",
		CustomerID:     customer,
		PlanTotalPrice: decimal.RequireFromString(subTotal),
		TaxPrice:       decimal.RequireFromString(tax),
		GSTType:        types.GSTIntraState,
		DiscountType:   types.DiscountAmount,
		Created:        created,
		ExpiryDate:     expiry,
		Status:         status,
		IsDrop:         paid,
	}
	require.NoError(t, db.Create(sub).Error)
	return sub
}

func newService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	db := testutil.NewTestDB(t)
	svc := New(&config.Config{Billing: config.BillingConfig{Timezone: "Asia/Kolkata"}}, db, zap.NewNop().Sugar())
	svc.now = func() time.Time { return time.Date(2024, 1, 16, 12, 0, 0, 0, ist) }

	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, ist) }
	seed(t, db, "c1", day(15), day(15).AddDate(1, 0, 0), "4500", "810", types.StatusActive, types.PaymentPaid)
	// 23:30 UTC on the 15th is the 16th in the billing timezone.
	seed(t, db, "c1", time.Date(2024, 1, 15, 23, 30, 0, 0, time.UTC), day(16).AddDate(1, 0, 0), "999.99", "180", types.StatusInactive, types.PaymentPending)
	seed(t, db, "c2", day(16), day(16).AddDate(1, 0, 0), "100", "18", types.StatusActive, types.PaymentPending)
	seed(t, db, "c3", day(1).AddDate(-1, 0, 0), day(15), "100", "18", types.StatusActive, types.PaymentPaid)
	return svc, db
}

func TestDailySeries(t *testing.T) {
	svc, _ := newService(t)
	res, err := svc.GetStatistic(context.Background(), &StatisticRequest{
		From: "2024-01-14",
		To:   "2024-01-16",
		DataItems: []*StatisticDataItem{
			{ID: StatisticTypeDailyRevenue},
			{ID: StatisticTypeDailyNewSubscription},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, []StatisticResponseDataItem{
		{Date: "2024-01-14"},
		{Date: "2024-01-15", Value: 5310, Value2: 5310},
		{Date: "2024-01-16", Value: 1298},
	}, res.DataItems[StatisticTypeDailyRevenue])
	assert.Equal(t, []StatisticResponseDataItem{
		{Date: "2024-01-14"},
		{Date: "2024-01-15", Value: 1, Value2: 1},
		{Date: "2024-01-16", Value: 2, Value2: 2},
	}, res.DataItems[StatisticTypeDailyNewSubscription])
}

func TestDefaultWindowAndFilters(t *testing.T) {
	svc, _ := newService(t)
	res, err := svc.GetStatistic(context.Background(), &StatisticRequest{
		Filters:   []*types.CommonFilter{{Field: "c_id", Operator: types.CommonFilterOperatorEq, Values: []any{"c2"}}},
		DataItems: []*StatisticDataItem{{ID: StatisticTypeDailyNewSubscription}},
	})
	require.NoError(t, err)
	series := res.DataItems[StatisticTypeDailyNewSubscription]
	require.Len(t, series, 30)
	assert.Equal(t, "2024-01-16", series[29].Date)
	assert.EqualValues(t, 1, series[29].Value)
	assert.EqualValues(t, 0, series[28].Value)
}

func TestTotalStatusCount(t *testing.T) {
	svc, _ := newService(t)
	res, err := svc.GetStatistic(context.Background(), &StatisticRequest{
		DataItems: []*StatisticDataItem{{ID: StatisticTypeTotalStatusCount}},
	})
	require.NoError(t, err)
	got := map[string]int64{}
	for _, it := range res.DataItems[StatisticTypeTotalStatusCount] {
		assert.Equal(t, "2024-01-16", it.Date)
		got[it.Label] = it.Value
	}
	assert.Equal(t, map[string]int64{"Active": 2, "Inactive": 1, "Expired": 1, "PaymentPending": 2}, got)
}

func TestSnapshotsAndDailyStatus(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()
	at := time.Date(2024, 1, 16, 1, 0, 0, 0, ist)

	n, err := svc.SaveDailySnapshot(ctx, at)
	require.NoError(t, err)
	require.Equal(t, 4, n)
	_, err = svc.SaveDailySnapshot(ctx, at)
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.SubscriptionDailySnapshot{}).Count(&count).Error)
	require.EqualValues(t, 4, count)

	res, err := svc.GetStatistic(ctx, &StatisticRequest{
		From:      "2024-01-16",
		To:        "2024-01-16",
		DataItems: []*StatisticDataItem{{ID: StatisticTypeDailyStatusCount}},
	})
	require.NoError(t, err)
	assert.Equal(t, []StatisticResponseDataItem{
		{Date: "2024-01-16", Label: "Active", Value: 2},
		{Date: "2024-01-16", Label: "Expired", Value: 1},
		{Date: "2024-01-16", Label: "Inactive", Value: 1},
	}, res.DataItems[StatisticTypeDailyStatusCount])
}

func TestGetStatisticErrors(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.GetStatistic(ctx, &StatisticRequest{
		Filters:   []*types.CommonFilter{{Field: "password", Operator: types.CommonFilterOperatorEq, Values: []any{"x"}}},
		DataItems: []*StatisticDataItem{{ID: StatisticTypeDailyRevenue}},
	})
	require.ErrorIs(t, err, types.ErrUnsupportedField)

	_, err = svc.GetStatistic(ctx, &StatisticRequest{DataItems: []*StatisticDataItem{{ID: "nope"}}})
	require.ErrorContains(t, err, "invalid data item id")

	_, err = svc.GetStatistic(ctx, &StatisticRequest{From: "2024-02-01", To: "2024-01-01", DataItems: []*StatisticDataItem{{ID: StatisticTypeDailyRevenue}}})
	require.ErrorIs(t, err, ErrInvalidWindow)

	// plan_id does not apply to snapshot series.
	res, err := svc.GetStatistic(ctx, &StatisticRequest{
		Filters:   []*types.CommonFilter{{Field: "plan_id", Operator: types.CommonFilterOperatorEq, Values: []any{"plan-1"}}},
		DataItems: []*StatisticDataItem{{ID: StatisticTypeDailyStatusCount}},
	})
	require.NoError(t, err)
	require.Contains(t, res.DataItems, StatisticTypeDailyStatusCount)
	require.Nil(t, res.DataItems[StatisticTypeDailyStatusCount])
}

func TestGetStatisticReturnsEveryItem(t *testing.T) {
	svc, _ := newService(t)
	req := &StatisticRequest{
		From: "2024-01-14",
		To:   "2024-01-20",
		DataItems: []*StatisticDataItem{
			{ID: StatisticTypeDailyRevenue},
			{ID: StatisticTypeDailyNewSubscription},
			{ID: StatisticTypeDailyStatusCount},
			{ID: StatisticTypeTotalStatusCount},
		},
	}
	for i := 0; i < 200; i++ {
		res, err := svc.GetStatistic(context.Background(), req)
		require.NoError(t, err)
		require.Len(t, res.DataItems, 4, "run %d", i)
	}
}
