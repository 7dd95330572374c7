package statistics

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fatflowers/console/internal/app/service/billing"
	"github.com/fatflowers/console/internal/app/service/subscription"
	"github.com/fatflowers/console/internal/models"
	"github.com/fatflowers/console/pkg/config"
	"github.com/fatflowers/console/pkg/logctx"
	"github.com/fatflowers/console/pkg/tool"
	"github.com/fatflowers/console/pkg/types"
)

var ErrInvalidWindow = errors.New("invalid date window")

var Module = fx.Options(
	fx.Provide(New),
)

type StatisticType string

const (
	// Daily series over the requested window, keyed by billing date.
	StatisticTypeDailyRevenue         StatisticType = "daily_revenue"
	StatisticTypeDailyNewSubscription StatisticType = "daily_new_subscription"
	StatisticTypeDailyStatusCount     StatisticType = "daily_status_count"

	// Point in time counts per display status plus pending payments.
	StatisticTypeTotalStatusCount StatisticType = "total_status_count"
)

// LabelPaymentPending is the extra bucket of total_status_count.
const LabelPaymentPending = "PaymentPending"

const (
	defaultWindowDays = 30
	maxWindowDays     = 366
	batchSize         = 500
)

// validFilters lists which statistic types honour a filter field. Requesting a
// type with a filter it cannot apply yields an empty series for that type.
var validFilters = map[string][]StatisticType{
	"c_id":     {StatisticTypeDailyRevenue, StatisticTypeDailyNewSubscription, StatisticTypeDailyStatusCount, StatisticTypeTotalStatusCount},
	"isdrop":   {StatisticTypeDailyRevenue, StatisticTypeDailyNewSubscription, StatisticTypeDailyStatusCount, StatisticTypeTotalStatusCount},
	"plan_id":  {StatisticTypeDailyRevenue, StatisticTypeDailyNewSubscription, StatisticTypeTotalStatusCount},
	"gst_type": {StatisticTypeDailyRevenue, StatisticTypeDailyNewSubscription, StatisticTypeTotalStatusCount},
}

type StatisticDataItem struct {
	ID StatisticType `json:"id"`
}

type StatisticRequest struct {
	Filters   []*types.CommonFilter `json:"filters"`
	DataItems []*StatisticDataItem  `json:"data_items"`
	// From and To are inclusive YYYY-MM-DD dates in the billing timezone.
	// The window defaults to the last 30 days.
	From string `json:"from"`
	To   string `json:"to"`
}

func (r *StatisticRequest) applicable(t StatisticType) bool {
	for _, f := range r.Filters {
		if f != nil && !lo.Contains(validFilters[f.Field], t) {
			return false
		}
	}
	return true
}

func (r *StatisticRequest) where() clause.Where {
	return clause.Where{Exprs: []clause.Expression{types.FiltersAnd(r.Filters)}}
}

// StatisticResponseDataItem is one point of a series. Amounts are whole rupees.
type StatisticResponseDataItem struct {
	Date   string `json:"date"`
	Label  string `json:"label,omitempty"`
	Value  int64  `json:"value"`
	Value2 int64  `json:"value2,omitempty"`
}

type StatisticResponse struct {
	DataItems map[StatisticType][]StatisticResponseDataItem `json:"data_items"`
}

type Service struct {
	cfg *config.Config
	db  *gorm.DB
	log *zap.SugaredLogger
	now func() time.Time
}

func New(cfg *config.Config, db *gorm.DB, log *zap.SugaredLogger) *Service {
	return &Service{cfg: cfg, db: db, log: log, now: time.Now}
}

// window resolves the request dates to [from, to) instants and the list of days.
func (s *Service) window(req *StatisticRequest) (time.Time, time.Time, []string, error) {
	loc := s.cfg.Location()
	today := s.now().In(loc)
	to := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, loc)
	if req.To != "" {
		t, err := time.ParseInLocation(time.DateOnly, req.To, loc)
		if err != nil {
			return time.Time{}, time.Time{}, nil, fmt.Errorf("%w: to date %q", ErrInvalidWindow, req.To)
		}
		to = t
	}
	from := to.AddDate(0, 0, 1-defaultWindowDays)
	if req.From != "" {
		t, err := time.ParseInLocation(time.DateOnly, req.From, loc)
		if err != nil {
			return time.Time{}, time.Time{}, nil, fmt.Errorf("%w: from date %q", ErrInvalidWindow, req.From)
		}
		from = t
	}
	if from.After(to) {
		return time.Time{}, time.Time{}, nil, fmt.Errorf("%w: from date is after to date", ErrInvalidWindow)
	}

	var days []string
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		days = append(days, d.Format(time.DateOnly))
		if len(days) > maxWindowDays {
			return time.Time{}, time.Time{}, nil, fmt.Errorf("%w: exceeds %d days", ErrInvalidWindow, maxWindowDays)
		}
	}
	return from, to.AddDate(0, 0, 1), days, nil
}

// createdBetween loads the subscriptions billed in [from, to). The SQL bounds
// are padded by a day and refined here, since SQLite compares timestamps as
// text and rows may carry different zone offsets.
func (s *Service) createdBetween(ctx context.Context, req *StatisticRequest, from, to time.Time) ([]models.Subscription, error) {
	var rows []models.Subscription
	err := s.db.WithContext(ctx).Model(&models.Subscription{}).
		Select("id", "c_id", "plantotalprice", "taxprice", "isdrop", "created").
		Where(req.where()).
		Where("created >= ? AND created < ?", from.AddDate(0, 0, -1), to.AddDate(0, 0, 1)).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load subscriptions: %w", err)
	}
	return lo.Filter(rows, func(sub models.Subscription, _ int) bool {
		return !sub.Created.Before(from) && sub.Created.Before(to)
	}), nil
}

func (s *Service) getDailyRevenue(ctx context.Context, req *StatisticRequest) ([]StatisticResponseDataItem, error) {
	from, to, days, err := s.window(req)
	if err != nil {
		return nil, err
	}
	rows, err := s.createdBetween(ctx, req, from, to)
	if err != nil {
		return nil, err
	}
	loc := s.cfg.Location()
	total := map[string]decimal.Decimal{}
	paid := map[string]decimal.Decimal{}
	for i := range rows {
		day := rows[i].Created.In(loc).Format(time.DateOnly)
		total[day] = total[day].Add(rows[i].TotalOrderValue())
		if rows[i].IsDrop == types.PaymentPaid {
			paid[day] = paid[day].Add(rows[i].TotalOrderValue())
		}
	}
	return lo.Map(days, func(day string, _ int) StatisticResponseDataItem {
		return StatisticResponseDataItem{Date: day, Value: billing.RoundRupees(total[day]), Value2: billing.RoundRupees(paid[day])}
	}), nil
}

func (s *Service) getDailyNewSubscription(ctx context.Context, req *StatisticRequest) ([]StatisticResponseDataItem, error) {
	from, to, days, err := s.window(req)
	if err != nil {
		return nil, err
	}
	rows, err := s.createdBetween(ctx, req, from, to)
	if err != nil {
		return nil, err
	}
	loc := s.cfg.Location()
	count := map[string]int64{}
	customers := map[string]map[string]struct{}{}
	for i := range rows {
		day := rows[i].Created.In(loc).Format(time.DateOnly)
		count[day]++
		if customers[day] == nil {
			customers[day] = map[string]struct{}{}
		}
		customers[day][rows[i].CustomerID] = struct{}{}
	}
	return lo.Map(days, func(day string, _ int) StatisticResponseDataItem {
		return StatisticResponseDataItem{Date: day, Value: count[day], Value2: int64(len(customers[day]))}
	}), nil
}

func (s *Service) getDailyStatusCount(ctx context.Context, req *StatisticRequest) ([]StatisticResponseDataItem, error) {
	_, _, days, err := s.window(req)
	if err != nil {
		return nil, err
	}
	results := make([]StatisticResponseDataItem, 0)
	err = s.db.WithContext(ctx).Model(&models.SubscriptionDailySnapshot{}).
		Select("snapshot_date as date, display_status as label, count(*) as value").
		Where(req.where()).
		Where("snapshot_date >= ? AND snapshot_date <= ?", days[0], days[len(days)-1]).
		Group("snapshot_date").
		Group("display_status").
		Order("snapshot_date").
		Order("display_status").
		Scan(&results).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count snapshots: %w", err)
	}
	return results, nil
}

func (s *Service) getTotalStatusCount(ctx context.Context, req *StatisticRequest) ([]StatisticResponseDataItem, error) {
	now := s.now()
	loc := s.cfg.Location()
	counts := map[string]int64{
		string(types.DisplayStatusActive):   0,
		string(types.DisplayStatusInactive): 0,
		string(types.DisplayStatusExpired):  0,
		LabelPaymentPending:                 0,
	}
	var batch []models.Subscription
	err := s.db.WithContext(ctx).Model(&models.Subscription{}).
		Select("id", "status", "isdrop", "expiry_date").
		Where(req.where()).
		FindInBatches(&batch, batchSize, func(_ *gorm.DB, _ int) error {
			for i := range batch {
				counts[string(subscription.DisplayStatusAt(&batch[i], now, loc))]++
				if batch[i].IsDrop == types.PaymentPending {
					counts[LabelPaymentPending]++
				}
			}
			return nil
		}).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count subscriptions: %w", err)
	}

	date := now.In(loc).Format(time.DateOnly)
	items := lo.MapToSlice(counts, func(label string, n int64) StatisticResponseDataItem {
		return StatisticResponseDataItem{Date: date, Label: label, Value: n}
	})
	sort.Slice(items, func(i, j int) bool { return items[i].Label < items[j].Label })
	return items, nil
}

func (s *Service) getStatistic(ctx context.Context, req *StatisticRequest, item *StatisticDataItem) ([]StatisticResponseDataItem, error) {
	switch item.ID {
	case StatisticTypeDailyRevenue:
		return s.getDailyRevenue(ctx, req)
	case StatisticTypeDailyNewSubscription:
		return s.getDailyNewSubscription(ctx, req)
	case StatisticTypeDailyStatusCount:
		return s.getDailyStatusCount(ctx, req)
	case StatisticTypeTotalStatusCount:
		return s.getTotalStatusCount(ctx, req)
	default:
		return nil, fmt.Errorf("invalid data item id: %s", item.ID)
	}
}

// GetStatistic computes every requested data item concurrently.
func (s *Service) GetStatistic(ctx context.Context, req *StatisticRequest) (*StatisticResponse, error) {
	if err := types.ValidateFilters(req.Filters, lo.Keys(validFilters)); err != nil {
		return nil, err
	}
	items := lo.Filter(req.DataItems, func(di *StatisticDataItem, _ int) bool { return di != nil })

	var mu sync.Mutex
	results := make(map[StatisticType][]StatisticResponseDataItem, len(items))
	g, gctx := errgroup.WithContext(ctx)
	for _, item := range items {
		g.Go(func() error {
			var res []StatisticResponseDataItem
			if req.applicable(item.ID) {
				var err error
				if res, err = s.getStatistic(gctx, req, item); err != nil {
					return err
				}
			}
			mu.Lock()
			results[item.ID] = res
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &StatisticResponse{DataItems: results}, nil
}

// SaveDailySnapshot writes one row per subscription for the billing date of at.
// Running it twice on the same day overwrites that day's rows.
func (s *Service) SaveDailySnapshot(ctx context.Context, at time.Time) (int, error) {
	loc := s.cfg.Location()
	date := at.In(loc).Format(time.DateOnly)
	saved := 0

	var batch []models.Subscription
	err := s.db.WithContext(ctx).Model(&models.Subscription{}).
		FindInBatches(&batch, batchSize, func(_ *gorm.DB, _ int) error {
			snaps := make([]*models.SubscriptionDailySnapshot, 0, len(batch))
			for i := range batch {
				sub := &batch[i]
				snaps = append(snaps, &models.SubscriptionDailySnapshot{
					ID:             tool.GenerateUUIDV7(),
					SubscriptionID: sub.ID,
					CustomerID:     sub.CustomerID,
					DisplayStatus:  subscription.DisplayStatusAt(sub, at, loc),
					IsDrop:         sub.IsDrop,
					OrderValue:     sub.TotalOrderValue(),
					ExpiryDate:     sub.ExpiryDate,
					SnapshotDate:   date,
				})
			}
			err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "subscription_id"}, {Name: "snapshot_date"}},
				DoUpdates: clause.AssignmentColumns([]string{"c_id", "display_status", "isdrop", "order_value", "expiry_date"}),
			}).Create(&snaps).Error
			if err != nil {
				return fmt.Errorf("failed to save snapshots: %w", err)
			}
			saved += len(snaps)
			return nil
		}).Error
	if err != nil {
		return saved, err
	}
	logctx.FromCtx(ctx, s.log).Infow("subscription snapshot saved", "date", date, "rows", saved)
	return saved, nil
}
