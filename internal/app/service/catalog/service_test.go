package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fatflowers/console/internal/testutil"
	"github.com/fatflowers/console/pkg/config"
	"github.com/fatflowers/console/pkg/types"
)

func newTestService(t *testing.T) *Service {
	cfg := &config.Config{PlanCache: config.PlanCacheConfig{Size: 8, TTL: time.Minute}}
	return NewService(cfg, testutil.NewTestDB(t), zap.NewNop().Sugar())
}

func TestCreateAndGetPlan(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	p, err := svc.CreatePlan(ctx, &PlanRequest{Name: " Gold ", Price: "1000", DefaultUsers: float64(5)})
	require.NoError(t, err)
	require.Equal(t, "Gold", p.Name)
	require.Equal(t, types.StatusActive, p.Status)

	got, err := svc.GetPlan(ctx, p.ID)
	require.NoError(t, err)
	require.True(t, decimal.NewFromInt(1000).Equal(got.Price))
	require.Equal(t, 5, got.DefaultUsers)

	_, err = svc.GetPlan(ctx, "missing")
	require.ErrorIs(t, err, ErrPlanNotFound)
	_, err = svc.GetPlan(ctx, "")
	require.ErrorIs(t, err, ErrPlanNotFound)
}

func TestGetPlan_CachedCopyIsIsolated(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	p, err := svc.CreatePlan(ctx, &PlanRequest{Name: "Silver", Price: 500})
	require.NoError(t, err)

	first, err := svc.GetPlan(ctx, p.ID)
	require.NoError(t, err)
	first.Name = "mutated"

	second, err := svc.GetPlan(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, "Silver", second.Name)
}

func TestUpdatePlan_InvalidatesCache(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	p, err := svc.CreatePlan(ctx, &PlanRequest{Name: "Silver", Price: 500})
	require.NoError(t, err)
	_, err = svc.GetPlan(ctx, p.ID)
	require.NoError(t, err)

	_, err = svc.UpdatePlan(ctx, p.ID, &PlanRequest{Name: "Silver", Price: "650.5", Status: "N"})
	require.NoError(t, err)

	got, err := svc.GetPlan(ctx, p.ID)
	require.NoError(t, err)
	require.True(t, decimal.RequireFromString("650.5").Equal(got.Price))
	require.Equal(t, types.StatusInactive, got.Status)

	_, err = svc.UpdatePlan(ctx, "missing", &PlanRequest{Name: "x"})
	require.ErrorIs(t, err, ErrPlanNotFound)
}

func TestPlanRequest_Validation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreatePlan(ctx, &PlanRequest{Name: "  "})
	require.Error(t, err)
	_, err = svc.CreatePlan(ctx, &PlanRequest{Name: "Neg", Price: -1})
	require.Error(t, err)
	_, err = svc.CreatePlan(ctx, &PlanRequest{Name: "Bad", Status: "maybe"})
	require.Error(t, err)
}

func TestListAndActivePlans(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for _, r := range []*PlanRequest{
		{Name: "Gold", Price: 1000},
		{Name: "Bronze", Price: 100},
		{Name: "Legacy", Price: 50, Status: "N"},
	} {
		_, err := svc.CreatePlan(ctx, r)
		require.NoError(t, err)
	}

	active, err := svc.ActivePlans(ctx)
	require.NoError(t, err)
	require.Len(t, active, 2)
	require.Equal(t, "Bronze", active[0].Name)

	res, err := svc.ListPlans(ctx, &types.ScanRequest{
		Filters: []*types.CommonFilter{{Field: "name", Operator: types.CommonFilterOperatorSearch, Values: []any{"OL"}}},
	})
	require.NoError(t, err)
	require.EqualValues(t, 1, res.Total)
	require.Equal(t, "Gold", res.Items[0].Name)

	_, err = svc.ListPlans(ctx, &types.ScanRequest{SortBy: "id; drop table plan"})
	require.Error(t, err)
}
