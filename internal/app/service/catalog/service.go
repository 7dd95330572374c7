// Package catalog owns the plan price list.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fatflowers/console/internal/app/service/billing"
	"github.com/fatflowers/console/internal/models"
	"github.com/fatflowers/console/pkg/config"
	"github.com/fatflowers/console/pkg/logctx"
	"github.com/fatflowers/console/pkg/tool"
	"github.com/fatflowers/console/pkg/types"
)

var (
	ErrPlanNotFound = errors.New("plan not found")
	ErrInvalidPlan  = errors.New("invalid plan")
)

var Module = fx.Options(
	fx.Provide(NewService),
)

var planScan = types.ScanSpec{
	Fields:      []string{"name", "price", "default_users", "status", "created_at"},
	DefaultSort: "created_at",
}

// Service reads plans through a small expiring cache; plans change rarely and
// are read on every quote.
type Service struct {
	db    *gorm.DB
	log   *zap.SugaredLogger
	cache *expirable.LRU[string, models.Plan]
}

func NewService(cfg *config.Config, db *gorm.DB, log *zap.SugaredLogger) *Service {
	size, ttl := 256, cfg.PlanCache.TTL
	if cfg.PlanCache.Size > 0 {
		size = cfg.PlanCache.Size
	}
	return &Service{
		db:    db,
		log:   log,
		cache: expirable.NewLRU[string, models.Plan](size, nil, ttl),
	}
}

type PlanRequest struct {
	Name         string `json:"name" binding:"required,max=128"`
	Price        any    `json:"price"`
	DefaultUsers any    `json:"default_users"`
	Description  string `json:"description"`
	Status       string `json:"status"`
}

func (r *PlanRequest) apply(p *models.Plan) error {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidPlan)
	}
	price := billing.CoerceNumber(r.Price)
	if price.IsNegative() {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidPlan)
	}
	users := billing.CoerceInt(r.DefaultUsers)
	if users < 0 {
		return fmt.Errorf("%w: default_users must not be negative", ErrInvalidPlan)
	}
	status := types.StatusActive
	if r.Status != "" {
		s, err := types.ParseActiveStatus(r.Status)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidPlan, err)
		}
		status = s
	}
	p.Name = name
	p.Price = price.Round(2)
	p.DefaultUsers = users
	p.Description = r.Description
	p.Status = status
	return nil
}

func (s *Service) CreatePlan(ctx context.Context, req *PlanRequest) (*models.Plan, error) {
	p := &models.Plan{ID: tool.GenerateUUIDV7()}
	if err := req.apply(p); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
		return nil, fmt.Errorf("failed to create plan: %w", err)
	}
	logctx.FromCtx(ctx, s.log).Infow("plan created", "plan_id", p.ID, "name", p.Name, "price", p.Price.String())
	return p, nil
}

func (s *Service) UpdatePlan(ctx context.Context, id string, req *PlanRequest) (*models.Plan, error) {
	p, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := req.apply(p); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Save(p).Error; err != nil {
		return nil, fmt.Errorf("failed to update plan: %w", err)
	}
	s.cache.Remove(id)
	return p, nil
}

// GetPlan returns a copy of the plan, which callers may modify.
func (s *Service) GetPlan(ctx context.Context, id string) (*models.Plan, error) {
	if id == "" {
		return nil, ErrPlanNotFound
	}
	if p, ok := s.cache.Get(id); ok {
		return &p, nil
	}
	p, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.Add(id, *p)
	return p, nil
}

func (s *Service) ListPlans(ctx context.Context, req *types.ScanRequest) (*types.ScanResponse[*models.Plan], error) {
	return types.Scan[*models.Plan](s.db.WithContext(ctx).Model(&models.Plan{}), req, planScan)
}

// ActivePlans lists the plans offered in the subscription form, cheapest first.
func (s *Service) ActivePlans(ctx context.Context) ([]*models.Plan, error) {
	var plans []*models.Plan
	if err := s.db.WithContext(ctx).Where("status = ?", types.StatusActive).Order("price asc").Find(&plans).Error; err != nil {
		return nil, fmt.Errorf("failed to list active plans: %w", err)
	}
	return plans, nil
}

func (s *Service) load(ctx context.Context, id string) (*models.Plan, error) {
	var p models.Plan
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	return &p, nil
}
