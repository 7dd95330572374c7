package subscription

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/fatflowers/console/internal/app/service/billing"
	"github.com/fatflowers/console/internal/app/service/catalog"
	"github.com/fatflowers/console/internal/app/service/tenant"
	"github.com/fatflowers/console/internal/models"
	"github.com/fatflowers/console/pkg/config"
	"github.com/fatflowers/console/pkg/logctx"
	"github.com/fatflowers/console/pkg/metrics"
	"github.com/fatflowers/console/pkg/tool"
	"github.com/fatflowers/console/pkg/types"
)

var ErrNotFound = errors.New("subscription not found")

type PlanReader interface {
	GetPlan(ctx context.Context, id string) (*models.Plan, error)
}

type CustomerReader interface {
	GetCustomer(ctx context.Context, id string) (*models.Customer, error)
}

var subscriptionScan = types.ScanSpec{
	Fields: []string{
		"id", "order_id", "plan_id", "c_id", "status", "isdrop", "gst_type",
		"created", "expiry_date", "payment_date", "totaluser", "plantotalprice", "created_at",
	},
	DefaultSort: "created",
}

type Service struct {
	cfg       *config.Config
	db        *gorm.DB
	log       *zap.SugaredLogger
	plans     PlanReader
	customers CustomerReader
	metrics   *metrics.Business
	now       func() time.Time

	logs sync.WaitGroup
}

func NewService(cfg *config.Config, db *gorm.DB, log *zap.SugaredLogger, plans *catalog.Service, customers *tenant.Service, m *metrics.Business) *Service {
	return &Service{cfg: cfg, db: db, log: log, plans: plans, customers: customers, metrics: m, now: time.Now}
}

// QuoteRequest carries the subscription form as typed by the operator.
// Numeric fields accept numbers or numeric strings; anything else reads as 0.
type QuoteRequest struct {
	PlanID       string `json:"plan_id"`
	CustomerID   string `json:"c_id"`
	TotalUser    any    `json:"totaluser"`
	Discount     any    `json:"discount"`
	DiscountType string `json:"discount_type"`
	GSTType      string `json:"gst_type"`
}

// QuoteResponse is the breakdown plus the plan it was priced for. The rate and
// seat count come from the breakdown.
type QuoteResponse struct {
	PlanID   string `json:"plan_id"`
	PlanName string `json:"plan_name"`
	billing.Breakdown
}

// UpsertRequest is the create and update form.
type UpsertRequest struct {
	QuoteRequest
	// ID is required on update and ignored on create.
	ID            string `json:"id"`
	Created       string `json:"created"`
	ExpiryDate    string `json:"expiry_date"`
	PaymentDetail string `json:"payment_detail"`
}

type ListRequest struct {
	types.ScanRequest
	// Search matches order ids and customer company names.
	Search string `json:"search"`
}

// Quote prices a form without saving. An unknown plan quotes as zero, and an
// unknown customer falls back to the requested or intra-state GST.
func (s *Service) Quote(ctx context.Context, req *QuoteRequest) (*QuoteResponse, error) {
	in, err := s.buildInput(ctx, req, false)
	if err != nil {
		return nil, err
	}
	sel := in.Selection()
	return &QuoteResponse{PlanID: sel.PlanID, PlanName: sel.PlanName, Breakdown: in.Quote()}, nil
}

func (s *Service) Create(ctx context.Context, req *UpsertRequest) (*models.Subscription, error) {
	start := time.Now()
	in, err := s.buildInput(ctx, &req.QuoteRequest, true)
	if err != nil {
		return nil, err
	}
	loc := s.cfg.Location()
	in.Start = ParseDate(req.Created, loc)
	in.Expiry = ParseDate(req.ExpiryDate, loc)

	sub := Build(*in)
	sub.ID = tool.GenerateUUIDV7()
	sub.OrderID = tool.NewOrderID(in.Now, loc)
	if d := strings.TrimSpace(req.PaymentDetail); d != "" {
		sub.PaymentDetail = d
	}

	if err := s.db.WithContext(ctx).Create(sub).Error; err != nil {
		s.metrics.ObserveProcess("subscription_create", start, err)
		return nil, fmt.Errorf("failed to create subscription: %w", err)
	}
	s.metrics.ObserveProcess("subscription_create", start, nil)
	s.recordChange(ctx, nil, sub, types.SubscriptionChangeReasonCreate)
	logctx.FromCtx(ctx, s.log).Infow("subscription created",
		"id", sub.ID, "order_id", sub.OrderID, "c_id", sub.CustomerID, "total", sub.TotalOrderValue().String())
	return sub, nil
}

// Update reprices an existing subscription. Start and expiry default to the
// stored values; order id, status and payment state are kept.
func (s *Service) Update(ctx context.Context, req *UpsertRequest) (*models.Subscription, error) {
	original, err := s.Get(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	in, err := s.buildInput(ctx, &req.QuoteRequest, true)
	if err != nil {
		return nil, err
	}
	loc := s.cfg.Location()
	in.Start = ParseDate(req.Created, loc)
	if in.Start == nil {
		in.Start = &original.Created
	}
	in.Expiry = ParseDate(req.ExpiryDate, loc)
	if in.Expiry == nil {
		in.Expiry = &original.ExpiryDate
	}

	sub := Build(*in)
	sub.ID = original.ID
	sub.OrderID = original.OrderID
	sub.Status = original.Status
	sub.IsDrop = original.IsDrop
	sub.PaymentDate = original.PaymentDate
	sub.PaymentDetail = original.PaymentDetail
	sub.CreatedAt = original.CreatedAt
	if d := strings.TrimSpace(req.PaymentDetail); d != "" {
		sub.PaymentDetail = d
	}

	if err := s.db.WithContext(ctx).Save(sub).Error; err != nil {
		return nil, fmt.Errorf("failed to update subscription: %w", err)
	}
	s.recordChange(ctx, original, sub, types.SubscriptionChangeReasonUpdate)
	return sub, nil
}

func (s *Service) Get(ctx context.Context, id string) (*models.Subscription, error) {
	if id == "" {
		return nil, ErrNotFound
	}
	var sub models.Subscription
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&sub).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	return &sub, nil
}

// GetSubscription satisfies the invoice service's reader.
func (s *Service) GetSubscription(ctx context.Context, id string) (*models.Subscription, error) {
	return s.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, req *ListRequest) (*types.ScanResponse[*models.Subscription], error) {
	if req == nil {
		req = &ListRequest{}
	}
	tx := s.db.WithContext(ctx).Model(&models.Subscription{})
	if q := strings.ToLower(strings.TrimSpace(req.Search)); q != "" {
		like := "%" + q + "%"
		companies := s.db.Model(&models.Customer{}).Select("id").Where("LOWER(company_name) LIKE ?", like)
		tx = tx.Where(s.db.Where("LOWER(order_id) LIKE ?", like).Or("c_id IN (?)", companies))
	}
	return types.Scan[*models.Subscription](tx, &req.ScanRequest, subscriptionScan)
}

// SetStatus toggles the active flag.
func (s *Service) SetStatus(ctx context.Context, id string, status types.ActiveStatus) (*models.Subscription, error) {
	return s.mutate(ctx, id, types.SubscriptionChangeReasonStatus, func(sub *models.Subscription) {
		sub.Status = status
	})
}

// SetPayment toggles the paid flag. Marking paid stamps the payment date,
// marking pending clears it.
func (s *Service) SetPayment(ctx context.Context, id string, paid types.PaymentStatus, detail string) (*models.Subscription, error) {
	now := s.now()
	return s.mutate(ctx, id, types.SubscriptionChangeReasonPayment, func(sub *models.Subscription) {
		sub.IsDrop = paid
		if paid == types.PaymentPaid {
			sub.PaymentDate = &now
			if d := strings.TrimSpace(detail); d != "" {
				sub.PaymentDetail = d
			}
		} else {
			sub.PaymentDate = nil
			sub.PaymentDetail = NoPaymentDetail
		}
	})
}

// DisplayStatus is DisplayStatusAt for the current time in the billing timezone.
func (s *Service) DisplayStatus(sub *models.Subscription) types.DisplayStatus {
	return DisplayStatusAt(sub, s.now(), s.cfg.Location())
}

func (s *Service) mutate(ctx context.Context, id string, reason types.SubscriptionChangeReason, fn func(*models.Subscription)) (*models.Subscription, error) {
	var before, after models.Subscription
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&before).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to get subscription: %w", err)
		}
		after = before
		fn(&after)
		if err := tx.Save(&after).Error; err != nil {
			return fmt.Errorf("failed to save subscription: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.recordChange(ctx, &before, &after, reason)
	logctx.FromCtx(ctx, s.log).Infow("subscription changed", "id", id, "reason", reason,
		"status", after.Status.Code(), "isdrop", after.IsDrop.Code())
	return &after, nil
}

func (s *Service) buildInput(ctx context.Context, req *QuoteRequest, strict bool) (*BuildInput, error) {
	in := &BuildInput{
		Users:         billing.CoerceInt(req.TotalUser),
		DiscountValue: billing.CoerceNumber(req.Discount),
		DiscountType:  types.DiscountType(req.DiscountType),
		GSTType:       types.GSTType(strings.TrimSpace(req.GSTType)),
		Now:           s.now(),
	}

	plan, err := s.plans.GetPlan(ctx, req.PlanID)
	switch {
	case err == nil:
		in.Plan = plan
	case errors.Is(err, catalog.ErrPlanNotFound) && !strict:
	default:
		return nil, err
	}

	if req.CustomerID == "" && !strict {
		return in, nil
	}
	customer, err := s.customers.GetCustomer(ctx, req.CustomerID)
	switch {
	case err == nil:
		in.Customer = customer
	case errors.Is(err, tenant.ErrCustomerNotFound) && !strict:
	default:
		return nil, err
	}
	return in, nil
}

// recordChange writes the audit row in the background; failures are logged only.
func (s *Service) recordChange(ctx context.Context, before, after *models.Subscription, reason types.SubscriptionChangeReason) {
	s.metrics.SubscriptionChanged(string(reason))
	traceID := logctx.TraceID(ctx)
	s.logs.Add(1)
	go func() {
		defer s.logs.Done()
		entry := &models.SubscriptionLog{
			ID:             tool.GenerateUUIDV7(),
			SubscriptionID: after.ID,
			Reason:         reason,
			Before:         datatypes.NewJSONType(before),
			After:          datatypes.NewJSONType(after),
			Extra:          datatypes.JSONMap{"trace_id": traceID},
		}
		if err := s.db.Create(entry).Error; err != nil {
			logctx.FromCtx(ctx, s.log).Errorf("failed to save subscription log: %v", err)
		}
	}()
}

// Wait blocks until pending audit writes finish.
func (s *Service) Wait() {
	s.logs.Wait()
}
