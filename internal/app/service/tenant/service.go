// Package tenant manages customer companies and their storefront identity.
package tenant

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fatflowers/console/internal/models"
	"github.com/fatflowers/console/pkg/logctx"
	"github.com/fatflowers/console/pkg/tool"
	"github.com/fatflowers/console/pkg/types"
)

var (
	ErrCustomerNotFound = errors.New("customer not found")
	ErrDomainTaken      = errors.New("domain already in use")
	ErrCustomerInUse    = errors.New("customer has subscriptions")
	ErrInvalidGSTIN     = errors.New("invalid gstin")
	ErrInvalidCustomer  = errors.New("invalid customer")
)

var Module = fx.Options(
	fx.Provide(NewService),
)

// gstinPattern is the 15 character GST identification number layout.
var gstinPattern = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][1-9A-Z]Z[0-9A-Z]$`)

var customerScan = types.ScanSpec{
	Fields:      []string{"company_name", "contact_name", "email", "mobile_no", "domain", "gst_type", "status", "approved", "created_at"},
	DefaultSort: "created_at",
}

type Service struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func NewService(db *gorm.DB, log *zap.SugaredLogger) *Service {
	return &Service{db: db, log: log}
}

type CustomerRequest struct {
	CompanyName string `json:"company_name" binding:"required,max=255"`
	ContactName string `json:"contact_name" binding:"max=255"`
	Email       string `json:"email" binding:"required,email"`
	MobileNo    string `json:"mobile_no" binding:"max=32"`
	Address     string `json:"address"`
	GSTIN       string `json:"gstin"`
	GSTType     string `json:"gst_type"`
	Domain      string `json:"domain" binding:"required"`
	Theme       string `json:"theme"`
	Logo        string `json:"logo"`
}

// NormalizeDomain lowercases a host and strips any scheme, path or port.
func NormalizeDomain(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if i := strings.Index(s, "://"); i >= 0 {
		s = s[i+3:]
	}
	if i := strings.IndexAny(s, "/?#"); i >= 0 {
		s = s[:i]
	}
	if i := strings.LastIndex(s, ":"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSuffix(s, ".")
}

func (r *CustomerRequest) apply(c *models.Customer) error {
	gstin := strings.ToUpper(strings.TrimSpace(r.GSTIN))
	if gstin != "" && !gstinPattern.MatchString(gstin) {
		return fmt.Errorf("%w: %q", ErrInvalidGSTIN, r.GSTIN)
	}
	domain := NormalizeDomain(r.Domain)
	if domain == "" {
		return fmt.Errorf("%w: domain is required", ErrInvalidCustomer)
	}
	c.CompanyName = strings.TrimSpace(r.CompanyName)
	c.ContactName = strings.TrimSpace(r.ContactName)
	c.Email = strings.TrimSpace(r.Email)
	c.MobileNo = strings.TrimSpace(r.MobileNo)
	c.Address = r.Address
	c.GSTIN = gstin
	c.GSTType = types.ParseGSTType(r.GSTType)
	c.Domain = domain
	c.Theme = r.Theme
	c.Logo = r.Logo
	return nil
}

// Create registers a tenant. New tenants start unapproved and inactive.
func (s *Service) Create(ctx context.Context, req *CustomerRequest) (*models.Customer, error) {
	c := &models.Customer{ID: tool.GenerateUUIDV7(), Status: types.StatusInactive}
	if err := req.apply(c); err != nil {
		return nil, err
	}
	if err := s.ensureDomainFree(ctx, c.Domain, ""); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Create(c).Error; err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}
	logctx.FromCtx(ctx, s.log).Infow("customer created", "c_id", c.ID, "domain", c.Domain)
	return c, nil
}

func (s *Service) Update(ctx context.Context, id string, req *CustomerRequest) (*models.Customer, error) {
	c, err := s.GetCustomer(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := req.apply(c); err != nil {
		return nil, err
	}
	if err := s.ensureDomainFree(ctx, c.Domain, c.ID); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Save(c).Error; err != nil {
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}
	return c, nil
}

// Approve marks a tenant approved and activates it.
func (s *Service) Approve(ctx context.Context, id string) (*models.Customer, error) {
	return s.patch(ctx, id, map[string]any{"approved": true, "status": types.StatusActive})
}

func (s *Service) SetStatus(ctx context.Context, id string, status types.ActiveStatus) (*models.Customer, error) {
	return s.patch(ctx, id, map[string]any{"status": status})
}

// Delete removes a tenant that was never billed, with its site content.
// Subscriptions are kept forever, so a billed tenant yields ErrCustomerInUse
// and can only be deactivated.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.Subscription{}).Where("c_id = ?", id).Count(&n).Error; err != nil {
			return fmt.Errorf("failed to count subscriptions: %w", err)
		}
		if n > 0 {
			return ErrCustomerInUse
		}
		res := tx.Where("id = ?", id).Delete(&models.Customer{})
		if res.Error != nil {
			return fmt.Errorf("failed to delete customer: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrCustomerNotFound
		}
		if err := tx.Where("c_id = ?", id).Delete(&models.SiteContent{}).Error; err != nil {
			return fmt.Errorf("failed to delete site content: %w", err)
		}
		return nil
	})
}

func (s *Service) GetCustomer(ctx context.Context, id string) (*models.Customer, error) {
	var c models.Customer
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return &c, nil
}

// GetLiveByDomain resolves the storefront tenant for a host. Unapproved or
// inactive tenants are reported as not found.
func (s *Service) GetLiveByDomain(ctx context.Context, domain string) (*models.Customer, error) {
	var c models.Customer
	err := s.db.WithContext(ctx).
		Where("domain = ? AND approved = ? AND status = ?", NormalizeDomain(domain), true, types.StatusActive).
		First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to get customer by domain: %w", err)
	}
	return &c, nil
}

func (s *Service) List(ctx context.Context, req *types.ScanRequest) (*types.ScanResponse[*models.Customer], error) {
	return types.Scan[*models.Customer](s.db.WithContext(ctx).Model(&models.Customer{}), req, customerScan)
}

func (s *Service) patch(ctx context.Context, id string, fields map[string]any) (*models.Customer, error) {
	res := s.db.WithContext(ctx).Model(&models.Customer{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update customer: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrCustomerNotFound
	}
	return s.GetCustomer(ctx, id)
}

func (s *Service) ensureDomainFree(ctx context.Context, domain, selfID string) error {
	q := s.db.WithContext(ctx).Model(&models.Customer{}).Where("domain = ?", domain)
	if selfID != "" {
		q = q.Where("id <> ?", selfID)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return fmt.Errorf("failed to check domain: %w", err)
	}
	if n > 0 {
		return fmt.Errorf("%w: %s", ErrDomainTaken, domain)
	}
	return nil
}
