package content

import (
	"context"
	"fmt"

	"github.com/fatflowers/console/internal/models"
	"github.com/fatflowers/console/pkg/tool"
	"github.com/fatflowers/console/pkg/types"
)

var faqScan = types.ScanSpec{
	Fields:      []string{"c_id", "question", "sort_order", "created_at"},
	DefaultSort: "sort_order",
}

// FaqRequest creates or replaces a FAQ entry. An empty c_id makes it global.
type FaqRequest struct {
	CustomerID string `json:"c_id"`
	Question   string `json:"question" binding:"required"`
	Answer     string `json:"answer" binding:"required"`
	SortOrder  int    `json:"sort_order"`
}

func (r *FaqRequest) apply(f *models.Faq) {
	f.CustomerID = trimmed(r.CustomerID)
	f.Question = trimmed(r.Question)
	f.Answer = trimmed(r.Answer)
	f.SortOrder = r.SortOrder
}

func (s *Service) checkOwner(ctx context.Context, customerID string) error {
	if customerID == "" {
		return nil
	}
	_, err := s.tenants.GetCustomer(ctx, customerID)
	return err
}

func (s *Service) CreateFaq(ctx context.Context, req *FaqRequest) (*models.Faq, error) {
	f := &models.Faq{ID: tool.GenerateUUIDV7()}
	req.apply(f)
	if err := s.checkOwner(ctx, f.CustomerID); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Create(f).Error; err != nil {
		return nil, fmt.Errorf("failed to create faq: %w", err)
	}
	return f, nil
}

func (s *Service) UpdateFaq(ctx context.Context, id string, req *FaqRequest) (*models.Faq, error) {
	f, err := s.GetFaq(ctx, id)
	if err != nil {
		return nil, err
	}
	req.apply(f)
	if err := s.checkOwner(ctx, f.CustomerID); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Save(f).Error; err != nil {
		return nil, fmt.Errorf("failed to update faq: %w", err)
	}
	return f, nil
}

func (s *Service) GetFaq(ctx context.Context, id string) (*models.Faq, error) {
	var f models.Faq
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&f).Error; err != nil {
		return nil, wrapNotFound(err, ErrFaqNotFound)
	}
	return &f, nil
}

func (s *Service) DeleteFaq(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Faq{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete faq: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrFaqNotFound
	}
	return nil
}

func (s *Service) ListFaqs(ctx context.Context, req *types.ScanRequest) (*types.ScanResponse[*models.Faq], error) {
	if req != nil && req.SortBy == "" {
		req.SortOrder = "asc"
	}
	return types.Scan[*models.Faq](s.db.WithContext(ctx).Model(&models.Faq{}), req, faqScan)
}

// PublicFaqs lists the tenant's own and the global FAQs for a storefront domain.
func (s *Service) PublicFaqs(ctx context.Context, domain string) ([]*models.Faq, error) {
	c, err := s.tenants.GetLiveByDomain(ctx, domain)
	if err != nil {
		return nil, tenantErr(err)
	}
	faqs := make([]*models.Faq, 0)
	err = s.db.WithContext(ctx).
		Where("c_id = ? OR c_id = ''", c.ID).
		Order("sort_order").Order("created_at").
		Find(&faqs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list faqs: %w", err)
	}
	return faqs, nil
}
