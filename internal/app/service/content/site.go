package content

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/fatflowers/console/internal/models"
)

type SiteContentRequest struct {
	Socials      []models.SocialLink  `json:"socials"`
	Gallery      []models.Image       `json:"gallery"`
	Sliders      []models.Image       `json:"sliders"`
	Testimonials []models.Testimonial `json:"testimonials"`
}

// PublicSite is what a storefront renders. Asset paths are absolute URLs.
type PublicSite struct {
	CompanyName  string               `json:"company_name"`
	Theme        string               `json:"theme"`
	Logo         string               `json:"logo"`
	Email        string               `json:"email"`
	MobileNo     string               `json:"mobile_no"`
	Address      string               `json:"address"`
	Socials      []models.SocialLink  `json:"socials"`
	Gallery      []models.Image       `json:"gallery"`
	Sliders      []models.Image       `json:"sliders"`
	Testimonials []models.Testimonial `json:"testimonials"`
}

// UpdateSite replaces the tenant's site content.
func (s *Service) UpdateSite(ctx context.Context, customerID string, req *SiteContentRequest) (*models.SiteContent, error) {
	if _, err := s.tenants.GetCustomer(ctx, customerID); err != nil {
		return nil, err
	}
	sc := &models.SiteContent{
		CustomerID:   customerID,
		Socials:      datatypes.NewJSONType(nonNil(req.Socials)),
		Gallery:      datatypes.NewJSONType(nonNil(req.Gallery)),
		Sliders:      datatypes.NewJSONType(nonNil(req.Sliders)),
		Testimonials: datatypes.NewJSONType(nonNil(req.Testimonials)),
	}
	if err := s.db.WithContext(ctx).Save(sc).Error; err != nil {
		return nil, fmt.Errorf("failed to save site content: %w", err)
	}
	return sc, nil
}

// GetSite returns the stored content with relative paths. Tenants without
// content get empty lists.
func (s *Service) GetSite(ctx context.Context, customerID string) (*models.SiteContent, error) {
	if _, err := s.tenants.GetCustomer(ctx, customerID); err != nil {
		return nil, err
	}
	return s.site(ctx, customerID)
}

func (s *Service) site(ctx context.Context, customerID string) (*models.SiteContent, error) {
	var sc models.SiteContent
	err := s.db.WithContext(ctx).Where("c_id = ?", customerID).First(&sc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.SiteContent{
			CustomerID:   customerID,
			Socials:      datatypes.NewJSONType([]models.SocialLink{}),
			Gallery:      datatypes.NewJSONType([]models.Image{}),
			Sliders:      datatypes.NewJSONType([]models.Image{}),
			Testimonials: datatypes.NewJSONType([]models.Testimonial{}),
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get site content: %w", err)
	}
	return &sc, nil
}

// PublicSite resolves a storefront domain to its rendered content.
func (s *Service) PublicSite(ctx context.Context, domain string) (*PublicSite, error) {
	c, err := s.tenants.GetLiveByDomain(ctx, domain)
	if err != nil {
		return nil, tenantErr(err)
	}
	sc, err := s.site(ctx, c.ID)
	if err != nil {
		return nil, err
	}

	testimonials := nonNil(sc.Testimonials.Data())
	for i := range testimonials {
		testimonials[i].Picture = s.cfg.ResolveAssetURL(testimonials[i].Picture)
	}
	return &PublicSite{
		CompanyName:  c.CompanyName,
		Theme:        c.Theme,
		Logo:         s.cfg.ResolveAssetURL(c.Logo),
		Email:        c.Email,
		MobileNo:     c.MobileNo,
		Address:      c.Address,
		Socials:      nonNil(sc.Socials.Data()),
		Gallery:      s.resolveImages(sc.Gallery.Data()),
		Sliders:      s.resolveImages(sc.Sliders.Data()),
		Testimonials: testimonials,
	}, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
