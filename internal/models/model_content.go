package models

import (
	"time"

	"gorm.io/datatypes"
)

// Faq entries with an empty CustomerID are shown on every storefront.
type Faq struct {
	ID         string    `gorm:"column:id;type:uuid;primary_key" json:"id"`
	CustomerID string    `gorm:"column:c_id;type:varchar(36);index" json:"c_id"`
	Question   string    `gorm:"column:question;type:text;not null" json:"question"`
	Answer     string    `gorm:"column:answer;type:text;not null" json:"answer"`
	SortOrder  int       `gorm:"column:sort_order;not null;default:0" json:"sort_order"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Faq) TableName() string { return "faq" }

// Enquiry is a contact form submission from a tenant storefront.
type Enquiry struct {
	ID         string    `gorm:"column:id;type:uuid;primary_key" json:"id"`
	CustomerID string    `gorm:"column:c_id;type:uuid;index;not null" json:"c_id"`
	Name       string    `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Email      string    `gorm:"column:email;type:varchar(255);not null" json:"email"`
	Phone      string    `gorm:"column:phone;type:varchar(32)" json:"phone"`
	Subject    string    `gorm:"column:subject;type:varchar(255)" json:"subject"`
	Message    string    `gorm:"column:message;type:text;not null" json:"message"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Enquiry) TableName() string { return "enquiry" }

type SocialLink struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type Image struct {
	Path    string `json:"path"`
	Caption string `json:"caption,omitempty"`
}

type Testimonial struct {
	Author  string `json:"author"`
	Role    string `json:"role,omitempty"`
	Quote   string `json:"quote"`
	Picture string `json:"picture,omitempty"`
}

// SiteContent is the storefront material of one tenant. Image paths are
// stored relative and resolved against the image base URL when served.
type SiteContent struct {
	CustomerID   string                            `gorm:"column:c_id;type:uuid;primary_key" json:"c_id"`
	Socials      datatypes.JSONType[[]SocialLink]  `gorm:"column:socials;type:jsonb" json:"socials"`
	Gallery      datatypes.JSONType[[]Image]       `gorm:"column:gallery;type:jsonb" json:"gallery"`
	Sliders      datatypes.JSONType[[]Image]       `gorm:"column:sliders;type:jsonb" json:"sliders"`
	Testimonials datatypes.JSONType[[]Testimonial] `gorm:"column:testimonials;type:jsonb" json:"testimonials"`
	UpdatedAt    time.Time                         `json:"updated_at"`
}

func (SiteContent) TableName() string { return "site_content" }
