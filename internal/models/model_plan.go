package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fatflowers/console/pkg/types"
)

// Plan is a priced subscription tier. Price is per user per year.
type Plan struct {
	ID           string             `gorm:"column:id;type:uuid;primary_key" json:"id"`
	Name         string             `gorm:"column:name;type:varchar(128);not null" json:"name"`
	Price        decimal.Decimal    `gorm:"column:price;type:numeric(14,2);not null" json:"price"`
	DefaultUsers int                `gorm:"column:default_users;not null;default:0" json:"default_users"`
	Description  string             `gorm:"column:description;type:text" json:"description"`
	Status       types.ActiveStatus `gorm:"column:status;type:varchar(1);not null" json:"status"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

func (Plan) TableName() string { return "plan" }

// Snapshot freezes the fields an invoice prints.
func (p *Plan) Snapshot() PlanSnapshot {
	if p == nil {
		return PlanSnapshot{}
	}
	return PlanSnapshot{ID: p.ID, Name: p.Name, Price: p.Price, DefaultUsers: p.DefaultUsers}
}

type PlanSnapshot struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	DefaultUsers int             `json:"default_users"`
}
