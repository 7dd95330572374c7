package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/fatflowers/console/pkg/types"
)

// Subscription is a billed plan purchase, and doubles as the invoice record.
// PlanTotalPrice is the subtotal after discount and before tax. Discount is
// always stored as an absolute amount.
type Subscription struct {
	ID         string `gorm:"column:id;type:uuid;primary_key" json:"id"`
	OrderID    string `gorm:"column:order_id;type:varchar(32);not null;uniqueIndex" json:"order_id"`
	PlanID     string `gorm:"column:plan_id;type:uuid;not null;index" json:"plan_id"`
	CustomerID string `gorm:"column:c_id;type:uuid;not null;index" json:"c_id"`

	TotalUser   int             `gorm:"column:totaluser;not null" json:"totaluser"`
	PerUserRate decimal.Decimal `gorm:"column:per_user_rate;type:numeric(14,2);not null" json:"per_user_rate"`
	BasePrice   decimal.Decimal `gorm:"column:base_price;type:numeric(14,2);not null" json:"base_price"`
	// DiscountType and DiscountValue keep the discount as it was entered.
	DiscountType   types.DiscountType `gorm:"column:discount_type;type:varchar(16);not null" json:"discount_type"`
	DiscountValue  decimal.Decimal    `gorm:"column:discount_value;type:numeric(14,2);not null" json:"discount_value"`
	Discount       decimal.Decimal    `gorm:"column:discount;type:numeric(14,2);not null" json:"discount"`
	PlanTotalPrice decimal.Decimal    `gorm:"column:plantotalprice;type:numeric(14,2);not null" json:"plantotalprice"`
	CGST           decimal.Decimal    `gorm:"column:cgst;type:numeric(14,2);not null" json:"cgst"`
	SGST           decimal.Decimal    `gorm:"column:sgst;type:numeric(14,2);not null" json:"sgst"`
	IGST           decimal.Decimal    `gorm:"column:igst;type:numeric(14,2);not null" json:"igst"`
	TaxPrice       decimal.Decimal    `gorm:"column:taxprice;type:numeric(14,2);not null" json:"taxprice"`
	GSTType        types.GSTType      `gorm:"column:gst_type;type:varchar(8);not null" json:"gst_type"`

	// Created is the billing period start, ExpiryDate its end.
	Created     time.Time  `gorm:"column:created;not null;index" json:"created"`
	ExpiryDate  time.Time  `gorm:"column:expiry_date;not null;index" json:"expiry_date"`
	PaymentDate *time.Time `gorm:"column:payment_date;default:null" json:"payment_date"`

	Status        types.ActiveStatus  `gorm:"column:status;type:varchar(1);not null" json:"status"`
	IsDrop        types.PaymentStatus `gorm:"column:isdrop;type:varchar(1);not null" json:"isdrop"`
	PaymentDetail string              `gorm:"column:payment_detail;type:varchar(255)" json:"payment_detail"`

	PlanSnapshot     datatypes.JSONType[PlanSnapshot]     `gorm:"column:plan_snapshot;type:jsonb" json:"plan_snapshot"`
	CustomerSnapshot datatypes.JSONType[CustomerSnapshot] `gorm:"column:customer_snapshot;type:jsonb" json:"customer_snapshot"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Subscription) TableName() string { return "subscription" }

// HasIGST reports whether the invoice carries the inter-state tax line.
func (s *Subscription) HasIGST() bool {
	return s != nil && s.IGST.IsPositive()
}

// TotalOrderValue is the payable amount before rounding.
func (s *Subscription) TotalOrderValue() decimal.Decimal {
	if s == nil {
		return decimal.Zero
	}
	return s.PlanTotalPrice.Add(s.TaxPrice)
}

// InvoiceFileName is the export name without extension.
func (s *Subscription) InvoiceFileName() string {
	if s.OrderID != "" {
		return "invoice" + s.OrderID
	}
	return "invoice" + s.ID
}
