package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fatflowers/console/pkg/types"
)

// SubscriptionDailySnapshot is a per-day copy of each subscription's derived
// state, written by the nightly job for analytics.
type SubscriptionDailySnapshot struct {
	ID             string              `gorm:"column:id;type:uuid;primary_key" json:"id"`
	SubscriptionID string              `gorm:"column:subscription_id;type:uuid;not null;uniqueIndex:idx_sub_snapshot_date,priority:1" json:"subscription_id"`
	CustomerID     string              `gorm:"column:c_id;type:uuid;not null;index" json:"c_id"`
	DisplayStatus  types.DisplayStatus `gorm:"column:display_status;type:varchar(16);not null" json:"display_status"`
	IsDrop         types.PaymentStatus `gorm:"column:isdrop;type:varchar(1);not null" json:"isdrop"`
	OrderValue     decimal.Decimal     `gorm:"column:order_value;type:numeric(14,2);not null" json:"order_value"`
	ExpiryDate     time.Time           `gorm:"column:expiry_date" json:"expiry_date"`
	// SnapshotDate is YYYY-MM-DD in the billing timezone.
	SnapshotDate string    `gorm:"column:snapshot_date;type:varchar(10);not null;uniqueIndex:idx_sub_snapshot_date,priority:2" json:"snapshot_date"`
	CreatedAt    time.Time `json:"created_at"`
}

func (SubscriptionDailySnapshot) TableName() string {
	return "subscription_daily_snapshot"
}
