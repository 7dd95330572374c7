package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/fatflowers/console/pkg/types"
)

// SubscriptionLog records changes to subscriptions for troubleshooting.
type SubscriptionLog struct {
	ID             string                         `gorm:"column:id;type:uuid;primary_key" json:"id"`
	SubscriptionID string                         `gorm:"column:subscription_id;type:uuid;index;not null" json:"subscription_id"`
	Reason         types.SubscriptionChangeReason `gorm:"column:reason;type:varchar(64);not null" json:"reason"`
	// Before is null for creations.
	Before datatypes.JSONType[*Subscription] `gorm:"column:before;type:jsonb" json:"before"`
	After  datatypes.JSONType[*Subscription] `gorm:"column:after;type:jsonb" json:"after"`
	// Extra carries the trace id of the request that made the change.
	Extra     datatypes.JSONMap `gorm:"column:extra;type:jsonb" json:"extra"`
	CreatedAt time.Time         `json:"created_at"`
}

func (SubscriptionLog) TableName() string {
	return "subscription_log"
}
