package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/fatflowers/console/pkg/types"
)

// NotificationLog tracks an outgoing email from receipt to delivery.
type NotificationLog struct {
	ID        string                   `gorm:"column:id;type:uuid;primary_key" json:"id"`
	Kind      types.NotificationKind   `gorm:"column:kind;type:varchar(32);not null" json:"kind"`
	RefID     string                   `gorm:"column:ref_id;type:varchar(64);index;not null" json:"ref_id"`
	Recipient string                   `gorm:"column:recipient;type:varchar(255);not null" json:"recipient"`
	TraceID   string                   `gorm:"column:trace_id;type:varchar(128)" json:"trace_id"`
	Data      datatypes.JSONMap        `gorm:"column:data;type:jsonb" json:"data"`
	Error     string                   `gorm:"column:error;type:text" json:"error"`
	Status    types.NotificationStatus `gorm:"column:status;type:varchar(32);not null" json:"status"`
	CreatedAt time.Time                `json:"created_at"`
	UpdatedAt time.Time                `json:"updated_at"`
}

func (NotificationLog) TableName() string { return "notification_log" }
