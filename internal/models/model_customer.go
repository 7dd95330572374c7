package models

import (
	"time"

	"github.com/fatflowers/console/pkg/types"
)

// Customer is a tenant company. It supplies the billing party on invoices and
// owns a storefront served on Domain.
type Customer struct {
	ID          string             `gorm:"column:id;type:uuid;primary_key" json:"id"`
	CompanyName string             `gorm:"column:company_name;type:varchar(255);not null" json:"company_name"`
	ContactName string             `gorm:"column:contact_name;type:varchar(255)" json:"contact_name"`
	Email       string             `gorm:"column:email;type:varchar(255);not null" json:"email"`
	MobileNo    string             `gorm:"column:mobile_no;type:varchar(32)" json:"mobile_no"`
	Address     string             `gorm:"column:address;type:text" json:"address"`
	GSTIN       string             `gorm:"column:gstin;type:varchar(15)" json:"gstin"`
	GSTType     types.GSTType      `gorm:"column:gst_type;type:varchar(8);not null;default:INTRA" json:"gst_type"`
	Domain      string             `gorm:"column:domain;type:varchar(255);not null;uniqueIndex" json:"domain"`
	Theme       string             `gorm:"column:theme;type:varchar(64)" json:"theme"`
	Logo        string             `gorm:"column:logo;type:varchar(512)" json:"logo"`
	Approved    bool               `gorm:"column:approved;not null;default:false" json:"approved"`
	Status      types.ActiveStatus `gorm:"column:status;type:varchar(1);not null" json:"status"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

func (Customer) TableName() string { return "customer" }

func (c *Customer) Snapshot() CustomerSnapshot {
	if c == nil {
		return CustomerSnapshot{}
	}
	return CustomerSnapshot{
		ID:          c.ID,
		CompanyName: c.CompanyName,
		ContactName: c.ContactName,
		Email:       c.Email,
		MobileNo:    c.MobileNo,
		Address:     c.Address,
		GSTIN:       c.GSTIN,
		GSTType:     c.GSTType,
	}
}

type CustomerSnapshot struct {
	ID          string        `json:"id"`
	CompanyName string        `json:"company_name"`
	ContactName string        `json:"contact_name"`
	Email       string        `json:"email"`
	MobileNo    string        `json:"mobile_no"`
	Address     string        `json:"address"`
	GSTIN       string        `json:"gstin"`
	GSTType     types.GSTType `json:"gst_type"`
}
