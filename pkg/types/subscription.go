package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// Wire codes shared by every two-valued flag exchanged with the console.
const (
	CodeYes = "Y"
	CodeNo  = "N"
)

func parseYesNo(s string) (bool, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case CodeYes:
		return true, nil
	case CodeNo:
		return false, nil
	default:
		return false, fmt.Errorf("invalid flag code %q, want %q or %q", s, CodeYes, CodeNo)
	}
}

func yesNo(b bool) string {
	if b {
		return CodeYes
	}
	return CodeNo
}

func scanYesNo(src any) (bool, error) {
	switch v := src.(type) {
	case nil:
		return false, nil
	case string:
		return parseYesNo(v)
	case []byte:
		return parseYesNo(string(v))
	default:
		return false, fmt.Errorf("unsupported flag source %T", src)
	}
}

// ActiveStatus is the active/inactive switch of plans, tenants and subscriptions.
// It is stored and transferred as "Y"/"N".
type ActiveStatus int

const (
	StatusInactive ActiveStatus = iota
	StatusActive
)

func ParseActiveStatus(code string) (ActiveStatus, error) {
	ok, err := parseYesNo(code)
	if err != nil {
		return StatusInactive, err
	}
	if ok {
		return StatusActive, nil
	}
	return StatusInactive, nil
}

func (s ActiveStatus) Code() string { return yesNo(s == StatusActive) }

func (s ActiveStatus) String() string {
	if s == StatusActive {
		return "active"
	}
	return "inactive"
}

func (s ActiveStatus) MarshalJSON() ([]byte, error) { return json.Marshal(s.Code()) }

func (s *ActiveStatus) UnmarshalJSON(b []byte) error {
	var code string
	if err := json.Unmarshal(b, &code); err != nil {
		return err
	}
	v, err := ParseActiveStatus(code)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

func (s ActiveStatus) Value() (driver.Value, error) { return s.Code(), nil }

func (s *ActiveStatus) Scan(src any) error {
	ok, err := scanYesNo(src)
	if err != nil {
		return err
	}
	*s = StatusInactive
	if ok {
		*s = StatusActive
	}
	return nil
}

// PaymentStatus is the paid/pending flag of a subscription ("isdrop" on the wire).
type PaymentStatus int

const (
	PaymentPending PaymentStatus = iota
	PaymentPaid
)

func ParsePaymentStatus(code string) (PaymentStatus, error) {
	ok, err := parseYesNo(code)
	if err != nil {
		return PaymentPending, err
	}
	if ok {
		return PaymentPaid, nil
	}
	return PaymentPending, nil
}

func (s PaymentStatus) Code() string { return yesNo(s == PaymentPaid) }

func (s PaymentStatus) String() string {
	if s == PaymentPaid {
		return "paid"
	}
	return "pending"
}

func (s PaymentStatus) MarshalJSON() ([]byte, error) { return json.Marshal(s.Code()) }

func (s *PaymentStatus) UnmarshalJSON(b []byte) error {
	var code string
	if err := json.Unmarshal(b, &code); err != nil {
		return err
	}
	v, err := ParsePaymentStatus(code)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

func (s PaymentStatus) Value() (driver.Value, error) { return s.Code(), nil }

func (s *PaymentStatus) Scan(src any) error {
	ok, err := scanYesNo(src)
	if err != nil {
		return err
	}
	*s = PaymentPending
	if ok {
		*s = PaymentPaid
	}
	return nil
}

type SubscriptionChangeReason string

const (
	SubscriptionChangeReasonCreate  SubscriptionChangeReason = "create"
	SubscriptionChangeReasonUpdate  SubscriptionChangeReason = "update"
	SubscriptionChangeReasonStatus  SubscriptionChangeReason = "status"
	SubscriptionChangeReasonPayment SubscriptionChangeReason = "payment"
)

// DisplayStatus is the status shown to operators. Expired is derived from the
// billing end date and is never stored.
type DisplayStatus string

const (
	DisplayStatusActive   DisplayStatus = "Active"
	DisplayStatusInactive DisplayStatus = "Inactive"
	DisplayStatusExpired  DisplayStatus = "Expired"
)
