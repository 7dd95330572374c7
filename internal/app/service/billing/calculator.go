// Package billing computes subscription prices. Everything here is pure so the
// API, the CLI and the invoice renderer share one set of numbers.
package billing

import (
	"github.com/shopspring/decimal"

	"github.com/fatflowers/console/pkg/types"
)

var (
	hundred = decimal.NewFromInt(100)

	// HalfGSTRate is charged twice (CGST and SGST) on intra-state sales.
	HalfGSTRate = decimal.RequireFromString("0.09")
	// FullGSTRate is charged once as IGST on inter-state sales.
	FullGSTRate = decimal.RequireFromString("0.18")
)

// moneyPlaces is the precision every stored money field is rounded to.
const moneyPlaces = 2

type Input struct {
	PricePerUser  decimal.Decimal
	Users         int
	DiscountValue decimal.Decimal
	DiscountType  types.DiscountType
	GSTType       types.GSTType
}

// Breakdown is the priced result. SubTotal is stored as plantotalprice and
// TotalTax as taxprice.
type Breakdown struct {
	PricePerUser decimal.Decimal `json:"per_user_rate"`
	Users        int             `json:"totaluser"`
	BasePrice    decimal.Decimal `json:"base_price"`
	Discount     decimal.Decimal `json:"discount"`
	SubTotal     decimal.Decimal `json:"plantotalprice"`
	CGST         decimal.Decimal `json:"cgst"`
	SGST         decimal.Decimal `json:"sgst"`
	IGST         decimal.Decimal `json:"igst"`
	TotalTax     decimal.Decimal `json:"taxprice"`
	GrandTotal   decimal.Decimal `json:"grand_total"`
	// TotalOrderValue is GrandTotal rounded to whole rupees for display.
	TotalOrderValue int64         `json:"total_order_value"`
	GSTType         types.GSTType `json:"gst_type"`
}

// Calculate prices a subscription. Negative prices and user counts count as
// zero and the discount is clamped to [0, base price].
func Calculate(in Input) Breakdown {
	price := nonNegative(in.PricePerUser).Round(moneyPlaces)
	users := in.Users
	if users < 0 {
		users = 0
	}
	base := price.Mul(decimal.NewFromInt(int64(users))).Round(moneyPlaces)
	discount := Discount(base, in.DiscountValue, in.DiscountType)
	subTotal := base.Sub(discount)

	gst := types.ParseGSTType(string(in.GSTType))
	b := Breakdown{
		PricePerUser: price,
		Users:        users,
		BasePrice:    base,
		Discount:     discount,
		SubTotal:     subTotal,
		CGST:         decimal.Zero,
		SGST:         decimal.Zero,
		IGST:         decimal.Zero,
		GSTType:      gst,
	}
	if gst.IsInterState() {
		b.IGST = subTotal.Mul(FullGSTRate).Round(moneyPlaces)
	} else {
		b.CGST = subTotal.Mul(HalfGSTRate).Round(moneyPlaces)
		b.SGST = b.CGST
	}
	b.TotalTax = b.CGST.Add(b.SGST).Add(b.IGST)
	b.GrandTotal = subTotal.Add(b.TotalTax)
	b.TotalOrderValue = RoundRupees(b.GrandTotal)
	return b
}

// Discount converts a discount as entered into an absolute amount within [0, base].
func Discount(base, value decimal.Decimal, kind types.DiscountType) decimal.Decimal {
	var d decimal.Decimal
	if types.ParseDiscountType(string(kind)) == types.DiscountPercent {
		d = base.Mul(value).Div(hundred)
	} else {
		d = value
	}
	d = d.Round(moneyPlaces)
	if d.IsNegative() {
		return decimal.Zero
	}
	if d.GreaterThan(base) {
		return base
	}
	return d
}

// RoundRupees rounds half away from zero to a whole number.
func RoundRupees(d decimal.Decimal) int64 {
	return d.Round(0).IntPart()
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
