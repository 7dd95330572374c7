package subscription

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/fatflowers/console/internal/app/service/billing"
	"github.com/fatflowers/console/internal/models"
	"github.com/fatflowers/console/pkg/types"
)

// NoPaymentDetail marks a subscription whose payment reference is not yet known.
const NoPaymentDetail = "-"

// Selection is the plan dependent part of a subscription form.
type Selection struct {
	PlanID      string          `json:"plan_id"`
	PlanName    string          `json:"plan_name"`
	PerUserRate decimal.Decimal `json:"per_user_rate"`
	Users       int             `json:"totaluser"`
}

// ApplyPlan points sel at plan. Every derived field is reset first, so an
// unknown plan (nil) leaves zero values and never the previous plan's.
func ApplyPlan(sel Selection, plan *models.Plan) Selection {
	next := Selection{PlanID: sel.PlanID, PerUserRate: decimal.Zero}
	if plan == nil {
		return next
	}
	next.PlanID = plan.ID
	next.PlanName = plan.Name
	next.PerUserRate = plan.Price
	next.Users = plan.DefaultUsers
	return next
}

type BuildInput struct {
	Plan     *models.Plan
	Customer *models.Customer
	// Users overrides the plan's default seat count when positive.
	Users         int
	DiscountValue decimal.Decimal
	DiscountType  types.DiscountType
	// GSTType overrides the customer's tax jurisdiction when set.
	GSTType types.GSTType
	Start   *time.Time
	Expiry  *time.Time
	Now     time.Time
}

// Selection resolves the plan and seat count of in.
func (in *BuildInput) Selection() Selection {
	sel := ApplyPlan(Selection{}, in.Plan)
	if in.Plan != nil && in.Users > 0 {
		sel.Users = in.Users
	}
	return sel
}

func (in *BuildInput) gstType() types.GSTType {
	if in.GSTType != "" {
		return types.ParseGSTType(string(in.GSTType))
	}
	if in.Customer != nil {
		return types.ParseGSTType(string(in.Customer.GSTType))
	}
	return types.GSTIntraState
}

// Quote prices in without building a record.
func (in *BuildInput) Quote() billing.Breakdown {
	sel := in.Selection()
	return billing.Calculate(billing.Input{
		PricePerUser:  sel.PerUserRate,
		Users:         sel.Users,
		DiscountValue: in.DiscountValue,
		DiscountType:  in.DiscountType,
		GSTType:       in.gstType(),
	})
}

// Build assembles an unsaved subscription: active, payment pending, money
// fields from the calculator and frozen plan and customer snapshots. Identity
// fields are left to the caller.
func Build(in BuildInput) *models.Subscription {
	sel := in.Selection()
	b := in.Quote()

	start := in.Now
	if in.Start != nil && !in.Start.IsZero() {
		start = *in.Start
	}

	sub := &models.Subscription{
		PlanID:         sel.PlanID,
		TotalUser:      b.Users,
		PerUserRate:    b.PricePerUser,
		BasePrice:      b.BasePrice,
		DiscountType:   types.ParseDiscountType(string(in.DiscountType)),
		DiscountValue:  in.DiscountValue,
		Discount:       b.Discount,
		PlanTotalPrice: b.SubTotal,
		CGST:           b.CGST,
		SGST:           b.SGST,
		IGST:           b.IGST,
		TaxPrice:       b.TotalTax,
		GSTType:        b.GSTType,
		Created:        start,
		ExpiryDate:     ResolveBillingEnd(start, in.Expiry),
		Status:         types.StatusActive,
		IsDrop:         types.PaymentPending,
		PaymentDetail:  NoPaymentDetail,
		PlanSnapshot:   datatypes.NewJSONType(in.Plan.Snapshot()),
	}
	if in.Customer != nil {
		sub.CustomerID = in.Customer.ID
		sub.CustomerSnapshot = datatypes.NewJSONType(in.Customer.Snapshot())
	}
	return sub
}
