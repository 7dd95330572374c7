package invoice

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fatflowers/console/internal/app/service/billing"
	"github.com/fatflowers/console/internal/models"
	"github.com/fatflowers/console/pkg/config"
	"github.com/fatflowers/console/pkg/types"
)

const (
	LabelSubTotal        = "Sub Total"
	LabelDiscount        = "Discount"
	LabelTotalTax        = "Total Tax"
	LabelTotalOrderValue = "Total Order Value"
)

// Line is one row of the totals table.
type Line struct {
	Label     string          `json:"label"`
	Amount    decimal.Decimal `json:"amount"`
	Highlight bool            `json:"highlight,omitempty"`
}

// Party is a seller or buyer block.
type Party struct {
	Name    string `json:"name"`
	Contact string `json:"contact,omitempty"`
	Address string `json:"address,omitempty"`
	GSTIN   string `json:"gstin,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

// Item is the single billed plan row.
type Item struct {
	PlanName    string          `json:"plan_name"`
	Users       int             `json:"totaluser"`
	PerUserRate decimal.Decimal `json:"per_user_rate"`
	Amount      decimal.Decimal `json:"amount"`
}

// View is everything an invoice prints, independent of the output format.
type View struct {
	SubscriptionID  string              `json:"id"`
	OrderID         string              `json:"order_id"`
	FileName        string              `json:"file_name"`
	InvoiceDate     time.Time           `json:"invoice_date"`
	PeriodStart     time.Time           `json:"period_start"`
	PeriodEnd       time.Time           `json:"period_end"`
	Seller          Party               `json:"seller"`
	BillTo          Party               `json:"bill_to"`
	GSTType         types.GSTType       `json:"gst_type"`
	Item            Item                `json:"item"`
	Lines           []Line              `json:"lines"`
	TotalOrderValue int64               `json:"total_order_value"`
	AmountInWords   string              `json:"amount_in_words"`
	Payment         types.PaymentStatus `json:"isdrop"`
	PaymentDate     *time.Time          `json:"payment_date"`
	PaymentDetail   string              `json:"payment_detail"`
}

// BuildView assembles the invoice for sub. Plan and customer details come from
// the snapshots taken when the subscription was saved, then from the live
// records, then stay empty. plan and customer may be nil.
func BuildView(sub *models.Subscription, plan *models.Plan, customer *models.Customer) (*View, error) {
	if sub == nil {
		return nil, fmt.Errorf("build invoice view: nil subscription")
	}
	total := billing.RoundRupees(sub.TotalOrderValue())
	words, err := AmountInWords(total)
	if err != nil {
		return nil, fmt.Errorf("build invoice view %s: %w", sub.ID, err)
	}

	ps := sub.PlanSnapshot.Data()
	if ps.Name == "" {
		ps = plan.Snapshot()
	}
	cs := sub.CustomerSnapshot.Data()
	if cs.CompanyName == "" {
		cs = customer.Snapshot()
	}

	return &View{
		SubscriptionID: sub.ID,
		OrderID:        sub.OrderID,
		FileName:       sub.InvoiceFileName(),
		InvoiceDate:    sub.Created,
		PeriodStart:    sub.Created,
		PeriodEnd:      sub.ExpiryDate,
		BillTo: Party{
			Name:    cs.CompanyName,
			Contact: cs.ContactName,
			Address: cs.Address,
			GSTIN:   cs.GSTIN,
			Email:   cs.Email,
			Phone:   cs.MobileNo,
		},
		GSTType: sub.GSTType,
		Item: Item{
			PlanName:    ps.Name,
			Users:       sub.TotalUser,
			PerUserRate: sub.PerUserRate,
			Amount:      sub.BasePrice,
		},
		Lines:           lines(sub),
		TotalOrderValue: total,
		AmountInWords:   words,
		Payment:         sub.IsDrop,
		PaymentDate:     sub.PaymentDate,
		PaymentDetail:   sub.PaymentDetail,
	}, nil
}

func lines(sub *models.Subscription) []Line {
	out := []Line{
		{Label: LabelSubTotal, Amount: sub.BasePrice},
		{Label: LabelDiscount, Amount: sub.Discount.Neg()},
	}
	if sub.HasIGST() {
		out = append(out, Line{Label: taxLabel("IGST", billing.FullGSTRate), Amount: sub.IGST})
	} else {
		out = append(out,
			Line{Label: taxLabel("CGST", billing.HalfGSTRate), Amount: sub.CGST},
			Line{Label: taxLabel("SGST", billing.HalfGSTRate), Amount: sub.SGST},
		)
	}
	return append(out,
		Line{Label: LabelTotalTax, Amount: sub.TaxPrice},
		Line{Label: LabelTotalOrderValue, Amount: decimal.NewFromInt(billing.RoundRupees(sub.TotalOrderValue())), Highlight: true},
	)
}

func taxLabel(name string, rate decimal.Decimal) string {
	return fmt.Sprintf("%s (%s%%)", name, rate.Shift(2).String())
}

// SellerParty converts the configured seller block.
func SellerParty(s config.SellerConfig) Party {
	return Party{Name: s.Name, Address: s.Address, GSTIN: s.GSTIN, Email: s.Email, Phone: s.Phone}
}
