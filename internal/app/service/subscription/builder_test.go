package subscription

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/fatflowers/console/internal/models"
	"github.com/fatflowers/console/pkg/types"
)

var (
	planA = &models.Plan{ID: "plan-a", Name: "Gold", Price: decimal.NewFromInt(1000), DefaultUsers: 5}
	planB = &models.Plan{ID: "plan-b", Name: "Starter", Price: decimal.NewFromInt(300), DefaultUsers: 0}
	cust  = &models.Customer{ID: "cust-1", CompanyName: "Acme Caterers", GSTType: types.GSTIntraState}
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestApplyPlan_NoResidueFromPreviousPlan(t *testing.T) {
	sel := ApplyPlan(Selection{}, planA)
	require.Equal(t, "Gold", sel.PlanName)
	require.Equal(t, 5, sel.Users)

	sel = ApplyPlan(sel, planB)
	require.Equal(t, Selection{PlanID: "plan-b", PlanName: "Starter", PerUserRate: decimal.NewFromInt(300), Users: 0}, sel)

	sel = ApplyPlan(Selection{PlanID: "ghost", PlanName: "Gold", PerUserRate: decimal.NewFromInt(1000), Users: 5}, nil)
	require.Equal(t, "ghost", sel.PlanID)
	require.Empty(t, sel.PlanName)
	require.True(t, sel.PerUserRate.IsZero())
	require.Zero(t, sel.Users)
}

func TestBuild_Defaults(t *testing.T) {
	start := date(2024, 1, 15)
	sub := Build(BuildInput{
		Plan:          planA,
		Customer:      cust,
		DiscountValue: decimal.NewFromInt(500),
		DiscountType:  types.DiscountAmount,
		Start:         &start,
		Now:           date(2024, 3, 1),
	})

	require.Equal(t, start, sub.Created)
	require.Equal(t, date(2025, 1, 15), sub.ExpiryDate)
	require.Equal(t, types.StatusActive, sub.Status)
	require.Equal(t, types.PaymentPending, sub.IsDrop)
	require.Equal(t, NoPaymentDetail, sub.PaymentDetail)
	require.Equal(t, "plan-a", sub.PlanID)
	require.Equal(t, "cust-1", sub.CustomerID)
	require.Equal(t, 5, sub.TotalUser)
	require.True(t, decimal.NewFromInt(4500).Equal(sub.PlanTotalPrice))
	require.True(t, decimal.NewFromInt(810).Equal(sub.TaxPrice))
	require.True(t, decimal.NewFromInt(5310).Equal(sub.TotalOrderValue()))
	require.Equal(t, "Gold", sub.PlanSnapshot.Data().Name)
	require.Equal(t, "Acme Caterers", sub.CustomerSnapshot.Data().CompanyName)
}

func TestBuild_UsersAndGSTOverrides(t *testing.T) {
	sub := Build(BuildInput{Plan: planA, Customer: cust, Users: 2, GSTType: types.GSTInterState, Now: date(2024, 1, 1)})
	require.Equal(t, 2, sub.TotalUser)
	require.Equal(t, types.GSTInterState, sub.GSTType)
	require.True(t, sub.HasIGST())
	require.True(t, sub.CGST.IsZero())

	// Without a plan the requested seat count is ignored.
	none := Build(BuildInput{Users: 9, Now: date(2024, 1, 1)})
	require.Zero(t, none.TotalUser)
	require.True(t, none.PlanTotalPrice.IsZero())
	require.Equal(t, date(2024, 1, 1), none.Created)
}

func TestBuild_ExplicitExpiry(t *testing.T) {
	start := date(2024, 1, 15)
	valid := date(2024, 7, 15)
	before := date(2023, 12, 31)

	require.Equal(t, valid, Build(BuildInput{Plan: planA, Start: &start, Expiry: &valid}).ExpiryDate)
	require.Equal(t, date(2025, 1, 15), Build(BuildInput{Plan: planA, Start: &start, Expiry: &before}).ExpiryDate)
	require.Equal(t, date(2025, 1, 15), Build(BuildInput{Plan: planA, Start: &start, Expiry: &time.Time{}}).ExpiryDate)
}
