package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/fatflowers/console/internal/app/service/billing"
	"github.com/fatflowers/console/internal/app/service/invoice"
	"github.com/fatflowers/console/pkg/types"
)

type quoteFlags struct {
	rate         string
	users        string
	discount     string
	discountType string
	gstType      string
}

func (f *quoteFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.rate, "rate", "0", "price per user")
	cmd.Flags().StringVar(&f.users, "users", "1", "number of users")
	cmd.Flags().StringVar(&f.discount, "discount", "0", "discount value")
	cmd.Flags().StringVar(&f.discountType, "discount-type", string(types.DiscountAmount), "Amount or Percent")
	cmd.Flags().StringVar(&f.gstType, "gst-type", string(types.GSTIntraState), "INTRA (CGST+SGST) or INTER (IGST)")
}

// input reads the flags the way the subscription form does: anything that is
// not a number counts as zero.
func (f *quoteFlags) input() billing.Input {
	return billing.Input{
		PricePerUser:  billing.CoerceNumber(f.rate),
		Users:         billing.CoerceInt(f.users),
		DiscountValue: billing.CoerceNumber(f.discount),
		DiscountType:  types.ParseDiscountType(f.discountType),
		GSTType:       types.ParseGSTType(f.gstType),
	}
}

func newQuoteCommand(root *rootOptions) *cobra.Command {
	f := &quoteFlags{}
	cmd := &cobra.Command{
		Use:     "quote",
		Short:   "Price a subscription form",
		Example: "  billingctl quote --rate 1200 --users 5 --discount 10 --discount-type Percent --gst-type INTER",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b := billing.Calculate(f.input())
			if root.output == outputJSON {
				return writeJSON(cmd.OutOrStdout(), b)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', tabwriter.AlignRight)
			rows := [][2]string{
				{"Users", fmt.Sprint(b.Users)},
				{"Per user", invoice.FormatMoney(b.PricePerUser)},
				{invoice.LabelSubTotal, invoice.FormatMoney(b.BasePrice)},
				{invoice.LabelDiscount, invoice.FormatMoney(b.Discount.Neg())},
			}
			if b.GSTType.IsInterState() {
				rows = append(rows, [2]string{"IGST", invoice.FormatMoney(b.IGST)})
			} else {
				rows = append(rows,
					[2]string{"CGST", invoice.FormatMoney(b.CGST)},
					[2]string{"SGST", invoice.FormatMoney(b.SGST)},
				)
			}
			rows = append(rows,
				[2]string{invoice.LabelTotalTax, invoice.FormatMoney(b.TotalTax)},
				[2]string{invoice.LabelTotalOrderValue, invoice.FormatMoney(decimal.NewFromInt(b.TotalOrderValue))},
			)
			for _, r := range rows {
				fmt.Fprintf(tw, "%s\t%s\t\n", r[0], r[1])
			}
			return tw.Flush()
		},
	}
	f.register(cmd)
	return cmd
}
