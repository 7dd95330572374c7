package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/fatflowers/console/internal/app/service/invoice"
	"github.com/fatflowers/console/internal/app/service/subscription"
	"github.com/fatflowers/console/internal/models"
	"github.com/fatflowers/console/pkg/config"
)

type invoiceFlags struct {
	quoteFlags
	orderID  string
	plan     string
	company  string
	email    string
	address  string
	gstin    string
	start    string
	expiry   string
	outDir   string
	file     string
	noConfig bool
}

const dateLayout = "2006-01-02"

func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}
	return &t, nil
}

// load reads a subscription as returned by the subscription get endpoint,
// either bare or inside the response envelope.
func load(path string) (*models.Subscription, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &env); err == nil && len(env.Data) > 0 && string(env.Data) != "null" {
		body = env.Data
	}
	var sub models.Subscription
	if err := json.Unmarshal(body, &sub); err != nil {
		return nil, fmt.Errorf("failed to decode subscription: %w", err)
	}
	if sub.ID == "" && sub.OrderID == "" {
		return nil, fmt.Errorf("%s: subscription has neither id nor order_id", path)
	}
	return &sub, nil
}

// build prices the flags exactly like the console does on create.
func (f *invoiceFlags) build(now time.Time) (*models.Subscription, *models.Plan, *models.Customer, error) {
	start, err := parseDate(f.start)
	if err != nil {
		return nil, nil, nil, err
	}
	expiry, err := parseDate(f.expiry)
	if err != nil {
		return nil, nil, nil, err
	}

	in := f.input()
	plan := &models.Plan{Name: f.plan, Price: in.PricePerUser, DefaultUsers: in.Users}
	customer := &models.Customer{
		CompanyName: f.company,
		Email:       f.email,
		Address:     f.address,
		GSTIN:       f.gstin,
		GSTType:     in.GSTType,
	}
	sub := subscription.Build(subscription.BuildInput{
		Plan:          plan,
		Customer:      customer,
		Users:         in.Users,
		DiscountValue: in.DiscountValue,
		DiscountType:  in.DiscountType,
		GSTType:       in.GSTType,
		Start:         start,
		Expiry:        expiry,
		Now:           now,
	})
	sub.OrderID = f.orderID
	sub.CreatedAt = now
	return sub, plan, customer, nil
}

func newInvoiceCommand(root *rootOptions) *cobra.Command {
	f := &invoiceFlags{}
	cmd := &cobra.Command{
		Use:   "invoice",
		Short: "Render an invoice PDF from a subscription form",
		Example: `  billingctl invoice --order-id ORD-20240101-0001 --plan Gold --rate 1200 --users 5 \
    --company "Acme Pvt Ltd" --gstin 29ABCDE1234F1Z5 --out ./invoices`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				sub      *models.Subscription
				plan     *models.Plan
				customer *models.Customer
				err      error
			)
			if f.file != "" {
				// Stored snapshots carry the plan and customer.
				sub, err = load(f.file)
			} else {
				sub, plan, customer, err = f.build(time.Now())
			}
			if err != nil {
				return err
			}
			v, err := invoice.BuildView(sub, plan, customer)
			if err != nil {
				return err
			}
			if !f.noConfig {
				cfg, err := config.New()
				if err != nil {
					return err
				}
				v.Seller = invoice.SellerParty(cfg.Billing.Seller)
			}

			if err := os.MkdirAll(f.outDir, 0o755); err != nil {
				return fmt.Errorf("failed to create output dir: %w", err)
			}
			path := filepath.Join(f.outDir, v.FileName+".pdf")
			out, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", path, err)
			}
			defer out.Close()
			if err := invoice.WritePDF(out, v); err != nil {
				return err
			}
			if err := out.Close(); err != nil {
				return err
			}

			if root.output == outputJSON {
				return writeJSON(cmd.OutOrStdout(), map[string]any{"file": path, "invoice": v})
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", path, invoice.FormatMoney(decimal.NewFromInt(v.TotalOrderValue)), v.AmountInWords)
			return err
		},
	}
	f.register(cmd)
	cmd.Flags().StringVar(&f.orderID, "order-id", "DRAFT", "order id printed on the invoice")
	cmd.Flags().StringVar(&f.plan, "plan", "Subscription", "plan name")
	cmd.Flags().StringVar(&f.company, "company", "", "bill-to company name")
	cmd.Flags().StringVar(&f.email, "email", "", "bill-to email")
	cmd.Flags().StringVar(&f.address, "address", "", "bill-to address")
	cmd.Flags().StringVar(&f.gstin, "gstin", "", "bill-to GSTIN")
	cmd.Flags().StringVar(&f.start, "start", "", "billing period start, YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&f.expiry, "expiry", "", "billing period end, YYYY-MM-DD (default one year)")
	cmd.Flags().StringVar(&f.outDir, "out", ".", "directory the PDF is written to")
	cmd.Flags().StringVarP(&f.file, "file", "f", "", "render a saved subscription JSON instead of pricing flags")
	cmd.Flags().BoolVar(&f.noConfig, "no-config", false, "leave seller details empty instead of reading config")
	return cmd
}
