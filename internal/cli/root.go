// Package cli implements billingctl, an offline companion to the console for
// pricing checks and invoice previews.
package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

const (
	outputText = "text"
	outputJSON = "json"
)

type rootOptions struct {
	output string
}

// NewRootCommand builds the billingctl command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "billingctl",
		Short: "Price subscriptions and render invoices without a running console",
		Long: `billingctl runs the console's billing rules locally. It quotes a
subscription form, spells amounts the way invoices do and renders an
invoice PDF from flags. Seller details come from the same config file and
APP_* variables as the API server.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.output != outputText && opts.output != outputJSON {
				return fmt.Errorf("unknown output format %q, want %s or %s", opts.output, outputText, outputJSON)
			}
			return nil
		},
	}
	cmd.PersistentFlags().StringVarP(&opts.output, "output", "o", outputText, "output format: text or json")

	cmd.AddCommand(
		newQuoteCommand(opts),
		newWordsCommand(opts),
		newInvoiceCommand(opts),
	)
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
