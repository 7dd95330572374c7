package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fatflowers/console/internal/app/service/invoice"
)

type wordsResult struct {
	Amount int64  `json:"amount"`
	Words  string `json:"words"`
}

func newWordsCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "words AMOUNT",
		Short:   "Spell a whole rupee amount in the Indian numbering system",
		Example: "  billingctl words 123456",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.ParseInt(strings.ReplaceAll(args[0], ",", ""), 10, 64)
			if err != nil {
				return fmt.Errorf("amount must be a whole number: %w", err)
			}
			w, err := invoice.AmountInWords(n)
			if err != nil {
				return err
			}
			if root.output == outputJSON {
				return writeJSON(cmd.OutOrStdout(), wordsResult{Amount: n, Words: w})
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), w)
			return err
		},
	}
}
