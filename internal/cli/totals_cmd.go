package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/cargoline/backoffice/internal/core/domain"
)

func newTotalsCmd() *cobra.Command {
	var taxRate, discountRate string

	cmd := &cobra.Command{
		Use:   "totals QTYxPRICE...",
		Short: "Compute document totals for line items, e.g. 3x19.99 1x10.50",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			items := make([]domain.LineItem, 0, len(args))
			for i, arg := range args {
				li, err := parseItemArg(i, arg)
				if err != nil {
					return err
				}
				items = append(items, li)
			}
			tax, err := decimal.NewFromString(taxRate)
			if err != nil {
				return fmt.Errorf("--tax: %w", err)
			}
			discount, err := decimal.NewFromString(discountRate)
			if err != nil {
				return fmt.Errorf("--discount: %w", err)
			}

			t, err := domain.ComputeTotals(items, tax, discount)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, li := range t.Items {
				fmt.Fprintf(out, "%-10s %4d x %10s = %10s\n", li.Description, li.Quantity, li.UnitPrice.StringFixed(2), li.Total.StringFixed(2))
			}
			fmt.Fprintf(out, "subtotal  %s\n", t.Subtotal.StringFixed(2))
			fmt.Fprintf(out, "tax       %s\n", t.TaxAmount.StringFixed(2))
			fmt.Fprintf(out, "discount  %s\n", t.DiscountAmount.StringFixed(2))
			fmt.Fprintf(out, "total     %s\n", t.TotalAmount.StringFixed(2))
			return nil
		},
	}

	cmd.Flags().StringVar(&taxRate, "tax", "0", "tax rate in percent")
	cmd.Flags().StringVar(&discountRate, "discount", "0", "discount rate in percent")
	return cmd
}

func parseItemArg(i int, arg string) (domain.LineItem, error) {
	qty, price, ok := strings.Cut(arg, "x")
	if !ok {
		return domain.LineItem{}, fmt.Errorf("item %q: want QTYxPRICE", arg)
	}
	q, err := strconv.ParseInt(qty, 10, 64)
	if err != nil {
		return domain.LineItem{}, fmt.Errorf("item %q: quantity: %w", arg, err)
	}
	p, err := decimal.NewFromString(price)
	if err != nil {
		return domain.LineItem{}, fmt.Errorf("item %q: price: %w", arg, err)
	}
	return domain.LineItem{Description: fmt.Sprintf("item %d", i+1), Quantity: q, UnitPrice: p}, nil
}
