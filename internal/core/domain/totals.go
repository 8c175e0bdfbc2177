package domain

import "github.com/shopspring/decimal"

// Totals is the derived financial view of a set of line items.
type Totals struct {
	Items          []LineItem
	Subtotal       decimal.Decimal
	Tax            RateAmount
	Discount       RateAmount
	TaxAmount      decimal.Decimal
	DiscountAmount decimal.Decimal
	TotalAmount    decimal.Decimal
}

// ComputeTotals derives item totals, subtotal, tax, discount and grand total
// from percentage rates. Every intermediate value is rounded to cents.
func ComputeTotals(items []LineItem, taxRate, discountRate decimal.Decimal) (Totals, error) {
	return ComputeAdjustedTotals(items, RateOf(taxRate), RateOf(discountRate))
}

// ComputeAdjustedTotals is ComputeTotals for adjustments that may carry a
// fixed amount instead of a rate. The input slice is not modified.
func ComputeAdjustedTotals(items []LineItem, tax, discount Adjustment) (Totals, error) {
	if len(items) == 0 {
		return Totals{}, NewValidationError("items", "must not be empty")
	}
	for i, li := range items {
		if err := li.validate(i); err != nil {
			return Totals{}, err
		}
	}
	if err := tax.validate("tax"); err != nil {
		return Totals{}, err
	}
	if err := discount.validate("discount"); err != nil {
		return Totals{}, err
	}

	out := make([]LineItem, len(items))
	subtotal := decimal.Zero
	for i, li := range items {
		li.Total = Round2(li.UnitPrice.Mul(decimal.NewFromInt(li.Quantity)))
		out[i] = li
		subtotal = subtotal.Add(li.Total)
	}
	subtotal = Round2(subtotal)

	t := tax.resolve(subtotal)
	d := discount.resolve(subtotal)

	return Totals{
		Items:          out,
		Subtotal:       subtotal,
		Tax:            t,
		Discount:       d,
		TaxAmount:      t.Amount,
		DiscountAmount: d.Amount,
		TotalAmount:    Round2(subtotal.Add(t.Amount).Sub(d.Amount)),
	}, nil
}
