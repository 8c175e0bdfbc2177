package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

const (
	moneyPlaces = 2
	// MaxNotesLength bounds the free-text notes on a document.
	MaxNotesLength = 1000
)

var hundred = decimal.NewFromInt(100)

// Round2 rounds half away from zero to two decimal places, which is half-up
// for every non-negative amount the engine produces.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(moneyPlaces)
}

// hasAtMostCents reports whether d carries no more than two fractional digits.
func hasAtMostCents(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(moneyPlaces))
}

// LineItem is one billed row of a document.
type LineItem struct {
	Description string          `json:"description"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Total       decimal.Decimal `json:"total"`
}

func (li LineItem) validate(i int) error {
	field := func(name string) string { return fmt.Sprintf("items[%d].%s", i, name) }

	if li.Description == "" {
		return NewValidationError(field("description"), "must not be empty")
	}
	if li.Quantity < 1 {
		return NewValidationError(field("quantity"), "must be a positive integer")
	}
	if li.UnitPrice.IsNegative() {
		return NewValidationError(field("unit_price"), "must not be negative")
	}
	if !hasAtMostCents(li.UnitPrice) {
		return NewValidationError(field("unit_price"), "must have at most 2 fractional digits")
	}
	return nil
}

// Adjustment is a tax or discount as supplied by a caller: a percentage rate
// or a fixed amount. Setting both is rejected.
type Adjustment struct {
	Rate   *decimal.Decimal
	Amount *decimal.Decimal
}

// RateOf builds a rate-driven adjustment.
func RateOf(rate decimal.Decimal) Adjustment {
	return Adjustment{Rate: &rate}
}

// AmountOf builds an adjustment with a directly supplied amount.
func AmountOf(amount decimal.Decimal) Adjustment {
	return Adjustment{Amount: &amount}
}

func (a Adjustment) validate(field string) error {
	if a.Rate != nil && a.Amount != nil {
		return NewValidationError(field, "rate and amount are mutually exclusive")
	}
	if a.Rate != nil && (a.Rate.IsNegative() || a.Rate.GreaterThan(hundred)) {
		return NewValidationError(field+".rate", "must be between 0 and 100")
	}
	if a.Amount != nil && a.Amount.IsNegative() {
		return NewValidationError(field+".amount", "must not be negative")
	}
	return nil
}

// resolve applies the adjustment to a subtotal.
func (a Adjustment) resolve(subtotal decimal.Decimal) RateAmount {
	if a.Amount != nil {
		return RateAmount{Amount: Round2(*a.Amount), Fixed: true}
	}
	rate := decimal.Zero
	if a.Rate != nil {
		rate = *a.Rate
	}
	return RateAmount{
		Rate:   rate,
		Amount: Round2(subtotal.Mul(rate).Div(hundred)),
	}
}

// RateAmount is a resolved tax or discount. Fixed marks an amount that was
// supplied directly, in which case Rate is unused.
type RateAmount struct {
	Rate   decimal.Decimal `json:"rate"`
	Amount decimal.Decimal `json:"amount"`
	Fixed  bool            `json:"fixed,omitempty"`
}

// Adjustment returns the input that produced r, so totals can be recomputed
// after the items change.
func (r RateAmount) Adjustment() Adjustment {
	if r.Fixed {
		return AmountOf(r.Amount)
	}
	return RateOf(r.Rate)
}
