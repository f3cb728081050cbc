// Package pricing derives cart totals. The cart view and the checkout view
// both call ComputeTotals so the two never disagree.
package pricing

import "github.com/shopspring/decimal"

var (
	TaxRate               = decimal.RequireFromString("0.10")
	FreeShippingThreshold = decimal.RequireFromString("100.00")
	FlatShippingFee       = decimal.RequireFromString("10.00")
)

// Line is the part of a cart line that pricing cares about.
type Line interface {
	Price() decimal.Decimal
	Qty() int
}

type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Shipping decimal.Decimal `json:"shipping"`
	Total    decimal.Decimal `json:"total"`
}

func LineTotal(l Line) decimal.Decimal {
	return l.Price().Mul(decimal.NewFromInt(int64(l.Qty())))
}

// ComputeTotals sums the lines exactly; nothing is rounded until Rounded is
// called for display.
func ComputeTotals[L Line](lines []L) Totals {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(LineTotal(l))
	}

	shipping := FlatShippingFee
	if subtotal.GreaterThan(FreeShippingThreshold) {
		shipping = decimal.Zero
	}
	tax := subtotal.Mul(TaxRate)

	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Shipping: shipping,
		Total:    subtotal.Add(tax).Add(shipping),
	}
}

// Rounded returns the totals rounded half away from zero to cents.
func (t Totals) Rounded() Totals {
	return Totals{
		Subtotal: t.Subtotal.Round(2),
		Tax:      t.Tax.Round(2),
		Shipping: t.Shipping.Round(2),
		Total:    t.Total.Round(2),
	}
}

func (t Totals) FreeShipping() bool {
	return t.Shipping.IsZero()
}
