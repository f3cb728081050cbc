package checkout

import (
	"github.com/Skotchmaster/storefront/internal/cart"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/pricing"
	"github.com/shopspring/decimal"
)

type ReviewLine struct {
	cart.Line
	LineTotal decimal.Decimal `json:"line_total"`
}

// ReviewSummary is what the shopper confirms before placing the order.
type ReviewSummary struct {
	Items  []ReviewLine   `json:"items"`
	Totals pricing.Totals `json:"totals"`
	ShipTo models.Address `json:"ship_to"`
	Card   string         `json:"card"`
	Notes  string         `json:"notes,omitempty"`
}

// Review builds the summary from the cart as it is right now, so changes made
// to the cart elsewhere are always reflected.
func (s *Session) Review(store *cart.Store) (ReviewSummary, error) {
	if s.step != StepReview {
		return ReviewSummary{}, ErrNotReviewed
	}

	lines := store.Lines()
	items := make([]ReviewLine, 0, len(lines))
	for _, l := range lines {
		items = append(items, ReviewLine{Line: l, LineTotal: pricing.LineTotal(l).Round(2)})
	}

	return ReviewSummary{
		Items:  items,
		Totals: pricing.ComputeTotals(lines).Rounded(),
		ShipTo: s.shipping.Address(),
		Card:   MaskCard(s.payment.CardNumber),
		Notes:  s.notes,
	}, nil
}

func (sh Shipping) Address() models.Address {
	return models.Address{
		FirstName: sh.FirstName,
		LastName:  sh.LastName,
		Email:     sh.Email,
		Phone:     sh.Phone,
		Street:    sh.Address,
		City:      sh.City,
		State:     sh.State,
		ZIP:       sh.ZIPCode,
		Country:   sh.Country,
	}
}
