// Package storefront wires one shopper's cart, checkout session and order
// submitter together. The cart page, the checkout page and the header badge
// all read the same Session.
package storefront

import (
	"context"
	"sync"
	"time"

	"github.com/Skotchmaster/storefront/internal/cart"
	"github.com/Skotchmaster/storefront/internal/checkout"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/pricing"
)

type Deps struct {
	Products         cart.ProductLookup
	Placer           checkout.Placer
	Validator        checkout.Validator
	PlacementTimeout time.Duration
}

type Session struct {
	ID string

	mu        sync.Mutex
	products  cart.ProductLookup
	cart      *cart.Store
	checkout  *checkout.Session
	submitter *checkout.Submitter
}

func NewSession(id string, d Deps) *Session {
	s := &Session{
		ID:       id,
		products: d.Products,
		cart:     cart.NewStore(),
		checkout: checkout.NewSession(d.Validator),
	}
	s.submitter = checkout.NewSubmitter(d.Placer,
		checkout.WithTimeout(d.PlacementTimeout),
		checkout.WithLocker(&s.mu),
		checkout.WithShopper(id),
	)
	return s
}

type CartView struct {
	Lines         []cart.Line    `json:"lines"`
	LineCount     int            `json:"line_count"`
	TotalQuantity int            `json:"total_quantity"`
	Totals        pricing.Totals `json:"totals"`
}

type CheckoutView struct {
	Step     checkout.Step         `json:"step"`
	Shipping checkout.Shipping     `json:"shipping"`
	Card     string                `json:"card,omitempty"`
	Notes    string                `json:"notes,omitempty"`
	Missing  []checkout.FieldError `json:"missing,omitempty"`
	Pending  bool                  `json:"pending"`
	Cart     CartView              `json:"cart"`
}

// mutate runs fn under the session lock unless a submission is in flight;
// while the order is being placed the cart and the form are frozen.
func (s *Session) mutate(fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.submitter.Pending() {
		return checkout.ErrSubmissionInProgress
	}
	return fn()
}

func (s *Session) Dispatch(ctx context.Context, cmd cart.Command) error {
	return s.mutate(func() error {
		return s.cart.Dispatch(ctx, s.products, cmd)
	})
}

func (s *Session) cartView() CartView {
	lines := s.cart.Lines()
	return CartView{
		Lines:         lines,
		LineCount:     s.cart.LineCount(),
		TotalQuantity: s.cart.TotalQuantity(),
		Totals:        pricing.ComputeTotals(lines).Rounded(),
	}
}

func (s *Session) Cart() CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cartView()
}

func (s *Session) TotalQuantity() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.TotalQuantity()
}

func (s *Session) Checkout() CheckoutView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return CheckoutView{
		Step:     s.checkout.Step(),
		Shipping: s.checkout.Shipping(),
		Card:     checkout.MaskCard(s.checkout.Payment().CardNumber),
		Notes:    s.checkout.Notes(),
		Missing:  s.checkout.MissingFields(),
		Pending:  s.submitter.Pending(),
		Cart:     s.cartView(),
	}
}

func (s *Session) SetShipping(sh checkout.Shipping) error {
	return s.mutate(func() error { return s.checkout.SetShipping(sh) })
}

func (s *Session) SetPayment(p checkout.Payment) error {
	return s.mutate(func() error { return s.checkout.SetPayment(p) })
}

func (s *Session) SetNotes(notes string) error {
	return s.mutate(func() error { return s.checkout.SetNotes(notes) })
}

func (s *Session) Next() (checkout.Step, error) {
	var step checkout.Step
	err := s.mutate(func() error {
		err := s.checkout.Next()
		step = s.checkout.Step()
		return err
	})
	return step, err
}

func (s *Session) Back() (checkout.Step, error) {
	var step checkout.Step
	err := s.mutate(func() error {
		s.checkout.Back()
		step = s.checkout.Step()
		return nil
	})
	return step, err
}

// Abandon drops the checkout form. The cart is kept.
func (s *Session) Abandon() error {
	return s.mutate(func() error {
		s.checkout.Reset()
		return nil
	})
}

func (s *Session) Review() (checkout.ReviewSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.checkout.Review(s.cart)
}

func (s *Session) Submit(ctx context.Context, nav checkout.Navigator) (*models.Order, error) {
	return s.submitter.Submit(ctx, s.cart, s.checkout, nav)
}
