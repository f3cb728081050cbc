package checkout

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Skotchmaster/storefront/internal/cart"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/pricing"
)

// OrderHistoryPath is where the shopper lands after a successful order.
const OrderHistoryPath = "/shop/orders"

const DefaultPlacementTimeout = 10 * time.Second

// Placer turns an order snapshot into a placed order and returns its id.
// Implementations must honour ctx cancellation.
type Placer interface {
	PlaceOrder(ctx context.Context, order models.Order) (string, error)
}

type PlacerFunc func(ctx context.Context, order models.Order) (string, error)

func (f PlacerFunc) PlaceOrder(ctx context.Context, order models.Order) (string, error) {
	return f(ctx, order)
}

type Navigator interface {
	Navigate(path string)
}

type NavigatorFunc func(path string)

func (f NavigatorFunc) Navigate(path string) { f(path) }

type noopLocker struct{}

func (noopLocker) Lock()   {}
func (noopLocker) Unlock() {}

type Option func(*Submitter)

func WithTimeout(d time.Duration) Option {
	return func(s *Submitter) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithLocker makes Submit hold l while it reads and mutates the cart and the
// session. The lock is released for the duration of the placement call.
func WithLocker(l sync.Locker) Option {
	return func(s *Submitter) { s.mu = l }
}

func WithClock(now func() time.Time) Option {
	return func(s *Submitter) { s.now = now }
}

func WithShopper(id string) Option {
	return func(s *Submitter) { s.shopperID = id }
}

// Submitter performs the terminal checkout action. At most one submission is
// in flight per Submitter.
type Submitter struct {
	placer    Placer
	timeout   time.Duration
	mu        sync.Locker
	now       func() time.Time
	shopperID string

	pending atomic.Bool
}

func NewSubmitter(placer Placer, opts ...Option) *Submitter {
	s := &Submitter{
		placer:  placer,
		timeout: DefaultPlacementTimeout,
		mu:      noopLocker{},
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Pending reports whether a placement call is currently running.
func (s *Submitter) Pending() bool {
	return s.pending.Load()
}

// Submit places the order described by the cart and the reviewed session.
// On success the cart is cleared, the session is reset, nav is sent to the
// order history and the placed order is returned. On failure nothing changes.
func (s *Submitter) Submit(ctx context.Context, store *cart.Store, session *Session, nav Navigator) (*models.Order, error) {
	s.mu.Lock()
	if store.IsEmpty() {
		s.mu.Unlock()
		return nil, ErrEmptyCart
	}
	if session.Step() != StepReview {
		s.mu.Unlock()
		return nil, ErrNotReviewed
	}
	if !s.pending.CompareAndSwap(false, true) {
		s.mu.Unlock()
		return nil, ErrSubmissionInProgress
	}
	order := s.snapshot(store, session)
	s.mu.Unlock()

	defer s.pending.Store(false)

	placeCtx, cancel := context.WithTimeout(ctx, s.timeout)
	id, err := s.placer.PlaceOrder(placeCtx, order)
	cancel()
	if err != nil {
		return nil, &PlacementError{Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	order.ID = id
	session.markSubmitted()
	store.Clear()
	session.Reset()
	if nav != nil {
		nav.Navigate(OrderHistoryPath)
	}
	return &order, nil
}

func (s *Submitter) snapshot(store *cart.Store, session *Session) models.Order {
	lines := store.Lines()
	totals := pricing.ComputeTotals(lines).Rounded()

	items := make([]models.OrderItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, models.OrderItem{
			ProductID: l.ProductID,
			Name:      l.Name,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			LineTotal: pricing.LineTotal(l).Round(2),
		})
	}

	return models.Order{
		ShopperID:      s.shopperID,
		IdempotencyKey: session.AttemptKey(),
		Items:          items,
		Subtotal:       totals.Subtotal,
		Tax:            totals.Tax,
		Shipping:       totals.Shipping,
		Total:          totals.Total,
		Status:         models.OrderStatusProcessing,
		PlacedAt:       s.now().UTC(),
		ShipTo:         session.Shipping().Address(),
		CardLast4:      session.Payment().Last4(),
		Notes:          session.Notes(),
	}
}
