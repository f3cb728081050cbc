package order

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/Skotchmaster/storefront/internal/events"
	"github.com/Skotchmaster/storefront/internal/models"
)

var (
	ErrValidation = errors.New("validation")
	ErrRejected   = errors.New("placement rejected")
)

type Repository interface {
	CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error)
	GetOrder(ctx context.Context, shopperID, id string) (*models.Order, error)
	ListOrders(ctx context.Context, shopperID string, status models.OrderStatus, limit, offset int) (int64, []models.Order, error)
	UpdateOrderStatus(ctx context.Context, id string, next models.OrderStatus) (*models.Order, error)
}

// Service is the order history collaborator. It also acts as the placement
// capability used by checkout: PlaceOrder simulates the processing delay of
// a payment backend, stores the order and announces it.
type Service struct {
	Repo      Repository
	Publisher events.Publisher
	Topic     string
	Log       *slog.Logger

	// Delay is how long a placement takes. FailureRate in [0,1] makes a share
	// of placements fail so the retry path can be exercised.
	Delay       time.Duration
	FailureRate float64

	roll func() float64
}

func (s *Service) logger() *slog.Logger {
	if s.Log != nil {
		return s.Log
	}
	return slog.Default()
}

func validate(o models.Order) error {
	if len(o.Items) == 0 {
		return fmt.Errorf("%w: items required", ErrValidation)
	}
	for _, it := range o.Items {
		if it.Quantity <= 0 {
			return fmt.Errorf("%w: quantity must be > 0", ErrValidation)
		}
		if it.UnitPrice.IsNegative() {
			return fmt.Errorf("%w: price must be >= 0", ErrValidation)
		}
	}
	return nil
}

func (s *Service) PlaceOrder(ctx context.Context, o models.Order) (string, error) {
	if err := validate(o); err != nil {
		return "", err
	}

	if s.Delay > 0 {
		t := time.NewTimer(s.Delay)
		select {
		case <-ctx.Done():
			t.Stop()
			return "", ctx.Err()
		case <-t.C:
		}
	}

	roll := s.roll
	if roll == nil {
		roll = rand.Float64
	}
	if s.FailureRate > 0 && roll() < s.FailureRate {
		return "", ErrRejected
	}

	placed, err := s.Repo.CreateOrder(ctx, &o)
	if err != nil {
		return "", err
	}

	s.publishPlaced(ctx, placed)
	return placed.ID, nil
}

func (s *Service) publishPlaced(ctx context.Context, o *models.Order) {
	if s.Publisher == nil {
		return
	}

	lines := make([]events.OrderPlacedLine, 0, len(o.Items))
	for _, it := range o.Items {
		lines = append(lines, events.OrderPlacedLine{
			ProductID: it.ProductID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}
	env := events.New(events.OrderPlaced, o.ShopperID, events.OrderPlacedPayload{
		OrderID:   o.ID,
		ShopperID: o.ShopperID,
		Lines:     lines,
		Total:     o.Total,
		Status:    string(o.Status),
		PlacedAt:  o.PlacedAt,
	})

	// the order is stored already; a lost event must not fail the shopper
	topic := s.Topic
	if topic == "" {
		topic = events.TopicOrders
	}
	if err := s.Publisher.PublishEvent(context.WithoutCancel(ctx), topic, o.ShopperID, env); err != nil {
		s.logger().Error("order_placed_publish_error", "order_id", o.ID, "error", err)
	}
}

func (s *Service) ListOrders(ctx context.Context, shopperID string, status models.OrderStatus, limit, offset int) (int64, []models.Order, error) {
	if status != "" && !status.Valid() {
		return 0, nil, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}
	return s.Repo.ListOrders(ctx, shopperID, status, limit, offset)
}

func (s *Service) GetOrder(ctx context.Context, shopperID, id string) (*models.Order, error) {
	return s.Repo.GetOrder(ctx, shopperID, id)
}

func (s *Service) UpdateStatus(ctx context.Context, id string, next models.OrderStatus) (*models.Order, error) {
	if !next.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, next)
	}
	return s.Repo.UpdateOrderStatus(ctx, id, next)
}
