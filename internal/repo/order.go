package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Skotchmaster/storefront/internal/models"
	"gorm.io/gorm"
)

const createAttempts = 3

func trackingNumber() string {
	return "TRK" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:10])
}

func orderID(year int, seq int64) string {
	return fmt.Sprintf("ORD-%d-%03d", year, seq)
}

// CreateOrder stores a placed order and assigns it the next ORD-<year>-<seq>
// id. An order whose idempotency key was already stored is not written again;
// the stored order is returned instead.
func (r *GormRepo) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	if order.IdempotencyKey != "" {
		existing, err := r.orderByKey(ctx, order.IdempotencyKey)
		if err == nil {
			return existing, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
	}

	var err error
	for range createAttempts {
		err = r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			year := order.PlacedAt.Year()
			var n int64
			if err := tx.Model(&models.Order{}).Where("id LIKE ?", fmt.Sprintf("ORD-%d-%%", year)).Count(&n).Error; err != nil {
				return err
			}
			order.ID = orderID(year, n+1)
			return tx.Create(order).Error
		})
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			break
		}
		if order.IdempotencyKey != "" {
			if existing, kerr := r.orderByKey(ctx, order.IdempotencyKey); kerr == nil {
				return existing, nil
			}
		}
	}
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("create order: %w", ErrConflict)
		}
		return nil, fmt.Errorf("create order: %w", err)
	}
	return order, nil
}

func (r *GormRepo) orderByKey(ctx context.Context, key string) (*models.Order, error) {
	var o models.Order
	err := r.DB.WithContext(ctx).Preload("Items").Where("idempotency_key = ?", key).First(&o).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &o, nil
}

func (r *GormRepo) GetOrder(ctx context.Context, shopperID, id string) (*models.Order, error) {
	var o models.Order
	err := r.DB.WithContext(ctx).Preload("Items").Where("id = ? AND shopper_id = ?", id, shopperID).First(&o).Error
	if err != nil {
		return nil, fmt.Errorf("order %s: %w", id, notFound(err))
	}
	return &o, nil
}

// ListOrders returns a shopper's orders, newest first. An empty status lists
// every status.
func (r *GormRepo) ListOrders(ctx context.Context, shopperID string, status models.OrderStatus, limit, offset int) (int64, []models.Order, error) {
	q := r.DB.WithContext(ctx).Model(&models.Order{}).Where("shopper_id = ?", shopperID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var orders []models.Order
	if err := q.Preload("Items").Order("placed_at DESC").Order("id DESC").Limit(limit).Offset(offset).Find(&orders).Error; err != nil {
		return 0, nil, err
	}
	return total, orders, nil
}

func (r *GormRepo) UpdateOrderStatus(ctx context.Context, id string, next models.OrderStatus) (*models.Order, error) {
	var o models.Order
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&o, "id = ?", id).Error; err != nil {
			return notFound(err)
		}
		if !o.Status.CanTransition(next) {
			return fmt.Errorf("%s -> %s: %w", o.Status, next, ErrConflict)
		}
		o.Advance(next, time.Now().UTC(), trackingNumber())
		return tx.Model(&o).
			Select("status", "tracking_number", "estimated_delivery", "shipped_at", "delivered_at", "cancelled_at").
			Updates(&o).Error
	})
	if err != nil {
		return nil, fmt.Errorf("update order %s: %w", id, err)
	}
	return &o, nil
}
