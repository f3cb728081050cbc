package repo

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/storefront/internal/catalog"
	"github.com/Skotchmaster/storefront/internal/db"
	"github.com/Skotchmaster/storefront/internal/models"
)

func newTestRepo(t *testing.T) *GormRepo {
	t.Helper()
	gdb, err := db.Open(context.Background(), "", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(gdb) })
	return &GormRepo{DB: gdb}
}

func newOrder(shopper, key string, placed time.Time) *models.Order {
	return &models.Order{
		ShopperID:      shopper,
		IdempotencyKey: key,
		Items: []models.OrderItem{{
			ProductID: 3,
			Name:      "Professional Laptop Backpack",
			Quantity:  2,
			UnitPrice: decimal.RequireFromString("79.99"),
			LineTotal: decimal.RequireFromString("159.98"),
		}},
		Subtotal: decimal.RequireFromString("159.98"),
		Tax:      decimal.RequireFromString("16.00"),
		Shipping: decimal.Zero,
		Total:    decimal.RequireFromString("175.98"),
		Status:   models.OrderStatusProcessing,
		PlacedAt: placed,
		ShipTo:   models.Address{FirstName: "Ada", Street: "12 Analytical St", City: "London", ZIP: "10001"},
	}
}

func TestGormRepo_SeedProductsOnlyWhenEmpty(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	ctx := context.Background()

	n, err := r.SeedProducts(ctx, catalog.SeedProducts())
	require.NoError(t, err)
	assert.Equal(t, 8, n)

	n, err = r.SeedProducts(ctx, catalog.SeedProducts())
	require.NoError(t, err)
	assert.Zero(t, n)

	ps, err := r.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, ps, 8)
	assert.Equal(t, 1, ps[0].ID)
	assert.Equal(t, "199.99", ps[0].Price.StringFixed(2))
	require.NotNil(t, ps[0].Discount)
	assert.Equal(t, uint(20), *ps[0].Discount)

	p, err := r.GetProduct(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, "Gaming Mouse RGB", p.Name)

	_, err = r.GetProduct(ctx, 404)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestGormRepo_CatalogOverRepository(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	ctx := context.Background()
	_, err := r.SeedProducts(ctx, catalog.SeedProducts())
	require.NoError(t, err)

	c := catalog.New(r, time.Minute)
	p, err := c.Find(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "Clothing", p.Category)
}

func TestGormRepo_CreateOrderAssignsSequentialIDs(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	ctx := context.Background()
	placed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	first, err := r.CreateOrder(ctx, newOrder("guest:a", "k1", placed))
	require.NoError(t, err)
	assert.Equal(t, "ORD-2025-001", first.ID)

	second, err := r.CreateOrder(ctx, newOrder("guest:b", "k2", placed.Add(time.Hour)))
	require.NoError(t, err)
	assert.Equal(t, "ORD-2025-002", second.ID)

	next, err := r.CreateOrder(ctx, newOrder("guest:a", "k3", time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
	assert.Equal(t, "ORD-2026-001", next.ID)
}

func TestGormRepo_CreateOrderIsIdempotent(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	ctx := context.Background()
	placed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	first, err := r.CreateOrder(ctx, newOrder("guest:a", "same-key", placed))
	require.NoError(t, err)

	again, err := r.CreateOrder(ctx, newOrder("guest:a", "same-key", placed))
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)

	total, orders, err := r.ListOrders(ctx, "guest:a", "", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, orders, 1)
}

func TestGormRepo_GetOrderScopedToShopper(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	ctx := context.Background()

	o, err := r.CreateOrder(ctx, newOrder("guest:a", "k1", time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	got, err := r.GetOrder(ctx, "guest:a", o.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, 2, got.Items[0].Quantity)
	assert.Equal(t, "175.98", got.Total.StringFixed(2))
	assert.Equal(t, "London", got.ShipTo.City)

	_, err = r.GetOrder(ctx, "guest:b", o.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestGormRepo_ListOrdersFiltersAndPages(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	for i, key := range []string{"k1", "k2", "k3"} {
		_, err := r.CreateOrder(ctx, newOrder("guest:a", key, base.Add(time.Duration(i)*time.Hour)))
		require.NoError(t, err)
	}
	_, err := r.CreateOrder(ctx, newOrder("guest:b", "k4", base))
	require.NoError(t, err)

	_, err = r.UpdateOrderStatus(ctx, "ORD-2025-001", models.OrderStatusShipped)
	require.NoError(t, err)

	total, orders, err := r.ListOrders(ctx, "guest:a", "", 2, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, orders, 2)
	assert.Equal(t, "ORD-2025-003", orders[0].ID)
	assert.Equal(t, "ORD-2025-002", orders[1].ID)
	assert.Len(t, orders[0].Items, 1)

	total, orders, err = r.ListOrders(ctx, "guest:a", "", 2, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, orders, 1)

	total, orders, err = r.ListOrders(ctx, "guest:a", models.OrderStatusShipped, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, orders, 1)
	assert.Equal(t, "ORD-2025-001", orders[0].ID)
}

func TestGormRepo_UpdateOrderStatusLifecycle(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	ctx := context.Background()
	o, err := r.CreateOrder(ctx, newOrder("guest:a", "k1", time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	_, err = r.UpdateOrderStatus(ctx, o.ID, models.OrderStatusDelivered)
	require.ErrorIs(t, err, ErrConflict)

	got, err := r.UpdateOrderStatus(ctx, o.ID, models.OrderStatusShipped)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusShipped, got.Status)
	assert.Regexp(t, `^TRK[0-9A-F]{10}$`, got.TrackingNumber)

	got, err = r.UpdateOrderStatus(ctx, o.ID, models.OrderStatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusDelivered, got.Status)

	stored, err := r.GetOrder(ctx, "guest:a", o.ID)
	require.NoError(t, err)
	assert.Equal(t, got.TrackingNumber, stored.TrackingNumber)
	require.NotNil(t, stored.ShippedAt)
	require.NotNil(t, stored.EstimatedDelivery)
	require.NotNil(t, stored.DeliveredAt)
	assert.Nil(t, stored.CancelledAt)
	assert.WithinDuration(t, stored.ShippedAt.Add(models.EstimatedTransit), *stored.EstimatedDelivery, time.Second)

	_, err = r.UpdateOrderStatus(ctx, o.ID, models.OrderStatusCancelled)
	require.ErrorIs(t, err, ErrConflict)

	_, err = r.UpdateOrderStatus(ctx, "ORD-1999-001", models.OrderStatusShipped)
	require.ErrorIs(t, err, ErrNotFound)
}
