package checkout

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/storefront/internal/cart"
	"github.com/Skotchmaster/storefront/internal/models"
)

func storeWith(prices ...string) *cart.Store {
	s := cart.NewStore()
	for i, p := range prices {
		s.Add(models.Product{ID: i + 1, Name: "item", Price: decimal.RequireFromString(p)})
	}
	return s
}

func TestSession_ReviewRequiresReviewStep(t *testing.T) {
	t.Parallel()

	_, err := NewSession(nil).Review(storeWith("10.00"))
	require.ErrorIs(t, err, ErrNotReviewed)
}

func TestSession_Review(t *testing.T) {
	t.Parallel()

	s := reviewedSession(t)
	require.NoError(t, s.SetNotes("ring twice"))
	store := storeWith("60.00", "50.00")

	got, err := s.Review(store)
	require.NoError(t, err)

	require.Len(t, got.Items, 2)
	assert.Equal(t, "60.00", got.Items[0].LineTotal.StringFixed(2))
	assert.Equal(t, "121.00", got.Totals.Total.StringFixed(2))
	assert.Equal(t, "**** **** **** 4242", got.Card)
	assert.Equal(t, "12 Analytical St", got.ShipTo.Street)
	assert.Equal(t, "10001", got.ShipTo.ZIP)
	assert.Equal(t, DefaultCountry, got.ShipTo.Country)
	assert.Equal(t, "ring twice", got.Notes)
}

func TestSession_ReviewFollowsTheCart(t *testing.T) {
	t.Parallel()

	s := reviewedSession(t)
	store := storeWith("60.00", "50.00")

	store.SetQuantity(2, 0)
	got, err := s.Review(store)
	require.NoError(t, err)

	require.Len(t, got.Items, 1)
	assert.Equal(t, "60.00", got.Totals.Subtotal.StringFixed(2))
	assert.Equal(t, "10.00", got.Totals.Shipping.StringFixed(2))
	assert.Equal(t, "76.00", got.Totals.Total.StringFixed(2))
}
