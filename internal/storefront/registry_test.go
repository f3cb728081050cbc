package storefront

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/storefront/internal/cart"
	"github.com/Skotchmaster/storefront/internal/models"
)

func TestRegistry_GetReturnsSameSession(t *testing.T) {
	t.Parallel()

	r := NewRegistry(newDeps(okPlacer()), time.Hour)

	a := r.Get("guest:a")
	require.NoError(t, a.Dispatch(context.Background(), cart.AddToCart{ProductID: 1}))

	assert.Same(t, a, r.Get("guest:a"))
	assert.NotSame(t, a, r.Get("guest:b"))
	assert.Equal(t, 1, r.Get("guest:a").TotalQuantity())
	assert.Zero(t, r.Get("guest:b").TotalQuantity())
	assert.Equal(t, 2, r.Len())
}

func TestRegistry_SweepDropsIdleSessions(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	r := NewRegistry(newDeps(okPlacer()), time.Hour)
	r.now = func() time.Time { return now }

	r.Get("guest:old")
	now = now.Add(50 * time.Minute)
	r.Get("guest:new")
	now = now.Add(20 * time.Minute)

	assert.Equal(t, 1, r.Sweep())
	assert.Equal(t, 1, r.Len())

	now = now.Add(2 * time.Hour)
	assert.Equal(t, 1, r.Sweep())
	assert.Zero(t, r.Len())
}

func TestRegistry_SweepKeepsPendingSubmission(t *testing.T) {
	t.Parallel()

	entered := make(chan struct{})
	release := make(chan struct{})
	deps := newDeps(nil)
	deps.Placer = placerFunc(func() {
		close(entered)
		<-release
	})

	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	r := NewRegistry(deps, time.Minute)
	r.now = func() time.Time { return now }

	s := r.Get("guest:a")
	require.NoError(t, s.Dispatch(context.Background(), cart.AddToCart{ProductID: 1}))
	toReview(t, s)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = s.Submit(context.Background(), nil)
	}()
	<-entered

	now = now.Add(time.Hour)
	assert.Zero(t, r.Sweep())
	assert.Equal(t, 1, r.Len())

	close(release)
	<-done
	assert.Equal(t, 1, r.Sweep())
}

func TestRegistry_ZeroTTLNeverSweeps(t *testing.T) {
	t.Parallel()

	r := NewRegistry(newDeps(okPlacer()), 0)
	r.Get("guest:a")
	assert.Zero(t, r.Sweep())
}

func TestRegistry_RunStopsWithContext(t *testing.T) {
	t.Parallel()

	r := NewRegistry(newDeps(okPlacer()), time.Nanosecond)
	r.Get("guest:a")

	ctx, cancel := context.WithCancel(context.Background())
	swept := make(chan int, 1)
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		r.Run(ctx, time.Millisecond, func(n int) {
			select {
			case swept <- n:
			default:
			}
		})
	}()

	assert.Equal(t, 1, <-swept)
	cancel()
	<-stopped
	assert.Zero(t, r.Len())
}

type placerFunc func()

func (f placerFunc) PlaceOrder(context.Context, models.Order) (string, error) {
	f()
	return "ORD-2025-001", nil
}
