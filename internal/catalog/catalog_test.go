package catalog

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/storefront/internal/models"
)

type countingSource struct {
	calls    atomic.Int32
	products []models.Product
	err      error
	gate     chan struct{}
}

func (s *countingSource) ListProducts(context.Context) ([]models.Product, error) {
	s.calls.Add(1)
	if s.gate != nil {
		<-s.gate
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.products, nil
}

func TestCatalog_Find(t *testing.T) {
	t.Parallel()

	c := New(StaticSource(SeedProducts()), 0)

	p, err := c.Find(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "Professional Laptop Backpack", p.Name)

	_, err = c.Find(context.Background(), 99)
	require.ErrorIs(t, err, ErrProductNotFound)
}

func TestCatalog_ProductsReturnsCopy(t *testing.T) {
	t.Parallel()

	c := New(StaticSource(SeedProducts()), 0)
	ps, err := c.Products(context.Background())
	require.NoError(t, err)
	ps[0].Name = "changed"

	p, err := c.Find(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Wireless Bluetooth Headphones", p.Name)
}

func TestCatalog_ReloadsAfterTTL(t *testing.T) {
	t.Parallel()

	src := &countingSource{products: SeedProducts()}
	c := New(src, time.Minute)
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	_, err := c.Products(context.Background())
	require.NoError(t, err)
	_, err = c.Products(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), src.calls.Load())

	now = now.Add(2 * time.Minute)
	_, err = c.Products(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), src.calls.Load())

	c.Invalidate()
	_, err = c.Categories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(3), src.calls.Load())
}

func TestCatalog_ServesStaleCopyWhenReloadFails(t *testing.T) {
	t.Parallel()

	src := &countingSource{products: SeedProducts()}
	c := New(src, time.Minute)

	_, err := c.Products(context.Background())
	require.NoError(t, err)

	src.err = errors.New("db down")
	c.Invalidate()

	ps, err := c.Products(context.Background())
	require.NoError(t, err)
	assert.Len(t, ps, 8)
}

func TestCatalog_FirstLoadErrorIsReturned(t *testing.T) {
	t.Parallel()

	c := New(&countingSource{err: errors.New("db down")}, time.Minute)

	_, err := c.Products(context.Background())
	require.Error(t, err)
}

func TestCatalog_ConcurrentLoadsAreCoalesced(t *testing.T) {
	t.Parallel()

	src := &countingSource{products: SeedProducts(), gate: make(chan struct{})}
	c := New(src, 0)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.Find(context.Background(), 1)
			assert.NoError(t, err)
		}()
	}

	require.Eventually(t, func() bool { return src.calls.Load() >= 1 }, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	close(src.gate)
	wg.Wait()

	assert.Equal(t, int32(1), src.calls.Load())
}
