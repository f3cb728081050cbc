package catalog

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/Skotchmaster/storefront/internal/models"
	"golang.org/x/sync/singleflight"
)

var ErrProductNotFound = errors.New("product not found")

// ProductSource supplies the reference product list.
type ProductSource interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
}

// StaticSource serves a fixed product list.
type StaticSource []models.Product

func (s StaticSource) ListProducts(context.Context) ([]models.Product, error) {
	return slices.Clone(s), nil
}

// Catalog keeps an in-memory copy of the product list so queries stay cheap
// enough to run on every filter change. The copy is reloaded from the source
// once it is older than ttl; a ttl of zero never reloads.
type Catalog struct {
	src ProductSource
	ttl time.Duration
	now func() time.Time

	mu       sync.RWMutex
	products []models.Product
	byID     map[int]int
	loadedAt time.Time

	sfg singleflight.Group // coalesces concurrent reloads
}

func New(src ProductSource, ttl time.Duration) *Catalog {
	return &Catalog{
		src: src,
		ttl: ttl,
		now: time.Now,
	}
}

func (c *Catalog) snapshot() ([]models.Product, map[int]int, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.products == nil {
		return nil, nil, false
	}
	fresh := c.ttl == 0 || c.now().Sub(c.loadedAt) < c.ttl
	return c.products, c.byID, fresh
}

func (c *Catalog) load(ctx context.Context) ([]models.Product, map[int]int, error) {
	products, index, fresh := c.snapshot()
	if fresh {
		return products, index, nil
	}

	_, err, _ := c.sfg.Do("products", func() (interface{}, error) {
		list, err := c.src.ListProducts(ctx)
		if err != nil {
			return nil, err
		}

		idx := make(map[int]int, len(list))
		for i, p := range list {
			idx[p.ID] = i
		}

		c.mu.Lock()
		c.products = list
		c.byID = idx
		c.loadedAt = c.now()
		c.mu.Unlock()
		return nil, nil
	})
	if err != nil {
		if products != nil {
			// serve the stale copy rather than fail the shopper
			return products, index, nil
		}
		return nil, nil, fmt.Errorf("load products: %w", err)
	}

	products, index, _ = c.snapshot()
	return products, index, nil
}

// Invalidate forces the next read to reload from the source.
func (c *Catalog) Invalidate() {
	c.mu.Lock()
	c.loadedAt = time.Time{}
	c.mu.Unlock()
}

func (c *Catalog) Products(ctx context.Context) ([]models.Product, error) {
	products, _, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	return slices.Clone(products), nil
}

func (c *Catalog) Find(ctx context.Context, id int) (models.Product, error) {
	products, index, err := c.load(ctx)
	if err != nil {
		return models.Product{}, err
	}
	i, ok := index[id]
	if !ok {
		return models.Product{}, fmt.Errorf("product %d: %w", id, ErrProductNotFound)
	}
	return products[i], nil
}

func (c *Catalog) Query(ctx context.Context, f Filter) ([]models.Product, error) {
	products, _, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	return Query(products, f), nil
}

func (c *Catalog) Categories(ctx context.Context) ([]string, error) {
	products, _, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	return Categories(products), nil
}
