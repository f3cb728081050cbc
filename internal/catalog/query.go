package catalog

import (
	"cmp"
	"slices"
	"strings"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/shopspring/decimal"
)

const AllCategories = "all"

type SortKey string

const (
	SortName      SortKey = "name"
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
	SortRating    SortKey = "rating"
	SortNewest    SortKey = "newest"
)

// ParseSortKey maps a query value onto a SortKey. The storefront's older
// "price-low"/"price-high" values are accepted as aliases; anything unknown
// falls back to SortName.
func ParseSortKey(s string) SortKey {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "price-asc", "price-low":
		return SortPriceAsc
	case "price-desc", "price-high":
		return SortPriceDesc
	case "rating":
		return SortRating
	case "newest":
		return SortNewest
	default:
		return SortName
	}
}

type Filter struct {
	Category string
	MinPrice decimal.Decimal
	MaxPrice decimal.Decimal
	Sort     SortKey
}

// DefaultFilter matches the initial state of the product browser: every
// category, prices 0..1000, sorted by name.
func DefaultFilter() Filter {
	return Filter{
		Category: AllCategories,
		MinPrice: decimal.Zero,
		MaxPrice: decimal.NewFromInt(1000),
		Sort:     SortName,
	}
}

func (f Filter) matches(p models.Product) bool {
	if f.Category != "" && f.Category != AllCategories && p.Category != f.Category {
		return false
	}
	if p.Price.LessThan(f.MinPrice) {
		return false
	}
	return p.Price.LessThanOrEqual(f.MaxPrice)
}

// Query returns a new slice holding the products accepted by f, ordered by
// f.Sort. Ties are broken by ascending id so the result is deterministic.
func Query(products []models.Product, f Filter) []models.Product {
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if f.matches(p) {
			out = append(out, p)
		}
	}

	slices.SortStableFunc(out, comparator(f.Sort))
	return out
}

func comparator(key SortKey) func(a, b models.Product) int {
	byID := func(a, b models.Product) int { return cmp.Compare(a.ID, b.ID) }

	switch key {
	case SortPriceAsc:
		return func(a, b models.Product) int {
			if c := a.Price.Cmp(b.Price); c != 0 {
				return c
			}
			return byID(a, b)
		}
	case SortPriceDesc:
		return func(a, b models.Product) int {
			if c := b.Price.Cmp(a.Price); c != 0 {
				return c
			}
			return byID(a, b)
		}
	case SortRating:
		return func(a, b models.Product) int {
			if c := cmp.Compare(b.Rating, a.Rating); c != 0 {
				return c
			}
			return byID(a, b)
		}
	case SortNewest:
		return func(a, b models.Product) int { return cmp.Compare(b.ID, a.ID) }
	default:
		return func(a, b models.Product) int {
			if c := strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)); c != 0 {
				return c
			}
			return byID(a, b)
		}
	}
}

// Categories lists "all" followed by each distinct category in the order it
// first appears.
func Categories(products []models.Product) []string {
	out := []string{AllCategories}
	seen := make(map[string]struct{}, len(products))
	for _, p := range products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	return out
}
