package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/storefront/internal/models"
)

func ids(ps []models.Product) []int {
	out := make([]int, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.ID)
	}
	return out
}

func TestQuery_DefaultFilterSortsByName(t *testing.T) {
	t.Parallel()

	got := Query(SeedProducts(), DefaultFilter())
	assert.Equal(t, []int{6, 5, 7, 4, 3, 2, 8, 1}, ids(got))
}

func TestQuery_Sorts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		sort SortKey
		want []int
	}{
		{SortPriceAsc, []int{7, 8, 6, 3, 5, 4, 1, 2}},
		{SortPriceDesc, []int{2, 1, 4, 5, 3, 6, 8, 7}},
		{SortRating, []int{2, 5, 4, 8, 1, 7, 3, 6}},
		{SortNewest, []int{8, 7, 6, 5, 4, 3, 2, 1}},
	}
	for _, tt := range tests {
		t.Run(string(tt.sort), func(t *testing.T) {
			t.Parallel()
			f := DefaultFilter()
			f.Sort = tt.sort
			assert.Equal(t, tt.want, ids(Query(SeedProducts(), f)))
		})
	}
}

func TestQuery_FiltersCategoryAndPrice(t *testing.T) {
	t.Parallel()

	f := DefaultFilter()
	f.Category = "Electronics"
	assert.Equal(t, []int{4, 2, 1}, ids(Query(SeedProducts(), f)))

	f = DefaultFilter()
	f.MinPrice = decimal.NewFromInt(50)
	f.MaxPrice = decimal.RequireFromString("149.99")
	f.Sort = SortPriceAsc
	assert.Equal(t, []int{3, 5, 4}, ids(Query(SeedProducts(), f)))

	f = DefaultFilter()
	f.Category = "Furniture"
	assert.Empty(t, Query(SeedProducts(), f))
}

func TestQuery_DoesNotReorderInput(t *testing.T) {
	t.Parallel()

	in := SeedProducts()
	f := DefaultFilter()
	f.Sort = SortPriceDesc
	_ = Query(in, f)

	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8}, ids(in))
}

func TestParseSortKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, SortPriceAsc, ParseSortKey("price-low"))
	assert.Equal(t, SortPriceAsc, ParseSortKey("price-asc"))
	assert.Equal(t, SortPriceDesc, ParseSortKey("PRICE-HIGH"))
	assert.Equal(t, SortRating, ParseSortKey("rating"))
	assert.Equal(t, SortNewest, ParseSortKey(" newest "))
	assert.Equal(t, SortName, ParseSortKey(""))
	assert.Equal(t, SortName, ParseSortKey("bogus"))
}

func TestCategories(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"all", "Electronics", "Accessories", "Gaming", "Clothing"}, Categories(SeedProducts()))
	assert.Equal(t, []string{"all"}, Categories(nil))
}

func TestSeedProducts_FinalPrice(t *testing.T) {
	t.Parallel()

	ps := SeedProducts()
	require.Len(t, ps, 8)

	assert.Equal(t, "159.99", ps[0].FinalPrice().StringFixed(2))
	assert.Equal(t, "299.99", ps[1].FinalPrice().StringFixed(2))
	assert.Equal(t, "127.49", ps[3].FinalPrice().StringFixed(2))
}
