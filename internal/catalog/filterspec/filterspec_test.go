package filterspec

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mashop/storefront/internal/catalog"
)

func fixture() []catalog.Product {
	return []catalog.Product{
		{ID: 1, Title: "Wireless Mouse", Category: "electronics", Price: 25, DiscountPercentage: 5, Rating: 4.2, Stock: 10},
		{ID: 2, Title: "amber candle", Category: "home-decoration", Price: 12, Rating: 3.1, Stock: 0},
		{ID: 3, Title: "Band Tee", Category: "mens-shirts", Price: 25, DiscountPercentage: 12, Rating: 4.2, Stock: 3},
		{ID: 4, Title: "Zen Garden Kit", Category: "home-decoration", Price: 40, Rating: 4.9, Stock: 7},
	}
}

func ids(products []catalog.Product) []int {
	out := make([]int, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func TestEmptySpecIsIdentity(t *testing.T) {
	in := fixture()
	out := Apply(in, Spec{})

	require.Equal(t, ids(in), ids(out))
	require.Equal(t, in, out)
}

func TestInputNeverMutated(t *testing.T) {
	in := fixture()
	want := ids(in)

	Apply(in, Spec{SortBy: SortPriceDesc})

	require.Equal(t, want, ids(in))
}

func TestCardinalityPreservedUnderSortOnly(t *testing.T) {
	in := fixture()
	out := Apply(in, Spec{SortBy: SortRatingDesc})

	require.Len(t, out, len(in))
	require.ElementsMatch(t, ids(in), ids(out))
}

func TestSortIsIdempotent(t *testing.T) {
	spec := Spec{SortBy: SortPriceAsc}

	once := Apply(fixture(), spec)
	twice := Apply(once, spec)

	require.Equal(t, once, twice)
}

func TestSortIsStable(t *testing.T) {
	// Products 1 and 3 share price 25; fetch order must survive the sort.
	out := Apply(fixture(), Spec{SortBy: SortPriceAsc})

	require.Equal(t, []int{2, 1, 3, 4}, ids(out))
}

func TestCategoryMatchesSubstringCaseInsensitive(t *testing.T) {
	out := Apply(fixture(), Spec{Categories: []string{"home"}})
	require.Equal(t, []int{2, 4}, ids(out))

	out = Apply(fixture(), Spec{Categories: []string{"ELECTRONICS"}})
	require.Equal(t, []int{1}, ids(out))

	out = Apply(fixture(), Spec{Categories: []string{"electronics", "mens-shirts"}})
	require.Equal(t, []int{1, 3}, ids(out))
}

func TestPriceBounds(t *testing.T) {
	min, max := 12.0, 25.0
	out := Apply(fixture(), Spec{PriceMin: &min, PriceMax: &max})
	require.Equal(t, []int{1, 2, 3}, ids(out))

	// min > max is not rejected; it just selects nothing.
	lo, hi := 30.0, 20.0
	out = Apply(fixture(), Spec{PriceMin: &lo, PriceMax: &hi})
	require.Empty(t, out)
}

func TestMinRating(t *testing.T) {
	r := 4.0
	out := Apply(fixture(), Spec{MinRating: &r})
	require.Equal(t, []int{1, 3, 4}, ids(out))
}

func TestInStockScenario(t *testing.T) {
	products := []catalog.Product{
		{ID: 1, Category: "a", Price: 10, Rating: 4, Stock: 0},
		{ID: 2, Category: "b", Price: 20, Rating: 2, Stock: 5},
	}

	out := Apply(products, Spec{InStock: true})
	require.Equal(t, []int{2}, ids(out))
}

func TestPriceDescScenario(t *testing.T) {
	products := []catalog.Product{
		{ID: 1, Category: "a", Price: 10, Rating: 4, Stock: 0},
		{ID: 2, Category: "b", Price: 20, Rating: 2, Stock: 5},
	}

	out := Apply(products, Spec{SortBy: SortPriceDesc})
	require.Equal(t, []int{2, 1}, ids(out))
}

func TestNameSortIsLocaleAware(t *testing.T) {
	// A byte-wise comparison would order every capitalized title before
	// "amber candle"; collation must not.
	out := Apply(fixture(), Spec{SortBy: SortNameAsc})
	require.Equal(t, []int{2, 3, 1, 4}, ids(out))

	out = Apply(fixture(), Spec{SortBy: SortNameDesc})
	require.Equal(t, []int{4, 1, 3, 2}, ids(out))
}

func TestDiscountDesc(t *testing.T) {
	out := Apply(fixture(), Spec{SortBy: SortDiscountDesc})
	require.Equal(t, []int{3, 1, 2, 4}, ids(out))
}

func TestCombinedStages(t *testing.T) {
	r := 4.0
	out := Apply(fixture(), Spec{
		Categories: []string{"home", "electronics"},
		MinRating:  &r,
		InStock:    true,
		SortBy:     SortPriceDesc,
	})
	require.Equal(t, []int{4, 1}, ids(out))
}

func TestParseSortKey(t *testing.T) {
	require.Equal(t, SortPriceAsc, ParseSortKey("price-asc"))
	require.Equal(t, SortDiscountDesc, ParseSortKey("discount-desc"))
	require.Equal(t, SortDefault, ParseSortKey(""))
	require.Equal(t, SortDefault, ParseSortKey("bogus"))
}
