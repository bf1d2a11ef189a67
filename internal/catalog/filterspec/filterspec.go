// Package filterspec narrows and orders a fetched product collection.
// It is pure: the input slice is never mutated and equal sort keys keep
// their original relative order, so identical input and spec always
// reproduce the same result.
package filterspec

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/mashop/storefront/internal/catalog"
)

type SortKey string

const (
	SortDefault      SortKey = ""
	SortPriceAsc     SortKey = "price-asc"
	SortPriceDesc    SortKey = "price-desc"
	SortNameAsc      SortKey = "name-asc"
	SortNameDesc     SortKey = "name-desc"
	SortRatingDesc   SortKey = "rating-desc"
	SortDiscountDesc SortKey = "discount-desc"
)

// Spec is the combined filter/sort criteria. Nil bounds mean "not set".
// PriceMin > PriceMax is not rejected; it just yields an empty result.
// Search is not applied here: the caller re-queries the remote catalog with
// the term, which replaces the working collection before the stages run.
type Spec struct {
	Categories []string
	PriceMin   *float64
	PriceMax   *float64
	MinRating  *float64
	InStock    bool
	Search     string
	SortBy     SortKey
}

// Apply runs the filter stages in order (category, price, rating, stock)
// and then the terminal sort stage, returning a new slice.
func Apply(products []catalog.Product, spec Spec) []catalog.Product {
	filtered := make([]catalog.Product, 0, len(products))
	for _, p := range products {
		if !matchCategory(p, spec.Categories) {
			continue
		}
		if spec.PriceMin != nil && p.Price < *spec.PriceMin {
			continue
		}
		if spec.PriceMax != nil && p.Price > *spec.PriceMax {
			continue
		}
		if spec.MinRating != nil && p.Rating < *spec.MinRating {
			continue
		}
		if spec.InStock && p.Stock <= 0 {
			continue
		}
		filtered = append(filtered, p)
	}

	sortProducts(filtered, spec.SortBy)
	return filtered
}

// matchCategory keeps a product when no categories are selected, or when
// its category equals or contains any selected slug, case-insensitive.
// The substring match tolerates slug/name mismatches in the remote taxonomy.
func matchCategory(p catalog.Product, categories []string) bool {
	if len(categories) == 0 {
		return true
	}
	got := strings.ToLower(p.Category)
	for _, cat := range categories {
		want := strings.ToLower(cat)
		if got == want || strings.Contains(got, want) {
			return true
		}
	}
	return false
}

func sortProducts(products []catalog.Product, key SortKey) {
	switch key {
	case SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price < products[j].Price
		})
	case SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price > products[j].Price
		})
	case SortNameAsc:
		c := newCollator()
		sort.SliceStable(products, func(i, j int) bool {
			return c.CompareString(products[i].Title, products[j].Title) < 0
		})
	case SortNameDesc:
		c := newCollator()
		sort.SliceStable(products, func(i, j int) bool {
			return c.CompareString(products[i].Title, products[j].Title) > 0
		})
	case SortRatingDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Rating > products[j].Rating
		})
	case SortDiscountDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].DiscountPercentage > products[j].DiscountPercentage
		})
	default:
		// SortDefault preserves fetch order.
	}
}

func newCollator() *collate.Collator {
	return collate.New(language.English, collate.Loose)
}

// ParseSortKey maps a query value to a sort key, falling back to default
// order for anything unrecognized.
func ParseSortKey(v string) SortKey {
	switch SortKey(v) {
	case SortPriceAsc, SortPriceDesc, SortNameAsc, SortNameDesc, SortRatingDesc, SortDiscountDesc:
		return SortKey(v)
	default:
		return SortDefault
	}
}
