// Package catalog holds the in-memory product catalog, the pure
// filter/sort query engine and the observable derived view over it.
package catalog

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/matmarket/matmarket-backend/internal/app/model"
)

type SortKey string

const (
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
	SortRating    SortKey = "rating"
	SortName      SortKey = "name"
	SortNewest    SortKey = "newest"
)

// Filter is the set of active constraints narrowing the catalog.
// A nil field imposes no constraint; present fields are ANDed.
type Filter struct {
	Category    *string
	Subcategory *string
	Vendor      *string
	Location    *string
	MinPrice    *float64
	MaxPrice    *float64
	InStock     *bool
	Search      string
}

// Matches reports whether a product satisfies every present predicate.
func (f Filter) Matches(p *model.Product) bool {
	if f.Category != nil && p.Category != *f.Category {
		return false
	}
	if f.Subcategory != nil && p.Subcategory != *f.Subcategory {
		return false
	}
	if f.Vendor != nil && p.VendorID != *f.Vendor {
		return false
	}
	if f.Location != nil && p.Location != *f.Location {
		return false
	}
	if f.MinPrice != nil && p.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.Price > *f.MaxPrice {
		return false
	}
	// InStock=false imposes no constraint, same as absent.
	if f.InStock != nil && *f.InStock && !p.InStock() {
		return false
	}
	if f.Search != "" {
		haystack := strings.ToLower(p.Name + " " + p.Description + " " + strings.Join(p.Tags, " "))
		if !strings.Contains(haystack, strings.ToLower(f.Search)) {
			return false
		}
	}
	return true
}

// FilterProducts returns the products matching the filter, preserving
// their relative order. A contradictory filter (min > max) yields an
// empty result, never an error.
func FilterProducts(products []model.Product, f Filter) []model.Product {
	result := make([]model.Product, 0, len(products))
	for i := range products {
		if f.Matches(&products[i]) {
			result = append(result, products[i])
		}
	}
	return result
}

// SortProducts returns a sorted copy of the product list. The sort is
// guaranteed stable: products comparing equal keep their relative order.
// SortNewest (and any unknown key) returns the list in its given order.
func SortProducts(products []model.Product, key SortKey) []model.Product {
	sorted := make([]model.Product, len(products))
	copy(sorted, products)

	switch key {
	case SortPriceLow:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Price < sorted[j].Price
		})
	case SortPriceHigh:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Price > sorted[j].Price
		})
	case SortRating:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Rating > sorted[j].Rating
		})
	case SortName:
		// Collators are not safe for concurrent use, so build one per call.
		collator := collate.New(language.English)
		sort.SliceStable(sorted, func(i, j int) bool {
			return collator.CompareString(sorted[i].Name, sorted[j].Name) < 0
		})
	case SortNewest:
		// Identity: the catalog carries no creation ordering beyond
		// its insertion order.
	}

	return sorted
}
