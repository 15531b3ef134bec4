package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matmarket/matmarket-backend/internal/app/model"
)

func TestView_InitialStateShowsEverything(t *testing.T) {
	v := NewView(testCatalog())

	snap := v.Snapshot()

	assert.Len(t, snap.Products, 5)
	assert.Equal(t, "", snap.SearchTerm)
	assert.Equal(t, SortNewest, snap.SortBy)
}

func TestView_SetSearchTerm(t *testing.T) {
	v := NewView(testCatalog())

	v.SetSearchTerm("paint")

	products := v.Products()
	require.Len(t, products, 1)
	assert.Equal(t, "prod-3", products[0].ID)
}

func TestView_SetFiltersMergesShallowly(t *testing.T) {
	v := NewView(testCatalog())

	v.SetFilters(WithCategory("Drywall & Insulation"))
	assert.Len(t, v.Products(), 2)

	// A later call touching a different key keeps the category.
	v.SetFilters(WithInStock(true))
	products := v.Products()
	require.Len(t, products, 2)
	snap := v.Snapshot()
	require.NotNil(t, snap.Filter.Category)
	assert.Equal(t, "Drywall & Insulation", *snap.Filter.Category)

	// Narrow further within the merged state.
	v.SetFilters(WithMaxPrice(20.0))
	products = v.Products()
	require.Len(t, products, 1)
	assert.Equal(t, "prod-4", products[0].ID)
}

func TestView_SetFiltersExplicitClear(t *testing.T) {
	v := NewView(testCatalog())

	v.SetFilters(WithCategory("Paints & Coatings"), WithLocation("Sofia"))
	require.Len(t, v.Products(), 1)

	v.SetFilters(WithoutCategory())

	snap := v.Snapshot()
	assert.Nil(t, snap.Filter.Category)
	require.NotNil(t, snap.Filter.Location)
	assert.Equal(t, "Sofia", *snap.Filter.Location)
	assert.Len(t, snap.Products, 2)
}

func TestView_ClearFiltersResetsEverything(t *testing.T) {
	v := NewView(testCatalog())
	v.SetSearchTerm("cement")
	v.SetSortBy(SortPriceHigh)
	v.SetFilters(WithCategory("Cement & Concrete"), WithMinPrice(5.0))

	v.ClearFilters()

	snap := v.Snapshot()
	assert.Len(t, snap.Products, 5)
	assert.Equal(t, "", snap.SearchTerm)
	assert.Equal(t, Filter{}, snap.Filter)
	assert.Equal(t, SortNewest, snap.SortBy)
}

func TestView_SearchAndFilterCompose(t *testing.T) {
	v := NewView(testCatalog())

	v.SetFilters(WithLocation("Plovdiv"))
	v.SetSearchTerm("wool")

	products := v.Products()
	require.Len(t, products, 1)
	assert.Equal(t, "prod-5", products[0].ID)
}

func TestView_SortApplied(t *testing.T) {
	v := NewView(testCatalog())

	v.SetSortBy(SortPriceLow)

	products := v.Products()
	for i := 1; i < len(products); i++ {
		assert.LessOrEqual(t, products[i-1].Price, products[i].Price)
	}
}

func TestView_SubscriberNotifiedWithConsistentSnapshot(t *testing.T) {
	v := NewView(testCatalog())

	var got []Snapshot
	unsubscribe := v.Subscribe(func(s Snapshot) {
		got = append(got, s)
	})
	defer unsubscribe()

	v.SetSearchTerm("tiles")

	require.Len(t, got, 1)
	assert.Equal(t, "tiles", got[0].SearchTerm)
	require.Len(t, got[0].Products, 1)
	assert.Equal(t, "prod-2", got[0].Products[0].ID)
}

func TestView_UnsubscribeStopsNotifications(t *testing.T) {
	v := NewView(testCatalog())

	count := 0
	unsubscribe := v.Subscribe(func(Snapshot) { count++ })

	v.SetSearchTerm("cement")
	require.Equal(t, 1, count)

	unsubscribe()
	v.SetSearchTerm("paint")
	assert.Equal(t, 1, count)
}

func TestView_SetCatalogReappliesState(t *testing.T) {
	v := NewView(testCatalog())
	v.SetFilters(WithCategory("Cement & Concrete"))
	require.Len(t, v.Products(), 1)

	refreshed := New([]model.Product{
		{ID: "new-1", Name: "Rapid Cement 40kg", Price: 18.0, Category: "Cement & Concrete", StockQuantity: 50},
		{ID: "new-2", Name: "Grout Mix", Price: 7.5, Category: "Tiles & Flooring", StockQuantity: 30},
	}, nil, nil)

	v.SetCatalog(refreshed)

	products := v.Products()
	require.Len(t, products, 1)
	assert.Equal(t, "new-1", products[0].ID)
}

func TestView_SnapshotProductsAreCopies(t *testing.T) {
	v := NewView(testCatalog())

	snap := v.Snapshot()
	snap.Products[0].Name = "mutated"

	assert.NotEqual(t, "mutated", v.Products()[0].Name)
}
