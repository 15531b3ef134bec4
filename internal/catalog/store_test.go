package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matmarket/matmarket-backend/internal/app/model"
)

func testCatalog() *Catalog {
	vendors := []model.Vendor{
		{ID: "vendor-1", Name: "BuildPro Materials", Location: "Sofia"},
		{ID: "vendor-2", Name: "TileMaster Ltd", Location: "Plovdiv"},
		{ID: "vendor-3", Name: "DryWall Depot", Location: "Varna"},
	}
	categories := []model.Category{
		{ID: "cat-1", Name: "Cement & Concrete"},
		{ID: "cat-2", Name: "Tiles & Flooring"},
	}
	return New(testProducts(), vendors, categories)
}

func TestCatalog_ProductByID(t *testing.T) {
	c := testCatalog()

	p, ok := c.ProductByID("prod-3")
	require.True(t, ok)
	assert.Equal(t, "Interior Wall Paint 10L", p.Name)

	_, ok = c.ProductByID("missing")
	assert.False(t, ok)
}

func TestCatalog_VendorByID(t *testing.T) {
	c := testCatalog()

	v, ok := c.VendorByID("vendor-2")
	require.True(t, ok)
	assert.Equal(t, "TileMaster Ltd", v.Name)

	_, ok = c.VendorByID("missing")
	assert.False(t, ok)
}

func TestCatalog_VendorProducts(t *testing.T) {
	c := testCatalog()

	result := c.VendorProducts("vendor-2")

	require.Len(t, result, 2)
	assert.Equal(t, "prod-2", result[0].ID)
	assert.Equal(t, "prod-5", result[1].ID)
}

func TestCatalog_Locations(t *testing.T) {
	c := testCatalog()

	locations := c.Locations()

	assert.Equal(t, []string{"Sofia", "Plovdiv", "Varna"}, locations)
}

func TestCatalog_AccessorsReturnCopies(t *testing.T) {
	c := testCatalog()

	products := c.Products()
	products[0].Name = "mutated"

	fresh, ok := c.ProductByID(products[0].ID)
	require.True(t, ok)
	assert.NotEqual(t, "mutated", fresh.Name)
}

func TestCatalog_NewCopiesInputSlices(t *testing.T) {
	products := testProducts()
	c := New(products, nil, nil)

	products[0].Name = "mutated after construction"

	p, ok := c.ProductByID(products[0].ID)
	require.True(t, ok)
	assert.Equal(t, "Portland Cement 25kg", p.Name)
}

func TestCatalog_Empty(t *testing.T) {
	c := New(nil, nil, nil)

	assert.Equal(t, 0, c.Len())
	assert.Empty(t, c.Products())
	assert.Empty(t, c.Locations())

	_, ok := c.ProductByID("anything")
	assert.False(t, ok)
}
