package catalog

import (
	"github.com/matmarket/matmarket-backend/internal/app/model"
)

// Catalog is an immutable snapshot of products, vendors and categories.
// Products reference vendors by id; lookups resolve the live vendor
// record instead of an embedded copy. All accessors return copies, so
// callers can never mutate the snapshot.
type Catalog struct {
	products   []model.Product
	vendors    []model.Vendor
	categories []model.Category

	productIndex map[string]int
	vendorIndex  map[string]int
}

// New builds a snapshot from the given slices. The slices are copied.
func New(products []model.Product, vendors []model.Vendor, categories []model.Category) *Catalog {
	c := &Catalog{
		products:     make([]model.Product, len(products)),
		vendors:      make([]model.Vendor, len(vendors)),
		categories:   make([]model.Category, len(categories)),
		productIndex: make(map[string]int, len(products)),
		vendorIndex:  make(map[string]int, len(vendors)),
	}
	copy(c.products, products)
	copy(c.vendors, vendors)
	copy(c.categories, categories)

	for i := range c.products {
		c.productIndex[c.products[i].ID] = i
	}
	for i := range c.vendors {
		c.vendorIndex[c.vendors[i].ID] = i
	}
	return c
}

// Products returns all products in catalog order.
func (c *Catalog) Products() []model.Product {
	out := make([]model.Product, len(c.products))
	copy(out, c.products)
	return out
}

// Vendors returns all vendors.
func (c *Catalog) Vendors() []model.Vendor {
	out := make([]model.Vendor, len(c.vendors))
	copy(out, c.vendors)
	return out
}

// Categories returns all categories.
func (c *Catalog) Categories() []model.Category {
	out := make([]model.Category, len(c.categories))
	copy(out, c.categories)
	return out
}

// ProductByID returns the product with the given id, if present.
func (c *Catalog) ProductByID(id string) (model.Product, bool) {
	i, ok := c.productIndex[id]
	if !ok {
		return model.Product{}, false
	}
	return c.products[i], true
}

// VendorByID returns the vendor with the given id, if present.
func (c *Catalog) VendorByID(id string) (model.Vendor, bool) {
	i, ok := c.vendorIndex[id]
	if !ok {
		return model.Vendor{}, false
	}
	return c.vendors[i], true
}

// VendorProducts returns all products of one vendor in catalog order.
func (c *Catalog) VendorProducts(vendorID string) []model.Product {
	var out []model.Product
	for i := range c.products {
		if c.products[i].VendorID == vendorID {
			out = append(out, c.products[i])
		}
	}
	return out
}

// FeaturedProducts returns all products flagged as featured.
func (c *Catalog) FeaturedProducts() []model.Product {
	var out []model.Product
	for i := range c.products {
		if c.products[i].Featured {
			out = append(out, c.products[i])
		}
	}
	return out
}

// Locations returns the distinct product locations in first-seen order.
func (c *Catalog) Locations() []string {
	seen := make(map[string]bool)
	var out []string
	for i := range c.products {
		loc := c.products[i].Location
		if loc == "" || seen[loc] {
			continue
		}
		seen[loc] = true
		out = append(out, loc)
	}
	return out
}

// Len returns the number of products in the snapshot.
func (c *Catalog) Len() int {
	return len(c.products)
}
