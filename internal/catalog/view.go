package catalog

import (
	"sync"

	"github.com/matmarket/matmarket-backend/internal/app/model"
	"github.com/matmarket/matmarket-backend/pkg/logger"
)

// FilterOption mutates one key of a Filter. Options passed to
// View.SetFilters merge shallowly: only the keys an option names
// change, everything else keeps its current value. The Without*
// variants clear a key explicitly.
type FilterOption func(*Filter)

func WithCategory(v string) FilterOption    { return func(f *Filter) { f.Category = &v } }
func WithoutCategory() FilterOption         { return func(f *Filter) { f.Category = nil } }
func WithSubcategory(v string) FilterOption { return func(f *Filter) { f.Subcategory = &v } }
func WithoutSubcategory() FilterOption      { return func(f *Filter) { f.Subcategory = nil } }
func WithVendor(v string) FilterOption      { return func(f *Filter) { f.Vendor = &v } }
func WithoutVendor() FilterOption           { return func(f *Filter) { f.Vendor = nil } }
func WithLocation(v string) FilterOption    { return func(f *Filter) { f.Location = &v } }
func WithoutLocation() FilterOption         { return func(f *Filter) { f.Location = nil } }
func WithMinPrice(v float64) FilterOption   { return func(f *Filter) { f.MinPrice = &v } }
func WithoutMinPrice() FilterOption         { return func(f *Filter) { f.MinPrice = nil } }
func WithMaxPrice(v float64) FilterOption   { return func(f *Filter) { f.MaxPrice = &v } }
func WithoutMaxPrice() FilterOption         { return func(f *Filter) { f.MaxPrice = nil } }
func WithInStock(v bool) FilterOption       { return func(f *Filter) { f.InStock = &v } }
func WithoutInStock() FilterOption          { return func(f *Filter) { f.InStock = nil } }

// Snapshot is one consistent result of the derived view: the visible
// product list together with the inputs that produced it.
type Snapshot struct {
	Products   []model.Product
	SearchTerm string
	Filter     Filter
	SortBy     SortKey
}

// View is the derived view over a catalog: it owns the search term,
// filter state and sort key, recomputes the visible product list
// whenever any of them change, and notifies subscribers with a
// consistent snapshot after each recompute.
type View struct {
	mu         sync.Mutex
	catalog    *Catalog
	searchTerm string
	filter     Filter
	sortBy     SortKey
	visible    []model.Product

	nextSubID   int
	subscribers map[int]func(Snapshot)
}

// NewView creates a view over the catalog with no constraints and the
// default sort order.
func NewView(c *Catalog) *View {
	v := &View{
		catalog:     c,
		sortBy:      SortNewest,
		subscribers: make(map[int]func(Snapshot)),
	}
	v.mu.Lock()
	v.recomputeAndNotify()
	v.mu.Unlock()
	return v
}

// Products returns the current visible product list.
func (v *View) Products() []model.Product {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]model.Product, len(v.visible))
	copy(out, v.visible)
	return out
}

// Snapshot returns the current state of the view.
func (v *View) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.snapshotLocked()
}

// SetSearchTerm replaces the search term and recomputes.
func (v *View) SetSearchTerm(term string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.searchTerm = term
	v.recomputeAndNotify()
}

// SetSortBy replaces the sort key and recomputes.
func (v *View) SetSortBy(key SortKey) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.sortBy = key
	v.recomputeAndNotify()
}

// SetFilters applies the given options to the current filter state.
// Keys not named by any option keep their value.
func (v *View) SetFilters(opts ...FilterOption) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, opt := range opts {
		opt(&v.filter)
	}
	v.recomputeAndNotify()
}

// ClearFilters resets filters to empty, search to the empty string and
// sort back to the default order.
func (v *View) ClearFilters() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.filter = Filter{}
	v.searchTerm = ""
	v.sortBy = SortNewest
	v.recomputeAndNotify()
}

// SetCatalog swaps in a fresh catalog snapshot (refresh path) and
// recomputes against it.
func (v *View) SetCatalog(c *Catalog) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.catalog = c
	v.recomputeAndNotify()
}

// Subscribe registers a callback invoked with a snapshot after every
// recompute. The returned function removes the subscription.
func (v *View) Subscribe(fn func(Snapshot)) func() {
	v.mu.Lock()
	defer v.mu.Unlock()
	id := v.nextSubID
	v.nextSubID++
	v.subscribers[id] = fn
	return func() {
		v.mu.Lock()
		defer v.mu.Unlock()
		delete(v.subscribers, id)
	}
}

func (v *View) snapshotLocked() Snapshot {
	products := make([]model.Product, len(v.visible))
	copy(products, v.visible)
	return Snapshot{
		Products:   products,
		SearchTerm: v.searchTerm,
		Filter:     v.filter,
		SortBy:     v.sortBy,
	}
}

// recomputeAndNotify recomputes the visible list from the current
// inputs and delivers the new snapshot to all subscribers. Must be
// called with v.mu held; callbacks run after the state is updated so
// no subscriber observes a stale derived list next to fresh inputs.
func (v *View) recomputeAndNotify() {
	effective := v.filter
	effective.Search = v.searchTerm

	filtered := FilterProducts(v.catalog.products, effective)
	v.visible = SortProducts(filtered, v.sortBy)

	logger.Debug("Catalog view recomputed", map[string]interface{}{
		"visible": len(v.visible),
		"total":   v.catalog.Len(),
		"sort_by": string(v.sortBy),
	})

	if len(v.subscribers) == 0 {
		return
	}
	snapshot := v.snapshotLocked()
	for _, fn := range v.subscribers {
		fn(snapshot)
	}
}
