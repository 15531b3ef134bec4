package service

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/xuri/excelize/v2"

	"github.com/matmarket/matmarket-backend/internal/app/model"
	"github.com/matmarket/matmarket-backend/internal/app/repository"
	"github.com/matmarket/matmarket-backend/internal/catalog"
	"github.com/matmarket/matmarket-backend/pkg/logger"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrVendorNotFound  = errors.New("vendor not found")
)

// ListOptions are the query-level filter and sort inputs for a product
// listing. Empty strings and nil numbers impose no constraint.
type ListOptions struct {
	Category    string
	Subcategory string
	Vendor      string
	Location    string
	MinPrice    *float64
	MaxPrice    *float64
	InStock     bool
	Search      string
	SortBy      string
}

// FilterOptions is the set of distinct values a client can filter by,
// derived from the current snapshot.
type FilterOptions struct {
	Categories []model.Category  `json:"categories"`
	Locations  []string          `json:"locations"`
	Vendors    []model.VendorRef `json:"vendors"`
	MinPrice   float64           `json:"min_price"`
	MaxPrice   float64           `json:"max_price"`
}

type CatalogService interface {
	// Reload replaces the in-memory snapshot from the database.
	Reload() error
	Snapshot() *catalog.Catalog
	View() *catalog.View

	ListProducts(opts ListOptions) []model.Product
	GetProduct(id string) (*model.Product, error)
	FeaturedProducts() []model.Product
	ListVendors() []model.Vendor
	GetVendor(id string) (*model.Vendor, error)
	VendorProducts(vendorID string) ([]model.Product, error)
	ListCategories() []model.Category
	ListLocations() []string
	GetFilterOptions() FilterOptions

	// ExportProducts renders the current product snapshot as an xlsx
	// workbook.
	ExportProducts() ([]byte, error)
}

type catalogService struct {
	repo repository.CatalogRepository

	mu       sync.RWMutex
	snapshot *catalog.Catalog
	view     *catalog.View
}

// NewCatalogService loads the initial snapshot from the database.
func NewCatalogService(repo repository.CatalogRepository) (CatalogService, error) {
	s := &catalogService{repo: repo}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *catalogService) Reload() error {
	products, err := s.repo.AllProducts()
	if err != nil {
		return err
	}
	vendors, err := s.repo.AllVendors()
	if err != nil {
		return err
	}
	categories, err := s.repo.AllCategories()
	if err != nil {
		return err
	}

	snapshot := catalog.New(products, vendors, categories)

	s.mu.Lock()
	s.snapshot = snapshot
	if s.view == nil {
		s.view = catalog.NewView(snapshot)
	} else {
		s.view.SetCatalog(snapshot)
	}
	s.mu.Unlock()

	logger.Info("Catalog snapshot loaded", map[string]interface{}{
		"products":   len(products),
		"vendors":    len(vendors),
		"categories": len(categories),
	})
	return nil
}

func (s *catalogService) Snapshot() *catalog.Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

func (s *catalogService) View() *catalog.View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view
}

func (s *catalogService) ListProducts(opts ListOptions) []model.Product {
	filter := catalog.Filter{Search: opts.Search}
	if opts.Category != "" {
		filter.Category = &opts.Category
	}
	if opts.Subcategory != "" {
		filter.Subcategory = &opts.Subcategory
	}
	if opts.Vendor != "" {
		filter.Vendor = &opts.Vendor
	}
	if opts.Location != "" {
		filter.Location = &opts.Location
	}
	filter.MinPrice = opts.MinPrice
	filter.MaxPrice = opts.MaxPrice
	if opts.InStock {
		inStock := true
		filter.InStock = &inStock
	}

	snapshot := s.Snapshot()
	filtered := catalog.FilterProducts(snapshot.Products(), filter)
	return catalog.SortProducts(filtered, catalog.SortKey(opts.SortBy))
}

func (s *catalogService) GetProduct(id string) (*model.Product, error) {
	product, ok := s.Snapshot().ProductByID(id)
	if !ok {
		logger.Warn("Product lookup failed", map[string]interface{}{
			"product_id": id,
		})
		return nil, ErrProductNotFound
	}
	return &product, nil
}

func (s *catalogService) FeaturedProducts() []model.Product {
	return s.Snapshot().FeaturedProducts()
}

func (s *catalogService) ListVendors() []model.Vendor {
	return s.Snapshot().Vendors()
}

func (s *catalogService) GetVendor(id string) (*model.Vendor, error) {
	vendor, ok := s.Snapshot().VendorByID(id)
	if !ok {
		logger.Warn("Vendor lookup failed", map[string]interface{}{
			"vendor_id": id,
		})
		return nil, ErrVendorNotFound
	}
	return &vendor, nil
}

func (s *catalogService) VendorProducts(vendorID string) ([]model.Product, error) {
	snapshot := s.Snapshot()
	if _, ok := snapshot.VendorByID(vendorID); !ok {
		return nil, ErrVendorNotFound
	}
	return snapshot.VendorProducts(vendorID), nil
}

func (s *catalogService) ListCategories() []model.Category {
	return s.Snapshot().Categories()
}

func (s *catalogService) ListLocations() []string {
	return s.Snapshot().Locations()
}

func (s *catalogService) GetFilterOptions() FilterOptions {
	snapshot := s.Snapshot()

	opts := FilterOptions{
		Categories: snapshot.Categories(),
		Locations:  snapshot.Locations(),
	}
	for _, v := range snapshot.Vendors() {
		opts.Vendors = append(opts.Vendors, model.VendorRef{ID: v.ID, Name: v.Name})
	}
	for i, p := range snapshot.Products() {
		if i == 0 || p.Price < opts.MinPrice {
			opts.MinPrice = p.Price
		}
		if p.Price > opts.MaxPrice {
			opts.MaxPrice = p.Price
		}
	}
	return opts
}

func (s *catalogService) ExportProducts() ([]byte, error) {
	snapshot := s.Snapshot()
	products := snapshot.Products()

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Products"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"ID", "Name", "Category", "Subcategory", "Vendor", "Price", "Stock", "Rating", "Location"}
	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, err
		}
	}

	for row, p := range products {
		vendorName := p.VendorID
		if vendor, ok := snapshot.VendorByID(p.VendorID); ok {
			vendorName = vendor.Name
		}
		values := []interface{}{
			p.ID, p.Name, p.Category, p.Subcategory, vendorName,
			p.Price, p.StockQuantity, p.Rating, p.Location,
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		logger.Error("Failed to write catalog export", err)
		return nil, err
	}

	logger.Info("Catalog exported", map[string]interface{}{
		"products": len(products),
		"bytes":    buf.Len(),
	})
	return buf.Bytes(), nil
}

// ParsePrice converts a query-string price into a pointer, tolerating
// the empty string.
func ParsePrice(raw string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid price %q: %w", raw, err)
	}
	return &value, nil
}
