package repository

import (
	"gorm.io/gorm"

	"github.com/matmarket/matmarket-backend/internal/app/model"
	"github.com/matmarket/matmarket-backend/pkg/logger"
)

// CatalogRepository loads the full catalog tables. The catalog service
// turns the result into an immutable in-memory snapshot, so reads here
// happen only at startup and on scheduled refreshes.
type CatalogRepository interface {
	AllProducts() ([]model.Product, error)
	AllVendors() ([]model.Vendor, error)
	AllCategories() ([]model.Category, error)
	CreateProducts(products []model.Product) error
	CreateVendors(vendors []model.Vendor) error
	CreateCategories(categories []model.Category) error
}

type catalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) AllProducts() ([]model.Product, error) {
	var products []model.Product
	// Newest first: the snapshot's order is the default display order.
	if err := r.db.Order("created_at DESC").Find(&products).Error; err != nil {
		logger.Error("Failed to load products from database", err)
		return nil, err
	}

	logger.Debug("Products loaded from database", map[string]interface{}{
		"count": len(products),
	})
	return products, nil
}

func (r *catalogRepository) AllVendors() ([]model.Vendor, error) {
	var vendors []model.Vendor
	if err := r.db.Order("created_at ASC").Find(&vendors).Error; err != nil {
		logger.Error("Failed to load vendors from database", err)
		return nil, err
	}

	logger.Debug("Vendors loaded from database", map[string]interface{}{
		"count": len(vendors),
	})
	return vendors, nil
}

func (r *catalogRepository) AllCategories() ([]model.Category, error) {
	var categories []model.Category
	if err := r.db.Find(&categories).Error; err != nil {
		logger.Error("Failed to load categories from database", err)
		return nil, err
	}

	logger.Debug("Categories loaded from database", map[string]interface{}{
		"count": len(categories),
	})
	return categories, nil
}

func (r *catalogRepository) CreateProducts(products []model.Product) error {
	if len(products) == 0 {
		return nil
	}
	if err := r.db.Create(&products).Error; err != nil {
		logger.Error("Failed to create products in database", err, map[string]interface{}{
			"count": len(products),
		})
		return err
	}
	return nil
}

func (r *catalogRepository) CreateVendors(vendors []model.Vendor) error {
	if len(vendors) == 0 {
		return nil
	}
	if err := r.db.Create(&vendors).Error; err != nil {
		logger.Error("Failed to create vendors in database", err, map[string]interface{}{
			"count": len(vendors),
		})
		return err
	}
	return nil
}

func (r *catalogRepository) CreateCategories(categories []model.Category) error {
	if len(categories) == 0 {
		return nil
	}
	if err := r.db.Create(&categories).Error; err != nil {
		logger.Error("Failed to create categories in database", err, map[string]interface{}{
			"count": len(categories),
		})
		return err
	}
	return nil
}
