package controller

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/matmarket/matmarket-backend/internal/app/service"
	apperrors "github.com/matmarket/matmarket-backend/internal/errors"
	"github.com/matmarket/matmarket-backend/internal/middleware"
)

type CatalogController struct {
	catalogService service.CatalogService
}

func NewCatalogController(catalogService service.CatalogService) *CatalogController {
	return &CatalogController{catalogService: catalogService}
}

// ListProducts returns the filtered, sorted product list
// GET /api/v1/products
func (ctrl *CatalogController) ListProducts(c *gin.Context) {
	minPrice, err := service.ParsePrice(c.Query("min_price"))
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidRange, "min_price must be a number")
		return
	}
	maxPrice, err := service.ParsePrice(c.Query("max_price"))
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidRange, "max_price must be a number")
		return
	}

	opts := service.ListOptions{
		Category:    c.Query("category"),
		Subcategory: c.Query("subcategory"),
		Vendor:      c.Query("vendor"),
		Location:    c.Query("location"),
		MinPrice:    minPrice,
		MaxPrice:    maxPrice,
		InStock:     c.Query("in_stock") == "true",
		Search:      c.Query("search"),
		SortBy:      c.DefaultQuery("sort", "newest"),
	}

	products := ctrl.catalogService.ListProducts(opts)
	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"total":    len(products),
	})
}

// GetProduct returns one product by id
// GET /api/v1/products/:id
func (ctrl *CatalogController) GetProduct(c *gin.Context) {
	product, err := ctrl.catalogService.GetProduct(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
			return
		}
		apperrors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": product})
}

// FeaturedProducts returns the featured selection
// GET /api/v1/products/featured
func (ctrl *CatalogController) FeaturedProducts(c *gin.Context) {
	products := ctrl.catalogService.FeaturedProducts()
	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"total":    len(products),
	})
}

// GetFilterOptions returns the distinct filterable values
// GET /api/v1/products/filters
func (ctrl *CatalogController) GetFilterOptions(c *gin.Context) {
	c.JSON(http.StatusOK, ctrl.catalogService.GetFilterOptions())
}

// ExportProducts streams the catalog as an xlsx workbook (admin only)
// GET /api/v1/products/export
func (ctrl *CatalogController) ExportProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	data, err := ctrl.catalogService.ExportProducts()
	if err != nil {
		log.Error("Catalog export failed", err)
		apperrors.InternalError(c, "")
		return
	}

	filename := fmt.Sprintf("catalog-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// ListVendors returns all vendors
// GET /api/v1/vendors
func (ctrl *CatalogController) ListVendors(c *gin.Context) {
	vendors := ctrl.catalogService.ListVendors()
	c.JSON(http.StatusOK, gin.H{
		"vendors": vendors,
		"total":   len(vendors),
	})
}

// GetVendor returns one vendor by id
// GET /api/v1/vendors/:id
func (ctrl *CatalogController) GetVendor(c *gin.Context) {
	vendor, err := ctrl.catalogService.GetVendor(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrVendorNotFound) {
			apperrors.NotFound(c, apperrors.VendorNotFound, "Vendor not found")
			return
		}
		apperrors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"vendor": vendor})
}

// VendorProducts returns one vendor's products
// GET /api/v1/vendors/:id/products
func (ctrl *CatalogController) VendorProducts(c *gin.Context) {
	products, err := ctrl.catalogService.VendorProducts(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrVendorNotFound) {
			apperrors.NotFound(c, apperrors.VendorNotFound, "Vendor not found")
			return
		}
		apperrors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"total":    len(products),
	})
}

// ListCategories returns all categories
// GET /api/v1/categories
func (ctrl *CatalogController) ListCategories(c *gin.Context) {
	categories := ctrl.catalogService.ListCategories()
	c.JSON(http.StatusOK, gin.H{
		"categories": categories,
		"total":      len(categories),
	})
}

// ListLocations returns the distinct product locations
// GET /api/v1/locations
func (ctrl *CatalogController) ListLocations(c *gin.Context) {
	locations := ctrl.catalogService.ListLocations()
	c.JSON(http.StatusOK, gin.H{"locations": locations})
}

// Reload forces a catalog snapshot refresh (admin only)
// POST /api/v1/products/reload
func (ctrl *CatalogController) Reload(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	if err := ctrl.catalogService.Reload(); err != nil {
		log.Error("Catalog reload failed", err)
		apperrors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Catalog reloaded"})
}
