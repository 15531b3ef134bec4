package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/matmarket/matmarket-backend/internal/app/service"
	apperrors "github.com/matmarket/matmarket-backend/internal/errors"
	"github.com/matmarket/matmarket-backend/internal/middleware"
)

type FavoritesController struct {
	favoritesService service.FavoritesService
}

func NewFavoritesController(favoritesService service.FavoritesService) *FavoritesController {
	return &FavoritesController{favoritesService: favoritesService}
}

type AddFavoriteRequest struct {
	ProductID string `json:"product_id" binding:"required"`
}

func favoritesUserKey(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return "", false
	}
	return strconv.FormatUint(uint64(userID), 10), true
}

// List returns the user's favorites
// GET /api/v1/favorites
func (ctrl *FavoritesController) List(c *gin.Context) {
	key, ok := favoritesUserKey(c)
	if !ok {
		return
	}

	items := ctrl.favoritesService.List(c.Request.Context(), key)
	c.JSON(http.StatusOK, gin.H{
		"favorites": items,
		"total":     len(items),
	})
}

// Add favorites a product
// POST /api/v1/favorites
func (ctrl *FavoritesController) Add(c *gin.Context) {
	key, ok := favoritesUserKey(c)
	if !ok {
		return
	}

	var req AddFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "product_id is required")
		return
	}

	items, err := ctrl.favoritesService.Add(c.Request.Context(), key, req.ProductID)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
			return
		}
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"favorites": items,
		"total":     len(items),
	})
}

// Remove unfavorites a product
// DELETE /api/v1/favorites/:productId
func (ctrl *FavoritesController) Remove(c *gin.Context) {
	key, ok := favoritesUserKey(c)
	if !ok {
		return
	}

	items, err := ctrl.favoritesService.Remove(c.Request.Context(), key, c.Param("productId"))
	if err != nil {
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"favorites": items,
		"total":     len(items),
	})
}

// Clear removes all favorites
// DELETE /api/v1/favorites
func (ctrl *FavoritesController) Clear(c *gin.Context) {
	key, ok := favoritesUserKey(c)
	if !ok {
		return
	}

	if err := ctrl.favoritesService.Clear(c.Request.Context(), key); err != nil {
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Favorites cleared"})
}
