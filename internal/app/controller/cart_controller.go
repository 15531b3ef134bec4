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

type CartController struct {
	cartService service.CartService
}

func NewCartController(cartService service.CartService) *CartController {
	return &CartController{cartService: cartService}
}

type AddCartItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

// cartUserKey is the per-user storage key: carts are namespaced by the
// numeric account id.
func cartUserKey(c *gin.Context) (string, uint, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return "", 0, false
	}
	return strconv.FormatUint(uint64(userID), 10), userID, true
}

// GetCart returns the user's cart
// GET /api/v1/cart
func (ctrl *CartController) GetCart(c *gin.Context) {
	key, _, ok := cartUserKey(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, ctrl.cartService.GetCart(c.Request.Context(), key))
}

// AddItem adds a product to the cart
// POST /api/v1/cart/items
func (ctrl *CartController) AddItem(c *gin.Context) {
	key, _, ok := cartUserKey(c)
	if !ok {
		return
	}

	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "product_id is required")
		return
	}

	summary, err := ctrl.cartService.AddItem(c.Request.Context(), key, req.ProductID, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
		case errors.Is(err, service.ErrProductOutOfStock):
			apperrors.Conflict(c, apperrors.ProductOutOfStock, "Product is out of stock")
		default:
			middleware.GetLoggerFromContext(c).Error("Failed to add cart item", err, map[string]interface{}{
				"product_id": req.ProductID,
			})
			apperrors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusOK, summary)
}

// UpdateItem sets a line's quantity; zero or less removes the line
// PUT /api/v1/cart/items/:productId
func (ctrl *CartController) UpdateItem(c *gin.Context) {
	key, _, ok := cartUserKey(c)
	if !ok {
		return
	}

	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.CartInvalidQuantity, "quantity is required")
		return
	}

	summary, err := ctrl.cartService.UpdateQuantity(c.Request.Context(), key, c.Param("productId"), req.Quantity)
	if err != nil {
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, summary)
}

// RemoveItem removes a line from the cart
// DELETE /api/v1/cart/items/:productId
func (ctrl *CartController) RemoveItem(c *gin.Context) {
	key, _, ok := cartUserKey(c)
	if !ok {
		return
	}

	summary, err := ctrl.cartService.RemoveItem(c.Request.Context(), key, c.Param("productId"))
	if err != nil {
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, summary)
}

// ClearCart removes every line
// DELETE /api/v1/cart
func (ctrl *CartController) ClearCart(c *gin.Context) {
	key, _, ok := cartUserKey(c)
	if !ok {
		return
	}

	if err := ctrl.cartService.ClearCart(c.Request.Context(), key); err != nil {
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
}

// Checkout turns the cart into an order
// POST /api/v1/cart/checkout
func (ctrl *CartController) Checkout(c *gin.Context) {
	key, userID, ok := cartUserKey(c)
	if !ok {
		return
	}

	order, err := ctrl.cartService.Checkout(c.Request.Context(), key, userID)
	if err != nil {
		if errors.Is(err, service.ErrCartEmpty) {
			apperrors.BadRequest(c, apperrors.CartEmpty, "Cart is empty")
			return
		}
		middleware.GetLoggerFromContext(c).Error("Checkout failed", err, map[string]interface{}{
			"user_id": userID,
		})
		info := apperrors.ParseError(err, "order")
		apperrors.RespondWithError(c, http.StatusInternalServerError, info.Code, info.Message)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"order":   order,
	})
}

// Orders lists the user's past orders
// GET /api/v1/cart/orders
func (ctrl *CartController) Orders(c *gin.Context) {
	_, userID, ok := cartUserKey(c)
	if !ok {
		return
	}

	orders, err := ctrl.cartService.Orders(userID)
	if err != nil {
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"total":  len(orders),
	})
}
