package service

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/matmarket/matmarket-backend/internal/app/model"
	"github.com/matmarket/matmarket-backend/internal/app/repository"
	"github.com/matmarket/matmarket-backend/internal/cart"
	"github.com/matmarket/matmarket-backend/pkg/kvstore"
	"github.com/matmarket/matmarket-backend/pkg/logger"
)

var (
	ErrCartEmpty         = errors.New("cart is empty")
	ErrProductOutOfStock = errors.New("product is out of stock")
)

// CartSummary is the wire form of a cart.
type CartSummary struct {
	Lines     []model.CartLine `json:"lines"`
	Total     float64          `json:"total"`
	ItemCount int              `json:"item_count"`
}

type CartService interface {
	GetCart(ctx context.Context, userID string) CartSummary
	AddItem(ctx context.Context, userID, productID string, quantity int) (CartSummary, error)
	UpdateQuantity(ctx context.Context, userID, productID string, quantity int) (CartSummary, error)
	RemoveItem(ctx context.Context, userID, productID string) (CartSummary, error)
	ClearCart(ctx context.Context, userID string) error
	// Checkout turns the cart into an order; the cart is cleared only
	// after the order is stored.
	Checkout(ctx context.Context, userID string, accountID uint) (*model.Order, error)
	Orders(userID uint) ([]model.Order, error)
}

type cartService struct {
	catalogSvc CatalogService
	orderRepo  repository.OrderRepository
	store      kvstore.Store

	mu    sync.Mutex
	carts map[string]*cart.Cart
}

func NewCartService(catalogSvc CatalogService, orderRepo repository.OrderRepository, store kvstore.Store) CartService {
	return &cartService{
		catalogSvc: catalogSvc,
		orderRepo:  orderRepo,
		store:      store,
		carts:      make(map[string]*cart.Cart),
	}
}

// userCart returns the user's aggregate, rehydrating it on first access.
func (s *cartService) userCart(ctx context.Context, userID string) *cart.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.carts[userID]; ok {
		return c
	}
	c := cart.Load(ctx, s.store, userID)
	s.carts[userID] = c
	return c
}

func (s *cartService) summary(c *cart.Cart) CartSummary {
	return CartSummary{
		Lines:     c.Lines(),
		Total:     c.Total(),
		ItemCount: c.ItemCount(),
	}
}

func (s *cartService) GetCart(ctx context.Context, userID string) CartSummary {
	return s.summary(s.userCart(ctx, userID))
}

func (s *cartService) AddItem(ctx context.Context, userID, productID string, quantity int) (CartSummary, error) {
	product, err := s.catalogSvc.GetProduct(productID)
	if err != nil {
		return CartSummary{}, err
	}
	if !product.InStock() {
		logger.Warn("Rejected add of out-of-stock product", map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		return CartSummary{}, ErrProductOutOfStock
	}

	vendorRef := model.VendorRef{ID: product.VendorID, Name: product.VendorID}
	if vendor, err := s.catalogSvc.GetVendor(product.VendorID); err == nil {
		vendorRef.Name = vendor.Name
	}

	var image string
	if len(product.Images) > 0 {
		image = product.Images[0]
	}
	maxQuantity := product.StockQuantity

	c := s.userCart(ctx, userID)
	err = c.AddItem(ctx, model.CartLine{
		ProductID:   product.ID,
		Name:        product.Name,
		Price:       product.Price,
		Image:       image,
		Vendor:      vendorRef,
		Quantity:    quantity,
		MaxQuantity: &maxQuantity,
	})
	if err != nil {
		return CartSummary{}, err
	}

	logger.Info("Cart item added", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
		"quantity":   quantity,
	})
	return s.summary(c), nil
}

func (s *cartService) UpdateQuantity(ctx context.Context, userID, productID string, quantity int) (CartSummary, error) {
	c := s.userCart(ctx, userID)
	if err := c.UpdateQuantity(ctx, productID, quantity); err != nil {
		return CartSummary{}, err
	}
	return s.summary(c), nil
}

func (s *cartService) RemoveItem(ctx context.Context, userID, productID string) (CartSummary, error) {
	c := s.userCart(ctx, userID)
	if err := c.RemoveItem(ctx, productID); err != nil {
		return CartSummary{}, err
	}
	return s.summary(c), nil
}

func (s *cartService) ClearCart(ctx context.Context, userID string) error {
	return s.userCart(ctx, userID).Clear(ctx)
}

func (s *cartService) Checkout(ctx context.Context, userID string, accountID uint) (*model.Order, error) {
	c := s.userCart(ctx, userID)
	lines := c.Lines()
	if len(lines) == 0 {
		return nil, ErrCartEmpty
	}

	order := &model.Order{
		Number:    uuid.New().String(),
		UserID:    accountID,
		Total:     c.Total(),
		ItemCount: c.ItemCount(),
		Status:    model.OrderStatusPlaced,
	}
	for _, line := range lines {
		order.Items = append(order.Items, model.OrderItem{
			ProductID:  line.ProductID,
			Name:       line.Name,
			Price:      line.Price,
			Quantity:   line.Quantity,
			VendorID:   line.Vendor.ID,
			VendorName: line.Vendor.Name,
		})
	}

	if err := s.orderRepo.Create(order); err != nil {
		return nil, err
	}

	// The order exists; only now does the cart empty.
	if err := c.Clear(ctx); err != nil {
		logger.Error("Order stored but cart clear failed", err, map[string]interface{}{
			"user_id": userID,
			"number":  order.Number,
		})
	}

	logger.Info("Checkout completed", map[string]interface{}{
		"user_id": userID,
		"number":  order.Number,
		"total":   order.Total,
		"items":   order.ItemCount,
	})
	return order, nil
}

func (s *cartService) Orders(userID uint) ([]model.Order, error) {
	return s.orderRepo.FindByUserID(userID)
}
