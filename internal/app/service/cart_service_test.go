package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matmarket/matmarket-backend/internal/app/model"
	"github.com/matmarket/matmarket-backend/internal/app/repository"
	"github.com/matmarket/matmarket-backend/internal/db"
	"github.com/matmarket/matmarket-backend/pkg/kvstore"
)

func seedCatalogForCart(t *testing.T, repo repository.CatalogRepository) {
	t.Helper()

	require.NoError(t, repo.CreateVendors([]model.Vendor{
		{ID: "vendor-1", Name: "BuildPro Materials", Location: "Sofia"},
	}))
	require.NoError(t, repo.CreateProducts([]model.Product{
		{ID: "p1", Name: "Portland Cement", Price: 12.50, Category: "Cement & Concrete",
			VendorID: "vendor-1", Location: "Sofia", StockQuantity: 100},
		{ID: "p2", Name: "Porcelain Tile", Price: 28.90, Category: "Tiles & Flooring",
			VendorID: "vendor-1", Location: "Sofia", StockQuantity: 0},
		{ID: "p3", Name: "Dry Mortar", Price: 8.90, Category: "Cement & Concrete",
			VendorID: "vendor-1", Location: "Sofia", StockQuantity: 40},
	}))
}

func setupCartService(t *testing.T) (CartService, AuthService) {
	t.Helper()

	gormDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(gormDB) })

	catalogRepo := repository.NewCatalogRepository(gormDB)
	seedCatalogForCart(t, catalogRepo)

	catalogSvc, err := NewCatalogService(catalogRepo)
	require.NoError(t, err)

	orderRepo := repository.NewOrderRepository(gormDB)
	cartSvc := NewCartService(catalogSvc, orderRepo, kvstore.NewMemoryStore())

	userRepo := repository.NewUserRepository(gormDB)
	codeRepo := repository.NewAdminCodeRepository(gormDB)
	authSvc := NewAuthService(userRepo, codeRepo, testJWTSecret, 15*time.Minute, 7*24*time.Hour)
	return cartSvc, authSvc
}

func TestCartService_AddItemSnapshotsProduct(t *testing.T) {
	svc, _ := setupCartService(t)
	ctx := context.Background()

	summary, err := svc.AddItem(ctx, "user-1", "p1", 2)
	require.NoError(t, err)

	require.Len(t, summary.Lines, 1)
	line := summary.Lines[0]
	assert.Equal(t, "Portland Cement", line.Name)
	assert.Equal(t, 12.50, line.Price)
	assert.Equal(t, "BuildPro Materials", line.Vendor.Name)
	require.NotNil(t, line.MaxQuantity)
	assert.Equal(t, 100, *line.MaxQuantity)
	assert.Equal(t, 25.0, summary.Total)
}

func TestCartService_AddUnknownProduct(t *testing.T) {
	svc, _ := setupCartService(t)

	_, err := svc.AddItem(context.Background(), "user-1", "missing", 1)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCartService_AddOutOfStockProduct(t *testing.T) {
	svc, _ := setupCartService(t)

	_, err := svc.AddItem(context.Background(), "user-1", "p2", 1)
	assert.ErrorIs(t, err, ErrProductOutOfStock)
}

func TestCartService_Checkout(t *testing.T) {
	cartSvc, authSvc := setupCartService(t)
	ctx := context.Background()

	user, _, err := authSvc.RegisterCustomer("buyer@example.com", "secret123", "Ivan", "")
	require.NoError(t, err)

	_, err = cartSvc.AddItem(ctx, "user-1", "p1", 3)
	require.NoError(t, err)
	_, err = cartSvc.AddItem(ctx, "user-1", "p3", 1)
	require.NoError(t, err)

	order, err := cartSvc.Checkout(ctx, "user-1", user.ID)
	require.NoError(t, err)

	assert.NotEmpty(t, order.Number)
	assert.Equal(t, user.ID, order.UserID)
	assert.Equal(t, 3*12.50+8.90, order.Total)
	assert.Equal(t, 4, order.ItemCount)
	assert.Len(t, order.Items, 2)

	// Checkout empties the cart.
	summary := cartSvc.GetCart(ctx, "user-1")
	assert.Empty(t, summary.Lines)
	assert.Equal(t, 0.0, summary.Total)

	orders, err := cartSvc.Orders(user.ID)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, order.Number, orders[0].Number)
}

func TestCartService_CheckoutEmptyCart(t *testing.T) {
	svc, _ := setupCartService(t)

	_, err := svc.Checkout(context.Background(), "user-1", 1)
	assert.ErrorIs(t, err, ErrCartEmpty)
}

func TestCartService_UpdateAndRemove(t *testing.T) {
	svc, _ := setupCartService(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "user-1", "p1", 2)
	require.NoError(t, err)

	summary, err := svc.UpdateQuantity(ctx, "user-1", "p1", 5)
	require.NoError(t, err)
	assert.Equal(t, 5, summary.Lines[0].Quantity)

	summary, err = svc.RemoveItem(ctx, "user-1", "p1")
	require.NoError(t, err)
	assert.Empty(t, summary.Lines)
}
