package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matmarket/matmarket-backend/internal/app/repository"
	"github.com/matmarket/matmarket-backend/internal/db"
	"github.com/matmarket/matmarket-backend/pkg/kvstore"
)

func setupFavoritesService(t *testing.T) FavoritesService {
	t.Helper()

	gormDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(gormDB) })

	catalogRepo := repository.NewCatalogRepository(gormDB)
	seedCatalogForCart(t, catalogRepo)

	catalogSvc, err := NewCatalogService(catalogRepo)
	require.NoError(t, err)

	return NewFavoritesService(catalogSvc, kvstore.NewMemoryStore())
}

func TestFavoritesService_AddSnapshotsProduct(t *testing.T) {
	svc := setupFavoritesService(t)
	ctx := context.Background()

	items, err := svc.Add(ctx, "user-1", "p1")
	require.NoError(t, err)

	require.Len(t, items, 1)
	assert.Equal(t, "Portland Cement", items[0].Name)
	assert.Equal(t, "BuildPro Materials", items[0].Vendor.Name)
	assert.Equal(t, "Cement & Concrete", items[0].Category)
	assert.True(t, svc.IsFavorite(ctx, "user-1", "p1"))
}

func TestFavoritesService_AddUnknownProduct(t *testing.T) {
	svc := setupFavoritesService(t)

	_, err := svc.Add(context.Background(), "user-1", "missing")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestFavoritesService_AddTwiceKeepsOne(t *testing.T) {
	svc := setupFavoritesService(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, "user-1", "p1")
	require.NoError(t, err)
	items, err := svc.Add(ctx, "user-1", "p1")
	require.NoError(t, err)

	assert.Len(t, items, 1)
}

func TestFavoritesService_RemoveAndClear(t *testing.T) {
	svc := setupFavoritesService(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, "user-1", "p1")
	require.NoError(t, err)
	_, err = svc.Add(ctx, "user-1", "p3")
	require.NoError(t, err)

	items, err := svc.Remove(ctx, "user-1", "p1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "p3", items[0].ID)

	require.NoError(t, svc.Clear(ctx, "user-1"))
	assert.Empty(t, svc.List(ctx, "user-1"))
}
