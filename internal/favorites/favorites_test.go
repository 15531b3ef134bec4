package favorites

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matmarket/matmarket-backend/internal/app/model"
	"github.com/matmarket/matmarket-backend/pkg/kvstore"
)

func item(id, name string) model.FavoriteItem {
	return model.FavoriteItem{
		ID:       id,
		Name:     name,
		Price:    25.0,
		Vendor:   model.VendorRef{ID: "vendor-1", Name: "BuildPro Materials"},
		Category: "Cement & Concrete",
		Location: "Sofia",
	}
}

func TestSet_AddAndIsFavorite(t *testing.T) {
	ctx := context.Background()
	s := Load(ctx, kvstore.NewMemoryStore(), "user-1")

	require.NoError(t, s.Add(ctx, item("p1", "Portland Cement")))

	assert.True(t, s.IsFavorite("p1"))
	assert.False(t, s.IsFavorite("p2"))
	assert.Equal(t, 1, s.Count())
}

func TestSet_AddIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := Load(ctx, kvstore.NewMemoryStore(), "user-1")

	require.NoError(t, s.Add(ctx, item("p1", "Portland Cement")))
	duplicate := item("p1", "Renamed Later")
	require.NoError(t, s.Add(ctx, duplicate))

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "Portland Cement", items[0].Name)
}

func TestSet_Remove(t *testing.T) {
	ctx := context.Background()
	s := Load(ctx, kvstore.NewMemoryStore(), "user-1")
	require.NoError(t, s.Add(ctx, item("p1", "Portland Cement")))
	require.NoError(t, s.Add(ctx, item("p2", "Floor Tiles")))

	require.NoError(t, s.Remove(ctx, "p1"))

	assert.False(t, s.IsFavorite("p1"))
	assert.True(t, s.IsFavorite("p2"))
	require.Len(t, s.Items(), 1)
	assert.Equal(t, "p2", s.Items()[0].ID)
}

func TestSet_AddThenRemoveLeavesEmpty(t *testing.T) {
	ctx := context.Background()
	s := Load(ctx, kvstore.NewMemoryStore(), "user-1")

	require.NoError(t, s.Add(ctx, item("p1", "Portland Cement")))
	require.NoError(t, s.Remove(ctx, "p1"))

	assert.False(t, s.IsFavorite("p1"))
	assert.Empty(t, s.Items())
	assert.Equal(t, 0, s.Count())
}

func TestSet_RemoveAbsentIsNoop(t *testing.T) {
	ctx := context.Background()
	s := Load(ctx, kvstore.NewMemoryStore(), "user-1")
	require.NoError(t, s.Add(ctx, item("p1", "Portland Cement")))

	require.NoError(t, s.Remove(ctx, "missing"))

	assert.Equal(t, 1, s.Count())
}

func TestSet_KeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	s := Load(ctx, kvstore.NewMemoryStore(), "user-1")
	require.NoError(t, s.Add(ctx, item("p3", "Plasterboard")))
	require.NoError(t, s.Add(ctx, item("p1", "Portland Cement")))
	require.NoError(t, s.Add(ctx, item("p2", "Floor Tiles")))

	items := s.Items()
	require.Len(t, items, 3)
	assert.Equal(t, "p3", items[0].ID)
	assert.Equal(t, "p1", items[1].ID)
	assert.Equal(t, "p2", items[2].ID)
}

func TestSet_PersistsAcrossLoads(t *testing.T) {
	// Add, remove, add again over two sessions: the survivors come back.
	ctx := context.Background()
	store := kvstore.NewMemoryStore()

	s := Load(ctx, store, "user-1")
	require.NoError(t, s.Add(ctx, item("p1", "Portland Cement")))
	require.NoError(t, s.Add(ctx, item("p2", "Floor Tiles")))
	require.NoError(t, s.Remove(ctx, "p1"))

	reloaded := Load(ctx, store, "user-1")
	assert.True(t, reloaded.IsFavorite("p2"))
	assert.False(t, reloaded.IsFavorite("p1"))

	require.NoError(t, reloaded.Add(ctx, item("p3", "Wall Paint")))

	final := Load(ctx, store, "user-1")
	items := final.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "p2", items[0].ID)
	assert.Equal(t, "p3", items[1].ID)
}

func TestSet_Clear(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemoryStore()
	s := Load(ctx, store, "user-1")
	require.NoError(t, s.Add(ctx, item("p1", "Portland Cement")))

	require.NoError(t, s.Clear(ctx))

	assert.Equal(t, 0, s.Count())
	assert.Empty(t, Load(ctx, store, "user-1").Items())
}

func TestSet_LoadCorruptDataStartsEmpty(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemoryStore()
	require.NoError(t, store.Set(ctx, "matmarket:favorites:user-1", "]["))

	s := Load(ctx, store, "user-1")

	assert.Equal(t, 0, s.Count())
}

func TestSet_IsolatedPerUser(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemoryStore()

	a := Load(ctx, store, "user-a")
	require.NoError(t, a.Add(ctx, item("p1", "Portland Cement")))

	b := Load(ctx, store, "user-b")
	assert.False(t, b.IsFavorite("p1"))
}
