package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matmarket/matmarket-backend/internal/app/model"
	"github.com/matmarket/matmarket-backend/pkg/kvstore"
)

func intPtr(v int) *int {
	return &v
}

func line(productID string, price float64, qty int, max *int) model.CartLine {
	return model.CartLine{
		ProductID:   productID,
		Name:        "Product " + productID,
		Price:       price,
		Vendor:      model.VendorRef{ID: "vendor-1", Name: "BuildPro Materials"},
		Quantity:    qty,
		MaxQuantity: max,
	}
}

func TestCart_AddItem(t *testing.T) {
	ctx := context.Background()
	c := Load(ctx, kvstore.NewMemoryStore(), "user-1")

	err := c.AddItem(ctx, line("p1", 10.0, 2, nil))
	require.NoError(t, err)

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, 20.0, c.Total())
	assert.Equal(t, 2, c.ItemCount())
}

func TestCart_AddItemMergesQuantities(t *testing.T) {
	ctx := context.Background()
	c := Load(ctx, kvstore.NewMemoryStore(), "user-1")

	require.NoError(t, c.AddItem(ctx, line("p1", 10.0, 2, nil)))
	require.NoError(t, c.AddItem(ctx, line("p1", 10.0, 3, nil)))

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].Quantity)
}

func TestCart_AddItemClampsToMax(t *testing.T) {
	// Max stock 5: adding 3 then 4 lands on 5, not 7.
	ctx := context.Background()
	c := Load(ctx, kvstore.NewMemoryStore(), "user-1")

	require.NoError(t, c.AddItem(ctx, line("p1", 10.0, 3, intPtr(5))))
	require.NoError(t, c.AddItem(ctx, line("p1", 10.0, 4, intPtr(5))))

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].Quantity)
	assert.Equal(t, 50.0, c.Total())
}

func TestCart_AddItemQuantityBelowOneBecomesOne(t *testing.T) {
	ctx := context.Background()
	c := Load(ctx, kvstore.NewMemoryStore(), "user-1")

	require.NoError(t, c.AddItem(ctx, line("p1", 10.0, 0, nil)))
	require.NoError(t, c.AddItem(ctx, line("p2", 5.0, -3, nil)))

	lines := c.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, 1, lines[0].Quantity)
	assert.Equal(t, 1, lines[1].Quantity)
}

func TestCart_AddItemKeepsExistingSnapshot(t *testing.T) {
	ctx := context.Background()
	c := Load(ctx, kvstore.NewMemoryStore(), "user-1")

	first := line("p1", 10.0, 1, nil)
	first.Name = "Original Name"
	require.NoError(t, c.AddItem(ctx, first))

	second := line("p1", 99.0, 1, nil)
	second.Name = "Changed Name"
	require.NoError(t, c.AddItem(ctx, second))

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "Original Name", lines[0].Name)
	assert.Equal(t, 10.0, lines[0].Price)
}

func TestCart_RemoveItem(t *testing.T) {
	ctx := context.Background()
	c := Load(ctx, kvstore.NewMemoryStore(), "user-1")
	require.NoError(t, c.AddItem(ctx, line("p1", 10.0, 1, nil)))
	require.NoError(t, c.AddItem(ctx, line("p2", 20.0, 1, nil)))

	require.NoError(t, c.RemoveItem(ctx, "p1"))

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "p2", lines[0].ProductID)
}

func TestCart_RemoveAbsentIsNoop(t *testing.T) {
	ctx := context.Background()
	c := Load(ctx, kvstore.NewMemoryStore(), "user-1")
	require.NoError(t, c.AddItem(ctx, line("p1", 10.0, 1, nil)))

	require.NoError(t, c.RemoveItem(ctx, "missing"))

	assert.Len(t, c.Lines(), 1)
}

func TestCart_UpdateQuantity(t *testing.T) {
	ctx := context.Background()
	c := Load(ctx, kvstore.NewMemoryStore(), "user-1")
	require.NoError(t, c.AddItem(ctx, line("p1", 10.0, 1, intPtr(8))))

	require.NoError(t, c.UpdateQuantity(ctx, "p1", 4))
	assert.Equal(t, 4, c.Lines()[0].Quantity)

	// Above max clamps.
	require.NoError(t, c.UpdateQuantity(ctx, "p1", 20))
	assert.Equal(t, 8, c.Lines()[0].Quantity)
}

func TestCart_UpdateQuantityZeroRemovesLine(t *testing.T) {
	// Quantity zero means removal, not a zero-quantity line.
	ctx := context.Background()
	c := Load(ctx, kvstore.NewMemoryStore(), "user-1")
	require.NoError(t, c.AddItem(ctx, line("p1", 10.0, 2, nil)))

	require.NoError(t, c.UpdateQuantity(ctx, "p1", 0))

	assert.Empty(t, c.Lines())
	assert.Equal(t, 0.0, c.Total())
}

func TestCart_UpdateQuantityNegativeRemovesLine(t *testing.T) {
	ctx := context.Background()
	c := Load(ctx, kvstore.NewMemoryStore(), "user-1")
	require.NoError(t, c.AddItem(ctx, line("p1", 10.0, 2, nil)))

	require.NoError(t, c.UpdateQuantity(ctx, "p1", -1))

	assert.Empty(t, c.Lines())
}

func TestCart_Clear(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemoryStore()
	c := Load(ctx, store, "user-1")
	require.NoError(t, c.AddItem(ctx, line("p1", 10.0, 2, nil)))
	require.NoError(t, c.AddItem(ctx, line("p2", 5.0, 1, nil)))

	require.NoError(t, c.Clear(ctx))

	assert.Empty(t, c.Lines())
	assert.Equal(t, 0, c.ItemCount())

	_, err := store.Get(ctx, "matmarket:cart:user-1")
	assert.Equal(t, kvstore.ErrNotFound, err)
}

func TestCart_TotalMatchesLines(t *testing.T) {
	ctx := context.Background()
	c := Load(ctx, kvstore.NewMemoryStore(), "user-1")
	require.NoError(t, c.AddItem(ctx, line("p1", 12.50, 4, nil)))
	require.NoError(t, c.AddItem(ctx, line("p2", 9.80, 2, nil)))
	require.NoError(t, c.UpdateQuantity(ctx, "p1", 3))

	var expected float64
	for _, l := range c.Lines() {
		expected += l.Price * float64(l.Quantity)
	}
	assert.InDelta(t, expected, c.Total(), 1e-9)
}

func TestCart_PersistsAcrossLoads(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemoryStore()

	c := Load(ctx, store, "user-1")
	require.NoError(t, c.AddItem(ctx, line("p1", 10.0, 2, intPtr(5))))
	require.NoError(t, c.AddItem(ctx, line("p2", 20.0, 1, nil)))

	reloaded := Load(ctx, store, "user-1")

	lines := reloaded.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "p1", lines[0].ProductID)
	assert.Equal(t, 2, lines[0].Quantity)
	require.NotNil(t, lines[0].MaxQuantity)
	assert.Equal(t, 5, *lines[0].MaxQuantity)
	assert.Equal(t, 40.0, reloaded.Total())
}

func TestCart_LoadCorruptDataStartsEmpty(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemoryStore()
	require.NoError(t, store.Set(ctx, "matmarket:cart:user-1", "{not json"))

	c := Load(ctx, store, "user-1")

	assert.Empty(t, c.Lines())
}

func TestCart_IsolatedPerUser(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemoryStore()

	a := Load(ctx, store, "user-a")
	b := Load(ctx, store, "user-b")
	require.NoError(t, a.AddItem(ctx, line("p1", 10.0, 1, nil)))

	assert.Len(t, a.Lines(), 1)
	assert.Empty(t, b.Lines())
	assert.Empty(t, Load(ctx, store, "user-b").Lines())
}
