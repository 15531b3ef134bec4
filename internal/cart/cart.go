// Package cart implements the per-user shopping cart aggregate with
// quantity merge/clamp rules and durable persistence.
package cart

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/matmarket/matmarket-backend/internal/app/model"
	"github.com/matmarket/matmarket-backend/pkg/kvstore"
	"github.com/matmarket/matmarket-backend/pkg/logger"
)

const keyPrefix = "matmarket:cart:"

// Cart is one user's cart. Lines keep insertion order; totals are
// recomputed from the lines on every read, never cached.
type Cart struct {
	mu     sync.Mutex
	userID string
	store  kvstore.Store
	lines  []model.CartLine
	index  map[string]int // product id -> position in lines
}

// Load rehydrates the user's cart from the store. A missing key means
// an empty cart; an unreadable value is logged and treated the same,
// never surfaced as an error.
func Load(ctx context.Context, store kvstore.Store, userID string) *Cart {
	c := &Cart{
		userID: userID,
		store:  store,
		index:  make(map[string]int),
	}

	raw, err := store.Get(ctx, keyPrefix+userID)
	if err != nil {
		if err != kvstore.ErrNotFound {
			logger.Warn("Failed to load cart, starting empty", map[string]interface{}{
				"user_id": userID,
				"error":   err.Error(),
			})
		}
		return c
	}

	var lines []model.CartLine
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		logger.Warn("Corrupt cart data, starting empty", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		return c
	}

	c.lines = lines
	for i := range c.lines {
		c.index[c.lines[i].ProductID] = i
	}
	return c
}

// Lines returns the cart lines in insertion order.
func (c *Cart) Lines() []model.CartLine {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]model.CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// Total returns the sum of price*quantity over all lines.
func (c *Cart) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	var total float64
	for i := range c.lines {
		total += c.lines[i].Price * float64(c.lines[i].Quantity)
	}
	return total
}

// ItemCount returns the sum of quantities over all lines.
func (c *Cart) ItemCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	var count int
	for i := range c.lines {
		count += c.lines[i].Quantity
	}
	return count
}

// AddItem adds the line to the cart. A requested quantity below 1 is
// treated as 1. When the product is already present the quantities
// merge; the merged quantity is clamped to the line's MaxQuantity.
// The snapshot fields of an existing line are kept, not overwritten.
func (c *Cart) AddItem(ctx context.Context, line model.CartLine) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if line.Quantity < 1 {
		line.Quantity = 1
	}

	if i, ok := c.index[line.ProductID]; ok {
		merged := c.lines[i].Quantity + line.Quantity
		c.lines[i].Quantity = clamp(merged, c.lines[i].MaxQuantity)
	} else {
		line.Quantity = clamp(line.Quantity, line.MaxQuantity)
		c.index[line.ProductID] = len(c.lines)
		c.lines = append(c.lines, line)
	}

	return c.persistLocked(ctx)
}

// RemoveItem removes the product's line. Removing an absent product is
// a no-op.
func (c *Cart) RemoveItem(ctx context.Context, productID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	i, ok := c.index[productID]
	if !ok {
		return nil
	}
	c.removeAtLocked(i)
	return c.persistLocked(ctx)
}

// UpdateQuantity sets the line's quantity. Zero or negative removes the
// line; a value above MaxQuantity is clamped to it. Updating an absent
// product is a no-op.
func (c *Cart) UpdateQuantity(ctx context.Context, productID string, quantity int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	i, ok := c.index[productID]
	if !ok {
		return nil
	}
	if quantity <= 0 {
		c.removeAtLocked(i)
	} else {
		c.lines[i].Quantity = clamp(quantity, c.lines[i].MaxQuantity)
	}
	return c.persistLocked(ctx)
}

// Clear empties the cart.
func (c *Cart) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lines = nil
	c.index = make(map[string]int)

	if err := c.store.Delete(ctx, keyPrefix+c.userID); err != nil && err != kvstore.ErrNotFound {
		logger.Error("Failed to clear persisted cart", err, map[string]interface{}{
			"user_id": c.userID,
		})
		return err
	}
	return nil
}

func (c *Cart) removeAtLocked(i int) {
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	c.index = make(map[string]int, len(c.lines))
	for j := range c.lines {
		c.index[c.lines[j].ProductID] = j
	}
}

// persistLocked writes the full line list synchronously, so the stored
// state never lags a completed mutation.
func (c *Cart) persistLocked(ctx context.Context) error {
	data, err := json.Marshal(c.lines)
	if err != nil {
		return err
	}
	if err := c.store.Set(ctx, keyPrefix+c.userID, string(data)); err != nil {
		logger.Error("Failed to persist cart", err, map[string]interface{}{
			"user_id": c.userID,
			"lines":   len(c.lines),
		})
		return err
	}
	return nil
}

func clamp(quantity int, max *int) int {
	if max != nil && quantity > *max {
		return *max
	}
	return quantity
}
