// Package favorites implements the per-user favorites set. Membership
// checks are O(1) by product id; every mutation persists the full
// collection synchronously.
package favorites

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/matmarket/matmarket-backend/internal/app/model"
	"github.com/matmarket/matmarket-backend/pkg/kvstore"
	"github.com/matmarket/matmarket-backend/pkg/logger"
)

const keyPrefix = "matmarket:favorites:"

// Set is one user's favorites collection in insertion order.
type Set struct {
	mu     sync.Mutex
	userID string
	store  kvstore.Store
	items  []model.FavoriteItem
	ids    map[string]bool
}

// Load rehydrates the user's favorites from the store. A missing key
// or unreadable value yields an empty set; corruption is logged, not
// surfaced.
func Load(ctx context.Context, store kvstore.Store, userID string) *Set {
	s := &Set{
		userID: userID,
		store:  store,
		ids:    make(map[string]bool),
	}

	raw, err := store.Get(ctx, keyPrefix+userID)
	if err != nil {
		if err != kvstore.ErrNotFound {
			logger.Warn("Failed to load favorites, starting empty", map[string]interface{}{
				"user_id": userID,
				"error":   err.Error(),
			})
		}
		return s
	}

	var items []model.FavoriteItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		logger.Warn("Corrupt favorites data, starting empty", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		return s
	}

	s.items = items
	for i := range s.items {
		s.ids[s.items[i].ID] = true
	}
	return s
}

// Items returns the favorites in insertion order.
func (s *Set) Items() []model.FavoriteItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.FavoriteItem, len(s.items))
	copy(out, s.items)
	return out
}

// IsFavorite reports membership by product id.
func (s *Set) IsFavorite(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ids[productID]
}

// Count returns the number of favorited products.
func (s *Set) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Add favorites the item. Adding an already-favorited product is
// idempotent: the stored snapshot and position stay as they were.
func (s *Set) Add(ctx context.Context, item model.FavoriteItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ids[item.ID] {
		return nil
	}
	s.ids[item.ID] = true
	s.items = append(s.items, item)
	return s.persistLocked(ctx)
}

// Remove unfavorites the product. Removing an absent product is a no-op.
func (s *Set) Remove(ctx context.Context, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ids[productID] {
		return nil
	}
	delete(s.ids, productID)
	for i := range s.items {
		if s.items[i].ID == productID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			break
		}
	}
	return s.persistLocked(ctx)
}

// Clear removes all favorites.
func (s *Set) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	s.ids = make(map[string]bool)

	if err := s.store.Delete(ctx, keyPrefix+s.userID); err != nil && err != kvstore.ErrNotFound {
		logger.Error("Failed to clear persisted favorites", err, map[string]interface{}{
			"user_id": s.userID,
		})
		return err
	}
	return nil
}

func (s *Set) persistLocked(ctx context.Context) error {
	data, err := json.Marshal(s.items)
	if err != nil {
		return err
	}
	if err := s.store.Set(ctx, keyPrefix+s.userID, string(data)); err != nil {
		logger.Error("Failed to persist favorites", err, map[string]interface{}{
			"user_id": s.userID,
			"items":   len(s.items),
		})
		return err
	}
	return nil
}
