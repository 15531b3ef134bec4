package service

import (
	"context"
	"sync"

	"github.com/matmarket/matmarket-backend/internal/app/model"
	"github.com/matmarket/matmarket-backend/internal/favorites"
	"github.com/matmarket/matmarket-backend/pkg/kvstore"
	"github.com/matmarket/matmarket-backend/pkg/logger"
)

type FavoritesService interface {
	List(ctx context.Context, userID string) []model.FavoriteItem
	Add(ctx context.Context, userID, productID string) ([]model.FavoriteItem, error)
	Remove(ctx context.Context, userID, productID string) ([]model.FavoriteItem, error)
	IsFavorite(ctx context.Context, userID, productID string) bool
	Clear(ctx context.Context, userID string) error
}

type favoritesService struct {
	catalogSvc CatalogService
	store      kvstore.Store

	mu   sync.Mutex
	sets map[string]*favorites.Set
}

func NewFavoritesService(catalogSvc CatalogService, store kvstore.Store) FavoritesService {
	return &favoritesService{
		catalogSvc: catalogSvc,
		store:      store,
		sets:       make(map[string]*favorites.Set),
	}
}

func (s *favoritesService) userSet(ctx context.Context, userID string) *favorites.Set {
	s.mu.Lock()
	defer s.mu.Unlock()
	if set, ok := s.sets[userID]; ok {
		return set
	}
	set := favorites.Load(ctx, s.store, userID)
	s.sets[userID] = set
	return set
}

func (s *favoritesService) List(ctx context.Context, userID string) []model.FavoriteItem {
	return s.userSet(ctx, userID).Items()
}

func (s *favoritesService) Add(ctx context.Context, userID, productID string) ([]model.FavoriteItem, error) {
	product, err := s.catalogSvc.GetProduct(productID)
	if err != nil {
		return nil, err
	}

	vendorRef := model.VendorRef{ID: product.VendorID, Name: product.VendorID}
	if vendor, err := s.catalogSvc.GetVendor(product.VendorID); err == nil {
		vendorRef.Name = vendor.Name
	}

	var image string
	if len(product.Images) > 0 {
		image = product.Images[0]
	}

	set := s.userSet(ctx, userID)
	err = set.Add(ctx, model.FavoriteItem{
		ID:          product.ID,
		Name:        product.Name,
		Price:       product.Price,
		Image:       image,
		Vendor:      vendorRef,
		Category:    product.Category,
		Rating:      product.Rating,
		ReviewCount: product.ReviewCount,
		Location:    product.Location,
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Product favorited", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
	})
	return set.Items(), nil
}

func (s *favoritesService) Remove(ctx context.Context, userID, productID string) ([]model.FavoriteItem, error) {
	set := s.userSet(ctx, userID)
	if err := set.Remove(ctx, productID); err != nil {
		return nil, err
	}
	return set.Items(), nil
}

func (s *favoritesService) IsFavorite(ctx context.Context, userID, productID string) bool {
	return s.userSet(ctx, userID).IsFavorite(productID)
}

func (s *favoritesService) Clear(ctx context.Context, userID string) error {
	return s.userSet(ctx, userID).Clear(ctx)
}
