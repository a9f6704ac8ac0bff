package services

import (
	"context"
	"fmt"

	"github.com/rakhshan/go-storefront/app/models"
	"github.com/rakhshan/go-storefront/app/repositories"
)

const (
	FavoriteAdded   = "added"
	FavoriteRemoved = "removed"
)

type FavoriteService struct {
	favoriteRepo repositories.FavoriteRepository
}

func NewFavoriteService(favoriteRepo repositories.FavoriteRepository) *FavoriteService {
	return &FavoriteService{favoriteRepo: favoriteRepo}
}

// Add marks a product as a favorite of the user. The call is idempotent: a
// repeat add leaves the single existing row in place and reports added=false.
func (s *FavoriteService) Add(ctx context.Context, userID, productID string) (added bool, err error) {
	existing, err := s.favoriteRepo.GetByUserAndProduct(ctx, userID, productID)
	if err != nil {
		return false, fmt.Errorf("failed to check existing favorite: %w", err)
	}
	if existing != nil {
		return false, nil
	}

	favorite := &models.Favorite{
		UserID:    userID,
		ProductID: productID,
	}
	if err := s.favoriteRepo.Create(ctx, favorite); err != nil {
		return false, fmt.Errorf("failed to create favorite: %w", err)
	}
	return true, nil
}

func (s *FavoriteService) List(ctx context.Context, userID string) ([]models.Favorite, error) {
	return s.favoriteRepo.GetByUserID(ctx, userID)
}

// Toggle flips membership and reports which way it went.
func (s *FavoriteService) Toggle(ctx context.Context, userID, productID string) (string, error) {
	existing, err := s.favoriteRepo.GetByUserAndProduct(ctx, userID, productID)
	if err != nil {
		return "", fmt.Errorf("failed to check existing favorite: %w", err)
	}

	if existing != nil {
		if err := s.favoriteRepo.Delete(ctx, userID, productID); err != nil {
			return "", fmt.Errorf("failed to remove favorite: %w", err)
		}
		return FavoriteRemoved, nil
	}

	favorite := &models.Favorite{
		UserID:    userID,
		ProductID: productID,
	}
	if err := s.favoriteRepo.Create(ctx, favorite); err != nil {
		return "", fmt.Errorf("failed to add favorite: %w", err)
	}
	return FavoriteAdded, nil
}
