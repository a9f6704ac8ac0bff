package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rakhshan/go-storefront/app/models"
	"github.com/rakhshan/go-storefront/app/repositories"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrCartItemNotFound = errors.New("cart item not found")
)

type CartService struct {
	cartItemRepo repositories.CartItemRepositoryImpl
	productRepo  repositories.ProductRepositoryImpl
	transactor   repositories.Transactor
}

func NewCartService(cartItemRepo repositories.CartItemRepositoryImpl, productRepo repositories.ProductRepositoryImpl, transactor repositories.Transactor) *CartService {
	return &CartService{
		cartItemRepo: cartItemRepo,
		productRepo:  productRepo,
		transactor:   transactor,
	}
}

// AddItem puts one unit of a product into the user's cart. A second add of
// the same product increments the existing line instead of creating a new row.
func (s *CartService) AddItem(ctx context.Context, userID, productID string) (*models.CartItem, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up product %s: %w", productID, err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	existing, err := s.cartItemRepo.GetByUserAndProduct(ctx, userID, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing cart item: %w", err)
	}

	if existing != nil {
		existing.Quantity++
		if err := s.cartItemRepo.Update(ctx, existing); err != nil {
			return nil, fmt.Errorf("failed to update cart item: %w", err)
		}
		return existing, nil
	}

	item := &models.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  1,
	}
	if err := s.cartItemRepo.Add(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to add cart item: %w", err)
	}
	return item, nil
}

// GetCart returns the user's cart lines and the running total at current
// product prices. An empty cart is a valid result, not an error.
func (s *CartService) GetCart(ctx context.Context, userID string) ([]models.CartItem, decimal.Decimal, error) {
	items, err := s.cartItemRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, decimal.Zero, fmt.Errorf("failed to load cart: %w", err)
	}

	total := decimal.Zero
	for _, item := range items {
		// A line can dangle if an admin deleted the product after it was
		// added; such lines contribute nothing to the total.
		if item.Product == nil {
			continue
		}
		total = total.Add(item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return items, total, nil
}

// RemoveItem deletes a cart line by its own id. Ownership is not verified;
// any authenticated caller holding an item id can remove it.
func (s *CartService) RemoveItem(ctx context.Context, itemID string) error {
	item, err := s.cartItemRepo.GetByID(ctx, itemID)
	if err != nil {
		return fmt.Errorf("failed to look up cart item %s: %w", itemID, err)
	}
	if item == nil {
		return ErrCartItemNotFound
	}
	return s.cartItemRepo.Delete(ctx, itemID)
}

// Clear empties the user's cart without creating an order. Only the
// /checkout_test escape hatch uses it.
func (s *CartService) Clear(ctx context.Context, userID string) error {
	return s.transactor.WithinTransaction(ctx, func(tx *gorm.DB) error {
		return s.cartItemRepo.ClearForUser(ctx, tx, userID)
	})
}
