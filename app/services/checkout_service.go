package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/rakhshan/go-storefront/app/models"
	"github.com/rakhshan/go-storefront/app/repositories"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrEmptyCart     = errors.New("cart is empty")
	ErrOrderNotFound = errors.New("order not found")
)

type CheckoutService struct {
	cartItemRepo  repositories.CartItemRepositoryImpl
	orderRepo     repositories.OrderRepository
	orderItemRepo repositories.OrderItemRepository
	transactor    repositories.Transactor
}

func NewCheckoutService(
	cartItemRepo repositories.CartItemRepositoryImpl,
	orderRepo repositories.OrderRepository,
	orderItemRepo repositories.OrderItemRepository,
	transactor repositories.Transactor,
) *CheckoutService {
	return &CheckoutService{
		cartItemRepo:  cartItemRepo,
		orderRepo:     orderRepo,
		orderItemRepo: orderItemRepo,
		transactor:    transactor,
	}
}

// Checkout converts the user's cart into an order. The total is snapshotted
// from current product prices, then the order, its items and the cart
// deletion commit as one transaction: either all of it persists or none.
//
// Two concurrent checkouts for the same user race on the same cart rows and
// are only serialized by the database's default row locking; there is no
// optimistic-concurrency check, so a double submit can double-order.
func (s *CheckoutService) Checkout(ctx context.Context, userID string) (*models.Order, error) {
	cartItems, err := s.cartItemRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart items: %w", err)
	}
	if len(cartItems) == 0 {
		return nil, ErrEmptyCart
	}

	totalPrice := decimal.Zero
	for _, item := range cartItems {
		if item.Product == nil {
			// Product deleted after it entered the cart. The line is kept on
			// the order but cannot contribute a price.
			continue
		}
		totalPrice = totalPrice.Add(item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	order := &models.Order{
		UserID:     userID,
		TotalPrice: totalPrice,
		Status:     models.OrderStatusProcessing,
	}

	orderItems := make([]models.OrderItem, 0, len(cartItems))

	err = s.transactor.WithinTransaction(ctx, func(tx *gorm.DB) error {
		if err := s.orderRepo.Create(ctx, tx, order); err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		for _, item := range cartItems {
			orderItems = append(orderItems, models.OrderItem{
				OrderID:   order.ID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
			})
		}
		if err := s.orderItemRepo.BulkCreate(ctx, tx, orderItems); err != nil {
			return fmt.Errorf("failed to create order items: %w", err)
		}

		if err := s.cartItemRepo.ClearForUser(ctx, tx, userID); err != nil {
			return fmt.Errorf("failed to clear cart: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("CheckoutService: order %s created for user %s, total %s", order.ID, userID, totalPrice.StringFixed(2))
	return order, nil
}

// ChangeStatus overwrites the order status with whatever the admin supplied.
// The value is free text; no transition table is enforced.
func (s *CheckoutService) ChangeStatus(ctx context.Context, orderID, status string) error {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return fmt.Errorf("failed to look up order %s: %w", orderID, err)
	}
	if order == nil {
		return ErrOrderNotFound
	}
	return s.orderRepo.UpdateStatus(ctx, orderID, status)
}

// ListOrders returns all orders, newest first, optionally narrowed to owners
// whose username contains the filter substring.
func (s *CheckoutService) ListOrders(ctx context.Context, usernameFilter string) ([]models.Order, error) {
	return s.orderRepo.GetAll(ctx, usernameFilter)
}
