package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rakhshan/go-storefront/app/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type checkoutFixtures struct {
	store         *memStore
	cartSvc       *CartService
	service       *CheckoutService
	orderItemRepo *fakeOrderItemRepo
}

func createTestCheckoutService(t *testing.T) checkoutFixtures {
	t.Helper()
	store := newMemStore()
	cartItemRepo := &fakeCartItemRepo{store: store}
	productRepo := &fakeProductRepo{store: store}
	orderItemRepo := &fakeOrderItemRepo{store: store}
	transactor := &fakeTransactor{store: store}

	return checkoutFixtures{
		store:         store,
		cartSvc:       NewCartService(cartItemRepo, productRepo, transactor),
		service:       NewCheckoutService(cartItemRepo, &fakeOrderRepo{store: store}, orderItemRepo, transactor),
		orderItemRepo: orderItemRepo,
	}
}

func (fx checkoutFixtures) fillCart(t *testing.T, userID string) (models.Product, models.Product) {
	t.Helper()
	ctx := context.Background()
	productA := fx.store.addProduct("Product A", "10.00")
	productB := fx.store.addProduct("Product B", "5.00")

	// Product A twice, Product B once.
	_, err := fx.cartSvc.AddItem(ctx, userID, productA.ID)
	require.NoError(t, err)
	_, err = fx.cartSvc.AddItem(ctx, userID, productA.ID)
	require.NoError(t, err)
	_, err = fx.cartSvc.AddItem(ctx, userID, productB.ID)
	require.NoError(t, err)
	return productA, productB
}

func TestCheckoutService_Checkout_EmptyCart(t *testing.T) {
	fx := createTestCheckoutService(t)

	order, err := fx.service.Checkout(context.Background(), "user-1")
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Nil(t, order)
	assert.Empty(t, fx.store.orders)
	assert.Empty(t, fx.store.orderItems)
}

func TestCheckoutService_Checkout_Success(t *testing.T) {
	fx := createTestCheckoutService(t)
	ctx := context.Background()
	fx.fillCart(t, "user-1")

	order, err := fx.service.Checkout(ctx, "user-1")
	require.NoError(t, err)
	require.NotNil(t, order)

	assert.Equal(t, "25.00", order.TotalPrice.StringFixed(2))
	assert.Equal(t, models.OrderStatusProcessing, order.Status)
	assert.Equal(t, "user-1", order.UserID)

	require.Len(t, fx.store.orders, 1)
	items, err := fx.orderItemRepo.GetByOrderID(ctx, order.ID)
	require.NoError(t, err)
	assert.Len(t, items, 2)

	cartItems, _, err := fx.cartSvc.GetCart(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, cartItems)
}

func TestCheckoutService_Checkout_TotalIsFrozenSnapshot(t *testing.T) {
	fx := createTestCheckoutService(t)
	ctx := context.Background()
	productA, _ := fx.fillCart(t, "user-1")

	order, err := fx.service.Checkout(ctx, "user-1")
	require.NoError(t, err)

	// A later price change must not touch the recorded total.
	updated := fx.store.products[productA.ID]
	updated.Price = decimal.RequireFromString("99.99")
	fx.store.products[productA.ID] = updated

	stored := fx.store.orders[order.ID]
	assert.Equal(t, "25.00", stored.TotalPrice.StringFixed(2))
}

func TestCheckoutService_Checkout_MidSequenceFailureLeavesNoPartialRows(t *testing.T) {
	fx := createTestCheckoutService(t)
	ctx := context.Background()
	fx.fillCart(t, "user-1")
	fx.orderItemRepo.failWith = errors.New("injected write failure")

	order, err := fx.service.Checkout(ctx, "user-1")
	require.Error(t, err)
	assert.Nil(t, order)

	// All or nothing: no order, no order items, cart untouched.
	assert.Empty(t, fx.store.orders)
	assert.Empty(t, fx.store.orderItems)
	cartItems, _, err := fx.cartSvc.GetCart(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, cartItems, 2)
}

func TestCheckoutService_ChangeStatus(t *testing.T) {
	fx := createTestCheckoutService(t)
	ctx := context.Background()
	fx.fillCart(t, "user-1")

	order, err := fx.service.Checkout(ctx, "user-1")
	require.NoError(t, err)

	require.NoError(t, fx.service.ChangeStatus(ctx, order.ID, "shipped"))
	assert.Equal(t, "shipped", fx.store.orders[order.ID].Status)

	// Free text is accepted as-is.
	require.NoError(t, fx.service.ChangeStatus(ctx, order.ID, "lost in transit"))
	assert.Equal(t, "lost in transit", fx.store.orders[order.ID].Status)

	assert.ErrorIs(t, fx.service.ChangeStatus(ctx, "no-such-order", "shipped"), ErrOrderNotFound)
}

func TestCheckoutService_ListOrders_FilterAndOrder(t *testing.T) {
	fx := createTestCheckoutService(t)
	ctx := context.Background()

	userRepo := &fakeUserRepo{store: fx.store}
	alice := &models.User{Username: "alice"}
	require.NoError(t, userRepo.Create(ctx, alice))
	bob := &models.User{Username: "bob"}
	require.NoError(t, userRepo.Create(ctx, bob))

	product := fx.store.addProduct("Product A", "10.00")
	for _, userID := range []string{alice.ID, bob.ID, alice.ID} {
		_, err := fx.cartSvc.AddItem(ctx, userID, product.ID)
		require.NoError(t, err)
		_, err = fx.service.Checkout(ctx, userID)
		require.NoError(t, err)
	}

	orders, err := fx.service.ListOrders(ctx, "")
	require.NoError(t, err)
	require.Len(t, orders, 3)
	for i := 1; i < len(orders); i++ {
		assert.False(t, orders[i-1].CreatedAt.Before(orders[i].CreatedAt), "orders must be newest first")
	}

	orders, err = fx.service.ListOrders(ctx, "ali")
	require.NoError(t, err)
	require.Len(t, orders, 2)
	for _, order := range orders {
		assert.Equal(t, alice.ID, order.UserID)
	}
}
