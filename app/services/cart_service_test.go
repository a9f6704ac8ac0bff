package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cartServiceFixtures struct {
	store   *memStore
	service *CartService
}

func createTestCartService(t *testing.T) cartServiceFixtures {
	t.Helper()
	store := newMemStore()
	service := NewCartService(
		&fakeCartItemRepo{store: store},
		&fakeProductRepo{store: store},
		&fakeTransactor{store: store},
	)
	return cartServiceFixtures{store: store, service: service}
}

func TestCartService_AddItem_RepeatAddIncrementsSingleRow(t *testing.T) {
	fx := createTestCartService(t)
	ctx := context.Background()
	product := fx.store.addProduct("Keyboard", "49.90")

	for i := 0; i < 3; i++ {
		_, err := fx.service.AddItem(ctx, "user-1", product.ID)
		require.NoError(t, err)
	}

	require.Len(t, fx.store.cartItems, 1)
	for _, item := range fx.store.cartItems {
		assert.Equal(t, 3, item.Quantity)
		assert.Equal(t, product.ID, item.ProductID)
		assert.Equal(t, "user-1", item.UserID)
	}
}

func TestCartService_AddItem_UnknownProduct(t *testing.T) {
	fx := createTestCartService(t)

	_, err := fx.service.AddItem(context.Background(), "user-1", "no-such-product")
	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.Empty(t, fx.store.cartItems)
}

func TestCartService_AddItem_SeparateUsersGetSeparateRows(t *testing.T) {
	fx := createTestCartService(t)
	ctx := context.Background()
	product := fx.store.addProduct("Mug", "4.50")

	_, err := fx.service.AddItem(ctx, "user-1", product.ID)
	require.NoError(t, err)
	_, err = fx.service.AddItem(ctx, "user-2", product.ID)
	require.NoError(t, err)

	assert.Len(t, fx.store.cartItems, 2)
}

func TestCartService_GetCart_TotalsCurrentPrices(t *testing.T) {
	fx := createTestCartService(t)
	ctx := context.Background()
	productA := fx.store.addProduct("Product A", "10.00")
	productB := fx.store.addProduct("Product B", "5.00")

	_, err := fx.service.AddItem(ctx, "user-1", productA.ID)
	require.NoError(t, err)
	_, err = fx.service.AddItem(ctx, "user-1", productA.ID)
	require.NoError(t, err)
	_, err = fx.service.AddItem(ctx, "user-1", productB.ID)
	require.NoError(t, err)

	items, total, err := fx.service.GetCart(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, "25.00", total.StringFixed(2))
}

func TestCartService_GetCart_EmptyCartIsValid(t *testing.T) {
	fx := createTestCartService(t)

	items, total, err := fx.service.GetCart(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.True(t, total.IsZero())
}

func TestCartService_RemoveItem(t *testing.T) {
	fx := createTestCartService(t)
	ctx := context.Background()
	product := fx.store.addProduct("Mug", "4.50")

	item, err := fx.service.AddItem(ctx, "user-1", product.ID)
	require.NoError(t, err)

	require.NoError(t, fx.service.RemoveItem(ctx, item.ID))
	assert.Empty(t, fx.store.cartItems)

	assert.ErrorIs(t, fx.service.RemoveItem(ctx, item.ID), ErrCartItemNotFound)
}

func TestCartService_Clear(t *testing.T) {
	fx := createTestCartService(t)
	ctx := context.Background()
	productA := fx.store.addProduct("Product A", "10.00")
	productB := fx.store.addProduct("Product B", "5.00")

	_, err := fx.service.AddItem(ctx, "user-1", productA.ID)
	require.NoError(t, err)
	_, err = fx.service.AddItem(ctx, "user-1", productB.ID)
	require.NoError(t, err)
	_, err = fx.service.AddItem(ctx, "user-2", productA.ID)
	require.NoError(t, err)

	require.NoError(t, fx.service.Clear(ctx, "user-1"))

	items, _, err := fx.service.GetCart(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, items)

	// Another user's cart is untouched.
	items, _, err = fx.service.GetCart(ctx, "user-2")
	require.NoError(t, err)
	assert.Len(t, items, 1)
}
