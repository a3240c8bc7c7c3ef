package service

import (
	"context"
	"testing"

	"github.com/ikkim/furniture-backend/internal/app/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCartServiceTest(t *testing.T) (CartService, shopFixture) {
	f := setupShopTest(t, 5, 10)
	return NewCartService(f.CartRepo, f.OptionRepo), f
}

func TestCartService_GetCart(t *testing.T) {
	cartService, f := setupCartServiceTest(t)
	ctx := context.Background()

	snapshot, err := cartService.GetCart(ctx, f.buyer())
	require.NoError(t, err)
	assert.Empty(t, snapshot.Items)
	assert.True(t, snapshot.TotalPrice.IsZero())

	f.addToCart(t, f.Buyer.ID, f.OptionX.ID, 2)
	f.addToCart(t, f.Buyer.ID, f.OptionY.ID, 1)

	snapshot, err = cartService.GetCart(ctx, f.buyer())
	require.NoError(t, err)
	assert.Len(t, snapshot.Items, 2)
	assert.Equal(t, 3, snapshot.TotalCount)
	assert.True(t, decimal.NewFromInt(130).Equal(snapshot.TotalPrice))
}

func TestCartService_AddToCart(t *testing.T) {
	cartService, f := setupCartServiceTest(t)
	ctx := context.Background()

	item, err := cartService.AddToCart(ctx, f.buyer(), f.OptionX.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, item.Quantity)

	t.Run("merges same option", func(t *testing.T) {
		merged, err := cartService.AddToCart(ctx, f.buyer(), f.OptionX.ID, 3)
		require.NoError(t, err)
		assert.Equal(t, item.ID, merged.ID)
		assert.Equal(t, 5, merged.Quantity)
	})

	t.Run("merged quantity beyond stock", func(t *testing.T) {
		_, err := cartService.AddToCart(ctx, f.buyer(), f.OptionX.ID, 1)
		assert.ErrorIs(t, err, ErrInsufficientStock)
	})

	t.Run("invalid quantity", func(t *testing.T) {
		_, err := cartService.AddToCart(ctx, f.buyer(), f.OptionY.ID, 0)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	})

	t.Run("unknown option", func(t *testing.T) {
		_, err := cartService.AddToCart(ctx, f.buyer(), 9999, 1)
		assert.ErrorIs(t, err, ErrOptionNotFound)
	})

	// adding to the cart never touches stock
	assert.Equal(t, 5, f.stockOf(t, f.OptionX.ID))
}

func TestCartService_UpdateAndRemove(t *testing.T) {
	cartService, f := setupCartServiceTest(t)
	ctx := context.Background()

	item, err := cartService.AddToCart(ctx, f.buyer(), f.OptionY.ID, 1)
	require.NoError(t, err)

	updated, err := cartService.UpdateCartItem(ctx, f.buyer(), item.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, updated.Quantity)

	_, err = cartService.UpdateCartItem(ctx, f.buyer(), item.ID, 11)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	other := Principal{UserID: f.Admin.ID, Role: model.RoleAdmin}
	_, err = cartService.UpdateCartItem(ctx, other, item.ID, 2)
	assert.ErrorIs(t, err, ErrCartItemNotFound)
	assert.ErrorIs(t, cartService.RemoveFromCart(ctx, other, item.ID), ErrCartItemNotFound)

	require.NoError(t, cartService.RemoveFromCart(ctx, f.buyer(), item.ID))
	assert.ErrorIs(t, cartService.RemoveFromCart(ctx, f.buyer(), item.ID), ErrCartItemNotFound)
}

func TestCartService_ClearCart(t *testing.T) {
	cartService, f := setupCartServiceTest(t)
	ctx := context.Background()

	f.addToCart(t, f.Buyer.ID, f.OptionX.ID, 1)
	f.addToCart(t, f.Buyer.ID, f.OptionY.ID, 1)

	require.NoError(t, cartService.ClearCart(ctx, f.buyer()))

	snapshot, err := cartService.GetCart(ctx, f.buyer())
	require.NoError(t, err)
	assert.Empty(t, snapshot.Items)
}
