package service

import (
	"context"
	"testing"

	"github.com/ikkim/furniture-backend/internal/app/model"
	"github.com/ikkim/furniture-backend/internal/events"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupOrderServiceTest(t *testing.T, stockX, stockY int) (OrderService, shopFixture, *recordingPublisher, *recordingNotifier) {
	f := setupShopTest(t, stockX, stockY)
	publisher := &recordingPublisher{}
	notifier := &recordingNotifier{}
	orderService := NewOrderService(f.DB, f.OrderRepo, f.CartRepo, f.OptionRepo, f.CheckRepo, publisher, notifier)
	return orderService, f, publisher, notifier
}

func countRows(t *testing.T, f shopFixture, m interface{}) int64 {
	var n int64
	require.NoError(t, f.DB.Model(m).Count(&n).Error)
	return n
}

func TestOrderService_Checkout_Success(t *testing.T) {
	orderService, f, publisher, notifier := setupOrderServiceTest(t, 10, 10)
	ctx := context.Background()

	f.addToCart(t, f.Buyer.ID, f.OptionX.ID, 2)
	f.addToCart(t, f.Buyer.ID, f.OptionY.ID, 1)

	order, err := orderService.Checkout(ctx, f.buyer())
	require.NoError(t, err)
	assert.NotZero(t, order.ID)
	assert.True(t, order.Ordered)
	assert.NotNil(t, order.OrderedAt)
	assert.True(t, decimal.NewFromInt(130).Equal(order.TotalPrice))
	require.Len(t, order.Items, 2)

	prices := map[uint]decimal.Decimal{}
	for _, item := range order.Items {
		prices[item.OptionID] = item.Price
	}
	assert.True(t, decimal.NewFromInt(100).Equal(prices[f.OptionX.ID]))
	assert.True(t, decimal.NewFromInt(30).Equal(prices[f.OptionY.ID]))

	assert.Equal(t, 8, f.stockOf(t, f.OptionX.ID))
	assert.Equal(t, 9, f.stockOf(t, f.OptionY.ID))

	cart, err := f.CartRepo.FindByUserID(ctx, f.Buyer.ID)
	require.NoError(t, err)
	assert.Empty(t, cart)

	stored, err := f.OrderRepo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.True(t, stored.Ordered)

	checks, err := f.CheckRepo.FindByOrderID(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, checks, 2)
	for _, check := range checks {
		assert.Equal(t, model.OrderCheckDeducted, check.Status)
	}

	assert.Equal(t, []string{events.TopicOrderPlaced}, publisher.topics())
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, f.Buyer.ID, notifier.sent[0].UserID)
	assert.Equal(t, order.ID, notifier.sent[0].OrderID)
}

func TestOrderService_Checkout_EmptyCart(t *testing.T) {
	orderService, f, publisher, _ := setupOrderServiceTest(t, 10, 10)

	_, err := orderService.Checkout(context.Background(), f.buyer())
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Zero(t, countRows(t, f, &model.Order{}))
	assert.Empty(t, publisher.topics())
}

func TestOrderService_Checkout_InsufficientStockRollsBack(t *testing.T) {
	orderService, f, publisher, _ := setupOrderServiceTest(t, 10, 1)
	ctx := context.Background()

	f.addToCart(t, f.Buyer.ID, f.OptionX.ID, 2)
	f.addToCart(t, f.Buyer.ID, f.OptionY.ID, 3)

	_, err := orderService.Checkout(ctx, f.buyer())
	assert.ErrorIs(t, err, ErrInsufficientStock)

	assert.Zero(t, countRows(t, f, &model.Order{}))
	assert.Zero(t, countRows(t, f, &model.Item{}))
	assert.Zero(t, countRows(t, f, &model.OrderCheck{}))
	assert.Equal(t, 10, f.stockOf(t, f.OptionX.ID))
	assert.Equal(t, 1, f.stockOf(t, f.OptionY.ID))

	cart, err := f.CartRepo.FindByUserID(ctx, f.Buyer.ID)
	require.NoError(t, err)
	assert.Len(t, cart, 2)
	assert.Empty(t, publisher.topics())
}

func TestOrderService_Checkout_OnlyCallersCart(t *testing.T) {
	orderService, f, _, _ := setupOrderServiceTest(t, 10, 10)
	ctx := context.Background()

	f.addToCart(t, f.Buyer.ID, f.OptionX.ID, 1)
	f.addToCart(t, f.Admin.ID, f.OptionY.ID, 4)

	order, err := orderService.Checkout(ctx, f.buyer())
	require.NoError(t, err)
	assert.Len(t, order.Items, 1)

	adminCart, err := f.CartRepo.FindByUserID(ctx, f.Admin.ID)
	require.NoError(t, err)
	assert.Len(t, adminCart, 1)
	assert.Equal(t, 10, f.stockOf(t, f.OptionY.ID))
}

func TestOrderService_FindByID(t *testing.T) {
	orderService, f, _, _ := setupOrderServiceTest(t, 10, 10)
	ctx := context.Background()

	f.addToCart(t, f.Buyer.ID, f.OptionX.ID, 2)
	placed, err := orderService.Checkout(ctx, f.buyer())
	require.NoError(t, err)

	t.Run("owner", func(t *testing.T) {
		order, err := orderService.FindByID(ctx, f.buyer(), placed.ID)
		require.NoError(t, err)
		require.Len(t, order.Items, 1)
		assert.Equal(t, "Grey", order.Items[0].Option.Name)
	})

	t.Run("admin", func(t *testing.T) {
		_, err := orderService.FindByID(ctx, f.admin(), placed.ID)
		assert.NoError(t, err)
	})

	t.Run("other user", func(t *testing.T) {
		stranger := Principal{UserID: f.Buyer.ID + 100, Role: model.RoleUser}
		_, err := orderService.FindByID(ctx, stranger, placed.ID)
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := orderService.FindByID(ctx, f.buyer(), 9999)
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})
}

func TestOrderService_List(t *testing.T) {
	orderService, f, _, _ := setupOrderServiceTest(t, 10, 10)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		f.addToCart(t, f.Buyer.ID, f.OptionX.ID, 1)
		_, err := orderService.Checkout(ctx, f.buyer())
		require.NoError(t, err)
	}

	orders, total, err := orderService.List(ctx, f.buyer(), Page{Page: 1, Size: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, orders, 2)

	orders, _, err = orderService.List(ctx, f.buyer(), Page{Page: 2, Size: 2})
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}

func TestOrderService_Delete(t *testing.T) {
	orderService, f, publisher, _ := setupOrderServiceTest(t, 10, 10)
	ctx := context.Background()

	f.addToCart(t, f.Buyer.ID, f.OptionX.ID, 2)
	placed, err := orderService.Checkout(ctx, f.buyer())
	require.NoError(t, err)

	require.NoError(t, orderService.Delete(ctx, f.buyer(), placed.ID))

	_, err = orderService.FindByID(ctx, f.buyer(), placed.ID)
	assert.ErrorIs(t, err, ErrOrderNotFound)
	assert.Zero(t, countRows(t, f, &model.Item{}))
	assert.Zero(t, countRows(t, f, &model.OrderCheck{}))

	// deletion does not give stock back
	assert.Equal(t, 8, f.stockOf(t, f.OptionX.ID))
	assert.Contains(t, publisher.topics(), events.TopicOrderDeleted)

	err = orderService.Delete(ctx, f.buyer(), placed.ID)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestOrderService_Delete_OtherUser(t *testing.T) {
	orderService, f, _, _ := setupOrderServiceTest(t, 10, 10)
	ctx := context.Background()

	f.addToCart(t, f.Buyer.ID, f.OptionX.ID, 1)
	placed, err := orderService.Checkout(ctx, f.buyer())
	require.NoError(t, err)

	stranger := Principal{UserID: f.Buyer.ID + 100, Role: model.RoleUser}
	assert.ErrorIs(t, orderService.Delete(ctx, stranger, placed.ID), ErrOrderNotFound)

	_, err = orderService.FindByID(ctx, f.buyer(), placed.ID)
	assert.NoError(t, err)
}

func TestOrderService_ProcessReturn(t *testing.T) {
	orderService, f, _, _ := setupOrderServiceTest(t, 10, 10)
	ctx := context.Background()

	f.addToCart(t, f.Buyer.ID, f.OptionX.ID, 2)
	placed, err := orderService.Checkout(ctx, f.buyer())
	require.NoError(t, err)

	require.NoError(t, orderService.ProcessReturn(ctx, f.buyer(), placed.ID))

	order, err := orderService.GetStatus(ctx, f.buyer(), placed.ID)
	require.NoError(t, err)
	assert.True(t, order.Ordered)
	assert.Equal(t, 8, f.stockOf(t, f.OptionX.ID))

	assert.ErrorIs(t, orderService.ProcessReturn(ctx, f.buyer(), 9999), ErrOrderNotFound)
}

func TestOrderService_Cancel(t *testing.T) {
	orderService, f, publisher, notifier := setupOrderServiceTest(t, 10, 10)
	ctx := context.Background()

	f.addToCart(t, f.Buyer.ID, f.OptionX.ID, 4)
	f.addToCart(t, f.Buyer.ID, f.OptionY.ID, 2)
	placed, err := orderService.Checkout(ctx, f.buyer())
	require.NoError(t, err)

	order, err := orderService.Cancel(ctx, f.buyer(), placed.ID)
	require.NoError(t, err)
	assert.False(t, order.Ordered)
	assert.Equal(t, 10, f.stockOf(t, f.OptionX.ID))
	assert.Equal(t, 10, f.stockOf(t, f.OptionY.ID))

	checks, err := f.CheckRepo.FindByOrderID(ctx, placed.ID)
	require.NoError(t, err)
	for _, check := range checks {
		assert.Equal(t, model.OrderCheckRestored, check.Status)
	}

	_, err = orderService.Cancel(ctx, f.buyer(), placed.ID)
	assert.ErrorIs(t, err, ErrOrderNotActive)
	assert.Equal(t, 10, f.stockOf(t, f.OptionX.ID))

	assert.Equal(t, []string{events.TopicOrderPlaced, events.TopicOrderCancelled}, publisher.topics())
	assert.Len(t, notifier.sent, 2)
}

func TestOrderService_Status(t *testing.T) {
	orderService, f, _, _ := setupOrderServiceTest(t, 10, 10)
	ctx := context.Background()

	f.addToCart(t, f.Buyer.ID, f.OptionX.ID, 1)
	placed, err := orderService.Checkout(ctx, f.buyer())
	require.NoError(t, err)

	order, err := orderService.GetStatus(ctx, f.buyer(), placed.ID)
	require.NoError(t, err)
	assert.True(t, order.Ordered)

	_, err = orderService.UpdateStatus(ctx, f.buyer(), placed.ID, false)
	assert.ErrorIs(t, err, ErrForbidden)

	order, err = orderService.UpdateStatus(ctx, f.admin(), placed.ID, false)
	require.NoError(t, err)
	assert.False(t, order.Ordered)
	assert.Equal(t, 9, f.stockOf(t, f.OptionX.ID))

	_, err = orderService.UpdateStatus(ctx, f.admin(), 9999, true)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestOrderService_FindOrderCheck(t *testing.T) {
	orderService, f, _, _ := setupOrderServiceTest(t, 10, 10)
	ctx := context.Background()

	f.addToCart(t, f.Buyer.ID, f.OptionX.ID, 3)
	placed, err := orderService.Checkout(ctx, f.buyer())
	require.NoError(t, err)

	checks, err := f.CheckRepo.FindByOrderID(ctx, placed.ID)
	require.NoError(t, err)
	require.Len(t, checks, 1)

	check, err := orderService.FindOrderCheck(ctx, f.buyer(), checks[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 3, check.Quantity)
	assert.Equal(t, model.OrderCheckDeducted, check.Status)

	stranger := Principal{UserID: f.Buyer.ID + 100, Role: model.RoleUser}
	_, err = orderService.FindOrderCheck(ctx, stranger, checks[0].ID)
	assert.ErrorIs(t, err, ErrOrderCheckNotFound)

	_, err = orderService.FindOrderCheck(ctx, f.buyer(), 9999)
	assert.ErrorIs(t, err, ErrOrderCheckNotFound)
}

func TestLinePrice(t *testing.T) {
	assert.True(t, decimal.NewFromInt(100).Equal(LinePrice(decimal.NewFromInt(50), 2)))
	assert.True(t, decimal.RequireFromString("59.97").Equal(LinePrice(decimal.RequireFromString("19.99"), 3)))
}
