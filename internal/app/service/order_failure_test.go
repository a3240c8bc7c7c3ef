package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ikkim/furniture-backend/internal/app/model"
	"github.com/ikkim/furniture-backend/internal/app/repository"
	"github.com/ikkim/furniture-backend/internal/db"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// orderFaults holds the errors a failingOrderRepository hands out. The
// transaction-scoped copies share it, so calls are counted across retries.
type orderFaults struct {
	mu              sync.Mutex
	createItemsErrs []error
	createItemCalls int
	deleteErr       error
}

func (f *orderFaults) nextCreateItemsErr() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createItemCalls++
	if len(f.createItemsErrs) == 0 {
		return nil
	}
	err := f.createItemsErrs[0]
	f.createItemsErrs = f.createItemsErrs[1:]
	return err
}

func (f *orderFaults) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.createItemCalls
}

type failingOrderRepository struct {
	repository.OrderRepository
	faults *orderFaults
}

func (r failingOrderRepository) WithTx(tx *gorm.DB) repository.OrderRepository {
	return failingOrderRepository{OrderRepository: r.OrderRepository.WithTx(tx), faults: r.faults}
}

func (r failingOrderRepository) CreateItems(ctx context.Context, items []model.Item) error {
	if err := r.faults.nextCreateItemsErr(); err != nil {
		return err
	}
	return r.OrderRepository.CreateItems(ctx, items)
}

func (r failingOrderRepository) Delete(ctx context.Context, id uint) error {
	if r.faults.deleteErr != nil {
		return r.faults.deleteErr
	}
	return r.OrderRepository.Delete(ctx, id)
}

func setupFailingOrderService(t *testing.T, faults *orderFaults) (OrderService, shopFixture) {
	f := setupShopTest(t, 10, 10)
	orders := failingOrderRepository{OrderRepository: f.OrderRepo, faults: faults}
	svc := NewOrderService(f.DB, orders, f.CartRepo, f.OptionRepo, f.CheckRepo, nil, nil)
	svc.(*orderService).txOpts.BaseBackoff = time.Millisecond
	return svc, f
}

func TestCheckoutFailed_KeepsDatabaseCause(t *testing.T) {
	deadlock := &pgconn.PgError{Code: "40P01", Message: "deadlock detected"}

	err := checkoutFailed(deadlock)
	assert.ErrorIs(t, err, ErrCheckoutFailed)
	assert.True(t, db.IsRetryable(err))

	var pgErr *pgconn.PgError
	require.ErrorAs(t, err, &pgErr)
	assert.Equal(t, "40P01", pgErr.Code)
}

func TestOrderService_Checkout_ItemPersistFailureRollsBack(t *testing.T) {
	faults := &orderFaults{createItemsErrs: []error{errors.New("disk full")}}
	orderService, f := setupFailingOrderService(t, faults)
	ctx := context.Background()

	f.addToCart(t, f.Buyer.ID, f.OptionX.ID, 2)
	f.addToCart(t, f.Buyer.ID, f.OptionY.ID, 1)

	_, err := orderService.Checkout(ctx, f.buyer())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCheckoutFailed)
	assert.Contains(t, err.Error(), "disk full")
	assert.Equal(t, 1, faults.calls(), "permanent failures are not retried")

	assert.Zero(t, countRows(t, f, &model.Order{}))
	assert.Zero(t, countRows(t, f, &model.Item{}))
	assert.Zero(t, countRows(t, f, &model.OrderCheck{}))
	assert.Equal(t, 10, f.stockOf(t, f.OptionX.ID))
	assert.Equal(t, 10, f.stockOf(t, f.OptionY.ID))

	cart, err := f.CartRepo.FindByUserID(ctx, f.Buyer.ID)
	require.NoError(t, err)
	assert.Len(t, cart, 2)
}

func TestOrderService_Checkout_RetriesDeadlock(t *testing.T) {
	faults := &orderFaults{createItemsErrs: []error{&pgconn.PgError{Code: "40P01", Message: "deadlock detected"}}}
	orderService, f := setupFailingOrderService(t, faults)
	ctx := context.Background()

	f.addToCart(t, f.Buyer.ID, f.OptionX.ID, 3)

	order, err := orderService.Checkout(ctx, f.buyer())
	require.NoError(t, err)
	assert.True(t, order.Ordered)
	assert.Equal(t, 2, faults.calls())

	// 첫 시도는 롤백되고 재시도만 남는다
	assert.Equal(t, int64(1), countRows(t, f, &model.Order{}))
	assert.Equal(t, int64(1), countRows(t, f, &model.Item{}))
	assert.Equal(t, 7, f.stockOf(t, f.OptionX.ID))
}

func TestOrderService_Checkout_GivesUpOnPersistentDeadlock(t *testing.T) {
	deadlock := &pgconn.PgError{Code: "40P01", Message: "deadlock detected"}
	faults := &orderFaults{createItemsErrs: []error{deadlock, deadlock, deadlock, deadlock}}
	orderService, f := setupFailingOrderService(t, faults)

	f.addToCart(t, f.Buyer.ID, f.OptionX.ID, 1)

	_, err := orderService.Checkout(context.Background(), f.buyer())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCheckoutFailed)
	assert.Contains(t, err.Error(), "max retries")
	assert.Equal(t, 4, faults.calls())
	assert.Zero(t, countRows(t, f, &model.Order{}))
	assert.Equal(t, 10, f.stockOf(t, f.OptionX.ID))
}

func TestOrderService_Checkout_LocksInOptionOrder(t *testing.T) {
	orderService, f, _, _ := setupOrderServiceTest(t, 10, 10)

	f.addToCart(t, f.Buyer.ID, f.OptionY.ID, 1)
	f.addToCart(t, f.Buyer.ID, f.OptionX.ID, 1)

	order, err := orderService.Checkout(context.Background(), f.buyer())
	require.NoError(t, err)
	require.Len(t, order.Items, 2)
	assert.Equal(t, f.OptionX.ID, order.Items[0].OptionID)
	assert.Equal(t, f.OptionY.ID, order.Items[1].OptionID)
}

func TestOrderService_Delete_StorageFailure(t *testing.T) {
	faults := &orderFaults{}
	orderService, f := setupFailingOrderService(t, faults)
	ctx := context.Background()

	f.addToCart(t, f.Buyer.ID, f.OptionX.ID, 2)
	order, err := orderService.Checkout(ctx, f.buyer())
	require.NoError(t, err)

	faults.deleteErr = errors.New("connection reset by peer")

	err = orderService.Delete(ctx, f.buyer(), order.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOrderDeleteFailed)
	assert.Contains(t, err.Error(), "connection reset by peer")

	// 트랜잭션이 롤백되어 주문과 항목이 그대로 남는다
	stored, err := f.OrderRepo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.True(t, stored.Ordered)
	assert.Equal(t, int64(1), countRows(t, f, &model.Item{}))
	assert.Equal(t, int64(1), countRows(t, f, &model.OrderCheck{}))
}
