package repository

import (
	"context"
	"testing"

	"github.com/ikkim/furniture-backend/internal/app/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupOptionTest(t *testing.T, stock int) (*gorm.DB, OptionRepository, catalogFixture) {
	testDB := newTestDB(t)
	fx := seedCatalog(t, testDB, stock)
	return testDB, NewOptionRepository(testDB), fx
}

func stockOf(t *testing.T, testDB *gorm.DB, id uint) int {
	var option model.Option
	require.NoError(t, testDB.First(&option, id).Error)
	return option.StockQuantity
}

func TestOptionRepository_DeductStock(t *testing.T) {
	testDB, repo, fx := setupOptionTest(t, 10)
	ctx := context.Background()

	ok, err := repo.DeductStock(ctx, fx.Option.ID, 4)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 6, stockOf(t, testDB, fx.Option.ID))

	ok, err = repo.DeductStock(ctx, fx.Option.ID, 7)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 6, stockOf(t, testDB, fx.Option.ID))

	ok, err = repo.DeductStock(ctx, fx.Option.ID, 6)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 0, stockOf(t, testDB, fx.Option.ID))
}

func TestOptionRepository_DeductStock_MissingOption(t *testing.T) {
	_, repo, _ := setupOptionTest(t, 10)

	ok, err := repo.DeductStock(context.Background(), 9999, 1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestOptionRepository_RestoreAndSetStock(t *testing.T) {
	testDB, repo, fx := setupOptionTest(t, 6)
	ctx := context.Background()

	ok, err := repo.RestoreStock(ctx, fx.Option.ID, 3)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 9, stockOf(t, testDB, fx.Option.ID))

	ok, err = repo.SetStock(ctx, fx.Option.ID, 42)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 42, stockOf(t, testDB, fx.Option.ID))

	ok, err = repo.RestoreStock(ctx, 9999, 1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestOptionRepository_CheckConstraintRejectsNegativeStock(t *testing.T) {
	_, repo, fx := setupOptionTest(t, 1)

	_, err := repo.SetStock(context.Background(), fx.Option.ID, -1)
	assert.Error(t, err)
}

func TestOptionRepository_FindByProductID(t *testing.T) {
	testDB, repo, fx := setupOptionTest(t, 5)
	ctx := context.Background()

	cheaper := &model.Option{ProductID: fx.Product.ID, Name: "Grey / 2-seater", Price: decimal.NewFromInt(40), StockQuantity: 2}
	require.NoError(t, testDB.Create(cheaper).Error)

	options, err := repo.FindByProductID(ctx, fx.Product.ID)
	require.NoError(t, err)
	require.Len(t, options, 2)
	assert.Equal(t, cheaper.ID, options[0].ID)

	options, err = repo.FindByProductID(ctx, 9999)
	require.NoError(t, err)
	assert.Empty(t, options)
}

func TestOptionRepository_FindLowStock(t *testing.T) {
	testDB, repo, fx := setupOptionTest(t, 3)

	plenty := &model.Option{ProductID: fx.Product.ID, Name: "Blue", Price: decimal.NewFromInt(50), StockQuantity: 100}
	require.NoError(t, testDB.Create(plenty).Error)

	options, err := repo.FindLowStock(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, options, 1)
	assert.Equal(t, fx.Option.ID, options[0].ID)
}

func TestOptionRepository_UpdateLeavesStockAlone(t *testing.T) {
	testDB, repo, fx := setupOptionTest(t, 8)

	fx.Option.Name = "Charcoal / 3-seater"
	fx.Option.Price = decimal.NewFromInt(55)
	fx.Option.StockQuantity = 0
	require.NoError(t, repo.Update(context.Background(), fx.Option))

	found, err := repo.FindByID(context.Background(), fx.Option.ID)
	require.NoError(t, err)
	assert.Equal(t, "Charcoal / 3-seater", found.Name)
	assert.True(t, decimal.NewFromInt(55).Equal(found.Price))
	assert.Equal(t, 8, stockOf(t, testDB, fx.Option.ID))
}

func TestOptionRepository_WithTxRollsBack(t *testing.T) {
	testDB, repo, fx := setupOptionTest(t, 10)
	ctx := context.Background()

	tx := testDB.Begin()
	ok, err := repo.WithTx(tx).DeductStock(ctx, fx.Option.ID, 5)
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, tx.Rollback().Error)

	assert.Equal(t, 10, stockOf(t, testDB, fx.Option.ID))
}
