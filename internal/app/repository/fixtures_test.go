package repository

import (
	"testing"

	"github.com/ikkim/furniture-backend/internal/app/model"
	"github.com/ikkim/furniture-backend/internal/db"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type catalogFixture struct {
	User     *model.User
	Category *model.Category
	Product  *model.Product
	Option   *model.Option
}

func newTestDB(t *testing.T) *gorm.DB {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })
	return testDB
}

func seedCatalog(t *testing.T, testDB *gorm.DB, stock int) catalogFixture {
	user := &model.User{
		Email:        "buyer@example.com",
		PasswordHash: "hash",
		Name:         "Buyer",
		Role:         model.RoleUser,
	}
	require.NoError(t, testDB.Create(user).Error)

	category := &model.Category{Name: "sofa"}
	require.NoError(t, testDB.Create(category).Error)

	product := &model.Product{
		CategoryID:  category.ID,
		Name:        "Linen Sofa",
		Description: "3-seater",
		Price:       decimal.NewFromInt(500),
		DeliveryFee: decimal.NewFromInt(30),
		Materials:   model.StringList{"linen", "oak"},
	}
	require.NoError(t, testDB.Create(product).Error)

	option := &model.Option{
		ProductID:     product.ID,
		Name:          "Grey / 3-seater",
		Price:         decimal.NewFromInt(50),
		StockQuantity: stock,
	}
	require.NoError(t, testDB.Create(option).Error)

	return catalogFixture{User: user, Category: category, Product: product, Option: option}
}
