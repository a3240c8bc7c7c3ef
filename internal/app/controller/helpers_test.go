package controller

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/furniture-backend/internal/app/model"
	"github.com/ikkim/furniture-backend/internal/app/repository"
	"github.com/ikkim/furniture-backend/internal/app/service"
	"github.com/ikkim/furniture-backend/internal/db"
	"github.com/ikkim/furniture-backend/internal/middleware"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type controllerFixture struct {
	DB      *gorm.DB
	User    *model.User
	Other   *model.User
	Admin   *model.User
	Product *model.Product
	OptionX *model.Option
	OptionY *model.Option
	Router  *gin.Engine

	OptionRepo repository.OptionRepository
	CartRepo   repository.CartRepository
	CheckRepo  repository.OrderCheckRepository
}

// setupControllerTest seeds option X (price 50, stock 10) and option Y
// (price 30, stock 5).
func setupControllerTest(t *testing.T) controllerFixture {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	users := make([]*model.User, 0, 3)
	for _, u := range []struct {
		email string
		role  model.UserRole
	}{
		{"user@example.com", model.RoleUser},
		{"other@example.com", model.RoleUser},
		{"admin@example.com", model.RoleAdmin},
	} {
		user := &model.User{Email: u.email, PasswordHash: "hash", Name: u.email, Role: u.role}
		require.NoError(t, testDB.Create(user).Error)
		users = append(users, user)
	}

	category := &model.Category{Name: "chair"}
	require.NoError(t, testDB.Create(category).Error)
	product := &model.Product{
		CategoryID:  category.ID,
		Name:        "Walnut Chair",
		Price:       decimal.NewFromInt(120),
		DeliveryFee: decimal.NewFromInt(10),
	}
	require.NoError(t, testDB.Create(product).Error)

	optionX := &model.Option{ProductID: product.ID, Name: "Walnut", Price: decimal.NewFromInt(50), StockQuantity: 10}
	require.NoError(t, testDB.Create(optionX).Error)
	optionY := &model.Option{ProductID: product.ID, Name: "Ash", Price: decimal.NewFromInt(30), StockQuantity: 5}
	require.NoError(t, testDB.Create(optionY).Error)

	gin.SetMode(gin.TestMode)

	return controllerFixture{
		DB:         testDB,
		User:       users[0],
		Other:      users[1],
		Admin:      users[2],
		Product:    product,
		OptionX:    optionX,
		OptionY:    optionY,
		Router:     gin.New(),
		OptionRepo: repository.NewOptionRepository(testDB),
		CartRepo:   repository.NewCartRepository(testDB),
		CheckRepo:  repository.NewOrderCheckRepository(testDB),
	}
}

func (f controllerFixture) orderController() *OrderController {
	stockService := service.NewStockService(f.DB, f.OptionRepo, f.CheckRepo)
	orderService := service.NewOrderService(
		f.DB,
		repository.NewOrderRepository(f.DB),
		f.CartRepo,
		f.OptionRepo,
		f.CheckRepo,
		nil,
		nil,
	)
	return NewOrderController(orderService, stockService)
}

func (f controllerFixture) addToCart(t *testing.T, user *model.User, option *model.Option, quantity int) {
	require.NoError(t, f.DB.Create(&model.CartItem{UserID: user.ID, OptionID: option.ID, Quantity: quantity}).Error)
}

func (f controllerFixture) stockOf(t *testing.T, option *model.Option) int {
	var o model.Option
	require.NoError(t, f.DB.First(&o, option.ID).Error)
	return o.StockQuantity
}

// setPrincipalInContext mirrors what AuthMiddleware stores on success.
func setPrincipalInContext(c *gin.Context, user *model.User) {
	c.Set(middleware.UserIDKey, user.ID)
	c.Set(middleware.UserEmailKey, user.Email)
	c.Set(middleware.UserRoleKey, user.Role)
}

// as wraps a handler so it runs as user.
func as(user *model.User, handler gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		setPrincipalInContext(c, user)
		handler(c)
	}
}

func performRequest(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	code, _ := decodeBody(t, w)["error"].(string)
	return code
}
