package service

import (
	"context"
	"sync"
	"testing"

	"github.com/ikkim/furniture-backend/internal/app/model"
	"github.com/ikkim/furniture-backend/internal/app/repository"
	"github.com/ikkim/furniture-backend/internal/db"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type shopFixture struct {
	DB       *gorm.DB
	Buyer    *model.User
	Admin    *model.User
	Category *model.Category
	Product  *model.Product
	OptionX  *model.Option
	OptionY  *model.Option

	OptionRepo  repository.OptionRepository
	CartRepo    repository.CartRepository
	OrderRepo   repository.OrderRepository
	CheckRepo   repository.OrderCheckRepository
	ProductRepo repository.ProductRepository
}

func (f shopFixture) buyer() Principal {
	return Principal{UserID: f.Buyer.ID, Email: f.Buyer.Email, Role: model.RoleUser}
}

func (f shopFixture) admin() Principal {
	return Principal{UserID: f.Admin.ID, Email: f.Admin.Email, Role: model.RoleAdmin}
}

func (f shopFixture) stockOf(t *testing.T, optionID uint) int {
	var option model.Option
	require.NoError(t, f.DB.First(&option, optionID).Error)
	return option.StockQuantity
}

func (f shopFixture) addToCart(t *testing.T, userID, optionID uint, quantity int) {
	require.NoError(t, f.CartRepo.Create(context.Background(), &model.CartItem{
		UserID:   userID,
		OptionID: optionID,
		Quantity: quantity,
	}))
}

// setupShopTest seeds two options: X priced 50 and Y priced 30.
func setupShopTest(t *testing.T, stockX, stockY int) shopFixture {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	buyer := &model.User{Email: "buyer@example.com", PasswordHash: "hash", Name: "Buyer", Role: model.RoleUser}
	require.NoError(t, testDB.Create(buyer).Error)
	admin := &model.User{Email: "admin@example.com", PasswordHash: "hash", Name: "Admin", Role: model.RoleAdmin}
	require.NoError(t, testDB.Create(admin).Error)

	category := &model.Category{Name: "sofa"}
	require.NoError(t, testDB.Create(category).Error)

	product := &model.Product{
		CategoryID:  category.ID,
		Name:        "Linen Sofa",
		Price:       decimal.NewFromInt(500),
		DeliveryFee: decimal.NewFromInt(30),
	}
	require.NoError(t, testDB.Create(product).Error)

	optionX := &model.Option{ProductID: product.ID, Name: "Grey", Price: decimal.NewFromInt(50), StockQuantity: stockX}
	require.NoError(t, testDB.Create(optionX).Error)
	optionY := &model.Option{ProductID: product.ID, Name: "Beige", Price: decimal.NewFromInt(30), StockQuantity: stockY}
	require.NoError(t, testDB.Create(optionY).Error)

	return shopFixture{
		DB:          testDB,
		Buyer:       buyer,
		Admin:       admin,
		Category:    category,
		Product:     product,
		OptionX:     optionX,
		OptionY:     optionY,
		OptionRepo:  repository.NewOptionRepository(testDB),
		CartRepo:    repository.NewCartRepository(testDB),
		OrderRepo:   repository.NewOrderRepository(testDB),
		CheckRepo:   repository.NewOrderCheckRepository(testDB),
		ProductRepo: repository.NewProductRepository(testDB),
	}
}

type publishedEvent struct {
	Topic     string
	EventType string
	Key       string
	Payload   interface{}
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *recordingPublisher) Publish(_ context.Context, topic, eventType, key string, payload interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{Topic: topic, EventType: eventType, Key: key, Payload: payload})
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) topics() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	topics := make([]string, 0, len(p.events))
	for _, e := range p.events {
		topics = append(topics, e.Topic)
	}
	return topics
}

type notification struct {
	UserID    uint
	EventType string
	OrderID   uint
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []notification
}

func (n *recordingNotifier) NotifyOrder(userID uint, eventType string, orderID uint, _ interface{}) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, notification{UserID: userID, EventType: eventType, OrderID: orderID})
}
