package service

import (
	"context"
	"errors"

	"github.com/ikkim/furniture-backend/internal/app/model"
	"github.com/ikkim/furniture-backend/internal/app/repository"
	"github.com/ikkim/furniture-backend/pkg/logger"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrCartItemNotFound = errors.New("cart item not found")
)

// CartSnapshot is the priced view of a user's cart at read time.
type CartSnapshot struct {
	UserID     uint
	Items      []model.CartItem
	TotalPrice decimal.Decimal
	TotalCount int
}

type CartService interface {
	GetCart(ctx context.Context, p Principal) (*CartSnapshot, error)
	AddToCart(ctx context.Context, p Principal, optionID uint, quantity int) (*model.CartItem, error)
	UpdateCartItem(ctx context.Context, p Principal, cartItemID uint, quantity int) (*model.CartItem, error)
	RemoveFromCart(ctx context.Context, p Principal, cartItemID uint) error
	ClearCart(ctx context.Context, p Principal) error
}

type cartService struct {
	cartRepo   repository.CartRepository
	optionRepo repository.OptionRepository
}

func NewCartService(cartRepo repository.CartRepository, optionRepo repository.OptionRepository) CartService {
	return &cartService{
		cartRepo:   cartRepo,
		optionRepo: optionRepo,
	}
}

func (s *cartService) GetCart(ctx context.Context, p Principal) (*CartSnapshot, error) {
	items, err := s.cartRepo.FindByUserID(ctx, p.UserID)
	if err != nil {
		logger.Error("Failed to fetch user cart", err, map[string]interface{}{
			"user_id": p.UserID,
		})
		return nil, err
	}

	snapshot := &CartSnapshot{UserID: p.UserID, Items: items, TotalPrice: decimal.Zero}
	for _, item := range items {
		snapshot.TotalPrice = snapshot.TotalPrice.Add(LinePrice(item.Option.Price, item.Quantity))
		snapshot.TotalCount += item.Quantity
	}

	logger.Debug("User cart fetched", map[string]interface{}{
		"user_id": p.UserID,
		"count":   len(items),
	})
	return snapshot, nil
}

// AddToCart adds an option to the cart, merging with an existing line for the
// same option. Stock is checked but not reserved.
func (s *cartService) AddToCart(ctx context.Context, p Principal, optionID uint, quantity int) (*model.CartItem, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	option, err := s.optionRepo.FindByID(ctx, optionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOptionNotFound
		}
		return nil, err
	}

	existing, err := s.cartRepo.FindByUserAndOption(ctx, p.UserID, optionID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if existing != nil {
		newQuantity := existing.Quantity + quantity
		if newQuantity > option.StockQuantity {
			return nil, ErrInsufficientStock
		}
		existing.Quantity = newQuantity
		if err := s.cartRepo.Update(ctx, existing); err != nil {
			return nil, err
		}
		existing.Option = *option
		logger.Info("Cart item quantity increased", map[string]interface{}{
			"user_id":   p.UserID,
			"option_id": optionID,
			"quantity":  newQuantity,
		})
		return existing, nil
	}

	if quantity > option.StockQuantity {
		logger.Warn("Cannot add to cart: insufficient stock", map[string]interface{}{
			"user_id":   p.UserID,
			"option_id": optionID,
			"requested": quantity,
			"available": option.StockQuantity,
		})
		return nil, ErrInsufficientStock
	}

	item := &model.CartItem{UserID: p.UserID, OptionID: optionID, Quantity: quantity}
	if err := s.cartRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	item.Option = *option

	logger.Info("Item added to cart", map[string]interface{}{
		"user_id":   p.UserID,
		"option_id": optionID,
		"quantity":  quantity,
	})
	return item, nil
}

func (s *cartService) UpdateCartItem(ctx context.Context, p Principal, cartItemID uint, quantity int) (*model.CartItem, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	item, err := s.findOwnedItem(ctx, p, cartItemID)
	if err != nil {
		return nil, err
	}
	if quantity > item.Option.StockQuantity {
		return nil, ErrInsufficientStock
	}

	item.Quantity = quantity
	if err := s.cartRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *cartService) RemoveFromCart(ctx context.Context, p Principal, cartItemID uint) error {
	if _, err := s.findOwnedItem(ctx, p, cartItemID); err != nil {
		return err
	}
	return s.cartRepo.Delete(ctx, cartItemID)
}

func (s *cartService) ClearCart(ctx context.Context, p Principal) error {
	return s.cartRepo.DeleteByUserID(ctx, p.UserID)
}

func (s *cartService) findOwnedItem(ctx context.Context, p Principal, cartItemID uint) (*model.CartItem, error) {
	item, err := s.cartRepo.FindByID(ctx, cartItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartItemNotFound
		}
		return nil, err
	}
	if item.UserID != p.UserID {
		return nil, ErrCartItemNotFound
	}
	return item, nil
}
