package repository

import (
	"context"

	"github.com/ikkim/furniture-backend/internal/app/model"
	"github.com/ikkim/furniture-backend/pkg/logger"
	"gorm.io/gorm"
)

type CartRepository interface {
	WithTx(tx *gorm.DB) CartRepository
	Create(ctx context.Context, cartItem *model.CartItem) error
	FindByUserID(ctx context.Context, userID uint) ([]model.CartItem, error)
	FindByID(ctx context.Context, id uint) (*model.CartItem, error)
	FindByUserAndOption(ctx context.Context, userID, optionID uint) (*model.CartItem, error)
	Update(ctx context.Context, cartItem *model.CartItem) error
	Delete(ctx context.Context, id uint) error
	DeleteByUserID(ctx context.Context, userID uint) error
}

type cartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) WithTx(tx *gorm.DB) CartRepository {
	return &cartRepository{db: tx}
}

func (r *cartRepository) Create(ctx context.Context, cartItem *model.CartItem) error {
	logger.Debug("Creating cart item in database", map[string]interface{}{
		"user_id":   cartItem.UserID,
		"option_id": cartItem.OptionID,
		"quantity":  cartItem.Quantity,
	})

	if err := r.db.WithContext(ctx).Create(cartItem).Error; err != nil {
		logger.Error("Failed to create cart item in database", err, map[string]interface{}{
			"user_id":   cartItem.UserID,
			"option_id": cartItem.OptionID,
			"quantity":  cartItem.Quantity,
		})
		return err
	}

	logger.Debug("Cart item created in database", map[string]interface{}{
		"cart_item_id": cartItem.ID,
		"user_id":      cartItem.UserID,
		"option_id":    cartItem.OptionID,
	})
	return nil
}

// FindByUserID returns the cart in insertion order so checkout lines are stable.
func (r *cartRepository) FindByUserID(ctx context.Context, userID uint) ([]model.CartItem, error) {
	logger.Debug("Finding cart items by user ID in database", map[string]interface{}{
		"user_id": userID,
	})

	var cartItems []model.CartItem
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Preload("Option").
		Order("id ASC").
		Find(&cartItems).Error
	if err != nil {
		logger.Error("Failed to find cart items by user ID in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Debug("Cart items found by user ID in database", map[string]interface{}{
		"user_id": userID,
		"count":   len(cartItems),
	})
	return cartItems, nil
}

func (r *cartRepository) FindByID(ctx context.Context, id uint) (*model.CartItem, error) {
	logger.Debug("Finding cart item by ID in database", map[string]interface{}{
		"cart_item_id": id,
	})

	var cartItem model.CartItem
	err := r.db.WithContext(ctx).Preload("Option").First(&cartItem, id).Error
	if err != nil {
		logger.Error("Failed to find cart item by ID in database", err, map[string]interface{}{
			"cart_item_id": id,
		})
		return nil, err
	}

	return &cartItem, nil
}

func (r *cartRepository) FindByUserAndOption(ctx context.Context, userID, optionID uint) (*model.CartItem, error) {
	logger.Debug("Finding cart item by user and option in database", map[string]interface{}{
		"user_id":   userID,
		"option_id": optionID,
	})

	var cartItem model.CartItem
	err := r.db.WithContext(ctx).Where("user_id = ? AND option_id = ?", userID, optionID).
		First(&cartItem).Error
	if err != nil {
		return nil, err
	}

	logger.Debug("Cart item found by user and option in database", map[string]interface{}{
		"cart_item_id": cartItem.ID,
		"user_id":      userID,
		"option_id":    optionID,
	})
	return &cartItem, nil
}

func (r *cartRepository) Update(ctx context.Context, cartItem *model.CartItem) error {
	logger.Debug("Updating cart item in database", map[string]interface{}{
		"cart_item_id": cartItem.ID,
		"quantity":     cartItem.Quantity,
	})

	if err := r.db.WithContext(ctx).Model(cartItem).Update("quantity", cartItem.Quantity).Error; err != nil {
		logger.Error("Failed to update cart item in database", err, map[string]interface{}{
			"cart_item_id": cartItem.ID,
			"user_id":      cartItem.UserID,
			"option_id":    cartItem.OptionID,
		})
		return err
	}

	return nil
}

func (r *cartRepository) Delete(ctx context.Context, id uint) error {
	logger.Debug("Deleting cart item from database", map[string]interface{}{
		"cart_item_id": id,
	})

	if err := r.db.WithContext(ctx).Delete(&model.CartItem{}, id).Error; err != nil {
		logger.Error("Failed to delete cart item from database", err, map[string]interface{}{
			"cart_item_id": id,
		})
		return err
	}

	return nil
}

func (r *cartRepository) DeleteByUserID(ctx context.Context, userID uint) error {
	logger.Debug("Deleting cart items by user ID from database", map[string]interface{}{
		"user_id": userID,
	})

	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.CartItem{}).Error; err != nil {
		logger.Error("Failed to delete cart items by user ID from database", err, map[string]interface{}{
			"user_id": userID,
		})
		return err
	}

	logger.Debug("Cart items deleted by user ID from database", map[string]interface{}{
		"user_id": userID,
	})
	return nil
}
