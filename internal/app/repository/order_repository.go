package repository

import (
	"context"
	"time"

	"github.com/ikkim/furniture-backend/internal/app/model"
	"github.com/ikkim/furniture-backend/pkg/logger"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderRepository interface {
	WithTx(tx *gorm.DB) OrderRepository
	Create(ctx context.Context, order *model.Order) error
	CreateItems(ctx context.Context, items []model.Item) error
	FindByID(ctx context.Context, id uint) (*model.Order, error)
	FindItemsByOrderID(ctx context.Context, orderID uint) ([]model.Item, error)
	FindByUserID(ctx context.Context, userID uint, limit, offset int) ([]model.Order, int64, error)
	MarkOrdered(ctx context.Context, id uint, total decimal.Decimal, orderedAt time.Time) error
	UpdateStatus(ctx context.Context, id uint, ordered bool) (bool, error)
	DeleteItemsByOrderID(ctx context.Context, orderID uint) error
	Delete(ctx context.Context, id uint) error
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) WithTx(tx *gorm.DB) OrderRepository {
	return &orderRepository{db: tx}
}

func (r *orderRepository) Create(ctx context.Context, order *model.Order) error {
	logger.Debug("Creating order in database", map[string]interface{}{
		"user_id": order.UserID,
		"ordered": order.Ordered,
	})

	// Items are written separately by CreateItems.
	if err := r.db.WithContext(ctx).Omit("Items", "Checks").Create(order).Error; err != nil {
		logger.Error("Failed to create order in database", err, map[string]interface{}{
			"user_id": order.UserID,
		})
		return err
	}

	logger.Debug("Order created in database", map[string]interface{}{
		"order_id": order.ID,
		"user_id":  order.UserID,
	})
	return nil
}

func (r *orderRepository) CreateItems(ctx context.Context, items []model.Item) error {
	if len(items) == 0 {
		return nil
	}

	logger.Debug("Creating order items in database", map[string]interface{}{
		"order_id": items[0].OrderID,
		"count":    len(items),
	})

	if err := r.db.WithContext(ctx).Omit("Option").Create(&items).Error; err != nil {
		logger.Error("Failed to create order items in database", err, map[string]interface{}{
			"order_id": items[0].OrderID,
			"count":    len(items),
		})
		return err
	}

	return nil
}

func (r *orderRepository) FindByID(ctx context.Context, id uint) (*model.Order, error) {
	logger.Debug("Finding order by ID in database", map[string]interface{}{
		"order_id": id,
	})

	var order model.Order
	if err := r.db.WithContext(ctx).First(&order, id).Error; err != nil {
		logger.Error("Failed to find order by ID in database", err, map[string]interface{}{
			"order_id": id,
		})
		return nil, err
	}

	logger.Debug("Order found by ID in database", map[string]interface{}{
		"order_id": order.ID,
		"user_id":  order.UserID,
		"ordered":  order.Ordered,
	})
	return &order, nil
}

func (r *orderRepository) FindItemsByOrderID(ctx context.Context, orderID uint) ([]model.Item, error) {
	var items []model.Item
	if err := r.db.WithContext(ctx).
		Preload("Option").
		Where("order_id = ?", orderID).
		Order("id ASC").
		Find(&items).Error; err != nil {
		logger.Error("Failed to find order items in database", err, map[string]interface{}{
			"order_id": orderID,
		})
		return nil, err
	}

	logger.Debug("Order items found in database", map[string]interface{}{
		"order_id": orderID,
		"count":    len(items),
	})
	return items, nil
}

func (r *orderRepository) FindByUserID(ctx context.Context, userID uint, limit, offset int) ([]model.Order, int64, error) {
	logger.Debug("Finding orders by user ID in database", map[string]interface{}{
		"user_id": userID,
		"limit":   limit,
		"offset":  offset,
	})

	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Order{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		logger.Error("Failed to count orders by user ID in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, 0, err
	}

	var orders []model.Order
	query := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC").Preload("Option")
		}).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&orders).Error; err != nil {
		logger.Error("Failed to find orders by user ID in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, 0, err
	}

	logger.Debug("Orders found by user ID in database", map[string]interface{}{
		"user_id": userID,
		"count":   len(orders),
		"total":   total,
	})
	return orders, total, nil
}

func (r *orderRepository) MarkOrdered(ctx context.Context, id uint, total decimal.Decimal, orderedAt time.Time) error {
	if err := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"ordered":     true,
			"total_price": total,
			"ordered_at":  orderedAt,
		}).Error; err != nil {
		logger.Error("Failed to mark order as ordered in database", err, map[string]interface{}{
			"order_id": id,
		})
		return err
	}

	logger.Debug("Order marked as ordered in database", map[string]interface{}{
		"order_id":    id,
		"total_price": total.String(),
	})
	return nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id uint, ordered bool) (bool, error) {
	logger.Debug("Updating order status in database", map[string]interface{}{
		"order_id": id,
		"ordered":  ordered,
	})

	result := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", id).
		Update("ordered", ordered)
	if result.Error != nil {
		logger.Error("Failed to update order status in database", result.Error, map[string]interface{}{
			"order_id": id,
			"ordered":  ordered,
		})
		return false, result.Error
	}

	return result.RowsAffected == 1, nil
}

func (r *orderRepository) DeleteItemsByOrderID(ctx context.Context, orderID uint) error {
	if err := r.db.WithContext(ctx).Where("order_id = ?", orderID).Delete(&model.Item{}).Error; err != nil {
		logger.Error("Failed to delete order items from database", err, map[string]interface{}{
			"order_id": orderID,
		})
		return err
	}

	logger.Debug("Order items deleted from database", map[string]interface{}{
		"order_id": orderID,
	})
	return nil
}

func (r *orderRepository) Delete(ctx context.Context, id uint) error {
	logger.Debug("Deleting order from database", map[string]interface{}{
		"order_id": id,
	})

	if err := r.db.WithContext(ctx).Delete(&model.Order{}, id).Error; err != nil {
		logger.Error("Failed to delete order from database", err, map[string]interface{}{
			"order_id": id,
		})
		return err
	}

	logger.Debug("Order deleted from database", map[string]interface{}{
		"order_id": id,
	})
	return nil
}
