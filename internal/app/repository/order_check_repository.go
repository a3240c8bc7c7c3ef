package repository

import (
	"context"

	"github.com/ikkim/furniture-backend/internal/app/model"
	"github.com/ikkim/furniture-backend/pkg/logger"
	"gorm.io/gorm"
)

type OrderCheckRepository interface {
	WithTx(tx *gorm.DB) OrderCheckRepository
	CreateBatch(ctx context.Context, checks []model.OrderCheck) error
	FindByID(ctx context.Context, id uint) (*model.OrderCheck, error)
	FindByOrderID(ctx context.Context, orderID uint) ([]model.OrderCheck, error)
	UpdateStatus(ctx context.Context, id uint, status model.OrderCheckStatus) error
	DeleteByOrderID(ctx context.Context, orderID uint) error
}

type orderCheckRepository struct {
	db *gorm.DB
}

func NewOrderCheckRepository(db *gorm.DB) OrderCheckRepository {
	return &orderCheckRepository{db: db}
}

func (r *orderCheckRepository) WithTx(tx *gorm.DB) OrderCheckRepository {
	return &orderCheckRepository{db: tx}
}

func (r *orderCheckRepository) CreateBatch(ctx context.Context, checks []model.OrderCheck) error {
	if len(checks) == 0 {
		return nil
	}

	if err := r.db.WithContext(ctx).Omit("Option").Create(&checks).Error; err != nil {
		logger.Error("Failed to create order checks in database", err, map[string]interface{}{
			"order_id": checks[0].OrderID,
			"count":    len(checks),
		})
		return err
	}

	logger.Debug("Order checks created in database", map[string]interface{}{
		"order_id": checks[0].OrderID,
		"count":    len(checks),
	})
	return nil
}

func (r *orderCheckRepository) FindByID(ctx context.Context, id uint) (*model.OrderCheck, error) {
	var check model.OrderCheck
	if err := r.db.WithContext(ctx).Preload("Option").First(&check, id).Error; err != nil {
		logger.Error("Failed to find order check in database", err, map[string]interface{}{
			"order_check_id": id,
		})
		return nil, err
	}
	return &check, nil
}

func (r *orderCheckRepository) FindByOrderID(ctx context.Context, orderID uint) ([]model.OrderCheck, error) {
	var checks []model.OrderCheck
	if err := r.db.WithContext(ctx).Where("order_id = ?", orderID).Order("id ASC").Find(&checks).Error; err != nil {
		logger.Error("Failed to find order checks in database", err, map[string]interface{}{
			"order_id": orderID,
		})
		return nil, err
	}
	return checks, nil
}

func (r *orderCheckRepository) UpdateStatus(ctx context.Context, id uint, status model.OrderCheckStatus) error {
	if err := r.db.WithContext(ctx).Model(&model.OrderCheck{}).
		Where("id = ?", id).
		Update("status", status).Error; err != nil {
		logger.Error("Failed to update order check status in database", err, map[string]interface{}{
			"order_check_id": id,
			"status":         status,
		})
		return err
	}

	logger.Debug("Order check status updated in database", map[string]interface{}{
		"order_check_id": id,
		"status":         status,
	})
	return nil
}

func (r *orderCheckRepository) DeleteByOrderID(ctx context.Context, orderID uint) error {
	if err := r.db.WithContext(ctx).Where("order_id = ?", orderID).Delete(&model.OrderCheck{}).Error; err != nil {
		logger.Error("Failed to delete order checks from database", err, map[string]interface{}{
			"order_id": orderID,
		})
		return err
	}
	return nil
}
