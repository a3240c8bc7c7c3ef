package repository

import (
	"context"

	"github.com/ikkim/furniture-backend/internal/app/model"
	"github.com/ikkim/furniture-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OptionRepository interface {
	WithTx(tx *gorm.DB) OptionRepository
	Create(ctx context.Context, option *model.Option) error
	FindByID(ctx context.Context, id uint) (*model.Option, error)
	FindByIDForUpdate(ctx context.Context, id uint) (*model.Option, error)
	FindByProductID(ctx context.Context, productID uint) ([]model.Option, error)
	FindAll(ctx context.Context) ([]model.Option, error)
	FindLowStock(ctx context.Context, threshold int) ([]model.Option, error)
	Update(ctx context.Context, option *model.Option) error
	Delete(ctx context.Context, id uint) error
	DeductStock(ctx context.Context, id uint, quantity int) (bool, error)
	RestoreStock(ctx context.Context, id uint, quantity int) (bool, error)
	SetStock(ctx context.Context, id uint, quantity int) (bool, error)
}

type optionRepository struct {
	db *gorm.DB
}

func NewOptionRepository(db *gorm.DB) OptionRepository {
	return &optionRepository{db: db}
}

func (r *optionRepository) WithTx(tx *gorm.DB) OptionRepository {
	return &optionRepository{db: tx}
}

func (r *optionRepository) Create(ctx context.Context, option *model.Option) error {
	logger.Debug("Creating option", map[string]interface{}{
		"product_id": option.ProductID,
		"name":       option.Name,
	})

	if err := r.db.WithContext(ctx).Create(option).Error; err != nil {
		logger.Error("Failed to create option", err, map[string]interface{}{
			"product_id": option.ProductID,
			"name":       option.Name,
		})
		return err
	}

	logger.Debug("Option created", map[string]interface{}{
		"option_id": option.ID,
	})
	return nil
}

func (r *optionRepository) FindByID(ctx context.Context, id uint) (*model.Option, error) {
	logger.Debug("Finding option by ID", map[string]interface{}{
		"option_id": id,
	})

	var option model.Option
	if err := r.db.WithContext(ctx).First(&option, id).Error; err != nil {
		logger.Error("Failed to find option", err, map[string]interface{}{
			"option_id": id,
		})
		return nil, err
	}

	return &option, nil
}

// FindByIDForUpdate takes a row lock on PostgreSQL. SQLite ignores the clause
// and serializes writers on its own.
func (r *optionRepository) FindByIDForUpdate(ctx context.Context, id uint) (*model.Option, error) {
	var option model.Option
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&option, id).Error; err != nil {
		logger.Error("Failed to lock option", err, map[string]interface{}{
			"option_id": id,
		})
		return nil, err
	}

	logger.Debug("Option locked", map[string]interface{}{
		"option_id":      option.ID,
		"stock_quantity": option.StockQuantity,
	})
	return &option, nil
}

func (r *optionRepository) FindByProductID(ctx context.Context, productID uint) ([]model.Option, error) {
	logger.Debug("Finding options by product", map[string]interface{}{
		"product_id": productID,
	})

	var options []model.Option
	if err := r.db.WithContext(ctx).Where("product_id = ?", productID).Order("price ASC, id ASC").Find(&options).Error; err != nil {
		logger.Error("Failed to find options", err, map[string]interface{}{
			"product_id": productID,
		})
		return nil, err
	}

	logger.Debug("Options found", map[string]interface{}{
		"count": len(options),
	})
	return options, nil
}

func (r *optionRepository) FindAll(ctx context.Context) ([]model.Option, error) {
	var options []model.Option
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&options).Error; err != nil {
		logger.Error("Failed to find options", err)
		return nil, err
	}
	return options, nil
}

func (r *optionRepository) FindLowStock(ctx context.Context, threshold int) ([]model.Option, error) {
	var options []model.Option
	if err := r.db.WithContext(ctx).
		Where("stock_quantity <= ?", threshold).
		Order("stock_quantity ASC, id ASC").
		Find(&options).Error; err != nil {
		logger.Error("Failed to find low stock options", err, map[string]interface{}{
			"threshold": threshold,
		})
		return nil, err
	}
	return options, nil
}

func (r *optionRepository) Update(ctx context.Context, option *model.Option) error {
	logger.Debug("Updating option", map[string]interface{}{
		"option_id": option.ID,
	})

	// stock_quantity is only written through the stock methods below.
	if err := r.db.WithContext(ctx).Model(option).
		Select("name", "price").
		Updates(map[string]interface{}{"name": option.Name, "price": option.Price}).Error; err != nil {
		logger.Error("Failed to update option", err, map[string]interface{}{
			"option_id": option.ID,
		})
		return err
	}

	logger.Debug("Option updated", map[string]interface{}{
		"option_id": option.ID,
	})
	return nil
}

func (r *optionRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&model.Option{}, id).Error; err != nil {
		logger.Error("Failed to delete option", err, map[string]interface{}{
			"option_id": id,
		})
		return err
	}

	logger.Debug("Option deleted", map[string]interface{}{
		"option_id": id,
	})
	return nil
}

// DeductStock decrements stock only when enough is available. It reports
// false when no row matched, either because the option does not exist or
// because the stock is short.
func (r *optionRepository) DeductStock(ctx context.Context, id uint, quantity int) (bool, error) {
	logger.Debug("Deducting option stock", map[string]interface{}{
		"option_id": id,
		"quantity":  quantity,
	})

	result := r.db.WithContext(ctx).Model(&model.Option{}).
		Where("id = ? AND stock_quantity >= ?", id, quantity).
		Update("stock_quantity", gorm.Expr("stock_quantity - ?", quantity))
	if result.Error != nil {
		logger.Error("Failed to deduct option stock", result.Error, map[string]interface{}{
			"option_id": id,
			"quantity":  quantity,
		})
		return false, result.Error
	}

	logger.Debug("Option stock deducted", map[string]interface{}{
		"option_id":     id,
		"quantity":      quantity,
		"rows_affected": result.RowsAffected,
	})
	return result.RowsAffected == 1, nil
}

func (r *optionRepository) RestoreStock(ctx context.Context, id uint, quantity int) (bool, error) {
	logger.Debug("Restoring option stock", map[string]interface{}{
		"option_id": id,
		"quantity":  quantity,
	})

	result := r.db.WithContext(ctx).Model(&model.Option{}).
		Where("id = ?", id).
		Update("stock_quantity", gorm.Expr("stock_quantity + ?", quantity))
	if result.Error != nil {
		logger.Error("Failed to restore option stock", result.Error, map[string]interface{}{
			"option_id": id,
			"quantity":  quantity,
		})
		return false, result.Error
	}

	return result.RowsAffected == 1, nil
}

func (r *optionRepository) SetStock(ctx context.Context, id uint, quantity int) (bool, error) {
	logger.Debug("Setting option stock", map[string]interface{}{
		"option_id": id,
		"quantity":  quantity,
	})

	result := r.db.WithContext(ctx).Model(&model.Option{}).
		Where("id = ?", id).
		Update("stock_quantity", quantity)
	if result.Error != nil {
		logger.Error("Failed to set option stock", result.Error, map[string]interface{}{
			"option_id": id,
			"quantity":  quantity,
		})
		return false, result.Error
	}

	return result.RowsAffected == 1, nil
}
