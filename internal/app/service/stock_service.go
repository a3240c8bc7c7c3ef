package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ikkim/furniture-backend/internal/app/model"
	"github.com/ikkim/furniture-backend/internal/app/repository"
	"github.com/ikkim/furniture-backend/internal/db"
	"github.com/ikkim/furniture-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrOptionNotFound     = errors.New("option not found")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrInvalidQuantity    = errors.New("invalid quantity")
	ErrStockUpdateFailed  = errors.New("stock update failed")
	ErrOrderCheckNotFound = errors.New("order check not found")
)

type StockService interface {
	Deduct(ctx context.Context, optionID uint, quantity int) error
	Restore(ctx context.Context, optionID uint, quantity int) error
	UpdateStock(ctx context.Context, optionID uint, quantity int) (*model.Option, error)
	DeductStockOnOrder(ctx context.Context, orderCheckID uint) (*model.OrderCheck, error)
	RestoreStockOnOrderCancel(ctx context.Context, orderCheckID uint) (*model.OrderCheck, error)
	LowStock(ctx context.Context, threshold int) ([]model.Option, error)
}

type stockService struct {
	db         *gorm.DB
	optionRepo repository.OptionRepository
	checkRepo  repository.OrderCheckRepository
	txOpts     db.TxOptions
}

func NewStockService(
	conn *gorm.DB,
	optionRepo repository.OptionRepository,
	checkRepo repository.OrderCheckRepository,
) StockService {
	return &stockService{
		db:         conn,
		optionRepo: optionRepo,
		checkRepo:  checkRepo,
		txOpts:     db.DefaultTxOptions(),
	}
}

// deductStock is the single conditional decrement used by every stock path.
// Stock is never read and written back, so concurrent deductions cannot
// oversell.
func deductStock(ctx context.Context, options repository.OptionRepository, optionID uint, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}

	ok, err := options.DeductStock(ctx, optionID, quantity)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStockUpdateFailed, err)
	}
	if ok {
		return nil
	}

	// Nothing matched: tell a missing option apart from a short one.
	option, err := options.FindByID(ctx, optionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOptionNotFound
		}
		return fmt.Errorf("%w: %w", ErrStockUpdateFailed, err)
	}

	logger.Warn("Insufficient stock", map[string]interface{}{
		"option_id": optionID,
		"requested": quantity,
		"available": option.StockQuantity,
	})
	return ErrInsufficientStock
}

func restoreStock(ctx context.Context, options repository.OptionRepository, optionID uint, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}

	ok, err := options.RestoreStock(ctx, optionID, quantity)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStockUpdateFailed, err)
	}
	if !ok {
		return ErrOptionNotFound
	}
	return nil
}

func (s *stockService) Deduct(ctx context.Context, optionID uint, quantity int) error {
	if err := deductStock(ctx, s.optionRepo, optionID, quantity); err != nil {
		return err
	}

	logger.Info("Stock deducted", map[string]interface{}{
		"option_id": optionID,
		"quantity":  quantity,
	})
	return nil
}

func (s *stockService) Restore(ctx context.Context, optionID uint, quantity int) error {
	if err := restoreStock(ctx, s.optionRepo, optionID, quantity); err != nil {
		return err
	}

	logger.Info("Stock restored", map[string]interface{}{
		"option_id": optionID,
		"quantity":  quantity,
	})
	return nil
}

// UpdateStock overwrites the stock level. Used for inventory corrections.
func (s *stockService) UpdateStock(ctx context.Context, optionID uint, quantity int) (*model.Option, error) {
	if quantity < 0 {
		return nil, ErrInvalidQuantity
	}

	ok, err := s.optionRepo.SetStock(ctx, optionID, quantity)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStockUpdateFailed, err)
	}
	if !ok {
		return nil, ErrOptionNotFound
	}

	option, err := s.optionRepo.FindByID(ctx, optionID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStockUpdateFailed, err)
	}

	logger.Info("Stock overwritten", map[string]interface{}{
		"option_id": optionID,
		"quantity":  quantity,
	})
	return option, nil
}

// DeductStockOnOrder applies an order check's deduction once. A check that is
// already deducted is returned unchanged.
func (s *stockService) DeductStockOnOrder(ctx context.Context, orderCheckID uint) (*model.OrderCheck, error) {
	var result *model.OrderCheck
	err := db.WithTransaction(ctx, s.db, s.txOpts, func(tx *gorm.DB) error {
		checks := s.checkRepo.WithTx(tx)
		check, err := findOrderCheck(ctx, checks, orderCheckID)
		if err != nil {
			return err
		}
		result = check

		if check.Status == model.OrderCheckDeducted {
			return nil
		}
		if err := deductStock(ctx, s.optionRepo.WithTx(tx), check.OptionID, check.Quantity); err != nil {
			return err
		}
		if err := checks.UpdateStatus(ctx, check.ID, model.OrderCheckDeducted); err != nil {
			return fmt.Errorf("%w: %w", ErrStockUpdateFailed, err)
		}
		check.Status = model.OrderCheckDeducted
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Order check stock deducted", map[string]interface{}{
		"order_check_id": orderCheckID,
		"option_id":      result.OptionID,
	})
	return result, nil
}

// RestoreStockOnOrderCancel gives back stock taken by an order check. Only a
// deducted check is restored; any other state is returned unchanged.
func (s *stockService) RestoreStockOnOrderCancel(ctx context.Context, orderCheckID uint) (*model.OrderCheck, error) {
	var result *model.OrderCheck
	err := db.WithTransaction(ctx, s.db, s.txOpts, func(tx *gorm.DB) error {
		checks := s.checkRepo.WithTx(tx)
		check, err := findOrderCheck(ctx, checks, orderCheckID)
		if err != nil {
			return err
		}
		result = check

		if check.Status != model.OrderCheckDeducted {
			return nil
		}
		if err := restoreStock(ctx, s.optionRepo.WithTx(tx), check.OptionID, check.Quantity); err != nil {
			return err
		}
		if err := checks.UpdateStatus(ctx, check.ID, model.OrderCheckRestored); err != nil {
			return fmt.Errorf("%w: %w", ErrStockUpdateFailed, err)
		}
		check.Status = model.OrderCheckRestored
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Order check stock restored", map[string]interface{}{
		"order_check_id": orderCheckID,
		"option_id":      result.OptionID,
	})
	return result, nil
}

func (s *stockService) LowStock(ctx context.Context, threshold int) ([]model.Option, error) {
	return s.optionRepo.FindLowStock(ctx, threshold)
}

func findOrderCheck(ctx context.Context, checks repository.OrderCheckRepository, id uint) (*model.OrderCheck, error) {
	check, err := checks.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderCheckNotFound
		}
		return nil, err
	}
	return check, nil
}
