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

type OptionInput struct {
	Name          string
	Price         decimal.Decimal
	StockQuantity int
}

// OptionService manages option rows. Stock changes go through StockService.
type OptionService interface {
	Create(ctx context.Context, p Principal, productID uint, input OptionInput) (*model.Option, error)
	ListByProduct(ctx context.Context, productID uint) ([]model.Option, error)
	ListAll(ctx context.Context) ([]model.Option, error)
	Get(ctx context.Context, id uint) (*model.Option, error)
	Update(ctx context.Context, p Principal, id uint, name string, price decimal.Decimal) (*model.Option, error)
	Delete(ctx context.Context, p Principal, id uint) error
}

type optionService struct {
	optionRepo  repository.OptionRepository
	productRepo repository.ProductRepository
}

func NewOptionService(optionRepo repository.OptionRepository, productRepo repository.ProductRepository) OptionService {
	return &optionService{
		optionRepo:  optionRepo,
		productRepo: productRepo,
	}
}

func (s *optionService) Create(ctx context.Context, p Principal, productID uint, input OptionInput) (*model.Option, error) {
	if !p.IsAdmin() {
		return nil, ErrForbidden
	}
	if input.StockQuantity < 0 {
		return nil, ErrInvalidQuantity
	}
	if input.Price.IsNegative() {
		return nil, ErrInvalidPrice
	}

	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	option := &model.Option{
		ProductID:     productID,
		Name:          input.Name,
		Price:         input.Price,
		StockQuantity: input.StockQuantity,
	}
	if err := s.optionRepo.Create(ctx, option); err != nil {
		return nil, err
	}

	logger.Info("Option created", map[string]interface{}{
		"option_id":  option.ID,
		"product_id": productID,
		"stock":      option.StockQuantity,
	})
	return option, nil
}

// ListByProduct treats a product without options as not found.
func (s *optionService) ListByProduct(ctx context.Context, productID uint) ([]model.Option, error) {
	options, err := s.optionRepo.FindByProductID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if len(options) == 0 {
		return nil, ErrOptionNotFound
	}
	return options, nil
}

func (s *optionService) ListAll(ctx context.Context) ([]model.Option, error) {
	return s.optionRepo.FindAll(ctx)
}

func (s *optionService) Get(ctx context.Context, id uint) (*model.Option, error) {
	option, err := s.optionRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOptionNotFound
		}
		return nil, err
	}
	return option, nil
}

func (s *optionService) Update(ctx context.Context, p Principal, id uint, name string, price decimal.Decimal) (*model.Option, error) {
	if !p.IsAdmin() {
		return nil, ErrForbidden
	}
	if price.IsNegative() {
		return nil, ErrInvalidPrice
	}

	option, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	option.Name = name
	option.Price = price

	if err := s.optionRepo.Update(ctx, option); err != nil {
		return nil, err
	}
	return option, nil
}

func (s *optionService) Delete(ctx context.Context, p Principal, id uint) error {
	if !p.IsAdmin() {
		return ErrForbidden
	}
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.optionRepo.Delete(ctx, id)
}
