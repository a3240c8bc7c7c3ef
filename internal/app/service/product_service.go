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
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidPrice    = errors.New("price must not be negative")
)

// ProductInput is the writable part of a product.
type ProductInput struct {
	CategoryID  uint
	Name        string
	Description string
	Price       decimal.Decimal
	DeliveryFee decimal.Decimal
	Materials   []string
}

type ProductListOptions struct {
	CategoryID *uint
	Search     string
	Page       Page
}

type ProductService interface {
	CreateProduct(ctx context.Context, p Principal, input ProductInput) (*model.Product, error)
	GetProductByID(ctx context.Context, id uint) (*model.Product, error)
	ListProducts(ctx context.Context, opts ProductListOptions) ([]model.Product, int64, error)
	UpdateProduct(ctx context.Context, p Principal, id uint, input ProductInput) (*model.Product, error)
	DeleteProduct(ctx context.Context, p Principal, id uint) error
}

type productService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

func NewProductService(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository) ProductService {
	return &productService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

func (s *productService) CreateProduct(ctx context.Context, p Principal, input ProductInput) (*model.Product, error) {
	if !p.IsAdmin() {
		return nil, ErrForbidden
	}
	if err := s.validate(ctx, input); err != nil {
		return nil, err
	}

	product := &model.Product{
		CategoryID:  input.CategoryID,
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		DeliveryFee: input.DeliveryFee,
		Materials:   model.StringList(input.Materials),
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	logger.Info("Product created", map[string]interface{}{
		"product_id":  product.ID,
		"category_id": product.CategoryID,
	})
	return product, nil
}

func (s *productService) GetProductByID(ctx context.Context, id uint) (*model.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *productService) ListProducts(ctx context.Context, opts ProductListOptions) ([]model.Product, int64, error) {
	page := opts.Page.Normalize()
	return s.productRepo.FindWithFilter(ctx, repository.ProductFilter{
		CategoryID: opts.CategoryID,
		Search:     opts.Search,
		Limit:      page.Size,
		Offset:     page.Offset(),
	})
}

func (s *productService) UpdateProduct(ctx context.Context, p Principal, id uint, input ProductInput) (*model.Product, error) {
	if !p.IsAdmin() {
		return nil, ErrForbidden
	}

	product, err := s.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.validate(ctx, input); err != nil {
		return nil, err
	}

	product.CategoryID = input.CategoryID
	product.Name = input.Name
	product.Description = input.Description
	product.Price = input.Price
	product.DeliveryFee = input.DeliveryFee
	product.Materials = model.StringList(input.Materials)
	product.Category = nil

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct removes the product along with its options and files.
func (s *productService) DeleteProduct(ctx context.Context, p Principal, id uint) error {
	if !p.IsAdmin() {
		return ErrForbidden
	}
	if _, err := s.GetProductByID(ctx, id); err != nil {
		return err
	}
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}

	logger.Info("Product deleted", map[string]interface{}{
		"product_id": id,
	})
	return nil
}

func (s *productService) validate(ctx context.Context, input ProductInput) error {
	if input.Price.IsNegative() || input.DeliveryFee.IsNegative() {
		return ErrInvalidPrice
	}
	if _, err := s.categoryRepo.FindByID(ctx, input.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}
	return nil
}
