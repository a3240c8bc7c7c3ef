package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/furniture-backend/internal/app/dto"
	"github.com/ikkim/furniture-backend/internal/app/service"
	apperrors "github.com/ikkim/furniture-backend/internal/errors"
	"github.com/shopspring/decimal"
)

type ProductController struct {
	categoryService service.CategoryService
	productService  service.ProductService
	optionService   service.OptionService
	stockService    service.StockService
}

func NewProductController(
	categoryService service.CategoryService,
	productService service.ProductService,
	optionService service.OptionService,
	stockService service.StockService,
) *ProductController {
	return &ProductController{
		categoryService: categoryService,
		productService:  productService,
		optionService:   optionService,
		stockService:    stockService,
	}
}

type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

type ProductRequest struct {
	CategoryID  uint            `json:"category_id" binding:"required"`
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	DeliveryFee decimal.Decimal `json:"delivery_fee"`
	Materials   []string        `json:"materials"`
}

func (r ProductRequest) input() service.ProductInput {
	return service.ProductInput{
		CategoryID:  r.CategoryID,
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		DeliveryFee: r.DeliveryFee,
		Materials:   r.Materials,
	}
}

type CreateOptionRequest struct {
	Name          string          `json:"name" binding:"required"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stock_quantity" binding:"min=0"`
}

type UpdateOptionRequest struct {
	Name  string          `json:"name" binding:"required"`
	Price decimal.Decimal `json:"price"`
}

type UpdateStockRequest struct {
	StockQuantity *int `json:"stock_quantity" binding:"required"`
}

// ListCategories GET /api/v1/categories
func (ctrl *ProductController) ListCategories(c *gin.Context) {
	categories, err := ctrl.categoryService.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "category")
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": dto.NewCategoryResponses(categories)})
}

// CreateCategory POST /api/v1/categories (admin)
func (ctrl *ProductController) CreateCategory(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "카테고리 이름이 필요합니다")
		return
	}

	category, err := ctrl.categoryService.Create(c.Request.Context(), p, req.Name)
	if err != nil {
		respondError(c, err, "create category")
		return
	}
	c.JSON(http.StatusCreated, dto.CategoryResponse{ID: category.ID, Name: category.Name})
}

// ListProducts GET /api/v1/products?category_id=&search=&page=&size=
func (ctrl *ProductController) ListProducts(c *gin.Context) {
	opts := service.ProductListOptions{
		Search: c.Query("search"),
		Page:   pageQuery(c),
	}
	if raw := c.Query("category_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			apperrors.BadRequest(c, apperrors.ValidationInvalidID, "잘못된 카테고리 ID입니다")
			return
		}
		categoryID := uint(id)
		opts.CategoryID = &categoryID
	}

	products, total, err := ctrl.productService.ListProducts(c.Request.Context(), opts)
	if err != nil {
		respondError(c, err, "product")
		return
	}
	c.JSON(http.StatusOK, dto.NewProductListResponse(products, total, opts.Page.Page, opts.Page.Size))
}

// GetProduct GET /api/v1/products/:id
func (ctrl *ProductController) GetProduct(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	product, err := ctrl.productService.GetProductByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "product")
		return
	}
	c.JSON(http.StatusOK, dto.NewProductResponse(product))
}

// CreateProduct POST /api/v1/products (admin)
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	var req ProductRequest
	if !bindJSON(c, &req) {
		return
	}

	product, err := ctrl.productService.CreateProduct(c.Request.Context(), p, req.input())
	if err != nil {
		respondError(c, err, "create product")
		return
	}
	c.JSON(http.StatusCreated, dto.NewProductResponse(product))
}

// UpdateProduct PUT /api/v1/products/:id (admin)
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req ProductRequest
	if !bindJSON(c, &req) {
		return
	}

	product, err := ctrl.productService.UpdateProduct(c.Request.Context(), p, id, req.input())
	if err != nil {
		respondError(c, err, "update product")
		return
	}
	c.JSON(http.StatusOK, dto.NewProductResponse(product))
}

// DeleteProduct DELETE /api/v1/products/:id (admin)
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.productService.DeleteProduct(c.Request.Context(), p, id); err != nil {
		respondError(c, err, "delete product")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "상품이 삭제되었습니다"})
}

// ListProductOptions GET /api/v1/products/:id/options
func (ctrl *ProductController) ListProductOptions(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	options, err := ctrl.optionService.ListByProduct(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "option")
		return
	}
	c.JSON(http.StatusOK, gin.H{"options": dto.NewOptionResponses(options)})
}

// CreateOption POST /api/v1/products/:id/options (admin)
func (ctrl *ProductController) CreateOption(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	productID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req CreateOptionRequest
	if !bindJSON(c, &req) {
		return
	}

	option, err := ctrl.optionService.Create(c.Request.Context(), p, productID, service.OptionInput{
		Name:          req.Name,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
	})
	if err != nil {
		respondError(c, err, "create option")
		return
	}
	c.JSON(http.StatusCreated, dto.NewOptionResponse(option))
}

// ListOptions GET /api/v1/options
func (ctrl *ProductController) ListOptions(c *gin.Context) {
	options, err := ctrl.optionService.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, err, "option")
		return
	}
	c.JSON(http.StatusOK, gin.H{"options": dto.NewOptionResponses(options)})
}

// GetOption GET /api/v1/options/:id
func (ctrl *ProductController) GetOption(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	option, err := ctrl.optionService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "option")
		return
	}
	c.JSON(http.StatusOK, dto.NewOptionResponse(option))
}

// UpdateOption PUT /api/v1/options/:id (admin)
func (ctrl *ProductController) UpdateOption(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req UpdateOptionRequest
	if !bindJSON(c, &req) {
		return
	}

	option, err := ctrl.optionService.Update(c.Request.Context(), p, id, req.Name, req.Price)
	if err != nil {
		respondError(c, err, "update option")
		return
	}
	c.JSON(http.StatusOK, dto.NewOptionResponse(option))
}

// DeleteOption DELETE /api/v1/options/:id (admin)
func (ctrl *ProductController) DeleteOption(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.optionService.Delete(c.Request.Context(), p, id); err != nil {
		respondError(c, err, "delete option")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "옵션이 삭제되었습니다"})
}

// UpdateStock overwrites an option's stock level
// PUT /api/v1/options/:id/stock (admin)
func (ctrl *ProductController) UpdateStock(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req UpdateStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "재고 수량이 필요합니다")
		return
	}

	option, err := ctrl.stockService.UpdateStock(c.Request.Context(), id, *req.StockQuantity)
	if err != nil {
		respondError(c, err, "update stock")
		return
	}
	c.JSON(http.StatusOK, dto.NewOptionResponse(option))
}
