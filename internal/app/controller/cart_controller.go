package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/furniture-backend/internal/app/dto"
	"github.com/ikkim/furniture-backend/internal/app/service"
	apperrors "github.com/ikkim/furniture-backend/internal/errors"
)

type CartController struct {
	cartService service.CartService
}

func NewCartController(cartService service.CartService) *CartController {
	return &CartController{cartService: cartService}
}

type AddToCartRequest struct {
	OptionID uint `json:"option_id" binding:"required"`
	Quantity int  `json:"quantity" binding:"required,min=1"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// respondCartError reports a stock shortfall at cart time as a bad request;
// nothing has been reserved yet.
func respondCartError(c *gin.Context, err error, context string) {
	if errors.Is(err, service.ErrInsufficientStock) {
		apperrors.BadRequest(c, apperrors.StockInsufficient, "재고가 부족합니다")
		return
	}
	respondError(c, err, context)
}

// GetCart GET /api/v1/cart
func (ctrl *CartController) GetCart(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	snapshot, err := ctrl.cartService.GetCart(c.Request.Context(), p)
	if err != nil {
		respondError(c, err, "cart")
		return
	}

	c.JSON(http.StatusOK, dto.NewCartResponse(snapshot))
}

// AddToCart POST /api/v1/cart
func (ctrl *CartController) AddToCart(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	var req AddToCartRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := ctrl.cartService.AddToCart(c.Request.Context(), p, req.OptionID, req.Quantity)
	if err != nil {
		respondCartError(c, err, "create cart")
		return
	}

	c.JSON(http.StatusCreated, dto.NewCartItemResponse(item))
}

// UpdateCartItem PUT /api/v1/cart/:id
func (ctrl *CartController) UpdateCartItem(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req UpdateCartItemRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := ctrl.cartService.UpdateCartItem(c.Request.Context(), p, id, req.Quantity)
	if err != nil {
		respondCartError(c, err, "update cart")
		return
	}

	c.JSON(http.StatusOK, dto.NewCartItemResponse(item))
}

// RemoveFromCart DELETE /api/v1/cart/:id
func (ctrl *CartController) RemoveFromCart(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.cartService.RemoveFromCart(c.Request.Context(), p, id); err != nil {
		respondError(c, err, "delete cart")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "장바구니에서 삭제되었습니다"})
}

// ClearCart DELETE /api/v1/cart
func (ctrl *CartController) ClearCart(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	if err := ctrl.cartService.ClearCart(c.Request.Context(), p); err != nil {
		respondError(c, err, "delete cart")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "장바구니를 비웠습니다"})
}
