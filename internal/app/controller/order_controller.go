package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/furniture-backend/internal/app/dto"
	"github.com/ikkim/furniture-backend/internal/app/service"
	apperrors "github.com/ikkim/furniture-backend/internal/errors"
	"github.com/ikkim/furniture-backend/internal/middleware"
)

// ReturnConfirmation is the body returned for a return request.
const ReturnConfirmation = "반품 처리가 완료되었습니다."

type OrderController struct {
	orderService service.OrderService
	stockService service.StockService
}

func NewOrderController(orderService service.OrderService, stockService service.StockService) *OrderController {
	return &OrderController{
		orderService: orderService,
		stockService: stockService,
	}
}

type DeleteOrderRequest struct {
	OrderID uint `json:"order_id" form:"order_id" binding:"required"`
}

type UpdateOrderStatusRequest struct {
	Ordered *bool `json:"ordered" binding:"required"`
}

// Save places an order from the caller's cart
// POST /api/v1/orders/save
func (ctrl *OrderController) Save(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	order, err := ctrl.orderService.Checkout(c.Request.Context(), p)
	if err != nil {
		respondError(c, err, "create order")
		return
	}

	middleware.GetLoggerFromContext(c).Info("Order placed", map[string]interface{}{
		"order_id": order.ID,
		"user_id":  p.UserID,
	})
	c.JSON(http.StatusCreated, dto.NewOrderResponse(order))
}

// GetOrder returns one order with its line items
// GET /api/v1/orders/:id
func (ctrl *OrderController) GetOrder(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	order, err := ctrl.orderService.FindByID(c.Request.Context(), p, id)
	if err != nil {
		respondError(c, err, "order")
		return
	}

	c.JSON(http.StatusOK, dto.NewOrderResponse(order))
}

// ListOrders returns the caller's orders, newest first
// GET /api/v1/orders
func (ctrl *OrderController) ListOrders(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	page := pageQuery(c)

	orders, total, err := ctrl.orderService.List(c.Request.Context(), p, page)
	if err != nil {
		respondError(c, err, "order")
		return
	}

	c.JSON(http.StatusOK, dto.NewOrderListResponse(orders, total, page.Page, page.Size))
}

// Delete removes an order and its line items
// POST /api/v1/orders/delete
func (ctrl *OrderController) Delete(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	var req DeleteOrderRequest
	if err := c.ShouldBind(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "주문 ID가 필요합니다")
		return
	}

	if err := ctrl.orderService.Delete(c.Request.Context(), p, req.OrderID); err != nil {
		respondError(c, err, "delete order")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "주문이 삭제되었습니다", "order_id": req.OrderID})
}

// Return acknowledges a return request
// POST /api/v1/orders/:id/return
func (ctrl *OrderController) Return(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.orderService.ProcessReturn(c.Request.Context(), p, id); err != nil {
		respondError(c, err, "order")
		return
	}

	c.String(http.StatusOK, ReturnConfirmation)
}

// Cancel restores stock and marks the order as not ordered
// POST /api/v1/orders/:id/cancel
func (ctrl *OrderController) Cancel(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	order, err := ctrl.orderService.Cancel(c.Request.Context(), p, id)
	if err != nil {
		respondError(c, err, "cancel order")
		return
	}

	c.JSON(http.StatusOK, dto.NewOrderStatusResponse(order))
}

// GetStatus GET /api/v1/orders/:id/status
func (ctrl *OrderController) GetStatus(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	order, err := ctrl.orderService.GetStatus(c.Request.Context(), p, id)
	if err != nil {
		respondError(c, err, "order")
		return
	}

	c.JSON(http.StatusOK, dto.NewOrderStatusResponse(order))
}

// UpdateStatus PUT /api/v1/orders/:id/status (admin)
func (ctrl *OrderController) UpdateStatus(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "ordered 값이 필요합니다")
		return
	}

	order, err := ctrl.orderService.UpdateStatus(c.Request.Context(), p, id, *req.Ordered)
	if err != nil {
		respondError(c, err, "update order")
		return
	}

	c.JSON(http.StatusOK, dto.NewOrderStatusResponse(order))
}

// GetOrderCheck GET /api/v1/orders/ordercheck/:id
func (ctrl *OrderController) GetOrderCheck(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	check, err := ctrl.orderService.FindOrderCheck(c.Request.Context(), p, id)
	if err != nil {
		respondError(c, err, "order check")
		return
	}

	c.JSON(http.StatusOK, dto.NewOrderCheckResponse(check))
}

// DeductOrderCheck POST /api/v1/orderchecks/:id/deduct (admin)
func (ctrl *OrderController) DeductOrderCheck(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	check, err := ctrl.stockService.DeductStockOnOrder(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "update stock")
		return
	}

	c.JSON(http.StatusOK, dto.NewOrderCheckResponse(check))
}

// RestoreOrderCheck POST /api/v1/orderchecks/:id/restore (admin)
func (ctrl *OrderController) RestoreOrderCheck(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	check, err := ctrl.stockService.RestoreStockOnOrderCancel(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "update stock")
		return
	}

	c.JSON(http.StatusOK, dto.NewOrderCheckResponse(check))
}
