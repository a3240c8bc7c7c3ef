package dto

import (
	"time"

	"github.com/ikkim/furniture-backend/internal/app/model"
	"github.com/shopspring/decimal"
)

type ItemResponse struct {
	ID         uint            `json:"id"`
	OptionID   uint            `json:"option_id"`
	OptionName string          `json:"option_name"`
	Quantity   int             `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
}

type OrderResponse struct {
	ID         uint            `json:"id"`
	UserID     uint            `json:"user_id"`
	Ordered    bool            `json:"ordered"`
	TotalPrice decimal.Decimal `json:"total_price"`
	OrderedAt  *time.Time      `json:"ordered_at,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	Items      []ItemResponse  `json:"items"`
}

type OrderSummaryResponse struct {
	ID         uint            `json:"id"`
	Ordered    bool            `json:"ordered"`
	TotalPrice decimal.Decimal `json:"total_price"`
	OrderedAt  *time.Time      `json:"ordered_at,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

type OrderListResponse struct {
	Orders []OrderSummaryResponse `json:"orders"`
	Total  int64                  `json:"total"`
	Page   int                    `json:"page"`
	Size   int                    `json:"size"`
}

// OrderStatusResponse is the status projection of an order.
type OrderStatusResponse struct {
	OrderID uint `json:"order_id"`
	Ordered bool `json:"ordered"`
}

type OrderCheckResponse struct {
	ID         uint                   `json:"id"`
	OrderID    uint                   `json:"order_id"`
	OptionID   uint                   `json:"option_id"`
	OptionName string                 `json:"option_name"`
	Quantity   int                    `json:"quantity"`
	Status     model.OrderCheckStatus `json:"status"`
}

func NewItemResponse(item model.Item) ItemResponse {
	return ItemResponse{
		ID:         item.ID,
		OptionID:   item.OptionID,
		OptionName: item.Option.Name,
		Quantity:   item.Quantity,
		Price:      item.Price,
	}
}

func NewOrderResponse(order *model.Order) OrderResponse {
	items := make([]ItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, NewItemResponse(item))
	}
	return OrderResponse{
		ID:         order.ID,
		UserID:     order.UserID,
		Ordered:    order.Ordered,
		TotalPrice: order.TotalPrice,
		OrderedAt:  order.OrderedAt,
		CreatedAt:  order.CreatedAt,
		Items:      items,
	}
}

func NewOrderListResponse(orders []model.Order, total int64, page, size int) OrderListResponse {
	summaries := make([]OrderSummaryResponse, 0, len(orders))
	for _, o := range orders {
		summaries = append(summaries, OrderSummaryResponse{
			ID:         o.ID,
			Ordered:    o.Ordered,
			TotalPrice: o.TotalPrice,
			OrderedAt:  o.OrderedAt,
			CreatedAt:  o.CreatedAt,
		})
	}
	return OrderListResponse{Orders: summaries, Total: total, Page: page, Size: size}
}

func NewOrderStatusResponse(order *model.Order) OrderStatusResponse {
	return OrderStatusResponse{OrderID: order.ID, Ordered: order.Ordered}
}

func NewOrderCheckResponse(check *model.OrderCheck) OrderCheckResponse {
	return OrderCheckResponse{
		ID:         check.ID,
		OrderID:    check.OrderID,
		OptionID:   check.OptionID,
		OptionName: check.Option.Name,
		Quantity:   check.Quantity,
		Status:     check.Status,
	}
}
