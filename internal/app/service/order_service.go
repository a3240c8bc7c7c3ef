package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/ikkim/furniture-backend/internal/app/model"
	"github.com/ikkim/furniture-backend/internal/app/repository"
	"github.com/ikkim/furniture-backend/internal/db"
	"github.com/ikkim/furniture-backend/internal/events"
	"github.com/ikkim/furniture-backend/pkg/logger"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrCheckoutFailed    = errors.New("error during order creation")
	ErrOrderDeleteFailed = errors.New("error during order deletion")
	ErrOrderNotActive    = errors.New("order is not active")
)

// OrderNotifier pushes order changes to connected clients.
type OrderNotifier interface {
	NotifyOrder(userID uint, eventType string, orderID uint, data interface{})
}

type nopNotifier struct{}

func (nopNotifier) NotifyOrder(uint, string, uint, interface{}) {}

type OrderService interface {
	Checkout(ctx context.Context, p Principal) (*model.Order, error)
	FindByID(ctx context.Context, p Principal, id uint) (*model.Order, error)
	List(ctx context.Context, p Principal, page Page) ([]model.Order, int64, error)
	Delete(ctx context.Context, p Principal, id uint) error
	ProcessReturn(ctx context.Context, p Principal, id uint) error
	Cancel(ctx context.Context, p Principal, id uint) (*model.Order, error)
	GetStatus(ctx context.Context, p Principal, id uint) (*model.Order, error)
	UpdateStatus(ctx context.Context, p Principal, id uint, ordered bool) (*model.Order, error)
	FindOrderCheck(ctx context.Context, p Principal, checkID uint) (*model.OrderCheck, error)
}

type orderService struct {
	db         *gorm.DB
	orderRepo  repository.OrderRepository
	cartRepo   repository.CartRepository
	optionRepo repository.OptionRepository
	checkRepo  repository.OrderCheckRepository
	publisher  events.Publisher
	notifier   OrderNotifier
	txOpts     db.TxOptions
}

func NewOrderService(
	conn *gorm.DB,
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	optionRepo repository.OptionRepository,
	checkRepo repository.OrderCheckRepository,
	publisher events.Publisher,
	notifier OrderNotifier,
) OrderService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &orderService{
		db:         conn,
		orderRepo:  orderRepo,
		cartRepo:   cartRepo,
		optionRepo: optionRepo,
		checkRepo:  checkRepo,
		publisher:  publisher,
		notifier:   notifier,
		txOpts:     db.DefaultTxOptions(),
	}
}

// LinePrice is the price of one order line: unit price times quantity.
func LinePrice(unit decimal.Decimal, quantity int) decimal.Decimal {
	return unit.Mul(decimal.NewFromInt(int64(quantity)))
}

func checkoutFailed(err error) error {
	return fmt.Errorf("%w: %w", ErrCheckoutFailed, err)
}

// Checkout turns the caller's cart into a placed order. The order row, its
// line items, the stock deductions, the cart clear and the status flip commit
// together or not at all.
func (s *orderService) Checkout(ctx context.Context, p Principal) (*model.Order, error) {
	logger.Info("Checkout started", map[string]interface{}{
		"user_id": p.UserID,
	})

	var order *model.Order
	err := db.WithTransaction(ctx, s.db, s.txOpts, func(tx *gorm.DB) error {
		carts := s.cartRepo.WithTx(tx)
		orders := s.orderRepo.WithTx(tx)
		options := s.optionRepo.WithTx(tx)
		checks := s.checkRepo.WithTx(tx)

		cartItems, err := carts.FindByUserID(ctx, p.UserID)
		if err != nil {
			return checkoutFailed(err)
		}
		if len(cartItems) == 0 {
			return ErrEmptyCart
		}
		// 옵션 ID 순서로 잠가서 동시 주문 간 데드락을 피한다
		sort.Slice(cartItems, func(i, j int) bool {
			return cartItems[i].OptionID < cartItems[j].OptionID
		})

		order = &model.Order{UserID: p.UserID, Ordered: false}
		if err := orders.Create(ctx, order); err != nil {
			return checkoutFailed(err)
		}

		items := make([]model.Item, 0, len(cartItems))
		for _, cartItem := range cartItems {
			option, err := options.FindByIDForUpdate(ctx, cartItem.OptionID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrOptionNotFound
				}
				return checkoutFailed(err)
			}

			items = append(items, model.Item{
				OrderID:  order.ID,
				OptionID: option.ID,
				Quantity: cartItem.Quantity,
				Price:    LinePrice(option.Price, cartItem.Quantity),
				Option:   *option,
			})
		}

		if err := orders.CreateItems(ctx, items); err != nil {
			return checkoutFailed(err)
		}

		total := decimal.Zero
		orderChecks := make([]model.OrderCheck, 0, len(items))
		for _, item := range items {
			if err := deductStock(ctx, options, item.OptionID, item.Quantity); err != nil {
				return err
			}
			orderChecks = append(orderChecks, model.OrderCheck{
				OrderID:  order.ID,
				OptionID: item.OptionID,
				Quantity: item.Quantity,
				Status:   model.OrderCheckDeducted,
			})
			total = total.Add(item.Price)
		}

		if err := checks.CreateBatch(ctx, orderChecks); err != nil {
			return checkoutFailed(err)
		}
		if err := carts.DeleteByUserID(ctx, p.UserID); err != nil {
			return checkoutFailed(err)
		}

		orderedAt := time.Now()
		if err := orders.MarkOrdered(ctx, order.ID, total, orderedAt); err != nil {
			return checkoutFailed(err)
		}

		order.Ordered = true
		order.TotalPrice = total
		order.OrderedAt = &orderedAt
		order.Items = items
		return nil
	})
	if err != nil {
		logger.Warn("Checkout failed", map[string]interface{}{
			"user_id": p.UserID,
			"error":   err.Error(),
		})
		return nil, err
	}

	logger.Info("Order placed", map[string]interface{}{
		"order_id":    order.ID,
		"user_id":     p.UserID,
		"item_count":  len(order.Items),
		"total_price": order.TotalPrice.String(),
	})

	lines := make([]events.OrderLine, 0, len(order.Items))
	for _, item := range order.Items {
		lines = append(lines, events.OrderLine{OptionID: item.OptionID, Quantity: item.Quantity, Price: item.Price.String()})
	}
	s.publish(ctx, events.TopicOrderPlaced, events.EventOrderPlaced, order.ID, events.OrderPlacedPayload{
		OrderID:    order.ID,
		UserID:     order.UserID,
		Items:      lines,
		TotalPrice: order.TotalPrice.String(),
	})
	s.notifier.NotifyOrder(order.UserID, events.TopicOrderPlaced, order.ID, map[string]interface{}{"ordered": true})

	return order, nil
}

// findOwnedOrder hides orders of other users behind ErrOrderNotFound.
func findOwnedOrder(ctx context.Context, orders repository.OrderRepository, p Principal, id uint) (*model.Order, error) {
	order, err := orders.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	if !p.Owns(order.UserID) {
		logger.Warn("Order access denied", map[string]interface{}{
			"order_id": id,
			"user_id":  p.UserID,
			"owner_id": order.UserID,
		})
		return nil, ErrOrderNotFound
	}
	return order, nil
}

func (s *orderService) FindByID(ctx context.Context, p Principal, id uint) (*model.Order, error) {
	order, err := findOwnedOrder(ctx, s.orderRepo, p, id)
	if err != nil {
		return nil, err
	}

	items, err := s.orderRepo.FindItemsByOrderID(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.Items = items
	return order, nil
}

func (s *orderService) List(ctx context.Context, p Principal, page Page) ([]model.Order, int64, error) {
	page = page.Normalize()
	return s.orderRepo.FindByUserID(ctx, p.UserID, page.Size, page.Offset())
}

// Delete removes the order, its line items and its order checks. Stock is not
// given back; Cancel is the path that restores stock.
func (s *orderService) Delete(ctx context.Context, p Principal, id uint) error {
	var order *model.Order
	err := db.WithTransaction(ctx, s.db, s.txOpts, func(tx *gorm.DB) error {
		orders := s.orderRepo.WithTx(tx)

		found, err := findOwnedOrder(ctx, orders, p, id)
		if err != nil {
			return err
		}
		order = found

		if _, err := orders.FindItemsByOrderID(ctx, id); err != nil {
			return err
		}
		if err := s.checkRepo.WithTx(tx).DeleteByOrderID(ctx, id); err != nil {
			return err
		}
		if err := orders.DeleteItemsByOrderID(ctx, id); err != nil {
			return err
		}
		return orders.Delete(ctx, id)
	})
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			return err
		}
		logger.Error("Failed to delete order", err, map[string]interface{}{
			"order_id": id,
		})
		return fmt.Errorf("%w: %w", ErrOrderDeleteFailed, err)
	}

	logger.Info("Order deleted", map[string]interface{}{
		"order_id": id,
		"user_id":  order.UserID,
	})

	s.publish(ctx, events.TopicOrderDeleted, events.EventOrderDeleted, id, events.OrderDeletedPayload{
		OrderID: id,
		UserID:  order.UserID,
	})
	s.notifier.NotifyOrder(order.UserID, events.TopicOrderDeleted, id, nil)
	return nil
}

// ProcessReturn acknowledges a return request for an existing order.
func (s *orderService) ProcessReturn(ctx context.Context, p Principal, id uint) error {
	order, err := findOwnedOrder(ctx, s.orderRepo, p, id)
	if err != nil {
		return err
	}

	// TODO: apply the return once the returns policy defines whether stock
	// comes back through the order checks and which status the order moves to.
	logger.Info("Return requested", map[string]interface{}{
		"order_id": order.ID,
		"user_id":  p.UserID,
	})
	return nil
}

// Cancel flips a placed order back to not ordered and returns the stock of
// every deducted order check.
func (s *orderService) Cancel(ctx context.Context, p Principal, id uint) (*model.Order, error) {
	var (
		order    *model.Order
		restored []events.OrderLine
	)
	err := db.WithTransaction(ctx, s.db, s.txOpts, func(tx *gorm.DB) error {
		orders := s.orderRepo.WithTx(tx)
		options := s.optionRepo.WithTx(tx)
		checks := s.checkRepo.WithTx(tx)
		restored = nil

		found, err := findOwnedOrder(ctx, orders, p, id)
		if err != nil {
			return err
		}
		if !found.Ordered {
			return ErrOrderNotActive
		}
		order = found

		orderChecks, err := checks.FindByOrderID(ctx, id)
		if err != nil {
			return err
		}
		for _, check := range orderChecks {
			if check.Status != model.OrderCheckDeducted {
				continue
			}
			if err := restoreStock(ctx, options, check.OptionID, check.Quantity); err != nil {
				if !errors.Is(err, ErrOptionNotFound) {
					return err
				}
				logger.Warn("Option gone, skipping stock restore", map[string]interface{}{
					"order_id":  id,
					"option_id": check.OptionID,
				})
			}
			if err := checks.UpdateStatus(ctx, check.ID, model.OrderCheckRestored); err != nil {
				return err
			}
			restored = append(restored, events.OrderLine{OptionID: check.OptionID, Quantity: check.Quantity})
		}

		if _, err := orders.UpdateStatus(ctx, id, false); err != nil {
			return err
		}
		order.Ordered = false
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Order cancelled", map[string]interface{}{
		"order_id":       id,
		"restored_lines": len(restored),
	})

	s.publish(ctx, events.TopicOrderCancelled, events.EventOrderCancelled, id, events.OrderCancelledPayload{
		OrderID:  id,
		UserID:   order.UserID,
		Restored: restored,
	})
	s.notifier.NotifyOrder(order.UserID, events.TopicOrderCancelled, id, map[string]interface{}{"ordered": false})

	return order, nil
}

func (s *orderService) GetStatus(ctx context.Context, p Principal, id uint) (*model.Order, error) {
	return findOwnedOrder(ctx, s.orderRepo, p, id)
}

// UpdateStatus overwrites the ordered flag without touching stock.
func (s *orderService) UpdateStatus(ctx context.Context, p Principal, id uint, ordered bool) (*model.Order, error) {
	if !p.IsAdmin() {
		return nil, ErrForbidden
	}

	ok, err := s.orderRepo.UpdateStatus(ctx, id, ordered)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrOrderNotFound
	}

	order, err := findOwnedOrder(ctx, s.orderRepo, p, id)
	if err != nil {
		return nil, err
	}

	s.notifier.NotifyOrder(order.UserID, "order.status", id, map[string]interface{}{"ordered": ordered})
	return order, nil
}

func (s *orderService) FindOrderCheck(ctx context.Context, p Principal, checkID uint) (*model.OrderCheck, error) {
	check, err := findOrderCheck(ctx, s.checkRepo, checkID)
	if err != nil {
		return nil, err
	}

	if _, err := findOwnedOrder(ctx, s.orderRepo, p, check.OrderID); err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			return nil, ErrOrderCheckNotFound
		}
		return nil, err
	}
	return check, nil
}

func (s *orderService) publish(ctx context.Context, topic, eventType string, orderID uint, payload interface{}) {
	if err := s.publisher.Publish(ctx, topic, eventType, events.OrderKey(orderID), payload); err != nil {
		logger.Error("Failed to publish order event", err, map[string]interface{}{
			"order_id": orderID,
			"topic":    topic,
		})
	}
}
