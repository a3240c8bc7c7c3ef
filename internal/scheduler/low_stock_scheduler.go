package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/ikkim/furniture-backend/internal/app/service"
	"github.com/ikkim/furniture-backend/internal/events"
	"github.com/ikkim/furniture-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

const sweepTimeout = 30 * time.Second

// LowStockScheduler 재고 부족 옵션 주기 점검 스케줄러
type LowStockScheduler struct {
	cron         *cron.Cron
	spec         string
	threshold    int
	stockService service.StockService
	publisher    events.Publisher
}

// NewLowStockScheduler spec은 초 단위를 포함한 6필드 cron 표현식
func NewLowStockScheduler(spec string, threshold int, stockService service.StockService, publisher events.Publisher) *LowStockScheduler {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &LowStockScheduler{
		cron:         cron.New(cron.WithSeconds()),
		spec:         spec,
		threshold:    threshold,
		stockService: stockService,
		publisher:    publisher,
	}
}

// Start 스케줄러 시작
func (s *LowStockScheduler) Start() error {
	_, err := s.cron.AddFunc(s.spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
		defer cancel()

		if _, err := s.Sweep(ctx); err != nil {
			logger.Error("Low stock sweep failed", err)
		}
	})
	if err != nil {
		logger.Error("Failed to add cron job for low stock sweep", err, map[string]interface{}{
			"spec": s.spec,
		})
		return err
	}

	s.cron.Start()
	logger.Info("Low stock scheduler started", map[string]interface{}{
		"spec":      s.spec,
		"threshold": s.threshold,
	})

	return nil
}

// Sweep publishes one stock.low event per option at or below the threshold
// and returns how many were published.
func (s *LowStockScheduler) Sweep(ctx context.Context) (int, error) {
	options, err := s.stockService.LowStock(ctx, s.threshold)
	if err != nil {
		return 0, err
	}

	published := 0
	for _, option := range options {
		payload := events.StockLowPayload{
			OptionID:      option.ID,
			ProductID:     option.ProductID,
			Name:          option.Name,
			StockQuantity: option.StockQuantity,
			Threshold:     s.threshold,
		}
		key := fmt.Sprintf("option-%d", option.ID)
		if err := s.publisher.Publish(ctx, events.TopicStockLow, events.EventStockLow, key, payload); err != nil {
			logger.Warn("Failed to publish low stock event", map[string]interface{}{
				"option_id": option.ID,
				"error":     err.Error(),
			})
			continue
		}
		published++
	}

	if published > 0 {
		logger.Info("Low stock options reported", map[string]interface{}{
			"count":     published,
			"threshold": s.threshold,
		})
	}

	return published, nil
}

// Stop 스케줄러 중지. 실행 중인 점검이 끝날 때까지 기다림
func (s *LowStockScheduler) Stop() {
	logger.Info("Stopping low stock scheduler...", nil)
	<-s.cron.Stop().Done()
	logger.Info("Low stock scheduler stopped", nil)
}
