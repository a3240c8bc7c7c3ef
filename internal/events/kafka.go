package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ikkim/furniture-backend/pkg/logger"
	"github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes envelopes to Kafka. The writer is async, so Publish
// returns once the message is queued and delivery errors are logged.
type KafkaPublisher struct {
	w        messageWriter
	producer string
}

func NewKafkaPublisher(brokers []string, producer string) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
		BatchTimeout:           10 * time.Millisecond,
		Async:                  true,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				logger.Error("Failed to deliver events", err, map[string]interface{}{
					"count": len(messages),
				})
			}
		},
	}
	return &KafkaPublisher{w: w, producer: producer}
}

func (p *KafkaPublisher) Publish(ctx context.Context, topic, eventType, key string, payload interface{}) error {
	env, err := NewEnvelope(p.producer, eventType, key, payload)
	if err != nil {
		return err
	}

	value, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal envelope: %w", err)
	}

	msg := kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: value,
		Time:  env.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(eventType)},
		},
	}
	if err := p.w.WriteMessages(ctx, msg); err != nil {
		logger.Error("Failed to publish event", err, map[string]interface{}{
			"topic":      topic,
			"event_type": eventType,
		})
		return err
	}

	logger.Debug("Event published", map[string]interface{}{
		"topic":      topic,
		"event_type": eventType,
		"event_id":   env.EventID,
	})
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.w.Close()
}
