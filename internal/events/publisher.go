package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"github.com/Sqr400Flashfund/sqr400flashfund/internal/checkout"
)

const Topic = "storefront-orders"

// KafkaPublisher emits order lifecycle events for fulfilment to consume.
type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(brokers ...string) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  Topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return &KafkaPublisher{writer: w}
}

// PublishConfirmed emits an order.confirmed event keyed by order id so
// events for one order stay ordered.
func (p *KafkaPublisher) PublishConfirmed(ctx context.Context, event checkout.ConfirmedEvent) error {
	msg, err := confirmedMessage(event)
	if err != nil {
		return err
	}

	if errWrite := p.writer.WriteMessages(ctx, msg); errWrite != nil {
		return fmt.Errorf("failed to publish confirmed event: %w", errWrite)
	}
	return nil
}

func confirmedMessage(event checkout.ConfirmedEvent) (kafka.Message, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("failed to marshal confirmed event: %w", err)
	}

	return kafka.Message{
		Key:   []byte(event.OrderID),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte("order.confirmed")},
		},
	}, nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

var _ checkout.ConfirmedSink = (*KafkaPublisher)(nil)
