// Package producer publishes wager lifecycle events to Kafka.
package producer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/betarena/core/pkg/contracts/events"
	"github.com/segmentio/kafka-go"
)

type KafkaPublisher struct {
	writer *kafka.Writer
}

// NewWriter builds the writer for the wager events topic.
func NewWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
}

func NewKafkaPublisher(w *kafka.Writer) *KafkaPublisher {
	return &KafkaPublisher{writer: w}
}

func (p *KafkaPublisher) PublishWagerMatched(ctx context.Context, e events.WagerMatched) error {
	return p.publish(ctx, e.WagerID, e)
}

func (p *KafkaPublisher) PublishWagerSettled(ctx context.Context, e events.WagerSettled) error {
	return p.publish(ctx, e.WagerID, e)
}

func (p *KafkaPublisher) PublishWagerExpired(ctx context.Context, e events.WagerExpired) error {
	return p.publish(ctx, e.WagerID, e)
}

// publish keys messages by wager id so per-wager ordering survives
// partitioning.
func (p *KafkaPublisher) publish(ctx context.Context, key string, payload any) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: b,
		Time:  time.Now(),
	})
	if err != nil {
		return fmt.Errorf("write kafka message: %w", err)
	}

	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
