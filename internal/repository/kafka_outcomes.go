package repository

import (
	"context"
	"fmt"

	"StockSage/internal/domain/models"
	drepo "StockSage/internal/domain/repository"
	pkgkafka "StockSage/pkg/kafka"
)

// KafkaOutcomes publishes completed analysis outcomes to a Kafka topic,
// keyed by symbol for per-symbol ordering.
type KafkaOutcomes struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaOutcomes creates a Kafka-backed outcome publisher.
func NewKafkaOutcomes(producer *pkgkafka.Producer, topic string) drepo.OutcomePublisher {
	return &KafkaOutcomes{producer: producer, topic: topic}
}

// Publish sends one outcome event.
func (k *KafkaOutcomes) Publish(ctx context.Context, ev *models.OutcomeEvent) error {
	if ev == nil {
		return fmt.Errorf("outcome event is nil")
	}
	return k.producer.Publish(ctx, k.topic, []byte(ev.Symbol), ev)
}

// Close closes the underlying producer.
func (k *KafkaOutcomes) Close() error {
	return k.producer.Close()
}
