package messaging

import (
	"context"
	"fmt"
	"time"

	"bookreviews/pkg/metrics"
	"bookreviews/review-client/internal/app/reviewclient/infrastructure"

	"github.com/segmentio/kafka-go"
)

const serviceName = "review-client"

// KafkaProducer публикует события о лайках (LIKE_ADDED, LIKE_REMOVED, LIKE_PARTIAL_FAILURE)
type KafkaProducer struct {
	writer *kafka.Writer
	topic  string
}

// NewKafkaProducer создает producer для топика событий лайков.
// Ключ сообщения - ID отзыва, поэтому события одного отзыва идут в одну партицию по порядку.
func NewKafkaProducer(brokers []string, topic string) *KafkaProducer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchSize:    100,
		BatchTimeout: 50 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}

	return &KafkaProducer{writer: writer, topic: topic}
}

func (p *KafkaProducer) PublishMessage(ctx context.Context, key string, value []byte) error {
	start := time.Now()

	message := kafka.Message{
		Key:   []byte(key),
		Value: value,
		Time:  time.Now(),
	}

	if err := p.writer.WriteMessages(ctx, message); err != nil {
		metrics.RecordKafkaError(serviceName, p.topic, "produce")
		return fmt.Errorf("failed to write message to kafka: %w", err)
	}

	metrics.RecordKafkaMessageProduced(serviceName, p.topic, time.Since(start))
	return nil
}

func (p *KafkaProducer) Close() error {
	return p.writer.Close()
}

// NoopPublisher используется, когда Kafka не настроена
type NoopPublisher struct{}

func (NoopPublisher) PublishMessage(context.Context, string, []byte) error { return nil }

func (NoopPublisher) Close() error { return nil }

var (
	_ infrastructure.MessagePublisher = (*KafkaProducer)(nil)
	_ infrastructure.MessagePublisher = NoopPublisher{}
)
