package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// KafkaPublisher writes events as JSON messages to a single topic
type KafkaPublisher struct {
	writer *kafka.Writer
}

const (
	writerMaxAttempts  = 3
	writerWriteTimeout = time.Second
)

// NewKafkaWriter creates a writer for the topic on the given brokers. Retries
// are kept short since callers publish while a request is waiting.
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
		BatchTimeout:           10 * time.Millisecond,
		MaxAttempts:            writerMaxAttempts,
		WriteTimeout:           writerWriteTimeout,
		WriteBackoffMax:        100 * time.Millisecond,
	}
}

// NewKafkaPublisher creates a publisher on top of writer
func NewKafkaPublisher(writer *kafka.Writer) *KafkaPublisher {
	return &KafkaPublisher{writer: writer}
}

// MessageKey returns the message key used for an event
func MessageKey(event Event) string {
	return fmt.Sprintf("receipt-%s-%d", event.Type, event.ReceiptID)
}

// Publish implements Publisher
func (p *KafkaPublisher) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(MessageKey(event)),
		Value: payload,
	})
}

// Close flushes pending messages and closes the writer
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
