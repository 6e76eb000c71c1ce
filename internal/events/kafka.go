package events

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/segmentio/kafka-go"
)

// KafkaPublisher writes transaction events to a Kafka topic. Messages are
// keyed by sender id so one account's events stay ordered within a partition.
type KafkaPublisher struct {
	writer *kafka.Writer
}

// NewKafkaPublisher wraps an existing Kafka writer.
func NewKafkaPublisher(writer *kafka.Writer) *KafkaPublisher {
	return &KafkaPublisher{writer: writer}
}

// Publish serializes and writes a single event.
func (p *KafkaPublisher) Publish(ctx context.Context, event TransactionCompleted) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatInt(event.SenderID, 10)),
		Value: data,
	})
}

// Close releases the underlying writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
