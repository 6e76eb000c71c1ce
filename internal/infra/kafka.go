package infra

import (
	"fmt"

	"github.com/segmentio/kafka-go"
)

// TransactionsTopic receives one event per committed balance mutation.
const TransactionsTopic = "wallet.transactions"

// NewKafkaWriter configures a Kafka writer for the transactions topic.
func NewKafkaWriter(brokers []string) (*kafka.Writer, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("at least one kafka broker is required")
	}

	return &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    TransactionsTopic,
		Balancer: &kafka.LeastBytes{},
	}, nil
}
