package events

import (
	"context"
	"log/slog"
)

type loggerPublisher struct {
	logger *slog.Logger
}

// NewLoggerPublisher returns a publisher that only logs events. Used when no
// Kafka brokers are configured.
func NewLoggerPublisher(logger *slog.Logger) Publisher {
	return &loggerPublisher{logger: logger}
}

func (p *loggerPublisher) Publish(_ context.Context, event TransactionCompleted) error {
	p.logger.Info("transaction completed",
		slog.Int64("sender_id", event.SenderID),
		slog.Int64("receiver_id", event.ReceiverID),
		slog.String("amount", event.Amount.String()),
		slog.String("status", event.Status),
	)
	return nil
}
