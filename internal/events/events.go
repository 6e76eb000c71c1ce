package events

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionCompleted is emitted once per committed balance mutation, after
// the ledger transaction has committed. It mirrors the persisted record; the
// ledger itself stays the source of truth.
type TransactionCompleted struct {
	SenderID   int64           `json:"sender_id"`
	ReceiverID int64           `json:"receiver_id"`
	Amount     decimal.Decimal `json:"amount"`
	Status     string          `json:"status"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// Publisher delivers transaction events to downstream consumers.
type Publisher interface {
	Publish(ctx context.Context, event TransactionCompleted) error
}
