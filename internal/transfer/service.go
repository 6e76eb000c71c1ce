package transfer

import (
	"context"
	"time"

	"github.com/wallet-arc/wallet_arc/internal/events"
	"github.com/wallet-arc/wallet_arc/internal/ledger"
	"github.com/wallet-arc/wallet_arc/internal/money"
)

// Service drives the balance-mutation protocol. Atomicity lives in the ledger
// store; this layer validates input, shapes results and emits events after
// commit.
type Service struct {
	store     ledger.Store
	publisher events.Publisher
}

// NewService constructs a transfer service.
func NewService(store ledger.Store, publisher events.Publisher) *Service {
	return &Service{store: store, publisher: publisher}
}

// Deposit credits the account and returns the new balance.
func (s *Service) Deposit(ctx context.Context, accountID, amount int64) (int64, error) {
	newBalance, err := s.store.Deposit(ctx, accountID, amount)
	if err != nil {
		return 0, err
	}

	s.publish(ctx, accountID, accountID, amount)
	return newBalance, nil
}

// Transfer moves funds from sender to recipient and returns the sender's new
// balance.
func (s *Service) Transfer(ctx context.Context, senderID, recipientID, amount int64) (int64, error) {
	newSenderBalance, err := s.store.Transfer(ctx, senderID, recipientID, amount)
	if err != nil {
		return 0, err
	}

	s.publish(ctx, senderID, recipientID, amount)
	return newSenderBalance, nil
}

// History returns the account's transaction records, newest first.
func (s *Service) History(ctx context.Context, accountID int64) ([]ledger.Record, error) {
	return s.store.History(ctx, accountID)
}

// publish is best effort: the mutation has already committed and its outcome
// must not depend on the event pipeline.
func (s *Service) publish(ctx context.Context, senderID, recipientID, amount int64) {
	if s.publisher == nil {
		return
	}
	_ = s.publisher.Publish(ctx, events.TransactionCompleted{
		SenderID:   senderID,
		ReceiverID: recipientID,
		Amount:     money.FromMinorUnits(amount),
		Status:     ledger.StatusSuccess,
		OccurredAt: time.Now().UTC(),
	})
}
