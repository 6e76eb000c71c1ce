package ledger

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrAccountNotFound occurs when a referenced account id has no row.
	ErrAccountNotFound = errors.New("account not found")

	// ErrInvalidAmount occurs when a mutation is requested with a non-positive amount.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrInsufficientFunds occurs when the sender lacks available balance to
	// cover a requested transfer.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrAborted indicates the backing store gave up on the mutation before its
	// commit point (contention, lost connection). No partial state was
	// committed, so the caller may safely retry.
	ErrAborted = errors.New("storage aborted operation")
)

const (
	// StatusSuccess marks a committed balance mutation.
	StatusSuccess = "success"
	// StatusFailed marks a recorded mutation that did not apply.
	StatusFailed = "failed"
)

// Record is one immutable row of the append-only transaction ledger. A deposit
// is recorded with equal sender and receiver.
type Record struct {
	ID         int64
	SenderID   int64
	ReceiverID int64
	Amount     int64
	Status     string
	CreatedAt  time.Time
}

// Store defines the balance-mutation protocol implemented by ledger backends.
// Every mutation commits the balance change and its ledger record as one unit,
// and two mutations touching the same account never act on the same stale
// balance.
type Store interface {
	// Deposit atomically credits the account and appends its record,
	// returning the new balance.
	Deposit(ctx context.Context, accountID, amount int64) (int64, error)

	// Transfer atomically debits the sender, credits the recipient and
	// appends one record, returning the sender's new balance. The funds
	// check and the debit act on the same locked balance snapshot.
	Transfer(ctx context.Context, senderID, recipientID, amount int64) (int64, error)

	// History returns every record where the account is sender or receiver,
	// newest first, as a finite snapshot.
	History(ctx context.Context, accountID int64) ([]Record, error)
}
