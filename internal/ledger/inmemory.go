package ledger

import (
	"context"
	"sync"
	"time"
)

type inMemoryStore struct {
	mu       sync.Mutex
	balances map[int64]int64
	records  []Record
	nextID   int64
}

// NewInMemory creates a concurrency-safe in-memory ledger store useful for
// unit tests. A single mutex held across each mutation gives the same
// serialization guarantee the Postgres store gets from row locks.
func NewInMemory() Store {
	return &inMemoryStore{balances: make(map[int64]int64)}
}

func (s *inMemoryStore) Deposit(_ context.Context, accountID, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	balance, ok := s.balances[accountID]
	if !ok {
		return 0, ErrAccountNotFound
	}

	balance += amount
	s.balances[accountID] = balance
	s.append(accountID, accountID, amount)

	return balance, nil
}

func (s *inMemoryStore) Transfer(_ context.Context, senderID, recipientID, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	senderBalance, ok := s.balances[senderID]
	if !ok {
		return 0, ErrAccountNotFound
	}
	recipientBalance, ok := s.balances[recipientID]
	if !ok {
		return 0, ErrAccountNotFound
	}
	if senderBalance < amount {
		return 0, ErrInsufficientFunds
	}

	if senderID == recipientID {
		s.append(senderID, recipientID, amount)
		return senderBalance, nil
	}

	senderBalance -= amount
	recipientBalance += amount
	s.balances[senderID] = senderBalance
	s.balances[recipientID] = recipientBalance
	s.append(senderID, recipientID, amount)

	return senderBalance, nil
}

func (s *inMemoryStore) History(_ context.Context, accountID int64) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.balances[accountID]; !ok {
		return nil, ErrAccountNotFound
	}

	// Records are appended in commit order; walk backwards for newest first.
	var out []Record
	for i := len(s.records) - 1; i >= 0; i-- {
		r := s.records[i]
		if r.SenderID == accountID || r.ReceiverID == accountID {
			out = append(out, r)
		}
	}
	return out, nil
}

// append must be called with the mutex held.
func (s *inMemoryStore) append(senderID, receiverID, amount int64) {
	s.nextID++
	s.records = append(s.records, Record{
		ID:         s.nextID,
		SenderID:   senderID,
		ReceiverID: receiverID,
		Amount:     amount,
		Status:     StatusSuccess,
		CreatedAt:  time.Now().UTC(),
	})
}
