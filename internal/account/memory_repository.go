package account

import (
	"context"
	"sync"
	"time"
)

type memoryRepository struct {
	mu       sync.Mutex
	accounts map[int64]Account
	byEmail  map[string]int64
	nextID   int64
}

// NewMemoryRepository builds an in-memory account store for testing. Email
// uniqueness is enforced under the same mutex as the insert, mirroring the
// database unique constraint.
func NewMemoryRepository() Repository {
	return &memoryRepository{
		accounts: make(map[int64]Account),
		byEmail:  make(map[string]int64),
	}
}

func (r *memoryRepository) Create(_ context.Context, acct Account) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[acct.Email]; exists {
		return 0, ErrDuplicateEmail
	}

	r.nextID++
	acct.ID = r.nextID
	acct.CreatedAt = time.Now().UTC()
	r.accounts[acct.ID] = acct
	r.byEmail[acct.Email] = acct.ID
	return acct.ID, nil
}

func (r *memoryRepository) FindByID(_ context.Context, id int64) (Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	acct, ok := r.accounts[id]
	if !ok {
		return Account{}, ErrNotFound
	}
	return acct, nil
}

func (r *memoryRepository) FindByEmail(_ context.Context, email string) (Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.byEmail[email]
	if !ok {
		return Account{}, ErrNotFound
	}
	return r.accounts[id], nil
}

func (r *memoryRepository) Update(_ context.Context, id int64, input UpdateInput) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	acct, ok := r.accounts[id]
	if !ok {
		return ErrNotFound
	}

	if input.Email != nil && *input.Email != acct.Email {
		if _, exists := r.byEmail[*input.Email]; exists {
			return ErrDuplicateEmail
		}
		delete(r.byEmail, acct.Email)
		acct.Email = *input.Email
		r.byEmail[acct.Email] = id
	}
	if input.Name != nil {
		acct.Name = *input.Name
	}
	if input.Password != nil {
		acct.Password = *input.Password
	}

	r.accounts[id] = acct
	return nil
}
