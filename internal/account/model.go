package account

import (
	"errors"
	"time"
)

var (
	// ErrDuplicateEmail occurs when the email is already registered. The store
	// enforces this with a unique constraint, so concurrent registrations
	// cannot both win.
	ErrDuplicateEmail = errors.New("email already in use")

	// ErrNotFound occurs when no account exists for the given id.
	ErrNotFound = errors.New("account not found")

	// ErrInvalidCredentials covers both an unknown email and a wrong password,
	// so a failed login does not reveal whether the account exists.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Account represents a registered wallet owner. Balance is held in minor
// units and is mutated only by the ledger store, never through this package.
type Account struct {
	ID        int64
	Name      string
	Email     string
	Password  string
	Balance   int64
	WalletKey string
	Currency  string
	CreatedAt time.Time
}

// UpdateInput carries a partial profile update. Nil fields keep their prior
// value; only these three attributes can ever reach the store.
type UpdateInput struct {
	Name     *string
	Email    *string
	Password *string
}
