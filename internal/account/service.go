package account

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
)

const defaultCurrency = "ARC"

// walletKeyBytes yields 128 bits of entropy, hex-encoded to 32 characters.
const walletKeyBytes = 16

// Service manages account lifecycle and credential checks.
type Service struct {
	repo     Repository
	currency string
}

// NewService creates an account service. Accounts are created with the given
// currency symbol.
func NewService(repo Repository, currency string) *Service {
	if currency == "" {
		currency = defaultCurrency
	}
	return &Service{repo: repo, currency: currency}
}

// Register creates a new account with a zero balance and a fresh wallet key.
func (s *Service) Register(ctx context.Context, name, email, password string) (Account, error) {
	if email == "" {
		return Account{}, errors.New("email is required")
	}
	if password == "" {
		return Account{}, errors.New("password is required")
	}

	walletKey, err := newWalletKey()
	if err != nil {
		return Account{}, fmt.Errorf("generate wallet key: %w", err)
	}

	acct := Account{
		Name:      name,
		Email:     email,
		Password:  password,
		Balance:   0,
		WalletKey: walletKey,
		Currency:  s.currency,
	}

	id, err := s.repo.Create(ctx, acct)
	if err != nil {
		return Account{}, err
	}
	acct.ID = id

	return acct, nil
}

// Authenticate verifies the email and password pair. Both an unknown email and
// a wrong password yield ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, email, password string) (Account, error) {
	acct, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Account{}, ErrInvalidCredentials
		}
		return Account{}, err
	}

	if acct.Password != password {
		return Account{}, ErrInvalidCredentials
	}

	return acct, nil
}

// GetBalance returns the account balance in minor units.
func (s *Service) GetBalance(ctx context.Context, id int64) (int64, error) {
	acct, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return 0, err
	}
	return acct.Balance, nil
}

// Get retrieves an account by id.
func (s *Service) Get(ctx context.Context, id int64) (Account, error) {
	return s.repo.FindByID(ctx, id)
}

// UpdateProfile applies a partial update. Supplying an email already held by
// another account fails with ErrDuplicateEmail.
func (s *Service) UpdateProfile(ctx context.Context, id int64, input UpdateInput) error {
	return s.repo.Update(ctx, id, input)
}

func newWalletKey() (string, error) {
	buf := make([]byte, walletKeyBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
