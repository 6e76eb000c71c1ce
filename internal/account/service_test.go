package account

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
)

func TestRegisterAssignsWalletKeyAndDefaults(t *testing.T) {
	svc := NewService(NewMemoryRepository(), "")
	ctx := context.Background()

	acct, err := svc.Register(ctx, "Ada", "ada@example.com", "secret")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if acct.ID == 0 {
		t.Fatal("expected assigned id")
	}
	if acct.Balance != 0 {
		t.Fatalf("expected zero balance, got %d", acct.Balance)
	}
	if acct.Currency != "ARC" {
		t.Fatalf("expected default currency ARC, got %s", acct.Currency)
	}
	if len(acct.WalletKey) != 32 {
		t.Fatalf("expected 32 hex char wallet key, got %q", acct.WalletKey)
	}

	other, err := svc.Register(ctx, "Bea", "bea@example.com", "secret")
	if err != nil {
		t.Fatalf("second register failed: %v", err)
	}
	if other.WalletKey == acct.WalletKey {
		t.Fatal("wallet keys must be unique per account")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := NewService(NewMemoryRepository(), "ARC")
	ctx := context.Background()

	if _, err := svc.Register(ctx, "Ada", "ada@example.com", "secret"); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, err := svc.Register(ctx, "Imposter", "ada@example.com", "other"); !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("expected duplicate email, got %v", err)
	}
}

func TestRegisterConcurrentDuplicateEmail(t *testing.T) {
	svc := NewService(NewMemoryRepository(), "ARC")
	ctx := context.Background()

	const attempts = 8
	results := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = svc.Register(ctx, fmt.Sprintf("user-%d", i), "shared@example.com", "secret")
		}(i)
	}
	wg.Wait()

	var succeeded int
	for _, err := range results {
		if err == nil {
			succeeded++
		} else if !errors.Is(err, ErrDuplicateEmail) {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if succeeded != 1 {
		t.Fatalf("expected exactly one registration to win, got %d", succeeded)
	}
}

func TestAuthenticate(t *testing.T) {
	svc := NewService(NewMemoryRepository(), "ARC")
	ctx := context.Background()

	created, err := svc.Register(ctx, "Ada", "ada@example.com", "secret")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	acct, err := svc.Authenticate(ctx, "ada@example.com", "secret")
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}
	if acct.ID != created.ID {
		t.Fatalf("expected id %d, got %d", created.ID, acct.ID)
	}

	if _, err := svc.Authenticate(ctx, "ada@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials for wrong password, got %v", err)
	}
	if _, err := svc.Authenticate(ctx, "ghost@example.com", "secret"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials for unknown email, got %v", err)
	}
}

func TestUpdateProfilePartial(t *testing.T) {
	svc := NewService(NewMemoryRepository(), "ARC")
	ctx := context.Background()

	acct, err := svc.Register(ctx, "Ada", "ada@example.com", "secret")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	name := "Ada L."
	if err := svc.UpdateProfile(ctx, acct.ID, UpdateInput{Name: &name}); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	updated, err := svc.Get(ctx, acct.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if updated.Name != "Ada L." {
		t.Fatalf("expected updated name, got %s", updated.Name)
	}
	if updated.Email != "ada@example.com" || updated.Password != "secret" {
		t.Fatalf("omitted fields must keep prior values: %+v", updated)
	}
}

func TestUpdateProfileErrors(t *testing.T) {
	svc := NewService(NewMemoryRepository(), "ARC")
	ctx := context.Background()

	first, _ := svc.Register(ctx, "Ada", "ada@example.com", "secret")
	if _, err := svc.Register(ctx, "Bea", "bea@example.com", "secret"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	name := "Nobody"
	if err := svc.UpdateProfile(ctx, 999, UpdateInput{Name: &name}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	taken := "bea@example.com"
	if err := svc.UpdateProfile(ctx, first.ID, UpdateInput{Email: &taken}); !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("expected duplicate email, got %v", err)
	}
}

func TestGetBalance(t *testing.T) {
	svc := NewService(NewMemoryRepository(), "ARC")
	ctx := context.Background()

	acct, _ := svc.Register(ctx, "Ada", "ada@example.com", "secret")
	balance, err := svc.GetBalance(ctx, acct.ID)
	if err != nil {
		t.Fatalf("get balance failed: %v", err)
	}
	if balance != 0 {
		t.Fatalf("expected zero balance, got %d", balance)
	}

	if _, err := svc.GetBalance(ctx, 999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
