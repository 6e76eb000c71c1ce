package ledger

// CreateAccount is a test helper that registers an account with a zero balance
// when using the in-memory store.
func CreateAccount(s Store, accountID int64) {
	if mem, ok := s.(*inMemoryStore); ok {
		mem.mu.Lock()
		defer mem.mu.Unlock()
		if _, exists := mem.balances[accountID]; !exists {
			mem.balances[accountID] = 0
		}
	}
}

// SeedBalance is a test helper that sets the balance for an account when using
// the in-memory store, without writing a ledger record.
func SeedBalance(s Store, accountID, amount int64) {
	if mem, ok := s.(*inMemoryStore); ok {
		mem.mu.Lock()
		defer mem.mu.Unlock()
		mem.balances[accountID] = amount
	}
}
