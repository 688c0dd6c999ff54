// services/treasury.go
package services

import "sync"

// Treasury is the single shared USDC pool funding all payouts. It is shared
// across every session; minting revenue credits it, claims and point
// redemptions debit it.
type Treasury struct {
	mu      sync.Mutex
	balance float64
}

func NewTreasury(initial float64) *Treasury {
	return &Treasury{balance: initial}
}

// Credit adds minting revenue to the pool. Always succeeds.
func (t *Treasury) Credit(amount float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.balance += amount
}

// Debit withdraws a payout from the pool. The check and the withdrawal are
// one atomic step: if the pool cannot cover the amount the balance is left
// untouched and ErrInsufficientTreasury is returned. The balance never goes
// negative.
func (t *Treasury) Debit(amount float64) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if amount > t.balance {
		return ErrInsufficientTreasury
	}
	t.balance -= amount
	return nil
}

// Balance reads the current pool balance.
func (t *Treasury) Balance() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.balance
}
