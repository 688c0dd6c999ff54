// services/session.go
package services

import (
	"sync"

	"mogaland-staking-service/models"

	"github.com/google/uuid"
)

// Session is the explicit, owned state object for one user's view of the
// economy: spendable inventory, staked ledger, loyalty points and wallet
// flags. Nothing here is package-global; every operation receives the
// session it acts on. The treasury is the only state shared between
// sessions.
//
// Inventory and Ledger partition the owned set: every known collectible id
// is in exactly one of the two.
type Session struct {
	ID     string
	UserID string

	WalletAddress   string
	WalletConnected bool
	WalletBalance   float64 // session USDC balance; gas debits it, payouts credit it

	Inventory []models.Collectible
	Ledger    []models.StakedPosition

	Points            int64
	CompletedTasks    int64
	LearningNFTMinted bool

	// mu spans the full validate → gas → mutate → treasury sequence of every
	// action, so a gas check can never race a mutation on the same session.
	mu sync.Mutex
}

// inventoryIndex returns the position of id in the spendable inventory, or -1.
// Callers must hold s.mu.
func (s *Session) inventoryIndex(id uint64) int {
	for i, c := range s.Inventory {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// ledgerIndex returns the position of id in the staked ledger, or -1.
// Callers must hold s.mu.
func (s *Session) ledgerIndex(id uint64) int {
	for i, p := range s.Ledger {
		if p.NFTID == id {
			return i
		}
	}
	return -1
}

// SessionManager hands out per-user sessions so independent users can run
// side by side against the shared treasury.
type SessionManager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	cfg      Config
}

func NewSessionManager(cfg Config) *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*Session),
		cfg:      cfg,
	}
}

// GetOrCreate returns the session for userID, creating and seeding it on
// first sight. A non-empty wallet address marks the session wallet-connected;
// the address may arrive on a later request than the one that created the
// session.
func (m *SessionManager) GetOrCreate(userID, walletAddress string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.sessions[userID]
	if !ok {
		sess = &Session{
			ID:            uuid.NewString(),
			UserID:        userID,
			WalletBalance: m.cfg.WalletSeedUSDC,
		}
		m.sessions[userID] = sess
	}
	if walletAddress != "" {
		sess.mu.Lock()
		sess.WalletAddress = walletAddress
		sess.WalletConnected = true
		sess.mu.Unlock()
	}
	return sess
}

// All snapshots the currently known sessions (for the wallet re-sync loops).
func (m *SessionManager) All() []*Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		out = append(out, s)
	}
	return out
}
