// services/staking.go
package services

import (
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"mogaland-staking-service/models"

	"gorm.io/gorm"
)

// Notifier is the user-visible outcome side-channel (the dApp's toast).
// The default implementation just logs.
type Notifier func(message string, isError bool)

func logNotifier(message string, isError bool) {
	if isError {
		log.Printf("🔔 [NOTIFY] ⚠️ %s", message)
		return
	}
	log.Printf("🔔 [NOTIFY] %s", message)
}

// StakingService owns the staking economy: the per-session inventories and
// ledgers, the gas gate and the shared treasury. The DB handle is optional
// and only feeds the collectible mirror cache.
type StakingService struct {
	cfg      Config
	treasury *Treasury
	gas      *GasGate
	sessions *SessionManager
	contract NFTContract
	DB       *gorm.DB
	notify   Notifier

	mintSeq atomic.Uint64 // monotonic counter for minted token ids
}

func NewStakingService(cfg Config, contract NFTContract, db *gorm.DB) *StakingService {
	return &StakingService{
		cfg:      cfg,
		treasury: NewTreasury(cfg.TreasuryInitial),
		gas:      NewGasGate(cfg.GasFeeUSDC),
		sessions: NewSessionManager(cfg),
		contract: contract,
		DB:       db,
		notify:   logNotifier,
	}
}

func (s *StakingService) Config() Config            { return s.cfg }
func (s *StakingService) Treasury() *Treasury       { return s.treasury }
func (s *StakingService) Sessions() *SessionManager { return s.sessions }
func (s *StakingService) SetNotifier(n Notifier)    { s.notify = n }

// BatchResult reports the per-id outcome of a batch stake/unstake request.
// Ids absent from the expected side of the partition land in NotFound
// instead of failing the whole call, so callers can detect partial
// application.
type BatchResult struct {
	Succeeded []uint64 `json:"succeeded"`
	NotFound  []uint64 `json:"not_found"`
}

// Stake moves the requested collectibles from the spendable inventory into
// the staked ledger. Each new position freezes its APY from the rarity table
// at stake time. Gas is charged once for the whole batch.
func (s *StakingService) Stake(sess *Session, ids []uint64, now time.Time) (BatchResult, error) {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if len(ids) == 0 {
		return BatchResult{}, ErrNoSelection
	}
	if !sess.WalletConnected {
		return BatchResult{}, ErrWalletNotConnected
	}
	if err := s.gas.Charge(sess, "NFT staking"); err != nil {
		return BatchResult{}, err
	}

	var res BatchResult
	for _, id := range ids {
		idx := sess.inventoryIndex(id)
		if idx < 0 {
			res.NotFound = append(res.NotFound, id)
			continue
		}
		c := sess.Inventory[idx]
		sess.Inventory = append(sess.Inventory[:idx], sess.Inventory[idx+1:]...)
		sess.Ledger = append(sess.Ledger, models.StakedPosition{
			NFTID:      c.ID,
			Rarity:     c.Rarity,
			Source:     c.Source,
			APYPercent: s.cfg.APYFor(c.Rarity),
			StakedAt:   now,
		})
		res.Succeeded = append(res.Succeeded, id)
	}

	s.notify(fmt.Sprintf("✅ Successfully staked %d NFT(s) | Gas: %g USDC", len(res.Succeeded), s.cfg.GasFeeUSDC), false)
	log.Printf("[NFT] User %s staked %d NFT(s), %d not found", sess.UserID, len(res.Succeeded), len(res.NotFound))
	return res, nil
}

// Unstake moves the requested positions back into the spendable inventory
// with their identity and rarity intact. Accrued, unclaimed yield on an
// unstaked position is forfeited: only an explicit claim pays rewards, and
// the frozen APY is discarded (a later restake re-reads the table). The
// portfolio view exposes per-position accrual so a caller can warn first.
func (s *StakingService) Unstake(sess *Session, ids []uint64, now time.Time) (BatchResult, error) {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if len(ids) == 0 {
		return BatchResult{}, ErrNoSelection
	}
	if !sess.WalletConnected {
		return BatchResult{}, ErrWalletNotConnected
	}
	if err := s.gas.Charge(sess, "NFT unstaking"); err != nil {
		return BatchResult{}, err
	}

	var res BatchResult
	for _, id := range ids {
		idx := sess.ledgerIndex(id)
		if idx < 0 {
			res.NotFound = append(res.NotFound, id)
			continue
		}
		p := sess.Ledger[idx]
		sess.Ledger = append(sess.Ledger[:idx], sess.Ledger[idx+1:]...)
		sess.Inventory = append(sess.Inventory, models.Collectible{
			ID:     p.NFTID,
			Rarity: p.Rarity,
			Source: p.Source,
		})
		res.Succeeded = append(res.Succeeded, id)
	}

	s.notify(fmt.Sprintf("✅ Successfully unstaked %d NFT(s) | Gas: %g USDC", len(res.Succeeded), s.cfg.GasFeeUSDC), false)
	log.Printf("[NFT] User %s unstaked %d NFT(s), %d not found", sess.UserID, len(res.Succeeded), len(res.NotFound))
	return res, nil
}

// ClaimAll pays out the aggregate accrued yield across every staked
// position, funded by a single treasury debit. The claim is indivisible:
// either the full amount is paid and every position's accrual clock resets
// to now, or nothing changes (a refused treasury debit also refunds the gas
// charge).
func (s *StakingService) ClaimAll(sess *Session, now time.Time) (float64, error) {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if len(sess.Ledger) == 0 {
		return 0, ErrNoStakedPositions
	}
	total := s.totalRewards(sess, now)
	if total <= 0 {
		return 0, ErrNoRewardsYet
	}
	if !sess.WalletConnected {
		return 0, ErrWalletNotConnected
	}
	if err := s.gas.Charge(sess, "NFT rewards claim"); err != nil {
		return 0, err
	}
	if err := s.treasury.Debit(total); err != nil {
		s.gas.Refund(sess)
		s.notify("Treasury cannot fund this claim right now", true)
		return 0, err
	}

	for i := range sess.Ledger {
		sess.Ledger[i].StakedAt = now
	}
	sess.WalletBalance += total

	s.notify(fmt.Sprintf("✅ Claimed %.4f USDC rewards | Gas: %g USDC", total, s.cfg.GasFeeUSDC), false)
	log.Printf("[NFT] User %s claimed %.4f USDC across %d position(s)", sess.UserID, total, len(sess.Ledger))
	return total, nil
}

// StakedView is a ledger entry enriched with its live accrual for display.
type StakedView struct {
	models.StakedPosition
	Accrued float64 `json:"accrued"`
}

// PortfolioView is the read model the UI re-renders from after every
// mutating call.
type PortfolioView struct {
	Inventory       []models.Collectible `json:"inventory"`
	Staked          []StakedView         `json:"staked"`
	TotalClaimable  float64              `json:"total_claimable"`
	PointsBalance   int64                `json:"points_balance"`
	TreasuryBalance float64              `json:"treasury_balance"`
	WalletBalance   float64              `json:"wallet_balance"`
	WalletConnected bool                 `json:"wallet_connected"`
}

// Portfolio snapshots a session's full read model at now.
func (s *StakingService) Portfolio(sess *Session, now time.Time) PortfolioView {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	view := PortfolioView{
		Inventory:       append([]models.Collectible(nil), sess.Inventory...),
		Staked:          make([]StakedView, 0, len(sess.Ledger)),
		PointsBalance:   sess.Points,
		TreasuryBalance: s.treasury.Balance(),
		WalletBalance:   sess.WalletBalance,
		WalletConnected: sess.WalletConnected,
	}
	for _, p := range sess.Ledger {
		accrued := s.RewardFor(p, now)
		view.Staked = append(view.Staked, StakedView{StakedPosition: p, Accrued: accrued})
		view.TotalClaimable += accrued
	}
	return view
}
