// services/rewards.go
package services

import (
	"time"

	"mogaland-staking-service/models"
)

const hoursPerDay = 24

// RewardFor computes the linear, non-compounding yield a position has
// accrued by now: elapsed days × (APY / 365 / 100) × the notional base
// value. Zero at the stake instant, monotonically non-decreasing after.
// No rounding happens here; presentation rounds.
func (s *StakingService) RewardFor(p models.StakedPosition, now time.Time) float64 {
	elapsedDays := now.Sub(p.StakedAt).Hours() / hoursPerDay
	if elapsedDays < 0 {
		elapsedDays = 0
	}
	dailyRate := p.APYPercent / 365 / 100
	return elapsedDays * dailyRate * s.cfg.BaseStakeValueUSDC
}

// totalRewards aggregates the claimable yield across a session's ledger.
// Callers must hold the session lock.
func (s *StakingService) totalRewards(sess *Session, now time.Time) float64 {
	var total float64
	for _, p := range sess.Ledger {
		total += s.RewardFor(p, now)
	}
	return total
}

// TotalRewards is the locked variant of totalRewards for read paths.
func (s *StakingService) TotalRewards(sess *Session, now time.Time) float64 {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return s.totalRewards(sess, now)
}
