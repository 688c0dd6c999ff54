// services/points.go
package services

import (
	"fmt"
	"log"
)

// EarnPoints accrues loyalty points and completed-task progress for a
// session. The learning loop that drives this lives outside the service;
// this is its entry point (and the test seam).
func (s *StakingService) EarnPoints(sess *Session, points, completedTasks int64) {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if points > 0 {
		sess.Points += points
	}
	if completedTasks > 0 {
		sess.CompletedTasks += completedTasks
	}
}

// RedeemPoints converts the session's whole points balance into USDC at the
// configured rate (1000 points → 1 USDC by default; the rate doubles as the
// minimum redeemable balance). The treasury funds the payout; if it refuses,
// the gas charge is refunded and the points are NOT burned.
func (s *StakingService) RedeemPoints(sess *Session) (float64, error) {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.Points < s.cfg.PointsPerUSDC {
		return 0, ErrInsufficientPoints
	}
	if !sess.WalletConnected {
		return 0, ErrWalletNotConnected
	}
	if err := s.gas.Charge(sess, "points redemption"); err != nil {
		return 0, err
	}

	usdcAmount := float64(sess.Points) / float64(s.cfg.PointsPerUSDC)
	if err := s.treasury.Debit(usdcAmount); err != nil {
		s.gas.Refund(sess)
		s.notify("Treasury cannot fund this redemption right now", true)
		return 0, err
	}

	sess.Points = 0
	sess.WalletBalance += usdcAmount

	s.notify(fmt.Sprintf("✅ Redeemed points for %.2f USDC | Gas: %g USDC", usdcAmount, s.cfg.GasFeeUSDC), false)
	log.Printf("[NFT] User %s redeemed points for %.2f USDC", sess.UserID, usdcAmount)
	return usdcAmount, nil
}
