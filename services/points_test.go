package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedeemBelowThresholdFails(t *testing.T) {
	svc := newTestService()
	sess := connectedSession(svc, "user-1")
	sess.Points = 999

	_, err := svc.RedeemPoints(sess)
	require.ErrorIs(t, err, ErrInsufficientPoints)
	assert.Equal(t, int64(999), sess.Points)
	assert.Equal(t, svc.Config().TreasuryInitial, svc.Treasury().Balance())
}

func TestRedeemAtThresholdPaysOneUSDCAndZeroesPoints(t *testing.T) {
	svc := newTestService()
	sess := connectedSession(svc, "user-1")
	sess.Points = 1000
	walletBefore := sess.WalletBalance

	paid, err := svc.RedeemPoints(sess)
	require.NoError(t, err)
	assert.Equal(t, 1.0, paid)
	assert.Equal(t, int64(0), sess.Points)
	assert.InDelta(t, walletBefore-svc.Config().GasFeeUSDC+1.0, sess.WalletBalance, 1e-9)
	assert.InDelta(t, svc.Config().TreasuryInitial-1.0, svc.Treasury().Balance(), 1e-9)
}

func TestRedeemConvertsWholeBalanceAtRate(t *testing.T) {
	svc := newTestService()
	sess := connectedSession(svc, "user-1")
	sess.Points = 2500

	paid, err := svc.RedeemPoints(sess)
	require.NoError(t, err)
	assert.InDelta(t, 2.5, paid, 1e-9)
	assert.Equal(t, int64(0), sess.Points)
}

func TestRedeemRequiresWallet(t *testing.T) {
	svc := newTestService()
	sess := svc.Sessions().GetOrCreate("user-offline", "")
	sess.Points = 5000

	_, err := svc.RedeemPoints(sess)
	require.ErrorIs(t, err, ErrWalletNotConnected)
	assert.Equal(t, int64(5000), sess.Points)
}

func TestRedeemDoesNotBurnPointsItCannotPayFor(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TreasuryInitial = 0.5 // cannot cover a 1 USDC redemption
	svc := NewStakingService(cfg, nil, nil)
	svc.SetNotifier(func(string, bool) {})

	sess := connectedSession(svc, "user-1")
	sess.Points = 1000
	walletBefore := sess.WalletBalance

	_, err := svc.RedeemPoints(sess)
	require.ErrorIs(t, err, ErrInsufficientTreasury)

	assert.Equal(t, int64(1000), sess.Points, "points survive a refused payout")
	assert.InDelta(t, walletBefore, sess.WalletBalance, 1e-9, "gas refunded")
	assert.Equal(t, 0.5, svc.Treasury().Balance())
}

func TestEarnPointsAccumulates(t *testing.T) {
	svc := newTestService()
	sess := connectedSession(svc, "user-1")

	svc.EarnPoints(sess, 300, 40)
	svc.EarnPoints(sess, 700, 60)
	svc.EarnPoints(sess, -5, -5) // negative deltas are ignored

	assert.Equal(t, int64(1000), sess.Points)
	assert.Equal(t, int64(100), sess.CompletedTasks)
}
