package services

import (
	"testing"
	"time"

	"mogaland-staking-service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func common(id uint64) models.Collectible {
	return models.Collectible{ID: id, Rarity: models.RarityFromTokenID(id), Source: models.SourceWallet}
}

func TestStakeMovesCollectiblesAndFreezesAPY(t *testing.T) {
	svc := newTestService()
	sess := connectedSession(svc, "user-1", common(42), common(150), common(280))
	now := time.Now()

	res, err := svc.Stake(sess, []uint64{42, 150}, now)
	require.NoError(t, err)
	assert.Equal(t, []uint64{42, 150}, res.Succeeded)
	assert.Empty(t, res.NotFound)

	require.Len(t, sess.Ledger, 2)
	require.Len(t, sess.Inventory, 1)
	assert.Equal(t, uint64(280), sess.Inventory[0].ID)

	// id 42 → Common → 5, id 150 → Rare → 10, frozen at stake time
	assert.Equal(t, 5.0, sess.Ledger[0].APYPercent)
	assert.Equal(t, 10.0, sess.Ledger[1].APYPercent)
	assert.Equal(t, now, sess.Ledger[0].StakedAt)
}

func TestStakeReportsUnknownIDsInsteadOfSwallowingThem(t *testing.T) {
	svc := newTestService()
	sess := connectedSession(svc, "user-1", common(42))

	res, err := svc.Stake(sess, []uint64{42, 777}, time.Now())
	require.NoError(t, err)
	assert.Equal(t, []uint64{42}, res.Succeeded)
	assert.Equal(t, []uint64{777}, res.NotFound)
}

func TestStakeRequiresSelectionAndWallet(t *testing.T) {
	svc := newTestService()
	sess := connectedSession(svc, "user-1", common(42))

	_, err := svc.Stake(sess, nil, time.Now())
	assert.ErrorIs(t, err, ErrNoSelection)

	offline := svc.Sessions().GetOrCreate("user-2", "")
	offline.Inventory = append(offline.Inventory, common(7))
	_, err = svc.Stake(offline, []uint64{7}, time.Now())
	assert.ErrorIs(t, err, ErrWalletNotConnected)
	assert.Len(t, offline.Inventory, 1, "rejected stake must not touch inventory")
}

func TestStakeUnstakeRoundTripKeepsIdentityButDiscardsAccrual(t *testing.T) {
	svc := newTestService()
	sess := connectedSession(svc, "user-1", common(150))
	stakedAt := time.Now().Add(-10 * 24 * time.Hour)

	_, err := svc.Stake(sess, []uint64{150}, stakedAt)
	require.NoError(t, err)

	res, err := svc.Unstake(sess, []uint64{150}, time.Now())
	require.NoError(t, err)
	assert.Equal(t, []uint64{150}, res.Succeeded)

	require.Len(t, sess.Inventory, 1)
	require.Empty(t, sess.Ledger)
	assert.Equal(t, uint64(150), sess.Inventory[0].ID)
	assert.Equal(t, models.RarityRare, sess.Inventory[0].Rarity, "rarity survives the round trip")

	// Ten days of accrual were forfeited: no payout happened.
	assert.InDelta(t, svc.Config().WalletSeedUSDC-2*svc.Config().GasFeeUSDC, sess.WalletBalance, 1e-9)
	assert.Equal(t, svc.Config().TreasuryInitial, svc.Treasury().Balance())
}

func TestUnstakeReportsIDsNotInLedger(t *testing.T) {
	svc := newTestService()
	sess := connectedSession(svc, "user-1", common(42))

	res, err := svc.Unstake(sess, []uint64{42}, time.Now())
	require.NoError(t, err)
	assert.Empty(t, res.Succeeded)
	assert.Equal(t, []uint64{42}, res.NotFound, "id still in inventory is not staked")
	assert.Len(t, sess.Inventory, 1)
}

func TestClaimAllPaysResetsClocksAndDebitsTreasury(t *testing.T) {
	svc := newTestService()
	sess := connectedSession(svc, "user-1", common(150))
	stakedAt := time.Now().Add(-10 * 24 * time.Hour)

	_, err := svc.Stake(sess, []uint64{150}, stakedAt)
	require.NoError(t, err)

	now := time.Now()
	want := svc.TotalRewards(sess, now)
	require.Greater(t, want, 0.0)
	walletBefore := sess.WalletBalance

	got, err := svc.ClaimAll(sess, now)
	require.NoError(t, err)
	assert.InDelta(t, want, got, 1e-9)

	// Clock reset: immediately recomputed total is zero.
	assert.Equal(t, 0.0, svc.TotalRewards(sess, now))
	assert.Equal(t, now, sess.Ledger[0].StakedAt)

	assert.InDelta(t, svc.Config().TreasuryInitial-got, svc.Treasury().Balance(), 1e-9)
	assert.InDelta(t, walletBefore-svc.Config().GasFeeUSDC+got, sess.WalletBalance, 1e-9)
}

func TestClaimAllRejectsEmptyLedgerAndZeroAccrual(t *testing.T) {
	svc := newTestService()
	sess := connectedSession(svc, "user-1", common(42))

	_, err := svc.ClaimAll(sess, time.Now())
	assert.ErrorIs(t, err, ErrNoStakedPositions)

	now := time.Now()
	_, err = svc.Stake(sess, []uint64{42}, now)
	require.NoError(t, err)

	_, err = svc.ClaimAll(sess, now)
	assert.ErrorIs(t, err, ErrNoRewardsYet)
}

func TestClaimAllIsIndivisibleWhenTreasuryRefuses(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TreasuryInitial = 0
	svc := NewStakingService(cfg, nil, nil)
	svc.SetNotifier(func(string, bool) {})

	sess := connectedSession(svc, "user-1", common(150))
	stakedAt := time.Now().Add(-10 * 24 * time.Hour)
	_, err := svc.Stake(sess, []uint64{150}, stakedAt)
	require.NoError(t, err)
	walletBefore := sess.WalletBalance

	_, err = svc.ClaimAll(sess, time.Now())
	require.ErrorIs(t, err, ErrInsufficientTreasury)

	// Nothing moved: clock intact, gas refunded, treasury untouched.
	assert.Equal(t, stakedAt, sess.Ledger[0].StakedAt)
	assert.InDelta(t, walletBefore, sess.WalletBalance, 1e-9)
	assert.Equal(t, 0.0, svc.Treasury().Balance())
}

func TestGasRejectionIsACompleteNoOp(t *testing.T) {
	svc := newTestService()
	sess := connectedSession(svc, "user-1", common(42), common(150))
	sess.Points = 5000
	sess.WalletBalance = 0 // cannot cover any gas fee

	invBefore := append([]models.Collectible(nil), sess.Inventory...)
	treasuryBefore := svc.Treasury().Balance()

	_, err := svc.Stake(sess, []uint64{42}, time.Now())
	assert.ErrorIs(t, err, ErrInsufficientGas)
	_, err = svc.RedeemPoints(sess)
	assert.ErrorIs(t, err, ErrInsufficientGas)

	assert.Equal(t, invBefore, sess.Inventory)
	assert.Empty(t, sess.Ledger)
	assert.Equal(t, int64(5000), sess.Points)
	assert.Equal(t, treasuryBefore, svc.Treasury().Balance())
	assert.Equal(t, 0.0, sess.WalletBalance)
}

func TestSessionsShareOneTreasuryButNotInventories(t *testing.T) {
	svc := newTestService()
	alice := connectedSession(svc, "alice", common(42))
	bob := connectedSession(svc, "bob", common(43))

	_, err := svc.Stake(alice, []uint64{42}, time.Now())
	require.NoError(t, err)

	assert.Empty(t, alice.Inventory)
	assert.Len(t, bob.Inventory, 1, "staking must not leak across sessions")

	svc.EarnPoints(bob, 1000, 0)
	paid, err := svc.RedeemPoints(bob)
	require.NoError(t, err)
	assert.InDelta(t, svc.Config().TreasuryInitial-paid, svc.Treasury().Balance(), 1e-9,
		"bob's redemption debits the shared treasury")
}

func TestPortfolioViewReflectsState(t *testing.T) {
	svc := newTestService()
	sess := connectedSession(svc, "user-1", common(42), common(150))
	stakedAt := time.Now().Add(-24 * time.Hour)

	_, err := svc.Stake(sess, []uint64{150}, stakedAt)
	require.NoError(t, err)
	svc.EarnPoints(sess, 250, 10)

	now := time.Now()
	view := svc.Portfolio(sess, now)

	require.Len(t, view.Inventory, 1)
	require.Len(t, view.Staked, 1)
	assert.Equal(t, uint64(150), view.Staked[0].NFTID)
	assert.Greater(t, view.Staked[0].Accrued, 0.0)
	assert.InDelta(t, view.Staked[0].Accrued, view.TotalClaimable, 1e-9)
	assert.Equal(t, int64(250), view.PointsBalance)
	assert.Equal(t, svc.Config().TreasuryInitial, view.TreasuryBalance)
	assert.True(t, view.WalletConnected)
}
