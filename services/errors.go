// services/errors.go
package services

import "errors"

// Every rejected action is a no-op with respect to inventory, ledger,
// treasury and points — these errors are user-visible outcomes, not faults.
var (
	ErrWalletNotConnected   = errors.New("wallet not connected")
	ErrNoSelection          = errors.New("no NFTs selected")
	ErrNoStakedPositions    = errors.New("no staked NFTs")
	ErrNoRewardsYet         = errors.New("no rewards available yet")
	ErrInsufficientPoints   = errors.New("need at least the minimum points to redeem")
	ErrInsufficientTreasury = errors.New("treasury balance too low to fund payout")
	ErrInsufficientGas      = errors.New("wallet balance too low to cover gas fee")
	ErrTaskThresholdNotMet  = errors.New("complete all learning tasks first")
	ErrAlreadyMinted        = errors.New("learning achievement NFT already minted")
)
