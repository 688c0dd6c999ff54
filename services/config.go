// services/config.go
package services

import (
	"log"
	"os"
	"strconv"
	"time"

	"mogaland-staking-service/models"
)

// Config carries every tunable the staking economy uses, injected rather
// than hard-coded so tests and deployments can vary them without behavior
// drift.
type Config struct {
	GasFeeUSDC         float64 // flat fee charged before every mutating action
	BaseStakeValueUSDC float64 // notional staked value per position
	TreasuryInitial    float64 // treasury seed balance
	MintPriceETH       float64 // notional mint price
	ETHToUSDCRate      float64 // conversion applied to minting revenue
	PointsPerUSDC      int64   // redemption rate; also the minimum redeemable
	MintTaskThreshold  int64   // completed learning tasks required to mint
	WalletSeedUSDC     float64 // starting session wallet balance (funds gas)

	SyncInterval time.Duration // wallet re-sync scheduler period

	APYByRarity map[models.Rarity]float64
}

// DefaultConfig returns the production constants.
func DefaultConfig() Config {
	return Config{
		GasFeeUSDC:         0.01,
		BaseStakeValueUSDC: 100,
		TreasuryInitial:    1_000_000,
		MintPriceETH:       0.05,
		ETHToUSDCRate:      2500,
		PointsPerUSDC:      1000,
		MintTaskThreshold:  100,
		WalletSeedUSDC:     10,
		SyncInterval:       10 * time.Second,
		APYByRarity: map[models.Rarity]float64{
			models.RarityCommon:    5,
			models.RarityRare:      10,
			models.RarityEpic:      15,
			models.RarityLegendary: 20,
		},
	}
}

// LoadConfig reads overrides from the environment on top of DefaultConfig.
func LoadConfig() Config {
	cfg := DefaultConfig()
	cfg.GasFeeUSDC = envFloat("GAS_FEE_USDC", cfg.GasFeeUSDC)
	cfg.BaseStakeValueUSDC = envFloat("BASE_STAKE_VALUE_USDC", cfg.BaseStakeValueUSDC)
	cfg.TreasuryInitial = envFloat("TREASURY_INITIAL_USDC", cfg.TreasuryInitial)
	cfg.MintPriceETH = envFloat("MINT_PRICE_ETH", cfg.MintPriceETH)
	cfg.ETHToUSDCRate = envFloat("ETH_USDC_RATE", cfg.ETHToUSDCRate)
	cfg.PointsPerUSDC = envInt("REDEEM_POINTS_PER_USDC", cfg.PointsPerUSDC)
	cfg.MintTaskThreshold = envInt("MINT_TASK_THRESHOLD", cfg.MintTaskThreshold)
	cfg.WalletSeedUSDC = envFloat("WALLET_SEED_USDC", cfg.WalletSeedUSDC)
	cfg.SyncInterval = envDuration("SYNC_INTERVAL", cfg.SyncInterval)
	return cfg
}

// APYFor returns the annual yield rate for a rarity tier. Unknown tiers fall
// back to the Common rate.
func (c Config) APYFor(r models.Rarity) float64 {
	if apy, ok := c.APYByRarity[r]; ok {
		return apy
	}
	return c.APYByRarity[models.RarityCommon]
}

func envFloat(key string, fallback float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Printf("⚠️  Invalid %s=%q, using default %v", key, raw, fallback)
		return fallback
	}
	return v
}

func envInt(key string, fallback int64) int64 {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		log.Printf("⚠️  Invalid %s=%q, using default %v", key, raw, fallback)
		return fallback
	}
	return v
}

func envDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := time.ParseDuration(raw)
	if err != nil || v <= 0 {
		log.Printf("⚠️  Invalid %s=%q, using default %v", key, raw, fallback)
		return fallback
	}
	return v
}
