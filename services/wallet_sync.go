// services/wallet_sync.go
package services

import (
	"context"
	"log"
	"time"

	"mogaland-staking-service/models"

	"github.com/google/uuid"
	"gorm.io/gorm/clause"
)

// NFTContract is the provider/contract-shaped collaborator WalletSync
// consumes. The HTTP implementation lives in workers; tests substitute
// fakes. Mint is part of the contract surface but the learning mint path
// does not exercise it.
type NFTContract interface {
	BalanceOf(ctx context.Context, owner string) (uint64, error)
	TokenOfOwnerByIndex(ctx context.Context, owner string, index uint64) (uint64, error)
	TokenURI(ctx context.Context, tokenID uint64) (string, error)
	OwnerOf(ctx context.Context, tokenID uint64) (string, error)
	Mint(ctx context.Context, to string) (uint64, error)
}

// SyncWallet reconciles the collectibles the contract reports for the
// session's wallet with the locally-minted set. Running without a provider
// or wallet is not an error — the minted set stays as-is and a degraded-mode
// notice is logged. Any contract query failure is swallowed the same way:
// logged, treated as "no wallet data", never surfaced to the caller.
//
// Currently-staked ids stay in the ledger; a discovered id that is already
// staked is not re-added to the inventory.
func (s *StakingService) SyncWallet(ctx context.Context, sess *Session) {
	if s.contract == nil {
		log.Println("[NFT] No wallet provider configured, using local NFTs only")
		return
	}

	sess.mu.Lock()
	owner := sess.WalletAddress
	sess.mu.Unlock()
	if owner == "" {
		log.Println("[NFT] No wallet connected, using local NFTs only")
		return
	}

	balance, err := s.contract.BalanceOf(ctx, owner)
	if err != nil {
		log.Printf("[NFT] Error loading NFTs for %s, using local mode: %v", owner, err)
		return
	}

	discovered := make([]models.Collectible, 0, balance)
	for i := uint64(0); i < balance; i++ {
		tokenID, err := s.contract.TokenOfOwnerByIndex(ctx, owner, i)
		if err != nil {
			log.Printf("[NFT] Error loading NFTs for %s, using local mode: %v", owner, err)
			return
		}
		uri, err := s.contract.TokenURI(ctx, tokenID)
		if err != nil {
			log.Printf("[NFT] Error loading NFTs for %s, using local mode: %v", owner, err)
			return
		}
		discovered = append(discovered, models.Collectible{
			ID:       tokenID,
			Rarity:   models.RarityFromTokenID(tokenID),
			TokenURI: uri,
			Source:   models.SourceWallet,
		})
	}

	sess.mu.Lock()
	merged := make([]models.Collectible, 0, len(discovered)+len(sess.Inventory))
	for _, c := range sess.Inventory {
		if c.Source == models.SourceMinted {
			merged = append(merged, c)
		}
	}
	for _, c := range discovered {
		if sess.ledgerIndex(c.ID) >= 0 {
			continue
		}
		merged = append(merged, c)
	}
	sess.Inventory = merged
	sess.mu.Unlock()

	log.Printf("[NFT] Loaded %d NFTs from wallet %s", len(discovered), owner)
	s.mirrorCollectibles(owner, discovered)
}

// mirrorCollectibles bulk-upserts wallet-discovered collectibles into the
// collectible_mirror cache when a DB is configured.
func (s *StakingService) mirrorCollectibles(owner string, discovered []models.Collectible) {
	if s.DB == nil || len(discovered) == 0 {
		return
	}

	now := time.Now().UTC()
	rows := make([]models.CollectibleMirror, 0, len(discovered))
	for _, c := range discovered {
		rows = append(rows, models.CollectibleMirror{
			ID:           uuid.NewString(),
			OwnerAddress: owner,
			TokenID:      c.ID,
			Rarity:       c.Rarity,
			TokenURI:     c.TokenURI,
			LastSeenAt:   now,
		})
	}

	if err := s.DB.Clauses(
		clause.OnConflict{
			Columns: []clause.Column{{Name: "owner_address"}, {Name: "token_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"rarity",
				"token_uri",
				"last_seen_at",
				"updated_at",
			}),
		},
	).Create(&rows).Error; err != nil {
		log.Printf("❌ Failed to upsert %d collectible(s) into collectible_mirror: %v", len(rows), err)
		return
	}
	log.Printf("✅ Upserted %d collectible(s) into collectible_mirror", len(rows))
}
