// services/mint.go
package services

import (
	"fmt"
	"log"

	"mogaland-staking-service/models"
)

// Minted token ids start above the contract's range and always land in the
// Epic bucket of the id→rarity mapping, so re-deriving rarity from the id
// can never reclassify a learning-achievement NFT.
const mintTokenBase = 10_000

// MintFromLearning mints the one-per-user learning achievement NFT. It
// requires the configured completed-task threshold, no prior mint, a
// connected wallet and gas admission. The new collectible is always Epic,
// enters the spendable inventory, and its notional mint price converts to
// USDC minting revenue for the treasury. This is the only operation that
// adds a brand-new id to the system.
//
// The contract also exposes Mint (see NFTContract); this demo path does not
// submit a chain transaction.
func (s *StakingService) MintFromLearning(sess *Session) (models.Collectible, error) {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.CompletedTasks < s.cfg.MintTaskThreshold {
		return models.Collectible{}, ErrTaskThresholdNotMet
	}
	if sess.LearningNFTMinted {
		return models.Collectible{}, ErrAlreadyMinted
	}
	if !sess.WalletConnected {
		return models.Collectible{}, ErrWalletNotConnected
	}
	if err := s.gas.Charge(sess, "NFT minting"); err != nil {
		return models.Collectible{}, err
	}

	seq := s.mintSeq.Add(1)
	minted := models.Collectible{
		ID:     mintTokenBase + (seq-1)*100 + 80,
		Rarity: models.RarityEpic, // learning achievement NFTs are Epic
		Source: models.SourceMinted,
	}
	sess.Inventory = append(sess.Inventory, minted)
	sess.LearningNFTMinted = true

	revenue := s.cfg.MintPriceETH * s.cfg.ETHToUSDCRate
	s.treasury.Credit(revenue)
	log.Printf("[Treasury] Received %.2f USDC from NFT mint (user %s)", revenue, sess.UserID)

	s.notify(fmt.Sprintf("🎉 Learning Achievement NFT minted! MOGA #%04d | Gas: %g USDC", minted.ID, s.cfg.GasFeeUSDC), false)
	return minted, nil
}
