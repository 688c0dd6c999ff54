// models/position.go
package models

import "time"

// StakedPosition is a collectible moved into the yield-accruing ledger.
// APYPercent is looked up from the rarity table at stake time and frozen for
// the life of the position; restaking later looks it up again. Source is
// carried through so unstaking hands back the collectible with its
// provenance intact — a minted NFT must survive a wallet re-sync after the
// round trip.
type StakedPosition struct {
	NFTID      uint64            `json:"nft_id"`
	Rarity     Rarity            `json:"rarity"`
	Source     CollectibleSource `json:"source"`
	APYPercent float64           `json:"apy_percent"`
	StakedAt   time.Time         `json:"staked_at"`
}
