// models/collectible.go
package models

// Rarity tiers for Mogaland collectibles
type Rarity string

const (
	RarityCommon    Rarity = "Common"
	RarityRare      Rarity = "Rare"
	RarityEpic      Rarity = "Epic"
	RarityLegendary Rarity = "Legendary"
)

// CollectibleSource indicates how the user came to own the collectible
type CollectibleSource string

const (
	SourceWallet CollectibleSource = "wallet" // discovered via the NFT contract
	SourceMinted CollectibleSource = "minted" // minted from the learning achievement
)

// Collectible is an owned, stakeable NFT. Rarity is assigned once and never
// changes afterwards.
type Collectible struct {
	ID       uint64            `json:"id"`
	Rarity   Rarity            `json:"rarity"`
	TokenURI string            `json:"token_uri,omitempty"`
	Source   CollectibleSource `json:"source"`
}

// RarityFromTokenID derives the rarity tier deterministically from the token
// id: mod 100, buckets [0,50) Common, [50,80) Rare, [80,95) Epic, else
// Legendary.
func RarityFromTokenID(tokenID uint64) Rarity {
	mod := tokenID % 100
	switch {
	case mod < 50:
		return RarityCommon
	case mod < 80:
		return RarityRare
	case mod < 95:
		return RarityEpic
	default:
		return RarityLegendary
	}
}
