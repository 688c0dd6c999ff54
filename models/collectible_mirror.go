// models/collectible_mirror.go
package models

import (
	"time"

	"gorm.io/gorm"
)

// CollectibleMirror caches wallet-discovered collectibles per owner address.
// Table name: collectible_mirror
//
// This is a re-derivable cache for ops visibility, rebuilt from the NFT
// contract on every sync — never the source of truth. Staking state is not
// mirrored.
type CollectibleMirror struct {
	ID           string    `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	OwnerAddress string    `gorm:"type:varchar(128);not null;uniqueIndex:idx_owner_token" json:"owner_address"`
	TokenID      uint64    `gorm:"not null;uniqueIndex:idx_owner_token" json:"token_id"`
	Rarity       Rarity    `gorm:"type:varchar(16);not null" json:"rarity"`
	TokenURI     string    `gorm:"type:text" json:"token_uri"`
	LastSeenAt   time.Time `gorm:"not null" json:"last_seen_at"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`

	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (CollectibleMirror) TableName() string { return "collectible_mirror" }
