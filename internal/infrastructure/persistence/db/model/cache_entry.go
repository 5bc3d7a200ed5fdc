package model

import "time"

type CacheEntry struct {
	Key       string     `gorm:"column:key;type:varchar(191);primaryKey"`
	Value     string     `gorm:"column:value;type:text;not null"`
	Version   int64      `gorm:"column:version;not null;default:0"`
	ExpiresAt *time.Time `gorm:"column:expires_at;index"`
	UpdatedAt time.Time  `gorm:"column:updated_at;not null"`
}

func (CacheEntry) TableName() string {
	return "cache_entries"
}

// All lists every model owned by the schema, in migration order.
func All() []any {
	return []any{
		&Account{},
		&Artwork{},
		&Notification{},
		&ArtistProfile{},
		&ArtistProfileClaim{},
		&CacheEntry{},
	}
}
