package model

import "time"

type ArtistProfile struct {
	ID                 string     `gorm:"column:id;type:varchar(36);primaryKey"`
	Name               string     `gorm:"column:name;type:text;not null"`
	Bio                string     `gorm:"column:bio;type:text;not null;default:''"`
	CreatedByAccountID string     `gorm:"column:created_by_account_id;type:varchar(36);not null;index"`
	UserID             *string    `gorm:"column:user_id;type:varchar(36);index"`
	IsClaimed          bool       `gorm:"column:is_claimed;not null;default:false"`
	ClaimedAt          *time.Time `gorm:"column:claimed_at"`
	CreatedAt          time.Time  `gorm:"column:created_at;not null"`
	UpdatedAt          time.Time  `gorm:"column:updated_at;not null"`
}

func (ArtistProfile) TableName() string {
	return "artist_profiles"
}

// ArtistProfileClaim allows at most one pending request per (profile, artist).
type ArtistProfileClaim struct {
	ID              string     `gorm:"column:id;type:varchar(36);primaryKey"`
	ProfileID       string     `gorm:"column:profile_id;type:varchar(36);not null;index;uniqueIndex:idx_profile_claims_pending,where:status = 'pending'"`
	ArtistAccountID string     `gorm:"column:artist_account_id;type:varchar(36);not null;index;uniqueIndex:idx_profile_claims_pending,where:status = 'pending'"`
	Status          string     `gorm:"column:status;type:varchar(16);not null;index"`
	Message         string     `gorm:"column:message;type:text;not null;default:''"`
	GalleryResponse string     `gorm:"column:gallery_response;type:text;not null;default:''"`
	ResolvedAt      *time.Time `gorm:"column:resolved_at"`
	CreatedAt       time.Time  `gorm:"column:created_at;not null"`
	UpdatedAt       time.Time  `gorm:"column:updated_at;not null"`
}

func (ArtistProfileClaim) TableName() string {
	return "artist_profile_claims"
}
