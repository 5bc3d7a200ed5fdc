package model

import "time"

type Artwork struct {
	ID                string     `gorm:"column:id;type:varchar(36);primaryKey"`
	AccountID         string     `gorm:"column:account_id;type:varchar(36);not null;index"`
	ArtistAccountID   *string    `gorm:"column:artist_account_id;type:varchar(36);index"`
	Title             string     `gorm:"column:title;type:text;not null"`
	ArtistName        string     `gorm:"column:artist_name;type:text;not null"`
	Year              string     `gorm:"column:year;type:text;not null;default:''"`
	Medium            string     `gorm:"column:medium;type:text;not null;default:''"`
	Description       string     `gorm:"column:description;type:text;not null;default:''"`
	CertificateNumber string     `gorm:"column:certificate_number;type:varchar(64);not null;uniqueIndex"`
	CertificateType   string     `gorm:"column:certificate_type;type:varchar(32);not null"`
	CertificateStatus string     `gorm:"column:certificate_status;type:varchar(32);not null;index"`
	ClaimedByArtistAt *time.Time `gorm:"column:claimed_by_artist_at"`
	VerifiedByOwnerAt *time.Time `gorm:"column:verified_by_owner_at"`
	CreatedAt         time.Time  `gorm:"column:created_at;not null;index"`
	UpdatedAt         time.Time  `gorm:"column:updated_at;not null"`
}

func (Artwork) TableName() string {
	return "artworks"
}
