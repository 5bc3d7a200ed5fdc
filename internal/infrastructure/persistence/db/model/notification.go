package model

import (
	"time"

	"gorm.io/datatypes"
)

type Notification struct {
	ID               string            `gorm:"column:id;type:varchar(36);primaryKey"`
	AccountID        string            `gorm:"column:account_id;type:varchar(36);not null;index:idx_notifications_account_read"`
	Type             string            `gorm:"column:type;type:varchar(64);not null"`
	Title            string            `gorm:"column:title;type:text;not null"`
	Message          string            `gorm:"column:message;type:text;not null"`
	ArtworkID        *string           `gorm:"column:artwork_id;type:varchar(36);index"`
	RelatedAccountID *string           `gorm:"column:related_account_id;type:varchar(36)"`
	Metadata         datatypes.JSONMap `gorm:"column:metadata"`
	IsRead           bool              `gorm:"column:is_read;not null;default:false;index:idx_notifications_account_read"`
	ReadAt           *time.Time        `gorm:"column:read_at"`
	CreatedAt        time.Time         `gorm:"column:created_at;not null;index"`
}

func (Notification) TableName() string {
	return "notifications"
}
