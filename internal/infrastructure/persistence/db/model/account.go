package model

import (
	"time"

	"gorm.io/datatypes"
)

type Account struct {
	ID          string         `gorm:"column:id;type:varchar(36);primaryKey"`
	Email       string         `gorm:"column:email;type:varchar(320);not null;uniqueIndex"`
	DisplayName string         `gorm:"column:display_name;type:text;not null;index"`
	Attributes  datatypes.JSON `gorm:"column:attributes;not null"`
	CreatedAt   time.Time      `gorm:"column:created_at;not null"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;not null"`
}

func (Account) TableName() string {
	return "accounts"
}
