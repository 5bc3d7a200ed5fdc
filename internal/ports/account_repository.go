package ports

import (
	"context"
	"errors"
	"time"
)

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrEmailTaken      = errors.New("email already registered")
)

type Account struct {
	ID          string
	Email       string
	DisplayName string
	// Attributes is the raw JSON blob; read it through account.ParseAttributes.
	Attributes []byte
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type AccountRepository interface {
	CreateAccount(ctx context.Context, acct Account) (Account, error)
	GetAccount(ctx context.Context, accountID string) (Account, error)
	// FindArtistByName matches display_name case-insensitively among accounts whose role is artist.
	FindArtistByName(ctx context.Context, name string) (Account, bool, error)
	UpdateAttributes(ctx context.Context, accountID string, attributes []byte, updatedAt time.Time) error
}
