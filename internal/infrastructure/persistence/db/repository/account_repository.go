package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"provenance/internal/domain/account"
	"provenance/internal/errs"
	"provenance/internal/infrastructure/persistence/db/model"
	"provenance/internal/ports"
)

type AccountRepository struct {
	db *gorm.DB
}

var _ ports.AccountRepository = (*AccountRepository)(nil)

func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) CreateAccount(ctx context.Context, acct ports.Account) (ports.Account, error) {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return ports.Account{}, err
	}

	var taken int64
	if err := db.Model(&model.Account{}).Where("LOWER(email) = LOWER(?)", acct.Email).Count(&taken).Error; err != nil {
		return ports.Account{}, errs.Wrap(err, "check account email")
	}
	if taken > 0 {
		return ports.Account{}, ports.ErrEmailTaken
	}

	attrs := acct.Attributes
	if len(attrs) == 0 {
		attrs = []byte("{}")
	}
	row := model.Account{
		ID:          acct.ID,
		Email:       acct.Email,
		DisplayName: acct.DisplayName,
		Attributes:  datatypes.JSON(attrs),
		CreatedAt:   acct.CreatedAt,
		UpdatedAt:   acct.UpdatedAt,
	}
	if err := db.Create(&row).Error; err != nil {
		return ports.Account{}, errs.Wrap(err, "insert account")
	}
	return mapAccount(row), nil
}

func (r *AccountRepository) GetAccount(ctx context.Context, accountID string) (ports.Account, error) {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return ports.Account{}, err
	}

	var row model.Account
	if err := db.Where("id = ?", accountID).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Account{}, ports.ErrAccountNotFound
		}
		return ports.Account{}, errs.Wrapf(err, "query account %s", accountID)
	}
	return mapAccount(row), nil
}

func (r *AccountRepository) FindArtistByName(ctx context.Context, name string) (ports.Account, bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return ports.Account{}, false, nil
	}

	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return ports.Account{}, false, err
	}

	var rows []model.Account
	if err := db.
		Where("LOWER(display_name) = LOWER(?)", name).
		Where(datatypes.JSONQuery("attributes").Equals(string(account.RoleArtist), account.RoleKey())).
		Order("created_at asc").
		Limit(1).
		Find(&rows).Error; err != nil {
		return ports.Account{}, false, errs.Wrap(err, "query artist by name")
	}
	if len(rows) == 0 {
		return ports.Account{}, false, nil
	}
	return mapAccount(rows[0]), true, nil
}

func (r *AccountRepository) UpdateAttributes(ctx context.Context, accountID string, attributes []byte, updatedAt time.Time) error {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return err
	}

	res := db.Model(&model.Account{}).
		Where("id = ?", accountID).
		Updates(map[string]any{
			"attributes": datatypes.JSON(attributes),
			"updated_at": updatedAt,
		})
	if res.Error != nil {
		return errs.Wrapf(res.Error, "update account %s attributes", accountID)
	}
	if res.RowsAffected == 0 {
		return ports.ErrAccountNotFound
	}
	return nil
}

func mapAccount(row model.Account) ports.Account {
	return ports.Account{
		ID:          row.ID,
		Email:       row.Email,
		DisplayName: row.DisplayName,
		Attributes:  []byte(row.Attributes),
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}
