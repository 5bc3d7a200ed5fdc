package cache

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"provenance/internal/errs"
	"provenance/internal/infrastructure/persistence/db/model"
	"provenance/internal/ports"
)

// GormCache stores entries in the cache_entries table of the main database.
type GormCache struct {
	db  *gorm.DB
	now func() time.Time
}

var _ ports.Cache = (*GormCache)(nil)

func NewGormCache(db *gorm.DB) *GormCache {
	return &GormCache{db: db, now: time.Now}
}

func (c *GormCache) Get(ctx context.Context, key string) (string, bool, error) {
	trimmedKey, err := checkKey(ctx, key)
	if err != nil {
		return "", false, err
	}

	var row model.CacheEntry
	if err := c.db.WithContext(ctx).Where("key = ?", trimmedKey).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, errs.Wrap(err, "query cache by key")
	}
	if row.ExpiresAt != nil && !row.ExpiresAt.After(c.now().UTC()) {
		return "", false, nil
	}

	return row.Value, true, nil
}

// Set upserts key. A ttl of zero or less keeps the entry until it is overwritten or deleted.
func (c *GormCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	trimmedKey, err := checkKey(ctx, key)
	if err != nil {
		return err
	}

	now := c.now().UTC()
	row := model.CacheEntry{
		Key:       trimmedKey,
		Value:     value,
		UpdatedAt: now,
	}
	if ttl > 0 {
		expiresAt := now.Add(ttl)
		row.ExpiresAt = &expiresAt
	}

	if err := c.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key"}},
		DoUpdates: clause.Assignments(map[string]any{
			"value":      row.Value,
			"version":    row.Version,
			"expires_at": row.ExpiresAt,
			"updated_at": row.UpdatedAt,
		}),
	}).Create(&row).Error; err != nil {
		return errs.Wrap(err, "upsert cache key")
	}

	return nil
}

// Advance is a single conditional upsert, so concurrent writers can never replace a live
// entry with a lower version.
func (c *GormCache) Advance(ctx context.Context, key string, value string, version int64, ttl time.Duration) (bool, error) {
	trimmedKey, err := checkKey(ctx, key)
	if err != nil {
		return false, err
	}

	now := c.now().UTC()
	row := model.CacheEntry{
		Key:       trimmedKey,
		Value:     value,
		Version:   version,
		UpdatedAt: now,
	}
	if ttl > 0 {
		expiresAt := now.Add(ttl)
		row.ExpiresAt = &expiresAt
	}

	result := c.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key"}},
		DoUpdates: clause.Assignments(map[string]any{
			"value":      row.Value,
			"version":    row.Version,
			"expires_at": row.ExpiresAt,
			"updated_at": row.UpdatedAt,
		}),
		Where: clause.Where{Exprs: []clause.Expression{clause.Expr{
			SQL:  "cache_entries.version <= ? OR (cache_entries.expires_at IS NOT NULL AND cache_entries.expires_at <= ?)",
			Vars: []any{version, now},
		}}},
	}).Create(&row)
	if result.Error != nil {
		return false, errs.Wrap(result.Error, "advance cache key")
	}
	return result.RowsAffected > 0, nil
}

func (c *GormCache) Delete(ctx context.Context, key string) error {
	trimmedKey, err := checkKey(ctx, key)
	if err != nil {
		return err
	}

	if err := c.db.WithContext(ctx).Where("key = ?", trimmedKey).Delete(&model.CacheEntry{}).Error; err != nil {
		return errs.Wrap(err, "delete cache key")
	}
	return nil
}

func checkKey(ctx context.Context, key string) (string, error) {
	if ctx == nil {
		return "", errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return "", errs.Wrap(err, "check context")
	}

	trimmedKey := strings.TrimSpace(key)
	if trimmedKey == "" {
		return "", errors.New("key is required")
	}
	return trimmedKey, nil
}
