package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"provenance/internal/errs"
	"provenance/internal/infrastructure/persistence/db/model"
	"provenance/internal/ports"
)

type NotificationRepository struct {
	db *gorm.DB
}

var _ ports.NotificationRepository = (*NotificationRepository)(nil)

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) CreateNotification(ctx context.Context, n ports.Notification) (ports.Notification, error) {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return ports.Notification{}, err
	}

	row := model.Notification{
		ID:               n.ID,
		AccountID:        n.AccountID,
		Type:             n.Type,
		Title:            n.Title,
		Message:          n.Message,
		ArtworkID:        n.ArtworkID,
		RelatedAccountID: n.RelatedAccountID,
		IsRead:           n.IsRead,
		ReadAt:           n.ReadAt,
		CreatedAt:        n.CreatedAt,
	}
	if len(n.Metadata) > 0 {
		row.Metadata = datatypes.JSONMap(n.Metadata)
	}
	if err := db.Create(&row).Error; err != nil {
		return ports.Notification{}, errs.Wrap(err, "insert notification")
	}
	return mapNotification(row), nil
}

func (r *NotificationRepository) ListNotifications(ctx context.Context, accountID string, filter ports.NotificationFilter) ([]ports.Notification, error) {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return nil, err
	}

	query := db.Model(&model.Notification{}).Where("account_id = ?", accountID)
	if filter.UnreadOnly {
		query = query.Where("is_read = ?", false)
	}

	var rows []model.Notification
	if err := query.
		Order("created_at desc").
		Order("id asc").
		Limit(normalizeLimit(filter.Limit, 50)).
		Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query notifications")
	}

	items := make([]ports.Notification, 0, len(rows))
	for _, row := range rows {
		items = append(items, mapNotification(row))
	}
	return items, nil
}

func (r *NotificationRepository) CountUnread(ctx context.Context, accountID string) (int64, error) {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return 0, err
	}

	var count int64
	if err := db.Model(&model.Notification{}).
		Where("account_id = ? AND is_read = ?", accountID, false).
		Count(&count).Error; err != nil {
		return 0, errs.Wrap(err, "count unread notifications")
	}
	return count, nil
}

func (r *NotificationRepository) MarkRead(ctx context.Context, accountID string, notificationID string, readAt time.Time) error {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return err
	}

	var row model.Notification
	if err := db.Where("id = ? AND account_id = ?", notificationID, accountID).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.ErrNotificationNotFound
		}
		return errs.Wrapf(err, "query notification %s", notificationID)
	}
	if row.IsRead {
		return nil
	}

	if err := db.Model(&model.Notification{}).
		Where("id = ? AND is_read = ?", notificationID, false).
		Updates(map[string]any{"is_read": true, "read_at": readAt}).Error; err != nil {
		return errs.Wrapf(err, "mark notification %s read", notificationID)
	}
	return nil
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, accountID string, readAt time.Time) (int64, error) {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return 0, err
	}

	res := db.Model(&model.Notification{}).
		Where("account_id = ? AND is_read = ?", accountID, false).
		Updates(map[string]any{"is_read": true, "read_at": readAt})
	if res.Error != nil {
		return 0, errs.Wrap(res.Error, "mark all notifications read")
	}
	return res.RowsAffected, nil
}

func mapNotification(row model.Notification) ports.Notification {
	var metadata map[string]any
	if len(row.Metadata) > 0 {
		metadata = map[string]any(row.Metadata)
	}
	return ports.Notification{
		ID:               row.ID,
		AccountID:        row.AccountID,
		Type:             row.Type,
		Title:            row.Title,
		Message:          row.Message,
		ArtworkID:        row.ArtworkID,
		RelatedAccountID: row.RelatedAccountID,
		Metadata:         metadata,
		IsRead:           row.IsRead,
		ReadAt:           row.ReadAt,
		CreatedAt:        row.CreatedAt,
	}
}
