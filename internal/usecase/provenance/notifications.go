package provenance

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"provenance/internal/bootstrap/logging"
	"provenance/internal/errs"
	"provenance/internal/ports"
)

// notifyBestEffort records n outside any transaction. A failure is logged and never
// reaches the caller: the state change it reports has already committed.
func (s *Service) notifyBestEffort(ctx context.Context, n ports.Notification) {
	if strings.TrimSpace(n.AccountID) == "" {
		return
	}
	n.ID = s.newID()
	n.CreatedAt = s.now()

	if _, err := s.notifications.CreateNotification(ctx, n); err != nil {
		logging.Warn(
			ctx,
			"notification not recorded",
			slog.String("notification_type", n.Type),
			slog.String("recipient_id", n.AccountID),
			slog.Any("err", errs.Loggable(err)),
		)
	}
}

func (s *Service) ListNotifications(ctx context.Context, actorID string, unreadOnly bool, limit int) ([]ports.Notification, error) {
	if err := s.checkCall(ctx); err != nil {
		return nil, err
	}

	caller, err := s.requireActor(ctx, strings.TrimSpace(actorID))
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultNotificationListLimit
	}
	return s.notifications.ListNotifications(ctx, caller.ID, ports.NotificationFilter{UnreadOnly: unreadOnly, Limit: limit})
}

func (s *Service) UnreadCount(ctx context.Context, actorID string) (int64, error) {
	if err := s.checkCall(ctx); err != nil {
		return 0, err
	}

	caller, err := s.requireActor(ctx, strings.TrimSpace(actorID))
	if err != nil {
		return 0, err
	}
	return s.notifications.CountUnread(ctx, caller.ID)
}

// MarkNotificationRead flips the read flag of a notification owned by actorID.
// Repeating the call is a no-op; someone else's notification reads as not found.
func (s *Service) MarkNotificationRead(ctx context.Context, actorID string, notificationID string) error {
	if err := s.checkCall(ctx); err != nil {
		return err
	}

	caller, err := s.requireActor(ctx, strings.TrimSpace(actorID))
	if err != nil {
		return err
	}

	if err := s.notifications.MarkRead(ctx, caller.ID, strings.TrimSpace(notificationID), s.now()); err != nil {
		if errors.Is(err, ports.ErrNotificationNotFound) {
			return ErrNotificationNotFound
		}
		return err
	}
	return nil
}

func (s *Service) MarkAllNotificationsRead(ctx context.Context, actorID string) (int64, error) {
	if err := s.checkCall(ctx); err != nil {
		return 0, err
	}

	caller, err := s.requireActor(ctx, strings.TrimSpace(actorID))
	if err != nil {
		return 0, err
	}

	changed, err := s.notifications.MarkAllRead(ctx, caller.ID, s.now())
	if err != nil {
		return 0, err
	}
	logging.Debug(s.logContext(ctx, slog.String("account_id", caller.ID)), "notifications marked read", slog.Int64("count", changed))
	return changed, nil
}
