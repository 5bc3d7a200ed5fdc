package provenance

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"provenance/internal/domain/certificate"
)

func TestNotificationReadFlags(t *testing.T) {
	env := setupService(t)
	ctx := context.Background()

	gallery := env.account(t, "Gallery", "gallery")
	artist := env.account(t, "Artist", "artist")
	for _, title := range []string{"One", "Two"} {
		artwork := env.post(t, gallery.ID, title, "Nobody")
		require.NoError(t, env.svc.ClaimCertificate(ctx, artwork.ID, artist.ID))
	}

	unread, err := env.svc.UnreadCount(ctx, gallery.ID)
	require.NoError(t, err)
	require.EqualValues(t, 2, unread)

	inbox := env.notificationsFor(t, gallery.ID)
	require.Len(t, inbox, 2)

	require.ErrorIs(t, env.svc.MarkNotificationRead(ctx, artist.ID, inbox[0].ID), ErrNotificationNotFound)
	require.ErrorIs(t, env.svc.MarkNotificationRead(ctx, "", inbox[0].ID), certificate.ErrNotSignedIn)

	require.NoError(t, env.svc.MarkNotificationRead(ctx, gallery.ID, inbox[0].ID))
	require.NoError(t, env.svc.MarkNotificationRead(ctx, gallery.ID, inbox[0].ID))

	unreadOnly, err := env.svc.ListNotifications(ctx, gallery.ID, true, 0)
	require.NoError(t, err)
	require.Len(t, unreadOnly, 1)
	require.Equal(t, inbox[1].ID, unreadOnly[0].ID)

	changed, err := env.svc.MarkAllNotificationsRead(ctx, gallery.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, changed)

	unread, err = env.svc.UnreadCount(ctx, gallery.ID)
	require.NoError(t, err)
	require.Zero(t, unread)
}
