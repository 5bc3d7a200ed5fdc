package provenance

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"provenance/internal/domain/profileclaim"
	"provenance/internal/errs"
)

func TestRequestProfileClaim(t *testing.T) {
	env := setupService(t)
	ctx := context.Background()

	gallery := env.account(t, "North Gallery", "gallery")
	collector := env.account(t, "Collector", "collector")
	artist := env.account(t, "Jane Doe", "artist")

	_, err := env.svc.CreateArtistProfile(ctx, collector.ID, CreateArtistProfileInput{Name: "Jane Doe"})
	require.ErrorIs(t, err, profileclaim.ErrGalleryOnly)
	_, err = env.svc.CreateArtistProfile(ctx, gallery.ID, CreateArtistProfileInput{Name: "  "})
	require.ErrorIs(t, err, profileclaim.ErrNameRequired)

	profile, err := env.svc.CreateArtistProfile(ctx, gallery.ID, CreateArtistProfileInput{Name: "Jane Doe", Bio: "Painter"})
	require.NoError(t, err)
	require.False(t, profile.IsClaimed)

	_, err = env.svc.RequestProfileClaim(ctx, collector.ID, profile.ID, "")
	require.ErrorIs(t, err, profileclaim.ErrArtistOnly)
	_, err = env.svc.RequestProfileClaim(ctx, artist.ID, "missing", "")
	require.ErrorIs(t, err, profileclaim.ErrProfileNotFound)

	claim, err := env.svc.RequestProfileClaim(ctx, artist.ID, profile.ID, "This is me")
	require.NoError(t, err)
	require.Equal(t, profileclaim.StatusPending, claim.Status)

	_, err = env.svc.RequestProfileClaim(ctx, artist.ID, profile.ID, "again")
	require.ErrorIs(t, err, profileclaim.ErrDuplicatePending)

	inbox := env.notificationsFor(t, gallery.ID)
	require.Len(t, inbox, 1)
	require.Equal(t, NotificationProfileClaimRequested, inbox[0].Type)
	require.Equal(t, claim.ID, inbox[0].Metadata["claim_id"])

	_, err = env.svc.ListProfileClaims(ctx, artist.ID, profile.ID)
	require.ErrorIs(t, err, profileclaim.ErrNotProfileCreator)
	claims, err := env.svc.ListProfileClaims(ctx, gallery.ID, profile.ID)
	require.NoError(t, err)
	require.Len(t, claims, 1)
}

func TestApproveProfileClaimRace(t *testing.T) {
	env := setupService(t)
	ctx := context.Background()

	gallery := env.account(t, "North Gallery", "gallery")
	artistA := env.account(t, "Jane Doe", "artist")
	artistB := env.account(t, "Jane Doe Impostor", "artist")

	profile, err := env.svc.CreateArtistProfile(ctx, gallery.ID, CreateArtistProfileInput{Name: "Jane Doe"})
	require.NoError(t, err)

	claimA, err := env.svc.RequestProfileClaim(ctx, artistA.ID, profile.ID, "")
	require.NoError(t, err)
	claimB, err := env.svc.RequestProfileClaim(ctx, artistB.ID, profile.ID, "")
	require.NoError(t, err)

	approved, err := env.svc.ApproveProfileClaim(ctx, gallery.ID, claimA.ID, "Welcome")
	require.NoError(t, err)
	require.Equal(t, profileclaim.StatusApproved, approved.Status)
	require.Equal(t, "Welcome", approved.GalleryResponse)

	rejected, err := env.svc.ApproveProfileClaim(ctx, gallery.ID, claimB.ID, "")
	require.ErrorIs(t, err, profileclaim.ErrProfileAlreadyTaken)
	require.Equal(t, errs.KindConflict, errs.KindOf(err))
	require.Contains(t, ResultOf(err).Error, "already been claimed by another artist")
	require.Equal(t, profileclaim.StatusRejected, rejected.Status)

	stored, err := env.svc.profiles.GetProfile(ctx, profile.ID)
	require.NoError(t, err)
	require.True(t, stored.IsClaimed)
	require.Equal(t, artistA.ID, *stored.UserID)

	claims, err := env.svc.ListProfileClaims(ctx, gallery.ID, profile.ID)
	require.NoError(t, err)
	require.Len(t, claims, 2)
	require.Equal(t, profileclaim.StatusRejected, claims[1].Status)

	inboxB := env.notificationsFor(t, artistB.ID)
	require.Len(t, inboxB, 1)
	require.Equal(t, NotificationProfileClaimRejected, inboxB[0].Type)
	require.Contains(t, inboxB[0].Message, "already been claimed")

	inboxA := env.notificationsFor(t, artistA.ID)
	require.Len(t, inboxA, 1)
	require.Equal(t, NotificationProfileClaimApproved, inboxA[0].Type)

	_, err = env.svc.ApproveProfileClaim(ctx, gallery.ID, claimA.ID, "")
	require.ErrorIs(t, err, profileclaim.ErrClaimResolved)
}

func TestApproveRejectsArtistWithAnotherProfile(t *testing.T) {
	env := setupService(t)
	ctx := context.Background()

	gallery := env.account(t, "North Gallery", "gallery")
	artist := env.account(t, "Jane Doe", "artist")

	first, err := env.svc.CreateArtistProfile(ctx, gallery.ID, CreateArtistProfileInput{Name: "Jane Doe"})
	require.NoError(t, err)
	second, err := env.svc.CreateArtistProfile(ctx, gallery.ID, CreateArtistProfileInput{Name: "J. Doe"})
	require.NoError(t, err)

	claimFirst, err := env.svc.RequestProfileClaim(ctx, artist.ID, first.ID, "")
	require.NoError(t, err)
	claimSecond, err := env.svc.RequestProfileClaim(ctx, artist.ID, second.ID, "")
	require.NoError(t, err)

	_, err = env.svc.ApproveProfileClaim(ctx, gallery.ID, claimFirst.ID, "")
	require.NoError(t, err)

	_, err = env.svc.ApproveProfileClaim(ctx, gallery.ID, claimSecond.ID, "")
	require.ErrorIs(t, err, profileclaim.ErrArtistHasProfile)

	stored, err := env.svc.profiles.GetProfile(ctx, second.ID)
	require.NoError(t, err)
	require.False(t, stored.IsClaimed)
	require.Nil(t, stored.UserID)
}

func TestRejectProfileClaim(t *testing.T) {
	env := setupService(t)
	ctx := context.Background()

	gallery := env.account(t, "North Gallery", "gallery")
	otherGallery := env.account(t, "South Gallery", "gallery")
	artist := env.account(t, "Jane Doe", "artist")

	profile, err := env.svc.CreateArtistProfile(ctx, gallery.ID, CreateArtistProfileInput{Name: "Jane Doe"})
	require.NoError(t, err)
	claim, err := env.svc.RequestProfileClaim(ctx, artist.ID, profile.ID, "")
	require.NoError(t, err)

	_, err = env.svc.RejectProfileClaim(ctx, otherGallery.ID, claim.ID, "no")
	require.ErrorIs(t, err, profileclaim.ErrNotProfileCreator)
	_, err = env.svc.RejectProfileClaim(ctx, gallery.ID, "missing", "no")
	require.ErrorIs(t, err, profileclaim.ErrClaimNotFound)

	rejected, err := env.svc.RejectProfileClaim(ctx, gallery.ID, claim.ID, "We could not confirm your identity")
	require.NoError(t, err)
	require.Equal(t, profileclaim.StatusRejected, rejected.Status)
	require.NotNil(t, rejected.ResolvedAt)

	stored, err := env.svc.profiles.GetProfile(ctx, profile.ID)
	require.NoError(t, err)
	require.False(t, stored.IsClaimed)

	inbox := env.notificationsFor(t, artist.ID)
	require.Len(t, inbox, 1)
	require.Equal(t, NotificationProfileClaimRejected, inbox[0].Type)
	require.Equal(t, "We could not confirm your identity", inbox[0].Metadata["gallery_response"])

	_, err = env.svc.RejectProfileClaim(ctx, gallery.ID, claim.ID, "")
	require.ErrorIs(t, err, profileclaim.ErrClaimResolved)

	// A rejected artist may ask again.
	_, err = env.svc.RequestProfileClaim(ctx, artist.ID, profile.ID, "second try")
	require.NoError(t, err)
}
