package provenance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"provenance/internal/bootstrap/logging"
	"provenance/internal/domain/account"
	"provenance/internal/domain/profileclaim"
	"provenance/internal/ports"
)

// CreateArtistProfile lets a gallery create a profile for an artist who has no account yet.
func (s *Service) CreateArtistProfile(ctx context.Context, actorID string, input CreateArtistProfileInput) (ports.ArtistProfile, error) {
	if err := s.checkCall(ctx); err != nil {
		return ports.ArtistProfile{}, err
	}

	caller, err := s.requireActor(ctx, strings.TrimSpace(actorID))
	if err != nil {
		return ports.ArtistProfile{}, err
	}
	if caller.Profile.Role != account.RoleGallery {
		return ports.ArtistProfile{}, profileclaim.ErrGalleryOnly
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return ports.ArtistProfile{}, profileclaim.ErrNameRequired
	}

	now := s.now()
	var created ports.ArtistProfile
	if err := s.uow.WithTx(ctx, func(txCtx context.Context) error {
		profile, err := s.profiles.CreateProfile(txCtx, ports.ArtistProfile{
			ID:                 s.newID(),
			Name:               name,
			Bio:                strings.TrimSpace(input.Bio),
			CreatedByAccountID: caller.ID,
			CreatedAt:          now,
			UpdatedAt:          now,
		})
		if err != nil {
			return err
		}
		created = profile
		return nil
	}); err != nil {
		return ports.ArtistProfile{}, err
	}

	logging.Info(s.logContext(ctx, slog.String("account_id", caller.ID)), "artist profile created", slog.String("profile_id", created.ID))
	return created, nil
}

// RequestProfileClaim records an artist's request to be linked to an unclaimed profile and
// tells the gallery that created it.
func (s *Service) RequestProfileClaim(ctx context.Context, actorID string, profileID string, message string) (ports.ProfileClaim, error) {
	if err := s.checkCall(ctx); err != nil {
		return ports.ProfileClaim{}, err
	}

	actorID = strings.TrimSpace(actorID)
	profileID = strings.TrimSpace(profileID)
	logCtx := s.logContext(ctx, slog.String("account_id", actorID), slog.String("profile_id", profileID))

	var (
		created ports.ProfileClaim
		profile ports.ArtistProfile
		artist  ports.Account
	)
	if err := s.uow.WithTx(ctx, func(txCtx context.Context) error {
		if actorID == "" {
			return profileclaim.ErrNotSignedIn
		}
		caller, err := s.requireActor(txCtx, actorID)
		if err != nil {
			return err
		}

		found := true
		profile, err = s.profiles.GetProfile(txCtx, profileID)
		if err != nil {
			if !errors.Is(err, ports.ErrArtistProfileNotFound) {
				return err
			}
			found = false
		}
		if err := profileclaim.CheckRequest(actorID, caller.Profile.Role, profileState(profile), found); err != nil {
			return err
		}

		pending, err := s.profiles.HasPendingClaim(txCtx, profileID, actorID)
		if err != nil {
			return err
		}
		if pending {
			return profileclaim.ErrDuplicatePending
		}

		now := s.now()
		created, err = s.profiles.CreateClaim(txCtx, ports.ProfileClaim{
			ID:              s.newID(),
			ProfileID:       profileID,
			ArtistAccountID: actorID,
			Status:          profileclaim.StatusPending,
			Message:         strings.TrimSpace(message),
			CreatedAt:       now,
			UpdatedAt:       now,
		})
		if err != nil {
			return err
		}
		artist = caller.Account
		return nil
	}); err != nil {
		s.logRefusal(logCtx, "profile claim request refused", err)
		return ports.ProfileClaim{}, err
	}

	s.notifyBestEffort(logCtx, ports.Notification{
		AccountID:        profile.CreatedByAccountID,
		Type:             NotificationProfileClaimRequested,
		Title:            "Artist profile claim requested",
		Message:          fmt.Sprintf("%s asked to claim the artist profile %q.", artist.DisplayName, profile.Name),
		RelatedAccountID: &artist.ID,
		Metadata: map[string]any{
			"claim_id":     created.ID,
			"profile_id":   profile.ID,
			"profile_name": profile.Name,
		},
	})

	logging.Info(logCtx, "profile claim requested", slog.String("claim_id", created.ID))
	return created, nil
}

// ListProfileClaims returns every claim on a profile to the gallery that created it.
func (s *Service) ListProfileClaims(ctx context.Context, actorID string, profileID string) ([]ports.ProfileClaim, error) {
	if err := s.checkCall(ctx); err != nil {
		return nil, err
	}

	caller, err := s.requireActor(ctx, strings.TrimSpace(actorID))
	if err != nil {
		return nil, err
	}
	profile, err := s.profiles.GetProfile(ctx, strings.TrimSpace(profileID))
	if err != nil {
		if errors.Is(err, ports.ErrArtistProfileNotFound) {
			return nil, profileclaim.ErrProfileNotFound
		}
		return nil, err
	}
	if profile.CreatedByAccountID != caller.ID {
		return nil, profileclaim.ErrNotProfileCreator
	}
	return s.profiles.ListClaims(ctx, profile.ID)
}

func profileState(p ports.ArtistProfile) profileclaim.ProfileState {
	state := profileclaim.ProfileState{
		CreatedBy: p.CreatedByAccountID,
		IsClaimed: p.IsClaimed,
	}
	if p.UserID != nil {
		state.UserID = *p.UserID
	}
	return state
}
