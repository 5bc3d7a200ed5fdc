package provenance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"provenance/internal/bootstrap/logging"
	"provenance/internal/domain/profileclaim"
	"provenance/internal/errs"
	"provenance/internal/ports"
)

// claimResolution is what a committed approve or reject did, for the notification that follows.
type claimResolution struct {
	claim   ports.ProfileClaim
	profile ports.ArtistProfile
	reason  *errs.Failure
}

// ApproveProfileClaim links the profile to the claiming artist. When the profile was taken by
// another claim first, or the artist already holds a different profile, the claim is rejected
// instead: the rejection is committed and the returned claim comes with a conflict failure.
func (s *Service) ApproveProfileClaim(ctx context.Context, actorID string, claimID string, response string) (ports.ProfileClaim, error) {
	if err := s.checkCall(ctx); err != nil {
		return ports.ProfileClaim{}, err
	}

	actorID = strings.TrimSpace(actorID)
	claimID = strings.TrimSpace(claimID)
	response = strings.TrimSpace(response)
	logCtx := s.logContext(ctx, slog.String("account_id", actorID), slog.String("claim_id", claimID))

	var res claimResolution
	if err := s.uow.WithTx(ctx, func(txCtx context.Context) error {
		claim, claimFound, profile, err := s.loadClaim(txCtx, claimID)
		if err != nil {
			return err
		}

		hasOther := false
		if claimFound {
			hasOther, err = s.profiles.HasClaimedProfile(txCtx, claim.ArtistAccountID, claim.ProfileID)
			if err != nil {
				return err
			}
		}

		decision, reason, err := profileclaim.EvaluateApproval(profileclaim.ApprovalCheck{
			ActorID:          actorID,
			ClaimFound:       claimFound,
			ClaimStatus:      claim.Status,
			Profile:          profileState(profile),
			ArtistHasProfile: hasOther,
		})
		if err != nil {
			return err
		}

		now := s.now()
		if decision == profileclaim.DecisionApprove {
			linked, err := s.profiles.LinkProfile(txCtx, profile.ID, claim.ArtistAccountID, now)
			if err != nil {
				return err
			}
			if !linked {
				decision, reason = profileclaim.DecisionAutoReject, profileclaim.ErrProfileAlreadyTaken
			} else {
				artistID := claim.ArtistAccountID
				profile.UserID = &artistID
				profile.IsClaimed = true
				profile.ClaimedAt = &now
			}
		}

		status, text := profileclaim.StatusApproved, response
		if decision == profileclaim.DecisionAutoReject {
			status, text = profileclaim.StatusRejected, reason.Message
		}
		resolved, err := s.profiles.ResolveClaim(txCtx, claim.ID, status, text, now)
		if err != nil {
			return err
		}
		if !resolved {
			return profileclaim.ErrClaimResolved
		}

		claim.Status = status
		claim.GalleryResponse = text
		claim.ResolvedAt = &now
		claim.UpdatedAt = now
		res = claimResolution{claim: claim, profile: profile, reason: reason}
		return nil
	}); err != nil {
		s.logRefusal(logCtx, "profile claim approval refused", err)
		return ports.ProfileClaim{}, err
	}

	s.notifyClaimOutcome(logCtx, res)

	if res.reason != nil {
		logging.Info(logCtx, "profile claim auto-rejected", slog.String("reason", res.reason.Message))
		return res.claim, res.reason
	}
	logging.Info(logCtx, "profile claim approved", slog.String("profile_id", res.profile.ID))
	return res.claim, nil
}

// RejectProfileClaim marks a pending claim rejected. The profile is left untouched.
func (s *Service) RejectProfileClaim(ctx context.Context, actorID string, claimID string, reason string) (ports.ProfileClaim, error) {
	if err := s.checkCall(ctx); err != nil {
		return ports.ProfileClaim{}, err
	}

	actorID = strings.TrimSpace(actorID)
	claimID = strings.TrimSpace(claimID)
	reason = strings.TrimSpace(reason)
	logCtx := s.logContext(ctx, slog.String("account_id", actorID), slog.String("claim_id", claimID))

	var res claimResolution
	if err := s.uow.WithTx(ctx, func(txCtx context.Context) error {
		claim, claimFound, profile, err := s.loadClaim(txCtx, claimID)
		if err != nil {
			return err
		}
		if err := profileclaim.EvaluateRejection(actorID, claimFound, claim.Status, profileState(profile)); err != nil {
			return err
		}

		now := s.now()
		resolved, err := s.profiles.ResolveClaim(txCtx, claim.ID, profileclaim.StatusRejected, reason, now)
		if err != nil {
			return err
		}
		if !resolved {
			return profileclaim.ErrClaimResolved
		}

		claim.Status = profileclaim.StatusRejected
		claim.GalleryResponse = reason
		claim.ResolvedAt = &now
		claim.UpdatedAt = now
		res = claimResolution{claim: claim, profile: profile}
		return nil
	}); err != nil {
		s.logRefusal(logCtx, "profile claim rejection refused", err)
		return ports.ProfileClaim{}, err
	}

	s.notifyClaimOutcome(logCtx, res)
	logging.Info(logCtx, "profile claim rejected")
	return res.claim, nil
}

// loadClaim reads a claim and the profile it targets. A claim whose profile is gone is
// reported as a missing profile.
func (s *Service) loadClaim(ctx context.Context, claimID string) (ports.ProfileClaim, bool, ports.ArtistProfile, error) {
	if claimID == "" {
		return ports.ProfileClaim{}, false, ports.ArtistProfile{}, nil
	}

	claim, err := s.profiles.GetClaim(ctx, claimID)
	if err != nil {
		if errors.Is(err, ports.ErrProfileClaimNotFound) {
			return ports.ProfileClaim{}, false, ports.ArtistProfile{}, nil
		}
		return ports.ProfileClaim{}, false, ports.ArtistProfile{}, err
	}

	profile, err := s.profiles.GetProfile(ctx, claim.ProfileID)
	if err != nil {
		if errors.Is(err, ports.ErrArtistProfileNotFound) {
			return ports.ProfileClaim{}, false, ports.ArtistProfile{}, profileclaim.ErrProfileNotFound
		}
		return ports.ProfileClaim{}, false, ports.ArtistProfile{}, err
	}
	return claim, true, profile, nil
}

func (s *Service) notifyClaimOutcome(ctx context.Context, res claimResolution) {
	n := ports.Notification{
		AccountID:        res.claim.ArtistAccountID,
		RelatedAccountID: &res.profile.CreatedByAccountID,
		Metadata: map[string]any{
			"claim_id":     res.claim.ID,
			"profile_id":   res.profile.ID,
			"profile_name": res.profile.Name,
		},
	}

	if res.claim.Status == profileclaim.StatusApproved {
		n.Type = NotificationProfileClaimApproved
		n.Title = "Artist profile claim approved"
		n.Message = fmt.Sprintf("Your claim on the artist profile %q was approved.", res.profile.Name)
	} else {
		n.Type = NotificationProfileClaimRejected
		n.Title = "Artist profile claim rejected"
		n.Message = fmt.Sprintf("Your claim on the artist profile %q was rejected.", res.profile.Name)
	}
	if res.claim.GalleryResponse != "" {
		n.Message += " " + res.claim.GalleryResponse
		n.Metadata["gallery_response"] = res.claim.GalleryResponse
	}

	s.notifyBestEffort(ctx, n)
}
