package provenance

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"provenance/internal/bootstrap/logging"
	"provenance/internal/domain/certificate"
	"provenance/internal/ports"
)

// ClaimCertificate lets an artist claim a poster-submitted artwork. The status guard is a
// conditional update, so of two concurrent claims exactly one succeeds.
func (s *Service) ClaimCertificate(ctx context.Context, artworkID string, actorID string) error {
	if err := s.checkCall(ctx); err != nil {
		return err
	}

	artworkID = strings.TrimSpace(artworkID)
	actorID = strings.TrimSpace(actorID)
	logCtx := s.logContext(ctx, slog.String("artwork_id", artworkID), slog.String("account_id", actorID))

	var (
		claimed ports.Artwork
		artist  ports.Account
	)
	if err := s.uow.WithTx(ctx, func(txCtx context.Context) error {
		caller, err := s.loadActor(txCtx, actorID)
		if err != nil {
			return err
		}
		artwork, found, err := s.loadArtwork(txCtx, artworkID)
		if err != nil {
			return err
		}

		if err := certificate.EvaluateClaim(certificate.ClaimCheck{
			ActorID:      actorID,
			ActorFound:   caller.Found,
			ActorRole:    caller.Profile.Role,
			ArtworkFound: found,
			Status:       artwork.CertificateStatus,
		}); err != nil {
			return err
		}
		if !certificate.CanAdvance(artwork.CertificateStatus, certificate.StatusPendingVerification) {
			return certificate.ErrNotClaimable
		}

		now := s.now()
		updated, err := s.artworks.TransitionCertificate(txCtx, ports.CertificateTransition{
			ArtworkID:       artwork.ID,
			From:            certificate.StatusPendingArtistClaim,
			To:              certificate.StatusPendingVerification,
			ArtistAccountID: &actorID,
			ClaimedAt:       &now,
			UpdatedAt:       now,
		})
		if err != nil {
			return err
		}
		if !updated {
			// Another claim committed between our read and the update.
			return certificate.ErrNotClaimable
		}

		artwork.ArtistAccountID = &actorID
		artwork.ClaimedByArtistAt = &now
		artwork.CertificateStatus = certificate.StatusPendingVerification
		artwork.UpdatedAt = now
		claimed = artwork
		artist = caller.Account
		return nil
	}); err != nil {
		s.logRefusal(logCtx, "certificate claim refused", err)
		return err
	}

	s.recordStatusBestEffort(logCtx, claimed.ID, claimed.CertificateStatus)
	s.notifyBestEffort(logCtx, ports.Notification{
		AccountID:        claimed.AccountID,
		Type:             NotificationCertificateClaimed,
		Title:            "Certificate claimed",
		Message:          fmt.Sprintf("%s claimed the certificate for %q (%s). Verify the claim to finalize it.", artist.DisplayName, claimed.Title, claimed.CertificateNumber),
		ArtworkID:        &claimed.ID,
		RelatedAccountID: &artist.ID,
		Metadata: map[string]any{
			"artist_name":        artist.DisplayName,
			"certificate_number": claimed.CertificateNumber,
		},
	})

	logging.Info(logCtx, "certificate claimed", slog.String("certificate_number", claimed.CertificateNumber))
	return nil
}
