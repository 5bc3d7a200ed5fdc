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

// VerifyCertificate lets the original poster confirm an artist's claim. The certificate
// becomes verified and its type is normalised to authenticity.
func (s *Service) VerifyCertificate(ctx context.Context, artworkID string, actorID string) error {
	if err := s.checkCall(ctx); err != nil {
		return err
	}

	artworkID = strings.TrimSpace(artworkID)
	actorID = strings.TrimSpace(actorID)
	logCtx := s.logContext(ctx, slog.String("artwork_id", artworkID), slog.String("account_id", actorID))

	var (
		verified ports.Artwork
		poster   ports.Account
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

		if err := certificate.EvaluateVerify(certificate.VerifyCheck{
			ActorID:        actorID,
			ActorFound:     caller.Found,
			ActorRole:      caller.Profile.Role,
			ArtworkFound:   found,
			ArtworkOwnerID: artwork.AccountID,
			Status:         artwork.CertificateStatus,
		}); err != nil {
			return err
		}
		if !certificate.CanAdvance(artwork.CertificateStatus, certificate.StatusVerified) {
			return certificate.ErrNotAwaitingVerify
		}

		now := s.now()
		updated, err := s.artworks.TransitionCertificate(txCtx, ports.CertificateTransition{
			ArtworkID:  artwork.ID,
			From:       certificate.StatusPendingVerification,
			To:         certificate.StatusVerified,
			OwnerID:    actorID,
			VerifiedAt: &now,
			Type:       certificate.TypeAuthenticity,
			UpdatedAt:  now,
		})
		if err != nil {
			return err
		}
		if !updated {
			return certificate.ErrNotAwaitingVerify
		}

		artwork.VerifiedByOwnerAt = &now
		artwork.CertificateStatus = certificate.StatusVerified
		artwork.CertificateType = certificate.TypeAuthenticity
		artwork.UpdatedAt = now
		verified = artwork
		poster = caller.Account
		return nil
	}); err != nil {
		s.logRefusal(logCtx, "certificate verification refused", err)
		return err
	}

	s.recordStatusBestEffort(logCtx, verified.ID, verified.CertificateStatus)
	if verified.ArtistAccountID != nil && *verified.ArtistAccountID != "" {
		s.notifyBestEffort(logCtx, ports.Notification{
			AccountID:        *verified.ArtistAccountID,
			Type:             NotificationCertificateVerified,
			Title:            "Certificate verified",
			Message:          fmt.Sprintf("%s verified your claim on %q (%s).", poster.DisplayName, verified.Title, verified.CertificateNumber),
			ArtworkID:        &verified.ID,
			RelatedAccountID: &poster.ID,
			Metadata: map[string]any{
				"certificate_number": verified.CertificateNumber,
				"verified_by":        poster.DisplayName,
			},
		})
	}

	logging.Info(logCtx, "certificate verified", slog.String("certificate_number", verified.CertificateNumber))
	return nil
}
