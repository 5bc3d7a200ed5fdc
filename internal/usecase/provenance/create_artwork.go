package provenance

import (
	"context"
	"log/slog"
	"strings"

	"provenance/internal/bootstrap/logging"
	"provenance/internal/domain/certificate"
	"provenance/internal/ports"
)

// CreateArtwork registers an artwork posted by posterID. The certificate it starts with
// depends on the poster's role: artists self-certify, collectors and galleries start the
// claim pipeline. A same-named artist account is attached as a hint only.
func (s *Service) CreateArtwork(ctx context.Context, posterID string, input CreateArtworkInput) (ports.Artwork, error) {
	if err := s.checkCall(ctx); err != nil {
		return ports.Artwork{}, err
	}
	if s.numbers == nil {
		return ports.Artwork{}, errNumberGeneratorMissing
	}

	posterID = strings.TrimSpace(posterID)
	input.Title = strings.TrimSpace(input.Title)
	input.ArtistName = strings.TrimSpace(input.ArtistName)

	poster, err := s.requireActor(ctx, posterID)
	if err != nil {
		return ports.Artwork{}, err
	}
	initial, err := certificate.InitialFor(poster.Profile.Role)
	if err != nil {
		return ports.Artwork{}, err
	}
	if input.Title == "" {
		return ports.Artwork{}, ErrTitleRequired
	}
	if input.ArtistName == "" {
		if !initial.SelfPosted {
			return ports.Artwork{}, ErrArtistNameRequired
		}
		input.ArtistName = poster.Account.DisplayName
	}

	logCtx := s.logContext(ctx, slog.String("account_id", posterID))

	// Outside the transaction: a failing database generator would poison it.
	number, err := s.numbers.Generate(logCtx)
	if err != nil {
		return ports.Artwork{}, err
	}

	var created ports.Artwork
	if err := s.uow.WithTx(ctx, func(txCtx context.Context) error {
		artwork := ports.Artwork{
			ID:                s.newID(),
			AccountID:         posterID,
			Title:             input.Title,
			ArtistName:        input.ArtistName,
			Year:              strings.TrimSpace(input.Year),
			Medium:            strings.TrimSpace(input.Medium),
			Description:       strings.TrimSpace(input.Description),
			CertificateNumber: number,
			CertificateType:   initial.Type,
			CertificateStatus: initial.Status,
		}

		if initial.SelfPosted {
			self := posterID
			artwork.ArtistAccountID = &self
		} else {
			hint, found, err := s.accounts.FindArtistByName(txCtx, input.ArtistName)
			if err != nil {
				return err
			}
			if found {
				artwork.ArtistAccountID = &hint.ID
			}
		}

		now := s.now()
		artwork.CreatedAt = now
		artwork.UpdatedAt = now

		row, err := s.artworks.CreateArtwork(txCtx, artwork)
		if err != nil {
			return err
		}
		created = row
		return nil
	}); err != nil {
		return ports.Artwork{}, err
	}

	s.recordStatusBestEffort(logCtx, created.ID, created.CertificateStatus)
	logging.Info(
		logCtx,
		"artwork created",
		slog.String("artwork_id", created.ID),
		slog.String("certificate_number", created.CertificateNumber),
		slog.String("certificate_status", string(created.CertificateStatus)),
		slog.String("poster_role", poster.Profile.Role.String()),
		slog.Bool("artist_hint", !initial.SelfPosted && created.ArtistAccountID != nil),
	)
	return created, nil
}
