package provenance

import (
	"context"
	"log/slog"
	"strings"

	"provenance/internal/bootstrap/logging"
	"provenance/internal/domain/certificate"
	"provenance/internal/errs"
	"provenance/internal/ports"
)

type ArtworkListFilter struct {
	AccountID       string
	ArtistAccountID string
	Status          string
	Limit           int
}

func (s *Service) GetArtwork(ctx context.Context, artworkID string) (ports.Artwork, error) {
	if err := s.checkCall(ctx); err != nil {
		return ports.Artwork{}, err
	}

	artwork, found, err := s.loadArtwork(ctx, strings.TrimSpace(artworkID))
	if err != nil {
		return ports.Artwork{}, err
	}
	if !found {
		return ports.Artwork{}, certificate.ErrArtworkNotFound
	}
	return artwork, nil
}

func (s *Service) ListArtworks(ctx context.Context, filter ArtworkListFilter) ([]ports.Artwork, error) {
	if err := s.checkCall(ctx); err != nil {
		return nil, err
	}

	query := ports.ArtworkFilter{
		AccountID:       strings.TrimSpace(filter.AccountID),
		ArtistAccountID: strings.TrimSpace(filter.ArtistAccountID),
		Limit:           filter.Limit,
	}
	if strings.TrimSpace(filter.Status) != "" {
		status, err := certificate.ParseStatus(filter.Status)
		if err != nil {
			return nil, errs.E(errs.KindInvalid, "Unknown certificate status").WithCause(err)
		}
		query.Status = status
	}
	return s.artworks.ListArtworks(ctx, query)
}

// PendingClaims lists artworks still waiting for an artist to claim them.
func (s *Service) PendingClaims(ctx context.Context, limit int) ([]ports.Artwork, error) {
	return s.ListArtworks(ctx, ArtworkListFilter{Status: string(certificate.StatusPendingArtistClaim), Limit: limit})
}

// CertificateStatus answers from the status cache when it can and falls back to the artwork row.
func (s *Service) CertificateStatus(ctx context.Context, artworkID string) (certificate.Status, error) {
	if err := s.checkCall(ctx); err != nil {
		return "", err
	}

	artworkID = strings.TrimSpace(artworkID)
	key := cacheCertificateStatusKey(artworkID)
	if s.cache != nil && artworkID != "" {
		value, found, err := s.cache.Get(ctx, key)
		if err != nil {
			logging.Warn(s.logContext(ctx), "cache read failed", slog.String("key", key), slog.Any("err", errs.Loggable(err)))
		} else if found {
			if status, err := certificate.ParseStatus(value); err == nil {
				return status, nil
			}
		}
	}

	artwork, err := s.GetArtwork(ctx, artworkID)
	if err != nil {
		return "", err
	}
	s.recordStatusBestEffort(ctx, artwork.ID, artwork.CertificateStatus)
	return artwork.CertificateStatus, nil
}
