package ports

import (
	"context"
	"errors"
	"time"

	"provenance/internal/domain/certificate"
)

var ErrArtworkNotFound = errors.New("artwork not found")

type Artwork struct {
	ID                string
	AccountID         string
	ArtistAccountID   *string
	Title             string
	ArtistName        string
	Year              string
	Medium            string
	Description       string
	CertificateNumber string
	CertificateType   certificate.Type
	CertificateStatus certificate.Status
	ClaimedByArtistAt *time.Time
	VerifiedByOwnerAt *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type ArtworkFilter struct {
	AccountID       string
	ArtistAccountID string
	Status          certificate.Status
	Limit           int
}

// CertificateTransition is a compare-and-set on certificate_status. The update applies only
// while the row still has status From (and, when OwnerID is set, account_id = OwnerID).
// Nil pointer fields are left untouched.
type CertificateTransition struct {
	ArtworkID       string
	From            certificate.Status
	To              certificate.Status
	OwnerID         string
	ArtistAccountID *string
	ClaimedAt       *time.Time
	VerifiedAt      *time.Time
	Type            certificate.Type
	UpdatedAt       time.Time
}

type ArtworkRepository interface {
	CreateArtwork(ctx context.Context, artwork Artwork) (Artwork, error)
	GetArtwork(ctx context.Context, artworkID string) (Artwork, error)
	ListArtworks(ctx context.Context, filter ArtworkFilter) ([]Artwork, error)
	CertificateNumberExists(ctx context.Context, number string) (bool, error)
	// TransitionCertificate reports whether a row was updated.
	TransitionCertificate(ctx context.Context, transition CertificateTransition) (bool, error)
}

// CertificateNumberSource asks the database for a certificate number through a stored function.
type CertificateNumberSource interface {
	NextCertificateNumber(ctx context.Context, function string) (string, error)
}

// CertificateNumberGenerator produces a certificate number not used by any artwork.
type CertificateNumberGenerator interface {
	Generate(ctx context.Context) (string, error)
}
