package ports

import (
	"context"
	"errors"
	"time"

	"provenance/internal/domain/profileclaim"
)

var (
	ErrArtistProfileNotFound = errors.New("artist profile not found")
	ErrProfileClaimNotFound  = errors.New("profile claim not found")
)

type ArtistProfile struct {
	ID                 string
	Name               string
	Bio                string
	CreatedByAccountID string
	UserID             *string
	IsClaimed          bool
	ClaimedAt          *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

type ProfileClaim struct {
	ID              string
	ProfileID       string
	ArtistAccountID string
	Status          profileclaim.Status
	Message         string
	GalleryResponse string
	ResolvedAt      *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type ArtistProfileRepository interface {
	CreateProfile(ctx context.Context, profile ArtistProfile) (ArtistProfile, error)
	GetProfile(ctx context.Context, profileID string) (ArtistProfile, error)
	// HasClaimedProfile reports whether userID is linked to any profile other than excludeProfileID.
	HasClaimedProfile(ctx context.Context, userID string, excludeProfileID string) (bool, error)
	// LinkProfile sets the owner only while the profile is still unclaimed; false means someone got there first.
	LinkProfile(ctx context.Context, profileID string, userID string, claimedAt time.Time) (bool, error)

	CreateClaim(ctx context.Context, claim ProfileClaim) (ProfileClaim, error)
	GetClaim(ctx context.Context, claimID string) (ProfileClaim, error)
	ListClaims(ctx context.Context, profileID string) ([]ProfileClaim, error)
	HasPendingClaim(ctx context.Context, profileID string, artistAccountID string) (bool, error)
	// ResolveClaim moves a pending claim to status; false means it was no longer pending.
	ResolveClaim(ctx context.Context, claimID string, status profileclaim.Status, response string, resolvedAt time.Time) (bool, error)
}
