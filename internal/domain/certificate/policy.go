package certificate

import (
	"strings"

	"provenance/internal/domain/account"
)

// ClaimCheck carries what the claim preconditions look at. ArtworkFound is false when the
// artwork row does not exist.
type ClaimCheck struct {
	ActorID      string
	ActorFound   bool
	ActorRole    account.Role
	ArtworkFound bool
	Status       Status
}

// EvaluateClaim checks, in order: signed in, account exists, role is artist, artwork exists,
// status is pending_artist_claim.
func EvaluateClaim(in ClaimCheck) error {
	if strings.TrimSpace(in.ActorID) == "" {
		return ErrNotSignedIn
	}
	if !in.ActorFound {
		return ErrAccountNotFound
	}
	if in.ActorRole != account.RoleArtist {
		return ErrClaimRole
	}
	if !in.ArtworkFound {
		return ErrArtworkNotFound
	}
	if in.Status != StatusPendingArtistClaim {
		return ErrNotClaimable
	}
	return nil
}

// VerifyCheck carries what the verify preconditions look at.
type VerifyCheck struct {
	ActorID        string
	ActorFound     bool
	ActorRole      account.Role
	ArtworkFound   bool
	ArtworkOwnerID string
	Status         Status
}

// EvaluateVerify checks, in order: signed in, account exists, role is collector or gallery,
// actor is the original poster, artwork exists, status is pending_verification.
// Ownership can only be judged against an existing row, so a missing artwork skips straight
// to ErrArtworkNotFound.
func EvaluateVerify(in VerifyCheck) error {
	if strings.TrimSpace(in.ActorID) == "" {
		return ErrNotSignedIn
	}
	if !in.ActorFound {
		return ErrAccountNotFound
	}
	if !in.ActorRole.IsPoster() {
		return ErrVerifyRole
	}
	if in.ArtworkFound && in.ArtworkOwnerID != in.ActorID {
		return ErrNotOriginalPoster
	}
	if !in.ArtworkFound {
		return ErrArtworkNotFound
	}
	if in.Status != StatusPendingVerification {
		return ErrNotAwaitingVerify
	}
	return nil
}
