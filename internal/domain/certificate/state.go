package certificate

import (
	"fmt"
	"strings"

	"provenance/internal/domain/account"
)

type Status string

const (
	StatusPendingArtistClaim  Status = "pending_artist_claim"
	StatusPendingVerification Status = "pending_verification"
	StatusVerified            Status = "verified"
)

type Type string

const (
	TypeAuthenticity Type = "authenticity"
	TypeShow         Type = "show"
	TypeOwnership    Type = "ownership"
)

// rank orders statuses; a certificate only ever moves to a higher rank.
var rank = map[Status]int{
	StatusPendingArtistClaim:  1,
	StatusPendingVerification: 2,
	StatusVerified:            3,
}

func (s Status) Valid() bool {
	_, ok := rank[s]
	return ok
}

func (s Status) Terminal() bool {
	return s == StatusVerified
}

// ParseStatus accepts a stored or user-supplied status value.
func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
	}
	return s, nil
}

func (t Type) Valid() bool {
	switch t {
	case TypeAuthenticity, TypeShow, TypeOwnership:
		return true
	default:
		return false
	}
}

// CanAdvance reports whether from -> to is one legal forward step.
func CanAdvance(from, to Status) bool {
	switch from {
	case StatusPendingArtistClaim:
		return to == StatusPendingVerification
	case StatusPendingVerification:
		return to == StatusVerified
	default:
		return false
	}
}

// Rank orders statuses along the forward path; later statuses rank higher.
func Rank(s Status) int {
	return rank[s]
}

// Initial is the certificate a new artwork starts with.
type Initial struct {
	Status Status
	Type   Type
	// SelfPosted is true when the poster is the artist: the artwork skips claim and verify.
	SelfPosted bool
}

// InitialFor derives the starting certificate from the poster's role.
func InitialFor(role account.Role) (Initial, error) {
	switch role {
	case account.RoleArtist:
		return Initial{Status: StatusVerified, Type: TypeAuthenticity, SelfPosted: true}, nil
	case account.RoleCollector:
		return Initial{Status: StatusPendingArtistClaim, Type: TypeOwnership}, nil
	case account.RoleGallery:
		return Initial{Status: StatusPendingArtistClaim, Type: TypeShow}, nil
	default:
		return Initial{}, ErrOnboardingRequired
	}
}
