package account

import (
	"fmt"
	"strings"
)

// Role is the account kind that decides certificate semantics for everything the account posts.
type Role string

const (
	RoleNone      Role = ""
	RoleArtist    Role = "artist"
	RoleCollector Role = "collector"
	RoleGallery   Role = "gallery"
)

func (r Role) String() string {
	if r == RoleNone {
		return "none"
	}
	return string(r)
}

func (r Role) Valid() bool {
	switch r {
	case RoleArtist, RoleCollector, RoleGallery:
		return true
	default:
		return false
	}
}

// IsPoster reports whether the role posts artworks that go through the claim/verify pipeline.
func (r Role) IsPoster() bool {
	return r == RoleCollector || r == RoleGallery
}

// ParseRole accepts user input ("Gallery", " artist ") and rejects anything outside the enum.
func ParseRole(raw string) (Role, error) {
	role := Role(strings.ToLower(strings.TrimSpace(raw)))
	if !role.Valid() {
		return RoleNone, fmt.Errorf("%w: %q", ErrInvalidRole, raw)
	}
	return role, nil
}
