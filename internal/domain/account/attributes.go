package account

import (
	"encoding/json"
	"fmt"
	"strings"
)

const (
	attrRole    = "role"
	attrIsAdmin = "is_admin"
)

// Profile is the typed view of the attributes blob. Nothing past the repository boundary
// reads the raw blob directly.
type Profile struct {
	Role    Role
	IsAdmin bool
}

// ParseAttributes decodes the stored attributes. A missing or unrecognised role resolves to
// RoleNone; a non-boolean admin flag resolves to false.
func ParseAttributes(raw []byte) (Profile, error) {
	if len(strings.TrimSpace(string(raw))) == 0 || string(raw) == "null" {
		return Profile{}, nil
	}

	var attrs map[string]any
	if err := json.Unmarshal(raw, &attrs); err != nil {
		return Profile{}, fmt.Errorf("%w: %v", ErrInvalidAttributes, err)
	}
	return profileFromMap(attrs), nil
}

func profileFromMap(attrs map[string]any) Profile {
	var p Profile
	if rawRole, ok := attrs[attrRole].(string); ok {
		if role, err := ParseRole(rawRole); err == nil {
			p.Role = role
		}
	}
	if admin, ok := attrs[attrIsAdmin].(bool); ok {
		p.IsAdmin = admin
	}
	return p
}

// WithRole returns raw with the role key replaced, keeping every other key intact.
func WithRole(raw []byte, role Role) ([]byte, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRole, string(role))
	}

	attrs := map[string]any{}
	if len(strings.TrimSpace(string(raw))) > 0 && string(raw) != "null" {
		if err := json.Unmarshal(raw, &attrs); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAttributes, err)
		}
		if attrs == nil {
			attrs = map[string]any{}
		}
	}
	attrs[attrRole] = string(role)

	out, err := json.Marshal(attrs)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// RoleKey is the JSON key holding the role, for repository-side JSON queries.
func RoleKey() string {
	return attrRole
}
