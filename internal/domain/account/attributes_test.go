package account

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseAttributes(t *testing.T) {
	cases := []struct {
		name  string
		raw   string
		want  Profile
		isErr bool
	}{
		{name: "empty", raw: "", want: Profile{}},
		{name: "null", raw: "null", want: Profile{}},
		{name: "artist admin", raw: `{"role":"artist","is_admin":true}`, want: Profile{Role: RoleArtist, IsAdmin: true}},
		{name: "mixed case role", raw: `{"role":" Gallery "}`, want: Profile{Role: RoleGallery}},
		{name: "unknown role", raw: `{"role":"curator"}`, want: Profile{}},
		{name: "non string role", raw: `{"role":7,"is_admin":"yes"}`, want: Profile{}},
		{name: "broken json", raw: `{"role":`, isErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseAttributes([]byte(tc.raw))
			if tc.isErr {
				if !errors.Is(err, ErrInvalidAttributes) {
					t.Fatalf("ParseAttributes() error = %v, want ErrInvalidAttributes", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAttributes() error = %v", err)
			}
			if got != tc.want {
				t.Fatalf("ParseAttributes() = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestWithRoleKeepsOtherKeys(t *testing.T) {
	out, err := WithRole([]byte(`{"is_admin":true,"bio":"x"}`), RoleCollector)
	if err != nil {
		t.Fatalf("WithRole() error = %v", err)
	}

	var attrs map[string]any
	if err := json.Unmarshal(out, &attrs); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if attrs["role"] != "collector" || attrs["bio"] != "x" || attrs["is_admin"] != true {
		t.Fatalf("attrs = %v", attrs)
	}

	if _, err := WithRole(nil, RoleNone); !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("WithRole(none) error = %v, want ErrInvalidRole", err)
	}
}

func TestParseRole(t *testing.T) {
	if role, err := ParseRole("ARTIST"); err != nil || role != RoleArtist {
		t.Fatalf("ParseRole() = %q, %v", role, err)
	}
	if _, err := ParseRole("admin"); !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("ParseRole(admin) error = %v", err)
	}
	if !RoleGallery.IsPoster() || RoleArtist.IsPoster() {
		t.Fatalf("IsPoster() mismatch")
	}
}
