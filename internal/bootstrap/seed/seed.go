// Package seed loads demo accounts and artworks from a TOML fixture.
package seed

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"provenance/internal/bootstrap/logging"
	"provenance/internal/errs"
	"provenance/internal/ports"
	"provenance/internal/usecase/provenance"
)

type accountFixture struct {
	Ref         string `toml:"ref"`
	Email       string `toml:"email"`
	DisplayName string `toml:"display_name"`
	Role        string `toml:"role"`
}

type artworkFixture struct {
	Poster      string `toml:"poster"`
	Title       string `toml:"title"`
	ArtistName  string `toml:"artist_name"`
	Year        string `toml:"year"`
	Medium      string `toml:"medium"`
	Description string `toml:"description"`
	// ClaimedBy is an account ref that claims the certificate right after posting.
	ClaimedBy string `toml:"claimed_by"`
	Verify    bool   `toml:"verify"`
}

type profileFixture struct {
	Gallery string `toml:"gallery"`
	Name    string `toml:"name"`
	Bio     string `toml:"bio"`
}

type Fixture struct {
	Version  int              `toml:"version"`
	Accounts []accountFixture `toml:"accounts"`
	Artworks []artworkFixture `toml:"artworks"`
	Profiles []profileFixture `toml:"artist_profiles"`
}

// Registry is the part of the provenance service a fixture drives.
type Registry interface {
	CreateAccount(ctx context.Context, input provenance.CreateAccountInput) (provenance.AccountView, error)
	CreateArtwork(ctx context.Context, posterID string, input provenance.CreateArtworkInput) (ports.Artwork, error)
	ClaimCertificate(ctx context.Context, artworkID string, actorID string) error
	VerifyCertificate(ctx context.Context, artworkID string, actorID string) error
	CreateArtistProfile(ctx context.Context, actorID string, input provenance.CreateArtistProfileInput) (ports.ArtistProfile, error)
}

type Summary struct {
	Accounts int
	Artworks int
	Claimed  int
	Verified int
	Profiles int
}

func LoadFile(path string) (Fixture, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Fixture{}, errors.New("seed file is required")
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Fixture{}, errs.Wrapf(err, "read seed file %s", path)
	}
	return Parse(raw)
}

func Parse(raw []byte) (Fixture, error) {
	var fixture Fixture
	decoder := toml.NewDecoder(bytes.NewReader(raw))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&fixture); err != nil {
		return Fixture{}, errs.Wrap(err, "decode seed fixture")
	}
	if err := fixture.validate(); err != nil {
		return Fixture{}, err
	}
	return fixture, nil
}

func (f Fixture) validate() error {
	if f.Version != 1 {
		return fmt.Errorf("unsupported seed version %d: expected version = 1", f.Version)
	}

	refs := make(map[string]struct{}, len(f.Accounts))
	for i, acct := range f.Accounts {
		ref := strings.TrimSpace(acct.Ref)
		if ref == "" {
			return fmt.Errorf("accounts[%d].ref is required", i)
		}
		if _, dup := refs[ref]; dup {
			return fmt.Errorf("accounts[%d].ref %q is duplicated", i, ref)
		}
		refs[ref] = struct{}{}
	}

	known := func(field string, ref string) error {
		if _, ok := refs[strings.TrimSpace(ref)]; !ok {
			return fmt.Errorf("%s references unknown account %q", field, ref)
		}
		return nil
	}
	for i, art := range f.Artworks {
		if err := known(fmt.Sprintf("artworks[%d].poster", i), art.Poster); err != nil {
			return err
		}
		if art.ClaimedBy != "" {
			if err := known(fmt.Sprintf("artworks[%d].claimed_by", i), art.ClaimedBy); err != nil {
				return err
			}
		}
		if art.Verify && art.ClaimedBy == "" {
			return fmt.Errorf("artworks[%d]: verify requires claimed_by", i)
		}
	}
	for i, profile := range f.Profiles {
		if err := known(fmt.Sprintf("artist_profiles[%d].gallery", i), profile.Gallery); err != nil {
			return err
		}
	}
	return nil
}

// Apply creates the fixture through the registry so every record passes the same rules as live traffic.
// It stops at the first failure; records created before it stay.
func Apply(ctx context.Context, registry Registry, fixture Fixture) (Summary, error) {
	if ctx == nil {
		return Summary{}, errors.New("context is required")
	}
	if registry == nil {
		return Summary{}, errors.New("registry is required")
	}

	logCtx := logging.WithAttrs(ctx, slog.String("component", "bootstrap.seed"))
	var summary Summary

	ids := make(map[string]string, len(fixture.Accounts))
	for _, item := range fixture.Accounts {
		view, err := registry.CreateAccount(ctx, provenance.CreateAccountInput{
			Email:       item.Email,
			DisplayName: item.DisplayName,
			Role:        item.Role,
		})
		if err != nil {
			return summary, errs.Wrapf(err, "seed account %s", item.Ref)
		}
		ids[strings.TrimSpace(item.Ref)] = view.ID
		summary.Accounts++
	}

	for _, item := range fixture.Artworks {
		posterID := ids[strings.TrimSpace(item.Poster)]
		artwork, err := registry.CreateArtwork(ctx, posterID, provenance.CreateArtworkInput{
			Title:       item.Title,
			ArtistName:  item.ArtistName,
			Year:        item.Year,
			Medium:      item.Medium,
			Description: item.Description,
		})
		if err != nil {
			return summary, errs.Wrapf(err, "seed artwork %q", item.Title)
		}
		summary.Artworks++

		if item.ClaimedBy == "" {
			continue
		}
		if err := registry.ClaimCertificate(ctx, artwork.ID, ids[strings.TrimSpace(item.ClaimedBy)]); err != nil {
			return summary, errs.Wrapf(err, "seed claim of %q", item.Title)
		}
		summary.Claimed++

		if item.Verify {
			if err := registry.VerifyCertificate(ctx, artwork.ID, posterID); err != nil {
				return summary, errs.Wrapf(err, "seed verification of %q", item.Title)
			}
			summary.Verified++
		}
	}

	for _, item := range fixture.Profiles {
		if _, err := registry.CreateArtistProfile(ctx, ids[strings.TrimSpace(item.Gallery)], provenance.CreateArtistProfileInput{
			Name: item.Name,
			Bio:  item.Bio,
		}); err != nil {
			return summary, errs.Wrapf(err, "seed artist profile %q", item.Name)
		}
		summary.Profiles++
	}

	logging.Info(logCtx, "seed applied",
		slog.Int("accounts", summary.Accounts),
		slog.Int("artworks", summary.Artworks),
		slog.Int("claimed", summary.Claimed),
		slog.Int("verified", summary.Verified),
		slog.Int("profiles", summary.Profiles),
	)
	return summary, nil
}
