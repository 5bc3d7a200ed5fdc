package seed

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"provenance/internal/ports"
	"provenance/internal/usecase/provenance"
)

const sampleFixture = `
version = 1

[[accounts]]
ref = "maya"
email = "maya@example.com"
display_name = "Maya Lin"
role = "artist"

[[accounts]]
ref = "north"
email = "north@example.com"
display_name = "North Gallery"
role = "gallery"

[[artworks]]
poster = "north"
title = "Dawn Study"
artist_name = "Maya Lin"
claimed_by = "maya"
verify = true

[[artworks]]
poster = "north"
title = "Unclaimed"
artist_name = "Someone Else"

[[artist_profiles]]
gallery = "north"
name = "Maya Lin"
`

type call struct {
	op    string
	actor string
	arg   string
}

type fakeRegistry struct {
	calls   []call
	failOn  string
	counter int
}

func (f *fakeRegistry) next(prefix string) string {
	f.counter++
	return fmt.Sprintf("%s-%d", prefix, f.counter)
}

func (f *fakeRegistry) fail(op string) error {
	if f.failOn == op {
		return errors.New(op + " failed")
	}
	return nil
}

func (f *fakeRegistry) CreateAccount(_ context.Context, input provenance.CreateAccountInput) (provenance.AccountView, error) {
	f.calls = append(f.calls, call{op: "account", arg: input.Email})
	if err := f.fail("account"); err != nil {
		return provenance.AccountView{}, err
	}
	return provenance.AccountView{ID: f.next("acct"), Email: input.Email}, nil
}

func (f *fakeRegistry) CreateArtwork(_ context.Context, posterID string, input provenance.CreateArtworkInput) (ports.Artwork, error) {
	f.calls = append(f.calls, call{op: "artwork", actor: posterID, arg: input.Title})
	if err := f.fail("artwork"); err != nil {
		return ports.Artwork{}, err
	}
	return ports.Artwork{ID: f.next("art"), Title: input.Title}, nil
}

func (f *fakeRegistry) ClaimCertificate(_ context.Context, artworkID string, actorID string) error {
	f.calls = append(f.calls, call{op: "claim", actor: actorID, arg: artworkID})
	return f.fail("claim")
}

func (f *fakeRegistry) VerifyCertificate(_ context.Context, artworkID string, actorID string) error {
	f.calls = append(f.calls, call{op: "verify", actor: actorID, arg: artworkID})
	return f.fail("verify")
}

func (f *fakeRegistry) CreateArtistProfile(_ context.Context, actorID string, input provenance.CreateArtistProfileInput) (ports.ArtistProfile, error) {
	f.calls = append(f.calls, call{op: "profile", actor: actorID, arg: input.Name})
	return ports.ArtistProfile{ID: f.next("profile"), Name: input.Name}, f.fail("profile")
}

func TestApplyResolvesRefs(t *testing.T) {
	fixture, err := Parse([]byte(sampleFixture))
	require.NoError(t, err)

	registry := &fakeRegistry{}
	summary, err := Apply(context.Background(), registry, fixture)
	require.NoError(t, err)
	require.Equal(t, Summary{Accounts: 2, Artworks: 2, Claimed: 1, Verified: 1, Profiles: 1}, summary)

	require.Equal(t, []call{
		{op: "account", arg: "maya@example.com"},
		{op: "account", arg: "north@example.com"},
		{op: "artwork", actor: "acct-2", arg: "Dawn Study"},
		{op: "claim", actor: "acct-1", arg: "art-3"},
		{op: "verify", actor: "acct-2", arg: "art-3"},
		{op: "artwork", actor: "acct-2", arg: "Unclaimed"},
		{op: "profile", actor: "acct-2", arg: "Maya Lin"},
	}, registry.calls)
}

func TestApplyStopsAtFirstFailure(t *testing.T) {
	fixture, err := Parse([]byte(sampleFixture))
	require.NoError(t, err)

	registry := &fakeRegistry{failOn: "claim"}
	summary, err := Apply(context.Background(), registry, fixture)
	require.ErrorContains(t, err, `seed claim of "Dawn Study"`)
	require.Equal(t, Summary{Accounts: 2, Artworks: 1}, summary)
}

func TestParseRejectsBadFixtures(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"version", `version = 2`},
		{"unknown field", "version = 1\nowner = \"x\""},
		{"missing ref", "version = 1\n[[accounts]]\nemail = \"a@b.c\""},
		{"duplicate ref", "version = 1\n[[accounts]]\nref = \"a\"\n[[accounts]]\nref = \"a\""},
		{"unknown poster", "version = 1\n[[artworks]]\nposter = \"ghost\"\ntitle = \"x\""},
		{"verify without claim", "version = 1\n[[accounts]]\nref = \"g\"\n[[artworks]]\nposter = \"g\"\ntitle = \"x\"\nverify = true"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.raw))
			require.Error(t, err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.toml")
	require.NoError(t, os.WriteFile(path, []byte(sampleFixture), 0o644))

	fixture, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, fixture.Accounts, 2)
	require.Len(t, fixture.Artworks, 2)

	_, err = LoadFile("")
	require.Error(t, err)
	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
}
