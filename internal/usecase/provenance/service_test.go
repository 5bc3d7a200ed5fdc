package provenance

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	gormsqlite "github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"provenance/internal/domain/certificate"
	"provenance/internal/errs"
	"provenance/internal/infrastructure/cache"
	"provenance/internal/infrastructure/certnumber"
	"provenance/internal/infrastructure/persistence/db/model"
	"provenance/internal/infrastructure/persistence/db/repository"
	"provenance/internal/infrastructure/persistence/db/uow"
	"provenance/internal/ports"
)

type testEnv struct {
	svc      *Service
	db       *gorm.DB
	artworks *repository.ArtworkRepository
	cache    *cache.GormCache
}

func setupService(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(gormsqlite.Open(filepath.Join(t.TempDir(), "provenance.sqlite")), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(model.All()...); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}

	artworks := repository.NewArtworkRepository(db)
	numbers, err := certnumber.New(artworks, artworks, certnumber.Options{
		Prefix:      certificate.DefaultNumberPrefix,
		Length:      certificate.DefaultNumberLength,
		MaxAttempts: 10,
	})
	if err != nil {
		t.Fatalf("new certificate number generator: %v", err)
	}
	statusCache := cache.NewGormCache(db)

	svc := NewService(
		repository.NewAccountRepository(db),
		artworks,
		repository.NewNotificationRepository(db),
		repository.NewArtistProfileRepository(db),
		uow.NewUnitOfWork(db),
		statusCache,
		numbers,
	)
	return &testEnv{svc: svc, db: db, artworks: artworks, cache: statusCache}
}

func (e *testEnv) account(t *testing.T, name string, role string) AccountView {
	t.Helper()

	acct, err := e.svc.CreateAccount(context.Background(), CreateAccountInput{
		Email:       e.svc.newID() + "@example.test",
		DisplayName: name,
		Role:        role,
	})
	require.NoError(t, err)
	return acct
}

func (e *testEnv) post(t *testing.T, posterID string, title string, artistName string) ports.Artwork {
	t.Helper()

	artwork, err := e.svc.CreateArtwork(context.Background(), posterID, CreateArtworkInput{
		Title:      title,
		ArtistName: artistName,
		Year:       "2024",
		Medium:     "Oil on canvas",
	})
	require.NoError(t, err)
	return artwork
}

// seedArtwork writes an artwork in an arbitrary status, bypassing the creation policy.
func (e *testEnv) seedArtwork(t *testing.T, posterID string, status certificate.Status) ports.Artwork {
	t.Helper()

	now := time.Now().UTC()
	artwork, err := e.artworks.CreateArtwork(context.Background(), ports.Artwork{
		ID:                e.svc.newID(),
		AccountID:         posterID,
		Title:             "Seeded",
		ArtistName:        "Unknown",
		CertificateNumber: "PROV-" + e.svc.newID(),
		CertificateType:   certificate.TypeOwnership,
		CertificateStatus: status,
		CreatedAt:         now,
		UpdatedAt:         now,
	})
	require.NoError(t, err)
	return artwork
}

func (e *testEnv) notificationCount(t *testing.T) int64 {
	t.Helper()

	var count int64
	require.NoError(t, e.db.Model(&model.Notification{}).Count(&count).Error)
	return count
}

func (e *testEnv) notificationsFor(t *testing.T, accountID string) []ports.Notification {
	t.Helper()

	items, err := e.svc.ListNotifications(context.Background(), accountID, false, 0)
	require.NoError(t, err)
	return items
}

func TestResultOf(t *testing.T) {
	require.Equal(t, Result{Success: true}, ResultOf(nil))

	res := ResultOf(errs.Wrap(certificate.ErrNotClaimable, "claim certificate"))
	require.False(t, res.Success)
	require.Equal(t, "Certificate is not available for claiming", res.Error)
	require.Equal(t, errs.KindState, res.Kind)

	res = ResultOf(errors.New("database is locked"))
	require.Equal(t, Result{Success: false, Error: "internal error", Kind: errs.KindInternal}, res)
}

func TestCreateAccountAndSetRole(t *testing.T) {
	env := setupService(t)
	ctx := context.Background()

	acct := env.account(t, "Jane Doe", "")
	require.Equal(t, "none", acct.Role.String())

	_, err := env.svc.CreateAccount(ctx, CreateAccountInput{Email: acct.Email, DisplayName: "Other"})
	require.ErrorIs(t, err, ErrEmailTaken)

	_, err = env.svc.CreateArtwork(ctx, acct.ID, CreateArtworkInput{Title: "Untitled", ArtistName: "Jane Doe"})
	require.ErrorIs(t, err, certificate.ErrOnboardingRequired)

	other := env.account(t, "Mallory", "gallery")
	_, err = env.svc.SetRole(ctx, other.ID, acct.ID, "artist")
	require.ErrorIs(t, err, ErrRoleOwnerOnly)

	_, err = env.svc.SetRole(ctx, acct.ID, acct.ID, "sculptor")
	require.ErrorIs(t, err, ErrInvalidRole)

	updated, err := env.svc.SetRole(ctx, acct.ID, acct.ID, "Artist")
	require.NoError(t, err)
	require.Equal(t, "artist", string(updated.Role))

	got, err := env.svc.GetAccount(ctx, acct.ID)
	require.NoError(t, err)
	require.Equal(t, updated.Role, got.Role)

	_, err = env.svc.GetAccount(ctx, "missing")
	require.ErrorIs(t, err, ErrUnknownAccount)
}

func TestCreateArtworkValidatesInput(t *testing.T) {
	env := setupService(t)
	ctx := context.Background()
	gallery := env.account(t, "Gallery", "gallery")

	_, err := env.svc.CreateArtwork(ctx, "", CreateArtworkInput{Title: "x", ArtistName: "y"})
	require.ErrorIs(t, err, certificate.ErrNotSignedIn)

	_, err = env.svc.CreateArtwork(ctx, gallery.ID, CreateArtworkInput{ArtistName: "y"})
	require.ErrorIs(t, err, ErrTitleRequired)

	_, err = env.svc.CreateArtwork(ctx, gallery.ID, CreateArtworkInput{Title: "x"})
	require.ErrorIs(t, err, ErrArtistNameRequired)
}

func TestCertificateStatusReadsThroughCache(t *testing.T) {
	env := setupService(t)
	ctx := context.Background()

	gallery := env.account(t, "Gallery", "gallery")
	artwork := env.post(t, gallery.ID, "Sunset", "Nobody")

	cached, found, err := env.cache.Get(ctx, cacheCertificateStatusKey(artwork.ID))
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, string(certificate.StatusPendingArtistClaim), cached)

	require.NoError(t, env.cache.Delete(ctx, cacheCertificateStatusKey(artwork.ID)))
	status, err := env.svc.CertificateStatus(ctx, artwork.ID)
	require.NoError(t, err)
	require.Equal(t, certificate.StatusPendingArtistClaim, status)

	_, found, err = env.cache.Get(ctx, cacheCertificateStatusKey(artwork.ID))
	require.NoError(t, err)
	require.True(t, found, "status should be cached after a miss")

	_, err = env.svc.CertificateStatus(ctx, "missing")
	require.ErrorIs(t, err, certificate.ErrArtworkNotFound)
}

// interleavingArtworks runs onRead after GetArtwork has read its row but before returning it.
type interleavingArtworks struct {
	ports.ArtworkRepository
	onRead func()
}

func (r *interleavingArtworks) GetArtwork(ctx context.Context, id string) (ports.Artwork, error) {
	artwork, err := r.ArtworkRepository.GetArtwork(ctx, id)
	if hook := r.onRead; hook != nil {
		r.onRead = nil
		hook()
	}
	return artwork, err
}

func TestCertificateStatusBackfillNeverRegressesCache(t *testing.T) {
	env := setupService(t)
	ctx := context.Background()

	gallery := env.account(t, "Gallery", "gallery")
	artist := env.account(t, "Maya", "artist")
	artwork := env.post(t, gallery.ID, "Sunset", "Nobody")
	require.NoError(t, env.svc.ClaimCertificate(ctx, artwork.ID, artist.ID))
	require.NoError(t, env.cache.Delete(ctx, cacheCertificateStatusKey(artwork.ID)))

	wrapped := &interleavingArtworks{ArtworkRepository: env.svc.artworks}
	wrapped.onRead = func() {
		require.NoError(t, env.svc.VerifyCertificate(ctx, artwork.ID, gallery.ID))
	}
	env.svc.artworks = wrapped

	// The read saw the row before verification committed.
	status, err := env.svc.CertificateStatus(ctx, artwork.ID)
	require.NoError(t, err)
	require.Equal(t, certificate.StatusPendingVerification, status)

	cached, found, err := env.cache.Get(ctx, cacheCertificateStatusKey(artwork.ID))
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, string(certificate.StatusVerified), cached)

	status, err = env.svc.CertificateStatus(ctx, artwork.ID)
	require.NoError(t, err)
	require.Equal(t, certificate.StatusVerified, status)
}

func TestListArtworksFilters(t *testing.T) {
	env := setupService(t)
	ctx := context.Background()

	gallery := env.account(t, "Gallery", "gallery")
	artist := env.account(t, "Jane Doe", "artist")
	env.post(t, gallery.ID, "Sunset", "Jane Doe")
	env.post(t, gallery.ID, "Dawn", "Someone Else")
	env.post(t, artist.ID, "Self portrait", "")

	pending, err := env.svc.PendingClaims(ctx, 0)
	require.NoError(t, err)
	require.Len(t, pending, 2)

	byArtist, err := env.svc.ListArtworks(ctx, ArtworkListFilter{ArtistAccountID: artist.ID})
	require.NoError(t, err)
	require.Len(t, byArtist, 2, "hint and self-post both carry the artist id")

	_, err = env.svc.ListArtworks(ctx, ArtworkListFilter{Status: "lost"})
	require.Equal(t, errs.KindInvalid, errs.KindOf(err))
}
