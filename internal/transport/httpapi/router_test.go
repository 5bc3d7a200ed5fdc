package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	gormsqlite "github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"provenance/internal/infrastructure/cache"
	"provenance/internal/infrastructure/certnumber"
	"provenance/internal/infrastructure/persistence/db/model"
	"provenance/internal/infrastructure/persistence/db/repository"
	"provenance/internal/infrastructure/persistence/db/uow"
	"provenance/internal/usecase/provenance"
)

func setupRouter(t *testing.T) http.Handler {
	t.Helper()

	db, err := gorm.Open(gormsqlite.Open(filepath.Join(t.TempDir(), "api.sqlite")), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(model.All()...))

	artworks := repository.NewArtworkRepository(db)
	numbers, err := certnumber.New(artworks, artworks, certnumber.Options{MaxAttempts: 10})
	require.NoError(t, err)

	svc := provenance.NewService(
		repository.NewAccountRepository(db),
		artworks,
		repository.NewNotificationRepository(db),
		repository.NewArtistProfileRepository(db),
		uow.NewUnitOfWork(db),
		cache.NewGormCache(db),
		numbers,
	)
	return NewHandler(svc).Router()
}

func do(t *testing.T, h http.Handler, method string, path string, actor string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if actor != "" {
		req.Header.Set(AccountHeader, actor)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestClaimVerifyOverHTTP(t *testing.T) {
	h := setupRouter(t)

	rec := do(t, h, http.MethodPost, "/accounts", "", createAccountRequest{Email: "g@example.test", DisplayName: "Gallery", Role: "gallery"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	gallery := decode[accountJSON](t, rec)

	rec = do(t, h, http.MethodPost, "/accounts", "", createAccountRequest{Email: "j@example.test", DisplayName: "Jane Doe", Role: "artist"})
	require.Equal(t, http.StatusCreated, rec.Code)
	jane := decode[accountJSON](t, rec)

	rec = do(t, h, http.MethodPost, "/artworks", gallery.ID, createArtworkRequest{Title: "Sunset", ArtistName: "Jane Doe"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	artwork := decode[artworkJSON](t, rec)
	require.Equal(t, "pending_artist_claim", artwork.CertificateStatus)
	require.Equal(t, "show", artwork.CertificateType)

	rec = do(t, h, http.MethodPost, "/artworks/"+artwork.ID+"/claim", gallery.ID, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)
	res := decode[provenance.Result](t, rec)
	require.False(t, res.Success)
	require.Equal(t, "Only artists can claim certificates", res.Error)

	rec = do(t, h, http.MethodPost, "/artworks/"+artwork.ID+"/claim", jane.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.True(t, decode[provenance.Result](t, rec).Success)

	rec = do(t, h, http.MethodPost, "/artworks/"+artwork.ID+"/claim", jane.ID, nil)
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Equal(t, "Certificate is not available for claiming", decode[provenance.Result](t, rec).Error)

	rec = do(t, h, http.MethodPost, "/artworks/"+artwork.ID+"/verify", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, h, http.MethodPost, "/artworks/"+artwork.ID+"/verify", gallery.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/artworks/"+artwork.ID+"/status", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "verified", decode[map[string]string](t, rec)["certificate_status"])

	rec = do(t, h, http.MethodGet, "/notifications?unread=true", jane.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	inbox := decode[map[string][]notificationJSON](t, rec)["notifications"]
	require.Len(t, inbox, 1)
	require.Equal(t, "certificate_verified", inbox[0].Type)

	rec = do(t, h, http.MethodPost, "/notifications/"+inbox[0].ID+"/read", jane.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = do(t, h, http.MethodGet, "/notifications/unread-count", jane.ID, nil)
	require.Equal(t, int64(0), decode[map[string]int64](t, rec)["unread"])
}

func TestHTTPErrorMapping(t *testing.T) {
	h := setupRouter(t)

	rec := do(t, h, http.MethodGet, "/artworks/missing", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodGet, "/artworks?status=lost", "", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/accounts", bytes.NewBufferString(`{"email":`))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	require.Equal(t, http.StatusBadRequest, rr.Code)

	rec = do(t, h, http.MethodGet, "/healthz", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestProfileClaimOverHTTP(t *testing.T) {
	h := setupRouter(t)

	gallery := decode[accountJSON](t, do(t, h, http.MethodPost, "/accounts", "", createAccountRequest{Email: "g@example.test", DisplayName: "Gallery", Role: "gallery"}))
	artistA := decode[accountJSON](t, do(t, h, http.MethodPost, "/accounts", "", createAccountRequest{Email: "a@example.test", DisplayName: "A", Role: "artist"}))
	artistB := decode[accountJSON](t, do(t, h, http.MethodPost, "/accounts", "", createAccountRequest{Email: "b@example.test", DisplayName: "B", Role: "artist"}))

	rec := do(t, h, http.MethodPost, "/artist-profiles", gallery.ID, createArtistProfileRequest{Name: "Jane Doe"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	profile := decode[artistProfileJSON](t, rec)

	claimA := decode[profileClaimJSON](t, do(t, h, http.MethodPost, "/artist-profiles/"+profile.ID+"/claims", artistA.ID, messageRequest{Message: "me"}))
	claimB := decode[profileClaimJSON](t, do(t, h, http.MethodPost, "/artist-profiles/"+profile.ID+"/claims", artistB.ID, messageRequest{Message: "no, me"}))

	rec = do(t, h, http.MethodPost, "/profile-claims/"+claimA.ID+"/approve", gallery.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodPost, "/profile-claims/"+claimB.ID+"/approve", gallery.ID, nil)
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Contains(t, decode[provenance.Result](t, rec).Error, "already been claimed by another artist")

	rec = do(t, h, http.MethodGet, "/artist-profiles/"+profile.ID+"/claims", gallery.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	claims := decode[map[string][]profileClaimJSON](t, rec)["claims"]
	require.Len(t, claims, 2)
}
