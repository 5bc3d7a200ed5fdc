package provenance

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"provenance/internal/bootstrap/logging"
	"provenance/internal/domain/account"
	"provenance/internal/domain/certificate"
	"provenance/internal/errs"
	"provenance/internal/ports"
)

const (
	NotificationCertificateClaimed    = "certificate_claimed"
	NotificationCertificateVerified   = "certificate_verified"
	NotificationProfileClaimRequested = "profile_claim_requested"
	NotificationProfileClaimApproved  = "profile_claim_approved"
	NotificationProfileClaimRejected  = "profile_claim_rejected"
)

const (
	componentName                = "usecase.provenance"
	defaultNotificationListLimit = 50
	certificateStatusCacheTTL    = 24 * time.Hour
)

var (
	ErrTitleRequired        = errs.E(errs.KindInvalid, "Title is required")
	ErrArtistNameRequired   = errs.E(errs.KindInvalid, "Artist name is required")
	ErrEmailRequired        = errs.E(errs.KindInvalid, "Email is required")
	ErrDisplayNameRequired  = errs.E(errs.KindInvalid, "Display name is required")
	ErrEmailTaken           = errs.E(errs.KindConflict, "An account with this email already exists")
	ErrInvalidRole          = errs.E(errs.KindInvalid, "Role must be one of artist, collector, gallery")
	ErrRoleOwnerOnly        = errs.E(errs.KindForbidden, "Only the account owner can change its role")
	ErrNotificationNotFound = errs.E(errs.KindNotFound, "Notification not found")
	ErrUnknownAccount       = errs.E(errs.KindNotFound, "Account not found")

	errNumberGeneratorMissing = errors.New("certificate number generator is required")
)

type Service struct {
	accounts      ports.AccountRepository
	artworks      ports.ArtworkRepository
	notifications ports.NotificationRepository
	profiles      ports.ArtistProfileRepository
	uow           ports.UnitOfWork
	cache         ports.Cache
	numbers       ports.CertificateNumberGenerator

	now   func() time.Time
	newID func() string
}

// NewService wires the registry usecases. cache may be nil.
func NewService(
	accounts ports.AccountRepository,
	artworks ports.ArtworkRepository,
	notifications ports.NotificationRepository,
	profiles ports.ArtistProfileRepository,
	uow ports.UnitOfWork,
	cache ports.Cache,
	numbers ports.CertificateNumberGenerator,
) *Service {
	return &Service{
		accounts:      accounts,
		artworks:      artworks,
		notifications: notifications,
		profiles:      profiles,
		uow:           uow,
		cache:         cache,
		numbers:       numbers,
		now:           func() time.Time { return time.Now().UTC() },
		newID:         uuid.NewString,
	}
}

type CreateAccountInput struct {
	Email       string
	DisplayName string
	// Role is optional; an account without one must onboard before posting.
	Role string
}

type AccountView struct {
	ID          string
	Email       string
	DisplayName string
	Role        account.Role
	IsAdmin     bool
	CreatedAt   time.Time
}

type CreateArtworkInput struct {
	Title       string
	ArtistName  string
	Year        string
	Medium      string
	Description string
}

type CreateArtistProfileInput struct {
	Name string
	Bio  string
}

// checkCall validates ctx and the wiring every operation relies on.
func (s *Service) checkCall(ctx context.Context) error {
	if ctx == nil {
		return errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return errs.Wrap(err, "check context")
	}
	if s.accounts == nil || s.artworks == nil || s.notifications == nil || s.profiles == nil {
		return errors.New("provenance repositories are required")
	}
	if s.uow == nil {
		return errors.New("provenance unit of work is required")
	}
	return nil
}

// actor is the resolved caller of an operation. Found is false for an unknown id.
type actor struct {
	ID      string
	Found   bool
	Account ports.Account
	Profile account.Profile
}

// loadActor resolves the caller. An unreadable attributes blob counts as no role.
func (s *Service) loadActor(ctx context.Context, actorID string) (actor, error) {
	if actorID == "" {
		return actor{}, nil
	}

	acct, err := s.accounts.GetAccount(ctx, actorID)
	if err != nil {
		if errors.Is(err, ports.ErrAccountNotFound) {
			return actor{ID: actorID}, nil
		}
		return actor{}, err
	}

	profile, err := account.ParseAttributes(acct.Attributes)
	if err != nil {
		logging.Warn(ctx, "account attributes unreadable, treating as no role",
			slog.String("account_id", actorID),
			slog.Any("err", errs.Loggable(err)),
		)
		profile = account.Profile{}
	}
	return actor{ID: actorID, Found: true, Account: acct, Profile: profile}, nil
}

func (s *Service) loadArtwork(ctx context.Context, artworkID string) (ports.Artwork, bool, error) {
	if artworkID == "" {
		return ports.Artwork{}, false, nil
	}
	artwork, err := s.artworks.GetArtwork(ctx, artworkID)
	if err != nil {
		if errors.Is(err, ports.ErrArtworkNotFound) {
			return ports.Artwork{}, false, nil
		}
		return ports.Artwork{}, false, err
	}
	return artwork, true, nil
}

func (s *Service) logContext(ctx context.Context, attrs ...slog.Attr) context.Context {
	return logging.WithAttrs(ctx, append([]slog.Attr{slog.String("component", componentName)}, attrs...)...)
}

// recordStatusBestEffort caches status versioned by its rank, so a slow writer holding an
// older status can never overwrite a newer one.
func (s *Service) recordStatusBestEffort(ctx context.Context, artworkID string, status certificate.Status) {
	if s.cache == nil {
		return
	}
	key := cacheCertificateStatusKey(artworkID)
	written, err := s.cache.Advance(ctx, key, string(status), int64(certificate.Rank(status)), certificateStatusCacheTTL)
	if err != nil {
		logging.Warn(ctx, "cache write failed", slog.String("key", key), slog.Any("err", errs.Loggable(err)))
		return
	}
	if !written {
		logging.Debug(ctx, "cache holds a newer status", slog.String("key", key), slog.String("status", string(status)))
	}
}

// logRefusal records a failed operation: business failures at info, anything else at error.
func (s *Service) logRefusal(ctx context.Context, msg string, err error) {
	if reason, ok := errs.Message(err); ok {
		logging.Info(ctx, msg, slog.String("reason", reason), slog.String("kind", string(errs.KindOf(err))))
		return
	}
	logging.Error(ctx, msg, slog.Any("err", errs.Loggable(err)))
}

func viewAccount(acct ports.Account, profile account.Profile) AccountView {
	return AccountView{
		ID:          acct.ID,
		Email:       acct.Email,
		DisplayName: acct.DisplayName,
		Role:        profile.Role,
		IsAdmin:     profile.IsAdmin,
		CreatedAt:   acct.CreatedAt,
	}
}

func cacheCertificateStatusKey(artworkID string) string {
	return "certificate_status:" + artworkID
}
