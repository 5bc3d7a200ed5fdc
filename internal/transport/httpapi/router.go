package httpapi

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"provenance/internal/bootstrap/config"
	"provenance/internal/bootstrap/logging"
	"provenance/internal/usecase/provenance"
)

// AccountHeader carries the acting account id, set by the authenticating proxy in front of the API.
const AccountHeader = "X-Account-ID"

type Handler struct {
	svc *provenance.Service
}

func NewHandler(svc *provenance.Service) *Handler {
	return &Handler{svc: svc}
}

// Router mounts every route of the registry API.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/accounts", func(api chi.Router) {
		api.Post("/", h.createAccount)
		api.Get("/{accountID}", h.getAccount)
		api.Put("/{accountID}/role", h.setRole)
	})

	r.Route("/artworks", func(api chi.Router) {
		api.Post("/", h.createArtwork)
		api.Get("/", h.listArtworks)
		api.Get("/{artworkID}", h.getArtwork)
		api.Get("/{artworkID}/status", h.certificateStatus)
		api.Post("/{artworkID}/claim", h.claimCertificate)
		api.Post("/{artworkID}/verify", h.verifyCertificate)
	})

	r.Route("/notifications", func(api chi.Router) {
		api.Get("/", h.listNotifications)
		api.Get("/unread-count", h.unreadCount)
		api.Post("/read-all", h.markAllRead)
		api.Post("/{notificationID}/read", h.markRead)
	})

	r.Route("/artist-profiles", func(api chi.Router) {
		api.Post("/", h.createArtistProfile)
		api.Post("/{profileID}/claims", h.requestProfileClaim)
		api.Get("/{profileID}/claims", h.listProfileClaims)
	})

	r.Route("/profile-claims", func(api chi.Router) {
		api.Post("/{claimID}/approve", h.approveProfileClaim)
		api.Post("/{claimID}/reject", h.rejectProfileClaim)
	})

	return r
}

// NewServer builds the HTTP server. Request contexts derive from baseCtx so they carry its logger.
func NewServer(baseCtx context.Context, cfg config.ServerConfig, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.WriteTimeout,
		BaseContext: func(net.Listener) context.Context {
			return baseCtx
		},
	}
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ctx := logging.WithRequest(r.Context(), middleware.GetReqID(r.Context()), actorID(r))
		ctx = logging.WithAttrs(ctx, slog.String("component", "transport.httpapi"))

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r.WithContext(ctx))

		logging.Info(
			ctx,
			"http request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			slog.Duration("duration", time.Since(start)),
		)
	})
}
