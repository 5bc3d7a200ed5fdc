package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"provenance/internal/bootstrap/logging"
	"provenance/internal/errs"
	"provenance/internal/usecase/provenance"
)

const maxBodyBytes = 1 << 20

type createAccountRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
}

type setRoleRequest struct {
	Role string `json:"role"`
}

type createArtworkRequest struct {
	Title       string `json:"title"`
	ArtistName  string `json:"artist_name"`
	Year        string `json:"year"`
	Medium      string `json:"medium"`
	Description string `json:"description"`
}

type createArtistProfileRequest struct {
	Name string `json:"name"`
	Bio  string `json:"bio"`
}

type messageRequest struct {
	Message string `json:"message"`
}

func (h *Handler) createAccount(w http.ResponseWriter, r *http.Request) {
	var req createAccountRequest
	if !decodeBody(w, r, &req) {
		return
	}
	acct, err := h.svc.CreateAccount(r.Context(), provenance.CreateAccountInput{
		Email:       req.Email,
		DisplayName: req.DisplayName,
		Role:        req.Role,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toAccountJSON(acct))
}

func (h *Handler) getAccount(w http.ResponseWriter, r *http.Request) {
	acct, err := h.svc.GetAccount(r.Context(), chi.URLParam(r, "accountID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toAccountJSON(acct))
}

func (h *Handler) setRole(w http.ResponseWriter, r *http.Request) {
	var req setRoleRequest
	if !decodeBody(w, r, &req) {
		return
	}
	acct, err := h.svc.SetRole(r.Context(), actorID(r), chi.URLParam(r, "accountID"), req.Role)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toAccountJSON(acct))
}

func (h *Handler) createArtwork(w http.ResponseWriter, r *http.Request) {
	var req createArtworkRequest
	if !decodeBody(w, r, &req) {
		return
	}
	artwork, err := h.svc.CreateArtwork(r.Context(), actorID(r), provenance.CreateArtworkInput{
		Title:       req.Title,
		ArtistName:  req.ArtistName,
		Year:        req.Year,
		Medium:      req.Medium,
		Description: req.Description,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toArtworkJSON(artwork))
}

func (h *Handler) getArtwork(w http.ResponseWriter, r *http.Request) {
	artwork, err := h.svc.GetArtwork(r.Context(), chi.URLParam(r, "artworkID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toArtworkJSON(artwork))
}

func (h *Handler) listArtworks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	items, err := h.svc.ListArtworks(r.Context(), provenance.ArtworkListFilter{
		AccountID:       q.Get("account_id"),
		ArtistAccountID: q.Get("artist_account_id"),
		Status:          q.Get("status"),
		Limit:           queryInt(r, "limit"),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]artworkJSON, 0, len(items))
	for _, item := range items {
		out = append(out, toArtworkJSON(item))
	}
	writeJSON(w, http.StatusOK, map[string]any{"artworks": out})
}

func (h *Handler) certificateStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.svc.CertificateStatus(r.Context(), chi.URLParam(r, "artworkID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"certificate_status": string(status)})
}

func (h *Handler) claimCertificate(w http.ResponseWriter, r *http.Request) {
	writeResult(w, r, h.svc.ClaimCertificate(r.Context(), chi.URLParam(r, "artworkID"), actorID(r)))
}

func (h *Handler) verifyCertificate(w http.ResponseWriter, r *http.Request) {
	writeResult(w, r, h.svc.VerifyCertificate(r.Context(), chi.URLParam(r, "artworkID"), actorID(r)))
}

func (h *Handler) listNotifications(w http.ResponseWriter, r *http.Request) {
	unreadOnly, _ := strconv.ParseBool(r.URL.Query().Get("unread"))
	items, err := h.svc.ListNotifications(r.Context(), actorID(r), unreadOnly, queryInt(r, "limit"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]notificationJSON, 0, len(items))
	for _, item := range items {
		out = append(out, toNotificationJSON(item))
	}
	writeJSON(w, http.StatusOK, map[string]any{"notifications": out})
}

func (h *Handler) unreadCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.svc.UnreadCount(r.Context(), actorID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"unread": count})
}

func (h *Handler) markRead(w http.ResponseWriter, r *http.Request) {
	writeResult(w, r, h.svc.MarkNotificationRead(r.Context(), actorID(r), chi.URLParam(r, "notificationID")))
}

func (h *Handler) markAllRead(w http.ResponseWriter, r *http.Request) {
	changed, err := h.svc.MarkAllNotificationsRead(r.Context(), actorID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "updated": changed})
}

func (h *Handler) createArtistProfile(w http.ResponseWriter, r *http.Request) {
	var req createArtistProfileRequest
	if !decodeBody(w, r, &req) {
		return
	}
	profile, err := h.svc.CreateArtistProfile(r.Context(), actorID(r), provenance.CreateArtistProfileInput{
		Name: req.Name,
		Bio:  req.Bio,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toArtistProfileJSON(profile))
}

func (h *Handler) requestProfileClaim(w http.ResponseWriter, r *http.Request) {
	var req messageRequest
	if !decodeBody(w, r, &req) {
		return
	}
	claim, err := h.svc.RequestProfileClaim(r.Context(), actorID(r), chi.URLParam(r, "profileID"), req.Message)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toProfileClaimJSON(claim))
}

func (h *Handler) listProfileClaims(w http.ResponseWriter, r *http.Request) {
	claims, err := h.svc.ListProfileClaims(r.Context(), actorID(r), chi.URLParam(r, "profileID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]profileClaimJSON, 0, len(claims))
	for _, claim := range claims {
		out = append(out, toProfileClaimJSON(claim))
	}
	writeJSON(w, http.StatusOK, map[string]any{"claims": out})
}

func (h *Handler) approveProfileClaim(w http.ResponseWriter, r *http.Request) {
	var req messageRequest
	if !decodeBody(w, r, &req) {
		return
	}
	_, err := h.svc.ApproveProfileClaim(r.Context(), actorID(r), chi.URLParam(r, "claimID"), req.Message)
	writeResult(w, r, err)
}

func (h *Handler) rejectProfileClaim(w http.ResponseWriter, r *http.Request) {
	var req messageRequest
	if !decodeBody(w, r, &req) {
		return
	}
	_, err := h.svc.RejectProfileClaim(r.Context(), actorID(r), chi.URLParam(r, "claimID"), req.Message)
	writeResult(w, r, err)
}

func actorID(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(AccountHeader))
}

func queryInt(r *http.Request, key string) int {
	n, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return 0
	}
	return n
}

// decodeBody reads a JSON body. An empty body decodes to the zero value.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, r, errs.E(errs.KindInvalid, "Request body is not valid JSON").WithCause(err))
		return false
	}
	return true
}

// writeResult answers a command with a provenance.Result body.
func writeResult(w http.ResponseWriter, r *http.Request, err error) {
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, provenance.ResultOf(nil))
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	res := provenance.ResultOf(err)
	if res.Kind == errs.KindInternal {
		logging.Error(r.Context(), "request failed", slog.Any("err", errs.Loggable(err)))
	}
	writeJSON(w, errs.HTTPStatus(res.Kind), res)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
