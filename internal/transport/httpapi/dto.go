package httpapi

import (
	"time"

	"provenance/internal/ports"
	"provenance/internal/usecase/provenance"
)

type accountJSON struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	Role        string    `json:"role,omitempty"`
	IsAdmin     bool      `json:"is_admin"`
	CreatedAt   time.Time `json:"created_at"`
}

type artworkJSON struct {
	ID                string     `json:"id"`
	AccountID         string     `json:"account_id"`
	ArtistAccountID   *string    `json:"artist_account_id"`
	Title             string     `json:"title"`
	ArtistName        string     `json:"artist_name"`
	Year              string     `json:"year,omitempty"`
	Medium            string     `json:"medium,omitempty"`
	Description       string     `json:"description,omitempty"`
	CertificateNumber string     `json:"certificate_number"`
	CertificateType   string     `json:"certificate_type"`
	CertificateStatus string     `json:"certificate_status"`
	ClaimedByArtistAt *time.Time `json:"claimed_by_artist_at,omitempty"`
	VerifiedByOwnerAt *time.Time `json:"verified_by_owner_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

type notificationJSON struct {
	ID               string         `json:"id"`
	Type             string         `json:"type"`
	Title            string         `json:"title"`
	Message          string         `json:"message"`
	ArtworkID        *string        `json:"artwork_id,omitempty"`
	RelatedAccountID *string        `json:"related_account_id,omitempty"`
	Metadata         map[string]any `json:"metadata,omitempty"`
	IsRead           bool           `json:"is_read"`
	ReadAt           *time.Time     `json:"read_at,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
}

type artistProfileJSON struct {
	ID                 string     `json:"id"`
	Name               string     `json:"name"`
	Bio                string     `json:"bio,omitempty"`
	CreatedByAccountID string     `json:"created_by_account_id"`
	UserID             *string    `json:"user_id"`
	IsClaimed          bool       `json:"is_claimed"`
	ClaimedAt          *time.Time `json:"claimed_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
}

type profileClaimJSON struct {
	ID              string     `json:"id"`
	ProfileID       string     `json:"profile_id"`
	ArtistAccountID string     `json:"artist_account_id"`
	Status          string     `json:"status"`
	Message         string     `json:"message,omitempty"`
	GalleryResponse string     `json:"gallery_response,omitempty"`
	ResolvedAt      *time.Time `json:"resolved_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

func toAccountJSON(acct provenance.AccountView) accountJSON {
	out := accountJSON{
		ID:          acct.ID,
		Email:       acct.Email,
		DisplayName: acct.DisplayName,
		IsAdmin:     acct.IsAdmin,
		CreatedAt:   acct.CreatedAt,
	}
	if acct.Role.Valid() {
		out.Role = string(acct.Role)
	}
	return out
}

func toArtworkJSON(a ports.Artwork) artworkJSON {
	return artworkJSON{
		ID:                a.ID,
		AccountID:         a.AccountID,
		ArtistAccountID:   a.ArtistAccountID,
		Title:             a.Title,
		ArtistName:        a.ArtistName,
		Year:              a.Year,
		Medium:            a.Medium,
		Description:       a.Description,
		CertificateNumber: a.CertificateNumber,
		CertificateType:   string(a.CertificateType),
		CertificateStatus: string(a.CertificateStatus),
		ClaimedByArtistAt: a.ClaimedByArtistAt,
		VerifiedByOwnerAt: a.VerifiedByOwnerAt,
		CreatedAt:         a.CreatedAt,
		UpdatedAt:         a.UpdatedAt,
	}
}

func toNotificationJSON(n ports.Notification) notificationJSON {
	return notificationJSON{
		ID:               n.ID,
		Type:             n.Type,
		Title:            n.Title,
		Message:          n.Message,
		ArtworkID:        n.ArtworkID,
		RelatedAccountID: n.RelatedAccountID,
		Metadata:         n.Metadata,
		IsRead:           n.IsRead,
		ReadAt:           n.ReadAt,
		CreatedAt:        n.CreatedAt,
	}
}

func toArtistProfileJSON(p ports.ArtistProfile) artistProfileJSON {
	return artistProfileJSON{
		ID:                 p.ID,
		Name:               p.Name,
		Bio:                p.Bio,
		CreatedByAccountID: p.CreatedByAccountID,
		UserID:             p.UserID,
		IsClaimed:          p.IsClaimed,
		ClaimedAt:          p.ClaimedAt,
		CreatedAt:          p.CreatedAt,
	}
}

func toProfileClaimJSON(c ports.ProfileClaim) profileClaimJSON {
	return profileClaimJSON{
		ID:              c.ID,
		ProfileID:       c.ProfileID,
		ArtistAccountID: c.ArtistAccountID,
		Status:          string(c.Status),
		Message:         c.Message,
		GalleryResponse: c.GalleryResponse,
		ResolvedAt:      c.ResolvedAt,
		CreatedAt:       c.CreatedAt,
	}
}
