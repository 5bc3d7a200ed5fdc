package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"

	"provenance/internal/domain/certificate"
	"provenance/internal/errs"
	"provenance/internal/infrastructure/persistence/db/model"
	"provenance/internal/ports"
)

var sqlIdentifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

type ArtworkRepository struct {
	db *gorm.DB
}

var (
	_ ports.ArtworkRepository       = (*ArtworkRepository)(nil)
	_ ports.CertificateNumberSource = (*ArtworkRepository)(nil)
)

func NewArtworkRepository(db *gorm.DB) *ArtworkRepository {
	return &ArtworkRepository{db: db}
}

func (r *ArtworkRepository) CreateArtwork(ctx context.Context, artwork ports.Artwork) (ports.Artwork, error) {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return ports.Artwork{}, err
	}

	row := model.Artwork{
		ID:                artwork.ID,
		AccountID:         artwork.AccountID,
		ArtistAccountID:   artwork.ArtistAccountID,
		Title:             artwork.Title,
		ArtistName:        artwork.ArtistName,
		Year:              artwork.Year,
		Medium:            artwork.Medium,
		Description:       artwork.Description,
		CertificateNumber: artwork.CertificateNumber,
		CertificateType:   string(artwork.CertificateType),
		CertificateStatus: string(artwork.CertificateStatus),
		ClaimedByArtistAt: artwork.ClaimedByArtistAt,
		VerifiedByOwnerAt: artwork.VerifiedByOwnerAt,
		CreatedAt:         artwork.CreatedAt,
		UpdatedAt:         artwork.UpdatedAt,
	}
	if err := db.Create(&row).Error; err != nil {
		return ports.Artwork{}, errs.Wrap(err, "insert artwork")
	}
	return mapArtwork(row), nil
}

func (r *ArtworkRepository) GetArtwork(ctx context.Context, artworkID string) (ports.Artwork, error) {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return ports.Artwork{}, err
	}

	var row model.Artwork
	if err := db.Where("id = ?", artworkID).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Artwork{}, ports.ErrArtworkNotFound
		}
		return ports.Artwork{}, errs.Wrapf(err, "query artwork %s", artworkID)
	}
	return mapArtwork(row), nil
}

func (r *ArtworkRepository) ListArtworks(ctx context.Context, filter ports.ArtworkFilter) ([]ports.Artwork, error) {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return nil, err
	}

	query := db.Model(&model.Artwork{})
	if accountID := strings.TrimSpace(filter.AccountID); accountID != "" {
		query = query.Where("account_id = ?", accountID)
	}
	if artistID := strings.TrimSpace(filter.ArtistAccountID); artistID != "" {
		query = query.Where("artist_account_id = ?", artistID)
	}
	if filter.Status != "" {
		query = query.Where("certificate_status = ?", string(filter.Status))
	}

	var rows []model.Artwork
	if err := query.
		Order("created_at desc").
		Order("id asc").
		Limit(normalizeLimit(filter.Limit, 100)).
		Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query artworks")
	}

	items := make([]ports.Artwork, 0, len(rows))
	for _, row := range rows {
		items = append(items, mapArtwork(row))
	}
	return items, nil
}

func (r *ArtworkRepository) CertificateNumberExists(ctx context.Context, number string) (bool, error) {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return false, err
	}

	var count int64
	if err := db.Model(&model.Artwork{}).Where("certificate_number = ?", number).Count(&count).Error; err != nil {
		return false, errs.Wrap(err, "count certificate number")
	}
	return count > 0, nil
}

func (r *ArtworkRepository) TransitionCertificate(ctx context.Context, t ports.CertificateTransition) (bool, error) {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return false, err
	}

	updates := map[string]any{
		"certificate_status": string(t.To),
		"updated_at":         t.UpdatedAt,
	}
	if t.ArtistAccountID != nil {
		updates["artist_account_id"] = *t.ArtistAccountID
	}
	if t.ClaimedAt != nil {
		updates["claimed_by_artist_at"] = *t.ClaimedAt
	}
	if t.VerifiedAt != nil {
		updates["verified_by_owner_at"] = *t.VerifiedAt
	}
	if t.Type != "" {
		updates["certificate_type"] = string(t.Type)
	}

	query := db.Model(&model.Artwork{}).
		Where("id = ?", t.ArtworkID).
		Where("certificate_status = ?", string(t.From))
	if t.OwnerID != "" {
		query = query.Where("account_id = ?", t.OwnerID)
	}

	res := query.Updates(updates)
	if res.Error != nil {
		return false, errs.Wrapf(res.Error, "transition artwork %s %s->%s", t.ArtworkID, t.From, t.To)
	}
	return res.RowsAffected == 1, nil
}

// NextCertificateNumber calls a zero-argument database function returning text.
func (r *ArtworkRepository) NextCertificateNumber(ctx context.Context, function string) (string, error) {
	if !sqlIdentifier.MatchString(function) {
		return "", fmt.Errorf("invalid database function name %q", function)
	}

	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return "", err
	}

	var number string
	if err := db.Raw(fmt.Sprintf("SELECT %s()", function)).Scan(&number).Error; err != nil {
		return "", errs.Wrapf(err, "call %s", function)
	}
	number = strings.TrimSpace(number)
	if number == "" {
		return "", fmt.Errorf("%s returned an empty certificate number", function)
	}
	return number, nil
}

func mapArtwork(row model.Artwork) ports.Artwork {
	return ports.Artwork{
		ID:                row.ID,
		AccountID:         row.AccountID,
		ArtistAccountID:   row.ArtistAccountID,
		Title:             row.Title,
		ArtistName:        row.ArtistName,
		Year:              row.Year,
		Medium:            row.Medium,
		Description:       row.Description,
		CertificateNumber: row.CertificateNumber,
		CertificateType:   certificate.Type(row.CertificateType),
		CertificateStatus: certificate.Status(row.CertificateStatus),
		ClaimedByArtistAt: row.ClaimedByArtistAt,
		VerifiedByOwnerAt: row.VerifiedByOwnerAt,
		CreatedAt:         row.CreatedAt,
		UpdatedAt:         row.UpdatedAt,
	}
}
