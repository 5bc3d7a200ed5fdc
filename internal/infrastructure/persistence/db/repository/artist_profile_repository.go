package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"provenance/internal/domain/profileclaim"
	"provenance/internal/errs"
	"provenance/internal/infrastructure/persistence/db/model"
	"provenance/internal/ports"
)

type ArtistProfileRepository struct {
	db *gorm.DB
}

var _ ports.ArtistProfileRepository = (*ArtistProfileRepository)(nil)

func NewArtistProfileRepository(db *gorm.DB) *ArtistProfileRepository {
	return &ArtistProfileRepository{db: db}
}

func (r *ArtistProfileRepository) CreateProfile(ctx context.Context, profile ports.ArtistProfile) (ports.ArtistProfile, error) {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return ports.ArtistProfile{}, err
	}

	row := model.ArtistProfile{
		ID:                 profile.ID,
		Name:               profile.Name,
		Bio:                profile.Bio,
		CreatedByAccountID: profile.CreatedByAccountID,
		UserID:             profile.UserID,
		IsClaimed:          profile.IsClaimed,
		ClaimedAt:          profile.ClaimedAt,
		CreatedAt:          profile.CreatedAt,
		UpdatedAt:          profile.UpdatedAt,
	}
	if err := db.Create(&row).Error; err != nil {
		return ports.ArtistProfile{}, errs.Wrap(err, "insert artist profile")
	}
	return mapArtistProfile(row), nil
}

func (r *ArtistProfileRepository) GetProfile(ctx context.Context, profileID string) (ports.ArtistProfile, error) {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return ports.ArtistProfile{}, err
	}

	var row model.ArtistProfile
	if err := db.Where("id = ?", profileID).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.ArtistProfile{}, ports.ErrArtistProfileNotFound
		}
		return ports.ArtistProfile{}, errs.Wrapf(err, "query artist profile %s", profileID)
	}
	return mapArtistProfile(row), nil
}

func (r *ArtistProfileRepository) HasClaimedProfile(ctx context.Context, userID string, excludeProfileID string) (bool, error) {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return false, err
	}

	var count int64
	if err := db.Model(&model.ArtistProfile{}).
		Where("user_id = ? AND id <> ?", userID, excludeProfileID).
		Count(&count).Error; err != nil {
		return false, errs.Wrap(err, "count claimed artist profiles")
	}
	return count > 0, nil
}

func (r *ArtistProfileRepository) LinkProfile(ctx context.Context, profileID string, userID string, claimedAt time.Time) (bool, error) {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return false, err
	}

	res := db.Model(&model.ArtistProfile{}).
		Where("id = ? AND is_claimed = ? AND user_id IS NULL", profileID, false).
		Updates(map[string]any{
			"user_id":    userID,
			"is_claimed": true,
			"claimed_at": claimedAt,
			"updated_at": claimedAt,
		})
	if res.Error != nil {
		return false, errs.Wrapf(res.Error, "link artist profile %s", profileID)
	}
	return res.RowsAffected == 1, nil
}

func (r *ArtistProfileRepository) CreateClaim(ctx context.Context, claim ports.ProfileClaim) (ports.ProfileClaim, error) {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return ports.ProfileClaim{}, err
	}

	row := model.ArtistProfileClaim{
		ID:              claim.ID,
		ProfileID:       claim.ProfileID,
		ArtistAccountID: claim.ArtistAccountID,
		Status:          string(claim.Status),
		Message:         claim.Message,
		GalleryResponse: claim.GalleryResponse,
		ResolvedAt:      claim.ResolvedAt,
		CreatedAt:       claim.CreatedAt,
		UpdatedAt:       claim.UpdatedAt,
	}
	if err := db.Create(&row).Error; err != nil {
		return ports.ProfileClaim{}, errs.Wrap(err, "insert artist profile claim")
	}
	return mapProfileClaim(row), nil
}

func (r *ArtistProfileRepository) GetClaim(ctx context.Context, claimID string) (ports.ProfileClaim, error) {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return ports.ProfileClaim{}, err
	}

	var row model.ArtistProfileClaim
	if err := db.Where("id = ?", claimID).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.ProfileClaim{}, ports.ErrProfileClaimNotFound
		}
		return ports.ProfileClaim{}, errs.Wrapf(err, "query artist profile claim %s", claimID)
	}
	return mapProfileClaim(row), nil
}

func (r *ArtistProfileRepository) ListClaims(ctx context.Context, profileID string) ([]ports.ProfileClaim, error) {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return nil, err
	}

	var rows []model.ArtistProfileClaim
	if err := db.
		Where("profile_id = ?", profileID).
		Order("created_at asc").
		Order("id asc").
		Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query artist profile claims")
	}

	items := make([]ports.ProfileClaim, 0, len(rows))
	for _, row := range rows {
		items = append(items, mapProfileClaim(row))
	}
	return items, nil
}

func (r *ArtistProfileRepository) HasPendingClaim(ctx context.Context, profileID string, artistAccountID string) (bool, error) {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return false, err
	}

	var count int64
	if err := db.Model(&model.ArtistProfileClaim{}).
		Where("profile_id = ? AND artist_account_id = ? AND status = ?", profileID, artistAccountID, string(profileclaim.StatusPending)).
		Count(&count).Error; err != nil {
		return false, errs.Wrap(err, "count pending artist profile claims")
	}
	return count > 0, nil
}

func (r *ArtistProfileRepository) ResolveClaim(ctx context.Context, claimID string, status profileclaim.Status, response string, resolvedAt time.Time) (bool, error) {
	if !status.Resolved() {
		return false, errors.New("resolve claim: status must be approved or rejected")
	}

	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return false, err
	}

	res := db.Model(&model.ArtistProfileClaim{}).
		Where("id = ? AND status = ?", claimID, string(profileclaim.StatusPending)).
		Updates(map[string]any{
			"status":           string(status),
			"gallery_response": response,
			"resolved_at":      resolvedAt,
			"updated_at":       resolvedAt,
		})
	if res.Error != nil {
		return false, errs.Wrapf(res.Error, "resolve artist profile claim %s", claimID)
	}
	return res.RowsAffected == 1, nil
}

func mapArtistProfile(row model.ArtistProfile) ports.ArtistProfile {
	return ports.ArtistProfile{
		ID:                 row.ID,
		Name:               row.Name,
		Bio:                row.Bio,
		CreatedByAccountID: row.CreatedByAccountID,
		UserID:             row.UserID,
		IsClaimed:          row.IsClaimed,
		ClaimedAt:          row.ClaimedAt,
		CreatedAt:          row.CreatedAt,
		UpdatedAt:          row.UpdatedAt,
	}
}

func mapProfileClaim(row model.ArtistProfileClaim) ports.ProfileClaim {
	return ports.ProfileClaim{
		ID:              row.ID,
		ProfileID:       row.ProfileID,
		ArtistAccountID: row.ArtistAccountID,
		Status:          profileclaim.Status(row.Status),
		Message:         row.Message,
		GalleryResponse: row.GalleryResponse,
		ResolvedAt:      row.ResolvedAt,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}
}
