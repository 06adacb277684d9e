package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sapradeep123/do-good-hub-backend/pkg/db/models"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds the gorm-backed auth repository.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindProfileByEmail(ctx context.Context, email string) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.WithContext(ctx).First(&profile, "LOWER(email) = LOWER(?)", email).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *repository) FindProfileByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.WithContext(ctx).First(&profile, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *repository) CreateProfile(ctx context.Context, profile *models.Profile) (*models.Profile, error) {
	if err := r.db.WithContext(ctx).Create(profile).Error; err != nil {
		return nil, err
	}
	return profile, nil
}

func (r *repository) UpdateLastLogin(ctx context.Context, userID uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.Profile{}).
		Where("user_id = ?", userID).
		UpdateColumn("last_login_at", at).Error
}

func (r *repository) UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	return r.db.WithContext(ctx).
		Model(&models.Profile{}).
		Where("user_id = ?", userID).
		Updates(map[string]any{
			"password_hash": passwordHash,
			"updated_at":    time.Now().UTC(),
		}).Error
}

func (r *repository) FindNGOIDByUserID(ctx context.Context, userID uuid.UUID) (uuid.UUID, error) {
	var ngo models.NGO
	err := r.db.WithContext(ctx).
		Select("id").
		First(&ngo, "user_id = ?", userID).Error
	if err != nil {
		return uuid.Nil, err
	}
	return ngo.ID, nil
}

func (r *repository) FindVendorIDByUserID(ctx context.Context, userID uuid.UUID) (uuid.UUID, error) {
	var vendor models.Vendor
	err := r.db.WithContext(ctx).
		Select("id").
		First(&vendor, "user_id = ?", userID).Error
	if err != nil {
		return uuid.Nil, err
	}
	return vendor.ID, nil
}

func (r *repository) CreateResetRequest(ctx context.Context, request *models.PasswordResetRequest) (*models.PasswordResetRequest, error) {
	if err := r.db.WithContext(ctx).Create(request).Error; err != nil {
		return nil, err
	}
	return request, nil
}

func (r *repository) FindActiveResetRequest(ctx context.Context, userID uuid.UUID, token string) (*models.PasswordResetRequest, error) {
	var request models.PasswordResetRequest
	err := r.db.WithContext(ctx).
		First(&request, "user_id = ? AND token = ? AND used_at IS NULL AND expires_at > NOW()", userID, token).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *repository) MarkResetRequestUsed(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.PasswordResetRequest{}).
		Where("id = ?", id).
		Update("used_at", time.Now().UTC()).Error
}
