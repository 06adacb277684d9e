package users

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

// NewRepository builds the gorm-backed users repository.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

// ListDeduped keeps one row per email, case-insensitively, preferring the
// newest profile.
func (r *repository) ListDeduped(ctx context.Context) ([]UserAccount, error) {
	var rows []UserAccount
	query := `
SELECT DISTINCT ON (LOWER(email))
       id, user_id, email, first_name, last_name, phone, role, created_at
FROM profiles
ORDER BY LOWER(email), created_at DESC`
	if err := r.db.WithContext(ctx).Raw(query).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) FindProfile(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.WithContext(ctx).First(&profile, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *repository) UpdateProfile(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Profile{}).
		Where("id = ?", id).
		Updates(updates).Error
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
