package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sapradeep123/do-good-hub-backend/pkg/db/models"
)

// Repository exposes the persistence operations the auth flows need.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	FindProfileByEmail(ctx context.Context, email string) (*models.Profile, error)
	FindProfileByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
	CreateProfile(ctx context.Context, profile *models.Profile) (*models.Profile, error)
	UpdateLastLogin(ctx context.Context, userID uuid.UUID, at time.Time) error
	UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error

	FindNGOIDByUserID(ctx context.Context, userID uuid.UUID) (uuid.UUID, error)
	FindVendorIDByUserID(ctx context.Context, userID uuid.UUID) (uuid.UUID, error)

	CreateResetRequest(ctx context.Context, request *models.PasswordResetRequest) (*models.PasswordResetRequest, error)
	FindActiveResetRequest(ctx context.Context, userID uuid.UUID, token string) (*models.PasswordResetRequest, error)
	MarkResetRequestUsed(ctx context.Context, id uuid.UUID) error
}
