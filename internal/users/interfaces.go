package users

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sapradeep123/do-good-hub-backend/pkg/db/models"
)

// Repository exposes the profile persistence operations the admin user
// surface needs.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	ListDeduped(ctx context.Context) ([]UserAccount, error)
	FindProfile(ctx context.Context, id uuid.UUID) (*models.Profile, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, updates map[string]any) error
	UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error

	CreateResetRequest(ctx context.Context, request *models.PasswordResetRequest) (*models.PasswordResetRequest, error)
	FindActiveResetRequest(ctx context.Context, userID uuid.UUID, token string) (*models.PasswordResetRequest, error)
	MarkResetRequestUsed(ctx context.Context, id uuid.UUID) error
}
