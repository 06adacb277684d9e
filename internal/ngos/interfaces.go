package ngos

import (
	"context"

	"github.com/sapradeep123/do-good-hub-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines persistence operations for NGO management.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	ListWithContacts(ctx context.Context) ([]NGOWithContact, error)
	ListWithContactsForUser(ctx context.Context, userID uuid.UUID) ([]NGOWithContact, error)
	FindWithContact(ctx context.Context, id uuid.UUID) (*NGOWithContact, error)
	FindNGO(ctx context.Context, id uuid.UUID) (*models.NGO, error)
	FindNGOByEmail(ctx context.Context, email string) (*models.NGO, error)
	FindNGOByUserID(ctx context.Context, userID uuid.UUID) (*models.NGO, error)
	FindVendorByUserID(ctx context.Context, userID uuid.UUID) (*models.Vendor, error)
	CreateProfile(ctx context.Context, profile *models.Profile) (*models.Profile, error)
	CreateNGO(ctx context.Context, ngo *models.NGO) (*models.NGO, error)
	UpdateNGO(ctx context.Context, id uuid.UUID, updates map[string]any) error
	ListPackages(ctx context.Context, ngoID uuid.UUID) ([]NGOPackage, error)
}
