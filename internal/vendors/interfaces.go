package vendors

import (
	"context"

	"github.com/sapradeep123/do-good-hub-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines persistence operations for vendor management.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	ListWithContacts(ctx context.Context) ([]VendorWithContact, error)
	ListWithContactsForUser(ctx context.Context, userID uuid.UUID) ([]VendorWithContact, error)
	FindWithContact(ctx context.Context, id uuid.UUID) (*VendorWithContact, error)
	FindVendor(ctx context.Context, id uuid.UUID) (*models.Vendor, error)
	FindVendorByEmail(ctx context.Context, email string) (*models.Vendor, error)
	CreateProfile(ctx context.Context, profile *models.Profile) (*models.Profile, error)
	CreateVendor(ctx context.Context, vendor *models.Vendor) (*models.Vendor, error)
	UpdateVendor(ctx context.Context, id uuid.UUID, updates map[string]any) error
	ListServedPairs(ctx context.Context, vendorID uuid.UUID) ([]ServedPair, error)
}
