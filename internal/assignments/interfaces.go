package assignments

import (
	"context"

	"github.com/sapradeep123/do-good-hub-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines persistence operations for the package/NGO/vendor
// assignment graph.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindPackage(ctx context.Context, id uuid.UUID) (*models.Package, error)
	FindNGO(ctx context.Context, id uuid.UUID) (*models.NGO, error)
	FindVendor(ctx context.Context, id uuid.UUID) (*models.Vendor, error)
	FindAssignment(ctx context.Context, packageID, ngoID uuid.UUID) (*models.PackageAssignment, error)
	UpsertAssignment(ctx context.Context, packageID, ngoID uuid.UUID) (*models.PackageAssignment, error)
	UpdateAssignment(ctx context.Context, assignmentID uuid.UUID, updates map[string]any) error
	DeleteAssignment(ctx context.Context, assignmentID uuid.UUID) error
	UpsertVendorLink(ctx context.Context, vendorID, assignmentID uuid.UUID) (*models.VendorPackageAssignment, error)
	DeleteVendorLink(ctx context.Context, vendorID, assignmentID uuid.UUID) (int64, error)
	DeleteVendorLinksForAssignment(ctx context.Context, assignmentID uuid.UUID) error
	ListAvailableNGOs(ctx context.Context, packageID uuid.UUID) ([]models.NGO, error)
	ListAvailableVendors(ctx context.Context, assignmentID uuid.UUID) ([]models.Vendor, error)
	ListNGOOptions(ctx context.Context) ([]models.NGO, error)
	ListVendorOptions(ctx context.Context) ([]models.Vendor, error)
}
