package packages

import (
	"context"

	"github.com/sapradeep123/do-good-hub-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines persistence operations for donation packages.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindPackage(ctx context.Context, id uuid.UUID) (*models.Package, error)
	FindNGO(ctx context.Context, id uuid.UUID) (*models.NGO, error)
	FindNGOByUserID(ctx context.Context, userID uuid.UUID) (*models.NGO, error)
	FindVendorByUserID(ctx context.Context, userID uuid.UUID) (*models.Vendor, error)
	CreatePackage(ctx context.Context, pkg *models.Package) (*models.Package, error)
	UpdatePackage(ctx context.Context, id uuid.UUID, updates map[string]any) error
	ListSummaries(ctx context.Context) ([]PackageSummary, error)
	ListSummariesForNGO(ctx context.Context, ngoID uuid.UUID) ([]PackageSummary, error)
	ListSummariesForVendor(ctx context.Context, vendorID uuid.UUID) ([]PackageSummary, error)
	FindSummary(ctx context.Context, id uuid.UUID) (*PackageSummary, error)
	FindNGOName(ctx context.Context, ngoID uuid.UUID) (*string, error)
	ListAssignmentDetails(ctx context.Context, packageID uuid.UUID) ([]AssignmentDetail, error)
	ListAssignmentDetailsForVendor(ctx context.Context, packageID, vendorID uuid.UUID) ([]AssignmentDetail, error)
	ListActiveAssignments(ctx context.Context, packageID uuid.UUID) ([]models.PackageAssignment, error)
	ListVendorLinks(ctx context.Context, assignmentID uuid.UUID) ([]models.VendorPackageAssignment, error)
	CreateAssignment(ctx context.Context, assignment *models.PackageAssignment) (*models.PackageAssignment, error)
	CreateVendorLink(ctx context.Context, link *models.VendorPackageAssignment) (*models.VendorPackageAssignment, error)
}
