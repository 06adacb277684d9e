package assignments

import (
	"context"
	"time"

	"github.com/sapradeep123/do-good-hub-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds an assignments repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindPackage(ctx context.Context, id uuid.UUID) (*models.Package, error) {
	var pkg models.Package
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&pkg).Error; err != nil {
		return nil, err
	}
	return &pkg, nil
}

func (r *repository) FindNGO(ctx context.Context, id uuid.UUID) (*models.NGO, error) {
	var ngo models.NGO
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&ngo).Error; err != nil {
		return nil, err
	}
	return &ngo, nil
}

func (r *repository) FindVendor(ctx context.Context, id uuid.UUID) (*models.Vendor, error) {
	var vendor models.Vendor
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&vendor).Error; err != nil {
		return nil, err
	}
	return &vendor, nil
}

func (r *repository) FindAssignment(ctx context.Context, packageID, ngoID uuid.UUID) (*models.PackageAssignment, error) {
	var assignment models.PackageAssignment
	err := r.db.WithContext(ctx).
		Where("package_id = ? AND ngo_id = ?", packageID, ngoID).
		First(&assignment).Error
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

// UpsertAssignment inserts the (package, ngo) pair or reactivates the
// existing row. The unique constraint on (package_id, ngo_id) is the sole
// guard against concurrent assigns creating duplicates.
func (r *repository) UpsertAssignment(ctx context.Context, packageID, ngoID uuid.UUID) (*models.PackageAssignment, error) {
	assignment := models.PackageAssignment{
		PackageID: packageID,
		NGOID:     ngoID,
		IsActive:  true,
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "package_id"}, {Name: "ngo_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"is_active":  true,
				"updated_at": time.Now().UTC(),
			}),
		}).
		Create(&assignment).Error
	if err != nil {
		return nil, err
	}
	// The RETURNING clause does not fill generated columns on conflict with
	// every driver configuration, so re-read the canonical row.
	return r.FindAssignment(ctx, packageID, ngoID)
}

func (r *repository) UpdateAssignment(ctx context.Context, assignmentID uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.PackageAssignment{}).
		Where("id = ?", assignmentID).
		Updates(updates).Error
}

func (r *repository) DeleteAssignment(ctx context.Context, assignmentID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", assignmentID).
		Delete(&models.PackageAssignment{}).Error
}

func (r *repository) UpsertVendorLink(ctx context.Context, vendorID, assignmentID uuid.UUID) (*models.VendorPackageAssignment, error) {
	link := models.VendorPackageAssignment{
		VendorID:            vendorID,
		PackageAssignmentID: assignmentID,
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "vendor_id"}, {Name: "package_assignment_id"}},
			DoNothing: true,
		}).
		Create(&link).Error
	if err != nil {
		return nil, err
	}
	var existing models.VendorPackageAssignment
	err = r.db.WithContext(ctx).
		Where("vendor_id = ? AND package_assignment_id = ?", vendorID, assignmentID).
		First(&existing).Error
	if err != nil {
		return nil, err
	}
	return &existing, nil
}

func (r *repository) DeleteVendorLink(ctx context.Context, vendorID, assignmentID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("vendor_id = ? AND package_assignment_id = ?", vendorID, assignmentID).
		Delete(&models.VendorPackageAssignment{})
	return res.RowsAffected, res.Error
}

func (r *repository) DeleteVendorLinksForAssignment(ctx context.Context, assignmentID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("package_assignment_id = ?", assignmentID).
		Delete(&models.VendorPackageAssignment{}).Error
}

// ListAvailableNGOs returns NGOs without an active assignment to the given
// package. When names collide case-insensitively the newest row wins.
func (r *repository) ListAvailableNGOs(ctx context.Context, packageID uuid.UUID) ([]models.NGO, error) {
	var ngos []models.NGO
	err := r.db.WithContext(ctx).Raw(`
		SELECT DISTINCT ON (LOWER(name)) *
		FROM ngos
		WHERE id NOT IN (
			SELECT ngo_id FROM package_assignments
			WHERE package_id = ? AND is_active = true
		)
		ORDER BY LOWER(name), created_at DESC
	`, packageID).Scan(&ngos).Error
	if err != nil {
		return nil, err
	}
	return ngos, nil
}

func (r *repository) ListAvailableVendors(ctx context.Context, assignmentID uuid.UUID) ([]models.Vendor, error) {
	var vendors []models.Vendor
	err := r.db.WithContext(ctx).Raw(`
		SELECT DISTINCT ON (LOWER(company_name)) *
		FROM vendors
		WHERE id NOT IN (
			SELECT vendor_id FROM vendor_package_assignments
			WHERE package_assignment_id = ?
		)
		ORDER BY LOWER(company_name), created_at DESC
	`, assignmentID).Scan(&vendors).Error
	if err != nil {
		return nil, err
	}
	return vendors, nil
}

func (r *repository) ListNGOOptions(ctx context.Context) ([]models.NGO, error) {
	var ngos []models.NGO
	err := r.db.WithContext(ctx).Raw(`
		SELECT DISTINCT ON (LOWER(name)) *
		FROM ngos
		ORDER BY LOWER(name), created_at DESC
	`).Scan(&ngos).Error
	if err != nil {
		return nil, err
	}
	return ngos, nil
}

func (r *repository) ListVendorOptions(ctx context.Context) ([]models.Vendor, error) {
	var vendors []models.Vendor
	err := r.db.WithContext(ctx).Raw(`
		SELECT DISTINCT ON (LOWER(company_name)) *
		FROM vendors
		ORDER BY LOWER(company_name), created_at DESC
	`).Scan(&vendors).Error
	if err != nil {
		return nil, err
	}
	return vendors, nil
}
