package packages

import (
	"context"

	"github.com/sapradeep123/do-good-hub-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a packages repository bound to the provided DB.
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

func (r *repository) FindNGOByUserID(ctx context.Context, userID uuid.UUID) (*models.NGO, error) {
	var ngo models.NGO
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&ngo).Error; err != nil {
		return nil, err
	}
	return &ngo, nil
}

func (r *repository) FindVendorByUserID(ctx context.Context, userID uuid.UUID) (*models.Vendor, error) {
	var vendor models.Vendor
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&vendor).Error; err != nil {
		return nil, err
	}
	return &vendor, nil
}

func (r *repository) CreatePackage(ctx context.Context, pkg *models.Package) (*models.Package, error) {
	if err := r.db.WithContext(ctx).Create(pkg).Error; err != nil {
		return nil, err
	}
	return pkg, nil
}

func (r *repository) UpdatePackage(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Package{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// summarySelect folds a package's active assignment graph into arrays. The
// vendor join goes through vendor_package_assignments; package_assignments
// itself carries no vendor column.
const summarySelect = `
	SELECT p.id, p.title, p.description, p.amount, p.category, p.status,
		p.ngo_id, p.created_at, p.updated_at,
		array_agg(DISTINCT pa.ngo_id) FILTER (WHERE pa.ngo_id IS NOT NULL) AS assigned_ngos,
		array_agg(DISTINCT vpa.vendor_id) FILTER (WHERE vpa.vendor_id IS NOT NULL) AS assigned_vendors,
		array_agg(DISTINCT n.name) FILTER (WHERE n.name IS NOT NULL) AS ngo_names,
		array_agg(DISTINCT v.company_name) FILTER (WHERE v.company_name IS NOT NULL) AS vendor_names
	FROM packages p
	LEFT JOIN package_assignments pa ON pa.package_id = p.id AND pa.is_active = true
	LEFT JOIN ngos n ON n.id = pa.ngo_id
	LEFT JOIN vendor_package_assignments vpa ON vpa.package_assignment_id = pa.id
	LEFT JOIN vendors v ON v.id = vpa.vendor_id
`

func (r *repository) ListSummaries(ctx context.Context) ([]PackageSummary, error) {
	var rows []PackageSummary
	err := r.db.WithContext(ctx).
		Raw(summarySelect + ` GROUP BY p.id ORDER BY p.created_at DESC`).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) ListSummariesForNGO(ctx context.Context, ngoID uuid.UUID) ([]PackageSummary, error) {
	var rows []PackageSummary
	err := r.db.WithContext(ctx).
		Raw(summarySelect+` WHERE p.ngo_id = ? GROUP BY p.id ORDER BY p.created_at DESC`, ngoID).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) ListSummariesForVendor(ctx context.Context, vendorID uuid.UUID) ([]PackageSummary, error) {
	var rows []PackageSummary
	err := r.db.WithContext(ctx).
		Raw(summarySelect+`
			WHERE p.id IN (
				SELECT pa2.package_id FROM package_assignments pa2
				JOIN vendor_package_assignments vpa2 ON vpa2.package_assignment_id = pa2.id
				WHERE vpa2.vendor_id = ? AND pa2.is_active = true
			)
			GROUP BY p.id ORDER BY p.created_at DESC`, vendorID).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) FindSummary(ctx context.Context, id uuid.UUID) (*PackageSummary, error) {
	var row PackageSummary
	res := r.db.WithContext(ctx).
		Raw(summarySelect+` WHERE p.id = ? GROUP BY p.id`, id).
		Scan(&row)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &row, nil
}

func (r *repository) FindNGOName(ctx context.Context, ngoID uuid.UUID) (*string, error) {
	var name string
	res := r.db.WithContext(ctx).
		Raw(`SELECT name FROM ngos WHERE id = ?`, ngoID).
		Scan(&name)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return &name, nil
}

const assignmentDetailSelect = `
	SELECT pa.id AS assignment_id, pa.ngo_id, n.name AS ngo_name, pa.status,
		pa.delivery_date, pa.notes, vpa.vendor_id, v.company_name AS vendor_name
	FROM package_assignments pa
	JOIN ngos n ON n.id = pa.ngo_id
	LEFT JOIN vendor_package_assignments vpa ON vpa.package_assignment_id = pa.id
	LEFT JOIN vendors v ON v.id = vpa.vendor_id
	WHERE pa.package_id = ? AND pa.is_active = true
`

func (r *repository) ListAssignmentDetails(ctx context.Context, packageID uuid.UUID) ([]AssignmentDetail, error) {
	var rows []AssignmentDetail
	err := r.db.WithContext(ctx).
		Raw(assignmentDetailSelect+` ORDER BY n.name`, packageID).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) ListAssignmentDetailsForVendor(ctx context.Context, packageID, vendorID uuid.UUID) ([]AssignmentDetail, error) {
	var rows []AssignmentDetail
	err := r.db.WithContext(ctx).
		Raw(assignmentDetailSelect+` AND vpa.vendor_id = ? ORDER BY n.name`, packageID, vendorID).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) ListActiveAssignments(ctx context.Context, packageID uuid.UUID) ([]models.PackageAssignment, error) {
	var assignments []models.PackageAssignment
	err := r.db.WithContext(ctx).
		Where("package_id = ? AND is_active = true", packageID).
		Order("created_at ASC").
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}
	return assignments, nil
}

func (r *repository) ListVendorLinks(ctx context.Context, assignmentID uuid.UUID) ([]models.VendorPackageAssignment, error) {
	var links []models.VendorPackageAssignment
	err := r.db.WithContext(ctx).
		Where("package_assignment_id = ?", assignmentID).
		Order("created_at ASC").
		Find(&links).Error
	if err != nil {
		return nil, err
	}
	return links, nil
}

func (r *repository) CreateAssignment(ctx context.Context, assignment *models.PackageAssignment) (*models.PackageAssignment, error) {
	if err := r.db.WithContext(ctx).Create(assignment).Error; err != nil {
		return nil, err
	}
	return assignment, nil
}

func (r *repository) CreateVendorLink(ctx context.Context, link *models.VendorPackageAssignment) (*models.VendorPackageAssignment, error) {
	if err := r.db.WithContext(ctx).Create(link).Error; err != nil {
		return nil, err
	}
	return link, nil
}
