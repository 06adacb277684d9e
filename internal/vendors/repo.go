package vendors

import (
	"context"

	"github.com/sapradeep123/do-good-hub-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a vendors repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

const contactSelect = `
	SELECT v.*, p.first_name, p.last_name, p.email AS user_email
	FROM vendors v
	JOIN profiles p ON p.user_id = v.user_id
`

func (r *repository) ListWithContacts(ctx context.Context) ([]VendorWithContact, error) {
	var rows []VendorWithContact
	err := r.db.WithContext(ctx).
		Raw(contactSelect + ` ORDER BY v.created_at DESC`).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) ListWithContactsForUser(ctx context.Context, userID uuid.UUID) ([]VendorWithContact, error) {
	var rows []VendorWithContact
	err := r.db.WithContext(ctx).
		Raw(contactSelect+` WHERE v.user_id = ? ORDER BY v.created_at DESC`, userID).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) FindWithContact(ctx context.Context, id uuid.UUID) (*VendorWithContact, error) {
	var row VendorWithContact
	res := r.db.WithContext(ctx).
		Raw(contactSelect+` WHERE v.id = ?`, id).
		Scan(&row)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &row, nil
}

func (r *repository) FindVendor(ctx context.Context, id uuid.UUID) (*models.Vendor, error) {
	var vendor models.Vendor
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&vendor).Error; err != nil {
		return nil, err
	}
	return &vendor, nil
}

func (r *repository) FindVendorByEmail(ctx context.Context, email string) (*models.Vendor, error) {
	var vendor models.Vendor
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&vendor).Error; err != nil {
		return nil, err
	}
	return &vendor, nil
}

func (r *repository) CreateProfile(ctx context.Context, profile *models.Profile) (*models.Profile, error) {
	if err := r.db.WithContext(ctx).Create(profile).Error; err != nil {
		return nil, err
	}
	return profile, nil
}

func (r *repository) CreateVendor(ctx context.Context, vendor *models.Vendor) (*models.Vendor, error) {
	if err := r.db.WithContext(ctx).Create(vendor).Error; err != nil {
		return nil, err
	}
	return vendor, nil
}

func (r *repository) UpdateVendor(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Vendor{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) ListServedPairs(ctx context.Context, vendorID uuid.UUID) ([]ServedPair, error) {
	var rows []ServedPair
	err := r.db.WithContext(ctx).Raw(`
		SELECT p.id AS package_id, p.title AS package_title,
			p.amount AS package_amount, n.id AS ngo_id, n.name AS ngo_name,
			pa.id AS assignment_id, vpa.created_at AS assigned_at
		FROM vendor_package_assignments vpa
		JOIN package_assignments pa ON pa.id = vpa.package_assignment_id
		JOIN packages p ON p.id = pa.package_id
		JOIN ngos n ON n.id = pa.ngo_id
		WHERE vpa.vendor_id = ? AND pa.is_active = true
		ORDER BY vpa.created_at DESC
	`, vendorID).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
