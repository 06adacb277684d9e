package ngos

import (
	"context"

	"github.com/sapradeep123/do-good-hub-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds an ngos repository bound to the provided DB.
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
	SELECT n.*, p.first_name, p.last_name, p.email AS user_email
	FROM ngos n
	JOIN profiles p ON p.user_id = n.user_id
`

func (r *repository) ListWithContacts(ctx context.Context) ([]NGOWithContact, error) {
	var rows []NGOWithContact
	err := r.db.WithContext(ctx).
		Raw(contactSelect + ` ORDER BY n.created_at DESC`).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) ListWithContactsForUser(ctx context.Context, userID uuid.UUID) ([]NGOWithContact, error) {
	var rows []NGOWithContact
	err := r.db.WithContext(ctx).
		Raw(contactSelect+` WHERE n.user_id = ? ORDER BY n.created_at DESC`, userID).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) FindWithContact(ctx context.Context, id uuid.UUID) (*NGOWithContact, error) {
	var row NGOWithContact
	res := r.db.WithContext(ctx).
		Raw(contactSelect+` WHERE n.id = ?`, id).
		Scan(&row)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &row, nil
}

func (r *repository) FindNGO(ctx context.Context, id uuid.UUID) (*models.NGO, error) {
	var ngo models.NGO
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&ngo).Error; err != nil {
		return nil, err
	}
	return &ngo, nil
}

func (r *repository) FindNGOByEmail(ctx context.Context, email string) (*models.NGO, error) {
	var ngo models.NGO
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&ngo).Error; err != nil {
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

func (r *repository) CreateProfile(ctx context.Context, profile *models.Profile) (*models.Profile, error) {
	if err := r.db.WithContext(ctx).Create(profile).Error; err != nil {
		return nil, err
	}
	return profile, nil
}

func (r *repository) CreateNGO(ctx context.Context, ngo *models.NGO) (*models.NGO, error) {
	if err := r.db.WithContext(ctx).Create(ngo).Error; err != nil {
		return nil, err
	}
	return ngo, nil
}

func (r *repository) UpdateNGO(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.NGO{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) ListPackages(ctx context.Context, ngoID uuid.UUID) ([]NGOPackage, error) {
	var rows []NGOPackage
	err := r.db.WithContext(ctx).Raw(`
		SELECT p.id, p.title, p.description, p.amount, p.category, p.status,
			pa.id AS assignment_id, p.created_at,
			array_agg(DISTINCT vpa.vendor_id) FILTER (WHERE vpa.vendor_id IS NOT NULL) AS vendor_ids,
			array_agg(DISTINCT v.company_name) FILTER (WHERE v.company_name IS NOT NULL) AS vendor_names
		FROM packages p
		JOIN package_assignments pa ON pa.package_id = p.id AND pa.is_active = true
		LEFT JOIN vendor_package_assignments vpa ON vpa.package_assignment_id = pa.id
		LEFT JOIN vendors v ON v.id = vpa.vendor_id
		WHERE pa.ngo_id = ?
		GROUP BY p.id, pa.id
		ORDER BY p.created_at DESC
	`, ngoID).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
