package transactions

import (
	"context"

	"github.com/sapradeep123/do-good-hub-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a transactions repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindTransaction(ctx context.Context, id uuid.UUID) (*models.Transaction, error) {
	var txn models.Transaction
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&txn).Error; err != nil {
		return nil, err
	}
	return &txn, nil
}

func (r *repository) FindVendor(ctx context.Context, id uuid.UUID) (*models.Vendor, error) {
	var vendor models.Vendor
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&vendor).Error; err != nil {
		return nil, err
	}
	return &vendor, nil
}

func (r *repository) FindVendorByUserID(ctx context.Context, userID uuid.UUID) (*models.Vendor, error) {
	var vendor models.Vendor
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&vendor).Error; err != nil {
		return nil, err
	}
	return &vendor, nil
}

func (r *repository) FindNGOByUserID(ctx context.Context, userID uuid.UUID) (*models.NGO, error) {
	var ngo models.NGO
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&ngo).Error; err != nil {
		return nil, err
	}
	return &ngo, nil
}

func (r *repository) UpdateTransaction(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Where("id = ?", id).
		Updates(updates).Error
}

const summarySelect = `
	SELECT t.id, t.donation_id, t.donor_user_id, t.ngo_id, t.package_id,
		t.vendor_id, t.status, t.tracking_number,
		p.title AS package_title, n.name AS ngo_name,
		v.company_name AS vendor_name,
		t.assigned_at, t.shipped_at, t.delivered_at, t.completed_at,
		t.created_at
	FROM transactions t
	JOIN packages p ON p.id = t.package_id
	JOIN ngos n ON n.id = t.ngo_id
	LEFT JOIN vendors v ON v.id = t.vendor_id
`

func (r *repository) ListAll(ctx context.Context) ([]TransactionSummary, error) {
	var rows []TransactionSummary
	err := r.db.WithContext(ctx).
		Raw(summarySelect + ` ORDER BY t.created_at DESC`).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) ListByDonor(ctx context.Context, donorUserID uuid.UUID) ([]TransactionSummary, error) {
	var rows []TransactionSummary
	err := r.db.WithContext(ctx).
		Raw(summarySelect+` WHERE t.donor_user_id = ? ORDER BY t.created_at DESC`, donorUserID).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) ListByNGO(ctx context.Context, ngoID uuid.UUID) ([]TransactionSummary, error) {
	var rows []TransactionSummary
	err := r.db.WithContext(ctx).
		Raw(summarySelect+` WHERE t.ngo_id = ? ORDER BY t.created_at DESC`, ngoID).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]TransactionSummary, error) {
	var rows []TransactionSummary
	err := r.db.WithContext(ctx).
		Raw(summarySelect+` WHERE t.vendor_id = ? ORDER BY t.created_at DESC`, vendorID).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

const trackingSelect = `
	SELECT t.id, t.status, p.title AS package_title, n.name AS ngo_name,
		v.company_name AS vendor_name, t.tracking_number,
		t.shipped_at, t.delivered_at, t.completed_at, t.created_at
	FROM transactions t
	JOIN packages p ON p.id = t.package_id
	JOIN ngos n ON n.id = t.ngo_id
	LEFT JOIN vendors v ON v.id = t.vendor_id
`

func (r *repository) FindTrackingByID(ctx context.Context, id uuid.UUID) (*TrackingInfo, error) {
	var info TrackingInfo
	res := r.db.WithContext(ctx).
		Raw(trackingSelect+` WHERE t.id = ?`, id).
		Scan(&info)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &info, nil
}

func (r *repository) FindTrackingByNumber(ctx context.Context, trackingNumber string) (*TrackingInfo, error) {
	var info TrackingInfo
	res := r.db.WithContext(ctx).
		Raw(trackingSelect+` WHERE t.tracking_number = ?`, trackingNumber).
		Scan(&info)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &info, nil
}
