package donations

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sapradeep123/do-good-hub-backend/pkg/db/models"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds the gorm-backed donations repository.
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
	if err := r.db.WithContext(ctx).First(&pkg, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &pkg, nil
}

func (r *repository) FindNGO(ctx context.Context, id uuid.UUID) (*models.NGO, error) {
	var ngo models.NGO
	if err := r.db.WithContext(ctx).First(&ngo, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &ngo, nil
}

func (r *repository) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

func (r *repository) FindOrderByRef(ctx context.Context, orderRef string, userID uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		First(&order, "order_ref = ? AND user_id = ?", orderRef, userID).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) UpdateOrder(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) CreateDonation(ctx context.Context, donation *models.Donation) (*models.Donation, error) {
	if err := r.db.WithContext(ctx).Create(donation).Error; err != nil {
		return nil, err
	}
	return donation, nil
}

func (r *repository) CreateTransaction(ctx context.Context, txn *models.Transaction) (*models.Transaction, error) {
	if err := r.db.WithContext(ctx).Create(txn).Error; err != nil {
		return nil, err
	}
	return txn, nil
}

func (r *repository) EnsureAssignment(ctx context.Context, packageID, ngoID uuid.UUID) error {
	assignment := models.PackageAssignment{
		PackageID: packageID,
		NGOID:     ngoID,
		IsActive:  true,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "package_id"}, {Name: "ngo_id"}},
			DoNothing: true,
		}).
		Create(&assignment).Error
}

func (r *repository) ListDonationsForUser(ctx context.Context, userID uuid.UUID) ([]DonationEntry, error) {
	var rows []DonationEntry
	query := `
SELECT d.*, p.title AS package_name, n.name AS ngo_name
FROM donations d
LEFT JOIN packages p ON p.id = d.package_id
LEFT JOIN ngos n ON n.id = d.ngo_id
WHERE d.user_id = ?
ORDER BY d.created_at DESC`
	if err := r.db.WithContext(ctx).Raw(query, userID).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) ListDonationsAll(ctx context.Context) ([]DonationEntry, error) {
	var rows []DonationEntry
	query := `
SELECT d.*, p.title AS package_name, n.name AS ngo_name, pr.email AS donor_email
FROM donations d
LEFT JOIN packages p ON p.id = d.package_id
LEFT JOIN ngos n ON n.id = d.ngo_id
LEFT JOIN profiles pr ON pr.user_id = d.user_id
ORDER BY d.created_at DESC`
	if err := r.db.WithContext(ctx).Raw(query).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

const orderSelect = `
SELECT o.*,
       p.title AS package_title,
       p.description AS package_description,
       n.name AS ngo_name,
       u.first_name,
       u.last_name,
       u.email AS user_email
FROM orders o
JOIN packages p ON p.id = o.package_id
JOIN ngos n ON n.id = o.ngo_id
JOIN profiles u ON u.user_id = o.user_id
`

func (r *repository) ListOrdersForUser(ctx context.Context, userID uuid.UUID) ([]OrderEntry, error) {
	var rows []OrderEntry
	query := orderSelect + "WHERE o.user_id = ?\nORDER BY o.created_at DESC"
	if err := r.db.WithContext(ctx).Raw(query, userID).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) ListOrdersAll(ctx context.Context) ([]OrderEntry, error) {
	var rows []OrderEntry
	query := orderSelect + "ORDER BY o.created_at DESC"
	if err := r.db.WithContext(ctx).Raw(query).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) ListRecentOrders(ctx context.Context, limit int) ([]OrderEntry, error) {
	var rows []OrderEntry
	query := orderSelect + "ORDER BY o.created_at DESC\nLIMIT ?"
	if err := r.db.WithContext(ctx).Raw(query, limit).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) AggregateOrders(ctx context.Context) (*OrderStatistics, error) {
	var stats OrderStatistics
	query := `
SELECT COUNT(*) AS total_orders,
       COUNT(*) FILTER (WHERE status = 'completed') AS completed_orders,
       COUNT(*) FILTER (WHERE status = 'pending') AS pending_orders,
       COALESCE(SUM(amount) FILTER (WHERE status = 'completed'), 0) AS total_amount,
       AVG(amount) FILTER (WHERE status = 'completed') AS avg_amount
FROM orders`
	if err := r.db.WithContext(ctx).Raw(query).Scan(&stats).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}
