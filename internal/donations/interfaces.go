package donations

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sapradeep123/do-good-hub-backend/pkg/db/models"
)

// Repository exposes the persistence operations the donation flow needs.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	FindPackage(ctx context.Context, id uuid.UUID) (*models.Package, error)
	FindNGO(ctx context.Context, id uuid.UUID) (*models.NGO, error)

	CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error)
	FindOrderByRef(ctx context.Context, orderRef string, userID uuid.UUID) (*models.Order, error)
	UpdateOrder(ctx context.Context, id uuid.UUID, updates map[string]any) error

	CreateDonation(ctx context.Context, donation *models.Donation) (*models.Donation, error)
	CreateTransaction(ctx context.Context, txn *models.Transaction) (*models.Transaction, error)
	EnsureAssignment(ctx context.Context, packageID, ngoID uuid.UUID) error

	ListDonationsForUser(ctx context.Context, userID uuid.UUID) ([]DonationEntry, error)
	ListDonationsAll(ctx context.Context) ([]DonationEntry, error)
	ListOrdersForUser(ctx context.Context, userID uuid.UUID) ([]OrderEntry, error)
	ListOrdersAll(ctx context.Context) ([]OrderEntry, error)
	ListRecentOrders(ctx context.Context, limit int) ([]OrderEntry, error)
	AggregateOrders(ctx context.Context) (*OrderStatistics, error)
}
