package transactions

import (
	"context"

	"github.com/sapradeep123/do-good-hub-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines persistence operations for donation fulfillment.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindTransaction(ctx context.Context, id uuid.UUID) (*models.Transaction, error)
	FindVendor(ctx context.Context, id uuid.UUID) (*models.Vendor, error)
	FindVendorByUserID(ctx context.Context, userID uuid.UUID) (*models.Vendor, error)
	FindNGOByUserID(ctx context.Context, userID uuid.UUID) (*models.NGO, error)
	UpdateTransaction(ctx context.Context, id uuid.UUID, updates map[string]any) error
	ListAll(ctx context.Context) ([]TransactionSummary, error)
	ListByDonor(ctx context.Context, donorUserID uuid.UUID) ([]TransactionSummary, error)
	ListByNGO(ctx context.Context, ngoID uuid.UUID) ([]TransactionSummary, error)
	ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]TransactionSummary, error)
	FindTrackingByID(ctx context.Context, id uuid.UUID) (*TrackingInfo, error)
	FindTrackingByNumber(ctx context.Context, trackingNumber string) (*TrackingInfo, error)
}
