package cron

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/sapradeep123/do-good-hub-backend/pkg/db/models"
	"github.com/sapradeep123/do-good-hub-backend/pkg/enums"
)

// MaintenanceRepository holds the row-level operations the cron jobs run.
type MaintenanceRepository struct{}

// NewMaintenanceRepository builds the repository used by the cron worker.
func NewMaintenanceRepository() *MaintenanceRepository {
	return &MaintenanceRepository{}
}

// DeleteSpentResetRequests removes reset requests that were redeemed or
// that expired before the cutoff.
func (r *MaintenanceRepository) DeleteSpentResetRequests(ctx context.Context, tx *gorm.DB, cutoff time.Time) (int64, error) {
	result := tx.WithContext(ctx).
		Where("used_at IS NOT NULL OR expires_at < ?", cutoff).
		Delete(&models.PasswordResetRequest{})
	return result.RowsAffected, result.Error
}

// CancelPendingOrdersBefore marks never-completed payment orders as
// cancelled once they are older than the cutoff.
func (r *MaintenanceRepository) CancelPendingOrdersBefore(ctx context.Context, tx *gorm.DB, cutoff time.Time) (int64, error) {
	result := tx.WithContext(ctx).
		Model(&models.Order{}).
		Where("status = ? AND created_at < ?", enums.PaymentStatusPending, cutoff).
		Update("status", enums.PaymentStatusCancelled)
	return result.RowsAffected, result.Error
}
