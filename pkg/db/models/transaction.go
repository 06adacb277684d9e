package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/sapradeep123/do-good-hub-backend/pkg/enums"
)

// Transaction tracks fulfillment of a completed donation from vendor
// assignment through delivery.
type Transaction struct {
	ID             uuid.UUID               `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	DonationID     *uuid.UUID              `gorm:"column:donation_id;type:uuid"`
	DonorUserID    uuid.UUID               `gorm:"column:donor_user_id;type:uuid;not null"`
	NGOID          uuid.UUID               `gorm:"column:ngo_id;type:uuid;not null"`
	PackageID      uuid.UUID               `gorm:"column:package_id;type:uuid;not null"`
	VendorID       *uuid.UUID              `gorm:"column:vendor_id;type:uuid"`
	Status         enums.TransactionStatus `gorm:"column:status;type:text;not null;default:'pending'"`
	TrackingNumber *string                 `gorm:"column:tracking_number"`
	AdminNotes     *string                 `gorm:"column:admin_notes"`
	VendorNotes    *string                 `gorm:"column:vendor_notes"`
	AssignedAt     *time.Time              `gorm:"column:assigned_at"`
	ShippedAt      *time.Time              `gorm:"column:shipped_at"`
	DeliveredAt    *time.Time              `gorm:"column:delivered_at"`
	CompletedAt    *time.Time              `gorm:"column:completed_at"`
	CreatedAt      time.Time               `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time               `gorm:"column:updated_at;autoUpdateTime"`
}
