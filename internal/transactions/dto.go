package transactions

import (
	"time"

	"github.com/sapradeep123/do-good-hub-backend/pkg/enums"
	"github.com/google/uuid"
)

// TransactionSummary is the joined projection used by the list endpoints.
type TransactionSummary struct {
	ID             uuid.UUID               `json:"id"`
	DonationID     *uuid.UUID              `json:"donation_id,omitempty"`
	DonorUserID    uuid.UUID               `json:"donor_user_id"`
	NGOID          uuid.UUID               `json:"ngo_id"`
	PackageID      uuid.UUID               `json:"package_id"`
	VendorID       *uuid.UUID              `json:"vendor_id,omitempty"`
	Status         enums.TransactionStatus `json:"status"`
	TrackingNumber *string                 `json:"tracking_number,omitempty"`
	PackageTitle   string                  `json:"package_title"`
	NGOName        string                  `json:"ngo_name"`
	VendorName     *string                 `json:"vendor_name,omitempty"`
	AssignedAt     *time.Time              `json:"assigned_at,omitempty"`
	ShippedAt      *time.Time              `json:"shipped_at,omitempty"`
	DeliveredAt    *time.Time              `json:"delivered_at,omitempty"`
	CompletedAt    *time.Time              `json:"completed_at,omitempty"`
	CreatedAt      time.Time               `json:"created_at"`
}

// TrackingInfo is the narrowed public projection returned by Track. It
// deliberately omits donor identity and internal notes.
type TrackingInfo struct {
	ID             uuid.UUID               `json:"id"`
	Status         enums.TransactionStatus `json:"status"`
	PackageTitle   string                  `json:"package_title"`
	NGOName        string                  `json:"ngo_name"`
	VendorName     *string                 `json:"vendor_name,omitempty"`
	TrackingNumber *string                 `json:"tracking_number,omitempty"`
	ShippedAt      *time.Time              `json:"shipped_at,omitempty"`
	DeliveredAt    *time.Time              `json:"delivered_at,omitempty"`
	CompletedAt    *time.Time              `json:"completed_at,omitempty"`
	CreatedAt      time.Time               `json:"created_at"`
}
