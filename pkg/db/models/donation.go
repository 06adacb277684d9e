package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sapradeep123/do-good-hub-backend/pkg/enums"
)

// Donation records a completed payment. PackageTitle and PackageAmount are
// denormalized snapshots taken at payment time.
type Donation struct {
	ID            uuid.UUID           `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID        uuid.UUID           `gorm:"column:user_id;type:uuid;not null"`
	NGOID         uuid.UUID           `gorm:"column:ngo_id;type:uuid;not null"`
	PackageID     uuid.UUID           `gorm:"column:package_id;type:uuid;not null"`
	PackageTitle  string              `gorm:"column:package_title;type:text;not null"`
	PackageAmount decimal.Decimal     `gorm:"column:package_amount;type:numeric(10,2);not null"`
	TotalAmount   decimal.Decimal     `gorm:"column:total_amount;type:numeric(10,2);not null"`
	PaymentStatus enums.PaymentStatus `gorm:"column:payment_status;type:text;not null;default:'pending'"`
	TransactionID string              `gorm:"column:transaction_id;type:text;not null"`
	CreatedAt     time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
