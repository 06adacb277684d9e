package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sapradeep123/do-good-hub-backend/pkg/enums"
)

// Order represents a donor's payment intent before gateway confirmation.
type Order struct {
	ID             uuid.UUID           `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	OrderRef       string              `gorm:"column:order_ref;type:text;not null;uniqueIndex"`
	UserID         uuid.UUID           `gorm:"column:user_id;type:uuid;not null"`
	PackageID      uuid.UUID           `gorm:"column:package_id;type:uuid;not null"`
	NGOID          uuid.UUID           `gorm:"column:ngo_id;type:uuid;not null"`
	Amount         decimal.Decimal     `gorm:"column:amount;type:numeric(10,2);not null"`
	Quantity       int                 `gorm:"column:quantity;not null;default:1"`
	Status         enums.PaymentStatus `gorm:"column:status;type:text;not null;default:'pending'"`
	GatewayOrderID string              `gorm:"column:gateway_order_id;type:text;not null;uniqueIndex"`
	PaymentID      *string             `gorm:"column:payment_id"`
	CreatedAt      time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
