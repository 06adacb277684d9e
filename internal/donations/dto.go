package donations

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sapradeep123/do-good-hub-backend/pkg/enums"
)

// DonationEntry is a donation row joined with its package and NGO names.
// DonorEmail is only populated for admin listings.
type DonationEntry struct {
	ID            uuid.UUID           `gorm:"column:id"             json:"id"`
	UserID        uuid.UUID           `gorm:"column:user_id"        json:"user_id"`
	NGOID         uuid.UUID           `gorm:"column:ngo_id"         json:"ngo_id"`
	PackageID     uuid.UUID           `gorm:"column:package_id"     json:"package_id"`
	PackageTitle  string              `gorm:"column:package_title"  json:"package_title"`
	PackageAmount decimal.Decimal     `gorm:"column:package_amount" json:"package_amount"`
	TotalAmount   decimal.Decimal     `gorm:"column:total_amount"   json:"total_amount"`
	PaymentStatus enums.PaymentStatus `gorm:"column:payment_status" json:"payment_status"`
	TransactionID string              `gorm:"column:transaction_id" json:"transaction_id"`
	PackageName   *string             `gorm:"column:package_name"   json:"package_name"`
	NGOName       *string             `gorm:"column:ngo_name"       json:"ngo_name"`
	DonorEmail    *string             `gorm:"column:donor_email"    json:"donor_email,omitempty"`
	CreatedAt     time.Time           `gorm:"column:created_at"     json:"created_at"`
}

// OrderEntry is an order row joined with package, NGO, and (for admin
// listings) donor profile fields.
type OrderEntry struct {
	ID                 uuid.UUID           `gorm:"column:id"                  json:"id"`
	OrderRef           string              `gorm:"column:order_ref"           json:"order_ref"`
	UserID             uuid.UUID           `gorm:"column:user_id"             json:"user_id"`
	PackageID          uuid.UUID           `gorm:"column:package_id"          json:"package_id"`
	NGOID              uuid.UUID           `gorm:"column:ngo_id"              json:"ngo_id"`
	Amount             decimal.Decimal     `gorm:"column:amount"              json:"amount"`
	Quantity           int                 `gorm:"column:quantity"            json:"quantity"`
	Status             enums.PaymentStatus `gorm:"column:status"              json:"status"`
	PaymentID          *string             `gorm:"column:payment_id"          json:"payment_id"`
	PackageTitle       string              `gorm:"column:package_title"       json:"package_title"`
	PackageDescription *string             `gorm:"column:package_description" json:"package_description"`
	NGOName            string              `gorm:"column:ngo_name"            json:"ngo_name"`
	DonorFirstName     *string             `gorm:"column:first_name"          json:"first_name,omitempty"`
	DonorLastName      *string             `gorm:"column:last_name"           json:"last_name,omitempty"`
	DonorEmail         *string             `gorm:"column:user_email"          json:"user_email,omitempty"`
	CreatedAt          time.Time           `gorm:"column:created_at"          json:"created_at"`
}

// OrderStatistics aggregates the orders table for the admin dashboard.
type OrderStatistics struct {
	TotalOrders     int64            `gorm:"column:total_orders"     json:"total_orders"`
	CompletedOrders int64            `gorm:"column:completed_orders" json:"completed_orders"`
	PendingOrders   int64            `gorm:"column:pending_orders"   json:"pending_orders"`
	TotalAmount     decimal.Decimal  `gorm:"column:total_amount"     json:"total_amount"`
	AvgAmount       *decimal.Decimal `gorm:"column:avg_amount"       json:"avg_amount"`
}
