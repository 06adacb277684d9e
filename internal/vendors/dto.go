package vendors

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// VendorWithContact joins the vendor row with its profile contact fields.
type VendorWithContact struct {
	ID           uuid.UUID  `json:"id"`
	CompanyName  string     `gorm:"column:company_name" json:"company_name"`
	Email        string     `json:"email"`
	Phone        *string    `json:"phone,omitempty"`
	Description  *string    `json:"description,omitempty"`
	Address      *string    `json:"address,omitempty"`
	BusinessType *string    `gorm:"column:business_type" json:"business_type,omitempty"`
	Verified     bool       `json:"verified"`
	UserID       *uuid.UUID `gorm:"column:user_id" json:"user_id,omitempty"`
	FirstName    string     `gorm:"column:first_name" json:"first_name"`
	LastName     string     `gorm:"column:last_name" json:"last_name"`
	UserEmail    string     `gorm:"column:user_email" json:"user_email"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// ServedPair is one (NGO, package) combination a vendor fulfils.
type ServedPair struct {
	PackageID     uuid.UUID       `gorm:"column:package_id" json:"package_id"`
	PackageTitle  string          `gorm:"column:package_title" json:"package_title"`
	PackageAmount decimal.Decimal `gorm:"column:package_amount" json:"package_amount"`
	NGOID         uuid.UUID       `gorm:"column:ngo_id" json:"ngo_id"`
	NGOName       string          `gorm:"column:ngo_name" json:"ngo_name"`
	AssignmentID  uuid.UUID       `gorm:"column:assignment_id" json:"assignment_id"`
	AssignedAt    time.Time       `gorm:"column:assigned_at" json:"assigned_at"`
}

// VendorDetail is the get-by-id response: the vendor plus served pairs.
type VendorDetail struct {
	VendorWithContact
	ServedPairs []ServedPair `json:"served_pairs"`
}
