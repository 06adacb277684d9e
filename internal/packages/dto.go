package packages

import (
	"time"

	dbtypes "github.com/sapradeep123/do-good-hub-backend/pkg/db/types"
	"github.com/sapradeep123/do-good-hub-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// PackageSummary is the aggregated list projection: one row per package
// with its active NGO and vendor assignments folded into arrays.
type PackageSummary struct {
	ID              uuid.UUID           `json:"id"`
	Title           string              `json:"title"`
	Description     *string             `json:"description,omitempty"`
	Amount          decimal.Decimal     `json:"amount"`
	Category        string              `json:"category"`
	Status          enums.PackageStatus `json:"status"`
	NGOID           *uuid.UUID          `json:"ngo_id,omitempty"`
	AssignedNGOs    dbtypes.UUIDArray   `gorm:"column:assigned_ngos" json:"assigned_ngos"`
	AssignedVendors dbtypes.UUIDArray   `gorm:"column:assigned_vendors" json:"assigned_vendors"`
	NGONames        pq.StringArray      `gorm:"column:ngo_names;type:text[]" json:"ngo_names"`
	VendorNames     pq.StringArray      `gorm:"column:vendor_names;type:text[]" json:"vendor_names"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

// AssignmentDetail is one (assignment, vendor) row in the package detail
// view; vendor columns are null for assignments with no vendor yet.
type AssignmentDetail struct {
	AssignmentID uuid.UUID              `gorm:"column:assignment_id" json:"assignment_id"`
	NGOID        uuid.UUID              `json:"ngo_id"`
	NGOName      string                 `gorm:"column:ngo_name" json:"ngo_name"`
	Status       enums.AssignmentStatus `json:"status"`
	DeliveryDate *time.Time             `json:"delivery_date,omitempty"`
	Notes        *string                `json:"notes,omitempty"`
	VendorID     *uuid.UUID             `json:"vendor_id,omitempty"`
	VendorName   *string                `gorm:"column:vendor_name" json:"vendor_name,omitempty"`
}

// PackageDetail combines the package row with its assignment breakdown.
type PackageDetail struct {
	Package     PackageSummary     `json:"package"`
	NGOName     *string            `json:"ngo_name,omitempty"`
	Assignments []AssignmentDetail `json:"assignments"`
}
