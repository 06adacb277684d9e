package models

import (
	"time"

	"github.com/google/uuid"
)

// VendorPackageAssignment links a vendor to a specific package↔NGO
// assignment. Unique on (vendor_id, package_assignment_id).
type VendorPackageAssignment struct {
	ID                  int64     `gorm:"primaryKey;autoIncrement"`
	VendorID            uuid.UUID `gorm:"column:vendor_id;type:uuid;not null;uniqueIndex:ux_vendor_package_assignments_pair"`
	PackageAssignmentID uuid.UUID `gorm:"column:package_assignment_id;type:uuid;not null;uniqueIndex:ux_vendor_package_assignments_pair"`
	CreatedAt           time.Time `gorm:"column:created_at;autoCreateTime"`
}
