package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/sapradeep123/do-good-hub-backend/pkg/enums"
)

// PackageAssignment joins one Package to one NGO. The (package_id, ngo_id)
// pair is unique; re-assigning an existing pair reactivates the row instead
// of duplicating it.
type PackageAssignment struct {
	ID           uuid.UUID              `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	PackageID    uuid.UUID              `gorm:"column:package_id;type:uuid;not null;uniqueIndex:ux_package_assignments_package_ngo"`
	NGOID        uuid.UUID              `gorm:"column:ngo_id;type:uuid;not null;uniqueIndex:ux_package_assignments_package_ngo"`
	IsActive     bool                   `gorm:"column:is_active;not null;default:true"`
	Status       enums.AssignmentStatus `gorm:"column:status;type:text;not null;default:'pending'"`
	DeliveryDate *time.Time             `gorm:"column:delivery_date"`
	Notes        *string                `gorm:"column:notes"`
	CreatedAt    time.Time              `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time              `gorm:"column:updated_at;autoUpdateTime"`
}
