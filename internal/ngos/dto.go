package ngos

import (
	"time"

	dbtypes "github.com/sapradeep123/do-good-hub-backend/pkg/db/types"
	"github.com/sapradeep123/do-good-hub-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// NGOWithContact joins the ngo row with its profile contact fields.
type NGOWithContact struct {
	ID                 uuid.UUID  `json:"id"`
	Name               string     `json:"name"`
	Email              string     `json:"email"`
	Description        *string    `json:"description,omitempty"`
	Mission            *string    `json:"mission,omitempty"`
	Website            *string    `json:"website,omitempty"`
	City               *string    `json:"city,omitempty"`
	State              *string    `json:"state,omitempty"`
	Phone              *string    `json:"phone,omitempty"`
	RegistrationNumber *string    `gorm:"column:registration_number" json:"registration_number,omitempty"`
	Verified           bool       `json:"verified"`
	UserID             *uuid.UUID `gorm:"column:user_id" json:"user_id,omitempty"`
	FirstName          string     `gorm:"column:first_name" json:"first_name"`
	LastName           string     `gorm:"column:last_name" json:"last_name"`
	UserEmail          string     `gorm:"column:user_email" json:"user_email"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// NGOPackage is one package assigned to an NGO with its vendor fan-out.
type NGOPackage struct {
	ID           uuid.UUID           `json:"id"`
	Title        string              `json:"title"`
	Description  *string             `json:"description,omitempty"`
	Amount       decimal.Decimal     `json:"amount"`
	Category     string              `json:"category"`
	Status       enums.PackageStatus `json:"status"`
	AssignmentID uuid.UUID           `gorm:"column:assignment_id" json:"assignment_id"`
	VendorIDs    dbtypes.UUIDArray   `gorm:"column:vendor_ids" json:"vendor_ids"`
	VendorNames  pq.StringArray      `gorm:"column:vendor_names;type:text[]" json:"vendor_names"`
	CreatedAt    time.Time           `json:"created_at"`
}

// NGODetail is the get-by-id response: the NGO plus its package graph.
type NGODetail struct {
	NGOWithContact
	Packages []NGOPackage `json:"packages"`
}
