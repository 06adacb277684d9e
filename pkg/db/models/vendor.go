package models

import (
	"time"

	"github.com/google/uuid"
)

// Vendor represents a supplier that fulfils donation packages for NGOs.
type Vendor struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	CompanyName  string     `gorm:"column:company_name;type:text;not null"`
	Email        string     `gorm:"type:text;not null;uniqueIndex"`
	Phone        *string    `gorm:"column:phone"`
	Description  *string    `gorm:"column:description"`
	Address      *string    `gorm:"column:address"`
	BusinessType *string    `gorm:"column:business_type"`
	Verified     bool       `gorm:"column:verified;not null;default:false"`
	UserID       *uuid.UUID `gorm:"column:user_id;type:uuid"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
