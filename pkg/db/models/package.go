package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sapradeep123/do-good-hub-backend/pkg/enums"
)

// Package represents a donation offering. The package↔NGO relation is
// carried by PackageAssignment; NGOID here is only the default suggestion
// recorded at create/update time.
type Package struct {
	ID          uuid.UUID           `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Title       string              `gorm:"type:text;not null"`
	Description *string             `gorm:"column:description"`
	Amount      decimal.Decimal     `gorm:"column:amount;type:numeric(10,2);not null"`
	Category    string              `gorm:"type:text;not null"`
	Status      enums.PackageStatus `gorm:"column:status;type:text;not null;default:'active'"`
	NGOID       *uuid.UUID          `gorm:"column:ngo_id;type:uuid"`
	CreatedAt   time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
