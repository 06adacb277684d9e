package models

import (
	"time"

	"github.com/google/uuid"
)

// NGO represents a registered non-profit that receives donation packages.
type NGO struct {
	ID                 uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name               string     `gorm:"type:text;not null"`
	Email              string     `gorm:"type:text;not null;uniqueIndex"`
	Description        *string    `gorm:"column:description"`
	Mission            *string    `gorm:"column:mission"`
	Website            *string    `gorm:"column:website"`
	City               *string    `gorm:"column:city"`
	State              *string    `gorm:"column:state"`
	Phone              *string    `gorm:"column:phone"`
	RegistrationNumber *string    `gorm:"column:registration_number"`
	Verified           bool       `gorm:"column:verified;not null;default:false"`
	UserID             *uuid.UUID `gorm:"column:user_id;type:uuid"`
	CreatedAt          time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
