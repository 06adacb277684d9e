package models

import (
	"time"

	"github.com/google/uuid"
)

// PageContent holds editable site copy keyed by slug.
type PageContent struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Slug      string     `gorm:"type:text;not null;uniqueIndex"`
	Title     string     `gorm:"type:text;not null"`
	Body      string     `gorm:"type:text;not null"`
	UpdatedBy *uuid.UUID `gorm:"column:updated_by;type:uuid"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName keeps the singular table name used by the migrations.
func (PageContent) TableName() string {
	return "page_content"
}
