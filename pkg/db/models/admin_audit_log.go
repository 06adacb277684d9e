package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/sapradeep123/do-good-hub-backend/pkg/types"
)

// AdminAuditLog records privileged actions with a free-form detail payload.
type AdminAuditLog struct {
	ID          int64          `gorm:"primaryKey;autoIncrement"`
	AdminUserID uuid.UUID      `gorm:"column:admin_user_id;type:uuid;not null"`
	Action      string         `gorm:"type:text;not null"`
	Detail      *types.JSONMap `gorm:"column:detail;type:jsonb;serializer:json"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime"`
}

// TableName keeps the singular table name used by the migrations.
func (AdminAuditLog) TableName() string {
	return "admin_audit_log"
}
