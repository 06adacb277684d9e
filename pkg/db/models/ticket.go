package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/sapradeep123/do-good-hub-backend/pkg/enums"
)

// Ticket is a support request raised by any authenticated caller.
type Ticket struct {
	ID        uuid.UUID          `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    uuid.UUID          `gorm:"column:user_id;type:uuid;not null"`
	Subject   string             `gorm:"type:text;not null"`
	Message   string             `gorm:"type:text;not null"`
	Status    enums.TicketStatus `gorm:"column:status;type:text;not null;default:'open'"`
	CreatedAt time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
