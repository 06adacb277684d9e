package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/sapradeep123/do-good-hub-backend/pkg/db/models"
	"github.com/sapradeep123/do-good-hub-backend/pkg/enums"
)

// UserAccount is the transport shape of a profile without credentials.
type UserAccount struct {
	ID        uuid.UUID  `gorm:"column:id"         json:"id"`
	UserID    uuid.UUID  `gorm:"column:user_id"    json:"user_id"`
	Email     string     `gorm:"column:email"      json:"email"`
	FirstName string     `gorm:"column:first_name" json:"first_name"`
	LastName  string     `gorm:"column:last_name"  json:"last_name"`
	Phone     *string    `gorm:"column:phone"      json:"phone,omitempty"`
	Role      enums.Role `gorm:"column:role"       json:"role"`
	CreatedAt time.Time  `gorm:"column:created_at" json:"created_at"`
}

// FromProfile projects a profile row into its transport shape.
func FromProfile(p *models.Profile) *UserAccount {
	if p == nil {
		return nil
	}
	return &UserAccount{
		ID:        p.ID,
		UserID:    p.UserID,
		Email:     p.Email,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Phone:     p.Phone,
		Role:      p.Role,
		CreatedAt: p.CreatedAt,
	}
}

// UpdateUserInput carries the admin-editable profile fields.
type UpdateUserInput struct {
	Email     string  `json:"email"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Phone     *string `json:"phone"`
	Role      string  `json:"role"`
}

// ResetTokenResult returns the generated reset token alongside the account
// it was issued for.
type ResetTokenResult struct {
	Token string `json:"token"`
	Email string `json:"email"`
}
