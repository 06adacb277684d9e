package auth

import (
	"github.com/sapradeep123/do-good-hub-backend/internal/users"
)

// LoginRequest captures the credentials sent to the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest carries the donor self-serve signup payload.
type RegisterRequest struct {
	Email     string  `json:"email" validate:"required,email"`
	Password  string  `json:"password" validate:"required,min=6"`
	FirstName string  `json:"first_name" validate:"required"`
	LastName  string  `json:"last_name" validate:"required"`
	Phone     *string `json:"phone,omitempty"`
}

// LoginResponse contains the token pair and user produced by a successful
// login or registration.
type LoginResponse struct {
	AccessToken  string             `json:"access_token"`
	RefreshToken string             `json:"refresh_token"`
	User         *users.UserAccount `json:"user"`
}

// ResetTokenResponse returns the generated reset token. Delivery over email
// is out of scope, so the token goes back to the caller directly.
type ResetTokenResponse struct {
	Token string `json:"token"`
}
