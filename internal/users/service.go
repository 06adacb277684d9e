package users

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sapradeep123/do-good-hub-backend/pkg/config"
	"github.com/sapradeep123/do-good-hub-backend/pkg/db/models"
	"github.com/sapradeep123/do-good-hub-backend/pkg/enums"
	pkgerrors "github.com/sapradeep123/do-good-hub-backend/pkg/errors"
	"github.com/sapradeep123/do-good-hub-backend/pkg/security"
)

const (
	resetTokenLength = 32
	resetTokenTTL    = time.Hour
	minPasswordLen   = 6
)

// Service covers the admin user directory and the admin-driven password
// reset flow.
type Service interface {
	List(ctx context.Context) ([]UserAccount, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateUserInput) (*UserAccount, error)
	ResetPassword(ctx context.Context, id uuid.UUID) (*ResetTokenResult, error)
	ConfirmReset(ctx context.Context, id uuid.UUID, token, newPassword string) error
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	repo        Repository
	tx          txRunner
	passwordCfg config.PasswordConfig
}

// NewService wires the users service.
func NewService(repo Repository, tx txRunner, passwordCfg config.PasswordConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("users: repository is required")
	}
	if tx == nil {
		return nil, fmt.Errorf("users: tx runner is required")
	}
	return &service{repo: repo, tx: tx, passwordCfg: passwordCfg}, nil
}

func (s *service) List(ctx context.Context) ([]UserAccount, error) {
	rows, err := s.repo.ListDeduped(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list users")
	}
	return rows, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateUserInput) (*UserAccount, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.FirstName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email and first name are required")
	}
	role, err := enums.ParseRole(input.Role)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
	}

	profile, err := s.repo.FindProfile(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}

	updates := map[string]any{
		"email":      email,
		"first_name": input.FirstName,
		"last_name":  input.LastName,
		"role":       role,
		"updated_at": time.Now().UTC(),
	}
	if input.Phone != nil {
		updates["phone"] = *input.Phone
	}
	if err := s.repo.UpdateProfile(ctx, id, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update user")
	}

	profile.Email = email
	profile.FirstName = input.FirstName
	profile.LastName = input.LastName
	profile.Role = role
	if input.Phone != nil {
		profile.Phone = input.Phone
	}
	return FromProfile(profile), nil
}

func (s *service) ResetPassword(ctx context.Context, id uuid.UUID) (*ResetTokenResult, error) {
	profile, err := s.repo.FindProfile(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}

	token, err := security.GenerateTempPassword(resetTokenLength)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate reset token")
	}
	_, err = s.repo.CreateResetRequest(ctx, &models.PasswordResetRequest{
		UserID:    profile.UserID,
		Token:     token,
		ExpiresAt: time.Now().UTC().Add(resetTokenTTL),
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store reset request")
	}

	return &ResetTokenResult{Token: token, Email: profile.Email}, nil
}

func (s *service) ConfirmReset(ctx context.Context, id uuid.UUID, token, newPassword string) error {
	if token == "" || newPassword == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "token and new password are required")
	}
	if len(newPassword) < minPasswordLen {
		return pkgerrors.New(pkgerrors.CodeValidation, "password must be at least 6 characters")
	}

	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		profile, err := repo.FindProfile(ctx, id)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
		}

		request, err := repo.FindActiveResetRequest(ctx, profile.UserID, token)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeValidation, "invalid or expired reset token")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load reset request")
		}

		passwordHash, err := security.HashPassword(newPassword, s.passwordCfg)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
		}
		if err := repo.UpdatePassword(ctx, profile.UserID, passwordHash); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update password")
		}
		if err := repo.MarkResetRequestUsed(ctx, request.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark reset request used")
		}
		return nil
	})
}
