package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sapradeep123/do-good-hub-backend/internal/users"
	pkgauth "github.com/sapradeep123/do-good-hub-backend/pkg/auth"
	"github.com/sapradeep123/do-good-hub-backend/pkg/auth/session"
	"github.com/sapradeep123/do-good-hub-backend/pkg/config"
	"github.com/sapradeep123/do-good-hub-backend/pkg/db/models"
	"github.com/sapradeep123/do-good-hub-backend/pkg/enums"
	pkgerrors "github.com/sapradeep123/do-good-hub-backend/pkg/errors"
	"github.com/sapradeep123/do-good-hub-backend/pkg/security"
)

const (
	invalidCredentialsMessage = "invalid credentials"
	resetTokenLength          = 32
	resetTokenTTL             = time.Hour
)

// Service defines the behavior needed by the auth controller.
type Service interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	Register(ctx context.Context, req RegisterRequest) (*LoginResponse, error)
	Me(ctx context.Context, userID uuid.UUID) (*users.UserAccount, error)
	RequestPasswordReset(ctx context.Context, email string) (*ResetTokenResponse, error)
	ConfirmPasswordReset(ctx context.Context, email, token, newPassword string) error
}

type sessionManager interface {
	Generate(ctx context.Context, accessID string) (string, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	repo        Repository
	tx          txRunner
	session     sessionManager
	jwtCfg      config.JWTConfig
	passwordCfg config.PasswordConfig
}

// ServiceParams bundles the dependencies required to build an auth service.
type ServiceParams struct {
	Repository     Repository
	TxRunner       txRunner
	SessionManager sessionManager
	JWTConfig      config.JWTConfig
	PasswordConfig config.PasswordConfig
}

// NewService constructs the auth service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repository == nil {
		return nil, fmt.Errorf("auth: repository is required")
	}
	if params.TxRunner == nil {
		return nil, fmt.Errorf("auth: tx runner is required")
	}
	if params.SessionManager == nil {
		return nil, fmt.Errorf("auth: session manager is required")
	}
	return &service{
		repo:        params.Repository,
		tx:          params.TxRunner,
		session:     params.SessionManager,
		jwtCfg:      params.JWTConfig,
		passwordCfg: params.PasswordConfig,
	}, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	profile, err := s.repo.FindProfileByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup profile")
	}
	if profile.PasswordHash == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "password not set, ask an admin to reset it")
	}

	valid, err := security.VerifyPassword(req.Password, profile.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !valid {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	now := time.Now().UTC()
	if err := s.repo.UpdateLastLogin(ctx, profile.UserID, now); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update last login")
	}
	profile.LastLoginAt = &now

	return s.issueTokens(ctx, profile, now)
}

func (s *service) Me(ctx context.Context, userID uuid.UUID) (*users.UserAccount, error) {
	profile, err := s.repo.FindProfileByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup profile")
	}
	return users.FromProfile(profile), nil
}

func (s *service) RequestPasswordReset(ctx context.Context, email string) (*ResetTokenResponse, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}

	profile, err := s.repo.FindProfileByEmail(ctx, normalized)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup profile")
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

	return &ResetTokenResponse{Token: token}, nil
}

func (s *service) ConfirmPasswordReset(ctx context.Context, email, token, newPassword string) error {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" || token == "" || newPassword == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "email, token, and new password are required")
	}
	if len(newPassword) < minPasswordLength {
		return pkgerrors.New(pkgerrors.CodeValidation, "password must be at least 6 characters")
	}

	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		profile, err := repo.FindProfileByEmail(ctx, normalized)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeValidation, "invalid or expired reset token")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup profile")
		}

		request, err := repo.FindActiveResetRequest(ctx, profile.UserID, token)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
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

// issueTokens mints the JWT and stores the paired refresh session. NGO and
// vendor callers carry their entity id in the claims so handlers can scope
// reads without an extra lookup.
func (s *service) issueTokens(ctx context.Context, profile *models.Profile, now time.Time) (*LoginResponse, error) {
	var ngoID, vendorID *uuid.UUID
	switch profile.Role {
	case enums.RoleNGO:
		id, err := s.repo.FindNGOIDByUserID(ctx, profile.UserID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve ngo")
		}
		if err == nil {
			ngoID = &id
		}
	case enums.RoleVendor:
		id, err := s.repo.FindVendorIDByUserID(ctx, profile.UserID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve vendor")
		}
		if err == nil {
			vendorID = &id
		}
	}

	accessID := session.NewAccessID()
	accessToken, err := pkgauth.MintAccessToken(s.jwtCfg, now, pkgauth.AccessTokenPayload{
		UserID:   profile.UserID,
		Role:     profile.Role,
		NGOID:    ngoID,
		VendorID: vendorID,
		JTI:      accessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}
	refreshToken, err := s.session.Generate(ctx, accessID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "store session")
	}

	return &LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         users.FromProfile(profile),
	}, nil
}
