package vendors

import (
	"context"
	"fmt"
	"time"

	"github.com/sapradeep123/do-good-hub-backend/pkg/config"
	"github.com/sapradeep123/do-good-hub-backend/pkg/db/models"
	"github.com/sapradeep123/do-good-hub-backend/pkg/enums"
	pkgerrors "github.com/sapradeep123/do-good-hub-backend/pkg/errors"
	"github.com/sapradeep123/do-good-hub-backend/pkg/security"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const tempPasswordLength = 16

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// CallerInput identifies the requester for role-scoped reads.
type CallerInput struct {
	Role        enums.Role
	ActorUserID uuid.UUID
}

// VendorInput carries the writable vendor fields for create and update.
type VendorInput struct {
	CompanyName  string
	Email        string
	Phone        *string
	Description  *string
	Address      *string
	BusinessType *string
	IsActive     bool
}

// Service defines vendor management operations.
type Service interface {
	List(ctx context.Context, caller CallerInput) ([]VendorWithContact, error)
	Get(ctx context.Context, id uuid.UUID, caller CallerInput) (*VendorDetail, error)
	Create(ctx context.Context, input VendorInput) (*models.Vendor, error)
	Update(ctx context.Context, id uuid.UUID, input VendorInput) (*models.Vendor, error)
}

type service struct {
	repo        Repository
	tx          txRunner
	passwordCfg config.PasswordConfig
}

// NewService builds a vendors service with the required dependencies.
func NewService(repo Repository, tx txRunner, passwordCfg config.PasswordConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("vendors repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx, passwordCfg: passwordCfg}, nil
}

func (s *service) List(ctx context.Context, caller CallerInput) ([]VendorWithContact, error) {
	if caller.Role == enums.RoleVendor {
		rows, err := s.repo.ListWithContactsForUser(ctx, caller.ActorUserID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list vendors")
		}
		return rows, nil
	}
	rows, err := s.repo.ListWithContacts(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list vendors")
	}
	return rows, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID, caller CallerInput) (*VendorDetail, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vendor id required")
	}

	vendor, err := s.repo.FindWithContact(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "vendor not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vendor")
	}
	if caller.Role == enums.RoleVendor {
		if vendor.UserID == nil || *vendor.UserID != caller.ActorUserID {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "access denied")
		}
	}

	pairs, err := s.repo.ListServedPairs(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load served pairs")
	}
	return &VendorDetail{VendorWithContact: *vendor, ServedPairs: pairs}, nil
}

func (s *service) Create(ctx context.Context, input VendorInput) (*models.Vendor, error) {
	if input.CompanyName == "" || input.Email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "company name and email required")
	}

	if _, err := s.repo.FindVendorByEmail(ctx, input.Email); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "vendor with this email already exists")
	} else if err != gorm.ErrRecordNotFound {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check vendor email")
	}

	tempPassword, err := security.GenerateTempPassword(tempPasswordLength)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate temp password")
	}
	passwordHash, err := security.HashPassword(tempPassword, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	var created *models.Vendor
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		profile, err := repo.CreateProfile(ctx, &models.Profile{
			UserID:       uuid.New(),
			Email:        input.Email,
			PasswordHash: passwordHash,
			FirstName:    input.CompanyName,
			LastName:     "",
			Role:         enums.RoleVendor,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create vendor profile")
		}

		userID := profile.UserID
		vendor := &models.Vendor{
			CompanyName:  input.CompanyName,
			Email:        input.Email,
			Phone:        input.Phone,
			Description:  input.Description,
			Address:      input.Address,
			BusinessType: input.BusinessType,
			Verified:     input.IsActive,
			UserID:       &userID,
		}
		saved, err := repo.CreateVendor(ctx, vendor)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create vendor")
		}
		created = saved
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input VendorInput) (*models.Vendor, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vendor id required")
	}
	if input.CompanyName == "" || input.Email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "company name and email required")
	}

	var updated *models.Vendor
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		vendor, err := repo.FindVendor(ctx, id)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "vendor not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vendor")
		}

		if input.Email != vendor.Email {
			if _, err := repo.FindVendorByEmail(ctx, input.Email); err == nil {
				return pkgerrors.New(pkgerrors.CodeConflict, "vendor with this email already exists")
			} else if err != gorm.ErrRecordNotFound {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check vendor email")
			}
		}

		updates := map[string]any{
			"company_name": input.CompanyName,
			"email":        input.Email,
			"verified":     input.IsActive,
			"updated_at":   time.Now().UTC(),
		}
		if input.Phone != nil {
			updates["phone"] = *input.Phone
		}
		if input.Description != nil {
			updates["description"] = *input.Description
		}
		if input.Address != nil {
			updates["address"] = *input.Address
		}
		if input.BusinessType != nil {
			updates["business_type"] = *input.BusinessType
		}
		if err := repo.UpdateVendor(ctx, id, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update vendor")
		}

		vendor.CompanyName = input.CompanyName
		vendor.Email = input.Email
		vendor.Verified = input.IsActive
		updated = vendor
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
