package ngos

import (
	"context"
	"fmt"
	"strings"
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

// NGOInput carries the writable NGO fields for create and update. Location
// is a single "City, State" string split on write.
type NGOInput struct {
	Name               string
	Email              string
	Description        *string
	Mission            *string
	Location           *string
	Phone              *string
	WebsiteURL         *string
	RegistrationNumber *string
	IsActive           bool
}

// Service defines NGO management operations.
type Service interface {
	List(ctx context.Context, caller CallerInput) ([]NGOWithContact, error)
	Get(ctx context.Context, id uuid.UUID, caller CallerInput) (*NGODetail, error)
	Packages(ctx context.Context, id uuid.UUID, caller CallerInput) ([]NGOPackage, error)
	Create(ctx context.Context, input NGOInput) (*models.NGO, error)
	Update(ctx context.Context, id uuid.UUID, input NGOInput) (*models.NGO, error)
}

type service struct {
	repo        Repository
	tx          txRunner
	passwordCfg config.PasswordConfig
}

// NewService builds an ngos service with the required dependencies.
func NewService(repo Repository, tx txRunner, passwordCfg config.PasswordConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("ngos repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx, passwordCfg: passwordCfg}, nil
}

func (s *service) List(ctx context.Context, caller CallerInput) ([]NGOWithContact, error) {
	if caller.Role == enums.RoleNGO {
		rows, err := s.repo.ListWithContactsForUser(ctx, caller.ActorUserID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list ngos")
		}
		return rows, nil
	}
	rows, err := s.repo.ListWithContacts(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list ngos")
	}
	return rows, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID, caller CallerInput) (*NGODetail, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "ngo id required")
	}

	ngo, err := s.repo.FindWithContact(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "ngo not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load ngo")
	}
	if caller.Role == enums.RoleNGO {
		if ngo.UserID == nil || *ngo.UserID != caller.ActorUserID {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "access denied")
		}
	}

	packages, err := s.repo.ListPackages(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load ngo packages")
	}
	if caller.Role == enums.RoleVendor {
		vendor, err := s.repo.FindVendorByUserID(ctx, caller.ActorUserID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				packages = nil
			} else {
				return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vendor profile")
			}
		} else {
			packages = filterPackagesByVendor(packages, vendor.ID)
		}
	}

	return &NGODetail{NGOWithContact: *ngo, Packages: packages}, nil
}

func (s *service) Packages(ctx context.Context, id uuid.UUID, caller CallerInput) ([]NGOPackage, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "ngo id required")
	}
	if caller.Role == enums.RoleNGO {
		owned, err := s.repo.FindNGOByUserID(ctx, caller.ActorUserID)
		if err != nil || owned.ID != id {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "access denied")
		}
	}
	packages, err := s.repo.ListPackages(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load ngo packages")
	}
	return packages, nil
}

func (s *service) Create(ctx context.Context, input NGOInput) (*models.NGO, error) {
	if input.Name == "" || input.Email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name and email required")
	}

	if _, err := s.repo.FindNGOByEmail(ctx, input.Email); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "ngo with this email already exists")
	} else if err != gorm.ErrRecordNotFound {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check ngo email")
	}

	tempPassword, err := security.GenerateTempPassword(tempPasswordLength)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate temp password")
	}
	passwordHash, err := security.HashPassword(tempPassword, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	city, state := splitLocation(input.Location)

	var created *models.NGO
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		profile, err := repo.CreateProfile(ctx, &models.Profile{
			UserID:       uuid.New(),
			Email:        input.Email,
			PasswordHash: passwordHash,
			FirstName:    input.Name,
			LastName:     "",
			Role:         enums.RoleNGO,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create ngo profile")
		}

		userID := profile.UserID
		ngo := &models.NGO{
			Name:               input.Name,
			Email:              input.Email,
			Description:        input.Description,
			Mission:            input.Mission,
			Website:            input.WebsiteURL,
			City:               city,
			State:              state,
			Phone:              input.Phone,
			RegistrationNumber: input.RegistrationNumber,
			Verified:           input.IsActive,
			UserID:             &userID,
		}
		saved, err := repo.CreateNGO(ctx, ngo)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create ngo")
		}
		created = saved
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input NGOInput) (*models.NGO, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "ngo id required")
	}
	if input.Name == "" || input.Email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name and email required")
	}

	var updated *models.NGO
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		ngo, err := repo.FindNGO(ctx, id)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "ngo not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load ngo")
		}

		if input.Email != ngo.Email {
			if _, err := repo.FindNGOByEmail(ctx, input.Email); err == nil {
				return pkgerrors.New(pkgerrors.CodeConflict, "ngo with this email already exists")
			} else if err != gorm.ErrRecordNotFound {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check ngo email")
			}
		}

		city, state := splitLocation(input.Location)
		updates := map[string]any{
			"name":       input.Name,
			"email":      input.Email,
			"verified":   input.IsActive,
			"updated_at": time.Now().UTC(),
		}
		if input.Description != nil {
			updates["description"] = *input.Description
		}
		if input.Mission != nil {
			updates["mission"] = *input.Mission
		}
		if input.WebsiteURL != nil {
			updates["website"] = *input.WebsiteURL
		}
		if input.Phone != nil {
			updates["phone"] = *input.Phone
		}
		if input.RegistrationNumber != nil {
			updates["registration_number"] = *input.RegistrationNumber
		}
		if city != nil {
			updates["city"] = *city
		}
		if state != nil {
			updates["state"] = *state
		}
		if err := repo.UpdateNGO(ctx, id, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update ngo")
		}

		ngo.Name = input.Name
		ngo.Email = input.Email
		ngo.Verified = input.IsActive
		updated = ngo
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func filterPackagesByVendor(packages []NGOPackage, vendorID uuid.UUID) []NGOPackage {
	var out []NGOPackage
	for _, pkg := range packages {
		for _, id := range pkg.VendorIDs {
			if id == vendorID {
				out = append(out, pkg)
				break
			}
		}
	}
	return out
}

func splitLocation(location *string) (city, state *string) {
	if location == nil || strings.TrimSpace(*location) == "" {
		return nil, nil
	}
	parts := strings.SplitN(*location, ",", 2)
	c := strings.TrimSpace(parts[0])
	city = &c
	if len(parts) == 2 {
		st := strings.TrimSpace(parts[1])
		state = &st
	}
	return city, state
}
