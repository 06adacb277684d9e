package packages

import (
	"context"
	"fmt"
	"time"

	"github.com/sapradeep123/do-good-hub-backend/pkg/db/models"
	"github.com/sapradeep123/do-good-hub-backend/pkg/enums"
	pkgerrors "github.com/sapradeep123/do-good-hub-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// ListInput scopes the package list to the caller's role.
type ListInput struct {
	Role        enums.Role
	ActorUserID uuid.UUID
}

// PackageInput carries the writable package fields for create and update.
type PackageInput struct {
	Title       string
	Description *string
	Amount      decimal.Decimal
	Category    string
	IsActive    bool
	NGOID       uuid.UUID
}

// Service defines the package catalogue operations.
type Service interface {
	List(ctx context.Context, input ListInput) ([]PackageSummary, error)
	Get(ctx context.Context, id uuid.UUID, caller ListInput) (*PackageDetail, error)
	Create(ctx context.Context, input PackageInput) (*models.Package, error)
	Update(ctx context.Context, id uuid.UUID, input PackageInput) (*models.Package, error)
	Copy(ctx context.Context, id uuid.UUID, includeVendors bool) (*PackageSummary, error)
}

type service struct {
	repo Repository
	tx   txRunner
}

// NewService builds a packages service with the required dependencies.
func NewService(repo Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("packages repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

func (s *service) List(ctx context.Context, input ListInput) ([]PackageSummary, error) {
	switch input.Role {
	case enums.RoleAdmin:
		rows, err := s.repo.ListSummaries(ctx)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list packages")
		}
		return rows, nil
	case enums.RoleNGO:
		ngo, err := s.repo.FindNGOByUserID(ctx, input.ActorUserID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return []PackageSummary{}, nil
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load ngo profile")
		}
		rows, err := s.repo.ListSummariesForNGO(ctx, ngo.ID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list ngo packages")
		}
		return rows, nil
	case enums.RoleVendor:
		vendor, err := s.repo.FindVendorByUserID(ctx, input.ActorUserID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return []PackageSummary{}, nil
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vendor profile")
		}
		rows, err := s.repo.ListSummariesForVendor(ctx, vendor.ID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list vendor packages")
		}
		return rows, nil
	default:
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "role cannot list packages")
	}
}

func (s *service) Get(ctx context.Context, id uuid.UUID, caller ListInput) (*PackageDetail, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "package id required")
	}

	summary, err := s.repo.FindSummary(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "package not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load package")
	}

	detail := &PackageDetail{Package: *summary}
	if summary.NGOID != nil {
		name, err := s.repo.FindNGOName(ctx, *summary.NGOID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load ngo name")
		}
		detail.NGOName = name
	}

	switch caller.Role {
	case enums.RoleAdmin:
		assignments, err := s.repo.ListAssignmentDetails(ctx, id)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load assignments")
		}
		detail.Assignments = assignments
		return detail, nil
	case enums.RoleNGO:
		ngo, err := s.repo.FindNGOByUserID(ctx, caller.ActorUserID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, pkgerrors.New(pkgerrors.CodeForbidden, "access denied")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load ngo profile")
		}
		if summary.NGOID == nil || *summary.NGOID != ngo.ID {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "access denied")
		}
		assignments, err := s.repo.ListAssignmentDetails(ctx, id)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load assignments")
		}
		detail.Assignments = assignments
		return detail, nil
	case enums.RoleVendor:
		vendor, err := s.repo.FindVendorByUserID(ctx, caller.ActorUserID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, pkgerrors.New(pkgerrors.CodeForbidden, "access denied")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vendor profile")
		}
		assignments, err := s.repo.ListAssignmentDetailsForVendor(ctx, id, vendor.ID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vendor assignments")
		}
		if len(assignments) == 0 {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "access denied")
		}
		detail.Assignments = assignments
		return detail, nil
	default:
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "role cannot view packages")
	}
}

func (s *service) Create(ctx context.Context, input PackageInput) (*models.Package, error) {
	if err := validatePackageInput(input); err != nil {
		return nil, err
	}

	var created *models.Package
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if _, err := repo.FindNGO(ctx, input.NGOID); err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "ngo not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load ngo")
		}
		ngoID := input.NGOID
		pkg := &models.Package{
			Title:       input.Title,
			Description: input.Description,
			Amount:      input.Amount,
			Category:    input.Category,
			Status:      statusFromActive(input.IsActive),
			NGOID:       &ngoID,
		}
		saved, err := repo.CreatePackage(ctx, pkg)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create package")
		}
		created = saved
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input PackageInput) (*models.Package, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "package id required")
	}
	if err := validatePackageInput(input); err != nil {
		return nil, err
	}

	var updated *models.Package
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		pkg, err := repo.FindPackage(ctx, id)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "package not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load package")
		}
		if _, err := repo.FindNGO(ctx, input.NGOID); err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "ngo not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load ngo")
		}

		status := statusFromActive(input.IsActive)
		updates := map[string]any{
			"title":      input.Title,
			"amount":     input.Amount,
			"category":   input.Category,
			"status":     status,
			"ngo_id":     input.NGOID,
			"updated_at": time.Now().UTC(),
		}
		if input.Description != nil {
			updates["description"] = *input.Description
		}
		if err := repo.UpdatePackage(ctx, id, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update package")
		}

		ngoID := input.NGOID
		pkg.Title = input.Title
		pkg.Description = input.Description
		pkg.Amount = input.Amount
		pkg.Category = input.Category
		pkg.Status = status
		pkg.NGOID = &ngoID
		updated = pkg
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Copy duplicates a package together with its active assignment graph. The
// copy's title is suffixed so admins can tell the rows apart.
func (s *service) Copy(ctx context.Context, id uuid.UUID, includeVendors bool) (*PackageSummary, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "package id required")
	}

	var copied *PackageSummary
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		original, err := repo.FindPackage(ctx, id)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "package not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load package")
		}

		clone := &models.Package{
			Title:       original.Title + " (Copy)",
			Description: original.Description,
			Amount:      original.Amount,
			Category:    original.Category,
			Status:      original.Status,
			NGOID:       original.NGOID,
		}
		clone, err = repo.CreatePackage(ctx, clone)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "copy package")
		}

		assignments, err := repo.ListActiveAssignments(ctx, original.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load assignments")
		}
		for _, assignment := range assignments {
			dup, err := repo.CreateAssignment(ctx, &models.PackageAssignment{
				PackageID: clone.ID,
				NGOID:     assignment.NGOID,
				IsActive:  true,
				Status:    enums.AssignmentStatusPending,
			})
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "copy assignment")
			}
			if !includeVendors {
				continue
			}
			links, err := repo.ListVendorLinks(ctx, assignment.ID)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vendor links")
			}
			for _, link := range links {
				if _, err := repo.CreateVendorLink(ctx, &models.VendorPackageAssignment{
					VendorID:            link.VendorID,
					PackageAssignmentID: dup.ID,
				}); err != nil {
					return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "copy vendor link")
				}
			}
		}

		summary, err := repo.FindSummary(ctx, clone.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load copied package")
		}
		copied = summary
		return nil
	})
	if err != nil {
		return nil, err
	}
	return copied, nil
}

func validatePackageInput(input PackageInput) error {
	if input.Title == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "title required")
	}
	if input.Category == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "category required")
	}
	if !input.Amount.IsPositive() {
		return pkgerrors.New(pkgerrors.CodeValidation, "amount must be positive")
	}
	if input.NGOID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "ngo id required")
	}
	return nil
}

func statusFromActive(active bool) enums.PackageStatus {
	if active {
		return enums.PackageStatusActive
	}
	return enums.PackageStatusInactive
}
