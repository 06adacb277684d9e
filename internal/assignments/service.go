package assignments

import (
	"context"
	"fmt"
	"time"

	"github.com/sapradeep123/do-good-hub-backend/pkg/db/models"
	"github.com/sapradeep123/do-good-hub-backend/pkg/enums"
	pkgerrors "github.com/sapradeep123/do-good-hub-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// AssignResult bundles the rows touched by the unified assign flow.
type AssignResult struct {
	Assignment *models.PackageAssignment       `json:"assignment"`
	VendorLink *models.VendorPackageAssignment `json:"vendor_link"`
}

// DeliveryUpdateInput carries the fields accepted by SetDeliveryDate. The
// reason is appended to the assignment notes; status, when present, must be
// a known assignment status.
type DeliveryUpdateInput struct {
	PackageID    uuid.UUID
	NGOID        uuid.UUID
	DeliveryDate time.Time
	Reason       *string
	Status       *string
}

// Service defines the package/NGO/vendor assignment operations.
type Service interface {
	AssignNGO(ctx context.Context, packageID, ngoID uuid.UUID) (*models.PackageAssignment, error)
	AssignVendor(ctx context.Context, packageID, ngoID, vendorID uuid.UUID) (*AssignResult, error)
	Assign(ctx context.Context, packageID, ngoID, vendorID uuid.UUID) (*AssignResult, error)
	UnassignNGO(ctx context.Context, packageID, ngoID uuid.UUID) error
	UnassignVendor(ctx context.Context, packageID, ngoID, vendorID uuid.UUID) error
	AvailableNGOs(ctx context.Context, packageID uuid.UUID) ([]models.NGO, error)
	AvailableVendors(ctx context.Context, packageID, ngoID uuid.UUID) ([]models.Vendor, error)
	NGOOptions(ctx context.Context) ([]models.NGO, error)
	VendorOptions(ctx context.Context) ([]models.Vendor, error)
	SetDeliveryDate(ctx context.Context, input DeliveryUpdateInput) (*models.PackageAssignment, error)
}

type service struct {
	repo Repository
	tx   txRunner
}

// NewService builds an assignments service with the required dependencies.
func NewService(repo Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("assignments repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

func (s *service) AssignNGO(ctx context.Context, packageID, ngoID uuid.UUID) (*models.PackageAssignment, error) {
	if packageID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "package id required")
	}
	if ngoID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "ngo id required")
	}

	var assignment *models.PackageAssignment
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := s.requirePackageAndNGO(ctx, repo, packageID, ngoID); err != nil {
			return err
		}
		created, err := repo.UpsertAssignment(ctx, packageID, ngoID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upsert package assignment")
		}
		assignment = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return assignment, nil
}

func (s *service) AssignVendor(ctx context.Context, packageID, ngoID, vendorID uuid.UUID) (*AssignResult, error) {
	if packageID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "package id required")
	}
	if ngoID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "ngo id required")
	}
	if vendorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vendor id required")
	}

	var result AssignResult
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := s.requirePackageAndNGO(ctx, repo, packageID, ngoID); err != nil {
			return err
		}
		if _, err := repo.FindVendor(ctx, vendorID); err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "vendor not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vendor")
		}

		assignment, err := repo.UpsertAssignment(ctx, packageID, ngoID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upsert package assignment")
		}
		link, err := repo.UpsertVendorLink(ctx, vendorID, assignment.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upsert vendor assignment")
		}
		result.Assignment = assignment
		result.VendorLink = link
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *service) Assign(ctx context.Context, packageID, ngoID, vendorID uuid.UUID) (*AssignResult, error) {
	if ngoID == uuid.Nil || vendorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "ngo id and vendor id required")
	}
	return s.AssignVendor(ctx, packageID, ngoID, vendorID)
}

func (s *service) UnassignNGO(ctx context.Context, packageID, ngoID uuid.UUID) error {
	if packageID == uuid.Nil || ngoID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "package id and ngo id required")
	}

	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		assignment, err := repo.FindAssignment(ctx, packageID, ngoID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "ngo not assigned to this package")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load package assignment")
		}
		// Vendor links reference the assignment row, so they go first.
		if err := repo.DeleteVendorLinksForAssignment(ctx, assignment.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete vendor assignments")
		}
		if err := repo.DeleteAssignment(ctx, assignment.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete package assignment")
		}
		return nil
	})
}

func (s *service) UnassignVendor(ctx context.Context, packageID, ngoID, vendorID uuid.UUID) error {
	if packageID == uuid.Nil || ngoID == uuid.Nil || vendorID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "package id, ngo id and vendor id required")
	}

	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		assignment, err := repo.FindAssignment(ctx, packageID, ngoID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "ngo not assigned to this package")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load package assignment")
		}
		deleted, err := repo.DeleteVendorLink(ctx, vendorID, assignment.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete vendor assignment")
		}
		if deleted == 0 {
			return pkgerrors.New(pkgerrors.CodeNotFound, "vendor not assigned to this package and ngo")
		}
		return nil
	})
}

func (s *service) AvailableNGOs(ctx context.Context, packageID uuid.UUID) ([]models.NGO, error) {
	if packageID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "package id required")
	}
	if _, err := s.repo.FindPackage(ctx, packageID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "package not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load package")
	}
	ngos, err := s.repo.ListAvailableNGOs(ctx, packageID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list available ngos")
	}
	return ngos, nil
}

func (s *service) AvailableVendors(ctx context.Context, packageID, ngoID uuid.UUID) ([]models.Vendor, error) {
	if packageID == uuid.Nil || ngoID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "package id and ngo id required")
	}
	assignment, err := s.repo.FindAssignment(ctx, packageID, ngoID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "ngo not assigned to this package")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load package assignment")
	}
	vendors, err := s.repo.ListAvailableVendors(ctx, assignment.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list available vendors")
	}
	return vendors, nil
}

func (s *service) NGOOptions(ctx context.Context) ([]models.NGO, error) {
	ngos, err := s.repo.ListNGOOptions(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list ngo options")
	}
	return ngos, nil
}

func (s *service) VendorOptions(ctx context.Context) ([]models.Vendor, error) {
	vendors, err := s.repo.ListVendorOptions(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list vendor options")
	}
	return vendors, nil
}

func (s *service) SetDeliveryDate(ctx context.Context, input DeliveryUpdateInput) (*models.PackageAssignment, error) {
	if input.PackageID == uuid.Nil || input.NGOID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "package id and ngo id required")
	}
	if input.DeliveryDate.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "delivery date required")
	}

	updates := map[string]any{
		"delivery_date": input.DeliveryDate,
		"updated_at":    time.Now().UTC(),
	}
	if input.Reason != nil && *input.Reason != "" {
		updates["notes"] = *input.Reason
	}
	if input.Status != nil {
		status, err := enums.ParseAssignmentStatus(*input.Status)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid assignment status")
		}
		updates["status"] = status
	}

	var updated *models.PackageAssignment
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		assignment, err := repo.FindAssignment(ctx, input.PackageID, input.NGOID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "ngo not assigned to this package")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load package assignment")
		}
		if err := repo.UpdateAssignment(ctx, assignment.ID, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update package assignment")
		}
		reloaded, err := repo.FindAssignment(ctx, input.PackageID, input.NGOID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload package assignment")
		}
		updated = reloaded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *service) requirePackageAndNGO(ctx context.Context, repo Repository, packageID, ngoID uuid.UUID) error {
	if _, err := repo.FindPackage(ctx, packageID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return pkgerrors.New(pkgerrors.CodeNotFound, "package not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load package")
	}
	if _, err := repo.FindNGO(ctx, ngoID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return pkgerrors.New(pkgerrors.CodeNotFound, "ngo not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load ngo")
	}
	return nil
}
