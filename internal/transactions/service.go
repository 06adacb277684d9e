package transactions

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

// AssignVendorInput carries the admin's vendor assignment for a transaction.
type AssignVendorInput struct {
	TransactionID uuid.UUID
	VendorID      uuid.UUID
	AdminNotes    *string
}

// ShipInput carries the vendor's shipment confirmation.
type ShipInput struct {
	TransactionID  uuid.UUID
	ActorUserID    uuid.UUID
	TrackingNumber string
	VendorNotes    *string
}

// ListInput scopes the transaction list to the caller's role.
type ListInput struct {
	Role        enums.Role
	ActorUserID uuid.UUID
}

// TrackInput identifies a transaction publicly by id or tracking number.
type TrackInput struct {
	TransactionID  *uuid.UUID
	TrackingNumber *string
}

// Service defines the fulfillment state machine operations.
type Service interface {
	AssignVendor(ctx context.Context, input AssignVendorInput) (*models.Transaction, error)
	Ship(ctx context.Context, input ShipInput) (*models.Transaction, error)
	ConfirmDelivery(ctx context.Context, transactionID, actorUserID uuid.UUID) (*models.Transaction, error)
	Complete(ctx context.Context, transactionID uuid.UUID, adminNotes *string) (*models.Transaction, error)
	List(ctx context.Context, input ListInput) ([]TransactionSummary, error)
	Track(ctx context.Context, input TrackInput) (*TrackingInfo, error)
}

type service struct {
	repo Repository
	tx   txRunner
}

// NewService builds a transactions service with the required dependencies.
func NewService(repo Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("transactions repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

func (s *service) AssignVendor(ctx context.Context, input AssignVendorInput) (*models.Transaction, error) {
	if input.TransactionID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "transaction id required")
	}
	if input.VendorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vendor id required")
	}

	var result *models.Transaction
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		txn, err := s.loadTransaction(ctx, repo, input.TransactionID)
		if err != nil {
			return err
		}
		if _, err := repo.FindVendor(ctx, input.VendorID); err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "vendor not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vendor")
		}
		if err := requireTransition(txn.Status, enums.TransactionStatusAssignedToVendor); err != nil {
			return err
		}

		now := time.Now().UTC()
		updates := map[string]any{
			"vendor_id":   input.VendorID,
			"status":      enums.TransactionStatusAssignedToVendor,
			"assigned_at": now,
			"updated_at":  now,
		}
		if input.AdminNotes != nil {
			updates["admin_notes"] = *input.AdminNotes
		}
		if err := repo.UpdateTransaction(ctx, txn.ID, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "assign vendor")
		}

		vendorID := input.VendorID
		txn.VendorID = &vendorID
		txn.Status = enums.TransactionStatusAssignedToVendor
		txn.AssignedAt = &now
		txn.AdminNotes = input.AdminNotes
		result = txn
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *service) Ship(ctx context.Context, input ShipInput) (*models.Transaction, error) {
	if input.TransactionID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "transaction id required")
	}
	if input.TrackingNumber == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tracking number required")
	}
	if input.ActorUserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	var result *models.Transaction
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		txn, err := s.loadTransaction(ctx, repo, input.TransactionID)
		if err != nil {
			return err
		}
		// Ownership mismatches read as not-found so a vendor cannot probe
		// for other vendors' transactions.
		vendor, err := repo.FindVendorByUserID(ctx, input.ActorUserID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "transaction not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vendor profile")
		}
		if txn.VendorID == nil || *txn.VendorID != vendor.ID {
			return pkgerrors.New(pkgerrors.CodeNotFound, "transaction not found")
		}
		if err := requireTransition(txn.Status, enums.TransactionStatusShipped); err != nil {
			return err
		}

		now := time.Now().UTC()
		updates := map[string]any{
			"status":          enums.TransactionStatusShipped,
			"tracking_number": input.TrackingNumber,
			"shipped_at":      now,
			"updated_at":      now,
		}
		if input.VendorNotes != nil {
			updates["vendor_notes"] = *input.VendorNotes
		}
		if err := repo.UpdateTransaction(ctx, txn.ID, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark shipped")
		}

		tracking := input.TrackingNumber
		txn.Status = enums.TransactionStatusShipped
		txn.TrackingNumber = &tracking
		txn.ShippedAt = &now
		txn.VendorNotes = input.VendorNotes
		result = txn
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *service) ConfirmDelivery(ctx context.Context, transactionID, actorUserID uuid.UUID) (*models.Transaction, error) {
	if transactionID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "transaction id required")
	}
	if actorUserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	var result *models.Transaction
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		txn, err := s.loadTransaction(ctx, repo, transactionID)
		if err != nil {
			return err
		}
		ngo, err := repo.FindNGOByUserID(ctx, actorUserID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "transaction not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load ngo profile")
		}
		if txn.NGOID != ngo.ID {
			return pkgerrors.New(pkgerrors.CodeNotFound, "transaction not found")
		}
		if err := requireTransition(txn.Status, enums.TransactionStatusDelivered); err != nil {
			return err
		}

		now := time.Now().UTC()
		updates := map[string]any{
			"status":       enums.TransactionStatusDelivered,
			"delivered_at": now,
			"updated_at":   now,
		}
		if err := repo.UpdateTransaction(ctx, txn.ID, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "confirm delivery")
		}

		txn.Status = enums.TransactionStatusDelivered
		txn.DeliveredAt = &now
		result = txn
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Complete closes out a transaction. Unlike the other transitions it is
// reachable from any state, covering admin corrections of stuck records.
func (s *service) Complete(ctx context.Context, transactionID uuid.UUID, adminNotes *string) (*models.Transaction, error) {
	if transactionID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "transaction id required")
	}

	var result *models.Transaction
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		txn, err := s.loadTransaction(ctx, repo, transactionID)
		if err != nil {
			return err
		}
		if txn.Status == enums.TransactionStatusCompleted {
			result = txn
			return nil
		}

		now := time.Now().UTC()
		updates := map[string]any{
			"status":       enums.TransactionStatusCompleted,
			"completed_at": now,
			"updated_at":   now,
		}
		if adminNotes != nil {
			updates["admin_notes"] = *adminNotes
		}
		if err := repo.UpdateTransaction(ctx, txn.ID, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "complete transaction")
		}

		txn.Status = enums.TransactionStatusCompleted
		txn.CompletedAt = &now
		if adminNotes != nil {
			txn.AdminNotes = adminNotes
		}
		result = txn
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *service) List(ctx context.Context, input ListInput) ([]TransactionSummary, error) {
	switch input.Role {
	case enums.RoleAdmin:
		rows, err := s.repo.ListAll(ctx)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list transactions")
		}
		return rows, nil
	case enums.RoleUser:
		if input.ActorUserID == uuid.Nil {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
		}
		rows, err := s.repo.ListByDonor(ctx, input.ActorUserID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list donor transactions")
		}
		return rows, nil
	case enums.RoleNGO:
		ngo, err := s.repo.FindNGOByUserID(ctx, input.ActorUserID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return []TransactionSummary{}, nil
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load ngo profile")
		}
		rows, err := s.repo.ListByNGO(ctx, ngo.ID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list ngo transactions")
		}
		return rows, nil
	case enums.RoleVendor:
		vendor, err := s.repo.FindVendorByUserID(ctx, input.ActorUserID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return []TransactionSummary{}, nil
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vendor profile")
		}
		rows, err := s.repo.ListByVendor(ctx, vendor.ID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list vendor transactions")
		}
		return rows, nil
	default:
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "role cannot list transactions")
	}
}

func (s *service) Track(ctx context.Context, input TrackInput) (*TrackingInfo, error) {
	switch {
	case input.TransactionID != nil && *input.TransactionID != uuid.Nil:
		info, err := s.repo.FindTrackingByID(ctx, *input.TransactionID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, "transaction not found")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "track transaction")
		}
		return info, nil
	case input.TrackingNumber != nil && *input.TrackingNumber != "":
		info, err := s.repo.FindTrackingByNumber(ctx, *input.TrackingNumber)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, "transaction not found")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "track transaction")
		}
		return info, nil
	default:
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "transaction_id or tracking_number required")
	}
}

func (s *service) loadTransaction(ctx context.Context, repo Repository, id uuid.UUID) (*models.Transaction, error) {
	txn, err := repo.FindTransaction(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "transaction not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load transaction")
	}
	return txn, nil
}

// requireTransition enforces the linear pending → assigned_to_vendor →
// shipped → delivered → completed progression.
func requireTransition(current, target enums.TransactionStatus) error {
	next, ok := current.Next()
	if !ok || next != target {
		return pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("cannot move transaction from %s to %s", current, target))
	}
	return nil
}
