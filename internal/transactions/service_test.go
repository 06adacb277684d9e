package transactions

import (
	"context"
	"testing"
	"time"

	"github.com/sapradeep123/do-good-hub-backend/pkg/db/models"
	"github.com/sapradeep123/do-good-hub-backend/pkg/enums"
	pkgerrors "github.com/sapradeep123/do-good-hub-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type stubTxRunner struct{}

func (stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type stubTransactionsRepo struct {
	transactions map[uuid.UUID]*models.Transaction
	vendors      map[uuid.UUID]*models.Vendor
	ngos         map[uuid.UUID]*models.NGO

	listAll      func(ctx context.Context) ([]TransactionSummary, error)
	listByDonor  func(ctx context.Context, donorUserID uuid.UUID) ([]TransactionSummary, error)
	listByNGO    func(ctx context.Context, ngoID uuid.UUID) ([]TransactionSummary, error)
	listByVendor func(ctx context.Context, vendorID uuid.UUID) ([]TransactionSummary, error)
	tracking     map[string]*TrackingInfo
}

func newStubTransactionsRepo() *stubTransactionsRepo {
	return &stubTransactionsRepo{
		transactions: make(map[uuid.UUID]*models.Transaction),
		vendors:      make(map[uuid.UUID]*models.Vendor),
		ngos:         make(map[uuid.UUID]*models.NGO),
		tracking:     make(map[string]*TrackingInfo),
	}
}

func (s *stubTransactionsRepo) WithTx(tx *gorm.DB) Repository {
	return s
}

func (s *stubTransactionsRepo) FindTransaction(ctx context.Context, id uuid.UUID) (*models.Transaction, error) {
	if txn, ok := s.transactions[id]; ok {
		return txn, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubTransactionsRepo) FindVendor(ctx context.Context, id uuid.UUID) (*models.Vendor, error) {
	if vendor, ok := s.vendors[id]; ok {
		return vendor, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubTransactionsRepo) FindVendorByUserID(ctx context.Context, userID uuid.UUID) (*models.Vendor, error) {
	for _, vendor := range s.vendors {
		if vendor.UserID != nil && *vendor.UserID == userID {
			return vendor, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubTransactionsRepo) FindNGOByUserID(ctx context.Context, userID uuid.UUID) (*models.NGO, error) {
	for _, ngo := range s.ngos {
		if ngo.UserID != nil && *ngo.UserID == userID {
			return ngo, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubTransactionsRepo) UpdateTransaction(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	txn, ok := s.transactions[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if status, ok := updates["status"].(enums.TransactionStatus); ok {
		txn.Status = status
	}
	if vendorID, ok := updates["vendor_id"].(uuid.UUID); ok {
		txn.VendorID = &vendorID
	}
	if tracking, ok := updates["tracking_number"].(string); ok {
		txn.TrackingNumber = &tracking
	}
	return nil
}

func (s *stubTransactionsRepo) ListAll(ctx context.Context) ([]TransactionSummary, error) {
	if s.listAll != nil {
		return s.listAll(ctx)
	}
	return nil, nil
}

func (s *stubTransactionsRepo) ListByDonor(ctx context.Context, donorUserID uuid.UUID) ([]TransactionSummary, error) {
	if s.listByDonor != nil {
		return s.listByDonor(ctx, donorUserID)
	}
	return nil, nil
}

func (s *stubTransactionsRepo) ListByNGO(ctx context.Context, ngoID uuid.UUID) ([]TransactionSummary, error) {
	if s.listByNGO != nil {
		return s.listByNGO(ctx, ngoID)
	}
	return nil, nil
}

func (s *stubTransactionsRepo) ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]TransactionSummary, error) {
	if s.listByVendor != nil {
		return s.listByVendor(ctx, vendorID)
	}
	return nil, nil
}

func (s *stubTransactionsRepo) FindTrackingByID(ctx context.Context, id uuid.UUID) (*TrackingInfo, error) {
	if info, ok := s.tracking[id.String()]; ok {
		return info, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubTransactionsRepo) FindTrackingByNumber(ctx context.Context, trackingNumber string) (*TrackingInfo, error) {
	if info, ok := s.tracking[trackingNumber]; ok {
		return info, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func seedTransaction(repo *stubTransactionsRepo, status enums.TransactionStatus) *models.Transaction {
	txn := &models.Transaction{
		ID:          uuid.New(),
		DonorUserID: uuid.New(),
		NGOID:       uuid.New(),
		PackageID:   uuid.New(),
		Status:      status,
		CreatedAt:   time.Now().UTC(),
	}
	repo.transactions[txn.ID] = txn
	return txn
}

func seedVendorWithUser(repo *stubTransactionsRepo) (*models.Vendor, uuid.UUID) {
	userID := uuid.New()
	vendor := &models.Vendor{
		ID:          uuid.New(),
		CompanyName: "Acme Supplies",
		UserID:      &userID,
	}
	repo.vendors[vendor.ID] = vendor
	return vendor, userID
}

func TestAssignVendorProgressesFromPending(t *testing.T) {
	repo := newStubTransactionsRepo()
	txn := seedTransaction(repo, enums.TransactionStatusPending)
	vendor, _ := seedVendorWithUser(repo)
	svc, err := NewService(repo, stubTxRunner{})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	notes := "priority order"
	updated, err := svc.AssignVendor(context.Background(), AssignVendorInput{
		TransactionID: txn.ID,
		VendorID:      vendor.ID,
		AdminNotes:    &notes,
	})
	if err != nil {
		t.Fatalf("assign vendor: %v", err)
	}
	if updated.Status != enums.TransactionStatusAssignedToVendor {
		t.Fatalf("expected assigned_to_vendor, got %s", updated.Status)
	}
	if updated.VendorID == nil || *updated.VendorID != vendor.ID {
		t.Fatalf("vendor not recorded")
	}
	if updated.AssignedAt == nil {
		t.Fatalf("assigned_at not set")
	}
}

func TestAssignVendorRejectsWrongState(t *testing.T) {
	repo := newStubTransactionsRepo()
	txn := seedTransaction(repo, enums.TransactionStatusShipped)
	vendor, _ := seedVendorWithUser(repo)
	svc, _ := NewService(repo, stubTxRunner{})

	_, err := svc.AssignVendor(context.Background(), AssignVendorInput{
		TransactionID: txn.ID,
		VendorID:      vendor.ID,
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
}

func TestAssignVendorMissingEntities(t *testing.T) {
	repo := newStubTransactionsRepo()
	txn := seedTransaction(repo, enums.TransactionStatusPending)
	svc, _ := NewService(repo, stubTxRunner{})

	_, err := svc.AssignVendor(context.Background(), AssignVendorInput{
		TransactionID: uuid.New(),
		VendorID:      uuid.New(),
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for missing transaction, got %v", err)
	}

	_, err = svc.AssignVendor(context.Background(), AssignVendorInput{
		TransactionID: txn.ID,
		VendorID:      uuid.New(),
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for missing vendor, got %v", err)
	}
}

func TestShipOwnershipMismatchReadsAsNotFound(t *testing.T) {
	repo := newStubTransactionsRepo()
	txn := seedTransaction(repo, enums.TransactionStatusAssignedToVendor)
	assigned, _ := seedVendorWithUser(repo)
	txn.VendorID = &assigned.ID
	_, otherUserID := seedVendorWithUser(repo)
	svc, _ := NewService(repo, stubTxRunner{})

	_, err := svc.Ship(context.Background(), ShipInput{
		TransactionID:  txn.ID,
		ActorUserID:    otherUserID,
		TrackingNumber: "TRK-1001",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for foreign vendor, got %v", err)
	}
}

func TestShipSetsTrackingAndTimestamp(t *testing.T) {
	repo := newStubTransactionsRepo()
	txn := seedTransaction(repo, enums.TransactionStatusAssignedToVendor)
	vendor, userID := seedVendorWithUser(repo)
	txn.VendorID = &vendor.ID
	svc, _ := NewService(repo, stubTxRunner{})

	updated, err := svc.Ship(context.Background(), ShipInput{
		TransactionID:  txn.ID,
		ActorUserID:    userID,
		TrackingNumber: "TRK-1001",
	})
	if err != nil {
		t.Fatalf("ship: %v", err)
	}
	if updated.Status != enums.TransactionStatusShipped {
		t.Fatalf("expected shipped, got %s", updated.Status)
	}
	if updated.TrackingNumber == nil || *updated.TrackingNumber != "TRK-1001" {
		t.Fatalf("tracking number not recorded")
	}
	if updated.ShippedAt == nil {
		t.Fatalf("shipped_at not set")
	}
}

func TestShipRequiresTrackingNumber(t *testing.T) {
	repo := newStubTransactionsRepo()
	txn := seedTransaction(repo, enums.TransactionStatusAssignedToVendor)
	vendor, userID := seedVendorWithUser(repo)
	txn.VendorID = &vendor.ID
	svc, _ := NewService(repo, stubTxRunner{})

	_, err := svc.Ship(context.Background(), ShipInput{
		TransactionID: txn.ID,
		ActorUserID:   userID,
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestConfirmDeliveryRequiresShippedState(t *testing.T) {
	repo := newStubTransactionsRepo()
	txn := seedTransaction(repo, enums.TransactionStatusAssignedToVendor)
	userID := uuid.New()
	ngo := &models.NGO{ID: txn.NGOID, Name: "Hope Trust", UserID: &userID}
	repo.ngos[ngo.ID] = ngo
	svc, _ := NewService(repo, stubTxRunner{})

	_, err := svc.ConfirmDelivery(context.Background(), txn.ID, userID)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}

	txn.Status = enums.TransactionStatusShipped
	updated, err := svc.ConfirmDelivery(context.Background(), txn.ID, userID)
	if err != nil {
		t.Fatalf("confirm delivery: %v", err)
	}
	if updated.Status != enums.TransactionStatusDelivered || updated.DeliveredAt == nil {
		t.Fatalf("delivery not recorded")
	}
}

func TestConfirmDeliveryForeignNGOReadsAsNotFound(t *testing.T) {
	repo := newStubTransactionsRepo()
	txn := seedTransaction(repo, enums.TransactionStatusShipped)
	userID := uuid.New()
	other := &models.NGO{ID: uuid.New(), Name: "Other Trust", UserID: &userID}
	repo.ngos[other.ID] = other
	svc, _ := NewService(repo, stubTxRunner{})

	_, err := svc.ConfirmDelivery(context.Background(), txn.ID, userID)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for foreign ngo, got %v", err)
	}
}

func TestCompleteAllowedFromAnyState(t *testing.T) {
	for _, status := range []enums.TransactionStatus{
		enums.TransactionStatusPending,
		enums.TransactionStatusAssignedToVendor,
		enums.TransactionStatusShipped,
		enums.TransactionStatusDelivered,
	} {
		repo := newStubTransactionsRepo()
		txn := seedTransaction(repo, status)
		svc, _ := NewService(repo, stubTxRunner{})

		updated, err := svc.Complete(context.Background(), txn.ID, nil)
		if err != nil {
			t.Fatalf("complete from %s: %v", status, err)
		}
		if updated.Status != enums.TransactionStatusCompleted || updated.CompletedAt == nil {
			t.Fatalf("complete from %s not recorded", status)
		}
	}
}

func TestCompleteIsIdempotent(t *testing.T) {
	repo := newStubTransactionsRepo()
	txn := seedTransaction(repo, enums.TransactionStatusCompleted)
	done := time.Now().UTC().Add(-time.Hour)
	txn.CompletedAt = &done
	svc, _ := NewService(repo, stubTxRunner{})

	updated, err := svc.Complete(context.Background(), txn.ID, nil)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if !updated.CompletedAt.Equal(done) {
		t.Fatalf("completed_at overwritten on repeat call")
	}
}

func TestListScopesByRole(t *testing.T) {
	repo := newStubTransactionsRepo()
	vendor, vendorUserID := seedVendorWithUser(repo)
	ngoUserID := uuid.New()
	ngo := &models.NGO{ID: uuid.New(), Name: "Hope Trust", UserID: &ngoUserID}
	repo.ngos[ngo.ID] = ngo
	donorID := uuid.New()

	repo.listAll = func(ctx context.Context) ([]TransactionSummary, error) {
		return make([]TransactionSummary, 3), nil
	}
	repo.listByDonor = func(ctx context.Context, donorUserID uuid.UUID) ([]TransactionSummary, error) {
		if donorUserID != donorID {
			t.Fatalf("unexpected donor id")
		}
		return make([]TransactionSummary, 1), nil
	}
	repo.listByNGO = func(ctx context.Context, ngoID uuid.UUID) ([]TransactionSummary, error) {
		if ngoID != ngo.ID {
			t.Fatalf("unexpected ngo id")
		}
		return make([]TransactionSummary, 2), nil
	}
	repo.listByVendor = func(ctx context.Context, vendorID uuid.UUID) ([]TransactionSummary, error) {
		if vendorID != vendor.ID {
			t.Fatalf("unexpected vendor id")
		}
		return make([]TransactionSummary, 1), nil
	}

	svc, _ := NewService(repo, stubTxRunner{})

	cases := []struct {
		role   enums.Role
		userID uuid.UUID
		want   int
	}{
		{enums.RoleAdmin, uuid.New(), 3},
		{enums.RoleUser, donorID, 1},
		{enums.RoleNGO, ngoUserID, 2},
		{enums.RoleVendor, vendorUserID, 1},
	}
	for _, tc := range cases {
		rows, err := svc.List(context.Background(), ListInput{Role: tc.role, ActorUserID: tc.userID})
		if err != nil {
			t.Fatalf("list as %s: %v", tc.role, err)
		}
		if len(rows) != tc.want {
			t.Fatalf("list as %s: expected %d rows, got %d", tc.role, tc.want, len(rows))
		}
	}
}

func TestTrackByIDAndNumber(t *testing.T) {
	repo := newStubTransactionsRepo()
	id := uuid.New()
	info := &TrackingInfo{ID: id, Status: enums.TransactionStatusShipped, PackageTitle: "School Kit"}
	repo.tracking[id.String()] = info
	repo.tracking["TRK-1001"] = info
	svc, _ := NewService(repo, stubTxRunner{})

	byID, err := svc.Track(context.Background(), TrackInput{TransactionID: &id})
	if err != nil || byID.ID != id {
		t.Fatalf("track by id: %v", err)
	}

	number := "TRK-1001"
	byNumber, err := svc.Track(context.Background(), TrackInput{TrackingNumber: &number})
	if err != nil || byNumber.ID != id {
		t.Fatalf("track by number: %v", err)
	}

	_, err = svc.Track(context.Background(), TrackInput{})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error without identifiers, got %v", err)
	}

	missing := uuid.New()
	_, err = svc.Track(context.Background(), TrackInput{TransactionID: &missing})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
