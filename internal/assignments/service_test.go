package assignments

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

type stubAssignmentsRepo struct {
	packages    map[uuid.UUID]*models.Package
	ngos        map[uuid.UUID]*models.NGO
	vendors     map[uuid.UUID]*models.Vendor
	assignments map[string]*models.PackageAssignment
	vendorLinks map[string]*models.VendorPackageAssignment

	listAvailableNGOs    func(ctx context.Context, packageID uuid.UUID) ([]models.NGO, error)
	listAvailableVendors func(ctx context.Context, assignmentID uuid.UUID) ([]models.Vendor, error)
}

func newStubAssignmentsRepo() *stubAssignmentsRepo {
	return &stubAssignmentsRepo{
		packages:    make(map[uuid.UUID]*models.Package),
		ngos:        make(map[uuid.UUID]*models.NGO),
		vendors:     make(map[uuid.UUID]*models.Vendor),
		assignments: make(map[string]*models.PackageAssignment),
		vendorLinks: make(map[string]*models.VendorPackageAssignment),
	}
}

func pairKey(a, b uuid.UUID) string {
	return a.String() + "|" + b.String()
}

func (s *stubAssignmentsRepo) WithTx(tx *gorm.DB) Repository {
	return s
}

func (s *stubAssignmentsRepo) FindPackage(ctx context.Context, id uuid.UUID) (*models.Package, error) {
	if pkg, ok := s.packages[id]; ok {
		return pkg, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubAssignmentsRepo) FindNGO(ctx context.Context, id uuid.UUID) (*models.NGO, error) {
	if ngo, ok := s.ngos[id]; ok {
		return ngo, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubAssignmentsRepo) FindVendor(ctx context.Context, id uuid.UUID) (*models.Vendor, error) {
	if vendor, ok := s.vendors[id]; ok {
		return vendor, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubAssignmentsRepo) FindAssignment(ctx context.Context, packageID, ngoID uuid.UUID) (*models.PackageAssignment, error) {
	if assignment, ok := s.assignments[pairKey(packageID, ngoID)]; ok {
		return assignment, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubAssignmentsRepo) UpsertAssignment(ctx context.Context, packageID, ngoID uuid.UUID) (*models.PackageAssignment, error) {
	key := pairKey(packageID, ngoID)
	if existing, ok := s.assignments[key]; ok {
		existing.IsActive = true
		existing.UpdatedAt = time.Now().UTC()
		return existing, nil
	}
	assignment := &models.PackageAssignment{
		ID:        uuid.New(),
		PackageID: packageID,
		NGOID:     ngoID,
		IsActive:  true,
		Status:    enums.AssignmentStatusPending,
		CreatedAt: time.Now().UTC(),
	}
	s.assignments[key] = assignment
	return assignment, nil
}

func (s *stubAssignmentsRepo) UpdateAssignment(ctx context.Context, assignmentID uuid.UUID, updates map[string]any) error {
	for _, assignment := range s.assignments {
		if assignment.ID != assignmentID {
			continue
		}
		if date, ok := updates["delivery_date"].(time.Time); ok {
			assignment.DeliveryDate = &date
		}
		if notes, ok := updates["notes"].(string); ok {
			assignment.Notes = &notes
		}
		if status, ok := updates["status"].(enums.AssignmentStatus); ok {
			assignment.Status = status
		}
		return nil
	}
	return nil
}

func (s *stubAssignmentsRepo) DeleteAssignment(ctx context.Context, assignmentID uuid.UUID) error {
	for key, assignment := range s.assignments {
		if assignment.ID == assignmentID {
			delete(s.assignments, key)
		}
	}
	return nil
}

func (s *stubAssignmentsRepo) UpsertVendorLink(ctx context.Context, vendorID, assignmentID uuid.UUID) (*models.VendorPackageAssignment, error) {
	key := pairKey(vendorID, assignmentID)
	if existing, ok := s.vendorLinks[key]; ok {
		return existing, nil
	}
	link := &models.VendorPackageAssignment{
		ID:                  int64(len(s.vendorLinks) + 1),
		VendorID:            vendorID,
		PackageAssignmentID: assignmentID,
		CreatedAt:           time.Now().UTC(),
	}
	s.vendorLinks[key] = link
	return link, nil
}

func (s *stubAssignmentsRepo) DeleteVendorLink(ctx context.Context, vendorID, assignmentID uuid.UUID) (int64, error) {
	key := pairKey(vendorID, assignmentID)
	if _, ok := s.vendorLinks[key]; !ok {
		return 0, nil
	}
	delete(s.vendorLinks, key)
	return 1, nil
}

func (s *stubAssignmentsRepo) DeleteVendorLinksForAssignment(ctx context.Context, assignmentID uuid.UUID) error {
	for key, link := range s.vendorLinks {
		if link.PackageAssignmentID == assignmentID {
			delete(s.vendorLinks, key)
		}
	}
	return nil
}

func (s *stubAssignmentsRepo) ListAvailableNGOs(ctx context.Context, packageID uuid.UUID) ([]models.NGO, error) {
	if s.listAvailableNGOs != nil {
		return s.listAvailableNGOs(ctx, packageID)
	}
	return nil, nil
}

func (s *stubAssignmentsRepo) ListAvailableVendors(ctx context.Context, assignmentID uuid.UUID) ([]models.Vendor, error) {
	if s.listAvailableVendors != nil {
		return s.listAvailableVendors(ctx, assignmentID)
	}
	return nil, nil
}

func (s *stubAssignmentsRepo) ListNGOOptions(ctx context.Context) ([]models.NGO, error) {
	return nil, nil
}

func (s *stubAssignmentsRepo) ListVendorOptions(ctx context.Context) ([]models.Vendor, error) {
	return nil, nil
}

func seedGraph(repo *stubAssignmentsRepo) (pkgID, ngoID, vendorID uuid.UUID) {
	pkgID = uuid.New()
	ngoID = uuid.New()
	vendorID = uuid.New()
	repo.packages[pkgID] = &models.Package{ID: pkgID, Title: "School Kit"}
	repo.ngos[ngoID] = &models.NGO{ID: ngoID, Name: "Hope Trust"}
	repo.vendors[vendorID] = &models.Vendor{ID: vendorID, CompanyName: "Acme Supplies"}
	return pkgID, ngoID, vendorID
}

func TestAssignNGOIsIdempotent(t *testing.T) {
	repo := newStubAssignmentsRepo()
	pkgID, ngoID, _ := seedGraph(repo)
	svc, err := NewService(repo, stubTxRunner{})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	first, err := svc.AssignNGO(context.Background(), pkgID, ngoID)
	if err != nil {
		t.Fatalf("first assign: %v", err)
	}

	// Simulate an unassigned-then-reassigned pair.
	first.IsActive = false

	second, err := svc.AssignNGO(context.Background(), pkgID, ngoID)
	if err != nil {
		t.Fatalf("second assign: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("expected reactivated row, got new row")
	}
	if !second.IsActive {
		t.Fatalf("expected assignment reactivated")
	}
	if len(repo.assignments) != 1 {
		t.Fatalf("expected a single assignment row, got %d", len(repo.assignments))
	}
}

func TestAssignNGOMissingEntities(t *testing.T) {
	repo := newStubAssignmentsRepo()
	pkgID, ngoID, _ := seedGraph(repo)
	svc, _ := NewService(repo, stubTxRunner{})

	_, err := svc.AssignNGO(context.Background(), uuid.New(), ngoID)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for missing package, got %v", err)
	}

	_, err = svc.AssignNGO(context.Background(), pkgID, uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for missing ngo, got %v", err)
	}
}

func TestAssignVendorCreatesAssignmentImplicitly(t *testing.T) {
	repo := newStubAssignmentsRepo()
	pkgID, ngoID, vendorID := seedGraph(repo)
	svc, _ := NewService(repo, stubTxRunner{})

	result, err := svc.AssignVendor(context.Background(), pkgID, ngoID, vendorID)
	if err != nil {
		t.Fatalf("assign vendor: %v", err)
	}
	if result.Assignment == nil || result.VendorLink == nil {
		t.Fatalf("expected assignment and vendor link")
	}
	if result.VendorLink.PackageAssignmentID != result.Assignment.ID {
		t.Fatalf("vendor link not bound to assignment")
	}

	again, err := svc.AssignVendor(context.Background(), pkgID, ngoID, vendorID)
	if err != nil {
		t.Fatalf("repeat assign vendor: %v", err)
	}
	if again.VendorLink.ID != result.VendorLink.ID {
		t.Fatalf("expected idempotent vendor link, got duplicate")
	}
	if len(repo.vendorLinks) != 1 {
		t.Fatalf("expected a single vendor link, got %d", len(repo.vendorLinks))
	}
}

func TestUnifiedAssignRequiresBothIDs(t *testing.T) {
	repo := newStubAssignmentsRepo()
	pkgID, ngoID, vendorID := seedGraph(repo)
	svc, _ := NewService(repo, stubTxRunner{})

	_, err := svc.Assign(context.Background(), pkgID, ngoID, uuid.Nil)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	if _, err := svc.Assign(context.Background(), pkgID, ngoID, vendorID); err != nil {
		t.Fatalf("unified assign: %v", err)
	}
}

func TestUnassignNGORemovesVendorLinksFirst(t *testing.T) {
	repo := newStubAssignmentsRepo()
	pkgID, ngoID, vendorID := seedGraph(repo)
	svc, _ := NewService(repo, stubTxRunner{})

	if _, err := svc.AssignVendor(context.Background(), pkgID, ngoID, vendorID); err != nil {
		t.Fatalf("assign vendor: %v", err)
	}

	if err := svc.UnassignNGO(context.Background(), pkgID, ngoID); err != nil {
		t.Fatalf("unassign ngo: %v", err)
	}
	if len(repo.assignments) != 0 || len(repo.vendorLinks) != 0 {
		t.Fatalf("expected assignment and vendor links removed")
	}

	err := svc.UnassignNGO(context.Background(), pkgID, ngoID)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found after unassign, got %v", err)
	}
}

func TestUnassignVendorUnknownLink(t *testing.T) {
	repo := newStubAssignmentsRepo()
	pkgID, ngoID, vendorID := seedGraph(repo)
	svc, _ := NewService(repo, stubTxRunner{})

	if _, err := svc.AssignNGO(context.Background(), pkgID, ngoID); err != nil {
		t.Fatalf("assign ngo: %v", err)
	}

	err := svc.UnassignVendor(context.Background(), pkgID, ngoID, vendorID)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for unknown vendor link, got %v", err)
	}
}

func TestAvailableNGOsChecksPackage(t *testing.T) {
	repo := newStubAssignmentsRepo()
	pkgID, _, _ := seedGraph(repo)
	listed := false
	repo.listAvailableNGOs = func(ctx context.Context, packageID uuid.UUID) ([]models.NGO, error) {
		listed = true
		if packageID != pkgID {
			t.Fatalf("unexpected package id %s", packageID)
		}
		return []models.NGO{{Name: "Hope Trust"}}, nil
	}
	svc, _ := NewService(repo, stubTxRunner{})

	_, err := svc.AvailableNGOs(context.Background(), uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for missing package, got %v", err)
	}

	ngos, err := svc.AvailableNGOs(context.Background(), pkgID)
	if err != nil {
		t.Fatalf("available ngos: %v", err)
	}
	if !listed || len(ngos) != 1 {
		t.Fatalf("expected repo-backed listing")
	}
}

func TestAvailableVendorsRequiresAssignment(t *testing.T) {
	repo := newStubAssignmentsRepo()
	pkgID, ngoID, _ := seedGraph(repo)
	svc, _ := NewService(repo, stubTxRunner{})

	_, err := svc.AvailableVendors(context.Background(), pkgID, ngoID)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found without assignment, got %v", err)
	}

	assignment, err := svc.AssignNGO(context.Background(), pkgID, ngoID)
	if err != nil {
		t.Fatalf("assign ngo: %v", err)
	}
	repo.listAvailableVendors = func(ctx context.Context, assignmentID uuid.UUID) ([]models.Vendor, error) {
		if assignmentID != assignment.ID {
			t.Fatalf("unexpected assignment id %s", assignmentID)
		}
		return []models.Vendor{{CompanyName: "Acme Supplies"}}, nil
	}
	vendors, err := svc.AvailableVendors(context.Background(), pkgID, ngoID)
	if err != nil {
		t.Fatalf("available vendors: %v", err)
	}
	if len(vendors) != 1 {
		t.Fatalf("expected one vendor, got %d", len(vendors))
	}
}

func TestSetDeliveryDateValidatesStatus(t *testing.T) {
	repo := newStubAssignmentsRepo()
	pkgID, ngoID, _ := seedGraph(repo)
	svc, _ := NewService(repo, stubTxRunner{})

	if _, err := svc.AssignNGO(context.Background(), pkgID, ngoID); err != nil {
		t.Fatalf("assign ngo: %v", err)
	}

	bogus := "mangled"
	_, err := svc.SetDeliveryDate(context.Background(), DeliveryUpdateInput{
		PackageID:    pkgID,
		NGOID:        ngoID,
		DeliveryDate: time.Now().Add(72 * time.Hour),
		Status:       &bogus,
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for bogus status, got %v", err)
	}

	reason := "vendor confirmed stock"
	status := enums.AssignmentStatusInProgress.String()
	date := time.Now().Add(72 * time.Hour).Truncate(time.Second)
	updated, err := svc.SetDeliveryDate(context.Background(), DeliveryUpdateInput{
		PackageID:    pkgID,
		NGOID:        ngoID,
		DeliveryDate: date,
		Reason:       &reason,
		Status:       &status,
	})
	if err != nil {
		t.Fatalf("set delivery date: %v", err)
	}
	if updated.DeliveryDate == nil || !updated.DeliveryDate.Equal(date) {
		t.Fatalf("delivery date not recorded")
	}
	if updated.Notes == nil || *updated.Notes != reason {
		t.Fatalf("reason not recorded in notes")
	}
	if updated.Status != enums.AssignmentStatusInProgress {
		t.Fatalf("status not updated, got %s", updated.Status)
	}
}
