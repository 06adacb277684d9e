package vendors

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/sapradeep123/do-good-hub-backend/pkg/config"
	"github.com/sapradeep123/do-good-hub-backend/pkg/db/models"
	"github.com/sapradeep123/do-good-hub-backend/pkg/enums"
	pkgerrors "github.com/sapradeep123/do-good-hub-backend/pkg/errors"
	"gorm.io/gorm"
)

type stubTxRunner struct{}

func (stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type stubVendorsRepo struct {
	vendors  map[uuid.UUID]*models.Vendor
	profiles []*models.Profile
	contacts map[uuid.UUID]*VendorWithContact
	pairs    map[uuid.UUID][]ServedPair
}

func newStubVendorsRepo() *stubVendorsRepo {
	return &stubVendorsRepo{
		vendors:  make(map[uuid.UUID]*models.Vendor),
		contacts: make(map[uuid.UUID]*VendorWithContact),
		pairs:    make(map[uuid.UUID][]ServedPair),
	}
}

func (s *stubVendorsRepo) WithTx(tx *gorm.DB) Repository {
	return s
}

func (s *stubVendorsRepo) ListWithContacts(ctx context.Context) ([]VendorWithContact, error) {
	var out []VendorWithContact
	for _, contact := range s.contacts {
		out = append(out, *contact)
	}
	return out, nil
}

func (s *stubVendorsRepo) ListWithContactsForUser(ctx context.Context, userID uuid.UUID) ([]VendorWithContact, error) {
	var out []VendorWithContact
	for _, contact := range s.contacts {
		if contact.UserID != nil && *contact.UserID == userID {
			out = append(out, *contact)
		}
	}
	return out, nil
}

func (s *stubVendorsRepo) FindWithContact(ctx context.Context, id uuid.UUID) (*VendorWithContact, error) {
	if contact, ok := s.contacts[id]; ok {
		return contact, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubVendorsRepo) FindVendor(ctx context.Context, id uuid.UUID) (*models.Vendor, error) {
	if vendor, ok := s.vendors[id]; ok {
		return vendor, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubVendorsRepo) FindVendorByEmail(ctx context.Context, email string) (*models.Vendor, error) {
	for _, vendor := range s.vendors {
		if vendor.Email == email {
			return vendor, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubVendorsRepo) CreateProfile(ctx context.Context, profile *models.Profile) (*models.Profile, error) {
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	s.profiles = append(s.profiles, profile)
	return profile, nil
}

func (s *stubVendorsRepo) CreateVendor(ctx context.Context, vendor *models.Vendor) (*models.Vendor, error) {
	if vendor.ID == uuid.Nil {
		vendor.ID = uuid.New()
	}
	s.vendors[vendor.ID] = vendor
	return vendor, nil
}

func (s *stubVendorsRepo) UpdateVendor(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return nil
}

func (s *stubVendorsRepo) ListServedPairs(ctx context.Context, vendorID uuid.UUID) ([]ServedPair, error) {
	return s.pairs[vendorID], nil
}

func newVendorService(t *testing.T, repo Repository) Service {
	t.Helper()
	svc, err := NewService(repo, stubTxRunner{}, config.PasswordConfig{})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestCreateBuildsProfileAndVendor(t *testing.T) {
	repo := newStubVendorsRepo()
	svc := newVendorService(t, repo)

	vendor, err := svc.Create(context.Background(), VendorInput{
		CompanyName: "Acme Supplies",
		Email:       "sales@acme.example",
		IsActive:    true,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(repo.profiles) != 1 {
		t.Fatalf("expected one profile created, got %d", len(repo.profiles))
	}
	profile := repo.profiles[0]
	if profile.Role != enums.RoleVendor {
		t.Fatalf("expected vendor role profile, got %s", profile.Role)
	}
	if !strings.HasPrefix(profile.PasswordHash, "$argon2id$") {
		t.Fatalf("expected argon2id hash, got %q", profile.PasswordHash)
	}
	if vendor.UserID == nil || *vendor.UserID != profile.UserID {
		t.Fatalf("vendor not linked to created profile")
	}
	if !vendor.Verified {
		t.Fatalf("expected verified vendor")
	}
}

func TestCreateRejectsDuplicateEmail(t *testing.T) {
	repo := newStubVendorsRepo()
	svc := newVendorService(t, repo)

	if _, err := svc.Create(context.Background(), VendorInput{CompanyName: "Acme Supplies", Email: "sales@acme.example"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err := svc.Create(context.Background(), VendorInput{CompanyName: "Clone Co", Email: "sales@acme.example"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestGetDeniesForeignVendor(t *testing.T) {
	repo := newStubVendorsRepo()
	ownerID := uuid.New()
	vendorID := uuid.New()
	repo.contacts[vendorID] = &VendorWithContact{ID: vendorID, CompanyName: "Acme Supplies", UserID: &ownerID}
	repo.pairs[vendorID] = []ServedPair{{PackageTitle: "School Kit", NGOName: "Hope Trust"}}
	svc := newVendorService(t, repo)

	_, err := svc.Get(context.Background(), vendorID, CallerInput{Role: enums.RoleVendor, ActorUserID: uuid.New()})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}

	detail, err := svc.Get(context.Background(), vendorID, CallerInput{Role: enums.RoleVendor, ActorUserID: ownerID})
	if err != nil {
		t.Fatalf("get as owner: %v", err)
	}
	if len(detail.ServedPairs) != 1 {
		t.Fatalf("expected served pairs, got %+v", detail.ServedPairs)
	}
}

func TestGetNotFound(t *testing.T) {
	repo := newStubVendorsRepo()
	svc := newVendorService(t, repo)

	_, err := svc.Get(context.Background(), uuid.New(), CallerInput{Role: enums.RoleAdmin})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListScopesVendorRole(t *testing.T) {
	repo := newStubVendorsRepo()
	ownUserID := uuid.New()
	ownID := uuid.New()
	repo.contacts[ownID] = &VendorWithContact{ID: ownID, CompanyName: "Acme Supplies", UserID: &ownUserID}
	otherID := uuid.New()
	otherUserID := uuid.New()
	repo.contacts[otherID] = &VendorWithContact{ID: otherID, CompanyName: "Other Co", UserID: &otherUserID}
	svc := newVendorService(t, repo)

	all, err := svc.List(context.Background(), CallerInput{Role: enums.RoleAdmin})
	if err != nil || len(all) != 2 {
		t.Fatalf("expected two vendors for admin, got %d (%v)", len(all), err)
	}

	own, err := svc.List(context.Background(), CallerInput{Role: enums.RoleVendor, ActorUserID: ownUserID})
	if err != nil || len(own) != 1 || own[0].ID != ownID {
		t.Fatalf("expected scoped vendor list, got %+v (%v)", own, err)
	}
}

func TestUpdateChecksEmailUniqueness(t *testing.T) {
	repo := newStubVendorsRepo()
	svc := newVendorService(t, repo)

	first, _ := svc.Create(context.Background(), VendorInput{CompanyName: "Acme Supplies", Email: "sales@acme.example"})
	second, _ := svc.Create(context.Background(), VendorInput{CompanyName: "Other Co", Email: "sales@other.example"})

	_, err := svc.Update(context.Background(), second.ID, VendorInput{CompanyName: "Other Co", Email: first.Email})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}

	updated, err := svc.Update(context.Background(), second.ID, VendorInput{CompanyName: "Other Co Renamed", Email: second.Email})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.CompanyName != "Other Co Renamed" {
		t.Fatalf("company name not updated")
	}
}
