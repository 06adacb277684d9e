package ngos

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

type stubNGOsRepo struct {
	ngos     map[uuid.UUID]*models.NGO
	vendors  map[uuid.UUID]*models.Vendor
	profiles []*models.Profile
	contacts map[uuid.UUID]*NGOWithContact
	packages map[uuid.UUID][]NGOPackage
}

func newStubNGOsRepo() *stubNGOsRepo {
	return &stubNGOsRepo{
		ngos:     make(map[uuid.UUID]*models.NGO),
		vendors:  make(map[uuid.UUID]*models.Vendor),
		contacts: make(map[uuid.UUID]*NGOWithContact),
		packages: make(map[uuid.UUID][]NGOPackage),
	}
}

func (s *stubNGOsRepo) WithTx(tx *gorm.DB) Repository {
	return s
}

func (s *stubNGOsRepo) ListWithContacts(ctx context.Context) ([]NGOWithContact, error) {
	var out []NGOWithContact
	for _, contact := range s.contacts {
		out = append(out, *contact)
	}
	return out, nil
}

func (s *stubNGOsRepo) ListWithContactsForUser(ctx context.Context, userID uuid.UUID) ([]NGOWithContact, error) {
	var out []NGOWithContact
	for _, contact := range s.contacts {
		if contact.UserID != nil && *contact.UserID == userID {
			out = append(out, *contact)
		}
	}
	return out, nil
}

func (s *stubNGOsRepo) FindWithContact(ctx context.Context, id uuid.UUID) (*NGOWithContact, error) {
	if contact, ok := s.contacts[id]; ok {
		return contact, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubNGOsRepo) FindNGO(ctx context.Context, id uuid.UUID) (*models.NGO, error) {
	if ngo, ok := s.ngos[id]; ok {
		return ngo, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubNGOsRepo) FindNGOByEmail(ctx context.Context, email string) (*models.NGO, error) {
	for _, ngo := range s.ngos {
		if ngo.Email == email {
			return ngo, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubNGOsRepo) FindNGOByUserID(ctx context.Context, userID uuid.UUID) (*models.NGO, error) {
	for _, ngo := range s.ngos {
		if ngo.UserID != nil && *ngo.UserID == userID {
			return ngo, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubNGOsRepo) FindVendorByUserID(ctx context.Context, userID uuid.UUID) (*models.Vendor, error) {
	for _, vendor := range s.vendors {
		if vendor.UserID != nil && *vendor.UserID == userID {
			return vendor, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubNGOsRepo) CreateProfile(ctx context.Context, profile *models.Profile) (*models.Profile, error) {
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	s.profiles = append(s.profiles, profile)
	return profile, nil
}

func (s *stubNGOsRepo) CreateNGO(ctx context.Context, ngo *models.NGO) (*models.NGO, error) {
	if ngo.ID == uuid.Nil {
		ngo.ID = uuid.New()
	}
	s.ngos[ngo.ID] = ngo
	return ngo, nil
}

func (s *stubNGOsRepo) UpdateNGO(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return nil
}

func (s *stubNGOsRepo) ListPackages(ctx context.Context, ngoID uuid.UUID) ([]NGOPackage, error) {
	return s.packages[ngoID], nil
}

func newNGOService(t *testing.T, repo Repository) Service {
	t.Helper()
	svc, err := NewService(repo, stubTxRunner{}, config.PasswordConfig{})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestCreateBuildsProfileAndNGO(t *testing.T) {
	repo := newStubNGOsRepo()
	svc := newNGOService(t, repo)

	location := "Pune, Maharashtra"
	ngo, err := svc.Create(context.Background(), NGOInput{
		Name:     "Hope Trust",
		Email:    "contact@hopetrust.org",
		Location: &location,
		IsActive: true,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(repo.profiles) != 1 {
		t.Fatalf("expected one profile created, got %d", len(repo.profiles))
	}
	profile := repo.profiles[0]
	if profile.Role != enums.RoleNGO {
		t.Fatalf("expected ngo role profile, got %s", profile.Role)
	}
	if !strings.HasPrefix(profile.PasswordHash, "$argon2id$") {
		t.Fatalf("expected argon2id hash, got %q", profile.PasswordHash)
	}
	if ngo.UserID == nil || *ngo.UserID != profile.UserID {
		t.Fatalf("ngo not linked to created profile")
	}
	if ngo.City == nil || *ngo.City != "Pune" || ngo.State == nil || *ngo.State != "Maharashtra" {
		t.Fatalf("location not split, got %v / %v", ngo.City, ngo.State)
	}
}

func TestCreateRejectsDuplicateEmail(t *testing.T) {
	repo := newStubNGOsRepo()
	svc := newNGOService(t, repo)

	if _, err := svc.Create(context.Background(), NGOInput{Name: "Hope Trust", Email: "contact@hopetrust.org"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err := svc.Create(context.Background(), NGOInput{Name: "Other Trust", Email: "contact@hopetrust.org"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestCreateRequiresNameAndEmail(t *testing.T) {
	repo := newStubNGOsRepo()
	svc := newNGOService(t, repo)

	_, err := svc.Create(context.Background(), NGOInput{Email: "contact@hopetrust.org"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestGetDeniesForeignNGO(t *testing.T) {
	repo := newStubNGOsRepo()
	ownerID := uuid.New()
	ngoID := uuid.New()
	repo.contacts[ngoID] = &NGOWithContact{ID: ngoID, Name: "Hope Trust", UserID: &ownerID}
	svc := newNGOService(t, repo)

	_, err := svc.Get(context.Background(), ngoID, CallerInput{Role: enums.RoleNGO, ActorUserID: uuid.New()})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}

	detail, err := svc.Get(context.Background(), ngoID, CallerInput{Role: enums.RoleNGO, ActorUserID: ownerID})
	if err != nil {
		t.Fatalf("get as owner: %v", err)
	}
	if detail.Name != "Hope Trust" {
		t.Fatalf("unexpected detail %+v", detail)
	}
}

func TestGetFiltersPackagesForVendor(t *testing.T) {
	repo := newStubNGOsRepo()
	ngoID := uuid.New()
	repo.contacts[ngoID] = &NGOWithContact{ID: ngoID, Name: "Hope Trust"}

	vendorUserID := uuid.New()
	vendor := &models.Vendor{ID: uuid.New(), CompanyName: "Acme Supplies", UserID: &vendorUserID}
	repo.vendors[vendor.ID] = vendor

	repo.packages[ngoID] = []NGOPackage{
		{ID: uuid.New(), Title: "School Kit", VendorIDs: []uuid.UUID{vendor.ID}},
		{ID: uuid.New(), Title: "Meal Pack", VendorIDs: []uuid.UUID{uuid.New()}},
	}
	svc := newNGOService(t, repo)

	detail, err := svc.Get(context.Background(), ngoID, CallerInput{Role: enums.RoleVendor, ActorUserID: vendorUserID})
	if err != nil {
		t.Fatalf("get as vendor: %v", err)
	}
	if len(detail.Packages) != 1 || detail.Packages[0].Title != "School Kit" {
		t.Fatalf("expected only linked package, got %+v", detail.Packages)
	}
}

func TestPackagesChecksNGOOwnership(t *testing.T) {
	repo := newStubNGOsRepo()
	ownerID := uuid.New()
	ngo := &models.NGO{ID: uuid.New(), Name: "Hope Trust", Email: "contact@hopetrust.org", UserID: &ownerID}
	repo.ngos[ngo.ID] = ngo
	repo.packages[ngo.ID] = []NGOPackage{{ID: uuid.New(), Title: "School Kit"}}
	svc := newNGOService(t, repo)

	_, err := svc.Packages(context.Background(), ngo.ID, CallerInput{Role: enums.RoleNGO, ActorUserID: uuid.New()})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}

	packages, err := svc.Packages(context.Background(), ngo.ID, CallerInput{Role: enums.RoleNGO, ActorUserID: ownerID})
	if err != nil {
		t.Fatalf("packages as owner: %v", err)
	}
	if len(packages) != 1 {
		t.Fatalf("expected one package, got %d", len(packages))
	}
}

func TestUpdateChecksEmailUniqueness(t *testing.T) {
	repo := newStubNGOsRepo()
	svc := newNGOService(t, repo)

	first, _ := svc.Create(context.Background(), NGOInput{Name: "Hope Trust", Email: "contact@hopetrust.org"})
	second, _ := svc.Create(context.Background(), NGOInput{Name: "Other Trust", Email: "other@trust.org"})

	_, err := svc.Update(context.Background(), second.ID, NGOInput{Name: "Other Trust", Email: first.Email})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}

	updated, err := svc.Update(context.Background(), second.ID, NGOInput{Name: "Other Trust Renamed", Email: second.Email})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Other Trust Renamed" {
		t.Fatalf("name not updated")
	}

	_, err = svc.Update(context.Background(), uuid.New(), NGOInput{Name: "Ghost", Email: "ghost@trust.org"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
