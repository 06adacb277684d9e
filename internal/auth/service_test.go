package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgauth "github.com/sapradeep123/do-good-hub-backend/pkg/auth"
	"github.com/sapradeep123/do-good-hub-backend/pkg/config"
	"github.com/sapradeep123/do-good-hub-backend/pkg/db/models"
	"github.com/sapradeep123/do-good-hub-backend/pkg/enums"
	pkgerrors "github.com/sapradeep123/do-good-hub-backend/pkg/errors"
	"github.com/sapradeep123/do-good-hub-backend/pkg/security"
)

type stubTxRunner struct{}

func (stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type stubSessionManager struct {
	generated []string
}

func (s *stubSessionManager) Generate(ctx context.Context, accessID string) (string, error) {
	s.generated = append(s.generated, accessID)
	return "refresh-" + accessID, nil
}

type stubAuthRepo struct {
	profiles  map[string]*models.Profile
	ngoIDs    map[uuid.UUID]uuid.UUID
	vendorIDs map[uuid.UUID]uuid.UUID
	requests  []*models.PasswordResetRequest
}

func newStubAuthRepo() *stubAuthRepo {
	return &stubAuthRepo{
		profiles:  make(map[string]*models.Profile),
		ngoIDs:    make(map[uuid.UUID]uuid.UUID),
		vendorIDs: make(map[uuid.UUID]uuid.UUID),
	}
}

func (s *stubAuthRepo) WithTx(tx *gorm.DB) Repository {
	return s
}

func (s *stubAuthRepo) FindProfileByEmail(ctx context.Context, email string) (*models.Profile, error) {
	if profile, ok := s.profiles[strings.ToLower(email)]; ok {
		return profile, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubAuthRepo) FindProfileByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	for _, profile := range s.profiles {
		if profile.UserID == userID {
			return profile, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubAuthRepo) CreateProfile(ctx context.Context, profile *models.Profile) (*models.Profile, error) {
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	s.profiles[strings.ToLower(profile.Email)] = profile
	return profile, nil
}

func (s *stubAuthRepo) UpdateLastLogin(ctx context.Context, userID uuid.UUID, at time.Time) error {
	return nil
}

func (s *stubAuthRepo) UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	for _, profile := range s.profiles {
		if profile.UserID == userID {
			profile.PasswordHash = passwordHash
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (s *stubAuthRepo) FindNGOIDByUserID(ctx context.Context, userID uuid.UUID) (uuid.UUID, error) {
	if id, ok := s.ngoIDs[userID]; ok {
		return id, nil
	}
	return uuid.Nil, gorm.ErrRecordNotFound
}

func (s *stubAuthRepo) FindVendorIDByUserID(ctx context.Context, userID uuid.UUID) (uuid.UUID, error) {
	if id, ok := s.vendorIDs[userID]; ok {
		return id, nil
	}
	return uuid.Nil, gorm.ErrRecordNotFound
}

func (s *stubAuthRepo) CreateResetRequest(ctx context.Context, request *models.PasswordResetRequest) (*models.PasswordResetRequest, error) {
	if request.ID == uuid.Nil {
		request.ID = uuid.New()
	}
	s.requests = append(s.requests, request)
	return request, nil
}

func (s *stubAuthRepo) FindActiveResetRequest(ctx context.Context, userID uuid.UUID, token string) (*models.PasswordResetRequest, error) {
	now := time.Now().UTC()
	for _, request := range s.requests {
		if request.UserID == userID && request.Token == token && request.UsedAt == nil && request.ExpiresAt.After(now) {
			return request, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubAuthRepo) MarkResetRequestUsed(ctx context.Context, id uuid.UUID) error {
	for _, request := range s.requests {
		if request.ID == id {
			now := time.Now().UTC()
			request.UsedAt = &now
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "do-good-hub",
		ExpirationMinutes: 15,
	}
}

func newAuthService(t *testing.T, repo Repository) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Repository:     repo,
		TxRunner:       stubTxRunner{},
		SessionManager: &stubSessionManager{},
		JWTConfig:      testJWTConfig(),
		PasswordConfig: config.PasswordConfig{},
	})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func seedProfile(t *testing.T, repo *stubAuthRepo, email, password string, role enums.Role) *models.Profile {
	t.Helper()
	hash, err := security.HashPassword(password, config.PasswordConfig{})
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	profile := &models.Profile{
		ID:           uuid.New(),
		UserID:       uuid.New(),
		Email:        email,
		PasswordHash: hash,
		FirstName:    "Asha",
		LastName:     "Menon",
		Role:         role,
	}
	repo.profiles[strings.ToLower(email)] = profile
	return profile
}

func TestLoginIssuesTokenPair(t *testing.T) {
	repo := newStubAuthRepo()
	profile := seedProfile(t, repo, "donor@example.com", "secret-pass", enums.RoleUser)
	svc := newAuthService(t, repo)

	resp, err := svc.Login(context.Background(), LoginRequest{Email: "Donor@Example.com", Password: "secret-pass"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Fatalf("expected token pair, got %+v", resp)
	}
	if resp.User == nil || resp.User.UserID != profile.UserID {
		t.Fatalf("expected user payload for %s", profile.UserID)
	}

	claims, err := pkgauth.ParseAccessToken(testJWTConfig(), resp.AccessToken)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.UserID != profile.UserID || claims.Role != enums.RoleUser {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestLoginEmbedsNGOClaim(t *testing.T) {
	repo := newStubAuthRepo()
	profile := seedProfile(t, repo, "ngo@example.com", "secret-pass", enums.RoleNGO)
	ngoID := uuid.New()
	repo.ngoIDs[profile.UserID] = ngoID
	svc := newAuthService(t, repo)

	resp, err := svc.Login(context.Background(), LoginRequest{Email: "ngo@example.com", Password: "secret-pass"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	claims, err := pkgauth.ParseAccessToken(testJWTConfig(), resp.AccessToken)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.NGOID == nil || *claims.NGOID != ngoID {
		t.Fatalf("expected ngo id claim, got %+v", claims.NGOID)
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	repo := newStubAuthRepo()
	seedProfile(t, repo, "donor@example.com", "secret-pass", enums.RoleUser)
	svc := newAuthService(t, repo)

	_, err := svc.Login(context.Background(), LoginRequest{Email: "donor@example.com", Password: "wrong"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}

	_, err = svc.Login(context.Background(), LoginRequest{Email: "nobody@example.com", Password: "secret-pass"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized for unknown email, got %v", err)
	}
}

func TestMeReturnsProfile(t *testing.T) {
	repo := newStubAuthRepo()
	profile := seedProfile(t, repo, "donor@example.com", "secret-pass", enums.RoleUser)
	svc := newAuthService(t, repo)

	account, err := svc.Me(context.Background(), profile.UserID)
	if err != nil {
		t.Fatalf("me: %v", err)
	}
	if account.Email != profile.Email {
		t.Fatalf("expected email %q, got %q", profile.Email, account.Email)
	}

	_, err = svc.Me(context.Background(), uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestPasswordResetRoundTrip(t *testing.T) {
	repo := newStubAuthRepo()
	seedProfile(t, repo, "donor@example.com", "secret-pass", enums.RoleUser)
	svc := newAuthService(t, repo)

	reset, err := svc.RequestPasswordReset(context.Background(), "donor@example.com")
	if err != nil {
		t.Fatalf("request reset: %v", err)
	}
	if len(reset.Token) != resetTokenLength {
		t.Fatalf("expected %d char token, got %d", resetTokenLength, len(reset.Token))
	}

	if err := svc.ConfirmPasswordReset(context.Background(), "donor@example.com", reset.Token, "new-password"); err != nil {
		t.Fatalf("confirm reset: %v", err)
	}

	if _, err := svc.Login(context.Background(), LoginRequest{Email: "donor@example.com", Password: "new-password"}); err != nil {
		t.Fatalf("login with new password: %v", err)
	}

	err = svc.ConfirmPasswordReset(context.Background(), "donor@example.com", reset.Token, "third-password")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error on token reuse, got %v", err)
	}
}

func TestRequestPasswordResetUnknownEmail(t *testing.T) {
	repo := newStubAuthRepo()
	svc := newAuthService(t, repo)

	_, err := svc.RequestPasswordReset(context.Background(), "nobody@example.com")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
