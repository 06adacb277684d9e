package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/sapradeep123/do-good-hub-backend/internal/users"
	pkgauth "github.com/sapradeep123/do-good-hub-backend/pkg/auth"
	"github.com/sapradeep123/do-good-hub-backend/pkg/config"
	"github.com/sapradeep123/do-good-hub-backend/pkg/enums"
	"github.com/sapradeep123/do-good-hub-backend/pkg/logger"
)

type stubUsersService struct {
	accounts []users.UserAccount
}

func (s *stubUsersService) List(ctx context.Context) ([]users.UserAccount, error) {
	return s.accounts, nil
}

func (s *stubUsersService) Update(ctx context.Context, id uuid.UUID, input users.UpdateUserInput) (*users.UserAccount, error) {
	return nil, nil
}

func (s *stubUsersService) ResetPassword(ctx context.Context, id uuid.UUID) (*users.ResetTokenResult, error) {
	return nil, nil
}

func (s *stubUsersService) ConfirmReset(ctx context.Context, id uuid.UUID, token, newPassword string) error {
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{
			Secret:            "router-test-secret",
			Issuer:            "do-good-hub",
			ExpirationMinutes: 15,
		},
	}
}

func newTestRouter(t *testing.T, svcs Services) http.Handler {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "router-test"})
	return NewRouter(testConfig(), logg, nil, nil, nil, nil, svcs)
}

func mintToken(t *testing.T, cfg *config.Config, role enums.Role) string {
	t.Helper()
	token, err := pkgauth.MintAccessToken(cfg.JWT, time.Now().UTC(), pkgauth.AccessTokenPayload{
		UserID: uuid.New(),
		Role:   role,
		JTI:    uuid.NewString(),
	})
	require.NoError(t, err)
	return token
}

func TestHealthLiveServesWithoutAuth(t *testing.T) {
	router := newTestRouter(t, Services{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "live")
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	router := newTestRouter(t, Services{})

	for _, path := range []string{"/api/users", "/api/packages", "/api/donations/me"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusUnauthorized, rec.Code, "path %s", path)
	}
}

func TestAdminTokenReachesUsersList(t *testing.T) {
	svc := &stubUsersService{accounts: []users.UserAccount{{Email: "admin@example.com"}}}
	router := newTestRouter(t, Services{Users: svc})

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, testConfig(), enums.RoleAdmin))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "admin@example.com")
}

func TestUsersListForbiddenForDonorRole(t *testing.T) {
	router := newTestRouter(t, Services{Users: &stubUsersService{}})

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, testConfig(), enums.RoleUser))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestTrackingRouteIsPublic(t *testing.T) {
	router := newTestRouter(t, Services{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/transactions/track?tracking_number=TRK-1", nil))

	// No auth gate: the nil service guard answers instead of a 401.
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}
