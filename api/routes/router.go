package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sapradeep123/do-good-hub-backend/api/controllers"
	"github.com/sapradeep123/do-good-hub-backend/api/middleware"
	"github.com/sapradeep123/do-good-hub-backend/internal/assignments"
	"github.com/sapradeep123/do-good-hub-backend/internal/auth"
	"github.com/sapradeep123/do-good-hub-backend/internal/cleanup"
	"github.com/sapradeep123/do-good-hub-backend/internal/donations"
	"github.com/sapradeep123/do-good-hub-backend/internal/ngos"
	"github.com/sapradeep123/do-good-hub-backend/internal/packages"
	"github.com/sapradeep123/do-good-hub-backend/internal/support"
	"github.com/sapradeep123/do-good-hub-backend/internal/transactions"
	"github.com/sapradeep123/do-good-hub-backend/internal/users"
	"github.com/sapradeep123/do-good-hub-backend/internal/vendors"
	"github.com/sapradeep123/do-good-hub-backend/pkg/auth/session"
	"github.com/sapradeep123/do-good-hub-backend/pkg/config"
	"github.com/sapradeep123/do-good-hub-backend/pkg/db"
	"github.com/sapradeep123/do-good-hub-backend/pkg/enums"
	"github.com/sapradeep123/do-good-hub-backend/pkg/logger"
	"github.com/sapradeep123/do-good-hub-backend/pkg/metrics"
	"github.com/sapradeep123/do-good-hub-backend/pkg/redis"
)

type sessionManager interface {
	session.AccessSessionChecker
	Rotate(context.Context, string, string) (string, string, error)
	Revoke(context.Context, string) error
}

// Services collects every domain service the router mounts.
type Services struct {
	Auth         auth.Service
	Users        users.Service
	NGOs         ngos.Service
	Vendors      vendors.Service
	Packages     packages.Service
	Assignments  assignments.Service
	Transactions transactions.Service
	Donations    donations.Service
	Cleanup      cleanup.Service
	Support      support.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	httpMetrics *metrics.HTTPMetrics,
	sessions sessionManager,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	requireAdmin := middleware.RequireRole(logg, enums.RoleAdmin.String())
	requireVendor := middleware.RequireRole(logg, enums.RoleVendor.String())

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).Post("/login", controllers.AuthLogin(svcs.Auth, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, redisClient, logg)).Post("/register", controllers.AuthRegister(svcs.Auth, logg))
		r.Post("/logout", controllers.AuthLogout(sessions, cfg.JWT, logg))
		r.Post("/refresh", controllers.AuthRefresh(sessions, cfg.JWT, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).Post("/reset-password", controllers.AuthRequestPasswordReset(svcs.Auth, logg))
		r.Post("/reset-password/confirm", controllers.AuthConfirmPasswordReset(svcs.Auth, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, sessions, logg))
			r.Get("/me", controllers.AuthMe(svcs.Auth, logg))
		})
	})

	// Public lookups need no token.
	r.Get("/api/transactions/track", controllers.TransactionTrack(svcs.Transactions, logg))
	r.Get("/api/pages/{slug}", controllers.PageGet(svcs.Support, logg))

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessions, logg))
		r.Use(middleware.Idempotency(redisClient, logg))

		r.Route("/users", func(r chi.Router) {
			r.Use(requireAdmin)
			r.Get("/", controllers.UsersList(svcs.Users, logg))
			r.Put("/{userId}", controllers.UsersUpdate(svcs.Users, logg))
			r.Post("/{userId}/reset-password", controllers.UsersResetPassword(svcs.Users, logg))
			r.Post("/{userId}/reset-password/confirm", controllers.UsersConfirmReset(svcs.Users, logg))
		})

		r.Route("/ngos", func(r chi.Router) {
			r.Get("/", controllers.NGOList(svcs.NGOs, logg))
			r.Get("/{ngoId}", controllers.NGOGet(svcs.NGOs, logg))
			r.Get("/{ngoId}/packages", controllers.NGOPackages(svcs.NGOs, logg))
			r.With(requireAdmin).Post("/", controllers.NGOCreate(svcs.NGOs, logg))
			r.With(requireAdmin).Put("/{ngoId}", controllers.NGOUpdate(svcs.NGOs, logg))
		})

		r.Route("/vendors", func(r chi.Router) {
			r.Get("/", controllers.VendorList(svcs.Vendors, logg))
			r.Get("/{vendorId}", controllers.VendorGet(svcs.Vendors, logg))
			r.With(requireAdmin).Post("/", controllers.VendorCreate(svcs.Vendors, logg))
			r.With(requireAdmin).Put("/{vendorId}", controllers.VendorUpdate(svcs.Vendors, logg))
		})

		r.Route("/packages", func(r chi.Router) {
			r.Get("/", controllers.PackageList(svcs.Packages, logg))

			r.Group(func(r chi.Router) {
				r.Use(requireAdmin)
				r.Post("/", controllers.PackageCreate(svcs.Packages, logg))
				r.Get("/options/ngos", controllers.AssignmentNGOOptions(svcs.Assignments, logg))
				r.Get("/options/vendors", controllers.AssignmentVendorOptions(svcs.Assignments, logg))
			})

			r.Route("/{packageId}", func(r chi.Router) {
				r.Get("/", controllers.PackageGet(svcs.Packages, logg))

				r.Group(func(r chi.Router) {
					r.Use(requireAdmin)
					r.Put("/", controllers.PackageUpdate(svcs.Packages, logg))
					r.Post("/copy", controllers.PackageCopy(svcs.Packages, logg))
					r.Post("/assign-ngo", controllers.PackageAssignNGO(svcs.Assignments, logg))
					r.Post("/assign-vendor", controllers.PackageAssignVendor(svcs.Assignments, logg))
					r.Post("/assign", controllers.PackageAssign(svcs.Assignments, logg))
					r.Delete("/assign-ngo/{ngoId}", controllers.PackageUnassignNGO(svcs.Assignments, logg))
					r.Delete("/assign-vendor", controllers.PackageUnassignVendor(svcs.Assignments, logg))
					r.Get("/available-ngos", controllers.PackageAvailableNGOs(svcs.Assignments, logg))
					r.Get("/available-vendors", controllers.PackageAvailableVendors(svcs.Assignments, logg))
					r.Put("/delivery-date", controllers.PackageDeliveryDate(svcs.Assignments, logg))
				})
			})
		})

		r.Route("/transactions", func(r chi.Router) {
			r.Get("/", controllers.TransactionList(svcs.Transactions, logg))
			r.With(requireAdmin).Post("/{transactionId}/assign-vendor", controllers.TransactionAssignVendor(svcs.Transactions, logg))
			r.With(requireVendor).Post("/{transactionId}/ship", controllers.TransactionShip(svcs.Transactions, logg))
			r.Post("/{transactionId}/confirm-delivery", controllers.TransactionConfirmDelivery(svcs.Transactions, logg))
			r.With(requireAdmin).Post("/{transactionId}/complete", controllers.TransactionComplete(svcs.Transactions, logg))
		})

		r.Route("/payments", func(r chi.Router) {
			r.Post("/create-order", controllers.PaymentCreateOrder(svcs.Donations, logg))
			r.Post("/verify-payment", controllers.PaymentVerify(svcs.Donations, logg))
			r.Get("/history", controllers.PaymentHistory(svcs.Donations, logg))
			r.With(requireAdmin).Get("/statistics", controllers.PaymentStatistics(svcs.Donations, logg))
		})

		r.Route("/donations", func(r chi.Router) {
			r.With(requireAdmin).Get("/", controllers.DonationList(svcs.Donations, logg))
			r.Get("/me", controllers.DonationListMine(svcs.Donations, logg))
		})

		r.Route("/cleanup", func(r chi.Router) {
			r.Use(requireAdmin)
			r.Post("/clear-all-data", controllers.CleanupClearAllData(svcs.Cleanup, svcs.Support, logg))
			r.Get("/data-status", controllers.CleanupDataStatus(svcs.Cleanup, logg))
		})

		r.Route("/tickets", func(r chi.Router) {
			r.Get("/", controllers.TicketList(svcs.Support, logg))
			r.Post("/", controllers.TicketCreate(svcs.Support, logg))
			r.With(requireAdmin).Put("/{ticketId}/status", controllers.TicketUpdateStatus(svcs.Support, logg))
		})

		r.With(requireAdmin).Put("/pages/{slug}", controllers.PagePut(svcs.Support, logg))
	})

	return r
}
