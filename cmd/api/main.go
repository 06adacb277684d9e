package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/sapradeep123/do-good-hub-backend/api/routes"
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
	"github.com/sapradeep123/do-good-hub-backend/pkg/logger"
	"github.com/sapradeep123/do-good-hub-backend/pkg/metrics"
	"github.com/sapradeep123/do-good-hub-backend/pkg/migrate"
	"github.com/sapradeep123/do-good-hub-backend/pkg/redis"
	"github.com/sapradeep123/do-good-hub-backend/pkg/security"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)
	taskMetrics := metrics.NewTaskMetrics(registry)

	gdb := dbClient.DB()

	authService, err := auth.NewService(auth.ServiceParams{
		Repository:     auth.NewRepository(gdb),
		TxRunner:       dbClient,
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	usersService, err := users.NewService(users.NewRepository(gdb), dbClient, cfg.Password)
	if err != nil {
		logg.Error(context.Background(), "failed to create users service", err)
		os.Exit(1)
	}

	ngosService, err := ngos.NewService(ngos.NewRepository(gdb), dbClient, cfg.Password)
	if err != nil {
		logg.Error(context.Background(), "failed to create ngo service", err)
		os.Exit(1)
	}

	vendorsService, err := vendors.NewService(vendors.NewRepository(gdb), dbClient, cfg.Password)
	if err != nil {
		logg.Error(context.Background(), "failed to create vendor service", err)
		os.Exit(1)
	}

	packagesService, err := packages.NewService(packages.NewRepository(gdb), dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create package service", err)
		os.Exit(1)
	}

	assignmentsService, err := assignments.NewService(assignments.NewRepository(gdb), dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create assignment service", err)
		os.Exit(1)
	}

	transactionsService, err := transactions.NewService(transactions.NewRepository(gdb), dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create transaction service", err)
		os.Exit(1)
	}

	signatureVerifier, err := security.NewPaymentSignatureVerifier(cfg.Payment.WebhookSecret)
	if err != nil {
		logg.Error(context.Background(), "failed to create payment signature verifier", err)
		os.Exit(1)
	}

	donationsService, err := donations.NewService(donations.NewRepository(gdb), dbClient, signatureVerifier)
	if err != nil {
		logg.Error(context.Background(), "failed to create donation service", err)
		os.Exit(1)
	}

	cleanupService, err := cleanup.NewService(cleanup.Params{
		Logger:     logg,
		Repository: cleanup.NewRepository(gdb),
		DB:         dbClient,
		Metrics:    taskMetrics,
		KeepEmails: cfg.Cleanup.PreservedEmails,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create cleanup service", err)
		os.Exit(1)
	}

	supportService, err := support.NewService(support.NewRepository(gdb), logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create support service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, httpMetrics, sessionManager, routes.Services{
			Auth:         authService,
			Users:        usersService,
			NGOs:         ngosService,
			Vendors:      vendorsService,
			Packages:     packagesService,
			Assignments:  assignmentsService,
			Transactions: transactionsService,
			Donations:    donationsService,
			Cleanup:      cleanupService,
			Support:      supportService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
