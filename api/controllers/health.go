package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/sapradeep123/do-good-hub-backend/api/responses"
	"github.com/sapradeep123/do-good-hub-backend/pkg/config"
	pkgerrors "github.com/sapradeep123/do-good-hub-backend/pkg/errors"
	"github.com/sapradeep123/do-good-hub-backend/pkg/logger"
)

const readinessTimeout = 2 * time.Second

type pinger interface {
	Ping(ctx context.Context) error
}

// HealthLive reports process liveness without touching dependencies.
func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{"status": "live", "env": cfg.App.Env})
	}
}

// HealthReady pings Postgres and Redis so load balancers stop routing to an
// instance that lost a backing store.
func HealthReady(cfg *config.Config, logg *logger.Logger, database, cache pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		checks := map[string]string{}

		if database == nil {
			checks["postgres"] = "unconfigured"
		} else if err := database.Ping(ctx); err != nil {
			logg.Error(ctx, "readiness postgres ping failed", err)
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database unavailable"))
			return
		} else {
			checks["postgres"] = "ok"
		}

		if cache == nil {
			checks["redis"] = "unconfigured"
		} else if err := cache.Ping(ctx); err != nil {
			logg.Error(ctx, "readiness redis ping failed", err)
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis unavailable"))
			return
		} else {
			checks["redis"] = "ok"
		}

		checks["status"] = "ready"
		checks["env"] = cfg.App.Env
		responses.WriteSuccess(w, checks)
	}
}
