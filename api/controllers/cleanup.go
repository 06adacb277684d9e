package controllers

import (
	"net/http"

	"github.com/sapradeep123/do-good-hub-backend/api/responses"
	"github.com/sapradeep123/do-good-hub-backend/internal/cleanup"
	"github.com/sapradeep123/do-good-hub-backend/internal/support"
	pkgerrors "github.com/sapradeep123/do-good-hub-backend/pkg/errors"
	"github.com/sapradeep123/do-good-hub-backend/pkg/logger"
	"github.com/sapradeep123/do-good-hub-backend/pkg/types"
)

// CleanupClearAllData wipes every domain table except preserved admin
// accounts, and leaves an audit trail entry naming the admin who ran it.
func CleanupClearAllData(svc cleanup.Service, auditor support.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cleanup service unavailable"))
			return
		}

		adminID, _, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ClearAllData(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if auditor != nil {
			auditor.RecordAudit(r.Context(), adminID, "cleanup.clear_all_data", types.JSONMap{
				"total_deleted": result.TotalDeleted,
			})
		}

		responses.WriteSuccess(w, result)
	}
}

// CleanupDataStatus reports current row counts per domain table.
func CleanupDataStatus(svc cleanup.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cleanup service unavailable"))
			return
		}

		status, err := svc.DataStatus(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, status)
	}
}
