package controllers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/sapradeep123/do-good-hub-backend/api/responses"
	"github.com/sapradeep123/do-good-hub-backend/api/validators"
	"github.com/sapradeep123/do-good-hub-backend/internal/assignments"
	pkgerrors "github.com/sapradeep123/do-good-hub-backend/pkg/errors"
	"github.com/sapradeep123/do-good-hub-backend/pkg/logger"
)

type assignNGORequest struct {
	NGOID uuid.UUID `json:"ngo_id" validate:"required"`
}

type assignVendorRequest struct {
	NGOID    uuid.UUID `json:"ngo_id" validate:"required"`
	VendorID uuid.UUID `json:"vendor_id" validate:"required"`
}

type deliveryDateRequest struct {
	NGOID        uuid.UUID `json:"ngo_id" validate:"required"`
	DeliveryDate string    `json:"delivery_date" validate:"required"`
	Reason       *string   `json:"reason,omitempty"`
	Status       *string   `json:"status,omitempty"`
}

// parseDeliveryDate accepts a bare date or a full timestamp.
func parseDeliveryDate(raw string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid delivery_date")
}

// PackageAssignNGO links an NGO to a package. Repeats are no-ops.
func PackageAssignNGO(svc assignments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "assignment service unavailable"))
			return
		}

		packageID, err := uuidParam(r, "packageId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body assignNGORequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		assignment, err := svc.AssignNGO(r.Context(), packageID, body.NGOID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, assignment)
	}
}

// PackageAssignVendor links a vendor to an existing package/NGO assignment.
func PackageAssignVendor(svc assignments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "assignment service unavailable"))
			return
		}

		packageID, err := uuidParam(r, "packageId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body assignVendorRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.AssignVendor(r.Context(), packageID, body.NGOID, body.VendorID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// PackageAssign links an NGO and a vendor to a package in one call.
func PackageAssign(svc assignments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "assignment service unavailable"))
			return
		}

		packageID, err := uuidParam(r, "packageId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body assignVendorRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Assign(r.Context(), packageID, body.NGOID, body.VendorID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// PackageUnassignNGO removes an NGO from a package along with the vendor
// links hanging off the pair.
func PackageUnassignNGO(svc assignments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "assignment service unavailable"))
			return
		}

		packageID, err := uuidParam(r, "packageId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ngoID, err := uuidParam(r, "ngoId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.UnassignNGO(r.Context(), packageID, ngoID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "unassigned"})
	}
}

// PackageUnassignVendor removes one vendor from a package/NGO assignment.
func PackageUnassignVendor(svc assignments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "assignment service unavailable"))
			return
		}

		packageID, err := uuidParam(r, "packageId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body assignVendorRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.UnassignVendor(r.Context(), packageID, body.NGOID, body.VendorID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "unassigned"})
	}
}

// PackageAvailableNGOs lists active NGOs not yet assigned to the package.
func PackageAvailableNGOs(svc assignments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "assignment service unavailable"))
			return
		}

		packageID, err := uuidParam(r, "packageId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.AvailableNGOs(r.Context(), packageID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}

// PackageAvailableVendors lists active vendors not yet serving the
// package/NGO pair named by the ngo_id query parameter.
func PackageAvailableVendors(svc assignments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "assignment service unavailable"))
			return
		}

		packageID, err := uuidParam(r, "packageId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ngoID, err := uuid.Parse(r.URL.Query().Get("ngo_id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid ngo_id"))
			return
		}

		list, err := svc.AvailableVendors(r.Context(), packageID, ngoID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}

// AssignmentNGOOptions lists every active NGO for assignment pickers.
func AssignmentNGOOptions(svc assignments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "assignment service unavailable"))
			return
		}

		list, err := svc.NGOOptions(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}

// AssignmentVendorOptions lists every active vendor for assignment pickers.
func AssignmentVendorOptions(svc assignments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "assignment service unavailable"))
			return
		}

		list, err := svc.VendorOptions(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}

// PackageDeliveryDate records the expected delivery date on a
// package/NGO assignment.
func PackageDeliveryDate(svc assignments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "assignment service unavailable"))
			return
		}

		packageID, err := uuidParam(r, "packageId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body deliveryDateRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		deliveryDate, err := parseDeliveryDate(body.DeliveryDate)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		assignment, err := svc.SetDeliveryDate(r.Context(), assignments.DeliveryUpdateInput{
			PackageID:    packageID,
			NGOID:        body.NGOID,
			DeliveryDate: deliveryDate,
			Reason:       body.Reason,
			Status:       body.Status,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, assignment)
	}
}
