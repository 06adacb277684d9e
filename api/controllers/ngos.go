package controllers

import (
	"net/http"

	"github.com/sapradeep123/do-good-hub-backend/api/responses"
	"github.com/sapradeep123/do-good-hub-backend/api/validators"
	"github.com/sapradeep123/do-good-hub-backend/internal/ngos"
	pkgerrors "github.com/sapradeep123/do-good-hub-backend/pkg/errors"
	"github.com/sapradeep123/do-good-hub-backend/pkg/logger"
)

type ngoRequest struct {
	Name               string  `json:"name" validate:"required"`
	Email              string  `json:"email" validate:"required,email"`
	Description        *string `json:"description,omitempty"`
	Mission            *string `json:"mission,omitempty"`
	Location           *string `json:"location,omitempty"`
	Phone              *string `json:"phone,omitempty"`
	WebsiteURL         *string `json:"website_url,omitempty"`
	RegistrationNumber *string `json:"registration_number,omitempty"`
	IsActive           *bool   `json:"is_active,omitempty"`
}

func (b ngoRequest) toInput() ngos.NGOInput {
	active := true
	if b.IsActive != nil {
		active = *b.IsActive
	}
	return ngos.NGOInput{
		Name:               b.Name,
		Email:              b.Email,
		Description:        b.Description,
		Mission:            b.Mission,
		Location:           b.Location,
		Phone:              b.Phone,
		WebsiteURL:         b.WebsiteURL,
		RegistrationNumber: b.RegistrationNumber,
		IsActive:           active,
	}
}

// NGOList returns NGOs scoped to the caller's role.
func NGOList(svc ngos.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "ngo service unavailable"))
			return
		}

		userID, role, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.List(r.Context(), ngos.CallerInput{Role: role, ActorUserID: userID})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}

// NGOGet returns one NGO with its contact details.
func NGOGet(svc ngos.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "ngo service unavailable"))
			return
		}

		id, err := uuidParam(r, "ngoId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		userID, role, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		detail, err := svc.Get(r.Context(), id, ngos.CallerInput{Role: role, ActorUserID: userID})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, detail)
	}
}

// NGOPackages lists the packages assigned to one NGO.
func NGOPackages(svc ngos.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "ngo service unavailable"))
			return
		}

		id, err := uuidParam(r, "ngoId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		userID, role, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.Packages(r.Context(), id, ngos.CallerInput{Role: role, ActorUserID: userID})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}

// NGOCreate provisions a new NGO along with its login account.
func NGOCreate(svc ngos.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "ngo service unavailable"))
			return
		}

		var body ngoRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ngo, err := svc.Create(r.Context(), body.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, ngo)
	}
}

// NGOUpdate edits an existing NGO.
func NGOUpdate(svc ngos.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "ngo service unavailable"))
			return
		}

		id, err := uuidParam(r, "ngoId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body ngoRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ngo, err := svc.Update(r.Context(), id, body.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, ngo)
	}
}
