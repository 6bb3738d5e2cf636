package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/campuslabs/labtrack-backend/api/responses"
	"github.com/campuslabs/labtrack-backend/api/validators"
	"github.com/campuslabs/labtrack-backend/internal/laboratories"
	pkgerrors "github.com/campuslabs/labtrack-backend/pkg/errors"
	"github.com/campuslabs/labtrack-backend/pkg/logger"
)

// LaboratoriesList returns every laboratory with its in-charge user.
func LaboratoriesList(svc laboratories.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeInternal, "laboratories service unavailable"))
			return
		}

		list, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// LaboratoriesCreate registers a new laboratory.
func LaboratoriesCreate(svc laboratories.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeInternal, "laboratories service unavailable"))
			return
		}

		var body laboratories.CreateLaboratoryInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.Create(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// LaboratoriesUpdate mutates a laboratory.
func LaboratoriesUpdate(svc laboratories.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeInternal, "laboratories service unavailable"))
			return
		}

		id, err := validators.ParsePathID(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body laboratories.UpdateLaboratoryInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := svc.Update(r.Context(), id, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

// LaboratoriesDelete removes a laboratory.
func LaboratoriesDelete(svc laboratories.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeInternal, "laboratories service unavailable"))
			return
		}

		id, err := validators.ParsePathID(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"message": "laboratory deleted"})
	}
}
