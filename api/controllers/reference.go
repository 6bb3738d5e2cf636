package controllers

import (
	"net/http"

	"github.com/campuslabs/labtrack-backend/api/responses"
	"github.com/campuslabs/labtrack-backend/api/validators"
	"github.com/campuslabs/labtrack-backend/internal/reference"
	pkgerrors "github.com/campuslabs/labtrack-backend/pkg/errors"
	"github.com/campuslabs/labtrack-backend/pkg/logger"
)

// ReferenceUnits lists units, optionally filtered by device type.
func ReferenceUnits(svc reference.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeInternal, "reference service unavailable"))
			return
		}

		deviceTypeID, err := validators.ParseQueryID(r, "device_type_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		units, err := svc.Units(r.Context(), deviceTypeID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, units)
	}
}

// ReferenceDeviceTypes lists every device type.
func ReferenceDeviceTypes(svc reference.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeInternal, "reference service unavailable"))
			return
		}

		types, err := svc.DeviceTypes(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, types)
	}
}

// ReferenceTasks lists the standard checklist tasks.
func ReferenceTasks(svc reference.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeInternal, "reference service unavailable"))
			return
		}

		tasks, err := svc.StandardTasks(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, tasks)
	}
}

// ReferenceOrganization bundles campuses, office types, departments and labs.
func ReferenceOrganization(svc reference.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeInternal, "reference service unavailable"))
			return
		}

		org, err := svc.Organization(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, org)
	}
}
