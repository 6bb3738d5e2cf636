package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/campuslabs/labtrack-backend/api/middleware"
	"github.com/campuslabs/labtrack-backend/api/responses"
	"github.com/campuslabs/labtrack-backend/api/validators"
	"github.com/campuslabs/labtrack-backend/internal/reports"
	pkgerrors "github.com/campuslabs/labtrack-backend/pkg/errors"
	"github.com/campuslabs/labtrack-backend/pkg/logger"
)

func reportActor(r *http.Request) reports.Actor {
	return reports.Actor{
		UserID: middleware.UserIDFromContext(r.Context()),
		Role:   middleware.RoleFromContext(r.Context()),
	}
}

func reportFilters(r *http.Request) (reports.ListFilters, error) {
	var filters reports.ListFilters

	labID, err := validators.ParseQueryID(r, "lab_id")
	if err != nil {
		return filters, err
	}
	filters.LabID = labID

	userID, err := validators.ParseQueryID(r, "user_id")
	if err != nil {
		return filters, err
	}
	filters.UserID = userID

	if raw := r.URL.Query().Get("status"); raw != "" {
		filters.Status = &raw
	}
	if raw := r.URL.Query().Get("exclude_status"); raw != "" {
		filters.ExcludeStatus = &raw
	}

	start, err := validators.ParseQueryDate(r, "start_date")
	if err != nil {
		return filters, err
	}
	filters.StartDate = start

	end, err := validators.ParseQueryDate(r, "end_date")
	if err != nil {
		return filters, err
	}
	filters.EndDate = end

	return filters, nil
}

// ReportsList returns reports matching the admin-facing filters.
func ReportsList(svc reports.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeInternal, "reports service unavailable"))
			return
		}

		filters, err := reportFilters(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.List(r.Context(), filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// ReportsMy returns the caller's own reports.
func ReportsMy(svc reports.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeInternal, "reports service unavailable"))
			return
		}

		filters, err := reportFilters(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.My(r.Context(), reportActor(r), filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// ReportsGet returns one report with its checklist.
func ReportsGet(svc reports.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeInternal, "reports service unavailable"))
			return
		}

		id, err := validators.ParsePathID(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		report, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, report)
	}
}

// ReportsCreate files a new daily report.
func ReportsCreate(svc reports.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeInternal, "reports service unavailable"))
			return
		}

		var body reports.CreateReportInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.Create(r.Context(), reportActor(r), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// ReportsUpdate mutates a report and optionally replaces its checklist.
func ReportsUpdate(svc reports.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeInternal, "reports service unavailable"))
			return
		}

		id, err := validators.ParsePathID(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body reports.UpdateReportInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := svc.Update(r.Context(), reportActor(r), id, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

// ReportsDelete removes a report.
func ReportsDelete(svc reports.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeInternal, "reports service unavailable"))
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
		responses.WriteSuccess(w, map[string]string{"message": "report deleted"})
	}
}
