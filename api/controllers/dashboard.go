package controllers

import (
	"net/http"

	"github.com/campuslabs/labtrack-backend/api/middleware"
	"github.com/campuslabs/labtrack-backend/api/responses"
	"github.com/campuslabs/labtrack-backend/internal/dashboard"
	pkgerrors "github.com/campuslabs/labtrack-backend/pkg/errors"
	"github.com/campuslabs/labtrack-backend/pkg/logger"
)

// DashboardSummary returns the role-scoped dashboard payload.
func DashboardSummary(svc dashboard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeInternal, "dashboard service unavailable"))
			return
		}

		actor := dashboard.Actor{
			UserID: middleware.UserIDFromContext(r.Context()),
			Role:   middleware.RoleFromContext(r.Context()),
		}
		summary, err := svc.Summary(r.Context(), actor)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, summary)
	}
}
