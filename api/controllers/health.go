package controllers

import (
	"net/http"

	"github.com/campuslabs/labtrack-backend/api/responses"
	"github.com/campuslabs/labtrack-backend/pkg/config"
	"github.com/campuslabs/labtrack-backend/pkg/db"
	pkgerrors "github.com/campuslabs/labtrack-backend/pkg/errors"
	"github.com/campuslabs/labtrack-backend/pkg/logger"
)

// HealthLive reports process liveness.
func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-LabTrack-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings the database and session store before reporting ready.
func HealthReady(cfg *config.Config, logg *logger.Logger, pingers ...db.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-LabTrack-Env", cfg.App.Env)

		for _, p := range pingers {
			if p == nil {
				continue
			}
			if err := p.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeDependency, err, "dependency not ready"))
				return
			}
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
