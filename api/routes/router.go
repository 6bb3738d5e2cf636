package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/campuslabs/labtrack-backend/api/controllers"
	"github.com/campuslabs/labtrack-backend/api/middleware"
	"github.com/campuslabs/labtrack-backend/internal/auth"
	"github.com/campuslabs/labtrack-backend/internal/dashboard"
	"github.com/campuslabs/labtrack-backend/internal/inventory"
	"github.com/campuslabs/labtrack-backend/internal/laboratories"
	"github.com/campuslabs/labtrack-backend/internal/reference"
	"github.com/campuslabs/labtrack-backend/internal/reports"
	"github.com/campuslabs/labtrack-backend/internal/users"
	"github.com/campuslabs/labtrack-backend/internal/workstations"
	"github.com/campuslabs/labtrack-backend/pkg/auth/session"
	"github.com/campuslabs/labtrack-backend/pkg/config"
	"github.com/campuslabs/labtrack-backend/pkg/db"
	"github.com/campuslabs/labtrack-backend/pkg/logger"
	"github.com/campuslabs/labtrack-backend/pkg/metrics"
	"github.com/campuslabs/labtrack-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	sessionManager session.AccessSessionChecker,
	httpMetrics *metrics.HTTPMetrics,
	authService auth.Service,
	usersService users.Service,
	labsService laboratories.Service,
	workstationsService workstations.Service,
	inventoryService inventory.Service,
	reportsService reports.Service,
	referenceService reference.Service,
	dashboardService dashboard.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(cfg.CORS),
	)

	loginPolicy := middleware.LoginRateLimitPolicy(cfg.AuthRateLimit)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).
		Post("/login", controllers.AuthLogin(authService, logg))

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessionManager, logg))

		r.Post("/logout", controllers.AuthLogout(authService, logg))

		r.Get("/organization-data", controllers.ReferenceOrganization(referenceService, logg))
		r.Get("/units", controllers.ReferenceUnits(referenceService, logg))
		r.Get("/device-types", controllers.ReferenceDeviceTypes(referenceService, logg))
		r.Get("/tasks", controllers.ReferenceTasks(referenceService, logg))

		r.Get("/dashboard", controllers.DashboardSummary(dashboardService, logg))

		r.Route("/inventory", func(r chi.Router) {
			r.Get("/", controllers.InventoryList(inventoryService, logg))
			r.Post("/", controllers.InventoryCreate(inventoryService, logg))
			r.Post("/batch", controllers.InventoryBatchCreate(inventoryService, logg))
			r.Get("/{id}", controllers.InventoryGet(inventoryService, logg))
			r.Put("/{id}", controllers.InventoryUpdate(inventoryService, logg))
			r.Delete("/{id}", controllers.InventoryDelete(inventoryService, logg))
		})

		r.Route("/workstations", func(r chi.Router) {
			r.Get("/", controllers.WorkstationsList(workstationsService, logg))
			r.Post("/", controllers.WorkstationsCreate(workstationsService, logg))
			r.Post("/batch", controllers.WorkstationsBatchCreate(workstationsService, logg))
			r.Get("/{name}", controllers.WorkstationsGetByName(workstationsService, logg))
			r.Put("/{id}", controllers.WorkstationsUpdate(workstationsService, logg))
			r.Delete("/{id}", controllers.WorkstationsDelete(workstationsService, logg))
		})

		r.Route("/laboratories", func(r chi.Router) {
			r.Get("/", controllers.LaboratoriesList(labsService, logg))
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin(logg))
				r.Post("/", controllers.LaboratoriesCreate(labsService, logg))
				r.Put("/{id}", controllers.LaboratoriesUpdate(labsService, logg))
				r.Delete("/{id}", controllers.LaboratoriesDelete(labsService, logg))
			})
		})

		r.Route("/daily-reports", func(r chi.Router) {
			r.With(middleware.RequireAdmin(logg)).Get("/", controllers.ReportsList(reportsService, logg))
			r.Get("/my", controllers.ReportsMy(reportsService, logg))
			r.Post("/", controllers.ReportsCreate(reportsService, logg))
			r.Get("/{id}", controllers.ReportsGet(reportsService, logg))
			r.Put("/{id}", controllers.ReportsUpdate(reportsService, logg))
			r.With(middleware.RequireAdmin(logg)).Delete("/{id}", controllers.ReportsDelete(reportsService, logg))
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/assigned-lab", controllers.UsersAssignedLab(usersService, logg))
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin(logg))
				r.Get("/assignments", controllers.UsersListAssignments(usersService, logg))
				r.Put("/assign-lab", controllers.UsersAssignLab(usersService, logg))
				r.Post("/", controllers.UsersCreate(usersService, logg))
				r.Put("/{id}", controllers.UsersUpdate(usersService, logg))
				r.Delete("/{id}", controllers.UsersDelete(usersService, logg))
			})
		})
	})

	return r
}
