package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/campuslabs/labtrack-backend/api/routes"
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
	"github.com/campuslabs/labtrack-backend/pkg/migrate"
	"github.com/campuslabs/labtrack-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	usersRepo := users.NewRepository(dbClient.DB())
	labsRepo := laboratories.NewRepository(dbClient.DB())
	workstationsRepo := workstations.NewRepository(dbClient.DB())
	inventoryRepo := inventory.NewRepository(dbClient.DB())
	reportsRepo := reports.NewRepository(dbClient.DB())
	lookupsRepo := reference.NewRepository(dbClient.DB())

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       usersRepo,
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	usersService, err := users.NewService(users.ServiceParams{
		Repo:        usersRepo,
		Labs:        labsRepo,
		DBClient:    dbClient,
		PasswordCfg: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create users service", err)
		os.Exit(1)
	}

	labsService, err := laboratories.NewService(labsRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create laboratories service", err)
		os.Exit(1)
	}

	workstationsService, err := workstations.NewService(workstations.ServiceParams{
		Repo:     workstationsRepo,
		Labs:     labsRepo,
		DBClient: dbClient,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create workstations service", err)
		os.Exit(1)
	}

	inventoryService, err := inventory.NewService(inventory.ServiceParams{
		Repo:         inventoryRepo,
		Labs:         labsRepo,
		Units:        lookupsRepo,
		Workstations: workstationsRepo,
		Users:        usersRepo,
		DBClient:     dbClient,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create inventory service", err)
		os.Exit(1)
	}

	reportsService, err := reports.NewService(reports.ServiceParams{
		Repo:     reportsRepo,
		Users:    usersRepo,
		DBClient: dbClient,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create reports service", err)
		os.Exit(1)
	}

	referenceService, err := reference.NewService(reference.ServiceParams{
		Lookups: lookupsRepo,
		Labs:    labsRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create reference service", err)
		os.Exit(1)
	}

	dashboardService, err := dashboard.NewService(dashboard.ServiceParams{
		Assets:  inventoryRepo,
		Labs:    labsRepo,
		Reports: reportsRepo,
		Users:   usersRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create dashboard service", err)
		os.Exit(1)
	}

	httpMetrics := metrics.NewHTTPMetrics(prometheus.DefaultRegisterer)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			sessionManager,
			httpMetrics,
			authService,
			usersService,
			labsService,
			workstationsService,
			inventoryService,
			reportsService,
			referenceService,
			dashboardService,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
