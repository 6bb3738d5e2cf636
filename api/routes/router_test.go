package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/campuslabs/labtrack-backend/internal/auth"
	"github.com/campuslabs/labtrack-backend/internal/dashboard"
	"github.com/campuslabs/labtrack-backend/internal/inventory"
	"github.com/campuslabs/labtrack-backend/internal/laboratories"
	"github.com/campuslabs/labtrack-backend/internal/reference"
	"github.com/campuslabs/labtrack-backend/internal/reports"
	"github.com/campuslabs/labtrack-backend/internal/users"
	"github.com/campuslabs/labtrack-backend/internal/workstations"
	pkgAuth "github.com/campuslabs/labtrack-backend/pkg/auth"
	"github.com/campuslabs/labtrack-backend/pkg/auth/session"
	"github.com/campuslabs/labtrack-backend/pkg/config"
	"github.com/campuslabs/labtrack-backend/pkg/enums"
	"github.com/campuslabs/labtrack-backend/pkg/logger"
	"github.com/campuslabs/labtrack-backend/pkg/redis"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubSessionManager struct{}

func (stubSessionManager) HasSession(ctx context.Context, accessID string) (bool, error) {
	return true, nil
}

type stubAuthService struct{}

func (stubAuthService) Login(ctx context.Context, req auth.LoginRequest) (*auth.LoginResponse, error) {
	panic("unimplemented")
}

func (stubAuthService) Logout(ctx context.Context, accessID string) error {
	return nil
}

type stubUsersService struct{}

func (stubUsersService) AssignedLab(ctx context.Context, userID int64) (*users.AssignedLabResult, error) {
	return &users.AssignedLabResult{}, nil
}

func (stubUsersService) ListAssignments(ctx context.Context) ([]users.UserDTO, error) {
	return []users.UserDTO{}, nil
}

func (stubUsersService) AssignLab(ctx context.Context, input users.AssignLabInput) (*users.UserDTO, error) {
	panic("unimplemented")
}

func (stubUsersService) CreateUser(ctx context.Context, input users.CreateUserInput) (*users.UserDTO, error) {
	panic("unimplemented")
}

func (stubUsersService) UpdateUser(ctx context.Context, userID int64, input users.UpdateUserInput) (*users.UserDTO, error) {
	panic("unimplemented")
}

func (stubUsersService) DeleteUser(ctx context.Context, actorID, userID int64) error {
	panic("unimplemented")
}

type stubLabsService struct{}

func (stubLabsService) List(ctx context.Context) ([]laboratories.LaboratoryDTO, error) {
	return []laboratories.LaboratoryDTO{}, nil
}

func (stubLabsService) Create(ctx context.Context, input laboratories.CreateLaboratoryInput) (*laboratories.LaboratoryDTO, error) {
	panic("unimplemented")
}

func (stubLabsService) Update(ctx context.Context, labID int64, input laboratories.UpdateLaboratoryInput) (*laboratories.LaboratoryDTO, error) {
	panic("unimplemented")
}

func (stubLabsService) Delete(ctx context.Context, labID int64) error {
	panic("unimplemented")
}

type stubWorkstationsService struct{}

func (stubWorkstationsService) List(ctx context.Context) ([]workstations.WorkstationDTO, error) {
	return []workstations.WorkstationDTO{}, nil
}

func (stubWorkstationsService) GetByName(ctx context.Context, name string) (*workstations.WorkstationDTO, error) {
	panic("unimplemented")
}

func (stubWorkstationsService) Create(ctx context.Context, input workstations.CreateWorkstationInput) (*workstations.WorkstationDTO, error) {
	panic("unimplemented")
}

func (stubWorkstationsService) Update(ctx context.Context, id int64, input workstations.UpdateWorkstationInput) (*workstations.WorkstationDTO, error) {
	panic("unimplemented")
}

func (stubWorkstationsService) Delete(ctx context.Context, id int64) error {
	panic("unimplemented")
}

func (stubWorkstationsService) BatchCreate(ctx context.Context, input workstations.BatchCreateInput) (*workstations.BatchCreateResult, error) {
	panic("unimplemented")
}

type stubInventoryService struct{}

func (stubInventoryService) List(ctx context.Context) ([]inventory.AssetDTO, error) {
	return []inventory.AssetDTO{}, nil
}

func (stubInventoryService) Get(ctx context.Context, id int64) (*inventory.AssetDTO, error) {
	panic("unimplemented")
}

func (stubInventoryService) Create(ctx context.Context, actor inventory.Actor, input inventory.AssetInput) (*inventory.AssetDTO, error) {
	panic("unimplemented")
}

func (stubInventoryService) Update(ctx context.Context, id int64, input inventory.UpdateAssetInput) (*inventory.AssetDTO, error) {
	panic("unimplemented")
}

func (stubInventoryService) Delete(ctx context.Context, id int64) error {
	panic("unimplemented")
}

func (stubInventoryService) BatchCreate(ctx context.Context, actor inventory.Actor, input inventory.BatchCreateInput) (*inventory.BatchCreateResult, error) {
	panic("unimplemented")
}

type stubReportsService struct{}

func (stubReportsService) List(ctx context.Context, filters reports.ListFilters) ([]reports.ReportDTO, error) {
	return []reports.ReportDTO{}, nil
}

func (stubReportsService) My(ctx context.Context, actor reports.Actor, filters reports.ListFilters) ([]reports.ReportDTO, error) {
	return []reports.ReportDTO{}, nil
}

func (stubReportsService) Get(ctx context.Context, id int64) (*reports.ReportDTO, error) {
	panic("unimplemented")
}

func (stubReportsService) Create(ctx context.Context, actor reports.Actor, input reports.CreateReportInput) (*reports.ReportDTO, error) {
	panic("unimplemented")
}

func (stubReportsService) Update(ctx context.Context, actor reports.Actor, id int64, input reports.UpdateReportInput) (*reports.ReportDTO, error) {
	panic("unimplemented")
}

func (stubReportsService) Delete(ctx context.Context, id int64) error {
	panic("unimplemented")
}

type stubReferenceService struct{}

func (stubReferenceService) Units(ctx context.Context, deviceTypeID *int64) ([]reference.UnitDTO, error) {
	return []reference.UnitDTO{}, nil
}

func (stubReferenceService) DeviceTypes(ctx context.Context) ([]reference.DeviceTypeDTO, error) {
	return []reference.DeviceTypeDTO{}, nil
}

func (stubReferenceService) StandardTasks(ctx context.Context) ([]reference.StandardTaskDTO, error) {
	return []reference.StandardTaskDTO{}, nil
}

func (stubReferenceService) Organization(ctx context.Context) (*reference.OrganizationData, error) {
	return &reference.OrganizationData{}, nil
}

type stubDashboardService struct{}

func (stubDashboardService) Summary(ctx context.Context, actor dashboard.Actor) (*dashboard.Summary, error) {
	return &dashboard.Summary{}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{
			Secret:            "secret",
			Issuer:            "issuer",
			ExpirationMinutes: 60,
		},
	}
}

func newTestRouter(cfg *config.Config) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	return NewRouter(
		cfg,
		logg,
		stubPinger{},
		(*redis.Client)(nil),
		stubSessionManager{},
		nil, // metrics
		stubAuthService{},
		stubUsersService{},
		stubLabsService{},
		stubWorkstationsService{},
		stubInventoryService{},
		stubReportsService{},
		stubReferenceService{},
		stubDashboardService{},
	)
}

func buildToken(t *testing.T, cfg *config.Config, role enums.Role) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(cfg.JWT, time.Now(), pkgAuth.AccessTokenPayload{
		UserID: 1,
		Role:   role,
		JTI:    session.NewAccessID(),
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestProtectedRoutesRejectMissingJWT(t *testing.T) {
	router := newTestRouter(testConfig())
	for _, path := range []string{"/inventory", "/workstations", "/daily-reports/my", "/dashboard"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401 for %s without token got %d", path, resp.Code)
		}
	}
}

func TestProtectedRoutesAcceptValidJWT(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	token := buildToken(t, cfg, enums.RoleCustodian)
	for _, path := range []string{"/inventory", "/laboratories", "/units", "/organization-data", "/dashboard"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("expected 200 for %s got %d", path, resp.Code)
		}
	}
}

func TestAdminRoutesRequireAdminRole(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	custodian := httptest.NewRequest(http.MethodGet, "/users/assignments", nil)
	custodian.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.RoleCustodian))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, custodian)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for custodian got %d", resp.Code)
	}

	admin := httptest.NewRequest(http.MethodGet, "/users/assignments", nil)
	admin.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.RoleAdmin))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, admin)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin got %d", resp.Code)
	}
}

func TestReportListRequiresAdminRole(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	custodian := httptest.NewRequest(http.MethodGet, "/daily-reports", nil)
	custodian.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.RoleCustodian))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, custodian)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for custodian list got %d", resp.Code)
	}

	mine := httptest.NewRequest(http.MethodGet, "/daily-reports/my", nil)
	mine.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.RoleCustodian))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, mine)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for own reports got %d", resp.Code)
	}
}

func TestHealthAndMetricsArePublic(t *testing.T) {
	router := newTestRouter(testConfig())

	live := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, live)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for liveness got %d", resp.Code)
	}

	metricsReq := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, metricsReq)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for metrics got %d", resp.Code)
	}
}
