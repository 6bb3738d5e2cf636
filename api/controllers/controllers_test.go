package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/campuslabs/labtrack-backend/internal/auth"
	"github.com/campuslabs/labtrack-backend/internal/inventory"
	"github.com/campuslabs/labtrack-backend/internal/reports"
	"github.com/campuslabs/labtrack-backend/internal/users"
	"github.com/campuslabs/labtrack-backend/internal/workstations"
	"github.com/campuslabs/labtrack-backend/pkg/enums"
	pkgerrors "github.com/campuslabs/labtrack-backend/pkg/errors"
)

type stubAuthService struct {
	resp *auth.LoginResponse
	err  error
}

func (s stubAuthService) Login(ctx context.Context, req auth.LoginRequest) (*auth.LoginResponse, error) {
	return s.resp, s.err
}

func (s stubAuthService) Logout(ctx context.Context, accessID string) error {
	return s.err
}

type stubWorkstationService struct {
	batchResult *workstations.BatchCreateResult
	err         error
}

func (s stubWorkstationService) List(ctx context.Context) ([]workstations.WorkstationDTO, error) {
	return nil, s.err
}

func (s stubWorkstationService) GetByName(ctx context.Context, name string) (*workstations.WorkstationDTO, error) {
	return nil, s.err
}

func (s stubWorkstationService) Create(ctx context.Context, input workstations.CreateWorkstationInput) (*workstations.WorkstationDTO, error) {
	return nil, s.err
}

func (s stubWorkstationService) Update(ctx context.Context, id int64, input workstations.UpdateWorkstationInput) (*workstations.WorkstationDTO, error) {
	return nil, s.err
}

func (s stubWorkstationService) Delete(ctx context.Context, id int64) error {
	return s.err
}

func (s stubWorkstationService) BatchCreate(ctx context.Context, input workstations.BatchCreateInput) (*workstations.BatchCreateResult, error) {
	return s.batchResult, s.err
}

func TestAuthLoginSuccess(t *testing.T) {
	handler := AuthLogin(stubAuthService{resp: &auth.LoginResponse{
		Token: "signed-token",
		User:  &users.UserDTO{UserID: 7, Email: "dana@school.edu", Role: enums.RoleCustodian},
	}}, nil)

	req := httptest.NewRequest(http.MethodPost, "/login",
		bytes.NewReader([]byte(`{"email":"dana@school.edu","password":"supersecret"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data struct {
			Token string         `json:"token"`
			User  *users.UserDTO `json:"user"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Token != "signed-token" {
		t.Fatalf("expected token in payload got %q", envelope.Data.Token)
	}
	if envelope.Data.User == nil || envelope.Data.User.UserID != 7 {
		t.Fatalf("expected user in payload got %+v", envelope.Data.User)
	}
}

func TestAuthLoginInvalidPayload(t *testing.T) {
	handler := AuthLogin(stubAuthService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/login",
		bytes.NewReader([]byte(`{"email":"not-an-email"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestAuthLoginBadCredentials(t *testing.T) {
	handler := AuthLogin(stubAuthService{
		err: pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials"),
	}, nil)

	req := httptest.NewRequest(http.MethodPost, "/login",
		bytes.NewReader([]byte(`{"email":"dana@school.edu","password":"wrong"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestWorkstationsBatchCreateConflictSurfacesDetails(t *testing.T) {
	handler := WorkstationsBatchCreate(stubWorkstationService{
		err: pkgerrors.New(pkgerrors.CodeConflict, "duplicate workstation names").
			WithDetails([]string{`workstation "PC-01" already exists in laboratory 1`}),
	}, nil)

	req := httptest.NewRequest(http.MethodPost, "/workstations/batch",
		bytes.NewReader([]byte(`{"workstations":[{"workstation_name":"PC-01","lab_id":1}]}`)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d", resp.Code)
	}

	var envelope struct {
		Error struct {
			Code    string   `json:"code"`
			Message string   `json:"message"`
			Details []string `json:"details"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Error.Code != string(pkgerrors.CodeConflict) {
		t.Fatalf("expected conflict code got %q", envelope.Error.Code)
	}
	if len(envelope.Error.Details) != 1 {
		t.Fatalf("expected collision details got %+v", envelope.Error.Details)
	}
}

func TestWorkstationsBatchCreateSuccess(t *testing.T) {
	handler := WorkstationsBatchCreate(stubWorkstationService{
		batchResult: &workstations.BatchCreateResult{
			Message: "2 workstations created successfully",
			Count:   2,
		},
	}, nil)

	req := httptest.NewRequest(http.MethodPost, "/workstations/batch",
		bytes.NewReader([]byte(`{"workstations":[{"workstation_name":"PC-01","lab_id":1},{"workstation_name":"PC-02","lab_id":1}]}`)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.Code)
	}

	var envelope struct {
		Data workstations.BatchCreateResult `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Count != 2 {
		t.Fatalf("expected count 2 got %d", envelope.Data.Count)
	}
}

type stubReportService struct {
	created  *reports.ReportDTO
	captured *reports.CreateReportInput
	err      error
}

func (s *stubReportService) List(ctx context.Context, filters reports.ListFilters) ([]reports.ReportDTO, error) {
	return nil, s.err
}

func (s *stubReportService) My(ctx context.Context, actor reports.Actor, filters reports.ListFilters) ([]reports.ReportDTO, error) {
	return nil, s.err
}

func (s *stubReportService) Get(ctx context.Context, id int64) (*reports.ReportDTO, error) {
	return nil, s.err
}

func (s *stubReportService) Create(ctx context.Context, actor reports.Actor, input reports.CreateReportInput) (*reports.ReportDTO, error) {
	s.captured = &input
	return s.created, s.err
}

func (s *stubReportService) Update(ctx context.Context, actor reports.Actor, id int64, input reports.UpdateReportInput) (*reports.ReportDTO, error) {
	return nil, s.err
}

func (s *stubReportService) Delete(ctx context.Context, id int64) error {
	return s.err
}

type stubInventoryService struct {
	created  *inventory.AssetDTO
	captured *inventory.AssetInput
	err      error
}

func (s *stubInventoryService) List(ctx context.Context) ([]inventory.AssetDTO, error) {
	return nil, s.err
}

func (s *stubInventoryService) Get(ctx context.Context, id int64) (*inventory.AssetDTO, error) {
	return nil, s.err
}

func (s *stubInventoryService) Create(ctx context.Context, actor inventory.Actor, input inventory.AssetInput) (*inventory.AssetDTO, error) {
	s.captured = &input
	return s.created, s.err
}

func (s *stubInventoryService) Update(ctx context.Context, id int64, input inventory.UpdateAssetInput) (*inventory.AssetDTO, error) {
	return nil, s.err
}

func (s *stubInventoryService) Delete(ctx context.Context, id int64) error {
	return s.err
}

func (s *stubInventoryService) BatchCreate(ctx context.Context, actor inventory.Actor, input inventory.BatchCreateInput) (*inventory.BatchCreateResult, error) {
	return nil, s.err
}

func TestReportsCreateAcceptsPlainDate(t *testing.T) {
	stub := &stubReportService{created: &reports.ReportDTO{
		ReportID:   42,
		LabID:      1,
		ReportDate: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Status:     enums.ReportStatusPending,
	}}
	handler := ReportsCreate(stub, nil)

	req := httptest.NewRequest(http.MethodPost, "/daily-reports",
		bytes.NewReader([]byte(`{"lab_id":1,"report_date":"2024-01-15","general_remarks":"ok"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}

	var envelope struct {
		Data struct {
			ReportID int64  `json:"report_id"`
			Status   string `json:"status"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Status != "Pending" {
		t.Fatalf("expected Pending status got %q", envelope.Data.Status)
	}

	if stub.captured == nil {
		t.Fatal("service never received the payload")
	}
	want := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	if !stub.captured.ReportDate.Equal(want) {
		t.Fatalf("expected report date %v got %v", want, stub.captured.ReportDate.Time)
	}
	if stub.captured.GeneralRemarks != "ok" {
		t.Fatalf("expected remarks %q got %q", "ok", stub.captured.GeneralRemarks)
	}
}

func TestReportsCreateAcceptsClockFields(t *testing.T) {
	stub := &stubReportService{created: &reports.ReportDTO{
		ReportID: 7,
		Status:   enums.ReportStatusPending,
	}}
	handler := ReportsCreate(stub, nil)

	req := httptest.NewRequest(http.MethodPost, "/daily-reports",
		bytes.NewReader([]byte(`{"lab_id":1,"report_date":"2024-01-15","time_in":"08:00","time_out":"17:30"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}

	if stub.captured == nil || stub.captured.TimeIn == nil || stub.captured.TimeOut == nil {
		t.Fatalf("expected both clock fields captured got %+v", stub.captured)
	}
	if got := stub.captured.TimeIn.Format("15:04"); got != "08:00" {
		t.Fatalf("expected time_in 08:00 got %q", got)
	}
	if got := stub.captured.TimeOut.Format("15:04"); got != "17:30" {
		t.Fatalf("expected time_out 17:30 got %q", got)
	}
}

func TestInventoryCreateAcceptsPlainPurchaseDate(t *testing.T) {
	stub := &stubInventoryService{created: &inventory.AssetDTO{AssetID: 9}}
	handler := InventoryCreate(stub, nil)

	req := httptest.NewRequest(http.MethodPost, "/inventory",
		bytes.NewReader([]byte(`{"lab_id":1,"item_name":"27in LED Monitor","quantity":1,"date_of_purchase":"2024-01-15"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}

	if stub.captured == nil || stub.captured.DateOfPurchase == nil {
		t.Fatalf("expected purchase date captured got %+v", stub.captured)
	}
	want := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	if !stub.captured.DateOfPurchase.Equal(want) {
		t.Fatalf("expected purchase date %v got %v", want, stub.captured.DateOfPurchase.Time)
	}
}
