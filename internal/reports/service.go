package reports

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/campuslabs/labtrack-backend/pkg/db"
	"github.com/campuslabs/labtrack-backend/pkg/db/models"
	"github.com/campuslabs/labtrack-backend/pkg/enums"
	pkgerrors "github.com/campuslabs/labtrack-backend/pkg/errors"
)

// Daily reports are capped per user, lab and calendar day.
const maxReportsPerDay = 10

// Actor identifies the authenticated caller for ownership checks.
type Actor struct {
	UserID int64
	Role   enums.Role
}

// Service exposes the daily report lifecycle.
type Service interface {
	List(ctx context.Context, filters ListFilters) ([]ReportDTO, error)
	My(ctx context.Context, actor Actor, filters ListFilters) ([]ReportDTO, error)
	Get(ctx context.Context, id int64) (*ReportDTO, error)
	Create(ctx context.Context, actor Actor, input CreateReportInput) (*ReportDTO, error)
	Update(ctx context.Context, actor Actor, id int64, input UpdateReportInput) (*ReportDTO, error)
	Delete(ctx context.Context, id int64) error
}

type reportStore interface {
	List(ctx context.Context, filters ListFilters) ([]models.DailyReport, error)
	FindByID(ctx context.Context, id int64) (*models.DailyReport, error)
	Delete(ctx context.Context, id int64) error
}

type userStore interface {
	FindByID(ctx context.Context, id int64) (*models.User, error)
}

type service struct {
	repo     *Repository
	reports  reportStore
	users    userStore
	dbClient *db.Client
}

// ServiceParams bundles the dependencies required to build a reports service.
type ServiceParams struct {
	Repo     *Repository
	Users    userStore
	DBClient *db.Client
}

// NewService constructs a reports service instance.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("reports repository is required")
	}
	if params.Users == nil {
		return nil, fmt.Errorf("users repository is required")
	}
	if params.DBClient == nil {
		return nil, fmt.Errorf("db client is required")
	}
	return &service{
		repo:     params.Repo,
		reports:  params.Repo,
		users:    params.Users,
		dbClient: params.DBClient,
	}, nil
}

func (s *service) List(ctx context.Context, filters ListFilters) ([]ReportDTO, error) {
	if err := validateStatusFilters(filters); err != nil {
		return nil, err
	}
	rows, err := s.reports.List(ctx, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list reports")
	}
	return FromModels(rows), nil
}

func (s *service) My(ctx context.Context, actor Actor, filters ListFilters) ([]ReportDTO, error) {
	if err := validateStatusFilters(filters); err != nil {
		return nil, err
	}
	filters.UserID = &actor.UserID
	rows, err := s.reports.List(ctx, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list own reports")
	}
	return FromModels(rows), nil
}

func (s *service) Get(ctx context.Context, id int64) (*ReportDTO, error) {
	report, err := s.reports.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "report not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load report")
	}
	return FromModel(report), nil
}

// Create inserts a report and its checklist in one transaction. The per-day
// cap is counted inside the same transaction so two racing requests cannot
// both slip under it.
func (s *service) Create(ctx context.Context, actor Actor, input CreateReportInput) (*ReportDTO, error) {
	if err := s.checkActorLab(ctx, actor, input.LabID); err != nil {
		return nil, err
	}

	items, err := checklistFromInputs(input.ChecklistItems)
	if err != nil {
		return nil, err
	}

	var createdID int64
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		count, err := txRepo.CountForDay(ctx, actor.UserID, input.LabID, input.ReportDate.Time)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count reports for day")
		}
		if count >= maxReportsPerDay {
			return pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("daily report limit of %d reached for this laboratory", maxReportsPerDay))
		}

		report := &models.DailyReport{
			UserID:         actor.UserID,
			LabID:          input.LabID,
			ReportDate:     input.ReportDate.Time,
			TimeIn:         input.TimeIn.TimePtr(),
			TimeOut:        input.TimeOut.TimePtr(),
			GeneralRemarks: strings.TrimSpace(input.GeneralRemarks),
			Status:         enums.ReportStatusPending,
			ChecklistItems: items,
		}
		if _, err := txRepo.Create(ctx, report); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "insert report")
		}
		createdID = report.ReportID
		return nil
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create report")
	}

	return s.Get(ctx, createdID)
}

func (s *service) Update(ctx context.Context, actor Actor, id int64, input UpdateReportInput) (*ReportDTO, error) {
	report, err := s.reports.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "report not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load report")
	}

	if !actor.Role.IsAdmin() && report.UserID != actor.UserID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "you can only modify your own reports")
	}

	if input.TimeIn != nil {
		report.TimeIn = input.TimeIn.TimePtr()
	}
	if input.TimeOut != nil {
		report.TimeOut = input.TimeOut.TimePtr()
	}
	if input.GeneralRemarks != nil {
		report.GeneralRemarks = strings.TrimSpace(*input.GeneralRemarks)
	}
	if input.Status != nil {
		status, err := enums.ParseReportStatus(*input.Status)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid report status")
		}
		if status == enums.ReportStatusApproved && !actor.Role.IsAdmin() {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only admins can approve reports")
		}
		report.Status = status
	}

	var items []models.ReportChecklistItem
	if input.ChecklistItems != nil {
		items, err = checklistFromInputs(*input.ChecklistItems)
		if err != nil {
			return nil, err
		}
	}

	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if err := txRepo.Update(ctx, report); err != nil {
			return err
		}
		if input.ChecklistItems != nil {
			return txRepo.ReplaceChecklist(ctx, report.ReportID, items)
		}
		return nil
	}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update report")
	}

	return s.Get(ctx, report.ReportID)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if _, err := s.reports.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "report not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load report")
	}
	if err := s.reports.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete report")
	}
	return nil
}

// checkActorLab restricts custodians to filing reports for their own lab.
func (s *service) checkActorLab(ctx context.Context, actor Actor, labID int64) error {
	if actor.Role.IsAdmin() {
		return nil
	}
	user, err := s.users.FindByID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeForbidden, "caller has no assigned laboratory")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load caller")
	}
	if user.LabID == nil || *user.LabID != labID {
		return pkgerrors.New(pkgerrors.CodeForbidden,
			"you can only file reports for your assigned laboratory")
	}
	return nil
}

func checklistFromInputs(inputs []ChecklistItemInput) ([]models.ReportChecklistItem, error) {
	items := make([]models.ReportChecklistItem, 0, len(inputs))
	for i, in := range inputs {
		status, err := enums.ParseTaskStatus(in.TaskStatus)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("checklist item %d: invalid task_status %q", i, in.TaskStatus))
		}
		if in.TaskID <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("checklist item %d: task_id is required", i))
		}
		items = append(items, models.ReportChecklistItem{
			TaskID:          in.TaskID,
			TaskStatus:      status,
			SpecificRemarks: strings.TrimSpace(in.SpecificRemarks),
		})
	}
	return items, nil
}

func validateStatusFilters(filters ListFilters) error {
	for _, raw := range []*string{filters.Status, filters.ExcludeStatus} {
		if raw == nil {
			continue
		}
		if _, err := enums.ParseReportStatus(*raw); err != nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "invalid report status filter")
		}
	}
	if (filters.StartDate == nil) != (filters.EndDate == nil) {
		return pkgerrors.New(pkgerrors.CodeValidation,
			"start_date and end_date must be provided together")
	}
	return nil
}
