package dashboard

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/campuslabs/labtrack-backend/pkg/db/models"
	"github.com/campuslabs/labtrack-backend/pkg/enums"
	pkgerrors "github.com/campuslabs/labtrack-backend/pkg/errors"
)

const recentReportLimit = 5

// Actor identifies the authenticated caller; custodians get figures scoped
// to their assigned laboratory.
type Actor struct {
	UserID int64
	Role   enums.Role
}

// Summary is the dashboard payload.
type Summary struct {
	Stats         Stats          `json:"stats"`
	RecentReports []RecentReport `json:"recent_reports"`
	AssetsByLab   []LabAssetRow  `json:"assets_by_lab"`
	AssignedLab   *LabSummary    `json:"assigned_lab,omitempty"`
	Role          enums.Role     `json:"role"`
}

// Stats carries the headline counters.
type Stats struct {
	TotalAssets       int64 `json:"total_assets"`
	TotalLaboratories int64 `json:"total_laboratories"`
	TotalDailyReports int64 `json:"total_daily_reports"`
	TotalUsers        int64 `json:"total_users"`
}

// RecentReport is a trimmed report row for the dashboard feed.
type RecentReport struct {
	ReportID   int64              `json:"report_id"`
	ReportDate string             `json:"report_date"`
	Status     enums.ReportStatus `json:"status"`
	UserName   string             `json:"user_name,omitempty"`
	LabName    string             `json:"lab_name,omitempty"`
}

// LabAssetRow pairs a laboratory with its asset count.
type LabAssetRow struct {
	LabID   int64  `json:"lab_id"`
	LabName string `json:"lab_name"`
	Count   int64  `json:"count"`
}

type LabSummary struct {
	LabID   int64  `json:"lab_id"`
	LabName string `json:"lab_name"`
}

// Service assembles the dashboard summary.
type Service interface {
	Summary(ctx context.Context, actor Actor) (*Summary, error)
}

type assetStore interface {
	Count(ctx context.Context) (int64, error)
	CountByLab(ctx context.Context) (map[int64]int64, error)
}

type labStore interface {
	Count(ctx context.Context) (int64, error)
	ListByIDs(ctx context.Context, ids []int64) ([]models.Laboratory, error)
}

type reportStore interface {
	Count(ctx context.Context, labID *int64) (int64, error)
	Recent(ctx context.Context, limit int) ([]models.DailyReport, error)
}

type userStore interface {
	Count(ctx context.Context) (int64, error)
	FindByIDWithLab(ctx context.Context, id int64) (*models.User, error)
}

type service struct {
	assets  assetStore
	labs    labStore
	reports reportStore
	users   userStore
}

// ServiceParams bundles the dependencies required to build a dashboard service.
type ServiceParams struct {
	Assets  assetStore
	Labs    labStore
	Reports reportStore
	Users   userStore
}

// NewService constructs a dashboard service instance.
func NewService(params ServiceParams) (Service, error) {
	if params.Assets == nil {
		return nil, fmt.Errorf("inventory repository is required")
	}
	if params.Labs == nil {
		return nil, fmt.Errorf("laboratories repository is required")
	}
	if params.Reports == nil {
		return nil, fmt.Errorf("reports repository is required")
	}
	if params.Users == nil {
		return nil, fmt.Errorf("users repository is required")
	}
	return &service{
		assets:  params.Assets,
		labs:    params.Labs,
		reports: params.Reports,
		users:   params.Users,
	}, nil
}

func (s *service) Summary(ctx context.Context, actor Actor) (*Summary, error) {
	out := &Summary{Role: actor.Role}

	var reportLab *int64
	if !actor.Role.IsAdmin() {
		user, err := s.users.FindByIDWithLab(ctx, actor.UserID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load caller")
		}
		if user != nil && user.LabID != nil {
			reportLab = user.LabID
			if user.AssignedLab != nil {
				out.AssignedLab = &LabSummary{
					LabID:   user.AssignedLab.LabID,
					LabName: user.AssignedLab.LabName,
				}
			}
		}
	}

	assets, err := s.assets.Count(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count assets")
	}
	labs, err := s.labs.Count(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count laboratories")
	}
	reports, err := s.reports.Count(ctx, reportLab)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count reports")
	}
	userCount, err := s.users.Count(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count users")
	}
	out.Stats = Stats{
		TotalAssets:       assets,
		TotalLaboratories: labs,
		TotalDailyReports: reports,
		TotalUsers:        userCount,
	}

	recent, err := s.reports.Recent(ctx, recentReportLimit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load recent reports")
	}
	out.RecentReports = make([]RecentReport, 0, len(recent))
	for i := range recent {
		row := RecentReport{
			ReportID:   recent[i].ReportID,
			ReportDate: recent[i].ReportDate.Format("2006-01-02"),
			Status:     recent[i].Status,
		}
		if recent[i].User != nil {
			row.UserName = recent[i].User.FullName
		}
		if recent[i].Laboratory != nil {
			row.LabName = recent[i].Laboratory.LabName
		}
		out.RecentReports = append(out.RecentReports, row)
	}

	byLab, err := s.assets.CountByLab(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count assets by lab")
	}
	labIDs := make([]int64, 0, len(byLab))
	for id := range byLab {
		labIDs = append(labIDs, id)
	}
	labRows, err := s.labs.ListByIDs(ctx, labIDs)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load laboratories")
	}
	out.AssetsByLab = make([]LabAssetRow, 0, len(labRows))
	for i := range labRows {
		out.AssetsByLab = append(out.AssetsByLab, LabAssetRow{
			LabID:   labRows[i].LabID,
			LabName: labRows[i].LabName,
			Count:   byLab[labRows[i].LabID],
		})
	}

	return out, nil
}
