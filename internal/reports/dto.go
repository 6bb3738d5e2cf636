package reports

import (
	"time"

	"github.com/campuslabs/labtrack-backend/pkg/db/models"
	"github.com/campuslabs/labtrack-backend/pkg/enums"
	"github.com/campuslabs/labtrack-backend/pkg/types"
)

// ReportDTO is the wire shape for a daily report with its checklist.
type ReportDTO struct {
	ReportID       int64              `json:"report_id"`
	UserID         int64              `json:"user_id"`
	LabID          int64              `json:"lab_id"`
	ReportDate     time.Time          `json:"report_date"`
	TimeIn         *time.Time         `json:"time_in,omitempty"`
	TimeOut        *time.Time         `json:"time_out,omitempty"`
	GeneralRemarks string             `json:"general_remarks,omitempty"`
	Status         enums.ReportStatus `json:"status"`
	CreatedAt      time.Time          `json:"created_at"`
	ChecklistItems []ChecklistItemDTO `json:"checklist_items"`
	User           *UserSummary       `json:"user,omitempty"`
	Laboratory     *LabSummary        `json:"laboratory,omitempty"`
}

// ChecklistItemDTO is one checklist row on a report.
type ChecklistItemDTO struct {
	ItemID          int64            `json:"item_id"`
	TaskID          int64            `json:"task_id"`
	TaskName        string           `json:"task_name,omitempty"`
	TaskStatus      enums.TaskStatus `json:"task_status"`
	SpecificRemarks string           `json:"specific_remarks,omitempty"`
}

type UserSummary struct {
	UserID   int64  `json:"user_id"`
	FullName string `json:"full_name"`
}

type LabSummary struct {
	LabID   int64  `json:"lab_id"`
	LabName string `json:"lab_name"`
}

// ChecklistItemInput is one submitted checklist entry.
type ChecklistItemInput struct {
	TaskID          int64  `json:"task_id" validate:"required,gt=0"`
	TaskStatus      string `json:"task_status" validate:"required"`
	SpecificRemarks string `json:"specific_remarks"`
}

// CreateReportInput holds the validated payload to create a report.
// Dates arrive as "2006-01-02" and clock fields as "HH:MM".
type CreateReportInput struct {
	LabID          int64                `json:"lab_id" validate:"required,gt=0"`
	ReportDate     types.Date           `json:"report_date" validate:"required"`
	TimeIn         *types.Clock         `json:"time_in"`
	TimeOut        *types.Clock         `json:"time_out"`
	GeneralRemarks string               `json:"general_remarks"`
	ChecklistItems []ChecklistItemInput `json:"checklist_items" validate:"omitempty,dive"`
}

// UpdateReportInput holds optional mutation values. A non-nil ChecklistItems
// slice replaces the stored checklist wholesale.
type UpdateReportInput struct {
	TimeIn         *types.Clock          `json:"time_in"`
	TimeOut        *types.Clock          `json:"time_out"`
	GeneralRemarks *string               `json:"general_remarks"`
	Status         *string               `json:"status"`
	ChecklistItems *[]ChecklistItemInput `json:"checklist_items"`
}

// ListFilters narrows report listings.
type ListFilters struct {
	LabID         *int64
	UserID        *int64
	Status        *string
	ExcludeStatus *string
	StartDate     *time.Time
	EndDate       *time.Time
}

// FromModel maps a report row plus preloaded relations onto the DTO.
func FromModel(report *models.DailyReport) *ReportDTO {
	if report == nil {
		return nil
	}
	dto := &ReportDTO{
		ReportID:       report.ReportID,
		UserID:         report.UserID,
		LabID:          report.LabID,
		ReportDate:     report.ReportDate,
		TimeIn:         report.TimeIn,
		TimeOut:        report.TimeOut,
		GeneralRemarks: report.GeneralRemarks,
		Status:         report.Status,
		CreatedAt:      report.CreatedAt,
		ChecklistItems: make([]ChecklistItemDTO, 0, len(report.ChecklistItems)),
	}
	for i := range report.ChecklistItems {
		item := &report.ChecklistItems[i]
		out := ChecklistItemDTO{
			ItemID:          item.ItemID,
			TaskID:          item.TaskID,
			TaskStatus:      item.TaskStatus,
			SpecificRemarks: item.SpecificRemarks,
		}
		if item.Task != nil {
			out.TaskName = item.Task.TaskName
		}
		dto.ChecklistItems = append(dto.ChecklistItems, out)
	}
	if report.User != nil {
		dto.User = &UserSummary{UserID: report.User.UserID, FullName: report.User.FullName}
	}
	if report.Laboratory != nil {
		dto.Laboratory = &LabSummary{LabID: report.Laboratory.LabID, LabName: report.Laboratory.LabName}
	}
	return dto
}

// FromModels maps a slice of report rows.
func FromModels(rows []models.DailyReport) []ReportDTO {
	out := make([]ReportDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}
