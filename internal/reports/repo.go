package reports

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/campuslabs/labtrack-backend/pkg/db/models"
)

// Repository exposes daily report persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a reports repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

func withRelations(q *gorm.DB) *gorm.DB {
	return q.
		Preload("ChecklistItems").
		Preload("ChecklistItems.Task").
		Preload("User").
		Preload("Laboratory")
}

// List returns reports matching the filters, newest report date first.
func (r *Repository) List(ctx context.Context, filters ListFilters) ([]models.DailyReport, error) {
	q := withRelations(r.db.WithContext(ctx))
	if filters.LabID != nil {
		q = q.Where("lab_id = ?", *filters.LabID)
	}
	if filters.UserID != nil {
		q = q.Where("user_id = ?", *filters.UserID)
	}
	if filters.Status != nil {
		q = q.Where("status = ?", *filters.Status)
	}
	if filters.ExcludeStatus != nil {
		q = q.Where("status <> ?", *filters.ExcludeStatus)
	}
	if filters.StartDate != nil && filters.EndDate != nil {
		q = q.Where("report_date BETWEEN ? AND ?", *filters.StartDate, *filters.EndDate)
	}

	var rows []models.DailyReport
	if err := q.Order("report_date DESC, report_id DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindByID loads a single report with relations.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.DailyReport, error) {
	var report models.DailyReport
	if err := withRelations(r.db.WithContext(ctx)).
		First(&report, "report_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

// CountForDay counts a user's reports for one lab on one calendar day.
func (r *Repository) CountForDay(ctx context.Context, userID, labID int64, day time.Time) (int64, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)

	var n int64
	if err := r.db.WithContext(ctx).
		Model(&models.DailyReport{}).
		Where("user_id = ? AND lab_id = ?", userID, labID).
		Where("report_date >= ? AND report_date < ?", start, end).
		Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// Create inserts a report together with its checklist items.
func (r *Repository) Create(ctx context.Context, report *models.DailyReport) (*models.DailyReport, error) {
	if err := r.db.WithContext(ctx).Create(report).Error; err != nil {
		return nil, err
	}
	return report, nil
}

// Update persists the mutable report columns.
func (r *Repository) Update(ctx context.Context, report *models.DailyReport) error {
	return r.db.WithContext(ctx).
		Model(&models.DailyReport{}).
		Where("report_id = ?", report.ReportID).
		Updates(map[string]any{
			"time_in":         report.TimeIn,
			"time_out":        report.TimeOut,
			"general_remarks": report.GeneralRemarks,
			"status":          report.Status,
		}).Error
}

// ReplaceChecklist swaps the report's checklist items for the provided set.
func (r *Repository) ReplaceChecklist(ctx context.Context, reportID int64, items []models.ReportChecklistItem) error {
	if err := r.db.WithContext(ctx).
		Delete(&models.ReportChecklistItem{}, "report_id = ?", reportID).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		items[i].ReportID = reportID
		items[i].ItemID = 0
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

// Delete removes a report; checklist items go with it via the FK cascade.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&models.DailyReport{}, "report_id = ?", id).Error
}

// Count reports the total number of daily reports, optionally per lab.
func (r *Repository) Count(ctx context.Context, labID *int64) (int64, error) {
	q := r.db.WithContext(ctx).Model(&models.DailyReport{})
	if labID != nil {
		q = q.Where("lab_id = ?", *labID)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// Recent returns the latest reports by creation time.
func (r *Repository) Recent(ctx context.Context, limit int) ([]models.DailyReport, error) {
	var rows []models.DailyReport
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Laboratory").
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
