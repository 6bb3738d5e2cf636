package models

import (
	"time"

	"github.com/campuslabs/labtrack-backend/pkg/enums"
)

// DailyReport is a custodian's end-of-day log for one laboratory. Checklist
// items are owned by the report row and replaced wholesale on update.
type DailyReport struct {
	ReportID       int64                 `gorm:"column:report_id;primaryKey;autoIncrement"`
	UserID         int64                 `gorm:"column:user_id"`
	LabID          int64                 `gorm:"column:lab_id"`
	ReportDate     time.Time             `gorm:"column:report_date"`
	TimeIn         *time.Time            `gorm:"column:time_in"`
	TimeOut        *time.Time            `gorm:"column:time_out"`
	GeneralRemarks string                `gorm:"column:general_remarks"`
	Status         enums.ReportStatus    `gorm:"column:status;default:'Pending'"`
	CreatedAt      time.Time             `gorm:"column:created_at;autoCreateTime"`
	ChecklistItems []ReportChecklistItem `gorm:"foreignKey:ReportID;references:ReportID"`
	User           *User                 `gorm:"foreignKey:UserID;references:UserID"`
	Laboratory     *Laboratory           `gorm:"foreignKey:LabID;references:LabID"`
}

func (DailyReport) TableName() string { return "daily_reports" }
