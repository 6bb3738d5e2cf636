package models

import "github.com/campuslabs/labtrack-backend/pkg/enums"

type ReportChecklistItem struct {
	ItemID          int64            `gorm:"column:item_id;primaryKey;autoIncrement"`
	ReportID        int64            `gorm:"column:report_id"`
	TaskID          int64            `gorm:"column:task_id"`
	TaskStatus      enums.TaskStatus `gorm:"column:task_status"`
	SpecificRemarks string           `gorm:"column:specific_remarks"`
	Task            *StandardTask    `gorm:"foreignKey:TaskID;references:TaskID"`
}

func (ReportChecklistItem) TableName() string { return "report_checklist_items" }
