package models

// StandardTask is a checklist template item for daily reports.
type StandardTask struct {
	TaskID   int64  `gorm:"column:task_id;primaryKey;autoIncrement"`
	TaskName string `gorm:"column:task_name;not null"`
	Category string `gorm:"column:category"`
}

func (StandardTask) TableName() string { return "standard_tasks" }
