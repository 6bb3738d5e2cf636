package models

type Campus struct {
	CampusID   int64  `gorm:"column:campus_id;primaryKey;autoIncrement"`
	CampusName string `gorm:"column:campus_name;not null"`
}

func (Campus) TableName() string { return "campuses" }
