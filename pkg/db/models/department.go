package models

type Department struct {
	DeptID       int64       `gorm:"column:dept_id;primaryKey;autoIncrement"`
	DeptName     string      `gorm:"column:dept_name;not null"`
	CampusID     *int64      `gorm:"column:campus_id"`
	OfficeTypeID *int64      `gorm:"column:office_type_id"`
	DesigneeName string      `gorm:"column:designee_name"`
	Campus       *Campus     `gorm:"foreignKey:CampusID;references:CampusID"`
	OfficeType   *OfficeType `gorm:"foreignKey:OfficeTypeID;references:TypeID"`
}

func (Department) TableName() string { return "departments" }
