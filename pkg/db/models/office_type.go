package models

type OfficeType struct {
	TypeID   int64  `gorm:"column:type_id;primaryKey;autoIncrement"`
	TypeName string `gorm:"column:type_name;not null"`
}

func (OfficeType) TableName() string { return "office_types" }
