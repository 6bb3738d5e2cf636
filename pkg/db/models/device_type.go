package models

type DeviceType struct {
	DeviceTypeID   int64  `gorm:"column:device_type_id;primaryKey;autoIncrement"`
	DeviceTypeName string `gorm:"column:device_type_name;not null"`
}

func (DeviceType) TableName() string { return "device_types" }
