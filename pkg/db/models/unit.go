package models

// Unit is a purchasable equipment kind, e.g. "LED Monitor" under the
// "Monitor" device type.
type Unit struct {
	UnitID       int64       `gorm:"column:unit_id;primaryKey;autoIncrement"`
	UnitName     string      `gorm:"column:unit_name;not null"`
	DeviceTypeID *int64      `gorm:"column:device_type_id"`
	DeviceType   *DeviceType `gorm:"foreignKey:DeviceTypeID;references:DeviceTypeID"`
}

func (Unit) TableName() string { return "units" }
