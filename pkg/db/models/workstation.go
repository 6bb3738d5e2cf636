package models

import "time"

// Workstation is a named station inside a laboratory. Names are only unique
// within their lab, and that is checked before insert rather than by a
// database constraint.
type Workstation struct {
	WorkstationID   int64            `gorm:"column:workstation_id;primaryKey;autoIncrement"`
	WorkstationName string           `gorm:"column:workstation_name;not null"`
	LabID           *int64           `gorm:"column:lab_id"`
	Laboratory      *Laboratory      `gorm:"foreignKey:LabID;references:LabID"`
	Assets          []InventoryAsset `gorm:"foreignKey:WorkstationID;references:WorkstationID"`
	CreatedAt       time.Time        `gorm:"column:created_at;autoCreateTime"`
}

func (Workstation) TableName() string { return "workstations" }
