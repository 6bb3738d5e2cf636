package models

import "time"

// InventoryAsset is the logistics half of an asset record: where it lives and
// who registered it. The descriptive fields live in the AssetDetail sub-record.
type InventoryAsset struct {
	AssetID       int64        `gorm:"column:asset_id;primaryKey;autoIncrement"`
	LabID         *int64       `gorm:"column:lab_id"`
	UnitID        *int64       `gorm:"column:unit_id"`
	WorkstationID *int64       `gorm:"column:workstation_id"`
	AddedByUserID *int64       `gorm:"column:added_by_user_id"`
	DateAdded     time.Time    `gorm:"column:date_added;autoCreateTime"`
	Details       *AssetDetail `gorm:"foreignKey:AssetID;references:AssetID"`
	Laboratory    *Laboratory  `gorm:"foreignKey:LabID;references:LabID"`
	Unit          *Unit        `gorm:"foreignKey:UnitID;references:UnitID"`
	Workstation   *Workstation `gorm:"foreignKey:WorkstationID;references:WorkstationID"`
	AddedBy       *User        `gorm:"foreignKey:AddedByUserID;references:UserID"`
}

func (InventoryAsset) TableName() string { return "inventory_assets" }
