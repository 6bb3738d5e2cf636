package models

import "time"

type AssetDetail struct {
	DetailID       int64      `gorm:"column:detail_id;primaryKey;autoIncrement"`
	AssetID        int64      `gorm:"column:asset_id;uniqueIndex"`
	ItemName       string     `gorm:"column:item_name"`
	Description    string     `gorm:"column:description"`
	PropertyTagNo  string     `gorm:"column:property_tag_no"`
	SerialNumber   string     `gorm:"column:serial_number"`
	Quantity       int        `gorm:"column:quantity;default:1"`
	DateOfPurchase *time.Time `gorm:"column:date_of_purchase"`
}

func (AssetDetail) TableName() string { return "asset_details" }
