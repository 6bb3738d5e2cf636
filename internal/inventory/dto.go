package inventory

import (
	"time"

	"github.com/campuslabs/labtrack-backend/pkg/db/models"
	"github.com/campuslabs/labtrack-backend/pkg/types"
)

// AssetDTO is the wire shape for an inventory asset with its detail record.
type AssetDTO struct {
	AssetID       int64               `json:"asset_id"`
	LabID         *int64              `json:"lab_id"`
	UnitID        *int64              `json:"unit_id"`
	WorkstationID *int64              `json:"workstation_id"`
	AddedByUserID *int64              `json:"added_by_user_id"`
	DateAdded     time.Time           `json:"date_added"`
	Details       *AssetDetailDTO     `json:"details,omitempty"`
	Laboratory    *LabSummary         `json:"laboratory,omitempty"`
	Unit          *UnitSummary        `json:"unit,omitempty"`
	Workstation   *WorkstationSummary `json:"workstation,omitempty"`
	AddedBy       *UserSummary        `json:"added_by,omitempty"`
}

// AssetDetailDTO carries the descriptive half of an asset.
type AssetDetailDTO struct {
	ItemName       string     `json:"item_name,omitempty"`
	Description    string     `json:"description,omitempty"`
	PropertyTagNo  string     `json:"property_tag_no,omitempty"`
	SerialNumber   string     `json:"serial_number,omitempty"`
	Quantity       int        `json:"quantity"`
	DateOfPurchase *time.Time `json:"date_of_purchase,omitempty"`
}

type LabSummary struct {
	LabID   int64  `json:"lab_id"`
	LabName string `json:"lab_name"`
}

type UnitSummary struct {
	UnitID   int64  `json:"unit_id"`
	UnitName string `json:"unit_name"`
}

type WorkstationSummary struct {
	WorkstationID   int64  `json:"workstation_id"`
	WorkstationName string `json:"workstation_name"`
}

type UserSummary struct {
	UserID   int64  `json:"user_id"`
	FullName string `json:"full_name"`
}

// AssetInput is the payload for creating or batch-creating a single asset.
// date_of_purchase arrives as "2006-01-02".
type AssetInput struct {
	LabID          *int64      `json:"lab_id"`
	UnitID         *int64      `json:"unit_id"`
	WorkstationID  *int64      `json:"workstation_id"`
	ItemName       string      `json:"item_name"`
	Description    string      `json:"description"`
	PropertyTagNo  string      `json:"property_tag_no"`
	SerialNumber   string      `json:"serial_number"`
	Quantity       int         `json:"quantity"`
	DateOfPurchase *types.Date `json:"date_of_purchase"`
}

// UpdateAssetInput holds optional mutation values for an asset and its detail.
type UpdateAssetInput struct {
	LabID          *int64      `json:"lab_id"`
	UnitID         *int64      `json:"unit_id"`
	WorkstationID  *int64      `json:"workstation_id"`
	ItemName       *string     `json:"item_name"`
	Description    *string     `json:"description"`
	PropertyTagNo  *string     `json:"property_tag_no"`
	SerialNumber   *string     `json:"serial_number"`
	Quantity       *int        `json:"quantity"`
	DateOfPurchase *types.Date `json:"date_of_purchase"`
}

// BatchCreateInput is the batch submission payload.
type BatchCreateInput struct {
	Assets []AssetInput `json:"assets"`
}

// BatchCreateResult reports a successful batch insert.
type BatchCreateResult struct {
	Message string     `json:"message"`
	Count   int        `json:"count"`
	Created []AssetDTO `json:"created"`
}

// FromModel maps an asset row plus preloaded relations onto the DTO.
func FromModel(asset *models.InventoryAsset) *AssetDTO {
	if asset == nil {
		return nil
	}
	dto := &AssetDTO{
		AssetID:       asset.AssetID,
		LabID:         asset.LabID,
		UnitID:        asset.UnitID,
		WorkstationID: asset.WorkstationID,
		AddedByUserID: asset.AddedByUserID,
		DateAdded:     asset.DateAdded,
	}
	if asset.Details != nil {
		dto.Details = &AssetDetailDTO{
			ItemName:       asset.Details.ItemName,
			Description:    asset.Details.Description,
			PropertyTagNo:  asset.Details.PropertyTagNo,
			SerialNumber:   asset.Details.SerialNumber,
			Quantity:       asset.Details.Quantity,
			DateOfPurchase: asset.Details.DateOfPurchase,
		}
	}
	if asset.Laboratory != nil {
		dto.Laboratory = &LabSummary{LabID: asset.Laboratory.LabID, LabName: asset.Laboratory.LabName}
	}
	if asset.Unit != nil {
		dto.Unit = &UnitSummary{UnitID: asset.Unit.UnitID, UnitName: asset.Unit.UnitName}
	}
	if asset.Workstation != nil {
		dto.Workstation = &WorkstationSummary{
			WorkstationID:   asset.Workstation.WorkstationID,
			WorkstationName: asset.Workstation.WorkstationName,
		}
	}
	if asset.AddedBy != nil {
		dto.AddedBy = &UserSummary{UserID: asset.AddedBy.UserID, FullName: asset.AddedBy.FullName}
	}
	return dto
}

// FromModels maps a slice of asset rows.
func FromModels(rows []models.InventoryAsset) []AssetDTO {
	out := make([]AssetDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}
