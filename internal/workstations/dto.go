package workstations

import (
	"time"

	"github.com/campuslabs/labtrack-backend/pkg/db/models"
)

// WorkstationDTO is the wire shape for a workstation row.
type WorkstationDTO struct {
	WorkstationID   int64          `json:"workstation_id"`
	WorkstationName string         `json:"workstation_name"`
	LabID           *int64         `json:"lab_id"`
	Laboratory      *LabSummary    `json:"laboratory,omitempty"`
	Assets          []AssetSummary `json:"assets,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
}

// LabSummary is the embedded laboratory view on workstation payloads.
type LabSummary struct {
	LabID    int64  `json:"lab_id"`
	LabName  string `json:"lab_name"`
	Location string `json:"location,omitempty"`
}

// AssetSummary is the trimmed asset view attached to workstation listings.
type AssetSummary struct {
	AssetID      int64  `json:"asset_id"`
	ItemName     string `json:"item_name,omitempty"`
	SerialNumber string `json:"serial_number,omitempty"`
	UnitName     string `json:"unit_name,omitempty"`
}

// CreateWorkstationInput holds the validated payload for a single workstation.
type CreateWorkstationInput struct {
	WorkstationName string `json:"workstation_name" validate:"required,min=1"`
	LabID           *int64 `json:"lab_id"`
}

// UpdateWorkstationInput holds optional mutation values; a present-but-nil
// lab id cannot be expressed here, so clearing the lab uses DetachLab.
type UpdateWorkstationInput struct {
	WorkstationName *string `json:"workstation_name" validate:"omitempty,min=1"`
	LabID           *int64  `json:"lab_id"`
	DetachLab       bool    `json:"detach_lab"`
}

// BatchWorkstationEntry is one proposed row in a batch submission.
type BatchWorkstationEntry struct {
	WorkstationName string `json:"workstation_name"`
	LabID           *int64 `json:"lab_id"`
}

// BatchCreateInput is the batch submission payload.
type BatchCreateInput struct {
	Workstations []BatchWorkstationEntry `json:"workstations"`
}

// BatchCreateResult reports a successful batch insert.
type BatchCreateResult struct {
	Message string           `json:"message"`
	Count   int              `json:"count"`
	Created []WorkstationDTO `json:"created"`
}

// FromModel maps a workstation row plus preloaded relations onto the DTO.
func FromModel(ws *models.Workstation) *WorkstationDTO {
	if ws == nil {
		return nil
	}
	dto := &WorkstationDTO{
		WorkstationID:   ws.WorkstationID,
		WorkstationName: ws.WorkstationName,
		LabID:           ws.LabID,
		CreatedAt:       ws.CreatedAt,
	}
	if ws.Laboratory != nil {
		dto.Laboratory = &LabSummary{
			LabID:    ws.Laboratory.LabID,
			LabName:  ws.Laboratory.LabName,
			Location: ws.Laboratory.Location,
		}
	}
	for i := range ws.Assets {
		asset := &ws.Assets[i]
		summary := AssetSummary{AssetID: asset.AssetID}
		if asset.Details != nil {
			summary.ItemName = asset.Details.ItemName
			summary.SerialNumber = asset.Details.SerialNumber
		}
		if asset.Unit != nil {
			summary.UnitName = asset.Unit.UnitName
		}
		dto.Assets = append(dto.Assets, summary)
	}
	return dto
}

// FromModels maps a slice of workstation rows.
func FromModels(rows []models.Workstation) []WorkstationDTO {
	out := make([]WorkstationDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}
