package laboratories

import "github.com/campuslabs/labtrack-backend/pkg/db/models"

// LaboratoryDTO is the transport shape for laboratory rows.
type LaboratoryDTO struct {
	LabID      int64            `json:"lab_id"`
	LabName    string           `json:"lab_name"`
	Location   string           `json:"location"`
	DeptID     *int64           `json:"dept_id"`
	InChargeID *int64           `json:"in_charge_id"`
	InCharge   *InChargeSummary `json:"in_charge,omitempty"`
}

// InChargeSummary is the reduced user shape embedded in laboratory payloads.
type InChargeSummary struct {
	UserID   int64  `json:"user_id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

func FromModel(lab *models.Laboratory) *LaboratoryDTO {
	if lab == nil {
		return nil
	}
	dto := &LaboratoryDTO{
		LabID:      lab.LabID,
		LabName:    lab.LabName,
		Location:   lab.Location,
		DeptID:     lab.DeptID,
		InChargeID: lab.InChargeID,
	}
	if lab.InCharge != nil {
		dto.InCharge = &InChargeSummary{
			UserID:   lab.InCharge.UserID,
			FullName: lab.InCharge.FullName,
			Email:    lab.InCharge.Email,
		}
	}
	return dto
}

func FromModels(labs []models.Laboratory) []LaboratoryDTO {
	out := make([]LaboratoryDTO, 0, len(labs))
	for i := range labs {
		out = append(out, *FromModel(&labs[i]))
	}
	return out
}
