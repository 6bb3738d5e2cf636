package reference

import (
	"github.com/campuslabs/labtrack-backend/internal/laboratories"
	"github.com/campuslabs/labtrack-backend/pkg/db/models"
)

type CampusDTO struct {
	CampusID   int64  `json:"campus_id"`
	CampusName string `json:"campus_name"`
}

type OfficeTypeDTO struct {
	TypeID   int64  `json:"type_id"`
	TypeName string `json:"type_name"`
}

type DepartmentDTO struct {
	DeptID       int64  `json:"dept_id"`
	DeptName     string `json:"dept_name"`
	CampusID     *int64 `json:"campus_id,omitempty"`
	OfficeTypeID *int64 `json:"office_type_id,omitempty"`
	DesigneeName string `json:"designee_name,omitempty"`
}

type DeviceTypeDTO struct {
	DeviceTypeID   int64  `json:"device_type_id"`
	DeviceTypeName string `json:"device_type_name"`
}

type UnitDTO struct {
	UnitID       int64  `json:"unit_id"`
	UnitName     string `json:"unit_name"`
	DeviceTypeID *int64 `json:"device_type_id,omitempty"`
}

type StandardTaskDTO struct {
	TaskID   int64  `json:"task_id"`
	TaskName string `json:"task_name"`
	Category string `json:"category,omitempty"`
}

// OrganizationData bundles the lookup tables the asset forms need in one
// payload so clients fetch them with a single request.
type OrganizationData struct {
	Campuses     []CampusDTO                  `json:"campuses"`
	OfficeTypes  []OfficeTypeDTO              `json:"office_types"`
	Departments  []DepartmentDTO              `json:"departments"`
	Laboratories []laboratories.LaboratoryDTO `json:"laboratories"`
}

func campusesFromModels(rows []models.Campus) []CampusDTO {
	out := make([]CampusDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, CampusDTO{CampusID: row.CampusID, CampusName: row.CampusName})
	}
	return out
}

func officeTypesFromModels(rows []models.OfficeType) []OfficeTypeDTO {
	out := make([]OfficeTypeDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, OfficeTypeDTO{TypeID: row.TypeID, TypeName: row.TypeName})
	}
	return out
}

func departmentsFromModels(rows []models.Department) []DepartmentDTO {
	out := make([]DepartmentDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, DepartmentDTO{
			DeptID:       row.DeptID,
			DeptName:     row.DeptName,
			CampusID:     row.CampusID,
			OfficeTypeID: row.OfficeTypeID,
			DesigneeName: row.DesigneeName,
		})
	}
	return out
}

func deviceTypesFromModels(rows []models.DeviceType) []DeviceTypeDTO {
	out := make([]DeviceTypeDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, DeviceTypeDTO{DeviceTypeID: row.DeviceTypeID, DeviceTypeName: row.DeviceTypeName})
	}
	return out
}

func unitsFromModels(rows []models.Unit) []UnitDTO {
	out := make([]UnitDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, UnitDTO{UnitID: row.UnitID, UnitName: row.UnitName, DeviceTypeID: row.DeviceTypeID})
	}
	return out
}

func tasksFromModels(rows []models.StandardTask) []StandardTaskDTO {
	out := make([]StandardTaskDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, StandardTaskDTO{TaskID: row.TaskID, TaskName: row.TaskName, Category: row.Category})
	}
	return out
}
