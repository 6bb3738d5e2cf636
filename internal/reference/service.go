package reference

import (
	"context"

	"github.com/campuslabs/labtrack-backend/internal/laboratories"
	"github.com/campuslabs/labtrack-backend/pkg/db/models"
	pkgerrors "github.com/campuslabs/labtrack-backend/pkg/errors"
)

// Service exposes the read-only lookup data used by the asset and report forms.
type Service interface {
	Units(ctx context.Context, deviceTypeID *int64) ([]UnitDTO, error)
	DeviceTypes(ctx context.Context) ([]DeviceTypeDTO, error)
	StandardTasks(ctx context.Context) ([]StandardTaskDTO, error)
	Organization(ctx context.Context) (*OrganizationData, error)
}

type lookupStore interface {
	ListCampuses(ctx context.Context) ([]models.Campus, error)
	ListOfficeTypes(ctx context.Context) ([]models.OfficeType, error)
	ListDepartments(ctx context.Context) ([]models.Department, error)
	ListDeviceTypes(ctx context.Context) ([]models.DeviceType, error)
	ListUnits(ctx context.Context, deviceTypeID *int64) ([]models.Unit, error)
	ListStandardTasks(ctx context.Context) ([]models.StandardTask, error)
}

type labStore interface {
	List(ctx context.Context) ([]models.Laboratory, error)
}

type service struct {
	lookups lookupStore
	labs    labStore
}

// ServiceParams carries the dependencies for NewService.
type ServiceParams struct {
	Lookups lookupStore
	Labs    labStore
}

// NewService validates params and returns a reference Service.
func NewService(params ServiceParams) (Service, error) {
	if params.Lookups == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "reference: lookup store is required")
	}
	if params.Labs == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "reference: laboratory store is required")
	}
	return &service{lookups: params.Lookups, labs: params.Labs}, nil
}

func (s *service) Units(ctx context.Context, deviceTypeID *int64) ([]UnitDTO, error) {
	rows, err := s.lookups.ListUnits(ctx, deviceTypeID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list units")
	}
	return unitsFromModels(rows), nil
}

func (s *service) DeviceTypes(ctx context.Context) ([]DeviceTypeDTO, error) {
	rows, err := s.lookups.ListDeviceTypes(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list device types")
	}
	return deviceTypesFromModels(rows), nil
}

func (s *service) StandardTasks(ctx context.Context) ([]StandardTaskDTO, error) {
	rows, err := s.lookups.ListStandardTasks(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list standard tasks")
	}
	return tasksFromModels(rows), nil
}

func (s *service) Organization(ctx context.Context) (*OrganizationData, error) {
	campuses, err := s.lookups.ListCampuses(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list campuses")
	}
	officeTypes, err := s.lookups.ListOfficeTypes(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list office types")
	}
	departments, err := s.lookups.ListDepartments(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list departments")
	}
	labs, err := s.labs.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list laboratories")
	}
	return &OrganizationData{
		Campuses:     campusesFromModels(campuses),
		OfficeTypes:  officeTypesFromModels(officeTypes),
		Departments:  departmentsFromModels(departments),
		Laboratories: laboratories.FromModels(labs),
	}, nil
}
