package reference

import (
	"context"
	"errors"
	"testing"

	"github.com/campuslabs/labtrack-backend/pkg/db/models"
	pkgerrors "github.com/campuslabs/labtrack-backend/pkg/errors"
)

type stubLookupStore struct {
	units       []models.Unit
	unitsFilter *int64
	failUnits   bool
}

func (s *stubLookupStore) ListCampuses(ctx context.Context) ([]models.Campus, error) {
	return []models.Campus{{CampusID: 1, CampusName: "Main Campus"}}, nil
}

func (s *stubLookupStore) ListOfficeTypes(ctx context.Context) ([]models.OfficeType, error) {
	return []models.OfficeType{{TypeID: 1, TypeName: "Academic"}}, nil
}

func (s *stubLookupStore) ListDepartments(ctx context.Context) ([]models.Department, error) {
	return []models.Department{{DeptID: 1, DeptName: "Computer Studies"}}, nil
}

func (s *stubLookupStore) ListDeviceTypes(ctx context.Context) ([]models.DeviceType, error) {
	return []models.DeviceType{{DeviceTypeID: 2, DeviceTypeName: "Monitor"}}, nil
}

func (s *stubLookupStore) ListUnits(ctx context.Context, deviceTypeID *int64) ([]models.Unit, error) {
	if s.failUnits {
		return nil, errors.New("db down")
	}
	s.unitsFilter = deviceTypeID
	return s.units, nil
}

func (s *stubLookupStore) ListStandardTasks(ctx context.Context) ([]models.StandardTask, error) {
	return []models.StandardTask{{TaskID: 3, TaskName: "Check cables", Category: "Hardware"}}, nil
}

type stubRefLabStore struct{}

func (stubRefLabStore) List(ctx context.Context) ([]models.Laboratory, error) {
	return []models.Laboratory{{LabID: 4, LabName: "Networking Lab"}}, nil
}

func TestUnitsPassesDeviceTypeFilter(t *testing.T) {
	dtID := int64(2)
	lookups := &stubLookupStore{units: []models.Unit{{UnitID: 9, UnitName: "LED Monitor", DeviceTypeID: &dtID}}}
	svc, err := NewService(ServiceParams{Lookups: lookups, Labs: stubRefLabStore{}})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	units, err := svc.Units(context.Background(), &dtID)
	if err != nil {
		t.Fatalf("units failed: %v", err)
	}
	if lookups.unitsFilter == nil || *lookups.unitsFilter != dtID {
		t.Fatalf("expected device type filter %d to reach the store, got %v", dtID, lookups.unitsFilter)
	}
	if len(units) != 1 || units[0].UnitName != "LED Monitor" {
		t.Fatalf("unexpected units payload: %+v", units)
	}
}

func TestUnitsStoreFailure(t *testing.T) {
	svc, err := NewService(ServiceParams{Lookups: &stubLookupStore{failUnits: true}, Labs: stubRefLabStore{}})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	_, err = svc.Units(context.Background(), nil)
	if err == nil {
		t.Fatal("expected error from failing store")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeInternal {
		t.Fatalf("expected internal error, got %v", err)
	}
}

func TestOrganizationBundlesLookups(t *testing.T) {
	svc, err := NewService(ServiceParams{Lookups: &stubLookupStore{}, Labs: stubRefLabStore{}})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	org, err := svc.Organization(context.Background())
	if err != nil {
		t.Fatalf("organization failed: %v", err)
	}
	if len(org.Campuses) != 1 || org.Campuses[0].CampusName != "Main Campus" {
		t.Fatalf("unexpected campuses: %+v", org.Campuses)
	}
	if len(org.Departments) != 1 || len(org.OfficeTypes) != 1 {
		t.Fatalf("expected one department and one office type, got %+v / %+v", org.Departments, org.OfficeTypes)
	}
	if len(org.Laboratories) != 1 || org.Laboratories[0].LabName != "Networking Lab" {
		t.Fatalf("unexpected laboratories: %+v", org.Laboratories)
	}
}
