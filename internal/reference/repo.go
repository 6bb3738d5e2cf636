package reference

import (
	"context"

	"gorm.io/gorm"

	"github.com/campuslabs/labtrack-backend/pkg/db/models"
)

// Repository aggregates persistence for the static lookup tables.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a reference repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListCampuses returns every campus row.
func (r *Repository) ListCampuses(ctx context.Context) ([]models.Campus, error) {
	var rows []models.Campus
	if err := r.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListOfficeTypes returns every office type row.
func (r *Repository) ListOfficeTypes(ctx context.Context) ([]models.OfficeType, error) {
	var rows []models.OfficeType
	if err := r.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListDepartments returns every department row.
func (r *Repository) ListDepartments(ctx context.Context) ([]models.Department, error) {
	var rows []models.Department
	if err := r.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListDeviceTypes returns every device type row.
func (r *Repository) ListDeviceTypes(ctx context.Context) ([]models.DeviceType, error) {
	var rows []models.DeviceType
	if err := r.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListUnits returns unit rows, optionally filtered by device type.
func (r *Repository) ListUnits(ctx context.Context, deviceTypeID *int64) ([]models.Unit, error) {
	q := r.db.WithContext(ctx)
	if deviceTypeID != nil {
		q = q.Where("device_type_id = ?", *deviceTypeID)
	}
	var rows []models.Unit
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListUnitsByIDs returns the units matching the provided ids.
func (r *Repository) ListUnitsByIDs(ctx context.Context, ids []int64) ([]models.Unit, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []models.Unit
	if err := r.db.WithContext(ctx).Where("unit_id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListStandardTasks returns every standard task row.
func (r *Repository) ListStandardTasks(ctx context.Context) ([]models.StandardTask, error) {
	var rows []models.StandardTask
	if err := r.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
