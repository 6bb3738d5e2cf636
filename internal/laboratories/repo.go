package laboratories

import (
	"context"

	"gorm.io/gorm"

	"github.com/campuslabs/labtrack-backend/pkg/db/models"
)

// Repository exposes laboratory persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a laboratories repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns all laboratories with their in-charge user.
func (r *Repository) List(ctx context.Context) ([]models.Laboratory, error) {
	var labs []models.Laboratory
	if err := r.db.WithContext(ctx).
		Preload("InCharge").
		Order("lab_name ASC").
		Find(&labs).Error; err != nil {
		return nil, err
	}
	return labs, nil
}

// FindByID loads a laboratory by its identifier.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Laboratory, error) {
	var lab models.Laboratory
	if err := r.db.WithContext(ctx).First(&lab, "lab_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &lab, nil
}

// ListByIDs returns the laboratories matching the provided ids.
func (r *Repository) ListByIDs(ctx context.Context, ids []int64) ([]models.Laboratory, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var labs []models.Laboratory
	if err := r.db.WithContext(ctx).
		Where("lab_id IN ?", ids).
		Find(&labs).Error; err != nil {
		return nil, err
	}
	return labs, nil
}

// Create inserts a laboratory row.
func (r *Repository) Create(ctx context.Context, lab *models.Laboratory) (*models.Laboratory, error) {
	if err := r.db.WithContext(ctx).Create(lab).Error; err != nil {
		return nil, err
	}
	return lab, nil
}

// Update persists mutable laboratory fields.
func (r *Repository) Update(ctx context.Context, lab *models.Laboratory) error {
	return r.db.WithContext(ctx).
		Model(&models.Laboratory{}).
		Where("lab_id = ?", lab.LabID).
		Updates(map[string]any{
			"lab_name": lab.LabName,
			"location": lab.Location,
			"dept_id":  lab.DeptID,
		}).Error
}

// SetInCharge points the lab at its custodian user.
func (r *Repository) SetInCharge(ctx context.Context, labID int64, userID *int64) error {
	return r.db.WithContext(ctx).
		Model(&models.Laboratory{}).
		Where("lab_id = ?", labID).
		UpdateColumn("in_charge_id", userID).Error
}

// Delete removes the laboratory; dependent workstations cascade in the schema.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&models.Laboratory{}, "lab_id = ?", id).Error
}

// Count returns the total number of laboratories.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Laboratory{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
