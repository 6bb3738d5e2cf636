package workstations

import (
	"context"

	"gorm.io/gorm"

	"github.com/campuslabs/labtrack-backend/pkg/db/models"
)

// Repository exposes workstation persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a workstations repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// List returns workstations with their lab and asset relations, newest first.
func (r *Repository) List(ctx context.Context) ([]models.Workstation, error) {
	var rows []models.Workstation
	if err := r.db.WithContext(ctx).
		Preload("Laboratory").
		Preload("Assets").
		Preload("Assets.Details").
		Preload("Assets.Unit").
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindByID loads a workstation by id.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Workstation, error) {
	var ws models.Workstation
	if err := r.db.WithContext(ctx).
		Preload("Laboratory").
		First(&ws, "workstation_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &ws, nil
}

// FindByName loads a workstation by its exact name, with relations.
func (r *Repository) FindByName(ctx context.Context, name string) (*models.Workstation, error) {
	var ws models.Workstation
	if err := r.db.WithContext(ctx).
		Preload("Laboratory").
		Preload("Assets").
		Preload("Assets.Details").
		Preload("Assets.Unit").
		Where("workstation_name = ?", name).
		First(&ws).Error; err != nil {
		return nil, err
	}
	return &ws, nil
}

// ListByIDs returns the workstations matching the provided ids.
func (r *Repository) ListByIDs(ctx context.Context, ids []int64) ([]models.Workstation, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []models.Workstation
	if err := r.db.WithContext(ctx).
		Where("workstation_id IN ?", ids).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListByLabIDs returns existing workstations for the provided labs. Used by
// the batch path to detect name collisions without a per-entry query.
func (r *Repository) ListByLabIDs(ctx context.Context, labIDs []int64) ([]models.Workstation, error) {
	if len(labIDs) == 0 {
		return nil, nil
	}
	var rows []models.Workstation
	if err := r.db.WithContext(ctx).
		Where("lab_id IN ?", labIDs).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Create inserts a single workstation.
func (r *Repository) Create(ctx context.Context, ws *models.Workstation) (*models.Workstation, error) {
	if err := r.db.WithContext(ctx).Create(ws).Error; err != nil {
		return nil, err
	}
	return ws, nil
}

// CreateBulk inserts every row in one statement.
func (r *Repository) CreateBulk(ctx context.Context, rows []models.Workstation) ([]models.Workstation, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	if err := r.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Update persists the mutable columns of a workstation.
func (r *Repository) Update(ctx context.Context, ws *models.Workstation) error {
	return r.db.WithContext(ctx).
		Model(&models.Workstation{}).
		Where("workstation_id = ?", ws.WorkstationID).
		Updates(map[string]any{
			"workstation_name": ws.WorkstationName,
			"lab_id":           ws.LabID,
		}).Error
}

// Delete removes a workstation row.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&models.Workstation{}, "workstation_id = ?", id).Error
}

// Count reports the total number of workstations.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Workstation{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
