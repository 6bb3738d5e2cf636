package inventory

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/campuslabs/labtrack-backend/pkg/db/models"
)

// Repository exposes inventory asset persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an inventory repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

func withRelations(q *gorm.DB) *gorm.DB {
	return q.
		Preload("Details").
		Preload("Laboratory").
		Preload("Unit").
		Preload("Workstation").
		Preload("AddedBy")
}

// List returns every asset with relations, newest first.
func (r *Repository) List(ctx context.Context) ([]models.InventoryAsset, error) {
	var rows []models.InventoryAsset
	if err := withRelations(r.db.WithContext(ctx)).
		Order("date_added DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindByID loads a single asset with relations.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.InventoryAsset, error) {
	var asset models.InventoryAsset
	if err := withRelations(r.db.WithContext(ctx)).
		First(&asset, "asset_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &asset, nil
}

// Create inserts an asset row together with its nested detail record.
func (r *Repository) Create(ctx context.Context, asset *models.InventoryAsset) (*models.InventoryAsset, error) {
	if err := r.db.WithContext(ctx).Create(asset).Error; err != nil {
		return nil, err
	}
	return asset, nil
}

// UpdateColumns persists the asset's foreign key columns.
func (r *Repository) UpdateColumns(ctx context.Context, asset *models.InventoryAsset) error {
	return r.db.WithContext(ctx).
		Model(&models.InventoryAsset{}).
		Where("asset_id = ?", asset.AssetID).
		Updates(map[string]any{
			"lab_id":         asset.LabID,
			"unit_id":        asset.UnitID,
			"workstation_id": asset.WorkstationID,
		}).Error
}

// UpsertDetail writes the detail sub-record, creating it when the asset was
// stored without one.
func (r *Repository) UpsertDetail(ctx context.Context, detail *models.AssetDetail) error {
	var existing models.AssetDetail
	err := r.db.WithContext(ctx).
		Where("asset_id = ?", detail.AssetID).
		First(&existing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return r.db.WithContext(ctx).Create(detail).Error
		}
		return err
	}
	detail.DetailID = existing.DetailID
	return r.db.WithContext(ctx).Save(detail).Error
}

// Delete removes an asset; the detail row goes with it via the FK cascade.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&models.InventoryAsset{}, "asset_id = ?", id).Error
}

// Count reports the total number of assets.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.InventoryAsset{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// CountByLab groups asset counts per laboratory.
func (r *Repository) CountByLab(ctx context.Context) (map[int64]int64, error) {
	type row struct {
		LabID int64
		N     int64
	}
	var rows []row
	if err := r.db.WithContext(ctx).
		Model(&models.InventoryAsset{}).
		Select("lab_id, COUNT(*) AS n").
		Where("lab_id IS NOT NULL").
		Group("lab_id").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[int64]int64, len(rows))
	for _, r := range rows {
		out[r.LabID] = r.N
	}
	return out, nil
}
