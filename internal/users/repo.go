package users

import (
	"context"

	"gorm.io/gorm"

	"github.com/campuslabs/labtrack-backend/pkg/db/models"
	"github.com/campuslabs/labtrack-backend/pkg/enums"
)

// Repository exposes user-related persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a users repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Create inserts a new user and returns the persisted model.
func (r *Repository) Create(ctx context.Context, dto CreateUserDTO) (*models.User, error) {
	user := dto.ToModel()
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// FindByEmail retrieves the user matching the provided email.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByID loads a user by their identifier.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "user_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByIDWithLab loads a user together with their assigned laboratory.
func (r *Repository) FindByIDWithLab(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).
		Preload("AssignedLab").
		First(&user, "user_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ListWithLabs returns every user with their lab assignment, ordered by name.
func (r *Repository) ListWithLabs(ctx context.Context) ([]models.User, error) {
	var list []models.User
	if err := r.db.WithContext(ctx).
		Preload("AssignedLab").
		Order("full_name ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// FindLabCustodian returns the custodian currently assigned to the lab, if any.
func (r *Repository) FindLabCustodian(ctx context.Context, labID int64) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).
		Where("lab_id = ? AND role = ?", labID, enums.RoleCustodian).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// SetLabAssignment points the user at the given lab; a nil labID clears it.
func (r *Repository) SetLabAssignment(ctx context.Context, userID int64, labID *int64) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("user_id = ?", userID).
		UpdateColumn("lab_id", labID).Error
}

// Update persists mutable profile fields on the user row.
func (r *Repository) Update(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("user_id = ?", user.UserID).
		Updates(map[string]any{
			"full_name": user.FullName,
			"email":     user.Email,
			"role":      user.Role,
		}).Error
}

// Delete removes the user row.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&models.User{}, "user_id = ?", id).Error
}

// Count returns the total number of users.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
