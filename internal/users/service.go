package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/campuslabs/labtrack-backend/pkg/config"
	"github.com/campuslabs/labtrack-backend/pkg/db"
	"github.com/campuslabs/labtrack-backend/pkg/db/models"
	"github.com/campuslabs/labtrack-backend/pkg/enums"
	pkgerrors "github.com/campuslabs/labtrack-backend/pkg/errors"
	"github.com/campuslabs/labtrack-backend/pkg/security"
)

// Service exposes user administration and lab assignment operations.
type Service interface {
	AssignedLab(ctx context.Context, userID int64) (*AssignedLabResult, error)
	ListAssignments(ctx context.Context) ([]UserDTO, error)
	AssignLab(ctx context.Context, input AssignLabInput) (*UserDTO, error)
	CreateUser(ctx context.Context, input CreateUserInput) (*UserDTO, error)
	UpdateUser(ctx context.Context, userID int64, input UpdateUserInput) (*UserDTO, error)
	DeleteUser(ctx context.Context, actorID, userID int64) error
}

// AssignedLabResult reports the caller's lab assignment, if any.
type AssignedLabResult struct {
	AssignedLab *LabSummary `json:"assigned_lab"`
	HasLab      bool        `json:"has_lab"`
}

// AssignLabInput carries an assignment mutation; a nil LabID clears it.
type AssignLabInput struct {
	UserID int64  `json:"userId" validate:"required,gt=0"`
	LabID  *int64 `json:"labId"`
}

// CreateUserInput holds the validated payload to create a user.
type CreateUserInput struct {
	FullName string `json:"full_name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"omitempty,oneof=Admin Custodian"`
	LabID    *int64 `json:"lab_id"`
}

// UpdateUserInput holds optional profile mutation values.
type UpdateUserInput struct {
	FullName *string `json:"full_name" validate:"omitempty,min=2"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Role     *string `json:"role" validate:"omitempty,oneof=Admin Custodian"`
}

type userStore interface {
	Create(ctx context.Context, dto CreateUserDTO) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
	FindByIDWithLab(ctx context.Context, id int64) (*models.User, error)
	ListWithLabs(ctx context.Context) ([]models.User, error)
	FindLabCustodian(ctx context.Context, labID int64) (*models.User, error)
	SetLabAssignment(ctx context.Context, userID int64, labID *int64) error
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id int64) error
}

type labStore interface {
	FindByID(ctx context.Context, id int64) (*models.Laboratory, error)
}

type service struct {
	repo        *Repository
	users       userStore
	labs        labStore
	dbClient    *db.Client
	passwordCfg config.PasswordConfig
}

// ServiceParams bundles the dependencies required to build a users service.
type ServiceParams struct {
	Repo        *Repository
	Labs        labStore
	DBClient    *db.Client
	PasswordCfg config.PasswordConfig
}

// NewService constructs a users service instance.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("users repository is required")
	}
	if params.Labs == nil {
		return nil, fmt.Errorf("laboratories repository is required")
	}
	if params.DBClient == nil {
		return nil, fmt.Errorf("db client is required")
	}
	return &service{
		repo:        params.Repo,
		users:       params.Repo,
		labs:        params.Labs,
		dbClient:    params.DBClient,
		passwordCfg: params.PasswordCfg,
	}, nil
}

func (s *service) AssignedLab(ctx context.Context, userID int64) (*AssignedLabResult, error) {
	user, err := s.users.FindByIDWithLab(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load user")
	}

	result := &AssignedLabResult{}
	if user.AssignedLab != nil {
		result.AssignedLab = LabSummaryFromModel(user.AssignedLab)
		result.HasLab = true
	}
	return result, nil
}

func (s *service) ListAssignments(ctx context.Context) ([]UserDTO, error) {
	list, err := s.users.ListWithLabs(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list users")
	}
	out := make([]UserDTO, 0, len(list))
	for i := range list {
		out = append(out, *FromModel(&list[i]))
	}
	return out, nil
}

func (s *service) AssignLab(ctx context.Context, input AssignLabInput) (*UserDTO, error) {
	user, err := s.users.FindByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load user")
	}

	if input.LabID == nil {
		if err := s.users.SetLabAssignment(ctx, user.UserID, nil); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clear lab assignment")
		}
		return s.loadDTO(ctx, user.UserID)
	}

	if _, err := s.labs.FindByID(ctx, *input.LabID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "laboratory not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load laboratory")
	}

	// One custodian per lab; re-assigning the same user is a no-op.
	existing, err := s.users.FindLabCustodian(ctx, *input.LabID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check existing custodian")
	}
	if existing != nil && existing.UserID != user.UserID {
		return nil, pkgerrors.New(pkgerrors.CodeConflict,
			"this laboratory already has a custodian assigned")
	}

	if err := s.users.SetLabAssignment(ctx, user.UserID, input.LabID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "assign lab")
	}
	return s.loadDTO(ctx, user.UserID)
}

func (s *service) CreateUser(ctx context.Context, input CreateUserInput) (*UserDTO, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check email")
	}

	role := enums.RoleCustodian
	if input.Role != "" {
		parsed, err := enums.ParseRole(input.Role)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid role")
		}
		role = parsed
	}

	if input.LabID != nil {
		if _, err := s.labs.FindByID(ctx, *input.LabID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, "laboratory not found")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load laboratory")
		}
	}

	hash, err := security.HashPassword(input.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	var createdID int64
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		created, err := txRepo.Create(ctx, CreateUserDTO{
			FullName:     strings.TrimSpace(input.FullName),
			Email:        email,
			PasswordHash: hash,
			Role:         role,
			LabID:        input.LabID,
		})
		if err != nil {
			if db.IsUniqueViolation(err, "") {
				return pkgerrors.New(pkgerrors.CodeConflict, "email already exists")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "insert user")
		}
		createdID = created.UserID

		// A custodian created with a lab also becomes that lab's in-charge.
		if input.LabID != nil && role == enums.RoleCustodian {
			if err := tx.WithContext(ctx).
				Model(&models.Laboratory{}).
				Where("lab_id = ?", *input.LabID).
				UpdateColumn("in_charge_id", created.UserID).Error; err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "set lab in-charge")
			}
		}
		return nil
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create user")
	}

	return s.loadDTO(ctx, createdID)
}

func (s *service) UpdateUser(ctx context.Context, userID int64, input UpdateUserInput) (*UserDTO, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load user")
	}

	if input.FullName != nil && strings.TrimSpace(*input.FullName) != "" {
		user.FullName = strings.TrimSpace(*input.FullName)
	}
	if input.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*input.Email))
		if email != "" && email != user.Email {
			if _, err := s.users.FindByEmail(ctx, email); err == nil {
				return nil, pkgerrors.New(pkgerrors.CodeConflict, "user with this email already exists")
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check email")
			}
			user.Email = email
		}
	}
	if input.Role != nil && *input.Role != "" {
		parsed, err := enums.ParseRole(*input.Role)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid role")
		}
		user.Role = parsed
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update user")
	}
	return s.loadDTO(ctx, user.UserID)
}

func (s *service) DeleteUser(ctx context.Context, actorID, userID int64) error {
	if actorID == userID {
		return pkgerrors.New(pkgerrors.CodeValidation, "cannot delete your own account")
	}

	if _, err := s.users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load user")
	}

	if err := s.users.Delete(ctx, userID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete user")
	}
	return nil
}

func (s *service) loadDTO(ctx context.Context, id int64) (*UserDTO, error) {
	user, err := s.users.FindByIDWithLab(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reload user")
	}
	return FromModel(user), nil
}
