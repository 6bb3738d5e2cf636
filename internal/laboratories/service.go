package laboratories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/campuslabs/labtrack-backend/pkg/db/models"
	pkgerrors "github.com/campuslabs/labtrack-backend/pkg/errors"
)

// Service exposes laboratory management operations.
type Service interface {
	List(ctx context.Context) ([]LaboratoryDTO, error)
	Create(ctx context.Context, input CreateLaboratoryInput) (*LaboratoryDTO, error)
	Update(ctx context.Context, labID int64, input UpdateLaboratoryInput) (*LaboratoryDTO, error)
	Delete(ctx context.Context, labID int64) error
}

// CreateLaboratoryInput holds the validated payload to create a laboratory.
type CreateLaboratoryInput struct {
	LabName  string `json:"lab_name" validate:"required,min=2"`
	Location string `json:"location"`
	DeptID   *int64 `json:"dept_id"`
}

// UpdateLaboratoryInput holds optional mutation values for a laboratory.
type UpdateLaboratoryInput struct {
	LabName  *string `json:"lab_name" validate:"omitempty,min=2"`
	Location *string `json:"location"`
	DeptID   *int64  `json:"dept_id"`
}

type labStore interface {
	List(ctx context.Context) ([]models.Laboratory, error)
	FindByID(ctx context.Context, id int64) (*models.Laboratory, error)
	Create(ctx context.Context, lab *models.Laboratory) (*models.Laboratory, error)
	Update(ctx context.Context, lab *models.Laboratory) error
	Delete(ctx context.Context, id int64) error
}

type service struct {
	labs labStore
}

// NewService constructs a laboratories service instance.
func NewService(labs labStore) (Service, error) {
	if labs == nil {
		return nil, fmt.Errorf("laboratories repository is required")
	}
	return &service{labs: labs}, nil
}

func (s *service) List(ctx context.Context) ([]LaboratoryDTO, error) {
	labs, err := s.labs.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list laboratories")
	}
	return FromModels(labs), nil
}

func (s *service) Create(ctx context.Context, input CreateLaboratoryInput) (*LaboratoryDTO, error) {
	lab := &models.Laboratory{
		LabName:  strings.TrimSpace(input.LabName),
		Location: strings.TrimSpace(input.Location),
		DeptID:   input.DeptID,
	}
	created, err := s.labs.Create(ctx, lab)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "insert laboratory")
	}
	return FromModel(created), nil
}

func (s *service) Update(ctx context.Context, labID int64, input UpdateLaboratoryInput) (*LaboratoryDTO, error) {
	lab, err := s.labs.FindByID(ctx, labID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "laboratory not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load laboratory")
	}

	if input.LabName != nil && strings.TrimSpace(*input.LabName) != "" {
		lab.LabName = strings.TrimSpace(*input.LabName)
	}
	if input.Location != nil {
		lab.Location = strings.TrimSpace(*input.Location)
	}
	if input.DeptID != nil {
		lab.DeptID = input.DeptID
	}

	if err := s.labs.Update(ctx, lab); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update laboratory")
	}

	updated, err := s.labs.FindByID(ctx, labID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reload laboratory")
	}
	return FromModel(updated), nil
}

func (s *service) Delete(ctx context.Context, labID int64) error {
	if _, err := s.labs.FindByID(ctx, labID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "laboratory not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load laboratory")
	}
	if err := s.labs.Delete(ctx, labID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete laboratory")
	}
	return nil
}
