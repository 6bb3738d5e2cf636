package workstations

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/campuslabs/labtrack-backend/pkg/db"
	"github.com/campuslabs/labtrack-backend/pkg/db/models"
	pkgerrors "github.com/campuslabs/labtrack-backend/pkg/errors"
)

// Service exposes workstation operations, including the batch create flow.
type Service interface {
	List(ctx context.Context) ([]WorkstationDTO, error)
	GetByName(ctx context.Context, name string) (*WorkstationDTO, error)
	Create(ctx context.Context, input CreateWorkstationInput) (*WorkstationDTO, error)
	Update(ctx context.Context, id int64, input UpdateWorkstationInput) (*WorkstationDTO, error)
	Delete(ctx context.Context, id int64) error
	BatchCreate(ctx context.Context, input BatchCreateInput) (*BatchCreateResult, error)
}

type workstationStore interface {
	List(ctx context.Context) ([]models.Workstation, error)
	FindByID(ctx context.Context, id int64) (*models.Workstation, error)
	FindByName(ctx context.Context, name string) (*models.Workstation, error)
	ListByLabIDs(ctx context.Context, labIDs []int64) ([]models.Workstation, error)
	Create(ctx context.Context, ws *models.Workstation) (*models.Workstation, error)
	Update(ctx context.Context, ws *models.Workstation) error
	Delete(ctx context.Context, id int64) error
}

type labStore interface {
	FindByID(ctx context.Context, id int64) (*models.Laboratory, error)
	ListByIDs(ctx context.Context, ids []int64) ([]models.Laboratory, error)
}

type service struct {
	repo         *Repository
	workstations workstationStore
	labs         labStore
	dbClient     *db.Client
}

// ServiceParams bundles the dependencies required to build a workstations service.
type ServiceParams struct {
	Repo     *Repository
	Labs     labStore
	DBClient *db.Client
}

// NewService constructs a workstations service instance.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("workstations repository is required")
	}
	if params.Labs == nil {
		return nil, fmt.Errorf("laboratories repository is required")
	}
	if params.DBClient == nil {
		return nil, fmt.Errorf("db client is required")
	}
	return &service{
		repo:         params.Repo,
		workstations: params.Repo,
		labs:         params.Labs,
		dbClient:     params.DBClient,
	}, nil
}

func (s *service) List(ctx context.Context) ([]WorkstationDTO, error) {
	rows, err := s.workstations.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list workstations")
	}
	return FromModels(rows), nil
}

func (s *service) GetByName(ctx context.Context, name string) (*WorkstationDTO, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "workstation name is required")
	}
	ws, err := s.workstations.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "workstation not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load workstation")
	}
	return FromModel(ws), nil
}

func (s *service) Create(ctx context.Context, input CreateWorkstationInput) (*WorkstationDTO, error) {
	name := strings.TrimSpace(input.WorkstationName)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "workstation name is required")
	}

	if input.LabID != nil {
		if _, err := s.labs.FindByID(ctx, *input.LabID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, "laboratory not found")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load laboratory")
		}
	}

	created, err := s.workstations.Create(ctx, &models.Workstation{
		WorkstationName: name,
		LabID:           input.LabID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "insert workstation")
	}
	return s.loadDTO(ctx, created.WorkstationID)
}

func (s *service) Update(ctx context.Context, id int64, input UpdateWorkstationInput) (*WorkstationDTO, error) {
	ws, err := s.workstations.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "workstation not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load workstation")
	}

	if input.WorkstationName != nil && strings.TrimSpace(*input.WorkstationName) != "" {
		ws.WorkstationName = strings.TrimSpace(*input.WorkstationName)
	}
	switch {
	case input.DetachLab:
		ws.LabID = nil
	case input.LabID != nil:
		if _, err := s.labs.FindByID(ctx, *input.LabID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, "laboratory not found")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load laboratory")
		}
		ws.LabID = input.LabID
	}

	if err := s.workstations.Update(ctx, ws); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update workstation")
	}
	return s.loadDTO(ctx, ws.WorkstationID)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if _, err := s.workstations.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "workstation not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load workstation")
	}
	if err := s.workstations.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete workstation")
	}
	return nil
}

// BatchCreate validates every proposed row up front and inserts the whole set
// in one transaction. Any referential problem rejects the batch; nothing is
// partially created.
func (s *service) BatchCreate(ctx context.Context, input BatchCreateInput) (*BatchCreateResult, error) {
	if len(input.Workstations) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "workstations list cannot be empty")
	}

	var entryProblems []string
	for i, entry := range input.Workstations {
		if strings.TrimSpace(entry.WorkstationName) == "" {
			entryProblems = append(entryProblems, fmt.Sprintf("entry %d: workstation_name is required", i))
		}
		if entry.LabID == nil {
			entryProblems = append(entryProblems, fmt.Sprintf("entry %d: lab_id is required", i))
		}
	}
	if len(entryProblems) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid workstation entries").
			WithDetails(entryProblems)
	}

	labIDs := distinctLabIDs(input.Workstations)
	labs, err := s.labs.ListByIDs(ctx, labIDs)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load laboratories")
	}
	labsByID := make(map[int64]*models.Laboratory, len(labs))
	for i := range labs {
		labsByID[labs[i].LabID] = &labs[i]
	}
	var missing []string
	for _, id := range labIDs {
		if _, ok := labsByID[id]; !ok {
			missing = append(missing, fmt.Sprintf("laboratory %d does not exist", id))
		}
	}
	if len(missing) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown laboratory ids").
			WithDetails(missing)
	}

	// Names only need to be unique within a lab, across both the proposed set
	// and the rows already stored.
	seen := make(map[string]struct{}, len(input.Workstations))
	var collisions []string
	for _, entry := range input.Workstations {
		key := nameKey(*entry.LabID, entry.WorkstationName)
		if _, dup := seen[key]; dup {
			collisions = append(collisions,
				fmt.Sprintf("workstation %q appears more than once for laboratory %d",
					strings.TrimSpace(entry.WorkstationName), *entry.LabID))
		}
		seen[key] = struct{}{}
	}

	existing, err := s.workstations.ListByLabIDs(ctx, labIDs)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load existing workstations")
	}
	for i := range existing {
		if existing[i].LabID == nil {
			continue
		}
		key := nameKey(*existing[i].LabID, existing[i].WorkstationName)
		if _, proposed := seen[key]; proposed {
			collisions = append(collisions,
				fmt.Sprintf("workstation %q already exists in laboratory %d",
					existing[i].WorkstationName, *existing[i].LabID))
		}
	}
	if len(collisions) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "duplicate workstation names").
			WithDetails(collisions)
	}

	rows := make([]models.Workstation, 0, len(input.Workstations))
	for _, entry := range input.Workstations {
		rows = append(rows, models.Workstation{
			WorkstationName: strings.TrimSpace(entry.WorkstationName),
			LabID:           entry.LabID,
		})
	}

	var created []models.Workstation
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		inserted, err := txRepo.CreateBulk(ctx, rows)
		if err != nil {
			return err
		}
		created = inserted
		return nil
	}); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "duplicate workstation names")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "insert workstations")
	}

	for i := range created {
		if created[i].LabID != nil {
			created[i].Laboratory = labsByID[*created[i].LabID]
		}
	}

	return &BatchCreateResult{
		Message: fmt.Sprintf("%d workstations created successfully", len(created)),
		Count:   len(created),
		Created: FromModels(created),
	}, nil
}

func (s *service) loadDTO(ctx context.Context, id int64) (*WorkstationDTO, error) {
	ws, err := s.workstations.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reload workstation")
	}
	return FromModel(ws), nil
}

func distinctLabIDs(entries []BatchWorkstationEntry) []int64 {
	seen := make(map[int64]struct{}, len(entries))
	out := make([]int64, 0, len(entries))
	for _, entry := range entries {
		if entry.LabID == nil {
			continue
		}
		if _, ok := seen[*entry.LabID]; ok {
			continue
		}
		seen[*entry.LabID] = struct{}{}
		out = append(out, *entry.LabID)
	}
	return out
}

func nameKey(labID int64, name string) string {
	return fmt.Sprintf("%d:%s", labID, strings.ToLower(strings.TrimSpace(name)))
}
