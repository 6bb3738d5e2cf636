package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/campuslabs/labtrack-backend/pkg/db"
	"github.com/campuslabs/labtrack-backend/pkg/db/models"
	"github.com/campuslabs/labtrack-backend/pkg/enums"
	pkgerrors "github.com/campuslabs/labtrack-backend/pkg/errors"
)

// Actor identifies the authenticated caller for ownership checks.
type Actor struct {
	UserID int64
	Role   enums.Role
}

// Service exposes inventory asset operations, including the batch create flow.
type Service interface {
	List(ctx context.Context) ([]AssetDTO, error)
	Get(ctx context.Context, id int64) (*AssetDTO, error)
	Create(ctx context.Context, actor Actor, input AssetInput) (*AssetDTO, error)
	Update(ctx context.Context, id int64, input UpdateAssetInput) (*AssetDTO, error)
	Delete(ctx context.Context, id int64) error
	BatchCreate(ctx context.Context, actor Actor, input BatchCreateInput) (*BatchCreateResult, error)
}

type assetStore interface {
	List(ctx context.Context) ([]models.InventoryAsset, error)
	FindByID(ctx context.Context, id int64) (*models.InventoryAsset, error)
	Create(ctx context.Context, asset *models.InventoryAsset) (*models.InventoryAsset, error)
	UpdateColumns(ctx context.Context, asset *models.InventoryAsset) error
	UpsertDetail(ctx context.Context, detail *models.AssetDetail) error
	Delete(ctx context.Context, id int64) error
}

type labStore interface {
	ListByIDs(ctx context.Context, ids []int64) ([]models.Laboratory, error)
}

type unitStore interface {
	ListUnitsByIDs(ctx context.Context, ids []int64) ([]models.Unit, error)
}

type workstationStore interface {
	ListByIDs(ctx context.Context, ids []int64) ([]models.Workstation, error)
}

type userStore interface {
	FindByID(ctx context.Context, id int64) (*models.User, error)
}

type service struct {
	repo         *Repository
	assets       assetStore
	labs         labStore
	units        unitStore
	workstations workstationStore
	users        userStore
	dbClient     *db.Client
}

// ServiceParams bundles the dependencies required to build an inventory service.
type ServiceParams struct {
	Repo         *Repository
	Labs         labStore
	Units        unitStore
	Workstations workstationStore
	Users        userStore
	DBClient     *db.Client
}

// NewService constructs an inventory service instance.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("inventory repository is required")
	}
	if params.Labs == nil {
		return nil, fmt.Errorf("laboratories repository is required")
	}
	if params.Units == nil {
		return nil, fmt.Errorf("units repository is required")
	}
	if params.Workstations == nil {
		return nil, fmt.Errorf("workstations repository is required")
	}
	if params.Users == nil {
		return nil, fmt.Errorf("users repository is required")
	}
	if params.DBClient == nil {
		return nil, fmt.Errorf("db client is required")
	}
	return &service{
		repo:         params.Repo,
		assets:       params.Repo,
		labs:         params.Labs,
		units:        params.Units,
		workstations: params.Workstations,
		users:        params.Users,
		dbClient:     params.DBClient,
	}, nil
}

func (s *service) List(ctx context.Context) ([]AssetDTO, error) {
	rows, err := s.assets.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list assets")
	}
	return FromModels(rows), nil
}

func (s *service) Get(ctx context.Context, id int64) (*AssetDTO, error) {
	asset, err := s.assets.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "asset not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load asset")
	}
	return FromModel(asset), nil
}

func (s *service) Create(ctx context.Context, actor Actor, input AssetInput) (*AssetDTO, error) {
	if input.LabID == nil || input.UnitID == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "lab_id and unit_id are required")
	}
	if err := s.checkAssetRefs(ctx, []AssetInput{input}); err != nil {
		return nil, err
	}
	if err := s.checkActorLab(ctx, actor, *input.LabID); err != nil {
		return nil, err
	}

	asset := assetFromInput(input, actor.UserID)
	created, err := s.assets.Create(ctx, asset)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "duplicate asset detail values")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "insert asset")
	}
	return s.loadDTO(ctx, created.AssetID)
}

func (s *service) Update(ctx context.Context, id int64, input UpdateAssetInput) (*AssetDTO, error) {
	asset, err := s.assets.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "asset not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load asset")
	}

	if input.LabID != nil {
		asset.LabID = input.LabID
	}
	if input.UnitID != nil {
		asset.UnitID = input.UnitID
	}
	if input.WorkstationID != nil {
		asset.WorkstationID = input.WorkstationID
	}
	if err := s.checkAssetRefs(ctx, []AssetInput{{
		LabID:         asset.LabID,
		UnitID:        asset.UnitID,
		WorkstationID: asset.WorkstationID,
	}}); err != nil {
		return nil, err
	}

	if err := s.assets.UpdateColumns(ctx, asset); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update asset")
	}

	detail := asset.Details
	if detail == nil {
		detail = &models.AssetDetail{AssetID: asset.AssetID, Quantity: 1}
	}
	if input.ItemName != nil {
		detail.ItemName = strings.TrimSpace(*input.ItemName)
	}
	if input.Description != nil {
		detail.Description = strings.TrimSpace(*input.Description)
	}
	if input.PropertyTagNo != nil {
		detail.PropertyTagNo = strings.TrimSpace(*input.PropertyTagNo)
	}
	if input.SerialNumber != nil {
		detail.SerialNumber = strings.TrimSpace(*input.SerialNumber)
	}
	if input.Quantity != nil && *input.Quantity >= 1 {
		detail.Quantity = *input.Quantity
	}
	if input.DateOfPurchase != nil {
		detail.DateOfPurchase = input.DateOfPurchase.TimePtr()
	}
	if err := s.assets.UpsertDetail(ctx, detail); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update asset detail")
	}

	return s.loadDTO(ctx, asset.AssetID)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if _, err := s.assets.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "asset not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load asset")
	}
	if err := s.assets.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete asset")
	}
	return nil
}

// BatchCreate validates every referenced id in bulk, then inserts every asset
// and its detail record inside one transaction.
func (s *service) BatchCreate(ctx context.Context, actor Actor, input BatchCreateInput) (*BatchCreateResult, error) {
	if len(input.Assets) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "assets list cannot be empty")
	}

	var entryProblems []string
	for i, entry := range input.Assets {
		if entry.LabID == nil {
			entryProblems = append(entryProblems, fmt.Sprintf("entry %d: lab_id is required", i))
		}
		if entry.UnitID == nil {
			entryProblems = append(entryProblems, fmt.Sprintf("entry %d: unit_id is required", i))
		}
	}
	if len(entryProblems) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid asset entries").
			WithDetails(entryProblems)
	}

	if err := s.checkAssetRefs(ctx, input.Assets); err != nil {
		return nil, err
	}
	if actor.Role != enums.RoleAdmin {
		assigned, err := s.custodianLab(ctx, actor)
		if err != nil {
			return nil, err
		}
		for _, entry := range input.Assets {
			if *entry.LabID != assigned {
				return nil, pkgerrors.New(pkgerrors.CodeForbidden,
					"you can only add assets to your assigned laboratory")
			}
		}
	}

	var created []models.InventoryAsset
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		for _, entry := range input.Assets {
			asset := assetFromInput(entry, actor.UserID)
			if _, err := txRepo.Create(ctx, asset); err != nil {
				return err
			}
			created = append(created, *asset)
		}
		return nil
	}); err != nil {
		created = nil
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "duplicate asset detail values")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "insert assets")
	}

	return &BatchCreateResult{
		Message: fmt.Sprintf("%d assets created successfully", len(created)),
		Count:   len(created),
		Created: FromModels(created),
	}, nil
}

// checkAssetRefs resolves every distinct lab, unit and workstation id in bulk
// and reports all of the unknown ones at once.
func (s *service) checkAssetRefs(ctx context.Context, entries []AssetInput) error {
	labIDs := distinctIDs(entries, func(e AssetInput) *int64 { return e.LabID })
	unitIDs := distinctIDs(entries, func(e AssetInput) *int64 { return e.UnitID })
	wsIDs := distinctIDs(entries, func(e AssetInput) *int64 { return e.WorkstationID })

	var refErr error

	labs, err := s.labs.ListByIDs(ctx, labIDs)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load laboratories")
	}
	for _, id := range missingIDs(labIDs, len(labs), labIDSet(labs)) {
		refErr = multierr.Append(refErr, fmt.Errorf("laboratory %d does not exist", id))
	}

	units, err := s.units.ListUnitsByIDs(ctx, unitIDs)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load units")
	}
	unitSet := make(map[int64]struct{}, len(units))
	for i := range units {
		unitSet[units[i].UnitID] = struct{}{}
	}
	for _, id := range missingIDs(unitIDs, len(units), unitSet) {
		refErr = multierr.Append(refErr, fmt.Errorf("unit %d does not exist", id))
	}

	if len(wsIDs) > 0 {
		stations, err := s.workstations.ListByIDs(ctx, wsIDs)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load workstations")
		}
		wsSet := make(map[int64]struct{}, len(stations))
		for i := range stations {
			wsSet[stations[i].WorkstationID] = struct{}{}
		}
		for _, id := range missingIDs(wsIDs, len(stations), wsSet) {
			refErr = multierr.Append(refErr, fmt.Errorf("workstation %d does not exist", id))
		}
	}

	if refErr == nil {
		return nil
	}
	problems := multierr.Errors(refErr)
	details := make([]string, 0, len(problems))
	for _, p := range problems {
		details = append(details, p.Error())
	}
	return pkgerrors.New(pkgerrors.CodeValidation, "unknown reference ids").WithDetails(details)
}

// checkActorLab restricts custodians to their own assigned laboratory.
func (s *service) checkActorLab(ctx context.Context, actor Actor, labID int64) error {
	if actor.Role == enums.RoleAdmin {
		return nil
	}
	assigned, err := s.custodianLab(ctx, actor)
	if err != nil {
		return err
	}
	if assigned != labID {
		return pkgerrors.New(pkgerrors.CodeForbidden,
			"you can only add assets to your assigned laboratory")
	}
	return nil
}

// custodianLab loads the caller's assigned laboratory once per request.
func (s *service) custodianLab(ctx context.Context, actor Actor) (int64, error) {
	user, err := s.users.FindByID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, pkgerrors.New(pkgerrors.CodeForbidden, "caller has no assigned laboratory")
		}
		return 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load caller")
	}
	if user.LabID == nil {
		return 0, pkgerrors.New(pkgerrors.CodeForbidden,
			"you can only add assets to your assigned laboratory")
	}
	return *user.LabID, nil
}

func (s *service) loadDTO(ctx context.Context, id int64) (*AssetDTO, error) {
	asset, err := s.assets.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reload asset")
	}
	return FromModel(asset), nil
}

func assetFromInput(input AssetInput, addedBy int64) *models.InventoryAsset {
	quantity := input.Quantity
	if quantity < 1 {
		quantity = 1
	}
	userID := addedBy
	return &models.InventoryAsset{
		LabID:         input.LabID,
		UnitID:        input.UnitID,
		WorkstationID: input.WorkstationID,
		AddedByUserID: &userID,
		Details: &models.AssetDetail{
			ItemName:       strings.TrimSpace(input.ItemName),
			Description:    strings.TrimSpace(input.Description),
			PropertyTagNo:  strings.TrimSpace(input.PropertyTagNo),
			SerialNumber:   strings.TrimSpace(input.SerialNumber),
			Quantity:       quantity,
			DateOfPurchase: input.DateOfPurchase.TimePtr(),
		},
	}
}

func distinctIDs(entries []AssetInput, pick func(AssetInput) *int64) []int64 {
	seen := make(map[int64]struct{}, len(entries))
	out := make([]int64, 0, len(entries))
	for _, entry := range entries {
		id := pick(entry)
		if id == nil {
			continue
		}
		if _, ok := seen[*id]; ok {
			continue
		}
		seen[*id] = struct{}{}
		out = append(out, *id)
	}
	return out
}

func labIDSet(labs []models.Laboratory) map[int64]struct{} {
	set := make(map[int64]struct{}, len(labs))
	for i := range labs {
		set[labs[i].LabID] = struct{}{}
	}
	return set
}

func missingIDs(wanted []int64, found int, set map[int64]struct{}) []int64 {
	if found == len(wanted) {
		return nil
	}
	var missing []int64
	for _, id := range wanted {
		if _, ok := set[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}
