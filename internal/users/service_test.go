package users

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/campuslabs/labtrack-backend/pkg/db/models"
	"github.com/campuslabs/labtrack-backend/pkg/enums"
	pkgerrors "github.com/campuslabs/labtrack-backend/pkg/errors"
)

type stubUserStore struct {
	byID        map[int64]*models.User
	byEmail     map[string]*models.User
	custodians  map[int64]*models.User
	assignments map[int64]*int64
	deleted     []int64
}

func newStubUserStore() *stubUserStore {
	return &stubUserStore{
		byID:        map[int64]*models.User{},
		byEmail:     map[string]*models.User{},
		custodians:  map[int64]*models.User{},
		assignments: map[int64]*int64{},
	}
}

func (s *stubUserStore) Create(ctx context.Context, dto CreateUserDTO) (*models.User, error) {
	return nil, errors.New("not implemented")
}

func (s *stubUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if u, ok := s.byEmail[email]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserStore) FindByID(ctx context.Context, id int64) (*models.User, error) {
	if u, ok := s.byID[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserStore) FindByIDWithLab(ctx context.Context, id int64) (*models.User, error) {
	return s.FindByID(ctx, id)
}

func (s *stubUserStore) ListWithLabs(ctx context.Context) ([]models.User, error) {
	out := make([]models.User, 0, len(s.byID))
	for _, u := range s.byID {
		out = append(out, *u)
	}
	return out, nil
}

func (s *stubUserStore) FindLabCustodian(ctx context.Context, labID int64) (*models.User, error) {
	if u, ok := s.custodians[labID]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserStore) SetLabAssignment(ctx context.Context, userID int64, labID *int64) error {
	s.assignments[userID] = labID
	return nil
}

func (s *stubUserStore) Update(ctx context.Context, user *models.User) error {
	s.byID[user.UserID] = user
	return nil
}

func (s *stubUserStore) Delete(ctx context.Context, id int64) error {
	s.deleted = append(s.deleted, id)
	return nil
}

type stubLabStore struct {
	labs map[int64]*models.Laboratory
}

func (s *stubLabStore) FindByID(ctx context.Context, id int64) (*models.Laboratory, error) {
	if lab, ok := s.labs[id]; ok {
		return lab, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func newTestService(users userStore, labs labStore) *service {
	return &service{users: users, labs: labs}
}

func TestAssignLabUserNotFound(t *testing.T) {
	svc := newTestService(newStubUserStore(), &stubLabStore{labs: map[int64]*models.Laboratory{}})

	_, err := svc.AssignLab(context.Background(), AssignLabInput{UserID: 99})
	if err == nil {
		t.Fatal("expected error for unknown user")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestAssignLabRejectsSecondCustodian(t *testing.T) {
	store := newStubUserStore()
	store.byID[1] = &models.User{UserID: 1, Role: enums.RoleCustodian}
	store.byID[2] = &models.User{UserID: 2, Role: enums.RoleCustodian}
	store.custodians[5] = store.byID[2]
	labs := &stubLabStore{labs: map[int64]*models.Laboratory{5: {LabID: 5, LabName: "Physics Lab"}}}
	svc := newTestService(store, labs)

	labID := int64(5)
	_, err := svc.AssignLab(context.Background(), AssignLabInput{UserID: 1, LabID: &labID})
	if err == nil {
		t.Fatal("expected conflict for a lab that already has a custodian")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestAssignLabSameUserIsIdempotent(t *testing.T) {
	store := newStubUserStore()
	store.byID[2] = &models.User{UserID: 2, FullName: "Dana Cruz", Role: enums.RoleCustodian}
	store.custodians[5] = store.byID[2]
	labs := &stubLabStore{labs: map[int64]*models.Laboratory{5: {LabID: 5}}}
	svc := newTestService(store, labs)

	labID := int64(5)
	if _, err := svc.AssignLab(context.Background(), AssignLabInput{UserID: 2, LabID: &labID}); err != nil {
		t.Fatalf("re-assigning the current custodian should succeed, got %v", err)
	}
	if got := store.assignments[2]; got == nil || *got != 5 {
		t.Fatalf("expected assignment to lab 5, got %v", got)
	}
}

func TestAssignLabClearsAssignment(t *testing.T) {
	store := newStubUserStore()
	store.byID[3] = &models.User{UserID: 3, FullName: "Lee Tan"}
	svc := newTestService(store, &stubLabStore{labs: map[int64]*models.Laboratory{}})

	if _, err := svc.AssignLab(context.Background(), AssignLabInput{UserID: 3}); err != nil {
		t.Fatalf("clearing assignment failed: %v", err)
	}
	if got, ok := store.assignments[3]; !ok || got != nil {
		t.Fatalf("expected cleared assignment, got %v (set=%v)", got, ok)
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	store := newStubUserStore()
	store.byEmail["taken@school.edu"] = &models.User{UserID: 7, Email: "taken@school.edu"}
	svc := newTestService(store, &stubLabStore{labs: map[int64]*models.Laboratory{}})

	_, err := svc.CreateUser(context.Background(), CreateUserInput{
		FullName: "New User",
		Email:    "Taken@School.edu",
		Password: "supersecret",
	})
	if err == nil {
		t.Fatal("expected conflict for duplicate email")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestCreateUserInvalidRole(t *testing.T) {
	svc := newTestService(newStubUserStore(), &stubLabStore{labs: map[int64]*models.Laboratory{}})

	_, err := svc.CreateUser(context.Background(), CreateUserInput{
		FullName: "New User",
		Email:    "new@school.edu",
		Password: "supersecret",
		Role:     "Superadmin",
	})
	if err == nil {
		t.Fatal("expected validation error for unknown role")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDeleteUserRejectsSelf(t *testing.T) {
	store := newStubUserStore()
	store.byID[4] = &models.User{UserID: 4}
	svc := newTestService(store, &stubLabStore{labs: map[int64]*models.Laboratory{}})

	err := svc.DeleteUser(context.Background(), 4, 4)
	if err == nil {
		t.Fatal("expected error when deleting own account")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(store.deleted) != 0 {
		t.Fatalf("delete should not have been called, got %v", store.deleted)
	}
}

func TestDeleteUserRemovesOther(t *testing.T) {
	store := newStubUserStore()
	store.byID[9] = &models.User{UserID: 9}
	svc := newTestService(store, &stubLabStore{labs: map[int64]*models.Laboratory{}})

	if err := svc.DeleteUser(context.Background(), 1, 9); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if len(store.deleted) != 1 || store.deleted[0] != 9 {
		t.Fatalf("expected user 9 deleted, got %v", store.deleted)
	}
}
