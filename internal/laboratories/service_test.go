package laboratories

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"github.com/campuslabs/labtrack-backend/pkg/db/models"
	pkgerrors "github.com/campuslabs/labtrack-backend/pkg/errors"
)

type stubLabStore struct {
	labs    map[int64]*models.Laboratory
	nextID  int64
	deleted []int64
}

func newStubLabStore() *stubLabStore {
	return &stubLabStore{labs: map[int64]*models.Laboratory{}, nextID: 1}
}

func (s *stubLabStore) List(ctx context.Context) ([]models.Laboratory, error) {
	out := make([]models.Laboratory, 0, len(s.labs))
	for _, lab := range s.labs {
		out = append(out, *lab)
	}
	return out, nil
}

func (s *stubLabStore) FindByID(ctx context.Context, id int64) (*models.Laboratory, error) {
	if lab, ok := s.labs[id]; ok {
		clone := *lab
		return &clone, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubLabStore) Create(ctx context.Context, lab *models.Laboratory) (*models.Laboratory, error) {
	lab.LabID = s.nextID
	s.nextID++
	s.labs[lab.LabID] = lab
	return lab, nil
}

func (s *stubLabStore) Update(ctx context.Context, lab *models.Laboratory) error {
	s.labs[lab.LabID] = lab
	return nil
}

func (s *stubLabStore) Delete(ctx context.Context, id int64) error {
	delete(s.labs, id)
	s.deleted = append(s.deleted, id)
	return nil
}

func TestCreateTrimsFields(t *testing.T) {
	store := newStubLabStore()
	svc, err := NewService(store)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	dto, err := svc.Create(context.Background(), CreateLaboratoryInput{
		LabName:  "  Chemistry Lab  ",
		Location: " Bldg A, Rm 204 ",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if dto.LabName != "Chemistry Lab" {
		t.Fatalf("expected trimmed lab name, got %q", dto.LabName)
	}
	if dto.Location != "Bldg A, Rm 204" {
		t.Fatalf("expected trimmed location, got %q", dto.Location)
	}
	if dto.LabID == 0 {
		t.Fatal("expected assigned lab id")
	}
}

func TestUpdateUnknownLab(t *testing.T) {
	svc, err := NewService(newStubLabStore())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	name := "Renamed"
	_, err = svc.Update(context.Background(), 42, UpdateLaboratoryInput{LabName: &name})
	if err == nil {
		t.Fatal("expected not-found error")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestUpdateAppliesPartialFields(t *testing.T) {
	store := newStubLabStore()
	store.labs[1] = &models.Laboratory{LabID: 1, LabName: "Old Name", Location: "Bldg B"}
	svc, err := NewService(store)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	name := "Robotics Lab"
	dto, err := svc.Update(context.Background(), 1, UpdateLaboratoryInput{LabName: &name})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if dto.LabName != "Robotics Lab" {
		t.Fatalf("expected updated name, got %q", dto.LabName)
	}
	if dto.Location != "Bldg B" {
		t.Fatalf("location should be untouched, got %q", dto.Location)
	}
}

func TestDeleteUnknownLab(t *testing.T) {
	svc, err := NewService(newStubLabStore())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	err = svc.Delete(context.Background(), 7)
	if err == nil {
		t.Fatal("expected not-found error")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestDeleteRemovesLab(t *testing.T) {
	store := newStubLabStore()
	store.labs[3] = &models.Laboratory{LabID: 3, LabName: "Biology Lab"}
	svc, err := NewService(store)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	if err := svc.Delete(context.Background(), 3); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if len(store.deleted) != 1 || store.deleted[0] != 3 {
		t.Fatalf("expected lab 3 deleted, got %v", store.deleted)
	}
}
