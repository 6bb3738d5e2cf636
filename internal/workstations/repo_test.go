package workstations

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/campuslabs/labtrack-backend/internal/laboratories"
	"github.com/campuslabs/labtrack-backend/pkg/db"
	"github.com/campuslabs/labtrack-backend/pkg/db/models"
	pkgerrors "github.com/campuslabs/labtrack-backend/pkg/errors"
)

func setupWorkstationsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	labs := `
CREATE TABLE IF NOT EXISTS laboratories (
  lab_id INTEGER PRIMARY KEY AUTOINCREMENT,
  lab_name TEXT NOT NULL,
  location TEXT,
  dept_id INTEGER,
  in_charge_id INTEGER
);`
	workstations := `
CREATE TABLE IF NOT EXISTS workstations (
  workstation_id INTEGER PRIMARY KEY AUTOINCREMENT,
  workstation_name TEXT NOT NULL,
  lab_id INTEGER,
  created_at DATETIME
);`
	require.NoError(t, conn.Exec(labs).Error)
	require.NoError(t, conn.Exec(workstations).Error)

	t.Cleanup(func() {
		conn.Exec("DELETE FROM workstations")
		conn.Exec("DELETE FROM laboratories")
	})

	return conn
}

func seedLab(t *testing.T, conn *gorm.DB, name string) int64 {
	t.Helper()
	lab := models.Laboratory{LabName: name}
	require.NoError(t, conn.Create(&lab).Error)
	return lab.LabID
}

func newSQLiteService(t *testing.T, conn *gorm.DB) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Repo:     NewRepository(conn),
		Labs:     laboratories.NewRepository(conn),
		DBClient: db.NewFromGorm(conn),
	})
	require.NoError(t, err)
	return svc
}

func TestBatchCreateInsertsAllRows(t *testing.T) {
	conn := setupWorkstationsTestDB(t)
	labID := seedLab(t, conn, "Networking Lab")
	svc := newSQLiteService(t, conn)

	result, err := svc.BatchCreate(context.Background(), BatchCreateInput{
		Workstations: []BatchWorkstationEntry{
			{WorkstationName: "PC-01", LabID: &labID},
			{WorkstationName: "PC-02", LabID: &labID},
			{WorkstationName: "PC-03", LabID: &labID},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, result.Count)
	require.Len(t, result.Created, 3)
	assert.Equal(t, "PC-01", result.Created[0].WorkstationName)
	require.NotNil(t, result.Created[0].Laboratory)
	assert.Equal(t, "Networking Lab", result.Created[0].Laboratory.LabName)

	var stored int64
	require.NoError(t, conn.Model(&models.Workstation{}).Count(&stored).Error)
	assert.Equal(t, int64(3), stored)
}

func TestBatchCreateRejectedBatchInsertsNothing(t *testing.T) {
	conn := setupWorkstationsTestDB(t)
	labID := seedLab(t, conn, "Physics Lab")
	svc := newSQLiteService(t, conn)

	missing := labID + 100
	_, err := svc.BatchCreate(context.Background(), BatchCreateInput{
		Workstations: []BatchWorkstationEntry{
			{WorkstationName: "PC-01", LabID: &labID},
			{WorkstationName: "PC-02", LabID: &missing},
		},
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	var stored int64
	require.NoError(t, conn.Model(&models.Workstation{}).Count(&stored).Error)
	assert.Equal(t, int64(0), stored)
}

func TestBatchCreateAllowsSameNameAcrossLabs(t *testing.T) {
	conn := setupWorkstationsTestDB(t)
	labA := seedLab(t, conn, "Lab A")
	labB := seedLab(t, conn, "Lab B")
	svc := newSQLiteService(t, conn)

	_, err := svc.BatchCreate(context.Background(), BatchCreateInput{
		Workstations: []BatchWorkstationEntry{{WorkstationName: "PC-01", LabID: &labA}},
	})
	require.NoError(t, err)

	result, err := svc.BatchCreate(context.Background(), BatchCreateInput{
		Workstations: []BatchWorkstationEntry{{WorkstationName: "PC-01", LabID: &labB}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Count)
}

func TestRepoFindByName(t *testing.T) {
	conn := setupWorkstationsTestDB(t)
	labID := seedLab(t, conn, "Chem Lab")
	repo := NewRepository(conn)

	_, err := repo.Create(context.Background(), &models.Workstation{
		WorkstationName: "Bench-1",
		LabID:           &labID,
	})
	require.NoError(t, err)

	ws, err := repo.FindByName(context.Background(), "Bench-1")
	require.NoError(t, err)
	assert.Equal(t, "Bench-1", ws.WorkstationName)
	require.NotNil(t, ws.Laboratory)
	assert.Equal(t, "Chem Lab", ws.Laboratory.LabName)

	_, err = repo.FindByName(context.Background(), "Bench-404")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepoUpdateDetachesLab(t *testing.T) {
	conn := setupWorkstationsTestDB(t)
	labID := seedLab(t, conn, "Bio Lab")
	repo := NewRepository(conn)

	created, err := repo.Create(context.Background(), &models.Workstation{
		WorkstationName: "Scope-1",
		LabID:           &labID,
	})
	require.NoError(t, err)

	created.LabID = nil
	require.NoError(t, repo.Update(context.Background(), created))

	reloaded, err := repo.FindByID(context.Background(), created.WorkstationID)
	require.NoError(t, err)
	assert.Nil(t, reloaded.LabID)
}
