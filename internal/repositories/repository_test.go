package repositories

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"machinery-registry/internal/entities"
	"machinery-registry/pkg/config"
	"machinery-registry/pkg/constants"
	"machinery-registry/pkg/database"
	apperrors "machinery-registry/pkg/errors"
)

func newTestDB(t *testing.T) *database.DB {
	t.Helper()
	db, err := database.Connect(context.Background(), config.DatabaseConfig{
		Driver: config.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "repo.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(db, nil))
	return db
}

func seedMachine(t *testing.T, repo MachineryRepositoryInterface, code string) uint64 {
	t.Helper()
	id, err := repo.Create(context.Background(), nil, entities.Machinery{
		Code: code, Name: "Backhoe " + code, Type: "Excavator", Status: constants.MachineryStatusAvailable,
	})
	require.NoError(t, err)
	return id
}

func seedProject(t *testing.T, repo ProjectRepositoryInterface, name string) uint64 {
	t.Helper()
	id, err := repo.Create(context.Background(), nil, entities.Project{Name: name, Status: constants.ProjectStatusPlanning})
	require.NoError(t, err)
	return id
}

func TestProjectRepository_CRUD(t *testing.T) {
	db := newTestDB(t)
	repo := NewProjectRepository(db, zap.NewNop())
	ctx := context.Background()

	id, err := repo.Create(ctx, nil, entities.Project{
		Name:      "Road Repair",
		Location:  null.StringFrom("Route 12"),
		Latitude:  null.Float64From(13.75),
		Longitude: null.Float64From(100.5),
		StartDate: null.StringFrom("2025-01-01"),
		Status:    constants.ProjectStatusPlanning,
	})
	require.NoError(t, err)

	p, err := repo.FindByID(ctx, nil, id)
	require.NoError(t, err)
	assert.Equal(t, "Road Repair", p.Name)
	assert.Equal(t, "Route 12", p.Location.String)
	assert.False(t, p.Description.Valid)
	assert.False(t, p.CreatedAt.IsZero())

	require.NoError(t, repo.Update(ctx, nil, id, map[string]interface{}{"status": constants.ProjectStatusInProgress, "location": nil}))
	p, err = repo.FindByID(ctx, nil, id)
	require.NoError(t, err)
	assert.Equal(t, constants.ProjectStatusInProgress, p.Status)
	assert.False(t, p.Location.Valid)

	seedProject(t, repo, "Bridge")
	list, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Bridge", list[0].Name, "newest first")

	locations, err := repo.GetLocations(ctx)
	require.NoError(t, err)
	require.Len(t, locations, 1)
	assert.Equal(t, id, locations[0].ID)

	require.NoError(t, repo.Delete(ctx, nil, id))
	_, err = repo.FindByID(ctx, nil, id)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, nil, id), apperrors.ErrNotFound)
	assert.ErrorIs(t, repo.Update(ctx, nil, id, map[string]interface{}{"name": "x"}), apperrors.ErrNotFound)
}

func TestMachineryRepository_FilterAndUniqueCode(t *testing.T) {
	db := newTestDB(t)
	repo := NewMachineryRepository(db, zap.NewNop())
	ctx := context.Background()

	a := seedMachine(t, repo, "BH-001")
	seedMachine(t, repo, "BH-002")

	_, err := repo.Create(ctx, nil, entities.Machinery{Code: "BH-001", Name: "dup", Type: "x", Status: constants.MachineryStatusAvailable})
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	require.NoError(t, repo.SetStatus(ctx, nil, a, constants.MachineryStatusMaintenance))

	list, err := repo.GetAll(ctx, constants.MachineryStatusMaintenance)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "BH-001", list[0].Code)

	all, err := repo.GetAll(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	m, err := repo.LockByID(ctx, nil, a)
	require.NoError(t, err)
	assert.Equal(t, constants.MachineryStatusMaintenance, m.Status)
}

func TestEmployeeRepository_TeamFilterAndSetNull(t *testing.T) {
	db := newTestDB(t)
	teams := NewTeamRepository(db, zap.NewNop())
	employees := NewEmployeeRepository(db, zap.NewNop())
	ctx := context.Background()

	teamID, err := teams.Create(ctx, nil, entities.Team{Name: "Road crew"})
	require.NoError(t, err)

	inTeam, err := employees.Create(ctx, nil, entities.Employee{
		Code: "E-1", FirstName: "Somchai", LastName: "Dee", TeamID: null.Uint64From(teamID),
	})
	require.NoError(t, err)
	_, err = employees.Create(ctx, nil, entities.Employee{Code: "E-2", FirstName: "Malee", LastName: "Sri"})
	require.NoError(t, err)

	_, err = employees.Create(ctx, nil, entities.Employee{Code: "E-1", FirstName: "x", LastName: "y"})
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	list, err := employees.GetAll(ctx, &teamID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, inTeam, list[0].ID)

	require.NoError(t, teams.Delete(ctx, nil, teamID))

	e, err := employees.FindByID(ctx, nil, inTeam)
	require.NoError(t, err)
	assert.False(t, e.TeamID.Valid, "team_id cleared when the team goes")
}

func TestAssignmentRepository(t *testing.T) {
	db := newTestDB(t)
	machines := NewMachineryRepository(db, zap.NewNop())
	projects := NewProjectRepository(db, zap.NewNop())
	repo := NewAssignmentRepository(db, zap.NewNop())
	ctx := context.Background()

	m := seedMachine(t, machines, "BH-001")
	p := seedProject(t, projects, "Road Repair")

	id, err := repo.Create(ctx, nil, entities.MachineryAssignment{
		MachineryID: m, ProjectID: p, AssignedDate: "2025-01-05", Status: constants.AssignmentStatusAssigned,
	})
	require.NoError(t, err)

	a, err := repo.FindByID(ctx, nil, id)
	require.NoError(t, err)
	assert.Equal(t, "BH-001", a.MachineryCode.String)
	assert.Equal(t, "Road Repair", a.ProjectName.String)

	n, err := repo.CountActiveByMachinery(ctx, nil, m)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	byMachine, err := repo.GetByMachinery(ctx, m)
	require.NoError(t, err)
	assert.Len(t, byMachine, 1)
	byProject, err := repo.GetByProject(ctx, p)
	require.NoError(t, err)
	assert.Len(t, byProject, 1)

	// referenced rows cannot be deleted
	assert.ErrorIs(t, machines.Delete(ctx, nil, m), apperrors.ErrConflict)
	assert.ErrorIs(t, projects.Delete(ctx, nil, p), apperrors.ErrConflict)

	require.NoError(t, repo.Update(ctx, nil, id, map[string]interface{}{"status": constants.AssignmentStatusReturned}))
	n, err = repo.CountActiveByMachinery(ctx, nil, m)
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)

	require.NoError(t, repo.Delete(ctx, nil, id))
	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestTxManager_RollsBackOnError(t *testing.T) {
	db := newTestDB(t)
	projects := NewProjectRepository(db, zap.NewNop())
	txm := NewTxManager(db)
	ctx := context.Background()

	err := txm.RunInTransaction(ctx, func(tx *sql.Tx) error {
		if _, err := projects.Create(ctx, tx, entities.Project{Name: "Ghost", Status: constants.ProjectStatusPlanning}); err != nil {
			return err
		}
		return apperrors.ErrConflict
	})
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	list, err := projects.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	err = txm.RunInTransaction(ctx, func(tx *sql.Tx) error {
		_, err := projects.Create(ctx, tx, entities.Project{Name: "Real", Status: constants.ProjectStatusPlanning})
		return err
	})
	require.NoError(t, err)
	list, err = projects.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestUserRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db, zap.NewNop())
	ctx := context.Background()

	id, err := repo.Create(ctx, nil, entities.User{Username: "admin", Password: "hash", FullName: "System Administrator"})
	require.NoError(t, err)

	u, err := repo.FindByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, id, u.ID)

	require.NoError(t, repo.UpdatePassword(ctx, id, "new-hash"))
	u, err = repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "new-hash", u.Password)

	_, err = repo.FindByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = repo.Create(ctx, nil, entities.User{Username: "admin", Password: "x", FullName: "x"})
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestDashboardRepository(t *testing.T) {
	db := newTestDB(t)
	machines := NewMachineryRepository(db, zap.NewNop())
	projects := NewProjectRepository(db, zap.NewNop())
	assignments := NewAssignmentRepository(db, zap.NewNop())
	ctx := context.Background()

	m := seedMachine(t, machines, "BH-001")
	seedMachine(t, machines, "BH-002")
	p := seedProject(t, projects, "Road Repair")
	_, err := assignments.Create(ctx, nil, entities.MachineryAssignment{
		MachineryID: m, ProjectID: p, AssignedDate: "2025-01-05", Status: constants.AssignmentStatusAssigned,
	})
	require.NoError(t, err)

	stats, err := NewDashboardRepository(db, zap.NewNop()).GetStats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, stats.TotalMachinery)
	assert.EqualValues(t, 2, stats.Machinery[constants.MachineryStatusAvailable])
	assert.EqualValues(t, 0, stats.Machinery[constants.MachineryStatusInUse])
	assert.EqualValues(t, 1, stats.Projects[constants.ProjectStatusPlanning])
	assert.EqualValues(t, 1, stats.ActiveAssignments)
}

func TestMemoryCacheRepository(t *testing.T) {
	cache := NewMemoryCacheRepository(time.Minute)
	ctx := context.Background()

	_, err := cache.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrCacheMiss)

	n, err := cache.Incr(ctx, "login_attempts:admin")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	n, err = cache.Incr(ctx, "login_attempts:admin")
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	ok, err := cache.Expire(ctx, "login_attempts:admin", 20*time.Millisecond)
	require.NoError(t, err)
	assert.True(t, ok)
	time.Sleep(40 * time.Millisecond)
	_, err = cache.Get(ctx, "login_attempts:admin")
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, cache.Set(ctx, "k", "v", 0))
	v, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", v)
	require.NoError(t, cache.Del(ctx, "k"))
	_, err = cache.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)
}
