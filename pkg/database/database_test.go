package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"machinery-registry/pkg/config"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Connect(context.Background(), config.DatabaseConfig{
		Driver: config.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "test.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, Migrate(db, zap.NewNop()))
	return db
}

func TestMigrate_CreatesTables(t *testing.T) {
	db := openTestDB(t)

	for _, table := range []string{"users", "projects", "machinery", "teams", "employees", "machinery_assignments"} {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&name)
		require.NoError(t, err, table)
		assert.Equal(t, table, name)
	}

	// second run is a no-op
	require.NoError(t, Migrate(db, nil))
}

func TestBuilder_Placeholders(t *testing.T) {
	sqlite := &DB{Driver: config.DriverSQLite}
	query, _, err := sqlite.Builder().Select("id").From("machinery").Where("code = ?", "BH-001").ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM machinery WHERE code = ?", query)

	pg := &DB{Driver: config.DriverPostgres}
	query, _, err = pg.Builder().Select("id").From("machinery").Where("code = ?", "BH-001").ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM machinery WHERE code = $1", query)
}

func TestConstraintErrors(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	insert := "INSERT INTO machinery (code, name, type) VALUES (?, ?, ?)"
	_, err := db.ExecContext(ctx, insert, "BH-001", "Backhoe", "Excavator")
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, insert, "BH-001", "Backhoe 2", "Excavator")
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err))
	assert.False(t, IsForeignKeyViolation(err))

	_, err = db.ExecContext(ctx,
		"INSERT INTO machinery_assignments (machinery_id, project_id, assigned_date) VALUES (?, ?, ?)",
		1, 999, "2025-01-05")
	require.Error(t, err)
	assert.True(t, IsForeignKeyViolation(err))
}

func TestConstraintErrors_DeleteReferencedParent(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	_, err := db.ExecContext(ctx, "INSERT INTO machinery (code, name, type) VALUES ('BH-001', 'Backhoe', 'Excavator')")
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, "INSERT INTO projects (name) VALUES ('Road Repair')")
	require.NoError(t, err)
	_, err = db.ExecContext(ctx,
		"INSERT INTO machinery_assignments (machinery_id, project_id, assigned_date) VALUES (1, 1, '2025-01-05')")
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, "DELETE FROM machinery WHERE id = 1")
	require.Error(t, err)
	assert.True(t, IsForeignKeyViolation(err), err.Error())

	_, err = db.ExecContext(ctx, "DELETE FROM projects WHERE id = 1")
	require.Error(t, err)
	assert.True(t, IsForeignKeyViolation(err), err.Error())
}

// ON DELETE RESTRICT is reported by SQLite with its trigger constraint code.
func TestConstraintErrors_RestrictAction(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	for _, stmt := range []string{
		"CREATE TABLE parents (id INTEGER PRIMARY KEY)",
		"CREATE TABLE children (id INTEGER PRIMARY KEY, parent_id INTEGER NOT NULL REFERENCES parents(id) ON DELETE RESTRICT)",
		"INSERT INTO parents (id) VALUES (1)",
		"INSERT INTO children (parent_id) VALUES (1)",
	} {
		_, err := db.ExecContext(ctx, stmt)
		require.NoError(t, err, stmt)
	}

	_, err := db.ExecContext(ctx, "DELETE FROM parents WHERE id = 1")
	require.Error(t, err)
	assert.True(t, IsForeignKeyViolation(err), err.Error())
	assert.False(t, IsUniqueViolation(err))
}

func TestConnect_UnknownDriver(t *testing.T) {
	_, err := Connect(context.Background(), config.DatabaseConfig{Driver: "oracle"})
	assert.Error(t, err)
}
