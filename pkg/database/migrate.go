package database

import (
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrationsFS embed.FS

// Migrate applies all pending migrations of the handle's dialect.
func Migrate(db *DB, logger *zap.Logger) error {
	dialect, dir := "sqlite3", "migrations/sqlite"
	if db.IsPostgres() {
		dialect, dir = "postgres", "migrations/postgres"
	}

	goose.SetBaseFS(migrationsFS)
	defer goose.SetBaseFS(nil)

	if logger != nil {
		goose.SetLogger(gooseLogger{logger.Sugar()})
	} else {
		goose.SetLogger(goose.NopLogger())
	}

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("goose dialect %s: %w", dialect, err)
	}
	if err := goose.Up(db.DB, dir); err != nil {
		return fmt.Errorf("could not apply migrations: %w", err)
	}
	return nil
}

type gooseLogger struct {
	s *zap.SugaredLogger
}

func (l gooseLogger) Fatalf(format string, v ...interface{}) { l.s.Fatalf(format, v...) }
func (l gooseLogger) Printf(format string, v ...interface{}) { l.s.Infof(format, v...) }
