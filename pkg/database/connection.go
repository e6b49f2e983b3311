package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"

	"machinery-registry/pkg/config"
)

// DB is the process-wide store handle. It is built once in main and passed to
// every repository; Driver selects the SQL dialect of the generated queries.
type DB struct {
	*sql.DB
	Driver string
}

// Builder returns a squirrel builder with the placeholder format of the driver.
func (db *DB) Builder() sq.StatementBuilderType {
	if db.Driver == config.DriverPostgres {
		return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	}
	return sq.StatementBuilder.PlaceholderFormat(sq.Question)
}

func (db *DB) IsPostgres() bool {
	return db.Driver == config.DriverPostgres
}

// Connect opens the store described by cfg and checks it answers.
func Connect(ctx context.Context, cfg config.DatabaseConfig) (*DB, error) {
	var dsn string
	switch cfg.Driver {
	case config.DriverSQLite:
		if dir := filepath.Dir(cfg.Path); dir != "" && cfg.Path != ":memory:" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("could not create database directory %s: %w", dir, err)
			}
		}
		dsn = SQLiteDSN(cfg.Path)
	case config.DriverPostgres:
		dsn = cfg.DSN
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	sqlDB, err := sql.Open(cfg.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("could not open database: %w", err)
	}

	if cfg.Driver == config.DriverSQLite {
		// one writer at a time; readers go through WAL
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(20)
		sqlDB.SetConnMaxIdleTime(5 * time.Minute)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("could not ping database: %w", err)
	}

	return &DB{DB: sqlDB, Driver: cfg.Driver}, nil
}

// SQLiteDSN enables foreign keys and WAL, and makes BEGIN take the write lock
// immediately so a check-then-insert inside a transaction cannot interleave.
func SQLiteDSN(path string) string {
	return fmt.Sprintf("file:%s?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000&_txlock=immediate", path)
}
