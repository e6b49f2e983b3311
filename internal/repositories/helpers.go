package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"machinery-registry/pkg/database"
	apperrors "machinery-registry/pkg/errors"
)

// base carries what every table repository needs.
type base struct {
	db *database.DB
}

// getQuerier returns the transaction when there is one, the pool otherwise.
func (b base) getQuerier(tx *sql.Tx) Querier {
	if tx != nil {
		return tx
	}
	return b.db
}

func (b base) builder() sq.StatementBuilderType {
	return b.db.Builder()
}

func now() time.Time {
	return time.Now().UTC()
}

// mapWriteError turns constraint failures into ErrConflict.
func mapWriteError(err error, what string) error {
	switch {
	case database.IsUniqueViolation(err):
		return fmt.Errorf("%s already exists: %w", what, apperrors.ErrConflict)
	case database.IsForeignKeyViolation(err):
		return fmt.Errorf("%s references or is referenced by other records: %w", what, apperrors.ErrConflict)
	}
	return fmt.Errorf("could not write %s: %w", what, err)
}

func mapNoRows(err error, what string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.ErrNotFound
	}
	return fmt.Errorf("could not read %s: %w", what, err)
}

// affectedOne reports ErrNotFound when a statement touched no row.
func affectedOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
