package repositories

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"go.uber.org/zap"

	"machinery-registry/internal/entities"
	"machinery-registry/pkg/database"
)

const (
	machineryTable  = "machinery"
	machineryFields = "id, code, name, type, brand, model, year, status, notes, created_at, updated_at"
)

type MachineryRepositoryInterface interface {
	GetAll(ctx context.Context, status string) ([]entities.Machinery, error)
	FindByID(ctx context.Context, tx *sql.Tx, id uint64) (*entities.Machinery, error)
	// LockByID reads the machine and, on PostgreSQL, holds its row lock until tx ends.
	LockByID(ctx context.Context, tx *sql.Tx, id uint64) (*entities.Machinery, error)
	Create(ctx context.Context, tx *sql.Tx, m entities.Machinery) (uint64, error)
	Update(ctx context.Context, tx *sql.Tx, id uint64, changes map[string]interface{}) error
	SetStatus(ctx context.Context, tx *sql.Tx, id uint64, status string) error
	Delete(ctx context.Context, tx *sql.Tx, id uint64) error
}

type machineryRepository struct {
	base
	logger *zap.Logger
}

func NewMachineryRepository(db *database.DB, logger *zap.Logger) MachineryRepositoryInterface {
	return &machineryRepository{base: base{db: db}, logger: logger}
}

func scanMachinery(row rowScanner) (*entities.Machinery, error) {
	var m entities.Machinery
	err := row.Scan(
		&m.ID, &m.Code, &m.Name, &m.Type, &m.Brand, &m.Model, &m.Year,
		&m.Status, &m.Notes, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *machineryRepository) GetAll(ctx context.Context, status string) ([]entities.Machinery, error) {
	builder := r.builder().Select(machineryFields).From(machineryTable)
	if status != "" {
		builder = builder.Where(sq.Eq{"status": status})
	}
	query, args, err := builder.OrderBy("created_at DESC", "id DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("could not build machinery query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("could not list machinery: %w", err)
	}
	defer rows.Close()

	list := make([]entities.Machinery, 0)
	for rows.Next() {
		m, err := scanMachinery(rows)
		if err != nil {
			return nil, fmt.Errorf("could not scan machinery: %w", err)
		}
		list = append(list, *m)
	}
	return list, rows.Err()
}

func (r *machineryRepository) FindByID(ctx context.Context, tx *sql.Tx, id uint64) (*entities.Machinery, error) {
	return r.findOne(ctx, r.getQuerier(tx), id, false)
}

func (r *machineryRepository) LockByID(ctx context.Context, tx *sql.Tx, id uint64) (*entities.Machinery, error) {
	// SQLite has no row locks; its transactions already hold the write lock from BEGIN
	return r.findOne(ctx, r.getQuerier(tx), id, r.db.IsPostgres())
}

func (r *machineryRepository) findOne(ctx context.Context, q Querier, id uint64, forUpdate bool) (*entities.Machinery, error) {
	builder := r.builder().Select(machineryFields).From(machineryTable).Where(sq.Eq{"id": id})
	if forUpdate {
		builder = builder.Suffix("FOR UPDATE")
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("could not build machinery query: %w", err)
	}

	m, err := scanMachinery(q.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, mapNoRows(err, "machinery")
	}
	return m, nil
}

func (r *machineryRepository) Create(ctx context.Context, tx *sql.Tx, m entities.Machinery) (uint64, error) {
	ts := now()
	query, args, err := r.builder().Insert(machineryTable).
		Columns("code", "name", "type", "brand", "model", "year", "status", "notes", "created_at", "updated_at").
		Values(m.Code, m.Name, m.Type, m.Brand, m.Model, m.Year, m.Status, m.Notes, ts, ts).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("could not build machinery insert: %w", err)
	}

	var id uint64
	if err := r.getQuerier(tx).QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return 0, mapWriteError(err, "machinery")
	}
	return id, nil
}

func (r *machineryRepository) Update(ctx context.Context, tx *sql.Tx, id uint64, changes map[string]interface{}) error {
	query, args, err := r.builder().Update(machineryTable).
		SetMap(changes).
		Set("updated_at", now()).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("could not build machinery update: %w", err)
	}

	res, err := r.getQuerier(tx).ExecContext(ctx, query, args...)
	if err != nil {
		return mapWriteError(err, "machinery")
	}
	return affectedOne(res)
}

func (r *machineryRepository) SetStatus(ctx context.Context, tx *sql.Tx, id uint64, status string) error {
	return r.Update(ctx, tx, id, map[string]interface{}{"status": status})
}

func (r *machineryRepository) Delete(ctx context.Context, tx *sql.Tx, id uint64) error {
	query, args, err := r.builder().Delete(machineryTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("could not build machinery delete: %w", err)
	}

	res, err := r.getQuerier(tx).ExecContext(ctx, query, args...)
	if err != nil {
		return mapWriteError(err, "machinery")
	}
	return affectedOne(res)
}
