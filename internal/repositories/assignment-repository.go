package repositories

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"go.uber.org/zap"

	"machinery-registry/internal/entities"
	"machinery-registry/pkg/constants"
	"machinery-registry/pkg/database"
)

const (
	assignmentTable  = "machinery_assignments"
	assignmentFields = "a.id, a.machinery_id, a.project_id, a.assigned_date, a.return_date, a.status, a.notes, a.created_at, a.updated_at, m.code, m.name, p.name"
)

type AssignmentRepositoryInterface interface {
	GetAll(ctx context.Context) ([]entities.MachineryAssignment, error)
	GetByMachinery(ctx context.Context, machineryID uint64) ([]entities.MachineryAssignment, error)
	GetByProject(ctx context.Context, projectID uint64) ([]entities.MachineryAssignment, error)
	FindByID(ctx context.Context, tx *sql.Tx, id uint64) (*entities.MachineryAssignment, error)
	CountActiveByMachinery(ctx context.Context, tx *sql.Tx, machineryID uint64) (int64, error)
	Create(ctx context.Context, tx *sql.Tx, a entities.MachineryAssignment) (uint64, error)
	Update(ctx context.Context, tx *sql.Tx, id uint64, changes map[string]interface{}) error
	Delete(ctx context.Context, tx *sql.Tx, id uint64) error
}

type assignmentRepository struct {
	base
	logger *zap.Logger
}

func NewAssignmentRepository(db *database.DB, logger *zap.Logger) AssignmentRepositoryInterface {
	return &assignmentRepository{base: base{db: db}, logger: logger}
}

func (r *assignmentRepository) selectBuilder() sq.SelectBuilder {
	return r.builder().Select(assignmentFields).
		From(assignmentTable + " a").
		LeftJoin("machinery m ON m.id = a.machinery_id").
		LeftJoin("projects p ON p.id = a.project_id")
}

func scanAssignment(row rowScanner) (*entities.MachineryAssignment, error) {
	var a entities.MachineryAssignment
	err := row.Scan(
		&a.ID, &a.MachineryID, &a.ProjectID, &a.AssignedDate, &a.ReturnDate, &a.Status, &a.Notes,
		&a.CreatedAt, &a.UpdatedAt, &a.MachineryCode, &a.MachineryName, &a.ProjectName,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *assignmentRepository) list(ctx context.Context, where sq.Sqlizer) ([]entities.MachineryAssignment, error) {
	builder := r.selectBuilder()
	if where != nil {
		builder = builder.Where(where)
	}
	query, args, err := builder.OrderBy("a.created_at DESC", "a.id DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("could not build assignments query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("could not list assignments: %w", err)
	}
	defer rows.Close()

	list := make([]entities.MachineryAssignment, 0)
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, fmt.Errorf("could not scan assignment: %w", err)
		}
		list = append(list, *a)
	}
	return list, rows.Err()
}

func (r *assignmentRepository) GetAll(ctx context.Context) ([]entities.MachineryAssignment, error) {
	return r.list(ctx, nil)
}

func (r *assignmentRepository) GetByMachinery(ctx context.Context, machineryID uint64) ([]entities.MachineryAssignment, error) {
	return r.list(ctx, sq.Eq{"a.machinery_id": machineryID})
}

func (r *assignmentRepository) GetByProject(ctx context.Context, projectID uint64) ([]entities.MachineryAssignment, error) {
	return r.list(ctx, sq.Eq{"a.project_id": projectID})
}

func (r *assignmentRepository) FindByID(ctx context.Context, tx *sql.Tx, id uint64) (*entities.MachineryAssignment, error) {
	query, args, err := r.selectBuilder().Where(sq.Eq{"a.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("could not build assignment query: %w", err)
	}

	a, err := scanAssignment(r.getQuerier(tx).QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, mapNoRows(err, "assignment")
	}
	return a, nil
}

// CountActiveByMachinery counts the ASSIGNED rows of a machine.
func (r *assignmentRepository) CountActiveByMachinery(ctx context.Context, tx *sql.Tx, machineryID uint64) (int64, error) {
	query, args, err := r.builder().Select("COUNT(*)").From(assignmentTable).
		Where(sq.Eq{"machinery_id": machineryID, "status": constants.AssignmentStatusAssigned}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("could not build active count query: %w", err)
	}

	var n int64
	if err := r.getQuerier(tx).QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("could not count active assignments: %w", err)
	}
	return n, nil
}

func (r *assignmentRepository) Create(ctx context.Context, tx *sql.Tx, a entities.MachineryAssignment) (uint64, error) {
	ts := now()
	query, args, err := r.builder().Insert(assignmentTable).
		Columns("machinery_id", "project_id", "assigned_date", "return_date", "status", "notes", "created_at", "updated_at").
		Values(a.MachineryID, a.ProjectID, a.AssignedDate, a.ReturnDate, a.Status, a.Notes, ts, ts).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("could not build assignment insert: %w", err)
	}

	var id uint64
	if err := r.getQuerier(tx).QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return 0, mapWriteError(err, "assignment")
	}
	return id, nil
}

func (r *assignmentRepository) Update(ctx context.Context, tx *sql.Tx, id uint64, changes map[string]interface{}) error {
	query, args, err := r.builder().Update(assignmentTable).
		SetMap(changes).
		Set("updated_at", now()).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("could not build assignment update: %w", err)
	}

	res, err := r.getQuerier(tx).ExecContext(ctx, query, args...)
	if err != nil {
		return mapWriteError(err, "assignment")
	}
	return affectedOne(res)
}

func (r *assignmentRepository) Delete(ctx context.Context, tx *sql.Tx, id uint64) error {
	query, args, err := r.builder().Delete(assignmentTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("could not build assignment delete: %w", err)
	}

	res, err := r.getQuerier(tx).ExecContext(ctx, query, args...)
	if err != nil {
		return mapWriteError(err, "assignment")
	}
	return affectedOne(res)
}
