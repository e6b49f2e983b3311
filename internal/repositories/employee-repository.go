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
	employeeTable  = "employees"
	employeeFields = "id, code, first_name, last_name, position, phone, team_id, created_at, updated_at"
)

type EmployeeRepositoryInterface interface {
	GetAll(ctx context.Context, teamID *uint64) ([]entities.Employee, error)
	FindByID(ctx context.Context, tx *sql.Tx, id uint64) (*entities.Employee, error)
	Create(ctx context.Context, tx *sql.Tx, e entities.Employee) (uint64, error)
	Update(ctx context.Context, tx *sql.Tx, id uint64, changes map[string]interface{}) error
	Delete(ctx context.Context, tx *sql.Tx, id uint64) error
}

type employeeRepository struct {
	base
	logger *zap.Logger
}

func NewEmployeeRepository(db *database.DB, logger *zap.Logger) EmployeeRepositoryInterface {
	return &employeeRepository{base: base{db: db}, logger: logger}
}

func scanEmployee(row rowScanner) (*entities.Employee, error) {
	var e entities.Employee
	err := row.Scan(
		&e.ID, &e.Code, &e.FirstName, &e.LastName, &e.Position, &e.Phone,
		&e.TeamID, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *employeeRepository) GetAll(ctx context.Context, teamID *uint64) ([]entities.Employee, error) {
	builder := r.builder().Select(employeeFields).From(employeeTable)
	if teamID != nil {
		builder = builder.Where(sq.Eq{"team_id": *teamID})
	}
	query, args, err := builder.OrderBy("created_at DESC", "id DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("could not build employees query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("could not list employees: %w", err)
	}
	defer rows.Close()

	employees := make([]entities.Employee, 0)
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("could not scan employee: %w", err)
		}
		employees = append(employees, *e)
	}
	return employees, rows.Err()
}

func (r *employeeRepository) FindByID(ctx context.Context, tx *sql.Tx, id uint64) (*entities.Employee, error) {
	query, args, err := r.builder().Select(employeeFields).From(employeeTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("could not build employee query: %w", err)
	}

	e, err := scanEmployee(r.getQuerier(tx).QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, mapNoRows(err, "employee")
	}
	return e, nil
}

func (r *employeeRepository) Create(ctx context.Context, tx *sql.Tx, e entities.Employee) (uint64, error) {
	ts := now()
	query, args, err := r.builder().Insert(employeeTable).
		Columns("code", "first_name", "last_name", "position", "phone", "team_id", "created_at", "updated_at").
		Values(e.Code, e.FirstName, e.LastName, e.Position, e.Phone, e.TeamID, ts, ts).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("could not build employee insert: %w", err)
	}

	var id uint64
	if err := r.getQuerier(tx).QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return 0, mapWriteError(err, "employee")
	}
	return id, nil
}

func (r *employeeRepository) Update(ctx context.Context, tx *sql.Tx, id uint64, changes map[string]interface{}) error {
	query, args, err := r.builder().Update(employeeTable).
		SetMap(changes).
		Set("updated_at", now()).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("could not build employee update: %w", err)
	}

	res, err := r.getQuerier(tx).ExecContext(ctx, query, args...)
	if err != nil {
		return mapWriteError(err, "employee")
	}
	return affectedOne(res)
}

func (r *employeeRepository) Delete(ctx context.Context, tx *sql.Tx, id uint64) error {
	query, args, err := r.builder().Delete(employeeTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("could not build employee delete: %w", err)
	}

	res, err := r.getQuerier(tx).ExecContext(ctx, query, args...)
	if err != nil {
		return mapWriteError(err, "employee")
	}
	return affectedOne(res)
}
