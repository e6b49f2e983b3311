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
	projectTable  = "projects"
	projectFields = "id, name, description, location, latitude, longitude, start_date, end_date, status, created_at, updated_at"
)

type ProjectRepositoryInterface interface {
	GetAll(ctx context.Context) ([]entities.Project, error)
	FindByID(ctx context.Context, tx *sql.Tx, id uint64) (*entities.Project, error)
	Create(ctx context.Context, tx *sql.Tx, p entities.Project) (uint64, error)
	Update(ctx context.Context, tx *sql.Tx, id uint64, changes map[string]interface{}) error
	Delete(ctx context.Context, tx *sql.Tx, id uint64) error
	GetLocations(ctx context.Context) ([]entities.ProjectLocation, error)
}

type projectRepository struct {
	base
	logger *zap.Logger
}

func NewProjectRepository(db *database.DB, logger *zap.Logger) ProjectRepositoryInterface {
	return &projectRepository{base: base{db: db}, logger: logger}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProject(row rowScanner) (*entities.Project, error) {
	var p entities.Project
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Location, &p.Latitude, &p.Longitude,
		&p.StartDate, &p.EndDate, &p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *projectRepository) GetAll(ctx context.Context) ([]entities.Project, error) {
	query, args, err := r.builder().Select(projectFields).From(projectTable).
		OrderBy("created_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("could not build projects query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("could not list projects: %w", err)
	}
	defer rows.Close()

	projects := make([]entities.Project, 0)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("could not scan project: %w", err)
		}
		projects = append(projects, *p)
	}
	return projects, rows.Err()
}

func (r *projectRepository) FindByID(ctx context.Context, tx *sql.Tx, id uint64) (*entities.Project, error) {
	query, args, err := r.builder().Select(projectFields).From(projectTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("could not build project query: %w", err)
	}

	p, err := scanProject(r.getQuerier(tx).QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, mapNoRows(err, "project")
	}
	return p, nil
}

func (r *projectRepository) Create(ctx context.Context, tx *sql.Tx, p entities.Project) (uint64, error) {
	ts := now()
	query, args, err := r.builder().Insert(projectTable).
		Columns("name", "description", "location", "latitude", "longitude", "start_date", "end_date", "status", "created_at", "updated_at").
		Values(p.Name, p.Description, p.Location, p.Latitude, p.Longitude, p.StartDate, p.EndDate, p.Status, ts, ts).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("could not build project insert: %w", err)
	}

	var id uint64
	if err := r.getQuerier(tx).QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return 0, mapWriteError(err, "project")
	}
	return id, nil
}

func (r *projectRepository) Update(ctx context.Context, tx *sql.Tx, id uint64, changes map[string]interface{}) error {
	query, args, err := r.builder().Update(projectTable).
		SetMap(changes).
		Set("updated_at", now()).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("could not build project update: %w", err)
	}

	res, err := r.getQuerier(tx).ExecContext(ctx, query, args...)
	if err != nil {
		return mapWriteError(err, "project")
	}
	return affectedOne(res)
}

func (r *projectRepository) Delete(ctx context.Context, tx *sql.Tx, id uint64) error {
	query, args, err := r.builder().Delete(projectTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("could not build project delete: %w", err)
	}

	res, err := r.getQuerier(tx).ExecContext(ctx, query, args...)
	if err != nil {
		return mapWriteError(err, "project")
	}
	return affectedOne(res)
}

// GetLocations returns the projects that can be placed on the map.
func (r *projectRepository) GetLocations(ctx context.Context) ([]entities.ProjectLocation, error) {
	query, args, err := r.builder().
		Select("id", "name", "location", "latitude", "longitude", "status").
		From(projectTable).
		Where(sq.NotEq{"latitude": nil, "longitude": nil}).
		OrderBy("name ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("could not build locations query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("could not list project locations: %w", err)
	}
	defer rows.Close()

	locations := make([]entities.ProjectLocation, 0)
	for rows.Next() {
		var l entities.ProjectLocation
		if err := rows.Scan(&l.ID, &l.Name, &l.Location, &l.Latitude, &l.Longitude, &l.Status); err != nil {
			return nil, fmt.Errorf("could not scan project location: %w", err)
		}
		locations = append(locations, l)
	}
	return locations, rows.Err()
}
