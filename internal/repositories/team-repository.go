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
	teamTable  = "teams"
	teamFields = "id, name, description, created_at, updated_at"
)

type TeamRepositoryInterface interface {
	GetAll(ctx context.Context) ([]entities.Team, error)
	FindByID(ctx context.Context, tx *sql.Tx, id uint64) (*entities.Team, error)
	Create(ctx context.Context, tx *sql.Tx, t entities.Team) (uint64, error)
	Update(ctx context.Context, tx *sql.Tx, id uint64, changes map[string]interface{}) error
	Delete(ctx context.Context, tx *sql.Tx, id uint64) error
}

type teamRepository struct {
	base
	logger *zap.Logger
}

func NewTeamRepository(db *database.DB, logger *zap.Logger) TeamRepositoryInterface {
	return &teamRepository{base: base{db: db}, logger: logger}
}

func scanTeam(row rowScanner) (*entities.Team, error) {
	var t entities.Team
	if err := row.Scan(&t.ID, &t.Name, &t.Description, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *teamRepository) GetAll(ctx context.Context) ([]entities.Team, error) {
	query, args, err := r.builder().Select(teamFields).From(teamTable).
		OrderBy("created_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("could not build teams query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("could not list teams: %w", err)
	}
	defer rows.Close()

	teams := make([]entities.Team, 0)
	for rows.Next() {
		t, err := scanTeam(rows)
		if err != nil {
			return nil, fmt.Errorf("could not scan team: %w", err)
		}
		teams = append(teams, *t)
	}
	return teams, rows.Err()
}

func (r *teamRepository) FindByID(ctx context.Context, tx *sql.Tx, id uint64) (*entities.Team, error) {
	query, args, err := r.builder().Select(teamFields).From(teamTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("could not build team query: %w", err)
	}

	t, err := scanTeam(r.getQuerier(tx).QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, mapNoRows(err, "team")
	}
	return t, nil
}

func (r *teamRepository) Create(ctx context.Context, tx *sql.Tx, t entities.Team) (uint64, error) {
	ts := now()
	query, args, err := r.builder().Insert(teamTable).
		Columns("name", "description", "created_at", "updated_at").
		Values(t.Name, t.Description, ts, ts).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("could not build team insert: %w", err)
	}

	var id uint64
	if err := r.getQuerier(tx).QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return 0, mapWriteError(err, "team")
	}
	return id, nil
}

func (r *teamRepository) Update(ctx context.Context, tx *sql.Tx, id uint64, changes map[string]interface{}) error {
	query, args, err := r.builder().Update(teamTable).
		SetMap(changes).
		Set("updated_at", now()).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("could not build team update: %w", err)
	}

	res, err := r.getQuerier(tx).ExecContext(ctx, query, args...)
	if err != nil {
		return mapWriteError(err, "team")
	}
	return affectedOne(res)
}

// Delete removes the team; its employees stay, with team_id cleared by the foreign key.
func (r *teamRepository) Delete(ctx context.Context, tx *sql.Tx, id uint64) error {
	query, args, err := r.builder().Delete(teamTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("could not build team delete: %w", err)
	}

	res, err := r.getQuerier(tx).ExecContext(ctx, query, args...)
	if err != nil {
		return mapWriteError(err, "team")
	}
	return affectedOne(res)
}
