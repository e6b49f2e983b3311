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
	userTable  = "users"
	userFields = "id, username, password, full_name, created_at"
)

type UserRepositoryInterface interface {
	FindByUsername(ctx context.Context, username string) (*entities.User, error)
	FindByID(ctx context.Context, id uint64) (*entities.User, error)
	Create(ctx context.Context, tx *sql.Tx, u entities.User) (uint64, error)
	UpdatePassword(ctx context.Context, id uint64, passwordHash string) error
}

type userRepository struct {
	base
	logger *zap.Logger
}

func NewUserRepository(db *database.DB, logger *zap.Logger) UserRepositoryInterface {
	return &userRepository{base: base{db: db}, logger: logger}
}

func (r *userRepository) findOne(ctx context.Context, where sq.Eq) (*entities.User, error) {
	query, args, err := r.builder().Select(userFields).From(userTable).Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("could not build user query: %w", err)
	}

	var u entities.User
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&u.ID, &u.Username, &u.Password, &u.FullName, &u.CreatedAt)
	if err != nil {
		return nil, mapNoRows(err, "user")
	}
	return &u, nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*entities.User, error) {
	return r.findOne(ctx, sq.Eq{"username": username})
}

func (r *userRepository) FindByID(ctx context.Context, id uint64) (*entities.User, error) {
	return r.findOne(ctx, sq.Eq{"id": id})
}

func (r *userRepository) Create(ctx context.Context, tx *sql.Tx, u entities.User) (uint64, error) {
	query, args, err := r.builder().Insert(userTable).
		Columns("username", "password", "full_name", "created_at").
		Values(u.Username, u.Password, u.FullName, now()).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("could not build user insert: %w", err)
	}

	var id uint64
	if err := r.getQuerier(tx).QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return 0, mapWriteError(err, "user")
	}
	return id, nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, id uint64, passwordHash string) error {
	query, args, err := r.builder().Update(userTable).
		Set("password", passwordHash).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("could not build password update: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("could not update password: %w", err)
	}
	return affectedOne(res)
}
