package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"service-desk/internal/entities"
	"service-desk/pkg/constants"
	apperrors "service-desk/pkg/errors"
)

const (
	userTable        = "users"
	userSelectFields = "id, name, login, password_hash, role, created_at, updated_at"
)

type UserRepositoryInterface interface {
	FindUserByID(ctx context.Context, id int64) (*entities.User, error)
	FindUserByLogin(ctx context.Context, login string) (*entities.User, error)
	// UpsertUser inserts the user unless the login is taken. It reports
	// whether a row was written.
	UpsertUser(ctx context.Context, tx pgx.Tx, user entities.User) (bool, error)
}

type UserRepository struct {
	storage *pgxpool.Pool
}

func NewUserRepository(storage *pgxpool.Pool) UserRepositoryInterface {
	return &UserRepository{storage: storage}
}

func (r *UserRepository) getQuerier(tx pgx.Tx) Querier {
	if tx != nil {
		return tx
	}
	return r.storage
}

func scanUser(row pgx.Row) (*entities.User, error) {
	var u entities.User
	var role string
	if err := row.Scan(&u.ID, &u.Name, &u.Login, &u.PasswordHash, &role, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	u.Role = constants.Role(role)
	return &u, nil
}

func (r *UserRepository) FindUserByID(ctx context.Context, id int64) (*entities.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, userSelectFields, userTable)
	return scanUser(r.storage.QueryRow(ctx, query, id))
}

// FindUserByLogin hides a missing login behind ErrInvalidCredentials so the
// login endpoint does not reveal which logins exist.
func (r *UserRepository) FindUserByLogin(ctx context.Context, login string) (*entities.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE LOWER(login) = LOWER($1)`, userSelectFields, userTable)
	user, err := scanUser(r.storage.QueryRow(ctx, query, strings.TrimSpace(login)))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) UpsertUser(ctx context.Context, tx pgx.Tx, user entities.User) (bool, error) {
	query := fmt.Sprintf(`INSERT INTO %s (name, login, password_hash, role) VALUES ($1, $2, $3, $4)
		ON CONFLICT (login) DO NOTHING`, userTable)
	tag, err := r.getQuerier(tx).Exec(ctx, query, user.Name, user.Login, user.PasswordHash, string(user.Role))
	if err != nil {
		return false, fmt.Errorf("upsert user %q: %w", user.Login, err)
	}
	return tag.RowsAffected() > 0, nil
}
