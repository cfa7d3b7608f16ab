package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/askstack/askstack-api/internal/domain/entity"
	"github.com/askstack/askstack-api/internal/domain/query"
	"github.com/askstack/askstack-api/internal/domain/repository"
	"github.com/askstack/askstack-api/pkg/apierr"
)

var userColumns = []string{
	"id", "username", "first_name", "last_name", "email",
	"password_hash", "avatar_url", "created_at", "updated_at",
}

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	err := row.Scan(&u.ID, &u.Username, &u.FirstName, &u.LastName, &u.Email,
		&u.Password, &u.AvatarURL, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	u.Username = strings.ToLower(u.Username)
	u.Email = strings.ToLower(u.Email)

	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (id, username, first_name, last_name, email, password_hash, avatar_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`, u.ID, u.Username, u.FirstName, u.LastName, u.Email, u.Password, u.AvatarURL)

	if err := row.Scan(&u.CreatedAt, &u.UpdatedAt); err != nil {
		if _, ok := uniqueViolation(err); ok {
			return apierr.Conflict(
				"The email or username you are trying to use is not available",
				"email or username", "body", "")
		}
		return apierr.Storage("There was an error saving the user", err)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+strings.Join(userColumns, ", ")+`
		FROM users
		WHERE id = $1
	`, id)

	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, apierr.Storage("There was an error retrieving the user", err)
	}
	return u, nil
}

func (r *UserRepository) FindOne(ctx context.Context, f query.Filter) (*entity.User, error) {
	var args []any
	sql := "SELECT " + strings.Join(userColumns, ", ") + " FROM users" + whereSQL(f, &args) + " LIMIT 1"

	u, err := scanUser(r.pool.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apierr.Storage("There was an error retrieving the user", err)
	}
	return u, nil
}

func (r *UserRepository) List(ctx context.Context, p query.Plan) ([]*entity.User, error) {
	sql, args := selectSQL(p, userColumns)
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, apierr.Storage("There was an error retrieving users", err)
	}
	defer rows.Close()

	var users []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, apierr.Storage("There was an error retrieving users", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, apierr.Storage("There was an error retrieving users", err)
	}
	return users, nil
}

func (r *UserRepository) Count(ctx context.Context, f query.Filter) (int64, error) {
	sql, args := countSQL("users", f)
	var n int64
	if err := r.pool.QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, apierr.Storage("There was an error counting users", err)
	}
	return n, nil
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	u.UpdatedAt = time.Now()

	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET first_name = $1, last_name = $2, avatar_url = $3, updated_at = $4
		WHERE id = $5
	`, u.FirstName, u.LastName, u.AvatarURL, u.UpdatedAt, u.ID)
	if err != nil {
		return apierr.Storage("There was an error updating the user", err)
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
