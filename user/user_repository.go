package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct{ pool *pgxpool.Pool }

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) Insert(ctx context.Context, u User) (User, error) {
	sql := `
			INSERT INTO users(name, email)
			VALUES ($1, $2)
			RETURNING id;
		`

	err := r.pool.QueryRow(ctx, sql, u.Name, u.Email).Scan(&u.ID)

	if isUniqueViolation(err) {
		return User{}, ErrEmailExists
	}

	if err != nil {
		return User{}, fmt.Errorf("failed to insert user: %w", err)
	}

	return u, nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (User, error) {
	sql := `SELECT id, name, email FROM users WHERE id=$1;`

	var u User
	err := r.pool.QueryRow(ctx, sql, id).Scan(&u.ID, &u.Name, &u.Email)

	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrUserNotFound
	}

	if err != nil {
		return User{}, fmt.Errorf("failed to fetch user with id %v: %w", id, err)
	}

	return u, nil
}

func (r *Repository) GetAll(ctx context.Context) ([]User, error) {
	sql := `SELECT id, name, email FROM users ORDER BY id;`

	rows, err := r.pool.Query(ctx, sql)

	if err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}

	defer rows.Close()

	users := []User{}

	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email); err != nil {
			return nil, fmt.Errorf("error scanning user row: %w", err)
		}

		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}

	return users, nil
}

func (r *Repository) Update(ctx context.Context, u User) error {
	sql := `
			UPDATE users
			SET name=$1, email=$2
			WHERE id=$3;
		`

	tag, err := r.pool.Exec(ctx, sql, u.Name, u.Email, u.ID)

	if isUniqueViolation(err) {
		return ErrEmailExists
	}

	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	return nil
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id=$1;`, id)

	if err != nil {
		return fmt.Errorf("failed to delete user '%v': %w", id, err)
	}

	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
