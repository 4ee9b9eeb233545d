package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pecc/timetracking/internal/core/domain"
)

// UserRepository persists user accounts in PostgreSQL.
type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, role, password, force_password_change
		 FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		var role string
		if err := rows.Scan(&u.ID, &u.Name, &role, &u.Password, &u.ForcePasswordChange); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		u.Role = domain.Role(role)
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *UserRepository) FindByCredentials(ctx context.Context, name, password string) (*domain.User, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, name, role, password, force_password_change
		 FROM users WHERE name = $1 AND password = $2`,
		name, password)

	var u domain.User
	var role string
	err := row.Scan(&u.ID, &u.Name, &role, &u.Password, &u.ForcePasswordChange)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("find by credentials: %w", err)
	}
	u.Role = domain.Role(role)
	return &u, nil
}

func (r *UserRepository) Create(ctx context.Context, u domain.User) (*domain.User, error) {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO users(name, role, password, force_password_change)
		 VALUES($1, $2, $3, $4)
		 RETURNING id`,
		u.Name, string(u.Role), u.Password, u.ForcePasswordChange,
	).Scan(&u.ID)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &u, nil
}

func (r *UserRepository) Update(ctx context.Context, u domain.User) (*domain.User, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users
		 SET name = $2, role = $3, password = $4, force_password_change = $5
		 WHERE id = $1`,
		u.ID, u.Name, string(u.Role), u.Password, u.ForcePasswordChange,
	)
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
