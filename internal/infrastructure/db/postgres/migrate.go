package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/pecc/timetracking/internal/core/domain"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id                    BIGSERIAL PRIMARY KEY,
		name                  TEXT        NOT NULL,
		role                  TEXT        NOT NULL,
		password              TEXT        NOT NULL,
		force_password_change BOOLEAN     NOT NULL DEFAULT FALSE
	)`,
	`CREATE TABLE IF NOT EXISTS time_entries (
		id                 BIGSERIAL PRIMARY KEY,
		user_id            BIGINT      NOT NULL,
		user_name          TEXT        NOT NULL,
		clock_in           TIMESTAMPTZ NOT NULL,
		clock_out          TIMESTAMPTZ,
		clock_in_location  JSONB       NOT NULL DEFAULT '{}',
		clock_out_location JSONB,
		overtime_hours     DOUBLE PRECISION NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_time_entries_user_open
		ON time_entries (user_id) WHERE clock_out IS NULL`,
	`CREATE TABLE IF NOT EXISTS contractor_submissions (
		id              BIGSERIAL PRIMARY KEY,
		contractor_id   BIGINT      NOT NULL,
		employee_name   TEXT        NOT NULL,
		cedula          TEXT        NOT NULL,
		obra            TEXT        NOT NULL,
		hours_worked    DOUBLE PRECISION NOT NULL DEFAULT 0,
		daily_rate      DOUBLE PRECISION NOT NULL DEFAULT 0,
		submission_date TIMESTAMPTZ NOT NULL
	)`,
}

// Migrate creates the tables when they do not exist yet.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// Seed inserts the default accounts when the users table is empty, so a
// fresh install always has someone able to log in.
func Seed(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger) error {
	var count int64
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return fmt.Errorf("seed count: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, u := range domain.SeedUsers() {
		_, err := pool.Exec(ctx,
			`INSERT INTO users(name, role, password, force_password_change)
			 VALUES($1, $2, $3, $4)`,
			u.Name, string(u.Role), u.Password, u.ForcePasswordChange,
		)
		if err != nil {
			return fmt.Errorf("seed user %q: %w", u.Name, err)
		}
	}
	log.Info().Int("users", len(domain.SeedUsers())).Msg("seeded default accounts")
	return nil
}
