package db

import (
	"context"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"staffrecords/internal/domain/auth"
	"staffrecords/internal/platform/config"
)

type seedDepartment struct {
	Name        string
	Description string
}

var defaultDepartments = []seedDepartment{
	{Name: "Computer Science", Description: "Computer Science Department"},
	{Name: "HR", Description: "Human Resources"},
	{Name: "Finance", Description: "Finance Department"},
}

// Seed ensures the bootstrap administrator and, on an empty table, the
// default departments. It is safe to run on every start.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if err := ensureAdminAccount(ctx, pool, cfg); err != nil {
		return err
	}
	return ensureDepartments(ctx, pool)
}

func ensureAdminAccount(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	email := strings.TrimSpace(cfg.SeedAdminEmail)
	if email == "" || cfg.SeedAdminPassword == "" {
		slog.Info("seed admin skipped", "reason", "SEED_ADMIN_EMAIL or SEED_ADMIN_PASSWORD not set")
		return nil
	}

	var exists bool
	if err := pool.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM accounts WHERE lower(email) = lower($1))", email).Scan(&exists); err != nil {
		return err
	}
	if exists {
		return nil
	}

	hash, err := auth.HashPassword(cfg.SeedAdminPassword)
	if err != nil {
		return err
	}
	_, err = pool.Exec(ctx, `
    INSERT INTO accounts (kind, email, password_hash, role, first_name, last_name)
    VALUES ('admin', $1, $2, 'admin', $3, $4)
    ON CONFLICT DO NOTHING
  `, email, hash, cfg.SeedAdminFirstName, cfg.SeedAdminLastName)
	if err == nil {
		slog.Info("seed admin created", "email", email)
	}
	return err
}

func ensureDepartments(ctx context.Context, pool *pgxpool.Pool) error {
	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(1) FROM departments").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	for _, dep := range defaultDepartments {
		if _, err := pool.Exec(ctx, `
      INSERT INTO departments (name, description)
      VALUES ($1, $2)
      ON CONFLICT DO NOTHING
    `, dep.Name, dep.Description); err != nil {
			return err
		}
	}
	return nil
}
