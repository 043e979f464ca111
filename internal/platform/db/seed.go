package db

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"ems/internal/domain/auth"
	"ems/internal/platform/config"
)

func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if err := ensureAdminUser(ctx, pool, cfg.SeedAdminUsername, cfg.SeedAdminEmail, cfg.SeedAdminPassword); err != nil {
		return err
	}

	if cfg.SeedSampleData {
		return ensureSampleEmployees(ctx, pool)
	}
	return nil
}

func ensureAdminUser(ctx context.Context, pool *pgxpool.Pool, username, email, password string) error {
	if strings.TrimSpace(email) == "" || strings.TrimSpace(password) == "" {
		return nil
	}

	var id int64
	err := pool.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&id)
	if err == nil {
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx, `
    INSERT INTO users (username, email, password_hash, role)
    VALUES ($1, $2, $3, $4)
    ON CONFLICT (username) DO NOTHING
  `, username, email, hash, auth.RoleAdmin)
	return err
}

func ensureSampleEmployees(ctx context.Context, pool *pgxpool.Pool) error {
	samples := []struct {
		code, first, last, email, phone, department, position, salary, hireDate string
	}{
		{"EMP001", "John", "Doe", "john.doe@company.com", "+1234567890", "Engineering", "Software Developer", "75000.00", "2023-01-15"},
		{"EMP002", "Jane", "Smith", "jane.smith@company.com", "+1234567891", "Marketing", "Marketing Manager", "65000.00", "2023-02-01"},
		{"EMP003", "Mike", "Johnson", "mike.johnson@company.com", "+1234567892", "HR", "HR Specialist", "55000.00", "2023-03-10"},
	}

	for _, sample := range samples {
		_, err := pool.Exec(ctx, `
      INSERT INTO employees (employee_code, first_name, last_name, email, phone, department, position, salary, hire_date)
      VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
      ON CONFLICT (employee_code) DO NOTHING
    `, sample.code, sample.first, sample.last, sample.email, sample.phone, sample.department, sample.position, sample.salary, sample.hireDate)
		if err != nil {
			return err
		}
	}
	return nil
}
