// Package main provides a CLI tool for creating the schema and seeding a
// demo employee population.
package main

import (
	"context"
	"fmt"
	"os"

	"audiens/internal/core/id"
	"audiens/internal/infrastructure/storage/postgres"
	"audiens/pkg/logger"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dbURL))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	if err := createSchema(ctx, pool); err != nil {
		log.Fatalw("failed to create schema", "error", err)
	}
	log.Info("schema ready")

	if os.Getenv("SEED_DEMO_DATA") == "true" {
		n, err := seedEmployees(ctx, pool)
		if err != nil {
			log.Fatalw("failed to seed employees", "error", err)
		}
		log.Infow("demo employees seeded", "count", n)
	}

	log.Info("seeding completed successfully")
}

func createSchema(ctx context.Context, pool *postgres.Pool) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS target_groups (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			payload JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS target_group_audit (
			id UUID PRIMARY KEY,
			group_id UUID NOT NULL,
			action TEXT NOT NULL,
			payload JSONB,
			payload_zstd BYTEA,
			compression_algo TEXT NOT NULL DEFAULT 'none',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS employees (
			id UUID PRIMARY KEY,
			full_name TEXT NOT NULL,
			functional_area TEXT NOT NULL DEFAULT '',
			department TEXT NOT NULL DEFAULT '',
			project TEXT NOT NULL DEFAULT '',
			division TEXT NOT NULL DEFAULT '',
			sub_division TEXT NOT NULL DEFAULT '',
			position TEXT NOT NULL DEFAULT '',
			position_group TEXT NOT NULL DEFAULT '',
			managerial_level TEXT NOT NULL DEFAULT '',
			residential_area TEXT NOT NULL DEFAULT '',
			gender TEXT NOT NULL DEFAULT '',
			role TEXT NOT NULL DEFAULT '',
			age INT NOT NULL DEFAULT 0,
			tenure_years DOUBLE PRECISION NOT NULL DEFAULT 0
		)`,
	}
	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("exec schema statement: %w", err)
		}
	}
	return nil
}

type demoEmployee struct {
	name       string
	area       string
	department string
	project    string
	position   string
	level      string
	gender     string
	role       string
	age        int
	tenure     float64
}

func seedEmployees(ctx context.Context, pool *postgres.Pool) (int, error) {
	demo := []demoEmployee{
		{"Aysel Mammadova", "Technology", "Engineering", "Atlas", "Senior Engineer", "Specialist", "Female", "Employee", 31, 4.5},
		{"Rashad Aliyev", "Technology", "Engineering", "Atlas", "Engineer", "Specialist", "Male", "Employee", 26, 1.2},
		{"Leyla Hasanova", "Sales", "Retail Sales", "Horizon", "Account Manager", "Manager", "Female", "Manager", 38, 9.0},
		{"Tural Guliyev", "Operations", "Logistics", "Horizon", "Coordinator", "Specialist", "Male", "Employee", 29, 3.0},
		{"Nigar Huseynova", "Human Resources", "Talent", "Atlas", "HR Partner", "Manager", "Female", "Manager", 41, 12.5},
		{"Elvin Ismayilov", "Technology", "Data", "Beacon", "Analyst", "Specialist", "Male", "Employee", 24, 0.5},
		{"Gunel Karimova", "Sales", "Corporate Sales", "Beacon", "Director", "Executive", "Female", "Admin", 47, 15.0},
		{"Kamran Safarov", "Operations", "Facilities", "Atlas", "Technician", "Specialist", "Male", "Employee", 33, 6.8},
	}

	for _, e := range demo {
		_, err := pool.Exec(ctx, `
			INSERT INTO employees (
				id, full_name, functional_area, department, project,
				division, sub_division, position, position_group,
				managerial_level, residential_area, gender, role, age, tenure_years
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
			ON CONFLICT (id) DO NOTHING`,
			id.New(), e.name, e.area, e.department, e.project,
			e.area, e.department, e.position, e.level,
			e.level, "Baku", e.gender, e.role, e.age, e.tenure,
		)
		if err != nil {
			return 0, fmt.Errorf("insert employee %s: %w", e.name, err)
		}
	}
	return len(demo), nil
}
