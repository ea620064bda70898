package database

import (
	"database/sql"
	"log"
)

// RunMigrations checks and applies necessary schema updates
func RunMigrations(db *sql.DB) error {
	log.Println("Running database migrations...")

	statements := []string{
		`CREATE TABLE IF NOT EXISTS teachers (
			id VARCHAR(16) PRIMARY KEY,
			display_name TEXT NOT NULL UNIQUE,
			level VARCHAR(20) NOT NULL,
			is_last_resort BOOLEAN NOT NULL DEFAULT false,
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS subjects (
			id VARCHAR(32) PRIMARY KEY,
			name TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS teacher_subjects (
			teacher_id VARCHAR(16) NOT NULL REFERENCES teachers(id),
			subject_id VARCHAR(32) NOT NULL REFERENCES subjects(id),
			PRIMARY KEY (teacher_id, subject_id)
		)`,
		`CREATE TABLE IF NOT EXISTS schedule_entries (
			teacher_id VARCHAR(16) NOT NULL REFERENCES teachers(id),
			day VARCHAR(3) NOT NULL,
			period INT NOT NULL,
			class_id VARCHAR(8) NOT NULL,
			subject_id VARCHAR(32) NOT NULL,
			PRIMARY KEY (teacher_id, day, period)
		)`,
		`CREATE TABLE IF NOT EXISTS terms (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name TEXT NOT NULL,
			start_date DATE NOT NULL,
			end_date DATE NOT NULL,
			is_current BOOLEAN NOT NULL DEFAULT false
		)`,
		`CREATE TABLE IF NOT EXISTS leave_requests (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			teacher_id VARCHAR(16) NOT NULL REFERENCES teachers(id),
			date DATE NOT NULL,
			periods INT[] NOT NULL DEFAULT '{}',
			reason TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS assignment_records (
			id UUID PRIMARY KEY,
			date DATE NOT NULL,
			absent_teacher_id VARCHAR(16) NOT NULL REFERENCES teachers(id),
			day VARCHAR(3) NOT NULL,
			period INT NOT NULL,
			class_id VARCHAR(8) NOT NULL,
			subject_id VARCHAR(32) NOT NULL,
			substitute_id VARCHAR(16),
			status VARCHAR(10) NOT NULL DEFAULT 'pending',
			reason TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_assignment_composite_key
			ON assignment_records (date, absent_teacher_id, day, period)`,
		`CREATE TABLE IF NOT EXISTS substitution_history (
			id UUID PRIMARY KEY,
			date DATE NOT NULL,
			absent_teacher_id VARCHAR(16) NOT NULL,
			day VARCHAR(3) NOT NULL,
			period INT NOT NULL,
			class_id VARCHAR(8) NOT NULL,
			subject_id VARCHAR(32) NOT NULL,
			substitute_id VARCHAR(16),
			finalized_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_history_substitute
			ON substitution_history (substitute_id)`,
		`CREATE TABLE IF NOT EXISTS operators (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			email TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			display_name TEXT NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			log.Printf("Failed to run migration: %v", err)
			return err
		}
	}

	log.Println("Database migrations completed successfully")
	return nil
}
