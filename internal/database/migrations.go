package database

import (
	"database/sql"
	"fmt"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS student_profiles (
		user_id UUID PRIMARY KEY REFERENCES users(id),
		institution TEXT NOT NULL DEFAULT '',
		course TEXT NOT NULL DEFAULT '',
		gpa DOUBLE PRECISION NOT NULL DEFAULT 0,
		year_of_study INT NOT NULL DEFAULT 0,
		annual_income DOUBLE PRECISION,
		currency TEXT NOT NULL DEFAULT 'USD',
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS scholarships (
		id UUID PRIMARY KEY,
		provider_id UUID NOT NULL REFERENCES users(id),
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		amount DOUBLE PRECISION NOT NULL,
		deadline TIMESTAMPTZ NOT NULL,
		status TEXT NOT NULL,
		min_gpa DOUBLE PRECISION NOT NULL DEFAULT 0,
		max_income DOUBLE PRECISION,
		min_age INT,
		max_age INT,
		allowed_courses TEXT[] NOT NULL DEFAULT '{}',
		gender TEXT NOT NULL DEFAULT 'All',
		required_documents TEXT[] NOT NULL DEFAULT '{}',
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS applications (
		id UUID PRIMARY KEY,
		student_id UUID NOT NULL REFERENCES users(id),
		scholarship_id UUID NOT NULL REFERENCES scholarships(id),
		status TEXT NOT NULL,
		score INT NOT NULL DEFAULT 0,
		custom_answers JSONB NOT NULL DEFAULT '[]',
		reviewer_notes TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL,
		CONSTRAINT applications_student_scholarship_key UNIQUE (student_id, scholarship_id)
	)`,
	`CREATE INDEX IF NOT EXISTS applications_score_idx ON applications (score DESC)`,
	`CREATE TABLE IF NOT EXISTS application_timeline (
		id BIGSERIAL PRIMARY KEY,
		application_id UUID NOT NULL REFERENCES applications(id),
		status TEXT NOT NULL,
		comment TEXT NOT NULL DEFAULT '',
		updated_by UUID NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS application_timeline_app_idx ON application_timeline (application_id, id)`,
	`CREATE TABLE IF NOT EXISTS documents (
		id UUID PRIMARY KEY,
		owner_id UUID NOT NULL REFERENCES users(id),
		name TEXT NOT NULL,
		type TEXT NOT NULL,
		url TEXT NOT NULL,
		mime_type TEXT NOT NULL DEFAULT '',
		file_size BIGINT NOT NULL DEFAULT 0,
		status TEXT NOT NULL,
		verification_comments TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS application_documents (
		id BIGSERIAL PRIMARY KEY,
		application_id UUID NOT NULL REFERENCES applications(id),
		document_type TEXT NOT NULL,
		document_id UUID REFERENCES documents(id),
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS notifications (
		id UUID PRIMARY KEY,
		recipient_id UUID NOT NULL REFERENCES users(id),
		title TEXT NOT NULL,
		message TEXT NOT NULL,
		category TEXT NOT NULL,
		related_link TEXT NOT NULL DEFAULT '',
		read BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS notifications_recipient_idx ON notifications (recipient_id, created_at DESC)`,
}

// Migrate applies the schema. Statements are idempotent so the runner stays
// trivial; a versioned migration tool is not warranted at this size.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d failed: %w", i, err)
		}
	}
	return nil
}
