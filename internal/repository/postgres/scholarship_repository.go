package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"scholarhub/internal/common"
	"scholarhub/internal/domain/scholarship"
)

type ScholarshipRepository struct {
	db *sql.DB
}

func NewScholarshipRepository(db *sql.DB) *ScholarshipRepository {
	return &ScholarshipRepository{db: db}
}

const scholarshipColumns = `id, provider_id, title, description, amount, deadline, status, min_gpa, max_income, min_age, max_age, allowed_courses, gender, required_documents, created_at, updated_at`

func (r *ScholarshipRepository) Create(ctx context.Context, s scholarship.Scholarship) (*scholarship.Scholarship, error) {
	s.ID = common.NewUUID()
	now := time.Now().UTC()
	s.CreatedAt = now
	s.UpdatedAt = now
	_, err := r.db.ExecContext(ctx, `INSERT INTO scholarships (id, provider_id, title, description, amount, deadline, status, min_gpa, max_income, min_age, max_age, allowed_courses, gender, required_documents, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		s.ID, s.ProviderID, s.Title, s.Description, s.Amount, s.Deadline, s.Status,
		s.Criteria.MinGPA, s.Criteria.MaxIncome, s.Criteria.MinAge, s.Criteria.MaxAge,
		pq.Array(stringsOrEmpty(s.Criteria.AllowedCourses)), s.Criteria.Gender,
		pq.Array(stringsOrEmpty(s.RequiredDocuments)), s.CreatedAt, s.UpdatedAt)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to create scholarship", err)
	}
	return &s, nil
}

func (r *ScholarshipRepository) Update(ctx context.Context, s scholarship.Scholarship) (*scholarship.Scholarship, error) {
	s.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx, `UPDATE scholarships SET title = $1, description = $2, amount = $3, deadline = $4, status = $5, min_gpa = $6, max_income = $7, min_age = $8, max_age = $9, allowed_courses = $10, gender = $11, required_documents = $12, updated_at = $13
		WHERE id = $14 AND provider_id = $15`,
		s.Title, s.Description, s.Amount, s.Deadline, s.Status,
		s.Criteria.MinGPA, s.Criteria.MaxIncome, s.Criteria.MinAge, s.Criteria.MaxAge,
		pq.Array(stringsOrEmpty(s.Criteria.AllowedCourses)), s.Criteria.Gender,
		pq.Array(stringsOrEmpty(s.RequiredDocuments)), s.UpdatedAt, s.ID, s.ProviderID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update scholarship", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return nil, common.NewError(common.CodeNotFound, "scholarship not found", nil)
	}
	return r.GetByID(ctx, s.ID)
}

func (r *ScholarshipRepository) GetByID(ctx context.Context, id common.UUID) (*scholarship.Scholarship, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+scholarshipColumns+` FROM scholarships WHERE id = $1`, id)
	return scanScholarship(row)
}

func (r *ScholarshipRepository) ListActive(ctx context.Context, limit, offset int) ([]scholarship.Scholarship, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+scholarshipColumns+` FROM scholarships
		WHERE status = $1 AND deadline > NOW()
		ORDER BY deadline ASC LIMIT $2 OFFSET $3`, scholarship.StatusActive, limit, offset)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list scholarships", err)
	}
	defer rows.Close()
	return collectScholarships(rows)
}

func (r *ScholarshipRepository) ListByProvider(ctx context.Context, providerID common.UUID) ([]scholarship.Scholarship, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+scholarshipColumns+` FROM scholarships
		WHERE provider_id = $1 ORDER BY created_at DESC`, providerID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list provider scholarships", err)
	}
	defer rows.Close()
	return collectScholarships(rows)
}

func scanScholarship(row rowScanner) (*scholarship.Scholarship, error) {
	var s scholarship.Scholarship
	if err := row.Scan(&s.ID, &s.ProviderID, &s.Title, &s.Description, &s.Amount, &s.Deadline, &s.Status,
		&s.Criteria.MinGPA, &s.Criteria.MaxIncome, &s.Criteria.MinAge, &s.Criteria.MaxAge,
		pq.Array(&s.Criteria.AllowedCourses), &s.Criteria.Gender,
		pq.Array(&s.RequiredDocuments), &s.CreatedAt, &s.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "scholarship not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load scholarship", err)
	}
	return &s, nil
}

func collectScholarships(rows *sql.Rows) ([]scholarship.Scholarship, error) {
	var items []scholarship.Scholarship
	for rows.Next() {
		s, err := scanScholarship(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *s)
	}
	return items, nil
}

func stringsOrEmpty(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
