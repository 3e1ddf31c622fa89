package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"scholarhub/internal/common"
	"scholarhub/internal/domain/profile"
)

type StudentProfileRepository struct {
	db *sql.DB
}

func NewStudentProfileRepository(db *sql.DB) *StudentProfileRepository {
	return &StudentProfileRepository{db: db}
}

func (r *StudentProfileRepository) Upsert(ctx context.Context, p profile.StudentProfile) (*profile.StudentProfile, error) {
	p.UpdatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `INSERT INTO student_profiles (user_id, institution, course, gpa, year_of_study, annual_income, currency, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id) DO UPDATE SET institution = $2, course = $3, gpa = $4, year_of_study = $5, annual_income = $6, currency = $7, updated_at = $8`,
		p.UserID, p.Institution, p.Course, p.GPA, p.YearOfStudy, p.AnnualIncome, p.Currency, p.UpdatedAt)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to save profile", err)
	}
	return &p, nil
}

func (r *StudentProfileRepository) GetByUserID(ctx context.Context, userID common.UUID) (*profile.StudentProfile, error) {
	row := r.db.QueryRowContext(ctx, `SELECT user_id, institution, course, gpa, year_of_study, annual_income, currency, updated_at FROM student_profiles WHERE user_id = $1`, userID)
	var p profile.StudentProfile
	if err := row.Scan(&p.UserID, &p.Institution, &p.Course, &p.GPA, &p.YearOfStudy, &p.AnnualIncome, &p.Currency, &p.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "profile not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load profile", err)
	}
	return &p, nil
}
