package profile

import (
	"context"
	"time"

	"scholarhub/internal/common"
)

// StudentProfile is the subset of account data the eligibility rules read.
// AnnualIncome stays a pointer: a missing income is not the same as zero income
// when a scholarship sets an income ceiling.
type StudentProfile struct {
	UserID       common.UUID `json:"user_id"`
	Institution  string      `json:"institution"`
	Course       string      `json:"course"`
	GPA          float64     `json:"gpa"`
	YearOfStudy  int         `json:"year_of_study"`
	AnnualIncome *float64    `json:"annual_income,omitempty"`
	Currency     string      `json:"currency"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

type Repository interface {
	Upsert(ctx context.Context, p StudentProfile) (*StudentProfile, error)
	GetByUserID(ctx context.Context, userID common.UUID) (*StudentProfile, error)
}
