package app

import (
	"context"

	"scholarhub/internal/common"
	"scholarhub/internal/domain/profile"
)

type ProfileService struct {
	profiles profile.Repository
}

func NewProfileService(profiles profile.Repository) *ProfileService {
	return &ProfileService{profiles: profiles}
}

func (s *ProfileService) UpsertStudent(ctx context.Context, p profile.StudentProfile) (*profile.StudentProfile, error) {
	fields := map[string]string{}
	if p.GPA < 0 || p.GPA > 4.0 {
		fields["gpa"] = "gpa must be between 0 and 4"
	}
	if p.AnnualIncome != nil && *p.AnnualIncome < 0 {
		fields["annual_income"] = "annual_income must not be negative"
	}
	if p.YearOfStudy < 0 {
		fields["year_of_study"] = "year_of_study must not be negative"
	}
	if len(fields) > 0 {
		return nil, common.NewValidationError("invalid profile", fields)
	}
	if p.Currency == "" {
		p.Currency = "USD"
	}
	return s.profiles.Upsert(ctx, p)
}

func (s *ProfileService) GetStudent(ctx context.Context, userID common.UUID) (*profile.StudentProfile, error) {
	return s.profiles.GetByUserID(ctx, userID)
}
