package app

import (
	"context"
	"strings"
	"time"

	"scholarhub/internal/common"
	"scholarhub/internal/domain/profile"
	"scholarhub/internal/domain/scholarship"
	"scholarhub/internal/eligibility"
)

type ScholarshipService struct {
	repo     scholarship.Repository
	profiles profile.Repository
}

func NewScholarshipService(repo scholarship.Repository, profiles profile.Repository) *ScholarshipService {
	return &ScholarshipService{repo: repo, profiles: profiles}
}

func (s *ScholarshipService) Create(ctx context.Context, sch scholarship.Scholarship) (*scholarship.Scholarship, error) {
	if err := validateScholarship(sch); err != nil {
		return nil, err
	}
	if sch.Status == "" {
		sch.Status = scholarship.StatusActive
	}
	if sch.Criteria.Gender == "" {
		sch.Criteria.Gender = "All"
	}
	return s.repo.Create(ctx, sch)
}

func (s *ScholarshipService) Update(ctx context.Context, sch scholarship.Scholarship) (*scholarship.Scholarship, error) {
	current, err := s.repo.GetByID(ctx, sch.ID)
	if err != nil {
		return nil, err
	}
	if current.ProviderID != sch.ProviderID {
		return nil, common.NewError(common.CodeForbidden, "scholarship belongs to another provider", nil)
	}
	if err := validateScholarship(sch); err != nil {
		return nil, err
	}
	if sch.Status == "" {
		sch.Status = current.Status
	}
	return s.repo.Update(ctx, sch)
}

func (s *ScholarshipService) Get(ctx context.Context, id common.UUID) (*scholarship.Scholarship, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ScholarshipService) ListActive(ctx context.Context, limit, offset int) ([]scholarship.Scholarship, error) {
	return s.repo.ListActive(ctx, limit, offset)
}

func (s *ScholarshipService) ListByProvider(ctx context.Context, providerID common.UUID) ([]scholarship.Scholarship, error) {
	return s.repo.ListByProvider(ctx, providerID)
}

type EligibilityCheck struct {
	Eligible bool     `json:"eligible"`
	Reasons  []string `json:"reasons"`
	Score    int      `json:"score"`
}

// CheckEligibility gives a student the full verdict plus the score they would
// receive if they applied right now. Purely advisory; nothing is persisted.
func (s *ScholarshipService) CheckEligibility(ctx context.Context, scholarshipID, studentID common.UUID) (*EligibilityCheck, error) {
	sch, err := s.repo.GetByID(ctx, scholarshipID)
	if err != nil {
		return nil, err
	}
	var prof profile.StudentProfile
	if p, err := s.profiles.GetByUserID(ctx, studentID); err == nil {
		prof = *p
	} else if !common.Is(err, common.CodeNotFound) {
		return nil, err
	}
	result := eligibility.Evaluate(prof, sch.Criteria)
	return &EligibilityCheck{
		Eligible: result.Eligible,
		Reasons:  result.Reasons,
		Score:    eligibility.Score(prof, sch.Criteria),
	}, nil
}

func validateScholarship(sch scholarship.Scholarship) error {
	fields := map[string]string{}
	if strings.TrimSpace(sch.Title) == "" {
		fields["title"] = "title is required"
	}
	if sch.Amount <= 0 {
		fields["amount"] = "amount must be greater than zero"
	}
	if sch.Deadline.IsZero() {
		fields["deadline"] = "deadline is required"
	} else if sch.Deadline.Before(time.Now().UTC()) && sch.Status != scholarship.StatusExpired {
		fields["deadline"] = "deadline must be in the future"
	}
	if sch.Criteria.MinGPA < 0 || sch.Criteria.MinGPA > 4.0 {
		fields["min_gpa"] = "min_gpa must be between 0 and 4"
	}
	if len(fields) > 0 {
		return common.NewValidationError("invalid scholarship", fields)
	}
	return nil
}
