package app

import (
	"context"
	"testing"
	"time"

	"scholarhub/internal/common"
	"scholarhub/internal/domain/profile"
	"scholarhub/internal/domain/scholarship"
)

func TestScholarshipServiceCreate_Validation(t *testing.T) {
	service := NewScholarshipService(newFakeScholarshipRepo(), newFakeProfileRepo())

	_, err := service.Create(context.Background(), scholarship.Scholarship{
		ProviderID: common.NewUUID(),
		Title:      "  ",
		Amount:     0,
	})
	verr, ok := err.(*common.Error)
	if !ok || verr.Code != common.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	for _, field := range []string{"title", "amount", "deadline"} {
		if _, present := verr.Details[field]; !present {
			t.Fatalf("missing validation detail for %s: %+v", field, verr.Details)
		}
	}

	created, err := service.Create(context.Background(), scholarship.Scholarship{
		ProviderID: common.NewUUID(),
		Title:      "Rural Talent Fund",
		Amount:     2500,
		Deadline:   time.Now().Add(60 * 24 * time.Hour),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Status != scholarship.StatusActive {
		t.Fatalf("expected active default, got %s", created.Status)
	}
	if created.Criteria.Gender != "All" {
		t.Fatalf("expected gender default All, got %q", created.Criteria.Gender)
	}
}

func TestScholarshipServiceUpdate_OwnershipEnforced(t *testing.T) {
	repo := newFakeScholarshipRepo()
	service := NewScholarshipService(repo, newFakeProfileRepo())
	providerID := common.NewUUID()

	created, err := service.Create(context.Background(), scholarship.Scholarship{
		ProviderID: providerID,
		Title:      "Arts Grant",
		Amount:     1000,
		Deadline:   time.Now().Add(30 * 24 * time.Hour),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	created.ProviderID = common.NewUUID()
	if _, err := service.Update(context.Background(), *created); !common.Is(err, common.CodeForbidden) {
		t.Fatalf("expected forbidden for foreign provider, got %v", err)
	}

	created.ProviderID = providerID
	created.Amount = 1500
	updated, err := service.Update(context.Background(), *created)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Amount != 1500 {
		t.Fatalf("amount not updated: %g", updated.Amount)
	}
}

func TestScholarshipServiceCheckEligibility(t *testing.T) {
	repo := newFakeScholarshipRepo()
	profiles := newFakeProfileRepo()
	service := NewScholarshipService(repo, profiles)

	created, err := service.Create(context.Background(), scholarship.Scholarship{
		ProviderID: common.NewUUID(),
		Title:      "STEM Excellence Grant",
		Amount:     5000,
		Deadline:   time.Now().Add(30 * 24 * time.Hour),
		Criteria:   scholarship.Criteria{MinGPA: 3.0, MaxIncome: floatPtr(80000)},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	studentID := common.NewUUID()
	if _, err := profiles.Upsert(context.Background(), profile.StudentProfile{
		UserID:       studentID,
		GPA:          3.8,
		AnnualIncome: floatPtr(45000),
	}); err != nil {
		t.Fatalf("seed profile: %v", err)
	}

	check, err := service.CheckEligibility(context.Background(), created.ID, studentID)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !check.Eligible || len(check.Reasons) != 0 {
		t.Fatalf("expected eligible with no reasons, got %+v", check)
	}
	if check.Score != 75 {
		t.Fatalf("expected score 75, got %d", check.Score)
	}

	// No profile at all: the check degrades to reasons, never an error.
	check, err = service.CheckEligibility(context.Background(), created.ID, common.NewUUID())
	if err != nil {
		t.Fatalf("check without profile: %v", err)
	}
	if check.Eligible {
		t.Fatalf("expected ineligible without a profile")
	}
	if len(check.Reasons) == 0 {
		t.Fatalf("expected reasons for the missing profile")
	}
}
