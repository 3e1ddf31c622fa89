// Package eligibility holds the pure evaluation and ranking rules applied to
// an applicant profile against a scholarship's criteria. Nothing here touches
// storage or the clock.
package eligibility

import (
	"fmt"
	"math"
	"strings"

	"scholarhub/internal/domain/profile"
	"scholarhub/internal/domain/scholarship"
)

const (
	meritWeight = 60.0
	needWeight  = 40.0
	maxGPA      = 4.0
	// defaultIncomeCeiling anchors the need component when a scholarship sets
	// no income ceiling of its own.
	defaultIncomeCeiling = 100000.0
)

type Result struct {
	Eligible bool     `json:"eligible"`
	Reasons  []string `json:"reasons"`
}

// Evaluate runs every criteria check independently so a caller can surface all
// gaps at once; failing one rule does not short-circuit the rest.
func Evaluate(p profile.StudentProfile, c scholarship.Criteria) Result {
	reasons := []string{}

	gpa := p.GPA
	if gpa < c.MinGPA {
		reasons = append(reasons, fmt.Sprintf("GPA %g is below minimum requirement of %g", gpa, c.MinGPA))
	}

	// Income is only checked when the scholarship sets a positive ceiling.
	// Missing income data fails strict: need-based criteria require the
	// applicant to disclose income.
	if c.MaxIncome != nil && *c.MaxIncome > 0 {
		if p.AnnualIncome == nil {
			reasons = append(reasons, "Annual income information is missing from your profile")
		} else if *p.AnnualIncome > *c.MaxIncome {
			reasons = append(reasons, fmt.Sprintf("Annual income $%g exceeds maximum limit of $%g", *p.AnnualIncome, *c.MaxIncome))
		}
	}

	if len(c.AllowedCourses) > 0 {
		if p.Course == "" || !containsCourse(c.AllowedCourses, p.Course) {
			course := p.Course
			if course == "" {
				course = "N/A"
			}
			reasons = append(reasons, fmt.Sprintf("Your course '%s' is not in the allowed list: %s", course, strings.Join(c.AllowedCourses, ", ")))
		}
	}

	return Result{Eligible: len(reasons) == 0, Reasons: reasons}
}

// Score ranks an applicant in [0, 100]: merit (GPA, weight 60) plus need
// (income headroom under the ceiling, weight 40). It deliberately does not
// gate on eligibility; ranking and gating are separate concerns.
func Score(p profile.StudentProfile, c scholarship.Criteria) int {
	score := 0.0

	merit := math.Min(p.GPA/maxGPA, 1) * meritWeight
	score += merit

	ceiling := defaultIncomeCeiling
	if c.MaxIncome != nil && *c.MaxIncome > 0 {
		ceiling = *c.MaxIncome
	}
	income := 0.0
	if p.AnnualIncome != nil {
		income = *p.AnnualIncome
	}
	if income < ceiling {
		needRatio := math.Max(0, (ceiling-income)/ceiling)
		score += needRatio * needWeight
	}

	return int(math.Round(score))
}

// Course matching is deliberately exact and case-sensitive, consistent with
// how scholarship listings are filtered.
func containsCourse(allowed []string, course string) bool {
	for _, c := range allowed {
		if c == course {
			return true
		}
	}
	return false
}
