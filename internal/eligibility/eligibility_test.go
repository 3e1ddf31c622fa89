package eligibility

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scholarhub/internal/domain/profile"
	"scholarhub/internal/domain/scholarship"
)

func floatPtr(v float64) *float64 {
	return &v
}

func TestEvaluateEligibleProfile(t *testing.T) {
	p := profile.StudentProfile{GPA: 3.8, AnnualIncome: floatPtr(45000), Course: "Computer Science"}
	c := scholarship.Criteria{MinGPA: 3.5, MaxIncome: floatPtr(80000), AllowedCourses: []string{"Computer Science", "Engineering"}}

	result := Evaluate(p, c)

	assert.True(t, result.Eligible)
	assert.Empty(t, result.Reasons)
}

func TestEvaluateGPABelowMinimum(t *testing.T) {
	p := profile.StudentProfile{GPA: 3.8, AnnualIncome: floatPtr(45000), Course: "Computer Science"}
	c := scholarship.Criteria{MinGPA: 3.9}

	result := Evaluate(p, c)

	assert.False(t, result.Eligible)
	require.Len(t, result.Reasons, 1)
	assert.Equal(t, "GPA 3.8 is below minimum requirement of 3.9", result.Reasons[0])
}

func TestEvaluateMissingIncomeFailsStrict(t *testing.T) {
	p := profile.StudentProfile{GPA: 4.0, Course: "Computer Science"}
	c := scholarship.Criteria{MaxIncome: floatPtr(50000), AllowedCourses: []string{"Computer Science"}}

	result := Evaluate(p, c)

	assert.False(t, result.Eligible)
	require.Len(t, result.Reasons, 1)
	assert.Equal(t, "Annual income information is missing from your profile", result.Reasons[0])
}

func TestEvaluateIncomeAboveCeiling(t *testing.T) {
	p := profile.StudentProfile{GPA: 3.5, AnnualIncome: floatPtr(90000)}
	c := scholarship.Criteria{MaxIncome: floatPtr(80000)}

	result := Evaluate(p, c)

	assert.False(t, result.Eligible)
	require.Len(t, result.Reasons, 1)
	assert.Contains(t, result.Reasons[0], "exceeds maximum limit")
}

func TestEvaluateNoIncomeCheckWithoutCeiling(t *testing.T) {
	p := profile.StudentProfile{GPA: 3.5}
	c := scholarship.Criteria{}

	result := Evaluate(p, c)

	assert.True(t, result.Eligible)
}

func TestEvaluateCourseMatchingIsExact(t *testing.T) {
	c := scholarship.Criteria{AllowedCourses: []string{"Computer Science"}}

	mismatch := Evaluate(profile.StudentProfile{Course: "computer science"}, c)
	assert.False(t, mismatch.Eligible)

	match := Evaluate(profile.StudentProfile{Course: "Computer Science"}, c)
	assert.True(t, match.Eligible)
}

func TestEvaluateMissingCourseReportsNA(t *testing.T) {
	c := scholarship.Criteria{AllowedCourses: []string{"Engineering", "Medicine"}}

	result := Evaluate(profile.StudentProfile{}, c)

	assert.False(t, result.Eligible)
	require.Len(t, result.Reasons, 1)
	assert.Equal(t, "Your course 'N/A' is not in the allowed list: Engineering, Medicine", result.Reasons[0])
}

func TestEvaluateAllChecksReportedIndependently(t *testing.T) {
	p := profile.StudentProfile{GPA: 2.0, AnnualIncome: floatPtr(120000), Course: "History"}
	c := scholarship.Criteria{MinGPA: 3.0, MaxIncome: floatPtr(50000), AllowedCourses: []string{"Physics"}}

	result := Evaluate(p, c)

	assert.False(t, result.Eligible)
	assert.Len(t, result.Reasons, 3, "every failing rule must contribute a reason")
}

func TestEvaluateDeterministic(t *testing.T) {
	p := profile.StudentProfile{GPA: 3.1, AnnualIncome: floatPtr(42000), Course: "Law"}
	c := scholarship.Criteria{MinGPA: 3.5, MaxIncome: floatPtr(30000), AllowedCourses: []string{"Medicine"}}

	first := Evaluate(p, c)
	second := Evaluate(p, c)

	assert.Equal(t, first, second)
}

func TestScoreScenario(t *testing.T) {
	p := profile.StudentProfile{GPA: 3.8, AnnualIncome: floatPtr(45000), Course: "Computer Science"}
	c := scholarship.Criteria{MinGPA: 3.5, MaxIncome: floatPtr(80000)}

	// round(3.8/4*60 + (80000-45000)/80000*40) = round(57 + 17.5) = 75
	assert.Equal(t, 75, Score(p, c))
}

func TestScoreDefaultCeiling(t *testing.T) {
	p := profile.StudentProfile{GPA: 4.0, AnnualIncome: floatPtr(50000)}

	// merit 60 + (100000-50000)/100000*40 = 60 + 20
	assert.Equal(t, 80, Score(p, scholarship.Criteria{}))
}

func TestScoreGPAClampedAtFour(t *testing.T) {
	over := profile.StudentProfile{GPA: 4.7, AnnualIncome: floatPtr(100000)}
	atMax := profile.StudentProfile{GPA: 4.0, AnnualIncome: floatPtr(100000)}

	assert.Equal(t, Score(atMax, scholarship.Criteria{}), Score(over, scholarship.Criteria{}))
	assert.Equal(t, 60, Score(over, scholarship.Criteria{}))
}

func TestScoreIncomeAtOrAboveCeilingContributesNothing(t *testing.T) {
	c := scholarship.Criteria{MaxIncome: floatPtr(60000)}

	at := profile.StudentProfile{GPA: 2.0, AnnualIncome: floatPtr(60000)}
	above := profile.StudentProfile{GPA: 2.0, AnnualIncome: floatPtr(95000)}

	assert.Equal(t, 30, Score(at, c))
	assert.Equal(t, 30, Score(above, c))
}

func TestScoreMissingIncomeTreatedAsZero(t *testing.T) {
	p := profile.StudentProfile{GPA: 0}

	// Full need contribution: income defaults to 0 under the default ceiling.
	assert.Equal(t, 40, Score(p, scholarship.Criteria{}))
}

func TestScoreBounds(t *testing.T) {
	incomes := []*float64{nil, floatPtr(0), floatPtr(25000), floatPtr(99999), floatPtr(100000), floatPtr(1e7)}
	ceilings := []*float64{nil, floatPtr(1), floatPtr(40000), floatPtr(100000)}

	for gpa := 0.0; gpa <= 5.0; gpa += 0.25 {
		for _, income := range incomes {
			for _, ceiling := range ceilings {
				p := profile.StudentProfile{GPA: gpa, AnnualIncome: income}
				c := scholarship.Criteria{MaxIncome: ceiling}
				got := Score(p, c)
				require.GreaterOrEqual(t, got, 0, "gpa=%v income=%v ceiling=%v", gpa, income, ceiling)
				require.LessOrEqual(t, got, 100, "gpa=%v income=%v ceiling=%v", gpa, income, ceiling)
			}
		}
	}
}

func TestScoreMonotonicInGPA(t *testing.T) {
	c := scholarship.Criteria{MaxIncome: floatPtr(70000)}
	income := floatPtr(30000)

	prev := -1
	for gpa := 0.0; gpa <= 4.0; gpa += 0.1 {
		got := Score(profile.StudentProfile{GPA: gpa, AnnualIncome: income}, c)
		require.GreaterOrEqual(t, got, prev, "score dropped at gpa=%v", gpa)
		prev = got
	}
}

func TestScoreMonotonicInIncome(t *testing.T) {
	c := scholarship.Criteria{MaxIncome: floatPtr(70000)}

	prev := -1
	for income := 69000.0; income >= 0; income -= 1000 {
		got := Score(profile.StudentProfile{GPA: 3.0, AnnualIncome: floatPtr(income)}, c)
		require.GreaterOrEqual(t, got, prev, "score dropped at income=%v", income)
		prev = got
	}
}
