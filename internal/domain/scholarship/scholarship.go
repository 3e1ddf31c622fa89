package scholarship

import (
	"time"

	"scholarhub/internal/common"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusExpired  Status = "expired"
)

// Criteria is the closed set of eligibility fields a provider can attach.
// MaxIncome nil or zero means no income ceiling is enforced.
type Criteria struct {
	MinGPA         float64  `json:"min_gpa"`
	MaxIncome      *float64 `json:"max_income,omitempty"`
	MinAge         *int     `json:"min_age,omitempty"`
	MaxAge         *int     `json:"max_age,omitempty"`
	AllowedCourses []string `json:"allowed_courses"`
	Gender         string   `json:"gender"`
}

type Scholarship struct {
	ID                common.UUID `json:"id"`
	ProviderID        common.UUID `json:"provider_id"`
	Title             string      `json:"title"`
	Description       string      `json:"description"`
	Amount            float64     `json:"amount"`
	Deadline          time.Time   `json:"deadline"`
	Status            Status      `json:"status"`
	Criteria          Criteria    `json:"criteria"`
	RequiredDocuments []string    `json:"required_documents"`
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`
}
