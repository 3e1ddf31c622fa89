package application

import (
	"strings"
	"time"

	"scholarhub/internal/common"
)

type Status string

const (
	StatusDraft       Status = "draft"
	StatusSubmitted   Status = "submitted"
	StatusUnderReview Status = "under_review"
	StatusInterview   Status = "interview"
	StatusApproved    Status = "approved"
	StatusRejected    Status = "rejected"
)

// TimelineEntry is one row of the append-only audit log. Entries are never
// edited or deleted after insertion.
type TimelineEntry struct {
	Status    Status      `json:"status"`
	Comment   string      `json:"comment"`
	UpdatedBy common.UUID `json:"updated_by"`
	Date      time.Time   `json:"date"`
}

type SubmittedDocument struct {
	DocumentType string      `json:"document_type"`
	DocumentID   common.UUID `json:"document_id,omitempty"`
}

type CustomAnswer struct {
	QuestionID string `json:"question_id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
}

type Application struct {
	ID            common.UUID `json:"id"`
	StudentID     common.UUID `json:"student_id"`
	ScholarshipID common.UUID `json:"scholarship_id"`
	Status        Status      `json:"status"`
	// Score is computed once when the application is submitted and never
	// recomputed, even if the profile changes afterwards.
	Score              int                 `json:"score"`
	CustomAnswers      []CustomAnswer      `json:"custom_answers"`
	SubmittedDocuments []SubmittedDocument `json:"submitted_documents"`
	Timeline           []TimelineEntry     `json:"timeline"`
	ReviewerNotes      string              `json:"reviewer_notes,omitempty"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`
}

// NormalizeStatus folds the synonyms seen in stored data and client payloads
// onto the canonical states.
func NormalizeStatus(status Status) Status {
	normalized := Status(strings.ToLower(strings.TrimSpace(string(status))))
	switch normalized {
	case "received":
		return StatusSubmitted
	case "review", "in_review":
		return StatusUnderReview
	}
	return normalized
}

func IsKnownStatus(status Status) bool {
	switch status {
	case StatusDraft, StatusSubmitted, StatusUnderReview, StatusInterview, StatusApproved, StatusRejected:
		return true
	default:
		return false
	}
}

func IsTerminal(status Status) bool {
	return status == StatusApproved || status == StatusRejected
}

// IsEditable reports whether the owning student may still change the
// application's content.
func IsEditable(status Status) bool {
	return status == StatusDraft || status == StatusSubmitted
}

// CanTransition is the single authority on legal status moves. Reviewers may
// skip intermediate states, but nothing leaves a terminal state and nothing
// moves backwards into draft.
func CanTransition(from, to Status) bool {
	switch from {
	case StatusDraft:
		return to == StatusSubmitted
	case StatusSubmitted:
		return to == StatusUnderReview || to == StatusInterview || to == StatusApproved || to == StatusRejected
	case StatusUnderReview:
		return to == StatusInterview || to == StatusApproved || to == StatusRejected
	case StatusInterview:
		return to == StatusApproved || to == StatusRejected
	default:
		return false
	}
}
