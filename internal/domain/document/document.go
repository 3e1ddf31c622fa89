package document

import (
	"time"

	"scholarhub/internal/common"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusVerified Status = "verified"
	StatusRejected Status = "rejected"
)

type Type string

const (
	TypeTranscript           Type = "Transcript"
	TypeIDProof              Type = "ID Proof"
	TypeIncomeCertificate    Type = "Income Certificate"
	TypeRecommendationLetter Type = "Recommendation Letter"
	TypeEssay                Type = "Essay"
	TypeOther                Type = "Other"
)

func IsKnownType(t Type) bool {
	switch t {
	case TypeTranscript, TypeIDProof, TypeIncomeCertificate, TypeRecommendationLetter, TypeEssay, TypeOther:
		return true
	default:
		return false
	}
}

type Document struct {
	ID      common.UUID `json:"id"`
	OwnerID common.UUID `json:"owner_id"`
	Name    string      `json:"name"`
	Type    Type        `json:"type"`
	// URL is the storage locator handed over by the upload layer; the blob
	// store itself is outside this service.
	URL                  string      `json:"url"`
	MimeType             string      `json:"mime_type"`
	FileSize             int64       `json:"file_size"`
	Status               Status      `json:"status"`
	VerificationComments string      `json:"verification_comments,omitempty"`
	CreatedAt            time.Time   `json:"created_at"`
	UpdatedAt            time.Time   `json:"updated_at"`
}
