package notification

import (
	"context"
	"time"

	"scholarhub/internal/common"
)

type Category string

const (
	CategorySuccess           Category = "success"
	CategoryAlert             Category = "alert"
	CategoryApplicationUpdate Category = "application_update"
	CategoryInfo              Category = "info"
)

type Notification struct {
	ID          common.UUID `json:"id"`
	RecipientID common.UUID `json:"recipient_id"`
	Title       string      `json:"title"`
	Message     string      `json:"message"`
	Category    Category    `json:"category"`
	RelatedLink string      `json:"related_link,omitempty"`
	Read        bool        `json:"read"`
	CreatedAt   time.Time   `json:"created_at"`
}

// Request is what the lifecycle and verification services hand to the sink.
type Request struct {
	RecipientID common.UUID
	Title       string
	Message     string
	Category    Category
	RelatedLink string
	AlsoEmail   bool
}

// Sink delivers notifications best-effort. Implementations must never let a
// delivery failure reach the caller; the triggering operation has already
// committed by the time the sink runs.
type Sink interface {
	Notify(ctx context.Context, req Request)
}

type Repository interface {
	Create(ctx context.Context, n Notification) (*Notification, error)
	ListByRecipient(ctx context.Context, recipientID common.UUID, limit, offset int) ([]Notification, error)
	MarkRead(ctx context.Context, id, recipientID common.UUID) error
	MarkAllRead(ctx context.Context, recipientID common.UUID) error
}
