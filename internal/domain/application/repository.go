package application

import (
	"context"

	"scholarhub/internal/common"
)

type Repository interface {
	// Create persists a new application together with its initial timeline
	// entries. The (student, scholarship) uniqueness constraint is enforced
	// here; a duplicate returns a conflict error.
	Create(ctx context.Context, app Application) (*Application, error)
	GetByID(ctx context.Context, id common.UUID) (*Application, error)
	FindByStudentAndScholarship(ctx context.Context, studentID, scholarshipID common.UUID) (*Application, error)
	ListByStudent(ctx context.Context, studentID common.UUID) ([]Application, error)
	ListByScholarship(ctx context.Context, scholarshipID common.UUID) ([]Application, error)
	ListByProvider(ctx context.Context, providerID common.UUID) ([]Application, error)
	ListAll(ctx context.Context, limit, offset int) ([]Application, error)
	// SetStatusWithTimeline applies the status change and the audit entry as a
	// single atomic unit.
	SetStatusWithTimeline(ctx context.Context, id common.UUID, status Status, entry TimelineEntry) (*Application, error)
	// SetStatusScoreWithTimeline is SetStatusWithTimeline plus the one-time
	// score write performed at submission.
	SetStatusScoreWithTimeline(ctx context.Context, id common.UUID, status Status, score int, entry TimelineEntry) (*Application, error)
	AppendTimeline(ctx context.Context, id common.UUID, entry TimelineEntry) (*Application, error)
	UpdateAnswers(ctx context.Context, id common.UUID, answers []CustomAnswer) (*Application, error)
	AttachDocument(ctx context.Context, id common.UUID, doc SubmittedDocument) (*Application, error)
}
