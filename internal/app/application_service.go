package app

import (
	"context"
	"fmt"
	"time"

	"scholarhub/internal/common"
	"scholarhub/internal/domain/application"
	"scholarhub/internal/domain/document"
	"scholarhub/internal/domain/notification"
	"scholarhub/internal/domain/profile"
	"scholarhub/internal/domain/scholarship"
	"scholarhub/internal/domain/user"
	"scholarhub/internal/eligibility"
)

type ApplicationService struct {
	repo         application.Repository
	scholarships scholarship.Repository
	profiles     profile.Repository
	notifier     notification.Sink
}

func NewApplicationService(repo application.Repository, scholarships scholarship.Repository, profiles profile.Repository, notifier notification.Sink) *ApplicationService {
	return &ApplicationService{repo: repo, scholarships: scholarships, profiles: profiles, notifier: notifier}
}

// Submit creates a submitted application, or promotes the student's existing
// draft for the same scholarship. The ranking score is computed here, exactly
// once, from the profile as it stands at this moment.
func (s *ApplicationService) Submit(ctx context.Context, studentID, scholarshipID common.UUID, answers []application.CustomAnswer) (*application.Application, error) {
	sch, err := s.scholarships.GetByID(ctx, scholarshipID)
	if err != nil {
		return nil, err
	}
	if err := ensureOpen(sch); err != nil {
		return nil, err
	}

	score := eligibility.Score(s.profileOrEmpty(ctx, studentID), sch.Criteria)
	now := time.Now().UTC()

	existing, err := s.repo.FindByStudentAndScholarship(ctx, studentID, scholarshipID)
	if err == nil {
		if application.NormalizeStatus(existing.Status) != application.StatusDraft {
			return nil, common.NewError(common.CodeConflict, "you have already applied for this scholarship", nil)
		}
		entry := application.TimelineEntry{
			Status:    application.StatusSubmitted,
			Comment:   "Application submitted",
			UpdatedBy: studentID,
			Date:      now,
		}
		submitted, err := s.repo.SetStatusScoreWithTimeline(ctx, existing.ID, application.StatusSubmitted, score, entry)
		if err != nil {
			return nil, err
		}
		s.notifySubmitted(ctx, submitted, sch)
		return submitted, nil
	} else if !common.Is(err, common.CodeNotFound) {
		return nil, err
	}

	// The read above only gives a friendly error on the common path. The
	// unique (student, scholarship) index inside Create is what actually wins
	// the race between concurrent submissions.
	app := application.Application{
		StudentID:     studentID,
		ScholarshipID: scholarshipID,
		Status:        application.StatusSubmitted,
		Score:         score,
		CustomAnswers: answers,
		Timeline: []application.TimelineEntry{{
			Status:    application.StatusSubmitted,
			Comment:   "Application submitted",
			UpdatedBy: studentID,
			Date:      now,
		}},
	}
	created, err := s.repo.Create(ctx, app)
	if err != nil {
		return nil, err
	}
	s.notifySubmitted(ctx, created, sch)
	return created, nil
}

// CreateDraft stores an application the student is still working on. No score
// is computed for drafts; that happens on submission.
func (s *ApplicationService) CreateDraft(ctx context.Context, studentID, scholarshipID common.UUID, answers []application.CustomAnswer) (*application.Application, error) {
	sch, err := s.scholarships.GetByID(ctx, scholarshipID)
	if err != nil {
		return nil, err
	}
	if err := ensureOpen(sch); err != nil {
		return nil, err
	}
	if _, err := s.repo.FindByStudentAndScholarship(ctx, studentID, scholarshipID); err == nil {
		return nil, common.NewError(common.CodeConflict, "you have already applied for this scholarship", nil)
	} else if !common.Is(err, common.CodeNotFound) {
		return nil, err
	}
	app := application.Application{
		StudentID:     studentID,
		ScholarshipID: scholarshipID,
		Status:        application.StatusDraft,
		CustomAnswers: answers,
		Timeline: []application.TimelineEntry{{
			Status:    application.StatusDraft,
			Comment:   "Application draft created",
			UpdatedBy: studentID,
			Date:      time.Now().UTC(),
		}},
	}
	return s.repo.Create(ctx, app)
}

// Update lets the owning student edit applicant-editable content while the
// application has not yet entered review. Student, scholarship, score, status
// and timeline are untouchable through this path.
func (s *ApplicationService) Update(ctx context.Context, applicationID, studentID common.UUID, answers []application.CustomAnswer) (*application.Application, error) {
	app, err := s.repo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app.StudentID != studentID {
		return nil, common.NewError(common.CodeForbidden, "application belongs to another student", nil)
	}
	if !application.IsEditable(application.NormalizeStatus(app.Status)) {
		return nil, common.NewError(common.CodeForbidden, "cannot update application after it is under review", nil)
	}
	return s.repo.UpdateAnswers(ctx, applicationID, answers)
}

// UpdateStatus moves the application through the transition graph. Only an
// admin or the provider owning the referenced scholarship may call it; the
// audit entry and the status write are applied atomically by the repository.
func (s *ApplicationService) UpdateStatus(ctx context.Context, applicationID common.UUID, next application.Status, comment string, actorID common.UUID, actorRole user.Role) (*application.Application, error) {
	if actorRole != user.RoleAdmin && actorRole != user.RoleProvider {
		return nil, common.NewError(common.CodeForbidden, "only providers and admins may change application status", nil)
	}
	app, err := s.repo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	sch, err := s.scholarships.GetByID(ctx, app.ScholarshipID)
	if err != nil {
		return nil, err
	}
	if actorRole == user.RoleProvider && sch.ProviderID != actorID {
		return nil, common.NewError(common.CodeForbidden, "application belongs to another provider's scholarship", nil)
	}

	next = application.NormalizeStatus(next)
	if !application.IsKnownStatus(next) {
		return nil, common.NewValidationError("invalid status", map[string]string{"status": "status must be draft, submitted, under_review, interview, approved, or rejected"})
	}
	current := application.NormalizeStatus(app.Status)
	if application.IsTerminal(current) {
		return nil, common.NewError(common.CodeInvalidTransition, "application status is final", nil)
	}
	if !application.CanTransition(current, next) {
		return nil, common.NewError(common.CodeInvalidTransition, fmt.Sprintf("cannot move application from %s to %s", current, next), nil)
	}

	if comment == "" {
		comment = fmt.Sprintf("Status updated to %s", next)
	}
	entry := application.TimelineEntry{
		Status:    next,
		Comment:   comment,
		UpdatedBy: actorID,
		Date:      time.Now().UTC(),
	}
	updated, err := s.repo.SetStatusWithTimeline(ctx, applicationID, next, entry)
	if err != nil {
		return nil, err
	}
	s.notifier.Notify(ctx, notification.Request{
		RecipientID: updated.StudentID,
		Title:       "Application Status Updated",
		Message:     fmt.Sprintf("Your application status for %s has been updated to: %s", sch.Title, next),
		Category:    notification.CategoryApplicationUpdate,
		RelatedLink: "/applications/" + updated.ID.String(),
		AlsoEmail:   true,
	})
	return updated, nil
}

// AttachDocument records an uploaded document against the application. The
// scholarship's required-document list is deliberately not enforced here:
// documents may still be added while the application is editable, and
// completeness stays a reviewer judgment.
func (s *ApplicationService) AttachDocument(ctx context.Context, applicationID, studentID common.UUID, documentType document.Type, documentID common.UUID) (*application.Application, error) {
	app, err := s.repo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app.StudentID != studentID {
		return nil, common.NewError(common.CodeForbidden, "application belongs to another student", nil)
	}
	if !application.IsEditable(application.NormalizeStatus(app.Status)) {
		return nil, common.NewError(common.CodeForbidden, "cannot attach documents after the application is under review", nil)
	}
	if documentType == "" {
		documentType = document.TypeOther
	}
	if !document.IsKnownType(documentType) {
		return nil, common.NewValidationError("invalid document type", map[string]string{"document_type": "unknown document type"})
	}
	return s.repo.AttachDocument(ctx, applicationID, application.SubmittedDocument{
		DocumentType: string(documentType),
		DocumentID:   documentID,
	})
}

// AddComment appends a timeline entry repeating the current status. Comments
// remain possible after a terminal decision; the status itself does not move.
func (s *ApplicationService) AddComment(ctx context.Context, applicationID common.UUID, comment string, actorID common.UUID, actorRole user.Role) (*application.Application, error) {
	if comment == "" {
		return nil, common.NewError(common.CodeValidation, "comment is required", nil)
	}
	app, err := s.repo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeRead(ctx, app, actorID, actorRole); err != nil {
		return nil, err
	}
	entry := application.TimelineEntry{
		Status:    application.NormalizeStatus(app.Status),
		Comment:   comment,
		UpdatedBy: actorID,
		Date:      time.Now().UTC(),
	}
	return s.repo.AppendTimeline(ctx, applicationID, entry)
}

func (s *ApplicationService) Get(ctx context.Context, id, actorID common.UUID, actorRole user.Role) (*application.Application, error) {
	app, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeRead(ctx, app, actorID, actorRole); err != nil {
		return nil, err
	}
	if actorRole == user.RoleStudent {
		// Reviewer notes never reach the applicant.
		app.ReviewerNotes = ""
	}
	return app, nil
}

func (s *ApplicationService) ListByStudent(ctx context.Context, studentID common.UUID) ([]application.Application, error) {
	return s.repo.ListByStudent(ctx, studentID)
}

func (s *ApplicationService) ListByProvider(ctx context.Context, providerID common.UUID) ([]application.Application, error) {
	return s.repo.ListByProvider(ctx, providerID)
}

func (s *ApplicationService) ListAll(ctx context.Context, limit, offset int) ([]application.Application, error) {
	return s.repo.ListAll(ctx, limit, offset)
}

// ListByScholarship returns a scholarship's applications for its owner (or an
// admin), ordered by score for ranking.
func (s *ApplicationService) ListByScholarship(ctx context.Context, scholarshipID, actorID common.UUID, actorRole user.Role) ([]application.Application, error) {
	sch, err := s.scholarships.GetByID(ctx, scholarshipID)
	if err != nil {
		return nil, err
	}
	if actorRole != user.RoleAdmin && sch.ProviderID != actorID {
		return nil, common.NewError(common.CodeForbidden, "scholarship belongs to another provider", nil)
	}
	return s.repo.ListByScholarship(ctx, scholarshipID)
}

func (s *ApplicationService) authorizeRead(ctx context.Context, app *application.Application, actorID common.UUID, actorRole user.Role) error {
	if app.StudentID == actorID || actorRole == user.RoleAdmin {
		return nil
	}
	if actorRole == user.RoleProvider {
		sch, err := s.scholarships.GetByID(ctx, app.ScholarshipID)
		if err != nil {
			return err
		}
		if sch.ProviderID == actorID {
			return nil
		}
	}
	return common.NewError(common.CodeForbidden, "you do not have permission to view this application", nil)
}

func ensureOpen(sch *scholarship.Scholarship) error {
	if sch.Status != scholarship.StatusActive {
		return common.NewError(common.CodeValidation, "scholarship is not open for applications", nil)
	}
	if !sch.Deadline.IsZero() && sch.Deadline.Before(time.Now().UTC()) {
		return common.NewError(common.CodeValidation, "the application deadline has passed", nil)
	}
	return nil
}

func (s *ApplicationService) profileOrEmpty(ctx context.Context, studentID common.UUID) profile.StudentProfile {
	p, err := s.profiles.GetByUserID(ctx, studentID)
	if err != nil {
		return profile.StudentProfile{UserID: studentID}
	}
	return *p
}

func (s *ApplicationService) notifySubmitted(ctx context.Context, app *application.Application, sch *scholarship.Scholarship) {
	s.notifier.Notify(ctx, notification.Request{
		RecipientID: app.StudentID,
		Title:       "Application Submitted",
		Message:     fmt.Sprintf("Your application for %s has been successfully submitted.", sch.Title),
		Category:    notification.CategorySuccess,
		RelatedLink: "/applications/" + app.ID.String(),
		AlsoEmail:   true,
	})
}
