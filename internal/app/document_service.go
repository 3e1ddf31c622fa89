package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"scholarhub/internal/common"
	"scholarhub/internal/domain/document"
	"scholarhub/internal/domain/notification"
	"scholarhub/internal/domain/user"
)

type DocumentService struct {
	repo     document.Repository
	notifier notification.Sink
}

func NewDocumentService(repo document.Repository, notifier notification.Sink) *DocumentService {
	return &DocumentService{repo: repo, notifier: notifier}
}

type DocumentUpload struct {
	Name     string
	Type     document.Type
	URL      string
	MimeType string
	FileSize int64
}

// Upload records a document's metadata. Every new document starts pending;
// the file itself has already landed in blob storage by the time this runs.
func (s *DocumentService) Upload(ctx context.Context, ownerID common.UUID, upload DocumentUpload) (*document.Document, error) {
	if strings.TrimSpace(upload.Name) == "" {
		return nil, common.NewError(common.CodeValidation, "document name is required", nil)
	}
	if strings.TrimSpace(upload.URL) == "" {
		return nil, common.NewError(common.CodeValidation, "document url is required", nil)
	}
	if upload.Type == "" {
		upload.Type = document.TypeOther
	}
	if !document.IsKnownType(upload.Type) {
		return nil, common.NewValidationError("invalid document type", map[string]string{"type": "unknown document type"})
	}
	now := time.Now().UTC()
	return s.repo.Create(ctx, document.Document{
		OwnerID:   ownerID,
		Name:      upload.Name,
		Type:      upload.Type,
		URL:       upload.URL,
		MimeType:  upload.MimeType,
		FileSize:  upload.FileSize,
		Status:    document.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

// Review settles a document as verified or rejected. Reviewers may revisit an
// earlier decision; the document state machine has no terminal lock. A
// rejection must carry a reason, a verification clears any previous one.
// Deliberately, the owning application's status is never touched from here.
func (s *DocumentService) Review(ctx context.Context, documentID common.UUID, status document.Status, comments string, actorID common.UUID, actorRole user.Role) (*document.Document, error) {
	if actorRole != user.RoleAdmin && actorRole != user.RoleProvider {
		return nil, common.NewError(common.CodeForbidden, "only providers and admins may review documents", nil)
	}
	status = document.Status(strings.ToLower(strings.TrimSpace(string(status))))
	if status != document.StatusVerified && status != document.StatusRejected {
		return nil, common.NewValidationError("invalid status", map[string]string{"status": "status must be verified or rejected"})
	}
	if status == document.StatusRejected && strings.TrimSpace(comments) == "" {
		return nil, common.NewError(common.CodeValidation, "comments are required when rejecting a document", nil)
	}
	if status == document.StatusVerified {
		comments = ""
	}

	updated, err := s.repo.UpdateStatus(ctx, documentID, status, comments)
	if err != nil {
		return nil, err
	}

	title := "Document Verified"
	if status == document.StatusRejected {
		title = "Document Rejected"
	}
	message := fmt.Sprintf("Your document %q has been %s.", updated.Name, status)
	if status == document.StatusRejected {
		message += fmt.Sprintf(" Comment: %s", comments)
	}
	s.notifier.Notify(ctx, notification.Request{
		RecipientID: updated.OwnerID,
		Title:       title,
		Message:     message,
		Category:    notification.CategoryAlert,
		RelatedLink: "/documents/" + updated.ID.String(),
		AlsoEmail:   true,
	})
	return updated, nil
}

func (s *DocumentService) Get(ctx context.Context, id, actorID common.UUID, actorRole user.Role) (*document.Document, error) {
	doc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc.OwnerID != actorID && actorRole == user.RoleStudent {
		return nil, common.NewError(common.CodeForbidden, "document belongs to another user", nil)
	}
	return doc, nil
}

func (s *DocumentService) ListByOwner(ctx context.Context, ownerID common.UUID) ([]document.Document, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *DocumentService) Delete(ctx context.Context, id, actorID common.UUID, actorRole user.Role) error {
	doc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if doc.OwnerID != actorID && actorRole != user.RoleAdmin {
		return common.NewError(common.CodeForbidden, "document belongs to another user", nil)
	}
	return s.repo.Delete(ctx, id)
}
