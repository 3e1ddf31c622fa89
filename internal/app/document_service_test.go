package app

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"scholarhub/internal/common"
	"scholarhub/internal/domain/document"
	"scholarhub/internal/domain/user"
)

type fakeDocumentRepo struct {
	mu   sync.Mutex
	byID map[common.UUID]*document.Document
}

func newFakeDocumentRepo() *fakeDocumentRepo {
	return &fakeDocumentRepo{byID: make(map[common.UUID]*document.Document)}
}

func (r *fakeDocumentRepo) Create(ctx context.Context, d document.Document) (*document.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d.ID = common.NewUUID()
	copy := d
	r.byID[d.ID] = &copy
	return &d, nil
}

func (r *fakeDocumentRepo) GetByID(ctx context.Context, id common.UUID) (*document.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d := r.byID[id]
	if d == nil {
		return nil, common.NewError(common.CodeNotFound, "document not found", nil)
	}
	copy := *d
	return &copy, nil
}

func (r *fakeDocumentRepo) ListByOwner(ctx context.Context, ownerID common.UUID) ([]document.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []document.Document
	for _, d := range r.byID {
		if d.OwnerID == ownerID {
			items = append(items, *d)
		}
	}
	return items, nil
}

func (r *fakeDocumentRepo) UpdateStatus(ctx context.Context, id common.UUID, status document.Status, comments string) (*document.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d := r.byID[id]
	if d == nil {
		return nil, common.NewError(common.CodeNotFound, "document not found", nil)
	}
	d.Status = status
	d.VerificationComments = comments
	d.UpdatedAt = time.Now().UTC()
	copy := *d
	return &copy, nil
}

func (r *fakeDocumentRepo) Delete(ctx context.Context, id common.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.byID[id] == nil {
		return common.NewError(common.CodeNotFound, "document not found", nil)
	}
	delete(r.byID, id)
	return nil
}

func newDocumentFixture() (*DocumentService, *fakeDocumentRepo, *fakeSink) {
	repo := newFakeDocumentRepo()
	sink := &fakeSink{}
	return NewDocumentService(repo, sink), repo, sink
}

func TestDocumentServiceUpload_StartsPending(t *testing.T) {
	service, _, _ := newDocumentFixture()
	ownerID := common.NewUUID()

	created, err := service.Upload(context.Background(), ownerID, DocumentUpload{
		Name: "transcript-2026.pdf",
		Type: document.TypeTranscript,
		URL:  "https://storage.local/docs/transcript-2026.pdf",
	})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if created.Status != document.StatusPending {
		t.Fatalf("expected pending, got %s", created.Status)
	}

	if _, err := service.Upload(context.Background(), ownerID, DocumentUpload{Name: " ", URL: "https://storage.local/x"}); !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected validation error for blank name, got %v", err)
	}
	if _, err := service.Upload(context.Background(), ownerID, DocumentUpload{Name: "x.pdf", URL: "https://storage.local/x", Type: document.Type("Diploma")}); !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected validation error for unknown type, got %v", err)
	}
}

func TestDocumentServiceReview_RejectRequiresComments(t *testing.T) {
	service, _, sink := newDocumentFixture()
	ownerID := common.NewUUID()
	created, err := service.Upload(context.Background(), ownerID, DocumentUpload{
		Name: "id-scan.png",
		Type: document.TypeIDProof,
		URL:  "https://storage.local/docs/id-scan.png",
	})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	reviewerID := common.NewUUID()

	_, err = service.Review(context.Background(), created.ID, document.StatusRejected, "  ", reviewerID, user.RoleAdmin)
	if !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected validation error without comments, got %v", err)
	}

	rejected, err := service.Review(context.Background(), created.ID, document.StatusRejected, "Scan is blurry, please re-upload", reviewerID, user.RoleAdmin)
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if rejected.Status != document.StatusRejected {
		t.Fatalf("expected rejected, got %s", rejected.Status)
	}
	if rejected.VerificationComments != "Scan is blurry, please re-upload" {
		t.Fatalf("comments not stored: %q", rejected.VerificationComments)
	}
	if sink.count() != 1 {
		t.Fatalf("expected one notification, got %d", sink.count())
	}
	req := sink.last()
	if req.Title != "Document Rejected" || !strings.Contains(req.Message, "Scan is blurry") {
		t.Fatalf("unexpected notification %+v", req)
	}
}

func TestDocumentServiceReview_ReverseDecisionClearsComments(t *testing.T) {
	service, _, sink := newDocumentFixture()
	ownerID := common.NewUUID()
	created, err := service.Upload(context.Background(), ownerID, DocumentUpload{
		Name: "income.pdf",
		Type: document.TypeIncomeCertificate,
		URL:  "https://storage.local/docs/income.pdf",
	})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	reviewerID := common.NewUUID()

	if _, err := service.Review(context.Background(), created.ID, document.StatusRejected, "Wrong tax year", reviewerID, user.RoleAdmin); err != nil {
		t.Fatalf("reject: %v", err)
	}
	verified, err := service.Review(context.Background(), created.ID, document.StatusVerified, "ignored", reviewerID, user.RoleAdmin)
	if err != nil {
		t.Fatalf("re-review: %v", err)
	}
	if verified.Status != document.StatusVerified {
		t.Fatalf("expected verified, got %s", verified.Status)
	}
	if verified.VerificationComments != "" {
		t.Fatalf("verification must clear comments, got %q", verified.VerificationComments)
	}
	if sink.last().Title != "Document Verified" {
		t.Fatalf("unexpected notification title %q", sink.last().Title)
	}
}

func TestDocumentServiceReview_Authorization(t *testing.T) {
	service, _, _ := newDocumentFixture()
	ownerID := common.NewUUID()
	created, err := service.Upload(context.Background(), ownerID, DocumentUpload{
		Name: "essay.pdf",
		Type: document.TypeEssay,
		URL:  "https://storage.local/docs/essay.pdf",
	})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	_, err = service.Review(context.Background(), created.ID, document.StatusVerified, "", ownerID, user.RoleStudent)
	if !common.Is(err, common.CodeForbidden) {
		t.Fatalf("expected forbidden for student reviewer, got %v", err)
	}
	_, err = service.Review(context.Background(), created.ID, document.StatusPending, "", common.NewUUID(), user.RoleAdmin)
	if !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected validation error for pending target, got %v", err)
	}
}

func TestDocumentServiceGetAndDelete_OwnerChecks(t *testing.T) {
	service, repo, _ := newDocumentFixture()
	ownerID := common.NewUUID()
	created, err := service.Upload(context.Background(), ownerID, DocumentUpload{
		Name: "letter.pdf",
		Type: document.TypeRecommendationLetter,
		URL:  "https://storage.local/docs/letter.pdf",
	})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	if _, err := service.Get(context.Background(), created.ID, common.NewUUID(), user.RoleStudent); !common.Is(err, common.CodeForbidden) {
		t.Fatalf("expected forbidden for foreign student, got %v", err)
	}
	if _, err := service.Get(context.Background(), created.ID, common.NewUUID(), user.RoleProvider); err != nil {
		t.Fatalf("reviewers may read documents: %v", err)
	}

	if err := service.Delete(context.Background(), created.ID, common.NewUUID(), user.RoleProvider); !common.Is(err, common.CodeForbidden) {
		t.Fatalf("expected forbidden delete, got %v", err)
	}
	if err := service.Delete(context.Background(), created.ID, ownerID, user.RoleStudent); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if _, err := repo.GetByID(context.Background(), created.ID); !common.Is(err, common.CodeNotFound) {
		t.Fatalf("document still present after delete")
	}
}
