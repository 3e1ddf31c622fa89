package notify

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"scholarhub/internal/common"
	"scholarhub/internal/domain/notification"
	"scholarhub/internal/domain/user"
)

type recordingNotificationRepo struct {
	mu        sync.Mutex
	createErr error
	stored    []notification.Notification
}

func (r *recordingNotificationRepo) Create(ctx context.Context, n notification.Notification) (*notification.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return nil, r.createErr
	}
	n.ID = common.NewUUID()
	r.stored = append(r.stored, n)
	return &n, nil
}

func (r *recordingNotificationRepo) ListByRecipient(ctx context.Context, recipientID common.UUID, limit, offset int) ([]notification.Notification, error) {
	return nil, nil
}

func (r *recordingNotificationRepo) MarkRead(ctx context.Context, id, recipientID common.UUID) error {
	return nil
}

func (r *recordingNotificationRepo) MarkAllRead(ctx context.Context, recipientID common.UUID) error {
	return nil
}

type recordingPusher struct {
	mu     sync.Mutex
	pushes []common.UUID
}

func (p *recordingPusher) Push(userID common.UUID, payload interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pushes = append(p.pushes, userID)
}

type failingMailer struct {
	mu    sync.Mutex
	calls int
}

func (m *failingMailer) SendNotification(to, title, message string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	return errors.New("smtp unreachable")
}

type staticUserRepo struct {
	users map[common.UUID]*user.User
}

func (r *staticUserRepo) Create(ctx context.Context, u user.User) (*user.User, error) {
	return nil, errors.New("not implemented")
}

func (r *staticUserRepo) GetByID(ctx context.Context, id common.UUID) (*user.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "user not found", nil)
	}
	return u, nil
}

func (r *staticUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return nil, common.NewError(common.CodeNotFound, "user not found", nil)
}

func TestNotifyStoresAndPushes(t *testing.T) {
	repo := &recordingNotificationRepo{}
	pusher := &recordingPusher{}
	service := NewService(repo, pusher, nil, &staticUserRepo{}, slog.Default())
	recipientID := common.NewUUID()

	service.Notify(context.Background(), notification.Request{
		RecipientID: recipientID,
		Title:       "Application Submitted",
		Message:     "Your application has been successfully submitted.",
		Category:    notification.CategorySuccess,
	})

	if len(repo.stored) != 1 {
		t.Fatalf("expected one stored notification, got %d", len(repo.stored))
	}
	if repo.stored[0].Read {
		t.Fatalf("new notifications must start unread")
	}
	if repo.stored[0].CreatedAt.After(time.Now().UTC()) {
		t.Fatalf("created_at in the future")
	}
	if len(pusher.pushes) != 1 || pusher.pushes[0] != recipientID {
		t.Fatalf("expected one push to %s, got %v", recipientID, pusher.pushes)
	}
}

func TestNotifySwallowsStoreFailure(t *testing.T) {
	repo := &recordingNotificationRepo{createErr: errors.New("database down")}
	pusher := &recordingPusher{}
	service := NewService(repo, pusher, nil, &staticUserRepo{}, slog.Default())

	// Must not panic or surface anything; the push still goes out.
	service.Notify(context.Background(), notification.Request{
		RecipientID: common.NewUUID(),
		Title:       "Application Status Updated",
		Message:     "Your application status has been updated.",
		Category:    notification.CategoryApplicationUpdate,
	})
	if len(pusher.pushes) != 1 {
		t.Fatalf("push skipped after store failure")
	}
}

func TestNotifySwallowsEmailFailure(t *testing.T) {
	recipientID := common.NewUUID()
	users := &staticUserRepo{users: map[common.UUID]*user.User{
		recipientID: {ID: recipientID, Email: "student@example.edu"},
	}}
	mailer := &failingMailer{}
	service := NewService(&recordingNotificationRepo{}, nil, mailer, users, slog.Default())

	service.Notify(context.Background(), notification.Request{
		RecipientID: recipientID,
		Title:       "Document Rejected",
		Message:     "Your document has been rejected.",
		Category:    notification.CategoryAlert,
		AlsoEmail:   true,
	})
	if mailer.calls != 1 {
		t.Fatalf("expected one email attempt, got %d", mailer.calls)
	}
}

func TestNotifySkipsEmailForUnknownRecipient(t *testing.T) {
	mailer := &failingMailer{}
	service := NewService(&recordingNotificationRepo{}, nil, mailer, &staticUserRepo{}, slog.Default())

	service.Notify(context.Background(), notification.Request{
		RecipientID: common.NewUUID(),
		Title:       "Document Verified",
		Message:     "Your document has been verified.",
		Category:    notification.CategoryAlert,
		AlsoEmail:   true,
	})
	if mailer.calls != 0 {
		t.Fatalf("email attempted for unknown recipient")
	}
}
