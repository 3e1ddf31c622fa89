package app

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"scholarhub/internal/common"
	"scholarhub/internal/domain/user"
	"scholarhub/internal/security"
)

type fakeUserRepo struct {
	mu      sync.Mutex
	byEmail map[string]*user.User
	byID    map[common.UUID]*user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byEmail: make(map[string]*user.User),
		byID:    make(map[common.UUID]*user.User),
	}
}

func (r *fakeUserRepo) Create(ctx context.Context, u user.User) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.byEmail[u.Email] != nil {
		return nil, common.NewError(common.CodeConflict, "an account with this email already exists", nil)
	}
	now := time.Now().UTC()
	u.ID = common.NewUUID()
	u.CreatedAt = now
	u.UpdatedAt = now
	copy := u
	r.byEmail[u.Email] = &copy
	r.byID[u.ID] = &copy
	return &u, nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id common.UUID) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u := r.byID[id]
	if u == nil {
		return nil, common.NewError(common.CodeNotFound, "user not found", nil)
	}
	copy := *u
	return &copy, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u := r.byEmail[email]
	if u == nil {
		return nil, common.NewError(common.CodeNotFound, "user not found", nil)
	}
	copy := *u
	return &copy, nil
}

func TestAuthServiceRegister(t *testing.T) {
	service := NewAuthService(newFakeUserRepo(), security.NewJWTProvider("secret"), time.Hour)

	result, err := service.Register(context.Background(), "Priya Sharma", "Priya@Example.EDU", "correct horse", user.RoleStudent)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if result.Token == "" {
		t.Fatalf("expected a token")
	}
	if result.User.Email != "priya@example.edu" {
		t.Fatalf("email not normalized: %q", result.User.Email)
	}
	if result.User.PasswordHash == "correct horse" {
		t.Fatalf("password stored in the clear")
	}
	if !result.ExpiresAt.After(time.Now()) {
		t.Fatalf("token already expired")
	}
}

func TestAuthServiceRegister_Validation(t *testing.T) {
	service := NewAuthService(newFakeUserRepo(), security.NewJWTProvider("secret"), time.Hour)

	_, err := service.Register(context.Background(), " ", "not-an-email", "short", user.RoleAdmin)
	verr, ok := err.(*common.Error)
	if !ok || verr.Code != common.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	for _, field := range []string{"name", "email", "password", "role"} {
		if _, present := verr.Details[field]; !present {
			t.Fatalf("missing validation detail for %s: %+v", field, verr.Details)
		}
	}
}

func TestAuthServiceRegister_DuplicateEmail(t *testing.T) {
	service := NewAuthService(newFakeUserRepo(), security.NewJWTProvider("secret"), time.Hour)

	if _, err := service.Register(context.Background(), "First", "dup@example.edu", "password123", user.RoleStudent); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, err := service.Register(context.Background(), "Second", "dup@example.edu", "password123", user.RoleStudent)
	if !common.Is(err, common.CodeConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestAuthServiceLogin(t *testing.T) {
	service := NewAuthService(newFakeUserRepo(), security.NewJWTProvider("secret"), time.Hour)
	if _, err := service.Register(context.Background(), "Priya Sharma", "priya@example.edu", "correct horse", user.RoleStudent); err != nil {
		t.Fatalf("register: %v", err)
	}

	result, err := service.Login(context.Background(), " PRIYA@example.edu ", "correct horse")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.Token == "" {
		t.Fatalf("expected a token")
	}

	_, err = service.Login(context.Background(), "priya@example.edu", "wrong password")
	if !common.Is(err, common.CodeUnauthorized) {
		t.Fatalf("expected unauthorized for bad password, got %v", err)
	}
	if err != nil && !strings.Contains(err.Error(), "invalid email or password") {
		t.Fatalf("error must not reveal which part failed: %v", err)
	}

	_, err = service.Login(context.Background(), "nobody@example.edu", "whatever")
	if !common.Is(err, common.CodeUnauthorized) {
		t.Fatalf("expected unauthorized for unknown email, got %v", err)
	}
}
