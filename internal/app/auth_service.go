package app

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"scholarhub/internal/common"
	"scholarhub/internal/domain/user"
	"scholarhub/internal/security"
)

type AuthService struct {
	users    user.Repository
	jwt      *security.JWTProvider
	tokenTTL time.Duration
}

func NewAuthService(users user.Repository, jwt *security.JWTProvider, tokenTTL time.Duration) *AuthService {
	return &AuthService{users: users, jwt: jwt, tokenTTL: tokenTTL}
}

type AuthResult struct {
	User      *user.User `json:"user"`
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expires_at"`
}

func (s *AuthService) Register(ctx context.Context, name, email, password string, role user.Role) (*AuthResult, error) {
	fields := map[string]string{}
	if strings.TrimSpace(name) == "" {
		fields["name"] = "name is required"
	}
	if _, err := mail.ParseAddress(email); err != nil {
		fields["email"] = "a valid email is required"
	}
	if len(password) < 8 {
		fields["password"] = "password must be at least 8 characters"
	}
	if role != user.RoleStudent && role != user.RoleProvider {
		fields["role"] = "role must be student or provider"
	}
	if len(fields) > 0 {
		return nil, common.NewValidationError("invalid registration", fields)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to hash password", err)
	}
	created, err := s.users.Create(ctx, user.User{
		Name:         strings.TrimSpace(name),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: string(hash),
		Role:         role,
	})
	if err != nil {
		return nil, err
	}
	return s.issue(created)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	u, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return nil, common.NewError(common.CodeUnauthorized, "invalid email or password", nil)
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, common.NewError(common.CodeUnauthorized, "invalid email or password", nil)
	}
	return s.issue(u)
}

func (s *AuthService) issue(u *user.User) (*AuthResult, error) {
	token, expiresAt, err := s.jwt.Generate(u.ID, string(u.Role), s.tokenTTL)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to issue token", err)
	}
	return &AuthResult{User: u, Token: token, ExpiresAt: expiresAt}, nil
}
