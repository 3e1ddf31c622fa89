// Package notify implements the notification sink handed to the lifecycle and
// verification services. Delivery is best-effort by contract: whatever fails
// here is logged and discarded, never surfaced to the triggering operation.
package notify

import (
	"context"
	"log/slog"
	"time"

	"scholarhub/internal/common"
	"scholarhub/internal/domain/notification"
	"scholarhub/internal/domain/user"
)

type Pusher interface {
	Push(userID common.UUID, payload interface{})
}

type Mailer interface {
	SendNotification(to, title, message string) error
}

type Service struct {
	repo   notification.Repository
	pusher Pusher
	mailer Mailer
	users  user.Repository
	logger *slog.Logger
}

func NewService(repo notification.Repository, pusher Pusher, mailer Mailer, users user.Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, pusher: pusher, mailer: mailer, users: users, logger: logger}
}

var _ notification.Sink = (*Service)(nil)

func (s *Service) Notify(ctx context.Context, req notification.Request) {
	n := notification.Notification{
		RecipientID: req.RecipientID,
		Title:       req.Title,
		Message:     req.Message,
		Category:    req.Category,
		RelatedLink: req.RelatedLink,
		CreatedAt:   time.Now().UTC(),
	}

	stored, err := s.repo.Create(ctx, n)
	if err != nil {
		s.logger.Error("failed to store notification",
			slog.String("recipient", req.RecipientID.String()),
			slog.String("error", err.Error()))
		stored = &n
	}

	if s.pusher != nil {
		s.pusher.Push(req.RecipientID, stored)
	}

	if req.AlsoEmail && s.mailer != nil {
		s.sendEmail(ctx, req)
	}
}

func (s *Service) sendEmail(ctx context.Context, req notification.Request) {
	u, err := s.users.GetByID(ctx, req.RecipientID)
	if err != nil {
		s.logger.Error("failed to resolve notification recipient",
			slog.String("recipient", req.RecipientID.String()),
			slog.String("error", err.Error()))
		return
	}
	if u.Email == "" {
		return
	}
	if err := s.mailer.SendNotification(u.Email, req.Title, req.Message); err != nil {
		s.logger.Warn("failed to send notification email",
			slog.String("recipient", req.RecipientID.String()),
			slog.String("error", err.Error()))
	}
}
