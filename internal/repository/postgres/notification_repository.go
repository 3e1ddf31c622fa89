package postgres

import (
	"context"
	"database/sql"

	"scholarhub/internal/common"
	"scholarhub/internal/domain/notification"
)

type NotificationRepository struct {
	db *sql.DB
}

func NewNotificationRepository(db *sql.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, n notification.Notification) (*notification.Notification, error) {
	n.ID = common.NewUUID()
	_, err := r.db.ExecContext(ctx, `INSERT INTO notifications (id, recipient_id, title, message, category, related_link, read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		n.ID, n.RecipientID, n.Title, n.Message, n.Category, n.RelatedLink, n.Read, n.CreatedAt)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to create notification", err)
	}
	return &n, nil
}

func (r *NotificationRepository) ListByRecipient(ctx context.Context, recipientID common.UUID, limit, offset int) ([]notification.Notification, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, recipient_id, title, message, category, related_link, read, created_at
		FROM notifications WHERE recipient_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`, recipientID, limit, offset)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list notifications", err)
	}
	defer rows.Close()
	var items []notification.Notification
	for rows.Next() {
		var n notification.Notification
		if err := rows.Scan(&n.ID, &n.RecipientID, &n.Title, &n.Message, &n.Category, &n.RelatedLink, &n.Read, &n.CreatedAt); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan notification", err)
		}
		items = append(items, n)
	}
	return items, nil
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id, recipientID common.UUID) error {
	result, err := r.db.ExecContext(ctx, `UPDATE notifications SET read = TRUE WHERE id = $1 AND recipient_id = $2`, id, recipientID)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to mark notification read", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return common.NewError(common.CodeNotFound, "notification not found", nil)
	}
	return nil
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, recipientID common.UUID) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE notifications SET read = TRUE WHERE recipient_id = $1`, recipientID); err != nil {
		return common.NewError(common.CodeInternal, "failed to mark notifications read", err)
	}
	return nil
}
