package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"scholarhub/internal/common"
	"scholarhub/internal/domain/document"
)

type DocumentRepository struct {
	db *sql.DB
}

func NewDocumentRepository(db *sql.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

const documentColumns = `id, owner_id, name, type, url, mime_type, file_size, status, verification_comments, created_at, updated_at`

func (r *DocumentRepository) Create(ctx context.Context, d document.Document) (*document.Document, error) {
	d.ID = common.NewUUID()
	now := time.Now().UTC()
	d.CreatedAt = now
	d.UpdatedAt = now
	_, err := r.db.ExecContext(ctx, `INSERT INTO documents (id, owner_id, name, type, url, mime_type, file_size, status, verification_comments, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		d.ID, d.OwnerID, d.Name, d.Type, d.URL, d.MimeType, d.FileSize, d.Status, d.VerificationComments, d.CreatedAt, d.UpdatedAt)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to create document", err)
	}
	return &d, nil
}

func (r *DocumentRepository) GetByID(ctx context.Context, id common.UUID) (*document.Document, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+documentColumns+` FROM documents WHERE id = $1`, id)
	return scanDocument(row)
}

func (r *DocumentRepository) ListByOwner(ctx context.Context, ownerID common.UUID) ([]document.Document, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+documentColumns+` FROM documents WHERE owner_id = $1 ORDER BY created_at DESC`, ownerID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list documents", err)
	}
	defer rows.Close()
	var items []document.Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *d)
	}
	return items, nil
}

func (r *DocumentRepository) UpdateStatus(ctx context.Context, id common.UUID, status document.Status, comments string) (*document.Document, error) {
	result, err := r.db.ExecContext(ctx, `UPDATE documents SET status = $1, verification_comments = $2, updated_at = $3 WHERE id = $4`,
		status, comments, time.Now().UTC(), id)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update document status", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return nil, common.NewError(common.CodeNotFound, "document not found", nil)
	}
	return r.GetByID(ctx, id)
}

func (r *DocumentRepository) Delete(ctx context.Context, id common.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to delete document", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return common.NewError(common.CodeNotFound, "document not found", nil)
	}
	return nil
}

func scanDocument(row rowScanner) (*document.Document, error) {
	var d document.Document
	if err := row.Scan(&d.ID, &d.OwnerID, &d.Name, &d.Type, &d.URL, &d.MimeType, &d.FileSize, &d.Status, &d.VerificationComments, &d.CreatedAt, &d.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "document not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load document", err)
	}
	return &d, nil
}
