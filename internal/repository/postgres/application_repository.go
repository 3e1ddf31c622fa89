package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"scholarhub/internal/common"
	"scholarhub/internal/domain/application"
)

type ApplicationRepository struct {
	db *sql.DB
}

func NewApplicationRepository(db *sql.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

const applicationColumns = `id, student_id, scholarship_id, status, score, custom_answers, reviewer_notes, created_at, updated_at`

func (r *ApplicationRepository) Create(ctx context.Context, app application.Application) (*application.Application, error) {
	app.ID = common.NewUUID()
	now := time.Now().UTC()
	app.CreatedAt = now
	app.UpdatedAt = now

	answers, err := json.Marshal(answersOrEmpty(app.CustomAnswers))
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to encode answers", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to begin transaction", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `INSERT INTO applications (id, student_id, scholarship_id, status, score, custom_answers, reviewer_notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		app.ID, app.StudentID, app.ScholarshipID, app.Status, app.Score, answers, app.ReviewerNotes, app.CreatedAt, app.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.NewError(common.CodeConflict, "an application for this scholarship already exists", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to create application", err)
	}
	for _, entry := range app.Timeline {
		if _, err := tx.ExecContext(ctx, `INSERT INTO application_timeline (application_id, status, comment, updated_by, created_at)
			VALUES ($1, $2, $3, $4, $5)`,
			app.ID, entry.Status, entry.Comment, entry.UpdatedBy, entry.Date); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to record timeline entry", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to commit application", err)
	}
	return &app, nil
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id common.UUID) (*application.Application, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id)
	app, err := scanApplication(row)
	if err != nil {
		return nil, err
	}
	if err := r.loadDetails(ctx, app); err != nil {
		return nil, err
	}
	return app, nil
}

func (r *ApplicationRepository) FindByStudentAndScholarship(ctx context.Context, studentID, scholarshipID common.UUID) (*application.Application, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+applicationColumns+` FROM applications WHERE student_id = $1 AND scholarship_id = $2`, studentID, scholarshipID)
	app, err := scanApplication(row)
	if err != nil {
		return nil, err
	}
	if err := r.loadDetails(ctx, app); err != nil {
		return nil, err
	}
	return app, nil
}

func (r *ApplicationRepository) ListByStudent(ctx context.Context, studentID common.UUID) ([]application.Application, error) {
	return r.list(ctx, `SELECT `+applicationColumns+` FROM applications WHERE student_id = $1 ORDER BY created_at DESC`, studentID)
}

func (r *ApplicationRepository) ListByScholarship(ctx context.Context, scholarshipID common.UUID) ([]application.Application, error) {
	return r.list(ctx, `SELECT `+applicationColumns+` FROM applications WHERE scholarship_id = $1 ORDER BY score DESC, created_at ASC`, scholarshipID)
}

func (r *ApplicationRepository) ListByProvider(ctx context.Context, providerID common.UUID) ([]application.Application, error) {
	return r.list(ctx, `SELECT a.id, a.student_id, a.scholarship_id, a.status, a.score, a.custom_answers, a.reviewer_notes, a.created_at, a.updated_at
		FROM applications a
		JOIN scholarships s ON s.id = a.scholarship_id
		WHERE s.provider_id = $1
		ORDER BY a.created_at DESC`, providerID)
}

func (r *ApplicationRepository) ListAll(ctx context.Context, limit, offset int) ([]application.Application, error) {
	return r.list(ctx, `SELECT `+applicationColumns+` FROM applications ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
}

func (r *ApplicationRepository) SetStatusWithTimeline(ctx context.Context, id common.UUID, status application.Status, entry application.TimelineEntry) (*application.Application, error) {
	return r.setStatus(ctx, id, status, nil, entry)
}

func (r *ApplicationRepository) SetStatusScoreWithTimeline(ctx context.Context, id common.UUID, status application.Status, score int, entry application.TimelineEntry) (*application.Application, error) {
	return r.setStatus(ctx, id, status, &score, entry)
}

// setStatus applies the status write and the timeline append in one
// transaction so no audit record can be lost.
func (r *ApplicationRepository) setStatus(ctx context.Context, id common.UUID, status application.Status, score *int, entry application.TimelineEntry) (*application.Application, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to begin transaction", err)
	}
	defer func() { _ = tx.Rollback() }()

	var result sql.Result
	if score != nil {
		result, err = tx.ExecContext(ctx, `UPDATE applications SET status = $1, score = $2, updated_at = $3 WHERE id = $4`,
			status, *score, time.Now().UTC(), id)
	} else {
		result, err = tx.ExecContext(ctx, `UPDATE applications SET status = $1, updated_at = $2 WHERE id = $3`,
			status, time.Now().UTC(), id)
	}
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update application status", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return nil, common.NewError(common.CodeNotFound, "application not found", nil)
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO application_timeline (application_id, status, comment, updated_by, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		id, entry.Status, entry.Comment, entry.UpdatedBy, entry.Date); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to record timeline entry", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to commit status change", err)
	}
	return r.GetByID(ctx, id)
}

func (r *ApplicationRepository) AppendTimeline(ctx context.Context, id common.UUID, entry application.TimelineEntry) (*application.Application, error) {
	if _, err := r.GetByID(ctx, id); err != nil {
		return nil, err
	}
	if _, err := r.db.ExecContext(ctx, `INSERT INTO application_timeline (application_id, status, comment, updated_by, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		id, entry.Status, entry.Comment, entry.UpdatedBy, entry.Date); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to record timeline entry", err)
	}
	return r.GetByID(ctx, id)
}

func (r *ApplicationRepository) UpdateAnswers(ctx context.Context, id common.UUID, answers []application.CustomAnswer) (*application.Application, error) {
	encoded, err := json.Marshal(answersOrEmpty(answers))
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to encode answers", err)
	}
	result, err := r.db.ExecContext(ctx, `UPDATE applications SET custom_answers = $1, updated_at = $2 WHERE id = $3`,
		encoded, time.Now().UTC(), id)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update application", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return nil, common.NewError(common.CodeNotFound, "application not found", nil)
	}
	return r.GetByID(ctx, id)
}

func (r *ApplicationRepository) AttachDocument(ctx context.Context, id common.UUID, doc application.SubmittedDocument) (*application.Application, error) {
	var docID interface{}
	if doc.DocumentID != "" {
		docID = doc.DocumentID
	}
	if _, err := r.db.ExecContext(ctx, `INSERT INTO application_documents (application_id, document_type, document_id, created_at)
		VALUES ($1, $2, $3, $4)`,
		id, doc.DocumentType, docID, time.Now().UTC()); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to attach document", err)
	}
	return r.GetByID(ctx, id)
}

func (r *ApplicationRepository) list(ctx context.Context, query string, args ...interface{}) ([]application.Application, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list applications", err)
	}
	defer rows.Close()
	var items []application.Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *app)
	}
	return items, nil
}

func (r *ApplicationRepository) loadDetails(ctx context.Context, app *application.Application) error {
	timelineRows, err := r.db.QueryContext(ctx, `SELECT status, comment, updated_by, created_at FROM application_timeline WHERE application_id = $1 ORDER BY id ASC`, app.ID)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to load timeline", err)
	}
	defer timelineRows.Close()
	for timelineRows.Next() {
		var entry application.TimelineEntry
		if err := timelineRows.Scan(&entry.Status, &entry.Comment, &entry.UpdatedBy, &entry.Date); err != nil {
			return common.NewError(common.CodeInternal, "failed to scan timeline entry", err)
		}
		app.Timeline = append(app.Timeline, entry)
	}

	docRows, err := r.db.QueryContext(ctx, `SELECT document_type, COALESCE(document_id::text, '') FROM application_documents WHERE application_id = $1 ORDER BY id ASC`, app.ID)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to load attached documents", err)
	}
	defer docRows.Close()
	for docRows.Next() {
		var doc application.SubmittedDocument
		var docID string
		if err := docRows.Scan(&doc.DocumentType, &docID); err != nil {
			return common.NewError(common.CodeInternal, "failed to scan attached document", err)
		}
		doc.DocumentID = common.UUID(docID)
		app.SubmittedDocuments = append(app.SubmittedDocuments, doc)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanApplication(row rowScanner) (*application.Application, error) {
	var app application.Application
	var answers []byte
	if err := row.Scan(&app.ID, &app.StudentID, &app.ScholarshipID, &app.Status, &app.Score, &answers, &app.ReviewerNotes, &app.CreatedAt, &app.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "application not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load application", err)
	}
	if len(answers) > 0 {
		if err := json.Unmarshal(answers, &app.CustomAnswers); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to decode answers", err)
		}
	}
	app.Status = application.NormalizeStatus(app.Status)
	return &app, nil
}

func answersOrEmpty(answers []application.CustomAnswer) []application.CustomAnswer {
	if answers == nil {
		return []application.CustomAnswer{}
	}
	return answers
}

// isUniqueViolation recognizes constraint violations from both postgres
// drivers in use (pgx for the pool, lib/pq for array support).
func isUniqueViolation(err error) bool {
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		return pgxErr.Code == "23505"
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
