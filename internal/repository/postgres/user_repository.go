package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"scholarhub/internal/common"
	"scholarhub/internal/domain/user"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u user.User) (*user.User, error) {
	u.ID = common.NewUUID()
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	_, err := r.db.ExecContext(ctx, `INSERT INTO users (id, name, email, password_hash, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		u.ID, u.Name, u.Email, u.PasswordHash, u.Role, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.NewError(common.CodeConflict, "an account with this email already exists", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to create user", err)
	}
	return &u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id common.UUID) (*user.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, email, password_hash, role, created_at, updated_at FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, email, password_hash, role, created_at, updated_at FROM users WHERE email = $1`, email)
	return scanUser(row)
}

func scanUser(row rowScanner) (*user.User, error) {
	var u user.User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "user not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load user", err)
	}
	return &u, nil
}
