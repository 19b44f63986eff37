package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/pesio-ai/be-ops-workflow/pkg/database"
	"github.com/pesio-ai/be-ops-workflow/pkg/errors"
)

const userColumns = `id, email, name, role, approval_status, password_hash, created_at, updated_at`

// UserRepository persists user profiles.
type UserRepository struct {
	db *database.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a profile. Emails are unique; a duplicate yields CONFLICT.
func (r *UserRepository) Create(ctx context.Context, u *UserProfile) error {
	query := `
		INSERT INTO users (email, name, role, approval_status, password_hash)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, u.Email, u.Name, u.Role, u.ApprovalStatus, u.PasswordHash).
		Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return database.WrapError(err, "failed to create user")
	}
	return nil
}

// GetByID retrieves a profile by ID.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*UserProfile, error) {
	u, err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if database.IsNoRows(err) {
		return nil, errors.NotFound("user", id)
	}
	if err != nil {
		return nil, database.WrapError(err, "failed to get user")
	}
	return u, nil
}

// GetByEmail retrieves a profile by its (lower-cased) email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*UserProfile, error) {
	u, err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if database.IsNoRows(err) {
		return nil, errors.NotFound("user", email)
	}
	if err != nil {
		return nil, database.WrapError(err, "failed to get user")
	}
	return u, nil
}

// List returns profiles ordered by name.
func (r *UserRepository) List(ctx context.Context, f UserFilter) ([]*UserProfile, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE TRUE`
	args := []interface{}{}
	argCount := 1

	if f.Role != nil {
		query += fmt.Sprintf(" AND role = $%d", argCount)
		args = append(args, *f.Role)
		argCount++
	}
	if f.ApprovalStatus != nil {
		query += fmt.Sprintf(" AND approval_status = $%d", argCount)
		args = append(args, *f.ApprovalStatus)
	}
	query += " ORDER BY name ASC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, database.WrapError(err, "failed to list users")
	}
	defer rows.Close()

	users := make([]*UserProfile, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to scan user")
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, database.WrapError(err, "failed to list users")
	}
	return users, nil
}

// UpdateApprovalStatus sets a profile's account approval status.
func (r *UserRepository) UpdateApprovalStatus(ctx context.Context, id, status string) error {
	return r.updateColumn(ctx, id, "approval_status", status)
}

// UpdateRole sets a profile's role.
func (r *UserRepository) UpdateRole(ctx context.Context, id, role string) error {
	return r.updateColumn(ctx, id, "role", role)
}

func (r *UserRepository) updateColumn(ctx context.Context, id, column, value string) error {
	query := fmt.Sprintf(`UPDATE users SET %s = $2, updated_at = $3 WHERE id = $1`, column)
	tag, err := r.db.Exec(ctx, query, id, value, time.Now())
	if err != nil {
		return database.WrapError(err, "failed to update user "+column)
	}
	if tag.RowsAffected() == 0 {
		return errors.NotFound("user", id)
	}
	return nil
}

func scanUser(row rowScanner) (*UserProfile, error) {
	u := &UserProfile{}
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.Name,
		&u.Role,
		&u.ApprovalStatus,
		&u.PasswordHash,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// SessionRepository persists sign-in sessions.
type SessionRepository struct {
	db *database.DB
}

// NewSessionRepository creates a new SessionRepository.
func NewSessionRepository(db *database.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create inserts a session with a caller-chosen id.
func (r *SessionRepository) Create(ctx context.Context, s *Session) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO sessions (id, user_id, issued_at, expires_at)
		VALUES ($1, $2, $3, $4)
	`, s.ID, s.UserID, s.IssuedAt, s.ExpiresAt)
	if err != nil {
		return database.WrapError(err, "failed to create session")
	}
	return nil
}

// GetByID retrieves a session by ID.
func (r *SessionRepository) GetByID(ctx context.Context, id string) (*Session, error) {
	s := &Session{}
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, issued_at, expires_at, revoked_at
		FROM sessions WHERE id = $1
	`, id).Scan(&s.ID, &s.UserID, &s.IssuedAt, &s.ExpiresAt, &s.RevokedAt)
	if database.IsNoRows(err) {
		return nil, errors.NotFound("session", id)
	}
	if err != nil {
		return nil, database.WrapError(err, "failed to get session")
	}
	return s, nil
}

// Revoke marks a session revoked. Revoking twice keeps the first timestamp.
func (r *SessionRepository) Revoke(ctx context.Context, id string, at time.Time) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE sessions SET revoked_at = COALESCE(revoked_at, $2) WHERE id = $1
	`, id, at)
	if err != nil {
		return database.WrapError(err, "failed to revoke session")
	}
	if tag.RowsAffected() == 0 {
		return errors.NotFound("session", id)
	}
	return nil
}
