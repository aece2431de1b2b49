package auth

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Principal is an auth account. It lives independently of the profile record
// in users: profile deletion leaves the principal behind.
type Principal struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// InsertPrincipal creates the auth account inside the registration
// transaction. The unique constraint on email surfaces duplicates.
func InsertPrincipal(ctx context.Context, tx pgx.Tx, email, passwordHash string) (*Principal, error) {
	const q = `
INSERT INTO principals (email, password_hash)
VALUES ($1, $2)
RETURNING id, email, password_hash, created_at
`
	var p Principal
	err := tx.QueryRow(ctx, q, email, passwordHash).Scan(&p.ID, &p.Email, &p.PasswordHash, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repository) FindByEmail(ctx context.Context, email string) (*Principal, error) {
	const q = `SELECT id, email, password_hash, created_at FROM principals WHERE lower(email) = lower($1)`
	var p Principal
	err := r.db.QueryRow(ctx, q, email).Scan(&p.ID, &p.Email, &p.PasswordHash, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repository) UpdatePassword(ctx context.Context, principalID, passwordHash string) error {
	const q = `UPDATE principals SET password_hash = $2 WHERE id = $1`
	_, err := r.db.Exec(ctx, q, principalID, passwordHash)
	return err
}

// InsertResetToken records a single-use password reset token.
func (r *Repository) InsertResetToken(ctx context.Context, token, principalID string, expiresAt time.Time) error {
	const q = `INSERT INTO password_reset_tokens (token, principal_id, expires_at) VALUES ($1, $2, $3)`
	_, err := r.db.Exec(ctx, q, token, principalID, expiresAt)
	return err
}

// ConsumeResetToken marks the token used and returns its principal. A token
// that is unknown, expired, or already used yields pgx.ErrNoRows.
func (r *Repository) ConsumeResetToken(ctx context.Context, token string, now time.Time) (string, error) {
	const q = `
UPDATE password_reset_tokens
SET used_at = $2
WHERE token = $1 AND used_at IS NULL AND expires_at > $2
RETURNING principal_id
`
	var principalID string
	if err := r.db.QueryRow(ctx, q, token, now).Scan(&principalID); err != nil {
		return "", err
	}
	return principalID, nil
}
