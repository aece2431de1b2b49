package user

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const userColumns = `
id, principal_id, nome, cognome, email, COALESCE(phone,''), COALESCE(fiscal_code,''),
COALESCE(address,''), COALESCE(qualifica,''), COALESCE(entity_name,''), COALESCE(notes,''),
role, approved, COALESCE(document_url,''), created_at
`

func scanUser(row interface{ Scan(dest ...any) error }) (*User, error) {
	var u User
	if err := row.Scan(
		&u.ID, &u.PrincipalID, &u.Nome, &u.Cognome, &u.Email, &u.Phone, &u.FiscalCode,
		&u.Address, &u.Qualifica, &u.EntityName, &u.Notes,
		&u.Role, &u.Approved, &u.DocumentURL, &u.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &u, nil
}

type NewProfile struct {
	PrincipalID string
	Nome        string
	Cognome     string
	Email       string
	Phone       string
	FiscalCode  string
	Address     string
	Qualifica   string
	EntityName  string
	Notes       string
}

const insertSQL = `
INSERT INTO users (principal_id, nome, cognome, email, phone, fiscal_code, address, qualifica, entity_name, notes, role, approved)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, 'pending', FALSE)
RETURNING ` + userColumns

// Insert creates a profile record. Every new profile starts as pending and
// unapproved; only the admin workflow mutates those fields afterwards.
func (r *Repository) Insert(ctx context.Context, p NewProfile) (*User, error) {
	return scanUser(r.db.QueryRow(ctx, insertSQL,
		p.PrincipalID, p.Nome, p.Cognome, p.Email, p.Phone, p.FiscalCode,
		p.Address, p.Qualifica, p.EntityName, p.Notes,
	))
}

// InsertTx is Insert inside an open transaction, used by registration so the
// principal and its profile commit together.
func InsertTx(ctx context.Context, tx pgx.Tx, p NewProfile) (*User, error) {
	return scanUser(tx.QueryRow(ctx, insertSQL,
		p.PrincipalID, p.Nome, p.Cognome, p.Email, p.Phone, p.FiscalCode,
		p.Address, p.Qualifica, p.EntityName, p.Notes,
	))
}

func (r *Repository) FindByPrincipal(ctx context.Context, principalID string) (*User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE principal_id = $1`
	return scanUser(r.db.QueryRow(ctx, q, principalID))
}

func (r *Repository) GetByID(ctx context.Context, id string) (*User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRow(ctx, q, id))
}

func (r *Repository) List(ctx context.Context) ([]User, error) {
	const q = `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *u)
	}
	return out, rows.Err()
}

// SetApproved flips the approved flag and nothing else, except that approving
// a still-pending profile promotes it to utente so the account becomes usable.
func (r *Repository) SetApproved(ctx context.Context, id string, approved bool) error {
	const q = `
UPDATE users
SET approved = $2,
    role = CASE WHEN $2 AND role = 'pending' THEN 'utente' ELSE role END
WHERE id = $1
`
	_, err := r.db.Exec(ctx, q, id, approved)
	return err
}

// SetRole reassigns a role. Superuser targets are never touched.
func (r *Repository) SetRole(ctx context.Context, id string, role Role) error {
	const q = `UPDATE users SET role = $2 WHERE id = $1 AND role <> 'superuser'`
	_, err := r.db.Exec(ctx, q, id, string(role))
	return err
}

func (r *Repository) SetDocumentURL(ctx context.Context, id, url string) error {
	const q = `UPDATE users SET document_url = $2 WHERE id = $1`
	_, err := r.db.Exec(ctx, q, id, url)
	return err
}

// Delete removes the profile record only. The auth principal survives; this
// is the documented incomplete-deletion behavior, not an oversight to fix
// here.
func (r *Repository) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM users WHERE id = $1 AND role <> 'superuser'`
	_, err := r.db.Exec(ctx, q, id)
	return err
}
