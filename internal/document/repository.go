package document

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Document is a stored upload: an identity document attached to a profile or
// an event poster attached to a booking request.
type Document struct {
	ID         string    `json:"id"`
	OwnerID    string    `json:"ownerId"`
	Kind       string    `json:"kind"`
	FileName   string    `json:"fileName"`
	StoredName string    `json:"-"`
	URL        string    `json:"url"`
	CreatedAt  time.Time `json:"createdAt"`
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Insert(ctx context.Context, ownerID, kind, fileName, storedName, url string) (*Document, error) {
	const q = `
INSERT INTO documents (owner_id, kind, file_name, stored_name, url)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, owner_id, kind, file_name, stored_name, url, created_at
`
	var d Document
	err := r.db.QueryRow(ctx, q, ownerID, kind, fileName, storedName, url).
		Scan(&d.ID, &d.OwnerID, &d.Kind, &d.FileName, &d.StoredName, &d.URL, &d.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*Document, error) {
	const q = `SELECT id, owner_id, kind, file_name, stored_name, url, created_at FROM documents WHERE id = $1`
	var d Document
	err := r.db.QueryRow(ctx, q, id).
		Scan(&d.ID, &d.OwnerID, &d.Kind, &d.FileName, &d.StoredName, &d.URL, &d.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *Repository) ListByOwner(ctx context.Context, ownerID string) ([]Document, error) {
	const q = `
SELECT id, owner_id, kind, file_name, stored_name, url, created_at
FROM documents
WHERE owner_id = $1
ORDER BY created_at DESC
`
	rows, err := r.db.Query(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Document
	for rows.Next() {
		var d Document
		if err := rows.Scan(&d.ID, &d.OwnerID, &d.Kind, &d.FileName, &d.StoredName, &d.URL, &d.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
