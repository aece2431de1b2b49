package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Entry struct {
	ID        string          `json:"id"`
	Action    Action          `json:"action"`
	Actor     string          `json:"actor"`
	TargetID  string          `json:"targetId"`
	Metadata  json.RawMessage `json:"metadata,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

func marshalMetadata(metadata any) *string {
	if metadata == nil {
		return nil
	}
	b, _ := json.Marshal(metadata)
	s := string(b)
	return &s
}

// Record appends a trail entry outside any transaction.
func (r *Repository) Record(ctx context.Context, action Action, actor, targetID string, metadata any) error {
	const q = `
INSERT INTO audit_logs (action, actor, target_id, metadata)
VALUES ($1, $2, $3, CAST($4 AS jsonb))
`
	_, err := r.db.Exec(ctx, q, string(action), actor, targetID, marshalMetadata(metadata))
	return err
}

// Insert appends a trail entry inside an open transaction, so the entry
// commits or rolls back with the mutation it describes.
func Insert(ctx context.Context, tx pgx.Tx, action Action, actor, targetID string, metadata any) error {
	const q = `
INSERT INTO audit_logs (action, actor, target_id, metadata)
VALUES ($1, $2, $3, CAST($4 AS jsonb))
`
	_, err := tx.Exec(ctx, q, string(action), actor, targetID, marshalMetadata(metadata))
	return err
}

// List returns the newest entries first.
func (r *Repository) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	const q = `
SELECT id, action, actor, target_id, COALESCE(metadata::text, ''), created_at
FROM audit_logs
ORDER BY created_at DESC
LIMIT $1
`
	rows, err := r.db.Query(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var meta string
		if err := rows.Scan(&e.ID, &e.Action, &e.Actor, &e.TargetID, &meta, &e.CreatedAt); err != nil {
			return nil, err
		}
		if meta != "" {
			e.Metadata = json.RawMessage(meta)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
