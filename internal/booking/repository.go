package booking

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const requestColumns = `
id, creator_id, activity_name, start_date::text, start_time, end_date::text, end_time,
spaces, COALESCE(event_link,''), COALESCE(notes,''), responsible_name, responsible_phone,
status, COALESCE(poster_url,''), feedback_rating, feedback_notes, feedback_operator_id, feedback_created_at,
created_at
`

func scanRequest(row interface{ Scan(dest ...any) error }) (*Request, error) {
	var req Request
	var fbRating *int
	var fbNotes, fbOperator *string
	var fbCreated *time.Time
	if err := row.Scan(
		&req.ID, &req.CreatorID, &req.ActivityName, &req.StartDate, &req.StartTime, &req.EndDate, &req.EndTime,
		&req.Spaces, &req.EventLink, &req.Notes, &req.ResponsibleName, &req.ResponsiblePhone,
		&req.Status, &req.PosterURL, &fbRating, &fbNotes, &fbOperator, &fbCreated,
		&req.CreatedAt,
	); err != nil {
		return nil, err
	}
	if fbRating != nil && fbNotes != nil && fbOperator != nil && fbCreated != nil {
		req.Feedback = &Feedback{
			Rating:     *fbRating,
			Notes:      *fbNotes,
			OperatorID: *fbOperator,
			CreatedAt:  *fbCreated,
		}
	}
	return &req, nil
}

func (r *Repository) Insert(ctx context.Context, creatorID string, f SubmitForm) (*Request, error) {
	const q = `
INSERT INTO booking_requests
  (creator_id, activity_name, start_date, start_time, end_date, end_time, spaces,
   event_link, notes, responsible_name, responsible_phone, status)
VALUES ($1, $2, $3::date, $4, $5::date, $6, $7, $8, $9, $10, $11, 'pending')
RETURNING ` + requestColumns
	return scanRequest(r.db.QueryRow(ctx, q,
		creatorID, f.ActivityName, f.StartDate, f.StartTime, f.EndDate, f.EndTime, f.Spaces,
		f.EventLink, f.Notes, f.ResponsibleName, f.ResponsiblePhone,
	))
}

// ListMonth returns every request whose [start_date, end_date] interval
// touches the given month, ascending by (start_date, start_time). When
// hideUnreviewed is set, pending and rejected requests are excluded.
func (r *Repository) ListMonth(ctx context.Context, year int, month time.Month, hideUnreviewed bool) ([]Request, error) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	q := `
SELECT ` + requestColumns + `
FROM booking_requests
WHERE start_date <= $1::date AND end_date >= $2::date
`
	if hideUnreviewed {
		q += ` AND status NOT IN ('pending', 'rejected')`
	}
	q += ` ORDER BY start_date ASC, start_time ASC, created_at ASC`

	rows, err := r.db.Query(ctx, q, last.Format(dateLayout), first.Format(dateLayout))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Request
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *req)
	}
	return out, rows.Err()
}

func (r *Repository) GetByID(ctx context.Context, id string) (*Request, error) {
	const q = `SELECT ` + requestColumns + ` FROM booking_requests WHERE id = $1`
	return scanRequest(r.db.QueryRow(ctx, q, id))
}

func GetForUpdate(ctx context.Context, tx pgx.Tx, id string) (*Request, error) {
	const q = `SELECT ` + requestColumns + ` FROM booking_requests WHERE id = $1 FOR UPDATE`
	return scanRequest(tx.QueryRow(ctx, q, id))
}

// UpdateStatus is an unconditional write; the caller decides whether the
// transition is meaningful.
func UpdateStatus(ctx context.Context, tx pgx.Tx, id string, next Status) error {
	const q = `UPDATE booking_requests SET status = $2 WHERE id = $1`
	_, err := tx.Exec(ctx, q, id, string(next))
	return err
}

func AttachFeedback(ctx context.Context, tx pgx.Tx, id string, rating int, notes, operatorID string, at time.Time) error {
	const q = `
UPDATE booking_requests
SET feedback_rating = $2, feedback_notes = $3, feedback_operator_id = $4, feedback_created_at = $5
WHERE id = $1 AND feedback_rating IS NULL
`
	_, err := tx.Exec(ctx, q, id, rating, notes, operatorID, at)
	return err
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM booking_requests WHERE id = $1`
	_, err := r.db.Exec(ctx, q, id)
	return err
}

func (r *Repository) SetPosterURL(ctx context.Context, id, url string) error {
	const q = `UPDATE booking_requests SET poster_url = $2 WHERE id = $1`
	_, err := r.db.Exec(ctx, q, id, url)
	return err
}
