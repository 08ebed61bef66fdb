// Package searchlog records completed search runs in Postgres for
// server-side auditing. It is best-effort: the search path never waits on it
// and never fails because of it.
package searchlog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Run is one completed search.
type Run struct {
	ID          uuid.UUID
	ClientID    string
	City        string
	Categories  []string
	RadiusKm    float64
	ResultCount int
	Status      string
	DurationMs  int64
	CreatedAt   time.Time
}

// Repository persists search runs.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a search log repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Insert stores one run.
func (r *Repository) Insert(ctx context.Context, run Run) error {
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	_, err := r.pool.Exec(ctx, `
		INSERT INTO search_runs (id, client_id, city, categories, radius_km, result_count, status, duration_ms, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		run.ID, run.ClientID, run.City, run.Categories, run.RadiusKm,
		run.ResultCount, run.Status, run.DurationMs, run.CreatedAt,
	)
	return err
}

// PruneBefore deletes runs created before the cutoff and reports how many
// rows were removed.
func (r *Repository) PruneBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM search_runs WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
