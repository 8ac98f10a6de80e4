package watchlist

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound indicates the watchlist does not exist or does not belong to
// the user.
var ErrNotFound = errors.New("watchlist not found")

// Watchlist is one named ticker list owned by a user.
type Watchlist struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Repository stores watchlists and their tickers.
//
// Schema:
//
//	CREATE TABLE watchlists (
//	    id         BIGSERIAL PRIMARY KEY,
//	    user_id    TEXT NOT NULL,
//	    name       TEXT NOT NULL,
//	    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
//	    UNIQUE (user_id, name)
//	);
//
//	CREATE TABLE watchlist_items (
//	    watchlist_id BIGINT NOT NULL REFERENCES watchlists(id) ON DELETE CASCADE,
//	    ticker       TEXT NOT NULL,
//	    added_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
//	    PRIMARY KEY (watchlist_id, ticker)
//	);
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new watchlist repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ListForUser returns every watchlist owned by the user, newest first.
func (r *Repository) ListForUser(ctx context.Context, userID string) ([]Watchlist, error) {
	query := `
		SELECT id, user_id, name, created_at
		FROM watchlists
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lists []Watchlist
	for rows.Next() {
		var w Watchlist
		if err := rows.Scan(&w.ID, &w.UserID, &w.Name, &w.CreatedAt); err != nil {
			return nil, err
		}
		lists = append(lists, w)
	}
	return lists, rows.Err()
}

// Create adds a new empty watchlist. Creating a name that already exists for
// the user returns the existing list unchanged.
func (r *Repository) Create(ctx context.Context, userID, name string) (*Watchlist, error) {
	query := `
		INSERT INTO watchlists (user_id, name)
		VALUES ($1, $2)
		ON CONFLICT (user_id, name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, user_id, name, created_at
	`

	var w Watchlist
	err := r.pool.QueryRow(ctx, query, userID, name).Scan(&w.ID, &w.UserID, &w.Name, &w.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// Delete removes a watchlist and, via cascade, its tickers.
func (r *Repository) Delete(ctx context.Context, userID string, listID int64) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM watchlists WHERE id = $1 AND user_id = $2`, listID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Tickers returns the tickers of one watchlist in insertion order.
func (r *Repository) Tickers(ctx context.Context, userID string, listID int64) ([]string, error) {
	if err := r.assertOwned(ctx, userID, listID); err != nil {
		return nil, err
	}

	query := `
		SELECT ticker
		FROM watchlist_items
		WHERE watchlist_id = $1
		ORDER BY added_at ASC
	`

	rows, err := r.pool.Query(ctx, query, listID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tickers []string
	for rows.Next() {
		var ticker string
		if err := rows.Scan(&ticker); err != nil {
			return nil, err
		}
		tickers = append(tickers, ticker)
	}
	return tickers, rows.Err()
}

// AddTicker inserts a ticker into a watchlist. Adding an existing ticker is
// a no-op.
func (r *Repository) AddTicker(ctx context.Context, userID string, listID int64, ticker string) error {
	if err := r.assertOwned(ctx, userID, listID); err != nil {
		return err
	}

	query := `
		INSERT INTO watchlist_items (watchlist_id, ticker)
		VALUES ($1, $2)
		ON CONFLICT (watchlist_id, ticker) DO NOTHING
	`

	_, err := r.pool.Exec(ctx, query, listID, normalizeTicker(ticker))
	return err
}

// RemoveTicker deletes a ticker from a watchlist.
func (r *Repository) RemoveTicker(ctx context.Context, userID string, listID int64, ticker string) error {
	if err := r.assertOwned(ctx, userID, listID); err != nil {
		return err
	}

	_, err := r.pool.Exec(ctx,
		`DELETE FROM watchlist_items WHERE watchlist_id = $1 AND ticker = $2`,
		listID, normalizeTicker(ticker))
	return err
}

// DistinctTickers returns every ticker present in any watchlist. Used by the
// cache warm job.
func (r *Repository) DistinctTickers(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT DISTINCT ticker FROM watchlist_items ORDER BY ticker`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tickers []string
	for rows.Next() {
		var ticker string
		if err := rows.Scan(&ticker); err != nil {
			return nil, err
		}
		tickers = append(tickers, ticker)
	}
	return tickers, rows.Err()
}

func (r *Repository) assertOwned(ctx context.Context, userID string, listID int64) error {
	var id int64
	err := r.pool.QueryRow(ctx,
		`SELECT id FROM watchlists WHERE id = $1 AND user_id = $2`, listID, userID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func normalizeTicker(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}
