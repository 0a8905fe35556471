package store

// Snapshot implementation (Postgres)

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"geekynerds/internal/cart"
)

// snapshotKey is the single well-known key the whole collection lives
// under, the storage-key analog of the original scheme.
const snapshotKey = "cart"

type CartPG struct {
	db *pgxpool.Pool
}

func NewCartPG(db *pgxpool.Pool) *CartPG {
	return &CartPG{db: db}
}

func (r *CartPG) Load(ctx context.Context) ([]cart.Line, error) {
	query := `
	SELECT lines
	FROM cart_snapshots
	WHERE key = $1
	`
	var raw []byte
	err := r.db.QueryRow(ctx, query, snapshotKey).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cart snapshot select: %w", err)
	}

	var lines []cart.Line
	if err := json.Unmarshal(raw, &lines); err != nil {
		return nil, fmt.Errorf("cart snapshot decode: %w", err)
	}
	return lines, nil
}

func (r *CartPG) Save(ctx context.Context, lines []cart.Line) error {
	if lines == nil {
		lines = []cart.Line{}
	}
	raw, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("cart snapshot encode: %w", err)
	}

	query := `
	INSERT INTO cart_snapshots (key, lines, updated_at)
	VALUES ($1, $2, now())
	ON CONFLICT (key) DO UPDATE
	SET lines = EXCLUDED.lines, updated_at = now()
	`
	if _, err := r.db.Exec(ctx, query, snapshotKey, raw); err != nil {
		return fmt.Errorf("cart snapshot upsert: %w", err)
	}
	return nil
}
