package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/panelspace/panelspace/internal/workspace"
)

// NewPool opens a connection pool and checks it with a ping.
func NewPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS workspaces (
	id          TEXT PRIMARY KEY,
	owner_id    TEXT NOT NULL DEFAULT '',
	name        TEXT NOT NULL,
	version     INTEGER NOT NULL DEFAULT 1,
	panel_count INTEGER NOT NULL DEFAULT 0,
	document    JSONB NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS workspaces_owner_idx ON workspaces (owner_id, updated_at DESC);
`

// PostgresStore keeps one row per workspace with the snapshot in a JSONB
// column. Saves overwrite the row; there is no snapshot history.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Migrate creates the table if it does not exist.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

func (s *PostgresStore) Load(ctx context.Context, id string) (*workspace.Workspace, error) {
	var (
		doc       []byte
		version   int
		createdAt time.Time
		updatedAt time.Time
	)
	err := s.pool.QueryRow(ctx,
		`SELECT document, version, created_at, updated_at FROM workspaces WHERE id = $1`, id,
	).Scan(&doc, &version, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load workspace %s: %w", id, err)
	}

	var ws workspace.Workspace
	if err := json.Unmarshal(doc, &ws); err != nil {
		return nil, fmt.Errorf("decode workspace %s: %w", id, err)
	}
	ws.Version = version
	ws.CreatedAt = createdAt.UTC().Format(time.RFC3339)
	ws.UpdatedAt = updatedAt.UTC().Format(time.RFC3339)
	return &ws, nil
}

func (s *PostgresStore) Save(ctx context.Context, ws *workspace.Workspace) error {
	if ws.ID == "" {
		return ErrNoID
	}
	doc, err := json.Marshal(ws)
	if err != nil {
		return fmt.Errorf("encode workspace %s: %w", ws.ID, err)
	}

	var (
		version   int
		createdAt time.Time
		updatedAt time.Time
	)
	err = s.pool.QueryRow(ctx, `
		INSERT INTO workspaces (id, owner_id, name, panel_count, document)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			name        = EXCLUDED.name,
			panel_count = EXCLUDED.panel_count,
			document    = EXCLUDED.document,
			version     = workspaces.version + 1,
			updated_at  = now()
		RETURNING version, created_at, updated_at`,
		ws.ID, ws.OwnerID, ws.Name, len(ws.Panels), doc,
	).Scan(&version, &createdAt, &updatedAt)
	if err != nil {
		return fmt.Errorf("save workspace %s: %w", ws.ID, err)
	}

	ws.Version = version
	ws.CreatedAt = createdAt.UTC().Format(time.RFC3339)
	ws.UpdatedAt = updatedAt.UTC().Format(time.RFC3339)
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM workspaces WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete workspace %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) List(ctx context.Context, ownerID string) ([]Summary, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, owner_id, version, panel_count, created_at, updated_at
		FROM workspaces
		WHERE $1 = '' OR owner_id = $1
		ORDER BY updated_at DESC, id`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list workspaces: %w", err)
	}
	defer rows.Close()

	out := []Summary{}
	for rows.Next() {
		var (
			sum                  Summary
			createdAt, updatedAt time.Time
		)
		if err := rows.Scan(&sum.ID, &sum.Name, &sum.OwnerID, &sum.Version, &sum.PanelCount, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan workspace: %w", err)
		}
		sum.CreatedAt = createdAt.UTC().Format(time.RFC3339)
		sum.UpdatedAt = updatedAt.UTC().Format(time.RFC3339)
		out = append(out, sum)
	}
	return out, rows.Err()
}
