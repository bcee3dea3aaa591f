package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inamate/canvas/internal/document"
	"github.com/inamate/canvas/internal/typeid"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS boards (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS snapshots (
	id         TEXT PRIMARY KEY,
	board_id   TEXT NOT NULL REFERENCES boards(id) ON DELETE CASCADE,
	version    INTEGER NOT NULL,
	document   JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (board_id, version)
);
`

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgres(ctx context.Context, url string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) CreateBoard(ctx context.Context, name string) (*Board, error) {
	name, err := validName(name)
	if err != nil {
		return nil, err
	}

	docJSON, err := json.Marshal(document.NewEmptyEnvelope())
	if err != nil {
		return nil, fmt.Errorf("marshal empty document: %w", err)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	var b Board
	err = tx.QueryRow(ctx,
		`INSERT INTO boards (id, name) VALUES ($1, $2) RETURNING id, name, created_at, updated_at`,
		typeid.NewBoardID(), name,
	).Scan(&b.ID, &b.Name, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create board: %w", err)
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO snapshots (id, board_id, version, document) VALUES ($1, $2, 1, $3)`,
		typeid.NewSnapshotID(), b.ID, docJSON,
	); err != nil {
		return nil, fmt.Errorf("create initial snapshot: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return &b, nil
}

func (s *PostgresStore) ListBoards(ctx context.Context) ([]Board, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, created_at, updated_at FROM boards ORDER BY updated_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list boards: %w", err)
	}
	defer rows.Close()

	boards := []Board{}
	for rows.Next() {
		var b Board
		if err := rows.Scan(&b.ID, &b.Name, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan board: %w", err)
		}
		boards = append(boards, b)
	}
	return boards, rows.Err()
}

func (s *PostgresStore) GetBoard(ctx context.Context, id string) (*Board, error) {
	var b Board
	err := s.pool.QueryRow(ctx,
		`SELECT id, name, created_at, updated_at FROM boards WHERE id = $1`, id,
	).Scan(&b.ID, &b.Name, &b.CreatedAt, &b.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get board: %w", err)
	}
	return &b, nil
}

func (s *PostgresStore) DeleteBoard(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM boards WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete board: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) SaveSnapshot(ctx context.Context, boardID string, env *document.Envelope) (int, error) {
	docJSON, err := json.Marshal(env)
	if err != nil {
		return 0, fmt.Errorf("marshal document: %w", err)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	// Lock the board row so concurrent saves get distinct versions.
	var id string
	err = tx.QueryRow(ctx, `SELECT id FROM boards WHERE id = $1 FOR UPDATE`, boardID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("lock board: %w", err)
	}

	var version int
	if err := tx.QueryRow(ctx,
		`SELECT COALESCE(MAX(version), 0) + 1 FROM snapshots WHERE board_id = $1`, boardID,
	).Scan(&version); err != nil {
		return 0, fmt.Errorf("next version: %w", err)
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO snapshots (id, board_id, version, document) VALUES ($1, $2, $3, $4)`,
		typeid.NewSnapshotID(), boardID, version, docJSON,
	); err != nil {
		return 0, fmt.Errorf("create snapshot: %w", err)
	}
	if _, err := tx.Exec(ctx, `UPDATE boards SET updated_at = now() WHERE id = $1`, boardID); err != nil {
		return 0, fmt.Errorf("touch board: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return version, nil
}

func (s *PostgresStore) LatestSnapshot(ctx context.Context, boardID string) (*Snapshot, error) {
	var (
		snap      Snapshot
		docJSON   []byte
		createdAt time.Time
	)
	err := s.pool.QueryRow(ctx, `
		SELECT id, board_id, version, document, created_at
		FROM snapshots WHERE board_id = $1
		ORDER BY version DESC LIMIT 1`, boardID,
	).Scan(&snap.ID, &snap.BoardID, &snap.Version, &docJSON, &createdAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("latest snapshot: %w", err)
	}

	if err := json.Unmarshal(docJSON, &snap.Document); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", snap.ID, err)
	}
	snap.CreatedAt = createdAt
	return &snap, nil
}
