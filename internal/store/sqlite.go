package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	// SQLite driver
	_ "modernc.org/sqlite"

	"github.com/inamate/canvas/internal/document"
	"github.com/inamate/canvas/internal/typeid"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS boards (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS snapshots (
	id         TEXT PRIMARY KEY,
	board_id   TEXT NOT NULL REFERENCES boards(id) ON DELETE CASCADE,
	version    INTEGER NOT NULL,
	document   TEXT NOT NULL,
	created_at INTEGER NOT NULL,
	UNIQUE (board_id, version)
);
`

// SQLiteStore implements Store on an embedded SQLite database. Timestamps
// are stored as unix milliseconds.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens (creating if needed) the database at path. ":memory:"
// gives a private in-memory database.
func NewSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, fmt.Errorf("database path is required")
	}

	memory := path == ":memory:"
	if !memory {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create database dir: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Every connection to :memory: is a separate database.
	if memory {
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(4)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) CreateBoard(ctx context.Context, name string) (*Board, error) {
	name, err := validName(name)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC().Truncate(time.Millisecond)
	board := &Board{ID: typeid.NewBoardID(), Name: name, CreatedAt: now, UpdatedAt: now}

	docJSON, err := json.Marshal(document.NewEmptyEnvelope())
	if err != nil {
		return nil, fmt.Errorf("marshal empty document: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO boards (id, name, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		board.ID, board.Name, now.UnixMilli(), now.UnixMilli(),
	); err != nil {
		return nil, fmt.Errorf("create board: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO snapshots (id, board_id, version, document, created_at) VALUES (?, ?, 1, ?, ?)`,
		typeid.NewSnapshotID(), board.ID, string(docJSON), now.UnixMilli(),
	); err != nil {
		return nil, fmt.Errorf("create initial snapshot: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return board, nil
}

func (s *SQLiteStore) ListBoards(ctx context.Context) ([]Board, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, created_at, updated_at FROM boards ORDER BY updated_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list boards: %w", err)
	}
	defer rows.Close()

	boards := []Board{}
	for rows.Next() {
		b, err := scanSQLiteBoard(rows)
		if err != nil {
			return nil, fmt.Errorf("scan board: %w", err)
		}
		boards = append(boards, *b)
	}
	return boards, rows.Err()
}

func (s *SQLiteStore) GetBoard(ctx context.Context, id string) (*Board, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, created_at, updated_at FROM boards WHERE id = ?`, id)
	b, err := scanSQLiteBoard(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get board: %w", err)
	}
	return b, nil
}

func (s *SQLiteStore) DeleteBoard(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM boards WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete board: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete board: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) SaveSnapshot(ctx context.Context, boardID string, env *document.Envelope) (int, error) {
	docJSON, err := json.Marshal(env)
	if err != nil {
		return 0, fmt.Errorf("marshal document: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	var version int
	err = tx.QueryRowContext(ctx, `
		SELECT COALESCE(MAX(s.version), 0)
		FROM boards b LEFT JOIN snapshots s ON s.board_id = b.id
		WHERE b.id = ?
		GROUP BY b.id`, boardID).Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("current version: %w", err)
	}
	version++

	now := time.Now().UTC().UnixMilli()
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO snapshots (id, board_id, version, document, created_at) VALUES (?, ?, ?, ?, ?)`,
		typeid.NewSnapshotID(), boardID, version, string(docJSON), now,
	); err != nil {
		return 0, fmt.Errorf("create snapshot: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE boards SET updated_at = ? WHERE id = ?`, now, boardID,
	); err != nil {
		return 0, fmt.Errorf("touch board: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return version, nil
}

func (s *SQLiteStore) LatestSnapshot(ctx context.Context, boardID string) (*Snapshot, error) {
	var (
		snap      Snapshot
		docJSON   string
		createdAt int64
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, board_id, version, document, created_at
		FROM snapshots WHERE board_id = ?
		ORDER BY version DESC LIMIT 1`, boardID,
	).Scan(&snap.ID, &snap.BoardID, &snap.Version, &docJSON, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("latest snapshot: %w", err)
	}

	if err := json.Unmarshal([]byte(docJSON), &snap.Document); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", snap.ID, err)
	}
	snap.CreatedAt = time.UnixMilli(createdAt).UTC()
	return &snap, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLiteBoard(row rowScanner) (*Board, error) {
	var (
		b                    Board
		createdAt, updatedAt int64
	)
	if err := row.Scan(&b.ID, &b.Name, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	b.CreatedAt = time.UnixMilli(createdAt).UTC()
	b.UpdatedAt = time.UnixMilli(updatedAt).UTC()
	return &b, nil
}
