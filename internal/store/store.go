// Package store persists boards and versioned document snapshots.
//
// Two backends implement Store: SQLite (modernc.org/sqlite, the default and
// the one used in tests) and Postgres (pgx). Open picks one from a URL.
package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/inamate/canvas/internal/document"
)

var (
	ErrNotFound    = errors.New("not found")
	ErrInvalidName = errors.New("board name is required")
)

type Board struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Snapshot struct {
	ID        string            `json:"id"`
	BoardID   string            `json:"boardId"`
	Version   int               `json:"version"`
	Document  document.Envelope `json:"document"`
	CreatedAt time.Time         `json:"createdAt"`
}

// Store is the persistence boundary shared by the HTTP handlers, the
// session hub and the CLI.
type Store interface {
	// CreateBoard inserts a board and seeds it with an empty document at
	// version 1.
	CreateBoard(ctx context.Context, name string) (*Board, error)
	ListBoards(ctx context.Context) ([]Board, error)
	GetBoard(ctx context.Context, id string) (*Board, error)
	// DeleteBoard removes a board and all its snapshots.
	DeleteBoard(ctx context.Context, id string) error
	// SaveSnapshot stores env as the next version of the board and returns
	// that version.
	SaveSnapshot(ctx context.Context, boardID string, env *document.Envelope) (int, error)
	LatestSnapshot(ctx context.Context, boardID string) (*Snapshot, error)
	Close() error
}

// Open connects to the store named by url. postgres:// and postgresql://
// URLs use Postgres; anything else is treated as a SQLite path, with an
// optional sqlite:// scheme.
func Open(ctx context.Context, url string) (Store, error) {
	if strings.HasPrefix(url, "postgres://") || strings.HasPrefix(url, "postgresql://") {
		return NewPostgres(ctx, url)
	}
	return NewSQLite(ctx, strings.TrimPrefix(url, "sqlite://"))
}

func validName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrInvalidName
	}
	return name, nil
}
