package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/inamate/canvas/internal/document"
)

func newTestSQLite(t *testing.T) Store {
	t.Helper()
	s, err := NewSQLite(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// stores returns every backend available in this environment. Postgres is
// exercised only when CANVAS_TEST_POSTGRES_URL is set.
func stores(t *testing.T) map[string]Store {
	t.Helper()
	out := map[string]Store{"sqlite": newTestSQLite(t)}

	if url := os.Getenv("CANVAS_TEST_POSTGRES_URL"); url != "" {
		pg, err := NewPostgres(context.Background(), url)
		if err != nil {
			t.Fatalf("open postgres: %v", err)
		}
		t.Cleanup(func() { pg.Close() })
		out["postgres"] = pg
	}
	return out
}

func TestCreateBoardSeedsEmptyDocument(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			b, err := s.CreateBoard(ctx, "  Wireframes ")
			if err != nil {
				t.Fatalf("CreateBoard: %v", err)
			}
			if b.Name != "Wireframes" {
				t.Errorf("expected trimmed name, got %q", b.Name)
			}

			snap, err := s.LatestSnapshot(ctx, b.ID)
			if err != nil {
				t.Fatalf("LatestSnapshot: %v", err)
			}
			if snap.Version != 1 {
				t.Errorf("expected version 1, got %d", snap.Version)
			}
			if len(snap.Document.Elements) != 0 {
				t.Errorf("expected empty document, got %d elements", len(snap.Document.Elements))
			}
			if snap.Document.Viewport.Zoom != 1 {
				t.Errorf("expected default zoom, got %v", snap.Document.Viewport.Zoom)
			}
		})
	}
}

func TestCreateBoardRequiresName(t *testing.T) {
	s := newTestSQLite(t)
	if _, err := s.CreateBoard(context.Background(), "   "); !errors.Is(err, ErrInvalidName) {
		t.Errorf("expected ErrInvalidName, got %v", err)
	}
}

func TestSaveSnapshotVersions(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			b, err := s.CreateBoard(ctx, "Versions")
			if err != nil {
				t.Fatalf("CreateBoard: %v", err)
			}

			sample := document.NewSampleEnvelope()
			for want := 2; want <= 4; want++ {
				got, err := s.SaveSnapshot(ctx, b.ID, sample)
				if err != nil {
					t.Fatalf("SaveSnapshot: %v", err)
				}
				if got != want {
					t.Errorf("expected version %d, got %d", want, got)
				}
			}

			snap, err := s.LatestSnapshot(ctx, b.ID)
			if err != nil {
				t.Fatalf("LatestSnapshot: %v", err)
			}
			if snap.Version != 4 {
				t.Errorf("expected latest version 4, got %d", snap.Version)
			}
			if len(snap.Document.Elements) != len(sample.Elements) {
				t.Errorf("expected %d elements, got %d", len(sample.Elements), len(snap.Document.Elements))
			}
			if err := document.Validate(&snap.Document); err != nil {
				t.Errorf("stored document invalid: %v", err)
			}
		})
	}
}

func TestMissingBoard(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			if _, err := s.GetBoard(ctx, "board_missing"); !errors.Is(err, ErrNotFound) {
				t.Errorf("GetBoard: expected ErrNotFound, got %v", err)
			}
			if err := s.DeleteBoard(ctx, "board_missing"); !errors.Is(err, ErrNotFound) {
				t.Errorf("DeleteBoard: expected ErrNotFound, got %v", err)
			}
			if _, err := s.SaveSnapshot(ctx, "board_missing", document.NewEmptyEnvelope()); !errors.Is(err, ErrNotFound) {
				t.Errorf("SaveSnapshot: expected ErrNotFound, got %v", err)
			}
			if _, err := s.LatestSnapshot(ctx, "board_missing"); !errors.Is(err, ErrNotFound) {
				t.Errorf("LatestSnapshot: expected ErrNotFound, got %v", err)
			}
		})
	}
}

func TestListAndDeleteBoards(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLite(t)

	a, err := s.CreateBoard(ctx, "A")
	if err != nil {
		t.Fatalf("CreateBoard: %v", err)
	}
	if _, err := s.CreateBoard(ctx, "B"); err != nil {
		t.Fatalf("CreateBoard: %v", err)
	}

	boards, err := s.ListBoards(ctx)
	if err != nil {
		t.Fatalf("ListBoards: %v", err)
	}
	if len(boards) != 2 {
		t.Fatalf("expected 2 boards, got %d", len(boards))
	}

	if err := s.DeleteBoard(ctx, a.ID); err != nil {
		t.Fatalf("DeleteBoard: %v", err)
	}
	if _, err := s.LatestSnapshot(ctx, a.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("snapshots should be deleted with the board, got %v", err)
	}

	boards, _ = s.ListBoards(ctx)
	if len(boards) != 1 || boards[0].Name != "B" {
		t.Errorf("unexpected boards after delete: %+v", boards)
	}
}

func TestOpenPicksSQLiteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "canvas.db")
	s, err := Open(context.Background(), "sqlite://"+path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	if _, ok := s.(*SQLiteStore); !ok {
		t.Errorf("expected SQLite store, got %T", s)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("database file not created: %v", err)
	}
}
