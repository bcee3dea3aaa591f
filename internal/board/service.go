package board

import (
	"context"
	"errors"
	"fmt"

	"github.com/inamate/canvas/internal/document"
	"github.com/inamate/canvas/internal/store"
)

var (
	ErrNotFound        = errors.New("board not found")
	ErrBoardBusy       = errors.New("board has an active editing session")
	ErrInvalidDocument = errors.New("invalid document")
	ErrInvalidName     = errors.New("name is required")
)

// LiveChecker reports whether a board is open in an editing session.
type LiveChecker interface {
	IsLive(boardID string) bool
}

type Service struct {
	store store.Store
	live  LiveChecker
}

// NewService returns a board service. live may be nil when no session hub
// runs alongside, as in the CLI.
func NewService(s store.Store, live LiveChecker) *Service {
	return &Service{store: s, live: live}
}

func (s *Service) Create(ctx context.Context, name string) (*store.Board, error) {
	b, err := s.store.CreateBoard(ctx, name)
	if err != nil {
		return nil, mapStoreError(err, "create board")
	}
	return b, nil
}

func (s *Service) Get(ctx context.Context, boardID string) (*store.Board, error) {
	b, err := s.store.GetBoard(ctx, boardID)
	if err != nil {
		return nil, mapStoreError(err, "get board")
	}
	return b, nil
}

func (s *Service) List(ctx context.Context) ([]store.Board, error) {
	boards, err := s.store.ListBoards(ctx)
	if err != nil {
		return nil, fmt.Errorf("list boards: %w", err)
	}
	return boards, nil
}

func (s *Service) Delete(ctx context.Context, boardID string) error {
	if s.isLive(boardID) {
		return ErrBoardBusy
	}
	return mapStoreError(s.store.DeleteBoard(ctx, boardID), "delete board")
}

// LatestSnapshot returns the newest stored document of a board.
func (s *Service) LatestSnapshot(ctx context.Context, boardID string) (*store.Snapshot, error) {
	snap, err := s.store.LatestSnapshot(ctx, boardID)
	if err != nil {
		return nil, mapStoreError(err, "latest snapshot")
	}
	return snap, nil
}

// ReplaceDocument validates env and stores it as the next version. Boards
// being edited live are refused so the session does not overwrite it.
func (s *Service) ReplaceDocument(ctx context.Context, boardID string, env *document.Envelope) (int, error) {
	if err := document.Validate(env); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	if s.isLive(boardID) {
		return 0, ErrBoardBusy
	}
	version, err := s.store.SaveSnapshot(ctx, boardID, env)
	if err != nil {
		return 0, mapStoreError(err, "save snapshot")
	}
	return version, nil
}

func (s *Service) isLive(boardID string) bool {
	return s.live != nil && s.live.IsLive(boardID)
}

func mapStoreError(err error, op string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, store.ErrInvalidName):
		return ErrInvalidName
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
