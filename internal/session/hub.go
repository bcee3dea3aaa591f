package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/inamate/canvas/internal/document"
	"github.com/inamate/canvas/internal/engine"
)

var ErrBoardBusy = errors.New("board already has an editing session")

// Loader fetches the stored document of a board.
type Loader func(ctx context.Context, boardID string) (*document.Envelope, error)

// Saver stores a document as the next version of a board.
type Saver func(ctx context.Context, boardID string, env *document.Envelope) (int, error)

// Hub tracks the open sessions, at most one per board, and persists them.
type Hub struct {
	mu sync.Mutex
	// A nil entry reserves a board whose document is still loading.
	sessions map[string]*Session

	load       Loader
	save       Saver
	saveMu     sync.Mutex
	engineOpts []engine.Option
	autosave   time.Duration
	logger     *slog.Logger

	stop     chan struct{}
	stopOnce sync.Once
}

type Option func(*Hub)

// WithAutosave sets how often dirty sessions are saved. Zero disables it.
func WithAutosave(d time.Duration) Option {
	return func(h *Hub) { h.autosave = d }
}

// WithEngineOptions sets the options every session engine is built with.
func WithEngineOptions(opts ...engine.Option) Option {
	return func(h *Hub) { h.engineOpts = opts }
}

func WithLogger(logger *slog.Logger) Option {
	return func(h *Hub) { h.logger = logger }
}

func NewHub(load Loader, save Saver, opts ...Option) *Hub {
	h := &Hub{
		sessions: make(map[string]*Session),
		load:     load,
		save:     save,
		logger:   slog.Default(),
		stop:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Run autosaves until Stop is called.
func (h *Hub) Run() {
	if h.autosave <= 0 {
		<-h.stop
		return
	}

	ticker := time.NewTicker(h.autosave)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			h.SaveAll(context.Background())
		case <-h.stop:
			return
		}
	}
}

// Stop ends Run and saves every dirty session.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.stop) })
	h.SaveAll(context.Background())
}

// Open starts the editing session of a board. A board can only be open once.
func (h *Hub) Open(ctx context.Context, boardID string) (*Session, error) {
	h.mu.Lock()
	if _, ok := h.sessions[boardID]; ok {
		h.mu.Unlock()
		return nil, ErrBoardBusy
	}
	h.sessions[boardID] = nil
	h.mu.Unlock()

	env, err := h.load(ctx, boardID)
	if err != nil {
		h.mu.Lock()
		delete(h.sessions, boardID)
		h.mu.Unlock()
		return nil, fmt.Errorf("load board %s: %w", boardID, err)
	}
	if env == nil {
		env = document.NewEmptyEnvelope()
	}

	opts := append([]engine.Option{engine.WithLogger(h.logger.With("board", boardID))}, h.engineOpts...)
	s := newSession(boardID, env, opts...)

	h.mu.Lock()
	h.sessions[boardID] = s
	h.mu.Unlock()

	h.logger.Info("session opened", "board", boardID, "session", s.id, "elements", len(env.Elements))
	return s, nil
}

// Close saves the session if needed and releases the board.
func (h *Hub) Close(ctx context.Context, s *Session) {
	if _, err := h.saveSession(ctx, s, false); err != nil {
		h.logger.Error("save on close failed", "board", s.boardID, "error", err)
	}

	h.mu.Lock()
	if h.sessions[s.boardID] == s {
		delete(h.sessions, s.boardID)
	}
	h.mu.Unlock()

	h.logger.Info("session closed", "board", s.boardID, "session", s.id)
}

// IsLive reports whether a board is open.
func (h *Hub) IsLive(boardID string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ok := h.sessions[boardID]
	return ok
}

func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions)
}

// Save stores the session's document now, dirty or not.
func (h *Hub) Save(ctx context.Context, s *Session) (int, error) {
	return h.saveSession(ctx, s, true)
}

// SaveAll saves every dirty session, logging failures.
func (h *Hub) SaveAll(ctx context.Context) {
	h.mu.Lock()
	open := make([]*Session, 0, len(h.sessions))
	for _, s := range h.sessions {
		if s != nil {
			open = append(open, s)
		}
	}
	h.mu.Unlock()

	for _, s := range open {
		if _, err := h.saveSession(ctx, s, false); err != nil {
			h.logger.Error("autosave failed", "board", s.boardID, "error", err)
		}
	}
}

func (h *Hub) saveSession(ctx context.Context, s *Session, force bool) (int, error) {
	h.saveMu.Lock()
	defer h.saveMu.Unlock()

	seq, env, dirty := s.snapshot()
	if !dirty && !force {
		return 0, nil
	}

	version, err := h.save(ctx, s.boardID, &env)
	if err != nil {
		return 0, err
	}
	s.MarkSaved(seq)

	h.logger.Info("board saved", "board", s.boardID, "version", version)
	return version, nil
}
