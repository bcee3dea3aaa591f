package session

import (
	"sync"

	"github.com/inamate/canvas/internal/document"
	"github.com/inamate/canvas/internal/engine"
	"github.com/inamate/canvas/internal/typeid"
)

// Session owns the engine of one open board. The engine is confined to the
// session: every access goes through the session's mutex.
type Session struct {
	mu      sync.Mutex
	id      string
	boardID string
	engine  *engine.Engine
	dirty   bool
	seq     int64

	listeners []func(seq int64, state engine.State)
}

func newSession(boardID string, env *document.Envelope, opts ...engine.Option) *Session {
	s := &Session{
		id:      typeid.NewSessionID(),
		boardID: boardID,
		engine:  engine.New(opts...),
	}
	if env != nil {
		s.engine.ImportData(*env)
	}
	s.engine.Subscribe(s.onChange)
	return s
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) BoardID() string {
	return s.boardID
}

// onChange runs inside Apply with the lock held.
func (s *Session) onChange() {
	s.dirty = true
	s.seq++
	if len(s.listeners) == 0 {
		return
	}
	state := s.engine.State()
	for _, l := range s.listeners {
		l(s.seq, state)
	}
}

// OnState registers fn to receive the state after every change.
func (s *Session) OnState(fn func(seq int64, state engine.State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Apply runs cmd as one engine transaction, so listeners see at most one
// state per command.
func (s *Session) Apply(cmd Command) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var err error
	s.engine.Transaction(func() {
		err = Apply(s.engine, cmd)
	})
	return err
}

// State returns the current state and its sequence number.
func (s *Session) State() (int64, engine.State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seq, s.engine.State()
}

// Export returns the document and whether it changed since the last
// MarkSaved.
func (s *Session) Export() (document.Envelope, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.ExportData(), s.dirty
}

// MarkSaved clears the dirty flag unless the engine changed after seq.
func (s *Session) MarkSaved(seq int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.seq == seq {
		s.dirty = false
	}
}

func (s *Session) snapshot() (int64, document.Envelope, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seq, s.engine.ExportData(), s.dirty
}
