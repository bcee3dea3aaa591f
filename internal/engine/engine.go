package engine

import (
	"log/slog"
	"slices"

	"github.com/inamate/canvas/internal/document"
	"github.com/inamate/canvas/internal/snap"
	"github.com/inamate/canvas/internal/typeid"
)

// Engine is the editor engine: it owns the elements, the viewport, the
// selection and the active gesture, and notifies subscribers after every
// change.
//
// An Engine is not safe for concurrent use. It must be confined to one
// goroutine or guarded by its owner (see session.Session).
type Engine struct {
	cfg    Config
	logger *slog.Logger
	newID  func() string

	viewport document.Viewport

	// Store order is insertion order; z-order lives in Element.ZIndex.
	elements []*document.Element
	byID     map[string]*document.Element

	selection    []string
	gesture      Gesture
	editingID    string
	hoverFrameID string
	tool         Tool
	guides       []snap.Guide

	listeners      []listenerEntry
	nextListenerID uint64
	batchDepth     int
	pending        bool
}

// Listener is called after the engine state changed.
type Listener func()

type listenerEntry struct {
	id uint64
	fn Listener
}

// Option configures an Engine.
type Option func(*Engine)

// WithConfig replaces the default configuration.
func WithConfig(cfg Config) Option {
	return func(e *Engine) {
		e.cfg = cfg.withDefaults()
	}
}

// WithLogger sets the logger used for debug events.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithIDGenerator overrides element id generation.
func WithIDGenerator(fn func() string) Option {
	return func(e *Engine) {
		if fn != nil {
			e.newID = fn
		}
	}
}

// New creates an engine with an empty board.
func New(opts ...Option) *Engine {
	e := &Engine{
		cfg:      DefaultConfig(),
		logger:   slog.New(slog.DiscardHandler),
		newID:    typeid.NewElementID,
		viewport: document.DefaultViewport(),
		byID:     make(map[string]*document.Element),
		gesture:  Idle{},
		tool:     ToolSelect,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Config returns the engine configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// --- Subscription ---

// Subscribe registers a listener and returns a function that removes it.
func (e *Engine) Subscribe(l Listener) (unsubscribe func()) {
	e.nextListenerID++
	id := e.nextListenerID
	e.listeners = append(e.listeners, listenerEntry{id: id, fn: l})

	return func() {
		e.listeners = slices.DeleteFunc(e.listeners, func(le listenerEntry) bool {
			return le.id == id
		})
	}
}

// Transaction runs fn with notifications deferred. Listeners fire once after
// the outermost transaction returns, and only if something changed.
func (e *Engine) Transaction(fn func()) {
	e.batchDepth++
	defer func() {
		e.batchDepth--
		if e.batchDepth == 0 && e.pending {
			e.flush()
		}
	}()
	fn()
}

// changed marks the state dirty and notifies unless a transaction is open.
func (e *Engine) changed() {
	e.pending = true
	if e.batchDepth == 0 {
		e.flush()
	}
}

func (e *Engine) flush() {
	e.pending = false
	listeners := slices.Clone(e.listeners)
	for _, l := range listeners {
		l.fn()
	}
}

// --- Tool ---

// Tool returns the active tool.
func (e *Engine) Tool() Tool {
	return e.tool
}

// SetTool switches the active tool. Unknown tools are ignored.
func (e *Engine) SetTool(t Tool) {
	if !t.Valid() || e.tool == t {
		return
	}
	e.tool = t
	e.changed()
}

// --- Persistence boundary ---

// ExportData returns the persisted form of the board.
func (e *Engine) ExportData() document.Envelope {
	return document.Envelope{
		Version:  document.CurrentVersion,
		Viewport: e.viewport,
		Elements: e.cloneElements(),
	}
}

// ImportData replaces the board wholesale and resets selection, gesture,
// editing and hover state.
func (e *Engine) ImportData(env document.Envelope) {
	e.elements = make([]*document.Element, 0, len(env.Elements))
	e.byID = make(map[string]*document.Element, len(env.Elements))
	for _, src := range env.Elements {
		if _, dup := e.byID[src.ID]; dup || src.ID == "" {
			e.logger.Debug("skip element on import", "id", src.ID)
			continue
		}
		el := src.Clone()
		e.elements = append(e.elements, &el)
		e.byID[el.ID] = &el
	}

	e.viewport = env.Viewport
	if e.viewport.Zoom <= 0 {
		e.viewport.Zoom = 1
	}
	e.viewport.Zoom = e.clampZoom(e.viewport.Zoom)

	e.selection = nil
	e.gesture = Idle{}
	e.editingID = ""
	e.hoverFrameID = ""
	e.guides = nil

	e.logger.Debug("imported board", "elements", len(e.elements), "version", env.Version)
	e.changed()
}

func (e *Engine) cloneElements() []document.Element {
	out := make([]document.Element, len(e.elements))
	for i, el := range e.elements {
		out[i] = el.Clone()
	}
	return out
}
