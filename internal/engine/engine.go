package engine

import (
	"github.com/dshills/rawedit/internal/engine/buffer"
	"github.com/dshills/rawedit/internal/engine/cursor"
)

// Engine is the edit engine. It is not safe for concurrent use; the
// editor drives it from a single event loop.
type Engine struct {
	buf      *buffer.Buffer
	cur      cursor.Position
	tabWidth int

	// Text area size as of the last Resize.
	width  int
	height int

	modified bool
}

// New creates an engine with an empty buffer and the cursor at the origin.
func New(opts ...Option) *Engine {
	e := &Engine{
		buf:      buffer.New(),
		tabWidth: DefaultTabWidth,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Buffer returns the line buffer owned by the engine.
func (e *Engine) Buffer() *buffer.Buffer {
	return e.buf
}

// Cursor returns the current cursor position.
func (e *Engine) Cursor() cursor.Position {
	return e.cur
}

// SetCursor moves the cursor, clamped to the buffer.
func (e *Engine) SetCursor(p cursor.Position) {
	e.cur = p.Clamp(e.buf)
}

// TabWidth returns the current tab width.
func (e *Engine) TabWidth() int {
	return e.tabWidth
}

// SetTabWidth changes the tab width. Non-positive widths are ignored.
func (e *Engine) SetTabWidth(width int) {
	if width > 0 {
		e.tabWidth = width
	}
}

// Size returns the text area size as of the last Resize.
func (e *Engine) Size() (width, height int) {
	return e.width, e.height
}

// Resize records the text area size and pads the buffer so that every
// visible row is backed by a line. Lines are never dropped on shrink.
func (e *Engine) Resize(width, height int) {
	e.width = max(width, 0)
	e.height = max(height, 0)
	e.buf.Resize(e.height)
	e.cur = e.cur.Clamp(e.buf)
}

// Modified reports whether the buffer changed since the last MarkSaved.
func (e *Engine) Modified() bool {
	return e.modified
}

// MarkSaved clears the modified flag.
func (e *Engine) MarkSaved() {
	e.modified = false
}
