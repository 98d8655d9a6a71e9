package engine

import (
	"github.com/dshills/rawedit/internal/engine/buffer"
)

// DefaultTabWidth is the number of spaces inserted by Tab and the
// indentation step removed by Backspace inside leading whitespace.
const DefaultTabWidth = 4

// Option configures an Engine during creation.
type Option func(*Engine)

// WithBuffer sets the initial buffer of the engine.
func WithBuffer(b *buffer.Buffer) Option {
	return func(e *Engine) {
		if b != nil {
			e.buf = b
		}
	}
}

// WithTabWidth sets the tab width for the engine.
func WithTabWidth(width int) Option {
	return func(e *Engine) {
		if width > 0 {
			e.tabWidth = width
		}
	}
}
