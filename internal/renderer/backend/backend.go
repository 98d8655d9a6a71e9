// Package backend provides the terminal abstraction the editor draws to
// and reads events from.
package backend

import (
	"errors"

	"github.com/dshills/rawedit/internal/input/key"
)

// ErrEventQueueFull is returned by PostEvent when the event cannot be queued.
var ErrEventQueueFull = errors.New("event queue full")

// Attr is a set of text attributes for a cell.
type Attr uint8

const (
	AttrNone    Attr = 0
	AttrBold    Attr = 1 << (iota - 1)
	AttrDim
	AttrReverse
)

// Has returns true if a contains the given attribute.
func (a Attr) Has(attr Attr) bool {
	return a&attr != 0
}

// Cell is a single character cell on screen.
type Cell struct {
	Rune rune
	Attr Attr
}

// EmptyCell returns a blank cell with no attributes.
func EmptyCell() Cell {
	return Cell{Rune: ' '}
}

// EventType identifies the type of terminal event.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventResize
	EventInterrupt
	EventError
	EventClosed
)

// String returns the event type name.
func (t EventType) String() string {
	switch t {
	case EventKey:
		return "key"
	case EventResize:
		return "resize"
	case EventInterrupt:
		return "interrupt"
	case EventError:
		return "error"
	case EventClosed:
		return "closed"
	default:
		return "none"
	}
}

// Event represents a terminal event.
type Event struct {
	Type EventType

	// Key event fields
	Key key.Event

	// Resize event fields
	Width, Height int

	// Interrupt event payload, posted with PostEvent.
	Payload any

	// Error event fields
	Err error
}

// Backend defines the interface for terminal backends.
// Implementations handle actual drawing to the terminal and reading input.
type Backend interface {
	// Init puts the terminal into raw mode and prepares it for drawing.
	// Must be called before any other methods.
	Init() error

	// Shutdown clears the screen and restores the terminal to the mode it
	// was in before Init. Safe to call more than once.
	Shutdown()

	// Size returns the current terminal dimensions.
	Size() (width, height int)

	// SetCell sets a single cell at the given position.
	// Positions outside the terminal are silently ignored.
	SetCell(x, y int, cell Cell)

	// Clear clears the entire screen.
	Clear()

	// Show synchronizes the internal buffer with the actual display.
	Show()

	// ShowCursor positions and displays the cursor. Positions outside the
	// terminal are clamped to the nearest cell.
	ShowCursor(x, y int)

	// HideCursor hides the cursor.
	HideCursor()

	// PollEvent waits for and returns the next terminal event.
	// This is a blocking call.
	PollEvent() Event

	// PostEvent queues a synthetic event. It may be called from any
	// goroutine.
	PostEvent(event Event) error
}

func clampToScreen(x, y, width, height int) (int, int) {
	x = min(max(x, 0), max(width-1, 0))
	y = min(max(y, 0), max(height-1, 0))
	return x, y
}
