// Package engine implements the edit engine: it owns the line buffer and
// the cursor position and maps key events onto buffer mutations and
// cursor movement.
//
// The engine is stateless across key events apart from the buffer and
// cursor it owns. HandleKey consults a dispatch table keyed by key and
// modifier set and returns a Result telling the caller whether the
// screen needs a full redraw, only a cursor update, a save, or whether
// the session should end. The engine never talks to the terminal.
//
// Basic usage:
//
//	e := engine.New(engine.WithTabWidth(4))
//	e.Resize(80, 24)
//
//	res := e.HandleKey(key.NewRuneEvent('a', key.ModNone))
//	if res.Redraw {
//	    // draw e.Buffer().Lines() and place the cursor at e.Cursor()
//	}
//
// Cursor movement is always clamped to the buffer: the row stays within
// [0, LineCount) and the column within [0, LineLen(row)]. Out-of-range
// movement is a no-op, never an error.
package engine
