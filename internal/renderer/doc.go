// Package renderer draws the edit buffer and status line through a
// terminal backend.
//
// Every frame is a full redraw: clear the screen, draw the visible lines
// starting at the viewport top, draw the status line, place the cursor
// and show. Columns are rune indices; they are converted to screen cells
// with go-runewidth so wide characters take two cells.
//
// Usage:
//
//	term, _ := backend.NewTerminal()
//	r := renderer.New(term, renderer.DefaultOptions())
//	r.Render(engine.Buffer(), engine.Cursor())
package renderer
