package engine

import (
	"strings"

	"github.com/dshills/rawedit/internal/engine/cursor"
	"github.com/dshills/rawedit/internal/input/key"
)

// keyHandler handles a special key pressed without modifiers (or with
// Shift only).
type keyHandler func(e *Engine) Result

// plainKeys is the dispatch table for unmodified special keys.
var plainKeys = map[key.Key]keyHandler{
	key.KeyRight:     (*Engine).moveRight,
	key.KeyLeft:      (*Engine).moveLeft,
	key.KeyUp:        (*Engine).moveUp,
	key.KeyDown:      (*Engine).moveDown,
	key.KeyHome:      (*Engine).moveLineStart,
	key.KeyEnd:       (*Engine).moveLineEnd,
	key.KeyEnter:     (*Engine).newline,
	key.KeyTab:       (*Engine).tab,
	key.KeyBackspace: (*Engine).backspace,
	key.KeyDelete:    (*Engine).deleteForward,
}

// HandleKey applies a key event to the buffer and cursor.
//
// Escape ends the session whatever modifiers are held. Any event with
// Alt or Meta held is ignored. With Ctrl held only S (save) is
// recognized. Everything else goes through the plain key table.
func (e *Engine) HandleKey(ev key.Event) Result {
	if ev.Key == key.KeyEscape {
		return Result{Status: StatusOK, Action: ActionQuit, Quit: true}
	}

	mods := ev.Modifiers
	switch {
	case mods.HasAlt() || mods.HasMeta():
		return noOp("")
	case mods.HasCtrl():
		if ev.Matches('s') {
			return Result{Status: StatusOK, Action: ActionSave, Save: true}
		}
		return noOp("")
	case ev.Key == key.KeyRune:
		if !ev.IsChar() {
			return noOp("")
		}
		return e.insertText(string(ev.Rune), ActionInsertChar)
	}

	if h, ok := plainKeys[ev.Key]; ok {
		return h(e)
	}
	return noOp("")
}

func (e *Engine) insertText(text, action string) Result {
	n := e.buf.InsertText(e.cur.Row, e.cur.Col, text)
	if n == 0 {
		return noOp(action)
	}
	e.modified = true
	e.cur = e.cur.MoveBy(n, 0).Clamp(e.buf)
	return edited(action)
}

func (e *Engine) tab() Result {
	return e.insertText(strings.Repeat(" ", e.tabWidth), ActionInsertTab)
}

// newline splits the current line at the cursor and gives the new line
// the indentation of the current one, with the cursor placed after it.
// Whitespace right of the cursor already moves down with the split, so
// only the part of the indentation left of the cursor is added.
func (e *Engine) newline() Result {
	row, col := e.cur.Row, e.cur.Col
	indent := e.buf.LeadingWhitespaceCount(row)
	prefix := string([]rune(e.buf.Line(row))[:min(col, indent)])

	if err := e.buf.SplitLine(row, col, prefix); err != nil {
		return noOp(ActionInsertNewline)
	}
	e.modified = true
	e.cur = cursor.New(indent, row+1).Clamp(e.buf)
	return edited(ActionInsertNewline)
}

// backspace joins the current line onto the previous one at column 0.
// Inside leading whitespace it removes back to the previous tab stop so
// an indentation level goes away in one step; elsewhere it removes one
// character.
func (e *Engine) backspace() Result {
	row, col := e.cur.Row, e.cur.Col

	if col == 0 {
		if row == 0 {
			return noOp(ActionBackspace)
		}
		join := e.buf.LineLen(row - 1)
		if err := e.buf.MergeLines(row - 1); err != nil {
			return noOp(ActionBackspace)
		}
		e.modified = true
		e.cur = cursor.New(join, row-1).Clamp(e.buf)
		return edited(ActionBackspace)
	}

	width := 1
	if col <= e.buf.LeadingWhitespaceCount(row) {
		width = col % e.tabWidth
		if width == 0 {
			width = e.tabWidth
		}
	}
	width = min(width, col)

	e.buf.RemoveRange(row, col-width, col)
	e.modified = true
	e.cur = e.cur.MoveBy(-width, 0).Clamp(e.buf)
	return edited(ActionBackspace)
}

// deleteForward removes the character under the cursor, or joins the next
// line onto the current one when the cursor is at the end of the line.
// The cursor does not move.
func (e *Engine) deleteForward() Result {
	row, col := e.cur.Row, e.cur.Col

	if col >= e.buf.LineLen(row) {
		if err := e.buf.MergeLines(row); err != nil {
			return noOp(ActionDelete)
		}
		e.modified = true
		return edited(ActionDelete)
	}

	e.buf.RemoveRange(row, col, col+1)
	e.modified = true
	return edited(ActionDelete)
}
