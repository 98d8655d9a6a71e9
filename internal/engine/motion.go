package engine

import "github.com/dshills/rawedit/internal/engine/cursor"

func (e *Engine) moveTo(p cursor.Position, action string) Result {
	p = p.Clamp(e.buf)
	if p == e.cur {
		return noOp(action)
	}
	e.cur = p
	return moved(action)
}

func (e *Engine) moveRight() Result {
	return e.moveTo(e.cur.MoveBy(1, 0), ActionCursorRight)
}

func (e *Engine) moveLeft() Result {
	return e.moveTo(e.cur.MoveBy(-1, 0), ActionCursorLeft)
}

// moveUp and moveDown keep the column when the destination line is long
// enough and otherwise clamp it to the line length.
func (e *Engine) moveUp() Result {
	if e.cur.Row == 0 {
		return noOp(ActionCursorUp)
	}
	return e.moveTo(e.cur.MoveBy(0, -1), ActionCursorUp)
}

func (e *Engine) moveDown() Result {
	if e.cur.Row+1 >= e.buf.LineCount() {
		return noOp(ActionCursorDown)
	}
	return e.moveTo(e.cur.MoveBy(0, 1), ActionCursorDown)
}

// moveLineStart goes to the first non-whitespace character. A blank line
// has none, so the cursor goes to column 0.
func (e *Engine) moveLineStart() Result {
	row := e.cur.Row
	col := 0
	if e.buf.TrailingContentEnd(row) > 0 {
		col = e.buf.LeadingWhitespaceCount(row)
	}
	return e.moveTo(cursor.New(col, row), ActionCursorLineStart)
}

// moveLineEnd goes just past the last non-whitespace character, or to
// column 0 on a blank line.
func (e *Engine) moveLineEnd() Result {
	row := e.cur.Row
	return e.moveTo(cursor.New(e.buf.TrailingContentEnd(row), row), ActionCursorLineEnd)
}
