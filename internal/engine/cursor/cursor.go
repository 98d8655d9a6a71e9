// Package cursor provides the editor's cursor position.
//
// The engine owns the cursor as a plain value. The terminal cursor is only
// synchronized from it at render time, so every edit works on a position
// that cannot change underneath it.
package cursor

import "fmt"

// Bounds describes the area a cursor may occupy: a row count and the
// length of each row. Columns may sit one past the last character.
type Bounds interface {
	LineCount() int
	LineLen(row int) int
}

// Position is an insertion point in the buffer.
// Col is a rune index into the line, Row is a line index.
// Position is an immutable value type.
type Position struct {
	Col int
	Row int
}

// New creates a position, clamping negative coordinates to 0.
func New(col, row int) Position {
	return Position{Col: max(col, 0), Row: max(row, 0)}
}

// MoveBy returns a new position shifted by the given deltas.
// The result never goes below (0, 0).
func (p Position) MoveBy(dCol, dRow int) Position {
	return New(p.Col+dCol, p.Row+dRow)
}

// Clamp returns the position restricted to b: the row to
// [0, LineCount) and the column to [0, LineLen(row)].
func (p Position) Clamp(b Bounds) Position {
	rows := b.LineCount()
	if rows <= 0 {
		return Position{}
	}
	row := min(max(p.Row, 0), rows-1)
	col := min(max(p.Col, 0), b.LineLen(row))
	return Position{Col: col, Row: row}
}

// String returns a human-readable representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("(%d:%d)", p.Row, p.Col)
}
