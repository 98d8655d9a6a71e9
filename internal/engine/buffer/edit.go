package buffer

import (
	"unicode"
	"unicode/utf8"
)

// InsertText inserts text into the given row at rune column col.
// A column at or beyond the end of the line appends. Returns the number
// of runes inserted, which is 0 for an invalid row or empty text.
func (b *Buffer) InsertText(row, col int, text string) int {
	if !b.validRow(row) || text == "" {
		return 0
	}
	b.touch(row)

	line := b.lines[row]
	if line == "" {
		b.lines[row] = text
		return utf8.RuneCountInString(text)
	}

	runes := []rune(line)
	if col < 0 {
		col = 0
	}
	if col < len(runes) {
		b.lines[row] = string(runes[:col]) + text + string(runes[col:])
	} else {
		b.lines[row] = line + text
	}
	return utf8.RuneCountInString(text)
}

// SplitLine splits the given row at rune column col. The text before col
// stays on row; prefix followed by the text from col onward becomes a new
// line at row+1. Splitting an empty line inserts an empty line after it.
// Both lines are part of the document afterwards.
func (b *Buffer) SplitLine(row, col int, prefix string) error {
	if !b.validRow(row) {
		return ErrRowOutOfRange
	}
	b.touch(row)
	b.docLines++

	line := b.lines[row]
	if line == "" {
		b.insertLine(row+1, "")
		return nil
	}

	runes := []rune(line)
	col = clamp(col, 0, len(runes))
	b.lines[row] = string(runes[:col])
	b.insertLine(row+1, prefix+string(runes[col:]))
	return nil
}

// MergeLines appends row+1 onto row and removes row+1.
// Returns ErrRowOutOfRange when either row does not exist.
func (b *Buffer) MergeLines(row int) error {
	if !b.validRow(row) || !b.validRow(row+1) {
		return ErrRowOutOfRange
	}

	// A padding line is empty, so merging one leaves the document as is.
	if row+1 < b.docLines {
		b.docLines--
	}

	b.lines[row] += b.lines[row+1]
	b.lines = append(b.lines[:row+1], b.lines[row+2:]...)
	return nil
}

// RemoveRange removes runes [start, stop) from the given row and returns
// the number of runes removed.
func (b *Buffer) RemoveRange(row, start, stop int) int {
	if !b.validRow(row) {
		return 0
	}
	before := utf8.RuneCountInString(b.lines[row])
	b.lines[row] = RemoveCharRange(start, stop, b.lines[row])
	return before - utf8.RuneCountInString(b.lines[row])
}

// LeadingWhitespaceCount returns the number of whitespace runes at the
// start of the row. An empty or blank line yields its full length.
func (b *Buffer) LeadingWhitespaceCount(row int) int {
	n := 0
	for _, r := range b.Line(row) {
		if !unicode.IsSpace(r) {
			break
		}
		n++
	}
	return n
}

// TrailingContentEnd returns the column just past the last non-whitespace
// rune of the row. An empty or blank line yields 0.
func (b *Buffer) TrailingContentEnd(row int) int {
	runes := []rune(b.Line(row))
	end := len(runes)
	for end > 0 && unicode.IsSpace(runes[end-1]) {
		end--
	}
	return end
}

// RemoveCharRange returns a copy of line with the runes at indices
// [start, stop) removed. Indices outside the line are clamped.
func RemoveCharRange(start, stop int, line string) string {
	runes := []rune(line)
	start = clamp(start, 0, len(runes))
	stop = clamp(stop, start, len(runes))
	if start == stop {
		return line
	}
	return string(runes[:start]) + string(runes[stop:])
}

func (b *Buffer) insertLine(row int, text string) {
	b.lines = append(b.lines, "")
	copy(b.lines[row+1:], b.lines[row:])
	b.lines[row] = text
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
