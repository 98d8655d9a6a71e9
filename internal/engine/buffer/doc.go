// Package buffer provides the line buffer behind the editor engine: an
// ordered list of text lines addressed by row and column.
//
// Columns are rune indices into a line, so a single codepoint always
// occupies exactly one column regardless of its UTF-8 encoded length.
// Screen cell widths are a rendering concern and are not tracked here.
//
// Basic usage:
//
//	buf := buffer.NewFromString("hello\nworld")
//
//	// Insert text at row 0, column 5
//	buf.InsertText(0, 5, "!")       // "hello!"
//
//	// Split row 1 at column 2, indenting the new line
//	buf.SplitLine(1, 2, "  ")       // "wo", "  rld"
//
//	// Join row 1 with row 2
//	_ = buf.MergeLines(1)           // "world"
//
// The buffer never shrinks below one line. Resize pads the buffer with
// empty lines so it always covers the visible text area, but it never
// drops existing lines.
//
// Thread Safety:
//
// Buffer is not safe for concurrent use. The editor owns it from a single
// event loop goroutine.
package buffer
