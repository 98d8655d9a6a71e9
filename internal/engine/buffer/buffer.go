package buffer

import (
	"errors"
	"runtime"
	"strings"
	"unicode/utf8"
)

// Errors returned by buffer operations.
var (
	ErrRowOutOfRange = errors.New("row out of range")
)

// LineEnding specifies the line ending style used when the buffer is
// serialized.
type LineEnding uint8

const (
	LineEndingLF   LineEnding = iota // Unix: \n
	LineEndingCRLF                   // Windows: \r\n
)

// String returns the escaped representation of the line ending.
func (le LineEnding) String() string {
	switch le {
	case LineEndingCRLF:
		return "\\r\\n"
	default:
		return "\\n"
	}
}

// Sequence returns the actual line ending characters.
func (le LineEnding) Sequence() string {
	switch le {
	case LineEndingCRLF:
		return "\r\n"
	default:
		return "\n"
	}
}

// PlatformLineEnding returns CRLF on Windows and LF everywhere else.
func PlatformLineEnding() LineEnding {
	if runtime.GOOS == "windows" {
		return LineEndingCRLF
	}
	return LineEndingLF
}

// ParseLineEnding parses "lf" or "crlf" (case-insensitive).
// Any other value, including "auto", yields the platform default and false.
func ParseLineEnding(s string) (LineEnding, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "lf", "unix":
		return LineEndingLF, true
	case "crlf", "windows", "dos":
		return LineEndingCRLF, true
	default:
		return PlatformLineEnding(), false
	}
}

// DetectLineEnding reports the line ending used by s.
// The second result is false when s contains no line break at all.
func DetectLineEnding(s string) (LineEnding, bool) {
	idx := strings.IndexByte(s, '\n')
	if idx < 0 {
		return PlatformLineEnding(), false
	}
	if idx > 0 && s[idx-1] == '\r' {
		return LineEndingCRLF, true
	}
	return LineEndingLF, true
}

// Buffer is an ordered sequence of text lines.
// Row order is on-screen order. A buffer always holds at least one line.
//
// The first docLines lines are the document. Lines after them are padding
// added by Resize; they become part of the document once they are edited.
type Buffer struct {
	lines    []string
	docLines int
}

// New creates an empty document shown as a single empty line.
func New() *Buffer {
	return &Buffer{lines: []string{""}}
}

// NewFromString creates a buffer from text. CRLF and lone CR line breaks
// are normalized before splitting. Every line of s, blank or not, is
// part of the document; "" is an empty document.
func NewFromString(s string) *Buffer {
	if s == "" {
		return New()
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = strings.TrimSuffix(s, "\n")
	lines := strings.Split(s, "\n")
	return &Buffer{lines: lines, docLines: len(lines)}
}

// NewFromLines creates a buffer holding a copy of lines.
func NewFromLines(lines []string) *Buffer {
	b := &Buffer{}
	b.SetLines(lines)
	return b
}

// SetLines replaces the buffer content with a copy of lines, all of which
// are part of the document.
func (b *Buffer) SetLines(lines []string) {
	b.docLines = len(lines)
	if len(lines) == 0 {
		b.lines = []string{""}
		return
	}
	b.lines = append(make([]string, 0, len(lines)), lines...)
}

// DocumentLineCount returns the number of lines that belong to the
// document, excluding trailing padding.
func (b *Buffer) DocumentLineCount() int {
	return b.docLines
}

// Lines returns a copy of all lines.
func (b *Buffer) Lines() []string {
	return append([]string(nil), b.lines...)
}

// LineCount returns the number of lines.
func (b *Buffer) LineCount() int {
	return len(b.lines)
}

// Line returns the text of the given row, or "" if the row does not exist.
func (b *Buffer) Line(row int) string {
	if !b.validRow(row) {
		return ""
	}
	return b.lines[row]
}

// LineLen returns the length of the given row in runes.
func (b *Buffer) LineLen(row int) int {
	return utf8.RuneCountInString(b.Line(row))
}

// Text joins all lines with the given line ending.
func (b *Buffer) Text(le LineEnding) string {
	return strings.Join(b.lines, le.Sequence())
}

// Content returns the document as it should be persisted: every
// document line terminated by the line ending. Padding is not included.
// An empty document yields "".
func (b *Buffer) Content(le LineEnding) string {
	if b.docLines == 0 {
		return ""
	}
	seq := le.Sequence()
	return strings.Join(b.lines[:b.docLines], seq) + seq
}

// Resize pads the buffer with empty lines until it has at least rows
// lines. Existing lines are never removed and the document is unchanged.
func (b *Buffer) Resize(rows int) {
	for len(b.lines) < rows {
		b.lines = append(b.lines, "")
	}
}

func (b *Buffer) validRow(row int) bool {
	return row >= 0 && row < len(b.lines)
}

// touch makes row part of the document.
func (b *Buffer) touch(row int) {
	b.docLines = max(b.docLines, row+1)
}
