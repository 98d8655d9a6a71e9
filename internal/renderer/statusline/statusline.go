// Package statusline provides the status line shown below the text area.
package statusline

import (
	"strconv"

	"github.com/mattn/go-runewidth"

	"github.com/dshills/rawedit/internal/renderer/backend"
)

// noName is shown when the buffer has no target file.
const noName = "[No Name]"

// StatusLine renders the bottom status line: file name, modified flag and
// cursor position, or a transient message.
type StatusLine struct {
	// Display state
	filename   string // Target file (empty for scratch)
	modified   bool   // Buffer has unsaved changes
	line       int    // Current line (1-indexed for display)
	col        int    // Current column (1-indexed for display)
	totalLines int    // Total lines in buffer

	// Message display
	message     string
	messageType MessageType

	width int
}

// MessageType indicates the type of status message.
type MessageType int

const (
	MessageNone MessageType = iota
	MessageInfo
	MessageWarning
	MessageError
)

// New creates a new status line.
func New() *StatusLine {
	return &StatusLine{line: 1, col: 1}
}

// SetFilename updates the displayed filename.
func (s *StatusLine) SetFilename(filename string) {
	s.filename = filename
}

// SetModified updates the modified indicator.
func (s *StatusLine) SetModified(modified bool) {
	s.modified = modified
}

// SetPosition updates the cursor position (1-indexed).
func (s *StatusLine) SetPosition(line, col int) {
	s.line = line
	s.col = col
}

// SetTotalLines updates the total line count.
func (s *StatusLine) SetTotalLines(total int) {
	s.totalLines = total
}

// SetMessage displays a status message until the next ClearMessage.
func (s *StatusLine) SetMessage(msg string, msgType MessageType) {
	s.message = msg
	s.messageType = msgType
}

// ClearMessage clears the status message.
func (s *StatusLine) ClearMessage() {
	s.message = ""
	s.messageType = MessageNone
}

// Message returns the current message and its type.
func (s *StatusLine) Message() (string, MessageType) {
	return s.message, s.messageType
}

// Resize updates the status line width.
func (s *StatusLine) Resize(width int) {
	s.width = max(width, 0)
}

// Text returns the status line content padded or cut to width cells.
// A message replaces the file and position info while it is set.
func (s *StatusLine) Text(width int) string {
	if width <= 0 {
		return ""
	}
	if s.message != "" {
		return runewidth.FillRight(runewidth.Truncate(s.message, width, ""), width)
	}

	name := s.filename
	if name == "" {
		name = noName
	}
	if s.modified {
		name += " [+]"
	}
	left := " " + name
	right := s.formatPosition() + " "

	room := width - runewidth.StringWidth(right) - 1
	if room < 1 {
		return runewidth.FillRight(runewidth.Truncate(left, width, ""), width)
	}
	left = runewidth.FillRight(runewidth.Truncate(left, room, ""), room)
	return left + " " + right
}

// Render draws the status line to the backend at the given row.
func (s *StatusLine) Render(b backend.Backend, row int) {
	attr := backend.AttrReverse
	switch s.messageType {
	case MessageError:
		attr = backend.AttrBold
	case MessageInfo, MessageWarning:
		attr = backend.AttrNone
	}

	x := 0
	for _, r := range s.Text(s.width) {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		b.SetCell(x, row, backend.Cell{Rune: r, Attr: attr})
		x += w
	}
}

// formatPosition formats the position info for the right side.
// Format: "Ln 12, Col 4 | 40%"
func (s *StatusLine) formatPosition() string {
	line := max(s.line, 1)
	col := max(s.col, 1)

	result := "Ln " + strconv.Itoa(line) + ", Col " + strconv.Itoa(col)

	if s.totalLines > 0 {
		switch {
		case line == 1:
			result += " | Top"
		case line >= s.totalLines:
			result += " | Bot"
		default:
			result += " | " + strconv.Itoa(line*100/s.totalLines) + "%"
		}
	}

	return result
}
