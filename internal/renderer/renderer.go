package renderer

import (
	"github.com/mattn/go-runewidth"

	"github.com/dshills/rawedit/internal/engine/cursor"
	"github.com/dshills/rawedit/internal/renderer/backend"
	"github.com/dshills/rawedit/internal/renderer/statusline"
	"github.com/dshills/rawedit/internal/renderer/viewport"
)

// LineSource provides read access to buffer content.
type LineSource interface {
	// LineCount returns the total number of lines.
	LineCount() int

	// Line returns the text of a line, or "" if row is out of range.
	Line(row int) string
}

// Options configures the renderer.
type Options struct {
	// ShowStatusLine reserves the bottom row for the status line.
	ShowStatusLine bool
}

// DefaultOptions returns the default options.
func DefaultOptions() Options {
	return Options{
		ShowStatusLine: true,
	}
}

// Renderer draws buffer content to a backend.
// It is driven from the editor's event loop and is not safe for
// concurrent use.
type Renderer struct {
	opts Options

	backend backend.Backend
	width   int
	height  int

	viewport *viewport.Viewport
	status   *statusline.StatusLine
}

// New creates a renderer sized to the backend.
func New(b backend.Backend, opts Options) *Renderer {
	r := &Renderer{
		opts:    opts,
		backend: b,
		status:  statusline.New(),
	}
	width, height := b.Size()
	r.viewport = viewport.New(width, height)
	r.Resize(width, height)
	return r
}

// Options returns the current options.
func (r *Renderer) Options() Options {
	return r.opts
}

// SetOptions replaces the options. The next Render applies them.
func (r *Renderer) SetOptions(opts Options) {
	r.opts = opts
	r.Resize(r.width, r.height)
}

// Resize updates the screen size.
func (r *Renderer) Resize(width, height int) {
	r.width = max(width, 0)
	r.height = max(height, 0)
	r.viewport.Resize(r.width, r.TextHeight())
	r.status.Resize(r.width)
}

// Size returns the screen size.
func (r *Renderer) Size() (width, height int) {
	return r.width, r.height
}

// TextHeight returns the number of rows available for buffer text.
func (r *Renderer) TextHeight() int {
	if r.statusVisible() {
		return r.height - 1
	}
	return r.height
}

// StatusLine returns the status line.
func (r *Renderer) StatusLine() *statusline.StatusLine {
	return r.status
}

func (r *Renderer) statusVisible() bool {
	return r.opts.ShowStatusLine && r.height > 1
}

// Render redraws the whole screen.
func (r *Renderer) Render(src LineSource, cur cursor.Position) {
	r.viewport.ScrollToReveal(cur.Row)

	b := r.backend
	b.Clear()

	textHeight := r.TextHeight()
	for y := 0; y < textHeight; y++ {
		row := r.viewport.BufferLine(y)
		if row >= src.LineCount() {
			break
		}
		r.drawLine(y, src.Line(row))
	}

	if r.statusVisible() {
		r.status.SetPosition(cur.Row+1, cur.Col+1)
		r.status.SetTotalLines(src.LineCount())
		r.status.Render(b, r.height-1)
	}

	r.placeCursor(src, cur)
	b.Show()
}

// MoveCursor updates the cursor after a move that did not change the
// buffer. The screen is fully redrawn only if the viewport had to scroll
// or the status line shows the position.
func (r *Renderer) MoveCursor(src LineSource, cur cursor.Position) {
	if r.viewport.ScrollToReveal(cur.Row) || r.statusVisible() {
		r.Render(src, cur)
		return
	}
	r.placeCursor(src, cur)
	r.backend.Show()
}

func (r *Renderer) drawLine(y int, text string) {
	x := 0
	for _, ch := range text {
		w := cellWidth(ch)
		if w == 0 {
			continue
		}
		if x+w > r.width {
			return
		}
		if ch == '\t' {
			ch = ' '
		}
		r.backend.SetCell(x, y, backend.Cell{Rune: ch})
		x += w
	}
}

func (r *Renderer) placeCursor(src LineSource, cur cursor.Position) {
	y, ok := r.viewport.ScreenRow(cur.Row)
	if !ok {
		r.backend.HideCursor()
		return
	}
	r.backend.ShowCursor(ScreenColumn(src.Line(cur.Row), cur.Col), y)
}

// ScreenColumn returns the screen cell where rune column col of text
// starts.
func ScreenColumn(text string, col int) int {
	x := 0
	i := 0
	for _, ch := range text {
		if i >= col {
			break
		}
		x += cellWidth(ch)
		i++
	}
	if col > i {
		x += col - i
	}
	return x
}

// cellWidth returns the number of screen cells a rune occupies. Tabs are
// drawn as a single space.
func cellWidth(ch rune) int {
	if ch == '\t' {
		return 1
	}
	return runewidth.RuneWidth(ch)
}
