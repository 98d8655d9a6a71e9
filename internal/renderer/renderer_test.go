package renderer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/rawedit/internal/engine/cursor"
	"github.com/dshills/rawedit/internal/renderer/backend"
)

// lines implements LineSource for testing.
type lines []string

func (l lines) LineCount() int { return len(l) }

func (l lines) Line(row int) string {
	if row < 0 || row >= len(l) {
		return ""
	}
	return l[row]
}

func plain() Options {
	return Options{ShowStatusLine: false}
}

func TestRenderLines(t *testing.T) {
	b := backend.NewNullBackend(10, 3)
	r := New(b, plain())

	r.Render(lines{"hello", "", "world"}, cursor.New(2, 0))

	assert.Equal(t, "hello", b.Row(0))
	assert.Equal(t, "", b.Row(1))
	assert.Equal(t, "world", b.Row(2))

	x, y, visible := b.CursorPosition()
	assert.Equal(t, 2, x)
	assert.Equal(t, 0, y)
	assert.True(t, visible)
	assert.Equal(t, 1, b.ShowCount())
}

func TestRenderCutsLongLines(t *testing.T) {
	b := backend.NewNullBackend(4, 1)
	r := New(b, plain())

	r.Render(lines{"abcdefgh"}, cursor.New(0, 0))

	assert.Equal(t, "abcd", b.Row(0))
}

func TestRenderClearsStaleContent(t *testing.T) {
	b := backend.NewNullBackend(10, 2)
	r := New(b, plain())

	r.Render(lines{"abcdef", "x"}, cursor.New(0, 0))
	r.Render(lines{"ab", ""}, cursor.New(0, 0))

	assert.Equal(t, "ab", b.Row(0))
	assert.Equal(t, "", b.Row(1))
}

func TestRenderWideRunes(t *testing.T) {
	b := backend.NewNullBackend(10, 1)
	r := New(b, plain())

	r.Render(lines{"日本x"}, cursor.New(2, 0))

	assert.Equal(t, '日', b.GetCell(0, 0).Rune)
	assert.Equal(t, '本', b.GetCell(2, 0).Rune)
	assert.Equal(t, 'x', b.GetCell(4, 0).Rune)

	x, _, _ := b.CursorPosition()
	assert.Equal(t, 4, x)
}

func TestRenderTabAsSpace(t *testing.T) {
	b := backend.NewNullBackend(10, 1)
	r := New(b, plain())

	r.Render(lines{"\tx"}, cursor.New(1, 0))

	assert.Equal(t, ' ', b.GetCell(0, 0).Rune)
	assert.Equal(t, 'x', b.GetCell(1, 0).Rune)
}

func TestRenderScrollsToCursor(t *testing.T) {
	b := backend.NewNullBackend(10, 3)
	r := New(b, plain())

	src := lines{"l0", "l1", "l2", "l3", "l4"}
	r.Render(src, cursor.New(1, 4))

	assert.Equal(t, "l2", b.Row(0))
	assert.Equal(t, "l4", b.Row(2))

	x, y, _ := b.CursorPosition()
	assert.Equal(t, 1, x)
	assert.Equal(t, 2, y)

	r.MoveCursor(src, cursor.New(0, 0))
	assert.Equal(t, "l0", b.Row(0))
}

func TestMoveCursorWithoutScroll(t *testing.T) {
	b := backend.NewNullBackend(10, 3)
	r := New(b, plain())

	src := lines{"abc", "def", "ghi"}
	r.Render(src, cursor.New(0, 0))
	r.MoveCursor(src, cursor.New(3, 1))

	x, y, _ := b.CursorPosition()
	assert.Equal(t, 3, x)
	assert.Equal(t, 1, y)
	assert.Equal(t, 2, b.ShowCount())
}

func TestRenderStatusLine(t *testing.T) {
	b := backend.NewNullBackend(30, 4)
	r := New(b, DefaultOptions())
	r.StatusLine().SetFilename("a.txt")

	require.Equal(t, 3, r.TextHeight())

	r.Render(lines{"one", "two", "three", "four"}, cursor.New(1, 1))

	assert.Equal(t, "one", b.Row(0))
	assert.Equal(t, "three", b.Row(2))
	status := b.Row(3)
	assert.True(t, strings.HasPrefix(status, " a.txt"), status)
	assert.Contains(t, status, "Ln 2, Col 2")
}

func TestStatusLineHiddenOnOneRow(t *testing.T) {
	b := backend.NewNullBackend(30, 1)
	r := New(b, DefaultOptions())

	assert.Equal(t, 1, r.TextHeight())

	r.Render(lines{"only"}, cursor.New(0, 0))
	assert.Equal(t, "only", b.Row(0))
}

func TestResize(t *testing.T) {
	b := backend.NewNullBackend(10, 5)
	r := New(b, DefaultOptions())

	r.Resize(20, 8)
	w, h := r.Size()
	assert.Equal(t, 20, w)
	assert.Equal(t, 8, h)
	assert.Equal(t, 7, r.TextHeight())

	r.SetOptions(plain())
	assert.Equal(t, 8, r.TextHeight())
	assert.False(t, r.Options().ShowStatusLine)
}

func TestScreenColumn(t *testing.T) {
	tests := []struct {
		text string
		col  int
		want int
	}{
		{"", 0, 0},
		{"abc", 2, 2},
		{"abc", 3, 3},
		{"a日b", 2, 3},
		{"a日b", 3, 4},
		{"ab", 5, 5},
	}

	for _, tt := range tests {
		if got := ScreenColumn(tt.text, tt.col); got != tt.want {
			t.Errorf("ScreenColumn(%q, %d) = %d, want %d", tt.text, tt.col, got, tt.want)
		}
	}
}
