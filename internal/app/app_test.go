package app

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/rawedit/internal/config"
	"github.com/dshills/rawedit/internal/engine/buffer"
	"github.com/dshills/rawedit/internal/engine/cursor"
	"github.com/dshills/rawedit/internal/input/key"
	"github.com/dshills/rawedit/internal/project/vfs"
	"github.com/dshills/rawedit/internal/renderer/backend"
	"github.com/dshills/rawedit/internal/renderer/statusline"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Editor.LineEnding = "lf"
	return cfg
}

func newTestApp(t *testing.T, fs *vfs.MemFS, path string) (*Application, *backend.NullBackend) {
	t.Helper()
	app, err := New(Options{FilePath: path, Config: testConfig(), FS: fs})
	require.NoError(t, err)
	b := backend.NewNullBackend(40, 5)
	app.SetBackend(b)
	return app, b
}

func newLoggedTestApp(t *testing.T, fs *vfs.MemFS, path string, out *bytes.Buffer) (*Application, *backend.NullBackend) {
	t.Helper()
	logger := NewLogger(LoggerConfig{Level: LogLevelDebug, Output: out, Prefix: "rawedit"})
	app, err := New(Options{FilePath: path, Config: testConfig(), FS: fs, Logger: logger})
	require.NoError(t, err)
	b := backend.NewNullBackend(40, 5)
	app.SetBackend(b)
	return app, b
}

// startSession prepares the application without running the event loop
// so the screen can be inspected between events.
func startSession(t *testing.T, app *Application, b *backend.NullBackend) {
	t.Helper()
	require.NoError(t, b.Init())
	app.prepare()
	app.render()
}

func runeKey(r rune) backend.Event {
	return backend.Event{Type: backend.EventKey, Key: key.NewRuneEvent(r, key.ModNone)}
}

func specialKey(k key.Key) backend.Event {
	return backend.Event{Type: backend.EventKey, Key: key.NewSpecialEvent(k, key.ModNone)}
}

func ctrlKey(r rune) backend.Event {
	return backend.Event{Type: backend.EventKey, Key: key.NewRuneEvent(r, key.ModCtrl)}
}

func post(t *testing.T, b *backend.NullBackend, events ...backend.Event) {
	t.Helper()
	for _, ev := range events {
		require.NoError(t, b.PostEvent(ev))
	}
}

func TestNewLoadsExistingFile(t *testing.T) {
	fs := vfs.NewMemFS()
	require.NoError(t, fs.AddFile("/work/doc.txt", "one\ntwo\n"))

	app, _ := newTestApp(t, fs, "/work/doc.txt")

	buf := app.Engine().Buffer()
	assert.Equal(t, "one", buf.Line(0))
	assert.Equal(t, "two", buf.Line(1))
	assert.False(t, app.Engine().Modified())
	assert.Equal(t, "/work/doc.txt", app.FilePath())
	assert.NotEmpty(t, app.SessionID())
}

func TestNewMissingFileStartsEmpty(t *testing.T) {
	app, _ := newTestApp(t, vfs.NewMemFS(), "/new.txt")

	assert.Equal(t, 1, app.Engine().Buffer().LineCount())
	assert.Equal(t, "", app.Engine().Buffer().Line(0))
}

func TestNewUnreadableFile(t *testing.T) {
	fs := vfs.NewMemFS()
	require.NoError(t, fs.AddFile("/dir/file.txt", "x"))

	// A directory exists but cannot be read as a file.
	_, err := New(Options{FilePath: "/dir", Config: testConfig(), FS: fs})

	var ferr *FileError
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, "open", ferr.Op)
}

func TestLineEndingResolution(t *testing.T) {
	tests := []struct {
		name    string
		setting string
		content string
		want    buffer.LineEnding
	}{
		{"explicit lf", "lf", "a\r\nb\r\n", buffer.LineEndingLF},
		{"explicit crlf", "crlf", "a\nb\n", buffer.LineEndingCRLF},
		{"auto detects crlf", "auto", "a\r\nb\r\n", buffer.LineEndingCRLF},
		{"auto detects lf", "auto", "a\nb\n", buffer.LineEndingLF},
		{"auto without breaks", "auto", "a", buffer.PlatformLineEnding()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolveLineEnding(tt.setting, tt.content))
		})
	}
}

func TestRunQuitsOnEscape(t *testing.T) {
	app, b := newTestApp(t, vfs.NewMemFS(), "")
	post(t, b, runeKey('x'), specialKey(key.KeyEscape))

	require.NoError(t, app.Run())

	assert.True(t, b.Initialized())
	assert.True(t, b.IsShutdown())
	assert.False(t, app.IsRunning())
	assert.Equal(t, "x", app.Engine().Buffer().Line(0))
}

func TestRunEditAndSave(t *testing.T) {
	fs := vfs.NewMemFS()
	require.NoError(t, fs.AddFile("/work/doc.txt", "ab\n"))
	app, b := newTestApp(t, fs, "/work/doc.txt")

	post(t, b,
		specialKey(key.KeyEnd),
		specialKey(key.KeyEnter),
		runeKey('c'),
		ctrlKey('s'),
		specialKey(key.KeyEscape),
	)
	require.NoError(t, app.Run())

	data, err := fs.ReadFile("/work/doc.txt")
	require.NoError(t, err)
	assert.Equal(t, "ab\nc\n", string(data))
	assert.False(t, app.Engine().Modified())
}

func TestRunSavesCRLF(t *testing.T) {
	fs := vfs.NewMemFS()
	require.NoError(t, fs.AddFile("/doc.txt", "a\r\nb\r\n"))
	cfg := testConfig()
	cfg.Editor.LineEnding = "auto"
	app, err := New(Options{FilePath: "/doc.txt", Config: cfg, FS: fs})
	require.NoError(t, err)
	b := backend.NewNullBackend(40, 5)
	app.SetBackend(b)

	post(t, b, runeKey('z'), ctrlKey('s'), specialKey(key.KeyEscape))
	require.NoError(t, app.Run())

	data, err := fs.ReadFile("/doc.txt")
	require.NoError(t, err)
	assert.Equal(t, "za\r\nb\r\n", string(data))
}

func TestRunSaveKeepsTrailingBlankLines(t *testing.T) {
	fs := vfs.NewMemFS()
	require.NoError(t, fs.AddFile("/doc.txt", "a\n\n\n"))
	app, b := newTestApp(t, fs, "/doc.txt")

	post(t, b, runeKey('z'), ctrlKey('s'), specialKey(key.KeyEscape))
	require.NoError(t, app.Run())

	data, err := fs.ReadFile("/doc.txt")
	require.NoError(t, err)
	assert.Equal(t, "za\n\n\n", string(data))
}

func TestRunRequestQuit(t *testing.T) {
	app, b := newTestApp(t, vfs.NewMemFS(), "")
	require.NoError(t, app.RequestQuit())

	require.NoError(t, app.Run())
	assert.True(t, b.IsShutdown())
}

func TestRunClosedBackendQuits(t *testing.T) {
	app, b := newTestApp(t, vfs.NewMemFS(), "")
	post(t, b, backend.Event{Type: backend.EventClosed})

	require.NoError(t, app.Run())
}

func TestRunErrors(t *testing.T) {
	t.Run("no backend", func(t *testing.T) {
		app, err := New(Options{Config: testConfig(), FS: vfs.NewMemFS()})
		require.NoError(t, err)

		assert.ErrorIs(t, app.Run(), ErrNoBackend)
		assert.ErrorIs(t, app.RequestQuit(), ErrNoBackend)
	})

	t.Run("already running", func(t *testing.T) {
		app, _ := newTestApp(t, vfs.NewMemFS(), "")
		app.running.Store(true)

		assert.ErrorIs(t, app.Run(), ErrAlreadyRunning)
	})

	t.Run("init failure", func(t *testing.T) {
		app, b := newTestApp(t, vfs.NewMemFS(), "")
		cause := errors.New("no tty")
		b.FailInit(cause)

		err := app.Run()

		var ierr *InitError
		require.ErrorAs(t, err, &ierr)
		assert.Equal(t, "backend", ierr.Component)
		assert.ErrorIs(t, err, cause)
		assert.False(t, b.IsShutdown())
	})

	t.Run("backend error", func(t *testing.T) {
		app, b := newTestApp(t, vfs.NewMemFS(), "")
		cause := errors.New("read failed")
		post(t, b, backend.Event{Type: backend.EventError, Err: cause})

		err := app.Run()

		var cerr *ComponentError
		require.ErrorAs(t, err, &cerr)
		assert.Equal(t, "backend", cerr.Component)
		assert.ErrorIs(t, err, cause)
		assert.True(t, b.IsShutdown())
	})
}

type panickingBackend struct {
	*backend.NullBackend
}

func (panickingBackend) PollEvent() backend.Event {
	panic("poll exploded")
}

func TestRunRestoresBackendOnPanic(t *testing.T) {
	app, _ := newTestApp(t, vfs.NewMemFS(), "")
	b := panickingBackend{backend.NewNullBackend(20, 4)}
	app.SetBackend(b)

	assert.PanicsWithValue(t, "poll exploded", func() {
		_ = app.Run()
	})
	assert.True(t, b.IsShutdown())
	assert.False(t, app.IsRunning())
}

func TestRenderShowsBuffer(t *testing.T) {
	fs := vfs.NewMemFS()
	require.NoError(t, fs.AddFile("/doc.txt", "hello\nworld\n"))
	app, b := newTestApp(t, fs, "/doc.txt")

	startSession(t, app, b)

	assert.Equal(t, "hello", b.Row(0))
	assert.Equal(t, "world", b.Row(1))
	assert.Contains(t, b.Row(4), "doc.txt")
	assert.Contains(t, b.Row(4), "Ln 1, Col 1")

	x, y, visible := b.CursorPosition()
	assert.Equal(t, 0, x)
	assert.Equal(t, 0, y)
	assert.True(t, visible)
}

func TestHandleKeyRedrawsAndMovesCursor(t *testing.T) {
	app, b := newTestApp(t, vfs.NewMemFS(), "/doc.txt")
	startSession(t, app, b)

	require.NoError(t, app.handleEvent(runeKey('h')))
	require.NoError(t, app.handleEvent(runeKey('i')))
	assert.Equal(t, "hi", b.Row(0))
	assert.Contains(t, b.Row(4), "[+]")

	require.NoError(t, app.handleEvent(specialKey(key.KeyLeft)))
	x, y, _ := b.CursorPosition()
	assert.Equal(t, 1, x)
	assert.Equal(t, 0, y)
	assert.Equal(t, cursor.New(1, 0), app.Engine().Cursor())
}

func TestHandleKeyIgnoredEvents(t *testing.T) {
	app, b := newTestApp(t, vfs.NewMemFS(), "")
	startSession(t, app, b)
	shows := b.ShowCount()

	alt := backend.Event{Type: backend.EventKey, Key: key.NewRuneEvent('x', key.ModAlt)}
	require.NoError(t, app.handleEvent(alt))
	require.NoError(t, app.handleEvent(specialKey(key.KeyUp)))

	assert.Equal(t, shows, b.ShowCount())
	assert.Equal(t, "", app.Engine().Buffer().Line(0))
}

func TestSaveWithoutPath(t *testing.T) {
	var logs bytes.Buffer
	app, b := newLoggedTestApp(t, vfs.NewMemFS(), "", &logs)
	startSession(t, app, b)
	require.NoError(t, app.handleEvent(runeKey('a')))

	require.NoError(t, app.handleEvent(ctrlKey('s')))

	msg, typ := app.Renderer().StatusLine().Message()
	assert.Equal(t, statusline.MessageError, typ)
	assert.Contains(t, msg, "No file name")
	assert.True(t, app.Engine().Modified())
	assert.Contains(t, logs.String(), "[WARN] rawedit: save: "+ErrNoFilePath.Error())
}

func TestSaveFailureKeepsSession(t *testing.T) {
	fs := vfs.NewMemFS()
	require.NoError(t, fs.AddFile("/doc.txt", "old\n"))
	var logs bytes.Buffer
	app, b := newLoggedTestApp(t, fs, "/doc.txt", &logs)
	startSession(t, app, b)
	require.NoError(t, app.handleEvent(runeKey('n')))

	fs.FailWrites(errors.New("disk full"))
	require.NoError(t, app.handleEvent(ctrlKey('s')))

	msg, typ := app.Renderer().StatusLine().Message()
	assert.Equal(t, statusline.MessageError, typ)
	assert.Contains(t, msg, "disk full")
	assert.True(t, app.Engine().Modified())
	assert.Equal(t, "nold", app.Engine().Buffer().Line(0))

	data, err := fs.ReadFile("/doc.txt")
	require.NoError(t, err)
	assert.Equal(t, "old\n", string(data))

	assert.Contains(t, logs.String(), "[ERROR] rawedit: save /doc.txt: disk full")

	// The message stays until the next effective key.
	require.NoError(t, app.handleEvent(specialKey(key.KeyLeft)))
	msg, _ = app.Renderer().StatusLine().Message()
	assert.Empty(t, msg)
}

func TestSaveSuccessMessage(t *testing.T) {
	fs := vfs.NewMemFS()
	app, b := newTestApp(t, fs, "/doc.txt")
	startSession(t, app, b)
	require.NoError(t, app.handleEvent(runeKey('q')))

	require.NoError(t, app.handleEvent(ctrlKey('s')))

	assert.Contains(t, b.Row(4), "Wrote doc.txt (2 bytes)")
	assert.NotContains(t, b.Row(4), "[+]")
	assert.Equal(t, []string{"/doc.txt"}, fs.Files())
}

func TestResizeEvent(t *testing.T) {
	app, b := newTestApp(t, vfs.NewMemFS(), "")
	startSession(t, app, b)

	b.Resize(30, 10)
	require.NoError(t, app.handleEvent(b.PollEvent()))

	w, h := app.Engine().Size()
	assert.Equal(t, 30, w)
	assert.Equal(t, 9, h)
	assert.Equal(t, 9, app.Engine().Buffer().LineCount())
	assert.Contains(t, b.Row(9), "Ln 1, Col 1")
}

func TestStatusLineHiddenByConfig(t *testing.T) {
	cfg := testConfig()
	cfg.UI.StatusLine = false
	app, err := New(Options{Config: cfg, FS: vfs.NewMemFS()})
	require.NoError(t, err)
	b := backend.NewNullBackend(40, 5)
	app.SetBackend(b)

	startSession(t, app, b)

	_, h := app.Engine().Size()
	assert.Equal(t, 5, h)
	assert.Equal(t, "", strings.TrimSpace(b.Row(4)))
}
