package app

import (
	"errors"
	"fmt"
	"runtime/debug"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/dshills/rawedit/internal/config"
	"github.com/dshills/rawedit/internal/engine"
	"github.com/dshills/rawedit/internal/engine/buffer"
	"github.com/dshills/rawedit/internal/project/vfs"
	"github.com/dshills/rawedit/internal/renderer"
	"github.com/dshills/rawedit/internal/renderer/backend"
	"github.com/dshills/rawedit/internal/renderer/statusline"
)

// Options configures application creation.
type Options struct {
	// FilePath is the file to edit and the save target. It may name a
	// file that does not exist yet. Empty means the buffer has no target.
	FilePath string

	// ConfigPath is the configuration file. Empty means no file layer.
	ConfigPath string

	// Config, when set, is used as-is instead of loading configuration.
	Config *config.Config

	// ConfigOptions are passed to config.Load on startup and on reload.
	ConfigOptions []config.Option

	// FS is the file system used for the edited file. Defaults to the OS.
	FS vfs.VFS

	// Logger receives application logs. Defaults to NullLogger.
	Logger *Logger

	// WatchConfig reloads the configuration when ConfigPath changes.
	WatchConfig bool
}

// Application is one edit session.
type Application struct {
	opts      Options
	cfg       *config.Config
	fs        vfs.VFS
	logger    *Logger
	sessionID string

	filePath   string
	lineEnding buffer.LineEnding

	engine   *engine.Engine
	renderer *renderer.Renderer
	backend  backend.Backend

	running atomic.Bool
}

// New creates an application, loading configuration and the edited file.
// Configuration problems are logged and never fatal. A file that exists
// but cannot be read is an error.
func New(opts Options) (*Application, error) {
	app := &Application{
		opts:      opts,
		fs:        opts.FS,
		logger:    opts.Logger,
		sessionID: uuid.NewString(),
		filePath:  opts.FilePath,
	}
	if app.fs == nil {
		app.fs = vfs.NewOSFS()
	}
	if app.logger == nil {
		app.logger = NullLogger
	}
	app.logger = app.logger.WithField("session", app.sessionID)

	app.cfg = opts.Config
	if app.cfg == nil {
		cfg, err := config.Load(app.configOptions()...)
		if err != nil {
			app.logger.Warn("config: %v", err)
		}
		app.cfg = cfg
	}
	app.logger.SetLevel(ParseLogLevel(app.cfg.Logging.Level))

	buf, text, err := app.loadFile()
	if err != nil {
		return nil, err
	}
	app.lineEnding = resolveLineEnding(app.cfg.Editor.LineEnding, text)

	app.engine = engine.New(
		engine.WithBuffer(buf),
		engine.WithTabWidth(app.cfg.Editor.TabSize),
	)

	app.logger.Info("session started file=%q lines=%d line_ending=%s",
		app.filePath, buf.LineCount(), app.lineEnding)
	return app, nil
}

func (app *Application) configOptions() []config.Option {
	opts := append([]config.Option(nil), app.opts.ConfigOptions...)
	if app.opts.ConfigPath != "" {
		opts = append(opts, config.WithFile(app.opts.ConfigPath))
	}
	return opts
}

// loadFile reads the target file if it exists. A missing file starts an
// empty buffer that is created on first save.
func (app *Application) loadFile() (*buffer.Buffer, string, error) {
	if app.filePath == "" || !app.fs.Exists(app.filePath) {
		return buffer.New(), "", nil
	}

	data, err := app.fs.ReadFile(app.filePath)
	if err != nil {
		return nil, "", &FileError{Op: "open", Path: app.filePath, Err: err}
	}
	text := string(data)
	return buffer.NewFromString(text), text, nil
}

// resolveLineEnding picks the configured line ending, or for "auto" the
// one the file already uses, falling back to the platform default.
func resolveLineEnding(setting, text string) buffer.LineEnding {
	if le, ok := buffer.ParseLineEnding(setting); ok {
		return le
	}
	le, _ := buffer.DetectLineEnding(text)
	return le
}

// SetBackend sets the terminal backend used by Run.
func (app *Application) SetBackend(b backend.Backend) {
	app.backend = b
}

// Run starts the backend and processes events until the session ends.
// The backend is shut down on every exit path, including panics.
// Returns nil when the user quits.
func (app *Application) Run() error {
	if app.backend == nil {
		return ErrNoBackend
	}
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	if err := app.backend.Init(); err != nil {
		return &InitError{Component: "backend", Err: err}
	}
	defer app.backend.Shutdown()
	defer func() {
		if r := recover(); r != nil {
			app.logger.Error("%v", NewRecoveredPanicError(r, string(debug.Stack())))
			app.backend.Shutdown()
			panic(r)
		}
	}()

	if stop := app.watchConfig(); stop != nil {
		defer stop()
	}

	app.prepare()
	app.render()

	for {
		if err := app.handleEvent(app.backend.PollEvent()); err != nil {
			if errors.Is(err, ErrQuit) {
				app.logger.Info("session ended")
				return nil
			}
			app.logger.Error("%v", err)
			return err
		}
	}
}

// prepare creates the renderer and sizes everything to the backend.
func (app *Application) prepare() {
	app.renderer = renderer.New(app.backend, renderer.Options{
		ShowStatusLine: app.cfg.UI.StatusLine,
	})
	st := app.renderer.StatusLine()
	if app.filePath != "" {
		st.SetFilename(app.fs.Base(app.filePath))
	}
	st.SetModified(app.engine.Modified())

	w, h := app.backend.Size()
	app.resize(w, h)
}

// RequestQuit asks a running session to end. Safe to call from any
// goroutine.
func (app *Application) RequestQuit() error {
	if app.backend == nil {
		return ErrNoBackend
	}
	return app.backend.PostEvent(backend.Event{
		Type:    backend.EventInterrupt,
		Payload: interruptQuit,
	})
}

// IsRunning reports whether Run is active.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Engine returns the edit engine.
func (app *Application) Engine() *engine.Engine {
	return app.engine
}

// Renderer returns the renderer. It is nil until Run starts.
func (app *Application) Renderer() *renderer.Renderer {
	return app.renderer
}

// Config returns the active configuration.
func (app *Application) Config() *config.Config {
	return app.cfg
}

// SessionID returns the id logged with every line of this session.
func (app *Application) SessionID() string {
	return app.sessionID
}

// FilePath returns the save target.
func (app *Application) FilePath() string {
	return app.filePath
}

// LineEnding returns the line ending used when saving.
func (app *Application) LineEnding() buffer.LineEnding {
	return app.lineEnding
}

func (app *Application) resize(width, height int) {
	app.renderer.Resize(width, height)
	app.engine.Resize(width, app.renderer.TextHeight())
	app.logger.Debug("resize %dx%d", width, height)
}

func (app *Application) render() {
	app.renderer.StatusLine().SetModified(app.engine.Modified())
	app.renderer.Render(app.engine.Buffer(), app.engine.Cursor())
}

// save writes the buffer to the target file. Failures are logged and
// reported in the status line; the session and the buffer are unaffected.
func (app *Application) save() {
	st := app.renderer.StatusLine()
	if app.filePath == "" {
		app.logger.Warn("save: %v", ErrNoFilePath)
		st.SetMessage("No file name; start with: rawedit <file>", statusline.MessageError)
		return
	}

	data := app.engine.Buffer().Content(app.lineEnding)
	if err := app.fs.WriteFileAtomic(app.filePath, []byte(data), 0o644); err != nil {
		app.logger.Error("%v", &FileError{Op: "save", Path: app.filePath, Err: err})
		st.SetMessage("Save failed: "+err.Error(), statusline.MessageError)
		return
	}

	app.engine.MarkSaved()
	app.logger.Info("saved %s (%d bytes)", app.filePath, len(data))
	st.SetMessage(fmt.Sprintf("Wrote %s (%d bytes)", app.fs.Base(app.filePath), len(data)), statusline.MessageInfo)
}
