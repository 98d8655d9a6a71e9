package config

import (
	"errors"
	"os"
	"path/filepath"
	"slices"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/rawedit/internal/config/loader"
)

// Tab size limits.
const (
	MinTabSize = 1
	MaxTabSize = 16
)

// Line ending settings.
const (
	LineEndingAuto = "auto"
	LineEndingLF   = "lf"
	LineEndingCRLF = "crlf"
)

var (
	lineEndings = []string{LineEndingAuto, LineEndingLF, LineEndingCRLF}
	logLevels   = []string{"debug", "info", "warn", "error"}
)

// Config holds all editor settings.
type Config struct {
	Editor  EditorConfig  `toml:"editor" yaml:"editor"`
	UI      UIConfig      `toml:"ui" yaml:"ui"`
	Logging LoggingConfig `toml:"logging" yaml:"logging"`
}

// EditorConfig holds editing behavior settings.
type EditorConfig struct {
	// TabSize is the number of spaces Tab inserts and the indent step
	// Backspace removes.
	TabSize int `toml:"tab_size" yaml:"tab_size"`

	// LineEnding is used when saving: "lf", "crlf", or "auto" to keep
	// the ending of the loaded file (platform default for new files).
	LineEnding string `toml:"line_ending" yaml:"line_ending"`
}

// UIConfig holds display settings.
type UIConfig struct {
	// StatusLine shows the status line on the bottom row.
	StatusLine bool `toml:"status_line" yaml:"status_line"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum level logged: debug, info, warn or error.
	Level string `toml:"level" yaml:"level"`

	// File receives log output. Empty disables logging; the terminal is
	// in raw mode while editing so logs never go to stderr.
	File string `toml:"file" yaml:"file"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Editor: EditorConfig{
			TabSize:    4,
			LineEnding: LineEndingAuto,
		},
		UI: UIConfig{
			StatusLine: true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate checks every setting and returns the first problem found.
func (c *Config) Validate() error {
	if c.Editor.TabSize < MinTabSize || c.Editor.TabSize > MaxTabSize {
		return &ValidationError{
			Path:    "editor.tab_size",
			Message: "must be between 1 and 16",
			Value:   c.Editor.TabSize,
			Code:    ErrCodeOutOfRange,
		}
	}
	if !slices.Contains(lineEndings, c.Editor.LineEnding) {
		return &ValidationError{
			Path:    "editor.line_ending",
			Message: "must be one of auto, lf, crlf",
			Value:   c.Editor.LineEnding,
			Code:    ErrCodeInvalidEnum,
		}
	}
	if !slices.Contains(logLevels, c.Logging.Level) {
		return &ValidationError{
			Path:    "logging.level",
			Message: "must be one of debug, info, warn, error",
			Value:   c.Logging.Level,
			Code:    ErrCodeInvalidEnum,
		}
	}
	return nil
}

// DefaultPath returns the default config file location, or "" if the
// user config directory is unknown.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "rawedit", "config.toml")
}

// options configures Load.
type options struct {
	fs        loader.FileSystem
	path      string
	useEnv    bool
	overrides map[string]any
}

// Option configures Load.
type Option func(*options)

// WithFS sets the file system config files are read from.
func WithFS(fs loader.FileSystem) Option {
	return func(o *options) {
		o.fs = fs
	}
}

// WithFile sets the config file. A missing file is not an error.
func WithFile(path string) Option {
	return func(o *options) {
		o.path = path
	}
}

// WithoutEnv skips the environment layer.
func WithoutEnv() Option {
	return func(o *options) {
		o.useEnv = false
	}
}

// WithOverrides adds the highest precedence layer, keyed by dotted
// setting path (e.g. "editor.tab_size").
func WithOverrides(values map[string]any) Option {
	return func(o *options) {
		for path, v := range values {
			loader.SetByPath(o.overrides, path, v)
		}
	}
}

// Load builds a Config from all layers.
//
// A file that fails to load is skipped and its error returned alongside
// a config built from the remaining layers. If the merged settings are
// invalid the defaults are returned with the validation error. The
// returned config is never nil.
func Load(opts ...Option) (*Config, error) {
	o := &options{
		useEnv:    true,
		overrides: make(map[string]any),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.fs == nil {
		o.fs = loader.DefaultFS()
	}

	var errs []error
	merged, err := toMap(Default())
	if err != nil {
		return Default(), err
	}

	if o.path != "" {
		l, err := loader.ForFile(o.fs, o.path)
		if err == nil {
			var file map[string]any
			file, err = l.Load()
			merged = loader.DeepMerge(merged, file)
		}
		if err != nil {
			errs = append(errs, err)
		}
	}

	if o.useEnv {
		env, err := loader.NewEnvLoader(loader.DefaultEnvPrefix).Load()
		if err != nil {
			errs = append(errs, err)
		}
		merged = loader.DeepMerge(merged, env)
	}

	merged = loader.DeepMerge(merged, o.overrides)

	cfg, err := fromMap(merged)
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		return Default(), errors.Join(append(errs, err)...)
	}
	return cfg, errors.Join(errs...)
}

// toMap converts a Config into a settings map.
func toMap(c *Config) (map[string]any, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// fromMap decodes a merged settings map onto a Config. Unknown settings
// are ignored.
func fromMap(m map[string]any) (*Config, error) {
	data, err := toml.Marshal(m)
	if err != nil {
		return nil, err
	}
	cfg := &Config{}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, &ValidationError{
			Message: err.Error(),
			Code:    ErrCodeTypeMismatch,
		}
	}
	return cfg, nil
}
