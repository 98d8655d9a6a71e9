package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/rawedit/internal/config/loader"
	"github.com/dshills/rawedit/internal/project/vfs"
)

func memFS(t *testing.T, files map[string]string) *vfs.MemFS {
	t.Helper()
	fs := vfs.NewMemFS()
	for path, content := range files {
		require.NoError(t, fs.AddFile(path, content))
	}
	return fs
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 4, cfg.Editor.TabSize)
	assert.Equal(t, LineEndingAuto, cfg.Editor.LineEnding)
	assert.True(t, cfg.UI.StatusLine)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Empty(t, cfg.Logging.File)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
		path   string
		code   ValidationErrorCode
	}{
		{"tab size zero", func(c *Config) { c.Editor.TabSize = 0 }, "editor.tab_size", ErrCodeOutOfRange},
		{"tab size too big", func(c *Config) { c.Editor.TabSize = 17 }, "editor.tab_size", ErrCodeOutOfRange},
		{"line ending", func(c *Config) { c.Editor.LineEnding = "cr" }, "editor.line_ending", ErrCodeInvalidEnum},
		{"log level", func(c *Config) { c.Logging.Level = "trace" }, "logging.level", ErrCodeInvalidEnum},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)

			err := cfg.Validate()
			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "got %v", err)
			assert.Equal(t, tt.path, verr.Path)
			assert.Equal(t, tt.code, verr.Code)
		})
	}
}

func TestLoadDefaultsOnly(t *testing.T) {
	cfg, err := Load(WithoutEnv())
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadTOMLFile(t *testing.T) {
	fs := memFS(t, map[string]string{
		"/cfg/config.toml": "[editor]\ntab_size = 2\nline_ending = \"crlf\"\n\n[ui]\nstatus_line = false\n",
	})

	cfg, err := Load(WithFS(fs), WithFile("/cfg/config.toml"), WithoutEnv())
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Editor.TabSize)
	assert.Equal(t, LineEndingCRLF, cfg.Editor.LineEnding)
	assert.False(t, cfg.UI.StatusLine)
	// Untouched settings keep their defaults.
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadYAMLFile(t *testing.T) {
	fs := memFS(t, map[string]string{
		"/cfg/config.yaml": "editor:\n  tab_size: 8\nlogging:\n  level: debug\n  file: /tmp/rawedit.log\n",
	})

	cfg, err := Load(WithFS(fs), WithFile("/cfg/config.yaml"), WithoutEnv())
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.Editor.TabSize)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "/tmp/rawedit.log", cfg.Logging.File)
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(WithFS(vfs.NewMemFS()), WithFile("/nope.toml"), WithoutEnv())
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadParseError(t *testing.T) {
	fs := memFS(t, map[string]string{
		"/bad.toml": "[editor]\ntab_size = = 3\n",
	})

	cfg, err := Load(WithFS(fs), WithFile("/bad.toml"), WithoutEnv())
	require.Error(t, err)

	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "/bad.toml", perr.Path)
	assert.Equal(t, 2, perr.Line)

	// Remaining layers still apply.
	assert.Equal(t, Default(), cfg)
}

func TestLoadUnsupportedFormat(t *testing.T) {
	_, err := Load(WithFS(vfs.NewMemFS()), WithFile("/config.json"), WithoutEnv())
	assert.ErrorIs(t, err, loader.ErrUnsupportedFormat)
}

func TestLoadInvalidValueFallsBack(t *testing.T) {
	fs := memFS(t, map[string]string{
		"/config.toml": "[editor]\ntab_size = 99\n",
	})

	cfg, err := Load(WithFS(fs), WithFile("/config.toml"), WithoutEnv())
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, ErrCodeOutOfRange, verr.Code)
	assert.Equal(t, Default(), cfg)
}

func TestLoadTypeMismatch(t *testing.T) {
	fs := memFS(t, map[string]string{
		"/config.toml": "[editor]\ntab_size = \"wide\"\n",
	})

	_, err := Load(WithFS(fs), WithFile("/config.toml"), WithoutEnv())
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, ErrCodeTypeMismatch, verr.Code)
}

func TestLoadPrecedence(t *testing.T) {
	fs := memFS(t, map[string]string{
		"/config.toml": "[editor]\ntab_size = 2\nline_ending = \"lf\"\n\n[logging]\nlevel = \"warn\"\n",
	})
	t.Setenv("RAWEDIT_TAB_SIZE", "3")
	t.Setenv("RAWEDIT_LOGGING_LEVEL", "error")

	cfg, err := Load(
		WithFS(fs),
		WithFile("/config.toml"),
		WithOverrides(map[string]any{"editor.tab_size": 6}),
	)
	require.NoError(t, err)

	assert.Equal(t, 6, cfg.Editor.TabSize, "override beats env and file")
	assert.Equal(t, "error", cfg.Logging.Level, "env beats file")
	assert.Equal(t, LineEndingLF, cfg.Editor.LineEnding, "file beats defaults")
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	path := DefaultPath()
	if path == "" {
		t.Skip("no user config dir")
	}
	assert.Contains(t, path, "rawedit")
}

func TestValidationErrorCodeString(t *testing.T) {
	assert.Equal(t, "type_mismatch", ErrCodeTypeMismatch.String())
	assert.Equal(t, "out_of_range", ErrCodeOutOfRange.String())
	assert.Equal(t, "invalid_enum", ErrCodeInvalidEnum.String())
	assert.Equal(t, "unknown", ValidationErrorCode(42).String())
}
