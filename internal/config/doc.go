// Package config loads editor settings.
//
// Settings come from four layers, lowest precedence first:
//
//   - built-in defaults
//   - a config file (.toml or .yaml)
//   - RAWEDIT_* environment variables
//   - command-line overrides
//
// Layers are read into maps by package loader, merged, decoded onto
// Config and validated. Package watcher reports config file changes so
// the editor can reload them while running.
package config
