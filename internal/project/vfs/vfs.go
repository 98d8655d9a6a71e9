// Package vfs abstracts the file operations the editor needs so that
// loading and saving run against the OS or an in-memory file system.
package vfs

import (
	"io/fs"
	"time"
)

// VFS is the file system used to load and save documents.
type VFS interface {
	ReadFile(path string) ([]byte, error)
	Stat(path string) (FileInfo, error)

	// WriteFile writes data in place, creating the file if necessary.
	WriteFile(path string, data []byte, perm fs.FileMode) error

	// WriteFileAtomic replaces the file so that readers see either the
	// old or the new content. An existing file keeps its permissions;
	// perm applies to new files.
	WriteFileAtomic(path string, data []byte, perm fs.FileMode) error

	Remove(path string) error
	Rename(oldPath, newPath string) error

	Dir(path string) string
	Base(path string) string
	Ext(path string) string

	// Exists reports whether something is at path. A path that cannot be
	// checked, e.g. for lack of permission, counts as existing.
	Exists(path string) bool
}

// FileInfo describes a file or directory.
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	Mode    fs.FileMode
	ModTime time.Time
}

// IsDir reports whether the entry is a directory.
func (fi FileInfo) IsDir() bool { return fi.Mode.IsDir() }
