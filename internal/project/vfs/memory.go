package vfs

import (
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"
	"syscall"
	"time"
)

// Standard error values for MemFS operations.
// These align with POSIX errors for consistency with OSFS.
var (
	errIsDir    = syscall.EISDIR
	errNotEmpty = syscall.ENOTEMPTY
)

// MemFS implements VFS using an in-memory file system.
// It is used in tests; writes can be made to fail with FailWrites.
//
// MemFS is safe for concurrent use.
type MemFS struct {
	mu       sync.RWMutex
	files    map[string]*memFile
	dirs     map[string]bool
	writeErr error
}

type memFile struct {
	content []byte
	mode    fs.FileMode
	modTime time.Time
}

// NewMemFS creates a new in-memory file system.
func NewMemFS() *MemFS {
	return &MemFS{
		files: make(map[string]*memFile),
		dirs:  map[string]bool{"/": true},
	}
}

// Ensure MemFS implements VFS.
var _ VFS = (*MemFS)(nil)

// FailWrites makes every subsequent write return err. A nil err restores
// normal behavior.
func (m *MemFS) FailWrites(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writeErr = err
}

// ReadFile reads the entire file content.
func (m *MemFS) ReadFile(filePath string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	filePath = m.cleanPath(filePath)
	f, ok := m.files[filePath]
	if !ok {
		if m.dirs[filePath] {
			return nil, &fs.PathError{Op: "read", Path: filePath, Err: errIsDir}
		}
		return nil, &fs.PathError{Op: "read", Path: filePath, Err: fs.ErrNotExist}
	}

	// Return a copy to prevent modification
	content := make([]byte, len(f.content))
	copy(content, f.content)
	return content, nil
}

// Stat returns file information.
func (m *MemFS) Stat(filePath string) (FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	filePath = m.cleanPath(filePath)

	if f, ok := m.files[filePath]; ok {
		return FileInfo{Path: filePath, Name: path.Base(filePath), Size: int64(len(f.content)), Mode: f.mode, ModTime: f.modTime}, nil
	}
	if m.dirs[filePath] {
		return FileInfo{Path: filePath, Name: path.Base(filePath), Mode: fs.ModeDir | 0755, ModTime: time.Now()}, nil
	}
	return FileInfo{}, &fs.PathError{Op: "stat", Path: filePath, Err: fs.ErrNotExist}
}

// WriteFile writes data to a file, creating it if necessary.
func (m *MemFS) WriteFile(filePath string, data []byte, perm fs.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.writeLocked("write", m.cleanPath(filePath), data, perm)
}

// WriteFileAtomic writes data to a file. Writes to MemFS are already
// atomic; the mode of an existing file is kept.
func (m *MemFS) WriteFileAtomic(filePath string, data []byte, perm fs.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	filePath = m.cleanPath(filePath)
	if f, ok := m.files[filePath]; ok {
		perm = f.mode
	}
	return m.writeLocked("write", filePath, data, perm)
}

func (m *MemFS) writeLocked(op, filePath string, data []byte, perm fs.FileMode) error {
	if m.writeErr != nil {
		return &fs.PathError{Op: op, Path: filePath, Err: m.writeErr}
	}

	// Check if path is a directory
	if m.dirs[filePath] {
		return &fs.PathError{Op: op, Path: filePath, Err: errIsDir}
	}

	// Ensure parent directory exists
	dir := path.Dir(filePath)
	if dir != "/" && !m.dirs[dir] {
		return &fs.PathError{Op: op, Path: filePath, Err: fs.ErrNotExist}
	}

	content := make([]byte, len(data))
	copy(content, data)

	m.files[filePath] = &memFile{
		content: content,
		mode:    perm,
		modTime: time.Now(),
	}
	return nil
}

// Remove removes a file or empty directory.
func (m *MemFS) Remove(filePath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	filePath = m.cleanPath(filePath)

	if _, ok := m.files[filePath]; ok {
		delete(m.files, filePath)
		return nil
	}

	if !m.dirs[filePath] {
		return &fs.PathError{Op: "remove", Path: filePath, Err: fs.ErrNotExist}
	}

	prefix := filePath
	if prefix != "/" {
		prefix += "/"
	}
	for f := range m.files {
		if strings.HasPrefix(f, prefix) {
			return &fs.PathError{Op: "remove", Path: filePath, Err: errNotEmpty}
		}
	}
	for d := range m.dirs {
		if d != filePath && strings.HasPrefix(d, prefix) {
			return &fs.PathError{Op: "remove", Path: filePath, Err: errNotEmpty}
		}
	}

	delete(m.dirs, filePath)
	return nil
}

// Rename renames a file. Directories cannot be renamed.
func (m *MemFS) Rename(oldPath, newPath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	oldPath = m.cleanPath(oldPath)
	newPath = m.cleanPath(newPath)

	f, ok := m.files[oldPath]
	if !ok {
		if m.dirs[oldPath] {
			return &fs.PathError{Op: "rename", Path: oldPath, Err: errIsDir}
		}
		return &fs.PathError{Op: "rename", Path: oldPath, Err: fs.ErrNotExist}
	}

	newParent := path.Dir(newPath)
	if newParent != "/" && !m.dirs[newParent] {
		return &fs.PathError{Op: "rename", Path: newPath, Err: fs.ErrNotExist}
	}

	m.files[newPath] = f
	delete(m.files, oldPath)
	return nil
}

// Dir returns the directory portion of a path.
func (m *MemFS) Dir(filePath string) string {
	return path.Dir(filePath)
}

// Base returns the last element of a path.
func (m *MemFS) Base(filePath string) string {
	return path.Base(filePath)
}

// Ext returns the file extension.
func (m *MemFS) Ext(filePath string) string {
	return path.Ext(filePath)
}

// Exists returns true if the path exists.
func (m *MemFS) Exists(filePath string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	filePath = m.cleanPath(filePath)
	_, isFile := m.files[filePath]
	return isFile || m.dirs[filePath]
}

// cleanPath normalizes a path.
func (m *MemFS) cleanPath(p string) string {
	p = path.Clean(p)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}

// AddFile is a convenience method for adding files during setup.
// Parent directories are created as needed.
func (m *MemFS) AddFile(filePath string, content string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	filePath = m.cleanPath(filePath)
	current := ""
	for _, part := range strings.Split(strings.Trim(path.Dir(filePath), "/"), "/") {
		if part == "" {
			continue
		}
		current += "/" + part
		m.dirs[current] = true
	}
	m.files[filePath] = &memFile{
		content: []byte(content),
		mode:    0644,
		modTime: time.Now(),
	}
	return nil
}

// Files returns all file paths in the file system.
// Useful for testing and debugging.
func (m *MemFS) Files() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	files := make([]string, 0, len(m.files))
	for f := range m.files {
		files = append(files, f)
	}
	sort.Strings(files)
	return files
}
