package watcher

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder collects handler calls.
type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) handle(ev Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

func (r *recorder) last() Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.events[len(r.events)-1]
}

func TestOperation_String(t *testing.T) {
	tests := []struct {
		op   Operation
		want string
	}{
		{OpWrite, "write"},
		{OpCreate, "create"},
		{OpRemove, "remove"},
		{OpRename, "rename"},
		{Operation(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.op.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.op, got, tt.want)
		}
	}
}

func TestConvertOp(t *testing.T) {
	tests := []struct {
		in     fsnotify.Op
		want   Operation
		wantOK bool
	}{
		{fsnotify.Write, OpWrite, true},
		{fsnotify.Create, OpCreate, true},
		{fsnotify.Create | fsnotify.Write, OpCreate, true},
		{fsnotify.Remove, OpRemove, true},
		{fsnotify.Rename, OpRename, true},
		{fsnotify.Chmod, 0, false},
	}

	for _, tt := range tests {
		got, ok := convertOp(tt.in)
		assert.Equal(t, tt.wantOK, ok, tt.in.String())
		if ok {
			assert.Equal(t, tt.want, got, tt.in.String())
		}
	}
}

func TestWatcher_DetectsWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("a = 1\n"), 0644))

	rec := &recorder{}
	w, err := New(path, rec.handle, WithDebounce(20*time.Millisecond))
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	require.NoError(t, os.WriteFile(path, []byte("a = 2\n"), 0644))

	require.Eventually(t, func() bool { return rec.count() > 0 }, 5*time.Second, 10*time.Millisecond)
	ev := rec.last()
	assert.Equal(t, w.Path(), ev.Path)
	assert.False(t, ev.Time.IsZero())
}

func TestWatcher_DetectsCreate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	rec := &recorder{}
	w, err := New(path, rec.handle, WithDebounce(0))
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	require.NoError(t, os.WriteFile(path, []byte("editor: {}\n"), 0644))

	require.Eventually(t, func() bool { return rec.count() > 0 }, 5*time.Second, 10*time.Millisecond)
}

func TestWatcher_DebounceCoalesces(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(""), 0644))

	rec := &recorder{}
	w, err := New(path, rec.handle, WithDebounce(300*time.Millisecond))
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte{byte('0' + i)}, 0644))
	}

	require.Eventually(t, func() bool { return rec.count() > 0 }, 5*time.Second, 10*time.Millisecond)
	time.Sleep(400 * time.Millisecond)
	assert.Equal(t, 1, rec.count())
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	rec := &recorder{}
	w, err := New(path, rec.handle, WithDebounce(0))
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.toml"), []byte("x"), 0644))

	assert.Never(t, func() bool { return rec.count() > 0 }, 200*time.Millisecond, 20*time.Millisecond)
}

func TestWatcher_MissingDir(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope", "config.toml"), func(Event) {})
	assert.Error(t, err)
}

func TestWatcher_CloseTwice(t *testing.T) {
	w, err := New(filepath.Join(t.TempDir(), "config.toml"), func(Event) {})
	require.NoError(t, err)

	require.NoError(t, w.Close())
	assert.NoError(t, w.Close())
}

func TestWatcher_NoEventsAfterClose(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	rec := &recorder{}
	w, err := New(path, rec.handle, WithDebounce(50*time.Millisecond))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	assert.Never(t, func() bool { return rec.count() > 0 }, 200*time.Millisecond, 20*time.Millisecond)
}
