package backend

import "sync"

// NullBackend is an in-memory backend for testing.
// It records drawn cells and the cursor and replays posted events.
type NullBackend struct {
	mu sync.Mutex

	width, height int
	cells         [][]Cell
	cursorX       int
	cursorY       int
	cursorVisible bool
	shows         int
	initialized   bool
	shutdown      bool
	initErr       error

	events chan Event
}

// NewNullBackend creates a null backend with the given dimensions.
func NewNullBackend(width, height int) *NullBackend {
	b := &NullBackend{
		width:  width,
		height: height,
		events: make(chan Event, 256),
	}
	b.allocate()
	return b
}

// FailInit makes the next Init return err.
func (b *NullBackend) FailInit(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.initErr = err
}

func (b *NullBackend) allocate() {
	b.cells = make([][]Cell, b.height)
	for i := range b.cells {
		b.cells[i] = make([]Cell, b.width)
		for j := range b.cells[i] {
			b.cells[i][j] = EmptyCell()
		}
	}
}

func (b *NullBackend) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.initErr != nil {
		return b.initErr
	}
	b.initialized = true
	return nil
}

func (b *NullBackend) Shutdown() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.shutdown = true
	b.allocate()
}

func (b *NullBackend) Size() (int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.width, b.height
}

func (b *NullBackend) SetCell(x, y int, cell Cell) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if x >= 0 && x < b.width && y >= 0 && y < b.height {
		b.cells[y][x] = cell
	}
}

// GetCell returns the cell at the given position.
// Returns an empty cell for positions outside the terminal.
func (b *NullBackend) GetCell(x, y int) Cell {
	b.mu.Lock()
	defer b.mu.Unlock()

	if x >= 0 && x < b.width && y >= 0 && y < b.height {
		return b.cells[y][x]
	}
	return EmptyCell()
}

// Row returns the text of a screen row with trailing blanks removed.
func (b *NullBackend) Row(y int) string {
	b.mu.Lock()
	defer b.mu.Unlock()

	if y < 0 || y >= b.height {
		return ""
	}
	runes := make([]rune, 0, b.width)
	for _, c := range b.cells[y] {
		if c.Rune == 0 {
			continue
		}
		runes = append(runes, c.Rune)
	}
	end := len(runes)
	for end > 0 && runes[end-1] == ' ' {
		end--
	}
	return string(runes[:end])
}

func (b *NullBackend) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.allocate()
}

func (b *NullBackend) Show() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.shows++
}

func (b *NullBackend) ShowCursor(x, y int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.cursorX, b.cursorY = clampToScreen(x, y, b.width, b.height)
	b.cursorVisible = true
}

func (b *NullBackend) HideCursor() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.cursorVisible = false
}

func (b *NullBackend) PollEvent() Event {
	return <-b.events
}

func (b *NullBackend) PostEvent(event Event) error {
	select {
	case b.events <- event:
		return nil
	default:
		return ErrEventQueueFull
	}
}

// CursorPosition returns the current cursor position for testing.
func (b *NullBackend) CursorPosition() (x, y int, visible bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.cursorX, b.cursorY, b.cursorVisible
}

// ShowCount returns how many times Show was called.
func (b *NullBackend) ShowCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.shows
}

// Initialized reports whether Init succeeded.
func (b *NullBackend) Initialized() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.initialized
}

// IsShutdown reports whether Shutdown was called.
func (b *NullBackend) IsShutdown() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.shutdown
}

// Resize simulates a terminal resize. It resizes the screen and queues a
// resize event.
func (b *NullBackend) Resize(width, height int) {
	b.mu.Lock()
	b.width = width
	b.height = height
	b.allocate()
	b.mu.Unlock()

	_ = b.PostEvent(Event{Type: EventResize, Width: width, Height: height})
}
