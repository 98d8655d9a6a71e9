package backend

import (
	"errors"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/rawedit/internal/input/key"
)

// ErrScreenClosed is reported when the screen stops delivering events.
var ErrScreenClosed = errors.New("screen closed")

// Terminal implements Backend using tcell for terminal output.
type Terminal struct {
	screen   tcell.Screen
	mu       sync.Mutex
	shutdown sync.Once
}

// NewTerminal creates a new terminal backend on the controlling terminal.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Terminal{screen: screen}, nil
}

// NewTerminalWithScreen creates a terminal backend on an existing screen.
func NewTerminalWithScreen(screen tcell.Screen) *Terminal {
	return &Terminal{screen: screen}
}

func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.screen.Init(); err != nil {
		return err
	}

	t.screen.SetCursorStyle(tcell.CursorStyleBlinkingBlock)
	t.screen.Clear()
	return nil
}

func (t *Terminal) Shutdown() {
	t.shutdown.Do(func() {
		t.mu.Lock()
		defer t.mu.Unlock()

		t.screen.Clear()
		t.screen.Show()
		t.screen.Fini()
	})
}

func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.screen.Size()
}

func (t *Terminal) SetCell(x, y int, cell Cell) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.SetContent(x, y, cell.Rune, nil, convertAttr(cell.Attr))
}

func (t *Terminal) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Clear()
}

func (t *Terminal) Show() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Show()
}

func (t *Terminal) ShowCursor(x, y int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	w, h := t.screen.Size()
	x, y = clampToScreen(x, y, w, h)
	t.screen.ShowCursor(x, y)
}

func (t *Terminal) HideCursor() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.HideCursor()
}

func (t *Terminal) PollEvent() Event {
	return convertEvent(t.screen.PollEvent())
}

// PostEvent queues interrupt and key events. Other event types are
// ignored.
func (t *Terminal) PostEvent(event Event) error {
	var ev tcell.Event
	switch event.Type {
	case EventInterrupt:
		ev = tcell.NewEventInterrupt(event.Payload)
	case EventKey:
		k, r, mod := convertToTcell(event.Key)
		ev = tcell.NewEventKey(k, r, mod)
	default:
		return nil
	}
	if err := t.screen.PostEvent(ev); err != nil {
		return ErrEventQueueFull
	}
	return nil
}

func convertAttr(a Attr) tcell.Style {
	style := tcell.StyleDefault
	if a.Has(AttrBold) {
		style = style.Bold(true)
	}
	if a.Has(AttrDim) {
		style = style.Dim(true)
	}
	if a.Has(AttrReverse) {
		style = style.Reverse(true)
	}
	return style
}

// convertEvent converts tcell events to our Event type.
func convertEvent(ev tcell.Event) Event {
	switch e := ev.(type) {
	case nil:
		return Event{Type: EventClosed, Err: ErrScreenClosed}

	case *tcell.EventKey:
		return Event{Type: EventKey, Key: convertKeyEvent(e)}

	case *tcell.EventResize:
		w, h := e.Size()
		return Event{Type: EventResize, Width: w, Height: h}

	case *tcell.EventInterrupt:
		return Event{Type: EventInterrupt, Payload: e.Data()}

	case *tcell.EventError:
		return Event{Type: EventError, Err: e}

	default:
		return Event{Type: EventNone}
	}
}

// convertKeyEvent converts a tcell key event. Control characters that
// double as editing keys (Tab, Enter, Backspace, Escape) are matched
// before the Ctrl+letter range.
func convertKeyEvent(e *tcell.EventKey) key.Event {
	mods := convertMod(e.Modifiers())
	k := e.Key()

	switch {
	case k == tcell.KeyRune:
		return key.NewRuneEvent(e.Rune(), mods)
	case k == tcell.KeyEscape:
		return key.NewSpecialEvent(key.KeyEscape, mods)
	case k == tcell.KeyEnter:
		return key.NewSpecialEvent(key.KeyEnter, mods)
	case k == tcell.KeyTab:
		return key.NewSpecialEvent(key.KeyTab, mods)
	case k == tcell.KeyBacktab:
		return key.NewSpecialEvent(key.KeyTab, mods.With(key.ModShift))
	case k == tcell.KeyBackspace || k == tcell.KeyBackspace2:
		return key.NewSpecialEvent(key.KeyBackspace, mods)
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		return key.NewRuneEvent('a'+rune(k-tcell.KeyCtrlA), mods.With(key.ModCtrl))
	}

	if sk, ok := specialKeys[k]; ok {
		return key.NewSpecialEvent(sk, mods)
	}
	return key.NewSpecialEvent(key.KeyNone, mods)
}

var specialKeys = map[tcell.Key]key.Key{
	tcell.KeyDelete: key.KeyDelete,
	tcell.KeyInsert: key.KeyInsert,
	tcell.KeyHome:   key.KeyHome,
	tcell.KeyEnd:    key.KeyEnd,
	tcell.KeyPgUp:   key.KeyPageUp,
	tcell.KeyPgDn:   key.KeyPageDown,
	tcell.KeyUp:     key.KeyUp,
	tcell.KeyDown:   key.KeyDown,
	tcell.KeyLeft:   key.KeyLeft,
	tcell.KeyRight:  key.KeyRight,
}

// convertMod converts tcell modifiers to our modifier set.
func convertMod(m tcell.ModMask) key.Modifier {
	var mods key.Modifier
	if m&tcell.ModShift != 0 {
		mods |= key.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		mods |= key.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		mods |= key.ModAlt
	}
	if m&tcell.ModMeta != 0 {
		mods |= key.ModMeta
	}
	return mods
}

// convertToTcell converts a key event back to tcell terms for posting.
func convertToTcell(ev key.Event) (tcell.Key, rune, tcell.ModMask) {
	var mod tcell.ModMask
	if ev.Modifiers.HasShift() {
		mod |= tcell.ModShift
	}
	if ev.Modifiers.HasCtrl() {
		mod |= tcell.ModCtrl
	}
	if ev.Modifiers.HasAlt() {
		mod |= tcell.ModAlt
	}
	if ev.Modifiers.HasMeta() {
		mod |= tcell.ModMeta
	}

	switch ev.Key {
	case key.KeyRune:
		return tcell.KeyRune, ev.Rune, mod
	case key.KeyEscape:
		return tcell.KeyEscape, 0, mod
	case key.KeyEnter:
		return tcell.KeyEnter, 0, mod
	case key.KeyTab:
		return tcell.KeyTab, 0, mod
	case key.KeyBackspace:
		return tcell.KeyBackspace2, 0, mod
	}
	for tk, k := range specialKeys {
		if k == ev.Key {
			return tk, 0, mod
		}
	}
	return tcell.KeyNUL, 0, mod
}
