package key

import (
	"strings"
	"time"
	"unicode"
)

// Event is one key press.
type Event struct {
	Key       Key
	Rune      rune // set for KeyRune
	Modifiers Modifier
	Timestamp time.Time
}

// NewEvent creates a key event stamped with the current time.
func NewEvent(k Key, r rune, mods Modifier) Event {
	return Event{Key: k, Rune: r, Modifiers: mods, Timestamp: time.Now()}
}

// NewRuneEvent creates a character key event.
func NewRuneEvent(r rune, mods Modifier) Event {
	return NewEvent(KeyRune, r, mods)
}

// NewSpecialEvent creates an event for a named key.
func NewSpecialEvent(k Key, mods Modifier) Event {
	return NewEvent(k, 0, mods)
}

// IsRune reports whether e carries a character.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0
}

// IsChar reports whether e carries a printable character.
func (e Event) IsChar() bool {
	return e.IsRune() && unicode.IsPrint(e.Rune)
}

// Matches reports whether e is a character event for r, ignoring case.
func (e Event) Matches(r rune) bool {
	return e.IsRune() && unicode.ToLower(e.Rune) == unicode.ToLower(r)
}

var shortNames = map[Key]string{
	KeyEscape:    "Esc",
	KeyBackspace: "BS",
	KeyDelete:    "Del",
	KeyInsert:    "Ins",
	KeyPageUp:    "PgUp",
	KeyPageDown:  "PgDn",
}

// String formats e the way it appears in logs: "a", "C-s", "S-Tab".
// Shift is omitted for characters since it is already in the rune.
func (e Event) String() string {
	var sb strings.Builder
	for _, p := range []struct {
		bit    Modifier
		prefix string
	}{
		{ModCtrl, "C-"},
		{ModAlt, "A-"},
		{ModMeta, "M-"},
	} {
		if e.Modifiers.Has(p.bit) {
			sb.WriteString(p.prefix)
		}
	}
	if e.Modifiers.HasShift() && !e.IsRune() {
		sb.WriteString("S-")
	}

	switch {
	case e.Key == KeyRune && e.Rune == ' ':
		sb.WriteString("Space")
	case e.Key == KeyRune:
		sb.WriteRune(e.Rune)
	default:
		if name, ok := shortNames[e.Key]; ok {
			sb.WriteString(name)
		} else {
			sb.WriteString(e.Key.String())
		}
	}
	return sb.String()
}
