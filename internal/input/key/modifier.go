package key

import "strings"

// Modifier is the set of modifier keys held during a key press.
type Modifier uint8

const (
	ModNone  Modifier = 0
	ModShift Modifier = 1 << (iota - 1)
	ModCtrl
	ModAlt
	// ModMeta is Cmd on macOS and the Windows key elsewhere. Terminals
	// rarely report it.
	ModMeta
)

// Has reports whether every modifier in mod is set.
func (m Modifier) Has(mod Modifier) bool {
	return mod != 0 && m&mod == mod
}

func (m Modifier) HasShift() bool { return m.Has(ModShift) }
func (m Modifier) HasCtrl() bool { return m.Has(ModCtrl) }
func (m Modifier) HasAlt() bool { return m.Has(ModAlt) }
func (m Modifier) HasMeta() bool { return m.Has(ModMeta) }

// With returns m with mod added.
func (m Modifier) With(mod Modifier) Modifier {
	return m | mod
}

// String joins the held modifiers, e.g. "Ctrl+Alt". ModNone is "".
func (m Modifier) String() string {
	var parts []string
	for _, mod := range []struct {
		bit  Modifier
		name string
	}{
		{ModCtrl, "Ctrl"},
		{ModAlt, "Alt"},
		{ModShift, "Shift"},
		{ModMeta, "Meta"},
	} {
		if m.Has(mod.bit) {
			parts = append(parts, mod.name)
		}
	}
	return strings.Join(parts, "+")
}
