package key

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewEvents(t *testing.T) {
	e := NewRuneEvent('a', ModNone)
	assert.Equal(t, KeyRune, e.Key)
	assert.Equal(t, 'a', e.Rune)
	assert.False(t, e.Timestamp.IsZero())

	e = NewSpecialEvent(KeyEscape, ModCtrl)
	assert.Equal(t, KeyEscape, e.Key)
	assert.Zero(t, e.Rune)
	assert.True(t, e.Modifiers.HasCtrl())
}

func TestEventIsChar(t *testing.T) {
	tests := []struct {
		name   string
		event  Event
		isRune bool
		isChar bool
	}{
		{"letter", NewRuneEvent('x', ModNone), true, true},
		{"shifted", NewRuneEvent('X', ModShift), true, true},
		{"wide", NewRuneEvent('日', ModNone), true, true},
		{"control char", NewRuneEvent('\x01', ModNone), true, false},
		{"zero rune", Event{Key: KeyRune}, false, false},
		{"special", NewSpecialEvent(KeyTab, ModNone), false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.isRune, tt.event.IsRune())
			assert.Equal(t, tt.isChar, tt.event.IsChar())
		})
	}
}

func TestEventMatches(t *testing.T) {
	assert.True(t, NewRuneEvent('S', ModCtrl).Matches('s'))
	assert.True(t, NewRuneEvent('s', ModCtrl).Matches('S'))
	assert.False(t, NewRuneEvent('a', ModCtrl).Matches('s'))
	assert.False(t, NewSpecialEvent(KeyEnter, ModNone).Matches('s'))
}

func TestEventString(t *testing.T) {
	tests := []struct {
		event Event
		want  string
	}{
		{NewRuneEvent('a', ModNone), "a"},
		{NewRuneEvent('A', ModShift), "A"},
		{NewRuneEvent(' ', ModNone), "Space"},
		{NewRuneEvent('s', ModCtrl), "C-s"},
		{NewRuneEvent('x', ModAlt|ModCtrl), "C-A-x"},
		{NewSpecialEvent(KeyEnter, ModNone), "Enter"},
		{NewSpecialEvent(KeyTab, ModShift), "S-Tab"},
		{NewSpecialEvent(KeyBackspace, ModNone), "BS"},
		{NewSpecialEvent(KeyEscape, ModNone), "Esc"},
		{NewSpecialEvent(KeyPageDown, ModMeta), "M-PgDn"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.event.String())
	}
}
