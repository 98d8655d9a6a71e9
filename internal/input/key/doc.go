// Package key defines the keyboard events the editor understands.
//
// Terminal backends translate their native events into Event values:
// a Key identifying the pressed key, the Rune for character keys and the
// active Modifier set. Control chords on letters are reported as KeyRune
// with ModCtrl so that Ctrl+S and Ctrl+s look the same to the editor.
package key
