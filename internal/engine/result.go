package engine

// Action names reported in results, used for logging.
const (
	ActionInsertChar    = "editor.insertChar"
	ActionInsertTab     = "editor.insertTab"
	ActionInsertNewline = "editor.insertNewline"
	ActionBackspace     = "editor.backspace"
	ActionDelete        = "editor.delete"

	ActionCursorLeft      = "cursor.left"
	ActionCursorRight     = "cursor.right"
	ActionCursorUp        = "cursor.up"
	ActionCursorDown      = "cursor.down"
	ActionCursorLineStart = "cursor.lineStart"
	ActionCursorLineEnd   = "cursor.lineEnd"

	ActionSave = "file.save"
	ActionQuit = "app.quit"
)

// Status indicates the outcome of a key event.
type Status uint8

const (
	// StatusOK indicates the event changed the buffer or the cursor, or
	// requested a save or quit.
	StatusOK Status = iota
	// StatusNoOp indicates the event had no effect.
	StatusNoOp
)

// String returns a string representation of the status.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNoOp:
		return "no-op"
	default:
		return "unknown"
	}
}

// Result describes what the caller must do after a key event.
type Result struct {
	// Status indicates the result status.
	Status Status

	// Action names the action taken. Empty for ignored events.
	Action string

	// Redraw indicates the buffer changed and the whole screen must be
	// redrawn.
	Redraw bool

	// CursorMoved indicates the cursor position changed.
	CursorMoved bool

	// Save requests that the buffer be written to its target.
	Save bool

	// Quit requests the end of the edit session.
	Quit bool
}

// IsNoOp returns true if the event had no effect.
func (r Result) IsNoOp() bool {
	return r.Status == StatusNoOp
}

func noOp(action string) Result {
	return Result{Status: StatusNoOp, Action: action}
}

func edited(action string) Result {
	return Result{Status: StatusOK, Action: action, Redraw: true, CursorMoved: true}
}

func moved(action string) Result {
	return Result{Status: StatusOK, Action: action, CursorMoved: true}
}
