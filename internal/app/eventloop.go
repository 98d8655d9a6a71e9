package app

import (
	"github.com/dshills/rawedit/internal/input/key"
	"github.com/dshills/rawedit/internal/renderer/backend"
)

// interrupt is the payload of interrupt events posted to the backend.
type interrupt int

const (
	interruptQuit interrupt = iota
	interruptReloadConfig
)

// handleEvent processes one backend event. ErrQuit ends the session.
func (app *Application) handleEvent(ev backend.Event) error {
	switch ev.Type {
	case backend.EventKey:
		return app.handleKey(ev.Key)

	case backend.EventResize:
		app.resize(ev.Width, ev.Height)
		app.render()

	case backend.EventInterrupt:
		return app.handleInterrupt(ev.Payload)

	case backend.EventError:
		return NewComponentError("backend", "poll event", ev.Err)

	case backend.EventClosed:
		return ErrQuit
	}
	return nil
}

func (app *Application) handleKey(k key.Event) error {
	res := app.engine.HandleKey(k)
	if res.Action != "" {
		app.logger.Debug("key %s -> %s (%s)", k, res.Action, res.Status)
	}

	switch {
	case res.Quit:
		return ErrQuit
	case res.Save:
		app.save()
		app.render()
		return nil
	case res.IsNoOp():
		return nil
	}

	app.renderer.StatusLine().ClearMessage()
	if res.Redraw {
		app.render()
	} else if res.CursorMoved {
		app.renderer.MoveCursor(app.engine.Buffer(), app.engine.Cursor())
	}
	return nil
}

func (app *Application) handleInterrupt(payload any) error {
	switch payload {
	case interruptQuit:
		return ErrQuit
	case interruptReloadConfig:
		app.reloadConfig()
	}
	return nil
}
