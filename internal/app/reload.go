package app

import (
	"github.com/dshills/rawedit/internal/config"
	"github.com/dshills/rawedit/internal/config/watcher"
	"github.com/dshills/rawedit/internal/renderer/backend"
	"github.com/dshills/rawedit/internal/renderer/statusline"
)

// watchConfig starts the config file watcher when enabled. Changes are
// posted to the backend so they are applied by the event loop. Returns
// a function that stops the watcher, or nil if nothing was started.
func (app *Application) watchConfig() func() {
	if !app.opts.WatchConfig || app.opts.ConfigPath == "" {
		return nil
	}

	log := app.logger.WithComponent("watcher")
	w, err := watcher.New(app.opts.ConfigPath,
		func(ev watcher.Event) {
			log.Debug("%s %s", ev.Op, ev.Path)
			if err := app.backend.PostEvent(backend.Event{
				Type:    backend.EventInterrupt,
				Payload: interruptReloadConfig,
			}); err != nil {
				log.Warn("post reload: %v", err)
			}
		},
		watcher.WithErrorHandler(func(err error) {
			log.Warn("%v", err)
		}),
	)
	if err != nil {
		log.Warn("%v", NewOperationError("watch", app.opts.ConfigPath, err))
		return nil
	}

	return func() {
		if err := w.Close(); err != nil {
			log.Warn("close: %v", err)
		}
	}
}

// reloadConfig loads the configuration again and applies it. On any
// error the running configuration is kept.
func (app *Application) reloadConfig() {
	cfg, err := config.Load(app.configOptions()...)
	if err != nil {
		app.logger.Warn("%v", NewOperationError("reload", app.opts.ConfigPath, err).WithContext("keeping current config"))
		app.renderer.StatusLine().SetMessage("Config error: "+err.Error(), statusline.MessageWarning)
		app.render()
		return
	}

	app.applyConfig(cfg)
	app.logger.Info("config reloaded")
	app.renderer.StatusLine().SetMessage("Config reloaded", statusline.MessageInfo)
	app.render()
}

// applyConfig switches the session to cfg. The line ending is fixed for
// the session and is not changed.
func (app *Application) applyConfig(cfg *config.Config) {
	app.cfg = cfg
	app.engine.SetTabWidth(cfg.Editor.TabSize)
	app.logger.SetLevel(ParseLogLevel(cfg.Logging.Level))

	opts := app.renderer.Options()
	if opts.ShowStatusLine != cfg.UI.StatusLine {
		opts.ShowStatusLine = cfg.UI.StatusLine
		app.renderer.SetOptions(opts)
		w, h := app.renderer.Size()
		app.resize(w, h)
	}
}
