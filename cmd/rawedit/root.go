package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/dshills/rawedit/internal/app"
	"github.com/dshills/rawedit/internal/config"
	"github.com/dshills/rawedit/internal/renderer/backend"
)

var errNotTerminal = errors.New("stdin is not a terminal")

type flags struct {
	configPath string
	logLevel   string
	logFile    string
	tabSize    int
	noWatch    bool
}

func newRootCmd() *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "rawedit [file]",
		Short: "A minimal terminal text editor",
		Long: `rawedit edits one text file in the terminal.

Keys: arrows move, Home/End jump to the text on the line,
Ctrl+S saves, Esc quits.`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var file string
			if len(args) > 0 {
				file = args[0]
			}
			return runEditor(file, f, overrides(cmd.Flags(), f))
		},
	}

	cmd.Flags().StringVarP(&f.configPath, "config", "c", "",
		"config file (default: "+config.DefaultPath()+")")
	cmd.Flags().StringVar(&f.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	cmd.Flags().StringVar(&f.logFile, "log-file", "", "write logs to this file")
	cmd.Flags().IntVar(&f.tabSize, "tab-size", 0, "spaces inserted by Tab")
	cmd.Flags().BoolVar(&f.noWatch, "no-watch", false, "do not reload the config file when it changes")

	return cmd
}

// overrides returns the config layer for flags set on the command line.
func overrides(fs *pflag.FlagSet, f flags) map[string]any {
	values := make(map[string]any)
	if fs.Changed("log-level") {
		values["logging.level"] = f.logLevel
	}
	if fs.Changed("log-file") {
		values["logging.file"] = f.logFile
	}
	if fs.Changed("tab-size") {
		values["editor.tab_size"] = f.tabSize
	}
	return values
}

func runEditor(file string, f flags, values map[string]any) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return errNotTerminal
	}

	configPath := f.configPath
	if configPath == "" {
		configPath = config.DefaultPath()
	}
	cfgOpts := []config.Option{config.WithOverrides(values)}

	cfg, cfgErr := config.Load(append(cfgOpts, config.WithFile(configPath))...)

	logger, closer, err := app.OpenLogger(cfg.Logging)
	if err != nil {
		return err
	}
	defer closer.Close()
	if cfgErr != nil {
		logger.Warn("config: %v", cfgErr)
	}

	application, err := app.New(app.Options{
		FilePath:      file,
		ConfigPath:    configPath,
		Config:        cfg,
		ConfigOptions: cfgOpts,
		Logger:        logger,
		WatchConfig:   !f.noWatch,
	})
	if err != nil {
		return err
	}

	terminal, err := backend.NewTerminal()
	if err != nil {
		return fmt.Errorf("create terminal: %w", err)
	}
	application.SetBackend(terminal)

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)

	done := make(chan struct{})
	defer close(done)
	go forwardSignals(signals, done, func() { _ = application.RequestQuit() })

	return application.Run()
}

// forwardSignals calls quit on the first signal and returns. It also
// returns once done is closed.
func forwardSignals(signals <-chan os.Signal, done <-chan struct{}, quit func()) {
	select {
	case <-signals:
		quit()
	case <-done:
	}
}
