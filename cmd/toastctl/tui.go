package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/toaststack/internal/audio"
	"github.com/jmylchreest/toaststack/internal/config"
	"github.com/jmylchreest/toaststack/internal/toast"
	"github.com/jmylchreest/toaststack/internal/tui"
)

var tuiOpts struct {
	noWatch bool
	sounds  bool
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal demo",
	Long: `Launch a terminal rendition of the toast stack.

Toasts are laid out in character cells with the same engine the GTK host
uses: they queue beyond the visible limit, slide into freed slots, fade
out and pause while hovered.

Key bindings:
  1-4         Show a success, warning, error or information toast
  n           Show a toast without a preset
  d           Toggle dark preset variants
  x           Hide the newest toast
  h           Hover the newest toast
  p           Cycle the stack position
  +/-         Change how many toasts are visible
  r           Reset the stack
  c           Copy the stack as YAML
  ?           Show help
  q           Quit

The mouse hovers toasts, and clicking × closes one. Changes to the config
file are applied while running.`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)

	tuiCmd.Flags().BoolVar(&tuiOpts.noWatch, "no-watch", false,
		"Do not reload the config file when it changes")
	tuiCmd.Flags().BoolVar(&tuiOpts.sounds, "sounds", false,
		"Play chimes even if disabled in the config")
}

func runTUI(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := tuiLogger()

	sounds := cfg.Sounds
	if tuiOpts.sounds {
		sounds.Enabled = true
	}
	chimes := audio.NewChimes(sounds, nil, log)
	if err := chimes.Start(ctx); err != nil {
		log.Warn("failed to start chimes", "error", err)
	}
	defer chimes.Stop()

	var watcher *config.Watcher
	if !tuiOpts.noWatch {
		path := globalOpts.configPath
		if path == "" {
			path = config.DefaultPath()
		}
		watcher = config.NewWatcher(path, log)
	}

	return tui.Run(ctx, tui.RunOptions{
		Config:    cfg,
		Logger:    log,
		Observers: []toast.Observer{chimes},
		Watcher:   watcher,
		OnReload: func(c *config.Config) {
			s := c.Sounds
			if tuiOpts.sounds {
				s.Enabled = true
			}
			chimes.UpdateConfig(s)
		},
	})
}

// tuiLogger keeps log lines off the terminal the TUI draws on.
func tuiLogger() *slog.Logger {
	if globalOpts.logFile != "" {
		return logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
