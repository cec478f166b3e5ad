package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/platform/spectate"
	"github.com/vovakirdan/tui-breakout/internal/platform/tui"
	"github.com/vovakirdan/tui-breakout/internal/settings"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

var (
	flagEngine   string
	flagSpectate string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play Breakout",
	Long: `Start a game in this terminal.

Controls:
  Left/Right, A/D  - Move the paddle (mouse works too)
  Space, click     - Launch the parked balls
  R/Enter          - New game after a win
  P/Esc            - Pause
  S                - Settings
  T                - Recent wins
  Q/Ctrl+C         - Quit

Settings changed with 'breakout settings set' while a game runs are picked
up immediately.

Examples:
  breakout play
  breakout play --engine chipmunk
  breakout play --spectate :8080      # stream the field to ws://host:8080/ws
  breakout play --config ./breakout.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagEngine, "engine", "", "Physics engine (see 'breakout engines')")
	playCmd.Flags().StringVar(&flagSpectate, "spectate", "", "Serve a websocket spectator feed on this address")
}

func runPlay(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig(flagEngine)
	if err != nil {
		return err
	}

	logFile, err := openLogFile()
	if err != nil {
		return err
	}
	defer logFile.Close()

	logger, err := newLogger(logFile, "breakout")
	if err != nil {
		return err
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}

	opts := tui.Options{
		Config: cfg,
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: flagFPS,
			Seed:     flagSeed,
		},
		Logger: logger,
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open database: %v\n", err)
		logger.Warn("playing without database", "error", err)
	} else {
		defer store.Close()
		opts.Settings = store
		opts.Results = store

		watcher, watchErr := settings.NewWatcher(store.Path())
		if watchErr != nil {
			logger.Warn("settings will not reload", "error", watchErr)
		} else {
			defer watcher.Close()
			opts.Watcher = watcher
		}
	}

	if flagSpectate != "" {
		hub := spectate.NewHub(logger.WithPrefix("spectate"))
		srv, listenErr := spectate.Listen(flagSpectate, hub)
		if listenErr != nil {
			return listenErr
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			srv.Shutdown(ctx) //nolint:errcheck // exiting anyway
		}()
		opts.Hub = hub
	}

	logger.Info("starting game", "engine", cfg.Physics.Engine, "fps", flagFPS, "size", fmt.Sprintf("%dx%d", width, height))
	if err := tui.Run(opts); err != nil {
		return fmt.Errorf("error running game: %w", err)
	}
	return nil
}
