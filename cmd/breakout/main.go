// breakout is a terminal Breakout game.
//
// Usage:
//
//	breakout play            - Play in this terminal
//	breakout serve           - Start SSH server for remote play
//	breakout settings show   - Print the stored settings
//	breakout settings set    - Change balls, bricks or bounciness
//	breakout settings reset  - Restore default settings
//	breakout scores          - Show recent wins
//	breakout engines         - List physics engines
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible launches
//	--db <path>          - Set database path (default: ~/.breakout/breakout.db)
//	--config <path>      - Use a custom tuning YAML
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/physics"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

const logPath = "~/.breakout/breakout.log"

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "breakout",
	Short: "Breakout - break bricks in your terminal",
	Long: `Breakout lays a field of bricks over your terminal. Launch the balls,
keep them in play with the paddle and clear every brick using as few
balls as you can.

Available commands:
  play      - Play in this terminal
  serve     - Start SSH server for remote play
  settings  - Show or change balls, bricks and bounciness
  scores    - View recent wins
  engines   - List physics engines

Examples:
  breakout play
  breakout play --engine chipmunk
  breakout settings set --balls 2 --bricks 30
  breakout serve --ssh :2222
  breakout scores`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to settings and results database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom tuning YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(enginesCmd)
}

// newLogger builds the command logger at the --log-level level.
func newLogger(w io.Writer, prefix string) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	}), nil
}

// openLogFile opens the play log. The alt screen owns the terminal, so
// logs go to a file.
func openLogFile() (*os.File, error) {
	path, err := storage.ExpandPath(logPath)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
}

// loadConfig loads tuning and applies an engine override.
func loadConfig(engine string) (config.BreakoutConfig, error) {
	cfg, err := config.LoadBreakout(flagConfig)
	if err != nil {
		return cfg, err
	}
	if engine != "" {
		cfg.Physics.Engine = engine
	}
	if !physics.Exists(cfg.Physics.Engine) {
		return cfg, fmt.Errorf("unknown physics engine %q (run 'breakout engines')", cfg.Physics.Engine)
	}
	return cfg, nil
}
