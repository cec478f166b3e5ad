package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-breakout/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagServeEngine string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Breakout SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own game and physics world. Settings and
results live in one database shared by everyone.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.breakout/host_key

Examples:
  breakout serve                           # Listen on :23234 with auto-generated key
  breakout serve --ssh :2222               # Listen on port 2222
  breakout serve --host-key ./my_host_key  # Use specific host key
  breakout serve --db ./breakout.db        # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagServeEngine, "engine", "", "Physics engine (see 'breakout engines')")
}

func runServe(_ *cobra.Command, _ []string) error {
	game, err := loadConfig(flagServeEngine)
	if err != nil {
		return err
	}
	logger, err := newLogger(os.Stderr, "breakout-ssh")
	if err != nil {
		return err
	}

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		TickRate:    flagFPS,
		Game:        game,
	}

	server, err := tui.NewSSHServer(cfg, logger)
	if err != nil {
		return fmt.Errorf("error creating server: %w", err)
	}

	fmt.Printf("Starting Breakout SSH server on %s\n", cfg.Address)
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe()
}
