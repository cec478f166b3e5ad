package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-breakout/internal/settings"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

var (
	flagBalls      int
	flagBricks     int
	flagBounciness float64
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change game settings",
	Long: `Settings are stored in the database and shared by 'play' and 'serve'.
A running game picks up changes right away; changing balls or bricks
starts a new game.

Limits:
  balls       1..3
  bricks      1..40
  bounciness  0..1`,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the stored settings",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return withStore(func(store *storage.Store) error {
			s, err := store.Load()
			if err != nil {
				return err
			}
			printSettings(s)
			return nil
		})
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change one or more settings",
	Example: `  breakout settings set --balls 2
  breakout settings set --bricks 30 --bounciness 0.8`,
	Args: cobra.NoArgs,
	RunE: runSettingsSet,
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the default settings",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return withStore(func(store *storage.Store) error {
			if err := store.ResetSettings(); err != nil {
				return err
			}
			fmt.Println("Settings reset to defaults.")
			printSettings(settings.Defaults())
			return nil
		})
	},
}

func init() {
	settingsSetCmd.Flags().IntVar(&flagBalls, "balls", 0, "Number of balls (1-3)")
	settingsSetCmd.Flags().IntVar(&flagBricks, "bricks", 0, "Number of bricks (1-40)")
	settingsSetCmd.Flags().Float64Var(&flagBounciness, "bounciness", 0, "Ball bounciness (0-1)")

	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsResetCmd)
}

func runSettingsSet(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()
	if !flags.Changed("balls") && !flags.Changed("bricks") && !flags.Changed("bounciness") {
		return errors.New("nothing to set: use --balls, --bricks or --bounciness")
	}

	return withStore(func(store *storage.Store) error {
		s, err := store.Load()
		if err != nil {
			return err
		}
		if flags.Changed("balls") {
			s.Balls = flagBalls
		}
		if flags.Changed("bricks") {
			s.Bricks = flagBricks
		}
		if flags.Changed("bounciness") {
			s.Bounciness = flagBounciness
		}

		clamped := s.Clamp()
		if !clamped.Equal(s) {
			fmt.Printf("Note: adjusted to allowed range (%s)\n", clamped)
		}
		if err := store.Save(clamped); err != nil {
			return err
		}
		printSettings(clamped)
		return nil
	})
}

func printSettings(s settings.Settings) {
	fmt.Printf("  %-18s %d\n", storage.KeyBalls, s.Balls)
	fmt.Printf("  %-18s %d\n", storage.KeyBricks, s.Bricks)
	fmt.Printf("  %-18s %.2f\n", storage.KeyBounciness, s.Bounciness)
}

// withStore opens the database for the duration of fn.
func withStore(fn func(*storage.Store) error) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(store)
}
