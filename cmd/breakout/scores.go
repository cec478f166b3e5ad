package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-breakout/internal/storage"
)

var flagLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show recent wins",
	Long: `Display the most recent won games and the best game for the current
brick count (fewest balls used).

Examples:
  breakout scores
  breakout scores --limit 25`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of wins to show")
}

func runScores(_ *cobra.Command, _ []string) error {
	return withStore(func(store *storage.Store) error {
		results, err := store.RecentResults(flagLimit)
		if err != nil {
			return err
		}

		fmt.Println("Recent Wins")
		fmt.Println()

		if len(results) == 0 {
			fmt.Println("No wins recorded yet.")
			fmt.Println()
			fmt.Println("Run 'breakout play' and clear the field!")
			return nil
		}

		fmt.Printf("  %-5s  %-6s  %-7s  %-8s  %-9s  %s\n", "#", "Balls", "Bricks", "Time", "Engine", "Date")
		fmt.Printf("  %-5s  %-6s  %-7s  %-8s  %-9s  %s\n", "-", "-----", "------", "----", "------", "----")
		for i, r := range results {
			fmt.Printf("  %-5d  %-6d  %-7d  %-8s  %-9s  %s\n",
				i+1, r.BallsUsed, r.Bricks, r.Duration.Round(time.Second), r.Engine,
				r.CreatedAt.Format("2006-01-02 15:04"))
		}

		s, err := store.Load()
		if err != nil {
			return err
		}
		best, err := store.BestResult(s.Bricks)
		if err != nil {
			return err
		}
		fmt.Println()
		if best != nil {
			fmt.Printf("Best with %d bricks: %d balls in %s\n", best.Bricks, best.BallsUsed, best.Duration.Round(time.Second))
		} else {
			fmt.Printf("No wins yet with %d bricks.\n", s.Bricks)
		}
		return nil
	})
}
