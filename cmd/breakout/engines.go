package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-breakout/internal/physics"
)

var enginesCmd = &cobra.Command{
	Use:   "engines",
	Short: "List available physics engines",
	Long:  `Shows the physics engines a game can run on. Pick one with 'play --engine'.`,
	Args:  cobra.NoArgs,
	Run:   runEngines,
}

func runEngines(_ *cobra.Command, _ []string) {
	engines := physics.Engines()

	fmt.Println("Available engines:")
	fmt.Println()

	maxLen := len("Name")
	for _, e := range engines {
		maxLen = max(maxLen, len(e.Name)+1)
	}

	fmt.Printf("  %-*s  %s\n", maxLen, "Name", "Description")
	fmt.Printf("  %-*s  %s\n", maxLen, "----", "-----------")
	for _, e := range engines {
		name := e.Name
		if name == physics.DefaultEngine {
			name += "*"
		}
		fmt.Printf("  %-*s  %s\n", maxLen, name, e.Description)
	}

	fmt.Println()
	fmt.Println("* default. Run 'breakout play --engine <name>' to choose.")
}
