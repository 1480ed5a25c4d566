package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-blocks/internal/games/blocks/drills"
)

var drillsCmd = &cobra.Command{
	Use:   "drills",
	Short: "List drills",
	Long: `List the practice drills: a preset board and a fixed piece queue.

Examples:
  blocks drills
  blocks drills --drill-dir ./my-drills
  blocks play drill --drill 02-tspin-double`,
	Run: runDrills,
}

func init() {
	drillsCmd.Flags().StringVar(&flagDrillDir, "drill-dir", "", "Directory of drill YAML files (default: bundled drills)")
}

func runDrills(_ *cobra.Command, _ []string) {
	loader := drills.Builtin()
	if flagDrillDir != "" {
		loader = drills.NewLoader(flagDrillDir)
	}

	all, err := loader.LoadAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading drills: %v\n", err)
		os.Exit(1)
	}
	if len(all) == 0 {
		fmt.Println("No drills found.")
		return
	}

	maxIDLen := 2
	for _, d := range all {
		maxIDLen = max(maxIDLen, len(d.ID))
	}

	fmt.Printf("  %-*s  %-7s  %-6s  %-5s  %s\n", maxIDLen, "ID", "Board", "Pieces", "Lines", "Name")
	fmt.Printf("  %-*s  %-7s  %-6s  %-5s  %s\n", maxIDLen, "--", "-----", "------", "-----", "----")
	for _, d := range all {
		fmt.Printf("  %-*s  %-7s  %-6d  %-5d  %s\n",
			maxIDLen, d.ID, fmt.Sprintf("%dx%d", d.Width, d.Height), len(d.Queue), d.TargetLines, d.Name)
		if d.Goal != "" {
			fmt.Printf("  %-*s  %s\n", maxIDLen, "", d.Goal)
		}
	}

	fmt.Println()
	fmt.Println("Run 'blocks play drill --drill <id>' to practice one.")
}
