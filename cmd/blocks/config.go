package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-blocks/internal/config"
)

var (
	flagConfigPath  string
	flagConfigForce bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or write the game configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as YAML",
	Long: `Print the configuration a game would start with, after the search
order and the difficulty preset are applied.

Examples:
  blocks config show
  blocks config show --difficulty hard
  blocks config show --config ./my-blocks.yaml`,
	Args: cobra.NoArgs,
	Run:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration to a file",
	Long: `Write the built-in configuration so it can be edited. Without --path
the file goes to ~/.blocks/configs/blocks.yaml, which is picked up
automatically.`,
	Args: cobra.NoArgs,
	Run:  runConfigInit,
}

func init() {
	configShowCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	configShowCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")

	configInitCmd.Flags().StringVar(&flagConfigPath, "path", "", "Destination file (default: ~/.blocks/configs/blocks.yaml)")
	configInitCmd.Flags().BoolVar(&flagConfigForce, "force", false, "Overwrite an existing file")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}

func runConfigShow(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	os.Stdout.Write(data)
}

func runConfigInit(_ *cobra.Command, _ []string) {
	path := flagConfigPath
	if path == "" {
		path = config.UserPath()
	}
	if path == "" {
		fmt.Fprintln(os.Stderr, "Error: no home directory; pass --path")
		os.Exit(1)
	}
	if _, err := os.Stat(path); err == nil && !flagConfigForce {
		fmt.Fprintf(os.Stderr, "Error: %s exists (use --force to overwrite)\n", path)
		os.Exit(1)
	}

	if err := config.Save(config.DefaultBlocksConfig(), path); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", path)
}
