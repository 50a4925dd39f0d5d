package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/slashgen-ai/slashgen/internal/config"
	"github.com/slashgen-ai/slashgen/pkg/types"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage slashgen configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter config file",
	Long: `Writes a starter slashgen.json to the global config directory
(SLASHGEN_CONFIG_DIR or ~/.slashgen). Fails if the file already exists.`,
	RunE: runConfigInit,
}

func init() {
	configCmd.AddCommand(configInitCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := filepath.Join(config.ConfigDir(), "slashgen.json")
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config already exists at %s", path)
	}

	starter := &types.Config{
		Model: "anthropic/claude-sonnet-4-20250514",
		Provider: map[string]types.ProviderConfig{
			"anthropic": {APIKey: "{env:ANTHROPIC_API_KEY}"},
		},
	}
	if err := config.Save(starter, path); err != nil {
		return err
	}

	fmt.Printf("Wrote %s\n", path)
	return nil
}
