package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/jthomas/tasktrack/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration settings",
	Long:  `View and modify configuration settings for Tasktrack.`,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Long: `Set a configuration value in the .env file (local or global).

Use --global flag to set in the global configuration (~/.tasktrack/config).
Otherwise, sets in the local .env file.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		key := args[0]
		value := args[1]
		global, _ := cmd.Flags().GetBool("global")

		if global {
			if err := config.SetGlobalConfig(key, value); err != nil {
				exitWithError(err)
			}
			fmt.Printf("✓ Set %s (global)\n", key)
			return
		}

		dir, _ := cmd.Flags().GetString("dir")
		absDir, err := filepath.Abs(dir)
		if err != nil {
			exitWithError(fmt.Errorf("invalid directory: %w", err))
		}

		if err := config.Set(absDir, key, value); err != nil {
			exitWithError(err)
		}
		fmt.Printf("✓ Set %s (local)\n", key)
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Get a configuration value",
	Long:  `Retrieve a configuration value from the .env file.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dir, _ := cmd.Flags().GetString("dir")
		absDir, err := filepath.Abs(dir)
		if err != nil {
			exitWithError(fmt.Errorf("invalid directory: %w", err))
		}

		key := args[0]
		value, err := config.Get(absDir, key)
		if err != nil {
			exitWithError(err)
		}

		fmt.Printf("%s=%s\n", key, value)
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all configuration values",
	Long:  `Display the effective configuration after all fallbacks.`,
	Run: func(cmd *cobra.Command, args []string) {
		dir, _ := cmd.Flags().GetString("dir")
		absDir, err := filepath.Abs(dir)
		if err != nil {
			exitWithError(fmt.Errorf("invalid directory: %w", err))
		}

		cfg, err := config.Load(absDir)
		if err != nil {
			exitWithError(err)
		}

		fmt.Println("Configuration:")
		fmt.Printf("  TASKTRACK_BACKEND: %s\n", cfg.Backend)
		fmt.Printf("  TASKTRACK_PROMPT: %q\n", cfg.Prompt)
		fmt.Printf("  TASKTRACK_LOG_LEVEL: %s\n", cfg.LogLevel)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configListCmd)

	// Add --global flag to config set
	configSetCmd.Flags().Bool("global", false, "Set in global config instead of local")
}
