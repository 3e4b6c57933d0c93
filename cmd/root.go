// Package cmd contains all CLI command definitions.
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jthomas/tasktrack/internal/config"
	"github.com/jthomas/tasktrack/internal/shell"
	"github.com/jthomas/tasktrack/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tasktrack",
	Short: "Tasktrack - Personal task tracker with an interactive shell",
	Long: `Tasktrack is a single-user task tracker driven by a line-oriented
command shell. Tasks live in memory for the lifetime of the process;
nothing is written to disk.

Run without arguments to start the interactive shell, then type 'help'
for the available commands.`,
	SilenceUsage: true,
	RunE:         runShell,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringP("dir", "d", ".", "Directory holding the local .env configuration")
	rootCmd.Flags().String("backend", "", "Task store backend: memory or sqlite (overrides config)")
	rootCmd.Flags().String("log-level", "", "Log level: debug, info, warn or error (overrides config)")
}

func runShell(cmd *cobra.Command, args []string) error {
	dir, _ := cmd.Flags().GetString("dir")
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("invalid directory: %w", err)
	}

	cfg, err := config.Load(absDir)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Flags win over configuration files
	if backend, _ := cmd.Flags().GetString("backend"); backend != "" {
		cfg.Backend = backend
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.LogLevel = level
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))

	s, err := newStore(cfg.Backend)
	if err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	defer s.Close()

	logger.Info("starting shell", "backend", cfg.Backend)

	sh := shell.New(s, os.Stdin, os.Stdout, shell.Options{
		Prompt: cfg.Prompt,
		Logger: logger,
	})
	return sh.Run()
}

// newStore builds the configured store backend. Both backends are
// ephemeral; sqlite runs entirely in memory.
func newStore(backend string) (store.Store, error) {
	switch backend {
	case config.BackendSQLite:
		return store.NewSQLiteStore()
	default:
		return store.NewMemoryStore(), nil
	}
}

// exitWithError prints an error message and exits with code 1.
func exitWithError(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
