// Package main provides the entry point for the pyforge CLI tool.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/pyforge/pyforge/cmd/pyforge/commands"
	"github.com/pyforge/pyforge/pkg/version"
)

var (
	verbose    bool
	configPath string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pyforge",
		Short: "Pyforge - Python to Arduino sketch translator",
		Long: `Pyforge translates a Python subset into Arduino C++ sketches.

Commands:
  transpile  Translate a Python sketch into a .ino file
  header     Generate Python stubs from a C++ library header
  upload     Translate, compile and flash a sketch to a board
  boards     List connected boards
  setup      Install the default platform core
  create     Scaffold a new pyforge project`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			setupLogging(verbose)
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path")

	// Add commands.
	rootCmd.AddCommand(commands.NewTranspileCommand(&configPath))
	rootCmd.AddCommand(commands.NewHeaderCommand())
	rootCmd.AddCommand(commands.NewUploadCommand(&configPath))
	rootCmd.AddCommand(commands.NewBoardsCommand(&configPath))
	rootCmd.AddCommand(commands.NewSetupCommand(&configPath))
	rootCmd.AddCommand(commands.NewCreateCommand(&configPath))
	rootCmd.AddCommand(versionCmd())

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func setupLogging(verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(os.Stdout, "pyforge %s (commit: %s, built: %s)\n", version.Version, version.Commit, version.Date)
		},
	}
}
