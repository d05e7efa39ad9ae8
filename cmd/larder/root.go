// Root command for the larder CLI.
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/fathomdata/larder/internal/paths"
	"github.com/fathomdata/larder/pkg/larder"
	"github.com/fathomdata/larder/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// Global flag values.
var (
	flagProjectRoot string
	flagConfigDir   string
	flagJSON        bool
)

// projectConfig is resolved by PersistentPreRunE so all subcommands share
// one loaded configuration.
var projectConfig types.Config

// resolvedConfigDir is kept for commands that write into the config dir.
var resolvedConfigDir string

var rootCmd = &cobra.Command{
	Use:          "larder",
	Short:        "Larder is a local-first data catalog and cache",
	Version:      larder.Version,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		root, err := paths.ResolveProjectRoot(flagProjectRoot)
		if err != nil {
			return err
		}
		configDir, err := paths.ResolveConfigDir(flagConfigDir, root)
		if err != nil {
			return err
		}
		resolvedConfigDir = configDir

		cfg, err := larder.LoadConfig(configDir, root)
		if err != nil {
			return err
		}
		projectConfig = cfg
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagProjectRoot, "root", "", "project root (default: current directory)")
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: {root}/.larder)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(dataCmd)
	rootCmd.AddCommand(loadCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(rebaselineCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(serveCmd)
}

// newLogger builds the CLI logger; warnings from the core land on stderr.
func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}

// openProject opens the project over the resolved configuration.
func openProject() (*larder.Project, error) {
	return larder.Open(projectConfig, newLogger())
}
