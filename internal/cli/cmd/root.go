// Package cmd provides Cobra CLI commands for sidebar.
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/sidebar/internal/cli"
	"github.com/bnema/sidebar/internal/domain/build"
)

var (
	app        *cli.App
	buildInfo  build.Info
	configFile string
	logDir     string
	rootCmd    = &cobra.Command{
		Use:   "sidebar",
		Short: "Drag and drop between browser sidebar zones",
		Long: `Sidebar - drag-and-drop coordination for a browser sidebar.

The sidebar holds four zones: pinned sites, spaces, tabs and bookmarks.
Items can be dragged within a zone and between zones, multi-selections
move as one block, and links dragged in from outside land in the tabs.

Use 'sidebar run' for the interactive terminal sidebar, or
'sidebar replay' to run scripted gestures against it.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip initialization for commands that don't need app context
			switch cmd.Name() {
			case "help", "completion", "version":
				return nil
			}

			opts := cli.Options{ConfigFile: configFile, LogDir: logDir}
			if cmd.Name() == "run" && logDir == "" {
				// The terminal UI owns stderr.
				opts.LogOutput = io.Discard
			}
			var err error
			app, err = cli.NewApp(opts)
			if err != nil {
				return fmt.Errorf("initialize app: %w", err)
			}
			app.BuildInfo = buildInfo
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if app != nil {
				_ = app.Close()
			}
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default is $XDG_CONFIG_HOME/sidebar/config.toml)")
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", "", "write rotated logs to this directory")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// GetApp returns the initialized app (for use by subcommands).
func GetApp() *cli.App {
	return app
}

// SetBuildInfo sets the build information (called from main.go before Execute).
func SetBuildInfo(info build.Info) {
	buildInfo = info
}
