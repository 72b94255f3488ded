package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(_ *cobra.Command, _ []string) {
		goVersion := buildInfo.GoVersion
		if goVersion == "" {
			goVersion = runtime.Version()
		}
		fmt.Printf("sidebar %s\n", buildInfo.Version)
		fmt.Printf("commit: %s\n", buildInfo.Commit)
		fmt.Printf("built: %s\n", buildInfo.BuildDate)
		fmt.Printf("go: %s\n", goVersion)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
