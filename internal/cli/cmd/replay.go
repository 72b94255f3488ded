package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/sidebar/internal/cli/styles"
	"github.com/bnema/sidebar/internal/infrastructure/scenario"
	"github.com/bnema/sidebar/internal/ui/host"
)

// ErrReplayFailed is returned when a scenario's expectations do not hold.
var ErrReplayFailed = errors.New("replay failed")

var replayCmd = &cobra.Command{
	Use:   "replay <scenario.yaml>...",
	Short: "Run scripted gestures and check the result",
	Long: `Replay one or more gesture scripts against a fresh sidebar.

Each script starts from its own state (or the demo workspace), runs its
steps with hover timers under manual control, then compares the
collections listed under expect.

Examples:
  sidebar replay testdata/reorder.yaml
  sidebar replay scenarios/*.yaml`,
	Args: cobra.MinimumNArgs(1),
	RunE: runReplay,
}

func init() {
	rootCmd.AddCommand(replayCmd)
}

func runReplay(_ *cobra.Command, args []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}
	ctx := app.Ctx()
	renderer := styles.NewReplayRenderer(app.Theme)

	failed := 0
	for _, path := range args {
		report, err := replayFile(ctx, app.SidebarOptions(), path)
		if err != nil {
			fmt.Println(renderer.RenderError(fmt.Errorf("%s: %w", path, err)))
			failed++
			continue
		}
		fmt.Println(renderer.RenderReport(report))
		if !report.Passed() {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d scenario(s)", ErrReplayFailed, failed, len(args))
	}
	return nil
}

func replayFile(ctx context.Context, opts host.Options, path string) (*host.Report, error) {
	script, err := scenario.Load(path)
	if err != nil {
		return nil, err
	}
	r, err := host.NewReplayer(ctx, script, opts)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return r.Run(ctx)
}
