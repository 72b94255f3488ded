package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/bnema/sidebar/internal/cli/model"
	"github.com/bnema/sidebar/internal/infrastructure/config"
	"github.com/bnema/sidebar/internal/infrastructure/memory"
	"github.com/bnema/sidebar/internal/infrastructure/scenario"
	"github.com/bnema/sidebar/internal/logging"
	"github.com/bnema/sidebar/internal/ui/host"
)

var runScenario string

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the interactive terminal sidebar",
	Long: `Open the sidebar in the terminal and drag items with the mouse.

Press and move to drag, release to drop. Ctrl+click adds an item to the
zone's selection so it moves with the others. Clicking a space switches
to it; clicking a group or folder toggles it.

The sidebar starts from a demo workspace, or from the state block of a
scenario file given with --scenario. Config changes are picked up live.

Examples:
  sidebar run
  sidebar run --scenario drag.yaml --log-dir /tmp/sidebar`,
	RunE: runSidebar,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVar(&runScenario, "scenario", "", "start from the state of a scenario file")
}

func runSidebar(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}
	ctx := app.Ctx()
	log := logging.FromContext(ctx)

	ws := memory.DemoWorkspace()
	if runScenario != "" {
		script, err := scenario.Load(runScenario)
		if err != nil {
			return err
		}
		if ws, err = script.Workspace(); err != nil {
			return err
		}
	}

	sb, err := host.NewSidebar(ctx, ws, app.SidebarOptions())
	if err != nil {
		return err
	}
	defer sb.Close()

	updates := make(chan config.Config, 1)
	app.Manager.OnConfigChange(func(cfg *config.Config) {
		// Keep only the newest config if the UI has not caught up.
		select {
		case <-updates:
		default:
		}
		updates <- *cfg
	})
	if err := app.Manager.Watch(); err != nil {
		log.Warn().Err(err).Msg("config watch unavailable")
	}

	m := model.NewSidebarModel(ctx, app.Theme, sb, model.SidebarModelConfig{
		Updates: updates,
		Reload:  app.Manager.Reload,
	})

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if app.Config.TUI.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	if _, err := tea.NewProgram(m, opts...).Run(); err != nil {
		return fmt.Errorf("run sidebar: %w", err)
	}
	return nil
}
