// Package cli wires configuration, logging and the sidebar for the
// command line front end.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/bnema/sidebar/internal/cli/styles"
	"github.com/bnema/sidebar/internal/domain/build"
	"github.com/bnema/sidebar/internal/infrastructure/config"
	"github.com/bnema/sidebar/internal/logging"
	"github.com/bnema/sidebar/internal/ui/host"
)

// App holds CLI dependencies.
type App struct {
	Config    *config.Config
	Manager   *config.Manager
	Theme     *styles.Theme
	BuildInfo build.Info

	// Context with logger
	ctx     context.Context
	closers []io.Closer
}

// Options selects where the app reads config and writes logs.
type Options struct {
	ConfigFile string
	// LogDir enables a rotated log file. Without it logs go to LogOutput.
	LogDir    string
	LogOutput io.Writer
}

// NewApp loads the configuration and builds the logger.
func NewApp(opts Options) (*App, error) {
	var mgrOpts []config.Option
	if opts.ConfigFile != "" {
		mgrOpts = append(mgrOpts, config.WithConfigFile(opts.ConfigFile))
	}
	mgr, err := config.NewManager(mgrOpts...)
	if err != nil {
		return nil, fmt.Errorf("create config manager: %w", err)
	}
	if err := mgr.Load(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg := mgr.Get()

	app := &App{
		Config:  cfg,
		Manager: mgr,
		Theme:   styles.NewTheme(),
	}

	out := opts.LogOutput
	if out == nil {
		out = os.Stderr
	}
	if opts.LogDir != "" {
		if err := os.MkdirAll(opts.LogDir, 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
		file := logging.NewFileWriter(opts.LogDir, logging.FileConfig{
			MaxSizeMB:  cfg.Logging.MaxSizeMB,
			MaxBackups: cfg.Logging.MaxBackups,
			MaxAgeDays: cfg.Logging.MaxAgeDays,
			Compress:   cfg.Logging.Compress,
		})
		app.closers = append(app.closers, file)
		out = file
	}

	logCfg := logging.DefaultConfig()
	logCfg.Level = logging.ParseLevel(cfg.Logging.Level)
	logCfg.Format = cfg.Logging.Format
	logCfg.TimeFormat = "15:04:05"
	logCfg.Output = out
	logger := logging.New(logCfg)
	app.ctx = logging.WithContext(context.Background(), logger)

	logger.Debug().Str("config", mgr.GetConfigFile()).Msg("config loaded")
	return app, nil
}

// Ctx returns the application context with logger.
func (a *App) Ctx() context.Context {
	return a.ctx
}

// SidebarOptions derives host options from the loaded configuration.
func (a *App) SidebarOptions() host.Options {
	opts := host.DefaultOptions()
	opts.Geometry = a.Config.DnD.Geometry()
	opts.AutoExpandDelay = a.Config.DnD.AutoExpandDelay
	opts.FallbackRadius = a.Config.DnD.FallbackRadius
	opts.HorizontalPins = a.Config.TUI.HorizontalPins
	return opts
}

// Close releases all resources.
func (a *App) Close() error {
	var firstErr error
	for _, c := range a.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
