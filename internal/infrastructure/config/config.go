// Package config loads the sidebar configuration with viper and keeps it
// current while the process runs.
package config

import (
	"time"

	"github.com/bnema/sidebar/internal/domain/dnd"
)

const (
	dirPerm  = 0755
	filePerm = 0644
)

// Config is the full sidebar configuration.
type Config struct {
	DnD     DnDConfig     `mapstructure:"dnd" json:"dnd" toml:"dnd" jsonschema:"description=Drag and drop behavior"`
	Logging LoggingConfig `mapstructure:"logging" json:"logging" toml:"logging" jsonschema:"description=Log output"`
	TUI     TUIConfig     `mapstructure:"tui" json:"tui" toml:"tui" jsonschema:"description=Terminal host"`
}

// DnDConfig tunes drop geometry and hover-to-expand.
type DnDConfig struct {
	// AutoExpandDelay is how long a collapsed container must be hovered
	// before it opens.
	AutoExpandDelay time.Duration `mapstructure:"auto_expand_delay" json:"auto_expand_delay" toml:"auto_expand_delay" jsonschema:"description=Hover time before a collapsed folder or group opens,type=string,default=1s"`
	// ContainerEdgeRatio is the share of a container's height used for
	// the before and after bands.
	ContainerEdgeRatio float64 `mapstructure:"container_edge_ratio" json:"container_edge_ratio" toml:"container_edge_ratio" jsonschema:"exclusiveMinimum=0,exclusiveMaximum=0.5,default=0.25"`
	LeafSplitRatio     float64 `mapstructure:"leaf_split_ratio" json:"leaf_split_ratio" toml:"leaf_split_ratio" jsonschema:"exclusiveMinimum=0,exclusiveMaximum=1,default=0.5"`
	// FallbackRadius bounds the closest-center fallback of collision
	// resolution. Zero means unbounded.
	FallbackRadius float64 `mapstructure:"fallback_radius" json:"fallback_radius" toml:"fallback_radius" jsonschema:"minimum=0,default=2"`
}

// Geometry returns the drop geometry for these ratios.
func (c DnDConfig) Geometry() dnd.Geometry {
	return dnd.Geometry{EdgeRatio: c.ContainerEdgeRatio, LeafSplit: c.LeafSplitRatio}
}

// LoggingConfig selects the zerolog level and output format. The file
// settings apply only when a log directory is given.
type LoggingConfig struct {
	Level  string `mapstructure:"level" json:"level" toml:"level" jsonschema:"enum=trace,enum=debug,enum=info,enum=warn,enum=error,enum=disabled,default=info"`
	Format string `mapstructure:"format" json:"format" toml:"format" jsonschema:"enum=console,enum=json,default=console"`

	MaxSizeMB  int  `mapstructure:"max_size_mb" json:"max_size_mb" toml:"max_size_mb" jsonschema:"description=Size at which sidebar.log is rotated,minimum=1,default=10"`
	MaxBackups int  `mapstructure:"max_backups" json:"max_backups" toml:"max_backups" jsonschema:"description=Rotated files to keep (0 keeps all),minimum=0,default=3"`
	MaxAgeDays int  `mapstructure:"max_age_days" json:"max_age_days" toml:"max_age_days" jsonschema:"description=Days to keep rotated files (0 keeps them forever),minimum=0,default=7"`
	Compress   bool `mapstructure:"compress" json:"compress" toml:"compress" jsonschema:"description=Gzip rotated files,default=true"`
}

// TUIConfig configures the terminal host.
type TUIConfig struct {
	Mouse          bool `mapstructure:"mouse" json:"mouse" toml:"mouse" jsonschema:"description=Enable mouse dragging,default=true"`
	HorizontalPins bool `mapstructure:"horizontal_pins" json:"horizontal_pins" toml:"horizontal_pins" jsonschema:"description=Lay the pinned bar out horizontally,default=true"`
}
