package config

import (
	"time"

	"github.com/bnema/sidebar/internal/domain/dnd"
)

// DefaultAutoExpandDelay is the hover time before a container opens.
const DefaultAutoExpandDelay = time.Second

// DefaultConfig returns the configuration used when no file sets a key.
func DefaultConfig() *Config {
	return &Config{
		DnD: DnDConfig{
			AutoExpandDelay:    DefaultAutoExpandDelay,
			ContainerEdgeRatio: dnd.DefaultGeometry.EdgeRatio,
			LeafSplitRatio:     dnd.DefaultGeometry.LeafSplit,
			FallbackRadius:     2,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "console",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 7,
			Compress:   true,
		},
		TUI: TUIConfig{
			Mouse:          true,
			HorizontalPins: true,
		},
	}
}
