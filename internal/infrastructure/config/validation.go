package config

import (
	"fmt"
	"strings"
)

// validateConfig performs validation of configuration values.
func validateConfig(config *Config) error {
	var validationErrors []string

	validationErrors = append(validationErrors, validateDnD(config)...)
	validationErrors = append(validationErrors, validateLogging(config)...)

	if len(validationErrors) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(validationErrors, "\n  - "))
	}
	return nil
}

func validateDnD(config *Config) []string {
	var validationErrors []string
	d := config.DnD
	if d.AutoExpandDelay <= 0 {
		validationErrors = append(validationErrors, "dnd.auto_expand_delay must be positive")
	}
	if d.ContainerEdgeRatio <= 0 || d.ContainerEdgeRatio >= 0.5 {
		validationErrors = append(validationErrors, "dnd.container_edge_ratio must be between 0 and 0.5 (exclusive)")
	}
	if d.LeafSplitRatio <= 0 || d.LeafSplitRatio >= 1 {
		validationErrors = append(validationErrors, "dnd.leaf_split_ratio must be between 0 and 1 (exclusive)")
	}
	if d.FallbackRadius < 0 {
		validationErrors = append(validationErrors, "dnd.fallback_radius must be non-negative")
	}
	return validationErrors
}

func validateLogging(config *Config) []string {
	var validationErrors []string
	l := config.Logging
	switch l.Level {
	case "trace", "debug", "info", "warn", "error", "disabled", "off":
	default:
		validationErrors = append(validationErrors, fmt.Sprintf("logging.level %q is not one of trace, debug, info, warn, error, disabled", l.Level))
	}
	if l.MaxSizeMB <= 0 {
		validationErrors = append(validationErrors, "logging.max_size_mb must be positive")
	}
	if l.MaxBackups < 0 {
		validationErrors = append(validationErrors, "logging.max_backups must be non-negative")
	}
	if l.MaxAgeDays < 0 {
		validationErrors = append(validationErrors, "logging.max_age_days must be non-negative")
	}
	return validationErrors
}
