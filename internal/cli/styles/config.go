package styles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/sidebar/internal/infrastructure/config"
)

// ConfigRenderer renders config status messages with styled output.
type ConfigRenderer struct {
	theme *Theme
}

// NewConfigRenderer creates a new config renderer with the given theme.
func NewConfigRenderer(theme *Theme) *ConfigRenderer {
	return &ConfigRenderer{theme: theme}
}

// RenderConfig renders the effective configuration below its file path.
func (r *ConfigRenderer) RenderConfig(path string, cfg config.Config) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Accent)
	keyStyle := r.theme.Highlight
	valueStyle := lipgloss.NewStyle().Foreground(r.theme.Text)

	rows := [][2]string{
		{"dnd.auto_expand_delay", cfg.DnD.AutoExpandDelay.String()},
		{"dnd.container_edge_ratio", fmt.Sprintf("%g", cfg.DnD.ContainerEdgeRatio)},
		{"dnd.leaf_split_ratio", fmt.Sprintf("%g", cfg.DnD.LeafSplitRatio)},
		{"dnd.fallback_radius", fmt.Sprintf("%g", cfg.DnD.FallbackRadius)},
		{"logging.level", cfg.Logging.Level},
		{"logging.format", cfg.Logging.Format},
		{"logging.max_size_mb", fmt.Sprintf("%d", cfg.Logging.MaxSizeMB)},
		{"logging.max_backups", fmt.Sprintf("%d", cfg.Logging.MaxBackups)},
		{"logging.max_age_days", fmt.Sprintf("%d", cfg.Logging.MaxAgeDays)},
		{"logging.compress", fmt.Sprintf("%t", cfg.Logging.Compress)},
		{"tui.mouse", fmt.Sprintf("%t", cfg.TUI.Mouse)},
		{"tui.horizontal_pins", fmt.Sprintf("%t", cfg.TUI.HorizontalPins)},
	}
	width := 0
	for _, row := range rows {
		width = max(width, len(row[0]))
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("\n  %s Config %s\n\n", iconStyle.Render(IconConfig), r.theme.Subtle.Render(path)))
	for _, row := range rows {
		sb.WriteString(fmt.Sprintf("    %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-*s", width, row[0])),
			valueStyle.Render(row[1]),
		))
	}
	return sb.String()
}

// RenderSchemaWritten renders the message after writing the JSON schema.
func (r *ConfigRenderer) RenderSchemaWritten(path string) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Success)
	return fmt.Sprintf("\n  %s Schema written to %s\n", iconStyle.Render(IconCheck), r.theme.Subtle.Render(path))
}

// RenderError renders an error message.
func (r *ConfigRenderer) RenderError(err error) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Error)

	return fmt.Sprintf(
		"\n  %s Config error: %v\n",
		iconStyle.Render(IconX),
		err,
	)
}
