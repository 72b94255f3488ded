package styles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/sidebar/internal/ui/host"
)

// ReplayRenderer renders gesture replay reports.
type ReplayRenderer struct {
	theme *Theme
}

// NewReplayRenderer creates a replay renderer with the given theme.
func NewReplayRenderer(theme *Theme) *ReplayRenderer {
	return &ReplayRenderer{theme: theme}
}

// RenderReport renders every step followed by the verdict.
func (r *ReplayRenderer) RenderReport(report *host.Report) string {
	accent := lipgloss.NewStyle().Foreground(r.theme.Accent)
	numStyle := r.theme.Subtle
	actionStyle := r.theme.Highlight

	var sb strings.Builder
	name := report.Name
	if name == "" {
		name = "scenario"
	}
	sb.WriteString(fmt.Sprintf("\n  %s %s\n\n", accent.Render(IconPlay), r.theme.Title.Render(name)))

	for _, st := range report.Steps {
		detail := r.theme.Normal.Render(st.Detail)
		if st.Drop != nil && st.Drop.Err != nil {
			detail = r.theme.ErrorStyle.Render(st.Detail)
		}
		sb.WriteString(fmt.Sprintf("  %s %s %s\n",
			numStyle.Render(fmt.Sprintf("%3d", st.Index)),
			actionStyle.Render(fmt.Sprintf("%-8s", st.Action)),
			detail,
		))
	}

	sb.WriteString("\n")
	if report.Passed() {
		sb.WriteString(fmt.Sprintf("  %s %s\n", r.theme.SuccessStyle.Render(IconCheck), r.theme.SuccessStyle.Render("all expectations met")))
		return sb.String()
	}
	for _, m := range report.Mismatches {
		sb.WriteString(fmt.Sprintf("  %s %s\n      want %s\n       got %s\n",
			r.theme.ErrorStyle.Render(IconX),
			r.theme.Highlight.Render(m.Field),
			r.theme.Normal.Render(fmt.Sprint(m.Want)),
			r.theme.ErrorStyle.Render(fmt.Sprint(m.Got)),
		))
	}
	return sb.String()
}

// RenderError renders a replay that could not run.
func (r *ReplayRenderer) RenderError(err error) string {
	return fmt.Sprintf("\n  %s %v\n", r.theme.ErrorStyle.Render(IconX), err)
}
