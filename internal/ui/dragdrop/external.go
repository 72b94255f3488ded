package dragdrop

import (
	"context"
	"net/url"
	"slices"
	"strings"
	"sync"

	"github.com/bnema/sidebar/internal/application/port"
	"github.com/bnema/sidebar/internal/domain/dnd"
	"github.com/bnema/sidebar/internal/logging"
)

// MIME types seen on native drags.
const (
	MIMEURIList   = "text/uri-list"
	MIMEPlainText = "text/plain"
	MIMEMozURL    = "text/x-moz-url"
	// MIMEInternal marks drags started by the sidebar itself.
	MIMEInternal = "application/x-sidebar-item"
)

// NativeDrag is a drag delivered by the platform. Data is only
// populated on drop.
type NativeDrag struct {
	Types []string
	Data  map[string]string
}

// ExternalLink is a link extracted from a native drag.
type ExternalLink struct {
	URL   string
	Title string
}

// IsExternalLinkDrag reports whether a native drag carries a link or
// text and was not started by the sidebar.
func IsExternalLinkDrag(types []string) bool {
	if slices.Contains(types, MIMEInternal) {
		return false
	}
	return slices.Contains(types, MIMEURIList) ||
		slices.Contains(types, MIMEMozURL) ||
		slices.Contains(types, MIMEPlainText)
}

// ExtractLink pulls the first well-formed link out of a native drop.
// The uri-list wins; plain text is used only when it is an absolute
// http or https URL. A distinct label becomes the title, otherwise the
// URL is its own title.
func ExtractLink(data map[string]string) (ExternalLink, bool) {
	link, label := "", ""

	if raw, ok := data[MIMEMozURL]; ok {
		lines := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")
		if u := strings.TrimSpace(lines[0]); isWellFormed(u) {
			link = u
			if len(lines) > 1 {
				label = strings.TrimSpace(lines[1])
			}
		}
	}
	if link == "" {
		link = firstURIListEntry(data[MIMEURIList])
	}

	text := strings.TrimSpace(data[MIMEPlainText])
	if link == "" {
		if !isHTTPURL(text) {
			return ExternalLink{}, false
		}
		link = text
	} else if label == "" && text != "" && text != link && !isWellFormed(text) {
		label = text
	}

	if label == "" || label == link {
		label = link
	}
	return ExternalLink{URL: link, Title: label}, true
}

func firstURIListEntry(raw string) string {
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if isWellFormed(line) {
			return line
		}
	}
	return ""
}

func isWellFormed(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.Scheme != "" && (u.Host != "" || u.Opaque != "")
}

func isHTTPURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}

// ExternalHover is the adapter's current hover verdict.
type ExternalHover struct {
	Kind     port.ProbeKind
	TargetID string
	Position dnd.Position
}

// ExternalDropResult reports the outcome of a native drop.
type ExternalDropResult struct {
	// PreventDefault is always true: the platform must never navigate to
	// a dropped link.
	PreventDefault bool
	Handled        bool
	Link           ExternalLink
	Target         ExternalHover
	Err            error
}

// ExternalDropAdapter turns native link drags over the tab list into URL
// drops. It bypasses the Coordinator but reuses drop positions and the
// zone's registered DropHandler.
type ExternalDropAdapter struct {
	zone     dnd.Zone
	registry *Registry
	probe    port.DropProbe
	expand   *AutoExpandTimer
	geometry dnd.Geometry

	mu    sync.Mutex
	hover *ExternalHover
}

// ExternalOption configures an ExternalDropAdapter.
type ExternalOption func(*ExternalDropAdapter)

// WithExternalTimer sets the adapter's own auto-expand timer.
func WithExternalTimer(t *AutoExpandTimer) ExternalOption {
	return func(a *ExternalDropAdapter) { a.expand = t }
}

// WithExternalGeometry sets the ratios used for positions.
func WithExternalGeometry(g dnd.Geometry) ExternalOption {
	return func(a *ExternalDropAdapter) { a.geometry = g }
}

// NewExternalDropAdapter creates an adapter feeding drops to zone's handler.
func NewExternalDropAdapter(zone dnd.Zone, registry *Registry, probe port.DropProbe, opts ...ExternalOption) *ExternalDropAdapter {
	a := &ExternalDropAdapter{
		zone:     zone,
		registry: registry,
		probe:    probe,
		geometry: dnd.DefaultGeometry,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.expand == nil {
		a.expand = NewAutoExpandTimer(DefaultAutoExpandDelay)
	}
	return a
}

// Hover returns the current hover verdict, if any.
func (a *ExternalDropAdapter) Hover() (ExternalHover, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.hover == nil {
		return ExternalHover{}, false
	}
	return *a.hover, true
}

// DragOver handles a native dragover. It returns true when the drag is
// an external link over the tab list the caller should allow dropping.
func (a *ExternalDropAdapter) DragOver(ctx context.Context, types []string, x, y float64) bool {
	if !IsExternalLinkDrag(types) {
		return false
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.probe.Bounds().Contains(x, y) {
		a.expand.Disarm()
		a.hover = nil
		return false
	}

	hover, hit := a.resolve(x, y)
	a.hover = &hover
	if hit.Kind == port.ProbeGroupHeader && hover.Position == dnd.PositionInto && !hit.Expanded && hit.Expand != nil {
		a.expand.Arm("external:"+hit.ID, hit.Expand)
	} else {
		a.expand.Disarm()
	}
	logging.FromContext(ctx).Trace().
		Str("target", hover.TargetID).
		Str("position", hover.Position.String()).
		Msg("external drag over")
	return true
}

// DragLeave clears hover state only once the pointer has left the whole
// monitored container, so moving between children does not flicker.
func (a *ExternalDropAdapter) DragLeave(_ context.Context, x, y float64) {
	if a.probe.Bounds().Contains(x, y) {
		return
	}
	a.Close()
}

// Close drops hover state and disarms the timer; call on unmount.
func (a *ExternalDropAdapter) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.expand.Disarm()
	a.hover = nil
}

// Drop handles a native drop. The result always asks the caller to
// suppress the platform's default navigation. Points outside the tab
// list are never handled.
func (a *ExternalDropAdapter) Drop(ctx context.Context, drag NativeDrag, x, y float64) ExternalDropResult {
	log := logging.FromContext(ctx)
	result := ExternalDropResult{PreventDefault: true}

	a.mu.Lock()
	a.expand.Disarm()
	a.hover = nil
	if !a.probe.Bounds().Contains(x, y) {
		a.mu.Unlock()
		log.Debug().Float64("x", x).Float64("y", y).Msg("external drop outside the tab list, ignoring")
		return result
	}
	hover, hit := a.resolve(x, y)
	a.mu.Unlock()
	result.Target = hover

	if !IsExternalLinkDrag(drag.Types) {
		return result
	}
	link, ok := ExtractLink(drag.Data)
	if !ok {
		log.Debug().Msg("external drop carried no usable link")
		return result
	}
	result.Link = link

	handler, ok := a.registry.DropHandler(a.zone)
	if !ok {
		log.Debug().Str("zone", string(a.zone)).Msg("no drop handler registered, ignoring external drop")
		return result
	}
	session, err := dnd.NewSession(dnd.NewURLItem(link.URL, link.Title))
	if err != nil {
		result.Err = err
		return result
	}

	target := dnd.DropTarget{
		Zone:        a.zone,
		TargetID:    hit.ID,
		Kind:        kindForProbe(hit.Kind),
		Accept:      dnd.Accept([]dnd.Format{dnd.FormatURL}, nil),
		IsContainer: hit.Kind == port.ProbeGroupHeader,
		IsExpanded:  hit.Expanded,
	}
	ctx = logging.WithZone(ctx, string(a.zone))
	if err := invokeHandler(ctx, handler, session, target, hover.Position, dnd.FormatURL); err != nil {
		log.Warn().Err(err).Str("url", link.URL).Msg("external drop failed")
		result.Err = err
		return result
	}
	result.Handled = true
	log.Info().Str("url", link.URL).Str("position", hover.Position.String()).Msg("external link dropped")
	return result
}

func (a *ExternalDropAdapter) resolve(x, y float64) (ExternalHover, port.ProbeHit) {
	hit := a.probe.ProbeAt(x, y)
	container := hit.Kind == port.ProbeGroupHeader
	pos := a.geometry.Calculate(hit.Rect, x, y, container, false)
	if hit.Kind == port.ProbeNothing || pos == dnd.PositionNone {
		// Dropping on empty space appends to the end of the zone.
		return ExternalHover{Kind: port.ProbeNothing, Position: dnd.PositionAfter}, port.ProbeHit{}
	}
	if pos == dnd.PositionAfter && container && hit.Expanded {
		pos = dnd.PositionIntoFirst
	}
	return ExternalHover{Kind: hit.Kind, TargetID: hit.ID, Position: pos}, hit
}

func kindForProbe(k port.ProbeKind) dnd.TargetKind {
	switch k {
	case port.ProbeGroupHeader:
		return dnd.KindTabGroup
	case port.ProbeTab:
		return dnd.KindTab
	default:
		return dnd.KindZoneEnd
	}
}
