// Package model provides Bubble Tea models for CLI commands.
package model

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/sidebar/internal/cli/styles"
	"github.com/bnema/sidebar/internal/domain/dnd"
	"github.com/bnema/sidebar/internal/domain/entity"
	"github.com/bnema/sidebar/internal/infrastructure/config"
	"github.com/bnema/sidebar/internal/logging"
	"github.com/bnema/sidebar/internal/ui/dragdrop"
	"github.com/bnema/sidebar/internal/ui/host"
)

// dragTick redraws the sidebar while a gesture runs so expansions fired
// by the hover timer show up without pointer motion.
const dragTick = 100 * time.Millisecond

// SidebarModel is the Bubble Tea model for the interactive sidebar. The
// frame is drawn from the top-left cell so terminal coordinates map to
// frame coordinates directly.
type SidebarModel struct {
	// UI components
	help  help.Model
	keys  styles.SidebarKeyMap
	theme *styles.Theme

	// State
	width    int
	height   int
	pressed  string
	pressX   float64
	pressY   float64
	dragging bool
	status   string

	// Dependencies
	ctx     context.Context
	sidebar *host.Sidebar
	updates <-chan config.Config
	reload  func() error
}

// SidebarModelConfig holds configuration for the sidebar model.
type SidebarModelConfig struct {
	// Updates delivers configuration reloads.
	Updates <-chan config.Config
	// Reload re-reads the configuration file on demand.
	Reload func() error
}

// NewSidebarModel creates a new sidebar model.
func NewSidebarModel(ctx context.Context, theme *styles.Theme, sb *host.Sidebar, cfg SidebarModelConfig) SidebarModel {
	return SidebarModel{
		help:    styles.NewStyledHelp(theme),
		keys:    styles.DefaultSidebarKeyMap(),
		theme:   theme,
		width:   40,
		height:  24,
		ctx:     ctx,
		sidebar: sb,
		updates: cfg.Updates,
		reload:  cfg.Reload,
	}
}

// configUpdatedMsg carries a reloaded configuration.
type configUpdatedMsg struct {
	cfg config.Config
}

// dropDoneMsg is sent when a drop handler has returned.
type dropDoneMsg struct {
	result dragdrop.DropResult
}

// dragTickMsg triggers a redraw during a gesture.
type dragTickMsg struct{}

// spaceActivatedMsg is sent after a space switch.
type spaceActivatedMsg struct {
	id  entity.SpaceID
	err error
}

// Init implements tea.Model.
func (m SidebarModel) Init() tea.Cmd {
	return m.waitForConfig()
}

func (m SidebarModel) waitForConfig() tea.Cmd {
	if m.updates == nil {
		return nil
	}
	updates := m.updates
	return func() tea.Msg {
		cfg, ok := <-updates
		if !ok {
			return nil
		}
		return configUpdatedMsg{cfg: cfg}
	}
}

// Update implements tea.Model.
func (m SidebarModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.sidebar.SetWidth(float64(max(msg.Width, 20)))
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)

	case dragTickMsg:
		if m.dragging {
			return m, tickDrag()
		}
		return m, nil

	case dropDoneMsg:
		switch {
		case msg.result.Valid:
			m.status = fmt.Sprintf("Dropped %s %s %s", msg.result.Format, msg.result.Position, msg.result.TargetID)
		case msg.result.Err != nil:
			m.status = fmt.Sprintf("Error: %v", msg.result.Err)
		default:
			m.status = "Nothing dropped"
		}
		return m, nil

	case spaceActivatedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.status = fmt.Sprintf("Space %s", msg.id)
		}
		return m, nil

	case configUpdatedMsg:
		m.sidebar.SetAutoExpandDelay(msg.cfg.DnD.AutoExpandDelay)
		m.status = fmt.Sprintf("Config reloaded, expand delay %s", msg.cfg.DnD.AutoExpandDelay)
		return m, m.waitForConfig()
	}

	return m, nil
}

func (m SidebarModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.sidebar.Coordinator().Cancel(m.ctx)
		return m, tea.Quit

	case key.Matches(msg, m.keys.Cancel):
		if m.dragging {
			m.sidebar.Coordinator().Cancel(m.ctx)
			m.dragging = false
			m.pressed = ""
			m.status = "Drag cancelled"
		}
		return m, nil

	case key.Matches(msg, m.keys.Clear):
		for _, zone := range dnd.Zones {
			if sel := m.sidebar.Selection(zone); sel != nil {
				sel.Clear()
			}
		}
		m.sidebar.Invalidate()
		return m, nil

	case key.Matches(msg, m.keys.NextSpace):
		return m, m.cycleSpace(1)

	case key.Matches(msg, m.keys.PrevSpace):
		return m, m.cycleSpace(-1)

	case key.Matches(msg, m.keys.Reload):
		if m.reload == nil {
			return m, nil
		}
		if err := m.reload(); err != nil {
			m.status = fmt.Sprintf("Error: %v", err)
		}
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	return m, nil
}

// cellCenter converts a terminal cell to frame coordinates.
func cellCenter(x, y int) (float64, float64) {
	return float64(x) + 0.5, float64(y) + 0.5
}

func (m SidebarModel) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	x, y := cellCenter(msg.X, msg.Y)
	coord := m.sidebar.Coordinator()

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		el, ok := m.sidebar.Frame().ElementAt(x, y)
		if !ok || !el.Draggable {
			m.pressed = ""
			return m, nil
		}
		if msg.Ctrl {
			m.toggleSelected(el)
			return m, nil
		}
		m.pressed, m.pressX, m.pressY = el.ID, x, y
		return m, nil

	case tea.MouseActionMotion:
		if m.pressed == "" {
			return m, nil
		}
		if !m.dragging {
			// A gesture starts once the pointer leaves the pressed cell.
			if x == m.pressX && y == m.pressY {
				return m, nil
			}
			if !coord.Start(m.ctx, m.pressed, m.pressX, m.pressY) {
				m.pressed = ""
				return m, nil
			}
			m.dragging = true
			coord.Move(m.ctx, x, y)
			return m, tickDrag()
		}
		coord.Move(m.ctx, x, y)
		return m, nil

	case tea.MouseActionRelease:
		pressed := m.pressed
		m.pressed = ""
		if m.dragging {
			m.dragging = false
			coord.Move(m.ctx, x, y)
			ctx := m.ctx
			return m, func() tea.Msg {
				return dropDoneMsg{result: coord.End(ctx)}
			}
		}
		if pressed != "" {
			return m, m.click(pressed)
		}
	}
	return m, nil
}

// toggleSelected flips an element in its zone's multi-selection. Tabs
// keep theirs as highlighted tabs in the store.
func (m SidebarModel) toggleSelected(el host.Element) {
	if el.Zone == dnd.ZoneTabs && el.Kind == dnd.KindTab {
		tabs := m.sidebar.Workspace().Tabs
		highlighted, err := tabs.Highlighted(m.ctx)
		if err != nil {
			return
		}
		ids := make([]entity.TabID, 0, len(highlighted)+1)
		found := false
		for _, t := range highlighted {
			if string(t.ID) == el.ID {
				found = true
				continue
			}
			ids = append(ids, t.ID)
		}
		if !found {
			ids = append(ids, entity.TabID(el.ID))
		}
		if err := tabs.SetHighlighted(m.ctx, ids); err != nil {
			logging.FromContext(m.ctx).Warn().Err(err).Msg("failed to highlight tabs")
		}
		return
	}
	if sel := m.sidebar.Selection(el.Zone); sel != nil {
		sel.Toggle(el.ID)
		m.sidebar.Invalidate()
	}
}

// click handles a press and release on the same element without a drag.
func (m SidebarModel) click(id string) tea.Cmd {
	el, ok := m.sidebar.Frame().Element(id)
	if !ok {
		return nil
	}
	ws := m.sidebar.Workspace()
	ctx := m.ctx
	switch el.Kind {
	case dnd.KindSpace:
		return func() tea.Msg {
			sid := entity.SpaceID(el.ID)
			return spaceActivatedMsg{id: sid, err: ws.Spaces.SetActive(ctx, sid)}
		}
	case dnd.KindTabGroup:
		if err := ws.Tabs.SetGroupCollapsed(ctx, entity.TabGroupID(el.ID), el.Expanded); err != nil {
			logging.FromContext(ctx).Warn().Err(err).Str("group", el.ID).Msg("failed to toggle group")
		}
	case dnd.KindFolder:
		if err := ws.Bookmarks.SetExpanded(ctx, entity.BookmarkID(el.ID), !el.Expanded); err != nil {
			logging.FromContext(ctx).Warn().Err(err).Str("folder", el.ID).Msg("failed to toggle folder")
		}
	}
	return nil
}

func (m SidebarModel) cycleSpace(step int) tea.Cmd {
	ws := m.sidebar.Workspace()
	ctx := m.ctx
	return func() tea.Msg {
		var ids []entity.SpaceID
		var active entity.SpaceID
		ws.Spaces.View(func(l *entity.SpaceList) {
			for _, sp := range l.Spaces {
				ids = append(ids, sp.ID)
			}
			active = l.ActiveID
		})
		if len(ids) == 0 {
			return nil
		}
		i := slices.Index(ids, active)
		next := ids[((i+step)%len(ids)+len(ids))%len(ids)]
		return spaceActivatedMsg{id: next, err: ws.Spaces.SetActive(ctx, next)}
	}
}

func tickDrag() tea.Cmd {
	return tea.Tick(dragTick, func(time.Time) tea.Msg { return dragTickMsg{} })
}

// View implements tea.Model.
func (m SidebarModel) View() string {
	var b strings.Builder
	b.WriteString(m.renderFrame())
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

type segment struct {
	x    int
	text string
}

// renderFrame draws every header and element at its cell position.
func (m SidebarModel) renderFrame() string {
	frame := m.sidebar.Frame()
	snap := m.sidebar.Coordinator().Snapshot()
	rows := make([][]segment, int(frame.Height))

	put := func(rect entity.Rect, lines []string) {
		x, y := int(rect.X), int(rect.Y)
		for i, line := range lines {
			if y+i < len(rows) {
				rows[y+i] = append(rows[y+i], segment{x: x, text: line})
			}
		}
	}

	for _, h := range frame.Headers {
		w := int(h.Rect.W)
		put(h.Rect, []string{m.theme.ZoneHeader.Width(w).Render(truncate(strings.ToUpper(h.Title), w))})
	}
	for _, el := range frame.Elements {
		put(el.Rect, m.renderElement(el, snap))
	}

	lines := make([]string, len(rows))
	for i, segs := range rows {
		slices.SortFunc(segs, func(a, b segment) int { return a.x - b.x })
		var line strings.Builder
		cursor := 0
		for _, s := range segs {
			if s.x > cursor {
				line.WriteString(strings.Repeat(" ", s.x-cursor))
				cursor = s.x
			}
			line.WriteString(s.text)
			cursor += lipgloss.Width(s.text)
		}
		lines[i] = line.String()
	}
	return strings.Join(lines, "\n")
}

func (m SidebarModel) renderElement(el host.Element, snap dragdrop.Snapshot) []string {
	w := int(el.Rect.W)
	h := int(el.Rect.H)

	dragging := snap.State == dragdrop.StateActive || snap.State == dragdrop.StateOver
	isTarget := dragging && snap.TargetZone == el.Zone && snap.TargetID == el.Target.TargetID

	style := m.theme.Row
	switch {
	case isTarget && snap.Position.IsInside():
		style = m.theme.DropInto
	case dragging && snap.SourceID == el.ID:
		style = m.theme.RowSource
	case el.Kind == dnd.KindSpace && el.Active:
		style = m.theme.ChipActive
	case el.Kind == dnd.KindSpace || el.Kind == dnd.KindPinnedSite:
		style = m.theme.Chip
	case el.Selected:
		style = m.theme.RowSelected
	}

	label := elementLabel(el)
	lines := make([]string, h)
	for i := range lines {
		text := ""
		if i == 0 {
			text = label
		}
		lines[i] = style.Width(w).Render(truncate(text, w))
	}

	if isTarget {
		marker := strings.Repeat("─", w)
		switch snap.Position {
		case dnd.PositionBefore:
			lines[0] = m.theme.DropLine.Render(truncate("▲"+marker, w))
		case dnd.PositionAfter:
			lines[h-1] = m.theme.DropLine.Render(truncate("▼"+marker, w))
		}
	}
	return lines
}

func elementLabel(el host.Element) string {
	switch el.Kind {
	case dnd.KindPinnedSite:
		return styles.IconPin + " " + el.Label
	case dnd.KindSpace:
		return el.Label
	case dnd.KindTab:
		return styles.IconTab + " " + el.Label
	case dnd.KindTabGroup, dnd.KindFolder:
		icon := styles.IconCursor
		if el.Expanded {
			icon = styles.IconCaret
		}
		return icon + " " + el.Label
	case dnd.KindBookmark:
		return styles.IconStar + " " + el.Label
	}
	return ""
}

func (m SidebarModel) renderStatus() string {
	snap := m.sidebar.Coordinator().Snapshot()
	switch snap.State {
	case dragdrop.StateActive:
		return m.theme.Overlay.Render(fmt.Sprintf("%s %s", dragLabel(snap), m.theme.DropRejected.Render("no target")))
	case dragdrop.StateOver:
		return m.theme.Overlay.Render(fmt.Sprintf("%s %s %s %s",
			dragLabel(snap), styles.IconArrow, snap.TargetID, snap.Position))
	}
	if m.status != "" {
		return m.theme.Subtle.Render(m.status)
	}
	return ""
}

func dragLabel(snap dragdrop.Snapshot) string {
	if snap.IsMultiDrag {
		return fmt.Sprintf("%d items", snap.MultiCount)
	}
	return snap.SourceID
}

// truncate cuts s to w cells, marking the cut with an ellipsis.
func truncate(s string, w int) string {
	if w <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= w {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r))+1 > w {
		r = r[:len(r)-1]
	}
	return string(r) + "…"
}
