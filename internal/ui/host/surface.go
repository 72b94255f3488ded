package host

import (
	"github.com/bnema/sidebar/internal/application/port"
	"github.com/bnema/sidebar/internal/domain/dnd"
	"github.com/bnema/sidebar/internal/domain/entity"
)

// surface answers the coordinator from the sidebar's current frame.
type surface struct {
	s *Sidebar
}

var _ port.DragSurface = (*surface)(nil)

func (f *surface) ZoneOf(elementID string) (dnd.Zone, bool) {
	el, ok := f.s.Frame().Element(elementID)
	if !ok {
		return "", false
	}
	return el.Zone, true
}

func (f *surface) ElementRect(elementID string) (entity.Rect, bool) {
	el, ok := f.s.Frame().Element(elementID)
	if !ok {
		return entity.Rect{}, false
	}
	return el.Rect, true
}

func (f *surface) ItemFor(elementID string) (dnd.Item, bool) {
	el, ok := f.s.Frame().Element(elementID)
	if !ok || !el.Draggable {
		return dnd.Item{}, false
	}
	return el.Item, true
}

func (f *surface) DropTargets() []port.DropCandidate {
	frame := f.s.Frame()
	cands := make([]port.DropCandidate, 0, len(frame.Elements))
	for _, el := range frame.Elements {
		cands = append(cands, port.DropCandidate{Target: el.Target, Rect: el.Rect})
	}
	return cands
}

// tabProbe locates tabs and group headers for external link drags.
type tabProbe struct {
	s *Sidebar
}

var _ port.DropProbe = (*tabProbe)(nil)

func (p *tabProbe) ProbeAt(x, y float64) port.ProbeHit {
	frame := p.s.Frame()
	for _, el := range frame.Elements {
		if el.Zone != dnd.ZoneTabs || !el.Rect.Contains(x, y) {
			continue
		}
		switch el.Kind {
		case dnd.KindTab:
			return port.ProbeHit{Kind: port.ProbeTab, ID: el.ID, Rect: el.Rect}
		case dnd.KindTabGroup:
			return port.ProbeHit{
				Kind:     port.ProbeGroupHeader,
				ID:       el.ID,
				Rect:     el.Rect,
				Expanded: el.Expanded,
				Expand:   el.Target.Expand,
			}
		}
	}
	return port.ProbeHit{Kind: port.ProbeNothing}
}

func (p *tabProbe) Bounds() entity.Rect {
	return p.s.Frame().Zones[dnd.ZoneTabs]
}
