// Package scenario reads YAML gesture scripts. A script describes a
// starting workspace, a sequence of pointer steps and the collections
// expected once the steps have run.
package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/bnema/sidebar/internal/domain/dnd"
	"gopkg.in/yaml.v3"
)

// ErrInvalidScript is returned for scripts that parse but cannot run.
var ErrInvalidScript = errors.New("invalid scenario")

// Action names one scripted step.
type Action string

const (
	ActionStart    Action = "start"
	ActionMove     Action = "move"
	ActionOver     Action = "over"
	ActionEnd      Action = "end"
	ActionCancel   Action = "cancel"
	ActionExpand   Action = "expand" // fire pending hover-to-expand timers
	ActionSelect   Action = "select"
	ActionExternal Action = "external"
)

// Script is one replayable gesture file.
type Script struct {
	Name           string  `yaml:"name"`
	Width          float64 `yaml:"width,omitempty"`
	HorizontalPins *bool   `yaml:"horizontal_pins,omitempty"`
	State          *State  `yaml:"state,omitempty"`
	Steps          []Step  `yaml:"steps"`
	Expect         *Expect `yaml:"expect,omitempty"`
}

// Step is one pointer or host event.
type Step struct {
	Action Action `yaml:"action"`

	// Element and At locate the pointer on a rendered element. At is one
	// of top, middle, bottom, left or right and defaults to middle.
	Element string   `yaml:"element,omitempty"`
	At      string   `yaml:"at,omitempty"`
	X       *float64 `yaml:"x,omitempty"`
	Y       *float64 `yaml:"y,omitempty"`

	// Zone and Target address an over step.
	Zone   string `yaml:"zone,omitempty"`
	Target string `yaml:"target,omitempty"`

	// IDs is the new selection of a select step.
	IDs []string `yaml:"ids,omitempty"`

	// Types and Data describe a native drag for an external step. URL is
	// shorthand for a text/uri-list drag.
	Types []string          `yaml:"types,omitempty"`
	Data  map[string]string `yaml:"data,omitempty"`
	URL   string            `yaml:"url,omitempty"`
}

// Expect lists collections to compare after the last step. Unset fields
// are not checked.
type Expect struct {
	Tabs      []string            `yaml:"tabs,omitempty"`
	Groups    map[string][]string `yaml:"groups,omitempty"`
	TabSpaces map[string]string   `yaml:"tab_spaces,omitempty"`
	Pinned    []string            `yaml:"pinned,omitempty"`
	Spaces    []string            `yaml:"spaces,omitempty"`
	Bookmarks map[string][]string `yaml:"bookmarks,omitempty"`
}

// Load reads and validates a script file.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a script. Unknown keys are rejected.
func Parse(data []byte) (*Script, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var s Script
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidScript)
		}
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks that every step carries what its action needs.
func (s *Script) Validate() error {
	if len(s.Steps) == 0 {
		return fmt.Errorf("%w: no steps", ErrInvalidScript)
	}
	for i, st := range s.Steps {
		if err := st.validate(); err != nil {
			return fmt.Errorf("%w: step %d (%s): %w", ErrInvalidScript, i+1, st.Action, err)
		}
	}
	if s.State != nil {
		if err := s.State.validate(); err != nil {
			return fmt.Errorf("%w: state: %w", ErrInvalidScript, err)
		}
	}
	return nil
}

func (st Step) hasPoint() bool {
	return st.Element != "" || (st.X != nil && st.Y != nil)
}

func (st Step) validate() error {
	switch st.Action {
	case ActionStart:
		if st.Element == "" {
			return errors.New("element is required")
		}
	case ActionMove:
		if !st.hasPoint() {
			return errors.New("element or x/y is required")
		}
	case ActionOver:
		if _, err := dnd.ParseZone(st.Zone); err != nil {
			return err
		}
		if st.Target == "" {
			return errors.New("target is required")
		}
	case ActionEnd, ActionCancel, ActionExpand:
	case ActionSelect:
		if _, err := dnd.ParseZone(st.Zone); err != nil {
			return err
		}
	case ActionExternal:
		if st.URL == "" && len(st.Types) == 0 {
			return errors.New("url or types is required")
		}
	default:
		return fmt.Errorf("unknown action %q", st.Action)
	}
	switch st.At {
	case "", "top", "middle", "bottom", "left", "right":
	default:
		return fmt.Errorf("unknown anchor %q", st.At)
	}
	return nil
}
