package store

import (
	"fmt"
	"slices"
	"time"

	"github.com/aretw0/introspection"
)

// State is a snapshot of the store for observability.
type State struct {
	Notes      int        `json:"notes"`
	Important  int        `json:"important"`
	NextID     int        `json:"next_id"`
	Formats    []string   `json:"formats"`
	Exports    []string   `json:"export_extensions"`
	LastSaved  *time.Time `json:"last_saved,omitempty"`
	LastLoaded *time.Time `json:"last_loaded,omitempty"`
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	important := 0
	for _, n := range s.notes {
		if n.Important {
			important++
		}
	}

	formats := make([]string, 0, len(s.formats))
	for _, f := range s.formats {
		formats = append(formats, f.Format())
	}

	exports := make([]string, 0, len(s.serializers))
	for ext := range s.serializers {
		exports = append(exports, ext)
	}
	slices.Sort(exports)

	return State{
		Notes:      len(s.order),
		Important:  important,
		NextID:     s.nextID,
		Formats:    formats,
		Exports:    exports,
		LastSaved:  s.lastSaved,
		LastLoaded: s.lastLoaded,
	}
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "store"
}

// Node is one box of the store diagram. TreeDiagram reads Name, Status,
// Metadata and Children by reflection; Status must be one of the classes of
// introspection.DefaultStyles.
type Node struct {
	Name     string
	Status   string
	Metadata map[string]string
	Children []Node
}

// Tree lays the state out as a hierarchy: the store, the notes it holds and
// the save/load formats in the order they are tried.
func (st State) Tree(label string) Node {
	notes := Node{
		Name:     fmt.Sprintf("Notes: %d (important: %d)", st.Notes, st.Important),
		Status:   "running",
		Metadata: map[string]string{"type": "container"},
	}
	if st.Notes == 0 {
		notes.Status = "created"
	}

	formats := make([]Node, 0, len(st.Formats))
	for i, f := range st.Formats {
		status := "suspended"
		if i == 0 {
			status = "running"
		}
		formats = append(formats, Node{
			Name:     "Format: " + f,
			Status:   status,
			Metadata: map[string]string{"type": "process"},
		})
	}

	return Node{
		Name:     fmt.Sprintf("Store %s (next id %d)", label, st.NextID),
		Status:   "running",
		Metadata: map[string]string{"type": "supervisor"},
		Children: append([]Node{notes}, formats...),
	}
}

// Diagram renders the current state as a Mermaid graph.
func (s *Store) Diagram(label string) string {
	st := s.State().(State)
	config := introspection.DefaultDiagramConfig()
	config.SecondaryID = "store"
	return introspection.TreeDiagram(st.Tree(label), config)
}

var _ introspection.Introspectable = (*Store)(nil)
var _ introspection.Component = (*Store)(nil)

func (s *Store) markSaved() {
	now := s.clock()
	s.lastSaved = &now
}

func (s *Store) markLoaded() {
	now := s.clock()
	s.lastLoaded = &now
}
