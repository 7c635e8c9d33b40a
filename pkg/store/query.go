package store

import (
	"fmt"
	"slices"
	"strings"

	"github.com/aretw0/jotter/pkg/core"
	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/text/cases"
)

// Search returns the notes whose title contains keyword, ignoring case.
// Both sides are case folded, so "ς" finds "Σ".
// An empty keyword matches every note.
func (s *Store) Search(keyword string) []core.Note {
	fold := cases.Fold()
	needle := fold.String(keyword)
	return s.filter(func(n core.Note) bool {
		return strings.Contains(fold.String(n.Title), needle)
	})
}

// FilterByTag returns the notes carrying tag exactly (case-sensitive).
func (s *Store) FilterByTag(tag string) []core.Note {
	return s.filter(func(n core.Note) bool {
		return n.HasTag(tag)
	})
}

// MatchTags returns the notes with at least one tag matching the glob pattern.
// Tags are treated as slash-separated paths, so "work/**" matches "work/q3/plan".
func (s *Store) MatchTags(pattern string) ([]core.Note, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid tag pattern %q: %w", pattern, doublestar.ErrBadPattern)
	}
	return s.filter(func(n core.Note) bool {
		for _, tag := range n.Tags {
			if ok, _ := doublestar.Match(pattern, tag); ok {
				return true
			}
		}
		return false
	}), nil
}

// SortByTitle returns the notes ordered by title. Equal titles keep collection order.
func (s *Store) SortByTitle() []core.Note {
	out := s.List()
	slices.SortStableFunc(out, func(a, b core.Note) int {
		return strings.Compare(a.Title, b.Title)
	})
	return out
}

// SortByDate returns the notes ordered by timestamp, oldest first.
// Equal timestamps keep collection order.
func (s *Store) SortByDate() []core.Note {
	out := s.List()
	slices.SortStableFunc(out, func(a, b core.Note) int {
		return a.Timestamp.Compare(b.Timestamp)
	})
	return out
}

func (s *Store) filter(keep func(core.Note) bool) []core.Note {
	out := []core.Note{}
	for _, id := range s.order {
		if n := s.notes[id]; keep(n) {
			out = append(out, n.Clone())
		}
	}
	return out
}
