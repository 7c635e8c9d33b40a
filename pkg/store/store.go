// Package store holds the in-memory note collection and its persistence.
package store

import (
	"log/slog"
	"slices"
	"time"

	"github.com/aretw0/jotter/pkg/adapters/fs"
	"github.com/aretw0/jotter/pkg/core"
)

// Store owns an ordered collection of notes and the id counter.
// It is not safe for concurrent use.
type Store struct {
	notes  map[int]core.Note
	order  []int
	nextID int

	logger      *slog.Logger
	clock       func() time.Time
	formats     []fs.Serializer
	serializers map[string]fs.Serializer

	lastSaved  *time.Time
	lastLoaded *time.Time
}

// New creates an empty store. The first note gets id 1.
func New(opts ...Option) *Store {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	return &Store{
		notes:       make(map[int]core.Note),
		nextID:      1,
		logger:      o.logger,
		clock:       o.clock,
		formats:     o.formats,
		serializers: o.serializers,
	}
}

// Create adds a note and returns it.
func (s *Store) Create(title, content string, tags []string) core.Note {
	n := core.Note{
		ID:        s.nextID,
		Title:     title,
		Content:   content,
		Tags:      core.CloneTags(tags),
		Important: false,
		Timestamp: s.clock(),
	}
	s.nextID++

	s.notes[n.ID] = n
	s.order = append(s.order, n.ID)
	s.logger.Debug("note created", "id", n.ID)
	return n.Clone()
}

// List returns every note in insertion order.
func (s *Store) List() []core.Note {
	out := make([]core.Note, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.notes[id].Clone())
	}
	return out
}

// Get returns the note with the given id.
func (s *Store) Get(id int) (core.Note, bool) {
	n, ok := s.notes[id]
	if !ok {
		return core.Note{}, false
	}
	return n.Clone(), true
}

// Delete removes the note with the given id and reports whether it existed.
// Deleted ids are never handed out again.
func (s *Store) Delete(id int) bool {
	if _, ok := s.notes[id]; !ok {
		return false
	}
	delete(s.notes, id)
	s.order = slices.DeleteFunc(s.order, func(v int) bool { return v == id })
	s.logger.Debug("note deleted", "id", id)
	return true
}

// Edit replaces the title, content and tags of a note and refreshes its timestamp.
func (s *Store) Edit(id int, title, content string, tags []string) bool {
	n, ok := s.notes[id]
	if !ok {
		return false
	}
	s.notes[id] = n.WithContent(title, content, tags, s.touch(n))
	s.logger.Debug("note edited", "id", id)
	return true
}

// ToggleImportant flips the important flag of a note and refreshes its timestamp.
func (s *Store) ToggleImportant(id int) bool {
	n, ok := s.notes[id]
	if !ok {
		return false
	}
	s.notes[id] = n.WithImportant(!n.Important, s.touch(n))
	s.logger.Debug("note importance toggled", "id", id, "important", !n.Important)
	return true
}

// touch returns the timestamp for a modification of n; it never goes backwards.
func (s *Store) touch(n core.Note) time.Time {
	now := s.clock()
	if now.Before(n.Timestamp) {
		return n.Timestamp
	}
	return now
}

// NextID returns the id the next created note will receive.
func (s *Store) NextID() int {
	return s.nextID
}

// Len returns the number of notes in the collection.
func (s *Store) Len() int {
	return len(s.order)
}
