package store

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/aretw0/jotter/pkg/adapters/fs"
	"github.com/aretw0/jotter/pkg/core"
)

// SaveToFile writes the collection to path using the first configured format
// that serializes (JSON, then legacy text, by default). A serialization failure
// downgrades to the next format instead of being reported; write failures are returned.
func (s *Store) SaveToFile(path string) error {
	notes := s.List()

	var errs []error
	for i, format := range s.formats {
		data, err := format.Serialize(notes)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", format.Format(), err))
			s.logger.Warn("serialization failed, trying next format",
				"path", path, "format", format.Format(), "error", err)
			continue
		}

		if err := fs.WriteFile(path, data); err != nil {
			return err
		}
		if i > 0 {
			s.logger.Warn("notes saved in fallback format", "path", path, "format", format.Format())
		}
		s.markSaved()
		s.logger.Debug("notes saved", "path", path, "format", format.Format(), "count", len(notes))
		return nil
	}

	return fmt.Errorf("%w: %s: %w", core.ErrSerialize, path, errors.Join(errs...))
}

// LoadFromFile replaces the collection with the notes stored at path, trying each
// configured format in order. A missing file leaves the store untouched.
// If no format can parse the file the store is untouched and an error wrapping
// core.ErrParse is returned.
func (s *Store) LoadFromFile(path string) error {
	data, ok, err := fs.ReadFile(path)
	if err != nil {
		return err
	}
	if !ok {
		s.logger.Debug("nothing to load", "path", path)
		return nil
	}

	var errs []error
	for i, format := range s.formats {
		notes, err := format.Parse(bytes.NewReader(data))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", format.Format(), err))
			if i < len(s.formats)-1 {
				s.logger.Debug("format did not parse, trying next", "path", path, "format", format.Format(), "error", err)
			}
			continue
		}

		s.replace(notes)
		s.logger.Debug("notes loaded", "path", path, "format", format.Format(), "count", s.Len())
		return nil
	}

	return fmt.Errorf("%w: %s: %w", core.ErrParse, path, errors.Join(errs...))
}

// ExportToFile writes the collection to path in the format registered for its
// extension (JSON when unknown). Unlike SaveToFile every failure is returned.
func (s *Store) ExportToFile(path string) error {
	format := fs.SerializerFor(path, s.serializers)

	data, err := format.Serialize(s.List())
	if err != nil {
		return fmt.Errorf("%w: %s: %w", core.ErrSerialize, path, err)
	}
	if err := fs.WriteFile(path, data); err != nil {
		return err
	}
	s.logger.Debug("notes exported", "path", path, "format", format.Format(), "count", s.Len())
	return nil
}

// ImportFromFile replaces the collection with the notes exported at path.
// A missing file is an error.
func (s *Store) ImportFromFile(path string) error {
	format := fs.SerializerFor(path, s.serializers)

	data, ok, err := fs.ReadFile(path)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("failed to import %s: %w", path, os.ErrNotExist)
	}

	notes, err := format.Parse(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%w: %s: %w", core.ErrParse, path, err)
	}

	s.replace(notes)
	s.logger.Debug("notes imported", "path", path, "format", format.Format(), "count", s.Len())
	return nil
}

// replace swaps the collection wholesale and advances the id counter past the
// largest loaded id. The counter never moves backwards.
func (s *Store) replace(loaded []core.Note) {
	notes := make(map[int]core.Note, len(loaded))
	order := make([]int, 0, len(loaded))
	now := s.clock()

	for _, n := range loaded {
		if n.ID <= 0 {
			s.logger.Warn("skipping note with invalid id", "id", n.ID, "title", n.Title)
			continue
		}
		if _, dup := notes[n.ID]; dup {
			s.logger.Warn("skipping note with duplicate id", "id", n.ID, "title", n.Title)
			continue
		}
		if n.Timestamp.IsZero() {
			s.logger.Warn("unreadable timestamp, using current time", "id", n.ID)
			n.Timestamp = now
		}

		notes[n.ID] = n.Clone()
		order = append(order, n.ID)
		if n.ID >= s.nextID {
			s.nextID = n.ID + 1
		}
	}

	s.notes = notes
	s.order = order
	s.markLoaded()
}
