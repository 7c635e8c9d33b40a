package jotter

import (
	"log/slog"
	"time"

	"github.com/aretw0/jotter/pkg/adapters/fs"
	"github.com/aretw0/jotter/pkg/core"
	"github.com/aretw0/jotter/pkg/store"
)

// --- Types ---

// Note is a public alias for the note value type.
type Note = core.Note

// Store is a public alias for the note store.
type Store = store.Store

// Serializer is a public alias for an on-disk format.
type Serializer = fs.Serializer

// --- Errors ---

var (
	ErrNotFound  = core.ErrNotFound
	ErrParse     = core.ErrParse
	ErrSerialize = core.ErrSerialize
)

// --- Configuration ---

// Option defines a functional option for configuring a Store.
type Option = store.Option

// WithLogger sets the logger for the store.
func WithLogger(logger *slog.Logger) Option {
	return store.WithLogger(logger)
}

// WithClock overrides the time source used to stamp notes.
func WithClock(clock func() time.Time) Option {
	return store.WithClock(clock)
}

// WithFormats sets the ordered formats tried by save and load.
func WithFormats(formats ...Serializer) Option {
	return store.WithFormats(formats...)
}

// WithSerializer registers an export/import format for a file extension.
func WithSerializer(ext string, s Serializer) Option {
	return store.WithSerializer(ext, s)
}

// --- Factory ---

// New creates an empty store.
func New(opts ...Option) *Store {
	return store.New(opts...)
}

// Open creates a store and loads path into it. A missing file yields an empty store.
func Open(path string, opts ...Option) (*Store, error) {
	s := store.New(opts...)
	if err := s.LoadFromFile(path); err != nil {
		return nil, err
	}
	return s, nil
}

// --- Formats ---

// JSON returns the structured format.
func JSON() Serializer { return fs.NewJSONSerializer() }

// Legacy returns the comma-delimited text format.
func Legacy() Serializer { return fs.NewLegacySerializer() }

// YAML returns the YAML export format.
func YAML() Serializer { return fs.NewYAMLSerializer() }
