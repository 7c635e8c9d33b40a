package store

import (
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/jotter/pkg/adapters/fs"
)

// options holds the internal configuration for a Store.
type options struct {
	logger      *slog.Logger
	clock       func() time.Time
	formats     []fs.Serializer
	serializers map[string]fs.Serializer
}

// Option defines a functional option for configuring a Store.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		clock:  time.Now,
		formats: []fs.Serializer{
			fs.NewJSONSerializer(),
			fs.NewLegacySerializer(),
		},
		serializers: fs.DefaultSerializers(),
	}
}

// WithLogger sets the logger used to report fallbacks and recoveries.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithClock overrides the time source used to stamp notes.
func WithClock(clock func() time.Time) Option {
	return func(o *options) {
		if clock != nil {
			o.clock = clock
		}
	}
}

// WithFormats sets the ordered list of formats used by SaveToFile and LoadFromFile.
// Save writes the first format that serializes; Load adopts the first format that parses.
func WithFormats(formats ...fs.Serializer) Option {
	return func(o *options) {
		if len(formats) > 0 {
			o.formats = formats
		}
	}
}

// WithSerializer registers the serializer used by ExportToFile and ImportFromFile
// for files with the given extension (e.g. ".json").
func WithSerializer(ext string, s fs.Serializer) Option {
	return func(o *options) {
		o.serializers[ext] = s
	}
}
