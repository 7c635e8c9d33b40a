package platform

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/jotter/pkg/store"
)

// Open creates a store and loads the configured data file into it.
// A missing data file yields an empty store.
func Open(cfg *Config, logger *slog.Logger, opts ...store.Option) (*store.Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	s := store.New(append([]store.Option{store.WithLogger(logger)}, opts...)...)
	if err := s.LoadFromFile(cfg.DataFile); err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", cfg.DataFile, err)
	}

	logger.Debug("store opened", "path", cfg.DataFile, "notes", s.Len())
	return s, nil
}
