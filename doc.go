// Package jotter is the composition root for the jotter note keeper.
//
// It re-exports the note store (pkg/store), the note value (pkg/core) and the
// on-disk formats (pkg/adapters/fs) behind a small facade.
//
// Persistence:
//
// A store is saved to a single data file as JSON. Loading tries JSON first and
// falls back to the older comma-delimited text format, so data files written by
// earlier versions keep loading. Export and import are strict: they use one
// format chosen by file extension and report every failure.
//
// Usage:
//
//	s, err := jotter.Open("notes.txt", jotter.WithLogger(logger))
//	if err != nil {
//		return err
//	}
//	s.Create("Shopping", "Milk, Bread", []string{"home"})
//	if err := s.SaveToFile("notes.txt"); err != nil {
//		return err
//	}
package jotter
