package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aretw0/jotter/pkg/adapters/fs"
	"github.com/aretw0/jotter/pkg/core"
)

func formatNote(n core.Note) string {
	return fmt.Sprintf("%d: %s - %s (Tags: %s) [Important: %t] Last updated: %s",
		n.ID, n.Title, n.Content, strings.Join(n.Tags, ", "), n.Important, fs.FormatTimestamp(n.Timestamp))
}

func printNotes(w io.Writer, notes []core.Note) {
	if len(notes) == 0 {
		fmt.Fprintln(w, "No notes found.")
		return
	}
	for _, n := range notes {
		fmt.Fprintln(w, formatNote(n))
	}
}

// writeJSON prints notes in the same layout as the data file.
func writeJSON(w io.Writer, notes []core.Note) error {
	data, err := fs.NewJSONSerializer().Serialize(notes)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// parseTags splits a comma-separated line into trimmed, non-empty tags.
func parseTags(raw string) []string {
	tags := []string{}
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func parseID(raw string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid note id %q", raw)
	}
	return id, nil
}

func notFound(id int) error {
	return fmt.Errorf("note %d: %w", id, core.ErrNotFound)
}
