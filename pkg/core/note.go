package core

import (
	"slices"
	"time"
)

// Note is the central entity of the domain.
// It is a value: the store replaces a note wholesale instead of mutating it,
// and never shares its Tags slice with callers.
type Note struct {
	ID        int
	Title     string
	Content   string
	Tags      []string
	Important bool
	Timestamp time.Time
}

// Clone returns a copy of the note that shares no memory with n.
func (n Note) Clone() Note {
	n.Tags = CloneTags(n.Tags)
	return n
}

// HasTag reports whether tag is one of the note's tags (exact, case-sensitive).
func (n Note) HasTag(tag string) bool {
	return slices.Contains(n.Tags, tag)
}

// WithContent returns a copy of n with new title, content and tags, stamped at ts.
func (n Note) WithContent(title, content string, tags []string, ts time.Time) Note {
	n.Title = title
	n.Content = content
	n.Tags = CloneTags(tags)
	n.Timestamp = ts
	return n
}

// WithImportant returns a copy of n with the important flag set to v, stamped at ts.
func (n Note) WithImportant(v bool, ts time.Time) Note {
	n = n.Clone()
	n.Important = v
	n.Timestamp = ts
	return n
}

// CloneTags copies tags, normalizing nil to an empty slice.
func CloneTags(tags []string) []string {
	out := make([]string, len(tags))
	copy(out, tags)
	return out
}
