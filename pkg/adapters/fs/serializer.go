package fs

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/aretw0/jotter/pkg/core"
	"gopkg.in/yaml.v3"
)

// Serializer defines how to read and write a whole collection in a specific file format.
type Serializer interface {
	// Format is the short name of the format, used in logs and status output.
	Format() string
	// Parse reads from r and returns the decoded notes in file order.
	// A note whose timestamp cannot be read is returned with a zero Timestamp.
	Parse(r io.Reader) ([]core.Note, error)
	// Serialize converts the notes to bytes.
	Serialize(notes []core.Note) ([]byte, error)
}

// DefaultSerializers returns the standard set of serializers keyed by file extension.
func DefaultSerializers() map[string]Serializer {
	return map[string]Serializer{
		".json": NewJSONSerializer(),
		".yaml": NewYAMLSerializer(),
		".yml":  NewYAMLSerializer(),
		".txt":  NewLegacySerializer(),
	}
}

// SerializerFor picks the serializer registered for the extension of path.
// Unknown or missing extensions fall back to JSON.
func SerializerFor(path string, serializers map[string]Serializer) Serializer {
	if s, ok := serializers[strings.ToLower(filepath.Ext(path))]; ok {
		return s
	}
	return NewJSONSerializer()
}

// --- Timestamps ---

// TimestampLayout is the ISO-8601 local date-time layout written by every format.
const TimestampLayout = "2006-01-02T15:04:05.999999999"

var timestampLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// FormatTimestamp renders t as a local date-time without zone.
func FormatTimestamp(t time.Time) string {
	return t.In(time.Local).Format(TimestampLayout)
}

// ParseTimestamp reads a local date-time. Fractional seconds of any length,
// minute precision and RFC 3339 (with zone) are accepted.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
	}
	return t.In(time.Local), nil
}

// record is the structured field set shared by the JSON and YAML formats.
type record struct {
	ID        int      `json:"id" yaml:"id"`
	Title     string   `json:"title" yaml:"title"`
	Content   string   `json:"content" yaml:"content"`
	Timestamp string   `json:"timestamp" yaml:"timestamp"`
	Important bool     `json:"important" yaml:"important"`
	Tags      []string `json:"tags" yaml:"tags"`
}

func toRecords(notes []core.Note) []record {
	out := make([]record, 0, len(notes))
	for _, n := range notes {
		out = append(out, record{
			ID:        n.ID,
			Title:     n.Title,
			Content:   n.Content,
			Timestamp: FormatTimestamp(n.Timestamp),
			Important: n.Important,
			Tags:      core.CloneTags(n.Tags),
		})
	}
	return out
}

// checkUTF8 rejects notes whose text the structured encoders would rewrite.
// encoding/json replaces invalid bytes with U+FFFD instead of failing.
func checkUTF8(notes []core.Note) error {
	for _, n := range notes {
		if !utf8.ValidString(n.Title) {
			return fmt.Errorf("%w: note %d: title is not valid UTF-8", core.ErrSerialize, n.ID)
		}
		if !utf8.ValidString(n.Content) {
			return fmt.Errorf("%w: note %d: content is not valid UTF-8", core.ErrSerialize, n.ID)
		}
		for _, tag := range n.Tags {
			if !utf8.ValidString(tag) {
				return fmt.Errorf("%w: note %d: tag %q is not valid UTF-8", core.ErrSerialize, n.ID, tag)
			}
		}
	}
	return nil
}

func fromRecords(records []record) []core.Note {
	out := make([]core.Note, 0, len(records))
	for _, r := range records {
		// Unreadable timestamps stay zero; the store substitutes the current time.
		ts, _ := ParseTimestamp(r.Timestamp)
		out = append(out, core.Note{
			ID:        r.ID,
			Title:     r.Title,
			Content:   r.Content,
			Tags:      core.CloneTags(r.Tags),
			Important: r.Important,
			Timestamp: ts,
		})
	}
	return out
}

// --- JSON Serializer ---

// JSONSerializer reads and writes the structured array-of-objects format.
type JSONSerializer struct{}

// NewJSONSerializer creates a new JSON serializer.
func NewJSONSerializer() *JSONSerializer {
	return &JSONSerializer{}
}

func (s *JSONSerializer) Format() string { return "json" }

func (s *JSONSerializer) Parse(r io.Reader) ([]core.Note, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}
	return fromRecords(records), nil
}

func (s *JSONSerializer) Serialize(notes []core.Note) ([]byte, error) {
	if err := checkUTF8(notes); err != nil {
		return nil, err
	}
	return json.MarshalIndent(toRecords(notes), "", "  ")
}

// --- YAML Serializer ---

// YAMLSerializer writes the structured field set as a YAML sequence.
type YAMLSerializer struct{}

// NewYAMLSerializer creates a new YAML serializer.
func NewYAMLSerializer() *YAMLSerializer {
	return &YAMLSerializer{}
}

func (s *YAMLSerializer) Format() string { return "yaml" }

func (s *YAMLSerializer) Parse(r io.Reader) ([]core.Note, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var records []record
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("invalid yaml: %w", err)
	}
	return fromRecords(records), nil
}

func (s *YAMLSerializer) Serialize(notes []core.Note) ([]byte, error) {
	if err := checkUTF8(notes); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(toRecords(notes)); err != nil {
		return nil, err
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// --- Legacy Serializer ---

// legacyFields is the number of pieces a legacy line is split into.
// Everything after the fifth comma belongs to the tags field.
const legacyFields = 6

// LegacySerializer handles the line-oriented, comma-delimited format that predates JSON.
//
// CAVEAT: fields are not escaped. A comma inside the title or content shifts the
// following fields, so such notes do not survive a round trip. Files written by older
// versions depend on this exact layout.
type LegacySerializer struct{}

// NewLegacySerializer creates a new legacy text serializer.
func NewLegacySerializer() *LegacySerializer {
	return &LegacySerializer{}
}

func (s *LegacySerializer) Format() string { return "legacy" }

// ErrNoLegacyRecords is returned when the input has content but no line is a valid record.
var ErrNoLegacyRecords = errors.New("no valid legacy records")

func (s *LegacySerializer) Parse(r io.Reader) ([]core.Note, error) {
	var (
		notes    []core.Note
		nonBlank int
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		nonBlank++
		if n, ok := parseLegacyLine(line); ok {
			notes = append(notes, n)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if nonBlank > 0 && len(notes) == 0 {
		return nil, ErrNoLegacyRecords
	}
	if notes == nil {
		notes = []core.Note{}
	}
	return notes, nil
}

func parseLegacyLine(line string) (core.Note, bool) {
	parts := strings.SplitN(line, ",", legacyFields)
	if len(parts) < legacyFields {
		return core.Note{}, false
	}

	id, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return core.Note{}, false
	}

	ts, _ := ParseTimestamp(parts[3])

	tags := []string{}
	for _, t := range strings.Split(parts[5], ",") {
		if strings.TrimSpace(t) != "" {
			tags = append(tags, t)
		}
	}

	return core.Note{
		ID:        id,
		Title:     parts[1],
		Content:   parts[2],
		Timestamp: ts,
		Important: strings.EqualFold(strings.TrimSpace(parts[4]), "true"),
		Tags:      tags,
	}, true
}

func (s *LegacySerializer) Serialize(notes []core.Note) ([]byte, error) {
	lines := make([]string, 0, len(notes))
	for _, n := range notes {
		lines = append(lines, strings.Join([]string{
			strconv.Itoa(n.ID),
			n.Title,
			n.Content,
			FormatTimestamp(n.Timestamp),
			strconv.FormatBool(n.Important),
			strings.Join(n.Tags, ","),
		}, ","))
	}
	return []byte(strings.Join(lines, "\n")), nil
}
