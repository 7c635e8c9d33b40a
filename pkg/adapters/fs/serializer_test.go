package fs

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/jotter/pkg/core"
)

func sampleNotes() []core.Note {
	ts := time.Date(2024, 3, 9, 14, 30, 15, 123456789, time.Local)
	return []core.Note{
		{ID: 1, Title: "Shopping", Content: "Milk and bread", Tags: []string{"home", "errands"}, Timestamp: ts},
		{ID: 4, Title: "Ideas", Content: "Build an app", Tags: []string{}, Important: true, Timestamp: ts.Add(time.Hour)},
	}
}

func TestSerializers(t *testing.T) {
	serializers := DefaultSerializers()

	for _, ext := range []string{".json", ".yaml", ".txt"} {
		t.Run(ext, func(t *testing.T) {
			s := serializers[ext]
			want := sampleNotes()

			data, err := s.Serialize(want)
			if err != nil {
				t.Fatalf("Serialize failed: %v", err)
			}

			got, err := s.Parse(bytes.NewReader(data))
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}

			if len(got) != len(want) {
				t.Fatalf("Expected %d notes, got %d", len(want), len(got))
			}
			for i := range want {
				if got[i].ID != want[i].ID || got[i].Title != want[i].Title || got[i].Content != want[i].Content {
					t.Errorf("Note %d mismatch: want %+v, got %+v", i, want[i], got[i])
				}
				if got[i].Important != want[i].Important {
					t.Errorf("Note %d important mismatch", i)
				}
				if !got[i].Timestamp.Equal(want[i].Timestamp) {
					t.Errorf("Note %d timestamp mismatch: want %v, got %v", i, want[i].Timestamp, got[i].Timestamp)
				}
				if strings.Join(got[i].Tags, "|") != strings.Join(want[i].Tags, "|") {
					t.Errorf("Note %d tags mismatch: want %v, got %v", i, want[i].Tags, got[i].Tags)
				}
			}
		})
	}
}

func TestJSONSerializer(t *testing.T) {
	s := NewJSONSerializer()

	t.Run("Empty Collection Is An Array", func(t *testing.T) {
		data, err := s.Serialize(nil)
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != "[]" {
			t.Errorf("Expected [], got %s", data)
		}
	})

	t.Run("Field Names", func(t *testing.T) {
		data, err := s.Serialize(sampleNotes()[:1])
		if err != nil {
			t.Fatal(err)
		}
		for _, field := range []string{`"id": 1`, `"title": "Shopping"`, `"timestamp": "2024-03-09T14:30:15.123456789"`, `"important": false`, `"tags": [`} {
			if !strings.Contains(string(data), field) {
				t.Errorf("Expected %s in output:\n%s", field, data)
			}
		}
	})

	t.Run("Bad Timestamp Decodes As Zero", func(t *testing.T) {
		input := `[{"id":7,"title":"t","content":"c","timestamp":"yesterday","important":true,"tags":null}]`
		notes, err := s.Parse(strings.NewReader(input))
		if err != nil {
			t.Fatalf("Parse failed: %v", err)
		}
		if !notes[0].Timestamp.IsZero() {
			t.Errorf("Expected zero timestamp, got %v", notes[0].Timestamp)
		}
		if notes[0].Tags == nil || len(notes[0].Tags) != 0 {
			t.Errorf("Expected empty non-nil tags, got %#v", notes[0].Tags)
		}
	})

	t.Run("Rejects Invalid UTF-8", func(t *testing.T) {
		cases := map[string]core.Note{
			"title":   {ID: 1, Title: "caf\xe9"},
			"content": {ID: 2, Content: "body\xff"},
			"tag":     {ID: 3, Tags: []string{"t\xfe"}},
		}
		for field, n := range cases {
			for _, enc := range []Serializer{s, NewYAMLSerializer()} {
				_, err := enc.Serialize([]core.Note{n})
				if !errors.Is(err, core.ErrSerialize) {
					t.Errorf("%s: expected ErrSerialize for invalid %s, got %v", enc.Format(), field, err)
				}
			}
		}
	})

	t.Run("Rejects Legacy Text", func(t *testing.T) {
		if _, err := s.Parse(strings.NewReader("1,a,b,2024-01-01T10:00,false,")); err == nil {
			t.Error("Expected error for legacy input")
		}
	})
}

func TestLegacySerializer(t *testing.T) {
	s := NewLegacySerializer()

	t.Run("Writes One Line Per Note", func(t *testing.T) {
		data, err := s.Serialize(sampleNotes())
		if err != nil {
			t.Fatal(err)
		}
		lines := strings.Split(string(data), "\n")
		if len(lines) != 2 {
			t.Fatalf("Expected 2 lines, got %d", len(lines))
		}
		if lines[0] != "1,Shopping,Milk and bread,2024-03-09T14:30:15.123456789,false,home,errands" {
			t.Errorf("Unexpected line: %s", lines[0])
		}
		if !strings.HasSuffix(lines[1], ",true,") {
			t.Errorf("Expected empty tag field, got %s", lines[1])
		}
	})

	t.Run("Reads Minute Precision Timestamps", func(t *testing.T) {
		notes, err := s.Parse(strings.NewReader("3,Title,Body,2023-11-05T08:15,TRUE,a,b"))
		if err != nil {
			t.Fatal(err)
		}
		want := time.Date(2023, 11, 5, 8, 15, 0, 0, time.Local)
		if !notes[0].Timestamp.Equal(want) {
			t.Errorf("Expected %v, got %v", want, notes[0].Timestamp)
		}
		if !notes[0].Important {
			t.Error("Expected important=true for TRUE")
		}
		if strings.Join(notes[0].Tags, "|") != "a|b" {
			t.Errorf("Unexpected tags %v", notes[0].Tags)
		}
	})

	t.Run("Comma In Content Shifts Fields", func(t *testing.T) {
		notes, err := s.Parse(strings.NewReader("1,Shopping,Milk, Bread,2024-01-01T10:00:00,false,home"))
		if err != nil {
			t.Fatal(err)
		}
		n := notes[0]
		if n.Content != "Milk" {
			t.Errorf("Expected content cut at the first comma, got %q", n.Content)
		}
		if !n.Timestamp.IsZero() {
			t.Errorf("Expected unreadable timestamp, got %v", n.Timestamp)
		}
		if strings.Join(n.Tags, "|") != "false|home" {
			t.Errorf("Expected shifted tags, got %v", n.Tags)
		}
	})

	t.Run("Skips Short And Malformed Lines", func(t *testing.T) {
		input := strings.Join([]string{
			"garbage",
			"x,Title,Body,2024-01-01T10:00,false,",
			"",
			"2,Kept,Body,2024-01-01T10:00,false,",
		}, "\n")
		notes, err := s.Parse(strings.NewReader(input))
		if err != nil {
			t.Fatal(err)
		}
		if len(notes) != 1 || notes[0].ID != 2 {
			t.Errorf("Expected only note 2, got %+v", notes)
		}
	})

	t.Run("Fails When Nothing Decodes", func(t *testing.T) {
		_, err := s.Parse(strings.NewReader("{not: notes}\n"))
		if !errors.Is(err, ErrNoLegacyRecords) {
			t.Errorf("Expected ErrNoLegacyRecords, got %v", err)
		}
	})

	t.Run("Empty Input Is An Empty Collection", func(t *testing.T) {
		notes, err := s.Parse(strings.NewReader(""))
		if err != nil {
			t.Fatal(err)
		}
		if len(notes) != 0 {
			t.Errorf("Expected no notes, got %d", len(notes))
		}
	})
}

func TestSerializerFor(t *testing.T) {
	serializers := DefaultSerializers()
	tests := []struct {
		path   string
		format string
	}{
		{"notes.json", "json"},
		{"backup/NOTES.YAML", "yaml"},
		{"notes.yml", "yaml"},
		{"notes.txt", "legacy"},
		{"notes", "json"},
		{"notes.bak", "json"},
	}
	for _, tc := range tests {
		if got := SerializerFor(tc.path, serializers).Format(); got != tc.format {
			t.Errorf("SerializerFor(%q) = %s, want %s", tc.path, got, tc.format)
		}
	}
}

func TestParseTimestamp(t *testing.T) {
	t.Run("Accepts Zoned Input", func(t *testing.T) {
		ts, err := ParseTimestamp("2024-05-01T12:00:00Z")
		if err != nil {
			t.Fatal(err)
		}
		if !ts.Equal(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)) {
			t.Errorf("Unexpected instant %v", ts)
		}
	})

	t.Run("Rejects Garbage", func(t *testing.T) {
		if _, err := ParseTimestamp("not a date"); err == nil {
			t.Error("Expected error")
		}
	})
}
