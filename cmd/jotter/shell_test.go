package main

import (
	"bufio"
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/jotter/pkg/store"
)

func newTestShell(t *testing.T, input string) (*shell, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	out := &bytes.Buffer{}
	return &shell{
		store:      store.New(),
		in:         bufio.NewReader(strings.NewReader(input)),
		out:        out,
		dataFile:   filepath.Join(dir, "notes.txt"),
		exportFile: filepath.Join(dir, "notes.json"),
		autosave:   true,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, out
}

func script(lines ...string) string {
	return strings.Join(lines, "\n") + "\n"
}

func TestShell_MenuFlow(t *testing.T) {
	sh, out := newTestShell(t, script(
		"1", "Shopping", "Milk, Bread", "home, errands",
		"1", "Ideas", "Build an app", "",
		"5", "shop",
		"6", "home",
		"6", "nothing",
		"7", "1",
		"8",
		"3", "abc",
		"3", "99",
		"4", "99",
		"13",
	))

	require.NoError(t, sh.run())
	got := out.String()

	assert.Contains(t, got, "Note added: 1: Shopping - Milk, Bread (Tags: home, errands) [Important: false]")
	assert.Contains(t, got, "Note added: 2: Ideas - Build an app (Tags: ) [Important: false]")
	assert.Contains(t, got, "No notes found with tag 'nothing'.")
	assert.Contains(t, got, "Note importance toggled.")
	assert.Contains(t, got, `Invalid ID "abc".`)
	assert.Contains(t, got, "Note not found.")
	assert.Contains(t, got, "Notes saved to "+sh.dataFile)
	assert.True(t, strings.HasSuffix(got, "Goodbye!\n"))

	sorted := got[strings.Index(got, "Notes sorted by title:"):]
	assert.Less(t, strings.Index(sorted, "2: Ideas"), strings.Index(sorted, "1: Shopping"))

	reloaded := store.New()
	require.NoError(t, reloaded.LoadFromFile(sh.dataFile))
	require.Equal(t, 2, reloaded.Len())
	n, _ := reloaded.Get(1)
	assert.True(t, n.Important)
	assert.Equal(t, []string{"home", "errands"}, n.Tags)
}

func TestShell_EditAndDelete(t *testing.T) {
	sh, out := newTestShell(t, script(
		"add", "Old", "old body", "a",
		"edit", "1", "New", "new body", "b, c",
		"delete", "1",
		"list",
		"exit",
	))

	require.NoError(t, sh.run())
	got := out.String()
	assert.Contains(t, got, "Note updated.")
	assert.Contains(t, got, "Note deleted.")
	assert.Contains(t, got, "All Notes:\nNo notes found.")
	assert.Equal(t, 0, sh.store.Len())
	assert.Equal(t, 2, sh.store.NextID())
}

func TestShell_ExportImport(t *testing.T) {
	sh, out := newTestShell(t, script(
		"1", "Keep", "me", "",
		"11",
		"3", "1",
		"12",
		"2",
		"13",
	))

	require.NoError(t, sh.run())
	got := out.String()
	assert.Contains(t, got, "Notes exported to "+sh.exportFile)
	assert.Contains(t, got, "Notes imported from "+sh.exportFile)
	assert.Equal(t, 1, sh.store.Len())
	_, ok := sh.store.Get(1)
	assert.True(t, ok)
}

func TestShell_ImportMissingFile(t *testing.T) {
	sh, out := newTestShell(t, script("12", "2", "13"))

	require.NoError(t, sh.run())
	got := out.String()
	assert.Contains(t, got, "No notes at "+sh.exportFile+", nothing to import.")
	assert.NotContains(t, got, "Could not import notes")
	assert.Contains(t, got, "No notes found.")
}

func TestShell_ImportFailureKeepsRunning(t *testing.T) {
	sh, out := newTestShell(t, script("12", "2", "13"))
	require.NoError(t, os.WriteFile(sh.exportFile, []byte("not json"), 0644))

	require.NoError(t, sh.run())
	got := out.String()
	assert.Contains(t, got, "Could not import notes")
	assert.Contains(t, got, "No notes found.")
}

func TestShell_EOFAutosaves(t *testing.T) {
	sh, out := newTestShell(t, "1\nTitle\n")

	require.NoError(t, sh.run())
	assert.Contains(t, out.String(), "Goodbye!")
	assert.Equal(t, 0, sh.store.Len(), "an interrupted add creates nothing")

	_, err := os.Stat(sh.dataFile)
	assert.NoError(t, err)
}

func TestShell_NoAutosave(t *testing.T) {
	sh, out := newTestShell(t, script("1", "a", "b", "", "bogus", "13"))
	sh.autosave = false

	require.NoError(t, sh.run())
	assert.Contains(t, out.String(), "Invalid option.")
	assert.NotContains(t, out.String(), "Notes saved")

	_, err := os.Stat(sh.dataFile)
	assert.True(t, os.IsNotExist(err))
}

func TestShell_AutosaveFailure(t *testing.T) {
	sh, _ := newTestShell(t, script("13"))
	sh.dataFile = filepath.Join(t.TempDir(), "missing", "notes.txt")

	assert.Error(t, sh.run())
}

func TestShell_PromptsOnlyWhenInteractive(t *testing.T) {
	sh, out := newTestShell(t, script("13"))
	sh.prompts = true

	require.NoError(t, sh.run())
	assert.Contains(t, out.String(), "Choose an option:")
	assert.Contains(t, out.String(), "> ")
}

func TestParseTags(t *testing.T) {
	assert.Equal(t, []string{}, parseTags(""))
	assert.Equal(t, []string{"a", "b c"}, parseTags(" a , ,b c,"))
}
