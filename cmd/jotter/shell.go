package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/aretw0/jotter/pkg/store"
)

// isTerminal is a test seam for term.IsTerminal.
var isTerminal = term.IsTerminal

const menu = `Choose an option:
1) Add
2) List
3) Delete
4) Edit
5) Search
6) Filter by Tag
7) Toggle Important
8) Sort by Title
9) Sort by Date
10) Save
11) Export
12) Import
13) Exit`

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start the interactive menu",
	Long: `Start the interactive menu. Notes are loaded from the data file at start and,
when autosave is enabled, saved back on exit or end of input.
Prompts are printed only when stdin is a terminal, so the shell can be scripted.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}

		prompts := false
		if f, ok := cmd.InOrStdin().(*os.File); ok {
			prompts = isTerminal(int(f.Fd()))
		}

		sh := &shell{
			store:      s,
			in:         bufio.NewReader(cmd.InOrStdin()),
			out:        cmd.OutOrStdout(),
			dataFile:   cfg.DataFile,
			exportFile: cfg.ExportFile,
			autosave:   cfg.Autosave,
			prompts:    prompts,
			logger:     slog.Default(),
		}
		return sh.run()
	},
}

func init() {
	rootCmd.AddCommand(shellCmd)
}

// shell is the numbered menu loop. It only turns console lines into typed
// arguments for the store and prints the results.
type shell struct {
	store      *store.Store
	in         *bufio.Reader
	out        io.Writer
	dataFile   string
	exportFile string
	autosave   bool
	prompts    bool
	logger     *slog.Logger
}

// run reads commands until "13"/"exit" or end of input. Errors from single
// actions are reported to the user and never end the loop; only the final
// autosave can fail the shell.
func (sh *shell) run() error {
	fmt.Fprintln(sh.out, "Welcome to jotter")
	if sh.prompts {
		fmt.Fprintln(sh.out, menu)
	}

	for {
		line, err := sh.ask("> ")
		if err != nil {
			if !errors.Is(err, io.EOF) {
				sh.logger.Error("failed to read input", "error", err)
			}
			return sh.exit()
		}

		choice := strings.ToLower(line)
		if choice == "" {
			continue
		}

		switch choice {
		case "1", "add":
			err = sh.add()
		case "2", "list", "l":
			sh.list()
		case "3", "delete", "rm":
			err = sh.delete()
		case "4", "edit":
			err = sh.edit()
		case "5", "search":
			err = sh.search()
		case "6", "tag":
			err = sh.filterByTag()
		case "7", "toggle":
			err = sh.toggle()
		case "8", "title":
			fmt.Fprintln(sh.out, "Notes sorted by title:")
			printNotes(sh.out, sh.store.SortByTitle())
		case "9", "date":
			fmt.Fprintln(sh.out, "Notes sorted by date:")
			printNotes(sh.out, sh.store.SortByDate())
		case "10", "save":
			sh.save()
		case "11", "export":
			sh.transfer("export", sh.store.ExportToFile)
		case "12", "import":
			sh.transfer("import", sh.store.ImportFromFile)
		case "13", "exit", "quit":
			return sh.exit()
		case "help", "menu", "?":
			fmt.Fprintln(sh.out, menu)
		default:
			fmt.Fprintln(sh.out, "Invalid option.")
		}

		if err != nil {
			if errors.Is(err, io.EOF) {
				return sh.exit()
			}
			sh.logger.Error("failed to read input", "error", err)
		}
	}
}

// ask prints prompt (on a terminal) and reads one trimmed line.
// A final line without newline is returned; io.EOF only when nothing was read.
func (sh *shell) ask(prompt string) (string, error) {
	if sh.prompts {
		fmt.Fprint(sh.out, prompt)
	}
	line, err := sh.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (sh *shell) askID(prompt string) (int, bool, error) {
	raw, err := sh.ask(prompt)
	if err != nil {
		return 0, false, err
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		fmt.Fprintf(sh.out, "Invalid ID %q.\n", raw)
		return 0, false, nil
	}
	return id, true, nil
}

func (sh *shell) askNote() (title, content string, tags []string, err error) {
	if title, err = sh.ask("Enter title: "); err != nil {
		return
	}
	if content, err = sh.ask("Enter content: "); err != nil {
		return
	}
	var raw string
	if raw, err = sh.ask("Enter tags (comma separated): "); err != nil {
		return
	}
	return title, content, parseTags(raw), nil
}

func (sh *shell) add() error {
	title, content, tags, err := sh.askNote()
	if err != nil {
		return err
	}
	n := sh.store.Create(title, content, tags)
	fmt.Fprintf(sh.out, "Note added: %s\n", formatNote(n))
	return nil
}

func (sh *shell) list() {
	fmt.Fprintln(sh.out, "All Notes:")
	printNotes(sh.out, sh.store.List())
}

func (sh *shell) delete() error {
	id, ok, err := sh.askID("Enter note ID to delete: ")
	if err != nil || !ok {
		return err
	}
	if sh.store.Delete(id) {
		fmt.Fprintln(sh.out, "Note deleted.")
	} else {
		fmt.Fprintln(sh.out, "Note not found.")
	}
	return nil
}

func (sh *shell) edit() error {
	id, ok, err := sh.askID("Enter note ID to edit: ")
	if err != nil || !ok {
		return err
	}
	if _, exists := sh.store.Get(id); !exists {
		fmt.Fprintln(sh.out, "Note not found.")
		return nil
	}
	title, content, tags, err := sh.askNote()
	if err != nil {
		return err
	}
	if sh.store.Edit(id, title, content, tags) {
		fmt.Fprintln(sh.out, "Note updated.")
	} else {
		fmt.Fprintln(sh.out, "Note not found.")
	}
	return nil
}

func (sh *shell) search() error {
	keyword, err := sh.ask("Enter keyword to search: ")
	if err != nil {
		return err
	}
	printNotes(sh.out, sh.store.Search(keyword))
	return nil
}

func (sh *shell) filterByTag() error {
	tag, err := sh.ask("Enter tag to filter: ")
	if err != nil {
		return err
	}
	results := sh.store.FilterByTag(tag)
	if len(results) == 0 {
		fmt.Fprintf(sh.out, "No notes found with tag '%s'.\n", tag)
		return nil
	}
	printNotes(sh.out, results)
	return nil
}

func (sh *shell) toggle() error {
	id, ok, err := sh.askID("Enter note ID to toggle important: ")
	if err != nil || !ok {
		return err
	}
	if sh.store.ToggleImportant(id) {
		fmt.Fprintln(sh.out, "Note importance toggled.")
	} else {
		fmt.Fprintln(sh.out, "Note not found.")
	}
	return nil
}

func (sh *shell) save() bool {
	if err := sh.store.SaveToFile(sh.dataFile); err != nil {
		sh.logger.Error("failed to save notes", "path", sh.dataFile, "error", err)
		fmt.Fprintf(sh.out, "Could not save notes to %s.\n", sh.dataFile)
		return false
	}
	fmt.Fprintf(sh.out, "Notes saved to %s\n", sh.dataFile)
	return true
}

func (sh *shell) transfer(verb string, op func(path string) error) {
	if err := op(sh.exportFile); err != nil {
		if verb == "import" && errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(sh.out, "No notes at %s, nothing to import.\n", sh.exportFile)
			return
		}
		sh.logger.Error("transfer failed", "op", verb, "path", sh.exportFile, "error", err)
		fmt.Fprintf(sh.out, "Could not %s notes: %v\n", verb, err)
		return
	}
	past := map[string]string{"export": "exported to", "import": "imported from"}[verb]
	fmt.Fprintf(sh.out, "Notes %s %s\n", past, sh.exportFile)
}

func (sh *shell) exit() error {
	if sh.autosave && !sh.save() {
		return fmt.Errorf("autosave to %s failed", sh.dataFile)
	}
	fmt.Fprintln(sh.out, "Goodbye!")
	return nil
}
