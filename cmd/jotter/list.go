package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/jotter/pkg/core"
)

var (
	listJSON   bool
	filterTag  string
	filterGlob string
	listSort   string
	searchJSON bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes",
	Long: `List notes in insertion order, or sorted by title or date.
--tag keeps notes carrying the exact tag; --tag-glob matches tags against a
glob pattern where ** spans slash-separated levels (e.g. work/**).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}

		var notes []core.Note
		switch {
		case filterTag != "":
			notes = s.FilterByTag(filterTag)
		case filterGlob != "":
			if notes, err = s.MatchTags(filterGlob); err != nil {
				return err
			}
		case listSort == "title":
			notes = s.SortByTitle()
		case listSort == "date":
			notes = s.SortByDate()
		case listSort == "":
			notes = s.List()
		default:
			return fmt.Errorf("unknown sort %q (want title or date)", listSort)
		}

		if listJSON {
			return writeJSON(cmd.OutOrStdout(), notes)
		}
		printNotes(cmd.OutOrStdout(), notes)
		return nil
	},
}

var searchCmd = &cobra.Command{
	Use:   "search [keyword]",
	Short: "Find notes whose title contains a keyword (case-insensitive)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}

		keyword := ""
		if len(args) == 1 {
			keyword = args[0]
		}
		notes := s.Search(keyword)

		if searchJSON {
			return writeJSON(cmd.OutOrStdout(), notes)
		}
		printNotes(cmd.OutOrStdout(), notes)
		return nil
	},
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().StringVar(&filterTag, "tag", "", "Filter notes by exact tag")
	listCmd.Flags().StringVar(&filterGlob, "tag-glob", "", "Filter notes by tag glob pattern")
	listCmd.Flags().StringVar(&listSort, "sort", "", "Sort by title or date")
	listCmd.MarkFlagsMutuallyExclusive("tag", "tag-glob", "sort")

	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "Output in JSON format")

	rootCmd.AddCommand(listCmd, searchCmd)
}
