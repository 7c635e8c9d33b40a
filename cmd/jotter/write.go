package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/jotter/pkg/store"
)

var (
	writeTitle   string
	writeContent string
	writeTags    []string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a note",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return mutate(func(s *store.Store) error {
			n := s.Create(writeTitle, writeContent, cleanTags(writeTags))
			fmt.Fprintf(cmd.OutOrStdout(), "Note added: %s\n", formatNote(n))
			return nil
		})
	},
}

var editCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Edit a note",
	Long: `Replace the title, content and tags of a note and refresh its timestamp.
Fields whose flag is not given keep their current value.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return mutate(func(s *store.Store) error {
			current, ok := s.Get(id)
			if !ok {
				return notFound(id)
			}

			title, content, tags := current.Title, current.Content, current.Tags
			if cmd.Flags().Changed("title") {
				title = writeTitle
			}
			if cmd.Flags().Changed("content") {
				content = writeContent
			}
			if cmd.Flags().Changed("tag") {
				tags = cleanTags(writeTags)
			}

			if !s.Edit(id, title, content, tags) {
				return notFound(id)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Note %d updated.\n", id)
			return nil
		})
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return mutate(func(s *store.Store) error {
			if !s.Delete(id) {
				return notFound(id)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Note %d deleted.\n", id)
			return nil
		})
	},
}

var toggleCmd = &cobra.Command{
	Use:   "toggle [id]",
	Short: "Toggle the important flag of a note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return mutate(func(s *store.Store) error {
			if !s.ToggleImportant(id) {
				return notFound(id)
			}
			n, _ := s.Get(id)
			fmt.Fprintf(cmd.OutOrStdout(), "Note %d important: %t\n", id, n.Important)
			return nil
		})
	},
}

// cleanTags applies the same trimming as the interactive prompt.
func cleanTags(tags []string) []string {
	out := []string{}
	for _, t := range tags {
		out = append(out, parseTags(t)...)
	}
	return out
}

func init() {
	for _, c := range []*cobra.Command{addCmd, editCmd} {
		c.Flags().StringVar(&writeTitle, "title", "", "Note title")
		c.Flags().StringVar(&writeContent, "content", "", "Note content")
		c.Flags().StringSliceVarP(&writeTags, "tag", "t", nil, "Tag (repeatable or comma separated)")
	}
	addCmd.MarkFlagRequired("title")

	rootCmd.AddCommand(addCmd, editCmd, deleteCmd, toggleCmd)
}
