package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/jotter/pkg/store"
)

var exportCmd = &cobra.Command{
	Use:   "export [path]",
	Short: "Export notes to the export file (JSON, or YAML for .yaml/.yml)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := transferPath(args)
		s, err := openStore()
		if err != nil {
			return err
		}
		if err := s.ExportToFile(path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Notes exported to %s\n", path)
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import [path]",
	Short: "Replace all notes with the contents of an export file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := transferPath(args)
		return mutate(func(s *store.Store) error {
			if err := s.ImportFromFile(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Notes imported from %s\n", path)
			return nil
		})
	},
}

func transferPath(args []string) string {
	if len(args) == 1 {
		return args[0]
	}
	return cfg.ExportFile
}

func init() {
	rootCmd.AddCommand(exportCmd, importCmd)
}
