package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var statusTree bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the configuration and store state as JSON",
	Long: `Print the configuration and store state as JSON.
With --tree the store is printed as a Mermaid diagram instead.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}

		if statusTree {
			fmt.Fprint(cmd.OutOrStdout(), s.Diagram(cfg.DataFile))
			return nil
		}

		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(map[string]any{
			"config":           cfg,
			s.ComponentType(): s.State(),
		})
	},
}

func init() {
	statusCmd.Flags().BoolVar(&statusTree, "tree", false, "Print the store as a Mermaid diagram")
	rootCmd.AddCommand(statusCmd)
}
