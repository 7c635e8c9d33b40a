package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aretw0/jotter/internal/platform"
	"github.com/aretw0/jotter/pkg/store"
)

var initForce bool

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Write a jotter.yaml and an empty data file",
	Long: `Write a jotter.yaml holding the effective configuration into dir (default: the
current directory) and create the data file if it does not exist yet.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}

		path := filepath.Join(dir, platform.ConfigFileName)
		if _, err := os.Stat(path); err == nil && !initForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		} else if err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}

		if err := platform.WriteConfig(path, cfg); err != nil {
			return err
		}

		dataPath := cfg.DataFile
		if !filepath.IsAbs(dataPath) {
			dataPath = filepath.Join(dir, dataPath)
		}
		if _, err := os.Stat(dataPath); errors.Is(err, os.ErrNotExist) {
			if err := store.New().SaveToFile(dataPath); err != nil {
				return err
			}
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Initialized %s (data file %s)\n", path, dataPath)
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing config file")
	rootCmd.AddCommand(initCmd)
}
