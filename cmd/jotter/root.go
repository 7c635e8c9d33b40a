package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/jotter/internal/platform"
	"github.com/aretw0/jotter/pkg/store"
)

var (
	verbose    bool
	configFile string
	dataFile   string

	// cfg is resolved once per invocation in PersistentPreRunE.
	cfg *platform.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "jotter",
	Short: "A small note keeper backed by a single file",
	Long: `jotter keeps short notes with tags and an importance flag in one data file.
The data file is written as JSON and read as JSON or the older comma-separated
text format, whichever parses. Export and import use a separate file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := platform.LoadConfig(configFile)
		if err != nil {
			return err
		}
		if dataFile != "" {
			loaded.DataFile = dataFile
		}
		if verbose {
			loaded.Verbose = true
		}
		if err := loaded.Validate(); err != nil {
			return err
		}

		level := slog.LevelInfo
		if loaded.Verbose {
			level = slog.LevelDebug
		}
		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), opts))
		slog.SetDefault(logger)

		cfg = loaded
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default: ./jotter.yaml or ~/.config/jotter/jotter.yaml)")
	rootCmd.PersistentFlags().StringVarP(&dataFile, "file", "f", "", "Data file (overrides data_file)")
}

func openStore() (*store.Store, error) {
	return platform.Open(cfg, slog.Default())
}

// mutate loads the data file, applies fn and saves the store back.
func mutate(fn func(s *store.Store) error) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	if err := fn(s); err != nil {
		return err
	}
	return s.SaveToFile(cfg.DataFile)
}
