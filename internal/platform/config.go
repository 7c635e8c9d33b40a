package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/jotter/pkg/adapters/fs"
)

const (
	// ConfigFileName is the file written by WriteConfig and searched by LoadConfig.
	ConfigFileName = "jotter.yaml"

	// DefaultDataFile is the file used by save/load (format auto-detected on load).
	DefaultDataFile = "notes.txt"
	// DefaultExportFile is the file used by export/import.
	DefaultExportFile = "notes.json"

	// EnvPrefix prefixes every environment override (JOTTER_DATA_FILE, ...).
	EnvPrefix = "JOTTER"
)

// Config is the application configuration.
type Config struct {
	DataFile   string `json:"data_file" yaml:"data_file" mapstructure:"data_file"`
	ExportFile string `json:"export_file" yaml:"export_file" mapstructure:"export_file"`
	Autosave   bool   `json:"autosave" yaml:"autosave" mapstructure:"autosave"`
	Verbose    bool   `json:"verbose" yaml:"verbose" mapstructure:"verbose"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() *Config {
	return &Config{
		DataFile:   DefaultDataFile,
		ExportFile: DefaultExportFile,
		Autosave:   true,
		Verbose:    false,
	}
}

// LoadConfig reads jotter.yaml and JOTTER_* environment variables on top of the defaults.
// When configFile is empty the file is searched in the working directory, the
// nearest parent holding one (see FindRoot) and the user config directory; a missing file is not an error. An explicit configFile must exist.
func LoadConfig(configFile string) (*Config, error) {
	defaults := DefaultConfig()

	v := viper.New()
	v.SetDefault("data_file", defaults.DataFile)
	v.SetDefault("export_file", defaults.ExportFile)
	v.SetDefault("autosave", defaults.Autosave)
	v.SetDefault("verbose", defaults.Verbose)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("jotter")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if root, err := FindRoot("."); err == nil {
			v.AddConfigPath(root)
		}
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			v.AddConfigPath(filepath.Join(xdg, "jotter"))
		}
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "jotter"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DataFile) == "" {
		return errors.New("config: data_file is required")
	}
	if strings.TrimSpace(c.ExportFile) == "" {
		return errors.New("config: export_file is required")
	}
	if filepath.Clean(c.DataFile) == filepath.Clean(c.ExportFile) {
		return fmt.Errorf("config: data_file and export_file must differ (both %q)", c.DataFile)
	}
	return nil
}

// WriteConfig stores cfg as YAML at path, replacing any existing file.
func WriteConfig(path string, cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return fs.WriteFile(path, data)
}
