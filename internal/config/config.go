// Package config loads chemint settings from an optional YAML file and
// CHEMINT_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const envPrefix = "CHEMINT"

// Detector names
const (
	DetectorGeometric = "geometric"
	DetectorArpeggio  = "arpeggio"
)

// Config is the full runtime configuration
type Config struct {
	Workspace  string         `mapstructure:"workspace"`   // directory of PDB files
	Detector   string         `mapstructure:"detector"`    // geometric or arpeggio
	Cutoff     float64        `mapstructure:"cutoff"`      // Angstrom
	SettingsDB string         `mapstructure:"settings_db"` // sqlite file for category settings
	Arpeggio   ArpeggioConfig `mapstructure:"arpeggio"`
	Log        LogConfig      `mapstructure:"log"`
}

// ArpeggioConfig configures the external arpeggio detector
type ArpeggioConfig struct {
	Command string `mapstructure:"command"` // e.g., "pdbe-arpeggio"
}

// LogConfig configures the zap logger
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"` // stderr, stdout or a file path
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

// setDefaults registers every key so AutomaticEnv can resolve it on Unmarshal
func setDefaults(v *viper.Viper) {
	v.SetDefault("workspace", ".")
	v.SetDefault("detector", DetectorGeometric)
	v.SetDefault("cutoff", 5.0)
	v.SetDefault("settings_db", DefaultSettingsDB())
	v.SetDefault("arpeggio.command", "pdbe-arpeggio")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stderr")
}

// Load reads configPath when given, otherwise the default config file if it
// exists, then applies CHEMINT_* overrides and validates the result
func Load(configPath string) (*Config, error) {
	v := newViper()

	path := configPath
	if path == "" {
		path = DefaultConfigFile()
		if _, err := os.Stat(path); err != nil {
			path = ""
		}
	}
	if path != "" {
		v.SetConfigFile(ExpandHome(path))
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	cfg.Workspace = ExpandHome(cfg.Workspace)
	cfg.SettingsDB = ExpandHome(cfg.SettingsDB)
	cfg.Log.Output = ExpandHome(cfg.Log.Output)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges
func (c *Config) Validate() error {
	var errs []error
	if c.Workspace == "" {
		errs = append(errs, errors.New("workspace is required"))
	}
	switch c.Detector {
	case DetectorGeometric, DetectorArpeggio:
	default:
		errs = append(errs, fmt.Errorf("detector must be %q or %q, got %q", DetectorGeometric, DetectorArpeggio, c.Detector))
	}
	if c.Cutoff <= 0 {
		errs = append(errs, fmt.Errorf("cutoff must be positive, got %g", c.Cutoff))
	}
	if c.Detector == DetectorArpeggio && c.Arpeggio.Command == "" {
		errs = append(errs, errors.New("arpeggio.command is required for the arpeggio detector"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

// ExpandHome replaces a leading ~ with the user home directory
func ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

// DefaultConfigFile is $XDG_CONFIG_HOME/chemint/config.yaml
func DefaultConfigFile() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "chemint", "config.yaml")
}

// DefaultSettingsDB is $XDG_DATA_HOME/chemint/settings.db
func DefaultSettingsDB() string {
	dir := os.Getenv("XDG_DATA_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dir, "chemint", "settings.db")
}
