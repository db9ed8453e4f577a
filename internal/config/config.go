package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/BurntSushi/toml"
)

// DefaultSourceURL requests every card with the misc_info extension, which
// carries the KONAMI IDs
const DefaultSourceURL = "https://db.ygoprodeck.com/api/v7/cardinfo.php?misc=yes"

// Config represents the application configuration
type Config struct {
	Source  SourceConfig  `toml:"source"`
	Extract ExtractConfig `toml:"extract"`
	Output  OutputConfig  `toml:"output"`
	Log     LogConfig     `toml:"log"`
}

// SourceConfig describes where the card database is downloaded from
type SourceConfig struct {
	URL       string   `toml:"url"`
	Timeout   Duration `toml:"timeout"`
	UserAgent string   `toml:"user_agent"`
}

// ExtractConfig controls KONAMI ID extraction
type ExtractConfig struct {
	IncludeNegativeIDs bool `toml:"include_negative_ids"`
}

// OutputConfig describes the generated header
type OutputConfig struct {
	Path      string `toml:"path"`
	TableName string `toml:"table_name"`
}

// LogConfig controls console logging
type LogConfig struct {
	Level string `toml:"level"`
}

// Duration is a time.Duration that decodes from TOML strings like "30s"
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

var cppIdentifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

var logLevels = map[string]bool{
	"trace": true, "debug": true, "info": true, "warn": true, "error": true, "disabled": true,
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Source: SourceConfig{
			URL:       DefaultSourceURL,
			Timeout:   Duration{30 * time.Second},
			UserAgent: "konamimap",
		},
		Extract: ExtractConfig{
			IncludeNegativeIDs: false,
		},
		Output: OutputConfig{
			Path:      "CardIdMapping.hpp",
			TableName: "card_id_mapping",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate checks if the configuration is usable
func (c *Config) Validate() error {
	if c.Source.URL == "" {
		return fmt.Errorf("source.url must be set")
	}
	if c.Source.Timeout.Duration <= 0 {
		return fmt.Errorf("source.timeout must be positive, got %s", c.Source.Timeout)
	}
	if c.Output.Path == "" {
		return fmt.Errorf("output.path must be set")
	}
	if !cppIdentifier.MatchString(c.Output.TableName) {
		return fmt.Errorf("output.table_name %q is not a valid C++ identifier", c.Output.TableName)
	}
	if !logLevels[c.Log.Level] {
		return fmt.Errorf("unknown log.level %q", c.Log.Level)
	}
	return nil
}

// GetXDGConfigHome returns XDG_CONFIG_HOME or default path
func GetXDGConfigHome() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return xdgConfig
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config")
}

// GetConfigFilePath returns the path to the config file
func GetConfigFilePath() string {
	return filepath.Join(GetXDGConfigHome(), "konamimap", "config.toml")
}

// Load reads the config file at path. An empty path means the default
// location, where a missing file yields the built-in defaults. An explicitly
// given path must exist.
func Load(path string) (*Config, error) {
	config := Default()

	explicit := path != ""
	if !explicit {
		path = GetConfigFilePath()
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if explicit {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return config, nil
	}

	if _, err := toml.DecodeFile(path, config); err != nil {
		return nil, fmt.Errorf("error decoding config file: %v", err)
	}

	return config, nil
}

// WriteDefault creates a config file with the built-in defaults at path.
// An existing file is left untouched.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}

	// Ensure the config directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("error creating config directory: %v", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating config file: %v", err)
	}
	defer file.Close()

	encoder := toml.NewEncoder(file)
	if err := encoder.Encode(Default()); err != nil {
		return fmt.Errorf("error encoding config: %v", err)
	}

	return nil
}
