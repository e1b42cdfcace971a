// Package config loads the optional YAML file that supplies default values
// for the command-line flags.
package config

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// EnvPath names the environment variable holding an explicit config path.
const EnvPath = "HTTPFETCH_CONFIG"

// Filenames are tried in order in each searched directory.
var Filenames = []string{
	".httpfetch.yaml",
	".httpfetch.yml",
}

type Config struct {
	Timeout string `yaml:"timeout,omitempty"`
	MaxSize string `yaml:"maxSize,omitempty"`
	Print   string `yaml:"print,omitempty"`
	CAFile  string `yaml:"caFile,omitempty"`
	NoColor *bool  `yaml:"noColor,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Timeout: "30s",
		MaxSize: "128M",
	}
}

// BoolPtr returns a pointer to b.
func BoolPtr(b bool) *bool {
	return &b
}

// GetNoColor returns the no color setting, defaulting to false.
func (c *Config) GetNoColor() bool {
	if c.NoColor == nil {
		return false
	}
	return *c.NoColor
}

// Load reads the file at path, or searches the working directory and then
// the home directory when path is empty. Values absent from the file keep
// their defaults.
func Load(path string) (*Config, error) {
	if path != "" {
		return loadFile(path)
	}

	dirs := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, home)
	}
	return FindAndLoad(dirs...)
}

// FindAndLoad loads the first config file found in dirs. DefaultConfig is
// returned if there is none.
func FindAndLoad(dirs ...string) (*Config, error) {
	for _, dir := range dirs {
		for _, filename := range Filenames {
			path := filepath.Join(dir, filename)
			if _, err := os.Stat(path); err == nil {
				return loadFile(path)
			}
		}
	}
	return DefaultConfig(), nil
}

func loadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading config file '%s'", path)
	}

	var fromFile Config
	if err := yaml.Unmarshal(data, &fromFile); err != nil {
		return nil, errors.Wrapf(err, "parsing config file '%s'", path)
	}
	return DefaultConfig().Merge(&fromFile), nil
}

// Merge returns a copy of c overlaid with the non-zero fields of other.
func (c *Config) Merge(other *Config) *Config {
	result := *c
	if other == nil {
		return &result
	}

	if other.Timeout != "" {
		result.Timeout = other.Timeout
	}
	if other.MaxSize != "" {
		result.MaxSize = other.MaxSize
	}
	if other.Print != "" {
		result.Print = other.Print
	}
	if other.CAFile != "" {
		result.CAFile = other.CAFile
	}
	if other.NoColor != nil {
		result.NoColor = other.NoColor
	}
	return &result
}
