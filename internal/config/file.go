package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/quocvuong92/osint-shell/internal/constants"
)

// ConfigFileName is the name of the config file
const ConfigFileName = "config.yaml"

// FileConfig represents the configuration file structure
type FileConfig struct {
	APIURL    string `yaml:"api_url,omitempty"`
	OutputDir string `yaml:"output_dir,omitempty"`
	LogLevel  string `yaml:"log_level,omitempty"`
	LogFormat string `yaml:"log_format,omitempty"` // "text", "json"

	// Default flags
	Defaults *DefaultsConfig `yaml:"defaults,omitempty"`
}

// DefaultsConfig holds default flag values
type DefaultsConfig struct {
	File    bool `yaml:"file,omitempty"`
	JSON    bool `yaml:"json,omitempty"`
	Render  bool `yaml:"render,omitempty"`
	NoCache bool `yaml:"no_cache,omitempty"`
	NoColor bool `yaml:"no_color,omitempty"`
}

// GetConfigPaths returns the paths to check for config files (in order of priority)
func GetConfigPaths() []string {
	var paths []string

	// 1. Current directory
	paths = append(paths, filepath.Join(".", "."+constants.AppName, ConfigFileName))

	// 2. User config directory
	if configDir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(configDir, constants.AppName, ConfigFileName))
	}

	// 3. Home directory
	if homeDir, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(homeDir, ".config", constants.AppName, ConfigFileName))
	}

	return paths
}

// LoadConfigFile loads the first config file found. A missing file is not an
// error; an unreadable or malformed one is.
func LoadConfigFile() (*FileConfig, error) {
	for _, path := range GetConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			return loadConfigFromPath(path)
		}
	}
	return &FileConfig{}, nil
}

// loadConfigFromPath loads config from a specific path
func loadConfigFromPath(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return &cfg, nil
}

// ApplyFileConfig applies file configuration to the main Config.
// File config has lower priority than environment variables and CLI flags.
func (c *Config) ApplyFileConfig(fc *FileConfig) {
	if fc == nil {
		return
	}

	if c.APIURL == "" && fc.APIURL != "" {
		c.APIURL = fc.APIURL
	}
	if c.OutputDir == "" && fc.OutputDir != "" {
		c.OutputDir = fc.OutputDir
	}
	if c.LogLevel == "" && fc.LogLevel != "" {
		c.LogLevel = fc.LogLevel
	}
	if c.LogFormat == "" && fc.LogFormat != "" {
		c.LogFormat = fc.LogFormat
	}

	// Boolean flags cannot distinguish "unset" from "false", so the file
	// can only switch them on.
	if fc.Defaults != nil {
		if fc.Defaults.File {
			c.FileOutput = true
		}
		if fc.Defaults.JSON {
			c.JSONDump = true
		}
		if fc.Defaults.Render {
			c.Render = true
		}
		if fc.Defaults.NoCache {
			c.NoCache = true
		}
		if fc.Defaults.NoColor {
			c.NoColor = true
		}
	}
}
