package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/quocvuong92/osint-shell/internal/constants"
)

// Environment variable names
const (
	EnvAPIURL    = "OSINT_API_URL"
	EnvSession   = "OSINT_SESSION"
	EnvLogLevel  = "OSINT_LOG_LEVEL"
	EnvOutputDir = "OSINT_OUTPUT_DIR"
)

// Defaults - re-exported from constants for convenience
const (
	DefaultAPIURL   = constants.DefaultAPIURL
	DefaultLogLevel = constants.DefaultLogLevel
)

// Errors
var (
	ErrTargetRequired   = errors.New("target username is required")
	ErrInvalidAPIURL    = errors.New("API URL must start with http:// or https://")
	ErrOutputNotDir     = errors.New("output path is not a directory")
	ErrInvalidLogFormat = errors.New("invalid log format. Use 'text' or 'json'")
)

// Config holds the application configuration
type Config struct {
	// Target username the shell starts with
	Target string

	// One-shot command; empty selects interactive mode
	Command string

	// Initial output modes
	FileOutput bool
	JSONDump   bool

	// Directory for exported files and downloads
	OutputDir string

	// Clear the persisted session before starting
	ClearCookies bool

	// Backend settings
	APIURL       string
	SessionToken string
	NoCache      bool

	// Diagnostics and presentation
	Verbose   bool
	LogLevel  string
	LogFormat string // "text" or "json"
	Render    bool
	NoColor   bool
}

// NewConfig creates a new Config with defaults
func NewConfig() *Config {
	return &Config{}
}

// OneShot reports whether a single command was supplied on the command line.
func (c *Config) OneShot() bool {
	return c.Command != ""
}

// Validate loads the lower-priority sources and checks the result.
// Priority: flags > environment (.env included) > config file > defaults.
func (c *Config) Validate() error {
	// Values already in the environment win over .env entries.
	_ = godotenv.Load()

	fileConfig, err := LoadConfigFile()
	if err != nil {
		return err
	}

	if c.APIURL == "" {
		c.APIURL = os.Getenv(EnvAPIURL)
	}
	if c.SessionToken == "" {
		c.SessionToken = strings.TrimSpace(os.Getenv(EnvSession))
	}
	if c.LogLevel == "" {
		c.LogLevel = os.Getenv(EnvLogLevel)
	}
	if c.OutputDir == "" {
		c.OutputDir = os.Getenv(EnvOutputDir)
	}

	c.ApplyFileConfig(fileConfig)

	c.Target = strings.TrimSpace(c.Target)
	if c.Target == "" {
		return ErrTargetRequired
	}

	if c.APIURL == "" {
		c.APIURL = DefaultAPIURL
	}
	c.APIURL = strings.TrimSuffix(c.APIURL, "/")
	if !strings.HasPrefix(c.APIURL, "http://") && !strings.HasPrefix(c.APIURL, "https://") {
		return ErrInvalidAPIURL
	}

	if c.Verbose {
		c.LogLevel = "debug"
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}

	switch c.LogFormat {
	case "":
		c.LogFormat = "text"
	case "text", "json":
	default:
		return ErrInvalidLogFormat
	}

	return c.resolveOutputDir()
}

// resolveOutputDir makes OutputDir absolute, defaulting to the working directory.
func (c *Config) resolveOutputDir() error {
	if c.OutputDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("could not determine working directory: %w", err)
		}
		c.OutputDir = wd
	}

	abs, err := filepath.Abs(c.OutputDir)
	if err != nil {
		return fmt.Errorf("invalid output path %s: %w", c.OutputDir, err)
	}
	c.OutputDir = abs

	info, err := os.Stat(abs)
	if errors.Is(err, os.ErrNotExist) {
		if err := os.MkdirAll(abs, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to access output directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrOutputNotDir, abs)
	}
	return nil
}

// DataDir returns the per-user data directory ($XDG_DATA_HOME/osint-shell).
func DataDir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("could not determine data directory: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, constants.AppName), nil
}

// CacheDir returns the per-user cache directory.
func CacheDir() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("could not determine cache directory: %w", err)
	}
	return filepath.Join(dir, constants.AppName), nil
}
