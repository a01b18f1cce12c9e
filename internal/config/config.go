// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Environment variables that supply defaults for run options
const (
	EnvOutDir   = "SPIDERWEB_OUT_DIR"
	EnvRenderer = "SPIDERWEB_RENDERER"
	EnvLogFile  = "SPIDERWEB_LOG_FILE"
)

// Built-in defaults
const (
	DefaultOutDir         = "."
	DefaultRenderer       = "pdf"
	DefaultBrowserTimeout = 60
)

var validate = validator.New()

// Config represents the run options that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or CLI flags.
type Config struct {
	OutDir         string `json:"out_dir,omitempty"`                                               // Directory for the PDF report
	Renderer       string `json:"renderer,omitempty" validate:"omitempty,oneof=pdf latex browser"` // Report backend
	Template       string `json:"template,omitempty"`                                              // Template override for latex/browser
	Summary        string `json:"summary,omitempty"`                                               // Optional JSON/YAML summary path
	LogFile        string `json:"log_file,omitempty"`                                              // Optional rotated JSON log file
	BrowserTimeout int    `json:"browser_timeout_seconds,omitempty" validate:"gte=0,lte=600"`      // Headless Chrome print timeout
	VerifyPages    bool   `json:"verify_pages,omitempty"`                                          // Check the report has two pages
	Verbose        bool   `json:"verbose,omitempty"`                                               // Debug logging
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Required values are not checked here since defaults fill them after merging.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return fmt.Errorf("config error: '%s' failed '%s' check (got %v)", jsonName(fe.StructField()), fe.Tag(), fe.Value())
		}
		return fmt.Errorf("config error: %w", err)
	}

	if c.Summary != "" {
		switch strings.ToLower(filepath.Ext(c.Summary)) {
		case ".json", ".yaml", ".yml":
		default:
			return fmt.Errorf("config error: 'summary' must end in .json, .yaml or .yml: %s", c.Summary)
		}
	}

	// Validate file paths exist (if specified)
	if c.Template != "" {
		if _, err := os.Stat(c.Template); os.IsNotExist(err) {
			return fmt.Errorf("config error: template file not found: %s", c.Template)
		}
	}

	return nil
}

func jsonName(field string) string {
	switch field {
	case "Renderer":
		return "renderer"
	case "BrowserTimeout":
		return "browser_timeout_seconds"
	default:
		return field
	}
}

// Defaults returns built-in defaults overridden by SPIDERWEB_* environment variables
func Defaults() Config {
	return DefaultsFrom(os.Getenv)
}

// DefaultsFrom is Defaults with an explicit environment lookup
func DefaultsFrom(getenv func(string) string) Config {
	defaults := Config{
		OutDir:         DefaultOutDir,
		Renderer:       DefaultRenderer,
		BrowserTimeout: DefaultBrowserTimeout,
	}
	if v := strings.TrimSpace(getenv(EnvOutDir)); v != "" {
		defaults.OutDir = v
	}
	if v := strings.TrimSpace(getenv(EnvRenderer)); v != "" {
		defaults.Renderer = strings.ToLower(v)
	}
	if v := strings.TrimSpace(getenv(EnvLogFile)); v != "" {
		defaults.LogFile = v
	}
	return defaults
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.OutDir == "" {
		result.OutDir = defaults.OutDir
	}
	if result.Renderer == "" {
		result.Renderer = defaults.Renderer
	}
	if result.Template == "" {
		result.Template = defaults.Template
	}
	if result.Summary == "" {
		result.Summary = defaults.Summary
	}
	if result.LogFile == "" {
		result.LogFile = defaults.LogFile
	}

	// Int fields: use default if zero
	if result.BrowserTimeout == 0 {
		result.BrowserTimeout = defaults.BrowserTimeout
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
