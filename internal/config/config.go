// Package config loads mdmirror configuration files. YAML (.yaml, .yml) and
// TOML (.toml) are accepted; unknown keys are rejected in both.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-mdmirror/internal/fileutil"
)

// AppName is the directory name under the user config dir.
const AppName = "mdmirror"

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxPathLength        = 4096 // PATH_MAX on Linux
	MaxThemeLength       = 64   // "github-light.css"
	MaxURLLength         = 2048 // Browser limit
	MaxDurationLength    = 20   // "1m30s"
	MaxPageSizeLength    = 10   // "letter", "a4", "legal"
	MaxOrientationLength = 10   // "portrait", "landscape"
	MaxBrowserArgs       = 32
	MaxBrowserArgLength  = 256
)

// Config holds all file-configurable settings.
type Config struct {
	Input   InputConfig   `yaml:"input" toml:"input"`
	Output  OutputConfig  `yaml:"output" toml:"output"`
	Engine  EngineConfig  `yaml:"engine" toml:"engine"`
	Render  RenderConfig  `yaml:"render" toml:"render"`
	Page    PageConfig    `yaml:"page" toml:"page"`
	Browser BrowserConfig `yaml:"browser" toml:"browser"`
}

// InputConfig defines the source tree.
type InputConfig struct {
	Dir string `yaml:"dir" toml:"dir"` // Empty = must be given on the command line
}

// OutputConfig defines the destination tree.
type OutputConfig struct {
	Dir string `yaml:"dir" toml:"dir"` // Empty = "<input>-pdf"
}

// EngineConfig locates the engine's own files.
type EngineConfig struct {
	ConfigDir string `yaml:"configDir" toml:"configDir"` // Empty = $TMPDIR/.mdmirror
}

// RenderConfig defines how documents are rendered.
type RenderConfig struct {
	PreviewTheme    string `yaml:"previewTheme" toml:"previewTheme"`
	CodeBlockTheme  string `yaml:"codeBlockTheme" toml:"codeBlockTheme"`
	PrintBackground bool   `yaml:"printBackground" toml:"printBackground"`
	EvaluateScripts bool   `yaml:"evaluateScripts" toml:"evaluateScripts"`
	SettleDelay     string `yaml:"settleDelay" toml:"settleDelay"` // Go duration, e.g. "500ms"
	DiagramServer   string `yaml:"diagramServer" toml:"diagramServer"`
	Timeout         string `yaml:"timeout" toml:"timeout"` // Go duration, e.g. "30s"
}

// PageConfig defines PDF page settings.
type PageConfig struct {
	Size        string  `yaml:"size" toml:"size"`               // "letter", "a4", "legal"
	Orientation string  `yaml:"orientation" toml:"orientation"` // "portrait", "landscape"
	Margin      float64 `yaml:"margin" toml:"margin"`           // inches
}

// BrowserConfig defines the headless browser.
type BrowserConfig struct {
	Bin       string   `yaml:"bin" toml:"bin"` // Empty = auto-detect or download
	NoSandbox bool     `yaml:"noSandbox" toml:"noSandbox"`
	Args      []string `yaml:"args" toml:"args"` // "--name" or "--name=value"
}

// DefaultConfig returns the settings used when no file overrides them.
func DefaultConfig() *Config {
	return &Config{
		Render: RenderConfig{
			PreviewTheme:    "github-light",
			CodeBlockTheme:  "github",
			PrintBackground: true,
			EvaluateScripts: true,
			Timeout:         "30s",
		},
		Page: PageConfig{
			Size:        "letter",
			Orientation: "portrait",
			Margin:      0.5,
		},
		Browser: BrowserConfig{
			NoSandbox: true,
		},
	}
}

// Validate checks field lengths, durations and enumerations.
// Called automatically by LoadConfig.
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"input.dir", c.Input.Dir, MaxPathLength},
		{"output.dir", c.Output.Dir, MaxPathLength},
		{"engine.configDir", c.Engine.ConfigDir, MaxPathLength},
		{"render.previewTheme", c.Render.PreviewTheme, MaxThemeLength},
		{"render.codeBlockTheme", c.Render.CodeBlockTheme, MaxThemeLength},
		{"render.settleDelay", c.Render.SettleDelay, MaxDurationLength},
		{"render.diagramServer", c.Render.DiagramServer, MaxURLLength},
		{"render.timeout", c.Render.Timeout, MaxDurationLength},
		{"page.size", c.Page.Size, MaxPageSizeLength},
		{"page.orientation", c.Page.Orientation, MaxOrientationLength},
		{"browser.bin", c.Browser.Bin, MaxPathLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if len(c.Browser.Args) > MaxBrowserArgs {
		return fmt.Errorf("%w: browser.args (%d entries, max %d)", ErrInvalidValue, len(c.Browser.Args), MaxBrowserArgs)
	}
	for i, arg := range c.Browser.Args {
		if err := validateFieldLength(fmt.Sprintf("browser.args[%d]", i), arg, MaxBrowserArgLength); err != nil {
			return err
		}
		if !strings.HasPrefix(arg, "-") {
			return fmt.Errorf("%w: browser.args[%d]: %q must start with --", ErrInvalidValue, i, arg)
		}
	}

	if c.Page.Orientation != "" {
		switch strings.ToLower(c.Page.Orientation) {
		case "portrait", "landscape":
			// valid
		default:
			return fmt.Errorf("%w: page.orientation: %q (must be portrait or landscape)", ErrInvalidValue, c.Page.Orientation)
		}
	}
	if c.Page.Margin < 0 {
		return fmt.Errorf("%w: page.margin: must not be negative, got %.2f", ErrInvalidValue, c.Page.Margin)
	}

	if _, _, err := c.Render.Durations(); err != nil {
		return err
	}
	return nil
}

// Durations parses SettleDelay and Timeout. Empty strings yield zero.
func (r RenderConfig) Durations() (settle, timeout time.Duration, err error) {
	if settle, err = parseDuration("render.settleDelay", r.SettleDelay); err != nil {
		return 0, 0, err
	}
	if timeout, err = parseDuration("render.timeout", r.Timeout); err != nil {
		return 0, 0, err
	}
	if r.Timeout != "" && timeout <= 0 {
		return 0, 0, fmt.Errorf("%w: render.timeout: must be positive, got %s", ErrInvalidValue, r.Timeout)
	}
	return settle, timeout, nil
}

func parseDuration(field, value string) (time.Duration, error) {
	if value == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %q is not a duration", ErrInvalidValue, field, value)
	}
	if d < 0 {
		return 0, fmt.Errorf("%w: %s: must not be negative, got %s", ErrInvalidValue, field, value)
	}
	return d, nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in SearchPaths.
// Values absent from the file keep their DefaultConfig value.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := decode(configPath, data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrConfigParse, configPath, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchPaths lists, in lookup order, the files a config name resolves to:
// the current directory first, then the user config directory, each with
// every supported extension.
func SearchPaths(name string) []string {
	paths := make([]string, 0, len(extensions)*2)
	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, AppName, name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing file from SearchPaths.
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
