package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alnah/go-mdmirror/internal/config"
)

// envPrefix marks variables the CLI reads.
const envPrefix = "MDMIRROR_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring a config file.
type envConfig struct {
	// Tier 1 - Essential
	ConfigPath string // MDMIRROR_CONFIG: config file name or path
	InputDir   string // MDMIRROR_INPUT_DIR: input directory
	OutputDir  string // MDMIRROR_OUTPUT_DIR: output directory
	Timeout    string // MDMIRROR_TIMEOUT: page load timeout

	// Tier 2 - Rendering
	EngineConfig  string // MDMIRROR_ENGINE_CONFIG: engine config directory
	Theme         string // MDMIRROR_THEME: preview theme
	CodeTheme     string // MDMIRROR_CODE_THEME: chroma style
	SettleDelay   string // MDMIRROR_SETTLE_DELAY: extra wait after load
	DiagramServer string // MDMIRROR_DIAGRAM_SERVER: PlantUML server URL
	PageSize      string // MDMIRROR_PAGE_SIZE: letter, a4, legal

	// Tier 3 - Browser
	BrowserBin string // MDMIRROR_BROWSER_BIN: Chrome executable
	Sandbox    *bool  // MDMIRROR_SANDBOX: keep the Chrome sandbox
	NoScripts  *bool  // MDMIRROR_NO_SCRIPTS: disable page scripts
}

// knownEnvVars lists valid MDMIRROR_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	// Tier 1
	"MDMIRROR_CONFIG":     true,
	"MDMIRROR_INPUT_DIR":  true,
	"MDMIRROR_OUTPUT_DIR": true,
	"MDMIRROR_TIMEOUT":    true,
	// Tier 2
	"MDMIRROR_ENGINE_CONFIG":  true,
	"MDMIRROR_THEME":          true,
	"MDMIRROR_CODE_THEME":     true,
	"MDMIRROR_SETTLE_DELAY":   true,
	"MDMIRROR_DIAGRAM_SERVER": true,
	"MDMIRROR_PAGE_SIZE":      true,
	// Tier 3
	"MDMIRROR_BROWSER_BIN": true,
	"MDMIRROR_SANDBOX":     true,
	"MDMIRROR_NO_SCRIPTS":  true,
}

// loadEnvConfig reads configuration through getenv.
// Unparseable booleans are ignored, like unset ones.
func loadEnvConfig(getenv func(string) string) *envConfig {
	return &envConfig{
		ConfigPath:    getenv("MDMIRROR_CONFIG"),
		InputDir:      getenv("MDMIRROR_INPUT_DIR"),
		OutputDir:     getenv("MDMIRROR_OUTPUT_DIR"),
		Timeout:       getenv("MDMIRROR_TIMEOUT"),
		EngineConfig:  getenv("MDMIRROR_ENGINE_CONFIG"),
		Theme:         getenv("MDMIRROR_THEME"),
		CodeTheme:     getenv("MDMIRROR_CODE_THEME"),
		SettleDelay:   getenv("MDMIRROR_SETTLE_DELAY"),
		DiagramServer: getenv("MDMIRROR_DIAGRAM_SERVER"),
		PageSize:      getenv("MDMIRROR_PAGE_SIZE"),
		BrowserBin:    getenv("MDMIRROR_BROWSER_BIN"),
		Sandbox:       parseEnvBool(getenv("MDMIRROR_SANDBOX")),
		NoScripts:     parseEnvBool(getenv("MDMIRROR_NO_SCRIPTS")),
	}
}

func parseEnvBool(s string) *bool {
	if s == "" {
		return nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return nil
	}
	return &b
}

// warnUnknownEnvVars writes a warning for each unrecognized MDMIRROR_* variable.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	for _, kv := range environ {
		if !strings.HasPrefix(kv, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(kv, "=")
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig overwrites config values with every set variable.
// Flags are merged afterwards, giving: CLI flags > env vars > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	setString(&cfg.Input.Dir, env.InputDir)
	setString(&cfg.Output.Dir, env.OutputDir)
	setString(&cfg.Render.Timeout, env.Timeout)

	setString(&cfg.Engine.ConfigDir, env.EngineConfig)
	setString(&cfg.Render.PreviewTheme, env.Theme)
	setString(&cfg.Render.CodeBlockTheme, env.CodeTheme)
	setString(&cfg.Render.SettleDelay, env.SettleDelay)
	setString(&cfg.Render.DiagramServer, env.DiagramServer)
	setString(&cfg.Page.Size, env.PageSize)

	setString(&cfg.Browser.Bin, env.BrowserBin)
	if env.Sandbox != nil {
		cfg.Browser.NoSandbox = !*env.Sandbox
	}
	if env.NoScripts != nil {
		cfg.Render.EvaluateScripts = !*env.NoScripts
	}
}

// setString assigns v to dst when v is non-empty.
func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
