package config

// Notes:
// - resolveConfigPath is tested through LoadConfig with t.Chdir, so those
//   tests cannot run in parallel with each other.
// - The user config directory branch is covered by SearchPaths only: writing
//   into the real user config dir from a test is not acceptable.

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// ---------------------------------------------------------------------------
// TestDefaultConfig - Defaults are valid and match the engine defaults
// ---------------------------------------------------------------------------

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() error = %v", err)
	}
	if cfg.Input.Dir != "" || cfg.Output.Dir != "" {
		t.Errorf("directories = %q/%q, want empty", cfg.Input.Dir, cfg.Output.Dir)
	}
	if !cfg.Render.PrintBackground || !cfg.Render.EvaluateScripts || !cfg.Browser.NoSandbox {
		t.Errorf("want printBackground, evaluateScripts and noSandbox on: %+v", cfg)
	}
	settle, timeout, err := cfg.Render.Durations()
	if err != nil || settle != 0 || timeout != 30*time.Second {
		t.Errorf("Durations() = %v, %v, %v; want 0, 30s, nil", settle, timeout, err)
	}
}

// ---------------------------------------------------------------------------
// TestValidate - Field limits and value checks
// ---------------------------------------------------------------------------

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"long input dir", func(c *Config) { c.Input.Dir = strings.Repeat("a", MaxPathLength+1) }, ErrFieldTooLong},
		{"long theme", func(c *Config) { c.Render.PreviewTheme = strings.Repeat("t", MaxThemeLength+1) }, ErrFieldTooLong},
		{"long diagram URL", func(c *Config) { c.Render.DiagramServer = "http://" + strings.Repeat("x", MaxURLLength) }, ErrFieldTooLong},
		{"bad settle delay", func(c *Config) { c.Render.SettleDelay = "soon" }, ErrInvalidValue},
		{"negative settle delay", func(c *Config) { c.Render.SettleDelay = "-1s" }, ErrInvalidValue},
		{"zero timeout", func(c *Config) { c.Render.Timeout = "0s" }, ErrInvalidValue},
		{"bad orientation", func(c *Config) { c.Page.Orientation = "diagonal" }, ErrInvalidValue},
		{"long orientation", func(c *Config) { c.Page.Orientation = "upside-down" }, ErrFieldTooLong},
		{"negative margin", func(c *Config) { c.Page.Margin = -1 }, ErrInvalidValue},
		{"browser arg without dash", func(c *Config) { c.Browser.Args = []string{"disable-gpu"} }, ErrInvalidValue},
		{"too many browser args", func(c *Config) { c.Browser.Args = make([]string, MaxBrowserArgs+1) }, ErrInvalidValue},
		{"long browser arg", func(c *Config) { c.Browser.Args = []string{"--" + strings.Repeat("x", MaxBrowserArgLength)} }, ErrFieldTooLong},
		{"valid overrides", func(c *Config) {
			c.Render.SettleDelay = "250ms"
			c.Page.Orientation = "Landscape"
			c.Browser.Args = []string{"--lang=fr"}
		}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateFieldLength(t *testing.T) {
	t.Parallel()

	if err := validateFieldLength("f", "1234567890", 10); err != nil {
		t.Errorf("value at limit: %v", err)
	}
	err := validateFieldLength("test.field", "12345678901", 10)
	if !errors.Is(err, ErrFieldTooLong) {
		t.Fatalf("error = %v, want ErrFieldTooLong", err)
	}
	if !strings.Contains(err.Error(), "test.field") {
		t.Errorf("error %q does not name the field", err)
	}
}

// ---------------------------------------------------------------------------
// TestLoadConfig - YAML and TOML files onto defaults
// ---------------------------------------------------------------------------

const yamlConfig = `
input:
  dir: docs
output:
  dir: build/pdf
render:
  previewTheme: github-dark
  evaluateScripts: false
  settleDelay: 500ms
  diagramServer: https://www.plantuml.com/plantuml
page:
  size: a4
browser:
  args:
    - --lang=fr-FR
`

const tomlConfig = `
[input]
dir = "docs"

[output]
dir = "build/pdf"

[render]
previewTheme = "github-dark"
evaluateScripts = false
settleDelay = "500ms"
diagramServer = "https://www.plantuml.com/plantuml"

[page]
size = "a4"

[browser]
args = ["--lang=fr-FR"]
`

func TestLoadConfig_Formats(t *testing.T) {
	t.Parallel()

	tests := []struct {
		file    string
		content string
	}{
		{"cfg.yaml", yamlConfig},
		{"cfg.yml", yamlConfig},
		{"cfg.toml", tomlConfig},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), tt.file)
			writeFile(t, path, tt.content)

			cfg, err := LoadConfig(path)
			if err != nil {
				t.Fatalf("LoadConfig() error = %v", err)
			}

			if cfg.Input.Dir != "docs" || cfg.Output.Dir != "build/pdf" {
				t.Errorf("dirs = %q/%q", cfg.Input.Dir, cfg.Output.Dir)
			}
			if cfg.Render.PreviewTheme != "github-dark" || cfg.Render.EvaluateScripts {
				t.Errorf("render = %+v", cfg.Render)
			}
			if cfg.Page.Size != "a4" || len(cfg.Browser.Args) != 1 || cfg.Browser.Args[0] != "--lang=fr-FR" {
				t.Errorf("page/browser = %+v / %+v", cfg.Page, cfg.Browser)
			}

			// Keys absent from the file keep their defaults.
			if cfg.Render.CodeBlockTheme != "github" || !cfg.Render.PrintBackground {
				t.Errorf("defaults lost: %+v", cfg.Render)
			}
			if cfg.Page.Orientation != "portrait" || cfg.Page.Margin != 0.5 || !cfg.Browser.NoSandbox {
				t.Errorf("defaults lost: %+v %+v", cfg.Page, cfg.Browser)
			}
		})
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		file    string
		content string
		wantErr error
	}{
		{"unknown yaml key", "c.yaml", "render:\n  colour: red\n", ErrConfigParse},
		{"unknown toml key", "c.toml", "[render]\ncolour = \"red\"\n", ErrConfigParse},
		{"malformed yaml", "c.yaml", "input: [unclosed\n", ErrConfigParse},
		{"malformed toml", "c.toml", "[input\n", ErrConfigParse},
		{"empty file", "c.yaml", "", ErrEmptyData},
		{"unsupported extension", "c.json", `{"input":{}}`, ErrUnsupportedFormat},
		{"invalid value", "c.yaml", "render:\n  timeout: forever\n", ErrInvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), tt.file)
			writeFile(t, path, tt.content)

			_, err := LoadConfig(path)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("LoadConfig() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfig_TooLarge(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "big.yaml")
	writeFile(t, path, "# "+strings.Repeat("x", MaxInputSize))

	if _, err := LoadConfig(path); !errors.Is(err, ErrInputTooLarge) {
		t.Errorf("LoadConfig() error = %v, want ErrInputTooLarge", err)
	}
}

func TestLoadConfig_MissingPath(t *testing.T) {
	t.Parallel()

	_, err := LoadConfig(filepath.Join(t.TempDir(), "none.yaml"))
	if !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("LoadConfig() error = %v, want ErrConfigNotFound", err)
	}
}

func TestLoadConfig_EmptyName(t *testing.T) {
	t.Parallel()

	if _, err := LoadConfig(""); !errors.Is(err, ErrEmptyConfigName) {
		t.Errorf("LoadConfig(\"\") error = %v, want ErrEmptyConfigName", err)
	}
}

// ---------------------------------------------------------------------------
// TestLoadConfig_ByName - Lookup in the working directory
// ---------------------------------------------------------------------------

func TestLoadConfig_ByName(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	writeFile(t, filepath.Join(dir, "team.toml"), "[page]\nsize = \"legal\"\n")

	cfg, err := LoadConfig("team")
	if err != nil {
		t.Fatalf("LoadConfig(team) error = %v", err)
	}
	if cfg.Page.Size != "legal" {
		t.Errorf("Page.Size = %q, want legal", cfg.Page.Size)
	}

	// .yaml wins over .toml when both exist.
	writeFile(t, filepath.Join(dir, "team.yaml"), "page:\n  size: a4\n")
	cfg, err = LoadConfig("team")
	if err != nil {
		t.Fatalf("LoadConfig(team) error = %v", err)
	}
	if cfg.Page.Size != "a4" {
		t.Errorf("Page.Size = %q, want a4 from team.yaml", cfg.Page.Size)
	}
}

func TestLoadConfig_NameNotFound(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := LoadConfig("missing-config-name")
	if !errors.Is(err, ErrConfigNotFound) {
		t.Fatalf("LoadConfig() error = %v, want ErrConfigNotFound", err)
	}
	if !strings.Contains(err.Error(), "missing-config-name.toml") {
		t.Errorf("error %q does not list tried paths", err)
	}
}

func TestSearchPaths(t *testing.T) {
	t.Parallel()

	paths := SearchPaths("x")
	if len(paths) < 3 {
		t.Fatalf("SearchPaths() = %v, want at least 3 entries", paths)
	}
	if paths[0] != "x.yaml" || paths[1] != "x.yml" || paths[2] != "x.toml" {
		t.Errorf("local paths = %v, want x.yaml, x.yml, x.toml", paths[:3])
	}
	for _, p := range paths[3:] {
		if !strings.Contains(p, filepath.Join(AppName, "x.")) {
			t.Errorf("user path %q not under %s", p, AppName)
		}
	}
}

// ---------------------------------------------------------------------------
// TestEncode - Round trip of the default config
// ---------------------------------------------------------------------------

func TestEncode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		file   string
		encode func(*Config) ([]byte, error)
	}{
		{"default.yaml", EncodeYAML},
		{"default.toml", EncodeTOML},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			t.Parallel()

			want := DefaultConfig()
			want.Input.Dir = "docs"
			want.Browser.Args = []string{"--disable-gpu"}
			data, err := tt.encode(want)
			if err != nil {
				t.Fatalf("encode error = %v", err)
			}

			path := filepath.Join(t.TempDir(), tt.file)
			writeFile(t, path, string(data))
			got, err := LoadConfig(path)
			if err != nil {
				t.Fatalf("LoadConfig() error = %v\n%s", err, data)
			}
			if got.Input.Dir != "docs" || got.Render.Timeout != "30s" || got.Browser.Args[0] != "--disable-gpu" {
				t.Errorf("round trip mismatch: %+v", got)
			}
		})
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile(%s): %v", path, err)
	}
}
