// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-mdmirror/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// IsInCI reports whether a common CI environment variable is set.
func IsInCI() bool {
	return os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""
}

// ForBrowserConnect returns hints for browser launch or connection errors.
// sandboxed is true when Chrome was started with its sandbox enabled.
func ForBrowserConnect(sandboxed bool) string {
	var hints []string

	if sandboxed && (IsInCI() || IsInContainer()) {
		hints = append(hints, "drop --sandbox for Docker/CI")
	}

	if os.Getenv("MDMIRROR_BROWSER_BIN") == "" {
		hints = append(hints, "set MDMIRROR_BROWSER_BIN or --browser-bin to use an installed Chrome")
	}

	hints = append(hints, "run 'mdmirror doctor' to check the environment")
	return formatHints(hints)
}

// ForTimeout returns a hint about increasing timeout for slow operations.
func ForTimeout() string {
	return format("for large documents or slow scripts, use --timeout flag")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config and creating a file in the user config directory.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	marker := string(filepath.Separator) + "mdmirror" + string(filepath.Separator)
	for _, p := range searchedPaths {
		if strings.Contains(filepath.FromSlash(p), marker) {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForSourceNotFound returns hints when the input directory is missing.
func ForSourceNotFound() string {
	return format("-d/--docs must name an existing directory")
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForStyleNotFound returns a hint naming where custom themes are read from.
func ForStyleNotFound(configDir string) string {
	if configDir == "" {
		return ""
	}
	return format("custom themes are read from " + filepath.Join(configDir, "styles", "<name>.css"))
}

// ForCodeTheme returns a hint listing where chroma style names come from.
func ForCodeTheme() string {
	return format("--code-theme takes a chroma style name such as github, monokai or dracula")
}

// ForDiagramServer returns a hint for malformed PlantUML server URLs.
func ForDiagramServer() string {
	return format("use a full URL such as https://www.plantuml.com/plantuml")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
