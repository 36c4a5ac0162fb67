package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/go-rod/rod/lib/launcher"

	"github.com/alnah/go-mdmirror"
	"github.com/alnah/go-mdmirror/internal/fileutil"
)

// Doctor statuses.
const (
	statusReady    = "ready"
	statusWarnings = "warnings"
	statusErrors   = "errors"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string     `json:"status"` // "ready", "warnings", "errors"
	Chrome   chromeInfo `json:"chrome"`
	Env      envInfo    `json:"environment"`
	System   systemInfo `json:"system"`
	Warnings []string   `json:"warnings,omitempty"`
	Errors   []string   `json:"errors,omitempty"`
}

// chromeInfo holds Chrome/Chromium detection results.
type chromeInfo struct {
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
	Sandbox bool   `json:"sandbox"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
	Sandbox       string `json:"mdmirror_sandbox"`
	BrowserBin    string `json:"mdmirror_browser_bin"`
}

// systemInfo holds system check results.
type systemInfo struct {
	TempDir              string `json:"temp_dir"`
	TempWritable         bool   `json:"temp_writable"`
	EngineConfigDir      string `json:"engine_config_dir"`
	EngineConfigWritable bool   `json:"engine_config_writable"`
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(args []string, env *Environment) int {
	jsonOutput := false
	for _, arg := range args {
		switch arg {
		case "--json":
			jsonOutput = true
		case "-h", "--help":
			printDoctorUsage(env.Stdout)
			return ExitSuccess
		}
	}

	result := runDoctor(env.Getenv)

	if jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == statusErrors {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor(getenv func(string) string) *doctorResult {
	result := &doctorResult{
		Status: statusReady,
		Env: envInfo{
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			Sandbox:    getenv("MDMIRROR_SANDBOX"),
			BrowserBin: getenv("MDMIRROR_BROWSER_BIN"),
		},
	}

	checkChrome(result)
	checkEnvironment(result, getenv)
	checkSystem(result, getenv("MDMIRROR_ENGINE_CONFIG"))
	result.Status = finalStatus(result)

	return result
}

// finalStatus derives the overall status from collected findings.
func finalStatus(r *doctorResult) string {
	switch {
	case len(r.Errors) > 0:
		return statusErrors
	case len(r.Warnings) > 0:
		return statusWarnings
	default:
		return statusReady
	}
}

// checkChrome detects Chrome/Chromium installation.
func checkChrome(result *doctorResult) {
	// The sandbox is off unless MDMIRROR_SANDBOX enables it.
	if sb := parseEnvBool(result.Env.Sandbox); sb != nil {
		result.Chrome.Sandbox = *sb
	}

	chromePath := result.Env.BrowserBin
	if chromePath == "" {
		var found bool
		chromePath, found = launcher.LookPath()
		if !found {
			result.Warnings = append(result.Warnings,
				"Chrome/Chromium not found; rod will download a browser on first use. Set MDMIRROR_BROWSER_BIN to use an installed one")
			return
		}
	}

	if !fileutil.FileExists(chromePath) {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Chrome not found at %s", chromePath))
		return
	}

	result.Chrome.Found = true
	result.Chrome.Path = chromePath

	cmd := exec.Command(chromePath, "--version") // #nosec G204 -- path comes from the user or rod's lookup
	out, err := cmd.Output()
	if err == nil {
		result.Chrome.Version = strings.TrimSpace(string(out))
	} else {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Could not get Chrome version: %v", err))
	}
}

// checkEnvironment detects container and CI environments.
func checkEnvironment(result *doctorResult, getenv func(string) string) {
	result.Env.Container, result.Env.ContainerHint = isContainer(getenv)

	ciVars := []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}
	for _, v := range ciVars {
		if getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}

	if (result.Env.Container || result.Env.CI) && result.Chrome.Sandbox {
		result.Warnings = append(result.Warnings,
			"Container/CI detected with the Chrome sandbox enabled. Unset MDMIRROR_SANDBOX or drop --sandbox")
	}
}

// isContainer detects if running in a container environment.
// Returns (isContainer, hint) where hint indicates which signal was detected.
func isContainer(getenv func(string) string) (bool, string) {
	if getenv("MDMIRROR_CONTAINER") == "1" {
		return true, "MDMIRROR_CONTAINER=1"
	}
	if fileutil.FileExists("/.dockerenv") {
		return true, "/.dockerenv"
	}
	if v := getenv("container"); v != "" {
		return true, "container=" + v
	}
	if getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// checkSystem verifies the scratch and engine config directories are usable.
// An empty engineConfigDir checks the default location.
func checkSystem(result *doctorResult, engineConfigDir string) {
	result.System.TempDir = os.TempDir()
	if fileutil.IsWritableDir(result.System.TempDir) {
		result.System.TempWritable = true
	} else {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Temp directory not writable: %s", result.System.TempDir))
	}

	if engineConfigDir == "" {
		engineConfigDir = mdmirror.DefaultConfigDir()
	}
	result.System.EngineConfigDir = engineConfigDir
	if err := os.MkdirAll(engineConfigDir, fileutil.DirPermissions); err == nil && fileutil.IsWritableDir(engineConfigDir) {
		result.System.EngineConfigWritable = true
	} else {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Engine config directory not usable: %s", engineConfigDir))
	}
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "mdmirror doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Chrome/Chromium")
	if r.Chrome.Found {
		fmt.Fprintf(w, "  [OK] Found at %s\n", r.Chrome.Path)
		if r.Chrome.Version != "" {
			fmt.Fprintf(w, "  [OK] Version: %s\n", r.Chrome.Version)
		}
	} else {
		fmt.Fprintln(w, "  [WARN] Not found locally")
	}
	if r.Chrome.Sandbox {
		fmt.Fprintln(w, "  [OK] Sandbox: enabled (MDMIRROR_SANDBOX)")
	} else {
		fmt.Fprintln(w, "  [OK] Sandbox: disabled (default)")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		fmt.Fprintf(w, "  [OK] Container: detected (%s)\n", r.Env.ContainerHint)
	}
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "System")
	printCheck(w, r.System.TempWritable, "Temp directory", r.System.TempDir)
	printCheck(w, r.System.EngineConfigWritable, "Engine config directory", r.System.EngineConfigDir)
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case statusReady:
		fmt.Fprintln(w, "Status: Ready to convert")
	case statusWarnings:
		fmt.Fprintln(w, "Status: Ready with warnings")
	case statusErrors:
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}

func printCheck(w io.Writer, ok bool, label, path string) {
	if ok {
		fmt.Fprintf(w, "  [OK] %s: %s (writable)\n", label, path)
		return
	}
	fmt.Fprintf(w, "  [ERROR] %s: %s (not writable)\n", label, path)
}
