package main

// Notes:
// - runMain is exercised with a fake converter; no browser is started.
// - Tests that reach runConvert use an injected Getenv, so none of them
//   depend on the real process environment and all can run in parallel.
// - doctor is covered in doctor_test.go; runMain only checks dispatch.

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestIsCommand - Command name matching
// ---------------------------------------------------------------------------

func TestIsCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		arg  string
		want bool
	}{
		{"convert", true},
		{"config", true},
		{"doctor", true},
		{"version", true},
		{"help", true},
		{"Convert", false},
		{"-d", false},
		{"docs", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			t.Parallel()
			if got := isCommand(tt.arg); got != tt.want {
				t.Errorf("isCommand(%q) = %v, want %v", tt.arg, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestHasVerboseFlag - Early verbose detection for maxprocs logging
// ---------------------------------------------------------------------------

func TestHasVerboseFlag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want bool
	}{
		{"empty", nil, false},
		{"short", []string{"-d", "docs", "-v"}, true},
		{"long", []string{"convert", "--verbose"}, true},
		{"after terminator", []string{"--", "-v"}, false},
		{"quiet only", []string{"-q"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := hasVerboseFlag(tt.args); got != tt.want {
				t.Errorf("hasVerboseFlag(%v) = %v, want %v", tt.args, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRunMain - Dispatch and exit codes
// ---------------------------------------------------------------------------

func TestRunMain(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "missing")

	tests := []struct {
		name         string
		args         []string
		wantCode     int
		wantInStdout string
		wantInStderr string
	}{
		{
			name:         "version",
			args:         []string{"mdmirror", "version"},
			wantCode:     ExitSuccess,
			wantInStdout: "mdmirror " + Version,
		},
		{
			name:         "help",
			args:         []string{"mdmirror", "help"},
			wantCode:     ExitSuccess,
			wantInStdout: "Usage: mdmirror",
		},
		{
			name:         "help convert",
			args:         []string{"mdmirror", "help", "convert"},
			wantCode:     ExitSuccess,
			wantInStdout: "--docs",
		},
		{
			name:         "help unknown",
			args:         []string{"mdmirror", "help", "nope"},
			wantCode:     ExitUsage,
			wantInStderr: "Unknown command: nope",
		},
		{
			name:         "unknown command",
			args:         []string{"mdmirror", "explode"},
			wantCode:     ExitUsage,
			wantInStderr: "unknown command: explode",
		},
		{
			name:         "no arguments means no input",
			args:         []string{"mdmirror"},
			wantCode:     ExitUsage,
			wantInStderr: "no input directory specified",
		},
		{
			name:         "missing input directory",
			args:         []string{"mdmirror", "-d", missing},
			wantCode:     ExitIO,
			wantInStderr: "input directory not found",
		},
		{
			name:         "bad flag",
			args:         []string{"mdmirror", "--no-such-flag"},
			wantCode:     ExitUsage,
			wantInStderr: "unknown flag",
		},
		{
			name:     "convert help",
			args:     []string{"mdmirror", "convert", "--help"},
			wantCode: ExitSuccess,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv(nil)
			code := runMain(tt.args, env.Environment)

			if code != tt.wantCode {
				t.Errorf("runMain() = %d, want %d\nstderr: %s", code, tt.wantCode, env.stderr.String())
			}
			if tt.wantInStdout != "" && !strings.Contains(env.stdout.String(), tt.wantInStdout) {
				t.Errorf("stdout = %q, want substring %q", env.stdout.String(), tt.wantInStdout)
			}
			if tt.wantInStderr != "" && !strings.Contains(env.stderr.String(), tt.wantInStderr) {
				t.Errorf("stderr = %q, want substring %q", env.stderr.String(), tt.wantInStderr)
			}
			if env.conv.calls != 0 {
				t.Errorf("converter called %d times, want 0", env.conv.calls)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRunMain_MissingInputConvertsNothing - No output tree for a bad input
// ---------------------------------------------------------------------------

func TestRunMain_MissingInputConvertsNothing(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	missing := filepath.Join(root, "docs")
	out := filepath.Join(root, "out")

	env := newTestEnv(nil)
	code := runMain([]string{"mdmirror", "-d", missing, "-o", out}, env.Environment)

	if code == ExitSuccess {
		t.Fatal("runMain() succeeded for a missing input directory")
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Errorf("output directory created for a failed run: %v", err)
	}
	if !strings.Contains(env.stderr.String(), "hint:") {
		t.Errorf("stderr should carry a hint, got %q", env.stderr.String())
	}
}

// ---------------------------------------------------------------------------
// TestRunMain_FlagsWithoutCommand - Flags alone run convert
// ---------------------------------------------------------------------------

func TestRunMain_FlagsWithoutCommand(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	docs := filepath.Join(root, "docs")
	writeDocs(t, docs, map[string]string{"a.md": "# A"})

	env := newTestEnv(nil)
	if code := runMain([]string{"mdmirror", "-d", docs}, env.Environment); code != ExitSuccess {
		t.Fatalf("runMain() = %d, stderr: %s", code, env.stderr.String())
	}
	if _, err := os.Stat(filepath.Join(root, "docs-pdf", "a.pdf")); err != nil {
		t.Errorf("default destination artifact missing: %v", err)
	}
	if !env.conv.closed {
		t.Error("converter not closed")
	}
}
