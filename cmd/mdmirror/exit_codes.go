package main

import (
	"context"
	"errors"
	"os"

	"github.com/alnah/go-mdmirror"
	"github.com/alnah/go-mdmirror/internal/config"
)

// Exit codes for the mdmirror CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Every document converted
	ExitGeneral = 1 // General/unexpected error, interrupted runs
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // Missing input, mirroring or placement failures
	ExitBrowser = 4 // Rendering and Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Interrupted before a category error surfaced.
	if errors.Is(err, context.Canceled) {
		return ExitGeneral
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, mdmirror.ErrConfig) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, ErrUsage) {
		return ExitUsage
	}

	// Rendering and browser errors (exit 4)
	if errors.Is(err, mdmirror.ErrRender) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, mdmirror.ErrIO) ||
		errors.Is(err, mdmirror.ErrDiscovery) ||
		errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) {
		return ExitIO
	}

	return ExitGeneral
}
