package mdmirror

import (
	"errors"
	"fmt"
)

// Error categories. Every sentinel below wraps exactly one of these, so
// callers can branch on the category with errors.Is.
var (
	ErrIO        = errors.New("I/O error")
	ErrDiscovery = errors.New("document discovery failed")
	ErrRender    = errors.New("render failed")
	ErrConfig    = errors.New("invalid configuration")
)

// Configuration errors.
var (
	ErrNoInput            = fmt.Errorf("%w: no input directory specified", ErrConfig)
	ErrSourceNotDir       = fmt.Errorf("%w: input is not a directory", ErrConfig)
	ErrInvalidExtension   = fmt.Errorf("%w: invalid extension", ErrConfig)
	ErrInvalidPageSize    = fmt.Errorf("%w: invalid page size", ErrConfig)
	ErrInvalidOrientation = fmt.Errorf("%w: invalid orientation", ErrConfig)
	ErrInvalidMargin      = fmt.Errorf("%w: invalid margin", ErrConfig)
	ErrInvalidTimeout     = fmt.Errorf("%w: invalid timeout", ErrConfig)
	ErrInvalidSettleDelay = fmt.Errorf("%w: invalid settle delay", ErrConfig)
	ErrInvalidDiagramURL  = fmt.Errorf("%w: invalid diagram server URL", ErrConfig)
	ErrInvalidBrowserArg  = fmt.Errorf("%w: invalid browser argument", ErrConfig)
	ErrStyleNotFound      = fmt.Errorf("%w: preview theme not found", ErrConfig)
	ErrCodeThemeNotFound  = fmt.Errorf("%w: code block theme not found", ErrConfig)
	ErrEngineConfigDir    = fmt.Errorf("%w: engine config directory unusable", ErrConfig)
)

// I/O errors.
var (
	ErrSourceNotFound    = fmt.Errorf("%w: input directory not found", ErrIO)
	ErrMirror            = fmt.Errorf("%w: mirroring source tree", ErrIO)
	ErrScratch           = fmt.Errorf("%w: scratch directory", ErrIO)
	ErrCreateDestination = fmt.Errorf("%w: creating destination directory", ErrIO)
	ErrPlaceArtifact     = fmt.Errorf("%w: placing artifact", ErrIO)
)

// Render errors.
var (
	ErrSessionOpen         = fmt.Errorf("%w: opening render session", ErrRender)
	ErrUnsupportedFileType = fmt.Errorf("%w: unsupported export file type", ErrRender)
	ErrHTMLConversion      = fmt.Errorf("%w: HTML conversion failed", ErrRender)
	ErrBrowserConnect      = fmt.Errorf("%w: failed to connect to browser", ErrRender)
	ErrPageCreate          = fmt.Errorf("%w: failed to create browser page", ErrRender)
	ErrPageLoad            = fmt.Errorf("%w: failed to load page", ErrRender)
	ErrPDFGeneration       = fmt.Errorf("%w: PDF generation failed", ErrRender)
	ErrExport              = fmt.Errorf("%w: writing exported artifact", ErrRender)
)
