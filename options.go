package mdmirror

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Extensions handled by the pipeline.
const (
	DocumentExt = ".md"
	ArtifactExt = ".pdf"

	// DestinationSuffix is appended to the input directory name when no
	// output directory is given.
	DestinationSuffix = "-pdf"
)

// FileTypePDF is the only export type the engine produces.
const FileTypePDF = "pdf"

// Rendering defaults, matching the engine settings the tool always shipped with.
const (
	DefaultPreviewTheme   = "github-light"
	DefaultCodeBlockTheme = "github"
	DefaultTimeout        = 30 * time.Second
	DefaultConfigDirName  = ".mdmirror"
)

// Page size constants.
const (
	PageSizeLetter = "letter"
	PageSizeA4     = "a4"
	PageSizeLegal  = "legal"
)

// Orientation constants.
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// Margin bounds in inches.
const (
	MinMargin     = 0.25
	MaxMargin     = 3.0
	DefaultMargin = 0.5
)

// pageDimensions maps page sizes to portrait width and height in inches.
var pageDimensions = map[string][2]float64{
	PageSizeLetter: {8.5, 11},
	PageSizeA4:     {8.27, 11.69},
	PageSizeLegal:  {8.5, 14},
}

// PageSettings configures PDF page dimensions.
type PageSettings struct {
	Size        string  // "letter", "a4", "legal"
	Orientation string  // "portrait", "landscape"
	Margin      float64 // inches, applied to all sides
}

// DefaultPageSettings returns page settings with default values.
func DefaultPageSettings() PageSettings {
	return PageSettings{
		Size:        PageSizeLetter,
		Orientation: OrientationPortrait,
		Margin:      DefaultMargin,
	}
}

// Validate checks that page settings are valid. Comparison is case-insensitive.
func (p PageSettings) Validate() error {
	if _, ok := pageDimensions[strings.ToLower(p.Size)]; !ok {
		return fmt.Errorf("%w: %q", ErrInvalidPageSize, p.Size)
	}
	switch strings.ToLower(p.Orientation) {
	case OrientationPortrait, OrientationLandscape:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidOrientation, p.Orientation)
	}
	if p.Margin < MinMargin || p.Margin > MaxMargin {
		return fmt.Errorf("%w: %.2f (must be between %.2f and %.2f)", ErrInvalidMargin, p.Margin, MinMargin, MaxMargin)
	}
	return nil
}

// dimensions returns width and height in inches, swapped for landscape.
func (p PageSettings) dimensions() (width, height float64) {
	d := pageDimensions[strings.ToLower(p.Size)]
	if strings.EqualFold(p.Orientation, OrientationLandscape) {
		return d[1], d[0]
	}
	return d[0], d[1]
}

// RenderOptions is the immutable options bundle handed to the engine at
// startup. Every conversion reads it; nothing mutates it after NewEngine.
type RenderOptions struct {
	// ConfigDir holds engine-owned files: styles/<theme>.css overrides and an
	// optional style.css appended to every document.
	ConfigDir string

	PreviewTheme   string // embedded or ConfigDir/styles theme name
	CodeBlockTheme string // chroma style name

	PrintBackground bool
	EvaluateScripts bool          // keep raw HTML/scripts and wait for idle
	SettleDelay     time.Duration // extra wait after the page is ready
	DiagramServer   string        // PlantUML server base URL, empty = disabled

	BrowserBin  string   // empty = rod lookup/download
	NoSandbox   bool     // pass --no-sandbox to Chrome
	BrowserArgs []string // extra "--name=value" Chrome flags

	Timeout time.Duration // page load budget
	Page    PageSettings
}

// DefaultRenderOptions returns the options the CLI starts from.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		ConfigDir:       DefaultConfigDir(),
		PreviewTheme:    DefaultPreviewTheme,
		CodeBlockTheme:  DefaultCodeBlockTheme,
		PrintBackground: true,
		EvaluateScripts: true,
		NoSandbox:       true,
		Timeout:         DefaultTimeout,
		Page:            DefaultPageSettings(),
	}
}

// DefaultConfigDir returns the engine configuration directory under the
// system temp directory.
func DefaultConfigDir() string {
	return filepath.Join(os.TempDir(), DefaultConfigDirName)
}

// Validate checks option values without touching the filesystem.
func (o RenderOptions) Validate() error {
	if err := o.Page.Validate(); err != nil {
		return err
	}
	if o.Timeout <= 0 {
		return fmt.Errorf("%w: %v (must be positive)", ErrInvalidTimeout, o.Timeout)
	}
	if o.SettleDelay < 0 {
		return fmt.Errorf("%w: %v (must be >= 0)", ErrInvalidSettleDelay, o.SettleDelay)
	}
	if o.DiagramServer != "" {
		u, err := url.Parse(o.DiagramServer)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("%w: %q", ErrInvalidDiagramURL, o.DiagramServer)
		}
	}
	for _, arg := range o.BrowserArgs {
		if _, _, err := splitBrowserArg(arg); err != nil {
			return err
		}
	}
	return nil
}

// splitBrowserArg parses "--name" or "--name=value" into its parts.
func splitBrowserArg(arg string) (name, value string, err error) {
	trimmed := strings.TrimLeft(arg, "-")
	if trimmed == "" || trimmed == arg {
		return "", "", fmt.Errorf("%w: %q (expected --name or --name=value)", ErrInvalidBrowserArg, arg)
	}
	name, value, _ = strings.Cut(trimmed, "=")
	if name == "" {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidBrowserArg, arg)
	}
	return name, value, nil
}

// themeName strips an optional .css suffix so "github-light.css" and
// "github-light" select the same theme.
func themeName(name string) string {
	return strings.TrimSuffix(strings.TrimSpace(name), ".css")
}

// NormalizeExtension returns ext with exactly one leading dot.
func NormalizeExtension(ext string) (string, error) {
	trimmed := strings.TrimPrefix(ext, ".")
	if trimmed == "" || strings.ContainsAny(trimmed, "/\\.\x00") {
		return "", fmt.Errorf("%w: %q", ErrInvalidExtension, ext)
	}
	return "." + trimmed, nil
}
