package mdmirror

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/alnah/go-mdmirror/internal/assets"
	"github.com/alnah/go-mdmirror/internal/fileutil"
)

// UserStyleFile is the stylesheet in ConfigDir appended to every document.
const UserStyleFile = "style.css"

// Engine is the conversion service: it renders one document at a time to a
// PDF next to the source. It is configured once by NewEngine and then only
// read. Close must be called to release the browser.
type Engine struct {
	opts     RenderOptions
	renderer *htmlRenderer
	exporter pageExporter
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// withExporter replaces the browser, for tests.
func withExporter(e pageExporter) EngineOption {
	return func(engine *Engine) {
		engine.exporter = e
	}
}

// NewEngine validates opts, prepares ConfigDir and resolves every stylesheet.
// The browser itself starts on the first export.
func NewEngine(opts RenderOptions, options ...EngineOption) (*Engine, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	opts.BrowserArgs = slices.Clone(opts.BrowserArgs)
	if opts.ConfigDir == "" {
		opts.ConfigDir = DefaultConfigDir()
	}
	if err := os.MkdirAll(opts.ConfigDir, fileutil.DirPermissions); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEngineConfigDir, err)
	}

	css, err := loadStylesheet(opts)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		opts:     opts,
		renderer: newHTMLRenderer(opts, css),
	}
	for _, o := range options {
		o(e)
	}
	if e.exporter == nil {
		e.exporter = newRodBrowser(opts)
	}
	return e, nil
}

// loadStylesheet concatenates the preview theme, the code theme and the
// user stylesheet, in that order.
func loadStylesheet(opts RenderOptions) (string, error) {
	resolver, err := assets.NewAssetResolver(opts.ConfigDir)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrEngineConfigDir, err)
	}

	name := themeName(opts.PreviewTheme)
	theme, err := resolver.LoadStyle(name)
	if err != nil {
		if errors.Is(err, assets.ErrStyleNotFound) || errors.Is(err, assets.ErrInvalidAssetName) {
			return "", fmt.Errorf("%w: %q (available: %s)", ErrStyleNotFound, name, strings.Join(resolver.StyleNames(), ", "))
		}
		return "", fmt.Errorf("%w: %w", ErrEngineConfigDir, err)
	}

	code, err := codeThemeCSS(opts.CodeBlockTheme)
	if err != nil {
		return "", err
	}

	parts := []string{theme, code}
	user, err := os.ReadFile(filepath.Join(opts.ConfigDir, UserStyleFile)) // #nosec G304 -- engine-owned directory
	switch {
	case err == nil:
		parts = append(parts, string(user))
	case !errors.Is(err, os.ErrNotExist):
		return "", fmt.Errorf("%w: %w", ErrEngineConfigDir, err)
	}
	return strings.Join(parts, "\n"), nil
}

// Options returns a copy of the engine's options.
func (e *Engine) Options() RenderOptions {
	opts := e.opts
	opts.BrowserArgs = slices.Clone(e.opts.BrowserArgs)
	return opts
}

// OpenSession binds the engine to one document. The document's directory is
// the session's project directory, so relative links and images resolve
// from there.
func (e *Engine) OpenSession(documentPath string) (*Session, error) {
	abs, err := filepath.Abs(documentPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSessionOpen, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSessionOpen, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s is not a regular file", ErrSessionOpen, abs)
	}
	return &Session{
		engine:       e,
		documentPath: abs,
		projectDir:   filepath.Dir(abs),
	}, nil
}

// Convert renders documentPath to a PDF written beside it and returns the
// artifact path.
func (e *Engine) Convert(ctx context.Context, documentPath string) (artifact string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: internal error: %v", ErrRender, r)
		}
	}()

	session, err := e.OpenSession(documentPath)
	if err != nil {
		return "", err
	}
	return session.Export(ctx, ExportRequest{
		FileType:        FileTypePDF,
		EvaluateScripts: e.opts.EvaluateScripts,
	})
}

// Close releases the browser. Safe to call more than once.
func (e *Engine) Close() error {
	if e.exporter == nil {
		return nil
	}
	return e.exporter.Close()
}

// Compile-time interface check.
var _ DocumentConverter = (*Engine)(nil)
