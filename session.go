package mdmirror

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-mdmirror/internal/fileutil"
)

// ExportRequest selects the output of Session.Export.
type ExportRequest struct {
	FileType string // only FileTypePDF is supported

	// EvaluateScripts keeps raw HTML in the page and lets its JavaScript run
	// in the browser before printing. Fenced code blocks are never executed;
	// they are highlighted as text.
	EvaluateScripts bool
}

// Session is an engine bound to a single document.
type Session struct {
	engine       *Engine
	documentPath string
	projectDir   string
}

// DocumentPath returns the absolute path of the bound document.
func (s *Session) DocumentPath() string { return s.documentPath }

// ProjectDir returns the directory relative references resolve against.
func (s *Session) ProjectDir() string { return s.projectDir }

// Export renders the document and writes the artifact beside it, replacing
// the document's extension. An existing artifact is overwritten.
func (s *Session) Export(ctx context.Context, req ExportRequest) (string, error) {
	if req.FileType != FileTypePDF {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFileType, req.FileType)
	}

	source, err := os.ReadFile(s.documentPath) // #nosec G304 -- path from OpenSession
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrSessionOpen, err)
	}

	title := documentTitle(source, s.documentPath)
	page, err := s.engine.renderer.Render(ctx, source, title, req.EvaluateScripts)
	if err != nil {
		return "", err
	}

	// The intermediate page lives beside the document so relative
	// references resolve exactly as they do from the Markdown file.
	htmlPath := filepath.Join(s.projectDir, "."+stem(s.documentPath)+".mdmirror.html")
	if err := os.WriteFile(htmlPath, []byte(page), fileutil.FilePermissions); err != nil {
		return "", fmt.Errorf("%w: %w", ErrExport, err)
	}
	defer func() { _ = os.Remove(htmlPath) }()

	opts := s.engine.opts
	pdf, err := s.engine.exporter.PrintToPDF(ctx, htmlPath, printOptions{
		Page:            opts.Page,
		PrintBackground: opts.PrintBackground,
		EvaluateScripts: req.EvaluateScripts,
		SettleDelay:     opts.SettleDelay,
		Timeout:         opts.Timeout,
	})
	if err != nil {
		return "", err
	}

	artifact := filepath.Join(s.projectDir, stem(s.documentPath)+ArtifactExt)
	if err := os.WriteFile(artifact, pdf, fileutil.FilePermissions); err != nil {
		return "", fmt.Errorf("%w: %w", ErrExport, err)
	}
	return artifact, nil
}

// stem returns the base name of path without its extension.
func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
