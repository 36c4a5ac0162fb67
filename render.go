package mdmirror

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"path/filepath"
	"regexp"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
)

// pageTemplate wraps the rendered fragment in a standalone HTML5 page.
// Arguments: title, CSS, body.
const pageTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
<style>%s</style>
</head>
<body>
<div class="markdown-body">
%s
</div>
</body>
</html>`

// firstHeading matches an ATX level-one heading.
var firstHeading = regexp.MustCompile(`(?m)^#[ \t]+(.+?)[ \t#]*$`)

// htmlRenderer turns Markdown into a styled HTML page. It keeps two goldmark
// instances: one that passes raw HTML through (scripts evaluated in the
// browser) and one that drops it.
type htmlRenderer struct {
	safe   goldmark.Markdown
	unsafe goldmark.Markdown
	css    string
}

// newHTMLRenderer builds the goldmark pipelines for the given options.
// css is the already-resolved stylesheet for every page.
func newHTMLRenderer(opts RenderOptions, css string) *htmlRenderer {
	return &htmlRenderer{
		safe:   newMarkdown(opts, false),
		unsafe: newMarkdown(opts, true),
		css:    css,
	}
}

func newMarkdown(opts RenderOptions, allowRaw bool) goldmark.Markdown {
	exts := []goldmark.Extender{
		extension.GFM,      // Tables, strikethrough, autolinks, task lists
		extension.Footnote, // [^1] footnotes
		highlighting.NewHighlighting(
			highlighting.WithStyle(themeName(opts.CodeBlockTheme)),
			highlighting.WithFormatOptions(
				chromahtml.WithClasses(true), // styled by the CSS from codeThemeCSS
			),
		),
	}
	if opts.DiagramServer != "" {
		exts = append(exts, &diagramExtension{server: opts.DiagramServer})
	}

	rendererOpts := []renderer.Option{
		goldmarkhtml.WithHardWraps(),
		goldmarkhtml.WithXHTML(),
	}
	if allowRaw {
		rendererOpts = append(rendererOpts, goldmarkhtml.WithUnsafe())
	}

	return goldmark.New(
		goldmark.WithExtensions(exts...),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(rendererOpts...),
	)
}

// Render converts source to a complete HTML page.
// Goldmark has no context support, so conversion runs in a goroutine and the
// caller stops waiting on cancellation.
func (r *htmlRenderer) Render(ctx context.Context, source []byte, title string, allowRaw bool) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	md := r.safe
	if allowRaw {
		md = r.unsafe
	}

	type result struct {
		html string
		err  error
	}
	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := md.Convert(source, &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %w", ErrHTMLConversion, err)}
			return
		}
		page := fmt.Sprintf(pageTemplate, html.EscapeString(title), sanitizeCSS(r.css), buf.String())
		done <- result{html: page}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-done:
		return res.html, res.err
	}
}

// codeThemeCSS renders the class-based stylesheet for a chroma style.
func codeThemeCSS(name string) (string, error) {
	name = themeName(name)
	style, ok := styles.Registry[name]
	if !ok {
		return "", fmt.Errorf("%w: %q (available: %s)", ErrCodeThemeNotFound, name, strings.Join(styles.Names(), ", "))
	}

	var buf bytes.Buffer
	if err := chromahtml.New(chromahtml.WithClasses(true)).WriteCSS(&buf, style); err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrCodeThemeNotFound, name, err)
	}
	return buf.String(), nil
}

// sanitizeCSS escapes sequences that could break out of a <style> block.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}

// documentTitle returns the first H1 text, or the file name without
// extension when the document has none.
func documentTitle(source []byte, documentPath string) string {
	if m := firstHeading.FindSubmatch(source); m != nil {
		if title := strings.TrimSpace(string(m[1])); title != "" {
			return title
		}
	}
	base := filepath.Base(documentPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
