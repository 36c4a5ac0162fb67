package mdmirror

import (
	"bytes"
	"compress/flate"
	"encoding/base64"
	"fmt"
	"html"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// plantumlAlphabet is PlantUML's URL-safe base64 variant.
const plantumlAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz-_"

var plantumlEncoding = base64.NewEncoding(plantumlAlphabet).WithPadding(base64.NoPadding)

// diagramLanguages are fence info strings rendered through the diagram server.
var diagramLanguages = map[string]bool{
	"plantuml": true,
	"puml":     true,
}

// KindDiagram is the AST kind of a fenced block replaced by a server-rendered image.
var KindDiagram = ast.NewNodeKind("Diagram")

// diagramNode holds the raw PlantUML source of one fenced block.
type diagramNode struct {
	ast.BaseBlock
	source string
}

func (n *diagramNode) Kind() ast.NodeKind { return KindDiagram }

func (n *diagramNode) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"Source": n.source}, nil)
}

// diagramTransformer swaps diagram fences for diagramNodes after parsing.
type diagramTransformer struct{}

func (t *diagramTransformer) Transform(doc *ast.Document, reader text.Reader, _ parser.Context) {
	source := reader.Source()

	var fences []*ast.FencedCodeBlock
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if fence, ok := n.(*ast.FencedCodeBlock); ok {
			if diagramLanguages[strings.ToLower(string(fence.Language(source)))] {
				fences = append(fences, fence)
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	for _, fence := range fences {
		var buf bytes.Buffer
		lines := fence.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			buf.Write(seg.Value(source))
		}
		parent := fence.Parent()
		parent.ReplaceChild(parent, fence, &diagramNode{source: buf.String()})
	}
}

// diagramRenderer writes an <img> pointing at the diagram server.
type diagramRenderer struct {
	server string
}

func (r *diagramRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindDiagram, r.render)
}

func (r *diagramRenderer) render(w util.BufWriter, _ []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	node, ok := n.(*diagramNode)
	if !ok {
		return ast.WalkStop, fmt.Errorf("unexpected node %T", n)
	}
	encoded, err := encodePlantUML(node.source)
	if err != nil {
		return ast.WalkStop, err
	}
	src := r.server + "/svg/" + encoded
	_, _ = fmt.Fprintf(w, "<p class=\"diagram\"><img src=\"%s\" alt=\"diagram\" /></p>\n", html.EscapeString(src))
	return ast.WalkSkipChildren, nil
}

// diagramExtension enables PlantUML rendering against server.
type diagramExtension struct {
	server string
}

func (e *diagramExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithASTTransformers(
		util.Prioritized(&diagramTransformer{}, 100),
	))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(&diagramRenderer{server: strings.TrimRight(e.server, "/")}, 100),
	))
}

// encodePlantUML produces the text encoding PlantUML servers accept in the
// URL path: raw deflate, then PlantUML's base64 alphabet. Sources without an
// @start line are wrapped in @startuml/@enduml.
func encodePlantUML(source string) (string, error) {
	trimmed := strings.TrimSpace(source)
	if !strings.HasPrefix(trimmed, "@start") {
		trimmed = "@startuml\n" + trimmed + "\n@enduml"
	}

	var buf bytes.Buffer
	zw, err := flate.NewWriter(&buf, flate.BestCompression)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrHTMLConversion, err)
	}
	if _, err := zw.Write([]byte(trimmed)); err != nil {
		return "", fmt.Errorf("%w: %w", ErrHTMLConversion, err)
	}
	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("%w: %w", ErrHTMLConversion, err)
	}
	return plantumlEncoding.EncodeToString(buf.Bytes()), nil
}
