package mailer

import (
	"bytes"
	"net/url"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// Call-to-action buttons are written as [!button|Label](https://example.com).

const buttonPrefix = "[!button|"

// KindButton is the node kind for ButtonNode.
var KindButton = ast.NewNodeKind("Button")

// ButtonNode is a call-to-action link.
type ButtonNode struct {
	ast.BaseInline
	URL   []byte
	Label []byte
}

func (n *ButtonNode) Kind() ast.NodeKind { return KindButton }

func (n *ButtonNode) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"URL": string(n.URL), "Label": string(n.Label)}, nil)
}

// Linkable reports whether the URL may become an href. Only http, https
// and mailto survive; anything else renders as plain text.
func (n *ButtonNode) Linkable() bool {
	u, err := url.Parse(string(bytes.TrimSpace(n.URL)))
	if err != nil {
		return false
	}
	switch u.Scheme {
	case "http", "https":
		return u.Host != ""
	case "mailto":
		return u.Opaque != ""
	}
	return false
}

type buttonParser struct{}

func (buttonParser) Trigger() []byte { return []byte{'['} }

func (buttonParser) Parse(_ ast.Node, block text.Reader, _ parser.Context) ast.Node {
	line, _ := block.PeekLine()
	rest, ok := bytes.CutPrefix(line, []byte(buttonPrefix))
	if !ok {
		return nil
	}
	label, rest, ok := bytes.Cut(rest, []byte("]("))
	if !ok || bytes.IndexByte(label, ']') >= 0 {
		return nil
	}
	href, _, ok := bytes.Cut(rest, []byte(")"))
	if !ok {
		return nil
	}

	block.Advance(len(buttonPrefix) + len(label) + len("](") + len(href) + len(")"))
	return &ButtonNode{URL: href, Label: label}
}

// ButtonOption configures button rendering.
type ButtonOption func(*buttonRenderer)

// WithButtonStyle sets the inline style of rendered buttons. Most email
// clients ignore stylesheets, so this is where button styling lives.
func WithButtonStyle(style string) ButtonOption {
	return func(r *buttonRenderer) { r.style = style }
}

type buttonRenderer struct {
	style string
}

func (r *buttonRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindButton, r.render)
}

func (r *buttonRenderer) render(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ButtonNode)

	if !n.Linkable() {
		_, _ = w.Write(util.EscapeHTML(n.Label))
		return ast.WalkContinue, nil
	}

	_, _ = w.WriteString(`<a href="`)
	_, _ = w.Write(util.EscapeHTML(bytes.TrimSpace(n.URL)))
	_, _ = w.WriteString(`" class="btn" target="_blank" rel="noopener"`)
	if r.style != "" {
		_, _ = w.WriteString(` style="`)
		_, _ = w.Write(util.EscapeHTML([]byte(r.style)))
		_ = w.WriteByte('"')
	}
	_ = w.WriteByte('>')
	_, _ = w.Write(util.EscapeHTML(n.Label))
	_, _ = w.WriteString(`</a>`)
	return ast.WalkContinue, nil
}

type buttonExtension struct {
	opts []ButtonOption
}

// NewButtonExtension adds [!button|Label](URL) support to goldmark.
func NewButtonExtension(opts ...ButtonOption) goldmark.Extender {
	return &buttonExtension{opts: opts}
}

func (e *buttonExtension) Extend(m goldmark.Markdown) {
	r := &buttonRenderer{}
	for _, opt := range e.opts {
		opt(r)
	}
	m.Parser().AddOptions(parser.WithInlineParsers(util.Prioritized(buttonParser{}, 50)))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(util.Prioritized(r, 50)))
}
