package mailer

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"regexp"
	"strings"
	"sync"
	texttemplate "text/template"

	"github.com/yuin/goldmark"
)

// Renderer converts markdown templates with YAML frontmatter to HTML and plain text.
//
// Layouts are html/template files under LayoutDir. A layout "base.html" may have a
// plain-text sibling "base.txt" (text/template); when present it wraps the text part
// the same way the HTML layout wraps the HTML part.
type Renderer struct {
	fs fs.FS
	md goldmark.Markdown

	// Parsed structure only, never rendered output.
	templates cache[*cachedTemplate]
	layouts   cache[*cachedLayout]

	templateDir string
	layoutDir   string
}

type cachedTemplate struct {
	metadata map[string]any
	body     *texttemplate.Template
	subject  *texttemplate.Template // nil when frontmatter has no Subject
}

type cachedLayout struct {
	html *template.Template
	text *texttemplate.Template // nil when no plain-text sibling exists
}

// RendererConfig configures the renderer.
type RendererConfig struct {
	TemplateDir string // Default: "."
	LayoutDir   string // Default: "layouts"
	ButtonStyle string // Inline CSS applied to [!button|...] links
}

// NewRenderer creates a new renderer with default config.
func NewRenderer(filesystem fs.FS) *Renderer {
	return NewRendererWithConfig(filesystem, RendererConfig{})
}

// NewRendererWithConfig creates a new renderer with custom config.
func NewRendererWithConfig(filesystem fs.FS, opts RendererConfig) *Renderer {
	if opts.TemplateDir == "" {
		opts.TemplateDir = "."
	}
	if opts.LayoutDir == "" {
		opts.LayoutDir = "layouts"
	}

	return &Renderer{
		fs:          filesystem,
		templateDir: opts.TemplateDir,
		layoutDir:   opts.LayoutDir,
		md: goldmark.New(
			goldmark.WithExtensions(NewButtonExtension(WithButtonStyle(opts.ButtonStyle))),
		),
	}
}

// RenderResult contains the rendered subject, HTML, plain text and metadata.
type RenderResult struct {
	Metadata map[string]any
	Subject  string // Executed "Subject" frontmatter field, empty if absent
	HTML     string
	Text     string
}

// LayoutData is passed to layouts.
type LayoutData struct {
	Content  template.HTML // Rendered markdown body; plain text in text layouts
	Metadata map[string]any
	Data     any // Caller data, escaped by html/template in HTML layouts
}

// Render processes a markdown template with layout.
func (r *Renderer) Render(layout, templateName string, data any) (*RenderResult, error) {
	cached, err := r.getTemplate(templateName)
	if err != nil {
		return nil, err
	}

	var markdown bytes.Buffer
	if err := cached.body.Execute(&markdown, data); err != nil {
		return nil, fmt.Errorf("%w: failed to execute template: %v", ErrRenderFailed, err)
	}

	var subject string
	if cached.subject != nil {
		var buf bytes.Buffer
		if err := cached.subject.Execute(&buf, data); err != nil {
			return nil, fmt.Errorf("%w: failed to execute subject: %v", ErrRenderFailed, err)
		}
		subject = strings.TrimSpace(buf.String())
	}

	var htmlContent bytes.Buffer
	if err := r.md.Convert(markdown.Bytes(), &htmlContent); err != nil {
		return nil, fmt.Errorf("%w: failed to convert markdown: %v", ErrRenderFailed, err)
	}

	lt, err := r.getLayout(layout)
	if err != nil {
		return nil, err
	}

	var finalHTML bytes.Buffer
	if err := lt.html.Execute(&finalHTML, LayoutData{
		Content:  template.HTML(htmlContent.String()),
		Metadata: cached.metadata,
		Data:     data,
	}); err != nil {
		return nil, fmt.Errorf("%w: failed to execute layout: %v", ErrRenderFailed, err)
	}

	plainText := PlainText(markdown.String())
	if lt.text != nil {
		var buf bytes.Buffer
		if err := lt.text.Execute(&buf, LayoutData{
			Content:  template.HTML(plainText),
			Metadata: cached.metadata,
			Data:     data,
		}); err != nil {
			return nil, fmt.Errorf("%w: failed to execute text layout: %v", ErrRenderFailed, err)
		}
		plainText = buf.String()
	}

	return &RenderResult{
		Metadata: cached.metadata,
		Subject:  subject,
		HTML:     finalHTML.String(),
		Text:     plainText,
	}, nil
}

var buttonSyntax = regexp.MustCompile(`\[!button\|([^\]]*)\]\(([^)]*)\)`)

// PlainText turns processed markdown into a plain-text body.
// Button links become "Label: URL".
func PlainText(markdown string) string {
	return buttonSyntax.ReplaceAllString(markdown, "$1: $2")
}

// cache memoizes parsed templates by name. Failed loads are not cached.
type cache[T any] struct {
	mu    sync.RWMutex
	items map[string]T
}

func (c *cache[T]) get(name string, load func() (T, error)) (T, error) {
	c.mu.RLock()
	v, ok := c.items[name]
	c.mu.RUnlock()
	if ok {
		return v, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if v, ok := c.items[name]; ok {
		return v, nil
	}
	v, err := load()
	if err != nil {
		return v, err
	}
	if c.items == nil {
		c.items = make(map[string]T)
	}
	c.items[name] = v
	return v, nil
}

func (r *Renderer) getTemplate(name string) (*cachedTemplate, error) {
	return r.templates.get(name, func() (*cachedTemplate, error) {
		content, err := fs.ReadFile(r.fs, path.Join(r.templateDir, name))
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrTemplateNotFound, name, err)
		}

		parsed, err := ParseTemplate(content)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrRenderFailed, name, err)
		}

		body, err := texttemplate.New(name).Parse(parsed.Body)
		if err != nil {
			return nil, fmt.Errorf("%w: parse %s body: %v", ErrRenderFailed, name, err)
		}

		t := &cachedTemplate{metadata: parsed.Metadata, body: body}
		if s := parsed.Subject(); s != "" {
			if t.subject, err = texttemplate.New(name + ":subject").Parse(s); err != nil {
				return nil, fmt.Errorf("%w: parse %s subject: %v", ErrRenderFailed, name, err)
			}
		}
		return t, nil
	})
}

// getLayout loads an HTML layout and its optional ".txt" sibling.
func (r *Renderer) getLayout(name string) (*cachedLayout, error) {
	return r.layouts.get(name, func() (*cachedLayout, error) {
		htmlPath := path.Join(r.layoutDir, name)
		content, err := fs.ReadFile(r.fs, htmlPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrLayoutNotFound, name, err)
		}

		html, err := template.New(name).Parse(string(content))
		if err != nil {
			return nil, fmt.Errorf("%w: parse layout %s: %v", ErrRenderFailed, name, err)
		}
		l := &cachedLayout{html: html}

		textPath := strings.TrimSuffix(htmlPath, path.Ext(htmlPath)) + ".txt"
		if textPath == htmlPath {
			return l, nil
		}
		textContent, err := fs.ReadFile(r.fs, textPath)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return l, nil
		case err != nil:
			return nil, fmt.Errorf("%w: %s: %v", ErrLayoutNotFound, textPath, err)
		}
		if l.text, err = texttemplate.New(path.Base(textPath)).Parse(string(textContent)); err != nil {
			return nil, fmt.Errorf("%w: parse text layout %s: %v", ErrRenderFailed, textPath, err)
		}
		return l, nil
	})
}
