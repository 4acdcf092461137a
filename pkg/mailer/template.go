package mailer

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

var frontmatterDelimiter = []byte("---")

// Template is a copy file split into YAML frontmatter and a markdown body.
type Template struct {
	Metadata map[string]any
	Body     string
}

// Subject returns the Subject frontmatter field, if it is a string.
func (t *Template) Subject() string {
	s, _ := t.Metadata["Subject"].(string)
	return s
}

// ParseTemplate splits content into frontmatter metadata and body.
// Content without a leading "---" is treated as body only.
func ParseTemplate(content []byte) (*Template, error) {
	rest, ok := bytes.CutPrefix(content, frontmatterDelimiter)
	if !ok {
		return &Template{Metadata: map[string]any{}, Body: string(content)}, nil
	}

	rest = bytes.TrimLeft(rest, "\r\n")
	if len(rest) == 0 {
		return nil, fmt.Errorf("%w: no content after opening delimiter", ErrInvalidFrontmatter)
	}

	front, body, found := bytes.Cut(rest, frontmatterDelimiter)
	if !found {
		return nil, fmt.Errorf("%w: closing delimiter not found", ErrInvalidFrontmatter)
	}

	metadata := map[string]any{}
	if len(bytes.TrimSpace(front)) > 0 {
		if err := yaml.Unmarshal(front, &metadata); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFrontmatter, err)
		}
	}

	return &Template{Metadata: metadata, Body: string(skipNewline(body))}, nil
}

// skipNewline drops a single leading \n or \r\n.
func skipNewline(b []byte) []byte {
	if r, ok := bytes.CutPrefix(b, []byte("\r\n")); ok {
		return r
	}
	if r, ok := bytes.CutPrefix(b, []byte("\n")); ok {
		return r
	}
	return b
}
