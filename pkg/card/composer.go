package card

import (
	"fmt"
	"strings"

	"github.com/pol3d/cardmail/pkg/mailer"
	"github.com/pol3d/cardmail/pkg/sanitizer"
	"github.com/pol3d/cardmail/templates"
)

// Settings is the trusted, process-wide part of every card email.
type Settings struct {
	From    string `env:"RESEND_FROM"`
	ReplyTo string `env:"RESEND_REPLY_TO" envDefault:"info.pol3d@gmail.com"`

	// Operator copy overrides. Empty means the embedded copy.
	Subject string `env:"CARD_SUBJECT"`
	HTML    string `env:"CARD_HTML"`
	Text    string `env:"CARD_TEXT"`

	// AllowCopyOverrides lets callers replace subject, html and text.
	AllowCopyOverrides bool `env:"CARD_ALLOW_COPY_OVERRIDES" envDefault:"false"`
}

// copyData is what the embedded copy may reference.
type copyData struct {
	SenderName string
}

// Composer builds the outbound email for a validated Request.
type Composer struct {
	renderer *mailer.Renderer
	settings Settings
}

// NewComposer creates a composer. A nil renderer means the embedded copy.
// The copy is rendered once here so broken templates fail at startup.
func NewComposer(settings Settings, renderer *mailer.Renderer) (*Composer, error) {
	if renderer == nil {
		renderer = templates.NewRenderer()
	}
	settings.From = strings.TrimSpace(settings.From)
	settings.ReplyTo = strings.TrimSpace(settings.ReplyTo)

	c := &Composer{renderer: renderer, settings: settings}
	if _, err := c.render(copyData{SenderName: "POL3D"}); err != nil {
		return nil, err
	}
	return c, nil
}

// Compose returns the email for req. It performs no I/O: the same request and
// settings always produce the same email.
func (c *Composer) Compose(req *Request) (*mailer.Email, error) {
	if err := c.Check(); err != nil {
		return nil, err
	}

	rendered, err := c.render(copyData{SenderName: req.SenderName})
	if err != nil {
		return nil, NewError(KindServerError, ErrServer.Message, WithError(err))
	}

	subject := first(c.settings.Subject, rendered.Subject)
	html := first(c.settings.HTML, rendered.HTML)
	text := first(c.settings.Text, rendered.Text)
	if c.settings.AllowCopyOverrides {
		subject = first(sanitizer.Text(req.Subject, 0), subject)
		html = first(sanitizer.EmailHTML(req.HTML), html)
		// An HTML override without a text part gets its text derived from the markup.
		text = first(req.Text, sanitizer.StripHTML(req.HTML), text)
	}

	return &mailer.Email{
		From:    c.settings.From,
		ReplyTo: c.settings.ReplyTo,
		To:      []string{req.To},
		Subject: subject,
		HTML:    html,
		Text:    text,
		Tags:    mailer.SimpleTags("card"),
		Attachments: []mailer.Attachment{{
			Filename:    req.Filename,
			ContentType: req.MediaType,
			Content:     req.Content,
		}},
	}, nil
}

// Check reports a missing sender address.
func (c *Composer) Check() error {
	if c.settings.From == "" {
		return NewError(KindConfigurationError, "Missing RESEND_FROM")
	}
	return nil
}

func (c *Composer) render(data copyData) (*mailer.RenderResult, error) {
	res, err := c.renderer.Render(templates.Layout, templates.Card, data)
	if err != nil {
		return nil, fmt.Errorf("render card copy: %w", err)
	}
	return res, nil
}

// first returns the first value that is not blank.
func first(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
