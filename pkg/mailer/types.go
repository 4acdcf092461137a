package mailer

import "fmt"

// Tags are provider tags attached to a message. Presence-only tags use struct{}{}.
type Tags map[string]any

// SimpleTags creates presence-only tags from a list of tag names.
func SimpleTags(names ...string) Tags {
	t := make(Tags, len(names))
	for _, n := range names {
		t[n] = struct{}{}
	}
	return t
}

// Recipient formats a name and email into RFC 5322 address format.
// Returns "Name <email>" if name is provided, otherwise just email.
func Recipient(name, email string) string {
	if name == "" {
		return email
	}
	return fmt.Sprintf("%s <%s>", name, email)
}

// Email is a fully-prepared message ready for a Sender.
type Email struct {
	Headers     map[string]string // Custom headers
	Tags        Tags              // Provider-specific tags
	Subject     string            // Email subject
	HTML        string            // HTML body content
	Text        string            // Plain text alternative
	From        string            // Sender address
	ReplyTo     string            // Reply-to address
	To          []string          // Recipients (at least one required)
	Attachments []Attachment      // File attachments
}

// Attachment is a file attached to an Email.
type Attachment struct {
	Filename    string // Display name for the attachment
	ContentType string // MIME type (e.g., "image/png")
	Content     []byte // Raw file content
}

// Validate checks the fields every provider requires.
func (e *Email) Validate() error {
	switch {
	case e.From == "":
		return ErrNoSender
	case len(e.To) == 0:
		return ErrNoRecipient
	case e.Subject == "":
		return ErrNoSubject
	case e.HTML == "" && e.Text == "":
		return ErrNoContent
	}
	return nil
}
