package card

import (
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"path"
	"regexp"
	"strings"

	"github.com/pol3d/cardmail/pkg/sanitizer"
)

const (
	DefaultMinAttachmentLength = 200
	DefaultMaxAttachmentLength = 7 << 20 // base64 characters
	DefaultMediaType           = "image/png"
	DefaultFilename            = "POL3D_kartka"

	maxFilenameRunes   = 128
	maxSenderNameRunes = 80

	// bodyOverhead is the JSON allowance on top of the attachment itself.
	bodyOverhead = 64 << 10
)

var (
	recipientPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	base64Pattern    = regexp.MustCompile(`^[A-Za-z0-9+/]+={0,2}$`)

	// Allow-listed media types and the extension used when a filename has none.
	mediaTypes = map[string]string{
		"image/png":  ".png",
		"image/jpeg": ".jpg",
		"image/webp": ".webp",
	}
)

// Limits bounds the accepted attachment size, in base64 characters.
type Limits struct {
	MinAttachmentLength int `env:"CARD_MIN_ATTACHMENT_LENGTH" envDefault:"200"`
	MaxAttachmentLength int `env:"CARD_MAX_ATTACHMENT_LENGTH" envDefault:"7340032"`
}

// MaxBodySize is the largest request body worth reading.
func (l Limits) MaxBodySize() int64 {
	return int64(l.MaxAttachmentLength) + bodyOverhead
}

// Validator turns a RawRequest into a Request.
type Validator struct {
	limits Limits
}

// NewValidator creates a validator. Non-positive limits fall back to defaults.
func NewValidator(limits Limits) *Validator {
	if limits.MinAttachmentLength <= 0 {
		limits.MinAttachmentLength = DefaultMinAttachmentLength
	}
	if limits.MaxAttachmentLength <= 0 {
		limits.MaxAttachmentLength = DefaultMaxAttachmentLength
	}
	return &Validator{limits: limits}
}

// Limits returns the effective limits.
func (v *Validator) Limits() Limits {
	return v.limits
}

// Validate checks raw in a fixed order: recipient, media type, attachment
// presence, minimum length, maximum length, then base64 decodability.
// The first failing check decides the returned *Error.
func (v *Validator) Validate(raw RawRequest) (*Request, error) {
	to := strings.TrimSpace(raw.To)
	if !recipientPattern.MatchString(to) {
		return nil, ErrInvalidRecipient
	}

	mediaType, err := parseMediaType(raw.Mime)
	if err != nil {
		return nil, err
	}

	data := NormalizeAttachment(raw.Base64)
	switch {
	case data == "":
		return nil, ErrInvalidAttachment
	case len(data) < v.limits.MinAttachmentLength:
		return nil, NewError(KindInvalidAttachment, "Attachment is too short",
			WithDetails(fmt.Sprintf("expected at least %d base64 characters", v.limits.MinAttachmentLength)))
	case len(data) > v.limits.MaxAttachmentLength:
		return nil, NewError(KindPayloadTooLarge, ErrPayloadTooLarge.Message,
			WithDetails(fmt.Sprintf("expected at most %d base64 characters", v.limits.MaxAttachmentLength)))
	}

	content, err := decodeAttachment(data)
	if err != nil {
		return nil, NewError(KindInvalidAttachment, "Attachment is not valid base64", WithError(err))
	}

	return &Request{
		To:         to,
		Base64:     data,
		Content:    content,
		MediaType:  mediaType,
		Filename:   normalizeFilename(raw.Filename, mediaType),
		SenderName: sanitizer.Text(raw.SenderName, maxSenderNameRunes),
		Subject:    raw.Subject,
		HTML:       raw.HTML,
		Text:       raw.Text,
	}, nil
}

func parseMediaType(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultMediaType, nil
	}

	mediaType, _, err := mime.ParseMediaType(s)
	if err != nil {
		return "", NewError(KindUnsupportedMediaType, ErrUnsupportedMediaType.Message,
			WithError(err), WithDetails(s))
	}
	if _, ok := mediaTypes[mediaType]; !ok {
		return "", NewError(KindUnsupportedMediaType, ErrUnsupportedMediaType.Message, WithDetails(s))
	}
	return mediaType, nil
}

func decodeAttachment(data string) ([]byte, error) {
	if !base64Pattern.MatchString(data) {
		return nil, errors.New("attachment contains characters outside the base64 alphabet")
	}
	if len(data)%4 != 0 && !strings.HasSuffix(data, "=") {
		return base64.RawStdEncoding.Strict().DecodeString(data)
	}
	return base64.StdEncoding.Strict().DecodeString(data)
}

func normalizeFilename(s, mediaType string) string {
	name := sanitizer.Text(strings.NewReplacer("/", "_", `\`, "_").Replace(s), maxFilenameRunes)
	if name == "" {
		name = DefaultFilename
	}
	if path.Ext(name) == "" {
		name = sanitizer.Truncate(name, maxFilenameRunes-len(mediaTypes[mediaType])) + mediaTypes[mediaType]
	}
	return name
}
