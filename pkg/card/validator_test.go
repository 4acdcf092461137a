package card_test

import (
	"encoding/base64"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"

	"github.com/pol3d/cardmail/pkg/card"
)

func validRaw() card.RawRequest {
	return card.RawRequest{
		To:     "ola@example.com",
		Base64: validBase64(2000),
		Mime:   "image/png",
	}
}

func TestValidator_Recipient(t *testing.T) {
	t.Parallel()

	v := card.NewValidator(card.Limits{})

	for _, to := range []string{"", "   ", "not-an-email", "user@", "@example.com", "user@example", "us er@example.com", "user@@example.com", "user@exa mple.com"} {
		raw := validRaw()
		raw.To = to
		_, err := v.Validate(raw)
		require.ErrorIs(t, err, card.ErrInvalidRecipient, to)
	}

	raw := validRaw()
	raw.To = "  ola.k+kartka@poczta.example.pl "
	req, err := v.Validate(raw)
	require.NoError(t, err)
	require.Equal(t, "ola.k+kartka@poczta.example.pl", req.To)
}

func TestValidator_MediaType(t *testing.T) {
	t.Parallel()

	v := card.NewValidator(card.Limits{})

	accepted := map[string]string{
		"":                          "image/png",
		"image/png":                 "image/png",
		"IMAGE/JPEG":                "image/jpeg",
		" image/webp ":              "image/webp",
		"image/png; charset=binary": "image/png",
	}
	for in, want := range accepted {
		raw := validRaw()
		raw.Mime = in
		req, err := v.Validate(raw)
		require.NoError(t, err, in)
		require.Equal(t, want, req.MediaType, in)
	}

	for _, in := range []string{"application/pdf", "image/gif", "text/html", "image/svg+xml", "png", ";;"} {
		raw := validRaw()
		raw.Mime = in
		_, err := v.Validate(raw)
		require.ErrorIs(t, err, card.ErrUnsupportedMediaType, in)
	}
}

func TestValidator_MediaTypeCheckedRegardlessOfAttachment(t *testing.T) {
	t.Parallel()

	v := card.NewValidator(card.Limits{})

	for _, attachment := range []string{"", "short", "!!!" + validBase64(2000), validBase64(8 << 20)} {
		_, err := v.Validate(card.RawRequest{To: "ola@example.com", Mime: "application/pdf", Base64: attachment})
		require.ErrorIs(t, err, card.ErrUnsupportedMediaType)
	}
}

func TestValidator_Attachment(t *testing.T) {
	t.Parallel()

	v := card.NewValidator(card.Limits{MinAttachmentLength: 200, MaxAttachmentLength: 4000})

	tests := []struct {
		name   string
		base64 string
		err    error
	}{
		{"missing", "", card.ErrInvalidAttachment},
		{"only whitespace", "   ", card.ErrInvalidAttachment},
		{"only data url prefix", "data:image/png;base64,", card.ErrInvalidAttachment},
		{"below minimum", validBase64(196), card.ErrInvalidAttachment},
		{"below minimum after prefix", "data:image/png;base64," + validBase64(196), card.ErrInvalidAttachment},
		{"above maximum", validBase64(4004), card.ErrPayloadTooLarge},
		{"above maximum and invalid", strings.Repeat("!", 5000), card.ErrPayloadTooLarge},
		{"outside alphabet", validBase64(400) + "-_", card.ErrInvalidAttachment},
		{"embedded whitespace", validBase64(200) + " " + validBase64(200), card.ErrInvalidAttachment},
		{"bad padding", validBase64(400) + "===", card.ErrInvalidAttachment},
		{"at minimum", validBase64(200), nil},
		{"at maximum", validBase64(4000), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			raw := validRaw()
			raw.Base64 = tt.base64
			_, err := v.Validate(raw)
			if tt.err == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.err)
		})
	}
}

func TestValidator_AttachmentDecoding(t *testing.T) {
	t.Parallel()

	v := card.NewValidator(card.Limits{MinAttachmentLength: 4})
	content := []byte("\x89PNG\r\n\x1a\n fake image bytes!")

	t.Run("padded data url", func(t *testing.T) {
		t.Parallel()
		encoded := base64.StdEncoding.EncodeToString(content)
		raw := validRaw()
		raw.Base64 = "data:image/png;base64," + encoded

		req, err := v.Validate(raw)
		require.NoError(t, err)
		require.Equal(t, encoded, req.Base64)
		require.Equal(t, content, req.Content)
		require.Equal(t, req.Base64, base64.StdEncoding.EncodeToString(req.Content))
	})

	t.Run("unpadded", func(t *testing.T) {
		t.Parallel()
		raw := validRaw()
		raw.Base64 = base64.RawStdEncoding.EncodeToString(content)

		req, err := v.Validate(raw)
		require.NoError(t, err)
		require.Equal(t, content, req.Content)
	})

	// "QR" carries non-zero trailing bits; it would decode to the same byte as "QQ".
	for name, data := range map[string]string{
		"non-zero padding bits":          validBase64(400) + "QR==",
		"non-zero padding bits unpadded": validBase64(400) + "QR",
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			raw := validRaw()
			raw.Base64 = data

			_, err := v.Validate(raw)
			require.ErrorIs(t, err, card.ErrInvalidAttachment)
		})
	}
}

func TestValidator_CheckOrder(t *testing.T) {
	t.Parallel()

	v := card.NewValidator(card.Limits{})

	_, err := v.Validate(card.RawRequest{To: "bad", Mime: "application/pdf"})
	require.ErrorIs(t, err, card.ErrInvalidRecipient)

	_, err = v.Validate(card.RawRequest{To: "ola@example.com", Mime: "application/pdf"})
	require.ErrorIs(t, err, card.ErrUnsupportedMediaType)

	_, err = v.Validate(card.RawRequest{To: "ola@example.com"})
	require.ErrorIs(t, err, card.ErrInvalidAttachment)
}

func TestValidator_Filename(t *testing.T) {
	t.Parallel()

	v := card.NewValidator(card.Limits{})

	tests := []struct {
		name, filename, mime, want string
	}{
		{"default", "", "image/png", "POL3D_kartka.png"},
		{"default jpeg", "  ", "image/jpeg", "POL3D_kartka.jpg"},
		{"kept", "moja kartka.png", "image/png", "moja kartka.png"},
		{"extension appended", "kartka", "image/webp", "kartka.webp"},
		{"control characters", "kar\r\ntka\x00.png", "image/png", "kartka.png"},
		{"path separators", "../../etc/passwd.png", "image/png", ".._.._etc_passwd.png"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			raw := validRaw()
			raw.Filename, raw.Mime = tt.filename, tt.mime
			req, err := v.Validate(raw)
			require.NoError(t, err)
			require.Equal(t, tt.want, req.Filename)
		})
	}

	t.Run("capped", func(t *testing.T) {
		t.Parallel()
		raw := validRaw()
		raw.Filename = strings.Repeat("ż", 300)
		req, err := v.Validate(raw)
		require.NoError(t, err)
		require.Equal(t, 128, utf8.RuneCountInString(req.Filename))
		require.True(t, strings.HasSuffix(req.Filename, ".png"))
	})
}

func TestValidator_SenderName(t *testing.T) {
	t.Parallel()

	v := card.NewValidator(card.Limits{})

	raw := validRaw()
	raw.SenderName = "  Zósia  "
	req, err := v.Validate(raw)
	require.NoError(t, err)
	require.Equal(t, "Zósia", req.SenderName)

	raw.SenderName = strings.Repeat("ą", 100)
	req, err = v.Validate(raw)
	require.NoError(t, err)
	require.Equal(t, 80, utf8.RuneCountInString(req.SenderName))
}

func TestLimits(t *testing.T) {
	t.Parallel()

	v := card.NewValidator(card.Limits{})
	require.Equal(t, card.DefaultMinAttachmentLength, v.Limits().MinAttachmentLength)
	require.Equal(t, card.DefaultMaxAttachmentLength, v.Limits().MaxAttachmentLength)
	require.Equal(t, int64(7340032+65536), v.Limits().MaxBodySize())
}
