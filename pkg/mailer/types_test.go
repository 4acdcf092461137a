package mailer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEmail_Validate(t *testing.T) {
	t.Parallel()

	valid := func() *Email {
		return &Email{From: "kartki@pol3d.com", To: []string{"a@b.co"}, Subject: "Hi", Text: "x"}
	}
	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(*Email)
		err    error
	}{
		{"no sender", func(e *Email) { e.From = "" }, ErrNoSender},
		{"no recipient", func(e *Email) { e.To = nil }, ErrNoRecipient},
		{"no subject", func(e *Email) { e.Subject = "" }, ErrNoSubject},
		{"no content", func(e *Email) { e.Text = "" }, ErrNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e := valid()
			tt.mutate(e)
			require.ErrorIs(t, e.Validate(), tt.err)
		})
	}
}

func TestRecipient(t *testing.T) {
	t.Parallel()

	require.Equal(t, "kartki@pol3d.com", Recipient("", "kartki@pol3d.com"))
	require.Equal(t, "POL3D <kartki@pol3d.com>", Recipient("POL3D", "kartki@pol3d.com"))
}

func TestSimpleTags(t *testing.T) {
	t.Parallel()

	tags := SimpleTags("card", "christmas")
	require.Len(t, tags, 2)
	require.Equal(t, struct{}{}, tags["card"])
}
