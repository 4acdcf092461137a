package card_test

import (
	"context"
	"strings"

	"github.com/stretchr/testify/mock"

	"github.com/pol3d/cardmail/pkg/mailer"
)

// validBase64 returns n characters of decodable base64 (n must be a multiple of 4).
func validBase64(n int) string {
	return strings.Repeat("QUJD", n/4)
}

type mockSender struct {
	mock.Mock
}

func (m *mockSender) Send(ctx context.Context, email *mailer.Email) (string, error) {
	args := m.Called(ctx, email)
	return args.String(0), args.Error(1)
}

// checkedSender is a mockSender that also reports its configuration.
type checkedSender struct {
	mockSender
	checkErr error
}

func (m *checkedSender) Check() error {
	return m.checkErr
}
