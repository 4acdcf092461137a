package card_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pol3d/cardmail/pkg/card"
	"github.com/pol3d/cardmail/pkg/mailer"
	"github.com/pol3d/cardmail/pkg/mailer/resend"
)

func testEmail() *mailer.Email {
	return &mailer.Email{
		From:    "kartka@pol3d.com",
		To:      []string{"ola@example.com"},
		Subject: "Kartka",
		Text:    "Cześć",
	}
}

func TestDispatcher_Success(t *testing.T) {
	t.Parallel()

	sender := &mockSender{}
	email := testEmail()
	sender.On("Send", mock.Anything, email).Return("abc123", nil).Once()

	res, err := card.NewDispatcher(sender, nil).Dispatch(context.Background(), email)
	require.NoError(t, err)
	require.Equal(t, card.Result{ID: "abc123"}, res)
	sender.AssertExpectations(t)
}

func TestDispatcher_SuccessWithoutID(t *testing.T) {
	t.Parallel()

	sender := &mockSender{}
	sender.On("Send", mock.Anything, mock.Anything).Return("", nil).Once()

	res, err := card.NewDispatcher(sender, nil).Dispatch(context.Background(), testEmail())
	require.NoError(t, err)
	require.Empty(t, res.ID)
}

func TestDispatcher_ProviderError(t *testing.T) {
	t.Parallel()

	sender := &mockSender{}
	apiErr := &resend.APIError{StatusCode: 403, Message: "domain not verified", Body: `{"message":"domain not verified"}`}
	sender.On("Send", mock.Anything, mock.Anything).Return("", apiErr).Once()

	_, err := card.NewDispatcher(sender, nil).Dispatch(context.Background(), testEmail())
	require.ErrorIs(t, err, card.ErrDeliveryProvider)
	require.ErrorIs(t, err, apiErr)

	var ce *card.Error
	require.ErrorAs(t, err, &ce)
	require.Equal(t, 502, ce.StatusCode())
	require.Equal(t, "Resend API error", ce.Message)
	require.Equal(t, "domain not verified", ce.Details)
	require.Equal(t, 403, ce.ProviderStatus)
	sender.AssertNumberOfCalls(t, "Send", 1)
}

func TestDispatcher_NetworkError(t *testing.T) {
	t.Parallel()

	sender := &mockSender{}
	sender.On("Send", mock.Anything, mock.Anything).
		Return("", fmt.Errorf("resend: failed to send email: %w", errors.New("connection refused"))).Once()

	_, err := card.NewDispatcher(sender, nil).Dispatch(context.Background(), testEmail())
	require.ErrorIs(t, err, card.ErrServer)

	var ce *card.Error
	require.ErrorAs(t, err, &ce)
	require.Equal(t, 500, ce.StatusCode())
	require.Contains(t, ce.Details, "connection refused")
	sender.AssertNumberOfCalls(t, "Send", 1)
}

func TestDispatcher_NotConfigured(t *testing.T) {
	t.Parallel()

	sender := &checkedSender{checkErr: resend.ErrMissingAPIKey}
	sender.On("Send", mock.Anything, mock.Anything).Return("", resend.ErrMissingAPIKey)

	d := card.NewDispatcher(sender, nil)
	require.ErrorIs(t, d.Check(), card.ErrConfiguration)

	_, err := d.Dispatch(context.Background(), testEmail())
	require.ErrorIs(t, err, card.ErrConfiguration)
}

func TestDispatcher_CheckWithoutChecker(t *testing.T) {
	t.Parallel()

	require.NoError(t, card.NewDispatcher(&mockSender{}, nil).Check())
}
