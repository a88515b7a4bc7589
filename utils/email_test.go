package utils

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"go-storefront/models"
)

type mockSender struct {
	mock.Mock
}

func (m *mockSender) Send(ctx context.Context, email Email) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func TestSendContactMessage(t *testing.T) {
	sender := new(mockSender)
	sender.On("Send", mock.Anything, mock.MatchedBy(func(e Email) bool {
		return e.From == "shop@example.com" &&
			e.To == "inbox@example.com" &&
			e.Subject == "Contact form: Order question" &&
			assert.ObjectsAreEqual("From: Ann <ann@example.com>\n\nWhere is <my> order?", e.TextBody) &&
			assert.ObjectsAreEqual("<strong>From:</strong> Ann &lt;ann@example.com&gt;<br><br>Where is &lt;my&gt; order?", e.HTMLBody)
	})).Return(nil).Once()

	es := NewEmailServiceWithSender(sender, "shop@example.com", "inbox@example.com")
	err := es.SendContactMessage(context.Background(), models.ContactMessage{
		Name:    "Ann",
		Email:   "ann@example.com",
		Subject: "Order question",
		Message: "Where is <my> order?",
	})
	require.NoError(t, err)
	sender.AssertExpectations(t)
}

func TestSendContactMessageDefaultSubject(t *testing.T) {
	sender := new(mockSender)
	sender.On("Send", mock.Anything, mock.MatchedBy(func(e Email) bool {
		return e.Subject == "Contact form message from Ann"
	})).Return(nil)

	es := NewEmailServiceWithSender(sender, "shop@example.com", "inbox@example.com")
	require.NoError(t, es.SendContactMessage(context.Background(), models.ContactMessage{Name: "Ann", Message: "hi"}))
	sender.AssertExpectations(t)
}

func TestSendEmailWrapsSenderError(t *testing.T) {
	boom := errors.New("boom")
	sender := new(mockSender)
	sender.On("Send", mock.Anything, mock.Anything).Return(boom)

	es := NewEmailServiceWithSender(sender, "shop@example.com", "inbox@example.com")
	err := es.SendEmail(context.Background(), "a@example.com", "s", "<p>h</p>", "h")
	assert.ErrorIs(t, err, boom)
}

func TestNewEmailService(t *testing.T) {
	es, err := NewEmailService(Config{}, zerolog.Nop())
	require.NoError(t, err)
	assert.IsType(t, &LogSender{}, es.sender)
	assert.Equal(t, "contact@localhost", es.recipient)
	assert.NoError(t, es.SendContactMessage(context.Background(), models.ContactMessage{Name: "Ann", Message: "hi"}))

	es, err = NewEmailService(Config{EmailProvider: ProviderPostmark, PostmarkAPIToken: "token", EmailSender: "shop@example.com"}, zerolog.Nop())
	require.NoError(t, err)
	assert.IsType(t, &PostmarkSender{}, es.sender)
	assert.Equal(t, "shop@example.com", es.recipient)

	es, err = NewEmailService(Config{EmailProvider: ProviderSendgrid, SendgridAPIKey: "key", ContactRecipient: "inbox@example.com"}, zerolog.Nop())
	require.NoError(t, err)
	assert.IsType(t, &SendgridSender{}, es.sender)
	assert.Equal(t, "inbox@example.com", es.recipient)

	_, err = NewEmailService(Config{EmailProvider: ProviderPostmark}, zerolog.Nop())
	assert.Error(t, err)
	_, err = NewEmailService(Config{EmailProvider: ProviderSendgrid}, zerolog.Nop())
	assert.Error(t, err)
	_, err = NewEmailService(Config{EmailProvider: "pigeon"}, zerolog.Nop())
	assert.Error(t, err)
}
