package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendNotification(ctx context.Context, notification *EmailNotification) error {
	return m.Called(ctx, notification).Error(0)
}

func (m *MockEmailService) SendHTML(ctx context.Context, to, subject, htmlBody, textBody string) error {
	return m.Called(ctx, to, subject, htmlBody, textBody).Error(0)
}

func notice() BookingNotice {
	return BookingNotice{
		BookingRef:    "BUS-20240501-ABCDEF",
		Email:         "an@example.com",
		CustomerName:  "Tran An",
		Route:         "Ha Noi - Hai Phong",
		Departure:     time.Date(2024, 5, 1, 8, 30, 0, 0, time.UTC),
		Seats:         []int{3, 4},
		TotalPayment:  360000,
		Currency:      "VND",
		PaymentStatus: "PAID",
	}
}

func TestPublishBookingCreatedIsKeyedByRef(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		key, _ := msg.Key.Encode()
		if string(key) != "BUS-20240501-ABCDEF" {
			return errors.New("unexpected key " + string(key))
		}
		value, _ := msg.Value.Encode()
		var n EmailNotification
		if err := json.Unmarshal(value, &n); err != nil {
			return err
		}
		if n.Type != NotificationTypeBookingCreated || n.TemplateData["seats"] != "3, 4" {
			return errors.New("unexpected payload")
		}
		return nil
	})

	p := NewPublisher(NewProducerWithClient(producer, "bus-notifications"))
	require.NoError(t, p.BookingCreated(context.Background(), notice()))
	require.NoError(t, producer.Close())
}

func TestPublishFailureIsReturned(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	p := NewPublisher(NewProducerWithClient(producer, "bus-notifications"))
	err := p.PasswordReset(context.Background(), "lan@example.com", "Lan", "staff01", "n3wPass")
	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	require.NoError(t, producer.Close())
}

func TestLogProducerNeverFails(t *testing.T) {
	p := NewPublisher(NewLogProducer())
	assert.NoError(t, p.BookingCancelled(context.Background(), notice()))
}

func TestRenderContent(t *testing.T) {
	n := NewNotification(NotificationTypeBookingCreated, "an@example.com", "Tran An", "", notice().templateData())

	html, text, err := RenderContent(n)
	require.NoError(t, err)
	assert.Contains(t, html, "BUS-20240501-ABCDEF")
	assert.Contains(t, text, "Seats: 3, 4")
	assert.Contains(t, text, "01/05/2024 08:30")
	assert.Equal(t, "Your bus ticket is booked", n.Subject)
}

func TestRenderContentUnknownType(t *testing.T) {
	_, _, err := RenderContent(&EmailNotification{Type: "NEWSLETTER"})
	assert.Error(t, err)
}

func message(t *testing.T, n *EmailNotification) *sarama.ConsumerMessage {
	t.Helper()
	b, err := n.ToJSON()
	require.NoError(t, err)
	return &sarama.ConsumerMessage{Value: b}
}

func TestProcessMessageRetriesThenSucceeds(t *testing.T) {
	email := new(MockEmailService)
	email.On("SendNotification", mock.Anything, mock.Anything).Return(errors.New("smtp busy")).Once()
	email.On("SendNotification", mock.Anything, mock.Anything).Return(nil).Once()

	h := &ConsumerGroupHandler{emailService: email, maxRetries: 2, backoff: time.Millisecond}
	n := NewNotification(NotificationTypePasswordReset, "lan@example.com", "Lan", "", nil)

	require.NoError(t, h.processMessage(context.Background(), message(t, n)))
	email.AssertNumberOfCalls(t, "SendNotification", 2)
}

func TestProcessMessageGivesUp(t *testing.T) {
	email := new(MockEmailService)
	email.On("SendNotification", mock.Anything, mock.Anything).Return(errors.New("smtp down"))

	h := &ConsumerGroupHandler{emailService: email, maxRetries: 1, backoff: time.Millisecond}
	n := NewNotification(NotificationTypePasswordReset, "", "", "", nil)

	err := h.processMessage(context.Background(), message(t, n))
	assert.Error(t, err)
	email.AssertNumberOfCalls(t, "SendNotification", 2)
}

func TestProcessMessageRejectsGarbage(t *testing.T) {
	h := &ConsumerGroupHandler{emailService: new(MockEmailService)}
	assert.Error(t, h.processMessage(context.Background(), &sarama.ConsumerMessage{Value: []byte("{")}))
}

func TestPartitionKeyFallsBackToRecipient(t *testing.T) {
	n := NewNotification(NotificationTypeBookingCancelled, "an@example.com", "An", "", nil)
	assert.Equal(t, "an@example.com", n.GetPartitionKey())
	assert.Equal(t, NotificationPriorityMedium, n.Priority)
}
