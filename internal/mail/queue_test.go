package mail

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSender struct {
	mu   sync.Mutex
	sent []Message
	err  error
}

func (s *recordingSender) Send(_ context.Context, msg Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, msg)
	return nil
}

func (s *recordingSender) messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Message(nil), s.sent...)
}

type blockingSender struct {
	started chan struct{}
	release chan struct{}
}

func (s *blockingSender) Send(ctx context.Context, _ Message) error {
	s.started <- struct{}{}
	<-s.release
	return nil
}

func TestQueue_DeliversRenderedMail(t *testing.T) {
	sender := &recordingSender{}
	q := NewQueue(newTestRenderer(t), sender, 2, 8)

	require.NoError(t, q.Queue(context.Background(), "ada@example.com", Welcome{Name: "Ada"}))
	require.NoError(t, q.Close(context.Background()))

	msgs := sender.messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "ada@example.com", msgs[0].To)
	assert.Equal(t, "Welcome to Gidia", msgs[0].Subject)
	assert.Equal(t, "welcome", msgs[0].Template)
	assert.Contains(t, msgs[0].HTML, "Welcome, Ada!")
}

func TestQueue_FullQueueRejects(t *testing.T) {
	sender := &blockingSender{started: make(chan struct{}, 1), release: make(chan struct{})}
	q := NewQueue(newTestRenderer(t), sender, 1, 1)

	require.NoError(t, q.Queue(context.Background(), "a@example.com", Welcome{Name: "A"}))
	<-sender.started // worker is busy with the first mail

	require.NoError(t, q.Queue(context.Background(), "b@example.com", Welcome{Name: "B"}))
	err := q.Queue(context.Background(), "c@example.com", Welcome{Name: "C"})
	require.ErrorIs(t, err, ErrQueueFull)

	close(sender.release)
	require.NoError(t, q.Close(context.Background()))
}

func TestQueue_SendFailureIsSwallowed(t *testing.T) {
	sender := &recordingSender{err: errors.New("smtp down")}
	q := NewQueue(newTestRenderer(t), sender, 1, 4)

	require.NoError(t, q.Queue(context.Background(), "a@example.com", AccountDeleted{Name: "A", DeletedAt: time.Now()}))
	require.NoError(t, q.Close(context.Background()))
	assert.Empty(t, sender.messages())
}

func TestQueue_ClosedRejects(t *testing.T) {
	q := NewQueue(newTestRenderer(t), &recordingSender{}, 1, 4)
	require.NoError(t, q.Close(context.Background()))
	require.NoError(t, q.Close(context.Background()))

	err := q.Queue(context.Background(), "a@example.com", Welcome{Name: "A"})
	require.ErrorIs(t, err, ErrQueueClosed)
}

type fakeSES struct {
	in *ses.SendEmailInput
}

func (f *fakeSES) SendEmail(_ context.Context, in *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	f.in = in
	return &ses.SendEmailOutput{}, nil
}

func TestSESSender_BuildsHTMLMessage(t *testing.T) {
	client := &fakeSES{}
	s := NewSESSender(client, "Gidia <hello@gidia.app>")

	err := s.Send(context.Background(), Message{To: "ada@example.com", Subject: "Hi", HTML: "<p>hi</p>"})
	require.NoError(t, err)

	require.NotNil(t, client.in)
	assert.Equal(t, []string{"ada@example.com"}, client.in.Destination.ToAddresses)
	assert.Equal(t, "Hi", *client.in.Message.Subject.Data)
	assert.Equal(t, "<p>hi</p>", *client.in.Message.Body.Html.Data)
	assert.Equal(t, "Gidia <hello@gidia.app>", *client.in.Source)
}
