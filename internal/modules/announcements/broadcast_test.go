package announcements

import (
	"context"
	"testing"
	"time"

	"github.com/gidia-app/nutricoach/internal/mail"
	"github.com/gidia-app/nutricoach/internal/models"
	repomocks "github.com/gidia-app/nutricoach/internal/repository/mocks"
	svcmocks "github.com/gidia-app/nutricoach/internal/services/mocks"
	"github.com/gidia-app/nutricoach/internal/validation"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func users(emails ...string) func(context.Context, int, func([]models.User) error) error {
	return func(_ context.Context, _ int, fn func([]models.User) error) error {
		batch := make([]models.User, 0, len(emails))
		for _, e := range emails {
			batch = append(batch, models.User{Name: "User", Email: e})
		}
		return fn(batch)
	}
}

const testWaits = 3

func newBroadcaster(t *testing.T) (*Broadcaster, *repomocks.MockUserRepository, *svcmocks.MockMailer) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := repomocks.NewMockUserRepository(ctrl)
	mailer := svcmocks.NewMockMailer(ctrl)
	b := NewBroadcaster(repo, mailer)
	b.mailer = mail.NewPatient(mailer, time.Millisecond, testWaits)
	return b, repo, mailer
}

var update = PlatformUpdateRequest{Title: "Meal plans are here", Body: "Plan your week in one tap."}

func TestRun_QueuesEveryUser(t *testing.T) {
	b, repo, mailer := newBroadcaster(t)
	repo.EXPECT().EachBatch(gomock.Any(), batchSize, gomock.Any()).DoAndReturn(users("a@example.com", "b@example.com"))
	mailer.EXPECT().Queue(gomock.Any(), "a@example.com", mail.PlatformUpdate{
		Name: "User", Title: update.Title, Body: update.Body,
	}).Return(nil)
	mailer.EXPECT().Queue(gomock.Any(), "b@example.com", gomock.Any()).Return(nil)

	res, err := b.Run(context.Background(), update)
	require.NoError(t, err)
	assert.Equal(t, Result{Queued: 2}, res)
}

func TestRun_WaitsOutFullQueue(t *testing.T) {
	b, repo, mailer := newBroadcaster(t)
	repo.EXPECT().EachBatch(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(users("a@example.com"))
	gomock.InOrder(
		mailer.EXPECT().Queue(gomock.Any(), "a@example.com", gomock.Any()).Return(mail.ErrQueueFull).Times(2),
		mailer.EXPECT().Queue(gomock.Any(), "a@example.com", gomock.Any()).Return(nil),
	)

	res, err := b.Run(context.Background(), update)
	require.NoError(t, err)
	assert.Equal(t, Result{Queued: 1}, res)
}

func TestRun_GivesUpOnStuckQueue(t *testing.T) {
	b, repo, mailer := newBroadcaster(t)
	repo.EXPECT().EachBatch(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(users("a@example.com"))
	mailer.EXPECT().Queue(gomock.Any(), gomock.Any(), gomock.Any()).Return(mail.ErrQueueFull).Times(testWaits + 1)

	res, err := b.Run(context.Background(), update)
	require.NoError(t, err)
	assert.Equal(t, Result{Dropped: 1}, res)
}

func TestRun_ClosedQueueStops(t *testing.T) {
	b, repo, mailer := newBroadcaster(t)
	repo.EXPECT().EachBatch(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(users("a@example.com", "b@example.com"))
	mailer.EXPECT().Queue(gomock.Any(), "a@example.com", gomock.Any()).Return(mail.ErrQueueClosed)

	_, err := b.Run(context.Background(), update)
	assert.ErrorIs(t, err, mail.ErrQueueClosed)
}

func TestPlatformUpdateRequestValidation(t *testing.T) {
	errs := validation.Struct(&PlatformUpdateRequest{LinkURL: "not a url"})
	assert.Contains(t, errs, "title")
	assert.Contains(t, errs, "body")
	assert.Contains(t, errs, "link_url")
}
