package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gidia-app/nutricoach/internal/config"
	"github.com/gidia-app/nutricoach/internal/mail"
	"github.com/gidia-app/nutricoach/internal/models"
	"github.com/gidia-app/nutricoach/internal/repository"
	repomocks "github.com/gidia-app/nutricoach/internal/repository/mocks"
	"github.com/gidia-app/nutricoach/internal/scheduler"
	svcmocks "github.com/gidia-app/nutricoach/internal/services/mocks"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Wednesday
var now = time.Date(2026, 3, 4, 9, 0, 0, 0, time.UTC)

func clock() time.Time { return now }

func TestInactivityDetector_AlertsOncePerWindow(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := repomocks.NewMockUserRepository(ctrl)
	alerts := repomocks.NewMockAlertRepository(ctrl)
	ctx := context.Background()

	since := now.Add(-72 * time.Hour)
	fresh := models.User{ID: uuid.New()}
	alerted := models.User{ID: uuid.New()}
	broken := models.User{ID: uuid.New()}

	users.EXPECT().ListInactiveSince(ctx, since).Return([]models.User{fresh, alerted, broken}, nil)
	alerts.EXPECT().ExistsSince(ctx, fresh.ID, models.AlertTypeInactivity, since).Return(false, nil)
	alerts.EXPECT().ExistsSince(ctx, alerted.ID, models.AlertTypeInactivity, since).Return(true, nil)
	alerts.EXPECT().ExistsSince(ctx, broken.ID, models.AlertTypeInactivity, since).Return(false, errors.New("timeout"))
	alerts.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, a *models.Alert) error {
		assert.Equal(t, fresh.ID, a.UserID)
		assert.Equal(t, models.AlertTypeInactivity, a.Type)
		assert.Contains(t, a.Message, "3 days")
		return nil
	})

	j := NewInactivityDetector(users, alerts, 72*time.Hour)
	j.now = clock
	require.NoError(t, j.Run(ctx))
}

func TestInactivityDetector_ListFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := repomocks.NewMockUserRepository(ctrl)
	users.EXPECT().ListInactiveSince(gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))

	j := NewInactivityDetector(users, repomocks.NewMockAlertRepository(ctrl), 72*time.Hour)
	assert.Error(t, j.Run(context.Background()))
}

func TestAlertCleanup_UsesRetention(t *testing.T) {
	ctrl := gomock.NewController(t)
	alerts := repomocks.NewMockAlertRepository(ctrl)
	alerts.EXPECT().DeleteOlderThan(gomock.Any(), now.Add(-720*time.Hour)).Return(int64(12), nil)

	j := NewAlertCleanup(alerts, 720*time.Hour)
	j.now = clock
	require.NoError(t, j.Run(context.Background()))
}

func TestLogCleanup_ThirtyDays(t *testing.T) {
	ctrl := gomock.NewController(t)
	logs := repomocks.NewMockSystemLogRepository(ctrl)
	logs.EXPECT().DeleteOlderThan(gomock.Any(), now.AddDate(0, 0, -30)).Return(int64(0), nil)

	j := NewLogCleanup(logs, logRetention)
	j.now = clock
	require.NoError(t, j.Run(context.Background()))
}

func progressFixture(t *testing.T) (*WeeklyProgress, *repomocks.MockProfileRepository, *repomocks.MockProgressRepository, *svcmocks.MockMailer) {
	t.Helper()
	ctrl := gomock.NewController(t)
	profiles := repomocks.NewMockProfileRepository(ctrl)
	progress := repomocks.NewMockProgressRepository(ctrl)
	mailer := svcmocks.NewMockMailer(ctrl)
	j := NewWeeklyProgress(profiles, progress, mailer)
	j.mailer = mail.NewPatient(mailer, time.Millisecond, 2)
	j.now = clock
	return j, profiles, progress, mailer
}

func batchOf(profiles ...models.NutritionalProfile) func(context.Context, int, func([]models.NutritionalProfile) error) error {
	return func(_ context.Context, _ int, fn func([]models.NutritionalProfile) error) error {
		return fn(profiles)
	}
}

func TestWeeklyProgress_QueuesAverages(t *testing.T) {
	j, profiles, progress, mailer := progressFixture(t)

	goal := 2000
	p := models.NutritionalProfile{
		UserID:           uuid.New(),
		DailyCalorieGoal: &goal,
		WaterGoal:        3000,
		User:             models.User{Name: "Ada", Email: "ada@example.com"},
	}
	start := time.Date(2026, 2, 25, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)
	change := -0.8

	profiles.EXPECT().EachBatch(gomock.Any(), progressBatchSize, gomock.Any()).DoAndReturn(batchOf(p))
	progress.EXPECT().Intake(gomock.Any(), p.UserID, start, end).
		Return(repository.Intake{Calories: 12600, WaterML: 17500, DaysLogged: 6}, nil)
	progress.EXPECT().WeightChange(gomock.Any(), p.UserID, start, end).Return(&change, nil)
	mailer.EXPECT().Queue(gomock.Any(), "ada@example.com", mail.ProgressUpdate{
		Name:         "Ada",
		PeriodStart:  start,
		PeriodEnd:    time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC),
		DaysLogged:   6,
		AvgCalories:  1800,
		CalorieGoal:  2000,
		AvgWaterML:   2500,
		WaterGoal:    3000,
		WeightChange: &change,
	}).Return(nil)

	require.NoError(t, j.Run(context.Background()))
}

func TestWeeklyProgress_StuckQueueSkipsUser(t *testing.T) {
	j, profiles, progress, mailer := progressFixture(t)

	a := models.NutritionalProfile{UserID: uuid.New(), User: models.User{Email: "a@example.com"}}
	b := models.NutritionalProfile{UserID: uuid.New(), User: models.User{Email: "b@example.com"}}

	profiles.EXPECT().EachBatch(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(batchOf(a, b))
	progress.EXPECT().Intake(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(repository.Intake{}, nil).Times(2)
	progress.EXPECT().WeightChange(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).Times(2)
	mailer.EXPECT().Queue(gomock.Any(), "a@example.com", gomock.Any()).Return(mail.ErrQueueFull).Times(3)
	mailer.EXPECT().Queue(gomock.Any(), "b@example.com", gomock.Any()).Return(nil)

	require.NoError(t, j.Run(context.Background()))
}

type countingSender struct {
	delay time.Duration
	sent  atomic.Int32
}

func (s *countingSender) Send(context.Context, mail.Message) error {
	time.Sleep(s.delay)
	s.sent.Add(1)
	return nil
}

func TestWeeklyProgress_WaitsForSlowWorkers(t *testing.T) {
	ctrl := gomock.NewController(t)
	profiles := repomocks.NewMockProfileRepository(ctrl)
	progress := repomocks.NewMockProgressRepository(ctrl)

	renderer, err := mail.NewRenderer("https://gidia.test")
	require.NoError(t, err)
	sender := &countingSender{delay: 20 * time.Millisecond}
	queue := mail.NewQueue(renderer, sender, 1, 4)

	j := NewWeeklyProgress(profiles, progress, queue)
	j.now = clock

	batch := make([]models.NutritionalProfile, 20)
	for i := range batch {
		batch[i] = models.NutritionalProfile{UserID: uuid.New(), User: models.User{Name: "User", Email: "user@example.com"}}
	}
	profiles.EXPECT().EachBatch(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(batchOf(batch...))
	progress.EXPECT().Intake(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(repository.Intake{}, nil).Times(20)
	progress.EXPECT().WeightChange(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).Times(20)

	require.NoError(t, j.Run(context.Background()))
	require.NoError(t, queue.Close(context.Background()))
	assert.EqualValues(t, 20, sender.sent.Load())
}

func TestWeeklyProgress_ClosedQueueAborts(t *testing.T) {
	j, profiles, progress, mailer := progressFixture(t)

	a := models.NutritionalProfile{UserID: uuid.New(), User: models.User{Email: "a@example.com"}}
	b := models.NutritionalProfile{UserID: uuid.New(), User: models.User{Email: "b@example.com"}}

	profiles.EXPECT().EachBatch(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(batchOf(a, b))
	progress.EXPECT().Intake(gomock.Any(), a.UserID, gomock.Any(), gomock.Any()).Return(repository.Intake{}, nil)
	progress.EXPECT().WeightChange(gomock.Any(), a.UserID, gomock.Any(), gomock.Any()).Return(nil, nil)
	mailer.EXPECT().Queue(gomock.Any(), "a@example.com", gomock.Any()).Return(mail.ErrQueueClosed)

	assert.ErrorIs(t, j.Run(context.Background()), mail.ErrQueueClosed)
}

func TestRegister_AddsAllJobs(t *testing.T) {
	s := scheduler.New(scheduler.LocalLocker{})
	Register(s, Deps{}, &config.Config{InactivityWindow: 72 * time.Hour, AlertRetention: 720 * time.Hour})

	assert.ElementsMatch(t, []string{InactivityDetect, AlertsCleanup, ProgressWeekly, LogsCleanup}, s.Jobs())
}
