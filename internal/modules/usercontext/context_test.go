package usercontext

import (
	"context"
	"testing"
	"time"

	"github.com/gidia-app/nutricoach/internal/models"
	"github.com/gidia-app/nutricoach/internal/repository"
	repomocks "github.com/gidia-app/nutricoach/internal/repository/mocks"
	"github.com/gidia-app/nutricoach/internal/services"
	svcmocks "github.com/gidia-app/nutricoach/internal/services/mocks"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_TodayTotalsAndGoals(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := repomocks.NewMockUserRepository(ctrl)
	profiles := repomocks.NewMockProfileRepository(ctrl)
	progress := repomocks.NewMockProgressRepository(ctrl)
	alerts := repomocks.NewMockAlertRepository(ctrl)

	userID := uuid.New()
	goal := 2200
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	users.EXPECT().FindByID(gomock.Any(), userID).Return(&models.User{ID: userID, Name: "Ada"}, nil)
	profiles.EXPECT().Get(gomock.Any(), userID).Return(&models.NutritionalProfile{
		UserID: userID, Height: 165, Weight: 60, Age: 40, Gender: "female", ActivityLevel: "light",
		DailyCalorieGoal: &goal, WaterGoal: 2500,
	}, nil)
	progress.EXPECT().Intake(gomock.Any(), userID, day, day.AddDate(0, 0, 1)).
		Return(repository.Intake{Calories: 1234.56, Protein: 80.04, WaterML: 1750}, nil)
	alerts.EXPECT().CountUnread(gomock.Any(), userID).Return(int64(2), nil)

	b := NewBuilder(
		services.NewProfileService(users, svcmocks.NewMockAvatarStore(ctrl), 1<<20),
		services.NewNutritionalProfileService(profiles),
		progress, alerts,
	)
	b.now = func() time.Time { return day.Add(14 * time.Hour) }

	snap, err := b.Build(context.Background(), userID)
	require.NoError(t, err)

	assert.Equal(t, "Ada", snap.User.Name)
	require.NotNil(t, snap.Metrics)
	assert.Equal(t, "2026-03-02", snap.Today.Date)
	assert.Equal(t, 1234.6, snap.Today.Calories)
	assert.Equal(t, 80.0, snap.Today.Protein)
	assert.Equal(t, &goal, snap.Today.CalorieGoal)
	assert.Equal(t, 1750, snap.Today.WaterML)
	assert.Equal(t, 2500, snap.Today.WaterGoal)
	assert.Equal(t, int64(2), snap.UnreadAlerts)
}

func TestBuild_WithoutProfileUsesDefaultWaterGoal(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := repomocks.NewMockUserRepository(ctrl)
	profiles := repomocks.NewMockProfileRepository(ctrl)
	progress := repomocks.NewMockProgressRepository(ctrl)
	alerts := repomocks.NewMockAlertRepository(ctrl)
	userID := uuid.New()

	users.EXPECT().FindByID(gomock.Any(), userID).Return(&models.User{ID: userID}, nil)
	profiles.EXPECT().Get(gomock.Any(), userID).Return(nil, repository.ErrNotFound)
	progress.EXPECT().Intake(gomock.Any(), userID, gomock.Any(), gomock.Any()).Return(repository.Intake{}, nil)
	alerts.EXPECT().CountUnread(gomock.Any(), userID).Return(int64(0), nil)

	b := NewBuilder(
		services.NewProfileService(users, svcmocks.NewMockAvatarStore(ctrl), 1<<20),
		services.NewNutritionalProfileService(profiles),
		progress, alerts,
	)

	snap, err := b.Build(context.Background(), userID)
	require.NoError(t, err)
	assert.Nil(t, snap.Profile)
	assert.Nil(t, snap.Today.CalorieGoal)
	assert.Equal(t, 4000, snap.Today.WaterGoal)
}
