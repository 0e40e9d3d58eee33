package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gidia-app/nutricoach/internal/dto"
	"github.com/gidia-app/nutricoach/internal/models"
	"github.com/gidia-app/nutricoach/internal/repository"
	repomocks "github.com/gidia-app/nutricoach/internal/repository/mocks"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func newProfileService(t *testing.T) (*NutritionalProfileService, *repomocks.MockProfileRepository) {
	t.Helper()
	repo := repomocks.NewMockProfileRepository(gomock.NewController(t))
	svc := NewNutritionalProfileService(repo)
	svc.now = func() time.Time { return time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC) }
	return svc, repo
}

func baseRequest() *dto.NutritionalProfileRequest {
	return &dto.NutritionalProfileRequest{
		Height:        ptr(180.0),
		Weight:        ptr(80.0),
		Age:           ptr(30),
		Gender:        "male",
		ActivityLevel: "moderate",
	}
}

// expectUpsert stores whatever is upserted and serves it back from Get.
func expectUpsert(repo *repomocks.MockProfileRepository) *models.NutritionalProfile {
	saved := &models.NutritionalProfile{}
	repo.EXPECT().Upsert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p *models.NutritionalProfile) error {
			*saved = *p
			return nil
		})
	repo.EXPECT().Get(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, uuid.UUID) (*models.NutritionalProfile, error) {
			cp := *saved
			return &cp, nil
		})
	return saved
}

func TestSave_DerivesGoalsWhenCalorieGoalMissing(t *testing.T) {
	svc, repo := newProfileService(t)
	userID := uuid.New()
	saved := expectUpsert(repo)

	view, err := svc.Save(context.Background(), userID, baseRequest())
	require.NoError(t, err)

	assert.Equal(t, userID, saved.UserID)
	require.NotNil(t, saved.DailyCalorieGoal)
	assert.Equal(t, 2759, *saved.DailyCalorieGoal)
	assert.Equal(t, 206, *saved.ProteinGoal)
	assert.Equal(t, 275, *saved.CarbsGoal)
	assert.Equal(t, 91, *saved.FatGoal)
	assert.Equal(t, 4000, saved.WaterGoal)
	assert.False(t, saved.IsMedicallySupervised)

	require.NotNil(t, view.Metrics)
	assert.Equal(t, 1780, view.Metrics.BMR)
	assert.Equal(t, 2759, view.Metrics.TDEE)
}

func TestSave_KeepsSuppliedGoals(t *testing.T) {
	svc, repo := newProfileService(t)
	saved := expectUpsert(repo)

	req := baseRequest()
	req.DailyCalorieGoal = ptr(2100)
	req.WaterGoal = ptr(3000)
	req.IsMedicallySupervised = ptr(true)

	_, err := svc.Save(context.Background(), uuid.New(), req)
	require.NoError(t, err)

	assert.Equal(t, 2100, *saved.DailyCalorieGoal)
	assert.Nil(t, saved.ProteinGoal)
	assert.Equal(t, 3000, saved.WaterGoal)
	assert.True(t, saved.IsMedicallySupervised)
}

func TestSave_TargetDateDrivesDeficit(t *testing.T) {
	svc, repo := newProfileService(t)
	saved := expectUpsert(repo)

	req := baseRequest()
	req.TargetWeight = ptr(70.0)
	req.TargetDate = ptr("2027-03-01")

	_, err := svc.Save(context.Background(), uuid.New(), req)
	require.NoError(t, err)

	require.NotNil(t, saved.TargetDate)
	assert.Equal(t, "2027-03-01", saved.TargetDate.Format("2006-01-02"))
	assert.Less(t, *saved.DailyCalorieGoal, 2759)
	assert.GreaterOrEqual(t, *saved.DailyCalorieGoal, 1958)
}

func TestSave_PastTargetDateFallsBackToTDEE(t *testing.T) {
	svc, repo := newProfileService(t)
	saved := expectUpsert(repo)

	req := baseRequest()
	req.TargetWeight = ptr(70.0)
	req.TargetDate = ptr("2026-03-01")

	_, err := svc.Save(context.Background(), uuid.New(), req)
	require.NoError(t, err)
	assert.Equal(t, 2759, *saved.DailyCalorieGoal)
}

func TestSave_UpsertFailureWritesNothingElse(t *testing.T) {
	svc, repo := newProfileService(t)
	boom := errors.New("unique violation")
	repo.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(boom)

	_, err := svc.Save(context.Background(), uuid.New(), baseRequest())
	require.ErrorIs(t, err, boom)
}

func TestGet_NotFound(t *testing.T) {
	svc, repo := newProfileService(t)
	repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, repository.ErrNotFound)

	_, err := svc.Get(context.Background(), uuid.New())
	require.ErrorIs(t, err, ErrProfileNotFound)
}

func TestDelete_NotFound(t *testing.T) {
	svc, repo := newProfileService(t)
	repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(repository.ErrNotFound)

	require.ErrorIs(t, svc.Delete(context.Background(), uuid.New()), ErrProfileNotFound)
}
