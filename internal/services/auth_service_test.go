package services

import (
	"context"
	"testing"
	"time"

	"github.com/gidia-app/nutricoach/internal/config"
	"github.com/gidia-app/nutricoach/internal/dto"
	"github.com/gidia-app/nutricoach/internal/mail"
	"github.com/gidia-app/nutricoach/internal/models"
	"github.com/gidia-app/nutricoach/internal/repository"
	repomocks "github.com/gidia-app/nutricoach/internal/repository/mocks"
	svcmocks "github.com/gidia-app/nutricoach/internal/services/mocks"
	"github.com/golang-jwt/jwt/v5"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCfg = &config.Config{
	JWTSecret:        "test-secret",
	JWTAccessExpiry:  15 * time.Minute,
	JWTRefreshExpiry: time.Hour,
}

func newAuthService(t *testing.T) (*AuthService, *repomocks.MockUserRepository, *repomocks.MockTokenRepository, *svcmocks.MockMailer) {
	t.Helper()
	ctrl := gomock.NewController(t)
	users := repomocks.NewMockUserRepository(ctrl)
	tokens := repomocks.NewMockTokenRepository(ctrl)
	mailer := svcmocks.NewMockMailer(ctrl)
	return NewAuthService(users, tokens, mailer, testCfg), users, tokens, mailer
}

func TestRegister_QueuesWelcomeMail(t *testing.T) {
	svc, users, tokens, mailer := newAuthService(t)

	users.EXPECT().EmailTaken(gomock.Any(), "ada@example.com", uuid.Nil).Return(false, nil)
	users.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, u *models.User) error {
			assert.Equal(t, "Ada", u.Name)
			assert.NotEqual(t, "password1", u.Password)
			return nil
		})
	mailer.EXPECT().Queue(gomock.Any(), "ada@example.com", mail.Welcome{Name: "Ada"}).Return(mail.ErrQueueFull)
	tokens.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

	resp, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Name: " Ada ", Email: "Ada@Example.com", Password: "password1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "ada@example.com", resp.User.Email)
}

func TestRegister_EmailTaken(t *testing.T) {
	svc, users, _, _ := newAuthService(t)
	users.EXPECT().EmailTaken(gomock.Any(), "ada@example.com", uuid.Nil).Return(true, nil)

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "password1"})
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegister_ConcurrentDuplicateIsEmailTaken(t *testing.T) {
	svc, users, _, _ := newAuthService(t)
	users.EXPECT().EmailTaken(gomock.Any(), "ada@example.com", uuid.Nil).Return(false, nil)
	users.EXPECT().Create(gomock.Any(), gomock.Any()).Return(repository.ErrAlreadyExists)

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "password1"})
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, users, _, _ := newAuthService(t)
	users.EXPECT().FindByEmail(gomock.Any(), "ada@example.com").
		Return(&models.User{ID: uuid.New(), Password: hashed(t, "password1")}, nil)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "ada@example.com", Password: "nope"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, users, _, _ := newAuthService(t)
	users.EXPECT().FindByEmail(gomock.Any(), "ghost@example.com").Return(nil, repository.ErrNotFound)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "ghost@example.com", Password: "x"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_TouchesLastActive(t *testing.T) {
	svc, users, tokens, _ := newAuthService(t)
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }
	user := &models.User{ID: uuid.New(), Email: "ada@example.com", Password: hashed(t, "password1")}

	users.EXPECT().FindByEmail(gomock.Any(), "ada@example.com").Return(user, nil)
	users.EXPECT().TouchLastActive(gomock.Any(), user.ID, now).Return(nil)
	tokens.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, rt *models.RefreshToken) error {
			assert.Equal(t, user.ID, rt.UserID)
			assert.Equal(t, now.Add(time.Hour), rt.ExpiresAt)
			assert.Len(t, rt.TokenHash, 64)
			return nil
		})

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "ada@example.com", Password: "password1"})
	require.NoError(t, err)
}

func TestRefresh_ExpiredTokenRejected(t *testing.T) {
	svc, _, tokens, _ := newAuthService(t)
	tokens.EXPECT().FindActive(gomock.Any(), hashToken("raw")).
		Return(&models.RefreshToken{UserID: uuid.New(), ExpiresAt: time.Now().Add(-time.Minute)}, nil)
	tokens.EXPECT().Revoke(gomock.Any(), hashToken("raw")).Return(nil)

	_, err := svc.Refresh(context.Background(), &dto.RefreshRequest{RefreshToken: "raw"})
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefresh_UnknownToken(t *testing.T) {
	svc, _, tokens, _ := newAuthService(t)
	tokens.EXPECT().FindActive(gomock.Any(), gomock.Any()).Return(nil, repository.ErrNotFound)

	_, err := svc.Refresh(context.Background(), &dto.RefreshRequest{RefreshToken: "raw"})
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestAccessToken_Claims(t *testing.T) {
	svc, _, _, _ := newAuthService(t)
	user := &models.User{ID: uuid.New(), Email: "ada@example.com", Role: "admin"}

	signed, err := svc.AccessToken(user)
	require.NoError(t, err)

	parsed, err := jwt.Parse(signed, func(*jwt.Token) (any, error) { return []byte("test-secret"), nil })
	require.NoError(t, err)
	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, user.ID.String(), claims["sub"])
	assert.Equal(t, "ada@example.com", claims["email"])
	assert.Equal(t, "admin", claims["role"])
}
