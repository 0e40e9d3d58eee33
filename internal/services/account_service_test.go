package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gidia-app/nutricoach/internal/mail"
	"github.com/gidia-app/nutricoach/internal/models"
	"github.com/gidia-app/nutricoach/internal/repository"
	repomocks "github.com/gidia-app/nutricoach/internal/repository/mocks"
	svcmocks "github.com/gidia-app/nutricoach/internal/services/mocks"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func hashed(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

type accountFixture struct {
	svc    *AccountService
	users  *repomocks.MockUserRepository
	tokens *repomocks.MockTokenRepository
	mailer *svcmocks.MockMailer
	user   *models.User
}

func newAccountFixture(t *testing.T) accountFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := accountFixture{
		users:  repomocks.NewMockUserRepository(ctrl),
		tokens: repomocks.NewMockTokenRepository(ctrl),
		mailer: svcmocks.NewMockMailer(ctrl),
		user: &models.User{
			ID:       uuid.New(),
			Name:     "Ada",
			Email:    "ada@example.com",
			Password: hashed(t, "correct-horse"),
		},
	}
	f.svc = NewAccountService(f.users, f.tokens, f.mailer)
	f.svc.now = func() time.Time { return time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC) }
	return f
}

func TestAccountDelete_QueuesGoodbyeAndDeletes(t *testing.T) {
	f := newAccountFixture(t)
	ctx := context.Background()

	gomock.InOrder(
		f.users.EXPECT().FindByID(ctx, f.user.ID).Return(f.user, nil),
		f.mailer.EXPECT().Queue(ctx, "ada@example.com", mail.AccountDeleted{
			Name:      "Ada",
			DeletedAt: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		}).Return(nil),
		f.tokens.EXPECT().RevokeAllForUser(ctx, f.user.ID).Return(nil),
		f.users.EXPECT().DeleteWithOwnedRows(ctx, f.user.ID).Return(nil),
	)

	require.NoError(t, f.svc.Delete(ctx, f.user.ID, "correct-horse"))
}

func TestAccountDelete_MailFailureDoesNotBlockDeletion(t *testing.T) {
	f := newAccountFixture(t)
	ctx := context.Background()

	f.users.EXPECT().FindByID(ctx, f.user.ID).Return(f.user, nil)
	f.mailer.EXPECT().Queue(gomock.Any(), gomock.Any(), gomock.Any()).Return(mail.ErrQueueFull)
	f.tokens.EXPECT().RevokeAllForUser(ctx, f.user.ID).Return(nil)
	f.users.EXPECT().DeleteWithOwnedRows(ctx, f.user.ID).Return(nil)

	require.NoError(t, f.svc.Delete(ctx, f.user.ID, "correct-horse"))
}

func TestAccountDelete_MailPanicDoesNotBlockDeletion(t *testing.T) {
	f := newAccountFixture(t)
	ctx := context.Background()

	f.users.EXPECT().FindByID(ctx, f.user.ID).Return(f.user, nil)
	f.mailer.EXPECT().Queue(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, string, mail.Mailable) error { panic("transport exploded") })
	f.tokens.EXPECT().RevokeAllForUser(ctx, f.user.ID).Return(errors.New("db hiccup"))
	f.users.EXPECT().DeleteWithOwnedRows(ctx, f.user.ID).Return(nil)

	require.NoError(t, f.svc.Delete(ctx, f.user.ID, "correct-horse"))
}

func TestAccountDelete_WrongPasswordKeepsAccount(t *testing.T) {
	f := newAccountFixture(t)
	ctx := context.Background()

	f.users.EXPECT().FindByID(ctx, f.user.ID).Return(f.user, nil)
	// no mail, no revoke, no delete

	err := f.svc.Delete(ctx, f.user.ID, "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAccountDelete_PasswordRequired(t *testing.T) {
	f := newAccountFixture(t)
	require.ErrorIs(t, f.svc.Delete(context.Background(), f.user.ID, ""), ErrPasswordRequired)
}

func TestAccountDelete_UnknownUser(t *testing.T) {
	f := newAccountFixture(t)
	id := uuid.New()
	f.users.EXPECT().FindByID(gomock.Any(), id).Return(nil, repository.ErrNotFound)

	require.ErrorIs(t, f.svc.Delete(context.Background(), id, "x"), ErrUserNotFound)
}

func TestAccountDelete_StoreFailureSurfaces(t *testing.T) {
	f := newAccountFixture(t)
	boom := errors.New("tx aborted")

	f.users.EXPECT().FindByID(gomock.Any(), f.user.ID).Return(f.user, nil)
	f.mailer.EXPECT().Queue(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	f.tokens.EXPECT().RevokeAllForUser(gomock.Any(), f.user.ID).Return(nil)
	f.users.EXPECT().DeleteWithOwnedRows(gomock.Any(), f.user.ID).Return(boom)

	require.ErrorIs(t, f.svc.Delete(context.Background(), f.user.ID, "correct-horse"), boom)
}
