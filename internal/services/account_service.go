package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gidia-app/nutricoach/internal/mail"
	"github.com/gidia-app/nutricoach/internal/repository"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var ErrPasswordRequired = errors.New("password is required")

type AccountService struct {
	users  repository.UserRepository
	tokens repository.TokenRepository
	mailer Mailer
	now    func() time.Time
}

func NewAccountService(users repository.UserRepository, tokens repository.TokenRepository, mailer Mailer) *AccountService {
	return &AccountService{users: users, tokens: tokens, mailer: mailer, now: time.Now}
}

// Delete re-authenticates the user and removes the account with everything it
// owns. The goodbye mail is best effort: a failure to queue it, or a panic in
// the mailer, is logged and deletion continues.
func (s *AccountService) Delete(ctx context.Context, userID uuid.UUID, password string) error {
	if password == "" {
		return ErrPasswordRequired
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}

	s.queueGoodbye(ctx, user.ID, user.Email, user.Name)

	if err := s.tokens.RevokeAllForUser(ctx, user.ID); err != nil {
		slog.Warn("failed to revoke refresh tokens before deletion", "user_id", user.ID.String(), "error", err)
	}

	if err := s.users.DeleteWithOwnedRows(ctx, user.ID); err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}

	slog.Info("account deleted", "user_id", user.ID.String())
	return nil
}

func (s *AccountService) queueGoodbye(ctx context.Context, userID uuid.UUID, email, name string) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("account deletion mail panicked", "user_id", userID.String(), "error", fmt.Sprint(r))
		}
	}()

	err := s.mailer.Queue(ctx, email, mail.AccountDeleted{Name: name, DeletedAt: s.now()})
	if err != nil {
		slog.Error("account deletion mail not queued", "user_id", userID.String(), "error", err)
	}
}
