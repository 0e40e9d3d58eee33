package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/gidia-app/nutricoach/internal/dto"
	"github.com/gidia-app/nutricoach/internal/models"
	"github.com/gidia-app/nutricoach/internal/repository"
	"github.com/gidia-app/nutricoach/internal/storage"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrCurrentPasswordMismatch = errors.New("the provided password does not match your current password")
	ErrAvatarUploadDisabled    = errors.New("avatar uploads are not configured")
	ErrAvatarType              = errors.New("avatar must be a jpeg, png, webp or gif image")
	ErrAvatarTooLarge          = errors.New("avatar file is too large")
)

type ProfileService struct {
	users     repository.UserRepository
	avatars   AvatarStore
	maxAvatar int64
	now       func() time.Time
}

// NewProfileService accepts a nil avatars store; uploads then fail with
// ErrAvatarUploadDisabled.
func NewProfileService(users repository.UserRepository, avatars AvatarStore, maxAvatar int64) *ProfileService {
	return &ProfileService{users: users, avatars: avatars, maxAvatar: maxAvatar, now: time.Now}
}

func (s *ProfileService) Get(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *ProfileService) Update(ctx context.Context, userID uuid.UUID, req *dto.UpdateProfileRequest) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	taken, err := s.users.EmailTaken(ctx, email, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if taken {
		return nil, ErrEmailTaken
	}

	err = s.users.Update(ctx, userID, map[string]any{
		"name":  strings.TrimSpace(req.Name),
		"email": email,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		if errors.Is(err, repository.ErrAlreadyExists) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return s.Get(ctx, userID)
}

func (s *ProfileService) UpdatePassword(ctx context.Context, userID uuid.UUID, req *dto.UpdatePasswordRequest) error {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
		return ErrCurrentPasswordMismatch
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return s.users.Update(ctx, userID, map[string]any{"password": string(hash)})
}

// UploadAvatar stores the image and points the user at it. The previous
// avatar is removed best effort.
func (s *ProfileService) UploadAvatar(ctx context.Context, userID uuid.UUID, contentType string, size int64, body io.Reader) (string, error) {
	if s.avatars == nil {
		return "", ErrAvatarUploadDisabled
	}
	ext, ok := storage.AvatarExtension(contentType)
	if !ok {
		return "", ErrAvatarType
	}
	if s.maxAvatar > 0 && size > s.maxAvatar {
		return "", ErrAvatarTooLarge
	}

	user, err := s.Get(ctx, userID)
	if err != nil {
		return "", err
	}

	url, err := s.avatars.Put(ctx, storage.AvatarKey(userID, ext, s.now()), contentType, body)
	if err != nil {
		return "", err
	}

	if err := s.users.Update(ctx, userID, map[string]any{"avatar_url": url}); err != nil {
		return "", fmt.Errorf("failed to save avatar url: %w", err)
	}

	if old, ok := s.avatars.KeyFromURL(user.AvatarURL); ok {
		if err := s.avatars.Delete(ctx, old); err != nil {
			slog.Warn("failed to delete previous avatar", "user_id", userID.String(), "error", err)
		}
	}
	return url, nil
}
