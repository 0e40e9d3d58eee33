package services

import (
	"context"
	"io"

	"github.com/gidia-app/nutricoach/internal/mail"
)

//go:generate mockgen -source=services.go -destination=mocks/services_mock.go -package=mocks

// Mailer queues a mailable for asynchronous delivery.
type Mailer interface {
	Queue(ctx context.Context, to string, mailable mail.Mailable) error
}

// AvatarStore is where uploaded avatars live.
type AvatarStore interface {
	Put(ctx context.Context, key, contentType string, body io.Reader) (string, error)
	Delete(ctx context.Context, key string) error
	KeyFromURL(url string) (string, bool)
}
