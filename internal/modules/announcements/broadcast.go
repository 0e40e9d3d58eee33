// Package announcements lets admins mail a platform update to every user.
package announcements

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gidia-app/nutricoach/internal/mail"
	"github.com/gidia-app/nutricoach/internal/models"
	"github.com/gidia-app/nutricoach/internal/repository"
	"github.com/gidia-app/nutricoach/internal/services"
)

const batchSize = 500

type PlatformUpdateRequest struct {
	Title      string   `json:"title" validate:"required,max=150"`
	Body       string   `json:"body" validate:"required,max=5000"`
	Highlights []string `json:"highlights" validate:"max=10,dive,max=200"`
	LinkURL    string   `json:"link_url" validate:"omitempty,url,max=512"`
}

type Result struct {
	Queued  int `json:"queued"`
	Dropped int `json:"dropped"`
}

type Broadcaster struct {
	users  repository.UserRepository
	mailer services.Mailer
}

func NewBroadcaster(users repository.UserRepository, mailer services.Mailer) *Broadcaster {
	return &Broadcaster{users: users, mailer: mail.NewPatient(mailer, mail.FullQueueWait, mail.FullQueueWaits)}
}

// Run queues the update for every user. A full queue is waited out for a
// while before the recipient is dropped; a closed queue ends the run.
func (b *Broadcaster) Run(ctx context.Context, req PlatformUpdateRequest) (Result, error) {
	var res Result
	err := b.users.EachBatch(ctx, batchSize, func(batch []models.User) error {
		for _, u := range batch {
			if err := ctx.Err(); err != nil {
				return err
			}
			m := mail.PlatformUpdate{
				Name:       u.Name,
				Title:      req.Title,
				Body:       req.Body,
				Highlights: req.Highlights,
				LinkURL:    req.LinkURL,
			}
			if err := b.mailer.Queue(ctx, u.Email, m); err != nil {
				if errors.Is(err, mail.ErrQueueClosed) {
					return err
				}
				res.Dropped++
				continue
			}
			res.Queued++
		}
		return nil
	})
	return res, err
}

// Start runs the broadcast in the background, detached from the request.
func (b *Broadcaster) Start(ctx context.Context, req PlatformUpdateRequest) {
	ctx = context.WithoutCancel(ctx)
	go func() {
		res, err := b.Run(ctx, req)
		if err != nil {
			slog.Error("platform update broadcast stopped", "title", req.Title, "queued", res.Queued, "error", err)
			return
		}
		slog.Info("platform update broadcast queued", "title", req.Title, "queued", res.Queued, "dropped", res.Dropped)
	}()
}
