package push

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/gidia-app/nutricoach/internal/models"
	"github.com/gidia-app/nutricoach/internal/repository"
)

const alertPushTimeout = 10 * time.Second

// AlertPublisher is an AlertRepository that also pushes every created alert
// to the user's devices. Pushes run in the background and never fail the
// create.
type AlertPublisher struct {
	repository.AlertRepository
	pusher Pusher
	wg     sync.WaitGroup
}

func NewAlertPublisher(alerts repository.AlertRepository, pusher Pusher) *AlertPublisher {
	return &AlertPublisher{AlertRepository: alerts, pusher: pusher}
}

func (p *AlertPublisher) Create(ctx context.Context, alert *models.Alert) error {
	if err := p.AlertRepository.Create(ctx, alert); err != nil {
		return err
	}

	a := *alert
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		pushCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), alertPushTimeout)
		defer cancel()

		err := p.pusher.Push(pushCtx, a.UserID, Notification{
			Title: a.Title,
			Body:  a.Message,
			Data:  map[string]string{"type": a.Type, "alert_id": a.ID.String()},
		})
		if err != nil {
			slog.Warn("alert push failed", "user_id", a.UserID.String(), "alert_id", a.ID.String(), "error", err)
		}
	}()
	return nil
}

// Wait blocks until in-flight pushes finish.
func (p *AlertPublisher) Wait() {
	p.wg.Wait()
}
