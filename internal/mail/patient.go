package mail

import (
	"context"
	"errors"
	"time"
)

// Defaults for bulk senders: a full queue is waited out for up to ten
// seconds per recipient.
const (
	FullQueueWait  = 200 * time.Millisecond
	FullQueueWaits = 50
)

// Enqueuer is satisfied by *Queue and anything wrapping it.
type Enqueuer interface {
	Queue(ctx context.Context, to string, m Mailable) error
}

// Patient retries ErrQueueFull so bulk jobs throttle to the workers'
// pace instead of dropping recipients. Any other error, including
// ErrQueueClosed, is returned at once.
type Patient struct {
	next  Enqueuer
	wait  time.Duration
	waits int
}

func NewPatient(next Enqueuer, wait time.Duration, waits int) *Patient {
	return &Patient{next: next, wait: wait, waits: waits}
}

func (p *Patient) Queue(ctx context.Context, to string, m Mailable) error {
	for i := 0; ; i++ {
		err := p.next.Queue(ctx, to, m)
		if !errors.Is(err, ErrQueueFull) || i == p.waits {
			return err
		}

		t := time.NewTimer(p.wait)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
	}
}
