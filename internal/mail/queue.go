package mail

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/gidia-app/nutricoach/internal/metrics"
)

var (
	ErrQueueFull   = errors.New("mail queue is full")
	ErrQueueClosed = errors.New("mail queue is closed")
)

const sendTimeout = 30 * time.Second

type job struct {
	to       string
	mailable Mailable
}

// Queue renders and sends mails on background workers. Delivery failures are
// logged and counted; nothing is retried.
type Queue struct {
	renderer *Renderer
	sender   Sender
	jobs     chan job

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

func NewQueue(renderer *Renderer, sender Sender, workers, size int) *Queue {
	if workers < 1 {
		workers = 1
	}
	q := &Queue{
		renderer: renderer,
		sender:   sender,
		jobs:     make(chan job, size),
	}
	for i := 0; i < workers; i++ {
		q.wg.Add(1)
		go q.work()
	}
	return q
}

// Queue enqueues m for delivery to `to` without waiting for it to be sent.
func (q *Queue) Queue(_ context.Context, to string, m Mailable) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		metrics.MailDropped.WithLabelValues(m.Template()).Inc()
		return ErrQueueClosed
	}

	select {
	case q.jobs <- job{to: to, mailable: m}:
		return nil
	default:
		metrics.MailDropped.WithLabelValues(m.Template()).Inc()
		return ErrQueueFull
	}
}

// Close stops accepting mail and waits for queued mail to drain or ctx to
// expire.
func (q *Queue) Close(ctx context.Context) error {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		close(q.jobs)
	}
	q.mu.Unlock()

	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (q *Queue) work() {
	defer q.wg.Done()
	for j := range q.jobs {
		q.deliver(j)
	}
}

func (q *Queue) deliver(j job) {
	name := j.mailable.Template()

	html, err := q.renderer.Render(j.mailable)
	if err != nil {
		metrics.MailFailed.WithLabelValues(name).Inc()
		slog.Error("mail render failed", "template", name, "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	err = q.sender.Send(ctx, Message{
		To:       j.to,
		Subject:  j.mailable.Subject(),
		HTML:     html,
		Template: name,
	})
	if err != nil {
		metrics.MailFailed.WithLabelValues(name).Inc()
		slog.Error("mail send failed", "template", name, "error", err)
		return
	}
	metrics.MailSent.WithLabelValues(name).Inc()
}
