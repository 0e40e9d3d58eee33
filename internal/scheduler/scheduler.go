// Package scheduler runs named periodic jobs. A job never overlaps with
// itself inside the process, and a Locker keeps it to one server at a time.
// Each scheduled tick also takes a lock that is left to expire, so a server
// whose timer fires late cannot repeat a tick a peer already ran.
package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/gidia-app/nutricoach/internal/metrics"
)

var (
	ErrUnknownJob = errors.New("unknown job")
	ErrRunning    = errors.New("job already running")
	ErrLocked     = errors.New("job locked by another server")
)

const defaultLockTTL = 30 * time.Minute

type Job struct {
	Name     string
	Schedule Schedule
	Run      func(ctx context.Context) error
	// LockTTL bounds how long a crashed server can hold the run lock. It is
	// also how long a tick stays claimed, so it must exceed clock skew
	// between servers.
	LockTTL time.Duration
}

type Scheduler struct {
	locker Locker
	now    func() time.Time

	mu      sync.Mutex
	jobs    map[string]Job
	running map[string]bool

	wg     sync.WaitGroup
	cancel context.CancelFunc
}

func New(locker Locker) *Scheduler {
	return &Scheduler{
		locker:  locker,
		now:     time.Now,
		jobs:    make(map[string]Job),
		running: make(map[string]bool),
	}
}

func (s *Scheduler) Add(job Job) {
	if job.LockTTL == 0 {
		job.LockTTL = defaultLockTTL
	}
	s.mu.Lock()
	s.jobs[job.Name] = job
	s.mu.Unlock()
}

// Start launches one loop per registered job. Call Stop to end them.
func (s *Scheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, job := range s.jobs {
		s.wg.Add(1)
		go s.loop(ctx, job)
	}
	slog.Info("scheduler started", "jobs", len(s.jobs))
}

// Stop cancels pending runs and waits for in-flight ones to return.
func (s *Scheduler) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
}

func (s *Scheduler) loop(ctx context.Context, job Job) {
	defer s.wg.Done()

	next := job.Schedule.Next(s.now())
	for {
		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		err := s.runTick(ctx, job.Name, next)
		if err != nil && !errors.Is(err, ErrRunning) && !errors.Is(err, ErrLocked) {
			slog.Error("scheduled job failed", "job", job.Name, "error", err)
		}

		// ticks missed while the job ran are dropped
		next = job.Schedule.Next(s.now())
	}
}

// RunNow runs a job immediately under the same overlap guarantees as a
// scheduled run. It returns ErrRunning or ErrLocked when the run is skipped.
func (s *Scheduler) RunNow(ctx context.Context, name string) error {
	return s.runTick(ctx, name, time.Time{})
}

func tickKey(name string, tick time.Time) string {
	return "scheduler:" + name + ":" + strconv.FormatInt(tick.Unix(), 10)
}

// runTick runs the job once. A non-zero tick is claimed cluster-wide for the
// lock TTL and never released early.
func (s *Scheduler) runTick(ctx context.Context, name string, tick time.Time) error {
	s.mu.Lock()
	job, ok := s.jobs[name]
	if !ok {
		s.mu.Unlock()
		return ErrUnknownJob
	}
	if s.running[name] {
		s.mu.Unlock()
		metrics.JobRuns.WithLabelValues(name, "skipped").Inc()
		return ErrRunning
	}
	s.running[name] = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.running, name)
		s.mu.Unlock()
	}()

	if !tick.IsZero() {
		if _, err := s.lock(ctx, name, tickKey(name, tick), job.LockTTL); err != nil {
			return err
		}
	}
	release, err := s.lock(ctx, name, "scheduler:"+name, job.LockTTL)
	if err != nil {
		return err
	}
	defer release()

	start := time.Now()
	err = s.run(ctx, job)
	elapsed := time.Since(start)
	metrics.JobDuration.WithLabelValues(name).Observe(elapsed.Seconds())

	if err != nil {
		metrics.JobRuns.WithLabelValues(name, "error").Inc()
		return err
	}
	metrics.JobRuns.WithLabelValues(name, "ok").Inc()
	slog.Info("job finished", "job", name, "latency_ms", elapsed.Milliseconds())
	return nil
}

func (s *Scheduler) lock(ctx context.Context, name, key string, ttl time.Duration) (func(), error) {
	release, acquired, err := s.locker.Acquire(ctx, key, ttl)
	if err != nil {
		metrics.JobRuns.WithLabelValues(name, "skipped").Inc()
		slog.Warn("job lock unavailable, skipping run", "job", name, "error", err)
		return nil, ErrLocked
	}
	if !acquired {
		metrics.JobRuns.WithLabelValues(name, "skipped").Inc()
		return nil, ErrLocked
	}
	return release, nil
}

func (s *Scheduler) run(ctx context.Context, job Job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("job panicked", "job", job.Name, "panic", r)
			err = errors.New("job panicked")
		}
	}()
	return job.Run(ctx)
}

// Jobs lists registered job names.
func (s *Scheduler) Jobs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.jobs))
	for name := range s.jobs {
		names = append(names, name)
	}
	return names
}
