package scheduler

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestDailyAt(t *testing.T) {
	s := DailyAt(9, 0)
	assert.Equal(t, at("2026-03-02T09:00:00Z"), s.Next(at("2026-03-02T08:59:59Z")))
	assert.Equal(t, at("2026-03-03T09:00:00Z"), s.Next(at("2026-03-02T09:00:00Z")))
	assert.Equal(t, at("2026-03-03T09:00:00Z"), s.Next(at("2026-03-02T23:10:00Z")))
}

func TestWeeklyOn(t *testing.T) {
	s := WeeklyOn(time.Monday, 8, 0)
	// 2026-03-02 is a Monday
	assert.Equal(t, at("2026-03-02T08:00:00Z"), s.Next(at("2026-02-27T12:00:00Z")))
	assert.Equal(t, at("2026-03-09T08:00:00Z"), s.Next(at("2026-03-02T08:00:00Z")))
	assert.Equal(t, at("2026-03-09T08:00:00Z"), s.Next(at("2026-03-03T00:00:00Z")))
}

func TestMonthlyOn(t *testing.T) {
	s := MonthlyOn(1, 3, 0)
	assert.Equal(t, at("2026-04-01T03:00:00Z"), s.Next(at("2026-03-01T03:00:00Z")))
	assert.Equal(t, at("2027-01-01T03:00:00Z"), s.Next(at("2026-12-15T00:00:00Z")))

	end := MonthlyOn(31, 0, 0)
	assert.Equal(t, at("2026-02-28T00:00:00Z"), end.Next(at("2026-02-01T00:00:00Z")))
	assert.Equal(t, at("2026-03-31T00:00:00Z"), end.Next(at("2026-02-28T00:00:00Z")))
}

func TestEvery(t *testing.T) {
	assert.Equal(t, at("2026-03-02T00:05:00Z"), Every(5*time.Minute).Next(at("2026-03-02T00:00:00Z")))
	// servers started at different moments land on the same tick
	assert.Equal(t, at("2026-03-02T00:05:00Z"), Every(5*time.Minute).Next(at("2026-03-02T00:02:31Z")))
}

type fakeLocker struct {
	mu       sync.Mutex
	held     map[string]bool
	err      error
	released int
}

func (l *fakeLocker) Acquire(_ context.Context, key string, _ time.Duration) (func(), bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return nil, false, l.err
	}
	if l.held == nil {
		l.held = map[string]bool{}
	}
	if l.held[key] {
		return nil, false, nil
	}
	l.held[key] = true
	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.held, key)
		l.released++
	}, true, nil
}

func TestRunNow_ReleasesLock(t *testing.T) {
	locker := &fakeLocker{}
	s := New(locker)
	var runs int
	s.Add(Job{Name: "alerts:cleanup", Schedule: Every(time.Hour), Run: func(context.Context) error {
		runs++
		return nil
	}})

	require.NoError(t, s.RunNow(context.Background(), "alerts:cleanup"))
	require.NoError(t, s.RunNow(context.Background(), "alerts:cleanup"))
	assert.Equal(t, 2, runs)
	assert.Equal(t, 2, locker.released)
}

func TestRunTick_OncePerTickAcrossServers(t *testing.T) {
	locker := &fakeLocker{}
	var runs atomic.Int32
	job := Job{Name: "progress:weekly", Schedule: WeeklyOn(time.Monday, 8, 0), Run: func(context.Context) error {
		runs.Add(1)
		return nil
	}}
	a, b := New(locker), New(locker)
	a.Add(job)
	b.Add(job)

	tick := at("2026-03-02T08:00:00Z")
	require.NoError(t, a.runTick(context.Background(), job.Name, tick))
	// b's timer fires after a has finished and released the run lock
	assert.ErrorIs(t, b.runTick(context.Background(), job.Name, tick), ErrLocked)
	assert.EqualValues(t, 1, runs.Load())

	next := at("2026-03-09T08:00:00Z")
	require.NoError(t, b.runTick(context.Background(), job.Name, next))
	assert.EqualValues(t, 2, runs.Load())

	// the run lock is released after each run, tick claims are left to expire
	assert.Equal(t, 2, locker.released)
	assert.True(t, locker.held[tickKey(job.Name, tick)])
	assert.False(t, locker.held["scheduler:"+job.Name])

	// manual runs are not bound to a tick
	require.NoError(t, a.RunNow(context.Background(), job.Name))
	assert.EqualValues(t, 3, runs.Load())
}

func TestRunNow_UnknownJob(t *testing.T) {
	assert.ErrorIs(t, New(LocalLocker{}).RunNow(context.Background(), "nope"), ErrUnknownJob)
}

func TestRunNow_SkipsWhenHeldElsewhere(t *testing.T) {
	locker := &fakeLocker{held: map[string]bool{"scheduler:inactivity:detect": true}}
	s := New(locker)
	called := false
	s.Add(Job{Name: "inactivity:detect", Schedule: DailyAt(9, 0), Run: func(context.Context) error {
		called = true
		return nil
	}})

	assert.ErrorIs(t, s.RunNow(context.Background(), "inactivity:detect"), ErrLocked)
	assert.False(t, called)
}

func TestRunNow_LockErrorSkips(t *testing.T) {
	s := New(&fakeLocker{err: errors.New("connection refused")})
	s.Add(Job{Name: "logs:cleanup", Schedule: DailyAt(4, 0), Run: func(context.Context) error {
		t.Fatal("job must not run without a lock")
		return nil
	}})

	assert.ErrorIs(t, s.RunNow(context.Background(), "logs:cleanup"), ErrLocked)
}

func TestRunNow_NoOverlapInProcess(t *testing.T) {
	s := New(LocalLocker{})
	started := make(chan struct{})
	unblock := make(chan struct{})
	s.Add(Job{Name: "progress:weekly", Schedule: Every(time.Hour), Run: func(context.Context) error {
		close(started)
		<-unblock
		return nil
	}})

	done := make(chan error)
	go func() { done <- s.RunNow(context.Background(), "progress:weekly") }()
	<-started

	assert.ErrorIs(t, s.RunNow(context.Background(), "progress:weekly"), ErrRunning)
	close(unblock)
	require.NoError(t, <-done)
}

func TestRunNow_PanicBecomesError(t *testing.T) {
	s := New(LocalLocker{})
	s.Add(Job{Name: "boom", Schedule: Every(time.Hour), Run: func(context.Context) error {
		panic("nil map")
	}})

	err := s.RunNow(context.Background(), "boom")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrRunning)

	// the guard is cleared after a panic
	err = s.RunNow(context.Background(), "boom")
	assert.NotErrorIs(t, err, ErrRunning)
}

func TestStartStop_RunsOnSchedule(t *testing.T) {
	s := New(LocalLocker{})
	var runs atomic.Int32
	s.Add(Job{Name: "tick", Schedule: Every(5 * time.Millisecond), Run: func(context.Context) error {
		runs.Add(1)
		return nil
	}})

	s.Start(context.Background())
	require.Eventually(t, func() bool { return runs.Load() >= 3 }, time.Second, time.Millisecond)
	s.Stop()

	after := runs.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, after, runs.Load())
}
