package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/gidia-app/nutricoach/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capture struct {
	mu   sync.Mutex
	rows []models.SystemLog
}

func (c *capture) write(batch []models.SystemLog) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rows = append(c.rows, batch...)
	return nil
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel(" error "))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
}

func TestPGHandler_StoresErrorsWithKnownColumns(t *testing.T) {
	c := &capture{}
	h := newPGHandler(c.write, time.Hour)
	logger := slog.New(h).With("job", "progress:weekly")

	logger.Info("not stored")
	logger.Error("weekly progress not computed",
		"user_id", "5d1c7c1e-0000-4000-8000-000000000001",
		"error", "timeout",
		"latency_ms", int64(42),
		"queued", 3,
	)
	h.Stop()

	require.Len(t, c.rows, 1)
	row := c.rows[0]
	assert.Equal(t, "ERROR", row.Level)
	assert.Equal(t, "weekly progress not computed", row.Message)
	assert.Equal(t, "progress:weekly", row.Job)
	require.NotNil(t, row.UserID)
	assert.Equal(t, "5d1c7c1e-0000-4000-8000-000000000001", *row.UserID)
	assert.Equal(t, "timeout", row.Error)
	assert.Equal(t, 42, row.LatencyMs)

	var extra map[string]any
	require.NoError(t, json.Unmarshal(row.Extra, &extra))
	assert.Equal(t, float64(3), extra["queued"])
}

func TestPGHandler_FlushesFullBatch(t *testing.T) {
	c := &capture{}
	h := newPGHandler(c.write, time.Hour)
	defer h.Stop()

	logger := slog.New(h)
	for i := 0; i < pgBatchSize; i++ {
		logger.Error("boom")
	}

	require.Eventually(t, func() bool {
		c.mu.Lock()
		defer c.mu.Unlock()
		return len(c.rows) == pgBatchSize
	}, time.Second, 5*time.Millisecond)
}

func TestMultiHandler_FansOutByLevel(t *testing.T) {
	var out bytes.Buffer
	c := &capture{}
	pg := newPGHandler(c.write, time.Hour)

	logger := slog.New(NewMultiHandler(NewJSONHandler(&out, "info"), pg))
	logger.Debug("hidden")
	logger.Info("account deleted", "user_id", "u1")
	logger.ErrorContext(context.Background(), "mail failed")
	pg.Stop()

	lines := bytes.Split(bytes.TrimSpace(out.Bytes()), []byte("\n"))
	assert.Len(t, lines, 2)
	assert.Len(t, c.rows, 1)
	assert.Equal(t, "mail failed", c.rows[0].Message)
}

type failingHandler struct{}

func (failingHandler) Enabled(context.Context, slog.Level) bool  { return true }
func (failingHandler) Handle(context.Context, slog.Record) error { return errors.New("disk full") }
func (h failingHandler) WithAttrs([]slog.Attr) slog.Handler      { return h }
func (h failingHandler) WithGroup(string) slog.Handler           { return h }

func TestMultiHandler_FailureDoesNotStopOthers(t *testing.T) {
	var out bytes.Buffer
	m := NewMultiHandler(failingHandler{}, NewJSONHandler(&out, "info"))

	r := slog.NewRecord(time.Now(), slog.LevelInfo, "profile saved", 0)
	err := m.Handle(context.Background(), r)

	assert.EqualError(t, err, "disk full")
	assert.Contains(t, out.String(), "profile saved")
}
