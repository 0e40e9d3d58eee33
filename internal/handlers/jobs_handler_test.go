package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gidia-app/nutricoach/internal/scheduler"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRunner struct {
	names []string
	errs  map[string]error
	ran   []string
}

func (s *stubRunner) Jobs() []string { return s.names }

func (s *stubRunner) RunNow(_ context.Context, name string) error {
	s.ran = append(s.ran, name)
	return s.errs[name]
}

func newJobsApp(r *stubRunner) *fiber.App {
	app := fiber.New()
	h := NewJobsHandler(r)
	app.Get("/admin/jobs", h.List)
	app.Post("/admin/jobs/:name/run", h.Run)
	return app
}

func TestJobsHandler_ListIsSorted(t *testing.T) {
	app := newJobsApp(&stubRunner{names: []string{"progress:weekly", "alerts:cleanup"}})

	resp, err := app.Test(httptest.NewRequest("GET", "/admin/jobs", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Jobs []string `json:"jobs"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, []string{"alerts:cleanup", "progress:weekly"}, body.Jobs)
}

func TestJobsHandler_RunStatuses(t *testing.T) {
	r := &stubRunner{errs: map[string]error{
		"missing": scheduler.ErrUnknownJob,
		"busy":    scheduler.ErrLocked,
		"broken":  errors.New("db down"),
	}}
	app := newJobsApp(r)

	cases := map[string]int{
		"inactivity:detect": fiber.StatusOK,
		"missing":           fiber.StatusNotFound,
		"busy":              fiber.StatusConflict,
		"broken":            fiber.StatusInternalServerError,
	}
	for name, want := range cases {
		resp, err := app.Test(httptest.NewRequest("POST", "/admin/jobs/"+name+"/run", nil))
		require.NoError(t, err)
		assert.Equal(t, want, resp.StatusCode, name)
	}
	assert.Len(t, r.ran, 4)
}
