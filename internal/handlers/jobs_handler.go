package handlers

import (
	"context"
	"errors"
	"log/slog"
	"sort"

	"github.com/gidia-app/nutricoach/internal/dto"
	"github.com/gidia-app/nutricoach/internal/scheduler"
	"github.com/gofiber/fiber/v2"
)

// JobRunner is the part of the scheduler the admin endpoints drive.
type JobRunner interface {
	Jobs() []string
	RunNow(ctx context.Context, name string) error
}

type JobsHandler struct {
	runner JobRunner
}

func NewJobsHandler(runner JobRunner) *JobsHandler {
	return &JobsHandler{runner: runner}
}

func (h *JobsHandler) List(c *fiber.Ctx) error {
	names := h.runner.Jobs()
	sort.Strings(names)
	return c.JSON(fiber.Map{"jobs": names})
}

// Run executes a job synchronously on the request.
func (h *JobsHandler) Run(c *fiber.Ctx) error {
	name := c.Params("name")
	err := h.runner.RunNow(c.UserContext(), name)
	switch {
	case err == nil:
		return c.JSON(fiber.Map{"job": name, "status": "ok"})
	case errors.Is(err, scheduler.ErrUnknownJob):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: true, Message: "Unknown job"})
	case errors.Is(err, scheduler.ErrRunning), errors.Is(err, scheduler.ErrLocked):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Error: true, Message: "Job is already running"})
	default:
		slog.Error("manual job run failed", "job", name, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Job failed"})
	}
}
