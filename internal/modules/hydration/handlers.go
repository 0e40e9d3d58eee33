package hydration

import (
	"errors"

	"github.com/gidia-app/nutricoach/internal/modules"
	"github.com/gofiber/fiber/v2"
)

type HydrationHandler struct {
	service *HydrationService
}

func NewHydrationHandler(service *HydrationService) *HydrationHandler {
	return &HydrationHandler{service: service}
}

func (h *HydrationHandler) List(c *fiber.Ctx) error {
	userID, ok := modules.UserID(c)
	if !ok {
		return modules.Unauthorized(c)
	}

	from, to, err := modules.Day(c)
	if err != nil {
		return modules.BadRequest(c, err.Error())
	}

	logs, err := h.service.List(c.UserContext(), userID, from, to)
	if err != nil {
		return modules.ServerError(c, "Failed to fetch hydration logs")
	}

	return c.JSON(LogListResponse{Date: from.Format("2006-01-02"), Logs: logs})
}

func (h *HydrationHandler) Create(c *fiber.Ctx) error {
	userID, ok := modules.UserID(c)
	if !ok {
		return modules.Unauthorized(c)
	}

	var req LogWaterRequest
	if ok, err := modules.Bind(c, &req); !ok {
		return err
	}

	resp, err := h.service.Create(c.UserContext(), userID, req)
	if err != nil {
		return modules.ServerError(c, "Failed to log water")
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *HydrationHandler) Delete(c *fiber.Ctx) error {
	userID, ok := modules.UserID(c)
	if !ok {
		return modules.Unauthorized(c)
	}

	id, err := modules.ParamID(c)
	if err != nil {
		return modules.BadRequest(c, "Invalid log ID")
	}

	if err := h.service.Delete(c.UserContext(), userID, id); err != nil {
		if errors.Is(err, ErrLogNotFound) {
			return modules.NotFound(c, err.Error())
		}
		return modules.ServerError(c, "Failed to delete hydration log")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *HydrationHandler) Summary(c *fiber.Ctx) error {
	userID, ok := modules.UserID(c)
	if !ok {
		return modules.Unauthorized(c)
	}

	from, to, err := modules.Day(c)
	if err != nil {
		return modules.BadRequest(c, err.Error())
	}

	summary, err := h.service.Summary(c.UserContext(), userID, from, to)
	if err != nil {
		return modules.ServerError(c, "Failed to build hydration summary")
	}

	return c.JSON(summary)
}
