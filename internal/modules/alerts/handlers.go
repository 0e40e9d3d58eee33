package alerts

import (
	"errors"
	"time"

	"github.com/gidia-app/nutricoach/internal/models"
	"github.com/gidia-app/nutricoach/internal/modules"
	"github.com/gidia-app/nutricoach/internal/repository"
	"github.com/gofiber/fiber/v2"
)

type AlertListResponse struct {
	Alerts []models.Alert `json:"alerts"`
	Unread int64          `json:"unread"`
}

type AlertHandler struct {
	alerts repository.AlertRepository
	now    func() time.Time
}

func NewAlertHandler(alerts repository.AlertRepository) *AlertHandler {
	return &AlertHandler{alerts: alerts, now: time.Now}
}

func (h *AlertHandler) List(c *fiber.Ctx) error {
	userID, ok := modules.UserID(c)
	if !ok {
		return modules.Unauthorized(c)
	}

	limit, _ := modules.Paging(c, 50, 200)
	unreadOnly := c.QueryBool("unread", false)

	list, err := h.alerts.List(c.UserContext(), userID, unreadOnly, limit)
	if err != nil {
		return modules.ServerError(c, "Failed to fetch alerts")
	}
	unread, err := h.alerts.CountUnread(c.UserContext(), userID)
	if err != nil {
		return modules.ServerError(c, "Failed to fetch alerts")
	}
	if list == nil {
		list = []models.Alert{}
	}

	return c.JSON(AlertListResponse{Alerts: list, Unread: unread})
}

func (h *AlertHandler) MarkRead(c *fiber.Ctx) error {
	userID, ok := modules.UserID(c)
	if !ok {
		return modules.Unauthorized(c)
	}

	id, err := modules.ParamID(c)
	if err != nil {
		return modules.BadRequest(c, "Invalid alert ID")
	}

	if err := h.alerts.MarkRead(c.UserContext(), userID, id, h.now()); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return modules.NotFound(c, "Alert not found")
		}
		return modules.ServerError(c, "Failed to update alert")
	}

	return c.JSON(fiber.Map{"message": "Alert marked as read"})
}

func (h *AlertHandler) MarkAllRead(c *fiber.Ctx) error {
	userID, ok := modules.UserID(c)
	if !ok {
		return modules.Unauthorized(c)
	}

	n, err := h.alerts.MarkAllRead(c.UserContext(), userID, h.now())
	if err != nil {
		return modules.ServerError(c, "Failed to update alerts")
	}

	return c.JSON(fiber.Map{"updated": n})
}

func (h *AlertHandler) Delete(c *fiber.Ctx) error {
	userID, ok := modules.UserID(c)
	if !ok {
		return modules.Unauthorized(c)
	}

	id, err := modules.ParamID(c)
	if err != nil {
		return modules.BadRequest(c, "Invalid alert ID")
	}

	if err := h.alerts.Delete(c.UserContext(), userID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return modules.NotFound(c, "Alert not found")
		}
		return modules.ServerError(c, "Failed to delete alert")
	}

	return c.SendStatus(fiber.StatusNoContent)
}
