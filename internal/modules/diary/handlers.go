package diary

import (
	"errors"

	"github.com/gidia-app/nutricoach/internal/modules"
	"github.com/gidia-app/nutricoach/internal/modules/foods"
	"github.com/gofiber/fiber/v2"
)

type DiaryHandler struct {
	service *DiaryService
}

func NewDiaryHandler(service *DiaryService) *DiaryHandler {
	return &DiaryHandler{service: service}
}

func (h *DiaryHandler) List(c *fiber.Ctx) error {
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
		return modules.ServerError(c, "Failed to fetch food logs")
	}

	return c.JSON(LogListResponse{Date: from.Format("2006-01-02"), Logs: logs})
}

func (h *DiaryHandler) Create(c *fiber.Ctx) error {
	userID, ok := modules.UserID(c)
	if !ok {
		return modules.Unauthorized(c)
	}

	var req LogFoodRequest
	if ok, err := modules.Bind(c, &req); !ok {
		return err
	}

	entry, err := h.service.Create(c.UserContext(), userID, req)
	if err != nil {
		if errors.Is(err, foods.ErrFoodNotFound) {
			return modules.NotFound(c, err.Error())
		}
		return modules.ServerError(c, "Failed to log food")
	}

	return c.Status(fiber.StatusCreated).JSON(entry)
}

func (h *DiaryHandler) Delete(c *fiber.Ctx) error {
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
		return modules.ServerError(c, "Failed to delete food log")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *DiaryHandler) Summary(c *fiber.Ctx) error {
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
		return modules.ServerError(c, "Failed to build summary")
	}

	return c.JSON(summary)
}
