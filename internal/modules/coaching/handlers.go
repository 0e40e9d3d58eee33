package coaching

import (
	"github.com/gidia-app/nutricoach/internal/modules"
	"github.com/gofiber/fiber/v2"
)

type CoachingHandler struct {
	service *CoachingService
}

func NewCoachingHandler(service *CoachingService) *CoachingHandler {
	return &CoachingHandler{service: service}
}

func (h *CoachingHandler) Create(c *fiber.Ctx) error {
	userID, ok := modules.UserID(c)
	if !ok {
		return modules.Unauthorized(c)
	}

	var req CheckInRequest
	if ok, err := modules.Bind(c, &req); !ok {
		return err
	}

	checkIn, err := h.service.Create(c.UserContext(), userID, req)
	if err != nil {
		return modules.ServerError(c, "Failed to save check-in")
	}

	return c.Status(fiber.StatusCreated).JSON(checkIn)
}

func (h *CoachingHandler) List(c *fiber.Ctx) error {
	userID, ok := modules.UserID(c)
	if !ok {
		return modules.Unauthorized(c)
	}

	limit, offset := modules.Paging(c, 20, 100)

	checkIns, total, err := h.service.List(c.UserContext(), userID, limit, offset)
	if err != nil {
		return modules.ServerError(c, "Failed to fetch check-ins")
	}

	return c.JSON(CheckInListResponse{CheckIns: checkIns, Total: total, Limit: limit, Offset: offset})
}

func (h *CoachingHandler) Summary(c *fiber.Ctx) error {
	userID, ok := modules.UserID(c)
	if !ok {
		return modules.Unauthorized(c)
	}

	summary, err := h.service.Summary(c.UserContext(), userID)
	if err != nil {
		return modules.ServerError(c, "Failed to build coaching summary")
	}

	return c.JSON(summary)
}
