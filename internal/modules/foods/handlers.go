package foods

import (
	"errors"

	"github.com/gidia-app/nutricoach/internal/modules"
	"github.com/gofiber/fiber/v2"
)

type FoodHandler struct {
	service *FoodService
}

func NewFoodHandler(service *FoodService) *FoodHandler {
	return &FoodHandler{service: service}
}

func (h *FoodHandler) List(c *fiber.Ctx) error {
	limit, offset := modules.Paging(c, 20, 100)

	foods, total, err := h.service.Search(c.UserContext(), c.Query("q"), limit, offset)
	if err != nil {
		return modules.ServerError(c, "Failed to fetch foods")
	}

	return c.JSON(FoodListResponse{Foods: foods, Total: total, Limit: limit, Offset: offset})
}

func (h *FoodHandler) Get(c *fiber.Ctx) error {
	id, err := modules.ParamID(c)
	if err != nil {
		return modules.BadRequest(c, "Invalid food ID")
	}

	food, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, ErrFoodNotFound) {
			return modules.NotFound(c, err.Error())
		}
		return modules.ServerError(c, "Failed to fetch food")
	}

	return c.JSON(food)
}

func (h *FoodHandler) Create(c *fiber.Ctx) error {
	var req FoodRequest
	if ok, err := modules.Bind(c, &req); !ok {
		return err
	}

	food, err := h.service.Create(c.UserContext(), req)
	if err != nil {
		return modules.ServerError(c, "Failed to create food")
	}

	return c.Status(fiber.StatusCreated).JSON(food)
}

func (h *FoodHandler) Update(c *fiber.Ctx) error {
	id, err := modules.ParamID(c)
	if err != nil {
		return modules.BadRequest(c, "Invalid food ID")
	}

	var req FoodRequest
	if ok, err := modules.Bind(c, &req); !ok {
		return err
	}

	food, err := h.service.Update(c.UserContext(), id, req)
	if err != nil {
		if errors.Is(err, ErrFoodNotFound) {
			return modules.NotFound(c, err.Error())
		}
		return modules.ServerError(c, "Failed to update food")
	}

	return c.JSON(food)
}

func (h *FoodHandler) Delete(c *fiber.Ctx) error {
	id, err := modules.ParamID(c)
	if err != nil {
		return modules.BadRequest(c, "Invalid food ID")
	}

	if err := h.service.Delete(c.UserContext(), id); err != nil {
		if errors.Is(err, ErrFoodNotFound) {
			return modules.NotFound(c, err.Error())
		}
		return modules.ServerError(c, "Failed to delete food")
	}

	return c.SendStatus(fiber.StatusNoContent)
}
