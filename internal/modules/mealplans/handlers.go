package mealplans

import (
	"errors"

	"github.com/gidia-app/nutricoach/internal/modules"
	"github.com/gofiber/fiber/v2"
)

type MealPlanHandler struct {
	service *MealPlanService
}

func NewMealPlanHandler(service *MealPlanService) *MealPlanHandler {
	return &MealPlanHandler{service: service}
}

func (h *MealPlanHandler) Create(c *fiber.Ctx) error {
	userID, ok := modules.UserID(c)
	if !ok {
		return modules.Unauthorized(c)
	}

	var req CreateMealPlanRequest
	if ok, err := modules.Bind(c, &req); !ok {
		return err
	}

	plan, err := h.service.Create(c.UserContext(), userID, req)
	if err != nil {
		if errors.Is(err, ErrInvalidMeals) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"message": err.Error(),
				"errors":  fiber.Map{"meals": err.Error()},
			})
		}
		return modules.ServerError(c, "Failed to save meal plan")
	}

	return c.Status(fiber.StatusCreated).JSON(plan)
}

func (h *MealPlanHandler) List(c *fiber.Ctx) error {
	userID, ok := modules.UserID(c)
	if !ok {
		return modules.Unauthorized(c)
	}

	limit, offset := modules.Paging(c, 20, 100)

	plans, total, err := h.service.List(c.UserContext(), userID, limit, offset)
	if err != nil {
		return modules.ServerError(c, "Failed to fetch meal plans")
	}

	return c.JSON(MealPlanListResponse{Plans: plans, Total: total, Limit: limit, Offset: offset})
}

func (h *MealPlanHandler) Get(c *fiber.Ctx) error {
	userID, ok := modules.UserID(c)
	if !ok {
		return modules.Unauthorized(c)
	}

	id, err := modules.ParamID(c)
	if err != nil {
		return modules.BadRequest(c, "Invalid meal plan ID")
	}

	plan, err := h.service.Get(c.UserContext(), userID, id)
	if err != nil {
		if errors.Is(err, ErrPlanNotFound) {
			return modules.NotFound(c, err.Error())
		}
		return modules.ServerError(c, "Failed to fetch meal plan")
	}

	return c.JSON(plan)
}

func (h *MealPlanHandler) Delete(c *fiber.Ctx) error {
	userID, ok := modules.UserID(c)
	if !ok {
		return modules.Unauthorized(c)
	}

	id, err := modules.ParamID(c)
	if err != nil {
		return modules.BadRequest(c, "Invalid meal plan ID")
	}

	if err := h.service.Delete(c.UserContext(), userID, id); err != nil {
		if errors.Is(err, ErrPlanNotFound) {
			return modules.NotFound(c, err.Error())
		}
		return modules.ServerError(c, "Failed to delete meal plan")
	}

	return c.SendStatus(fiber.StatusNoContent)
}
