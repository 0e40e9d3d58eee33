package profile

import (
	"errors"

	"github.com/gidia-app/nutricoach/internal/dto"
	"github.com/gidia-app/nutricoach/internal/models"
	"github.com/gidia-app/nutricoach/internal/modules"
	"github.com/gidia-app/nutricoach/internal/nutrition"
	"github.com/gidia-app/nutricoach/internal/services"
	"github.com/gofiber/fiber/v2"
)

type ProfileResponse struct {
	User    dto.UserResponse           `json:"user"`
	Profile *models.NutritionalProfile `json:"profile"`
	Metrics *nutrition.Metrics         `json:"metrics"`
}

type ProfileHandler struct {
	accounts *services.ProfileService
	profiles *services.NutritionalProfileService
}

func NewProfileHandler(accounts *services.ProfileService, profiles *services.NutritionalProfileService) *ProfileHandler {
	return &ProfileHandler{accounts: accounts, profiles: profiles}
}

func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	userID, ok := modules.UserID(c)
	if !ok {
		return modules.Unauthorized(c)
	}

	user, err := h.accounts.Get(c.UserContext(), userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return modules.NotFound(c, "User not found")
		}
		return modules.ServerError(c, "Failed to fetch profile")
	}

	resp := ProfileResponse{User: services.UserResponse(user)}

	view, err := h.profiles.Get(c.UserContext(), userID)
	switch {
	case errors.Is(err, services.ErrProfileNotFound):
	case err != nil:
		return modules.ServerError(c, "Failed to fetch profile")
	default:
		resp.Profile = view.Profile
		resp.Metrics = view.Metrics
	}

	return c.JSON(resp)
}

// UpdateNutritional replaces the nutritional profile, deriving missing goals.
func (h *ProfileHandler) UpdateNutritional(c *fiber.Ctx) error {
	userID, ok := modules.UserID(c)
	if !ok {
		return modules.Unauthorized(c)
	}

	var req dto.NutritionalProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return modules.BadRequest(c, "Invalid request body")
	}
	req.Normalize()

	if errs := modules.Validate(&req); errs != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ValidationErrorResponse{
			Message: errs.Summary(), Errors: errs,
		})
	}

	view, err := h.profiles.Save(c.UserContext(), userID, &req)
	if err != nil {
		return modules.ServerError(c, "Failed to save nutritional profile")
	}

	return c.JSON(view)
}
