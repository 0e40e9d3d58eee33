package handlers

import (
	"errors"

	"github.com/gidia-app/nutricoach/internal/dto"
	"github.com/gidia-app/nutricoach/internal/inertia"
	"github.com/gidia-app/nutricoach/internal/nutrition"
	"github.com/gidia-app/nutricoach/internal/services"
	"github.com/gofiber/fiber/v2"
)

const nutritionalProfilePage = "/settings/nutritional-profile"

// formOptions feeds the select inputs on the nutritional profile form.
var formOptions = fiber.Map{
	"genders":         []string{nutrition.GenderMale, nutrition.GenderFemale, nutrition.GenderOther},
	"activity_levels": []string{"sedentary", "light", "moderate", "active", "very_active"},
	"body_frames":     []string{"small", "medium", "large"},
	"body_types":      []string{"ectomorph", "mesomorph", "endomorph"},
}

type SettingsNutritionalProfileHandler struct {
	profiles *services.NutritionalProfileService
	pages    *inertia.Renderer
}

func NewSettingsNutritionalProfileHandler(profiles *services.NutritionalProfileService, pages *inertia.Renderer) *SettingsNutritionalProfileHandler {
	return &SettingsNutritionalProfileHandler{profiles: profiles, pages: pages}
}

func (h *SettingsNutritionalProfileHandler) Edit(c *fiber.Ctx) error {
	userID, ok := currentUser(c)
	if !ok {
		return unauthorized(c)
	}

	props := fiber.Map{"profile": nil, "metrics": nil, "options": formOptions}

	view, err := h.profiles.Get(c.UserContext(), userID)
	switch {
	case errors.Is(err, services.ErrProfileNotFound):
	case err != nil:
		return err
	default:
		props["profile"] = view.Profile
		props["metrics"] = view.Metrics
	}

	return h.pages.Render(c, "settings/NutritionalProfile", props)
}

func (h *SettingsNutritionalProfileHandler) Update(c *fiber.Ctx) error {
	userID, ok := currentUser(c)
	if !ok {
		return unauthorized(c)
	}

	var req dto.NutritionalProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	req.Normalize()

	if errs := validate(&req); errs != nil {
		return h.pages.ValidationFailed(c, errs, nutritionalProfilePage)
	}

	if _, err := h.profiles.Save(c.UserContext(), userID, &req); err != nil {
		return err
	}

	if err := h.pages.WithStatus(c, "nutritional-profile-updated"); err != nil {
		return err
	}
	return h.pages.Redirect(c, nutritionalProfilePage)
}

func (h *SettingsNutritionalProfileHandler) Destroy(c *fiber.Ctx) error {
	userID, ok := currentUser(c)
	if !ok {
		return unauthorized(c)
	}

	if err := h.profiles.Delete(c.UserContext(), userID); err != nil && !errors.Is(err, services.ErrProfileNotFound) {
		return err
	}

	if err := h.pages.WithStatus(c, "nutritional-profile-deleted"); err != nil {
		return err
	}
	return h.pages.Redirect(c, nutritionalProfilePage)
}
