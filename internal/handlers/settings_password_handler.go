package handlers

import (
	"errors"

	"github.com/gidia-app/nutricoach/internal/dto"
	"github.com/gidia-app/nutricoach/internal/inertia"
	"github.com/gidia-app/nutricoach/internal/services"
	"github.com/gofiber/fiber/v2"
)

const passwordPage = "/settings/password"

type SettingsPasswordHandler struct {
	profiles *services.ProfileService
	pages    *inertia.Renderer
}

func NewSettingsPasswordHandler(profiles *services.ProfileService, pages *inertia.Renderer) *SettingsPasswordHandler {
	return &SettingsPasswordHandler{profiles: profiles, pages: pages}
}

func (h *SettingsPasswordHandler) Edit(c *fiber.Ctx) error {
	return h.pages.Render(c, "settings/Password", fiber.Map{})
}

func (h *SettingsPasswordHandler) Update(c *fiber.Ctx) error {
	userID, ok := currentUser(c)
	if !ok {
		return unauthorized(c)
	}

	var req dto.UpdatePasswordRequest
	errs, err := bind(c, &req)
	if err != nil {
		return badBody(c)
	}
	if errs != nil {
		return h.pages.ValidationFailed(c, errs, passwordPage)
	}

	if err := h.profiles.UpdatePassword(c.UserContext(), userID, &req); err != nil {
		if errors.Is(err, services.ErrCurrentPasswordMismatch) {
			return h.pages.ValidationFailed(c, map[string]string{"current_password": "The password is incorrect."}, passwordPage)
		}
		return err
	}

	if err := h.pages.WithStatus(c, "password-updated"); err != nil {
		return err
	}
	return h.pages.Redirect(c, passwordPage)
}
