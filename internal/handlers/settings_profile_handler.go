package handlers

import (
	"errors"
	"log/slog"

	"github.com/gidia-app/nutricoach/internal/dto"
	"github.com/gidia-app/nutricoach/internal/inertia"
	"github.com/gidia-app/nutricoach/internal/services"
	"github.com/gofiber/fiber/v2"
)

const profilePage = "/settings/profile"

type SettingsProfileHandler struct {
	profiles *services.ProfileService
	pages    *inertia.Renderer
}

func NewSettingsProfileHandler(profiles *services.ProfileService, pages *inertia.Renderer) *SettingsProfileHandler {
	return &SettingsProfileHandler{profiles: profiles, pages: pages}
}

func (h *SettingsProfileHandler) Edit(c *fiber.Ctx) error {
	userID, ok := currentUser(c)
	if !ok {
		return unauthorized(c)
	}

	user, err := h.profiles.Get(c.UserContext(), userID)
	if err != nil {
		return err
	}

	return h.pages.Render(c, "settings/Profile", fiber.Map{
		"user": services.UserResponse(user),
	})
}

func (h *SettingsProfileHandler) Update(c *fiber.Ctx) error {
	userID, ok := currentUser(c)
	if !ok {
		return unauthorized(c)
	}

	var req dto.UpdateProfileRequest
	errs, err := bind(c, &req)
	if err != nil {
		return badBody(c)
	}
	if errs != nil {
		return h.pages.ValidationFailed(c, errs, profilePage)
	}

	if _, err := h.profiles.Update(c.UserContext(), userID, &req); err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			return h.pages.ValidationFailed(c, map[string]string{"email": "The email has already been taken."}, profilePage)
		}
		return err
	}

	if err := h.pages.WithStatus(c, "profile-updated"); err != nil {
		return err
	}
	return h.pages.Redirect(c, profilePage)
}

func (h *SettingsProfileHandler) UploadAvatar(c *fiber.Ctx) error {
	userID, ok := currentUser(c)
	if !ok {
		return unauthorized(c)
	}

	fh, err := c.FormFile("avatar")
	if err != nil {
		return h.pages.ValidationFailed(c, map[string]string{"avatar": "The avatar field is required."}, profilePage)
	}
	f, err := fh.Open()
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = h.profiles.UploadAvatar(c.UserContext(), userID, fh.Header.Get("Content-Type"), fh.Size, f)
	switch {
	case errors.Is(err, services.ErrAvatarType), errors.Is(err, services.ErrAvatarTooLarge):
		return h.pages.ValidationFailed(c, map[string]string{"avatar": "The avatar " + err.Error() + "."}, profilePage)
	case errors.Is(err, services.ErrAvatarUploadDisabled):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
	case err != nil:
		slog.Error("avatar upload failed", "user_id", userID.String(), "error", err)
		return err
	}

	if err := h.pages.WithStatus(c, "avatar-updated"); err != nil {
		return err
	}
	return h.pages.Redirect(c, profilePage)
}
