package handlers

import (
	"errors"
	"time"

	"github.com/gidia-app/nutricoach/internal/dto"
	"github.com/gidia-app/nutricoach/internal/inertia"
	"github.com/gidia-app/nutricoach/internal/services"
	"github.com/gofiber/fiber/v2"
)

type SettingsAccountHandler struct {
	accounts   *services.AccountService
	pages      *inertia.Renderer
	cookieName string
}

func NewSettingsAccountHandler(accounts *services.AccountService, pages *inertia.Renderer, cookieName string) *SettingsAccountHandler {
	return &SettingsAccountHandler{accounts: accounts, pages: pages, cookieName: cookieName}
}

// Destroy deletes the signed-in account after checking the password, then
// logs the visitor out.
func (h *SettingsAccountHandler) Destroy(c *fiber.Ctx) error {
	userID, ok := currentUser(c)
	if !ok {
		return unauthorized(c)
	}

	var req dto.DeleteAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	err := h.accounts.Delete(c.UserContext(), userID, req.Password)
	switch {
	case errors.Is(err, services.ErrPasswordRequired):
		return h.pages.ValidationFailed(c, map[string]string{"password": "The password field is required."}, profilePage)
	case errors.Is(err, services.ErrInvalidCredentials):
		return h.pages.ValidationFailed(c, map[string]string{"password": "The password is incorrect."}, profilePage)
	case errors.Is(err, services.ErrUserNotFound):
		return unauthorized(c)
	case err != nil:
		return err
	}

	if err := h.pages.Forget(c); err != nil {
		return err
	}
	clearAuthCookie(c, h.cookieName)
	return h.pages.Redirect(c, "/")
}

func clearAuthCookie(c *fiber.Ctx, name string) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
