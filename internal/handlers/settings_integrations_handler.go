package handlers

import (
	"errors"

	"github.com/gidia-app/nutricoach/internal/dto"
	"github.com/gidia-app/nutricoach/internal/inertia"
	"github.com/gidia-app/nutricoach/internal/services"
	"github.com/gofiber/fiber/v2"
)

const integrationsPage = "/settings/integrations"

type SettingsIntegrationsHandler struct {
	integrations *services.IntegrationService
	pages        *inertia.Renderer
}

func NewSettingsIntegrationsHandler(integrations *services.IntegrationService, pages *inertia.Renderer) *SettingsIntegrationsHandler {
	return &SettingsIntegrationsHandler{integrations: integrations, pages: pages}
}

func (h *SettingsIntegrationsHandler) Edit(c *fiber.Ctx) error {
	userID, ok := currentUser(c)
	if !ok {
		return unauthorized(c)
	}

	spotify, err := h.integrations.Spotify(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return h.pages.Render(c, "settings/Integrations", fiber.Map{"spotify": spotify})
}

func (h *SettingsIntegrationsHandler) UpdateSpotify(c *fiber.Ctx) error {
	userID, ok := currentUser(c)
	if !ok {
		return unauthorized(c)
	}

	var req dto.UpdateSpotifyRequest
	errs, err := bind(c, &req)
	if err != nil {
		return badBody(c)
	}
	if errs != nil {
		return h.pages.ValidationFailed(c, errs, integrationsPage)
	}

	if err := h.integrations.SetShareListening(c.UserContext(), userID, *req.ShareListening); err != nil {
		if errors.Is(err, services.ErrNotConnected) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: true, Message: "Spotify is not connected"})
		}
		return err
	}

	if err := h.pages.WithStatus(c, "spotify-updated"); err != nil {
		return err
	}
	return h.pages.Redirect(c, integrationsPage)
}

func (h *SettingsIntegrationsHandler) DisconnectSpotify(c *fiber.Ctx) error {
	userID, ok := currentUser(c)
	if !ok {
		return unauthorized(c)
	}

	if err := h.integrations.DisconnectSpotify(c.UserContext(), userID); err != nil && !errors.Is(err, services.ErrNotConnected) {
		return err
	}

	if err := h.pages.WithStatus(c, "spotify-disconnected"); err != nil {
		return err
	}
	return h.pages.Redirect(c, integrationsPage)
}
