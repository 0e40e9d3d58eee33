package inertia

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp() *fiber.App {
	r := New("v1", session.New(), func(c *fiber.Ctx) fiber.Map {
		return fiber.Map{"app_name": "Gidia"}
	})

	app := fiber.New()
	app.Get("/settings/profile", func(c *fiber.Ctx) error {
		return r.Render(c, "settings/Profile", fiber.Map{"user": fiber.Map{"name": "Ada"}})
	})
	app.Patch("/settings/profile", func(c *fiber.Ctx) error {
		if c.Query("fail") != "" {
			return r.ValidationFailed(c, map[string]string{
				"name":  "The name field is required.",
				"email": "The email field must be a valid email address.",
			}, "/settings/profile")
		}
		if err := r.WithStatus(c, "profile-updated"); err != nil {
			return err
		}
		return r.Redirect(c, "/settings/profile")
	})
	return app
}

func inertiaGet(path string, cookies ...*http.Cookie) *http.Request {
	req := httptest.NewRequest(fiber.MethodGet, path, nil)
	req.Header.Set(HeaderInertia, "true")
	req.Header.Set(HeaderVersion, "v1")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return req
}

func decodePage(t *testing.T, resp *http.Response) Page {
	t.Helper()
	var page Page
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&page))
	return page
}

func TestRender_InertiaRequestGetsPageObject(t *testing.T) {
	resp, err := newApp().Test(inertiaGet("/settings/profile"))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "true", resp.Header.Get(HeaderInertia))

	page := decodePage(t, resp)
	assert.Equal(t, "settings/Profile", page.Component)
	assert.Equal(t, "/settings/profile", page.URL)
	assert.Equal(t, "v1", page.Version)
	assert.Equal(t, "Gidia", page.Props["app_name"])
	assert.Equal(t, map[string]any{"name": "Ada"}, page.Props["user"])
	assert.Equal(t, map[string]any{}, page.Props["errors"])
}

func TestRender_FirstVisitGetsHTMLShell(t *testing.T) {
	resp, err := newApp().Test(httptest.NewRequest(fiber.MethodGet, "/settings/profile", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(resp.Header.Get(fiber.HeaderContentType), "text/html"))

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), `<div id="app" data-page="{&#34;component&#34;:&#34;settings/Profile&#34;`)
}

func TestRender_StaleVersionForcesReload(t *testing.T) {
	req := inertiaGet("/settings/profile")
	req.Header.Set(HeaderVersion, "v0")

	resp, err := newApp().Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "/settings/profile", resp.Header.Get(HeaderLocation))
}

func TestFlashStatusSurvivesRedirect(t *testing.T) {
	app := newApp()

	resp, err := app.Test(httptest.NewRequest(fiber.MethodPatch, "/settings/profile", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/settings/profile", resp.Header.Get(fiber.HeaderLocation))

	cookies := resp.Cookies()
	require.NotEmpty(t, cookies)

	resp, err = app.Test(inertiaGet("/settings/profile", cookies...))
	require.NoError(t, err)
	page := decodePage(t, resp)
	assert.Equal(t, map[string]any{"status": "profile-updated"}, page.Props["flash"])

	// consumed
	resp, err = app.Test(inertiaGet("/settings/profile", cookies...))
	require.NoError(t, err)
	page = decodePage(t, resp)
	assert.Equal(t, map[string]any{"status": nil}, page.Props["flash"])
}

func TestValidationFailed_PlainClientGets422(t *testing.T) {
	resp, err := newApp().Test(httptest.NewRequest(fiber.MethodPatch, "/settings/profile?fail=1", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	var body struct {
		Message string            `json:"message"`
		Errors  map[string]string `json:"errors"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "The email field must be a valid email address. (and 1 more error)", body.Message)
	assert.Len(t, body.Errors, 2)
}

func TestValidationFailed_InertiaFormGoesBackWithErrors(t *testing.T) {
	app := newApp()

	req := httptest.NewRequest(fiber.MethodPatch, "/settings/profile?fail=1", nil)
	req.Header.Set(HeaderInertia, "true")
	req.Header.Set(fiber.HeaderReferer, "/settings/profile")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)

	resp, err = app.Test(inertiaGet("/settings/profile", resp.Cookies()...))
	require.NoError(t, err)
	page := decodePage(t, resp)
	assert.Equal(t, map[string]any{
		"name":  "The name field is required.",
		"email": "The email field must be a valid email address.",
	}, page.Props["errors"])
}
