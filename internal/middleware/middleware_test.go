package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gidia-app/nutricoach/internal/config"
	"github.com/gidia-app/nutricoach/internal/models"
	"github.com/gidia-app/nutricoach/internal/repository"
	repomocks "github.com/gidia-app/nutricoach/internal/repository/mocks"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cfg = &config.Config{
	JWTSecret:      "test-secret",
	AuthCookieName: "nutricoach_token",
	AdminEmails:    "Boss@Gidia.app, ops@gidia.app",
	AdminToken:     "letmein",
}

func sign(t *testing.T, id uuid.UUID, email string) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   id.String(),
		"email": email,
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	s, err := tok.SignedString([]byte(cfg.JWTSecret))
	require.NoError(t, err)
	return s
}

func adminApp(users repository.UserRepository) *fiber.App {
	app := fiber.New()
	app.Get("/admin", JWTProtected(cfg), AdminRequired(users, cfg), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	app.Get("/admin-token", AdminRequired(users, cfg), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func TestJWTProtected_CookieOrHeader(t *testing.T) {
	app := fiber.New()
	app.Get("/me", JWTProtected(cfg), func(c *fiber.Ctx) error { return c.SendString("ok") })
	token := sign(t, uuid.New(), "ada@example.com")

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	req = httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Cookie", "nutricoach_token="+token)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/me", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestWebProtected_RedirectsBrowsers(t *testing.T) {
	app := fiber.New()
	app.Get("/settings/profile", WebProtected(cfg), func(c *fiber.Ctx) error { return c.SendString("ok") })

	req := httptest.NewRequest("GET", "/settings/profile", nil)
	req.Header.Set("Accept", "text/html")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	req = httptest.NewRequest("GET", "/settings/profile", nil)
	req.Header.Set("X-Inertia", "true")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("X-Inertia-Location"))
}

func TestWebProtected_AcceptsBearerHeader(t *testing.T) {
	app := fiber.New()
	app.Get("/settings/profile", WebProtected(cfg), func(c *fiber.Ctx) error { return c.SendString("ok") })
	token := sign(t, uuid.New(), "ada@example.com")

	req := httptest.NewRequest("GET", "/settings/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// the raw token without a scheme is not a bearer credential
	req = httptest.NewRequest("GET", "/settings/profile", nil)
	req.Header.Set("Authorization", token)
	req.Header.Set("Accept", "application/json")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAdminRequired(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := repomocks.NewMockUserRepository(ctrl)
	app := adminApp(users)

	call := func(token string) int {
		req := httptest.NewRequest("GET", "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp.StatusCode
	}

	// listed email, no DB lookup
	assert.Equal(t, fiber.StatusOK, call(sign(t, uuid.New(), "boss@gidia.app")))

	adminID := uuid.New()
	users.EXPECT().FindByID(gomock.Any(), adminID).Return(&models.User{ID: adminID, Role: "admin"}, nil)
	assert.Equal(t, fiber.StatusOK, call(sign(t, adminID, "someone@example.com")))

	userID := uuid.New()
	users.EXPECT().FindByID(gomock.Any(), userID).Return(&models.User{ID: userID, Role: "user"}, nil)
	assert.Equal(t, fiber.StatusForbidden, call(sign(t, userID, "someone@example.com")))

	req := httptest.NewRequest("GET", "/admin-token", nil)
	req.Header.Set("X-Admin-Token", "letmein")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/admin-token", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestTrackActivity_OnlySuccessfulWrites(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := repomocks.NewMockUserRepository(ctrl)
	id := uuid.New()
	token := sign(t, id, "ada@example.com")

	app := fiber.New()
	app.Use(JWTProtected(cfg), TrackActivity(users))
	app.Get("/logs", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	app.Post("/logs", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusCreated) })
	app.Post("/bad", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusUnprocessableEntity) })

	users.EXPECT().TouchLastActive(gomock.Any(), id, gomock.Any()).Return(nil).Times(1)

	for _, r := range []struct{ method, path string }{{"GET", "/logs"}, {"POST", "/logs"}, {"POST", "/bad"}} {
		req := httptest.NewRequest(r.method, r.path, nil)
		req.Header.Set("Authorization", "Bearer "+token)
		_, err := app.Test(req)
		require.NoError(t, err)
	}
}
