// Package inertia implements the server half of the Inertia page protocol on
// fiber: page objects for X-Inertia requests, an HTML shell otherwise, and
// session-backed flash data that survives the redirect after a form submit.
package inertia

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"

	"github.com/gidia-app/nutricoach/internal/validation"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

const (
	HeaderInertia  = "X-Inertia"
	HeaderVersion  = "X-Inertia-Version"
	HeaderLocation = "X-Inertia-Location"

	flashStatusKey = "flash_status"
	flashErrorsKey = "flash_errors"
)

type Page struct {
	Component string    `json:"component"`
	Props     fiber.Map `json:"props"`
	URL       string    `json:"url"`
	Version   string    `json:"version"`
}

var shell = template.Must(template.New("app").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Gidia</title>
<script type="module" src="/build/app.js?v={{.Version}}" defer></script>
</head>
<body>
<div id="app" data-page="{{.JSON}}"></div>
</body>
</html>
`))

type Renderer struct {
	version string
	store   *session.Store
	shared  func(c *fiber.Ctx) fiber.Map
}

// New builds a renderer. shared, when non-nil, contributes props to every
// page (the signed-in user, for example).
func New(version string, store *session.Store, shared func(c *fiber.Ctx) fiber.Map) *Renderer {
	return &Renderer{version: version, store: store, shared: shared}
}

func IsInertia(c *fiber.Ctx) bool {
	return c.Get(HeaderInertia) == "true"
}

// Render responds with component and props. Flash data from the previous
// request is merged in and cleared.
func (r *Renderer) Render(c *fiber.Ctx, component string, props fiber.Map) error {
	if IsInertia(c) && c.Method() == fiber.MethodGet && c.Get(HeaderVersion) != r.version {
		c.Set(HeaderLocation, c.OriginalURL())
		return c.SendStatus(fiber.StatusConflict)
	}

	merged := fiber.Map{}
	if r.shared != nil {
		for k, v := range r.shared(c) {
			merged[k] = v
		}
	}

	status, errs, err := r.takeFlash(c)
	if err != nil {
		return err
	}
	merged["flash"] = fiber.Map{"status": status}
	merged["errors"] = errs

	for k, v := range props {
		merged[k] = v
	}

	page := Page{
		Component: component,
		Props:     merged,
		URL:       c.OriginalURL(),
		Version:   r.version,
	}

	c.Vary(HeaderInertia)
	if IsInertia(c) {
		c.Set(HeaderInertia, "true")
		return c.JSON(page)
	}

	raw, err := json.Marshal(page)
	if err != nil {
		return fmt.Errorf("failed to encode page: %w", err)
	}
	var buf bytes.Buffer
	if err := shell.Execute(&buf, struct {
		JSON    string
		Version string
	}{string(raw), r.version}); err != nil {
		return err
	}
	c.Type("html", "utf-8")
	return c.Send(buf.Bytes())
}

// Redirect answers a form submit. 303 makes the browser follow with GET
// regardless of the original method.
func (r *Renderer) Redirect(c *fiber.Ctx, to string) error {
	return c.Redirect(to, fiber.StatusSeeOther)
}

// Back redirects to the referring page, or fallback.
func (r *Renderer) Back(c *fiber.Ctx, fallback string) error {
	to := c.Get(fiber.HeaderReferer)
	if to == "" {
		to = fallback
	}
	return r.Redirect(c, to)
}

// WithStatus flashes a status string for the next render.
func (r *Renderer) WithStatus(c *fiber.Ctx, status string) error {
	sess, err := r.store.Get(c)
	if err != nil {
		return err
	}
	sess.Set(flashStatusKey, status)
	return sess.Save()
}

// ValidationFailed reports field errors. Inertia forms get them flashed and
// are sent back; plain clients get 422 with the errors as JSON.
func (r *Renderer) ValidationFailed(c *fiber.Ctx, errs map[string]string, fallback string) error {
	if !IsInertia(c) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"message": firstMessage(errs),
			"errors":  errs,
		})
	}

	sess, err := r.store.Get(c)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(errs)
	if err != nil {
		return err
	}
	sess.Set(flashErrorsKey, string(raw))
	if err := sess.Save(); err != nil {
		return err
	}
	return r.Back(c, fallback)
}

// Forget destroys the visitor's session, used on logout and account deletion.
func (r *Renderer) Forget(c *fiber.Ctx) error {
	sess, err := r.store.Get(c)
	if err != nil {
		return err
	}
	return sess.Destroy()
}

func (r *Renderer) takeFlash(c *fiber.Ctx) (any, map[string]string, error) {
	errs := map[string]string{}

	sess, err := r.store.Get(c)
	if err != nil {
		return nil, errs, err
	}

	var status any
	dirty := false
	if v := sess.Get(flashStatusKey); v != nil {
		status = v
		sess.Delete(flashStatusKey)
		dirty = true
	}
	if v, ok := sess.Get(flashErrorsKey).(string); ok {
		_ = json.Unmarshal([]byte(v), &errs)
		sess.Delete(flashErrorsKey)
		dirty = true
	}

	if dirty {
		if err := sess.Save(); err != nil {
			return nil, errs, err
		}
	}
	return status, errs, nil
}

func firstMessage(errs map[string]string) string {
	return validation.FieldErrors(errs).Summary()
}
