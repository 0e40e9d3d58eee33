package modules

import (
	"errors"
	"strconv"
	"time"

	"github.com/gidia-app/nutricoach/internal/authctx"
	"github.com/gidia-app/nutricoach/internal/dto"
	"github.com/gidia-app/nutricoach/internal/validation"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var ErrInvalidDate = errors.New("date must be formatted as YYYY-MM-DD")

// Validate is shared by every module; tests swap it for a fixed clock.
var Validate = validation.Struct

// Now is the clock used for "today" defaults.
var Now = time.Now

func Unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error: true, Message: "Unauthorized",
	})
}

func BadRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: true, Message: msg,
	})
}

func NotFound(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
		Error: true, Message: msg,
	})
}

func ServerError(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: msg,
	})
}

// Bind parses the JSON body into dst and validates it. When it returns
// false the response has already been written.
func Bind(c *fiber.Ctx, dst any) (bool, error) {
	if err := c.BodyParser(dst); err != nil {
		return false, BadRequest(c, "Invalid request body")
	}
	if errs := Validate(dst); errs != nil {
		return false, c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ValidationErrorResponse{
			Message: errs.Summary(), Errors: errs,
		})
	}
	return true, nil
}

// UserID returns the authenticated user's id.
func UserID(c *fiber.Ctx) (uuid.UUID, bool) {
	id, err := authctx.GetUserID(c)
	return id, err == nil
}

// ParamID parses the :id route parameter.
func ParamID(c *fiber.Ctx) (uuid.UUID, error) {
	return uuid.Parse(c.Params("id"))
}

// Day returns the UTC bounds of the ?date= query day, today when absent.
func Day(c *fiber.Ctx) (start, end time.Time, err error) {
	start = DayStart(Now())
	if raw := c.Query("date"); raw != "" {
		d, perr := time.Parse(validation.DateLayout, raw)
		if perr != nil {
			return time.Time{}, time.Time{}, ErrInvalidDate
		}
		start = d
	}
	return start, start.AddDate(0, 0, 1), nil
}

func DayStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Paging reads limit and offset, clamping limit to (0, max].
func Paging(c *fiber.Ctx, def, max int) (limit, offset int) {
	limit, _ = strconv.Atoi(c.Query("limit", strconv.Itoa(def)))
	if limit <= 0 || limit > max {
		limit = def
	}
	offset, _ = strconv.Atoi(c.Query("offset", "0"))
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
