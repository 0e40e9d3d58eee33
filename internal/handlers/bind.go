package handlers

import (
	"github.com/gidia-app/nutricoach/internal/authctx"
	"github.com/gidia-app/nutricoach/internal/dto"
	"github.com/gidia-app/nutricoach/internal/validation"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// validate is swapped in tests for a validator with a fixed clock.
var validate = validation.Struct

// bind parses the JSON body into dst and runs its validate tags. A nil
// FieldErrors with a nil error means dst is ready to use.
func bind(c *fiber.Ctx, dst any) (validation.FieldErrors, error) {
	if err := c.BodyParser(dst); err != nil {
		return nil, err
	}
	return validate(dst), nil
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: true, Message: "Invalid request body",
	})
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error: true, Message: "Unauthorized",
	})
}

func currentUser(c *fiber.Ctx) (uuid.UUID, bool) {
	id, err := authctx.GetUserID(c)
	return id, err == nil
}
