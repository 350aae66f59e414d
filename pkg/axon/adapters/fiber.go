package adapters

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/toyz/axonbase/pkg/axon"
)

// FiberErrorHandler is a fiber.ErrorHandler writing *axon.HttpError values
// as JSON with their status. The recover middleware turns panicking stubs
// into errors that reach it.
func FiberErrorHandler(c *fiber.Ctx, err error) error {
	if httpErr, ok := axon.AsHttpError(err); ok {
		return c.Status(httpErr.StatusCode).JSON(httpErr)
	}

	code := fiber.StatusInternalServerError
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}
