package handlers

import (
	"errors"

	"carrental/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// errorStatuses maps service sentinels to HTTP status codes. Responses carry the
// sentinel's text only, never the wrapping context.
var errorStatuses = []struct {
	err    error
	status int
}{
	{services.ErrValidation, fiber.StatusUnprocessableEntity},
	{services.ErrUnauthenticated, fiber.StatusUnauthorized},
	{services.ErrInvalidCredentials, fiber.StatusUnauthorized},
	{services.ErrForbidden, fiber.StatusForbidden},
	{services.ErrCarNotFound, fiber.StatusNotFound},
	{services.ErrRentalNotFound, fiber.StatusNotFound},
	{services.ErrCarUnavailable, fiber.StatusConflict},
	{services.ErrEmailTaken, fiber.StatusConflict},
}

// classify returns the status code and public message for a service error.
func classify(err error) (int, string) {
	for _, e := range errorStatuses {
		if errors.Is(err, e.err) {
			return e.status, e.err.Error()
		}
	}
	return fiber.StatusInternalServerError, "Internal server error"
}

// writeError renders err as a JSON error response. Internal errors are logged
// and their details are not exposed.
func writeError(c *fiber.Ctx, log *zap.Logger, err error) error {
	status, message := classify(err)
	body := fiber.Map{"message": message}

	var vErr *services.ValidationError
	if errors.As(err, &vErr) {
		body = fiber.Map{"message": "Validation failed", "errors": vErr.Fields}
	}
	if status == fiber.StatusInternalServerError {
		log.Error("request failed", zap.String("method", c.Method()), zap.String("path", c.Path()), zap.Error(err))
	} else {
		log.Debug("request rejected", zap.Int("status", status), zap.Error(err))
	}
	return c.Status(status).JSON(body)
}

// invalidBody reports an unparseable request body as a validation failure.
func invalidBody(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
		"message": "Invalid request body",
		"error":   err.Error(),
	})
}

// ErrorHandler renders errors that escape handlers, such as unmatched routes.
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(fiber.Map{"message": fe.Message})
		}
		return writeError(c, log, err)
	}
}
