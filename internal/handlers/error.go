package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/whisperwall/server/internal/apperror"
	"github.com/whisperwall/server/internal/dto"
)

// ErrorHandler is the single place the service error taxonomy becomes HTTP.
// Anything outside the taxonomy is a 500 with a generic message; the detail
// goes to the logs, not the client.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := apperror.Status(err)
	message := err.Error()

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
		message = fiberErr.Message
	}

	if code >= 500 {
		slog.Error("unhandled server error",
			"method", c.Method(),
			"path", c.Path(),
			"request_id", c.Locals("requestid"),
			"error", err.Error(),
		)
		message = "Internal server error"
	}

	return c.Status(code).JSON(dto.ErrorResponse{Error: true, Message: message})
}
