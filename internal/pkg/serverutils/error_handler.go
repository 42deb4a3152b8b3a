package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"careerhub-billing/internal/pkg/logger"
)

// ErrorHandlerMiddleware converts errors bubbling out of handlers into
// the response envelope. Unknown errors become opaque 500s.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		var appErr *AppError
		if errors.As(err, &appErr) {
			return ErrorResponse(ctx, appErr.Status, appErr.Code, appErr.Message)
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ErrorResponse(ctx, fiberErr.Code, "HTTP_ERROR", fiberErr.Message)
		}

		log.Error("http", "unhandled error", map[string]interface{}{
			"path":   ctx.Path(),
			"method": ctx.Method(),
			"error":  err.Error(),
		})
		return ErrorResponse(ctx, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}
