package serverutils

import (
	"errors"

	"ai-docquery-be/internal/apperr"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware translates domain errors into the external error
// contract: {"error": "..."} bodies with a status that distinguishes
// bad/missing session (404) from upstream service failure (502) and
// persistence failure (500). Internal diagnostic detail never leaks.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		switch {
		case errors.Is(err, apperr.ErrSessionNotFound):
			return errorResponse(ctx, fiber.StatusNotFound, "Invalid sessionId")
		case errors.Is(err, apperr.ErrNoChunks):
			return errorResponse(ctx, fiber.StatusNotFound, "No chunks found")
		}

		var vecErr *apperr.VectorizationError
		if errors.As(err, &vecErr) {
			return errorResponse(ctx, fiber.StatusBadGateway, "embedding service unavailable")
		}

		var genErr *apperr.GenerationError
		if errors.As(err, &genErr) {
			return errorResponse(ctx, fiber.StatusBadGateway, "generation service unavailable")
		}

		var dimErr *apperr.DimensionMismatchError
		if errors.As(err, &dimErr) {
			return errorResponse(ctx, fiber.StatusConflict, "session embeddings are inconsistent")
		}

		var storeErr *apperr.StoreError
		if errors.As(err, &storeErr) {
			return errorResponse(ctx, fiber.StatusInternalServerError, "storage failure")
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return errorResponse(ctx, fiberErr.Code, fiberErr.Message)
		}

		return errorResponse(ctx, fiber.StatusInternalServerError, "internal server error")
	}
}

func errorResponse(ctx *fiber.Ctx, status int, message string) error {
	return ctx.Status(status).JSON(fiber.Map{"error": message})
}
