package handler

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/sunthewhat/easy-cert-render/internal/renderer"
	"github.com/sunthewhat/easy-cert-render/type/response"
)

func HandleError(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(
			response.Error(fiberErr.Message),
		)
	}

	var configErr *renderer.ConfigInvalidError
	if errors.As(err, &configErr) {
		return c.Status(fiber.StatusBadRequest).JSON(
			response.Error("Invalid template config", configErr.Problems),
		)
	}

	var exhausted *renderer.ChainExhaustedError
	if errors.As(err, &exhausted) {
		return c.Status(fiber.StatusBadGateway).JSON(
			response.Error("All render backends failed", exhausted.Attempts),
		)
	}

	slog.Error("Handler Unhandled error", "error", err, "method", c.Method(), "path", c.Path())
	return c.Status(fiber.StatusInternalServerError).JSON(
		response.Error(err.Error()),
	)
}
