package server

import (
	"log/slog"

	"commentary/internal/middleware"
	"commentary/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errorHandler is the single place where handler errors become HTTP responses.
func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	status := models.StatusCode(err)
	if status >= fiber.StatusInternalServerError {
		middleware.Logger.ErrorContext(c.UserContext(), "request error",
			slog.Int("status", status),
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.String("error", err.Error()),
		)
	}
	return models.RespondWithError(c, err, !s.config.IsProduction())
}
