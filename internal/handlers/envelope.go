package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/jjenkins/gabinete/internal/model"
)

const internalErrorMessage = "Erro interno do servidor. Consulte o log"

// envelope is the body of every API response. The HTTP status is repeated in
// Status because the web client reads it from the body.
type envelope struct {
	Status   int              `json:"status"`
	Mensagem string           `json:"mensagem,omitempty"`
	Message  string           `json:"message,omitempty"`
	Data     any              `json:"data,omitempty"`
	Links    *model.PageLinks `json:"links,omitempty"`
}

func respond(c *fiber.Ctx, status int, message string, data any, links *model.PageLinks) error {
	return c.Status(status).JSON(envelope{
		Status:   status,
		Mensagem: message,
		Data:     data,
		Links:    links,
	})
}

func internalError(c *fiber.Ctx, logger *slog.Logger, err error) error {
	logger.ErrorContext(c.UserContext(), "request failed",
		"method", c.Method(),
		"path", c.Path(),
		"error", err,
	)
	return respond(c, fiber.StatusInternalServerError, internalErrorMessage, nil, nil)
}

func loggerOrDefault(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
