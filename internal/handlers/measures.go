package handlers

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/jjenkins/gabinete/internal/service"
)

const noMeasuresMessage = "Nenhuma MP encontrada"

// MeasureLister is the provisional-measure pipeline as seen by the HTTP layer
type MeasureLister interface {
	List(ctx context.Context, q service.MeasureQuery) (*service.MeasurePage, error)
}

// MeasuresHandler serves provisional measures. Its envelope uses "message"
// rather than "mensagem"; the web client depends on that.
func MeasuresHandler(measures MeasureLister, logger *slog.Logger) fiber.Handler {
	logger = loggerOrDefault(logger)
	return func(c *fiber.Ctx) error {
		q := service.MeasureQuery{
			Year:  c.QueryInt("ano"),
			Items: c.QueryInt("itens"),
			Page:  c.QueryInt("pagina"),
		}

		page, err := measures.List(c.UserContext(), q)
		if err != nil {
			return internalError(c, logger, err)
		}

		if len(page.Measures) == 0 {
			return c.Status(fiber.StatusOK).JSON(envelope{
				Status:  fiber.StatusOK,
				Message: noMeasuresMessage,
			})
		}

		return c.Status(fiber.StatusOK).JSON(envelope{
			Status:  fiber.StatusOK,
			Message: "OK",
			Data:    page.Measures,
			Links:   &page.Links,
		})
	}
}
