package handlers

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/jjenkins/gabinete/internal/config"
	"github.com/jjenkins/gabinete/internal/model"
	"github.com/jjenkins/gabinete/internal/service"
)

// ProposalLister is the bill pipeline as seen by the HTTP layer
type ProposalLister interface {
	List(ctx context.Context, q service.ProposalQuery) (*service.ProposalPage, error)
	Authors(ctx context.Context, proposalID int) ([]model.Author, error)
	Legislator() config.Legislator
}

func ProposalsHandler(proposals ProposalLister, logger *slog.Logger) fiber.Handler {
	logger = loggerOrDefault(logger)
	return func(c *fiber.Ctx) error {
		q := service.ProposalQuery{
			AuthorID: c.QueryInt("autor"),
			Type:     c.Query("tipo"),
			Year:     c.QueryInt("ano"),
			Items:    c.QueryInt("itens"),
			Order:    c.Query("ordem"),
			OrderBy:  c.Query("ordernarPor"),
			Page:     c.QueryInt("pagina"),
		}

		page, err := proposals.List(c.UserContext(), q)
		if err != nil {
			return internalError(c, logger, err)
		}

		message := fmt.Sprintf("Proposições de autoria e co-autoria do deputado(a): %s", proposals.Legislator().Name)
		return respond(c, fiber.StatusOK, message, page.Proposals, &page.Links)
	}
}

func ProposalAuthorsHandler(proposals ProposalLister, logger *slog.Logger) fiber.Handler {
	logger = loggerOrDefault(logger)
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return respond(c, fiber.StatusBadRequest, "Identificador de proposição inválido", nil, nil)
		}

		authors, err := proposals.Authors(c.UserContext(), id)
		if service.IsNotFound(err) {
			return respond(c, fiber.StatusOK, "Proposição não encontrada", nil, nil)
		}
		if err != nil {
			return internalError(c, logger, err)
		}

		return respond(c, fiber.StatusOK, fmt.Sprintf("Autores da proposição: %d", id), authors, nil)
	}
}
