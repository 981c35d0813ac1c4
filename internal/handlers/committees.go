package handlers

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/jjenkins/gabinete/internal/config"
	"github.com/jjenkins/gabinete/internal/model"
)

// CommitteeLister lists committee memberships
type CommitteeLister interface {
	List(ctx context.Context, legislatorID int, activeOnly bool) ([]model.Committee, error)
	Legislator() config.Legislator
}

func CommitteesHandler(committees CommitteeLister, logger *slog.Logger) fiber.Handler {
	logger = loggerOrDefault(logger)
	return func(c *fiber.Ctx) error {
		activeOnly := c.Query("ativo") != "false"

		list, err := committees.List(c.UserContext(), c.QueryInt("autor"), activeOnly)
		if err != nil {
			return internalError(c, logger, err)
		}

		message := fmt.Sprintf("Comissões do deputado(a): %s", committees.Legislator().Name)
		return respond(c, fiber.StatusOK, message, list, nil)
	}
}
