package handlers

import (
	"github.com/gofiber/fiber/v2"
)

func HomeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return respond(c, fiber.StatusOK, "API em funcionamento", nil, nil)
	}
}

func NotFoundHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return respond(c, fiber.StatusNotFound, "Endpoint não encontrado", nil, nil)
	}
}
