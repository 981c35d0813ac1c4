package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/timeout"
)

// WithDeadline runs h with a user context that expires after d, so upstream
// calls made through c.UserContext() are abandoned once the request is over budget.
func WithDeadline(h fiber.Handler, d time.Duration) fiber.Handler {
	return timeout.NewWithContext(h, d)
}
