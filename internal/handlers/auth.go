package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// ClaimsKey is the fiber.Ctx Locals key holding the verified token claims
const ClaimsKey = "claims"

// RequireBearer verifies an HS256 bearer token issued by the login service.
// An empty secret disables verification.
func RequireBearer(secret string) fiber.Handler {
	if secret == "" {
		return func(c *fiber.Ctx) error {
			return c.Next()
		}
	}

	key := []byte(secret)
	keyFunc := func(*jwt.Token) (any, error) {
		return key, nil
	}

	return func(c *fiber.Ctx) error {
		raw, ok := strings.CutPrefix(c.Get(fiber.HeaderAuthorization), "Bearer ")
		if !ok || raw == "" {
			return unauthorized(c, "Token de autenticação não fornecido")
		}

		claims := &jwt.RegisteredClaims{}
		_, err := jwt.ParseWithClaims(raw, claims, keyFunc,
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
		)
		if errors.Is(err, jwt.ErrTokenExpired) {
			return unauthorized(c, "Token de autenticação expirado")
		}
		if err != nil {
			return unauthorized(c, "Token de autenticação inválido")
		}

		c.Locals(ClaimsKey, claims)
		return c.Next()
	}
}

// The web client reads auth failures from "message", as with measures
func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(envelope{
		Status:  fiber.StatusUnauthorized,
		Message: message,
	})
}
