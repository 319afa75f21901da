package middleware

import (
	"strings"

	"carrental/internal/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const claimsKey = "claims"

// TokenValidator verifies a bearer token. *services.AuthService satisfies it.
type TokenValidator interface {
	ValidateToken(tokenString string) (*models.UserClaims, error)
}

// AuthRequired is a Fiber middleware that rejects requests without a valid bearer token
// and stores the verified claims for subsequent handlers.
func AuthRequired(validator TokenValidator, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header is required",
			})
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && strings.EqualFold(parts[0], "Bearer")) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header format must be 'Bearer <token>'",
			})
		}

		claims, err := validator.ValidateToken(strings.TrimSpace(parts[1]))
		if err != nil {
			log.Debug("JWT validation failed", zap.String("path", c.Path()), zap.Error(err))
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired token",
			})
		}

		c.Locals(claimsKey, claims)
		return c.Next()
	}
}

// Claims returns the verified claims stored by AuthRequired, or nil.
func Claims(c *fiber.Ctx) *models.UserClaims {
	claims, _ := c.Locals(claimsKey).(*models.UserClaims)
	return claims
}
