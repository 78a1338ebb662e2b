package middleware

import (
	"Backend-Encuestas/src/utils"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// AuthJWT parses the bearer token and exposes the requester identity and
// role to handlers. Token issuance and sessions belong to the external auth
// service; this middleware only reads claims.
func AuthJWT(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing or invalid Authorization header"})
	}

	tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
	claims, err := utils.ParseJWT(tokenStr)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired token", "detail": err.Error()})
	}

	c.Locals("userId", claims.UserID)
	c.Locals("role", claims.Role)

	return c.Next()
}
