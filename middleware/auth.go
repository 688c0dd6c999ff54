// middleware/auth.go
package middleware

import (
	"log"

	"github.com/gofiber/fiber/v2"
)

// UserContextMiddleware extracts the user identity set by the Gateway.
// X-User-ID is mandatory on every staking route; X-Wallet-Address is
// optional — its presence marks the session as wallet-connected (login via
// email or X leaves it empty, and wallet-gated actions will refuse).
func UserContextMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Get("X-User-ID")
		walletAddress := c.Get("X-Wallet-Address")

		if userID == "" {
			log.Printf("❌ [USER_CTX] X-User-ID required but missing on: %s", c.Path())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing X-User-ID — request must come through gateway with auth context",
			})
		}

		c.Locals("user_id", userID)
		c.Locals("wallet_address", walletAddress)

		return c.Next()
	}
}
