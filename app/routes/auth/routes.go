package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Kevin-innovation/dlab-dashboard/app/config"
	"github.com/Kevin-innovation/dlab-dashboard/app/database"
)

// SetupAuthRoutes registers the auth endpoints.
func SetupAuthRoutes(app *fiber.App) {
	api := app.Group("/api/auth")
	api.Post("/login", LoginAPI)
	api.Post("/logout", AuthMiddleware, LogoutAPI)
	api.Get("/me", AuthMiddleware, MeAPI)
	api.Post("/change-password", AuthMiddleware, ChangePasswordAPI)
}

// AuthMiddleware authenticates a request from the jwt_token cookie or a
// Bearer header and stores the teacher identity in locals.
func AuthMiddleware(c *fiber.Ctx) error {
	token := c.Cookies("jwt_token")
	if token == "" {
		header := c.Get("Authorization")
		if strings.HasPrefix(header, "Bearer ") {
			token = strings.TrimPrefix(header, "Bearer ")
		}
	}
	if token == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Authentication required"})
	}

	claims, err := ValidateJWT(token)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired token"})
	}

	// The token ID must still have a live sessions row; logout deletes it.
	if _, err := database.GetSessionByID(config.GetDB(), claims.ID); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Session expired or revoked"})
	}

	c.Locals("user_id", claims.UserID)
	c.Locals("user_email", claims.Email)
	c.Locals("user_name", claims.Name)
	c.Locals("claims", claims)
	return c.Next()
}
