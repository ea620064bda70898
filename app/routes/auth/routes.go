package auth

import "github.com/gofiber/fiber/v2"

// SetupRoutes registers the authentication endpoints.
func SetupRoutes(app *fiber.App) {
	api := app.Group("/api/auth")
	api.Post("/login", LoginAPI)
}
