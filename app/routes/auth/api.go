package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"banrai-schools/app/config"
	"banrai-schools/app/database"
)

// LoginAPI authenticates an operator and issues a JWT for the mutating
// assignment endpoints.
func LoginAPI(c *fiber.Ctx) error {
	type LoginRequest struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if req.Email == "" || req.Password == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Email and password are required"})
	}

	db := config.GetDB()
	operator, err := database.GetOperatorByEmail(db, req.Email)
	if err != nil || !CheckPasswordHash(req.Password, operator.Password) {
		return c.Status(401).JSON(fiber.Map{"error": "Invalid credentials"})
	}

	token, err := GenerateJWT(operator.ID, operator.Email, operator.DisplayName)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to issue token"})
	}

	return c.JSON(fiber.Map{
		"token":    token,
		"operator": operator,
	})
}

// RequireAuth guards mutating endpoints with a bearer token check.
func RequireAuth(c *fiber.Ctx) error {
	header := c.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return c.Status(401).JSON(fiber.Map{"error": "Missing bearer token"})
	}

	claims, err := ValidateJWT(strings.TrimPrefix(header, "Bearer "))
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Invalid or expired token"})
	}

	c.Locals("operator_id", claims.OperatorID)
	return c.Next()
}
