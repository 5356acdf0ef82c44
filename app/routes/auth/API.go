package auth

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Kevin-innovation/dlab-dashboard/app/config"
	"github.com/Kevin-innovation/dlab-dashboard/app/database"
	"github.com/Kevin-innovation/dlab-dashboard/app/validation"
)

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginAPI verifies credentials, records a session and issues a JWT in an
// HTTP-only cookie.
func LoginAPI(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validation.Validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validation.Format(err)})
	}

	db := config.GetDB()
	user, err := database.GetUserByEmail(db, req.Email)
	if err != nil || !CheckPasswordHash(req.Password, user.Password) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid email or password"})
	}

	sessionID, err := database.CreateSession(db, user.ID, time.Now().Add(tokenLifetime))
	if err != nil {
		log.Printf("Error creating session for %s: %v", user.Email, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create session"})
	}

	token, expiresAt, err := GenerateJWT(user.ID, user.Email, user.Name, sessionID)
	if err != nil {
		log.Printf("Error signing token for %s: %v", user.Email, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create session"})
	}

	c.Cookie(&fiber.Cookie{
		Name:     "jwt_token",
		Value:    token,
		Expires:  expiresAt,
		HTTPOnly: true,
		SameSite: "Lax",
	})

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"user": fiber.Map{
			"id":    user.ID,
			"email": user.Email,
			"name":  user.Name,
		},
		"token": token,
	})
}

// LogoutAPI revokes the session behind the current token and clears the
// cookie.
func LogoutAPI(c *fiber.Ctx) error {
	if claims, ok := c.Locals("claims").(*JWTClaims); ok && claims.ID != "" {
		if err := database.DeleteSession(config.GetDB(), claims.ID); err != nil {
			log.Printf("Error deleting session %s: %v", claims.ID, err)
		}
	}

	c.Cookie(&fiber.Cookie{
		Name:     "jwt_token",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
	})
	return c.JSON(fiber.Map{"message": "Logged out"})
}

// MeAPI returns the logged-in teacher's profile.
func MeAPI(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	user, err := database.GetUserByID(config.GetDB(), userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}
	return c.JSON(fiber.Map{"user": fiber.Map{
		"id":    user.ID,
		"email": user.Email,
		"name":  user.Name,
	}})
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

// ChangePasswordAPI rotates the teacher's password.
func ChangePasswordAPI(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	var req changePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validation.Validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validation.Format(err)})
	}

	db := config.GetDB()
	user, err := database.GetUserByID(db, userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}
	if !CheckPasswordHash(req.CurrentPassword, user.Password) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Current password is incorrect"})
	}

	hashed, err := HashPassword(req.NewPassword)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to hash password"})
	}
	if err := database.UpdateUserPassword(db, userID, hashed); err != nil {
		log.Printf("Error updating password for %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update password"})
	}
	return c.JSON(fiber.Map{"message": "Password updated"})
}
