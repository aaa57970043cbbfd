package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"visitor-backend/internal/logging"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/auth/login
func LoginHandler(a *Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if body.Email == "" || body.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Email and password are required")
		}

		s, err := a.Login(c.UserContext(), body.Email, body.Password)
		if errors.Is(err, ErrInvalidCredentials) {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid email or password")
		} else if err != nil {
			logging.Error("Login failed", zap.Error(err))
			return fiber.NewError(fiber.StatusInternalServerError, "Login failed")
		}

		token, err := a.IssueToken(s)
		if err != nil {
			logging.Error("Token generation failed", zap.Error(err))
			return fiber.NewError(fiber.StatusInternalServerError, "Token could not be created")
		}

		return c.JSON(fiber.Map{
			"token": token,
			"user":  s,
		})
	}
}

// POST /api/auth/logout
func LogoutHandler(a *Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, err := CurrentSession(c)
		if err != nil {
			return err
		}
		if err := a.Logout(c.UserContext(), s.ID); err != nil {
			logging.Error("Logout failed", zap.Error(err))
			return fiber.NewError(fiber.StatusInternalServerError, "Logout failed")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// GET /api/auth/me
func MeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, err := CurrentSession(c)
		if err != nil {
			return err
		}
		return c.JSON(s)
	}
}
