package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"visitor-backend/internal/logging"
	"visitor-backend/internal/models"
	"visitor-backend/internal/session"
)

const CtxSessionKey = "session"

func SessionMiddleware(a *Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Authorization header is required")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || parts[1] == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Authorization header format must be Bearer {token}")
		}

		s, err := a.Restore(c.UserContext(), parts[1])
		switch {
		case err == nil:
		case errors.Is(err, ErrInvalidToken):
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired token")
		case errors.Is(err, session.ErrNotFound):
			return fiber.NewError(fiber.StatusUnauthorized, "Session not found")
		default:
			logging.Error("Session restore failed", zap.Error(err))
			return fiber.NewError(fiber.StatusInternalServerError, "Session could not be restored")
		}

		c.Locals(CtxSessionKey, s)
		return c.Next()
	}
}

func CurrentSession(c *fiber.Ctx) (*session.Session, error) {
	s, ok := c.Locals(CtxSessionKey).(*session.Session)
	if !ok || s == nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Not logged in")
	}
	return s, nil
}

func CurrentRole(c *fiber.Ctx) (models.UserRole, error) {
	s, err := CurrentSession(c)
	if err != nil {
		return models.RoleUnknown, err
	}
	return s.Role, nil
}

func RequireRole(allowedRoles ...models.UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, err := CurrentRole(c)
		if err != nil {
			return err
		}

		for _, r := range allowedRoles {
			if r == role {
				return c.Next()
			}
		}
		return fiber.NewError(fiber.StatusForbidden, "You do not have permission for this action")
	}
}
