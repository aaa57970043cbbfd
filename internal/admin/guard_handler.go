package admin

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"visitor-backend/internal/auth"
	"visitor-backend/internal/logging"
	"visitor-backend/internal/store"
)

// mutationError maps service errors onto HTTP errors.
func mutationError(err error, notFound, failed string) error {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return fiber.NewError(fiber.StatusBadRequest, strings.TrimPrefix(err.Error(), ErrInvalidInput.Error()+": "))
	case errors.Is(err, store.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, notFound)
	default:
		logging.Error(failed, zap.Error(err))
		return fiber.NewError(fiber.StatusInternalServerError, failed)
	}
}

// GET /api/admin/guards?search=&shift=
func ListGuardsHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := svc.ListGuards(c.UserContext(), GuardQuery{
			Search: c.Query("search"),
			Shift:  c.Query("shift"),
		})
		if err != nil {
			return mutationError(err, "", "Guards could not be listed")
		}
		return c.JSON(res)
	}
}

// POST /api/admin/guards
func CreateGuardHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := auth.CurrentSession(c)
		if err != nil {
			return err
		}

		var body CreateGuardRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		g, err := svc.CreateGuard(c.UserContext(), actor, body)
		if err != nil {
			return mutationError(err, "", "Guard could not be created")
		}
		return c.Status(fiber.StatusCreated).JSON(g)
	}
}

// DELETE /api/admin/guards/:id
func DeleteGuardHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := auth.CurrentSession(c)
		if err != nil {
			return err
		}

		if _, err := svc.DeleteGuard(c.UserContext(), actor, c.Params("id")); err != nil {
			return mutationError(err, "Guard not found", "Guard could not be deleted")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
