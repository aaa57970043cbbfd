package invite

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"visitor-backend/internal/auth"
	"visitor-backend/internal/logging"
	"visitor-backend/internal/store"
)

func httpError(err error, failed string) error {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return fiber.NewError(fiber.StatusBadRequest, strings.TrimPrefix(err.Error(), ErrInvalidInput.Error()+": "))
	case errors.Is(err, ErrNotCancellable):
		return fiber.NewError(fiber.StatusConflict, "Invite is already expired")
	case errors.Is(err, store.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, "Invite not found")
	default:
		logging.Error(failed, zap.Error(err))
		return fiber.NewError(fiber.StatusInternalServerError, failed)
	}
}

// GET /api/invites?search=&status=&date=
func ListInvitesHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := auth.CurrentSession(c)
		if err != nil {
			return err
		}

		list, err := svc.List(c.UserContext(), sess.UserID, Query{
			Search: c.Query("search"),
			Status: c.Query("status"),
			Date:   c.Query("date"),
		})
		if err != nil {
			return httpError(err, "Invites could not be listed")
		}
		return c.JSON(list)
	}
}

// POST /api/invites
func CreateInviteHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := auth.CurrentSession(c)
		if err != nil {
			return err
		}

		var body CreateRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		inv, err := svc.Create(c.UserContext(), sess, body)
		if err != nil {
			return httpError(err, "Invite could not be created")
		}
		return c.Status(fiber.StatusCreated).JSON(view(*inv))
	}
}

// POST /api/invites/:id/cancel
func CancelInviteHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := auth.CurrentSession(c)
		if err != nil {
			return err
		}

		inv, err := svc.Cancel(c.UserContext(), sess, c.Params("id"))
		if err != nil {
			return httpError(err, "Invite could not be cancelled")
		}
		return c.JSON(view(*inv))
	}
}
