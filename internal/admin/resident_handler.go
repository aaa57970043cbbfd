package admin

import (
	"github.com/gofiber/fiber/v2"

	"visitor-backend/internal/auth"
)

// GET /api/admin/residents?search=&apartment=
func ListResidentsHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := svc.ListResidents(c.UserContext(), ResidentQuery{
			Search:    c.Query("search"),
			Apartment: c.Query("apartment"),
		})
		if err != nil {
			return mutationError(err, "", "Residents could not be listed")
		}
		return c.JSON(res)
	}
}

// POST /api/admin/residents
func CreateResidentHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := auth.CurrentSession(c)
		if err != nil {
			return err
		}

		var body CreateResidentRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		r, err := svc.CreateResident(c.UserContext(), actor, body)
		if err != nil {
			return mutationError(err, "", "Resident could not be created")
		}
		return c.Status(fiber.StatusCreated).JSON(r)
	}
}

// DELETE /api/admin/residents/:id
func DeleteResidentHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := auth.CurrentSession(c)
		if err != nil {
			return err
		}

		if _, err := svc.DeleteResident(c.UserContext(), actor, c.Params("id")); err != nil {
			return mutationError(err, "Resident not found", "Resident could not be deleted")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
