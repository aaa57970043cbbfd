package verify

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"visitor-backend/internal/auth"
	"visitor-backend/internal/logging"
)

type CodeRequest struct {
	Code string `json:"code"`
}

type OTPRequest struct {
	OTP string `json:"otp"`
}

func httpError(err error) error {
	switch {
	case errors.Is(err, ErrInvalidOTP):
		return fiber.NewError(fiber.StatusBadRequest, "OTP must be exactly 6 digits")
	case errors.Is(err, ErrEmptyCode):
		return fiber.NewError(fiber.StatusBadRequest, "Visitor code is required")
	default:
		logging.Error("Verification failed", zap.Error(err))
		return fiber.NewError(fiber.StatusInternalServerError, "Verification could not be completed")
	}
}

// POST /api/verify/code
func VerifyCodeHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		guard, err := auth.CurrentSession(c)
		if err != nil {
			return err
		}

		var body CodeRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		res, err := svc.VerifyCode(c.UserContext(), guard, body.Code)
		if err != nil {
			return httpError(err)
		}
		return c.JSON(res)
	}
}

// POST /api/verify/otp
func VerifyOTPHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		guard, err := auth.CurrentSession(c)
		if err != nil {
			return err
		}

		var body OTPRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		res, err := svc.VerifyOTP(c.UserContext(), guard, body.OTP)
		if err != nil {
			return httpError(err)
		}
		return c.JSON(res)
	}
}

// GET /api/verify/recent?method=code
func RecentHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		guard, err := auth.CurrentSession(c)
		if err != nil {
			return err
		}

		if c.Query("method") == "" {
			return c.JSON(fiber.Map{
				string(MethodCode): svc.Recent().List(guard.UserID, MethodCode),
				string(MethodOTP):  svc.Recent().List(guard.UserID, MethodOTP),
			})
		}

		method, err := ParseMethod(c.Query("method"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "method must be code or otp")
		}
		return c.JSON(svc.Recent().List(guard.UserID, method))
	}
}
