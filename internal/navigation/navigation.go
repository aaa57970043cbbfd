// Package navigation maps each role to the views it may open.
package navigation

import (
	"github.com/gofiber/fiber/v2"

	"visitor-backend/internal/models"
)

const (
	ViewDashboard     = "dashboard"
	ViewGuards        = "guards"
	ViewResidents     = "residents"
	ViewHistory       = "history"
	ViewScanCode      = "scan-code"
	ViewVerifyOTP     = "verify-otp"
	ViewInviteVisitor = "invite-visitor"
	ViewMyInvites     = "my-invites"
)

type Item struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

var dashboard = Item{ID: ViewDashboard, Label: "Dashboard"}

var table = map[models.UserRole][]Item{
	models.RoleAdmin: {
		dashboard,
		{ID: ViewGuards, Label: "Guards"},
		{ID: ViewResidents, Label: "Residents"},
		{ID: ViewHistory, Label: "History"},
	},
	models.RoleGuard: {
		dashboard,
		{ID: ViewScanCode, Label: "Scan Code"},
		{ID: ViewVerifyOTP, Label: "Verify OTP"},
	},
	models.RoleResident: {
		dashboard,
		{ID: ViewInviteVisitor, Label: "Invite Visitor"},
		{ID: ViewMyInvites, Label: "My Invites"},
	},
	models.RoleUnknown: {dashboard},
}

// For returns the ordered navigation entries of role. Roles outside the
// table get the dashboard only.
func For(role models.UserRole) []Item {
	items, ok := table[role]
	if !ok {
		items = table[models.RoleUnknown]
	}
	return append([]Item(nil), items...)
}

func Permits(role models.UserRole, view string) bool {
	for _, it := range For(role) {
		if it.ID == view {
			return true
		}
	}
	return false
}

// Known reports whether view is one of the application views.
func Known(view string) bool {
	for _, items := range table {
		for _, it := range items {
			if it.ID == view {
				return true
			}
		}
	}
	return false
}

// GET /api/navigation
func Handler(roleOf func(c *fiber.Ctx) (models.UserRole, error)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, err := roleOf(c)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{
			"role":  role,
			"items": For(role),
		})
	}
}
