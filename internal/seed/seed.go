// Package seed holds the fixed demo data the service boots with. Every
// function returns a fresh copy so callers may mutate what they get.
package seed

import (
	"time"

	"visitor-backend/internal/models"
)

// Account is a directory identity together with its plaintext demo password.
type Account struct {
	Identity models.Identity
	Password string
}

func at(ts string) time.Time {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		panic(err)
	}
	return t
}

func Accounts() []Account {
	return []Account{
		{
			Identity: models.Identity{
				ID:        "1",
				Email:     "admin@example.com",
				Name:      "System Administrator",
				CreatedAt: at("2024-01-01T00:00:00Z"),
				Profile:   models.AdminProfile{},
			},
			Password: "admin123",
		},
		{
			Identity: models.Identity{
				ID:        "2",
				Email:     "guard001@example.com",
				Name:      "Security Guard Alpha",
				CreatedAt: at("2024-01-01T00:00:00Z"),
				Profile: models.GuardProfile{
					UniqueID:      "GRD001",
					ShiftSchedule: "Morning (6AM - 2PM)",
				},
			},
			Password: "guard123",
		},
		{
			Identity: models.Identity{
				ID:        "3",
				Email:     "resident001@example.com",
				Name:      "John Resident",
				CreatedAt: at("2024-01-01T00:00:00Z"),
				Profile: models.ResidentProfile{
					UniqueID:        "RES001",
					ApartmentNumber: "A-101",
				},
			},
			Password: "resident123",
		},
	}
}

func Guards() []models.Guard {
	return []models.Guard{
		{
			ID:            "2",
			UniqueID:      "GRD001",
			Name:          "Security Guard Alpha",
			Email:         "guard001@example.com",
			ShiftSchedule: "Morning (6AM - 2PM)",
			CreatedAt:     at("2024-01-01T00:00:00Z"),
		},
		{
			ID:            "4",
			UniqueID:      "GRD002",
			Name:          "Security Guard Beta",
			Email:         "guard002@example.com",
			ShiftSchedule: "Evening (2PM - 10PM)",
			CreatedAt:     at("2024-01-02T00:00:00Z"),
		},
	}
}

func Residents() []models.Resident {
	return []models.Resident{
		{
			ID:              "3",
			UniqueID:        "RES001",
			Name:            "John Resident",
			Email:           "resident001@example.com",
			ApartmentNumber: "A-101",
			CreatedAt:       at("2024-01-01T00:00:00Z"),
		},
		{
			ID:              "5",
			UniqueID:        "RES002",
			Name:            "Jane Smith",
			Email:           "resident002@example.com",
			ApartmentNumber: "B-205",
			CreatedAt:       at("2024-01-02T00:00:00Z"),
		},
	}
}

func Invites() []models.VisitorInvite {
	return []models.VisitorInvite{
		{
			ID:           "1",
			ResidentID:   "3",
			VisitorName:  "Mike Johnson",
			VisitorPhone: "+1234567890",
			VisitDate:    "2024-01-15",
			VisitTime:    "14:30",
			Purpose:      "Business Meeting",
			Code:         "VIS001",
			OTP:          "246810",
			Status:       models.InviteStatusApproved,
			CreatedAt:    at("2024-01-10T00:00:00Z"),
		},
		{
			ID:           "2",
			ResidentID:   "3",
			VisitorName:  "Sarah Wilson",
			VisitorPhone: "+0987654321",
			VisitDate:    "2024-01-16",
			VisitTime:    "10:00",
			Purpose:      "Personal Visit",
			Code:         "VIS002",
			OTP:          "123456",
			Status:       models.InviteStatusPending,
			CreatedAt:    at("2024-01-11T00:00:00Z"),
		},
	}
}

func Visits() []models.VisitLog {
	return []models.VisitLog{
		{ID: "1", Date: "2023-01-10", Time: "10:30:28", VisitorName: "Bello Yahaya", Contact: "12345@gmail.com",
			VerifiedBy: "guard 14", Status: models.VisitStatusActive, ResidentID: "3", ResidentName: "John Resident",
			Purpose: "Business Meeting", CreatedAt: at("2023-01-10T10:30:28Z")},
		{ID: "2", Date: "2025-01-17", Time: "08:00:23", VisitorName: "Sarah Johnson", Contact: "0908641283747",
			VerifiedBy: "guard 28", Status: models.VisitStatusExpired, ResidentID: "5", ResidentName: "Jane Smith",
			Purpose: "Personal Visit", CreatedAt: at("2025-01-17T08:00:23Z")},
		{ID: "3", Date: "2025-02-02", Time: "21:00:03", VisitorName: "Mike Wilson", Contact: "070462416738",
			VerifiedBy: "guard 8", Status: models.VisitStatusActive, ResidentID: "3", ResidentName: "John Resident",
			Purpose: "Delivery", CreatedAt: at("2025-02-02T21:00:03Z")},
		{ID: "4", Date: "2025-02-03", Time: "00:00:01", VisitorName: "Lisa Brown", Contact: "1wufh@gmail.com",
			VerifiedBy: "Guard 2", Status: models.VisitStatusActive, ResidentName: "Bob Johnson",
			Purpose: "Family Visit", CreatedAt: at("2025-02-03T00:00:01Z")},
		{ID: "5", Date: "2025-02-04", Time: "14:15:30", VisitorName: "David Chen", Contact: "david@email.com",
			VerifiedBy: "guard 5", Status: models.VisitStatusExpired, ResidentName: "Alice Wong",
			Purpose: "Maintenance", CreatedAt: at("2025-02-04T14:15:30Z")},
		{ID: "6", Date: "2025-02-05", Time: "09:45:12", VisitorName: "Emma Davis", Contact: "0701234567",
			VerifiedBy: "guard 12", Status: models.VisitStatusActive, ResidentID: "3", ResidentName: "John Resident",
			Purpose: "Social Visit", CreatedAt: at("2025-02-05T09:45:12Z")},
	}
}
