package models

import (
	"strings"
	"time"
)

type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleGuard    UserRole = "guard"
	RoleResident UserRole = "resident"
	RoleUnknown  UserRole = "unknown"
)

// ParseRole maps any string onto one of the known roles, RoleUnknown otherwise.
func ParseRole(s string) UserRole {
	switch r := UserRole(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleAdmin, RoleGuard, RoleResident:
		return r
	default:
		return RoleUnknown
	}
}

// Profile holds the role-specific part of an identity. The concrete type
// decides the role, so an identity can never carry attributes of two roles.
type Profile interface {
	Role() UserRole
}

type AdminProfile struct{}

type GuardProfile struct {
	UniqueID      string
	ShiftSchedule string
}

type ResidentProfile struct {
	UniqueID        string
	ApartmentNumber string
}

func (AdminProfile) Role() UserRole    { return RoleAdmin }
func (GuardProfile) Role() UserRole    { return RoleGuard }
func (ResidentProfile) Role() UserRole { return RoleResident }

// Identity is a credentialed principal of the directory. Identities are
// seeded once and never change at runtime.
type Identity struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	CreatedAt    time.Time
	Profile      Profile
}

func (i Identity) Role() UserRole {
	if i.Profile == nil {
		return RoleUnknown
	}
	return i.Profile.Role()
}
