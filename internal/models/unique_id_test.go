package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUniqueID(t *testing.T) {
	assert.Equal(t, "GRD001", FormatUniqueID(GuardIDPrefix, 1))
	assert.Equal(t, "RES042", FormatUniqueID(ResidentIDPrefix, 42))
	assert.Equal(t, "GRD1000", FormatUniqueID(GuardIDPrefix, 1000))

	n, ok := UniqueIDSequence(GuardIDPrefix, "GRD017")
	assert.True(t, ok)
	assert.Equal(t, 17, n)

	_, ok = UniqueIDSequence(GuardIDPrefix, "RES017")
	assert.False(t, ok)
	_, ok = UniqueIDSequence(GuardIDPrefix, "GRDx1")
	assert.False(t, ok)

	assert.Equal(t, 7, MaxSequence(GuardIDPrefix, []string{"GRD002", "GRD007", "RES009", "bad"}))
	assert.Equal(t, 0, MaxSequence(GuardIDPrefix, nil))
}

func TestParseRole(t *testing.T) {
	assert.Equal(t, RoleAdmin, ParseRole("admin"))
	assert.Equal(t, RoleGuard, ParseRole(" Guard "))
	assert.Equal(t, RoleResident, ParseRole("RESIDENT"))
	assert.Equal(t, RoleUnknown, ParseRole("super_admin"))
	assert.Equal(t, RoleUnknown, ParseRole(""))

	assert.Equal(t, RoleGuard, Identity{Profile: GuardProfile{}}.Role())
	assert.Equal(t, RoleUnknown, Identity{}.Role())
}
