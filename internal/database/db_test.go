package database_test

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"visitor-backend/internal/database"
	"visitor-backend/internal/models"
	"visitor-backend/internal/store"
)

// openTestDB connects to TEST_DATABASE_DSN and starts from empty tables.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN not set")
	}
	db, err := database.Open(dsn)
	require.NoError(t, err)

	for _, m := range []any{&models.Guard{}, &models.Resident{}, &models.VisitorInvite{}, &models.VisitLog{}, &models.AuditLog{}, &models.Sequence{}} {
		require.NoError(t, db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(m).Error)
	}
	return db
}

func TestSeedAndGormStore(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	require.NoError(t, database.Seed(ctx, db, store.SeedSnapshot()))
	// a second run leaves populated tables alone
	require.NoError(t, database.Seed(ctx, db, store.SeedSnapshot()))

	s := store.NewGorm(db)

	guards, err := s.ListGuards(ctx)
	require.NoError(t, err)
	assert.Len(t, guards, 2)

	visits, err := s.ListVisits(ctx)
	require.NoError(t, err)
	assert.Len(t, visits, 6)

	t.Run("SequenceIsMonotonic", func(t *testing.T) {
		n, err := s.NextSequence(ctx, models.GuardIDPrefix)
		require.NoError(t, err)
		assert.Equal(t, 3, n)

		g := models.Guard{ID: uuid.NewString(), UniqueID: models.FormatUniqueID(models.GuardIDPrefix, n), Name: "T", Email: "t@example.com", ShiftSchedule: models.ShiftSchedules[0]}
		require.NoError(t, s.CreateGuard(ctx, &g))
		_, err = s.DeleteGuard(ctx, g.ID)
		require.NoError(t, err)

		n, err = s.NextSequence(ctx, models.GuardIDPrefix)
		require.NoError(t, err)
		assert.Equal(t, 4, n)
	})

	t.Run("InviteStatus", func(t *testing.T) {
		inv, err := s.UpdateInviteStatus(ctx, "2", models.InviteStatusPending, models.InviteStatusExpired)
		require.NoError(t, err)
		assert.Equal(t, models.InviteStatusExpired, inv.Status)

		_, err = s.UpdateInviteStatus(ctx, "2", models.InviteStatusPending, models.InviteStatusExpired)
		assert.ErrorIs(t, err, store.ErrStatusChanged)

		_, err = s.UpdateInviteStatus(ctx, "missing", models.InviteStatusPending, models.InviteStatusExpired)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("ResidentNotFound", func(t *testing.T) {
		_, err := s.GetResident(ctx, "missing")
		assert.ErrorIs(t, err, store.ErrNotFound)
	})
}
