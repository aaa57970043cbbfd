package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"visitor-backend/internal/models"
	"visitor-backend/internal/store"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()

	t.Run("SeedSnapshot_IsLoaded", func(t *testing.T) {
		s := store.NewMemory(store.SeedSnapshot())

		guards, err := s.ListGuards(ctx)
		require.NoError(t, err)
		assert.Len(t, guards, 2)

		residents, err := s.ListResidents(ctx)
		require.NoError(t, err)
		assert.Len(t, residents, 2)

		invites, err := s.ListInvites(ctx)
		require.NoError(t, err)
		assert.Len(t, invites, 2)

		visits, err := s.ListVisits(ctx)
		require.NoError(t, err)
		assert.Len(t, visits, 6)
	})

	t.Run("NextSequence_StartsAfterSeededMaximum", func(t *testing.T) {
		s := store.NewMemory(store.SeedSnapshot())

		n, err := s.NextSequence(ctx, models.GuardIDPrefix)
		require.NoError(t, err)
		assert.Equal(t, 3, n)

		n, err = s.NextSequence(ctx, models.ResidentIDPrefix)
		require.NoError(t, err)
		assert.Equal(t, 3, n)
	})

	t.Run("NextSequence_NeverReusesAfterDelete", func(t *testing.T) {
		s := store.NewMemory(store.SeedSnapshot())

		n, err := s.NextSequence(ctx, models.GuardIDPrefix)
		require.NoError(t, err)
		g := models.Guard{ID: "g3", UniqueID: models.FormatUniqueID(models.GuardIDPrefix, n)}
		require.NoError(t, s.CreateGuard(ctx, &g))

		_, err = s.DeleteGuard(ctx, "g3")
		require.NoError(t, err)

		n, err = s.NextSequence(ctx, models.GuardIDPrefix)
		require.NoError(t, err)
		assert.Equal(t, 4, n)
	})

	t.Run("DeleteGuard_NotFound", func(t *testing.T) {
		s := store.NewMemory(store.SeedSnapshot())
		_, err := s.DeleteGuard(ctx, "missing")
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("DeleteResident_RemovesOnlyThatRecord", func(t *testing.T) {
		s := store.NewMemory(store.SeedSnapshot())
		deleted, err := s.DeleteResident(ctx, "5")
		require.NoError(t, err)
		assert.Equal(t, "Jane Smith", deleted.Name)

		residents, err := s.ListResidents(ctx)
		require.NoError(t, err)
		require.Len(t, residents, 1)
		assert.Equal(t, "3", residents[0].ID)

		_, err = s.GetResident(ctx, "5")
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("UpdateInviteStatus", func(t *testing.T) {
		s := store.NewMemory(store.SeedSnapshot())
		inv, err := s.UpdateInviteStatus(ctx, "2", models.InviteStatusPending, models.InviteStatusExpired)
		require.NoError(t, err)
		assert.Equal(t, models.InviteStatusExpired, inv.Status)

		invites, err := s.ListInvites(ctx)
		require.NoError(t, err)
		assert.Len(t, invites, 2)
		assert.Equal(t, models.InviteStatusExpired, invites[1].Status)

		_, err = s.UpdateInviteStatus(ctx, "2", models.InviteStatusPending, models.InviteStatusExpired)
		assert.ErrorIs(t, err, store.ErrStatusChanged)

		_, err = s.UpdateInviteStatus(ctx, "nope", models.InviteStatusPending, models.InviteStatusExpired)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("ListAudit_NewestFirst", func(t *testing.T) {
		s := store.NewMemory(store.Snapshot{})
		require.NoError(t, s.AppendAudit(ctx, &models.AuditLog{ID: "a"}))
		require.NoError(t, s.AppendAudit(ctx, &models.AuditLog{ID: "b"}))

		logs, err := s.ListAudit(ctx)
		require.NoError(t, err)
		require.Len(t, logs, 2)
		assert.Equal(t, "b", logs[0].ID)
		assert.Equal(t, "a", logs[1].ID)
	})

	t.Run("ListReturnsCopies", func(t *testing.T) {
		s := store.NewMemory(store.SeedSnapshot())
		guards, err := s.ListGuards(ctx)
		require.NoError(t, err)
		guards[0].Name = "changed"

		again, err := s.ListGuards(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Security Guard Alpha", again[0].Name)
	})
}
