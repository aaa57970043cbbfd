package dashboard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"visitor-backend/internal/audit"
	"visitor-backend/internal/invite"
	"visitor-backend/internal/models"
	"visitor-backend/internal/notify"
	"visitor-backend/internal/session"
	"visitor-backend/internal/store"
	"visitor-backend/internal/visitlog"
)

func newTestService() *Service {
	st := store.NewMemory(store.SeedSnapshot())
	invites := invite.NewService(st, audit.NewService(st), notify.Nop{})
	return NewService(st, invites, visitlog.NewService(st))
}

func TestSummary(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	t.Run("Admin", func(t *testing.T) {
		resp, err := svc.Summary(ctx, &session.Session{UserID: "1", Role: models.RoleAdmin})
		require.NoError(t, err)
		assert.Equal(t, map[string]int{
			"guards":          2,
			"residents":       2,
			"pending_invites": 1,
			"visits_logged":   6,
		}, resp.Stats)
	})

	t.Run("Guard", func(t *testing.T) {
		resp, err := svc.Summary(ctx, &session.Session{UserID: "2", Name: "guard 14", Role: models.RoleGuard})
		require.NoError(t, err)
		assert.Equal(t, 1, resp.Stats["visitors_processed"])
		assert.Equal(t, 1, resp.Stats["pending_verifications"])
	})

	t.Run("Resident", func(t *testing.T) {
		resp, err := svc.Summary(ctx, &session.Session{UserID: "3", Role: models.RoleResident})
		require.NoError(t, err)
		assert.Equal(t, 1, resp.Stats["approved"])
		assert.Equal(t, 1, resp.Stats["pending"])
		assert.Equal(t, 0, resp.Stats["expired"])
		assert.Contains(t, resp.Stats, "upcoming")
	})

	t.Run("Unknown", func(t *testing.T) {
		resp, err := svc.Summary(ctx, &session.Session{UserID: "9", Role: models.RoleUnknown})
		require.NoError(t, err)
		assert.Empty(t, resp.Stats)
	})
}
