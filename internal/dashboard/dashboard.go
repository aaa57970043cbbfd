// Package dashboard summarises the records each role cares about.
package dashboard

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"visitor-backend/internal/auth"
	"visitor-backend/internal/filter"
	"visitor-backend/internal/invite"
	"visitor-backend/internal/logging"
	"visitor-backend/internal/models"
	"visitor-backend/internal/session"
	"visitor-backend/internal/store"
	"visitor-backend/internal/visitlog"
)

type Response struct {
	Role  models.UserRole `json:"role"`
	Name  string          `json:"name"`
	Stats map[string]int  `json:"stats"`
}

type Service struct {
	store   store.Store
	invites *invite.Service
	visits  *visitlog.Service
}

func NewService(s store.Store, invites *invite.Service, visits *visitlog.Service) *Service {
	return &Service{store: s, invites: invites, visits: visits}
}

func (s *Service) Summary(ctx context.Context, sess *session.Session) (*Response, error) {
	var (
		stats map[string]int
		err   error
	)
	switch sess.Role {
	case models.RoleAdmin:
		stats, err = s.adminStats(ctx)
	case models.RoleGuard:
		stats, err = s.guardStats(ctx, sess)
	case models.RoleResident:
		stats, err = s.residentStats(ctx, sess)
	default:
		stats = map[string]int{}
	}
	if err != nil {
		return nil, err
	}
	return &Response{Role: sess.Role, Name: sess.Name, Stats: stats}, nil
}

func (s *Service) pendingInvites(ctx context.Context) (int, error) {
	invites, err := s.store.ListInvites(ctx)
	if err != nil {
		return 0, err
	}
	pending := filter.Apply(invites, func(inv models.VisitorInvite) bool {
		return inv.Status == models.InviteStatusPending
	})
	return len(pending), nil
}

func (s *Service) adminStats(ctx context.Context) (map[string]int, error) {
	guards, err := s.store.ListGuards(ctx)
	if err != nil {
		return nil, err
	}
	residents, err := s.store.ListResidents(ctx)
	if err != nil {
		return nil, err
	}
	pending, err := s.pendingInvites(ctx)
	if err != nil {
		return nil, err
	}
	visits, err := s.visits.Count(ctx, "")
	if err != nil {
		return nil, err
	}
	return map[string]int{
		"guards":          len(guards),
		"residents":       len(residents),
		"pending_invites": pending,
		"visits_logged":   visits,
	}, nil
}

func (s *Service) guardStats(ctx context.Context, sess *session.Session) (map[string]int, error) {
	processed, err := s.visits.Count(ctx, sess.Name)
	if err != nil {
		return nil, err
	}
	pending, err := s.pendingInvites(ctx)
	if err != nil {
		return nil, err
	}
	return map[string]int{
		"visitors_processed":    processed,
		"pending_verifications": pending,
	}, nil
}

func (s *Service) residentStats(ctx context.Context, sess *session.Session) (map[string]int, error) {
	st, err := s.invites.Stats(ctx, sess.UserID)
	if err != nil {
		return nil, err
	}
	return map[string]int{
		"approved": st.Approved,
		"pending":  st.Pending,
		"expired":  st.Expired,
		"upcoming": st.Upcoming,
	}, nil
}

// GET /api/dashboard
func Handler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := auth.CurrentSession(c)
		if err != nil {
			return err
		}
		resp, err := svc.Summary(c.UserContext(), sess)
		if err != nil {
			logging.Error("Dashboard summary failed", zap.Error(err))
			return fiber.NewError(fiber.StatusInternalServerError, "Dashboard could not be loaded")
		}
		return c.JSON(resp)
	}
}
