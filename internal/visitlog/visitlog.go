// Package visitlog serves the visit history, scoped and shaped by role.
package visitlog

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"visitor-backend/internal/auth"
	"visitor-backend/internal/filter"
	"visitor-backend/internal/logging"
	"visitor-backend/internal/models"
	"visitor-backend/internal/session"
	"visitor-backend/internal/store"
)

type Column struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

var (
	colDate       = Column{"date", "Date"}
	colTime       = Column{"time", "Time"}
	colName       = Column{"name", "Name"}
	colContact    = Column{"contact_info", "Contact Info"}
	colResident   = Column{"resident", "Resident"}
	colPurpose    = Column{"purpose", "Purpose"}
	colVerifiedBy = Column{"verified_by", "Verified By"}
	colStatus     = Column{"status", "Status"}
	colActions    = Column{"actions", "Actions"}
)

// Columns returns the history table layout for role.
func Columns(role models.UserRole) []Column {
	cols := []Column{colDate, colTime, colName, colContact}
	switch role {
	case models.RoleAdmin:
		cols = append(cols, colResident, colPurpose, colVerifiedBy, colStatus, colActions)
	case models.RoleResident:
		cols = append(cols, colPurpose, colStatus)
	}
	return cols
}

type Query struct {
	Search  string
	Status  string
	Date    string
	Purpose string
}

type History struct {
	filter.Result[models.VisitLog]
	Columns []Column `json:"columns"`
}

type Service struct {
	store store.Store
}

func NewService(s store.Store) *Service {
	return &Service{store: s}
}

// scope keeps the entries the session may see. Residents see only
// their own visitors, admins see everything.
func scope(sess *session.Session) filter.Predicate[models.VisitLog] {
	switch sess.Role {
	case models.RoleAdmin:
		return nil
	case models.RoleResident:
		return func(v models.VisitLog) bool { return v.ResidentID == sess.UserID }
	default:
		return func(models.VisitLog) bool { return false }
	}
}

func (s *Service) History(ctx context.Context, sess *session.Session, q Query) (History, error) {
	visits, err := s.store.ListVisits(ctx)
	if err != nil {
		return History{}, err
	}
	visible := filter.Apply(visits, scope(sess))

	return History{
		Result: filter.Run(visible,
			filter.Search(q.Search,
				func(v models.VisitLog) string { return v.VisitorName },
				func(v models.VisitLog) string { return v.Contact },
				func(v models.VisitLog) string { return v.ResidentName },
				func(v models.VisitLog) string { return v.VerifiedBy },
			),
			filter.Equal(q.Status, func(v models.VisitLog) string { return string(v.Status) }),
			filter.Contains(q.Date, func(v models.VisitLog) string { return v.Date }),
			filter.Equal(q.Purpose, func(v models.VisitLog) string { return v.Purpose }),
		),
		Columns: Columns(sess.Role),
	}, nil
}

// Count is the number of logged visits, or of those verified by
// verifiedBy when it is set.
func (s *Service) Count(ctx context.Context, verifiedBy string) (int, error) {
	visits, err := s.store.ListVisits(ctx)
	if err != nil {
		return 0, err
	}
	if verifiedBy == "" {
		return len(visits), nil
	}
	return len(filter.Apply(visits, func(v models.VisitLog) bool { return v.VerifiedBy == verifiedBy })), nil
}

// GET /api/history?search=&status=&date=&purpose=
func HistoryHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := auth.CurrentSession(c)
		if err != nil {
			return err
		}

		h, err := svc.History(c.UserContext(), sess, Query{
			Search:  c.Query("search"),
			Status:  c.Query("status"),
			Date:    c.Query("date"),
			Purpose: c.Query("purpose"),
		})
		if err != nil {
			logging.Error("List visit history failed", zap.Error(err))
			return fiber.NewError(fiber.StatusInternalServerError, "Visit history could not be listed")
		}
		return c.JSON(h)
	}
}
