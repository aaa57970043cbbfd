package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"visitor-backend/internal/filter"
	"visitor-backend/internal/models"
	"visitor-backend/internal/store"
)

const (
	EntityGuard    = "guard"
	EntityResident = "resident"
	EntityInvite   = "invite"
)

type LogOptions struct {
	UserID      string
	UserName    string
	EntityType  string
	EntityID    string
	Action      models.AuditAction
	Description string
	Before      any
	After       any
}

type Service struct {
	store store.Store
	now   func() time.Time
}

func NewService(s store.Store) *Service {
	return &Service{store: s, now: time.Now}
}

func marshalData(v any) string {
	// jsonb columns reject an empty string
	if v == nil {
		return "null"
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "null"
	}
	return string(b)
}

func (s *Service) Write(ctx context.Context, opts LogOptions) error {
	log := models.AuditLog{
		ID:          uuid.NewString(),
		CreatedAt:   s.now(),
		UserID:      opts.UserID,
		UserName:    opts.UserName,
		EntityType:  opts.EntityType,
		EntityID:    opts.EntityID,
		Action:      opts.Action,
		Description: opts.Description,
		BeforeData:  marshalData(opts.Before),
		AfterData:   marshalData(opts.After),
	}

	if err := s.store.AppendAudit(ctx, &log); err != nil {
		return fmt.Errorf("write audit log: %w", err)
	}
	return nil
}

type ListFilter struct {
	EntityType string
	EntityID   string
	UserID     string
}

// List returns matching entries, newest first.
func (s *Service) List(ctx context.Context, f ListFilter) ([]models.AuditLog, error) {
	logs, err := s.store.ListAudit(ctx)
	if err != nil {
		return nil, err
	}
	return filter.Apply(logs,
		filter.Equal(f.EntityType, func(l models.AuditLog) string { return l.EntityType }),
		exact(f.EntityID, func(l models.AuditLog) string { return l.EntityID }),
		exact(f.UserID, func(l models.AuditLog) string { return l.UserID }),
	), nil
}

func exact(want string, field filter.Field[models.AuditLog]) filter.Predicate[models.AuditLog] {
	want = strings.TrimSpace(want)
	if want == "" {
		return nil
	}
	return func(l models.AuditLog) bool { return field(l) == want }
}
