package admin

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"visitor-backend/internal/audit"
	"visitor-backend/internal/filter"
	"visitor-backend/internal/logging"
	"visitor-backend/internal/models"
	"visitor-backend/internal/session"
	"visitor-backend/internal/store"
	"visitor-backend/internal/validation"
)

var ErrInvalidInput = errors.New("invalid input")

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, msg)
}

type Service struct {
	store store.Store
	audit *audit.Service
	now   func() time.Time
}

func NewService(s store.Store, a *audit.Service) *Service {
	return &Service{store: s, audit: a, now: time.Now}
}

type GuardQuery struct {
	Search string
	Shift  string
}

type CreateGuardRequest struct {
	Name          string `json:"name" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	ShiftSchedule string `json:"shift_schedule" validate:"shift"`
}

func (r *CreateGuardRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.ShiftSchedule = strings.TrimSpace(r.ShiftSchedule)
}

type ResidentQuery struct {
	Search    string
	Apartment string
}

type CreateResidentRequest struct {
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	ApartmentNumber string `json:"apartment_number" validate:"required"`
}

func (r *CreateResidentRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.ApartmentNumber = strings.ToUpper(strings.TrimSpace(r.ApartmentNumber))
}

func check(req any) error {
	if err := validation.Struct(req); err != nil {
		return invalid(err.Error())
	}
	return nil
}

type ResidentList struct {
	filter.Result[models.Resident]
	Blocks []string `json:"blocks"`
}

func guardName(g models.Guard) string     { return g.Name }
func guardEmail(g models.Guard) string    { return g.Email }
func guardUniqueID(g models.Guard) string { return g.UniqueID }
func guardShift(g models.Guard) string    { return g.ShiftSchedule }

func (s *Service) ListGuards(ctx context.Context, q GuardQuery) (filter.Result[models.Guard], error) {
	guards, err := s.store.ListGuards(ctx)
	if err != nil {
		return filter.Result[models.Guard]{}, err
	}
	return filter.Run(guards,
		filter.Search(q.Search, guardName, guardEmail, guardUniqueID),
		filter.Equal(q.Shift, guardShift),
	), nil
}

func residentName(r models.Resident) string      { return r.Name }
func residentEmail(r models.Resident) string     { return r.Email }
func residentUniqueID(r models.Resident) string  { return r.UniqueID }
func residentApartment(r models.Resident) string { return r.ApartmentNumber }

func (s *Service) ListResidents(ctx context.Context, q ResidentQuery) (ResidentList, error) {
	residents, err := s.store.ListResidents(ctx)
	if err != nil {
		return ResidentList{}, err
	}
	return ResidentList{
		Result: filter.Run(residents,
			filter.Search(q.Search, residentName, residentEmail, residentUniqueID, residentApartment),
			filter.Contains(q.Apartment, residentApartment),
		),
		Blocks: blocks(residents),
	}, nil
}

// blocks lists the distinct apartment blocks in alphabetical order.
func blocks(residents []models.Resident) []string {
	out := []string{}
	for _, r := range residents {
		b := r.Block()
		if b != "" && !slices.Contains(out, b) {
			out = append(out, b)
		}
	}
	sort.Strings(out)
	return out
}

func (s *Service) CreateGuard(ctx context.Context, actor *session.Session, req CreateGuardRequest) (*models.Guard, error) {
	req.normalize()
	if err := check(req); err != nil {
		return nil, err
	}

	seq, err := s.store.NextSequence(ctx, models.GuardIDPrefix)
	if err != nil {
		return nil, err
	}
	g := &models.Guard{
		ID:            uuid.NewString(),
		UniqueID:      models.FormatUniqueID(models.GuardIDPrefix, seq),
		Name:          req.Name,
		Email:         req.Email,
		ShiftSchedule: req.ShiftSchedule,
		CreatedAt:     s.now(),
	}
	if err := s.store.CreateGuard(ctx, g); err != nil {
		return nil, err
	}

	s.writeAudit(ctx, actor, audit.LogOptions{
		EntityType:  audit.EntityGuard,
		EntityID:    g.ID,
		Action:      models.AuditActionCreate,
		Description: fmt.Sprintf("Guard %s (%s) created", g.Name, g.UniqueID),
		After:       g,
	})
	return g, nil
}

func (s *Service) DeleteGuard(ctx context.Context, actor *session.Session, id string) (*models.Guard, error) {
	g, err := s.store.DeleteGuard(ctx, id)
	if err != nil {
		return nil, err
	}
	s.writeAudit(ctx, actor, audit.LogOptions{
		EntityType:  audit.EntityGuard,
		EntityID:    g.ID,
		Action:      models.AuditActionDelete,
		Description: fmt.Sprintf("Guard %s (%s) deleted", g.Name, g.UniqueID),
		Before:      g,
	})
	return g, nil
}

func (s *Service) CreateResident(ctx context.Context, actor *session.Session, req CreateResidentRequest) (*models.Resident, error) {
	req.normalize()
	if err := check(req); err != nil {
		return nil, err
	}

	seq, err := s.store.NextSequence(ctx, models.ResidentIDPrefix)
	if err != nil {
		return nil, err
	}
	r := &models.Resident{
		ID:              uuid.NewString(),
		UniqueID:        models.FormatUniqueID(models.ResidentIDPrefix, seq),
		Name:            req.Name,
		Email:           req.Email,
		ApartmentNumber: req.ApartmentNumber,
		CreatedAt:       s.now(),
	}
	if err := s.store.CreateResident(ctx, r); err != nil {
		return nil, err
	}

	s.writeAudit(ctx, actor, audit.LogOptions{
		EntityType:  audit.EntityResident,
		EntityID:    r.ID,
		Action:      models.AuditActionCreate,
		Description: fmt.Sprintf("Resident %s (%s) created", r.Name, r.UniqueID),
		After:       r,
	})
	return r, nil
}

func (s *Service) DeleteResident(ctx context.Context, actor *session.Session, id string) (*models.Resident, error) {
	r, err := s.store.DeleteResident(ctx, id)
	if err != nil {
		return nil, err
	}
	s.writeAudit(ctx, actor, audit.LogOptions{
		EntityType:  audit.EntityResident,
		EntityID:    r.ID,
		Action:      models.AuditActionDelete,
		Description: fmt.Sprintf("Resident %s (%s) deleted", r.Name, r.UniqueID),
		Before:      r,
	})
	return r, nil
}

// writeAudit never fails the mutation it records.
func (s *Service) writeAudit(ctx context.Context, actor *session.Session, opts audit.LogOptions) {
	opts.UserID = actor.UserID
	opts.UserName = actor.Name
	if err := s.audit.Write(ctx, opts); err != nil {
		logging.Error("Audit write failed",
			zap.String("entityType", opts.EntityType),
			zap.String("entityID", opts.EntityID),
			zap.Error(err))
	}
}
