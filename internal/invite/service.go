// Package invite lets residents issue, list and cancel visitor invitations.
package invite

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"visitor-backend/internal/audit"
	"visitor-backend/internal/filter"
	"visitor-backend/internal/logging"
	"visitor-backend/internal/models"
	"visitor-backend/internal/notify"
	"visitor-backend/internal/session"
	"visitor-backend/internal/store"
	"visitor-backend/internal/validation"
)

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrNotCancellable = errors.New("invite is already expired")
	ErrOTPExhausted   = errors.New("no unused OTP could be generated")
)

// CodePool is the set of visitor codes handed out to new invitations.
var CodePool = []string{"VIS003", "VIS004", "VIS005", "VIS006"}

const (
	otpDigits      = 6
	maxOTPAttempts = 20
)

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, msg)
}

type Service struct {
	store     store.Store
	audit     *audit.Service
	publisher notify.Publisher
	now       func() time.Time
	intn      func(n int) int
}

func NewService(s store.Store, a *audit.Service, p notify.Publisher) *Service {
	return &Service{store: s, audit: a, publisher: p, now: time.Now, intn: cryptoIntn}
}

func cryptoIntn(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic(fmt.Sprintf("crypto/rand: %v", err))
	}
	return int(v.Int64())
}

type CreateRequest struct {
	VisitorName  string `json:"visitor_name" validate:"required"`
	VisitorPhone string `json:"visitor_phone" validate:"required"`
	VisitDate    string `json:"visit_date" validate:"required,datetime=2006-01-02"`
	VisitTime    string `json:"visit_time" validate:"required,datetime=15:04"`
	Purpose      string `json:"purpose" validate:"required,purpose"`
}

func (r *CreateRequest) normalize() {
	r.VisitorName = strings.TrimSpace(r.VisitorName)
	r.VisitorPhone = strings.TrimSpace(r.VisitorPhone)
	r.VisitDate = strings.TrimSpace(r.VisitDate)
	r.VisitTime = strings.TrimSpace(r.VisitTime)
	r.Purpose = strings.TrimSpace(r.Purpose)
}

type Query struct {
	Search string
	Status string
	Date   string
}

type Stats struct {
	Approved int `json:"approved"`
	Pending  int `json:"pending"`
	Expired  int `json:"expired"`
	Upcoming int `json:"upcoming"`
}

// InviteView is an invitation as shown to its resident.
type InviteView struct {
	models.VisitorInvite
	Cancellable bool `json:"cancellable"`
}

type List struct {
	filter.Result[InviteView]
	Stats Stats `json:"stats"`
}

func view(inv models.VisitorInvite) InviteView {
	return InviteView{VisitorInvite: inv, Cancellable: inv.Cancellable()}
}

// ComputeStats counts invites by status. Upcoming counts visits dated today
// or later.
func ComputeStats(invites []models.VisitorInvite, today string) Stats {
	var st Stats
	for _, inv := range invites {
		switch inv.Status {
		case models.InviteStatusApproved:
			st.Approved++
		case models.InviteStatusPending:
			st.Pending++
		case models.InviteStatusExpired:
			st.Expired++
		}
		if inv.VisitDate >= today {
			st.Upcoming++
		}
	}
	return st
}

func (s *Service) today() string {
	return s.now().Format("2006-01-02")
}

func (s *Service) ownInvites(ctx context.Context, residentID string) ([]models.VisitorInvite, error) {
	all, err := s.store.ListInvites(ctx)
	if err != nil {
		return nil, err
	}
	return filter.Apply(all, func(inv models.VisitorInvite) bool { return inv.ResidentID == residentID }), nil
}

// Stats is the invitation summary for one resident.
func (s *Service) Stats(ctx context.Context, residentID string) (Stats, error) {
	own, err := s.ownInvites(ctx, residentID)
	if err != nil {
		return Stats{}, err
	}
	return ComputeStats(own, s.today()), nil
}

func (s *Service) List(ctx context.Context, residentID string, q Query) (List, error) {
	own, err := s.ownInvites(ctx, residentID)
	if err != nil {
		return List{}, err
	}

	views := make([]InviteView, 0, len(own))
	for _, inv := range own {
		views = append(views, view(inv))
	}

	return List{
		Result: filter.Run(views,
			filter.Search(q.Search,
				func(v InviteView) string { return v.VisitorName },
				func(v InviteView) string { return v.VisitorPhone },
				func(v InviteView) string { return v.Code },
				func(v InviteView) string { return v.Purpose },
			),
			filter.Equal(q.Status, func(v InviteView) string { return string(v.Status) }),
			filter.Equal(q.Date, func(v InviteView) string { return v.VisitDate }),
		),
		Stats: ComputeStats(own, s.today()),
	}, nil
}

// pickCode prefers a pool code that no live invite holds.
func (s *Service) pickCode(invites []models.VisitorInvite) string {
	free := make([]string, 0, len(CodePool))
	for _, code := range CodePool {
		held := slices.ContainsFunc(invites, func(inv models.VisitorInvite) bool {
			return inv.Code == code && inv.Status != models.InviteStatusExpired
		})
		if !held {
			free = append(free, code)
		}
	}
	if len(free) == 0 {
		free = CodePool
	}
	return free[s.intn(len(free))]
}

func (s *Service) newOTP() string {
	var b strings.Builder
	for range otpDigits {
		b.WriteByte(byte('0' + s.intn(10)))
	}
	return b.String()
}

// uniqueOTP draws OTPs until one is not held by a live invite.
func (s *Service) uniqueOTP(invites []models.VisitorInvite) (string, error) {
	for range maxOTPAttempts {
		otp := s.newOTP()
		held := slices.ContainsFunc(invites, func(inv models.VisitorInvite) bool {
			return inv.OTP == otp && inv.Status != models.InviteStatusExpired
		})
		if !held {
			return otp, nil
		}
	}
	return "", ErrOTPExhausted
}

func (s *Service) Create(ctx context.Context, resident *session.Session, req CreateRequest) (*models.VisitorInvite, error) {
	req.normalize()
	if err := validation.Struct(req); err != nil {
		return nil, invalid(err.Error())
	}

	all, err := s.store.ListInvites(ctx)
	if err != nil {
		return nil, err
	}
	otp, err := s.uniqueOTP(all)
	if err != nil {
		return nil, err
	}

	inv := &models.VisitorInvite{
		ID:           uuid.NewString(),
		ResidentID:   resident.UserID,
		VisitorName:  req.VisitorName,
		VisitorPhone: req.VisitorPhone,
		VisitDate:    req.VisitDate,
		VisitTime:    req.VisitTime,
		Purpose:      req.Purpose,
		Code:         s.pickCode(all),
		OTP:          otp,
		Status:       models.InviteStatusPending,
		CreatedAt:    s.now(),
	}
	if err := s.store.CreateInvite(ctx, inv); err != nil {
		return nil, err
	}

	s.record(ctx, resident, inv, audit.LogOptions{
		Action:      models.AuditActionCreate,
		Description: fmt.Sprintf("Invite %s for %s created", inv.Code, inv.VisitorName),
		After:       inv,
	}, notify.KeyInviteCreated)
	return inv, nil
}

// Cancel expires one of the resident's own invites. Invites of other
// residents are reported as not found.
func (s *Service) Cancel(ctx context.Context, resident *session.Session, id string) (*models.VisitorInvite, error) {
	own, err := s.ownInvites(ctx, resident.UserID)
	if err != nil {
		return nil, err
	}
	idx := slices.IndexFunc(own, func(inv models.VisitorInvite) bool { return inv.ID == id })
	if idx < 0 {
		return nil, fmt.Errorf("invite %s: %w", id, store.ErrNotFound)
	}
	before := own[idx]
	if !before.Cancellable() {
		return nil, ErrNotCancellable
	}

	updated, err := s.store.UpdateInviteStatus(ctx, id, before.Status, models.InviteStatusExpired)
	if errors.Is(err, store.ErrStatusChanged) {
		return nil, ErrNotCancellable
	} else if err != nil {
		return nil, err
	}

	s.record(ctx, resident, updated, audit.LogOptions{
		Action:      models.AuditActionCancel,
		Description: fmt.Sprintf("Invite %s for %s cancelled", updated.Code, updated.VisitorName),
		Before:      before,
		After:       updated,
	}, notify.KeyInviteCancelled)
	return updated, nil
}

// record writes the audit entry and publishes the event. Neither failure
// is returned to the caller.
func (s *Service) record(ctx context.Context, actor *session.Session, inv *models.VisitorInvite, opts audit.LogOptions, key string) {
	opts.UserID = actor.UserID
	opts.UserName = actor.Name
	opts.EntityType = audit.EntityInvite
	opts.EntityID = inv.ID
	if err := s.audit.Write(ctx, opts); err != nil {
		logging.Error("Audit write failed", zap.String("inviteID", inv.ID), zap.Error(err))
	}

	event := notify.InviteEvent{
		InviteID:    inv.ID,
		ResidentID:  inv.ResidentID,
		VisitorName: inv.VisitorName,
		VisitDate:   inv.VisitDate,
		VisitTime:   inv.VisitTime,
		Code:        inv.Code,
		Status:      string(inv.Status),
		At:          s.now(),
	}
	if err := s.publisher.Publish(ctx, key, event); err != nil {
		logging.Warn("Publish invite event failed", zap.String("key", key), zap.String("inviteID", inv.ID), zap.Error(err))
	}
}
