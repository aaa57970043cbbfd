// Package verify checks visitor codes and one-time passwords at the gate.
package verify

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"visitor-backend/internal/logging"
	"visitor-backend/internal/models"
	"visitor-backend/internal/session"
	"visitor-backend/internal/store"
)

type Method string

const (
	MethodCode Method = "code"
	MethodOTP  Method = "otp"
)

const (
	MsgCodeVerified = "Visitor verified successfully!"
	MsgCodeInvalid  = "Invalid or expired visitor code"
	MsgOTPVerified  = "OTP verified successfully!"
	MsgOTPInvalid   = "Invalid OTP. Please check and try again."

	unknownVisitor = "Unknown"
	validFormat    = "2006-01-02 15:04"
)

var (
	ErrInvalidOTP    = errors.New("otp must be exactly 6 digits")
	ErrInvalidMethod = errors.New("unknown verification method")
	ErrEmptyCode     = errors.New("visitor code is required")

	otpPattern = regexp.MustCompile(`^[0-9]{6}$`)
)

func ParseMethod(s string) (Method, error) {
	switch Method(strings.ToLower(strings.TrimSpace(s))) {
	case MethodCode:
		return MethodCode, nil
	case MethodOTP:
		return MethodOTP, nil
	}
	return "", ErrInvalidMethod
}

type VisitorInfo struct {
	Name       string `json:"name"`
	Resident   string `json:"resident"`
	Purpose    string `json:"purpose"`
	ValidUntil string `json:"valid_until"`
}

type Result struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Visitor *VisitorInfo `json:"visitor,omitempty"`
}

type Service struct {
	store  store.Store
	recent *Recent
	window time.Duration
	now    func() time.Time
}

// NewService builds a verifier whose passes stay valid for window after
// the planned visit start.
func NewService(s store.Store, recent *Recent, window time.Duration) *Service {
	return &Service{store: s, recent: recent, window: window, now: time.Now}
}

func (s *Service) Recent() *Recent {
	return s.recent
}

// VerifyCode passes when an approved invitation carries code.
func (s *Service) VerifyCode(ctx context.Context, guard *session.Session, code string) (*Result, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, ErrEmptyCode
	}

	inv, err := s.findInvite(ctx, func(inv models.VisitorInvite) bool {
		return inv.Code == code && inv.Status == models.InviteStatusApproved
	})
	if err != nil {
		return nil, err
	}
	return s.conclude(ctx, guard, MethodCode, code, inv, MsgCodeVerified, MsgCodeInvalid)
}

// VerifyOTP passes when any invitation that has not expired carries otp.
func (s *Service) VerifyOTP(ctx context.Context, guard *session.Session, otp string) (*Result, error) {
	otp = strings.TrimSpace(otp)
	if !otpPattern.MatchString(otp) {
		return nil, ErrInvalidOTP
	}

	inv, err := s.findInvite(ctx, func(inv models.VisitorInvite) bool {
		return inv.OTP == otp && inv.Status != models.InviteStatusExpired
	})
	if err != nil {
		return nil, err
	}
	return s.conclude(ctx, guard, MethodOTP, otp, inv, MsgOTPVerified, MsgOTPInvalid)
}

func (s *Service) findInvite(ctx context.Context, match func(models.VisitorInvite) bool) (*models.VisitorInvite, error) {
	invites, err := s.store.ListInvites(ctx)
	if err != nil {
		return nil, err
	}
	idx := slices.IndexFunc(invites, match)
	if idx < 0 {
		return nil, nil
	}
	return &invites[idx], nil
}

func (s *Service) conclude(ctx context.Context, guard *session.Session, method Method, value string, inv *models.VisitorInvite, okMsg, failMsg string) (*Result, error) {
	now := s.now()
	if inv == nil {
		s.recent.Add(guard.UserID, Attempt{Method: method, Value: value, VisitorName: unknownVisitor, Status: StatusFailed, At: now})
		logging.Info("Verification failed",
			zap.String("guardID", guard.UserID),
			zap.String("method", string(method)))
		return &Result{Success: false, Message: failMsg}, nil
	}

	resident, err := s.store.GetResident(ctx, inv.ResidentID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	info := &VisitorInfo{
		Name:     inv.VisitorName,
		Resident: unknownVisitor,
		Purpose:  inv.Purpose,
	}
	residentName := ""
	if resident != nil {
		residentName = resident.Name
		info.Resident = fmt.Sprintf("%s (%s)", resident.Name, resident.ApartmentNumber)
	}
	if start, err := inv.VisitStart(time.UTC); err == nil {
		info.ValidUntil = start.Add(s.window).Format(validFormat)
	}

	visit := &models.VisitLog{
		ID:           uuid.NewString(),
		Date:         now.Format("2006-01-02"),
		Time:         now.Format("15:04:05"),
		VisitorName:  inv.VisitorName,
		Contact:      inv.VisitorPhone,
		VerifiedBy:   guard.Name,
		Status:       models.VisitStatusActive,
		ResidentID:   inv.ResidentID,
		ResidentName: residentName,
		Purpose:      inv.Purpose,
		CreatedAt:    now,
	}
	if err := s.store.AppendVisit(ctx, visit); err != nil {
		return nil, fmt.Errorf("log visit: %w", err)
	}

	s.recent.Add(guard.UserID, Attempt{Method: method, Value: value, VisitorName: inv.VisitorName, Status: StatusSuccess, At: now})
	logging.Info("Visitor verified",
		zap.String("guardID", guard.UserID),
		zap.String("method", string(method)),
		zap.String("inviteID", inv.ID))
	return &Result{Success: true, Message: okMsg, Visitor: info}, nil
}
