// Package session persists the authenticated identity between requests.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"visitor-backend/internal/models"
)

var ErrNotFound = errors.New("session not found")

// Session is the identity projection handed to clients. It never carries a
// password or password hash.
type Session struct {
	ID              string          `json:"id"`
	UserID          string          `json:"user_id"`
	Email           string          `json:"email"`
	Name            string          `json:"name"`
	Role            models.UserRole `json:"role"`
	UniqueID        string          `json:"unique_id,omitempty"`
	ShiftSchedule   string          `json:"shift_schedule,omitempty"`
	ApartmentNumber string          `json:"apartment_number,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	ActiveView      string          `json:"active_view"`
	IssuedAt        time.Time       `json:"issued_at"`
}

// FromIdentity projects an identity into a new session record.
func FromIdentity(id string, ident models.Identity, view string, now time.Time) *Session {
	s := &Session{
		ID:         id,
		UserID:     ident.ID,
		Email:      ident.Email,
		Name:       ident.Name,
		Role:       ident.Role(),
		CreatedAt:  ident.CreatedAt,
		ActiveView: view,
		IssuedAt:   now,
	}
	switch p := ident.Profile.(type) {
	case models.GuardProfile:
		s.UniqueID = p.UniqueID
		s.ShiftSchedule = p.ShiftSchedule
	case models.ResidentProfile:
		s.UniqueID = p.UniqueID
		s.ApartmentNumber = p.ApartmentNumber
	}
	return s
}

type Store interface {
	Save(ctx context.Context, s *Session) error
	Load(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}

func key(id string) string {
	return "session:" + id
}

func encode(s *Session) ([]byte, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal session: %w", err)
	}
	return b, nil
}

// decode rejects records that do not look like a session.
func decode(raw []byte) (*Session, error) {
	var s Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	if s.ID == "" || s.UserID == "" {
		return nil, errors.New("session record is incomplete")
	}
	s.Role = models.ParseRole(string(s.Role))
	return &s, nil
}
