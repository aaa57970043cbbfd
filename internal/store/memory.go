package store

import (
	"context"
	"fmt"
	"sync"

	"visitor-backend/internal/models"
)

type Memory struct {
	mu        sync.RWMutex
	guards    []models.Guard
	residents []models.Resident
	invites   []models.VisitorInvite
	visits    []models.VisitLog
	audit     []models.AuditLog
	sequences map[string]int
}

func NewMemory(snap Snapshot) *Memory {
	return &Memory{
		guards:    append([]models.Guard(nil), snap.Guards...),
		residents: append([]models.Resident(nil), snap.Residents...),
		invites:   append([]models.VisitorInvite(nil), snap.Invites...),
		visits:    append([]models.VisitLog(nil), snap.Visits...),
		sequences: snap.Sequences(),
	}
}

func (m *Memory) ListGuards(_ context.Context) ([]models.Guard, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]models.Guard{}, m.guards...), nil
}

func (m *Memory) CreateGuard(_ context.Context, g *models.Guard) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.guards = append(m.guards, *g)
	return nil
}

func (m *Memory) DeleteGuard(_ context.Context, id string) (*models.Guard, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, g := range m.guards {
		if g.ID == id {
			m.guards = append(m.guards[:i:i], m.guards[i+1:]...)
			return &g, nil
		}
	}
	return nil, fmt.Errorf("guard %s: %w", id, ErrNotFound)
}

func (m *Memory) ListResidents(_ context.Context) ([]models.Resident, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]models.Resident{}, m.residents...), nil
}

func (m *Memory) GetResident(_ context.Context, id string) (*models.Resident, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.residents {
		if r.ID == id {
			return &r, nil
		}
	}
	return nil, fmt.Errorf("resident %s: %w", id, ErrNotFound)
}

func (m *Memory) CreateResident(_ context.Context, r *models.Resident) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.residents = append(m.residents, *r)
	return nil
}

func (m *Memory) DeleteResident(_ context.Context, id string) (*models.Resident, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, r := range m.residents {
		if r.ID == id {
			m.residents = append(m.residents[:i:i], m.residents[i+1:]...)
			return &r, nil
		}
	}
	return nil, fmt.Errorf("resident %s: %w", id, ErrNotFound)
}

func (m *Memory) ListInvites(_ context.Context) ([]models.VisitorInvite, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]models.VisitorInvite{}, m.invites...), nil
}

func (m *Memory) CreateInvite(_ context.Context, inv *models.VisitorInvite) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.invites = append(m.invites, *inv)
	return nil
}

func (m *Memory) UpdateInviteStatus(_ context.Context, id string, from, to models.InviteStatus) (*models.VisitorInvite, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.invites {
		if m.invites[i].ID == id {
			if m.invites[i].Status != from {
				return nil, fmt.Errorf("invite %s is %s: %w", id, m.invites[i].Status, ErrStatusChanged)
			}
			m.invites[i].Status = to
			inv := m.invites[i]
			return &inv, nil
		}
	}
	return nil, fmt.Errorf("invite %s: %w", id, ErrNotFound)
}

func (m *Memory) ListVisits(_ context.Context) ([]models.VisitLog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]models.VisitLog{}, m.visits...), nil
}

func (m *Memory) AppendVisit(_ context.Context, v *models.VisitLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.visits = append(m.visits, *v)
	return nil
}

func (m *Memory) AppendAudit(_ context.Context, l *models.AuditLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.audit = append(m.audit, *l)
	return nil
}

func (m *Memory) ListAudit(_ context.Context) ([]models.AuditLog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.AuditLog, 0, len(m.audit))
	for i := len(m.audit) - 1; i >= 0; i-- {
		out = append(out, m.audit[i])
	}
	return out, nil
}

func (m *Memory) NextSequence(_ context.Context, prefix string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sequences[prefix]++
	return m.sequences[prefix], nil
}
