package session

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"visitor-backend/internal/logging"
)

// MemoryStore keeps serialized sessions in process memory.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string][]byte)}
}

func (m *MemoryStore) Save(_ context.Context, s *Session) error {
	b, err := encode(s)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[key(s.ID)] = b
	return nil
}

func (m *MemoryStore) Load(_ context.Context, id string) (*Session, error) {
	m.mu.RLock()
	raw, ok := m.records[key(id)]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	s, err := decode(raw)
	if err != nil {
		logging.Warn("Discarding malformed session", zap.String("sessionID", id), zap.Error(err))
		m.mu.Lock()
		delete(m.records, key(id))
		m.mu.Unlock()
		return nil, ErrNotFound
	}
	return s, nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, key(id))
	return nil
}
