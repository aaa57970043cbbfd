package verify

import (
	"sync"
	"time"
)

// RecentLimit caps the attempts kept per guard and method.
const RecentLimit = 5

type AttemptStatus string

const (
	StatusSuccess AttemptStatus = "success"
	StatusFailed  AttemptStatus = "failed"
)

type Attempt struct {
	Method      Method        `json:"method"`
	Value       string        `json:"value"`
	VisitorName string        `json:"name"`
	Status      AttemptStatus `json:"status"`
	At          time.Time     `json:"at"`
}

// Recent holds each guard's latest attempts, newest first.
type Recent struct {
	mu      sync.Mutex
	entries map[string]map[Method][]Attempt
}

func NewRecent() *Recent {
	return &Recent{entries: make(map[string]map[Method][]Attempt)}
}

func (r *Recent) Add(guardID string, a Attempt) {
	r.mu.Lock()
	defer r.mu.Unlock()

	byMethod, ok := r.entries[guardID]
	if !ok {
		byMethod = make(map[Method][]Attempt)
		r.entries[guardID] = byMethod
	}
	list := append([]Attempt{a}, byMethod[a.Method]...)
	if len(list) > RecentLimit {
		list = list[:RecentLimit]
	}
	byMethod[a.Method] = list
}

func (r *Recent) List(guardID string, method Method) []Attempt {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Attempt{}, r.entries[guardID][method]...)
}
