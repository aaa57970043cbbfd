// Package notify publishes invitation events for downstream consumers.
package notify

import (
	"context"
	"sync"
	"time"
)

const (
	KeyInviteCreated   = "invite.created"
	KeyInviteCancelled = "invite.cancelled"
)

type Publisher interface {
	Publish(ctx context.Context, key string, v any) error
	Close() error
}

type InviteEvent struct {
	InviteID    string    `json:"invite_id"`
	ResidentID  string    `json:"resident_id"`
	VisitorName string    `json:"visitor_name"`
	VisitDate   string    `json:"visit_date"`
	VisitTime   string    `json:"visit_time"`
	Code        string    `json:"code"`
	Status      string    `json:"status"`
	At          time.Time `json:"at"`
}

// Nop drops every event. Used when no broker is configured.
type Nop struct{}

func (Nop) Publish(context.Context, string, any) error { return nil }
func (Nop) Close() error                               { return nil }

type Message struct {
	Key   string
	Value any
}

// Recorder keeps published events in memory.
type Recorder struct {
	mu       sync.Mutex
	messages []Message
}

func (r *Recorder) Publish(_ context.Context, key string, v any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, Message{Key: key, Value: v})
	return nil
}

func (r *Recorder) Close() error { return nil }

func (r *Recorder) Messages() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Message(nil), r.messages...)
}
