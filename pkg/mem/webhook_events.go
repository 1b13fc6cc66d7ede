// pkg/mem/webhook_events.go
package mem

import (
	"sync"
	"time"
)

// WebhookEventStore remembers gateway event ids this process has already
// handled, so redundant deliveries short-circuit before touching the store.
// Best effort only: the DB-level idempotent reconcile remains the
// correctness mechanism.
type WebhookEventStore interface {
	// Seen reports whether the event id was recorded within the retention
	// window, without recording it.
	Seen(eventID string) bool
	// MarkProcessed records the event id and reports whether it was seen
	// before within the retention window. Callers record an event only after
	// handling it successfully, so a failed attempt stays retryable.
	MarkProcessed(eventID string) (seen bool)
}

type entry struct {
	processedAt time.Time
}

type WebhookEvents struct {
	mu        sync.Mutex
	data      map[string]entry
	retention time.Duration
}

func NewWebhookEvents(retention time.Duration) *WebhookEvents {
	if retention <= 0 {
		retention = 24 * time.Hour
	}
	return &WebhookEvents{
		data:      make(map[string]entry),
		retention: retention,
	}
}

func (s *WebhookEvents) Seen(eventID string) bool {
	if eventID == "" {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.data[eventID]
	return ok && time.Since(e.processedAt) < s.retention
}

func (s *WebhookEvents) MarkProcessed(eventID string) bool {
	if eventID == "" {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if e, ok := s.data[eventID]; ok && now.Sub(e.processedAt) < s.retention {
		return true
	}
	s.data[eventID] = entry{processedAt: now}

	if len(s.data) > 10000 {
		for id, e := range s.data {
			if now.Sub(e.processedAt) >= s.retention {
				delete(s.data, id)
			}
		}
	}
	return false
}
