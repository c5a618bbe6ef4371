package uistate

import (
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindWarning Kind = "warning"
	KindInfo    Kind = "info"
)

// DefaultTTL is applied when a notification does not specify one.
const DefaultTTL = 5 * time.Second

// Sticky disables auto-expiry for a notification.
const Sticky = -1 * time.Second

// Action is an optional affordance rendered with the notification.
type Action struct {
	Label   string
	Handler func()
}

type Notification struct {
	ID      string
	Kind    Kind
	Title   string
	Message string
	TTL     time.Duration
	Action  *Action
}

// Add assigns a fresh unique id, applies the default TTL when none is given,
// appends the notification in insertion order, and schedules its automatic
// removal unless it is sticky. The scheduled removal is cancellable and keyed
// by the id, so manual dismissal can never race into removing a reused id.
func (s *Store) Add(n Notification) string {
	n.ID = uuid.NewString()
	if n.TTL == 0 {
		n.TTL = DefaultTTL
	}

	s.mu.Lock()
	s.notifications = append(s.notifications, n)
	if n.TTL > 0 {
		id := n.ID
		s.timers[id] = time.AfterFunc(n.TTL, func() {
			s.Remove(id)
		})
	}
	s.mu.Unlock()

	s.notify()
	return n.ID
}

// Remove dismisses a notification and cancels its pending expiry. Removing
// an unknown or already-removed id is a no-op, so the expiry timer and a
// manual dismissal race harmlessly.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	if t, ok := s.timers[id]; ok {
		t.Stop()
		delete(s.timers, id)
	}
	idx := -1
	for i, n := range s.notifications {
		if n.ID == id {
			idx = i
			break
		}
	}
	if idx >= 0 {
		s.notifications = append(s.notifications[:idx], s.notifications[idx+1:]...)
	}
	s.mu.Unlock()

	if idx >= 0 {
		s.notify()
	}
}

// ClearNotifications drops the whole queue and cancels every pending expiry.
func (s *Store) ClearNotifications() {
	s.mu.Lock()
	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
	changed := len(s.notifications) > 0
	s.notifications = nil
	s.mu.Unlock()

	if changed {
		s.notify()
	}
}

// Notifications returns the queue in insertion order.
func (s *Store) Notifications() []Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Notification, len(s.notifications))
	copy(out, s.notifications)
	return out
}

// Fixed-kind conveniences.

func (s *Store) Success(title, message string) string {
	return s.Add(Notification{Kind: KindSuccess, Title: title, Message: message})
}

func (s *Store) Error(title, message string) string {
	return s.Add(Notification{Kind: KindError, Title: title, Message: message})
}

func (s *Store) Warning(title, message string) string {
	return s.Add(Notification{Kind: KindWarning, Title: title, Message: message})
}

func (s *Store) Info(title, message string) string {
	return s.Add(Notification{Kind: KindInfo, Title: title, Message: message})
}
