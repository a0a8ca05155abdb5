// Package notification provides the notification manager for broadcasting
// player state to subscribers.
package notification

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	zlog "github.com/rs/zerolog/log"
	"github.com/samber/lo"

	playerv1 "github.com/osa030/negativespace/internal/api/playerv1"
)

// DefaultSendTimeout bounds a single stream send during Broadcast.
const DefaultSendTimeout = 500 * time.Millisecond

// Stream represents a notification stream for a subscriber.
type Stream interface {
	Send(*playerv1.Notification) error
}

// subscription represents a subscriber's subscription.
type subscription struct {
	id     string
	stream Stream
}

// Manager manages notification subscriptions and broadcasting.
type Manager struct {
	mu            sync.RWMutex
	subscriptions map[string]*subscription
	sequenceNo    uint64
	sequenceNoMu  sync.Mutex
	sendTimeout   time.Duration
}

// NewManager creates a new notification manager.
func NewManager() *Manager {
	return &Manager{
		subscriptions: make(map[string]*subscription),
		sendTimeout:   DefaultSendTimeout,
	}
}

// Subscribe adds a new subscription and returns the subscription ID.
func (m *Manager) Subscribe(stream Stream) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.New().String()
	m.subscriptions[id] = &subscription{
		id:     id,
		stream: stream,
	}
	zlog.Debug().Msgf("notification: subscribed: id=%s count=%d", id, len(m.subscriptions))
	return id
}

// NextSequenceNo returns the next sequence number and increments the counter.
func (m *Manager) NextSequenceNo() uint64 {
	m.sequenceNoMu.Lock()
	defer m.sequenceNoMu.Unlock()
	m.sequenceNo++
	return m.sequenceNo
}

// Unsubscribe removes a subscription.
func (m *Manager) Unsubscribe(subscriptionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.subscriptions, subscriptionID)
	zlog.Debug().Msgf("notification: unsubscribed: id=%s count=%d", subscriptionID, len(m.subscriptions))
}

// Broadcast stamps notification with the next sequence number and sends it
// to all subscribers. Sends run in parallel and each is bounded by the send
// timeout, so a stalled subscriber cannot block the others.
func (m *Manager) Broadcast(notification *playerv1.Notification) {
	notification.SequenceNo = m.NextSequenceNo()

	m.mu.RLock()
	subs := lo.Values(m.subscriptions)
	m.mu.RUnlock()

	var wg sync.WaitGroup
	for _, sub := range subs {
		wg.Add(1)
		go func(s *subscription) {
			defer wg.Done()
			ctx, cancel := context.WithTimeout(context.Background(), m.sendTimeout)
			defer cancel()

			done := make(chan error, 1)
			go func() {
				done <- s.stream.Send(notification)
			}()

			select {
			case err := <-done:
				if err != nil {
					zlog.Debug().Msgf("notification: send failed: id=%s: %v", s.id, err)
				}
			case <-ctx.Done():
				zlog.Debug().Msgf("notification: send timed out: id=%s", s.id)
			}
		}(sub)
	}

	wg.Wait()
}

// Send sends a notification to a specific subscriber.
func (m *Manager) Send(subscriptionID string, notification *playerv1.Notification) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sub, ok := m.subscriptions[subscriptionID]
	if !ok {
		return nil
	}

	return sub.stream.Send(notification)
}

// SubscriberCount returns the number of active subscribers.
func (m *Manager) SubscriberCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.subscriptions)
}

// Close closes the manager and removes all subscriptions.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subscriptions = make(map[string]*subscription)
}
