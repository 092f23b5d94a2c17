// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"sync"

	"github.com/google/uuid"
)

// =============================================================================
// CHANGE NOTIFIER
// =============================================================================

// Notifier is a single-topic, zero-payload publish/subscribe channel for
// "identity changed" notifications. Carrying no payload forces subscribers
// to re-read Manager.Current(), which rules out stale or partial pushed
// state by construction.
type Notifier struct {
	mu          sync.RWMutex
	subscribers map[string]chan struct{}
}

// NewNotifier creates a notifier with no subscribers.
func NewNotifier() *Notifier {
	return &Notifier{subscribers: make(map[string]chan struct{})}
}

// Publish wakes every subscriber. The send is non-blocking: a subscriber
// that already has a wakeup pending does not need a second one, since it
// re-derives state on the next read anyway.
func (n *Notifier) Publish() {
	n.mu.RLock()
	defer n.mu.RUnlock()

	for _, ch := range n.subscribers {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Subscribe registers a new subscriber and returns its wakeup channel plus
// an unsubscribe function. The channel is buffered so a notification fired
// between reads is not lost.
func (n *Notifier) Subscribe() (<-chan struct{}, func()) {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := uuid.NewString()
	ch := make(chan struct{}, 1)
	n.subscribers[id] = ch

	unsubscribe := func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		if ch, exists := n.subscribers[id]; exists {
			close(ch)
			delete(n.subscribers, id)
		}
	}

	return ch, unsubscribe
}
