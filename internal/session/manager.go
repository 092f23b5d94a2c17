// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import "sync"

// =============================================================================
// SESSION MANAGER
// =============================================================================

// Manager owns the persisted identity record and the change notifier.
// All views read identity through Current() and react to Subscribe()
// notifications; none may cache identity across a notification.
type Manager struct {
	mu       sync.Mutex
	store    Store
	notifier *Notifier
}

// NewManager creates a manager over the given store.
func NewManager(store Store) *Manager {
	return &Manager{
		store:    store,
		notifier: NewNotifier(),
	}
}

// Current derives the identity claim from the persisted token. It returns
// nil when no token is stored or the stored token does not decode - the
// two are the same thing from the UI's point of view.
//
// The decoded token is authoritative for the role; the cached role string
// is only consulted when the token payload carries no role claim. The
// display name always comes from the auxiliary store since the token never
// embeds it.
func (m *Manager) Current() *IdentityClaim {
	m.mu.Lock()
	defer m.mu.Unlock()

	token := m.store.Get(KeyToken)
	if token == "" {
		return nil
	}

	claim := DecodeIdentity(token)
	if claim == nil {
		return nil
	}

	claim.DisplayName = m.store.Get(KeyName)
	if claim.SubjectID == "" {
		claim.SubjectID = m.store.Get(KeyUserID)
	}
	if _, tokenHasRole := rawClaims(token)["role"].(string); !tokenHasRole {
		// The decoder defaults to "user" when the token has no role
		// claim; only then may the cached role fill in.
		if cached := m.store.Get(KeyRole); cached != "" {
			claim.Role = cached
		}
	}
	return claim
}

// Token returns the persisted bearer token, or "" when logged out.
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store.Get(KeyToken)
}

// Login persists the four identity fields as one atomic record and
// broadcasts the change. No reader can observe the token without the name.
func (m *Manager) Login(token, name, role, userID string) error {
	m.mu.Lock()
	err := m.store.SetAll(map[string]string{
		KeyToken:  token,
		KeyName:   name,
		KeyUserID: userID,
		KeyRole:   role,
	})
	m.mu.Unlock()
	if err != nil {
		return err
	}

	m.notifier.Publish()
	return nil
}

// Logout clears every persisted identity field and broadcasts the change.
// It is also invoked by the API client when a protected endpoint rejects
// the session, so gated UI reverts through the same notification path.
func (m *Manager) Logout() error {
	m.mu.Lock()
	err := m.store.Clear()
	m.mu.Unlock()
	if err != nil {
		return err
	}

	m.notifier.Publish()
	return nil
}

// Subscribe registers for identity-change notifications. Subscribers must
// re-read Current() on every wakeup.
func (m *Manager) Subscribe() (<-chan struct{}, func()) {
	return m.notifier.Subscribe()
}
