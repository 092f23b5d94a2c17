// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/customchat-tui/internal/session"
	"github.com/jeranaias/customchat-tui/internal/ui/login"
	"github.com/jeranaias/customchat-tui/internal/ui/styles"
)

func newTestApp(t *testing.T) (Model, *session.Manager) {
	t.Helper()
	sess := session.NewManager(session.NewMemStore())
	m := New(styles.NewTheme(), sess, nil, nil)
	m.width = 100
	m.height = 30
	return m, sess
}

// unsignedToken builds a syntactically valid JWT-shaped token the decoder
// accepts without verification.
func userToken(t *testing.T) string {
	t.Helper()
	// {"alg":"HS256","typ":"JWT"} . {"sub":"7","role":"user"} . sig
	return "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9." +
		"eyJzdWIiOiI3Iiwicm9sZSI6InVzZXIifQ." +
		"c2ln"
}

func adminToken(t *testing.T) string {
	t.Helper()
	// {"alg":"HS256","typ":"JWT"} . {"sub":"1","role":"admin"} . sig
	return "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9." +
		"eyJzdWIiOiIxIiwicm9sZSI6ImFkbWluIn0." +
		"c2ln"
}

func TestStartsAtLoginWhenNoSession(t *testing.T) {
	m, _ := newTestApp(t)
	if m.active != ViewLogin {
		t.Errorf("active = %v, want ViewLogin", m.active)
	}
	if !strings.Contains(m.View(), "not signed in") {
		t.Error("sidebar should show signed-out state")
	}
}

func TestStartsAtChatWithPersistedSession(t *testing.T) {
	sess := session.NewManager(session.NewMemStore())
	if err := sess.Login(userToken(t), "Kim Jiyoung", "user", "7"); err != nil {
		t.Fatal(err)
	}

	m := New(styles.NewTheme(), sess, nil, nil)
	if m.active != ViewChat {
		t.Errorf("active = %v, want ViewChat", m.active)
	}
	m.width = 100
	if !strings.Contains(m.View(), "Kim Jiyoung") {
		t.Error("sidebar should show the display name")
	}
}

func TestLoginDoneSwitchesToChat(t *testing.T) {
	m, _ := newTestApp(t)

	next, _ := m.Update(login.DoneMsg{})
	m = next.(Model)

	if m.active != ViewChat {
		t.Errorf("active = %v, want ViewChat after login", m.active)
	}
}

func TestSessionChangeRederivesIdentity(t *testing.T) {
	m, sess := newTestApp(t)

	if err := sess.Login(adminToken(t), "Root", "admin", "1"); err != nil {
		t.Fatal(err)
	}
	next, cmd := m.Update(sessionChangedMsg{})
	m = next.(Model)

	if m.identity == nil || !m.identity.IsAdmin() {
		t.Fatal("identity should be re-derived as admin")
	}
	if cmd == nil {
		t.Error("the session subscription must be re-armed")
	}
	if !strings.Contains(m.View(), "Admin") {
		t.Error("sidebar should gate in the Admin entry")
	}
}

func TestForcedLogoutFallsBackToLogin(t *testing.T) {
	m, sess := newTestApp(t)
	if err := sess.Login(userToken(t), "Kim", "user", "7"); err != nil {
		t.Fatal(err)
	}
	next, _ := m.Update(sessionChangedMsg{})
	m = next.(Model)
	next, _ = m.Update(login.DoneMsg{})
	m = next.(Model)

	if err := sess.Logout(); err != nil {
		t.Fatal(err)
	}
	next, _ = m.Update(sessionChangedMsg{})
	m = next.(Model)

	if m.active != ViewLogin {
		t.Errorf("active = %v, want ViewLogin after logout", m.active)
	}
	if m.identity != nil {
		t.Error("identity should be nil after logout")
	}
}

func TestAdminShortcutGatedByRole(t *testing.T) {
	m, sess := newTestApp(t)
	if err := sess.Login(userToken(t), "Kim", "user", "7"); err != nil {
		t.Fatal(err)
	}
	next, _ := m.Update(sessionChangedMsg{})
	m = next.(Model)

	cmd, handled := m.handleGlobalKey(tea.KeyMsg{Type: tea.KeyCtrlA})
	if handled || cmd != nil {
		t.Error("non-admin must not reach the admin view")
	}
	if m.active == ViewAdmin {
		t.Error("view switched despite role gate")
	}
}

func TestBoardShortcutRequiresSession(t *testing.T) {
	m, _ := newTestApp(t)

	cmd, handled := m.handleGlobalKey(tea.KeyMsg{Type: tea.KeyCtrlB})
	if handled || cmd != nil {
		t.Error("signed-out users must not reach the board")
	}
	if m.active == ViewPosts {
		t.Error("view switched without a session")
	}
}

func TestBoardAndProfileShortcuts(t *testing.T) {
	m, sess := newTestApp(t)
	if err := sess.Login(userToken(t), "Kim", "user", "7"); err != nil {
		t.Fatal(err)
	}
	next, _ := m.Update(sessionChangedMsg{})
	m = next.(Model)

	cmd, handled := m.handleGlobalKey(tea.KeyMsg{Type: tea.KeyCtrlB})
	if !handled || cmd == nil {
		t.Fatal("ctrl+b should open the board and start its load")
	}
	if m.active != ViewPosts {
		t.Errorf("active = %v, want ViewPosts", m.active)
	}
	if !strings.Contains(m.View(), "Board") {
		t.Error("sidebar should list the board entry")
	}

	cmd, handled = m.handleGlobalKey(tea.KeyMsg{Type: tea.KeyCtrlP})
	if !handled || cmd == nil {
		t.Fatal("ctrl+p should open the profile and start its load")
	}
	if m.active != ViewProfile {
		t.Errorf("active = %v, want ViewProfile", m.active)
	}

	// Esc from the profile returns to chat.
	_, handled = m.handleGlobalKey(tea.KeyMsg{Type: tea.KeyEsc})
	if !handled || m.active != ViewChat {
		t.Error("esc should return to the chat view")
	}
}

func TestQuitDropsSessionSubscription(t *testing.T) {
	m, sess := newTestApp(t)

	cmd, handled := m.handleGlobalKey(tea.KeyMsg{Type: tea.KeyCtrlC})
	if !handled || cmd == nil {
		t.Fatal("ctrl+c must be handled globally")
	}

	// The wakeup channel is closed on unsubscribe, so the pending
	// awaitSessionChange command returns nil instead of blocking.
	if msg := awaitSessionChange(m.wakeups)(); msg != nil {
		t.Errorf("got %T, want nil from a closed subscription", msg)
	}

	// The notifier no longer tracks this model; publishing must not panic
	// or deliver anything.
	if err := sess.Login(userToken(t), "Kim", "user", "7"); err != nil {
		t.Fatal(err)
	}
	if _, ok := <-m.wakeups; ok {
		t.Error("closed subscription must not receive wakeups")
	}
}

func TestSubscriptionDeliversWakeup(t *testing.T) {
	m, sess := newTestApp(t)

	done := make(chan tea.Msg, 1)
	go func() { done <- awaitSessionChange(m.wakeups)() }()

	if err := sess.Login(userToken(t), "Kim", "user", "7"); err != nil {
		t.Fatal(err)
	}

	select {
	case msg := <-done:
		if _, ok := msg.(sessionChangedMsg); !ok {
			t.Errorf("got %T, want sessionChangedMsg", msg)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("wakeup never delivered")
	}
}
