// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package app provides the top-level Bubble Tea model for the customchat
// TUI: the sidebar, view switching, and the session-change subscription
// that keeps every view consistent with the current identity.
package app

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/customchat-tui/internal/api"
	"github.com/jeranaias/customchat-tui/internal/session"
	"github.com/jeranaias/customchat-tui/internal/ui/admin"
	"github.com/jeranaias/customchat-tui/internal/ui/chat"
	"github.com/jeranaias/customchat-tui/internal/ui/login"
	"github.com/jeranaias/customchat-tui/internal/ui/posts"
	"github.com/jeranaias/customchat-tui/internal/ui/profile"
	"github.com/jeranaias/customchat-tui/internal/ui/styles"
)

// =============================================================================
// VIEW SELECTION
// =============================================================================

// View identifies the active main view.
type View int

const (
	ViewChat View = iota
	ViewLogin
	ViewPosts
	ViewProfile
	ViewAdmin
)

// sessionChangedMsg wakes the app after a login or logout anywhere in the
// program, including the API client's forced logout on 401.
type sessionChangedMsg struct{}

// =============================================================================
// MODEL
// =============================================================================

// Model is the root Bubble Tea model.
type Model struct {
	theme   *styles.Theme
	session *session.Manager
	client  *api.Client

	// identity is re-derived from the store on every session notification,
	// never cached across one.
	identity *session.IdentityClaim

	active  View
	chat    chat.Model
	login   login.Model
	posts   posts.Model
	profile profile.Model
	admin   admin.Model

	wakeups     <-chan struct{}
	unsubscribe func()

	width  int
	height int
}

// New creates the root model. markdown may be nil.
func New(theme *styles.Theme, sess *session.Manager, client *api.Client, markdown *glamour.TermRenderer) Model {
	wakeups, unsubscribe := sess.Subscribe()

	m := Model{
		theme:       theme,
		session:     sess,
		client:      client,
		identity:    sess.Current(),
		chat:        chat.New(theme, client, markdown),
		login:       login.New(theme, client, sess),
		posts:       posts.New(theme, client, sess),
		profile:     profile.New(theme, client),
		admin:       admin.New(theme, client),
		wakeups:     wakeups,
		unsubscribe: unsubscribe,
	}

	if m.identity == nil {
		m.active = ViewLogin
	}
	return m
}

// Init initializes the root model and arms the session subscription.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.chat.Init(),
		m.login.Init(),
		awaitSessionChange(m.wakeups),
	)
}

// awaitSessionChange blocks on the notification channel and converts each
// wakeup into a Bubble Tea message. It is re-issued after every wakeup.
func awaitSessionChange(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return sessionChangedMsg{}
	}
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles messages for the root model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.theme.SetSize(msg.Width, msg.Height)
		inner := msg.Width - sidebarWidth - 2
		if inner < 20 {
			inner = 20
		}
		m.chat.SetSize(inner, msg.Height)
		m.login.SetSize(inner, msg.Height)
		m.posts.SetSize(inner, msg.Height)
		m.profile.SetSize(inner, msg.Height)
		m.admin.SetSize(inner, msg.Height)
		return m, nil

	case sessionChangedMsg:
		m.identity = m.session.Current()
		if m.identity == nil && m.active != ViewLogin {
			// Forced logout, 401 or explicit. Fail closed.
			m.active = ViewLogin
		}
		return m, awaitSessionChange(m.wakeups)

	case login.DoneMsg:
		m.active = ViewChat
		return m, nil

	case tea.KeyMsg:
		if cmd, handled := m.handleGlobalKey(msg); handled {
			return m, cmd
		}
	}

	return m.updateActive(msg)
}

// handleGlobalKey handles keys that work in every view.
func (m *Model) handleGlobalKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+c":
		// Drop the session subscription before the program exits so the
		// notifier stops tracking this subscriber.
		m.unsubscribe()
		return tea.Quit, true
	case "ctrl+l":
		if m.identity != nil {
			// Logout publishes on the session bus; the wakeup switches
			// the view.
			_ = m.session.Logout()
			return nil, true
		}
	case "ctrl+b":
		if m.identity != nil && m.active != ViewPosts {
			m.active = ViewPosts
			return m.posts.Init(), true
		}
	case "ctrl+p":
		if m.identity != nil && m.active != ViewProfile {
			m.active = ViewProfile
			return m.profile.Init(), true
		}
	case "ctrl+a":
		if m.identity.IsAdmin() && m.active != ViewAdmin {
			m.active = ViewAdmin
			return m.admin.Init(), true
		}
	case "esc":
		// The board handles esc itself below the root, walking its
		// detail and compose modes back to the list.
		switch {
		case m.active == ViewAdmin || m.active == ViewProfile:
			m.active = ViewChat
			return nil, true
		case m.active == ViewPosts && m.posts.AtRoot():
			m.active = ViewChat
			return nil, true
		}
	}
	return nil, false
}

func (m Model) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.active {
	case ViewChat:
		m.chat, cmd = m.chat.Update(msg)
	case ViewLogin:
		m.login, cmd = m.login.Update(msg)
	case ViewPosts:
		m.posts, cmd = m.posts.Update(msg)
	case ViewProfile:
		m.profile, cmd = m.profile.Update(msg)
	case ViewAdmin:
		m.admin, cmd = m.admin.Update(msg)
	}
	return m, cmd
}
